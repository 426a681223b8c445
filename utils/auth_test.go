package utils

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-admin-pass")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "s3cret-admin-pass" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPasswordHash("s3cret-admin-pass", hash) {
		t.Fatal("correct password must verify")
	}
	if CheckPasswordHash("wrong-pass", hash) {
		t.Fatal("wrong password must not verify")
	}
}
