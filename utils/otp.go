// utils/otp.go
package utils

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const otpTTL = 10 * time.Minute

func GenerateSecureOTP() (string, error) {
	bytes := make([]byte, 6)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base32.StdEncoding.EncodeToString(bytes)[:6], nil
}

// StoreOTP saves the OTP for a password reset under the admin's email
func StoreOTP(ctx context.Context, rdb *redis.Client, email, otp string) error {
	if rdb == nil {
		return errors.New("redis is not available")
	}
	return rdb.Set(ctx, "admin_otp:"+email, otp, otpTTL).Err()
}

// VerifyOTP checks and consumes a stored OTP. A matching OTP is deleted so
// it cannot be replayed.
func VerifyOTP(ctx context.Context, rdb *redis.Client, email, otp string) error {
	if rdb == nil {
		return errors.New("redis is not available")
	}
	stored, err := rdb.Get(ctx, "admin_otp:"+email).Result()
	if err == redis.Nil {
		return errors.New("OTP expired or not found")
	}
	if err != nil {
		return err
	}
	if stored != otp {
		return errors.New("invalid OTP")
	}
	rdb.Del(ctx, "admin_otp:"+email)
	return nil
}

// ValidateOTPAttempts limits OTP verification to 5 attempts per hour per email
func ValidateOTPAttempts(email string, rdb *redis.Client) error {
	if rdb == nil {
		return nil
	}
	key := "otp_attempts:" + email
	attempts, err := rdb.Incr(context.Background(), key).Result()
	if err != nil {
		return err
	}

	if attempts == 1 {
		rdb.Expire(context.Background(), key, 1*time.Hour)
	}

	if attempts > 5 {
		return errors.New("too many OTP attempts")
	}

	return nil
}
