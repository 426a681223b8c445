package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/velomart/admin_backend/models"
)

// memoryStore is an in-memory DataStore recording the queries it receives.
type memoryStore struct {
	docs       map[string][]bson.M
	lastQuery  ListQuery
	listErr    error
	setCountry map[string]string // doc id -> written country
}

func (m *memoryStore) List(_ context.Context, collection string, q ListQuery) ([]bson.M, error) {
	m.lastQuery = q
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []bson.M
	for _, doc := range m.docs[collection] {
		if q.Country != "" {
			if country, _ := doc["country"].(string); country != q.Country {
				continue
			}
		}
		if q.Status != "" {
			if status, _ := doc["status"].(string); status != q.Status {
				continue
			}
		}
		out = append(out, doc)
	}
	return out, nil
}

func (m *memoryStore) SetCountry(_ context.Context, _, id, country string) error {
	if m.setCountry == nil {
		m.setCountry = make(map[string]string)
	}
	m.setCountry[id] = country
	return nil
}

// staticResolver maps user ids to countries.
type staticResolver struct {
	countries map[string]string
	err       error
}

func (r *staticResolver) CountryForUser(_ context.Context, userID string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return r.countries[userID], nil
}

func lkAdmin() *models.AdminUser {
	return &models.AdminUser{Role: models.RoleCountryAdmin, Country: "LK"}
}

func superAdmin() *models.AdminUser {
	return &models.AdminUser{Role: models.RoleSuperAdmin}
}

func listingFixture() *memoryStore {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return &memoryStore{docs: map[string][]bson.M{
		"price_listings": {
			bson.M{"_id": "l1", "country": "LK", "createdAt": base.Add(1 * time.Hour)},
			bson.M{"_id": "l2", "country": "IN", "createdAt": base.Add(4 * time.Hour)},
			bson.M{"_id": "l3", "country": "LK", "createdAt": base.Add(3 * time.Hour)},
			bson.M{"_id": "l4", "country": "IN", "createdAt": base.Add(2 * time.Hour)},
			bson.M{"_id": "l5", "country": "LK", "createdAt": base.Add(5 * time.Hour)},
		},
	}}
}

func TestGetFilteredDataCountryAdmin(t *testing.T) {
	store := listingFixture()
	repo := NewScopedRepository(store, store, nil)

	docs, err := repo.GetFilteredData(context.Background(), "price_listings", lkAdmin())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("got %d listings, want 3", len(docs))
	}
	// Only LK, newest first: l5, l3, l1.
	wantOrder := []string{"l5", "l3", "l1"}
	for i, doc := range docs {
		if country, _ := doc["country"].(string); country != "LK" {
			t.Errorf("doc %d: country %q leaked past the scope", i, country)
		}
		if doc["_id"] != wantOrder[i] {
			t.Errorf("doc %d: got %v, want %s", i, doc["_id"], wantOrder[i])
		}
	}
	if store.lastQuery.Country != "LK" {
		t.Errorf("country filter should run at the store, got %q", store.lastQuery.Country)
	}
}

func TestGetFilteredDataSuperAdmin(t *testing.T) {
	store := listingFixture()
	repo := NewScopedRepository(store, store, nil)

	docs, err := repo.GetFilteredData(context.Background(), "price_listings", superAdmin())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 5 {
		t.Fatalf("got %d listings, want all 5", len(docs))
	}
	if store.lastQuery.Country != "" {
		t.Errorf("global scope must not push a country filter, got %q", store.lastQuery.Country)
	}
}

func TestGetFilteredDataUnsupportedCollection(t *testing.T) {
	store := &memoryStore{}
	repo := NewScopedRepository(store, store, nil)

	_, err := repo.GetFilteredData(context.Background(), "secret_ledger", superAdmin())
	if !errors.Is(err, ErrUnsupportedCollection) {
		t.Fatalf("got %v, want ErrUnsupportedCollection", err)
	}
}

func TestGetFilteredDataNoAccessScope(t *testing.T) {
	store := listingFixture()
	repo := NewScopedRepository(store, store, nil)

	// Country admin without a country must be denied, not defaulted to global.
	admin := &models.AdminUser{Role: models.RoleCountryAdmin}
	_, err := repo.GetFilteredData(context.Background(), "price_listings", admin)
	if !errors.Is(err, ErrNoAccess) {
		t.Fatalf("got %v, want ErrNoAccess", err)
	}
}

func TestGetFilteredDataGlobalCollections(t *testing.T) {
	store := &memoryStore{docs: map[string][]bson.M{
		"vehicle_types": {
			bson.M{"_id": "v1", "name": "Three Wheeler"},
			bson.M{"_id": "v2", "name": "Mini Truck"},
		},
	}}
	repo := NewScopedRepository(store, store, nil)

	// Catalog collections are global even for country admins.
	docs, err := repo.GetFilteredData(context.Background(), "vehicle_types", lkAdmin())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d vehicle types, want 2", len(docs))
	}
	if store.lastQuery.Country != "" {
		t.Errorf("global collection must not be country-filtered, got %q", store.lastQuery.Country)
	}
}

func TestStatusFilterFallsBackToClientSideCountry(t *testing.T) {
	store := &memoryStore{docs: map[string][]bson.M{
		"driver_verification": {
			bson.M{"_id": "d1", "country": "LK", "status": "pending"},
			bson.M{"_id": "d2", "country": "IN", "status": "pending"},
			bson.M{"_id": "d3", "country": "LK", "status": "approved"},
		},
	}}
	repo := NewScopedRepository(store, store, nil)

	docs, err := repo.GetFilteredDataWithStatus(context.Background(), "driver_verification", lkAdmin(), "pending")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 || docs[0]["_id"] != "d1" {
		t.Fatalf("got %v, want only d1", docs)
	}
	// Composite country+status must not be pushed to the store.
	if store.lastQuery.Country != "" {
		t.Errorf("country should be post-filtered when combined with status, store got %q", store.lastQuery.Country)
	}
	if store.lastQuery.Status != "pending" {
		t.Errorf("status filter should run at the store, got %q", store.lastQuery.Status)
	}
}

func TestMissingCreatedAtSortsLast(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	store := &memoryStore{docs: map[string][]bson.M{
		"price_listings": {
			bson.M{"_id": "noTime", "country": "LK"},
			bson.M{"_id": "old", "country": "LK", "createdAt": base},
			bson.M{"_id": "badTime", "country": "LK", "createdAt": "yesterday-ish"},
			bson.M{"_id": "new", "country": "LK", "createdAt": base.Add(time.Hour)},
		},
	}}
	repo := NewScopedRepository(store, store, nil)

	docs, err := repo.GetFilteredData(context.Background(), "price_listings", lkAdmin())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := make([]string, len(docs))
	for i, doc := range docs {
		got[i] = doc["_id"].(string)
	}
	if got[0] != "new" || got[1] != "old" {
		t.Fatalf("timestamped docs must lead, got %v", got)
	}
	for _, id := range got[2:] {
		if id != "noTime" && id != "badTime" {
			t.Fatalf("untimestamped docs must sort last, got %v", got)
		}
	}
}

func TestCountryBackfill(t *testing.T) {
	store := &memoryStore{docs: map[string][]bson.M{
		"new_business_verifications": {
			bson.M{"_id": "b1", "userId": "u1", "status": "pending"},
		},
	}}
	resolver := &staticResolver{countries: map[string]string{"u1": "LK"}}
	repo := NewScopedRepository(store, store, resolver)

	docs, err := repo.GetFilteredData(context.Background(), "new_business_verifications", superAdmin())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("got %d docs, want 1", len(docs))
	}
	if docs[0]["country"] != "LK" {
		t.Errorf("backfill should set the inferred country, got %v", docs[0]["country"])
	}
	if store.setCountry["b1"] != "LK" {
		t.Errorf("backfill should write back to the store, got %v", store.setCountry)
	}
}

func TestCountryBackfillFailureDoesNotBlockRead(t *testing.T) {
	store := &memoryStore{docs: map[string][]bson.M{
		"new_business_verifications": {
			bson.M{"_id": "b1", "userId": "u1", "status": "pending"},
		},
	}}
	resolver := &staticResolver{err: errors.New("users collection unavailable")}
	repo := NewScopedRepository(store, store, resolver)

	docs, err := repo.GetFilteredData(context.Background(), "new_business_verifications", superAdmin())
	if err != nil {
		t.Fatalf("read must not fail on backfill errors: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("got %d docs, want the pre-backfill entity", len(docs))
	}
	if _, ok := docs[0]["country"]; ok {
		t.Error("failed backfill must leave the entity untouched")
	}
}

func TestStoreErrorsPropagate(t *testing.T) {
	storeErr := errors.New("connection reset")
	store := &memoryStore{listErr: storeErr}
	repo := NewScopedRepository(store, store, nil)

	_, err := repo.GetFilteredData(context.Background(), "price_listings", superAdmin())
	if !errors.Is(err, storeErr) {
		t.Fatalf("store errors must propagate, got %v", err)
	}
}

func TestListGeneration(t *testing.T) {
	store := listingFixture()
	repo := NewScopedRepository(store, store, nil)

	gen1, _, err := repo.ListGeneration(context.Background(), "price_listings", lkAdmin())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.IsLatest(gen1) {
		t.Fatal("first generation should be latest before any newer request")
	}

	gen2, _, err := repo.ListGeneration(context.Background(), "price_listings", lkAdmin())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.IsLatest(gen1) {
		t.Error("stale generation must be discarded once a newer request is issued")
	}
	if !repo.IsLatest(gen2) {
		t.Error("newest generation must be applied")
	}
}
