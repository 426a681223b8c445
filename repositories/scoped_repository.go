// repositories/scoped_repository.go
package repositories

import (
	"context"
	"log"
	"sort"
	"sync/atomic"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/velomart/admin_backend/models"
	"github.com/velomart/admin_backend/utils"
)

// CountryResolver infers the country of an entity from its linked user
// account, for the best-effort backfill of missing country fields.
type CountryResolver interface {
	CountryForUser(ctx context.Context, userID string) (string, error)
}

// ScopedRepository fetches allow-listed logical collections with the
// principal's access scope applied. Each call is a fresh read: no cache,
// no retry, no request coalescing.
type ScopedRepository struct {
	primary  DataStore
	legacy   DataStore
	resolver CountryResolver
	gen      atomic.Uint64
}

func NewScopedRepository(primary, legacy DataStore, resolver CountryResolver) *ScopedRepository {
	return &ScopedRepository{primary: primary, legacy: legacy, resolver: resolver}
}

// GetFilteredData returns the named collection restricted to the
// principal's scope, sorted by createdAt descending (missing timestamps
// sort last).
func (r *ScopedRepository) GetFilteredData(ctx context.Context, collection string, admin *models.AdminUser) ([]bson.M, error) {
	return r.GetFilteredDataWithStatus(ctx, collection, admin, "")
}

// GetFilteredDataWithStatus additionally filters on a status value. When
// both country and status predicates are needed, only the status filter
// runs at the store (the composite index may not exist) and the country
// restriction is applied client-side — a correct filtered set beats a
// failed indexed query.
func (r *ScopedRepository) GetFilteredDataWithStatus(ctx context.Context, collection string, admin *models.AdminUser, status string) ([]bson.M, error) {
	spec, ok := collections[collection]
	if !ok {
		return nil, ErrUnsupportedCollection
	}

	scope := utils.ResolveScope(admin)
	if !scope.HasAccess() {
		return nil, ErrNoAccess
	}

	q := ListQuery{Status: status}
	postFilterCountry := ""
	if spec.countryScoped && !scope.IsGlobal {
		if status == "" {
			q.Country = scope.RestrictedCountry
		} else {
			postFilterCountry = scope.RestrictedCountry
		}
	}

	store := r.primary
	if spec.legacy {
		store = r.legacy
	}

	docs, err := store.List(ctx, collection, q)
	if err != nil {
		return nil, err
	}

	if spec.countryScoped {
		docs = r.backfillCountries(ctx, collection, store, docs)
	}

	if postFilterCountry != "" {
		filtered := docs[:0]
		for _, doc := range docs {
			if country, _ := doc["country"].(string); country == postFilterCountry {
				filtered = append(filtered, doc)
			}
		}
		docs = filtered
	}

	sortByCreatedAtDesc(docs)
	return docs, nil
}

// ListGeneration issues a read stamped with a monotonically increasing
// generation. A caller racing rapid re-filters applies only the response
// whose generation is still the latest and discards the rest.
func (r *ScopedRepository) ListGeneration(ctx context.Context, collection string, admin *models.AdminUser) (uint64, []bson.M, error) {
	gen := r.gen.Add(1)
	docs, err := r.GetFilteredData(ctx, collection, admin)
	return gen, docs, err
}

// IsLatest reports whether the given generation is still the newest
// issued request.
func (r *ScopedRepository) IsLatest(gen uint64) bool {
	return r.gen.Load() == gen
}

// backfillCountries attempts to infer a missing country field from the
// entity's linked user and write it back. Failures are logged and never
// fail the read; the entity is returned in its pre-backfill state.
func (r *ScopedRepository) backfillCountries(ctx context.Context, collection string, store DataStore, docs []bson.M) []bson.M {
	if r.resolver == nil {
		return docs
	}
	for _, doc := range docs {
		if country, _ := doc["country"].(string); country != "" {
			continue
		}
		userID := linkedUserID(doc)
		if userID == "" {
			continue
		}
		country, err := r.resolver.CountryForUser(ctx, userID)
		if err != nil || country == "" {
			log.Printf("country backfill skipped for %s/%v: %v", collection, doc["_id"], err)
			continue
		}
		doc["country"] = country
		if id := documentID(doc); id != "" {
			if err := store.SetCountry(ctx, collection, id, country); err != nil {
				log.Printf("country backfill write failed for %s/%s: %v", collection, id, err)
			}
		}
	}
	return docs
}

func linkedUserID(doc bson.M) string {
	switch v := doc["userId"].(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		return ""
	}
}

func documentID(doc bson.M) string {
	switch v := doc["_id"].(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		return ""
	}
}

// sortByCreatedAtDesc orders newest first. Entities with a missing or
// unparseable createdAt are treated as "oldest unknown" and sort last.
func sortByCreatedAtDesc(docs []bson.M) {
	sort.SliceStable(docs, func(i, j int) bool {
		ti, iOK := createdAt(docs[i])
		tj, jOK := createdAt(docs[j])
		if iOK != jOK {
			return iOK
		}
		if !iOK {
			return false
		}
		return ti.After(tj)
	})
}

func createdAt(doc bson.M) (time.Time, bool) {
	switch v := doc["createdAt"].(type) {
	case time.Time:
		return v, !v.IsZero()
	case primitive.DateTime:
		t := v.Time()
		return t, !t.IsZero()
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t, true
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}
