// repositories/store.go
package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
)

// ErrUnsupportedCollection is returned for names outside the allow-list.
var ErrUnsupportedCollection = errors.New("unsupported collection")

// ErrNoAccess is returned when the principal's scope grants nothing.
var ErrNoAccess = errors.New("access scope grants no data visibility")

// ListQuery carries the equality filters a store must support. Empty
// fields mean "no filter".
type ListQuery struct {
	Country string
	Status  string
}

// DataStore is one backing transport for a logical collection. The scoped
// repository is agnostic to whether a collection lives in MongoDB or
// behind the legacy REST backend.
type DataStore interface {
	List(ctx context.Context, collection string, q ListQuery) ([]bson.M, error)
	SetCountry(ctx context.Context, collection, id, country string) error
}

// collectionSpec describes one allow-listed logical collection.
type collectionSpec struct {
	countryScoped bool // false: global catalog, never country-filtered
	legacy        bool // true: served by the legacy REST backend
}

// The fixed allow-list. Catalog collections are global by the original
// console's contract; requests/responses still live on the legacy Node
// backend from the half-finished migration.
var collections = map[string]collectionSpec{
	"categories":                 {},
	"subcategories":              {},
	"master_products":            {},
	"product_variables":          {},
	"brands":                     {},
	"vehicle_types":              {},
	"requests":                   {countryScoped: true, legacy: true},
	"responses":                  {countryScoped: true, legacy: true},
	"price_listings":             {countryScoped: true},
	"new_business_verifications": {countryScoped: true},
	"driver_verification":        {countryScoped: true},
	"legal_documents":            {countryScoped: true},
	"payment_methods":            {countryScoped: true},
	"users":                      {countryScoped: true},
	"admin_users":                {countryScoped: true},
}

// IsCountryScoped reports whether a collection participates in country
// filtering. Unknown collections report false.
func IsCountryScoped(collection string) bool {
	return collections[collection].countryScoped
}
