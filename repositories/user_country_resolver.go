// repositories/user_country_resolver.go
package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserCountryResolver looks up the country of a linked user account in
// the users collection.
type UserCountryResolver struct {
	DB *mongo.Database
}

func NewUserCountryResolver(db *mongo.Database) *UserCountryResolver {
	return &UserCountryResolver{DB: db}
}

func (r *UserCountryResolver) CountryForUser(ctx context.Context, userID string) (string, error) {
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return "", fmt.Errorf("invalid user id %q: %w", userID, err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var user struct {
		Country string `bson:"country"`
	}
	err = r.DB.Collection("users").FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", fmt.Errorf("linked user %s not found", userID)
		}
		return "", fmt.Errorf("failed to load linked user %s: %w", userID, err)
	}
	return user.Country, nil
}
