// repositories/mongo_store.go
package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoStore serves collections that have been migrated to MongoDB.
// Country and status filters run as indexed equality filters.
type MongoStore struct {
	DB *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{DB: db}
}

func (s *MongoStore) List(ctx context.Context, collection string, q ListQuery) ([]bson.M, error) {
	filter := bson.M{}
	if q.Country != "" {
		filter["country"] = q.Country
	}
	if q.Status != "" {
		filter["status"] = q.Status
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := s.DB.Collection(collection).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode %s documents: %w", collection, err)
	}
	return docs, nil
}

func (s *MongoStore) SetCountry(ctx context.Context, collection, id, country string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid document id %q: %w", id, err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err = s.DB.Collection(collection).UpdateOne(ctx, bson.M{"_id": objID}, bson.M{
		"$set": bson.M{"country": country, "updatedAt": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("failed to set country on %s/%s: %w", collection, id, err)
	}
	return nil
}
