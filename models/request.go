package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Request is a buyer request posted from the consumer apps
// (collection: requests). Country-scoped.
type Request struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID      primitive.ObjectID `json:"userId" bson:"userId"`
	ProductID   primitive.ObjectID `json:"productId,omitempty" bson:"productId,omitempty"`
	ProductName string             `json:"productName,omitempty" bson:"productName,omitempty"`
	Quantity    float64            `json:"quantity,omitempty" bson:"quantity,omitempty"`
	Unit        string             `json:"unit,omitempty" bson:"unit,omitempty"`
	Country     string             `json:"country,omitempty" bson:"country,omitempty"`
	Status      string             `json:"status" bson:"status"` // "active", "completed", "cancelled"
	CreatedAt   time.Time          `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt   time.Time          `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// RequestResponse is a seller response to a request
// (collection: responses). Country-scoped.
type RequestResponse struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	RequestID  primitive.ObjectID `json:"requestId" bson:"requestId"`
	BusinessID primitive.ObjectID `json:"businessId" bson:"businessId"`
	Price      float64            `json:"price,omitempty" bson:"price,omitempty"`
	Currency   string             `json:"currency,omitempty" bson:"currency,omitempty"`
	Country    string             `json:"country,omitempty" bson:"country,omitempty"`
	Status     string             `json:"status" bson:"status"` // "pending", "accepted"
	CreatedAt  time.Time          `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt  time.Time          `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// PriceListing is a published business price for a product in a country
// (collection: price_listings). Country-scoped.
type PriceListing struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	BusinessID  primitive.ObjectID `json:"businessId" bson:"businessId"`
	ProductID   primitive.ObjectID `json:"productId,omitempty" bson:"productId,omitempty"`
	ProductName string             `json:"productName,omitempty" bson:"productName,omitempty"`
	Price       float64            `json:"price" bson:"price"`
	Currency    string             `json:"currency,omitempty" bson:"currency,omitempty"`
	Country     string             `json:"country,omitempty" bson:"country,omitempty"`
	Status      string             `json:"status" bson:"status"` // "active", "inactive"
	CreatedAt   time.Time          `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt   time.Time          `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}
