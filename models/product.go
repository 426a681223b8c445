package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a master catalog product (collection: master_products).
type Product struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	CategoryID    primitive.ObjectID `json:"categoryId,omitempty" bson:"categoryId,omitempty"`
	SubcategoryID primitive.ObjectID `json:"subcategoryId,omitempty" bson:"subcategoryId,omitempty"`
	Brand         string             `json:"brand,omitempty" bson:"brand,omitempty"`
	ImageURL      string             `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Unit          string             `json:"unit,omitempty" bson:"unit,omitempty"`
	IsActive      bool               `json:"isActive" bson:"isActive"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ProductVariable is a custom per-product attribute definition
// (collection: product_variables), e.g. size or grade options.
type ProductVariable struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Type      string             `json:"type" bson:"type"` // "text", "number", "select"
	Options   []string           `json:"options,omitempty" bson:"options,omitempty"`
	Required  bool               `json:"required" bson:"required"`
	IsActive  bool               `json:"isActive" bson:"isActive"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}
