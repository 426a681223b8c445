package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is a global catalog category. Catalog collections are shared
// across countries and never country-filtered.
type Category struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Subcategories []string           `json:"subcategories,omitempty" bson:"subcategories,omitempty"`
	Color         string             `json:"color,omitempty" bson:"color,omitempty"`
	Logo          string             `json:"logo,omitempty" bson:"logo,omitempty"`
	IsActive      bool               `json:"isActive" bson:"isActive"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Subcategory is a standalone subcategory record (collection: subcategories)
type Subcategory struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	CategoryID primitive.ObjectID `json:"categoryId" bson:"categoryId"`
	Name       string             `json:"name" bson:"name"`
	IsActive   bool               `json:"isActive" bson:"isActive"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}
