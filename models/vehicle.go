package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VehicleType is a global vehicle catalog entry (collection: vehicle_types).
// Editing the catalog is super-admin-exclusive; country admins may only
// toggle per-country enablement.
type VehicleType struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Category  string             `json:"category,omitempty" bson:"category,omitempty"` // "bike", "car", "truck"
	Capacity  int                `json:"capacity,omitempty" bson:"capacity,omitempty"`
	IconURL   string             `json:"iconUrl,omitempty" bson:"iconUrl,omitempty"`
	IsActive  bool               `json:"isActive" bson:"isActive"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CountryVehicleActivation enables a vehicle type in one country
// (collection: country_vehicle_activations).
type CountryVehicleActivation struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	VehicleTypeID primitive.ObjectID `json:"vehicleTypeId" bson:"vehicleTypeId"`
	Country       string             `json:"country" bson:"country"`
	Enabled       bool               `json:"enabled" bson:"enabled"`
	UpdatedBy     primitive.ObjectID `json:"updatedBy,omitempty" bson:"updatedBy,omitempty"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// VehicleTypeRequest is the request body for vehicle type create/update
type VehicleTypeRequest struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"required,oneof=bike car van truck"`
	Capacity int    `json:"capacity" validate:"gte=0"`
	IsActive bool   `json:"isActive"`
}
