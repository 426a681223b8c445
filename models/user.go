package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LinkedCredentials carries the contact-verification flags of an end-user
// account. The verification approval gate reads these.
type LinkedCredentials struct {
	LinkedPhone         string `json:"linkedPhone,omitempty" bson:"linkedPhone,omitempty"`
	LinkedEmail         string `json:"linkedEmail,omitempty" bson:"linkedEmail,omitempty"`
	LinkedPhoneVerified bool   `json:"linkedPhoneVerified" bson:"linkedPhoneVerified"`
	LinkedEmailVerified bool   `json:"linkedEmailVerified" bson:"linkedEmailVerified"`
}

// User is an end-user account created by the consumer apps. Read-only to
// the admin console except for the best-effort country backfill.
type User struct {
	ID                primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Email             string             `json:"email" bson:"email"`
	Phone             string             `json:"phone,omitempty" bson:"phone,omitempty"`
	FullName          string             `json:"fullName,omitempty" bson:"fullName,omitempty"`
	Country           string             `json:"country,omitempty" bson:"country,omitempty"`
	Role              string             `json:"role,omitempty" bson:"role,omitempty"`
	LinkedCredentials LinkedCredentials  `json:"linkedCredentials" bson:"linkedCredentials"`
	IsActive          bool               `json:"isActive" bson:"isActive"`
	CreatedAt         time.Time          `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt         time.Time          `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}
