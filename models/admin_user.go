// models/admin_user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin roles
const (
	RoleSuperAdmin   = "super_admin"
	RoleCountryAdmin = "country_admin"
)

// Capability names a console feature area that can be gated per admin.
type Capability string

const (
	CapabilityPaymentMethods     Capability = "paymentMethods"
	CapabilityLegalDocuments     Capability = "legalDocuments"
	CapabilityBusinessManagement Capability = "businessManagement"
	CapabilityDriverManagement   Capability = "driverManagement"
	CapabilityVehicleManagement  Capability = "vehicleManagement"
	CapabilityAdminUsers         Capability = "adminUsersManagement"
	CapabilitySubscriptions      Capability = "subscriptionManagement"
)

// Permissions holds the delegable feature flags on a country admin. Super
// admins never consult these; missing flags default to false.
type Permissions struct {
	PaymentMethods         bool `json:"paymentMethods" bson:"paymentMethods"`
	LegalDocuments         bool `json:"legalDocuments" bson:"legalDocuments"`
	BusinessManagement     bool `json:"businessManagement" bson:"businessManagement"`
	DriverManagement       bool `json:"driverManagement" bson:"driverManagement"`
	VehicleManagement      bool `json:"vehicleManagement" bson:"vehicleManagement"`
	AdminUsersManagement   bool `json:"adminUsersManagement" bson:"adminUsersManagement"`
	SubscriptionManagement bool `json:"subscriptionManagement" bson:"subscriptionManagement"`
}

// Granted reports whether the named capability flag is set. Unknown
// capability names are never granted.
func (p Permissions) Granted(cap Capability) bool {
	switch cap {
	case CapabilityPaymentMethods:
		return p.PaymentMethods
	case CapabilityLegalDocuments:
		return p.LegalDocuments
	case CapabilityBusinessManagement:
		return p.BusinessManagement
	case CapabilityDriverManagement:
		return p.DriverManagement
	case CapabilityVehicleManagement:
		return p.VehicleManagement
	case CapabilityAdminUsers:
		return p.AdminUsersManagement
	case CapabilitySubscriptions:
		return p.SubscriptionManagement
	default:
		return false
	}
}

// AdminUser is a console principal (collection: admin_users).
type AdminUser struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Email       string             `json:"email" bson:"email"`
	Password    string             `json:"password,omitempty" bson:"password"`
	FullName    string             `json:"fullName" bson:"fullName"`
	Role        string             `json:"role" bson:"role"`
	Country     string             `json:"country,omitempty" bson:"country,omitempty"`
	Permissions Permissions        `json:"permissions" bson:"permissions"`
	FCMToken    string             `json:"fcmToken,omitempty" bson:"fcmToken,omitempty"`
	IsActive    bool               `json:"isActive" bson:"isActive"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// AccessScope is the resolved data-visibility scope of a principal. The
// zero value grants nothing: a scope only grants visibility when built
// through one of the constructors below, so a missing country can never
// read as global.
type AccessScope struct {
	IsGlobal          bool
	RestrictedCountry string

	hasAccess bool
}

// GlobalScope grants visibility into every country.
func GlobalScope() AccessScope {
	return AccessScope{IsGlobal: true, hasAccess: true}
}

// CountryScope grants visibility into a single country.
func CountryScope(country string) AccessScope {
	return AccessScope{RestrictedCountry: country, hasAccess: true}
}

// NoAccessScope grants nothing.
func NoAccessScope() AccessScope {
	return AccessScope{}
}

// HasAccess reports whether the scope grants any visibility at all.
func (s AccessScope) HasAccess() bool {
	return s.hasAccess
}

// Allows reports whether data belonging to the given country is visible.
func (s AccessScope) Allows(country string) bool {
	if !s.hasAccess {
		return false
	}
	if s.IsGlobal {
		return true
	}
	return country != "" && country == s.RestrictedCountry
}

// AdminLoginRequest is the request body for admin login
type AdminLoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"rememberMe"`
}

// AdminUserRequest is the request body for creating or updating an admin
type AdminUserRequest struct {
	Email       string      `json:"email" validate:"required,email"`
	Password    string      `json:"password,omitempty"`
	FullName    string      `json:"fullName" validate:"required"`
	Role        string      `json:"role" validate:"required,oneof=super_admin country_admin"`
	Country     string      `json:"country,omitempty"`
	Permissions Permissions `json:"permissions"`
	IsActive    *bool       `json:"isActive,omitempty"`
}

// Response is the standard API response envelope
type Response struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
