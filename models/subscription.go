package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubscriptionPlan is a global subscription plan for businesses
// (collection: subscription_plans). Per-country pricing overrides live in
// CountryPricing rows attached to the plan.
type SubscriptionPlan struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title         string             `json:"title" bson:"title"`
	Description   string             `json:"description,omitempty" bson:"description,omitempty"`
	BasePrice     float64            `json:"basePrice" bson:"basePrice"`
	Currency      string             `json:"currency" bson:"currency"`
	DurationDays  int                `json:"durationDays" bson:"durationDays"`
	ResponseLimit *int               `json:"responseLimit,omitempty" bson:"responseLimit,omitempty"`
	IsActive      bool               `json:"isActive" bson:"isActive"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// CountryPricing is a per-country pricing submission for a plan
// (collection: country_pricing). Created by the country admin of that
// country; decided by a super admin.
type CountryPricing struct {
	ID              primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	PlanID          primitive.ObjectID  `json:"planId" bson:"planId"`
	Country         string              `json:"country" bson:"country"`
	Price           float64             `json:"price" bson:"price"`
	Currency        string              `json:"currency" bson:"currency"`
	ResponseLimit   *int                `json:"responseLimit,omitempty" bson:"responseLimit,omitempty"`
	ApprovalStatus  string              `json:"approvalStatus" bson:"approvalStatus"`
	SubmittedBy     primitive.ObjectID  `json:"submittedBy,omitempty" bson:"submittedBy,omitempty"`
	SubmittedAt     time.Time           `json:"submittedAt,omitempty" bson:"submittedAt,omitempty"`
	ApprovedBy      *primitive.ObjectID `json:"approvedBy,omitempty" bson:"approvedBy,omitempty"`
	ApprovedAt      *time.Time          `json:"approvedAt,omitempty" bson:"approvedAt,omitempty"`
	RejectedBy      *primitive.ObjectID `json:"rejectedBy,omitempty" bson:"rejectedBy,omitempty"`
	RejectedAt      *time.Time          `json:"rejectedAt,omitempty" bson:"rejectedAt,omitempty"`
	RejectionReason string              `json:"rejectionReason,omitempty" bson:"rejectionReason,omitempty"`
	CreatedAt       time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// PricingAuditEntry records a pricing decision so history survives
// resubmission (collection: pricing_audit).
type PricingAuditEntry struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	PricingID primitive.ObjectID `json:"pricingId" bson:"pricingId"`
	PlanID    primitive.ObjectID `json:"planId" bson:"planId"`
	Country   string             `json:"country" bson:"country"`
	Action    string             `json:"action" bson:"action"` // "approved", "rejected", "resubmitted"
	ActorID   primitive.ObjectID `json:"actorId" bson:"actorId"`
	Reason    string             `json:"reason,omitempty" bson:"reason,omitempty"`
	Price     float64            `json:"price" bson:"price"`
	Currency  string             `json:"currency" bson:"currency"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// SubscriptionPlanRequest is the request body for plan create/update
type SubscriptionPlanRequest struct {
	Title         string  `json:"title" validate:"required"`
	Description   string  `json:"description"`
	BasePrice     float64 `json:"basePrice" validate:"required,gt=0"`
	Currency      string  `json:"currency" validate:"required,len=3"`
	DurationDays  int     `json:"durationDays" validate:"required,gt=0"`
	ResponseLimit *int    `json:"responseLimit"`
	IsActive      bool    `json:"isActive"`
}

// CountryPricingRequest is the request body for submitting or resubmitting
// a per-country price.
type CountryPricingRequest struct {
	Country       string  `json:"country" validate:"required,len=2"`
	Price         float64 `json:"price" validate:"required,gt=0"`
	Currency      string  `json:"currency" validate:"required,len=3"`
	ResponseLimit *int    `json:"responseLimit"`
}

// PricingDecisionRequest is the request body for approving/rejecting a
// country pricing submission.
type PricingDecisionRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
	Reason string `json:"reason,omitempty"`
}
