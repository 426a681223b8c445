package utils

import (
	"testing"
	"time"

	"github.com/velomart/admin_backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func pendingPricing(country string) *models.CountryPricing {
	return &models.CountryPricing{
		ID:             primitive.NewObjectID(),
		PlanID:         primitive.NewObjectID(),
		Country:        country,
		Price:          1500,
		Currency:       "LKR",
		ApprovalStatus: models.VerificationPending,
	}
}

func TestPricingDecisionSuperAdminOnly(t *testing.T) {
	countryAdmin := &models.AdminUser{
		ID:          primitive.NewObjectID(),
		Role:        models.RoleCountryAdmin,
		Country:     "IN",
		Permissions: models.Permissions{SubscriptionManagement: true},
	}
	err := CheckPricingDecision(countryAdmin, pendingPricing("IN"), models.VerificationApproved, "")
	if err == nil {
		t.Fatal("country admin must not decide pricing")
	}
	if err := CheckPricingDecision(nil, pendingPricing("IN"), models.VerificationApproved, ""); err == nil {
		t.Fatal("nil principal must not decide pricing")
	}
}

func TestPricingRejectThenApprove(t *testing.T) {
	superAdmin := &models.AdminUser{ID: primitive.NewObjectID(), Role: models.RoleSuperAdmin}
	pricing := pendingPricing("IN")
	now := time.Now()

	if err := ApplyPricingDecision(superAdmin, pricing, models.VerificationRejected, "price too low", now); err != nil {
		t.Fatalf("reject refused: %v", err)
	}
	if pricing.ApprovalStatus != models.VerificationRejected {
		t.Fatalf("status = %s, want rejected", pricing.ApprovalStatus)
	}
	if pricing.RejectionReason != "price too low" {
		t.Fatalf("reason = %q, want stored verbatim", pricing.RejectionReason)
	}
	if pricing.RejectedBy == nil || *pricing.RejectedBy != superAdmin.ID || pricing.RejectedAt == nil {
		t.Fatal("rejection must record actor and timestamp")
	}

	// A rejection can be overturned directly: the same super admin
	// approves the rejected row and the status is overwritten.
	if err := ApplyPricingDecision(superAdmin, pricing, models.VerificationApproved, "", now); err != nil {
		t.Fatalf("approve after reject refused: %v", err)
	}
	if pricing.ApprovalStatus != models.VerificationApproved {
		t.Fatalf("status = %s, want approved", pricing.ApprovalStatus)
	}
	if pricing.ApprovedBy == nil || pricing.ApprovedAt == nil {
		t.Fatal("approval must record actor and timestamp")
	}
	if pricing.RejectedBy != nil || pricing.RejectionReason != "" {
		t.Fatal("overturned rejection must not leave decision metadata on the row")
	}
}

func TestPricingApprovedRowNotDecidable(t *testing.T) {
	superAdmin := &models.AdminUser{ID: primitive.NewObjectID(), Role: models.RoleSuperAdmin}
	pricing := pendingPricing("IN")

	if err := ApplyPricingDecision(superAdmin, pricing, models.VerificationApproved, "", time.Now()); err != nil {
		t.Fatalf("approve refused: %v", err)
	}
	if err := CheckPricingDecision(superAdmin, pricing, models.VerificationRejected, "too late"); err == nil {
		t.Fatal("approved pricing must not be decidable; it goes through resubmission")
	}
}

func TestPricingRejectNeedsReason(t *testing.T) {
	superAdmin := &models.AdminUser{ID: primitive.NewObjectID(), Role: models.RoleSuperAdmin}
	if err := CheckPricingDecision(superAdmin, pendingPricing("LK"), models.VerificationRejected, " "); err == nil {
		t.Fatal("reject without reason must be refused")
	}
}

func TestPricingSubmissionCountryRestriction(t *testing.T) {
	lkAdmin := &models.AdminUser{
		ID:          primitive.NewObjectID(),
		Role:        models.RoleCountryAdmin,
		Country:     "LK",
		Permissions: models.Permissions{SubscriptionManagement: true},
	}
	if err := CheckPricingSubmission(lkAdmin, "LK", nil); err != nil {
		t.Errorf("own-country submission refused: %v", err)
	}
	if err := CheckPricingSubmission(lkAdmin, "IN", nil); err == nil {
		t.Error("cross-country submission must be refused")
	}

	noPerm := &models.AdminUser{Role: models.RoleCountryAdmin, Country: "LK"}
	if err := CheckPricingSubmission(noPerm, "LK", nil); err == nil {
		t.Error("submission without subscriptionManagement must be refused")
	}

	superAdmin := &models.AdminUser{Role: models.RoleSuperAdmin}
	if err := CheckPricingSubmission(superAdmin, "IN", nil); err != nil {
		t.Errorf("super admin submission refused: %v", err)
	}
}

func TestResubmitPricingClearsDecision(t *testing.T) {
	admin := &models.AdminUser{
		ID:          primitive.NewObjectID(),
		Role:        models.RoleCountryAdmin,
		Country:     "IN",
		Permissions: models.Permissions{SubscriptionManagement: true},
	}
	superAdmin := &models.AdminUser{ID: primitive.NewObjectID(), Role: models.RoleSuperAdmin}
	pricing := pendingPricing("IN")
	now := time.Now()

	if err := ApplyPricingDecision(superAdmin, pricing, models.VerificationRejected, "price too low", now); err != nil {
		t.Fatalf("reject refused: %v", err)
	}

	ResubmitPricing(pricing, models.CountryPricingRequest{Country: "IN", Price: 1800, Currency: "INR"}, admin, now)

	if pricing.ApprovalStatus != models.VerificationPending {
		t.Fatalf("status = %s, want pending after resubmission", pricing.ApprovalStatus)
	}
	if pricing.RejectedBy != nil || pricing.RejectedAt != nil || pricing.RejectionReason != "" {
		t.Fatal("resubmission must clear the prior decision metadata")
	}
	if pricing.Price != 1800 || pricing.Currency != "INR" {
		t.Fatal("resubmission must apply the new price data")
	}
	if pricing.SubmittedBy != admin.ID {
		t.Fatal("resubmission must record the submitter")
	}
}
