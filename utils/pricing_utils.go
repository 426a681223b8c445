// utils/pricing_utils.go
package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/velomart/admin_backend/models"
)

// CheckPricingDecision validates an approve/reject on a country pricing
// submission. Only super admins decide; pending and rejected rows are
// decidable, so a rejection can be overturned directly; approved rows
// change only through resubmission. Rejection needs a reason.
func CheckPricingDecision(admin *models.AdminUser, pricing *models.CountryPricing, status, reason string) error {
	if admin == nil || admin.Role != models.RoleSuperAdmin {
		return &TransitionError{Reason: "only a super admin can decide country pricing"}
	}
	if pricing.ApprovalStatus == models.VerificationApproved {
		return &TransitionError{Reason: "approved pricing changes only through resubmission"}
	}
	switch status {
	case models.VerificationApproved:
		return nil
	case models.VerificationRejected:
		if strings.TrimSpace(reason) == "" {
			return &TransitionError{Reason: "rejection reason is required"}
		}
		return nil
	default:
		return &TransitionError{Reason: fmt.Sprintf("invalid pricing decision %q", status)}
	}
}

// ApplyPricingDecision records a validated decision on the row, stamping
// actor and time. Approving after an earlier rejection overwrites the
// status; the prior decision survives in the pricing audit trail, not here.
func ApplyPricingDecision(admin *models.AdminUser, pricing *models.CountryPricing, status, reason string, now time.Time) error {
	if err := CheckPricingDecision(admin, pricing, status, reason); err != nil {
		return err
	}
	pricing.ApprovalStatus = status
	pricing.UpdatedAt = now
	if status == models.VerificationApproved {
		pricing.ApprovedBy = &admin.ID
		pricing.ApprovedAt = &now
		pricing.RejectedBy = nil
		pricing.RejectedAt = nil
		pricing.RejectionReason = ""
	} else {
		pricing.RejectedBy = &admin.ID
		pricing.RejectedAt = &now
		pricing.RejectionReason = reason
	}
	return nil
}

// CheckPricingSubmission validates create/edit of a pending pricing row.
// A country admin may only submit for their own country; super admins may
// submit anywhere. Approved rows cannot be edited in place.
func CheckPricingSubmission(admin *models.AdminUser, country string, existing *models.CountryPricing) error {
	if admin == nil {
		return &TransitionError{Reason: "authentication required"}
	}
	if admin.Role != models.RoleSuperAdmin {
		scope := ResolveScope(admin)
		if !scope.Allows(country) {
			return &TransitionError{Reason: fmt.Sprintf("cannot submit pricing for country %s", country)}
		}
		if !HasCapability(admin, models.CapabilitySubscriptions) {
			return &TransitionError{Reason: "subscriptionManagement permission is required"}
		}
	}
	if existing != nil && existing.ApprovalStatus == models.VerificationApproved {
		return &TransitionError{Reason: "approved pricing must be resubmitted, not edited"}
	}
	return nil
}

// ResubmitPricing resets a decided row to pending with the new price data,
// clearing the prior decision metadata from the row. The caller appends
// the prior decision to the audit trail before calling this.
func ResubmitPricing(pricing *models.CountryPricing, req models.CountryPricingRequest, submitter *models.AdminUser, now time.Time) {
	pricing.Price = req.Price
	pricing.Currency = req.Currency
	pricing.ResponseLimit = req.ResponseLimit
	pricing.ApprovalStatus = models.VerificationPending
	pricing.SubmittedBy = submitter.ID
	pricing.SubmittedAt = now
	pricing.ApprovedBy = nil
	pricing.ApprovedAt = nil
	pricing.RejectedBy = nil
	pricing.RejectedAt = nil
	pricing.RejectionReason = ""
	pricing.UpdatedAt = now
}
