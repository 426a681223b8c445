// utils/approval_utils.go
package utils

import (
	"fmt"
	"sort"
	"strings"

	"github.com/velomart/admin_backend/models"
)

// TransitionError is a refused verification transition. The message names
// the unmet requirements so the console can tell the admin what to fix.
type TransitionError struct {
	Reason string
}

func (e *TransitionError) Error() string {
	return e.Reason
}

// CheckApprovalGate evaluates the approve preconditions for a submission:
// every submitted document slot must be approved and the linked account
// must have both contact flags verified. Returns nil when the transition
// is legal, otherwise a TransitionError naming every unmet requirement.
func CheckApprovalGate(status string, documents map[string]models.DocumentSlot, account *models.LinkedCredentials) error {
	if status != models.VerificationPending {
		return &TransitionError{Reason: fmt.Sprintf("only pending submissions can be approved (current status: %s)", status)}
	}

	var unapproved []string
	for name, slot := range documents {
		if !slot.Submitted() {
			continue // never-submitted slots are exempt
		}
		if slot.EffectiveStatus() != models.VerificationApproved {
			unapproved = append(unapproved, name)
		}
	}
	sort.Strings(unapproved)

	var missing []string
	if account == nil || !account.LinkedPhoneVerified {
		missing = append(missing, "phone")
	}
	if account == nil || !account.LinkedEmailVerified {
		missing = append(missing, "email")
	}

	var parts []string
	if len(unapproved) > 0 {
		parts = append(parts, "documents not approved: "+strings.Join(unapproved, ", "))
	}
	if len(missing) > 0 {
		parts = append(parts, "missing: "+strings.Join(missing, ", "))
	}
	if len(parts) > 0 {
		return &TransitionError{Reason: strings.Join(parts, "; ")}
	}
	return nil
}

// CheckRejection validates the reject transition. Rejection needs a
// non-empty reason; document completeness is irrelevant.
func CheckRejection(status, reason string) error {
	if status != models.VerificationPending {
		return &TransitionError{Reason: fmt.Sprintf("only pending submissions can be rejected (current status: %s)", status)}
	}
	if strings.TrimSpace(reason) == "" {
		return &TransitionError{Reason: "rejection reason is required"}
	}
	return nil
}

// CheckReopen validates the rejected -> pending reactivation.
func CheckReopen(status string) error {
	if status != models.VerificationRejected {
		return &TransitionError{Reason: fmt.Sprintf("only rejected submissions can be reopened (current status: %s)", status)}
	}
	return nil
}

// CheckDocumentReview validates a sub-status change on one document slot.
// Slots review independently of the parent status, except that an approved
// parent freezes them: approval is a one-way completeness snapshot.
func CheckDocumentReview(parentStatus string, slot models.DocumentSlot, decision, reason string) error {
	if parentStatus == models.VerificationApproved {
		return &TransitionError{Reason: "submission is already approved; documents are frozen"}
	}
	if !slot.Submitted() {
		return &TransitionError{Reason: "no document was submitted for this slot"}
	}
	switch decision {
	case models.VerificationApproved:
		return nil
	case models.VerificationRejected:
		if strings.TrimSpace(reason) == "" {
			return &TransitionError{Reason: "rejection reason is required"}
		}
		return nil
	default:
		return &TransitionError{Reason: fmt.Sprintf("invalid document decision %q", decision)}
	}
}
