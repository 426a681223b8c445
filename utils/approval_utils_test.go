package utils

import (
	"strings"
	"testing"

	"github.com/velomart/admin_backend/models"
)

func verifiedAccount() *models.LinkedCredentials {
	return &models.LinkedCredentials{LinkedPhoneVerified: true, LinkedEmailVerified: true}
}

func TestApprovalGateBlocksUnapprovedDocuments(t *testing.T) {
	docs := map[string]models.DocumentSlot{
		models.DocBusinessLicense: {URL: "uploads/license.png", Status: models.VerificationPending},
	}

	err := CheckApprovalGate(models.VerificationPending, docs, verifiedAccount())
	if err == nil {
		t.Fatal("expected refusal while a submitted document is pending")
	}
	if !strings.Contains(err.Error(), models.DocBusinessLicense) {
		t.Fatalf("refusal must name the offending document, got %q", err.Error())
	}

	// Approving the document makes the identical call succeed.
	docs[models.DocBusinessLicense] = models.DocumentSlot{
		URL: "uploads/license.png", Status: models.VerificationApproved,
	}
	if err := CheckApprovalGate(models.VerificationPending, docs, verifiedAccount()); err != nil {
		t.Fatalf("expected approval after document approved, got %v", err)
	}
}

func TestApprovalGateExemptsUnsubmittedSlots(t *testing.T) {
	// Slots with no uploaded document never block approval.
	docs := map[string]models.DocumentSlot{
		models.DocBusinessLicense:   {URL: "uploads/license.png", Status: models.VerificationApproved},
		models.DocTaxCertificate:    {},
		models.DocInsuranceDocument: {Status: models.VerificationRejected},
	}
	if err := CheckApprovalGate(models.VerificationPending, docs, verifiedAccount()); err != nil {
		t.Fatalf("unsubmitted slots must be exempt, got %v", err)
	}
}

func TestApprovalGateContactFlags(t *testing.T) {
	docs := map[string]models.DocumentSlot{
		models.DocLicenseImage: {URL: "uploads/dl.png", Status: models.VerificationApproved},
	}

	cases := []struct {
		name    string
		account *models.LinkedCredentials
		want    []string
	}{
		{"phone unverified", &models.LinkedCredentials{LinkedEmailVerified: true}, []string{"phone"}},
		{"email unverified", &models.LinkedCredentials{LinkedPhoneVerified: true}, []string{"email"}},
		{"both unverified", &models.LinkedCredentials{}, []string{"phone", "email"}},
		{"no linked account", nil, []string{"phone", "email"}},
	}
	for _, tc := range cases {
		err := CheckApprovalGate(models.VerificationPending, docs, tc.account)
		if err == nil {
			t.Errorf("%s: expected refusal", tc.name)
			continue
		}
		for _, want := range tc.want {
			if !strings.Contains(err.Error(), want) {
				t.Errorf("%s: refusal %q should mention %q", tc.name, err.Error(), want)
			}
		}
	}
}

func TestApprovalGateReportsBothRequirementKinds(t *testing.T) {
	docs := map[string]models.DocumentSlot{
		models.DocIDImage: {URL: "uploads/id.png"},
	}
	err := CheckApprovalGate(models.VerificationPending, docs, &models.LinkedCredentials{})
	if err == nil {
		t.Fatal("expected refusal")
	}
	msg := err.Error()
	if !strings.Contains(msg, "documents not approved") || !strings.Contains(msg, "missing:") {
		t.Fatalf("refusal should report both document and contact requirements, got %q", msg)
	}
}

func TestApprovalGateRequiresPendingParent(t *testing.T) {
	for _, status := range []string{models.VerificationApproved, models.VerificationRejected} {
		if err := CheckApprovalGate(status, nil, verifiedAccount()); err == nil {
			t.Errorf("status %s: approve must be refused", status)
		}
	}
}

func TestCheckRejection(t *testing.T) {
	if err := CheckRejection(models.VerificationPending, ""); err == nil {
		t.Error("empty reason must be refused")
	}
	if err := CheckRejection(models.VerificationPending, "   "); err == nil {
		t.Error("blank reason must be refused")
	}
	if err := CheckRejection(models.VerificationPending, "not legible"); err != nil {
		t.Errorf("valid rejection refused: %v", err)
	}
	// No approved -> rejected edge.
	if err := CheckRejection(models.VerificationApproved, "fraud"); err == nil {
		t.Error("approved submissions must not be rejectable here")
	}
}

func TestCheckReopen(t *testing.T) {
	if err := CheckReopen(models.VerificationRejected); err != nil {
		t.Errorf("rejected -> pending must be allowed: %v", err)
	}
	if err := CheckReopen(models.VerificationPending); err == nil {
		t.Error("pending submissions cannot be reopened")
	}
	if err := CheckReopen(models.VerificationApproved); err == nil {
		t.Error("approved submissions cannot be reopened")
	}
}

func TestReopenedSubmissionEvaluatedOnCurrentState(t *testing.T) {
	// A reopened submission is judged purely on current document/contact
	// state; the old rejection reason carries no weight.
	docs := map[string]models.DocumentSlot{
		models.DocLicenseImage: {URL: "uploads/dl.png", Status: models.VerificationApproved},
	}
	if err := CheckReopen(models.VerificationRejected); err != nil {
		t.Fatalf("reopen refused: %v", err)
	}
	if err := CheckApprovalGate(models.VerificationPending, docs, verifiedAccount()); err != nil {
		t.Fatalf("fresh approval check must pass, got %v", err)
	}
}

func TestCheckDocumentReview(t *testing.T) {
	submitted := models.DocumentSlot{URL: "uploads/tax.pdf"}

	if err := CheckDocumentReview(models.VerificationPending, submitted, models.VerificationApproved, ""); err != nil {
		t.Errorf("approving a submitted document refused: %v", err)
	}
	if err := CheckDocumentReview(models.VerificationPending, submitted, models.VerificationRejected, "blurry scan"); err != nil {
		t.Errorf("rejecting with reason refused: %v", err)
	}
	if err := CheckDocumentReview(models.VerificationPending, submitted, models.VerificationRejected, ""); err == nil {
		t.Error("document rejection needs a reason")
	}
	if err := CheckDocumentReview(models.VerificationPending, models.DocumentSlot{}, models.VerificationApproved, ""); err == nil {
		t.Error("unsubmitted slot cannot be reviewed")
	}
	// Approved parent freezes slots.
	if err := CheckDocumentReview(models.VerificationApproved, submitted, models.VerificationApproved, ""); err == nil {
		t.Error("approved parent must freeze document reviews")
	}
	if err := CheckDocumentReview(models.VerificationPending, submitted, "maybe", ""); err == nil {
		t.Error("unknown decision must be refused")
	}
}
