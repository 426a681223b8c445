package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Verification statuses shared by business and driver submissions and by
// individual document slots.
const (
	VerificationPending  = "pending"
	VerificationApproved = "approved"
	VerificationRejected = "rejected"
)

// Business document slot names
const (
	DocBusinessLicense   = "businessLicense"
	DocTaxCertificate    = "taxCertificate"
	DocInsuranceDocument = "insuranceDocument"
	DocBusinessLogo      = "businessLogo"
)

// Driver document slot names
const (
	DocLicenseImage        = "licenseImage"
	DocIDImage             = "idImage"
	DocVehicleRegistration = "vehicleRegistration"
	DocProfileImage        = "profileImage"
)

// DocumentSlot is one named document on a verification submission. A slot
// with an empty URL was never submitted and is exempt from the approval
// gate.
type DocumentSlot struct {
	URL             string     `json:"url,omitempty" bson:"url,omitempty"`
	ThumbnailURL    string     `json:"thumbnailUrl,omitempty" bson:"thumbnailUrl,omitempty"`
	Status          string     `json:"status,omitempty" bson:"status,omitempty"`
	RejectionReason string     `json:"rejectionReason,omitempty" bson:"rejectionReason,omitempty"`
	ApprovedAt      *time.Time `json:"approvedAt,omitempty" bson:"approvedAt,omitempty"`
}

// Submitted reports whether a document was uploaded into this slot.
func (d DocumentSlot) Submitted() bool {
	return d.URL != ""
}

// EffectiveStatus returns the slot status, defaulting to pending for
// submitted documents that were never reviewed.
func (d DocumentSlot) EffectiveStatus() string {
	if d.Status == "" {
		return VerificationPending
	}
	return d.Status
}

// BusinessVerification is a business verification submission
// (collection: new_business_verifications).
type BusinessVerification struct {
	ID              primitive.ObjectID      `json:"id,omitempty" bson:"_id,omitempty"`
	UserID          primitive.ObjectID      `json:"userId" bson:"userId"`
	BusinessName    string                  `json:"businessName" bson:"businessName"`
	BusinessType    string                  `json:"businessType,omitempty" bson:"businessType,omitempty"`
	Country         string                  `json:"country,omitempty" bson:"country,omitempty"`
	Status          string                  `json:"status" bson:"status"`
	Documents       map[string]DocumentSlot `json:"documents" bson:"documents"`
	RejectionReason string                  `json:"rejectionReason,omitempty" bson:"rejectionReason,omitempty"`
	IsVerified      bool                    `json:"isVerified" bson:"isVerified"`
	ApprovedAt      *time.Time              `json:"approvedAt,omitempty" bson:"approvedAt,omitempty"`
	RejectedAt      *time.Time              `json:"rejectedAt,omitempty" bson:"rejectedAt,omitempty"`
	CreatedAt       time.Time               `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt       time.Time               `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// DriverVerification is a driver verification submission
// (collection: driver_verification).
type DriverVerification struct {
	ID              primitive.ObjectID      `json:"id,omitempty" bson:"_id,omitempty"`
	UserID          primitive.ObjectID      `json:"userId" bson:"userId"`
	DriverName      string                  `json:"driverName" bson:"driverName"`
	VehicleTypeID   primitive.ObjectID      `json:"vehicleTypeId,omitempty" bson:"vehicleTypeId,omitempty"`
	Country         string                  `json:"country,omitempty" bson:"country,omitempty"`
	Status          string                  `json:"status" bson:"status"`
	Documents       map[string]DocumentSlot `json:"documents" bson:"documents"`
	RejectionReason string                  `json:"rejectionReason,omitempty" bson:"rejectionReason,omitempty"`
	IsVerified      bool                    `json:"isVerified" bson:"isVerified"`
	ApprovedAt      *time.Time              `json:"approvedAt,omitempty" bson:"approvedAt,omitempty"`
	RejectedAt      *time.Time              `json:"rejectedAt,omitempty" bson:"rejectedAt,omitempty"`
	CreatedAt       time.Time               `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt       time.Time               `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// BusinessDocumentSlots lists the slots a business submission may carry.
func BusinessDocumentSlots() []string {
	return []string{DocBusinessLicense, DocTaxCertificate, DocInsuranceDocument, DocBusinessLogo}
}

// DriverDocumentSlots lists the slots a driver submission may carry.
func DriverDocumentSlots() []string {
	return []string{DocLicenseImage, DocIDImage, DocVehicleRegistration, DocProfileImage}
}

// VerificationDecisionRequest is the request body for approve/reject
// actions on a submission or a single document slot.
type VerificationDecisionRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
	Reason string `json:"reason,omitempty"`
}
