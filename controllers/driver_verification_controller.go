// controllers/driver_verification_controller.go
package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/velomart/admin_backend/middleware"
	"github.com/velomart/admin_backend/models"
	"github.com/velomart/admin_backend/repositories"
	"github.com/velomart/admin_backend/services"
	"github.com/velomart/admin_backend/utils"
	ws "github.com/velomart/admin_backend/websocket"
)

type DriverVerificationController struct {
	DB           *mongo.Database
	Repo         *repositories.ScopedRepository
	Hub          *ws.Hub
	EmailService *services.EmailService
}

func NewDriverVerificationController(db *mongo.Database, repo *repositories.ScopedRepository, hub *ws.Hub) *DriverVerificationController {
	return &DriverVerificationController{
		DB:           db,
		Repo:         repo,
		Hub:          hub,
		EmailService: services.NewEmailService(),
	}
}

// GetVerifications lists driver verification submissions in the caller's
// scope, optionally filtered by status
func (dc *DriverVerificationController) GetVerifications(c echo.Context) error {
	admin := middleware.GetAdmin(c)
	status := c.QueryParam("status")

	docs, err := dc.Repo.GetFilteredDataWithStatus(c.Request().Context(), "driver_verification", admin, status)
	if err != nil {
		if errors.Is(err, repositories.ErrNoAccess) {
			return c.JSON(http.StatusForbidden, models.Response{
				Status:  http.StatusForbidden,
				Message: "Access denied: no country assigned to this admin",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve driver verifications",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Driver verifications retrieved successfully",
		Data:    docs,
	})
}

func (dc *DriverVerificationController) loadVerification(ctx context.Context, c echo.Context) (*models.DriverVerification, error) {
	admin := middleware.GetAdmin(c)

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return nil, c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid verification ID",
		})
	}

	var verification models.DriverVerification
	err = dc.DB.Collection("driver_verification").FindOne(ctx, bson.M{"_id": objID}).Decode(&verification)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Driver verification not found",
			})
		}
		return nil, c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve driver verification",
		})
	}

	scope := utils.ResolveScope(admin)
	if !scope.IsGlobal && !scope.Allows(verification.Country) {
		return nil, c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Access denied: verification belongs to another country",
		})
	}

	return &verification, nil
}

// GetVerification returns one submission with its linked user account and
// the vehicle type the driver registered with
func (dc *DriverVerificationController) GetVerification(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	verification, errResp := dc.loadVerification(ctx, c)
	if verification == nil {
		return errResp
	}

	var user models.User
	_ = dc.DB.Collection("users").FindOne(ctx, bson.M{"_id": verification.UserID}).Decode(&user)

	var vehicleType models.VehicleType
	if !verification.VehicleTypeID.IsZero() {
		_ = dc.DB.Collection("vehicle_types").FindOne(ctx, bson.M{"_id": verification.VehicleTypeID}).Decode(&vehicleType)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Driver verification retrieved successfully",
		Data: map[string]interface{}{
			"verification": verification,
			"user":         user,
			"vehicleType":  vehicleType,
		},
	})
}

// ReviewDocument approves or rejects a single document slot
func (dc *DriverVerificationController) ReviewDocument(c echo.Context) error {
	slotName := c.Param("slot")

	var req models.VerificationDecisionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	verification, errResp := dc.loadVerification(ctx, c)
	if verification == nil {
		return errResp
	}

	slot, ok := verification.Documents[slotName]
	if !ok {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Unknown document slot: " + slotName,
		})
	}

	if err := utils.CheckDocumentReview(verification.Status, slot, req.Status, req.Reason); err != nil {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: err.Error(),
		})
	}

	now := time.Now()
	update := bson.M{
		"documents." + slotName + ".status": req.Status,
		"updatedAt":                         now,
	}
	if req.Status == models.VerificationApproved {
		update["documents."+slotName+".approvedAt"] = now
		update["documents."+slotName+".rejectionReason"] = ""
	} else {
		update["documents."+slotName+".rejectionReason"] = req.Reason
	}

	_, err := dc.DB.Collection("driver_verification").UpdateOne(ctx,
		bson.M{"_id": verification.ID}, bson.M{"$set": update})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update document status",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Document " + req.Status,
	})
}

// Approve runs the approval gate and marks the driver verified
func (dc *DriverVerificationController) Approve(c echo.Context) error {
	admin := middleware.GetAdmin(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	verification, errResp := dc.loadVerification(ctx, c)
	if verification == nil {
		return errResp
	}

	var user models.User
	var account *models.LinkedCredentials
	if err := dc.DB.Collection("users").FindOne(ctx, bson.M{"_id": verification.UserID}).Decode(&user); err == nil {
		account = &user.LinkedCredentials
	}

	if err := utils.CheckApprovalGate(verification.Status, verification.Documents, account); err != nil {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "Cannot approve: " + err.Error(),
		})
	}

	now := time.Now()
	_, err := dc.DB.Collection("driver_verification").UpdateOne(ctx,
		bson.M{"_id": verification.ID},
		bson.M{"$set": bson.M{
			"status":     models.VerificationApproved,
			"isVerified": true,
			"approvedAt": now,
			"updatedAt":  now,
		}})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to approve driver verification",
		})
	}

	dc.Hub.Broadcast(ws.Event{
		Type:    ws.EventVerificationDecided,
		Message: "Driver verification approved: " + verification.DriverName,
		Country: verification.Country,
		Data: map[string]string{
			"id":      verification.ID.Hex(),
			"kind":    "driver",
			"status":  models.VerificationApproved,
			"actorId": admin.ID.Hex(),
		},
	})
	if user.Email != "" {
		go dc.EmailService.SendVerificationDecisionEmail(user.Email, user.FullName, "driver", models.VerificationApproved, "")
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Driver verification approved",
	})
}

// Reject marks a pending submission rejected with a reason
func (dc *DriverVerificationController) Reject(c echo.Context) error {
	admin := middleware.GetAdmin(c)

	var req models.VerificationDecisionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	verification, errResp := dc.loadVerification(ctx, c)
	if verification == nil {
		return errResp
	}

	if err := utils.CheckRejection(verification.Status, req.Reason); err != nil {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "Cannot reject: " + err.Error(),
		})
	}

	now := time.Now()
	_, err := dc.DB.Collection("driver_verification").UpdateOne(ctx,
		bson.M{"_id": verification.ID},
		bson.M{"$set": bson.M{
			"status":          models.VerificationRejected,
			"isVerified":      false,
			"rejectionReason": req.Reason,
			"rejectedAt":      now,
			"updatedAt":       now,
		}})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to reject driver verification",
		})
	}

	dc.Hub.Broadcast(ws.Event{
		Type:    ws.EventVerificationDecided,
		Message: "Driver verification rejected: " + verification.DriverName,
		Country: verification.Country,
		Data: map[string]string{
			"id":      verification.ID.Hex(),
			"kind":    "driver",
			"status":  models.VerificationRejected,
			"reason":  req.Reason,
			"actorId": admin.ID.Hex(),
		},
	})

	var user models.User
	if err := dc.DB.Collection("users").FindOne(ctx, bson.M{"_id": verification.UserID}).Decode(&user); err == nil && user.Email != "" {
		go dc.EmailService.SendVerificationDecisionEmail(user.Email, user.FullName, "driver", models.VerificationRejected, req.Reason)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Driver verification rejected",
	})
}

// Reopen moves a rejected submission back to pending
func (dc *DriverVerificationController) Reopen(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	verification, errResp := dc.loadVerification(ctx, c)
	if verification == nil {
		return errResp
	}

	if err := utils.CheckReopen(verification.Status); err != nil {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "Cannot reopen: " + err.Error(),
		})
	}

	_, err := dc.DB.Collection("driver_verification").UpdateOne(ctx,
		bson.M{"_id": verification.ID},
		bson.M{"$set": bson.M{
			"status":    models.VerificationPending,
			"updatedAt": time.Now(),
		}})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to reopen driver verification",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Driver verification reopened",
	})
}
