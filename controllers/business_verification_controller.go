// controllers/business_verification_controller.go
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

type BusinessVerificationController struct {
	DB           *mongo.Database
	Repo         *repositories.ScopedRepository
	Hub          *ws.Hub
	EmailService *services.EmailService
}

func NewBusinessVerificationController(db *mongo.Database, repo *repositories.ScopedRepository, hub *ws.Hub) *BusinessVerificationController {
	return &BusinessVerificationController{
		DB:           db,
		Repo:         repo,
		Hub:          hub,
		EmailService: services.NewEmailService(),
	}
}

// GetVerifications lists business verification submissions in the caller's
// scope, optionally filtered by status
func (bc *BusinessVerificationController) GetVerifications(c echo.Context) error {
	admin := middleware.GetAdmin(c)
	status := c.QueryParam("status")

	docs, err := bc.Repo.GetFilteredDataWithStatus(c.Request().Context(), "new_business_verifications", admin, status)
	if err != nil {
		if errors.Is(err, repositories.ErrNoAccess) {
			return c.JSON(http.StatusForbidden, models.Response{
				Status:  http.StatusForbidden,
				Message: "Access denied: no country assigned to this admin",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve business verifications",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Business verifications retrieved successfully",
		Data:    docs,
	})
}

// loadVerification fetches one submission and enforces the caller's scope
func (bc *BusinessVerificationController) loadVerification(ctx context.Context, c echo.Context) (*models.BusinessVerification, error) {
	admin := middleware.GetAdmin(c)

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return nil, c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid verification ID",
		})
	}

	var verification models.BusinessVerification
	err = bc.DB.Collection("new_business_verifications").FindOne(ctx, bson.M{"_id": objID}).Decode(&verification)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, c.JSON(http.StatusNotFound, models.Response{
				Status:  http.StatusNotFound,
				Message: "Business verification not found",
			})
		}
		return nil, c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve business verification",
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

// GetVerification returns one submission with its linked user account
func (bc *BusinessVerificationController) GetVerification(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	verification, errResp := bc.loadVerification(ctx, c)
	if verification == nil {
		return errResp
	}

	var user models.User
	_ = bc.DB.Collection("users").FindOne(ctx, bson.M{"_id": verification.UserID}).Decode(&user)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Business verification retrieved successfully",
		Data: map[string]interface{}{
			"verification": verification,
			"user":         user,
		},
	})
}

// ReviewDocument approves or rejects a single document slot
func (bc *BusinessVerificationController) ReviewDocument(c echo.Context) error {
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

	verification, errResp := bc.loadVerification(ctx, c)
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

	_, err := bc.DB.Collection("new_business_verifications").UpdateOne(ctx,
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

// Approve runs the approval gate and marks the submission approved
func (bc *BusinessVerificationController) Approve(c echo.Context) error {
	admin := middleware.GetAdmin(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	verification, errResp := bc.loadVerification(ctx, c)
	if verification == nil {
		return errResp
	}

	var user models.User
	var account *models.LinkedCredentials
	if err := bc.DB.Collection("users").FindOne(ctx, bson.M{"_id": verification.UserID}).Decode(&user); err == nil {
		account = &user.LinkedCredentials
	}

	if err := utils.CheckApprovalGate(verification.Status, verification.Documents, account); err != nil {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "Cannot approve: " + err.Error(),
		})
	}

	now := time.Now()
	_, err := bc.DB.Collection("new_business_verifications").UpdateOne(ctx,
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
			Message: "Failed to approve business verification",
		})
	}

	bc.Hub.Broadcast(ws.Event{
		Type:    ws.EventVerificationDecided,
		Message: "Business verification approved: " + verification.BusinessName,
		Country: verification.Country,
		Data: map[string]string{
			"id":      verification.ID.Hex(),
			"kind":    "business",
			"status":  models.VerificationApproved,
			"actorId": admin.ID.Hex(),
		},
	})
	if user.Email != "" {
		go bc.EmailService.SendVerificationDecisionEmail(user.Email, user.FullName, "business", models.VerificationApproved, "")
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Business verification approved",
	})
}

// Reject marks a pending submission rejected with a reason
func (bc *BusinessVerificationController) Reject(c echo.Context) error {
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

	verification, errResp := bc.loadVerification(ctx, c)
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
	_, err := bc.DB.Collection("new_business_verifications").UpdateOne(ctx,
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
			Message: "Failed to reject business verification",
		})
	}

	bc.Hub.Broadcast(ws.Event{
		Type:    ws.EventVerificationDecided,
		Message: "Business verification rejected: " + verification.BusinessName,
		Country: verification.Country,
		Data: map[string]string{
			"id":      verification.ID.Hex(),
			"kind":    "business",
			"status":  models.VerificationRejected,
			"reason":  req.Reason,
			"actorId": admin.ID.Hex(),
		},
	})

	var user models.User
	if err := bc.DB.Collection("users").FindOne(ctx, bson.M{"_id": verification.UserID}).Decode(&user); err == nil && user.Email != "" {
		go bc.EmailService.SendVerificationDecisionEmail(user.Email, user.FullName, "business", models.VerificationRejected, req.Reason)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Business verification rejected",
	})
}

// Reopen moves a rejected submission back to pending. The rejection reason
// stays on record; the next approval runs the gate fresh.
func (bc *BusinessVerificationController) Reopen(c echo.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	verification, errResp := bc.loadVerification(ctx, c)
	if verification == nil {
		return errResp
	}

	if err := utils.CheckReopen(verification.Status); err != nil {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "Cannot reopen: " + err.Error(),
		})
	}

	_, err := bc.DB.Collection("new_business_verifications").UpdateOne(ctx,
		bson.M{"_id": verification.ID},
		bson.M{"$set": bson.M{
			"status":    models.VerificationPending,
			"updatedAt": time.Now(),
		}})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to reopen business verification",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Business verification reopened",
	})
}
