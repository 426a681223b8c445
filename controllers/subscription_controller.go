// controllers/subscription_controller.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/velomart/admin_backend/middleware"
	"github.com/velomart/admin_backend/models"
	"github.com/velomart/admin_backend/utils"
	ws "github.com/velomart/admin_backend/websocket"
)

type SubscriptionController struct {
	DB  *mongo.Database
	Hub *ws.Hub
}

func NewSubscriptionController(db *mongo.Database, hub *ws.Hub) *SubscriptionController {
	return &SubscriptionController{DB: db, Hub: hub}
}

// GetPlans lists subscription plans. For country admins, each plan carries
// the pricing row of their own country when one exists.
func (sc *SubscriptionController) GetPlans(c echo.Context) error {
	admin := middleware.GetAdmin(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := sc.DB.Collection("subscription_plans").Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve subscription plans",
		})
	}
	defer cursor.Close(ctx)

	var plans []models.SubscriptionPlan
	if err := cursor.All(ctx, &plans); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode subscription plans",
		})
	}

	scope := utils.ResolveScope(admin)
	if scope.IsGlobal {
		return c.JSON(http.StatusOK, models.Response{
			Status:  http.StatusOK,
			Message: "Subscription plans retrieved successfully",
			Data:    plans,
		})
	}

	// Attach the caller's country pricing per plan
	items := make([]map[string]interface{}, 0, len(plans))
	for _, plan := range plans {
		var pricing models.CountryPricing
		err := sc.DB.Collection("country_pricing").FindOne(ctx, bson.M{
			"planId":  plan.ID,
			"country": scope.RestrictedCountry,
		}).Decode(&pricing)

		item := map[string]interface{}{"plan": plan}
		if err == nil {
			item["countryPricing"] = pricing
		}
		items = append(items, item)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Subscription plans retrieved successfully",
		Data:    items,
	})
}

// CreatePlan adds a subscription plan. Super admin only.
func (sc *SubscriptionController) CreatePlan(c echo.Context) error {
	var req models.SubscriptionPlanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Title, price, currency and duration are required",
		})
	}

	plan := models.SubscriptionPlan{
		Title:         req.Title,
		Description:   req.Description,
		BasePrice:     req.BasePrice,
		Currency:      req.Currency,
		DurationDays:  req.DurationDays,
		ResponseLimit: req.ResponseLimit,
		IsActive:      req.IsActive,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := sc.DB.Collection("subscription_plans").InsertOne(ctx, plan)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create subscription plan",
		})
	}
	plan.ID = result.InsertedID.(primitive.ObjectID)

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Subscription plan created successfully",
		Data:    plan,
	})
}

// UpdatePlan edits a subscription plan. Super admin only.
func (sc *SubscriptionController) UpdatePlan(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid plan ID",
		})
	}

	var req models.SubscriptionPlanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Title, price, currency and duration are required",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := sc.DB.Collection("subscription_plans").UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{
			"title":         req.Title,
			"description":   req.Description,
			"basePrice":     req.BasePrice,
			"currency":      req.Currency,
			"durationDays":  req.DurationDays,
			"responseLimit": req.ResponseLimit,
			"isActive":      req.IsActive,
			"updatedAt":     time.Now(),
		}})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update subscription plan",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Subscription plan not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Subscription plan updated successfully",
	})
}

// DeletePlan removes a plan and its country pricing rows. Super admin only.
func (sc *SubscriptionController) DeletePlan(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid plan ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := sc.DB.Collection("subscription_plans").DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete subscription plan",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Subscription plan not found",
		})
	}

	_, _ = sc.DB.Collection("country_pricing").DeleteMany(ctx, bson.M{"planId": objID})

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Subscription plan deleted successfully",
	})
}

// GetCountryPricing lists the pricing rows of a plan within the caller's
// scope, optionally filtered by approval status
func (sc *SubscriptionController) GetCountryPricing(c echo.Context) error {
	admin := middleware.GetAdmin(c)

	planID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid plan ID",
		})
	}

	scope := utils.ResolveScope(admin)
	if !scope.HasAccess() {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Access denied: no country assigned to this admin",
		})
	}

	filter := bson.M{"planId": planID}
	if !scope.IsGlobal {
		filter["country"] = scope.RestrictedCountry
	}
	if status := c.QueryParam("status"); status != "" {
		filter["approvalStatus"] = status
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := sc.DB.Collection("country_pricing").Find(ctx, filter,
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve country pricing",
		})
	}
	defer cursor.Close(ctx)

	var rows []models.CountryPricing
	if err := cursor.All(ctx, &rows); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode country pricing",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Country pricing retrieved successfully",
		Data:    rows,
	})
}

// SubmitCountryPricing creates or resubmits a pricing row for a plan. New
// rows start pending; resubmitting a decided row resets it to pending and
// records the prior state in the audit trail.
func (sc *SubscriptionController) SubmitCountryPricing(c echo.Context) error {
	admin := middleware.GetAdmin(c)

	planID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid plan ID",
		})
	}

	var req models.CountryPricingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Country, price and currency are required",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := sc.DB.Collection("subscription_plans").CountDocuments(ctx, bson.M{"_id": planID})
	if err != nil || count == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Subscription plan not found",
		})
	}

	var existing *models.CountryPricing
	var existingRow models.CountryPricing
	err = sc.DB.Collection("country_pricing").FindOne(ctx, bson.M{
		"planId":  planID,
		"country": req.Country,
	}).Decode(&existingRow)
	if err == nil {
		existing = &existingRow
	} else if err != mongo.ErrNoDocuments {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to check existing pricing",
		})
	}

	// Editing an approved row is refused here; the console resubmits
	// through the dedicated resubmit action instead.
	if err := utils.CheckPricingSubmission(admin, req.Country, existing); err != nil {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: err.Error(),
		})
	}

	now := time.Now()
	if existing == nil {
		pricing := models.CountryPricing{
			PlanID:         planID,
			Country:        req.Country,
			Price:          req.Price,
			Currency:       req.Currency,
			ResponseLimit:  req.ResponseLimit,
			ApprovalStatus: models.VerificationPending,
			SubmittedBy:    admin.ID,
			SubmittedAt:    now,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		result, err := sc.DB.Collection("country_pricing").InsertOne(ctx, pricing)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to submit country pricing",
			})
		}
		pricing.ID = result.InsertedID.(primitive.ObjectID)
		sc.announceSubmission(admin, &pricing)
		return c.JSON(http.StatusCreated, models.Response{
			Status:  http.StatusCreated,
			Message: "Country pricing submitted for approval",
			Data:    pricing,
		})
	}

	// Rejected (or still-pending) row: resubmit in place
	sc.appendAudit(ctx, existing, "resubmitted", admin.ID, "")
	utils.ResubmitPricing(existing, req, admin, now)

	_, err = sc.DB.Collection("country_pricing").ReplaceOne(ctx, bson.M{"_id": existing.ID}, existing)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to resubmit country pricing",
		})
	}

	sc.announceSubmission(admin, existing)
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Country pricing resubmitted for approval",
		Data:    existing,
	})
}

// ResubmitCountryPricing resets an approved row to pending with new price
// data. The prior approval is preserved in the audit trail.
func (sc *SubscriptionController) ResubmitCountryPricing(c echo.Context) error {
	admin := middleware.GetAdmin(c)

	pricingID, err := primitive.ObjectIDFromHex(c.Param("pricingId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid pricing ID",
		})
	}

	var req models.CountryPricingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Country, price and currency are required",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var pricing models.CountryPricing
	if err := sc.DB.Collection("country_pricing").FindOne(ctx, bson.M{"_id": pricingID}).Decode(&pricing); err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Country pricing not found",
		})
	}

	if req.Country != pricing.Country {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Country of a pricing row cannot change on resubmission",
		})
	}

	// Resubmission is the sanctioned path for approved rows, so only the
	// actor checks from the submission rule apply here.
	if admin.Role != models.RoleSuperAdmin {
		scope := utils.ResolveScope(admin)
		if !scope.Allows(pricing.Country) {
			return c.JSON(http.StatusForbidden, models.Response{
				Status:  http.StatusForbidden,
				Message: "Cannot resubmit pricing for country " + pricing.Country,
			})
		}
		if !utils.HasCapability(admin, models.CapabilitySubscriptions) {
			return c.JSON(http.StatusForbidden, models.Response{
				Status:  http.StatusForbidden,
				Message: "subscriptionManagement permission is required",
			})
		}
	}

	sc.appendAudit(ctx, &pricing, "resubmitted", admin.ID, "")
	utils.ResubmitPricing(&pricing, req, admin, time.Now())

	if _, err := sc.DB.Collection("country_pricing").ReplaceOne(ctx, bson.M{"_id": pricing.ID}, pricing); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to resubmit country pricing",
		})
	}

	sc.announceSubmission(admin, &pricing)
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Country pricing resubmitted for approval",
		Data:    pricing,
	})
}

// DecideCountryPricing approves or rejects a pending pricing row. Super
// admin only; a rejected row may be approved directly in a later call, and
// every decision lands in the audit trail.
func (sc *SubscriptionController) DecideCountryPricing(c echo.Context) error {
	admin := middleware.GetAdmin(c)

	pricingID, err := primitive.ObjectIDFromHex(c.Param("pricingId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid pricing ID",
		})
	}

	var req models.PricingDecisionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Status must be approved or rejected",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var pricing models.CountryPricing
	if err := sc.DB.Collection("country_pricing").FindOne(ctx, bson.M{"_id": pricingID}).Decode(&pricing); err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Country pricing not found",
		})
	}

	if err := utils.ApplyPricingDecision(admin, &pricing, req.Status, req.Reason, time.Now()); err != nil {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: err.Error(),
		})
	}

	if _, err := sc.DB.Collection("country_pricing").ReplaceOne(ctx, bson.M{"_id": pricing.ID}, pricing); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to record pricing decision",
		})
	}

	sc.appendAudit(ctx, &pricing, req.Status, admin.ID, req.Reason)

	sc.Hub.Broadcast(ws.Event{
		Type:    ws.EventPricingDecided,
		Message: "Country pricing " + req.Status,
		Country: pricing.Country,
		Data: map[string]string{
			"pricingId": pricing.ID.Hex(),
			"planId":    pricing.PlanID.Hex(),
			"country":   pricing.Country,
			"status":    req.Status,
			"reason":    req.Reason,
			"actorId":   admin.ID.Hex(),
		},
	})

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Country pricing " + req.Status,
		Data:    pricing,
	})
}

// GetPricingAudit returns the decision history of one pricing row
func (sc *SubscriptionController) GetPricingAudit(c echo.Context) error {
	admin := middleware.GetAdmin(c)

	pricingID, err := primitive.ObjectIDFromHex(c.Param("pricingId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid pricing ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var pricing models.CountryPricing
	if err := sc.DB.Collection("country_pricing").FindOne(ctx, bson.M{"_id": pricingID}).Decode(&pricing); err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Country pricing not found",
		})
	}

	scope := utils.ResolveScope(admin)
	if !scope.Allows(pricing.Country) && !scope.IsGlobal {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Access denied: pricing belongs to another country",
		})
	}

	cursor, err := sc.DB.Collection("pricing_audit").Find(ctx,
		bson.M{"pricingId": pricingID},
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve pricing audit",
		})
	}
	defer cursor.Close(ctx)

	var entries []models.PricingAuditEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode pricing audit",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Pricing audit retrieved successfully",
		Data:    entries,
	})
}

func (sc *SubscriptionController) appendAudit(ctx context.Context, pricing *models.CountryPricing, action string, actorID primitive.ObjectID, reason string) {
	entry := models.PricingAuditEntry{
		PricingID: pricing.ID,
		PlanID:    pricing.PlanID,
		Country:   pricing.Country,
		Action:    action,
		ActorID:   actorID,
		Reason:    reason,
		Price:     pricing.Price,
		Currency:  pricing.Currency,
		CreatedAt: time.Now(),
	}
	if _, err := sc.DB.Collection("pricing_audit").InsertOne(ctx, entry); err != nil {
		// The decision itself already persisted; audit loss is logged by
		// the driver, not surfaced to the admin.
		return
	}
}

func (sc *SubscriptionController) announceSubmission(admin *models.AdminUser, pricing *models.CountryPricing) {
	sc.Hub.Broadcast(ws.Event{
		Type:    ws.EventPricingSubmitted,
		Message: "Country pricing submitted for " + pricing.Country,
		Country: pricing.Country,
		Data: map[string]string{
			"pricingId": pricing.ID.Hex(),
			"planId":    pricing.PlanID.Hex(),
			"country":   pricing.Country,
			"actorId":   admin.ID.Hex(),
		},
	})
	go utils.NotifySuperAdminsOfSubmission(sc.DB,
		"Pricing submission for "+pricing.Country,
		"A country pricing submission is waiting for review.",
		map[string]interface{}{
			"pricingId": pricing.ID.Hex(),
			"planId":    pricing.PlanID.Hex(),
			"country":   pricing.Country,
		})
}
