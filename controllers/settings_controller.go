// controllers/settings_controller.go
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
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/velomart/admin_backend/middleware"
	"github.com/velomart/admin_backend/models"
	"github.com/velomart/admin_backend/repositories"
	"github.com/velomart/admin_backend/utils"
)

// SettingsController manages the country-scoped settings collections:
// payment methods and legal documents.
type SettingsController struct {
	DB   *mongo.Database
	Repo *repositories.ScopedRepository
}

func NewSettingsController(db *mongo.Database, repo *repositories.ScopedRepository) *SettingsController {
	return &SettingsController{DB: db, Repo: repo}
}

// checkCountryWrite validates that the caller may write settings for the
// given country
func (sc *SettingsController) checkCountryWrite(c echo.Context, country string) error {
	admin := middleware.GetAdmin(c)
	scope := utils.ResolveScope(admin)
	if !scope.Allows(country) {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Access denied: cannot manage settings for country " + country,
		})
	}
	return nil
}

// GetPaymentMethods lists payment methods in the caller's scope
func (sc *SettingsController) GetPaymentMethods(c echo.Context) error {
	admin := middleware.GetAdmin(c)

	docs, err := sc.Repo.GetFilteredData(c.Request().Context(), "payment_methods", admin)
	if err != nil {
		if errors.Is(err, repositories.ErrNoAccess) {
			return c.JSON(http.StatusForbidden, models.Response{
				Status:  http.StatusForbidden,
				Message: "Access denied: no country assigned to this admin",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve payment methods",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payment methods retrieved successfully",
		Data:    docs,
	})
}

// CreatePaymentMethod adds a payment method for a country
func (sc *SettingsController) CreatePaymentMethod(c echo.Context) error {
	var req struct {
		Name     string `json:"name" validate:"required"`
		Provider string `json:"provider"`
		Country  string `json:"country" validate:"required,len=2"`
		IsActive bool   `json:"isActive"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Name and a two-letter country code are required",
		})
	}
	if errResp := sc.checkCountryWrite(c, req.Country); errResp != nil {
		return errResp
	}

	method := models.PaymentMethod{
		Name:      req.Name,
		Provider:  req.Provider,
		Country:   req.Country,
		IsActive:  req.IsActive,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := sc.DB.Collection("payment_methods").InsertOne(ctx, method)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create payment method",
		})
	}
	method.ID = result.InsertedID.(primitive.ObjectID)

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Payment method created successfully",
		Data:    method,
	})
}

// UpdatePaymentMethod edits a payment method within the caller's scope
func (sc *SettingsController) UpdatePaymentMethod(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid payment method ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var method models.PaymentMethod
	if err := sc.DB.Collection("payment_methods").FindOne(ctx, bson.M{"_id": objID}).Decode(&method); err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Payment method not found",
		})
	}
	if errResp := sc.checkCountryWrite(c, method.Country); errResp != nil {
		return errResp
	}

	var req struct {
		Name     string `json:"name"`
		Provider string `json:"provider"`
		IsActive *bool  `json:"isActive"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.Name != "" {
		update["name"] = req.Name
	}
	if req.Provider != "" {
		update["provider"] = req.Provider
	}
	if req.IsActive != nil {
		update["isActive"] = *req.IsActive
	}

	if _, err := sc.DB.Collection("payment_methods").UpdateOne(ctx,
		bson.M{"_id": objID}, bson.M{"$set": update}); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update payment method",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payment method updated successfully",
	})
}

// DeletePaymentMethod removes a payment method within the caller's scope
func (sc *SettingsController) DeletePaymentMethod(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid payment method ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var method models.PaymentMethod
	if err := sc.DB.Collection("payment_methods").FindOne(ctx, bson.M{"_id": objID}).Decode(&method); err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Payment method not found",
		})
	}
	if errResp := sc.checkCountryWrite(c, method.Country); errResp != nil {
		return errResp
	}

	if _, err := sc.DB.Collection("payment_methods").DeleteOne(ctx, bson.M{"_id": objID}); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete payment method",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Payment method deleted successfully",
	})
}

// GetLegalDocuments lists legal documents in the caller's scope
func (sc *SettingsController) GetLegalDocuments(c echo.Context) error {
	admin := middleware.GetAdmin(c)

	docs, err := sc.Repo.GetFilteredData(c.Request().Context(), "legal_documents", admin)
	if err != nil {
		if errors.Is(err, repositories.ErrNoAccess) {
			return c.JSON(http.StatusForbidden, models.Response{
				Status:  http.StatusForbidden,
				Message: "Access denied: no country assigned to this admin",
			})
		}
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve legal documents",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Legal documents retrieved successfully",
		Data:    docs,
	})
}

// UpsertLegalDocument creates or updates a legal page for a country,
// keyed by slug
func (sc *SettingsController) UpsertLegalDocument(c echo.Context) error {
	var req struct {
		Title    string `json:"title" validate:"required"`
		Slug     string `json:"slug" validate:"required"`
		Content  string `json:"content" validate:"required"`
		Country  string `json:"country" validate:"required,len=2"`
		IsActive bool   `json:"isActive"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Title, slug, content and a two-letter country code are required",
		})
	}
	if errResp := sc.checkCountryWrite(c, req.Country); errResp != nil {
		return errResp
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{"slug": req.Slug, "country": req.Country}
	update := bson.M{
		"$set": bson.M{
			"title":     req.Title,
			"content":   req.Content,
			"isActive":  req.IsActive,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"slug":      req.Slug,
			"country":   req.Country,
			"createdAt": now,
		},
	}

	if _, err := sc.DB.Collection("legal_documents").UpdateOne(ctx, filter, update,
		options.Update().SetUpsert(true)); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to save legal document",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Legal document saved successfully",
	})
}

// DeleteLegalDocument removes a legal page within the caller's scope
func (sc *SettingsController) DeleteLegalDocument(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid legal document ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var doc models.LegalDocument
	if err := sc.DB.Collection("legal_documents").FindOne(ctx, bson.M{"_id": objID}).Decode(&doc); err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Legal document not found",
		})
	}
	if errResp := sc.checkCountryWrite(c, doc.Country); errResp != nil {
		return errResp
	}

	if _, err := sc.DB.Collection("legal_documents").DeleteOne(ctx, bson.M{"_id": objID}); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete legal document",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Legal document deleted successfully",
	})
}
