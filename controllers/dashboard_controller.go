// controllers/dashboard_controller.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/velomart/admin_backend/middleware"
	"github.com/velomart/admin_backend/models"
	"github.com/velomart/admin_backend/utils"
)

// DashboardController aggregates per-country counts for the console
// landing page.
type DashboardController struct {
	DB *mongo.Database
}

func NewDashboardController(db *mongo.Database) *DashboardController {
	return &DashboardController{DB: db}
}

// GetStats returns counts scoped to the caller: pending verifications,
// pending pricing submissions, users, and active price listings. Country
// admins see their country only.
func (dc *DashboardController) GetStats(c echo.Context) error {
	admin := middleware.GetAdmin(c)
	scope := utils.ResolveScope(admin)
	if !scope.HasAccess() {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Access denied: no country assigned to this admin",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	countryFilter := func(extra bson.M) bson.M {
		filter := bson.M{}
		for k, v := range extra {
			filter[k] = v
		}
		if !scope.IsGlobal {
			filter["country"] = scope.RestrictedCountry
		}
		return filter
	}

	count := func(collection string, filter bson.M) int64 {
		n, err := dc.DB.Collection(collection).CountDocuments(ctx, filter)
		if err != nil {
			return 0
		}
		return n
	}

	stats := map[string]interface{}{
		"pendingBusinessVerifications": count("new_business_verifications",
			countryFilter(bson.M{"status": models.VerificationPending})),
		"pendingDriverVerifications": count("driver_verification",
			countryFilter(bson.M{"status": models.VerificationPending})),
		"pendingPricingSubmissions": count("country_pricing",
			countryFilter(bson.M{"approvalStatus": models.VerificationPending})),
		"totalUsers":         count("users", countryFilter(nil)),
		"activePriceListings": count("price_listings",
			countryFilter(bson.M{"status": "active"})),
	}

	if scope.IsGlobal {
		stats["totalAdminUsers"] = count("admin_users", bson.M{})
		stats["countryBreakdown"] = dc.countryBreakdown(ctx)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Dashboard stats retrieved successfully",
		Data:    stats,
	})
}

// countryBreakdown groups user counts by country for the global view
func (dc *DashboardController) countryBreakdown(ctx context.Context) []bson.M {
	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$country", "users": bson.M{"$sum": 1}}},
		{"$sort": bson.M{"users": -1}},
	}
	cursor, err := dc.DB.Collection("users").Aggregate(ctx, pipeline)
	if err != nil {
		return nil
	}
	defer cursor.Close(ctx)

	var breakdown []bson.M
	if err := cursor.All(ctx, &breakdown); err != nil {
		return nil
	}
	return breakdown
}
