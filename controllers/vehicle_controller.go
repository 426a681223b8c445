// controllers/vehicle_controller.go
package controllers

import (
	"context"
	"io"
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

type VehicleController struct {
	DB  *mongo.Database
	Hub *ws.Hub
}

func NewVehicleController(db *mongo.Database, hub *ws.Hub) *VehicleController {
	return &VehicleController{DB: db, Hub: hub}
}

// GetVehicleTypes lists the global vehicle catalog. For country admins the
// response includes the enablement flag of their own country.
func (vc *VehicleController) GetVehicleTypes(c echo.Context) error {
	admin := middleware.GetAdmin(c)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := vc.DB.Collection("vehicle_types").Find(ctx, bson.M{},
		options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to retrieve vehicle types",
		})
	}
	defer cursor.Close(ctx)

	var vehicleTypes []models.VehicleType
	if err := cursor.All(ctx, &vehicleTypes); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to decode vehicle types",
		})
	}

	country := c.QueryParam("country")
	scope := utils.ResolveScope(admin)
	if !scope.IsGlobal {
		country = scope.RestrictedCountry
	}

	enabled := map[string]bool{}
	if country != "" {
		actCursor, err := vc.DB.Collection("country_vehicle_activations").Find(ctx, bson.M{"country": country})
		if err == nil {
			var activations []models.CountryVehicleActivation
			if err := actCursor.All(ctx, &activations); err == nil {
				for _, a := range activations {
					enabled[a.VehicleTypeID.Hex()] = a.Enabled
				}
			}
		}
	}

	items := make([]map[string]interface{}, 0, len(vehicleTypes))
	for _, vt := range vehicleTypes {
		item := map[string]interface{}{
			"vehicleType": vt,
		}
		if country != "" {
			item["enabledInCountry"] = enabled[vt.ID.Hex()]
		}
		items = append(items, item)
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Vehicle types retrieved successfully",
		Data:    items,
	})
}

// CreateVehicleType adds a catalog entry with an optional icon upload.
// Super admin only.
func (vc *VehicleController) CreateVehicleType(c echo.Context) error {
	admin := middleware.GetAdmin(c)
	if !utils.CanManageVehicles(admin) {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Only a super admin can edit the vehicle catalog",
		})
	}

	var req models.VehicleTypeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Name and a valid category are required",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	vehicleType := models.VehicleType{
		Name:      req.Name,
		Category:  req.Category,
		Capacity:  req.Capacity,
		IsActive:  req.IsActive,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	result, err := vc.DB.Collection("vehicle_types").InsertOne(ctx, vehicleType)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create vehicle type",
		})
	}
	vehicleType.ID = result.InsertedID.(primitive.ObjectID)

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Vehicle type created successfully",
		Data:    vehicleType,
	})
}

// UploadVehicleIcon attaches an icon image to a vehicle type. Super admin
// only.
func (vc *VehicleController) UploadVehicleIcon(c echo.Context) error {
	admin := middleware.GetAdmin(c)
	if !utils.CanManageVehicles(admin) {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Only a super admin can edit the vehicle catalog",
		})
	}

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid vehicle type ID",
		})
	}

	file, err := c.FormFile("icon")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Icon file is required",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to read icon file",
		})
	}
	defer src.Close()

	fileData, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to read icon file",
		})
	}

	iconURL, err := utils.UploadFileToPath(fileData, file.Filename, "image", "vehicles")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Icon upload failed: " + err.Error(),
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := vc.DB.Collection("vehicle_types").UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"iconUrl": iconURL, "updatedAt": time.Now()}})
	if err != nil || result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Vehicle type not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Vehicle icon uploaded successfully",
		Data:    map[string]string{"iconUrl": iconURL},
	})
}

// UpdateVehicleType edits a catalog entry. Super admin only.
func (vc *VehicleController) UpdateVehicleType(c echo.Context) error {
	admin := middleware.GetAdmin(c)
	if !utils.CanManageVehicles(admin) {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Only a super admin can edit the vehicle catalog",
		})
	}

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid vehicle type ID",
		})
	}

	var req models.VehicleTypeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Name and a valid category are required",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := vc.DB.Collection("vehicle_types").UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{
			"name":      req.Name,
			"category":  req.Category,
			"capacity":  req.Capacity,
			"isActive":  req.IsActive,
			"updatedAt": time.Now(),
		}})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update vehicle type",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Vehicle type not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Vehicle type updated successfully",
	})
}

// DeleteVehicleType removes a catalog entry and its per-country
// activations. Super admin only.
func (vc *VehicleController) DeleteVehicleType(c echo.Context) error {
	admin := middleware.GetAdmin(c)
	if !utils.CanManageVehicles(admin) {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Only a super admin can edit the vehicle catalog",
		})
	}

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid vehicle type ID",
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := vc.DB.Collection("vehicle_types").DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete vehicle type",
		})
	}
	if result.DeletedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Vehicle type not found",
		})
	}

	_, _ = vc.DB.Collection("country_vehicle_activations").DeleteMany(ctx, bson.M{"vehicleTypeId": objID})

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Vehicle type deleted successfully",
	})
}

// ToggleActivation enables or disables a vehicle type in one country.
// Super admins may toggle anywhere; country admins need the
// vehicleManagement flag and may only toggle their own country.
func (vc *VehicleController) ToggleActivation(c echo.Context) error {
	admin := middleware.GetAdmin(c)

	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid vehicle type ID",
		})
	}

	var req struct {
		Country string `json:"country" validate:"required,len=2"`
		Enabled bool   `json:"enabled"`
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
			Message: "A two-letter country code is required",
		})
	}

	if !utils.CanToggleVehicleActivation(admin, req.Country) {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Access denied: cannot toggle vehicle activation for country " + req.Country,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := vc.DB.Collection("vehicle_types").CountDocuments(ctx, bson.M{"_id": objID})
	if err != nil || count == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Vehicle type not found",
		})
	}

	now := time.Now()
	_, err = vc.DB.Collection("country_vehicle_activations").UpdateOne(ctx,
		bson.M{"vehicleTypeId": objID, "country": req.Country},
		bson.M{
			"$set": bson.M{
				"enabled":   req.Enabled,
				"updatedBy": admin.ID,
				"updatedAt": now,
			},
			"$setOnInsert": bson.M{"createdAt": now},
		},
		options.Update().SetUpsert(true))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update vehicle activation",
		})
	}

	vc.Hub.Broadcast(ws.Event{
		Type:    ws.EventVehicleActivation,
		Message: "Vehicle activation changed",
		Country: req.Country,
		Data: map[string]string{
			"vehicleTypeId": objID.Hex(),
			"country":       req.Country,
			"enabled":       map[bool]string{true: "true", false: "false"}[req.Enabled],
			"actorId":       admin.ID.Hex(),
		},
	})

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Vehicle activation updated successfully",
	})
}
