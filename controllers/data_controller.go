// controllers/data_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/velomart/admin_backend/middleware"
	"github.com/velomart/admin_backend/models"
	"github.com/velomart/admin_backend/repositories"
)

// DataController serves the generic scoped list endpoint backing the
// console's data tables.
type DataController struct {
	Repo *repositories.ScopedRepository
}

func NewDataController(repo *repositories.ScopedRepository) *DataController {
	return &DataController{Repo: repo}
}

// GetCollection returns an allow-listed collection filtered to the
// caller's scope, optionally restricted by a status query parameter.
func (dc *DataController) GetCollection(c echo.Context) error {
	admin := middleware.GetAdmin(c)
	if admin == nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Authentication required",
		})
	}

	collection := c.Param("collection")
	status := c.QueryParam("status")

	docs, err := dc.Repo.GetFilteredDataWithStatus(c.Request().Context(), collection, admin, status)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrUnsupportedCollection):
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Unknown collection: " + collection,
			})
		case errors.Is(err, repositories.ErrNoAccess):
			return c.JSON(http.StatusForbidden, models.Response{
				Status:  http.StatusForbidden,
				Message: "Access denied: no country assigned to this admin",
			})
		default:
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to retrieve data",
			})
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Data retrieved successfully",
		Data: map[string]interface{}{
			"collection": collection,
			"count":      len(docs),
			"items":      docs,
		},
	})
}
