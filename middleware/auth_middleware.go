// middleware/auth_middleware.go
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/velomart/admin_backend/models"
	"github.com/velomart/admin_backend/utils"
)

// RequireRole checks if the authenticated admin has one of the allowed roles
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			admin := GetAdmin(c)
			if admin == nil {
				return c.JSON(http.StatusUnauthorized, models.Response{
					Status:  http.StatusUnauthorized,
					Message: "Authentication failed: admin principal not found",
				})
			}

			for _, role := range allowedRoles {
				if admin.Role == role {
					return next(c)
				}
			}

			c.Logger().Errorf("Access denied for role: %s, allowed roles: %v", admin.Role, allowedRoles)
			return c.JSON(http.StatusForbidden, models.Response{
				Status:  http.StatusForbidden,
				Message: "Access denied for your role",
			})
		}
	}
}

// RequireCapability gates a route on a delegable capability. Controls are
// hidden from unauthorized admins in the console, but the check runs here
// too in case a control renders before scope resolves.
func RequireCapability(cap models.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			admin := GetAdmin(c)
			if admin == nil {
				return c.JSON(http.StatusUnauthorized, models.Response{
					Status:  http.StatusUnauthorized,
					Message: "Authentication failed: admin principal not found",
				})
			}

			if !utils.HasCapability(admin, cap) {
				return c.JSON(http.StatusForbidden, models.Response{
					Status:  http.StatusForbidden,
					Message: "Access denied: insufficient permissions",
				})
			}
			return next(c)
		}
	}
}

// RequireScope blocks admins whose resolved scope grants no visibility
// (a country admin missing its country assignment).
func RequireScope() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			admin := GetAdmin(c)
			if admin == nil {
				return c.JSON(http.StatusUnauthorized, models.Response{
					Status:  http.StatusUnauthorized,
					Message: "Authentication failed: admin principal not found",
				})
			}
			if !utils.ResolveScope(admin).HasAccess() {
				return c.JSON(http.StatusForbidden, models.Response{
					Status:  http.StatusForbidden,
					Message: "Access denied: no country assigned to this admin",
				})
			}
			return next(c)
		}
	}
}
