// utils/access.go
package utils

import (
	"github.com/velomart/admin_backend/models"
)

// superAdminOnly lists capabilities that stay super-admin-exclusive even
// when the delegable permission flag is set for a country admin. Explicit
// configuration, not inferred from any one capability's behavior.
var superAdminOnly = map[models.Capability]bool{
	models.CapabilityVehicleManagement: true,
	models.CapabilityAdminUsers:        true,
}

// ResolveScope converts a principal into its effective data-visibility
// scope. A country admin without an assigned country gets a no-access
// scope; it must never silently widen to global.
func ResolveScope(admin *models.AdminUser) models.AccessScope {
	if admin == nil {
		return models.NoAccessScope()
	}
	switch admin.Role {
	case models.RoleSuperAdmin:
		return models.GlobalScope()
	case models.RoleCountryAdmin:
		if admin.Country == "" {
			return models.NoAccessScope()
		}
		return models.CountryScope(admin.Country)
	default:
		return models.NoAccessScope()
	}
}

// HasCapability answers whether the principal may use the named
// capability. Super admins pass every check; country admins need the
// explicit permission flag, and capabilities in the superAdminOnly set
// are denied to them regardless of the flag.
func HasCapability(admin *models.AdminUser, cap models.Capability) bool {
	if admin == nil {
		return false
	}
	if admin.Role == models.RoleSuperAdmin {
		return true
	}
	if superAdminOnly[cap] {
		return false
	}
	return admin.Permissions.Granted(cap)
}

// CanManageVehicles reports whether the principal may edit the vehicle
// type catalog. Catalog editing is super-admin-exclusive; the delegable
// vehicleManagement flag only covers per-country enablement, which is a
// distinct check (CanToggleVehicleActivation).
func CanManageVehicles(admin *models.AdminUser) bool {
	return admin != nil && admin.Role == models.RoleSuperAdmin
}

// CanToggleVehicleActivation reports whether the principal may toggle a
// vehicle type's enablement in the given country.
func CanToggleVehicleActivation(admin *models.AdminUser, country string) bool {
	if admin == nil {
		return false
	}
	if admin.Role == models.RoleSuperAdmin {
		return true
	}
	return admin.Permissions.Granted(models.CapabilityVehicleManagement) &&
		ResolveScope(admin).Allows(country)
}
