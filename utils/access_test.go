package utils

import (
	"testing"

	"github.com/velomart/admin_backend/models"
)

func TestResolveScopeSuperAdmin(t *testing.T) {
	// Country must be ignored for super admins, set or not.
	for _, country := range []string{"", "LK", "IN"} {
		admin := &models.AdminUser{Role: models.RoleSuperAdmin, Country: country}
		scope := ResolveScope(admin)
		if !scope.IsGlobal {
			t.Errorf("country %q: expected global scope", country)
		}
		if !scope.HasAccess() {
			t.Errorf("country %q: expected access", country)
		}
		if !scope.Allows("XX") {
			t.Errorf("country %q: global scope should allow any country", country)
		}
	}
}

func TestResolveScopeCountryAdmin(t *testing.T) {
	admin := &models.AdminUser{Role: models.RoleCountryAdmin, Country: "LK"}
	scope := ResolveScope(admin)
	if scope.IsGlobal {
		t.Fatal("country admin must not get a global scope")
	}
	if scope.RestrictedCountry != "LK" {
		t.Fatalf("expected restriction to LK, got %q", scope.RestrictedCountry)
	}
	if !scope.Allows("LK") || scope.Allows("IN") {
		t.Fatal("scope must allow LK only")
	}
}

func TestResolveScopeCountryAdminWithoutCountry(t *testing.T) {
	// Missing country must deny access, never default to global.
	admin := &models.AdminUser{Role: models.RoleCountryAdmin}
	scope := ResolveScope(admin)
	if scope.HasAccess() {
		t.Fatal("country admin without country must have no access")
	}
	if scope.IsGlobal {
		t.Fatal("no-access scope must not be global")
	}
	if scope.Allows("LK") || scope.Allows("") {
		t.Fatal("no-access scope must not allow anything")
	}
}

func TestResolveScopeUnknownRole(t *testing.T) {
	if ResolveScope(&models.AdminUser{Role: "viewer", Country: "LK"}).HasAccess() {
		t.Fatal("unknown role must have no access")
	}
	if ResolveScope(nil).HasAccess() {
		t.Fatal("nil principal must have no access")
	}
}

func TestHasCapability(t *testing.T) {
	superAdmin := &models.AdminUser{Role: models.RoleSuperAdmin}
	countryAdmin := &models.AdminUser{
		Role:    models.RoleCountryAdmin,
		Country: "LK",
		Permissions: models.Permissions{
			BusinessManagement: true,
			DriverManagement:   true,
		},
	}

	cases := []struct {
		name  string
		admin *models.AdminUser
		cap   models.Capability
		want  bool
	}{
		{"super admin any capability", superAdmin, models.CapabilityPaymentMethods, true},
		{"super admin unknown capability", superAdmin, models.Capability("doesNotExist"), true},
		{"granted flag", countryAdmin, models.CapabilityBusinessManagement, true},
		{"absent flag denied", countryAdmin, models.CapabilityPaymentMethods, false},
		{"unknown capability denied", countryAdmin, models.Capability("doesNotExist"), false},
		{"nil principal denied", nil, models.CapabilityBusinessManagement, false},
	}
	for _, tc := range cases {
		if got := HasCapability(tc.admin, tc.cap); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestSuperAdminOnlyCapabilities(t *testing.T) {
	// The delegated flag must not open super-admin-exclusive capabilities.
	countryAdmin := &models.AdminUser{
		Role:    models.RoleCountryAdmin,
		Country: "LK",
		Permissions: models.Permissions{
			VehicleManagement:    true,
			AdminUsersManagement: true,
		},
	}
	if HasCapability(countryAdmin, models.CapabilityVehicleManagement) {
		t.Error("vehicleManagement must stay super-admin-exclusive")
	}
	if HasCapability(countryAdmin, models.CapabilityAdminUsers) {
		t.Error("adminUsersManagement must stay super-admin-exclusive")
	}
}

func TestCanManageVehicles(t *testing.T) {
	superAdmin := &models.AdminUser{Role: models.RoleSuperAdmin}
	countryAdmin := &models.AdminUser{
		Role:        models.RoleCountryAdmin,
		Country:     "LK",
		Permissions: models.Permissions{VehicleManagement: true},
	}
	if !CanManageVehicles(superAdmin) {
		t.Error("super admin must manage the vehicle catalog")
	}
	if CanManageVehicles(countryAdmin) {
		t.Error("country admin must not manage the vehicle catalog even with the flag")
	}
}

func TestCanToggleVehicleActivation(t *testing.T) {
	superAdmin := &models.AdminUser{Role: models.RoleSuperAdmin}
	withFlag := &models.AdminUser{
		Role:        models.RoleCountryAdmin,
		Country:     "LK",
		Permissions: models.Permissions{VehicleManagement: true},
	}
	withoutFlag := &models.AdminUser{Role: models.RoleCountryAdmin, Country: "LK"}

	if !CanToggleVehicleActivation(superAdmin, "IN") {
		t.Error("super admin may toggle any country")
	}
	if !CanToggleVehicleActivation(withFlag, "LK") {
		t.Error("country admin with the flag may toggle their own country")
	}
	if CanToggleVehicleActivation(withFlag, "IN") {
		t.Error("country admin must not toggle another country")
	}
	if CanToggleVehicleActivation(withoutFlag, "LK") {
		t.Error("flag is required for country admins")
	}
}
