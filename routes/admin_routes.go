package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/velomart/admin_backend/controllers"
	"github.com/velomart/admin_backend/middleware"
	"github.com/velomart/admin_backend/models"
	"github.com/velomart/admin_backend/repositories"
	"github.com/velomart/admin_backend/websocket"
)

// RegisterAdminRoutes sets up all admin console routes
func RegisterAdminRoutes(e *echo.Echo, db *mongo.Database, repo *repositories.ScopedRepository, hub *websocket.Hub) {
	adminController := controllers.NewAdminController(db)
	dataController := controllers.NewDataController(repo)
	businessController := controllers.NewBusinessVerificationController(db, repo, hub)
	driverController := controllers.NewDriverVerificationController(db, repo, hub)
	vehicleController := controllers.NewVehicleController(db, hub)
	categoryController := controllers.NewCategoryController(db)
	productController := controllers.NewProductController(db)
	subscriptionController := controllers.NewSubscriptionController(db, hub)
	settingsController := controllers.NewSettingsController(db, repo)
	dashboardController := controllers.NewDashboardController(db)
	listingController := controllers.NewListingController(db)

	admin := e.Group("/api/admin")

	// Public routes (no auth required)
	admin.POST("/login", adminController.Login)
	admin.POST("/forgot-password", adminController.ForgotPassword)
	admin.POST("/verify-otp-reset", adminController.ResetPassword)

	// Protected routes (require admin authentication)
	protected := admin.Group("")
	protected.Use(middleware.JWTMiddleware())
	protected.Use(middleware.LoadAdmin(db))

	protected.GET("/profile", adminController.GetProfile)
	protected.PUT("/fcm-token", adminController.UpdateFCMToken)
	protected.GET("/dashboard", dashboardController.GetStats)

	// Live event feed
	protected.GET("/ws", func(c echo.Context) error {
		a := middleware.GetAdmin(c)
		if a == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}
		return websocket.HandleWebSocket(c, hub, a.ID, a.Role, a.Country)
	})

	// Generic scoped data tables
	protected.GET("/data/:collection", dataController.GetCollection)

	// Admin user management: super admin only
	adminUsers := protected.Group("/admin-users")
	adminUsers.Use(middleware.RequireRole(models.RoleSuperAdmin))
	adminUsers.POST("", adminController.CreateAdminUser)
	adminUsers.GET("", adminController.GetAdminUsers)
	adminUsers.PUT("/:id", adminController.UpdateAdminUser)
	adminUsers.DELETE("/:id", adminController.DeleteAdminUser)

	// Business verifications
	business := protected.Group("/business-verifications")
	business.Use(middleware.RequireCapability(models.CapabilityBusinessManagement))
	business.GET("", businessController.GetVerifications)
	business.GET("/:id", businessController.GetVerification)
	business.PUT("/:id/documents/:slot", businessController.ReviewDocument)
	business.POST("/:id/approve", businessController.Approve)
	business.POST("/:id/reject", businessController.Reject)
	business.POST("/:id/reopen", businessController.Reopen)

	// Driver verifications
	driver := protected.Group("/driver-verifications")
	driver.Use(middleware.RequireCapability(models.CapabilityDriverManagement))
	driver.GET("", driverController.GetVerifications)
	driver.GET("/:id", driverController.GetVerification)
	driver.PUT("/:id/documents/:slot", driverController.ReviewDocument)
	driver.POST("/:id/approve", driverController.Approve)
	driver.POST("/:id/reject", driverController.Reject)
	driver.POST("/:id/reopen", driverController.Reopen)

	// Vehicle catalog: reads for everyone, writes checked in the controller
	protected.GET("/vehicle-types", vehicleController.GetVehicleTypes)
	protected.POST("/vehicle-types", vehicleController.CreateVehicleType)
	protected.PUT("/vehicle-types/:id", vehicleController.UpdateVehicleType)
	protected.DELETE("/vehicle-types/:id", vehicleController.DeleteVehicleType)
	protected.POST("/vehicle-types/:id/icon", vehicleController.UploadVehicleIcon)
	protected.PUT("/vehicle-types/:id/activation", vehicleController.ToggleActivation)

	// Global catalog: super admin writes, shared reads
	protected.GET("/categories", categoryController.GetCategories)
	protected.GET("/subcategories", categoryController.GetSubcategories)
	protected.GET("/products", productController.GetProducts)
	protected.GET("/product-variables", productController.GetProductVariables)

	catalog := protected.Group("")
	catalog.Use(middleware.RequireRole(models.RoleSuperAdmin))
	catalog.POST("/categories", categoryController.CreateCategory)
	catalog.PUT("/categories/:id", categoryController.UpdateCategory)
	catalog.DELETE("/categories/:id", categoryController.DeleteCategory)
	catalog.POST("/subcategories", categoryController.CreateSubcategory)
	catalog.DELETE("/subcategories/:id", categoryController.DeleteSubcategory)
	catalog.DELETE("/price-listings/:id", listingController.DeletePriceListing)
	catalog.POST("/products", productController.CreateProduct)
	catalog.PUT("/products/:id", productController.UpdateProduct)
	catalog.DELETE("/products/:id", productController.DeleteProduct)
	catalog.POST("/product-variables", productController.CreateProductVariable)
	catalog.DELETE("/product-variables/:id", productController.DeleteProductVariable)

	// Subscription plans and country pricing
	subs := protected.Group("/subscription-plans")
	subs.GET("", subscriptionController.GetPlans)
	subs.GET("/:id/pricing", subscriptionController.GetCountryPricing)

	subsWrite := subs.Group("")
	subsWrite.Use(middleware.RequireRole(models.RoleSuperAdmin))
	subsWrite.POST("", subscriptionController.CreatePlan)
	subsWrite.PUT("/:id", subscriptionController.UpdatePlan)
	subsWrite.DELETE("/:id", subscriptionController.DeletePlan)

	pricing := protected.Group("")
	pricing.Use(middleware.RequireCapability(models.CapabilitySubscriptions))
	pricing.POST("/subscription-plans/:id/pricing", subscriptionController.SubmitCountryPricing)
	pricing.PUT("/pricing/:pricingId/resubmit", subscriptionController.ResubmitCountryPricing)
	pricing.GET("/pricing/:pricingId/audit", subscriptionController.GetPricingAudit)

	decide := protected.Group("")
	decide.Use(middleware.RequireRole(models.RoleSuperAdmin))
	decide.PUT("/pricing/:pricingId/decision", subscriptionController.DecideCountryPricing)

	// Country settings
	payments := protected.Group("/payment-methods")
	payments.Use(middleware.RequireCapability(models.CapabilityPaymentMethods))
	payments.GET("", settingsController.GetPaymentMethods)
	payments.POST("", settingsController.CreatePaymentMethod)
	payments.PUT("/:id", settingsController.UpdatePaymentMethod)
	payments.DELETE("/:id", settingsController.DeletePaymentMethod)

	legal := protected.Group("/legal-documents")
	legal.Use(middleware.RequireCapability(models.CapabilityLegalDocuments))
	legal.GET("", settingsController.GetLegalDocuments)
	legal.PUT("", settingsController.UpsertLegalDocument)
	legal.DELETE("/:id", settingsController.DeleteLegalDocument)
}
