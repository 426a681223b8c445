package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/velomart/admin_backend/repositories"
	"github.com/velomart/admin_backend/websocket"
)

// SetupRoutes wires the console API: the scoped repository over the
// primary Mongo store and the legacy REST store, then every route group.
func SetupRoutes(e *echo.Echo, db *mongo.Database, hub *websocket.Hub) {
	primary := &repositories.MongoStore{DB: db}
	legacy := repositories.NewRESTStore()
	resolver := repositories.NewUserCountryResolver(db)
	repo := repositories.NewScopedRepository(primary, legacy, resolver)

	RegisterAdminRoutes(e, db, repo, hub)
	RegisterFileRoutes(e)
}
