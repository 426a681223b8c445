package websocket

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Origin restrictions are handled by the CORS layer; the websocket
		// endpoint sits behind JWT auth.
		return true
	},
}

// HandleWebSocket upgrades an authenticated admin request to a live event
// feed connection. The caller resolves the admin from the JWT before
// reaching here.
func HandleWebSocket(c echo.Context, hub *Hub, adminID primitive.ObjectID, role, country string) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := &Client{
		AdminID: adminID,
		Role:    role,
		Country: country,
		Conn:    conn,
	}

	hub.register <- client

	client.WriteJSON(Event{
		Type:    "connected",
		Message: "Live event feed connected",
	})

	// Read loop exists to detect disconnects; the feed is push-only.
	go func() {
		defer func() {
			hub.unregister <- client
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()

	return nil
}
