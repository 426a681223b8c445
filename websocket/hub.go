package websocket

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event types pushed to connected console sessions
const (
	EventVerificationSubmitted = "verification_submitted"
	EventVerificationDecided   = "verification_decided"
	EventPricingSubmitted      = "pricing_submitted"
	EventPricingDecided        = "pricing_decided"
	EventVehicleActivation     = "vehicle_activation"
)

// Event represents a message sent over WebSocket to admin consoles
type Event struct {
	Type    string      `json:"type"`
	Message string      `json:"message"`
	Country string      `json:"country,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Client represents a connected admin console session
type Client struct {
	AdminID primitive.ObjectID
	Role    string
	Country string
	Conn    *websocket.Conn

	mu sync.Mutex
}

// WriteJSON serializes writes so concurrent broadcasts never interleave
// frames on the same connection.
func (c *Client) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteJSON(v)
}

// Hub maintains the set of active admin sessions and broadcasts events
type Hub struct {
	clients    map[primitive.ObjectID]*Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[primitive.ObjectID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			// A newer session for the same admin replaces the old one
			if existing, ok := h.clients[client.AdminID]; ok {
				existing.Conn.Close()
			}
			h.clients[client.AdminID] = client
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if current, ok := h.clients[client.AdminID]; ok && current == client {
				delete(h.clients, client.AdminID)
			}
			client.Conn.Close()
			h.mu.Unlock()
		}
	}
}

// SendToAdmin sends an event to a specific admin session
func (h *Hub) SendToAdmin(adminID primitive.ObjectID, event Event) error {
	h.mu.RLock()
	client, ok := h.clients[adminID]
	h.mu.RUnlock()

	if !ok {
		return fmt.Errorf("admin not connected")
	}

	return client.WriteJSON(event)
}

// Broadcast delivers an event to every session allowed to see it. Super
// admins receive everything; country admins only receive events for their
// own country. Events with no country go to everyone.
func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		if !clientCanSee(client, event) {
			continue
		}
		if err := client.WriteJSON(event); err != nil {
			// Dead connections are reaped by the read loop
			continue
		}
	}
}

func clientCanSee(client *Client, event Event) bool {
	if client.Role == "super_admin" {
		return true
	}
	if event.Country == "" {
		return true
	}
	return client.Country == event.Country
}

// ConnectedAdmins returns the number of active sessions
func (h *Hub) ConnectedAdmins() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
