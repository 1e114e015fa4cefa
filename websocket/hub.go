package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Event is the envelope pushed to connected clients.
type Event struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// Hub manages all WebSocket connections, one client per user.
type Hub struct {
	clients map[uint]*Client

	Register   chan *Client
	Unregister chan *Client

	mu sync.RWMutex
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if old, ok := h.clients[client.UserID]; ok {
				close(old.Send)
			}
			h.clients[client.UserID] = client
			h.mu.Unlock()
			log.Printf("🔌 Client registered: user=%d", client.UserID)

		case client := <-h.Unregister:
			h.mu.Lock()
			if current, ok := h.clients[client.UserID]; ok && current == client {
				delete(h.clients, client.UserID)
				close(client.Send)
			}
			h.mu.Unlock()
			log.Printf("🔌 Client unregistered: user=%d", client.UserID)
		}
	}
}

// SendToUser pushes an event to the user's connection if one exists.
// Dropped silently when the user is offline or the buffer is full.
func (h *Hub) SendToUser(userID uint, event string, payload interface{}) {
	h.mu.RLock()
	client, ok := h.clients[userID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	data, err := json.Marshal(Event{Type: event, Timestamp: time.Now(), Data: payload})
	if err != nil {
		log.Printf("⚠️ Failed to marshal websocket event: %v", err)
		return
	}

	select {
	case client.Send <- data:
	default:
		log.Printf("⚠️ Send buffer full for user %d, dropping event", userID)
	}
}

// IsConnected reports whether the user currently has a live connection.
func (h *Hub) IsConnected(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}
