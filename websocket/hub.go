package websocket

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Session event types pushed to connected terminals
const (
	EventTypeConnected = "connected"
	EventTypeSignedIn  = "signed_in"
	EventTypeSignedOut = "signed_out"
)

// SessionEvent is a message sent over WebSocket when the session changes
type SessionEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	UID     string `json:"uid,omitempty"`
	Email   string `json:"email,omitempty"`
}

// Client represents a connected WebSocket client. Every sign-in and
// sign-out broadcasts from its own request goroutine, so writes to the
// connection are serialized through send; gorilla forbids concurrent
// writers.
type Client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func newClient(conn *websocket.Conn) *Client {
	return &Client{conn: conn}
}

func (c *Client) send(event SessionEvent) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(event)
}

// Hub maintains the set of active clients and broadcasts session events
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
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
			h.clients[client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
			}
			client.conn.Close()
			h.mu.Unlock()
		}
	}
}

// Broadcast sends a session event to every connected client
func (h *Hub) Broadcast(event SessionEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		client.send(event)
	}
}
