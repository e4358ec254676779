package models

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Hub keeps the live feed subscribers of every scope and fans message events
// out to them.
type Hub struct {
	// Subscribed clients per scope.
	scopes map[Scope]map[*Client]bool

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Closed once Run returned.
	done chan struct{}

	mu sync.RWMutex
}

// Client represents a WebSocket connection
type Client struct {
	Hub *Hub

	// The websocket connection.
	Conn *websocket.Conn

	// Buffered channel of outbound messages.
	Send chan []byte

	Identity Identity
	Scope    Scope

	// Closed by the hub once the client is registered.
	registered chan struct{}
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		scopes:     make(map[Scope]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run handles registrations until ctx is done, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if _, exists := h.scopes[client.Scope]; !exists {
				h.scopes[client.Scope] = make(map[*Client]bool)
			}
			h.scopes[client.Scope][client] = true
			h.mu.Unlock()
			if client.registered != nil {
				close(client.registered)
			}

		case client := <-h.Unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()

		case <-ctx.Done():
			h.mu.Lock()
			for _, clients := range h.scopes {
				for client := range clients {
					h.remove(client)
				}
			}
			h.mu.Unlock()
			return
		}
	}
}

// Subscribe registers client and returns once a Publish or Revoke would reach
// it; false when the hub is no longer running.
func (h *Hub) Subscribe(client *Client) bool {
	client.registered = make(chan struct{})
	select {
	case h.Register <- client:
		<-client.registered
		return true
	case <-h.done:
		return false
	}
}

// Unsubscribe removes client unless the hub already stopped.
func (h *Hub) Unsubscribe(client *Client) {
	select {
	case h.Unregister <- client:
	case <-h.done:
	}
}

// remove drops client and closes its outbound channel. Callers hold mu.
func (h *Hub) remove(client *Client) {
	clients, exists := h.scopes[client.Scope]
	if !exists || !clients[client] {
		return
	}
	delete(clients, client)
	if len(clients) == 0 {
		delete(h.scopes, client.Scope)
	}
	close(client.Send)
}

// Publish sends event to every subscriber of scope. Subscribers whose buffer
// is full are dropped.
func (h *Hub) Publish(scope Scope, event MessageEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.BroadcastToScope(scope, payload)
}

// BroadcastToScope sends a raw message to all clients of scope
func (h *Hub) BroadcastToScope(scope Scope, message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.scopes[scope] {
		select {
		case client.Send <- message:
		default:
			h.remove(client)
		}
	}
}

// Revoke disconnects identity from the feed of channelID.
func (h *Hub) Revoke(channelID int64, identity Identity) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.scopes[ChannelScope(channelID)] {
		if client.Identity == identity {
			h.remove(client)
		}
	}
}

// Connections returns the number of clients subscribed to scope.
func (h *Hub) Connections(scope Scope) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.scopes[scope])
}

// ReadPump drains the connection so control frames are processed. The feed is
// read-only; inbound messages are discarded.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.Unsubscribe(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
	}
}

// WritePump pumps messages from the hub to the WebSocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed
	maxMessageSize = 512
)
