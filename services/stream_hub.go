package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// StreamClient wraps a connection with a write lock. gorilla permits only one
// concurrent writer per connection, and both broadcasts and keepalive pings
// write to the same socket.
type StreamClient struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func NewStreamClient(conn *websocket.Conn) *StreamClient {
	return &StreamClient{conn: conn}
}

func (c *StreamClient) Write(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(messageType, data)
}

// StreamHub fans successfully saved logs out to websocket subscribers.
// There are no accounts, so every subscriber sees every update.
type StreamHub struct {
	mu      sync.RWMutex
	clients map[*StreamClient]struct{}
}

func NewStreamHub() *StreamHub {
	return &StreamHub{clients: make(map[*StreamClient]struct{})}
}

func (h *StreamHub) Register(c *StreamClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *StreamHub) Unregister(c *StreamClient) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
	_ = c.conn.Close()
}

func (h *StreamHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends payload to every connected client. Write errors are left
// for the client's read loop to notice and unregister.
func (h *StreamHub) Broadcast(payload any) {
	msg, err := json.Marshal(payload)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		_ = c.Write(websocket.TextMessage, msg)
	}
}
