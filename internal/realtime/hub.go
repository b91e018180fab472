package realtime

import (
	"log"
	"sync"
	"time"

	"wisper/internal/models"

	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// connection pairs a socket with a write lock; gorilla allows only one
// concurrent writer per conn, and Push can race the transport's own writes.
type connection struct {
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *connection) send(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(v)
}

// Hub is the runtime routing table from a user id to their live push
// channel. It holds no durable state: an entry exists only while the
// client's socket is open, and a fresh connection for the same user
// silently replaces the previous one.
type Hub struct {
	mu      sync.RWMutex
	clients map[uint]*connection
}

func NewHub() *Hub {
	return &Hub{clients: make(map[uint]*connection)}
}

// Register stores the mapping for userID, replacing any existing entry.
// The replaced socket, if any, is returned so the transport can close it;
// the registry itself no longer reaches it.
func (h *Hub) Register(userID uint, ws *websocket.Conn) *websocket.Conn {
	h.mu.Lock()
	defer h.mu.Unlock()

	var replaced *websocket.Conn
	if prev, ok := h.clients[userID]; ok {
		replaced = prev.ws
	}
	h.clients[userID] = &connection{ws: ws}
	return replaced
}

// Unregister removes the entry for userID, but only if it still belongs to
// ws. A late close of a replaced connection must not evict its successor.
// Safe to call when no entry exists.
func (h *Hub) Unregister(userID uint, ws *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, ok := h.clients[userID]; ok && current.ws == ws {
		delete(h.clients, userID)
	}
}

// Push delivers the notification to userID's live channel if one is
// registered. A missing entry or a failed write is a missed real-time
// nudge, not an error: the notification is already durable in the log and
// will surface on the next pull query.
func (h *Hub) Push(userID uint, n *models.Notification) bool {
	h.mu.RLock()
	conn, ok := h.clients[userID]
	h.mu.RUnlock()
	if !ok {
		return false
	}

	if err := conn.send(n); err != nil {
		log.Printf("push to user %d missed: %v", userID, err)
		return false
	}
	return true
}

// Connected reports whether userID currently has a registered channel.
func (h *Hub) Connected(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}
