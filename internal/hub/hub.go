// Package hub fans session events out to connected renderers.
package hub

import (
	"sync"

	"github.com/google/uuid"

	"github.com/kyiku/shapefill/internal/model"
	"github.com/kyiku/shapefill/internal/response"
	"github.com/kyiku/shapefill/internal/session"
)

// Message types
const (
	TypeShapePlaced = "shape_placed"
	TypeCanvasFull  = "canvas_full"
	TypeReset       = "reset"
)

// Subscriber is a renderer connection watching one session.
type Subscriber struct {
	ID   string
	Conn model.WebSocketConn
}

// Hub tracks renderer connections per session. It implements session.Notifier.
type Hub struct {
	subscribers map[string][]*Subscriber
	mu          sync.RWMutex
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string][]*Subscriber),
	}
}

// Subscribe registers a connection for a session's events.
func (h *Hub) Subscribe(sessionID string, conn model.WebSocketConn) *Subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := &Subscriber{ID: uuid.New().String(), Conn: conn}
	h.subscribers[sessionID] = append(h.subscribers[sessionID], sub)
	return sub
}

// Unsubscribe removes a subscriber by ID.
func (h *Hub) Unsubscribe(sessionID, subscriberID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs := h.subscribers[sessionID]
	for i, s := range subs {
		if s.ID == subscriberID {
			subs = append(subs[:i], subs[i+1:]...)
			break
		}
	}

	if len(subs) == 0 {
		delete(h.subscribers, sessionID)
		return
	}
	h.subscribers[sessionID] = subs
}

// Count returns the number of subscribers of a session.
func (h *Hub) Count(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[sessionID])
}

// Broadcast sends msg to every subscriber of a session.
// Write errors are ignored; the reader loop drops dead connections.
func (h *Hub) Broadcast(sessionID string, msg interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subscribers[sessionID] {
		if sub.Conn != nil {
			_ = sub.Conn.WriteJSON(msg)
		}
	}
}

// ShapePlaced broadcasts a placed shape.
func (h *Hub) ShapePlaced(sessionID string, result session.ClickResult) {
	msg := response.EntryPayload(result.Entry)
	msg["type"] = TypeShapePlaced
	msg["click"] = result.Click
	msg["attempts"] = result.Attempts
	h.Broadcast(sessionID, msg)
}

// CanvasFull broadcasts that no spot was found.
func (h *Hub) CanvasFull(sessionID string, result session.ClickResult) {
	h.Broadcast(sessionID, map[string]interface{}{
		"type":    TypeCanvasFull,
		"click":   result.Click,
		"kind":    result.Kind,
		"message": "キャンバスがいっぱいです",
	})
}

// Reset broadcasts that the canvas was cleared.
func (h *Hub) Reset(sessionID string) {
	h.Broadcast(sessionID, map[string]interface{}{
		"type": TypeReset,
	})
}
