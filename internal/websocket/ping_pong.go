// Package websocket provides WebSocket message handling utilities.
package websocket

import (
	"encoding/json"
)

// Keepalive message types. Renderers send ping; the server answers pong.
const (
	TypePing = "ping"
	TypePong = "pong"
)

// envelope is the part of every renderer message the server inspects.
type envelope struct {
	Type string `json:"type"`
}

// jsonWriter is the subset of a connection the ping handler needs.
type jsonWriter interface {
	WriteJSON(v interface{}) error
}

// PingHandler answers renderer keepalives on one connection.
type PingHandler struct {
	conn jsonWriter
}

// NewPingHandler creates a new PingHandler.
func NewPingHandler(conn jsonWriter) *PingHandler {
	return &PingHandler{conn: conn}
}

// Handle answers message with a pong when it is a ping and reports whether
// it did. Write errors are left to the read loop.
func (h *PingHandler) Handle(message []byte) bool {
	if !IsPingMessage(message) {
		return false
	}
	_ = h.conn.WriteJSON(envelope{Type: TypePong})
	return true
}

// IsPingMessage reports whether message is a renderer ping.
func IsPingMessage(message []byte) bool {
	var env envelope
	if err := json.Unmarshal(message, &env); err != nil {
		return false
	}
	return env.Type == TypePing
}
