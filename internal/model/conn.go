package model

// WebSocketConn defines the interface for WebSocket connections.
type WebSocketConn interface {
	WriteMessage(messageType int, data []byte) error
	WriteJSON(v interface{}) error
	Close() error
}
