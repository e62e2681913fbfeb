package websocket

import (
	"net/http"
	"strings"
	"sync"

	gorilla "github.com/gorilla/websocket"

	"github.com/kyiku/shapefill/internal/model"
)

// Conn is a connection the read loop can drive.
type Conn interface {
	model.WebSocketConn
	ReadMessage() (int, []byte, error)
}

// NewUpgrader returns an upgrader accepting the given origin.
// An empty origin, or a request without an Origin header, is always accepted.
func NewUpgrader(allowedOrigin string) *gorilla.Upgrader {
	return &gorilla.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || allowedOrigin == "" {
				return true
			}
			return strings.EqualFold(origin, allowedOrigin) || strings.HasPrefix(origin, "http://localhost:")
		},
	}
}

// SafeConn serializes writes to a gorilla connection.
// gorilla allows one concurrent writer; the hub and the ping handler both write.
type SafeConn struct {
	conn *gorilla.Conn
	mu   sync.Mutex
}

// NewSafeConn wraps an upgraded connection.
func NewSafeConn(conn *gorilla.Conn) *SafeConn {
	return &SafeConn{conn: conn}
}

// WriteMessage writes a raw frame.
func (c *SafeConn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(messageType, data)
}

// WriteJSON writes v as a text frame.
func (c *SafeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// ReadMessage reads the next frame.
func (c *SafeConn) ReadMessage() (int, []byte, error) {
	return c.conn.ReadMessage()
}

// Close closes the underlying connection.
func (c *SafeConn) Close() error {
	return c.conn.Close()
}

// ReadLoop reads messages until the connection fails, answering pings.
// Other messages go to onMessage when it is non-nil. The read error is returned.
func ReadLoop(conn Conn, onMessage func([]byte)) error {
	ping := NewPingHandler(conn)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if ping.Handle(msg) {
			continue
		}
		if onMessage != nil {
			onMessage(msg)
		}
	}
}

// IsUnexpectedClose reports whether err is a close other than a normal shutdown.
func IsUnexpectedClose(err error) bool {
	return gorilla.IsUnexpectedCloseError(err, gorilla.CloseGoingAway, gorilla.CloseNormalClosure, gorilla.CloseNoStatusReceived)
}
