package handler

import (
	"errors"
	"net/http"

	gorilla "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/kyiku/shapefill/internal/hub"
	"github.com/kyiku/shapefill/internal/model"
	"github.com/kyiku/shapefill/internal/response"
	"github.com/kyiku/shapefill/internal/session"
	"github.com/kyiku/shapefill/internal/websocket"
)

// TypeSnapshot is the first message a renderer receives.
const TypeSnapshot = "snapshot"

// WebSocketHandler handles renderer WebSocket connections.
type WebSocketHandler struct {
	store    SessionStoreInterface
	hub      *hub.Hub
	upgrader *gorilla.Upgrader
}

// NewWebSocketHandler creates a new WebSocketHandler.
func NewWebSocketHandler(store SessionStoreInterface, h *hub.Hub, upgrader *gorilla.Upgrader) *WebSocketHandler {
	return &WebSocketHandler{
		store:    store,
		hub:      h,
		upgrader: upgrader,
	}
}

// ValidateSession validates the session for WebSocket connection.
func (h *WebSocketHandler) ValidateSession(c echo.Context) (*session.Session, error) {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie == nil {
		return nil, errors.New("no session cookie")
	}

	sess, ok := h.store.Get(cookie.Value)
	if !ok {
		return nil, errors.New("invalid session")
	}

	return sess, nil
}

// Connect upgrades the request and streams the session's events until the client leaves.
func (h *WebSocketHandler) Connect(c echo.Context) error {
	sess, err := h.ValidateSession(c)
	if err != nil {
		return response.ErrorWithCode(c, http.StatusUnauthorized, response.CodeInvalidSession, "セッションが無効です")
	}

	raw, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		c.Logger().Warnf("websocket upgrade failed: %v", err)
		return nil
	}

	conn := websocket.NewSafeConn(raw)
	h.Serve(c, sess, conn)
	return nil
}

// Serve subscribes conn to the session, sends the current snapshot and
// blocks in the read loop until the connection closes. Registration and
// the snapshot write happen under the session's notification lock, so
// the renderer sees every event after the snapshot exactly once.
func (h *WebSocketHandler) Serve(c echo.Context, sess *session.Session, conn websocket.Conn) {
	var (
		sub     *hub.Subscriber
		sendErr error
	)
	sess.Subscribe(func(snap session.Snapshot) {
		sub = h.hub.Subscribe(sess.ID, conn)
		sendErr = conn.WriteJSON(snapshotMessage(snap, sess.Dimensions()))
	})
	defer func() {
		h.hub.Unsubscribe(sess.ID, sub.ID)
		_ = conn.Close()
	}()

	if sendErr != nil {
		c.Logger().Warnf("websocket snapshot failed: session=%s: %v", sess.ID, sendErr)
		return
	}

	err := websocket.ReadLoop(conn, nil)
	if websocket.IsUnexpectedClose(err) {
		c.Logger().Warnf("websocket closed: session=%s: %v", sess.ID, err)
	}
}

func snapshotMessage(snap session.Snapshot, dims model.Dimensions) map[string]interface{} {
	return map[string]interface{}{
		"type":       TypeSnapshot,
		"canvas":     snap.Canvas,
		"dimensions": dims,
		"clicks":     snap.Clicks,
		"shapes":     response.EntriesPayload(snap.Entries),
	}
}
