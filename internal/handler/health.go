// Package handler provides HTTP handlers for the API.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// SessionCounter reports how many canvas sessions are live.
type SessionCounter interface {
	Count() int
}

// HealthHandler serves liveness and session status.
type HealthHandler struct {
	sessions SessionCounter
}

// NewHealthHandler creates a HealthHandler. sessions may be nil, in which
// case the session count is omitted.
func NewHealthHandler(sessions SessionCounter) *HealthHandler {
	return &HealthHandler{sessions: sessions}
}

// Check returns the health status of the server.
func (h *HealthHandler) Check(c echo.Context) error {
	body := map[string]interface{}{"status": "ok"}
	if h.sessions != nil {
		body["sessions"] = h.sessions.Count()
	}
	return c.JSON(http.StatusOK, body)
}

// SessionStatus returns the number of live sessions.
func (h *HealthHandler) SessionStatus(c echo.Context) error {
	count := 0
	if h.sessions != nil {
		count = h.sessions.Count()
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"sessions": count})
}
