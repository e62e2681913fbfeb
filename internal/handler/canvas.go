// Package handler provides HTTP handlers for the API.
package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kyiku/shapefill/internal/model"
	"github.com/kyiku/shapefill/internal/placement"
	"github.com/kyiku/shapefill/internal/response"
	"github.com/kyiku/shapefill/internal/session"
)

// SessionCookieName is the cookie carrying the session ID.
const SessionCookieName = "session_id"

// SessionStoreInterface defines the interface for session storage.
type SessionStoreInterface interface {
	Create() (*session.Session, string)
	Get(sessionID string) (*session.Session, bool)
}

// CanvasHandler serves the canvas API.
type CanvasHandler struct {
	store SessionStoreInterface
}

// NewCanvasHandler creates a new CanvasHandler.
func NewCanvasHandler(store SessionStoreInterface) *CanvasHandler {
	return &CanvasHandler{
		store: store,
	}
}

// ClickRequest is the optional body of a click.
type ClickRequest struct {
	Kind string `json:"kind"`
}

// Create starts a new canvas session and sets the session cookie.
func (h *CanvasHandler) Create(c echo.Context) error {
	sess, sessionID := h.store.Create()

	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	snap := sess.Snapshot()
	c.Logger().Infof("canvas session created: %s", sessionID)

	return response.SuccessWithStatus(c, http.StatusCreated, map[string]interface{}{
		"session_id":  sessionID,
		"canvas":      snap.Canvas,
		"dimensions":  sess.Dimensions(),
		"policy":      snap.Policy,
		"retry_limit": sess.RetryLimit(),
	})
}

// Snapshot returns every placed shape with its bounding box.
func (h *CanvasHandler) Snapshot(c echo.Context) error {
	sess, ok := h.session(c)
	if !ok {
		return invalidSession(c)
	}

	snap := sess.Snapshot()
	return response.Success(c, map[string]interface{}{
		"session_id": snap.ID,
		"canvas":     snap.Canvas,
		"policy":     snap.Policy,
		"clicks":     snap.Clicks,
		"shapes":     response.EntriesPayload(snap.Entries),
		"counts":     snap.Counts,
	})
}

// Click registers one click. Without a kind the session's policy decides.
func (h *CanvasHandler) Click(c echo.Context) error {
	sess, ok := h.session(c)
	if !ok {
		return invalidSession(c)
	}

	var req ClickRequest
	if err := c.Bind(&req); err != nil {
		return response.ErrorWithCode(c, http.StatusBadRequest, response.CodeBadRequest, "リクエストの解析に失敗しました")
	}

	var (
		result session.ClickResult
		err    error
	)
	if strings.TrimSpace(req.Kind) != "" {
		kind, ok := model.ParseKind(req.Kind)
		if !ok {
			return response.ErrorWithCode(c, http.StatusBadRequest, response.CodeInvalidShapeKind, "不明な図形の種類です")
		}
		result, err = sess.Place(kind)
	} else {
		result, err = sess.Click()
	}

	if errors.Is(err, placement.ErrInvalidShapeKind) {
		return response.ErrorWithCode(c, http.StatusBadRequest, response.CodeInvalidShapeKind, "不明な図形の種類です")
	}
	if err != nil {
		c.Logger().Errorf("click failed: session=%s: %v", sess.ID, err)
		return response.ErrorWithCode(c, http.StatusInternalServerError, response.CodeInternalError, "配置に失敗しました")
	}

	data := map[string]interface{}{
		"status": string(result.Outcome),
		"click":  result.Click,
	}
	switch result.Outcome {
	case session.OutcomePlaced:
		data["kind"] = result.Kind
		data["attempts"] = result.Attempts
		for k, v := range response.EntryPayload(result.Entry) {
			data[k] = v
		}
	case session.OutcomeCanvasFull:
		data["kind"] = result.Kind
		data["attempts"] = result.Attempts
		data["message"] = "キャンバスがいっぱいです"
		c.Logger().Infof("canvas full: session=%s click=%d kind=%s", sess.ID, result.Click, result.Kind)
	}

	return response.Success(c, data)
}

// Reset clears the canvas and restarts the click counter.
func (h *CanvasHandler) Reset(c echo.Context) error {
	sess, ok := h.session(c)
	if !ok {
		return invalidSession(c)
	}

	sess.Reset()

	return response.Success(c, map[string]interface{}{
		"clicks": 0,
		"shapes": []interface{}{},
	})
}

func (h *CanvasHandler) session(c echo.Context) (*session.Session, bool) {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie == nil {
		return nil, false
	}
	return h.store.Get(cookie.Value)
}

func invalidSession(c echo.Context) error {
	return response.ErrorWithCode(c, http.StatusUnauthorized, response.CodeInvalidSession, "無効なセッション")
}
