// Package response provides helpers for consistent API responses.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kyiku/shapefill/internal/history"
	"github.com/kyiku/shapefill/internal/model"
)

// Error codes
const (
	CodeInvalidSession   = "INVALID_SESSION"
	CodeInvalidShapeKind = "INVALID_SHAPE_KIND"
	CodeBadRequest       = "BAD_REQUEST"
	CodeInternalError    = "INTERNAL_ERROR"
	CodeRateLimited      = "RATE_LIMITED"
)

// Success sends a successful JSON response with the given data.
// The response will always include "error": false.
func Success(c echo.Context, data map[string]interface{}) error {
	return SuccessWithStatus(c, http.StatusOK, data)
}

// SuccessWithStatus sends a successful JSON response with a specific status code.
func SuccessWithStatus(c echo.Context, statusCode int, data map[string]interface{}) error {
	resp := make(map[string]interface{})
	resp["error"] = false

	// Merge additional data
	for k, v := range data {
		resp[k] = v
	}

	return c.JSON(statusCode, resp)
}

// ErrorWithCode sends an error response with a specific error code.
// This is useful for clients that need to handle specific error types.
func ErrorWithCode(c echo.Context, statusCode int, code string, message string) error {
	return c.JSON(statusCode, map[string]interface{}{
		"error":   true,
		"code":    code,
		"message": message,
	})
}

// EntryPayload converts a placed entry into its JSON form.
func EntryPayload(e history.Entry) map[string]interface{} {
	return map[string]interface{}{
		"shape":  model.ToRecord(e.Shape),
		"bounds": e.Bounds,
	}
}

// EntriesPayload converts entries in insertion order.
func EntriesPayload(entries []history.Entry) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		out = append(out, EntryPayload(e))
	}
	return out
}
