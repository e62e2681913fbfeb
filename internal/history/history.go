// Package history provides the ordered record of placed shapes.
package history

import (
	"github.com/samber/lo"

	"github.com/kyiku/shapefill/internal/geometry"
	"github.com/kyiku/shapefill/internal/model"
)

// Entry is a placed shape together with its bounding rectangle.
type Entry struct {
	Shape  model.Shape
	Bounds geometry.Rect
}

// History is an append-only sequence of placed shapes in insertion order.
// It is not safe for concurrent use; callers serialize access.
type History struct {
	entries []Entry
}

// New creates an empty History.
func New() *History {
	return &History{
		entries: make([]Entry, 0),
	}
}

// Append adds an entry to the end of the history.
func (h *History) Append(e Entry) {
	h.entries = append(h.entries, e)
}

// Len returns the number of placed shapes.
func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns a copy of the entries in insertion order.
func (h *History) Entries() []Entry {
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Rectangles returns the bounding rectangles in insertion order.
func (h *History) Rectangles() []geometry.Rect {
	return lo.Map(h.entries, func(e Entry, _ int) geometry.Rect {
		return e.Bounds
	})
}

// Collides reports whether r intersects any recorded rectangle.
// An exact duplicate of a recorded rectangle also collides.
func (h *History) Collides(r geometry.Rect) bool {
	return lo.ContainsBy(h.entries, func(e Entry) bool {
		return e.Bounds == r || geometry.Intersects(e.Bounds, r)
	})
}

// CountByKind returns how many shapes of kind k were placed.
func (h *History) CountByKind(k model.Kind) int {
	return lo.CountBy(h.entries, func(e Entry) bool {
		return e.Shape.Kind() == k
	})
}

// Reset clears all entries.
func (h *History) Reset() {
	h.entries = h.entries[:0]
}
