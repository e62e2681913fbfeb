// Package placement provides random, non-overlapping shape placement on a canvas.
package placement

import (
	"errors"
	"fmt"
	"sync"

	"github.com/kyiku/shapefill/internal/geometry"
	"github.com/kyiku/shapefill/internal/model"
)

// DefaultRetryLimit is the number of attempts made before the canvas is declared full.
const DefaultRetryLimit = 500

var (
	// ErrCanvasFull is returned when no attempt found a free spot.
	ErrCanvasFull = errors.New("canvas is full")
	// ErrInvalidShapeKind is returned when an unknown kind is requested.
	ErrInvalidShapeKind = errors.New("invalid shape kind")
)

// Occupancy is the read-only view of already placed shapes.
type Occupancy interface {
	Collides(r geometry.Rect) bool
}

// Placement is an accepted candidate.
type Placement struct {
	Shape    model.Shape
	Bounds   geometry.Rect
	Attempts int
}

// Engine places shapes of a requested kind on a fixed canvas.
type Engine struct {
	canvas     geometry.Canvas
	dims       model.Dimensions
	retryLimit int
	sampler    Sampler
	mu         sync.Mutex // guards sampler and retryLimit
}

// NewEngine creates a new placement engine.
func NewEngine(canvas geometry.Canvas, dims model.Dimensions, sampler Sampler) *Engine {
	return &Engine{
		canvas:     canvas,
		dims:       dims,
		retryLimit: DefaultRetryLimit,
		sampler:    sampler,
	}
}

// SetRetryLimit sets the maximum number of attempts per placement.
func (e *Engine) SetRetryLimit(limit int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.retryLimit = limit
}

// RetryLimit returns the maximum number of attempts per placement.
func (e *Engine) RetryLimit() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.retryLimit
}

// Canvas returns the canvas the engine places onto.
func (e *Engine) Canvas() geometry.Canvas {
	return e.canvas
}

// Dimensions returns the base shape sizes.
func (e *Engine) Dimensions() model.Dimensions {
	return e.dims
}

// TryPlace attempts to place a shape of the given kind at a random position
// that stays on canvas and clears every occupied rectangle.
// The engine never records the placement; the caller appends it on success.
func (e *Engine) TryPlace(kind model.Kind, occupied Occupancy) (Placement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return TryPlace(kind, e.canvas, e.dims, occupied, e.retryLimit, e.sampler)
}

// TryPlace runs the bounded retry loop with explicit parameters.
// A retryLimit of zero or less always yields ErrCanvasFull.
// On ErrCanvasFull the returned Placement carries only the attempt count.
func TryPlace(kind model.Kind, canvas geometry.Canvas, dims model.Dimensions, occupied Occupancy, retryLimit int, sampler Sampler) (Placement, error) {
	if !kind.Valid() {
		return Placement{}, fmt.Errorf("%w: %q", ErrInvalidShapeKind, kind)
	}

	for attempt := 1; attempt <= retryLimit; attempt++ {
		candidate := sample(kind, canvas, dims, sampler)
		bounds := candidate.Bounds(dims)

		if geometry.IsOffCanvas(bounds, canvas) {
			continue
		}
		if occupied != nil && occupied.Collides(bounds) {
			continue
		}

		return Placement{
			Shape:    candidate,
			Bounds:   bounds,
			Attempts: attempt,
		}, nil
	}

	return Placement{Attempts: max(retryLimit, 0)}, ErrCanvasFull
}

// sample draws one candidate. Positions keep the unrotated extent on canvas;
// rotation may still push the bounds off, which the caller rejects.
func sample(kind model.Kind, canvas geometry.Canvas, dims model.Dimensions, sampler Sampler) model.Shape {
	if !kind.Scalable() {
		return sampleFixed(kind, canvas, dims, sampler)
	}

	multiplier := sampler.Choose(model.SizeMultipliers)
	r := dims.Radius(multiplier)
	x := r + sampler.Float64()*(canvas.Width-2*r)
	y := r + sampler.Float64()*(canvas.Height-2*r)

	var rotation float64
	if kind.Rotatable() {
		rotation = sampler.Float64() * 360
	}
	color := model.RandomColor(sampler.Float64())

	switch kind {
	case model.KindCircle:
		return model.Circle{X: x, Y: y, SizeMultiplier: multiplier, Color: color}
	case model.KindSquare:
		return model.Square{X: x, Y: y, SizeMultiplier: multiplier, Rotation: rotation, Color: color}
	}
	return model.Triangle{X: x, Y: y, SizeMultiplier: multiplier, Rotation: rotation, Color: color}
}

// sampleFixed draws the legacy kinds, which have a single size.
func sampleFixed(kind model.Kind, canvas geometry.Canvas, dims model.Dimensions, sampler Sampler) model.Shape {
	if kind == model.KindRectangle {
		x := sampler.Float64() * (canvas.Width - dims.RectWidth)
		y := sampler.Float64() * (canvas.Height - dims.RectHeight)
		rotation := sampler.Float64() * 180
		return model.Rectangle{X: x, Y: y, Rotation: rotation, Color: model.RandomColor(sampler.Float64())}
	}

	r := dims.SemicircleRadius
	x := r + sampler.Float64()*(canvas.Width-2*r)
	y := r + sampler.Float64()*(canvas.Height-2*r)
	rotation := sampler.Float64() * 360
	return model.Semicircle{X: x, Y: y, Rotation: rotation, Color: model.RandomColor(sampler.Float64())}
}
