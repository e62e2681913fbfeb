// Package model provides the shape descriptors placed on a canvas.
package model

import (
	"strings"

	"github.com/kyiku/shapefill/internal/geometry"
)

// Kind identifies a shape variant.
type Kind string

// Shape kinds
const (
	KindRectangle  Kind = "rectangle"
	KindSemicircle Kind = "semicircle"
	KindSquare     Kind = "square"
	KindCircle     Kind = "circle"
	KindTriangle   Kind = "triangle"
)

// Kinds lists every supported kind.
var Kinds = []Kind{KindRectangle, KindSemicircle, KindSquare, KindCircle, KindTriangle}

// SizeMultipliers is the discrete scale set applied to the base radius.
var SizeMultipliers = []int{1, 2, 3}

// ParseKind converts a string into a Kind, ignoring case and surrounding
// whitespace. Returns false if the string names no known kind.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	return k, k.Valid()
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Rotatable reports whether the kind samples a rotation.
func (k Kind) Rotatable() bool {
	return k != KindCircle
}

// Scalable reports whether the kind samples a size multiplier.
func (k Kind) Scalable() bool {
	return k == KindSquare || k == KindCircle || k == KindTriangle
}

// Dimensions holds the base sizes of every kind.
type Dimensions struct {
	RectWidth        float64 `json:"rect_width" yaml:"rect_width"`
	RectHeight       float64 `json:"rect_height" yaml:"rect_height"`
	SemicircleRadius float64 `json:"semicircle_radius" yaml:"semicircle_radius"`
	BaseRadius       float64 `json:"base_radius" yaml:"base_radius"`
}

// DefaultDimensions returns the stock shape sizes.
func DefaultDimensions() Dimensions {
	return Dimensions{
		RectWidth:        20,
		RectHeight:       100,
		SemicircleRadius: 50,
		BaseRadius:       25,
	}
}

// Radius returns the circumscribed radius for a size multiplier.
func (d Dimensions) Radius(multiplier int) float64 {
	return d.BaseRadius * float64(multiplier)
}

// Shape is a placed shape descriptor.
type Shape interface {
	Kind() Kind
	// Bounds returns the axis-aligned box covering the shape as drawn.
	Bounds(d Dimensions) geometry.Rect
}

// Rectangle is a bar anchored at its top-left corner.
type Rectangle struct {
	X        float64
	Y        float64
	Rotation float64
	Color    string
}

// Semicircle is a half disc centred at (X, Y).
type Semicircle struct {
	X        float64
	Y        float64
	Rotation float64
	Color    string
}

// Square is a square inscribed in a circle centred at (X, Y).
type Square struct {
	X              float64
	Y              float64
	SizeMultiplier int
	Rotation       float64
	Color          string
}

// Circle is a disc centred at (X, Y).
type Circle struct {
	X              float64
	Y              float64
	SizeMultiplier int
	Color          string
}

// Triangle is an equilateral triangle inscribed in a circle centred at (X, Y).
type Triangle struct {
	X              float64
	Y              float64
	SizeMultiplier int
	Rotation       float64
	Color          string
}

func (Rectangle) Kind() Kind  { return KindRectangle }
func (Semicircle) Kind() Kind { return KindSemicircle }
func (Square) Kind() Kind     { return KindSquare }
func (Circle) Kind() Kind     { return KindCircle }
func (Triangle) Kind() Kind   { return KindTriangle }

func (s Rectangle) Bounds(d Dimensions) geometry.Rect {
	return geometry.RectangleBounds(s.X, s.Y, d.RectWidth, d.RectHeight, s.Rotation)
}

func (s Semicircle) Bounds(d Dimensions) geometry.Rect {
	return geometry.SemicircleBounds(s.X, s.Y, d.SemicircleRadius, s.Rotation)
}

func (s Square) Bounds(d Dimensions) geometry.Rect {
	return geometry.PolygonBounds(s.X, s.Y, d.Radius(s.SizeMultiplier), s.Rotation)
}

func (s Circle) Bounds(d Dimensions) geometry.Rect {
	return geometry.CircleBounds(s.X, s.Y, d.Radius(s.SizeMultiplier))
}

func (s Triangle) Bounds(d Dimensions) geometry.Rect {
	return geometry.PolygonBounds(s.X, s.Y, d.Radius(s.SizeMultiplier), s.Rotation)
}
