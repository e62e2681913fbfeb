package model

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Record is the flat wire form of a Shape.
type Record struct {
	Kind           Kind    `json:"kind" yaml:"kind"`
	X              float64 `json:"x" yaml:"x"`
	Y              float64 `json:"y" yaml:"y"`
	SizeMultiplier int     `json:"size_multiplier,omitempty" yaml:"size_multiplier,omitempty"`
	Rotation       float64 `json:"rotation" yaml:"rotation"`
	Color          string  `json:"color" yaml:"color"`
}

// ToRecord flattens a Shape.
func ToRecord(s Shape) Record {
	switch v := s.(type) {
	case Rectangle:
		return Record{Kind: KindRectangle, X: v.X, Y: v.Y, Rotation: v.Rotation, Color: v.Color}
	case Semicircle:
		return Record{Kind: KindSemicircle, X: v.X, Y: v.Y, Rotation: v.Rotation, Color: v.Color}
	case Square:
		return Record{Kind: KindSquare, X: v.X, Y: v.Y, SizeMultiplier: v.SizeMultiplier, Rotation: v.Rotation, Color: v.Color}
	case Circle:
		return Record{Kind: KindCircle, X: v.X, Y: v.Y, SizeMultiplier: v.SizeMultiplier, Color: v.Color}
	case Triangle:
		return Record{Kind: KindTriangle, X: v.X, Y: v.Y, SizeMultiplier: v.SizeMultiplier, Rotation: v.Rotation, Color: v.Color}
	}
	return Record{}
}

// Shape converts the record back into its variant.
func (r Record) Shape() (Shape, error) {
	switch r.Kind {
	case KindRectangle:
		return Rectangle{X: r.X, Y: r.Y, Rotation: r.Rotation, Color: r.Color}, nil
	case KindSemicircle:
		return Semicircle{X: r.X, Y: r.Y, Rotation: r.Rotation, Color: r.Color}, nil
	case KindSquare:
		return Square{X: r.X, Y: r.Y, SizeMultiplier: r.SizeMultiplier, Rotation: r.Rotation, Color: r.Color}, nil
	case KindCircle:
		return Circle{X: r.X, Y: r.Y, SizeMultiplier: r.SizeMultiplier, Color: r.Color}, nil
	case KindTriangle:
		return Triangle{X: r.X, Y: r.Y, SizeMultiplier: r.SizeMultiplier, Rotation: r.Rotation, Color: r.Color}, nil
	}
	return nil, fmt.Errorf("unknown shape kind %q", r.Kind)
}

// RandomColor maps a uniform sample in [0,1) onto a bright hue.
func RandomColor(u float64) string {
	return colorful.Hsv(u*360, 0.65, 0.95).Hex()
}
