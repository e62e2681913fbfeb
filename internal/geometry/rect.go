// Package geometry provides bounding rectangle math for shapes placed on a canvas.
package geometry

// Rect is an axis-aligned bounding rectangle in canvas coordinates
// (origin top-left, y grows downward).
type Rect struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Canvas is the fixed drawing area of a session.
type Canvas struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// NewRect creates a Rect. Negative sizes are clamped to zero.
func NewRect(x, y, width, height float64) Rect {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Intersects reports whether a and b overlap.
// Rectangles with identical fields never intersect each other, and rectangles
// that only share an edge or a corner do intersect.
func Intersects(a, b Rect) bool {
	if a == b {
		return false
	}
	return !(b.X > a.Right() ||
		b.Right() < a.X ||
		b.Y > a.Bottom() ||
		b.Bottom() < a.Y)
}

// Intersects checks if r overlaps other.
func (r Rect) Intersects(other Rect) bool {
	return Intersects(r, other)
}

// IsOffCanvas reports whether r extends past any edge of the canvas.
func IsOffCanvas(r Rect, canvas Canvas) bool {
	return r.X < 0 || r.Y < 0 || r.Right() > canvas.Width || r.Bottom() > canvas.Height
}

// Bounds returns the canvas as a rectangle anchored at the origin.
func (c Canvas) Bounds() Rect {
	return Rect{Width: c.Width, Height: c.Height}
}
