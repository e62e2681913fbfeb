package geometry

import "math"

// NormalizeDegrees maps an angle onto [0, 360).
func NormalizeDegrees(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}

func sinCos(deg float64) (float64, float64) {
	rad := deg * math.Pi / 180
	return math.Sin(rad), math.Cos(rad)
}

// RectangleBounds returns the bounding rectangle of a width x height bar
// rotated clockwise by rotation degrees about its top-left corner (x, y).
func RectangleBounds(x, y, width, height, rotation float64) Rect {
	theta := NormalizeDegrees(rotation)
	if theta >= 180 {
		return ProjectCorners(x, y, width, height, theta)
	}

	s, c := sinCos(theta)
	if theta <= 90 {
		return NewRect(x-s*height, y, s*height+c*width, c*height+s*width)
	}
	return NewRect(x-s*height+c*width, y+c*height, s*height-c*width, -c*height+s*width)
}

// SemicircleBounds returns the bounding rectangle of a half disc centred at
// (x, y) whose arc starts at rotation degrees and sweeps 180 degrees.
func SemicircleBounds(x, y, radius, rotation float64) Rect {
	theta := NormalizeDegrees(rotation)
	s, c := sinCos(theta)
	r := radius

	switch {
	case theta <= 90:
		return NewRect(x-r, y-r*s, r+r*c, r+r*s)
	case theta <= 180:
		return NewRect(x-r, y-r, r-r*c, r+r*s)
	case theta <= 270:
		return NewRect(x+r*c, y-r, r-r*c, r-r*s)
	default:
		return NewRect(x-r*c, y+r*s, r+r*c, r-r*s)
	}
}

// CircleBounds returns the bounding rectangle of a circle centred at (x, y).
func CircleBounds(x, y, radius float64) Rect {
	return NewRect(x-radius, y-radius, 2*radius, 2*radius)
}

// PolygonBounds returns the bounds of a regular polygon inscribed in a circle
// of the given radius. The enclosing circle's box is used for every rotation.
func PolygonBounds(x, y, radius, rotation float64) Rect {
	return CircleBounds(x, y, radius)
}
