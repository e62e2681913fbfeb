package geometry

import (
	"math"

	"github.com/jbeda/geom"
	"golang.org/x/image/math/f64"
)

// rotationAbout returns the affine transform that rotates points clockwise
// (in y-down canvas space) by deg degrees about (cx, cy).
func rotationAbout(deg, cx, cy float64) f64.Aff3 {
	s, c := sinCos(deg)
	return f64.Aff3{
		c, -s, cx - c*cx + s*cy,
		s, c, cy - s*cx - c*cy,
	}
}

func transform(m f64.Aff3, p f64.Vec2) geom.Coord {
	return geom.Coord{
		X: m[0]*p[0] + m[1]*p[1] + m[2],
		Y: m[3]*p[0] + m[4]*p[1] + m[5],
	}
}

func boundsOf(points []geom.Coord) Rect {
	r := geom.NilRect()
	for _, p := range points {
		r.ExpandToContainCoord(p)
	}
	return NewRect(r.Min.X, r.Min.Y, r.Width(), r.Height())
}

// ProjectCorners rotates the four corners of a width x height rectangle
// anchored at (x, y) about that anchor and returns their min/max extent.
// Valid for any rotation.
func ProjectCorners(x, y, width, height, rotation float64) Rect {
	m := rotationAbout(NormalizeDegrees(rotation), x, y)
	corners := []f64.Vec2{
		{x, y},
		{x + width, y},
		{x, y + height},
		{x + width, y + height},
	}

	points := make([]geom.Coord, 0, len(corners))
	for _, p := range corners {
		points = append(points, transform(m, p))
	}
	return boundsOf(points)
}

// arcBounds returns the bounds of the circular sector centred at (x, y) that
// starts at start degrees and sweeps clockwise by sweep degrees.
// The extreme points are the centre, both arc ends and every axis crossing.
func arcBounds(x, y, radius, start, sweep float64) Rect {
	start = NormalizeDegrees(start)
	end := start + sweep

	points := []geom.Coord{
		{X: x, Y: y},
		arcPoint(x, y, radius, start),
		arcPoint(x, y, radius, end),
	}
	for axis := math.Ceil(start/90) * 90; axis < end; axis += 90 {
		points = append(points, arcPoint(x, y, radius, axis))
	}
	return boundsOf(points)
}

func arcPoint(x, y, radius, deg float64) geom.Coord {
	return transform(rotationAbout(deg, x, y), f64.Vec2{x + radius, y})
}
