package geometry

import (
	"math"

	"github.com/jbeda/geom"
)

// eps is the tolerance for parallel and zero-length checks.
const eps = 1e-9

// Vec is a point or direction in the drawing plane.
type Vec = geom.Coord

// Rect is an axis-aligned rectangle. Min is the left-bottom corner and Max the
// right-top corner.
type Rect = geom.Rect

// V is shorthand for Vec{X: x, Y: y}.
func V(x, y float64) Vec { return Vec{X: x, Y: y} }

// Cross returns the z component of the cross product a × b.
func Cross(a, b Vec) float64 { return a.X*b.Y - a.Y*b.X }

// Dot returns the dot product of a and b.
func Dot(a, b Vec) float64 { return a.X*b.X + a.Y*b.Y }

// Perp returns v rotated by 90 degrees counter-clockwise.
func Perp(v Vec) Vec { return Vec{X: -v.Y, Y: v.X} }

// Direction returns the unit vector from a to b, or the zero vector when the
// points coincide.
func Direction(a, b Vec) Vec {
	d := b.Minus(a)
	if d.Magnitude() < eps {
		return Vec{}
	}
	return d.Unit()
}

// DistPointSegment returns the distance from p to the segment [a, b].
// A zero-length segment degrades to the distance between p and a.
func DistPointSegment(p, a, b Vec) float64 {
	ab := b.Minus(a)
	l2 := Dot(ab, ab)
	if l2 < eps {
		return p.DistanceFrom(a)
	}
	t := math.Max(0, math.Min(1, Dot(p.Minus(a), ab)/l2))
	return p.DistanceFrom(a.Plus(ab.Times(t)))
}

// SegmentsIntersect reports whether the closed segments [a0, a1] and [b0, b1]
// share at least one point. Zero-length segments never intersect.
func SegmentsIntersect(a0, a1, b0, b1 Vec) bool {
	if a0.DistanceFrom(a1) < eps || b0.DistanceFrom(b1) < eps {
		return false
	}
	d1 := orientation(b0, b1, a0)
	d2 := orientation(b0, b1, a1)
	d3 := orientation(a0, a1, b0)
	d4 := orientation(a0, a1, b1)

	if d1*d2 < 0 && d3*d4 < 0 {
		return true
	}
	switch {
	case d1 == 0 && onSegment(b0, b1, a0):
		return true
	case d2 == 0 && onSegment(b0, b1, a1):
		return true
	case d3 == 0 && onSegment(a0, a1, b0):
		return true
	case d4 == 0 && onSegment(a0, a1, b1):
		return true
	}
	return false
}

// orientation returns the sign of the turn a → b → c snapped to {-1, 0, 1}.
func orientation(a, b, c Vec) float64 {
	v := Cross(b.Minus(a), c.Minus(a))
	switch {
	case v > eps:
		return 1
	case v < -eps:
		return -1
	}
	return 0
}

// onSegment reports whether the collinear point p lies within the bounds of [a, b].
func onSegment(a, b, p Vec) bool {
	return p.X >= math.Min(a.X, b.X)-eps && p.X <= math.Max(a.X, b.X)+eps &&
		p.Y >= math.Min(a.Y, b.Y)-eps && p.Y <= math.Max(a.Y, b.Y)+eps
}

// RayIntersectsSegment reports whether the ray starting at from and heading
// towards to crosses the segment [a, b]. Parallel segments and zero-length
// rays never intersect.
func RayIntersectsSegment(from, to, a, b Vec) bool {
	r := to.Minus(from)
	if r.Magnitude() < eps {
		return false
	}
	s := b.Minus(a)
	denom := Cross(r, s)
	if math.Abs(denom) < eps {
		return false
	}
	af := a.Minus(from)
	t := Cross(af, s) / denom
	u := Cross(af, r) / denom
	return t >= 0 && u >= 0 && u <= 1
}
