package geometry

import (
	"cmp"
	"math"
	"slices"
)

// NewRect returns the rectangle spanned by two opposite corners in any order.
func NewRect(a, b Vec) Rect {
	return Rect{
		Min: Vec{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: Vec{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

// RectAround returns the rectangle centred on c with half extents hw and hh.
func RectAround(c Vec, hw, hh float64) Rect {
	return NewRect(V(c.X-hw, c.Y-hh), V(c.X+hw, c.Y+hh))
}

// Union returns the smallest rectangle containing both a and b.
func Union(a, b Rect) Rect {
	a.ExpandToContainRect(b)
	return a
}

// Inflate grows r by d on every side. A negative d shrinks it.
func Inflate(r Rect, d float64) Rect {
	return Rect{
		Min: Vec{X: r.Min.X - d, Y: r.Min.Y - d},
		Max: Vec{X: r.Max.X + d, Y: r.Max.Y + d},
	}
}

// Translate returns r moved by offset.
func Translate(r Rect, offset Vec) Rect {
	return Rect{Min: r.Min.Plus(offset), Max: r.Max.Plus(offset)}
}

// Center returns the centre point of r.
func Center(r Rect) Vec {
	return Vec{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Area returns the area of r, or 0 for an inverted rectangle.
func Area(r Rect) float64 {
	w, h := r.Max.X-r.Min.X, r.Max.Y-r.Min.Y
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Degenerate reports whether r has no area.
func Degenerate(r Rect) bool { return Area(r) < eps }

// PointInRect reports whether p lies strictly inside r.
func PointInRect(p Vec, r Rect) bool {
	return r.Min.X < p.X && r.Min.Y < p.Y && r.Max.X > p.X && r.Max.Y > p.Y
}

// RectsIntersect reports whether a and b share at least one point.
func RectsIntersect(a, b Rect) bool {
	return !(a.Max.X < b.Min.X || a.Min.X > b.Max.X || a.Max.Y < b.Min.Y || a.Min.Y > b.Max.Y)
}

// RectDistance returns the gap between a and b: 0 when they touch or overlap,
// the euclidean corner distance when they are diagonal to each other.
func RectDistance(a, b Rect) float64 {
	if RectsIntersect(a, b) {
		return 0
	}
	dx := math.Max(0, math.Max(b.Min.X-a.Max.X, a.Min.X-b.Max.X))
	dy := math.Max(0, math.Max(b.Min.Y-a.Max.Y, a.Min.Y-b.Max.Y))
	if dx > 0 && dy > 0 {
		return math.Hypot(dx, dy)
	}
	return dx + dy
}

// PointDistanceToRect returns the distance from p to the nearest point of r,
// or 0 when p is inside r.
func PointDistanceToRect(p Vec, r Rect) float64 {
	dx := math.Max(0, math.Max(r.Min.X-p.X, p.X-r.Max.X))
	dy := math.Max(0, math.Max(r.Min.Y-p.Y, p.Y-r.Max.Y))
	return math.Hypot(dx, dy)
}

// RectHull returns the four corners of r counter-clockwise from the left-bottom
// corner. It is the cheap convex hull used for drawn components.
func RectHull(r Rect) []Vec {
	return []Vec{
		r.Min,
		{X: r.Max.X, Y: r.Min.Y},
		r.Max,
		{X: r.Min.X, Y: r.Max.Y},
	}
}

// RayIntersectsRect reports whether the ray starting at from and heading
// towards to crosses any edge of rect. Zero-length rays and zero-area
// rectangles report false.
func RayIntersectsRect(from, to Vec, rect Rect) bool {
	if Degenerate(rect) {
		return false
	}
	hull := RectHull(rect)
	for i := range hull {
		if RayIntersectsSegment(from, to, hull[i], hull[(i+1)%len(hull)]) {
			return true
		}
	}
	return false
}

// ContainmentRatio returns the share of inner's area that lies within outer,
// in [0, 1]. A zero-area inner rectangle yields 0.
func ContainmentRatio(inner, outer Rect) float64 {
	ia := Area(inner)
	if ia < eps {
		return 0
	}
	overlap := Rect{
		Min: Vec{X: math.Max(inner.Min.X, outer.Min.X), Y: math.Max(inner.Min.Y, outer.Min.Y)},
		Max: Vec{X: math.Min(inner.Max.X, outer.Max.X), Y: math.Min(inner.Max.Y, outer.Max.Y)},
	}
	return Area(overlap) / ia
}

// interval is an active rectangle in the RectsOverlap sweep, keyed by its
// vertical extent.
type interval struct {
	lo, hi float64
	idx    int
}

func compareInterval(a, b interval) int {
	if c := cmp.Compare(a.lo, b.lo); c != 0 {
		return c
	}
	if c := cmp.Compare(a.hi, b.hi); c != 0 {
		return c
	}
	return cmp.Compare(a.idx, b.idx)
}

type sweepEvent struct {
	x     float64
	enter bool
	idx   int
}

// RectsOverlap reports whether any two rectangles overlap with positive area.
//
// It sweeps a vertical line over the 2N left/right edges sorted by x. The
// active set holds the y-intervals of the rectangles crossing the sweep line,
// ordered by (yMin, yMax). Active intervals are pairwise disjoint until the
// first overlap is found, so a newly entering interval only needs to be
// compared with its two neighbours. Rectangles that merely touch do not
// overlap, and degenerate rectangles are ignored.
func RectsOverlap(rects []Rect) bool {
	events := make([]sweepEvent, 0, 2*len(rects))
	for i, r := range rects {
		if Degenerate(r) {
			continue
		}
		events = append(events, sweepEvent{x: r.Min.X, enter: true, idx: i}, sweepEvent{x: r.Max.X, idx: i})
	}
	slices.SortFunc(events, func(a, b sweepEvent) int {
		if c := cmp.Compare(a.x, b.x); c != 0 {
			return c
		}
		if a.enter != b.enter {
			// exits first: touching edges are not an overlap
			if !a.enter {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.idx, b.idx)
	})

	var active []interval
	for _, e := range events {
		r := rects[e.idx]
		iv := interval{lo: r.Min.Y, hi: r.Max.Y, idx: e.idx}
		pos, found := slices.BinarySearchFunc(active, iv, compareInterval)
		if !e.enter {
			if found {
				active = slices.Delete(active, pos, pos+1)
			}
			continue
		}
		if pos > 0 && active[pos-1].hi > iv.lo {
			return true
		}
		if pos < len(active) && active[pos].lo < iv.hi {
			return true
		}
		active = slices.Insert(active, pos, iv)
	}
	return false
}
