package geometry

import "math"

// PolygonArea returns the unsigned area of a simple polygon (shoelace formula).
// A trailing vertex equal to the first one is allowed.
func PolygonArea(poly []Vec) float64 {
	if len(poly) < 3 {
		return 0
	}
	var s float64
	for i := range poly {
		j := (i + 1) % len(poly)
		s += Cross(poly[i], poly[j])
	}
	return math.Abs(s) / 2
}

// PolygonBounds returns the bounding rectangle of poly. An empty polygon yields
// the zero rectangle.
func PolygonBounds(poly []Vec) Rect {
	if len(poly) == 0 {
		return Rect{}
	}
	r := Rect{Min: poly[0], Max: poly[0]}
	for _, p := range poly[1:] {
		r.ExpandToContainCoord(p)
	}
	return r
}

// ConvexPolygonsIntersect reports whether two convex polygons overlap or touch,
// using the separating axis theorem. Vertices must be ordered (either
// winding); polygons may be given closed. Degenerate polygons report false.
func ConvexPolygonsIntersect(p, q []Vec) bool {
	if PolygonArea(p) < eps || PolygonArea(q) < eps {
		return false
	}
	return !hasSeparatingAxis(p, q) && !hasSeparatingAxis(q, p)
}

func hasSeparatingAxis(a, b []Vec) bool {
	for i := range a {
		edge := a[(i+1)%len(a)].Minus(a[i])
		if edge.Magnitude() < eps {
			continue
		}
		axis := Perp(edge)
		minA, maxA := project(a, axis)
		minB, maxB := project(b, axis)
		if maxA < minB || maxB < minA {
			return true
		}
	}
	return false
}

func project(poly []Vec, axis Vec) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range poly {
		d := Dot(p, axis)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}

// PointInConvexPolygon reports whether p lies inside or on the boundary of the
// convex polygon poly.
func PointInConvexPolygon(p Vec, poly []Vec) bool {
	if PolygonArea(poly) < eps {
		return false
	}
	var sign float64
	for i := range poly {
		a, b := poly[i], poly[(i+1)%len(poly)]
		if a.DistanceFrom(b) < eps {
			continue
		}
		c := Cross(b.Minus(a), p.Minus(a))
		if math.Abs(c) < eps {
			continue
		}
		if sign == 0 {
			sign = math.Copysign(1, c)
		} else if sign*c < 0 {
			return false
		}
	}
	return true
}

// ConvexHullDistance returns the minimum distance between two convex hulls,
// or 0 when they intersect. Hulls may also be a single point or a segment.
// Empty input yields 0.
func ConvexHullDistance(a, b []Vec) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(a) >= 3 && len(b) >= 3 && ConvexPolygonsIntersect(a, b) {
		return 0
	}
	if len(a) >= 3 && PointInConvexPolygon(b[0], a) {
		return 0
	}
	if len(b) >= 3 && PointInConvexPolygon(a[0], b) {
		return 0
	}

	ea, eb := hullEdges(a), hullEdges(b)
	best := math.Inf(1)
	for _, sa := range ea {
		for _, sb := range eb {
			if SegmentsIntersect(sa[0], sa[1], sb[0], sb[1]) {
				return 0
			}
			best = math.Min(best, DistPointSegment(sa[0], sb[0], sb[1]))
			best = math.Min(best, DistPointSegment(sa[1], sb[0], sb[1]))
			best = math.Min(best, DistPointSegment(sb[0], sa[0], sa[1]))
			best = math.Min(best, DistPointSegment(sb[1], sa[0], sa[1]))
		}
	}
	return best
}

// hullEdges returns the boundary segments of a hull. A single point becomes a
// zero-length segment and two points a single segment.
func hullEdges(h []Vec) [][2]Vec {
	switch len(h) {
	case 1:
		return [][2]Vec{{h[0], h[0]}}
	case 2:
		return [][2]Vec{{h[0], h[1]}}
	}
	edges := make([][2]Vec, len(h))
	for i := range h {
		edges[i] = [2]Vec{h[i], h[(i+1)%len(h)]}
	}
	return edges
}
