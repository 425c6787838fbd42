package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectsOverlap(t *testing.T) {
	tests := []struct {
		name  string
		rects []Rect
		want  bool
	}{
		{"empty", nil, false},
		{"single", []Rect{NewRect(V(0, 0), V(1, 1))}, false},
		{"disjoint", []Rect{NewRect(V(0, 0), V(1, 1)), NewRect(V(2, 0), V(3, 1))}, false},
		{"touching x", []Rect{NewRect(V(0, 0), V(1, 1)), NewRect(V(1, 0), V(2, 1))}, false},
		{"touching y", []Rect{NewRect(V(0, 0), V(1, 1)), NewRect(V(0, 1), V(1, 2))}, false},
		{"overlapping", []Rect{NewRect(V(0, 0), V(2, 2)), NewRect(V(1, 1), V(3, 3))}, true},
		{"nested", []Rect{NewRect(V(0, 0), V(10, 10)), NewRect(V(4, 4), V(5, 5))}, true},
		{"identical", []Rect{NewRect(V(0, 0), V(1, 1)), NewRect(V(0, 0), V(1, 1))}, true},
		{"non-neighbour overlap", []Rect{
			NewRect(V(0, 0), V(10, 1)),
			NewRect(V(0, 2), V(10, 3)),
			NewRect(V(0, 4), V(10, 5)),
			NewRect(V(5, 0.5), V(6, 4.5)),
		}, true},
		{"column stack", []Rect{
			NewRect(V(0, 0), V(1, 1)),
			NewRect(V(0, 1.5), V(1, 2.5)),
			NewRect(V(0, 3), V(1, 4)),
			NewRect(V(2, 0), V(3, 4)),
		}, false},
		{"degenerate ignored", []Rect{NewRect(V(0, 0), V(2, 2)), NewRect(V(1, 1), V(1, 1))}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RectsOverlap(tt.rects))
		})
	}
}

func TestConvexPolygonsIntersect(t *testing.T) {
	square := []Vec{V(0, 0), V(2, 0), V(2, 2), V(0, 2)}
	tests := []struct {
		name string
		p, q []Vec
		want bool
	}{
		{"overlap", square, []Vec{V(1, 1), V(3, 1), V(3, 3), V(1, 3)}, true},
		{"apart", square, []Vec{V(3, 3), V(4, 3), V(4, 4)}, false},
		{"touching", square, []Vec{V(2, 0), V(4, 0), V(4, 2), V(2, 2)}, true},
		{"diagonal gap", square, []Vec{V(3, 2.5), V(2.5, 3), V(4, 4)}, false},
		{"closed polygon", append(append([]Vec{}, square...), square[0]), []Vec{V(1, 1), V(5, 1), V(5, 5)}, true},
		{"degenerate", square, []Vec{V(0, 0), V(1, 1)}, false},
		{"collinear", square, []Vec{V(0, 0), V(1, 1), V(2, 2)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConvexPolygonsIntersect(tt.p, tt.q))
		})
	}
}

func TestRayIntersectsRect(t *testing.T) {
	box := NewRect(V(4, -1), V(6, 1))
	tests := []struct {
		name     string
		from, to Vec
		want     bool
	}{
		{"towards", V(0, 0), V(1, 0), true},
		{"away", V(0, 0), V(-1, 0), false},
		{"beyond target point", V(0, 0), V(0.001, 0), true},
		{"miss above", V(0, 5), V(1, 5), false},
		{"from inside", V(5, 0), V(5, 3), true},
		{"zero length", V(0, 0), V(0, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RayIntersectsRect(tt.from, tt.to, box))
		})
	}
	assert.False(t, RayIntersectsRect(V(0, 0), V(1, 0), NewRect(V(4, 0), V(6, 0))), "degenerate rect")
}

func TestSegmentsIntersect(t *testing.T) {
	assert.True(t, SegmentsIntersect(V(0, 0), V(2, 2), V(0, 2), V(2, 0)))
	assert.False(t, SegmentsIntersect(V(0, 0), V(1, 1), V(2, 2), V(3, 1)))
	assert.True(t, SegmentsIntersect(V(0, 0), V(2, 0), V(1, 0), V(3, 0)), "collinear overlap")
	assert.False(t, SegmentsIntersect(V(0, 0), V(1, 0), V(2, 0), V(3, 0)), "collinear apart")
	assert.False(t, SegmentsIntersect(V(0, 0), V(0, 0), V(-1, 0), V(1, 0)), "zero length")
}

func TestRectDistance(t *testing.T) {
	a := NewRect(V(0, 0), V(1, 1))
	assert.InDelta(t, 0, RectDistance(a, NewRect(V(0.5, 0.5), V(2, 2))), 1e-9)
	assert.InDelta(t, 2, RectDistance(a, NewRect(V(3, 0), V(4, 1))), 1e-9)
	assert.InDelta(t, 2, RectDistance(a, NewRect(V(0, -4), V(1, -2))), 1e-9)
	assert.InDelta(t, 5, RectDistance(a, NewRect(V(4, 5), V(6, 6))), 1e-9)
}

func TestPointDistanceToRect(t *testing.T) {
	r := NewRect(V(0, 0), V(2, 2))
	assert.Zero(t, PointDistanceToRect(V(1, 1), r))
	assert.InDelta(t, 1, PointDistanceToRect(V(3, 1), r), 1e-9)
	assert.InDelta(t, 5, PointDistanceToRect(V(5, 6), r), 1e-9)
}

func TestContainmentRatio(t *testing.T) {
	outer := NewRect(V(0, 0), V(4, 4))
	assert.InDelta(t, 1, ContainmentRatio(NewRect(V(1, 1), V(2, 2)), outer), 1e-9)
	assert.InDelta(t, 0.5, ContainmentRatio(NewRect(V(3, 0), V(5, 2)), outer), 1e-9)
	assert.Zero(t, ContainmentRatio(NewRect(V(5, 5), V(6, 6)), outer))
	assert.Zero(t, ContainmentRatio(NewRect(V(1, 1), V(1, 3)), outer), "zero-area inner")
}

func TestConvexHullDistance(t *testing.T) {
	a := RectHull(NewRect(V(0, 0), V(1, 1)))
	b := RectHull(NewRect(V(3, 0), V(4, 1)))
	assert.InDelta(t, 2, ConvexHullDistance(a, b), 1e-9)
	assert.Zero(t, ConvexHullDistance(a, RectHull(NewRect(V(0.5, 0.5), V(2, 2)))))
	assert.InDelta(t, 1, ConvexHullDistance(a, []Vec{V(2, 0.5)}), 1e-9, "point hull")
	assert.InDelta(t, 1, ConvexHullDistance([]Vec{V(-1, -5), V(-1, 5)}, a), 1e-9, "segment hull")
	assert.Zero(t, ConvexHullDistance(nil, a))
}

func TestPointInConvexPolygon(t *testing.T) {
	tri := []Vec{V(0, 0), V(4, 0), V(0, 4)}
	assert.True(t, PointInConvexPolygon(V(1, 1), tri))
	assert.True(t, PointInConvexPolygon(V(2, 0), tri), "boundary")
	assert.False(t, PointInConvexPolygon(V(3, 3), tri))
	assert.False(t, PointInConvexPolygon(V(0, 0), []Vec{V(0, 0), V(1, 1)}))
}

func TestUnionAndInflate(t *testing.T) {
	u := Union(NewRect(V(0, 0), V(1, 1)), NewRect(V(2, -1), V(3, 0.5)))
	assert.Equal(t, NewRect(V(0, -1), V(3, 1)), u)
	assert.Equal(t, NewRect(V(-1, -1), V(2, 2)), Inflate(NewRect(V(0, 0), V(1, 1)), 1))
	assert.Equal(t, V(1.5, 0), Center(u))
}
