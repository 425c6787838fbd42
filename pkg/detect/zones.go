package detect

import (
	"slices"

	"github.com/matzehuels/rxnpath/pkg/geometry"
	"github.com/matzehuels/rxnpath/pkg/reaction"
)

// noSection marks a component outside every section of a zone.
const noSection = -1

// Sections of a plus zone.
const (
	plusLeft = iota
	plusRight
	plusTop
	plusBottom
)

// Sections of an arrow zone. Multi-tail arrows use the same first three
// indices for the head and the catalyst areas beside the head segment,
// followed by the spine and one section per tail.
const (
	arrowHead = iota
	arrowTop
	arrowBottom
	arrowTail
	multitailSpine = arrowTail
)

// zone partitions the plane around one metadata object into convex sections.
type zone struct {
	object   int
	sections [][]geometry.Vec
}

// sectionOf returns the section holding the centre of a component, or the
// first section its hull touches.
func (z *zone) sectionOf(hull []geometry.Vec, center geometry.Vec) int {
	for s, poly := range z.sections {
		if geometry.PointInConvexPolygon(center, poly) {
			return s
		}
	}
	for s, poly := range z.sections {
		if geometry.ConvexPolygonsIntersect(hull, poly) {
			return s
		}
	}
	return noSection
}

// intersects reports whether hull touches the given section.
func (z *zone) intersects(section int, hull []geometry.Vec) bool {
	if section < 0 || section >= len(z.sections) {
		return false
	}
	return geometry.ConvexPolygonsIntersect(hull, z.sections[section])
}

// plusZone builds four trapezoids fanning out of the plus at 45 degrees,
// starting near from its centre and ending far from it.
func plusZone(obj int, p geometry.Vec, near, far float64) zone {
	z := zone{object: obj, sections: make([][]geometry.Vec, 4)}
	dirs := [4]geometry.Vec{
		plusLeft:   geometry.V(-1, 0),
		plusRight:  geometry.V(1, 0),
		plusTop:    geometry.V(0, 1),
		plusBottom: geometry.V(0, -1),
	}
	for s, d := range dirs {
		n := geometry.Perp(d)
		z.sections[s] = []geometry.Vec{
			p.Plus(d.Times(near)).Plus(n.Times(near)),
			p.Plus(d.Times(near)).Minus(n.Times(near)),
			p.Plus(d.Times(far)).Minus(n.Times(far)),
			p.Plus(d.Times(far)).Plus(n.Times(far)),
		}
	}
	return z
}

// arrowZone builds the head and tail rectangles beyond the arrow ends and the
// catalyst rectangles above and below the shaft. A zero-length arrow gets no
// sections.
func arrowZone(obj int, begin, end geometry.Vec, depth, height float64) zone {
	z := zone{object: obj}
	u := geometry.Direction(begin, end)
	if u == (geometry.Vec{}) {
		return z
	}
	n := geometry.Perp(u)
	at := func(origin geometry.Vec, along, across float64) geometry.Vec {
		return origin.Plus(u.Times(along)).Plus(n.Times(across))
	}
	z.sections = make([][]geometry.Vec, 4)
	z.sections[arrowHead] = []geometry.Vec{at(end, 0, -depth), at(end, 0, depth), at(end, depth, depth), at(end, depth, -depth)}
	z.sections[arrowTop] = []geometry.Vec{begin, end, at(end, 0, height), at(begin, 0, height)}
	z.sections[arrowBottom] = []geometry.Vec{begin, at(begin, 0, -height), at(end, 0, -height), end}
	z.sections[arrowTail] = []geometry.Vec{at(begin, -depth, depth), at(begin, -depth, -depth), at(begin, 0, -depth), at(begin, 0, depth)}
	return z
}

// multitailZone builds the head, the catalyst areas beside the head
// segment, the spine and one band per tail reaching depth behind the tails.
// Tail bands split the vertical space halfway between neighbouring tails.
func multitailZone(obj int, m *reaction.MultitailArrow, depth, height float64) zone {
	z := zone{object: obj}
	sx := m.SpineX()
	dir := 1.0
	if m.Head.X < sx {
		dir = -1
	}
	base := geometry.V(sx, m.Head.Y)
	if m.Head.DistanceFrom(base) < 1e-9 {
		return z
	}

	shaft := arrowZone(obj, base, m.Head, depth, height)
	z.sections = append(z.sections, shaft.sections[arrowHead], shaft.sections[arrowTop], shaft.sections[arrowBottom])

	tails := slices.Clone(m.Tails)
	slices.SortFunc(tails, func(a, b geometry.Vec) int {
		switch {
		case a.Y > b.Y:
			return -1
		case a.Y < b.Y:
			return 1
		}
		return 0
	})
	reach := sx
	for _, t := range tails {
		if dir > 0 {
			reach = min(reach, t.X)
		} else {
			reach = max(reach, t.X)
		}
	}
	top := max(m.SpineBegin.Y, m.SpineEnd.Y)
	bottom := min(m.SpineBegin.Y, m.SpineEnd.Y)
	z.sections = append(z.sections, geometry.RectHull(geometry.NewRect(geometry.V(reach, bottom), geometry.V(sx, top))))

	for i, t := range tails {
		hi, lo := t.Y+depth, t.Y-depth
		if i > 0 {
			hi = (tails[i-1].Y + t.Y) / 2
		}
		if i < len(tails)-1 {
			lo = (tails[i+1].Y + t.Y) / 2
		}
		z.sections = append(z.sections, geometry.RectHull(geometry.NewRect(
			geometry.V(t.X-dir*depth, lo),
			geometry.V(t.X, hi),
		)))
	}
	return z
}
