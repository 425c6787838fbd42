package detect

import (
	"math"
	"slices"

	"github.com/matzehuels/rxnpath/pkg/geometry"
	"github.com/matzehuels/rxnpath/pkg/reaction"
)

// edge is one reactant group feeding one product block through an arrow.
type edge struct {
	from, to  int
	arrow     int
	catalysts []int
}

// hit returns the nearest alive block crossed by the ray leaving from in
// direction dir, skipping exclude. It returns -1 when the ray hits nothing.
func (s *scene) hit(from, dir geometry.Vec, exclude int) int {
	best, bestDist := -1, math.Inf(1)
	to := from.Plus(dir)
	for i, b := range s.blocks {
		if !b.alive || i == exclude {
			continue
		}
		if !geometry.RayIntersectsRect(from, to, b.box) {
			continue
		}
		if d := geometry.PointDistanceToRect(from, b.box); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// connect records that the from blocks react to the to block through arrow.
func (s *scene) connect(from []int, to, arrow int) {
	target := s.blocks[to]
	target.side = target.side.AsProduct()
	for _, f := range from {
		src := s.blocks[f]
		src.side = src.side.AsReactant()
		src.arrowsTo = append(src.arrowsTo, to)
		target.arrowsFrom = append(target.arrowsFrom, f)
		s.edges = append(s.edges, edge{from: f, to: to, arrow: arrow})
	}
}

// assignArrows reads every simple arrow: the block past the head is the
// product, the block behind the tail the reactant.
func (s *scene) assignArrows() error {
	for i, a := range s.meta.Arrows() {
		begin, end := a.Begin(), a.End()
		if a.Length() < 1e-9 {
			return badPathway("arrow %d has zero length", i)
		}
		forward := end.Minus(begin)
		product := s.hit(end, forward, -1)
		if product < 0 {
			return badPathway("arrow %d points at nothing", i)
		}
		reactant := s.hit(begin, forward.Times(-1), product)
		if reactant < 0 {
			return badPathway("arrow %d starts from nothing", i)
		}
		s.connect([]int{reactant}, product, i)
	}
	return nil
}

// assignMultitails reads every multi-tail arrow. The head must reach a
// product and every tail a reactant group.
func (s *scene) assignMultitails() error {
	for i, m := range s.meta.MultitailArrows() {
		if len(m.Tails) < reaction.MinMultitailTails {
			return badPathway("multi-tail arrow %d has %d tails", i, len(m.Tails))
		}
		dir := geometry.V(1, 0)
		if m.Head.X < m.SpineX() {
			dir = geometry.V(-1, 0)
		}
		product := s.hit(m.Head, dir, -1)
		if product < 0 {
			return badPathway("multi-tail arrow %d points at nothing", i)
		}
		var from []int
		for t, tail := range m.Tails {
			r := s.hit(tail, dir.Times(-1), product)
			if r < 0 {
				return badPathway("multi-tail arrow %d: tail %d is not connected", i, t)
			}
			if !slices.Contains(from, r) {
				from = append(from, r)
			}
		}
		s.connect(from, product, i)
	}
	return nil
}

// zoneOf returns the zone built for a metadata object.
func (s *scene) zoneOf(object int) *zone {
	for z := range s.zones {
		if s.zones[z].object == object {
			return &s.zones[z]
		}
	}
	return nil
}

// firstEdge returns the index of the first edge drawn by arrow.
func (s *scene) firstEdge(arrow int) int {
	return slices.IndexFunc(s.edges, func(e edge) bool { return e.arrow == arrow })
}

// assignCatalysts turns undefined blocks above or below an arrow into
// catalysts of the first reaction drawn by it.
func (s *scene) assignCatalysts() {
	for e := range s.edges {
		if s.firstEdge(s.edges[e].arrow) != e {
			continue
		}
		z := s.zoneOf(s.edges[e].arrow)
		if z == nil {
			continue
		}
		for b, blk := range s.blocks {
			if !blk.alive || blk.side != reaction.SideUndefined {
				continue
			}
			hull := geometry.RectHull(blk.box)
			if z.intersects(arrowTop, hull) || z.intersects(arrowBottom, hull) {
				blk.side = reaction.SideCatalyst
				s.edges[e].catalysts = append(s.edges[e].catalysts, b)
			}
		}
	}
}

// absorb merges undefined blocks into the nearest block closer than the
// merge distance, pass by pass, until a pass merges nothing. At most
// maxIterations passes may merge.
func (s *scene) absorb() error {
	limit := mergeDistance * s.d.bondLength
	for pass := 1; ; pass++ {
		merged := 0
		for b, blk := range s.blocks {
			if !blk.alive || blk.side != reaction.SideUndefined {
				continue
			}
			target, dist := -1, math.Inf(1)
			for o, other := range s.blocks {
				if o == b || !other.alive {
					continue
				}
				if d := geometry.RectDistance(blk.box, other.box); d < limit && d < dist {
					target, dist = o, d
				}
			}
			if target < 0 {
				continue
			}
			s.mergeBlock(b, target)
			merged++
		}
		if merged == 0 {
			s.d.logger.Debug("absorption settled", "passes", pass)
			return nil
		}
		if pass > s.d.maxIterations {
			return badPathway("absorption did not settle within %d passes", s.d.maxIterations)
		}
	}
}

func (s *scene) mergeBlock(src, dst int) {
	from, into := s.blocks[src], s.blocks[dst]
	into.comps = append(into.comps, from.comps...)
	into.box = geometry.Union(into.box, from.box)
	for _, c := range from.comps {
		s.owner[c] = dst
	}
	from.comps = nil
	from.alive = false
}
