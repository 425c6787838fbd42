package detect

import (
	"github.com/matzehuels/rxnpath/pkg/geometry"
	"github.com/matzehuels/rxnpath/pkg/reaction"
)

// component is a group of molecules that always moves together.
type component struct {
	mols   []int
	box    geometry.Rect
	hull   []geometry.Vec
	center geometry.Vec

	// sections holds, per zone, the section the component lies in.
	sections []int
}

// scene is the working state of one Detect call.
type scene struct {
	d     *Detector
	mols  []reaction.Molecule
	meta  *reaction.Metadata
	zones []zone
	comps []component

	blocks []*summBlock
	owner  []int // component -> block
	edges  []edge
}

func (s *scene) buildZones() {
	bl := s.d.bondLength
	for i, o := range s.meta.Objects {
		switch v := o.(type) {
		case *reaction.Plus:
			s.zones = append(s.zones, plusZone(i, v.Pos, plusHalfSize*bl, zoneDepth*bl))
		case *reaction.Arrow:
			s.zones = append(s.zones, arrowZone(i, v.Begin(), v.End(), zoneDepth*bl, catalystHeight*bl))
		case *reaction.MultitailArrow:
			s.zones = append(s.zones, multitailZone(i, v, zoneDepth*bl, catalystHeight*bl))
		case *reaction.Text:
			// Texts never separate molecules.
		}
	}
}

// extractComponents makes one component per molecule, padding boxes smaller
// than the minimum size around their centre.
func (s *scene) extractComponents() {
	half := minMoleculeSize * s.d.bondLength / 2
	s.comps = make([]component, len(s.mols))
	for i, m := range s.mols {
		box := m.BoundingBox()
		c := geometry.Center(box)
		box = geometry.Union(box, geometry.RectAround(c, half, half))
		s.comps[i] = s.newComponent([]int{i}, box)
	}
}

func (s *scene) newComponent(mols []int, box geometry.Rect) component {
	c := component{
		mols:   mols,
		box:    box,
		hull:   geometry.RectHull(box),
		center: geometry.Center(box),
	}
	c.sections = make([]int, len(s.zones))
	for z := range s.zones {
		c.sections[z] = s.zones[z].sectionOf(c.hull, c.center)
	}
	return c
}

// isMergeable reports whether no zone puts a and b in different sections.
func isMergeable(a, b *component) bool {
	for z := range a.sections {
		sa, sb := a.sections[z], b.sections[z]
		if sa != noSection && sb != noSection && sa != sb {
			return false
		}
	}
	return true
}

// premerge clusters components closer than the merge distance, pass by pass,
// until a pass merges nothing. At most maxIterations passes may merge.
func (s *scene) premerge() error {
	limit := mergeDistance * s.d.bondLength
	for pass := 1; ; pass++ {
		merged, changed := s.mergePass(limit)
		s.comps = merged
		if !changed {
			s.d.logger.Debug("proximity merge settled", "passes", pass)
			return nil
		}
		if pass > s.d.maxIterations {
			return badPathway("proximity merge did not settle within %d passes", s.d.maxIterations)
		}
	}
}

func (s *scene) mergePass(limit float64) ([]component, bool) {
	n := len(s.comps)
	seen := make([]bool, n)
	var out []component
	changed := false
	for start := range n {
		if seen[start] {
			continue
		}
		seen[start] = true
		cluster := []int{start}
		for head := 0; head < len(cluster); head++ {
			cur := &s.comps[cluster[head]]
			for cand := range n {
				if seen[cand] {
					continue
				}
				other := &s.comps[cand]
				if geometry.ConvexHullDistance(cur.hull, other.hull) >= limit {
					continue
				}
				if !s.fitsCluster(cluster, other) {
					continue
				}
				seen[cand] = true
				cluster = append(cluster, cand)
			}
		}
		if len(cluster) == 1 {
			out = append(out, s.comps[start])
			continue
		}
		changed = true
		out = append(out, s.join(cluster))
	}
	return out, changed
}

func (s *scene) fitsCluster(cluster []int, c *component) bool {
	for _, m := range cluster {
		if !isMergeable(&s.comps[m], c) {
			return false
		}
	}
	return true
}

// join merges components. The merged component keeps, per zone, the first
// section any member lies in.
func (s *scene) join(members []int) component {
	first := s.comps[members[0]]
	out := component{
		box:      first.box,
		sections: append([]int(nil), first.sections...),
	}
	for _, m := range members {
		c := &s.comps[m]
		out.mols = append(out.mols, c.mols...)
		out.box = geometry.Union(out.box, c.box)
		for z, sec := range c.sections {
			if out.sections[z] == noSection {
				out.sections[z] = sec
			}
		}
	}
	out.hull = geometry.RectHull(out.box)
	out.center = geometry.Center(out.box)
	return out
}
