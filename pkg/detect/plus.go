package detect

import (
	"sort"

	"github.com/matzehuels/rxnpath/pkg/geometry"
	"github.com/matzehuels/rxnpath/pkg/reaction"
)

type itemKind int

const (
	itemMolecule itemKind = iota
	itemPlus
	itemArrow
)

// neighbourIndex answers "nearest item beside this point" queries over the
// components and graphics of a scene. Items are kept in four orders, one per
// box edge, so each query is a handful of binary searches plus a scan that
// stops at the first hit.
type neighbourIndex struct {
	boxes []geometry.Rect
	kinds []itemKind
	refs  []int

	byLeft   []int // ascending Min.X
	byRight  []int // ascending Max.X
	byBottom []int // ascending Min.Y
	byTop    []int // ascending Max.Y

	stamp []int
	gen   int
}

func (s *scene) newNeighbourIndex() *neighbourIndex {
	idx := &neighbourIndex{}
	for i := range s.comps {
		idx.add(s.comps[i].box, itemMolecule, i)
	}
	half := plusHalfSize * s.d.bondLength
	for i, o := range s.meta.Objects {
		switch v := o.(type) {
		case *reaction.Plus:
			idx.add(geometry.RectAround(v.Pos, half, half), itemPlus, i)
		case *reaction.Arrow, *reaction.MultitailArrow:
			idx.add(geometry.Inflate(v.Bounds(), half), itemArrow, i)
		}
	}
	idx.byLeft = idx.sorted(func(r geometry.Rect) float64 { return r.Min.X })
	idx.byRight = idx.sorted(func(r geometry.Rect) float64 { return r.Max.X })
	idx.byBottom = idx.sorted(func(r geometry.Rect) float64 { return r.Min.Y })
	idx.byTop = idx.sorted(func(r geometry.Rect) float64 { return r.Max.Y })
	idx.stamp = make([]int, len(idx.boxes))
	return idx
}

func (idx *neighbourIndex) add(box geometry.Rect, kind itemKind, ref int) {
	idx.boxes = append(idx.boxes, box)
	idx.kinds = append(idx.kinds, kind)
	idx.refs = append(idx.refs, ref)
}

func (idx *neighbourIndex) sorted(key func(geometry.Rect) float64) []int {
	order := make([]int, len(idx.boxes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return key(idx.boxes[order[a]]) < key(idx.boxes[order[b]])
	})
	return order
}

// search returns the first position in order whose key is > v (strict) or
// >= v.
func (idx *neighbourIndex) search(order []int, key func(geometry.Rect) float64, v float64, strict bool) int {
	return sort.Search(len(order), func(i int) bool {
		k := key(idx.boxes[order[i]])
		if strict {
			return k > v
		}
		return k >= v
	})
}

// markSpan stamps every item whose [lo, hi] span, read through the two
// orders, covers v. It returns the stamp.
func (idx *neighbourIndex) markSpan(byLo, byHi []int, lo, hi func(geometry.Rect) float64, v float64) int {
	idx.gen++
	g := idx.gen
	// hi >= v
	for _, it := range byHi[idx.search(byHi, hi, v, false):] {
		idx.stamp[it] = g
	}
	// lo <= v, kept only when also stamped above
	idx.gen++
	for _, it := range byLo[:idx.search(byLo, lo, v, true)] {
		if idx.stamp[it] == g {
			idx.stamp[it] = idx.gen
		}
	}
	return idx.gen
}

var (
	minX = func(r geometry.Rect) float64 { return r.Min.X }
	maxX = func(r geometry.Rect) float64 { return r.Max.X }
	minY = func(r geometry.Rect) float64 { return r.Min.Y }
	maxY = func(r geometry.Rect) float64 { return r.Max.Y }
)

// neighbours returns the nearest items on the four sides of p, or -1. An
// item counts on a side only when its span across that direction covers p.
// Items containing p are never neighbours.
func (idx *neighbourIndex) neighbours(p geometry.Vec) (left, right, below, above int) {
	left, right, below, above = -1, -1, -1, -1

	g := idx.markSpan(idx.byBottom, idx.byTop, minY, maxY, p.Y)
	for _, it := range idx.byLeft[idx.search(idx.byLeft, minX, p.X, true):] {
		if idx.stamp[it] == g {
			right = it
			break
		}
	}
	lefts := idx.byRight[:idx.search(idx.byRight, maxX, p.X, false)]
	for i := len(lefts) - 1; i >= 0; i-- {
		if idx.stamp[lefts[i]] == g {
			left = lefts[i]
			break
		}
	}

	g = idx.markSpan(idx.byLeft, idx.byRight, minX, maxX, p.X)
	for _, it := range idx.byBottom[idx.search(idx.byBottom, minY, p.Y, true):] {
		if idx.stamp[it] == g {
			above = it
			break
		}
	}
	belows := idx.byTop[:idx.search(idx.byTop, maxY, p.Y, false)]
	for i := len(belows) - 1; i >= 0; i-- {
		if idx.stamp[belows[i]] == g {
			below = belows[i]
			break
		}
	}
	return left, right, below, above
}

// plusNeighbours returns the two components a plus at p joins: left and
// right, or above and below when that pair is closer or the horizontal one
// is not made of two molecules.
func (idx *neighbourIndex) plusNeighbours(p geometry.Vec) (a, b int, ok bool) {
	left, right, below, above := idx.neighbours(p)
	isMol := func(it int) bool { return it >= 0 && idx.kinds[it] == itemMolecule }

	hOK := isMol(left) && isMol(right)
	vOK := isMol(below) && isMol(above)
	switch {
	case hOK && vOK:
		h := idx.boxes[right].Min.X - idx.boxes[left].Max.X
		v := idx.boxes[above].Min.Y - idx.boxes[below].Max.Y
		if v < h {
			return idx.refs[above], idx.refs[below], true
		}
		return idx.refs[left], idx.refs[right], true
	case hOK:
		return idx.refs[left], idx.refs[right], true
	case vOK:
		return idx.refs[above], idx.refs[below], true
	}
	return -1, -1, false
}

// summBlock is a plus-joined group of components with one role.
type summBlock struct {
	comps []int
	box   geometry.Rect
	side  reaction.Side
	alive bool

	// arrowsTo and arrowsFrom hold the blocks on the other end of the arrows
	// leaving and entering this block.
	arrowsTo   []int
	arrowsFrom []int
}

// buildBlocks unions the components joined by pluses. Blocks are ordered by
// their first component.
func (s *scene) buildBlocks() {
	parent := make([]int, len(s.comps))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}

	idx := s.newNeighbourIndex()
	joined := 0
	for i, plus := range s.meta.Pluses() {
		a, b, ok := idx.plusNeighbours(plus.Pos)
		if !ok {
			s.d.logger.Debug("plus left unconnected", "object", i)
			continue
		}
		ra, rb := find(a), find(b)
		if ra == rb {
			continue
		}
		parent[max(ra, rb)] = min(ra, rb)
		joined++
	}

	s.owner = make([]int, len(s.comps))
	blockOf := make(map[int]int)
	for c := range s.comps {
		r := find(c)
		bi, ok := blockOf[r]
		if !ok {
			bi = len(s.blocks)
			blockOf[r] = bi
			s.blocks = append(s.blocks, &summBlock{box: s.comps[c].box, alive: true})
		}
		blk := s.blocks[bi]
		blk.comps = append(blk.comps, c)
		blk.box = geometry.Union(blk.box, s.comps[c].box)
		s.owner[c] = bi
	}
	s.d.logger.Debug("blocks built", "blocks", len(s.blocks), "joins", joined)
}

// molecules returns the molecules of a block ordered left to right.
func (s *scene) molecules(b int) []int {
	var out []int
	for _, c := range s.blocks[b].comps {
		out = append(out, s.comps[c].mols...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		bi, bj := s.mols[out[i]].BoundingBox(), s.mols[out[j]].BoundingBox()
		if bi.Min.X != bj.Min.X {
			return bi.Min.X < bj.Min.X
		}
		return bi.Max.Y > bj.Max.Y
	})
	return out
}

func (s *scene) aliveBlocks() int {
	n := 0
	for _, b := range s.blocks {
		if b.alive {
			n++
		}
	}
	return n
}
