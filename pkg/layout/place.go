package layout

import (
	"math"
	"unicode/utf8"

	"github.com/matzehuels/rxnpath/pkg/geometry"
	"github.com/matzehuels/rxnpath/pkg/reaction"
)

// subtree returns the items of the tree rooted at v in pre-order.
func (l *Layout) subtree(v int) []int {
	out := []int{v}
	for i := 0; i < len(out); i++ {
		out = append(out, l.items[out[i]].children...)
	}
	return out
}

// stackRoots moves every tree below the previous one, the first starting
// with its top edge at y = 0.
func (l *Layout) stackRoots() {
	top := 0.0
	for _, r := range l.roots {
		ids := l.subtree(r)
		hi, lo := math.Inf(-1), math.Inf(1)
		for _, id := range ids {
			it := &l.items[id]
			hi = max(hi, it.y+it.half)
			lo = min(lo, it.y-it.half)
		}
		dy := top - hi
		for _, id := range ids {
			l.items[id].y += dy
			l.items[id].x = l.colLeft[l.items[id].depth]
		}
		top = lo + dy - l.opts.RootGap
	}
}

// place moves the molecules to their rows and redraws the scheme graphics.
// Unassigned molecules and free texts end up below the trees.
func (l *Layout) place() Result {
	o := l.opts
	var res Result

	// Drop the old connectors; free texts stay and move below the trees.
	l.p.Meta.Retain(func(_ int, obj reaction.Object) bool {
		_, isText := obj.(*reaction.Text)
		return isText
	})
	var free []*reaction.Text
	for _, t := range l.p.Meta.Texts() {
		free = append(free, t)
	}
	for i := range l.p.Reactions {
		l.p.Reactions[i].Arrow = reaction.NoArrow
	}

	bottom := 0.0
	for i := range l.items {
		it := &l.items[i]
		box, ok := l.placeRow(it.mols, l.rowLeft(it), it.y)
		if !ok {
			box = geometry.RectAround(geometry.V(l.rowLeft(it), it.y), 0, it.half)
		}
		parent := none
		if it.parent != none {
			parent = l.items[it.parent].reaction
		}
		res.Rows = append(res.Rows, Row{Reaction: it.reaction, Parent: parent, Depth: it.depth, Box: box})
		bottom = min(bottom, it.y-it.half)
	}

	for i := range l.items {
		it := &l.items[i]
		if len(it.children) == 0 {
			continue
		}
		if len(it.children) == 1 {
			res.Arrows++
		} else {
			res.MultitailArrows++
		}
		l.connect(i)
	}

	x, y := 0.0, bottom-o.RootGap
	if n := len(l.colLeft); n > 0 {
		x = l.colLeft[n-1]
	}
	if box, ok := l.placeRow(l.p.Unassigned, x, y-o.BondLength); ok {
		y = box.Min.Y - o.RootGap
	}
	for _, t := range free {
		t.Translate(geometry.V(x-t.Box.Min.X, y-t.Box.Max.Y))
		y = t.Box.Min.Y
	}

	res.Bounds = l.p.Bounds()
	return res
}

// placeRow lines up molecules left to right from x, vertically centred on y,
// with a plus between neighbours. It returns the box of the row.
func (l *Layout) placeRow(mols []int, x, y float64) (geometry.Rect, bool) {
	var (
		box   geometry.Rect
		found bool
	)
	for k, m := range mols {
		if k > 0 {
			l.p.Meta.Add(&reaction.Plus{Pos: geometry.V(x+l.opts.PlusSpacing, y)})
			x += 2 * l.opts.PlusSpacing
		}
		mb := l.moveTo(m, x, y)
		x = mb.Max.X
		if !found {
			box, found = mb, true
		} else {
			box = geometry.Union(box, mb)
		}
	}
	return box, found
}

// moveTo translates a molecule so its box starts at x and is centred on y.
// It returns the new box.
func (l *Layout) moveTo(m int, x, y float64) geometry.Rect {
	mol := l.p.Molecules[m]
	box := mol.BoundingBox()
	offset := geometry.V(x-box.Min.X, y-geometry.Center(box).Y)
	mol.Translate(offset)
	return geometry.Translate(box, offset)
}

// connect draws the arrow entering item v from its children, the catalysts
// above it and the reaction texts below it.
func (l *Layout) connect(v int) {
	o := l.opts
	it := &l.items[v]
	headX := l.rowLeft(it) - o.Margin
	tailX := l.columnRight(it.depth+1) + o.Margin

	var (
		idx    int
		spanLo float64
	)
	if len(it.children) == 1 {
		idx = l.p.Meta.Add(&reaction.Arrow{
			Type: reaction.ArrowOpenAngle,
			Tail: geometry.V(tailX, it.y),
			Head: geometry.V(headX, it.y),
		})
		spanLo = tailX
	} else {
		spineX := tailX + o.TailLength
		tails := make([]geometry.Vec, len(it.children))
		for k, c := range it.children {
			tails[k] = geometry.V(tailX, l.items[c].y)
		}
		idx = l.p.Meta.Add(&reaction.MultitailArrow{
			Head:       geometry.V(headX, it.y),
			Tails:      tails,
			SpineBegin: geometry.V(spineX, tails[0].Y),
			SpineEnd:   geometry.V(spineX, tails[len(tails)-1].Y),
		})
		spanLo = spineX
	}
	rx := &l.p.Reactions[l.p.Nodes[it.reaction].Reaction]
	rx.Arrow = idx

	mid := (spanLo + headX) / 2
	gap := labelGap * o.BondLength
	x := mid - it.catWidth/2
	for k, m := range rx.Catalysts {
		if k > 0 {
			x += o.PlusSpacing
		}
		box := l.p.Molecules[m].BoundingBox()
		mb := l.moveTo(m, x, it.y+gap+box.Height()/2)
		x = mb.Max.X
	}

	top := it.y - gap
	for _, s := range it.texts {
		w := float64(utf8.RuneCountInString(s)) * charWidth * o.BondLength
		h := lineHeight * o.BondLength
		l.p.Meta.Add(&reaction.Text{
			Box:     geometry.NewRect(geometry.V(mid-w/2, top-h), geometry.V(mid+w/2, top)),
			Content: s,
		})
		top -= h
	}
}
