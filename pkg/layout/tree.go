package layout

import (
	"slices"
	"unicode/utf8"

	rxerrors "github.com/matzehuels/rxnpath/pkg/errors"
)

const none = -1

// item is one row of the layout tree. Links are arena indices.
type item struct {
	reaction int // none for a row of starting materials
	mols     []int
	parent   int
	children []int
	number   int // position among siblings
	depth    int

	width float64
	half  float64 // half of the vertical extent

	// connector labels drawn left of the row
	catWidth, catHeight   float64
	textWidth, textHeight float64
	texts                 []string

	// tree walk scratch
	prelim, mod   float64
	shift, change float64
	ancestor      int
	thread        int

	x, y float64
}

func (l *Layout) addItem(rx, parent, depth int, mols []int) int {
	id := len(l.items)
	it := item{
		reaction: rx,
		mols:     mols,
		parent:   parent,
		depth:    depth,
		ancestor: id,
		thread:   none,
	}
	if parent != none {
		it.number = len(l.items[parent].children)
		l.items[parent].children = append(l.items[parent].children, id)
	}
	l.items = append(l.items, it)
	return id
}

// buildForest makes one tree per root reaction. A reaction reached twice
// means the graph is not a forest.
func (l *Layout) buildForest() error {
	visited := make([]bool, len(l.p.Nodes))
	for _, r := range l.p.RootReactionIndices() {
		id, err := l.buildTree(r, none, 0, visited)
		if err != nil {
			return err
		}
		l.roots = append(l.roots, id)
	}
	if i := slices.Index(visited, false); i >= 0 {
		return rxerrors.New(rxerrors.ErrCodeInternal, "reaction %d is not reachable from any root", i)
	}
	return nil
}

func (l *Layout) buildTree(n, parent, depth int, visited []bool) (int, error) {
	if n < 0 || n >= len(l.p.Nodes) {
		return none, rxerrors.New(rxerrors.ErrCodeInternal, "node %d out of range", n)
	}
	if visited[n] {
		return none, rxerrors.New(rxerrors.ErrCodeInternal, "reaction %d reached twice", n)
	}
	visited[n] = true

	node := &l.p.Nodes[n]
	rx := &l.p.Reactions[node.Reaction]
	id := l.addItem(n, parent, depth, slices.Clone(rx.Products))

	// Children follow the reactant slots: a precursor at its first slot and
	// all starting materials at the first unconnected slot.
	var (
		order   []int // precursor, or none for the starting materials
		leaf    []int
		hasLeaf bool
	)
	for slot, m := range rx.Reactants {
		pre, ok := node.ConnectedReactants[slot]
		if !ok {
			if !hasLeaf {
				order = append(order, none)
				hasLeaf = true
			}
			leaf = append(leaf, m)
			continue
		}
		if !slices.Contains(order, pre) {
			order = append(order, pre)
		}
	}
	for _, pre := range order {
		if pre == none {
			l.addItem(none, id, depth+1, leaf)
			continue
		}
		if _, err := l.buildTree(pre, id, depth+1, visited); err != nil {
			return none, err
		}
	}
	return id, nil
}

// measure sizes every row and the labels of the connector entering it.
func (l *Layout) measure() {
	o := l.opts
	for i := range l.items {
		it := &l.items[i]
		var rowHeight float64
		for k, m := range it.mols {
			box := l.p.Molecules[m].BoundingBox()
			if k > 0 {
				it.width += 2 * o.PlusSpacing
			}
			it.width += box.Width()
			rowHeight = max(rowHeight, box.Height())
		}
		it.half = max(rowHeight/2, minHalf*o.BondLength)

		if it.reaction == none || len(it.children) == 0 {
			continue
		}
		rx := &l.p.Reactions[l.p.Nodes[it.reaction].Reaction]
		for k, m := range rx.Catalysts {
			box := l.p.Molecules[m].BoundingBox()
			if k > 0 {
				it.catWidth += o.PlusSpacing
			}
			it.catWidth += box.Width()
			it.catHeight = max(it.catHeight, box.Height())
		}
		for _, s := range []string{rx.Name(), rx.Condition()} {
			if s == "" {
				continue
			}
			it.texts = append(it.texts, s)
			it.textWidth = max(it.textWidth, float64(utf8.RuneCountInString(s))*charWidth*o.BondLength)
			it.textHeight += lineHeight * o.BondLength
		}
		gap := labelGap * o.BondLength
		if it.catHeight > 0 {
			it.half = max(it.half, it.catHeight+gap)
		}
		if it.textHeight > 0 {
			it.half = max(it.half, it.textHeight+gap)
		}
	}
}

// columns sizes one column per depth. Column 0 starts at x = 0 and deeper
// columns extend to the left, each separated by room for the connectors of
// the shallower one.
func (l *Layout) columns() {
	o := l.opts
	var connector []float64
	for i := range l.items {
		it := &l.items[i]
		for len(l.colWidth) <= it.depth {
			l.colWidth = append(l.colWidth, 0)
			connector = append(connector, 0)
		}
		l.colWidth[it.depth] = max(l.colWidth[it.depth], it.width)
		connector[it.depth] = max(connector[it.depth], it.catWidth, it.textWidth)
	}

	l.colLeft = make([]float64, len(l.colWidth))
	for d := 1; d < len(l.colWidth); d++ {
		gap := 2*o.Margin + o.TailLength + max(o.ArrowLength, connector[d-1])
		l.colLeft[d] = l.colLeft[d-1] - gap - l.colWidth[d]
	}
}

// rowLeft returns the left edge of an item's row, centred in its column.
func (l *Layout) rowLeft(it *item) float64 {
	return it.x + (l.colWidth[it.depth]-it.width)/2
}

// columnRight returns the right edge of a column.
func (l *Layout) columnRight(depth int) float64 {
	return l.colLeft[depth] + l.colWidth[depth]
}
