package layout

// The tree walk positions items along one axis, pos, growing downwards.
// It follows Buchheim, Jünger and Leipert, "Improving Walker's algorithm to
// run in linear time", with item extents in place of unit node sizes.

func (l *Layout) distance(a, b int) float64 {
	return l.items[a].half + l.items[b].half + l.opts.VerticalMargin
}

func (l *Layout) leftSibling(v int) int {
	it := &l.items[v]
	if it.parent == none || it.number == 0 {
		return none
	}
	return l.items[it.parent].children[it.number-1]
}

func (l *Layout) leftmostSibling(v int) int {
	it := &l.items[v]
	if it.parent == none {
		return none
	}
	return l.items[it.parent].children[0]
}

func (l *Layout) nextLeft(v int) int {
	if c := l.items[v].children; len(c) > 0 {
		return c[0]
	}
	return l.items[v].thread
}

func (l *Layout) nextRight(v int) int {
	if c := l.items[v].children; len(c) > 0 {
		return c[len(c)-1]
	}
	return l.items[v].thread
}

func (l *Layout) firstWalk(v int) {
	it := &l.items[v]
	w := l.leftSibling(v)
	if len(it.children) == 0 {
		if w != none {
			it.prelim = l.items[w].prelim + l.distance(w, v)
		}
		return
	}

	children := it.children
	defaultAncestor := children[0]
	for _, c := range children {
		l.firstWalk(c)
		defaultAncestor = l.apportion(c, defaultAncestor)
	}
	l.executeShifts(v)

	it = &l.items[v]
	mid := (l.items[children[0]].prelim + l.items[children[len(children)-1]].prelim) / 2
	if w != none {
		it.prelim = l.items[w].prelim + l.distance(w, v)
		it.mod = it.prelim - mid
	} else {
		it.prelim = mid
	}
}

func (l *Layout) apportion(v, defaultAncestor int) int {
	w := l.leftSibling(v)
	if w == none {
		return defaultAncestor
	}
	vir, vor := v, v
	vil, vol := w, l.leftmostSibling(v)
	sir, sor := l.items[vir].mod, l.items[vor].mod
	sil, sol := l.items[vil].mod, l.items[vol].mod

	for l.nextRight(vil) != none && l.nextLeft(vir) != none {
		vil = l.nextRight(vil)
		vir = l.nextLeft(vir)
		vol = l.nextLeft(vol)
		vor = l.nextRight(vor)
		l.items[vor].ancestor = v

		shift := (l.items[vil].prelim + sil) - (l.items[vir].prelim + sir) + l.distance(vil, vir)
		if shift > 0 {
			l.moveSubtree(l.ancestor(vil, v, defaultAncestor), v, shift)
			sir += shift
			sor += shift
		}
		sil += l.items[vil].mod
		sir += l.items[vir].mod
		sol += l.items[vol].mod
		sor += l.items[vor].mod
	}

	if next := l.nextRight(vil); next != none && l.nextRight(vor) == none {
		l.items[vor].thread = next
		l.items[vor].mod += sil - sor
	}
	if next := l.nextLeft(vir); next != none && l.nextLeft(vol) == none {
		l.items[vol].thread = next
		l.items[vol].mod += sir - sol
		defaultAncestor = v
	}
	return defaultAncestor
}

// ancestor returns the ancestor of vil that is a sibling of v, falling back
// to defaultAncestor.
func (l *Layout) ancestor(vil, v, defaultAncestor int) int {
	a := l.items[vil].ancestor
	if l.items[a].parent == l.items[v].parent {
		return a
	}
	return defaultAncestor
}

func (l *Layout) moveSubtree(wl, wr int, shift float64) {
	subtrees := float64(l.items[wr].number - l.items[wl].number)
	right, left := &l.items[wr], &l.items[wl]
	right.change -= shift / subtrees
	right.shift += shift
	left.change += shift / subtrees
	right.prelim += shift
	right.mod += shift
}

func (l *Layout) executeShifts(v int) {
	var shift, change float64
	children := l.items[v].children
	for i := len(children) - 1; i >= 0; i-- {
		w := &l.items[children[i]]
		w.prelim += shift
		w.mod += shift
		change += w.change
		shift += w.shift + change
	}
}

// secondWalk turns prelim and the accumulated modifiers into final y values
// and clears the scratch fields. pos grows downwards, y upwards.
func (l *Layout) secondWalk(v int, m float64) {
	it := &l.items[v]
	it.y = -(it.prelim + m)
	next := m + it.mod
	it.prelim, it.mod, it.shift, it.change = 0, 0, 0, 0
	it.thread = none
	it.ancestor = v
	for _, c := range it.children {
		l.secondWalk(c, next)
	}
}
