package reaction

import (
	"errors"
	"slices"

	rxerrors "github.com/matzehuels/rxnpath/pkg/errors"
	"github.com/matzehuels/rxnpath/pkg/geometry"
)

var (
	// ErrUnknownReaction is returned by [Pathway.Link] when either endpoint
	// is not a reaction of the pathway.
	ErrUnknownReaction = errors.New("unknown reaction")

	// ErrSelfLink is returned by [Pathway.Link] when a reaction would feed itself.
	ErrSelfLink = errors.New("reaction cannot feed itself")

	// ErrInvalidSlot is returned by [Pathway.Link] when a slot does not name a
	// reactant of the successor.
	ErrInvalidSlot = errors.New("invalid reactant slot")

	// ErrSlotConnected is returned by [Pathway.Link] when a reactant slot is
	// already produced by another precursor.
	ErrSlotConnected = errors.New("reactant slot already connected")

	// ErrInconsistentEdge is returned by [Pathway.Validate] when successor and
	// precursor lists disagree.
	ErrInconsistentEdge = errors.New("inconsistent reaction edge")

	// ErrCycle is wrapped by [Pathway.Validate] and [Pathway.TopologicalOrder]
	// when the reaction graph has a directed cycle.
	ErrCycle = errors.New("reaction graph contains a cycle")
)

// Pathway is a multi-step reaction: a molecule pool, the reactions referring
// to it, their graph nodes and the scheme metadata.
//
// The zero value is an empty pathway ready for use.
type Pathway struct {
	Molecules []Molecule
	Reactions []Reaction
	Nodes     []Node
	Meta      Metadata

	// Unassigned lists molecules no reaction step claimed.
	Unassigned []int
}

// New returns an empty pathway.
func New() *Pathway { return &Pathway{} }

// AddMolecule appends m to the pool and returns its index.
func (p *Pathway) AddMolecule(m Molecule) int {
	p.Molecules = append(p.Molecules, m)
	return len(p.Molecules) - 1
}

// AddReaction appends r with an unlinked node and returns its index.
func (p *Pathway) AddReaction(r Reaction) int {
	idx := len(p.Reactions)
	p.Reactions = append(p.Reactions, r)
	p.Nodes = append(p.Nodes, Node{Reaction: idx, ConnectedReactants: map[int]int{}})
	return idx
}

// Link records that precursor's products satisfy the given reactant slots of
// successor. Both sides of the edge are updated.
func (p *Pathway) Link(precursor, successor int, slots []int) error {
	if !p.valid(precursor) || !p.valid(successor) {
		return ErrUnknownReaction
	}
	if precursor == successor {
		return ErrSelfLink
	}
	succ := &p.Nodes[successor]
	for _, s := range slots {
		if s < 0 || s >= len(p.Reactions[successor].Reactants) {
			return ErrInvalidSlot
		}
		if owner, ok := succ.ConnectedReactants[s]; ok && owner != precursor {
			return ErrSlotConnected
		}
	}

	pre := &p.Nodes[precursor]
	i := slices.IndexFunc(pre.Successors, func(s Successor) bool { return s.Reaction == successor })
	if i < 0 {
		pre.Successors = append(pre.Successors, Successor{Reaction: successor})
		i = len(pre.Successors) - 1
	}
	for _, s := range slots {
		if !slices.Contains(pre.Successors[i].Slots, s) {
			pre.Successors[i].Slots = append(pre.Successors[i].Slots, s)
		}
	}
	slices.Sort(pre.Successors[i].Slots)

	if !slices.Contains(succ.Precursors, precursor) {
		succ.Precursors = append(succ.Precursors, precursor)
	}
	if succ.ConnectedReactants == nil {
		succ.ConnectedReactants = map[int]int{}
	}
	for _, s := range slots {
		succ.ConnectedReactants[s] = precursor
	}
	return nil
}

func (p *Pathway) valid(idx int) bool { return idx >= 0 && idx < len(p.Nodes) }

// RootReactionIndices returns the final steps: reactions without successors.
// Each root grows its own layout tree.
func (p *Pathway) RootReactionIndices() []int {
	return p.indicesWhere(func(n *Node) bool { return len(n.Successors) == 0 })
}

// StartReactionIndices returns the reactions without precursors.
func (p *Pathway) StartReactionIndices() []int {
	return p.indicesWhere(func(n *Node) bool { return len(n.Precursors) == 0 })
}

// LeafReactionIndices returns the reactions without products.
func (p *Pathway) LeafReactionIndices() []int {
	return p.indicesWhere(func(n *Node) bool { return len(p.Reactions[n.Reaction].Products) == 0 })
}

func (p *Pathway) indicesWhere(pred func(*Node) bool) []int {
	var out []int
	for i := range p.Nodes {
		if pred(&p.Nodes[i]) {
			out = append(out, i)
		}
	}
	return out
}

// Validate checks that every edge is recorded on both endpoints and that the
// reaction graph is acyclic. A cycle yields an error with code CYCLE_DETECTED.
func (p *Pathway) Validate() error {
	if err := p.validateEdgeConsistency(); err != nil {
		return err
	}
	return p.detectCycles()
}

func (p *Pathway) validateEdgeConsistency() error {
	for i := range p.Nodes {
		n := &p.Nodes[i]
		if n.Reaction != i {
			return ErrInconsistentEdge
		}
		for _, s := range n.Successors {
			if !p.valid(s.Reaction) || !slices.Contains(p.Nodes[s.Reaction].Precursors, i) {
				return ErrInconsistentEdge
			}
		}
		for _, pre := range n.Precursors {
			if !p.valid(pre) {
				return ErrInconsistentEdge
			}
			if !slices.ContainsFunc(p.Nodes[pre].Successors, func(s Successor) bool { return s.Reaction == i }) {
				return ErrInconsistentEdge
			}
		}
		for slot, pre := range n.ConnectedReactants {
			if slot < 0 || slot >= len(p.Reactions[i].Reactants) || !slices.Contains(n.Precursors, pre) {
				return ErrInconsistentEdge
			}
		}
	}
	return nil
}

func (p *Pathway) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make([]int, len(p.Nodes))
	cycleAt := -1

	var dfs func(i int)
	dfs = func(i int) {
		color[i] = gray
		for _, s := range p.Nodes[i].Successors {
			switch color[s.Reaction] {
			case white:
				dfs(s.Reaction)
				if cycleAt >= 0 {
					return
				}
			case gray:
				cycleAt = s.Reaction
				return
			}
		}
		color[i] = black
	}

	for i := range p.Nodes {
		if color[i] == white {
			dfs(i)
			if cycleAt >= 0 {
				return rxerrors.Wrap(rxerrors.ErrCodeCycleDetected, ErrCycle, "reaction %d is its own precursor", cycleAt)
			}
		}
	}
	return nil
}

// TopologicalOrder returns the reaction indices with every precursor before
// its successors. Ties keep index order.
func (p *Pathway) TopologicalOrder() ([]int, error) {
	indeg := make([]int, len(p.Nodes))
	for i := range p.Nodes {
		for _, s := range p.Nodes[i].Successors {
			if !p.valid(s.Reaction) {
				return nil, ErrInconsistentEdge
			}
			indeg[s.Reaction]++
		}
	}

	var queue, order []int
	for i, d := range indeg {
		if d == 0 {
			queue = append(queue, i)
		}
	}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		order = append(order, i)
		for _, s := range p.Nodes[i].Successors {
			indeg[s.Reaction]--
			if indeg[s.Reaction] == 0 {
				queue = append(queue, s.Reaction)
			}
		}
	}
	if len(order) != len(p.Nodes) {
		return nil, rxerrors.Wrap(rxerrors.ErrCodeCycleDetected, ErrCycle, "%d reactions left unordered", len(p.Nodes)-len(order))
	}
	return order, nil
}

// MoleculeBounds returns the union of the bounding boxes of the given pool
// entries and false when ids is empty.
func (p *Pathway) MoleculeBounds(ids []int) (geometry.Rect, bool) {
	var r geometry.Rect
	for i, id := range ids {
		b := p.Molecules[id].BoundingBox()
		if i == 0 {
			r = b
			continue
		}
		r = geometry.Union(r, b)
	}
	return r, len(ids) > 0
}

// Bounds returns the extent of all molecules and metadata objects.
func (p *Pathway) Bounds() geometry.Rect {
	var r geometry.Rect
	first := true
	add := func(b geometry.Rect) {
		if first {
			r, first = b, false
			return
		}
		r = geometry.Union(r, b)
	}
	for _, m := range p.Molecules {
		add(m.BoundingBox())
	}
	for _, o := range p.Meta.Objects {
		add(o.Bounds())
	}
	return r
}
