package detect

import (
	"errors"
	"slices"

	rxerrors "github.com/matzehuels/rxnpath/pkg/errors"
	"github.com/matzehuels/rxnpath/pkg/geometry"
	"github.com/matzehuels/rxnpath/pkg/reaction"
)

// export turns the edges into reactions, one per product block in the order
// the arrows were read.
func (s *scene) export() (*reaction.Pathway, error) {
	p := reaction.New()
	for _, m := range s.mols {
		p.AddMolecule(m)
	}

	rxOf := make(map[int]int)
	for _, e := range s.edges {
		if _, ok := rxOf[e.to]; ok {
			continue
		}
		rxOf[e.to] = p.AddReaction(reaction.Reaction{
			Products: s.molecules(e.to),
			Arrow:    e.arrow,
		})
	}

	consumer := make(map[int]int)
	for _, e := range s.edges {
		r := &p.Reactions[rxOf[e.to]]
		if prev, ok := consumer[e.from]; ok {
			if prev != e.to {
				return nil, badPathway("molecules %v react in more than one step", s.molecules(e.from))
			}
		} else {
			consumer[e.from] = e.to
			r.Reactants = append(r.Reactants, s.molecules(e.from)...)
		}
		for _, c := range e.catalysts {
			r.Catalysts = append(r.Catalysts, s.molecules(c)...)
		}
	}

	if err := s.link(p, rxOf); err != nil {
		return nil, err
	}
	s.attachTexts(p)

	for b, blk := range s.blocks {
		if blk.alive && blk.side == reaction.SideUndefined {
			p.Unassigned = append(p.Unassigned, s.molecules(b)...)
		}
	}
	slices.Sort(p.Unassigned)

	if err := p.Validate(); err != nil {
		if errors.Is(err, reaction.ErrCycle) {
			return nil, err
		}
		return nil, rxerrors.Wrap(rxerrors.ErrCodeInternal, err, "detected pathway is inconsistent")
	}
	return p, nil
}

// link connects every reaction whose reactant block is the product of
// another reaction. The shared molecules keep one pool index.
func (s *scene) link(p *reaction.Pathway, rxOf map[int]int) error {
	type pair struct{ pre, succ int }
	seen := make(map[pair]bool)
	for _, e := range s.edges {
		pre, ok := rxOf[e.from]
		if !ok {
			continue
		}
		succ := rxOf[e.to]
		key := pair{pre, succ}
		if seen[key] {
			continue
		}
		seen[key] = true

		var slots []int
		for _, m := range s.molecules(e.from) {
			if slot := slices.Index(p.Reactions[succ].Reactants, m); slot >= 0 {
				slots = append(slots, slot)
			}
		}
		if err := p.Link(pre, succ, slots); err != nil {
			if errors.Is(err, reaction.ErrSelfLink) {
				return rxerrors.Wrap(rxerrors.ErrCodeCycleDetected, reaction.ErrCycle, "reaction %d feeds itself", succ)
			}
			return rxerrors.Wrap(rxerrors.ErrCodeBadPathway, err, "link reaction %d to %d", pre, succ)
		}
	}
	return nil
}

// attachTexts names reactions after the texts above or below their arrow:
// the topmost becomes the name, the next the conditions. Consumed texts are
// dropped from the pathway's metadata copy.
func (s *scene) attachTexts(p *reaction.Pathway) {
	consumed := make(map[int]bool)
	for r := range p.Reactions {
		rx := &p.Reactions[r]
		z := s.zoneOf(rx.Arrow)
		if z == nil {
			continue
		}
		var found []int
		for t, text := range s.meta.Texts() {
			if consumed[t] {
				continue
			}
			hull := geometry.RectHull(text.Box)
			if z.intersects(arrowTop, hull) || z.intersects(arrowBottom, hull) {
				found = append(found, t)
			}
		}
		slices.SortStableFunc(found, func(a, b int) int {
			ya, yb := s.meta.Objects[a].Bounds().Max.Y, s.meta.Objects[b].Bounds().Max.Y
			switch {
			case ya > yb:
				return -1
			case ya < yb:
				return 1
			}
			return 0
		})
		for k, key := range []string{reaction.PropertyName, reaction.PropertyCondition} {
			if k >= len(found) {
				break
			}
			rx.SetProperty(key, s.meta.Objects[found[k]].(*reaction.Text).Content)
			consumed[found[k]] = true
		}
	}

	p.Meta = s.meta.Clone()
	remap := p.Meta.Retain(func(i int, _ reaction.Object) bool { return !consumed[i] })
	for r := range p.Reactions {
		if a := p.Reactions[r].Arrow; a >= 0 {
			p.Reactions[r].Arrow = remap[a]
		}
	}
}
