package pathway

import (
	"context"
	"io"
	"maps"
	"reflect"
	"slices"

	"github.com/charmbracelet/log"

	rxerrors "github.com/matzehuels/rxnpath/pkg/errors"
	"github.com/matzehuels/rxnpath/pkg/inchi"
	"github.com/matzehuels/rxnpath/pkg/reaction"
)

// Builder turns a flat list of reaction steps into a linked pathway.
type Builder struct {
	Oracle inchi.Oracle
	Logger *log.Logger
}

// slotRef is one reactant slot of one step.
type slotRef struct {
	reaction, slot int
}

// fingerprints holds the InChIKeys of every molecule of every step.
type fingerprints struct {
	reactants [][]string
	products  [][]string
}

// Build identifies every molecule, links each step to the step consuming its
// products and returns the pathway. It fails with an *errors.AmbiguousError
// when the steps admit more than one pathway, with CYCLE_DETECTED when the
// matched steps feed each other, and with INCHI_FAILED when the oracle fails.
func (b *Builder) Build(ctx context.Context, steps []reaction.Step) (*reaction.Pathway, error) {
	logger := b.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if b.Oracle == nil {
		return nil, rxerrors.New(rxerrors.ErrCodeInvalidInput, "pathway builder has no InChI oracle")
	}

	fp, err := b.fingerprint(ctx, steps)
	if err != nil {
		return nil, err
	}

	links, err := match(fp)
	if err != nil {
		return nil, err
	}
	logger.Debug("matched reaction steps", "steps", len(steps), "links", len(links))

	p, err := materialize(steps, fp, links)
	if err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("built pathway", "molecules", len(p.Molecules), "roots", len(p.RootReactionIndices()))
	return p, nil
}

func (b *Builder) fingerprint(ctx context.Context, steps []reaction.Step) (*fingerprints, error) {
	fp := &fingerprints{
		reactants: make([][]string, len(steps)),
		products:  make([][]string, len(steps)),
	}
	identify := func(m reaction.Molecule, role string, i, slot int) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		id, err := b.Oracle.Identify(ctx, m)
		if err != nil {
			return "", rxerrors.Wrap(rxerrors.ErrCodeInChI, err, "identify %s %d of reaction %d", role, slot, i)
		}
		return id.Key, nil
	}

	for i, s := range steps {
		for j, m := range s.Reactants {
			key, err := identify(m, "reactant", i, j)
			if err != nil {
				return nil, err
			}
			fp.reactants[i] = append(fp.reactants[i], key)
		}
		for j, m := range s.Products {
			key, err := identify(m, "product", i, j)
			if err != nil {
				return nil, err
			}
			fp.products[i] = append(fp.products[i], key)
		}
	}
	return fp, nil
}

// link is a resolved precursor → successor edge.
type link struct {
	precursor, successor int
	slots                []int
}

// match finds the successor of every step. It reports ambiguity as an
// *errors.AmbiguousError covering all ambiguous steps at once.
func match(fp *fingerprints) ([]link, error) {
	byReactant := map[string][]slotRef{}
	for i, keys := range fp.reactants {
		for j, k := range keys {
			byReactant[k] = append(byReactant[k], slotRef{reaction: i, slot: j})
		}
	}

	var (
		links     []link
		ambiguous []int
		count     = 1
	)
	for r, products := range fp.products {
		cands := successorCandidates(r, products, byReactant)
		switch len(cands) {
		case 0:
			continue
		case 1:
		default:
			ambiguous = append(ambiguous, r)
			count *= len(cands)
			continue
		}
		for succ, slots := range cands {
			links = append(links, link{precursor: r, successor: succ, slots: slots})
		}
	}

	// A reactant slot claimed by several precursors is a choice as well.
	claims := map[slotRef][]int{}
	for _, l := range links {
		for _, s := range l.slots {
			ref := slotRef{reaction: l.successor, slot: s}
			claims[ref] = append(claims[ref], l.precursor)
		}
	}
	contested := map[int]bool{}
	for _, ref := range slices.SortedFunc(maps.Keys(claims), compareSlotRef) {
		if n := len(claims[ref]); n > 1 {
			count *= n
			for _, p := range claims[ref] {
				contested[p] = true
			}
		}
	}
	for p := range contested {
		if !slices.Contains(ambiguous, p) {
			ambiguous = append(ambiguous, p)
		}
	}

	if len(ambiguous) > 0 {
		slices.Sort(ambiguous)
		return nil, &rxerrors.AmbiguousError{Count: count, Reactions: ambiguous}
	}
	slices.SortFunc(links, func(a, b link) int { return a.precursor - b.precursor })
	return links, nil
}

// successorCandidates intersects, over every product key of step r, the
// steps listing that key as a reactant. Each candidate carries the reactant
// slots r's products satisfy.
func successorCandidates(r int, products []string, byReactant map[string][]slotRef) map[int][]int {
	if len(products) == 0 {
		return nil
	}
	var cands map[int][]int
	for _, key := range products {
		found := map[int][]int{}
		for _, ref := range byReactant[key] {
			if ref.reaction != r {
				found[ref.reaction] = append(found[ref.reaction], ref.slot)
			}
		}
		if cands == nil {
			cands = found
			continue
		}
		for succ, slots := range cands {
			more, ok := found[succ]
			if !ok {
				delete(cands, succ)
				continue
			}
			cands[succ] = append(slots, more...)
		}
	}
	for succ, slots := range cands {
		slices.Sort(slots)
		cands[succ] = slices.Compact(slots)
	}
	return cands
}

func compareSlotRef(a, b slotRef) int {
	if a.reaction != b.reaction {
		return a.reaction - b.reaction
	}
	return a.slot - b.slot
}

// pool adds molecules to a pathway, copying any molecule it has already
// pooled so that no two entries share an object.
type pool struct {
	p    *reaction.Pathway
	seen map[reaction.Molecule]bool
}

func (pl *pool) add(m reaction.Molecule) (int, error) {
	if m != nil && reflect.TypeOf(m).Comparable() {
		if pl.seen[m] {
			c, ok := m.(reaction.Cloner)
			if !ok {
				return 0, rxerrors.New(rxerrors.ErrCodeInvalidInput,
					"molecule %T is listed more than once and cannot be copied", m)
			}
			m = c.Clone()
		}
		pl.seen[m] = true
	}
	return pl.p.AddMolecule(m), nil
}

// materialize pools the molecules and links the nodes. Products of a
// precursor are shared with the successor's matching reactant slots.
func materialize(steps []reaction.Step, fp *fingerprints, links []link) (*reaction.Pathway, error) {
	p := reaction.New()
	pl := &pool{p: p, seen: map[reaction.Molecule]bool{}}
	addAll := func(dst *[]int, ms ...reaction.Molecule) error {
		for _, m := range ms {
			idx, err := pl.add(m)
			if err != nil {
				return err
			}
			*dst = append(*dst, idx)
		}
		return nil
	}

	productIdx := make([][]int, len(steps))
	for i, s := range steps {
		if err := addAll(&productIdx[i], s.Products...); err != nil {
			return nil, err
		}
	}

	connected := map[slotRef]int{}
	for _, l := range links {
		for _, s := range l.slots {
			connected[slotRef{reaction: l.successor, slot: s}] = l.precursor
		}
	}

	for i, s := range steps {
		r := reaction.Reaction{
			Products:   productIdx[i],
			Arrow:      reaction.NoArrow,
			Properties: slices.Clone(s.Properties),
		}
		for j, m := range s.Reactants {
			pre, ok := connected[slotRef{reaction: i, slot: j}]
			if !ok {
				if err := addAll(&r.Reactants, m); err != nil {
					return nil, err
				}
				continue
			}
			k := slices.Index(fp.products[pre], fp.reactants[i][j])
			r.Reactants = append(r.Reactants, productIdx[pre][k])
		}
		if err := addAll(&r.Catalysts, s.Catalysts...); err != nil {
			return nil, err
		}
		p.AddReaction(r)
	}

	for _, l := range links {
		if err := p.Link(l.precursor, l.successor, l.slots); err != nil {
			return nil, rxerrors.Wrap(rxerrors.ErrCodeInternal, err, "link reaction %d to %d", l.precursor, l.successor)
		}
	}
	return p, nil
}
