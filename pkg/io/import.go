package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	rxerrors "github.com/matzehuels/rxnpath/pkg/errors"
	"github.com/matzehuels/rxnpath/pkg/reaction"
	"github.com/matzehuels/rxnpath/pkg/sketch"
)

// ReadJSON decodes and checks a document. Every molecule, object and
// reaction reference must be in range; a missing ID is filled with a fresh
// UUID. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, rxerrors.Wrap(rxerrors.ErrCodeInvalidFormat, err, "decode document")
	}
	if err := doc.check(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ImportJSON reads the document at path.
func ImportJSON(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, rxerrors.Wrap(rxerrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

func invalid(format string, args ...any) error {
	return rxerrors.New(rxerrors.ErrCodeInvalidFormat, format, args...)
}

func (d *Document) check() error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	} else {
		id, err := uuid.Parse(d.ID)
		if err != nil {
			return rxerrors.Wrap(rxerrors.ErrCodeInvalidFormat, err, "document id %q", d.ID)
		}
		d.ID = id.String()
	}
	switch d.Kind {
	case KindReactions, KindScheme, KindPathway:
	case "":
		return invalid("document kind missing")
	default:
		return invalid("unknown document kind %q", d.Kind)
	}

	for i, m := range d.Molecules {
		for _, b := range m.Bonds {
			if !inRange(b.A, len(m.Atoms)) || !inRange(b.B, len(m.Atoms)) {
				return invalid("molecule %d: bond %d-%d out of range", i, b.A, b.B)
			}
		}
		for _, sa := range m.SuperAtoms {
			for _, a := range sa.Atoms {
				if !inRange(a, len(m.Atoms)) {
					return invalid("molecule %d: super-atom %s atom %d out of range", i, sa.Label, a)
				}
			}
		}
	}
	for i, r := range d.Reactions {
		for _, list := range [][]int{r.Reactants, r.Products, r.Catalysts} {
			for _, m := range list {
				if !inRange(m, len(d.Molecules)) {
					return invalid("reaction %d: molecule %d out of range", i, m)
				}
			}
		}
		if r.Arrow != nil && !inRange(*r.Arrow, len(d.Objects)) {
			return invalid("reaction %d: arrow %d out of range", i, *r.Arrow)
		}
		if r.Next != nil && !inRange(r.Next.Reaction, len(d.Reactions)) {
			return invalid("reaction %d: next reaction %d out of range", i, r.Next.Reaction)
		}
	}
	for _, m := range d.Unassigned {
		if !inRange(m, len(d.Molecules)) {
			return invalid("unassigned molecule %d out of range", m)
		}
	}
	return nil
}

func inRange(i, n int) bool { return i >= 0 && i < n }

func (m *Molecule) fragment() *sketch.Fragment {
	f := &sketch.Fragment{
		Label:    m.Label,
		Box:      m.Box.Rect(),
		InChI:    m.InChI,
		InChIKey: m.InChIKey,
	}
	for _, a := range m.Atoms {
		f.Atoms = append(f.Atoms, sketch.Atom{Symbol: a.Symbol, Pos: Point{a.X, a.Y}.Vec(), Charge: a.Charge})
	}
	for _, b := range m.Bonds {
		f.Bonds = append(f.Bonds, sketch.Bond{A: b.A, B: b.B, Order: b.Order})
	}
	for _, sa := range m.SuperAtoms {
		f.SuperAtoms = append(f.SuperAtoms, sketch.SuperAtom{Label: sa.Label, Atoms: append([]int(nil), sa.Atoms...)})
	}
	return f
}

func (d *Document) fragments() []*sketch.Fragment {
	out := make([]*sketch.Fragment, len(d.Molecules))
	for i := range d.Molecules {
		out[i] = d.Molecules[i].fragment()
	}
	return out
}

func (o *Object) object(i int) (reaction.Object, error) {
	need := func(p *Point, field string) (Point, error) {
		if p == nil {
			return Point{}, invalid("object %d (%s): %s missing", i, o.Type, field)
		}
		return *p, nil
	}
	switch o.Type {
	case ObjectPlus:
		pos, err := need(o.Pos, "pos")
		if err != nil {
			return nil, err
		}
		return &reaction.Plus{Pos: pos.Vec()}, nil
	case ObjectArrow:
		tail, err := need(o.Tail, "tail")
		if err != nil {
			return nil, err
		}
		head, err := need(o.Head, "head")
		if err != nil {
			return nil, err
		}
		mode := reaction.ArrowType(o.Mode)
		if o.Mode == 0 {
			mode = reaction.ArrowOpenAngle
		}
		return &reaction.Arrow{Type: mode, Tail: tail.Vec(), Head: head.Vec()}, nil
	case ObjectMultitail:
		head, err := need(o.Head, "head")
		if err != nil {
			return nil, err
		}
		if len(o.Tails) < reaction.MinMultitailTails {
			return nil, invalid("object %d (%s): %d tails", i, o.Type, len(o.Tails))
		}
		if len(o.Spine) != 2 {
			return nil, invalid("object %d (%s): spine needs 2 points", i, o.Type)
		}
		m := &reaction.MultitailArrow{Head: head.Vec(), SpineBegin: o.Spine[0].Vec(), SpineEnd: o.Spine[1].Vec()}
		for _, t := range o.Tails {
			m.Tails = append(m.Tails, t.Vec())
		}
		return m, nil
	case ObjectText:
		if o.Box == nil {
			return nil, invalid("object %d (%s): box missing", i, o.Type)
		}
		return &reaction.Text{Box: o.Box.Rect(), Content: o.Content}, nil
	}
	return nil, invalid("object %d: unknown type %q", i, o.Type)
}

// Metadata converts the document's objects, keeping their order.
func (d *Document) Metadata() (reaction.Metadata, error) {
	var meta reaction.Metadata
	for i := range d.Objects {
		obj, err := d.Objects[i].object(i)
		if err != nil {
			return reaction.Metadata{}, err
		}
		meta.Add(obj)
	}
	return meta, nil
}

func properties(r *Reaction) []reaction.Property {
	var props []reaction.Property
	if r.Name != "" {
		props = append(props, reaction.Property{Key: reaction.PropertyName, Value: r.Name})
	}
	if r.Condition != "" {
		props = append(props, reaction.Property{Key: reaction.PropertyCondition, Value: r.Condition})
	}
	return props
}

// Steps returns the document's reactions as independent steps. Every
// reference to a molecule yields its own fragment, so a reagent listed by
// several reactions is placed once per reaction.
func (d *Document) Steps() []reaction.Step {
	pick := func(ids []int) []reaction.Molecule {
		out := make([]reaction.Molecule, len(ids))
		for i, id := range ids {
			out[i] = d.Molecules[id].fragment()
		}
		return out
	}
	steps := make([]reaction.Step, len(d.Reactions))
	for i := range d.Reactions {
		r := &d.Reactions[i]
		steps[i] = reaction.Step{
			Reactants:  pick(r.Reactants),
			Products:   pick(r.Products),
			Catalysts:  pick(r.Catalysts),
			Properties: properties(r),
		}
	}
	return steps
}

// Scheme is a drawn scheme ready for detection. Molecules with atoms are
// drawn into one sketch, so their fragments are recomputed; placeholders are
// kept as they are.
type Scheme struct {
	Sketch       sketch.Sketch
	Placeholders []*sketch.Fragment
	Meta         reaction.Metadata
}

// Components returns the sketch fragments followed by the placeholders.
func (s *Scheme) Components() []reaction.Molecule {
	out := s.Sketch.Components()
	for _, p := range s.Placeholders {
		out = append(out, p)
	}
	return out
}

// Scheme returns the document as an unstructured drawing. Reactions, if
// any, are ignored.
func (d *Document) Scheme() (*Scheme, error) {
	s := &Scheme{}
	for _, m := range d.Molecules {
		if len(m.Atoms) == 0 {
			s.Placeholders = append(s.Placeholders, m.fragment())
			continue
		}
		base := len(s.Sketch.Atoms)
		for _, a := range m.Atoms {
			i := s.Sketch.AddAtom(a.Symbol, Point{a.X, a.Y}.Vec())
			s.Sketch.Atoms[i].Charge = a.Charge
		}
		for _, b := range m.Bonds {
			if err := s.Sketch.AddBond(base+b.A, base+b.B, b.Order); err != nil {
				return nil, rxerrors.Wrap(rxerrors.ErrCodeInvalidFormat, err, "bond %d-%d", b.A, b.B)
			}
		}
		for _, sa := range m.SuperAtoms {
			atoms := make([]int, len(sa.Atoms))
			for k, a := range sa.Atoms {
				atoms[k] = base + a
			}
			if err := s.Sketch.AddSuperAtom(sa.Label, atoms...); err != nil {
				return nil, rxerrors.Wrap(rxerrors.ErrCodeInvalidFormat, err, "super-atom %s", sa.Label)
			}
		}
	}
	meta, err := d.Metadata()
	if err != nil {
		return nil, err
	}
	s.Meta = meta
	return s, nil
}

// Pathway rebuilds a pathway document. Links come from each reaction's
// "next"; the result is validated.
func (d *Document) Pathway() (*reaction.Pathway, error) {
	p := reaction.New()
	for _, f := range d.fragments() {
		p.AddMolecule(f)
	}
	for i := range d.Reactions {
		r := &d.Reactions[i]
		rx := reaction.Reaction{
			Reactants:  append([]int(nil), r.Reactants...),
			Products:   append([]int(nil), r.Products...),
			Catalysts:  append([]int(nil), r.Catalysts...),
			Arrow:      reaction.NoArrow,
			Properties: properties(r),
		}
		if r.Arrow != nil {
			rx.Arrow = *r.Arrow
		}
		p.AddReaction(rx)
	}
	for i, r := range d.Reactions {
		if r.Next == nil {
			continue
		}
		if err := p.Link(i, r.Next.Reaction, r.Next.Slots); err != nil {
			return nil, rxerrors.Wrap(rxerrors.ErrCodeInvalidFormat, err, "link reaction %d to %d", i, r.Next.Reaction)
		}
	}
	meta, err := d.Metadata()
	if err != nil {
		return nil, err
	}
	p.Meta = meta
	p.Unassigned = append([]int(nil), d.Unassigned...)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
