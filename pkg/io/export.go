package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/matzehuels/rxnpath/pkg/reaction"
	"github.com/matzehuels/rxnpath/pkg/sketch"
)

// WriteJSON encodes d as indented JSON. A document without ID gets one.
// The output can be read back with [ReadJSON].
func WriteJSON(d *Document, w io.Writer) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes d to a file at path.
func ExportJSON(d *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(d, f)
}

// FromPathway returns a pathway document for p. Molecules other than
// sketch fragments are written as unlabelled placeholders of their extent.
func FromPathway(p *reaction.Pathway) *Document {
	d := New(KindPathway)
	d.Molecules = make([]Molecule, len(p.Molecules))
	for i, m := range p.Molecules {
		d.Molecules[i] = moleculeOf(m)
	}
	d.Objects = objectsOf(&p.Meta)

	d.Reactions = make([]Reaction, len(p.Reactions))
	for i := range p.Reactions {
		rx := &p.Reactions[i]
		r := Reaction{
			Reactants: rx.Reactants,
			Products:  rx.Products,
			Catalysts: rx.Catalysts,
			Name:      rx.Name(),
			Condition: rx.Condition(),
		}
		if rx.Arrow >= 0 {
			a := rx.Arrow
			r.Arrow = &a
		}
		if succ := p.Nodes[i].Successors; len(succ) > 0 {
			r.Next = &Link{Reaction: succ[0].Reaction, Slots: succ[0].Slots}
		}
		d.Reactions[i] = r
	}
	d.Unassigned = p.Unassigned
	return d
}

func moleculeOf(m reaction.Molecule) Molecule {
	f, ok := m.(*sketch.Fragment)
	if !ok {
		return Molecule{Box: boxOf(m.BoundingBox())}
	}
	out := Molecule{Label: f.Label, InChI: f.InChI, InChIKey: f.InChIKey}
	if len(f.Atoms) == 0 {
		out.Box = boxOf(f.Box)
	}
	for _, a := range f.Atoms {
		out.Atoms = append(out.Atoms, Atom{Symbol: a.Symbol, X: a.Pos.X, Y: a.Pos.Y, Charge: a.Charge})
	}
	for _, b := range f.Bonds {
		out.Bonds = append(out.Bonds, Bond{A: b.A, B: b.B, Order: b.Order})
	}
	for _, sa := range f.SuperAtoms {
		out.SuperAtoms = append(out.SuperAtoms, SuperAtom{Label: sa.Label, Atoms: sa.Atoms})
	}
	return out
}

func objectsOf(meta *reaction.Metadata) []Object {
	out := make([]Object, 0, meta.Len())
	for _, o := range meta.Objects {
		switch v := o.(type) {
		case *reaction.Plus:
			pos := pointOf(v.Pos)
			out = append(out, Object{Type: ObjectPlus, Pos: &pos})
		case *reaction.Arrow:
			tail, head := pointOf(v.Tail), pointOf(v.Head)
			out = append(out, Object{Type: ObjectArrow, Mode: int(v.Type), Tail: &tail, Head: &head})
		case *reaction.MultitailArrow:
			head := pointOf(v.Head)
			obj := Object{
				Type:  ObjectMultitail,
				Head:  &head,
				Spine: []Point{pointOf(v.SpineBegin), pointOf(v.SpineEnd)},
			}
			for _, t := range v.Tails {
				obj.Tails = append(obj.Tails, pointOf(t))
			}
			out = append(out, obj)
		case *reaction.Text:
			out = append(out, Object{Type: ObjectText, Box: boxOf(v.Box), Content: v.Content})
		}
	}
	return out
}
