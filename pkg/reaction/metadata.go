package reaction

import (
	"iter"
	"slices"

	"github.com/matzehuels/rxnpath/pkg/geometry"
)

// Object is a graphical element of a scheme. The set of implementations is
// closed: [*Plus], [*Arrow], [*MultitailArrow] and [*Text].
type Object interface {
	// Bounds returns the bounding rectangle of the object.
	Bounds() geometry.Rect
	// Translate moves the object by offset.
	Translate(offset geometry.Vec)

	object()
}

// ArrowType is the drawing style of a reaction arrow.
type ArrowType int

// Arrow styles. Values follow the KET numbering so documents round-trip.
const (
	ArrowOpenAngle ArrowType = iota + 2
	ArrowFilledTriangle
	ArrowFilledBow
	ArrowDashedOpenAngle
	ArrowFailed
	ArrowBothEndsFilledTriangle
	ArrowEquilibriumFilledHalfBow
	ArrowEquilibriumFilledTriangle
	ArrowEquilibriumOpenAngle
	ArrowUnbalancedEquilibriumFilledHalfBow
	ArrowUnbalancedEquilibriumLargeFilledHalfBow
	ArrowUnbalancedEquilibriumOpenHalfAngle
	ArrowUnbalancedEquilibriumFilledHalfTriangle
	ArrowEllipticalArcFilledBow
	ArrowEllipticalArcFilledTriangle
	ArrowEllipticalArcOpenAngle
	ArrowEllipticalArcOpenHalfAngle
	ArrowRetrosynthetic
)

// Plus is a "+" sign joining molecules on one side of a reaction.
type Plus struct {
	Pos geometry.Vec
}

func (p *Plus) Bounds() geometry.Rect         { return geometry.Rect{Min: p.Pos, Max: p.Pos} }
func (p *Plus) Translate(offset geometry.Vec) { p.Pos = p.Pos.Plus(offset) }
func (*Plus) object()                         {}

// Arrow is a simple reaction arrow drawn from Tail to Head.
type Arrow struct {
	Type       ArrowType
	Tail, Head geometry.Vec
}

func (a *Arrow) Bounds() geometry.Rect { return geometry.NewRect(a.Tail, a.Head) }

func (a *Arrow) Translate(offset geometry.Vec) {
	a.Tail = a.Tail.Plus(offset)
	a.Head = a.Head.Plus(offset)
}

func (*Arrow) object() {}

// Begin returns the point the reaction reads from. Retrosynthetic arrows point
// from the target back to its precursors, so they are read head to tail.
func (a *Arrow) Begin() geometry.Vec {
	if a.Type == ArrowRetrosynthetic {
		return a.Head
	}
	return a.Tail
}

// End returns the point the reaction reads to, see [Arrow.Begin].
func (a *Arrow) End() geometry.Vec {
	if a.Type == ArrowRetrosynthetic {
		return a.Tail
	}
	return a.Head
}

// Length returns the distance between tail and head.
func (a *Arrow) Length() float64 { return a.Tail.DistanceFrom(a.Head) }

// MinMultitailTails is the smallest number of tails a multi-tail arrow has.
const MinMultitailTails = 2

// MultitailArrow joins several independent reactant groups into one product.
// The tails end on a common vertical spine from SpineBegin (top) to SpineEnd
// (bottom); the head leaves the spine towards the product.
type MultitailArrow struct {
	Head                 geometry.Vec
	Tails                []geometry.Vec
	SpineBegin, SpineEnd geometry.Vec
}

func (m *MultitailArrow) Bounds() geometry.Rect {
	r := geometry.NewRect(m.SpineBegin, m.SpineEnd)
	r.ExpandToContainCoord(m.Head)
	for _, t := range m.Tails {
		r.ExpandToContainCoord(t)
	}
	return r
}

func (m *MultitailArrow) Translate(offset geometry.Vec) {
	m.Head = m.Head.Plus(offset)
	m.SpineBegin = m.SpineBegin.Plus(offset)
	m.SpineEnd = m.SpineEnd.Plus(offset)
	for i := range m.Tails {
		m.Tails[i] = m.Tails[i].Plus(offset)
	}
}

func (*MultitailArrow) object() {}

// SpineX returns the x coordinate of the spine.
func (m *MultitailArrow) SpineX() float64 { return m.SpineBegin.X }

// Text is a free-text label such as a reaction name or its conditions.
type Text struct {
	Box     geometry.Rect
	Content string
}

func (t *Text) Bounds() geometry.Rect         { return t.Box }
func (t *Text) Translate(offset geometry.Vec) { t.Box = geometry.Translate(t.Box, offset) }
func (*Text) object()                         {}

// Metadata stores the graphical objects of a scheme. Indices into Objects are
// stable; reactions refer to their arrow by index.
type Metadata struct {
	Objects []Object
}

// Add appends obj and returns its index.
func (m *Metadata) Add(obj Object) int {
	m.Objects = append(m.Objects, obj)
	return len(m.Objects) - 1
}

// Len returns the number of objects.
func (m *Metadata) Len() int { return len(m.Objects) }

// Translate moves every object by offset.
func (m *Metadata) Translate(offset geometry.Vec) {
	for _, o := range m.Objects {
		o.Translate(offset)
	}
}

// Pluses iterates over plus signs with their object index.
func (m *Metadata) Pluses() iter.Seq2[int, *Plus] { return objectsOf[*Plus](m) }

// Arrows iterates over simple arrows with their object index.
func (m *Metadata) Arrows() iter.Seq2[int, *Arrow] { return objectsOf[*Arrow](m) }

// MultitailArrows iterates over multi-tail arrows with their object index.
func (m *Metadata) MultitailArrows() iter.Seq2[int, *MultitailArrow] {
	return objectsOf[*MultitailArrow](m)
}

// Texts iterates over text labels with their object index.
func (m *Metadata) Texts() iter.Seq2[int, *Text] { return objectsOf[*Text](m) }

func objectsOf[T Object](m *Metadata) iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		if m == nil {
			return
		}
		for i, o := range m.Objects {
			if v, ok := o.(T); ok {
				if !yield(i, v) {
					return
				}
			}
		}
	}
}

// Clone returns a deep copy of the store.
func (m *Metadata) Clone() Metadata {
	out := Metadata{Objects: make([]Object, 0, len(m.Objects))}
	for _, o := range m.Objects {
		switch v := o.(type) {
		case *Plus:
			c := *v
			out.Objects = append(out.Objects, &c)
		case *Arrow:
			c := *v
			out.Objects = append(out.Objects, &c)
		case *MultitailArrow:
			c := *v
			c.Tails = slices.Clone(v.Tails)
			out.Objects = append(out.Objects, &c)
		case *Text:
			c := *v
			out.Objects = append(out.Objects, &c)
		}
	}
	return out
}

// Retain keeps the objects for which keep returns true, preserving order.
// The returned slice maps every old index to its new index, or -1 when the
// object was dropped.
func (m *Metadata) Retain(keep func(i int, o Object) bool) []int {
	remap := make([]int, len(m.Objects))
	kept := m.Objects[:0]
	for i, o := range m.Objects {
		if !keep(i, o) {
			remap[i] = -1
			continue
		}
		remap[i] = len(kept)
		kept = append(kept, o)
	}
	clear(m.Objects[len(kept):])
	m.Objects = kept
	return remap
}
