package reaction

import (
	"slices"

	"github.com/matzehuels/rxnpath/pkg/geometry"
)

// Molecule is an opaque drawn molecule. Only its extent and the ability to
// move it matter to pathway reconstruction and layout.
type Molecule interface {
	BoundingBox() geometry.Rect
	Translate(offset geometry.Vec)
}

// Cloner is implemented by molecules that can be copied. The pathway owns
// one object per pool entry, so a molecule listed twice is pooled as a copy.
type Cloner interface {
	Clone() Molecule
}

// Well-known property keys.
const (
	PropertyName      = "name"
	PropertyCondition = "condition"
)

// Property is a free-text annotation of a reaction step.
type Property struct {
	Key   string
	Value string
}

// NoArrow is the Arrow value of a reaction that has no drawn arrow yet.
const NoArrow = -1

// Reaction is one step of a pathway. Molecule lists hold indices into the
// owning [Pathway]'s pool; their order is the drawing order.
type Reaction struct {
	Reactants []int
	Products  []int
	Catalysts []int

	// Arrow is the index of the arrow or multi-tail arrow in Pathway.Meta
	// representing this step, or NoArrow.
	Arrow int

	Properties []Property
}

// Property returns the value of the first property with the given key.
func (r *Reaction) Property(key string) (string, bool) {
	for _, p := range r.Properties {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Name returns the reaction name, or "" when unset.
func (r *Reaction) Name() string {
	v, _ := r.Property(PropertyName)
	return v
}

// Condition returns the reaction conditions, or "" when unset.
func (r *Reaction) Condition() string {
	v, _ := r.Property(PropertyCondition)
	return v
}

// SetProperty replaces the value for key or appends it.
func (r *Reaction) SetProperty(key, value string) {
	for i := range r.Properties {
		if r.Properties[i].Key == key {
			r.Properties[i].Value = value
			return
		}
	}
	r.Properties = append(r.Properties, Property{Key: key, Value: value})
}

// Step is an independent reaction given by its molecules rather than by pool
// indices. It is the input of the pathway builder.
type Step struct {
	Reactants  []Molecule
	Products   []Molecule
	Catalysts  []Molecule
	Properties []Property
}

// Successor is an outgoing edge of a [Node]: the successor reaction and the
// reactant slots of it that this reaction's products satisfy.
type Successor struct {
	Reaction int
	Slots    []int
}

// Node is the graph vertex of one reaction.
type Node struct {
	// Reaction is the index of the reaction in Pathway.Reactions.
	Reaction int

	// Successors lists the reactions consuming this reaction's products.
	// More than one entry is an ambiguous pathway.
	Successors []Successor

	// Precursors lists the reactions producing this reaction's reactants.
	Precursors []int

	// ConnectedReactants maps a reactant slot to the precursor producing it.
	// Connected reactants are drawn once, as the precursor's product.
	ConnectedReactants map[int]int
}

// Connected reports whether reactant slot is produced by a precursor.
func (n *Node) Connected(slot int) bool {
	_, ok := n.ConnectedReactants[slot]
	return ok
}

// PrecursorSlots returns the reactant slots fed by precursor, ascending.
func (n *Node) PrecursorSlots(precursor int) []int {
	var slots []int
	for slot, p := range n.ConnectedReactants {
		if p == precursor {
			slots = append(slots, slot)
		}
	}
	slices.Sort(slots)
	return slots
}
