package io

import (
	"github.com/google/uuid"

	"github.com/matzehuels/rxnpath/pkg/geometry"
)

// Kind says how a document is meant to be read.
type Kind string

// Document kinds.
const (
	KindReactions Kind = "reactions"
	KindScheme    Kind = "scheme"
	KindPathway   Kind = "pathway"
)

// Object types.
const (
	ObjectPlus      = "plus"
	ObjectArrow     = "arrow"
	ObjectMultitail = "multitail"
	ObjectText      = "text"
)

// Document is the JSON form of a reaction set, a scheme or a pathway.
type Document struct {
	ID         string     `json:"id"`
	Kind       Kind       `json:"kind"`
	Molecules  []Molecule `json:"molecules"`
	Reactions  []Reaction `json:"reactions,omitempty"`
	Objects    []Object   `json:"objects,omitempty"`
	Unassigned []int      `json:"unassigned,omitempty"`
}

// New returns an empty document of the given kind with a fresh ID.
func New(kind Kind) *Document {
	return &Document{ID: uuid.NewString(), Kind: kind}
}

// Point is an [x, y] pair.
type Point [2]float64

func pointOf(v geometry.Vec) Point { return Point{v.X, v.Y} }

// Vec returns the point as a vector.
func (p Point) Vec() geometry.Vec { return geometry.V(p[0], p[1]) }

// Box is an [x0, y0, x1, y1] rectangle.
type Box [4]float64

func boxOf(r geometry.Rect) *Box { return &Box{r.Min.X, r.Min.Y, r.Max.X, r.Max.Y} }

// Rect returns the box as a rectangle with ordered corners.
func (b *Box) Rect() geometry.Rect {
	if b == nil {
		return geometry.Rect{}
	}
	return geometry.NewRect(geometry.V(b[0], b[1]), geometry.V(b[2], b[3]))
}

type Atom struct {
	Symbol string  `json:"symbol"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Charge int     `json:"charge,omitempty"`
}

type Bond struct {
	A     int `json:"a"`
	B     int `json:"b"`
	Order int `json:"order"`
}

type SuperAtom struct {
	Label string `json:"label"`
	Atoms []int  `json:"atoms"`
}

// Molecule is a drawn molecule or, without atoms, a labelled placeholder.
type Molecule struct {
	Atoms      []Atom      `json:"atoms,omitempty"`
	Bonds      []Bond      `json:"bonds,omitempty"`
	SuperAtoms []SuperAtom `json:"super_atoms,omitempty"`
	Label      string      `json:"label,omitempty"`
	Box        *Box        `json:"box,omitempty"`
	InChI      string      `json:"inchi,omitempty"`
	InChIKey   string      `json:"inchi_key,omitempty"`
}

// Reaction is one step. Molecule lists index into Document.Molecules.
type Reaction struct {
	Reactants []int  `json:"reactants"`
	Products  []int  `json:"products"`
	Catalysts []int  `json:"catalysts,omitempty"`
	Name      string `json:"name,omitempty"`
	Condition string `json:"condition,omitempty"`

	// Pathway documents only.
	Arrow *int  `json:"arrow,omitempty"`
	Next  *Link `json:"next,omitempty"`
}

// Link names the reaction consuming a reaction's products and the reactant
// slots of it they fill.
type Link struct {
	Reaction int   `json:"reaction"`
	Slots    []int `json:"slots"`
}

// Object is a scheme graphic. Type selects the fields in use.
type Object struct {
	Type    string  `json:"type"`
	Pos     *Point  `json:"pos,omitempty"`
	Mode    int     `json:"mode,omitempty"`
	Tail    *Point  `json:"tail,omitempty"`
	Head    *Point  `json:"head,omitempty"`
	Tails   []Point `json:"tails,omitempty"`
	Spine   []Point `json:"spine,omitempty"`
	Box     *Box    `json:"box,omitempty"`
	Content string  `json:"content,omitempty"`
}
