package io

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rxerrors "github.com/matzehuels/rxnpath/pkg/errors"
	"github.com/matzehuels/rxnpath/pkg/geometry"
	"github.com/matzehuels/rxnpath/pkg/reaction"
	"github.com/matzehuels/rxnpath/pkg/sketch"
)

const reactionsDoc = `{
  "kind": "reactions",
  "molecules": [
    {"atoms": [{"symbol": "C", "x": 0, "y": 0}, {"symbol": "O", "x": 1, "y": 0}], "bonds": [{"a": 0, "b": 1, "order": 2}]},
    {"label": "B", "box": [0, 0, 1, 1], "inchi_key": "BBBBBBBBBBBBBB-BBBBBBBBBB-B"},
    {"label": "Pd", "box": [0, 0, 1, 1]}
  ],
  "reactions": [
    {"reactants": [0], "products": [1], "catalysts": [2], "name": "Oxidation", "condition": "rt"}
  ]
}`

func TestReadReactions(t *testing.T) {
	doc, err := ReadJSON(strings.NewReader(reactionsDoc))
	require.NoError(t, err)

	_, err = uuid.Parse(doc.ID)
	assert.NoError(t, err, "missing id is generated")
	assert.Equal(t, KindReactions, doc.Kind)

	steps := doc.Steps()
	require.Len(t, steps, 1)
	s := steps[0]
	require.Len(t, s.Reactants, 1)
	require.Len(t, s.Catalysts, 1)

	frag, ok := s.Reactants[0].(*sketch.Fragment)
	require.True(t, ok)
	assert.Equal(t, "CO", frag.Formula())
	assert.Equal(t, geometry.NewRect(geometry.V(0, 0), geometry.V(1, 0)), frag.BoundingBox())

	product := s.Products[0].(*sketch.Fragment)
	assert.Equal(t, "BBBBBBBBBBBBBB-BBBBBBBBBB-B", product.InChIKey)

	r := reaction.Reaction{Properties: s.Properties}
	assert.Equal(t, "Oxidation", r.Name())
	assert.Equal(t, "rt", r.Condition())
}

func TestStepsCopySharedMolecules(t *testing.T) {
	const doc = `{
	  "kind": "reactions",
	  "molecules": [
	    {"label": "A", "box": [0, 0, 1, 1]},
	    {"label": "B", "box": [0, 0, 1, 1]},
	    {"label": "C", "box": [0, 0, 1, 1]},
	    {"label": "Pd", "box": [0, 0, 1, 1]},
	    {"label": "NaOH", "box": [0, 0, 1, 1]}
	  ],
	  "reactions": [
	    {"reactants": [0, 4], "products": [1], "catalysts": [3]},
	    {"reactants": [1, 4], "products": [2], "catalysts": [3]}
	  ]
	}`
	d, err := ReadJSON(strings.NewReader(doc))
	require.NoError(t, err)

	steps := d.Steps()
	require.Len(t, steps, 2)
	assert.False(t, steps[0].Catalysts[0] == steps[1].Catalysts[0], "catalyst fragments must be distinct")
	assert.False(t, steps[0].Reactants[1] == steps[1].Reactants[1], "reagent fragments must be distinct")

	steps[0].Catalysts[0].Translate(geometry.V(3, 3))
	assert.Equal(t, geometry.NewRect(geometry.V(0, 0), geometry.V(1, 1)), steps[1].Catalysts[0].BoundingBox())
	assert.Equal(t, "Pd", steps[1].Catalysts[0].(*sketch.Fragment).Label)
}

func TestReadScheme(t *testing.T) {
	const scheme = `{
	  "id": "5C1F3B7E-8F0A-4A57-9D55-7D0F1A0C9A11",
	  "kind": "scheme",
	  "molecules": [
	    {"atoms": [{"symbol": "C", "x": 0, "y": 0}, {"symbol": "C", "x": 1, "y": 0}, {"symbol": "Na", "x": 3, "y": 0}],
	     "bonds": [{"a": 0, "b": 1, "order": 1}]},
	    {"atoms": [{"symbol": "C", "x": 10, "y": 0}, {"symbol": "O", "x": 10, "y": 1}],
	     "super_atoms": [{"label": "COH", "atoms": [0, 1]}]},
	    {"label": "X", "box": [20, 0, 21, 1]}
	  ],
	  "objects": [
	    {"type": "arrow", "tail": [4, 0], "head": [8, 0]},
	    {"type": "plus", "pos": [2, 0]},
	    {"type": "multitail", "head": [9, 0], "tails": [[6, 1], [6, -1]], "spine": [[7, 1], [7, -1]]},
	    {"type": "text", "box": [4, -1, 8, -0.4], "content": "heat"}
	  ]
	}`
	doc, err := ReadJSON(strings.NewReader(scheme))
	require.NoError(t, err)
	assert.Equal(t, "5c1f3b7e-8f0a-4a57-9d55-7d0f1a0c9a11", doc.ID)

	s, err := doc.Scheme()
	require.NoError(t, err)
	// C-C, Na, the super-atom pair and the placeholder.
	assert.Len(t, s.Components(), 4)
	assert.Equal(t, 4, s.Meta.Len())

	for _, a := range s.Meta.Arrows() {
		assert.Equal(t, reaction.ArrowOpenAngle, a.Type)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed", `{"kind": `},
		{"no kind", `{"molecules": []}`},
		{"unknown kind", `{"kind": "ket"}`},
		{"bad id", `{"id": "abc", "kind": "scheme"}`},
		{"bond out of range", `{"kind": "scheme", "molecules": [{"atoms": [{"symbol": "C"}], "bonds": [{"a": 0, "b": 3}]}]}`},
		{"molecule out of range", `{"kind": "reactions", "molecules": [], "reactions": [{"reactants": [0], "products": []}]}`},
		{"next out of range", `{"kind": "pathway", "molecules": [{}], "reactions": [{"reactants": [0], "products": [], "next": {"reaction": 4, "slots": [0]}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.True(t, rxerrors.Is(err, rxerrors.ErrCodeInvalidFormat), "got %v", err)
		})
	}
}

func TestMetadataErrors(t *testing.T) {
	doc := &Document{Kind: KindScheme, Objects: []Object{{Type: ObjectArrow}}}
	_, err := doc.Metadata()
	assert.True(t, rxerrors.Is(err, rxerrors.ErrCodeInvalidFormat))

	doc.Objects = []Object{{Type: "circle"}}
	_, err = doc.Metadata()
	assert.True(t, rxerrors.Is(err, rxerrors.ErrCodeInvalidFormat))
}

func TestPathwayRoundTrip(t *testing.T) {
	p := reaction.New()
	for i := range 3 {
		p.AddMolecule(&sketch.Fragment{
			Label: string(rune('A' + i)),
			Box:   geometry.RectAround(geometry.V(float64(i)*5, 0), 0.5, 0.5),
		})
	}
	p.AddReaction(reaction.Reaction{Reactants: []int{0}, Products: []int{1}, Arrow: 0})
	p.AddReaction(reaction.Reaction{Reactants: []int{1}, Products: []int{2}, Arrow: reaction.NoArrow})
	p.Reactions[1].SetProperty(reaction.PropertyName, "Reduction")
	require.NoError(t, p.Link(0, 1, []int{0}))
	p.Meta.Add(&reaction.Arrow{Type: reaction.ArrowRetrosynthetic, Tail: geometry.V(1, 0), Head: geometry.V(4, 0)})
	p.Meta.Add(&reaction.MultitailArrow{
		Head:       geometry.V(9, 0),
		Tails:      []geometry.Vec{geometry.V(6, 1), geometry.V(6, -1)},
		SpineBegin: geometry.V(7, 1),
		SpineEnd:   geometry.V(7, -1),
	})

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(FromPathway(p), &buf))

	doc, err := ReadJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, KindPathway, doc.Kind)

	got, err := doc.Pathway()
	require.NoError(t, err)
	require.Len(t, got.Reactions, 2)
	assert.Equal(t, 0, got.Reactions[0].Arrow)
	assert.Equal(t, reaction.NoArrow, got.Reactions[1].Arrow)
	assert.Equal(t, "Reduction", got.Reactions[1].Name())
	assert.Equal(t, []int{1}, got.RootReactionIndices())
	assert.Equal(t, map[int]int{0: 0}, got.Nodes[1].ConnectedReactants)
	assert.Equal(t, p.Meta.Objects, got.Meta.Objects)
	assert.Equal(t, p.Molecules[2].BoundingBox(), got.Molecules[2].BoundingBox())
}
