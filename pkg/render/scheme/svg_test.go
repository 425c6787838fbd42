package scheme

import (
	"strings"
	"testing"

	"github.com/matzehuels/rxnpath/pkg/geometry"
	"github.com/matzehuels/rxnpath/pkg/reaction"
	"github.com/matzehuels/rxnpath/pkg/sketch"
)

func ethanol() *sketch.Fragment {
	var s sketch.Sketch
	c1 := s.AddAtom("C", geometry.V(0, 0))
	c2 := s.AddAtom("C", geometry.V(1, 0))
	o := s.AddAtom("O", geometry.V(1.5, 0.87))
	_ = s.AddBond(c1, c2, 1)
	_ = s.AddBond(c2, o, 1)
	return s.Fragments()[0]
}

func scheme(t *testing.T) *reaction.Pathway {
	t.Helper()
	p := reaction.New()
	p.AddMolecule(ethanol())
	p.AddMolecule(&sketch.Fragment{Label: "B & C", Box: geometry.NewRect(geometry.V(3, 0), geometry.V(4, 1))})
	p.AddMolecule(&sketch.Fragment{Label: "D", Box: geometry.NewRect(geometry.V(8, 0), geometry.V(9, 1))})
	p.Meta.Add(&reaction.Plus{Pos: geometry.V(2.25, 0.5)})
	arrow := p.Meta.Add(&reaction.Arrow{Type: reaction.ArrowOpenAngle, Tail: geometry.V(4.5, 0.5), Head: geometry.V(7.5, 0.5)})
	p.Meta.Add(&reaction.Text{Box: geometry.NewRect(geometry.V(5, -0.5), geometry.V(7, 0)), Content: "heat"})
	p.AddReaction(reaction.Reaction{Reactants: []int{0, 1}, Products: []int{2}, Arrow: arrow})
	return p
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(scheme(t)))

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		`id="mol-0"`,
		`class="molecule placeholder" id="mol-1"`,
		`B &amp; C`,
		`>heat</text>`,
		`class="plus"`,
		`marker-end="url(#head-open)"`,
		`>O</text>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("RenderSVG() output missing %s", want)
		}
	}
	if strings.Contains(svg, `>C</text>`) {
		t.Error("RenderSVG() labelled a carbon")
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("RenderSVG() output is not closed")
	}
}

func TestRenderSVG_Scale(t *testing.T) {
	p := scheme(t)
	// Bounds span x 0..9 and y -0.5..1 plus a margin of 1 on each side.
	svg := string(RenderSVG(p, WithScale(10)))
	if !strings.Contains(svg, `width="110" height="35"`) {
		t.Errorf("RenderSVG(WithScale(10)) has wrong size: %s", svg[:120])
	}
	svg = string(RenderSVG(p, WithScale(10), WithMargin(0)))
	if !strings.Contains(svg, `width="90" height="15"`) {
		t.Errorf("RenderSVG(WithMargin(0)) has wrong size: %s", svg[:120])
	}
}

func TestRenderSVG_Multitail(t *testing.T) {
	p := reaction.New()
	p.AddMolecule(&sketch.Fragment{Label: "A", Box: geometry.NewRect(geometry.V(0, 2), geometry.V(1, 3))})
	p.AddMolecule(&sketch.Fragment{Label: "B", Box: geometry.NewRect(geometry.V(0, -1), geometry.V(1, 0))})
	p.Meta.Add(&reaction.MultitailArrow{
		Head:       geometry.V(5, 1),
		Tails:      []geometry.Vec{geometry.V(1.5, 2.5), geometry.V(1.5, -0.5)},
		SpineBegin: geometry.V(2, 2.5),
		SpineEnd:   geometry.V(2, -0.5),
	})
	svg := string(RenderSVG(p))

	if got := strings.Count(svg, "<line"); got != 4 {
		t.Errorf("multi-tail arrow drew %d lines, want 4", got)
	}
	if got := strings.Count(svg, `marker-end="url(#head-filled)"`); got != 1 {
		t.Errorf("multi-tail arrow has %d heads, want 1", got)
	}
}

func TestAtomLabel(t *testing.T) {
	tests := []struct {
		atom sketch.Atom
		want string
	}{
		{sketch.Atom{Symbol: "N"}, "N"},
		{sketch.Atom{Symbol: "N", Charge: 1}, "N+"},
		{sketch.Atom{Symbol: "O", Charge: -1}, "O−"},
		{sketch.Atom{Symbol: "Fe", Charge: 3}, "Fe3+"},
		{sketch.Atom{Symbol: "S", Charge: -2}, "S2−"},
	}
	for _, tt := range tests {
		if got := atomLabel(tt.atom); got != tt.want {
			t.Errorf("atomLabel(%+v) = %q, want %q", tt.atom, got, tt.want)
		}
	}
}
