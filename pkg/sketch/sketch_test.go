package sketch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/rxnpath/pkg/geometry"
)

// ethanolAndWater draws C-C-O at the origin and a lone O at x=10.
func ethanolAndWater(t *testing.T) *Sketch {
	t.Helper()
	var s Sketch
	c1 := s.AddAtom("C", geometry.V(0, 0))
	c2 := s.AddAtom("C", geometry.V(1, 0.5))
	w := s.AddAtom("O", geometry.V(10, 0))
	o := s.AddAtom("O", geometry.V(2, 0))
	require.NoError(t, s.AddBond(c1, c2, 1))
	require.NoError(t, s.AddBond(c2, o, 1))
	_ = w
	return &s
}

func TestFragments(t *testing.T) {
	s := ethanolAndWater(t)
	frags := s.Fragments()
	require.Len(t, frags, 2)

	assert.Len(t, frags[0].Atoms, 3)
	assert.Equal(t, []Bond{{A: 0, B: 1, Order: 1}, {A: 1, B: 2, Order: 1}}, frags[0].Bonds)
	assert.Equal(t, "C2O", frags[0].Formula())
	assert.Equal(t, "O", frags[1].Formula())
	assert.Equal(t, geometry.NewRect(geometry.V(0, 0), geometry.V(2, 0.5)), frags[0].BoundingBox())
}

func TestFragmentsSuperAtom(t *testing.T) {
	var s Sketch
	a := s.AddAtom("C", geometry.V(0, 0))
	b := s.AddAtom("O", geometry.V(5, 0))
	require.NoError(t, s.AddSuperAtom("OMe", a, b))

	frags := s.Fragments()
	require.Len(t, frags, 1, "super-atom keeps unbonded atoms together")
	assert.Equal(t, []SuperAtom{{Label: "OMe", Atoms: []int{0, 1}}}, frags[0].SuperAtoms)
	assert.Len(t, s.Components(), 1)
}

func TestSketchErrors(t *testing.T) {
	var s Sketch
	a := s.AddAtom("C", geometry.V(0, 0))
	assert.ErrorIs(t, s.AddBond(a, 5, 1), ErrUnknownAtom)
	assert.ErrorIs(t, s.AddBond(a, a, 1), ErrSelfBond)
	assert.ErrorIs(t, s.AddSuperAtom("X", 3), ErrUnknownAtom)

	s.Bonds = append(s.Bonds, Bond{A: 0, B: 9})
	assert.ErrorIs(t, s.Validate(), ErrUnknownAtom)
}

func TestContentKeyIgnoresPosition(t *testing.T) {
	frags := ethanolAndWater(t).Fragments()
	key := frags[0].ContentKey()

	frags[0].Translate(geometry.V(-7, 3))
	assert.Equal(t, key, frags[0].ContentKey())
	assert.NotEqual(t, key, frags[1].ContentKey())
}

func TestPlaceholder(t *testing.T) {
	f := &Fragment{Label: "A", Box: geometry.NewRect(geometry.V(0, 0), geometry.V(2, 1))}
	f.Translate(geometry.V(1, 1))
	assert.Equal(t, geometry.NewRect(geometry.V(1, 1), geometry.V(3, 2)), f.BoundingBox())
	assert.Equal(t, "A", f.DisplayLabel())
}

func TestFormulaHill(t *testing.T) {
	f := &Fragment{Atoms: []Atom{{Symbol: "O"}, {Symbol: "H"}, {Symbol: "C"}, {Symbol: "N"}, {Symbol: "H"}, {Symbol: "Br"}}}
	assert.Equal(t, "CH2BrNO", f.Formula())

	inorganic := &Fragment{Atoms: []Atom{{Symbol: "O"}, {Symbol: "H"}, {Symbol: "H"}}}
	assert.Equal(t, "H2O", inorganic.Formula())
}

func TestMolfile(t *testing.T) {
	f := ethanolAndWater(t).Fragments()[0]
	f.Atoms[2].Charge = -1
	mol := f.Molfile()

	lines := strings.Split(mol, "\n")
	assert.Equal(t, "  3  2  0  0  0  0  0  0  0  0999 V2000", lines[3])
	assert.True(t, strings.HasPrefix(lines[4], "    0.0000    0.0000    0.0000 C  "))
	assert.Equal(t, "  1  2  1  0", lines[7])
	assert.Contains(t, mol, "M  CHG  1   3  -1\n")
	assert.True(t, strings.HasSuffix(mol, "M  END\n"))
}

func TestFragmentClone(t *testing.T) {
	f := &Fragment{
		Atoms:      []Atom{{Symbol: "C", Pos: geometry.V(0, 0)}, {Symbol: "O", Pos: geometry.V(1, 0)}},
		Bonds:      []Bond{{A: 0, B: 1, Order: 1}},
		SuperAtoms: []SuperAtom{{Label: "OH", Atoms: []int{1}}},
		InChIKey:   "OKKJLVBELUTLKV-UHFFFAOYSA-N",
	}
	c, ok := f.Clone().(*Fragment)
	require.True(t, ok)

	c.Translate(geometry.V(5, 0))
	c.SuperAtoms[0].Atoms[0] = 0
	assert.Equal(t, geometry.V(0, 0), f.Atoms[0].Pos)
	assert.Equal(t, []int{1}, f.SuperAtoms[0].Atoms)
	assert.Equal(t, f.InChIKey, c.InChIKey)
	assert.Equal(t, f.Bonds, c.Bonds)
}
