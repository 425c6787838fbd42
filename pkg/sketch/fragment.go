package sketch

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/rxnpath/pkg/cache"
	"github.com/matzehuels/rxnpath/pkg/geometry"
	"github.com/matzehuels/rxnpath/pkg/reaction"
)

// Fragment is one connected molecule. Bond and super-atom indices refer to
// the fragment's own Atoms.
//
// A fragment without atoms is a placeholder drawn as its Label inside Box;
// documents use placeholders for molecules known only by name.
type Fragment struct {
	Atoms      []Atom
	Bonds      []Bond
	SuperAtoms []SuperAtom

	Label string
	Box   geometry.Rect

	// InChI and InChIKey carry an identity computed elsewhere, if known.
	InChI    string
	InChIKey string
}

var _ reaction.Molecule = (*Fragment)(nil)

// BoundingBox returns the extent of the atom positions, or Box for a
// placeholder. A single atom yields a zero-area rectangle.
func (f *Fragment) BoundingBox() geometry.Rect {
	if len(f.Atoms) == 0 {
		return f.Box
	}
	r := geometry.Rect{Min: f.Atoms[0].Pos, Max: f.Atoms[0].Pos}
	for _, a := range f.Atoms[1:] {
		r.ExpandToContainCoord(a.Pos)
	}
	return r
}

// Translate moves every atom and the placeholder box by offset.
func (f *Fragment) Translate(offset geometry.Vec) {
	for i := range f.Atoms {
		f.Atoms[i].Pos = f.Atoms[i].Pos.Plus(offset)
	}
	f.Box = geometry.Translate(f.Box, offset)
}

// Clone returns a deep copy of the fragment.
func (f *Fragment) Clone() reaction.Molecule {
	c := *f
	c.Atoms = slices.Clone(f.Atoms)
	c.Bonds = slices.Clone(f.Bonds)
	c.SuperAtoms = slices.Clone(f.SuperAtoms)
	for i := range c.SuperAtoms {
		c.SuperAtoms[i].Atoms = slices.Clone(c.SuperAtoms[i].Atoms)
	}
	return &c
}

// Formula returns the Hill formula of the fragment: carbon first, hydrogen
// second, then the other elements alphabetically. Fragments without carbon
// list every element alphabetically. Implicit hydrogens are not counted.
func (f *Fragment) Formula() string {
	counts := map[string]int{}
	for _, a := range f.Atoms {
		counts[a.Symbol]++
	}
	elems := make([]string, 0, len(counts))
	for e := range counts {
		elems = append(elems, e)
	}
	_, hasC := counts["C"]
	slices.SortFunc(elems, func(a, b string) int {
		if hasC {
			if r := cmp.Compare(hillRank(a), hillRank(b)); r != 0 {
				return r
			}
		}
		return cmp.Compare(a, b)
	})

	var sb strings.Builder
	for _, e := range elems {
		sb.WriteString(e)
		if n := counts[e]; n > 1 {
			fmt.Fprintf(&sb, "%d", n)
		}
	}
	return sb.String()
}

func hillRank(e string) int {
	switch e {
	case "C":
		return 0
	case "H":
		return 1
	}
	return 2
}

// ContentKey returns a key that depends on the fragment's structure and
// shape but not on its position, so a molecule moved by the layout keeps its
// key. Coordinates are rounded to 1e-3.
func (f *Fragment) ContentKey() string {
	type atomKey struct {
		S      string
		X, Y   int64
		Charge int `json:",omitempty"`
	}
	type key struct {
		Atoms      []atomKey
		Bonds      []Bond
		SuperAtoms []SuperAtom
		Label      string
		W, H       int64
	}

	b := f.BoundingBox()
	k := key{Bonds: f.Bonds, SuperAtoms: f.SuperAtoms, Label: f.Label}
	for _, a := range f.Atoms {
		k.Atoms = append(k.Atoms, atomKey{
			S:      a.Symbol,
			X:      round3(a.Pos.X - b.Min.X),
			Y:      round3(a.Pos.Y - b.Min.Y),
			Charge: a.Charge,
		})
	}
	if len(f.Atoms) == 0 {
		k.W, k.H = round3(b.Width()), round3(b.Height())
	}
	h, _ := cache.HashJSON(k)
	return h
}

func round3(v float64) int64 { return int64(math.Round(v * 1000)) }

// DisplayLabel returns the label, or the formula when the fragment has none.
func (f *Fragment) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Formula()
}

// Molfile writes the fragment as an MDL V2000 molfile. Aromatic bonds are
// written with bond type 4 and charges through "M  CHG" lines.
func (f *Fragment) Molfile() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n  rxnpath\n\n", f.Label)
	fmt.Fprintf(&sb, "%3d%3d  0  0  0  0  0  0  0  0999 V2000\n", len(f.Atoms), len(f.Bonds))
	for _, a := range f.Atoms {
		fmt.Fprintf(&sb, "%10.4f%10.4f%10.4f %-3s 0  0  0  0  0  0  0  0  0  0  0  0\n", a.Pos.X, a.Pos.Y, 0.0, a.Symbol)
	}
	for _, b := range f.Bonds {
		fmt.Fprintf(&sb, "%3d%3d%3d  0\n", b.A+1, b.B+1, b.Order)
	}
	var charged []int
	for i, a := range f.Atoms {
		if a.Charge != 0 {
			charged = append(charged, i)
		}
	}
	for start := 0; start < len(charged); start += 8 {
		chunk := charged[start:min(start+8, len(charged))]
		fmt.Fprintf(&sb, "M  CHG%3d", len(chunk))
		for _, i := range chunk {
			fmt.Fprintf(&sb, " %3d %3d", i+1, f.Atoms[i].Charge)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("M  END\n")
	return sb.String()
}

// Identity returns the InChI and InChIKey attached to the fragment.
func (f *Fragment) Identity() (inchi, key string) { return f.InChI, f.InChIKey }
