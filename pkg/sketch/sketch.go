package sketch

import (
	"errors"
	"slices"

	"github.com/matzehuels/rxnpath/pkg/geometry"
	"github.com/matzehuels/rxnpath/pkg/reaction"
)

var (
	// ErrUnknownAtom is returned when a bond or super-atom names an atom that
	// does not exist.
	ErrUnknownAtom = errors.New("unknown atom")

	// ErrSelfBond is returned when a bond joins an atom to itself.
	ErrSelfBond = errors.New("bond joins an atom to itself")
)

// Atom is a drawn atom.
type Atom struct {
	Symbol string
	Pos    geometry.Vec
	Charge int
}

// Bond joins atoms A and B. Order is 1, 2 or 3; 4 marks an aromatic bond.
type Bond struct {
	A     int
	B     int
	Order int
}

// SuperAtom is an abbreviation such as "Ph" or "Boc". Its atoms always end
// up in the same fragment, even when no bond joins them.
type SuperAtom struct {
	Label string
	Atoms []int
}

// Sketch is an unstructured drawing holding any number of molecules.
type Sketch struct {
	Atoms      []Atom
	Bonds      []Bond
	SuperAtoms []SuperAtom
}

// AddAtom appends an atom and returns its index.
func (s *Sketch) AddAtom(symbol string, pos geometry.Vec) int {
	s.Atoms = append(s.Atoms, Atom{Symbol: symbol, Pos: pos})
	return len(s.Atoms) - 1
}

// AddBond appends a bond between existing atoms.
func (s *Sketch) AddBond(a, b, order int) error {
	if !s.hasAtom(a) || !s.hasAtom(b) {
		return ErrUnknownAtom
	}
	if a == b {
		return ErrSelfBond
	}
	s.Bonds = append(s.Bonds, Bond{A: a, B: b, Order: order})
	return nil
}

// AddSuperAtom groups existing atoms under an abbreviation label.
func (s *Sketch) AddSuperAtom(label string, atoms ...int) error {
	for _, a := range atoms {
		if !s.hasAtom(a) {
			return ErrUnknownAtom
		}
	}
	s.SuperAtoms = append(s.SuperAtoms, SuperAtom{Label: label, Atoms: slices.Clone(atoms)})
	return nil
}

func (s *Sketch) hasAtom(i int) bool { return i >= 0 && i < len(s.Atoms) }

// Validate checks that bonds and super-atoms reference existing atoms.
func (s *Sketch) Validate() error {
	for _, b := range s.Bonds {
		if !s.hasAtom(b.A) || !s.hasAtom(b.B) {
			return ErrUnknownAtom
		}
		if b.A == b.B {
			return ErrSelfBond
		}
	}
	for _, sa := range s.SuperAtoms {
		for _, a := range sa.Atoms {
			if !s.hasAtom(a) {
				return ErrUnknownAtom
			}
		}
	}
	return nil
}

// Fragments splits the sketch into connected fragments. Atoms joined by a
// bond or by a shared super-atom belong to the same fragment. Fragments are
// ordered by their lowest atom index; atoms keep their relative order.
// Invalid references are ignored; call Validate first to reject them.
func (s *Sketch) Fragments() []*Fragment {
	uf := newUnionFind(len(s.Atoms))
	for _, b := range s.Bonds {
		if s.hasAtom(b.A) && s.hasAtom(b.B) {
			uf.union(b.A, b.B)
		}
	}
	for _, sa := range s.SuperAtoms {
		for i := 1; i < len(sa.Atoms); i++ {
			if s.hasAtom(sa.Atoms[0]) && s.hasAtom(sa.Atoms[i]) {
				uf.union(sa.Atoms[0], sa.Atoms[i])
			}
		}
	}

	fragOf := make(map[int]int) // root atom -> fragment index
	local := make([]int, len(s.Atoms))
	var frags []*Fragment
	for i, a := range s.Atoms {
		root := uf.find(i)
		fi, ok := fragOf[root]
		if !ok {
			fi = len(frags)
			fragOf[root] = fi
			frags = append(frags, &Fragment{})
		}
		local[i] = len(frags[fi].Atoms)
		frags[fi].Atoms = append(frags[fi].Atoms, a)
	}
	for _, b := range s.Bonds {
		if !s.hasAtom(b.A) || !s.hasAtom(b.B) {
			continue
		}
		f := frags[fragOf[uf.find(b.A)]]
		f.Bonds = append(f.Bonds, Bond{A: local[b.A], B: local[b.B], Order: b.Order})
	}
	for _, sa := range s.SuperAtoms {
		if len(sa.Atoms) == 0 || !s.hasAtom(sa.Atoms[0]) {
			continue
		}
		f := frags[fragOf[uf.find(sa.Atoms[0])]]
		atoms := make([]int, 0, len(sa.Atoms))
		for _, a := range sa.Atoms {
			if s.hasAtom(a) {
				atoms = append(atoms, local[a])
			}
		}
		f.SuperAtoms = append(f.SuperAtoms, SuperAtom{Label: sa.Label, Atoms: atoms})
	}
	return frags
}

// Components returns the fragments as reaction molecules.
func (s *Sketch) Components() []reaction.Molecule {
	frags := s.Fragments()
	out := make([]reaction.Molecule, len(frags))
	for i, f := range frags {
		out[i] = f
	}
	return out
}

type unionFind struct{ parent, rank []int }

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	switch {
	case u.rank[ra] < u.rank[rb]:
		ra, rb = rb, ra
	case u.rank[ra] == u.rank[rb]:
		u.rank[ra]++
	}
	u.parent[rb] = ra
}
