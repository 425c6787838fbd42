package inchi

import (
	"context"
	"fmt"

	"github.com/matzehuels/rxnpath/pkg/reaction"
)

// Identified is implemented by molecules that carry their own identity.
type Identified interface {
	Identity() (inchi, key string)
}

// PropertyOracle returns the identity a molecule carries. A missing or
// malformed key is an error unless Lenient is set, in which case any
// non-empty key is accepted.
type PropertyOracle struct {
	Lenient bool
}

// Identify implements [Oracle].
func (o PropertyOracle) Identify(ctx context.Context, m reaction.Molecule) (Identity, error) {
	im, ok := m.(Identified)
	if !ok {
		return Identity{}, fmt.Errorf("%w: %T carries no identity", ErrNoIdentity, m)
	}
	in, key := im.Identity()
	switch {
	case key == "":
		return Identity{}, ErrNoIdentity
	case !o.Lenient && !ValidKey(key):
		return Identity{}, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return Identity{InChI: in, Key: key}, nil
}
