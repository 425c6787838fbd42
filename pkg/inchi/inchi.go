// Package inchi resolves molecules to InChI identities.
//
// The pathway builder only compares InChIKeys for equality; how they are
// computed is up to the [Oracle]. Three oracles ship with the package:
//
//   - [PropertyOracle] reads identities already attached to molecules
//   - [ExecOracle] pipes a molfile through an external tool such as Open Babel
//   - [CachedOracle] memoizes any oracle in a cache.Cache
//
// Oracles compose:
//
//	o := inchi.NewCachedOracle(inchi.ExecOracle{Command: []string{"obabel", "-imol", "-oinchi", "-xK"}}, c, nil)
package inchi

import (
	"context"
	"errors"
	"regexp"

	"github.com/matzehuels/rxnpath/pkg/reaction"
)

var (
	// ErrNoIdentity is returned when an oracle cannot name a molecule.
	ErrNoIdentity = errors.New("no InChI identity")

	// ErrInvalidKey is returned when a key is not a well-formed InChIKey.
	ErrInvalidKey = errors.New("malformed InChIKey")
)

// Identity is the InChI string and key of a molecule.
type Identity struct {
	InChI string `json:"inchi,omitempty"`
	Key   string `json:"key"`
}

// Oracle computes the identity of a molecule.
type Oracle interface {
	Identify(ctx context.Context, m reaction.Molecule) (Identity, error)
}

// OracleFunc adapts a function to [Oracle].
type OracleFunc func(ctx context.Context, m reaction.Molecule) (Identity, error)

// Identify calls f.
func (f OracleFunc) Identify(ctx context.Context, m reaction.Molecule) (Identity, error) {
	return f(ctx, m)
}

var keyPattern = regexp.MustCompile(`^[A-Z]{14}-[A-Z]{10}-[A-Z]$`)

// ValidKey reports whether key has the InChIKey shape XXXXXXXXXXXXXX-YYYYYYYYYY-Z.
func ValidKey(key string) bool { return keyPattern.MatchString(key) }
