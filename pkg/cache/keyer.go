package cache

import (
	"fmt"
	"time"
)

// Default entry lifetimes. Identities depend only on the molecule, so they
// never expire.
const (
	TTLIdentity time.Duration = 0
	TTLPathway                = 7 * 24 * time.Hour
	TTLArtifact               = 7 * 24 * time.Hour
)

// Keyer builds cache keys for the three cached stages.
type Keyer interface {
	// IdentityKey addresses the InChI identity of a molecule by content key.
	IdentityKey(contentKey string) string
	// PathwayKey addresses a reconstructed and laid out pathway.
	PathwayKey(inputHash string, opts PathwayKeyOpts) string
	// ArtifactKey addresses a rendered output of a pathway.
	ArtifactKey(pathwayHash string, opts ArtifactKeyOpts) string
}

// PathwayKeyOpts are the options that change a reconstruction result.
type PathwayKeyOpts struct {
	Mode          string  `json:"mode"` // "build" or "detect"
	BondLength    float64 `json:"bond_length,omitempty"`
	MaxIterations int     `json:"max_iterations,omitempty"`
	Layout        any     `json:"layout,omitempty"`
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Scale    float64 `json:"scale,omitempty"`
	Detailed bool    `json:"detailed,omitempty"`
}

// DefaultKeyer hashes options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key scheme.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// IdentityKey returns "inchi:<contentKey>".
func (DefaultKeyer) IdentityKey(contentKey string) string {
	return fmt.Sprintf("inchi:%s", contentKey)
}

// PathwayKey hashes the input hash together with opts.
func (DefaultKeyer) PathwayKey(inputHash string, opts PathwayKeyOpts) string {
	return hashKey("pathway", inputHash, opts)
}

// ArtifactKey hashes the pathway hash together with opts.
func (DefaultKeyer) ArtifactKey(pathwayHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", pathwayHash, opts)
}
