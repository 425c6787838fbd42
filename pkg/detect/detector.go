package detect

import (
	"io"

	"github.com/charmbracelet/log"

	rxerrors "github.com/matzehuels/rxnpath/pkg/errors"
	"github.com/matzehuels/rxnpath/pkg/reaction"
)

// Geometry constants, in bond lengths.
const (
	minMoleculeSize = 0.5
	mergeDistance   = 2.0
	plusHalfSize    = 0.25
	zoneDepth       = 4.0
	catalystHeight  = 3.0
)

// Default option values.
const (
	DefaultBondLength    = 1.0
	DefaultMaxIterations = 64
)

// Options configures a [Detector].
type Options struct {
	// BondLength scales every distance threshold. Defaults to 1.
	BondLength float64

	// MaxIterations caps the merging passes of the merge and absorption
	// stages. A scheme that still merges past the cap is reported as a bad
	// pathway. Defaults to 64.
	MaxIterations int

	// Logger receives debug output. Nil discards it.
	Logger *log.Logger
}

// Container is a molecule store that can split itself into disconnected
// fragments. Fragments joined by a super-atom stay together.
type Container interface {
	Components() []reaction.Molecule
}

// MoleculeList is a [Container] whose molecules are already split.
type MoleculeList []reaction.Molecule

// Components implements [Container].
func (l MoleculeList) Components() []reaction.Molecule { return l }

// Detector reconstructs pathways from drawn schemes. It is stateless and safe
// for concurrent use.
type Detector struct {
	bondLength    float64
	maxIterations int
	logger        *log.Logger
}

// New returns a detector with defaults applied to opts.
func New(opts Options) *Detector {
	d := &Detector{
		bondLength:    opts.BondLength,
		maxIterations: opts.MaxIterations,
		logger:        opts.Logger,
	}
	if d.bondLength <= 0 {
		d.bondLength = DefaultBondLength
	}
	if d.maxIterations <= 0 {
		d.maxIterations = DefaultMaxIterations
	}
	if d.logger == nil {
		d.logger = log.New(io.Discard)
	}
	return d
}

// Detect reads the molecules of c and the graphics in meta as a multi-step
// pathway. The returned pathway owns the molecules of c in their original
// order and a copy of meta without the texts consumed as reaction names.
// meta itself is not modified.
func (d *Detector) Detect(c Container, meta *reaction.Metadata) (*reaction.Pathway, error) {
	if c == nil {
		return nil, rxerrors.New(rxerrors.ErrCodeInvalidInput, "no molecule container")
	}
	if meta == nil {
		meta = &reaction.Metadata{}
	}

	s := &scene{d: d, mols: c.Components(), meta: meta}
	if len(s.mols) == 0 {
		return nil, badPathway("scheme has no molecules")
	}

	s.buildZones()
	s.extractComponents()
	if err := s.premerge(); err != nil {
		return nil, err
	}
	d.logger.Debug("components merged", "molecules", len(s.mols), "components", len(s.comps), "zones", len(s.zones))

	s.buildBlocks()
	if err := s.assignArrows(); err != nil {
		return nil, err
	}
	if err := s.assignMultitails(); err != nil {
		return nil, err
	}
	if len(s.edges) == 0 {
		return nil, badPathway("scheme has no arrows")
	}
	s.assignCatalysts()
	if err := s.absorb(); err != nil {
		return nil, err
	}
	d.logger.Debug("roles assigned", "blocks", s.aliveBlocks(), "edges", len(s.edges))

	p, err := s.export()
	if err != nil {
		return nil, err
	}
	d.logger.Debug("pathway detected", "reactions", len(p.Reactions), "unassigned", len(p.Unassigned))
	return p, nil
}

func badPathway(format string, args ...any) error {
	return rxerrors.New(rxerrors.ErrCodeBadPathway, format, args...)
}
