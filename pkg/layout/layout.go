package layout

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"

	rxerrors "github.com/matzehuels/rxnpath/pkg/errors"
	"github.com/matzehuels/rxnpath/pkg/geometry"
	"github.com/matzehuels/rxnpath/pkg/reaction"
)

// ErrReused is returned by [Layout.Apply] when it is called a second time.
var ErrReused = errors.New("layout already applied")

// Defaults in bond lengths.
const (
	DefaultArrowLength    = 3.0
	DefaultMargin         = 0.75
	DefaultPlusSpacing    = 0.5
	DefaultVerticalMargin = 3.5
	DefaultRootGap        = 4.0
	DefaultTailLength     = 0.5
)

// Text metrics in bond lengths.
const (
	charWidth  = 0.35
	lineHeight = 0.6
	labelGap   = 0.5
	minHalf    = 0.5
)

// Options configures a [Layout]. Distances are absolute; zero values take
// the default scaled by BondLength.
type Options struct {
	BondLength     float64
	ArrowLength    float64
	Margin         float64 // between a row and its connector
	PlusSpacing    float64 // between a molecule and a plus
	VerticalMargin float64 // between sibling rows
	RootGap        float64 // between stacked trees
	TailLength     float64 // multi-tail arrow tails

	Logger *log.Logger
}

func (o Options) withDefaults() Options {
	if o.BondLength <= 0 {
		o.BondLength = 1
	}
	def := func(v *float64, d float64) {
		if *v <= 0 {
			*v = d * o.BondLength
		}
	}
	def(&o.ArrowLength, DefaultArrowLength)
	def(&o.Margin, DefaultMargin)
	def(&o.PlusSpacing, DefaultPlusSpacing)
	def(&o.VerticalMargin, DefaultVerticalMargin)
	def(&o.RootGap, DefaultRootGap)
	def(&o.TailLength, DefaultTailLength)
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// Row is the placed row of one layout item.
type Row struct {
	// Reaction whose products the row shows, or -1 for a row of starting
	// materials.
	Reaction int
	// Parent is the reaction the row feeds, or -1 for a root.
	Parent int
	Depth  int
	Box    geometry.Rect
}

// Result summarises an applied layout.
type Result struct {
	Rows            []Row
	Arrows          int
	MultitailArrows int
	Bounds          geometry.Rect
}

// Layout positions one pathway. It is single use.
type Layout struct {
	p      *reaction.Pathway
	opts   Options
	logger *log.Logger

	items []item
	roots []int

	colLeft  []float64
	colWidth []float64

	used bool
}

// New returns a layout of p.
func New(p *reaction.Pathway, opts Options) *Layout {
	opts = opts.withDefaults()
	return &Layout{p: p, opts: opts, logger: opts.Logger}
}

// Apply positions every molecule of the pathway and redraws its connectors.
// The reaction graph is left untouched.
func (l *Layout) Apply() (Result, error) {
	if l.used {
		return Result{}, ErrReused
	}
	l.used = true
	if l.p == nil {
		return Result{}, rxerrors.New(rxerrors.ErrCodeInvalidInput, "no pathway to lay out")
	}
	if err := l.p.Validate(); err != nil {
		return Result{}, err
	}

	if err := l.buildForest(); err != nil {
		return Result{}, err
	}
	l.measure()
	l.columns()
	for _, r := range l.roots {
		l.firstWalk(r)
		l.secondWalk(r, 0)
	}
	l.stackRoots()
	res := l.place()
	l.logger.Debug("layout applied", "roots", len(l.roots), "items", len(l.items), "arrows", res.Arrows, "multitail", res.MultitailArrows)
	return res, nil
}
