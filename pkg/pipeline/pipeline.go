// Package pipeline runs the complete reconstruct → layout → render pipeline.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Reconstruct: build a pathway from a reaction list, detect it in a drawn
//     scheme, or load a pathway document as it is
//  2. Layout: place every molecule and redraw the arrows
//  3. Render: produce the requested output formats
//
// The document kind picks the reconstruction: "reactions" documents go
// through [pathway.Builder], "scheme" documents through [detect.Detector].
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, nil, logger)
//	result, err := runner.Execute(ctx, doc, pipeline.Options{
//	    Formats: []string{"svg", "json"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// The laid-out pathway and every artifact are cached under keys derived from
// the input document and the options, so rerunning an unchanged document is
// a lookup.
//
// [pathway.Builder]: github.com/matzehuels/rxnpath/pkg/pathway
// [detect.Detector]: github.com/matzehuels/rxnpath/pkg/detect
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	rxerrors "github.com/matzehuels/rxnpath/pkg/errors"
	"github.com/matzehuels/rxnpath/pkg/cache"
	"github.com/matzehuels/rxnpath/pkg/reaction"
)

// DefaultScale is the PNG scale factor.
const DefaultScale = 2.0

// Format constants for output formats.
const (
	FormatSVG   = "svg"   // the laid-out scheme
	FormatPNG   = "png"   // the scheme as PNG, requires rsvg-convert
	FormatPDF   = "pdf"   // the scheme as PDF, requires rsvg-convert
	FormatJSON  = "json"  // the pathway document
	FormatDOT   = "dot"   // the reaction graph in Graphviz DOT
	FormatGraph = "graph" // the reaction graph rendered to SVG
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:   true,
	FormatPNG:   true,
	FormatPDF:   true,
	FormatJSON:  true,
	FormatDOT:   true,
	FormatGraph: true,
}

// Options contains all configuration for the pipeline.
type Options struct {
	// Reconstruction options
	BondLength    float64 `json:"bond_length,omitempty"`
	MaxIterations int     `json:"max_iterations,omitempty"`
	Refresh       bool    `json:"refresh,omitempty"`

	// Layout options; zero values take the layout defaults.
	ArrowLength    float64 `json:"arrow_length,omitempty"`
	Margin         float64 `json:"margin,omitempty"`
	PlusSpacing    float64 `json:"plus_spacing,omitempty"`
	VerticalMargin float64 `json:"vertical_margin,omitempty"`
	RootGap        float64 `json:"root_gap,omitempty"`
	TailLength     float64 `json:"tail_length,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // conditions and roles in graph labels

	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Pathway is the laid-out pathway.
	Pathway *reaction.Pathway

	// PathwayHash identifies the laid-out pathway; artifacts are cached
	// under it.
	PathwayHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Molecules       int
	Reactions       int
	Unassigned      int
	ReconstructTime time.Duration
	LayoutTime      time.Duration
	RenderTime      time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	PathwayHit bool // reconstruction and layout came from cache
	RenderHit  bool // all artifacts came from cache
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	lengths := []struct {
		name string
		v    float64
	}{
		{"bond_length", o.BondLength},
		{"arrow_length", o.ArrowLength},
		{"margin", o.Margin},
		{"plus_spacing", o.PlusSpacing},
		{"vertical_margin", o.VerticalMargin},
		{"root_gap", o.RootGap},
		{"tail_length", o.TailLength},
		{"scale", o.Scale},
	}
	for _, l := range lengths {
		if err := rxerrors.ValidateNonNegative(l.name, l.v); err != nil {
			return err
		}
	}
	if o.MaxIterations < 0 {
		return rxerrors.New(rxerrors.ErrCodeInvalidInput, "max_iterations must not be negative, got %d", o.MaxIterations)
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	for i, f := range o.Formats {
		o.Formats[i] = strings.ToLower(strings.TrimSpace(f))
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return rxerrors.ValidateFormats(o.Formats, ValidFormats)
}

// layoutKey holds the layout options that take part in the pathway cache key.
type layoutKey struct {
	ArrowLength    float64 `json:"arrow_length,omitempty"`
	Margin         float64 `json:"margin,omitempty"`
	PlusSpacing    float64 `json:"plus_spacing,omitempty"`
	VerticalMargin float64 `json:"vertical_margin,omitempty"`
	RootGap        float64 `json:"root_gap,omitempty"`
	TailLength     float64 `json:"tail_length,omitempty"`
}

// PathwayKeyOpts returns cache key options for a document of the given kind.
func (o *Options) PathwayKeyOpts(kind string) cache.PathwayKeyOpts {
	return cache.PathwayKeyOpts{
		Mode:          kind,
		BondLength:    o.BondLength,
		MaxIterations: o.MaxIterations,
		Layout: layoutKey{
			ArrowLength:    o.ArrowLength,
			Margin:         o.Margin,
			PlusSpacing:    o.PlusSpacing,
			VerticalMargin: o.VerticalMargin,
			RootGap:        o.RootGap,
			TailLength:     o.TailLength,
		},
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatPNG:
		opts.Scale = o.Scale
	case FormatDOT, FormatGraph:
		opts.Detailed = o.Detailed
	}
	return opts
}
