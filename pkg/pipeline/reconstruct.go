package pipeline

import (
	"context"
	"time"

	rxerrors "github.com/matzehuels/rxnpath/pkg/errors"
	"github.com/matzehuels/rxnpath/pkg/detect"
	"github.com/matzehuels/rxnpath/pkg/inchi"
	rxio "github.com/matzehuels/rxnpath/pkg/io"
	"github.com/matzehuels/rxnpath/pkg/observability"
	"github.com/matzehuels/rxnpath/pkg/pathway"
	"github.com/matzehuels/rxnpath/pkg/reaction"
)

// Reconstruct turns a document into a pathway without laying it out.
// Reaction lists are matched with oracle, schemes are read geometrically and
// pathway documents are loaded as they are.
func Reconstruct(ctx context.Context, doc *rxio.Document, oracle inchi.Oracle, opts Options) (*reaction.Pathway, error) {
	if doc == nil {
		return nil, rxerrors.New(rxerrors.ErrCodeInvalidInput, "no input document")
	}
	stage := stageOf(doc.Kind)
	hooks := observability.Pipeline()
	hooks.OnReconstructStart(ctx, stage, len(doc.Molecules))

	start := time.Now()
	p, err := reconstruct(ctx, doc, oracle, opts)
	reactions := 0
	if p != nil {
		reactions = len(p.Reactions)
	}
	hooks.OnReconstructComplete(ctx, stage, reactions, time.Since(start), err)
	return p, err
}

func reconstruct(ctx context.Context, doc *rxio.Document, oracle inchi.Oracle, opts Options) (*reaction.Pathway, error) {
	switch doc.Kind {
	case rxio.KindReactions:
		b := pathway.Builder{Oracle: oracle, Logger: opts.Logger}
		return b.Build(ctx, doc.Steps())
	case rxio.KindScheme:
		s, err := doc.Scheme()
		if err != nil {
			return nil, err
		}
		d := detect.New(detect.Options{
			BondLength:    opts.BondLength,
			MaxIterations: opts.MaxIterations,
			Logger:        opts.Logger,
		})
		return d.Detect(s, &s.Meta)
	case rxio.KindPathway:
		return doc.Pathway()
	default:
		return nil, rxerrors.New(rxerrors.ErrCodeInvalidInput, "unknown document kind %q", doc.Kind)
	}
}

func stageOf(kind rxio.Kind) string {
	switch kind {
	case rxio.KindReactions:
		return observability.StageBuild
	case rxio.KindScheme:
		return observability.StageDetect
	default:
		return observability.StageLoad
	}
}
