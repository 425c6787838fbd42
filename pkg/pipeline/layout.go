package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/rxnpath/pkg/layout"
	"github.com/matzehuels/rxnpath/pkg/observability"
	"github.com/matzehuels/rxnpath/pkg/reaction"
)

// Layout places the pathway in place.
func Layout(ctx context.Context, p *reaction.Pathway, opts Options) (layout.Result, error) {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(p.Reactions))

	start := time.Now()
	res, err := layout.New(p, layoutOptions(opts)).Apply()
	hooks.OnLayoutComplete(ctx, time.Since(start), err)
	return res, err
}

func layoutOptions(opts Options) layout.Options {
	return layout.Options{
		BondLength:     opts.BondLength,
		ArrowLength:    opts.ArrowLength,
		Margin:         opts.Margin,
		PlusSpacing:    opts.PlusSpacing,
		VerticalMargin: opts.VerticalMargin,
		RootGap:        opts.RootGap,
		TailLength:     opts.TailLength,
		Logger:         opts.Logger,
	}
}
