package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	rxio "github.com/matzehuels/rxnpath/pkg/io"
	"github.com/matzehuels/rxnpath/pkg/reaction"
	"github.com/matzehuels/rxnpath/pkg/render"
	"github.com/matzehuels/rxnpath/pkg/render/nodelink"
	"github.com/matzehuels/rxnpath/pkg/render/scheme"
)

// Render generates output artifacts in the requested formats. Formats are
// rendered concurrently; p must not change until Render returns.
func Render(ctx context.Context, p *reaction.Pathway, opts Options) (map[string][]byte, error) {
	out := make([][]byte, len(opts.Formats))
	g, ctx := errgroup.WithContext(ctx)
	for i, format := range opts.Formats {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := RenderFormat(ctx, p, format, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			out[i] = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(out))
	for i, format := range opts.Formats {
		artifacts[format] = out[i]
	}
	return artifacts, nil
}

// RenderFormat renders one format.
func RenderFormat(ctx context.Context, p *reaction.Pathway, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return scheme.RenderSVG(p), nil
	case FormatPNG:
		return render.ToPNG(ctx, scheme.RenderSVG(p), opts.Scale)
	case FormatPDF:
		return render.ToPDF(ctx, scheme.RenderSVG(p))
	case FormatJSON:
		var buf bytes.Buffer
		if err := rxio.WriteJSON(rxio.FromPathway(p), &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatDOT:
		return []byte(nodelink.ToDOT(p, nodelink.Options{Detailed: opts.Detailed})), nil
	case FormatGraph:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(p, nodelink.Options{Detailed: opts.Detailed}))
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
