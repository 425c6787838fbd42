// Package render turns pathways into pictures.
//
// # Overview
//
//   - [scheme]: the laid-out scheme itself, molecules, pluses, arrows and
//     labels, as SVG
//   - [nodelink]: the reaction graph as a Graphviz node-link diagram
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg := scheme.RenderSVG(p)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [scheme]: github.com/matzehuels/rxnpath/pkg/render/scheme
// [nodelink]: github.com/matzehuels/rxnpath/pkg/render/nodelink
package render
