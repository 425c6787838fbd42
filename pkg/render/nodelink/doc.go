// Package nodelink renders the reaction graph of a pathway as a node-link
// diagram.
//
// # Overview
//
// Molecules appear as ellipses and reactions as boxes. Reactants point at
// their reaction, the reaction points at its products and catalysts join it
// with a dashed edge. An intermediate is drawn once, so the diagram shows
// the same DAG the builders reconstructed.
//
// # Usage
//
//	dot := nodelink.ToDOT(p, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; Graphviz itself runs as WebAssembly, no binary is needed.
package nodelink
