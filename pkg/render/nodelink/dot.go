package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/rxnpath/pkg/reaction"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds reaction conditions and molecule roles to the labels.
	Detailed bool
}

// Labeler is implemented by molecules that know their display name.
type Labeler interface {
	DisplayLabel() string
}

// ToDOT converts a pathway to Graphviz DOT. The graph reads left to right.
// Molecules no reaction refers to are left out.
func ToDOT(p *reaction.Pathway, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=20, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	used := make([]bool, len(p.Molecules))
	for _, r := range p.Reactions {
		for _, list := range [][]int{r.Reactants, r.Products, r.Catalysts} {
			for _, m := range list {
				used[m] = true
			}
		}
	}
	for i, m := range p.Molecules {
		if !used[i] {
			continue
		}
		fmt.Fprintf(&buf, "  %q [shape=ellipse, label=%q];\n", molID(i), moleculeLabel(p, i, m, opts.Detailed))
	}
	for i := range p.Reactions {
		fmt.Fprintf(&buf, "  %q [%s];\n", reactionID(i), strings.Join(reactionAttrs(p, i, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for i, r := range p.Reactions {
		for _, m := range r.Reactants {
			fmt.Fprintf(&buf, "  %q -> %q;\n", molID(m), reactionID(i))
		}
		for _, m := range r.Products {
			fmt.Fprintf(&buf, "  %q -> %q;\n", reactionID(i), molID(m))
		}
		for _, m := range r.Catalysts {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed, arrowhead=none];\n", molID(m), reactionID(i))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func molID(i int) string      { return fmt.Sprintf("m%d", i) }
func reactionID(i int) string { return fmt.Sprintf("r%d", i) }

func moleculeLabel(p *reaction.Pathway, i int, m reaction.Molecule, detailed bool) string {
	label := ""
	if l, ok := m.(Labeler); ok {
		label = l.DisplayLabel()
	}
	if label == "" {
		label = fmt.Sprintf("#%d", i)
	}
	if !detailed {
		return label
	}
	return label + "\n" + roleOf(p, i).String()
}

// roleOf returns the role a molecule plays across the whole pathway.
func roleOf(p *reaction.Pathway, m int) reaction.Side {
	side := reaction.SideUndefined
	for _, r := range p.Reactions {
		for _, x := range r.Reactants {
			if x == m {
				side = side.AsReactant()
			}
		}
		for _, x := range r.Products {
			if x == m {
				side = side.AsProduct()
			}
		}
		for _, x := range r.Catalysts {
			if x == m && side == reaction.SideUndefined {
				side = reaction.SideCatalyst
			}
		}
	}
	return side
}

func reactionAttrs(p *reaction.Pathway, i int, detailed bool) []string {
	r := &p.Reactions[i]
	label := r.Name()
	if label == "" {
		label = fmt.Sprintf("step %d", i+1)
	}
	if detailed && r.Condition() != "" {
		label += "\n" + r.Condition()
	}
	attrs := []string{"shape=box", "style=\"rounded,filled\"", "fillcolor=white", fmt.Sprintf("label=%q", label)}
	if len(p.Nodes[i].Successors) == 0 {
		attrs = append(attrs, "penwidth=2")
	}
	return attrs
}

// RenderSVG lays out a DOT graph with Graphviz and returns it as SVG with a
// zero-origin viewBox.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
