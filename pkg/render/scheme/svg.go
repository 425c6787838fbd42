package scheme

import (
	"bytes"
	"fmt"
	"math"

	"github.com/matzehuels/rxnpath/pkg/geometry"
	"github.com/matzehuels/rxnpath/pkg/reaction"
	"github.com/matzehuels/rxnpath/pkg/sketch"
)

const (
	defaultScale  = 40.0
	defaultMargin = 1.0

	fontSize   = 0.5  // bond lengths
	lineWidth  = 0.04 // bond lengths
	bondOffset = 0.12 // distance between the lines of a multiple bond
	headSize   = 0.25
	labelClear = 0.3 // bond shortening at labelled atoms
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale  float64
	margin float64
	style  Style
	box    geometry.Rect
}

func WithScale(pixelsPerBond float64) SVGOption { return func(r *svgRenderer) { r.scale = pixelsPerBond } }
func WithMargin(bonds float64) SVGOption        { return func(r *svgRenderer) { r.margin = bonds } }
func WithStyle(s Style) SVGOption               { return func(r *svgRenderer) { r.style = s } }

// RenderSVG draws the pathway's molecules and metadata.
func RenderSVG(p *reaction.Pathway, opts ...SVGOption) []byte {
	r := svgRenderer{scale: defaultScale, margin: defaultMargin, style: DefaultStyle}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = defaultScale
	}
	r.box = geometry.Inflate(p.Bounds(), r.margin)

	w := (r.box.Max.X - r.box.Min.X) * r.scale
	h := (r.box.Max.Y - r.box.Min.Y) * r.scale

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	r.renderDefs(&buf)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.style.Background)
	fmt.Fprintf(&buf, `  <g stroke="%s" stroke-width="%.2f" stroke-linecap="round" fill="none">`+"\n",
		r.style.Stroke, lineWidth*r.scale)

	for i, m := range p.Molecules {
		r.renderMolecule(&buf, i, m)
	}
	for _, obj := range p.Meta.Objects {
		r.renderObject(&buf, obj)
	}

	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderDefs(buf *bytes.Buffer) {
	s := headSize * r.scale
	buf.WriteString("  <defs>\n")
	fmt.Fprintf(buf, `    <marker id="head-filled" viewBox="0 0 10 10" refX="10" refY="5" markerUnits="userSpaceOnUse" markerWidth="%.1f" markerHeight="%.1f" orient="auto">`+"\n", s, s)
	fmt.Fprintf(buf, `      <path d="M0,0 L10,5 L0,10 z" fill="%s" stroke="none"/>`+"\n", r.style.Stroke)
	buf.WriteString("    </marker>\n")
	fmt.Fprintf(buf, `    <marker id="head-open" viewBox="0 0 10 10" refX="10" refY="5" markerUnits="userSpaceOnUse" markerWidth="%.1f" markerHeight="%.1f" orient="auto">`+"\n", s, s)
	fmt.Fprintf(buf, `      <path d="M0,0 L10,5 L0,10" fill="none" stroke="%s" stroke-width="1.5"/>`+"\n", r.style.Stroke)
	buf.WriteString("    </marker>\n")
	fmt.Fprintf(buf, `    <marker id="head-half" viewBox="0 0 10 10" refX="10" refY="5" markerUnits="userSpaceOnUse" markerWidth="%.1f" markerHeight="%.1f" orient="auto">`+"\n", s, s)
	fmt.Fprintf(buf, `      <path d="M0,0 L10,5 L0,5 z" fill="%s" stroke="none"/>`+"\n", r.style.Stroke)
	buf.WriteString("    </marker>\n")
	buf.WriteString("  </defs>\n")
}

// pt maps drawing coordinates to SVG user space.
func (r *svgRenderer) pt(v geometry.Vec) (x, y float64) {
	return (v.X - r.box.Min.X) * r.scale, (r.box.Max.Y - v.Y) * r.scale
}

func (r *svgRenderer) line(buf *bytes.Buffer, a, b geometry.Vec, attrs string) {
	x1, y1 := r.pt(a)
	x2, y2 := r.pt(b)
	fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"%s/>`+"\n", x1, y1, x2, y2, attrs)
}

func (r *svgRenderer) text(buf *bytes.Buffer, at geometry.Vec, content, class string) {
	x, y := r.pt(at)
	fmt.Fprintf(buf, `    <text class="%s" x="%.1f" y="%.1f" font-family="%s" font-size="%.1f" fill="%s" stroke="none" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
		class, x, y, r.style.FontFamily, fontSize*r.scale, r.style.Text, escapeXML(content))
}

func (r *svgRenderer) frame(buf *bytes.Buffer, box geometry.Rect, attrs string) {
	x, y := r.pt(geometry.V(box.Min.X, box.Max.Y))
	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"%s/>`+"\n",
		x, y, (box.Max.X-box.Min.X)*r.scale, (box.Max.Y-box.Min.Y)*r.scale, attrs)
}

func (r *svgRenderer) renderMolecule(buf *bytes.Buffer, i int, m reaction.Molecule) {
	f, ok := m.(*sketch.Fragment)
	switch {
	case ok && len(f.Atoms) > 0:
		fmt.Fprintf(buf, `    <g class="molecule" id="mol-%d">`+"\n", i)
		r.renderFragment(buf, f)
		buf.WriteString("    </g>\n")
	case ok:
		fmt.Fprintf(buf, `    <g class="molecule placeholder" id="mol-%d">`+"\n", i)
		r.frame(buf, f.Box, fmt.Sprintf(` stroke="%s" stroke-dasharray="4 3"`, r.style.Frame))
		r.text(buf, geometry.Center(f.Box), f.DisplayLabel(), "label")
		buf.WriteString("    </g>\n")
	default:
		fmt.Fprintf(buf, `    <g class="molecule" id="mol-%d">`+"\n", i)
		r.frame(buf, m.BoundingBox(), fmt.Sprintf(` stroke="%s" stroke-dasharray="4 3"`, r.style.Frame))
		buf.WriteString("    </g>\n")
	}
}

func (r *svgRenderer) renderObject(buf *bytes.Buffer, obj reaction.Object) {
	switch o := obj.(type) {
	case *reaction.Plus:
		r.text(buf, o.Pos, "+", "plus")
	case *reaction.Arrow:
		r.renderArrow(buf, o)
	case *reaction.MultitailArrow:
		r.renderMultitail(buf, o)
	case *reaction.Text:
		r.text(buf, geometry.Center(o.Box), o.Content, "text")
	}
}

func (r *svgRenderer) renderArrow(buf *bytes.Buffer, a *reaction.Arrow) {
	tail, head := a.Tail, a.Head
	dir := geometry.Direction(tail, head)
	off := geometry.Perp(dir).Times(bondOffset)

	switch a.Type {
	case reaction.ArrowRetrosynthetic:
		r.line(buf, tail.Plus(off), head.Plus(off), "")
		r.line(buf, tail.Minus(off), head.Minus(off), "")
		r.line(buf, head.Minus(dir.Times(headSize)).Plus(off.Times(3)), head, "")
		r.line(buf, head.Minus(dir.Times(headSize)).Minus(off.Times(3)), head, "")
	case reaction.ArrowDashedOpenAngle:
		r.line(buf, tail, head, ` stroke-dasharray="6 4" marker-end="url(#head-open)"`)
	case reaction.ArrowFailed:
		r.line(buf, tail, head, ` marker-end="url(#head-filled)"`)
		mid := tail.Plus(head).Times(0.5)
		d1, d2 := dir.Plus(geometry.Perp(dir)).Times(headSize), dir.Minus(geometry.Perp(dir)).Times(headSize)
		r.line(buf, mid.Minus(d1), mid.Plus(d1), "")
		r.line(buf, mid.Minus(d2), mid.Plus(d2), "")
	case reaction.ArrowBothEndsFilledTriangle:
		r.line(buf, tail, head, ` marker-start="url(#head-filled)" marker-end="url(#head-filled)"`)
	case reaction.ArrowEquilibriumFilledHalfBow, reaction.ArrowEquilibriumFilledTriangle,
		reaction.ArrowEquilibriumOpenAngle, reaction.ArrowUnbalancedEquilibriumFilledHalfBow,
		reaction.ArrowUnbalancedEquilibriumLargeFilledHalfBow, reaction.ArrowUnbalancedEquilibriumOpenHalfAngle,
		reaction.ArrowUnbalancedEquilibriumFilledHalfTriangle:
		r.line(buf, tail.Plus(off), head.Plus(off), ` marker-end="url(#head-half)"`)
		back := tail.Minus(off)
		if a.Type >= reaction.ArrowUnbalancedEquilibriumFilledHalfBow {
			back = back.Plus(dir.Times(a.Length() / 4))
		}
		r.line(buf, head.Minus(off), back, ` marker-end="url(#head-half)"`)
	case reaction.ArrowOpenAngle, reaction.ArrowEllipticalArcOpenAngle, reaction.ArrowEllipticalArcOpenHalfAngle:
		r.line(buf, tail, head, ` marker-end="url(#head-open)"`)
	default:
		r.line(buf, tail, head, ` marker-end="url(#head-filled)"`)
	}
}

func (r *svgRenderer) renderMultitail(buf *bytes.Buffer, m *reaction.MultitailArrow) {
	x := m.SpineX()
	for _, t := range m.Tails {
		r.line(buf, t, geometry.V(x, t.Y), "")
	}
	r.line(buf, m.SpineBegin, m.SpineEnd, "")
	r.line(buf, geometry.V(x, m.Head.Y), m.Head, ` marker-end="url(#head-filled)"`)
}

func (r *svgRenderer) renderFragment(buf *bytes.Buffer, f *sketch.Fragment) {
	hidden := make([]bool, len(f.Atoms))
	for _, sa := range f.SuperAtoms {
		for _, a := range sa.Atoms {
			hidden[a] = true
		}
	}
	labelled := make([]bool, len(f.Atoms))
	for i, a := range f.Atoms {
		labelled[i] = !hidden[i] && (a.Symbol != "C" || a.Charge != 0 || isolated(f, i))
	}

	for _, b := range f.Bonds {
		if hidden[b.A] && hidden[b.B] {
			continue
		}
		a, c := f.Atoms[b.A].Pos, f.Atoms[b.B].Pos
		if a.DistanceFrom(c) == 0 {
			continue
		}
		dir := geometry.Direction(a, c)
		if labelled[b.A] || hidden[b.A] {
			a = a.Plus(dir.Times(labelClear))
		}
		if labelled[b.B] || hidden[b.B] {
			c = c.Minus(dir.Times(labelClear))
		}
		r.renderBond(buf, a, c, b.Order)
	}

	for i, a := range f.Atoms {
		if labelled[i] {
			r.text(buf, a.Pos, atomLabel(a), "atom")
		}
	}
	for _, sa := range f.SuperAtoms {
		if len(sa.Atoms) == 0 {
			continue
		}
		var c geometry.Vec
		for _, a := range sa.Atoms {
			c = c.Plus(f.Atoms[a].Pos)
		}
		r.text(buf, c.Times(1/float64(len(sa.Atoms))), sa.Label, "atom")
	}
}

func (r *svgRenderer) renderBond(buf *bytes.Buffer, a, b geometry.Vec, order int) {
	off := geometry.Perp(geometry.Direction(a, b)).Times(bondOffset)
	switch order {
	case 2:
		r.line(buf, a.Plus(off), b.Plus(off), "")
		r.line(buf, a.Minus(off), b.Minus(off), "")
	case 3:
		r.line(buf, a, b, "")
		r.line(buf, a.Plus(off.Times(2)), b.Plus(off.Times(2)), "")
		r.line(buf, a.Minus(off.Times(2)), b.Minus(off.Times(2)), "")
	case 4:
		r.line(buf, a.Plus(off), b.Plus(off), "")
		r.line(buf, a.Minus(off), b.Minus(off), ` stroke-dasharray="3 3"`)
	default:
		r.line(buf, a, b, "")
	}
}

func isolated(f *sketch.Fragment, i int) bool {
	for _, b := range f.Bonds {
		if b.A == i || b.B == i {
			return false
		}
	}
	return true
}

func atomLabel(a sketch.Atom) string {
	switch {
	case a.Charge == 0:
		return a.Symbol
	case a.Charge == 1:
		return a.Symbol + "+"
	case a.Charge == -1:
		return a.Symbol + "−"
	case a.Charge > 0:
		return fmt.Sprintf("%s%d+", a.Symbol, a.Charge)
	default:
		return fmt.Sprintf("%s%d−", a.Symbol, int(math.Abs(float64(a.Charge))))
	}
}
