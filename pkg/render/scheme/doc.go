// Package scheme draws a pathway's scheme as SVG.
//
// # Overview
//
// The renderer draws exactly what a pathway holds: the molecules at their
// coordinates and the metadata objects (pluses, arrows, multi-tail arrows
// and texts) next to them. It does not place anything itself, so a pathway
// fresh from [layout.Layout.Apply] and one read back from a drawing render
// the same way.
//
// Coordinates are in bond lengths with y pointing up; the SVG flips them and
// scales by [WithScale] pixels per bond length.
//
// # Molecules
//
// [sketch.Fragment] molecules are drawn as skeletal formulas: carbon atoms
// are implied by bond ends, other elements and charged atoms get a label,
// and super-atoms collapse to their abbreviation. Placeholders and molecules
// of unknown type are drawn as a labelled frame around their bounding box.
//
// [layout.Layout.Apply]: github.com/matzehuels/rxnpath/pkg/layout
// [sketch.Fragment]: github.com/matzehuels/rxnpath/pkg/sketch
package scheme
