// Package layout arranges a reconstructed pathway as a horizontal tree.
//
// Each reaction becomes a row of its products; its precursors and a row of
// its starting materials are laid out to the left as children. Rows of one
// depth share a column, so the final product of every root ends up in the
// rightmost column and x grows along the reaction direction.
//
// Vertical positions come from the Buchheim/Walker variant of the
// Reingold-Tilford algorithm, run with rows of varying height. Several roots
// are stacked top to bottom.
//
// After positioning, [Layout.Apply] moves the molecules, replaces the
// scheme's pluses and arrows with freshly drawn ones (an arrow for one child,
// a multi-tail arrow for several) and writes reaction names and conditions
// below the arrows. The drawn scheme reads back to the same pathway through
// package detect.
package layout
