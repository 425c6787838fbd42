// Package detect reconstructs a multi-step pathway from a drawn scheme.
//
// A scheme is a set of molecules plus free-floating pluses, arrows,
// multi-tail arrows and texts, all in absolute coordinates. Nothing says
// which molecule belongs to which step; the detector works it out from the
// geometry alone.
//
// # Stages
//
//  1. Components: each molecule gets a bounding box (at least half a bond
//     length on each side) and a 4-point hull.
//  2. Proximity merge: components closer than two bond lengths are merged,
//     unless a plus or arrow places them in different zone sections (left of
//     a plus and right of it, behind an arrow tail and above the arrow, ...).
//  3. Blocks: every plus joins its nearest molecule on the left and right, or
//     above and below, into one block. Neighbours are found with binary
//     searches over coordinate-sorted edge lists.
//  4. Arrows: the block hit by a ray leaving the arrow head is the product
//     side, the block hit by a ray leaving the tail backwards is the reactant
//     side. Undefined blocks above or below an arrow become catalysts.
//  5. Multi-tail arrows: the head names the product, each tail one reactant
//     group. A tail that hits nothing makes the scheme a bad pathway.
//  6. Absorption: molecules still without a role join the nearest block.
//  7. Export: one reaction per product block, linked like pathway.Builder
//     links reactions. Texts above or below an arrow become the reaction's
//     name and conditions.
//
// # Errors
//
// A scheme that cannot be read as a pathway fails with code BAD_PATHWAY;
// callers usually fall back to rendering it flat. A scheme whose arrows form
// a loop fails with CYCLE_DETECTED.
package detect
