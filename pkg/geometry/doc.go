// Package geometry provides the 2D primitives used to read reaction schemes
// without an explicit graph: rectangle overlap, convex polygon intersection,
// rays against rectangles, containment ratios and hull distances.
//
// # Coordinates
//
// [Vec] and [Rect] are aliases of the github.com/jbeda/geom types, so their
// methods (Plus, Minus, Times, Unit, DistanceFrom, ExpandToContainRect, ...)
// are available directly. Y grows upward as on a chemical drawing canvas:
// Rect.Max.Y is the top edge.
//
// # Degenerate Input
//
// Zero-length rays and segments, zero-area rectangles and polygons with fewer
// than three vertices never panic. Predicates report false and measures report
// 0, which callers treat as "no match".
//
// # Concurrency
//
// All functions are pure and safe for concurrent use.
package geometry
