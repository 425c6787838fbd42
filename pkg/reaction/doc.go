// Package reaction defines the multi-step pathway model shared by the graph
// builder, the scheme detector and the layout.
//
// # Overview
//
// A [Pathway] owns a pool of molecules, a list of [Reaction] values that refer
// to the pool by index, and one [Node] per reaction describing how reactions
// feed each other. Products of a precursor reaction are the very same pool
// entries as the matching reactants of its successor, so a molecule that flows
// through several steps is drawn once.
//
// Molecules themselves are opaque. The model only needs their bounding box
// and the ability to move them, see [Molecule].
//
// # Graph
//
// Edges are stored twice: [Node.Successors] on the precursor and
// [Node.Precursors] on the successor. [Pathway.Link] keeps both sides in sync
// and [Pathway.Validate] checks that they agree and that the graph is acyclic.
// A cycle is always reported as an error, never broken.
//
// Reactions without successors are the final steps of the pathway and are
// returned by [Pathway.RootReactionIndices]; the layout grows leftwards from
// them. Reactions without precursors are the starting steps
// ([Pathway.StartReactionIndices]).
//
// # Metadata
//
// Graphical objects (pluses, arrows, multi-tail arrows and texts) live in a
// [Metadata] store as a closed set of types implementing [Object]. Consumers
// switch on the concrete type:
//
//	for i, obj := range p.Meta.Objects {
//	    switch o := obj.(type) {
//	    case *reaction.Arrow:
//	        ...
//	    case *reaction.MultitailArrow:
//	        ...
//	    }
//	}
//
// # Concurrency
//
// A Pathway is not safe for concurrent mutation. Builders own it until they
// return it; the layout then mutates coordinates only.
package reaction
