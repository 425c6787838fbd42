// Package pathway assembles independent reaction steps into a multi-step
// pathway by matching molecules across steps.
//
// # Matching
//
// Every molecule is fingerprinted by its InChIKey through an inchi.Oracle.
// A step S follows step R when every product of R appears among the
// reactants of S. The matched reactant slots of S are then drawn once, as the
// products of R.
//
// # Ambiguity
//
// The builder never guesses. When a step has more than one possible
// successor, or a reactant could come from more than one precursor, Build
// fails with an *errors.AmbiguousError whose Count is the number of distinct
// pathways the input admits (the product of the branch factors). A cycle in
// the matched graph fails with code CYCLE_DETECTED.
package pathway
