// Package sketch is a minimal 2D molecule drawing model: atoms with
// coordinates, bonds and super-atom abbreviations.
//
// A [Sketch] is what a drawing tool saves before anyone has decided which
// molecules belong to which reaction. [Sketch.Components] splits it into
// connected [Fragment] values, keeping every super-atom in one piece; these
// fragments implement reaction.Molecule and are what the scheme detector
// classifies.
//
// Fragments can also be written as MDL molfiles ([Fragment.Molfile]) for
// external InChI tools, and expose a translation-independent
// [Fragment.ContentKey] used to cache their identity.
package sketch
