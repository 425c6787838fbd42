// Package io reads and writes reaction documents as JSON.
//
// # Overview
//
// A document carries molecules, reactions and scheme graphics. Its kind
// says what the reader should do with it:
//
//   - "reactions": independent reaction steps, input of pathway.Builder
//   - "scheme": a drawn scheme with no reaction list, input of detect
//   - "pathway": a reconstructed pathway with its links, as written by
//     [FromPathway]
//
// # JSON Format
//
//	{
//	  "id": "5c1f3b7e-8f0a-4a57-9d55-7d0f1a0c9a11",
//	  "kind": "reactions",
//	  "molecules": [
//	    {"atoms": [{"symbol": "C", "x": 0, "y": 0}, {"symbol": "O", "x": 1, "y": 0}],
//	     "bonds": [{"a": 0, "b": 1, "order": 2}]},
//	    {"label": "Pd(PPh3)4", "box": [0, 0, 3, 1]}
//	  ],
//	  "reactions": [
//	    {"reactants": [0], "products": [1], "name": "Oxidation"}
//	  ],
//	  "objects": [
//	    {"type": "arrow", "tail": [2, 0], "head": [5, 0]},
//	    {"type": "plus", "pos": [1.5, 0]},
//	    {"type": "multitail", "head": [9, 0], "tails": [[6, 1], [6, -1]], "spine": [[7, 1], [7, -1]]},
//	    {"type": "text", "box": [2, -1, 5, -0.4], "content": "80 °C"}
//	  ]
//	}
//
// Molecules without atoms are placeholders drawn as their label inside box.
// Reaction molecule lists index into "molecules". In pathway documents a
// reaction's "next" names the reaction consuming its products and the
// reactant slots they fill, and "arrow" indexes into "objects".
//
// # Identifiers
//
// Every document has a UUID. Documents read without one get a fresh ID;
// an ID that is not a UUID is rejected.
package io
