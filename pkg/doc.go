// Package pkg provides the core libraries for rxnpath.
//
// # Overview
//
// rxnpath reconstructs multi-step reaction pathways and draws them as
// retrosynthetic trees: the target at the top left, its precursors below and
// to the right, starting materials at the leaves. A pathway comes from one of
// two inputs:
//
//   - a list of independent reaction steps, matched by InChIKey ([pathway])
//   - a drawn scheme of molecules, pluses, arrows and texts ([detect])
//
// # Architecture
//
//	reactions.json            scheme.json
//	      ↓                         ↓
//	  [pathway] Builder       [detect] Detector
//	      └───────────┬─────────────┘
//	                  ↓
//	        [reaction] Pathway
//	                  ↓
//	        [layout] tree placement
//	                  ↓
//	   [render] SVG/PNG/PDF, [io] JSON, DOT
//
// [pipeline] ties the stages together and caches their results through
// [cache]. [inchi] supplies molecule identities, [sketch] holds the drawn
// chemistry and [geometry] the 2D primitives everything is placed with.
//
// # Quick Start
//
// Detect a pathway in a drawn scheme and render it:
//
//	doc, _ := io.ImportJSON("scheme.json")
//	s, _ := doc.Scheme()
//	p, _ := detect.New(detect.Options{}).Detect(s, &s.Meta)
//	if _, err := layout.New(p, layout.Options{}).Apply(); err != nil {
//	    return err
//	}
//	svg := scheme.RenderSVG(p)
//
// Or let the pipeline do all of it, cached on disk:
//
//	c, _ := cache.NewFileCache(dir)
//	r := pipeline.NewRunner(c, nil, inchi.PropertyOracle{}, logger)
//	res, err := r.Execute(ctx, doc, pipeline.Options{Formats: []string{"svg", "json"}})
//
// [pathway]: https://pkg.go.dev/github.com/matzehuels/rxnpath/pkg/pathway
// [detect]: https://pkg.go.dev/github.com/matzehuels/rxnpath/pkg/detect
// [reaction]: https://pkg.go.dev/github.com/matzehuels/rxnpath/pkg/reaction
// [layout]: https://pkg.go.dev/github.com/matzehuels/rxnpath/pkg/layout
// [render]: https://pkg.go.dev/github.com/matzehuels/rxnpath/pkg/render
// [io]: https://pkg.go.dev/github.com/matzehuels/rxnpath/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/rxnpath/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/rxnpath/pkg/cache
// [inchi]: https://pkg.go.dev/github.com/matzehuels/rxnpath/pkg/inchi
// [sketch]: https://pkg.go.dev/github.com/matzehuels/rxnpath/pkg/sketch
// [geometry]: https://pkg.go.dev/github.com/matzehuels/rxnpath/pkg/geometry
package pkg
