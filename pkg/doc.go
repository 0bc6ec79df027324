// Package pkg provides the libraries behind lifeline, a coordinate assignment
// back end for sequence diagrams.
//
// # Overview
//
// Lifeline receives a sequence diagram whose lifelines are already ordered and
// whose messages carry relative positions, and computes absolute geometry:
// lifeline bounds, message end points, execution bars, label positions and
// comment boxes. The pkg directory is organized into these areas:
//
//  1. [sequence] - The coordinate pass (sgraph model, layout settings, coords engine)
//  2. [graph] - The JSON/YAML interchange format and its conversion to sgraph
//  3. [render] - SVG, PNG, PDF and Graphviz DOT output
//  4. [pipeline] - Orchestration (layout → render) with caching
//  5. [cache], [config], [errors], [observability] - Infrastructure
//  6. [server] - The HTTP API
//
// # Architecture
//
// The typical data flow:
//
//	diagram.json
//	     ↓
//	[graph] package (decode, convert to sgraph)
//	     ↓
//	[sequence/coords] package (assign coordinates)
//	     ↓
//	[graph] package (write geometry back)
//	     ↓
//	[render] package (SVG/PNG/PDF/DOT)
//
// # Quick Start
//
//	d, _ := graph.ReadDiagramFile("seq.json")
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	res, _ := runner.Execute(ctx, d, pipeline.Options{Formats: []string{"svg"}})
//	os.WriteFile("seq.svg", res.Artifacts["svg"], 0o644)
package pkg
