// Package graph provides the JSON wire format for sequence diagrams.
//
// This package defines the canonical serialization of lifeline's input and
// output, used for files, API requests and responses, and cache entries.
//
// # Architecture
//
// The package sits at the serialization boundary between the engine's
// internal model and external formats:
//
//   - [Diagram]: Serialization type (this package), addressed by string IDs
//   - pkg/sequence/sgraph.Graph: Internal arena model, addressed by handles
//   - pkg/sequence/layout.Context: Spacing and alignment for one pass
//
// Use [ToSGraph] to build the internal model and [FromSGraph] to copy the
// computed geometry back into the diagram.
//
// # Format
//
// A minimal input diagram:
//
//	{
//	  "size": {"x": 180, "y": 200},
//	  "order": ["client", "server"],
//	  "lifelines": [
//	    {"id": "client", "slot": 0, "size": {"x": 40, "y": 200}},
//	    {"id": "server", "slot": 1, "position": {"x": 100, "y": 0}, "size": {"x": 40, "y": 200}}
//	  ],
//	  "messages": [
//	    {"id": "m1", "kind": "synchronous", "source": "client", "target": "server",
//	     "source_y": 40, "target_y": 40, "labels": [{"text": "get()", "width": 30, "height": 10}]}
//	  ]
//	}
//
// Kinds are spelled as in [sgraph.MessageKind.String] and friends. After a
// layout run every element carries its computed "bounds", "edge" or
// "connector", and the diagram carries "root".
//
// # Common Operations
//
//	d, _ := graph.ReadDiagramFile("diagram.json")   // File → Diagram
//	g, idx, _ := graph.ToSGraph(&d)                   // Diagram → sgraph
//	graph.FromSGraph(&d, g, idx, root)                // results → Diagram
//	graph.WriteDiagramFile(d, "layout.json")          // Diagram → File
//
// ReadDiagramFile also accepts YAML files (.yaml, .yml) using the same field
// names.
//
// # Concurrency
//
// All functions are safe for concurrent use on distinct diagrams.
package graph
