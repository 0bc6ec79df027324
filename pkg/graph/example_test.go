package graph_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/lifeline/pkg/graph"
	"github.com/matzehuels/lifeline/pkg/sequence/coords"
	"github.com/matzehuels/lifeline/pkg/sequence/layout"
	"github.com/matzehuels/lifeline/pkg/sequence/sgraph"
)

func ExampleToSGraph() {
	src := `{
	  "size": {"x": 180, "y": 200},
	  "order": ["client", "server"],
	  "lifelines": [
	    {"id": "client", "slot": 0, "size": {"x": 40, "y": 200}},
	    {"id": "server", "slot": 1, "position": {"x": 100, "y": 0}, "size": {"x": 40, "y": 200}}
	  ],
	  "messages": [
	    {"id": "m1", "source": "client", "target": "server", "source_y": 40, "target_y": 40}
	  ]
	}`
	d, err := graph.ReadDiagram(strings.NewReader(src))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	g, idx, err := graph.ToSGraph(&d)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	var root sgraph.Rect
	lc := layout.Default()
	lc.Order = idx.Order
	lc.Root = &root
	if _, err := coords.Apply(g, lc); err != nil {
		fmt.Println("Error:", err)
		return
	}
	graph.FromSGraph(&d, g, idx, root)

	e := d.Messages[0].Edge
	fmt.Printf("m1: (%.0f, %.0f) -> (%.0f, %.0f)\n", e.Start.X, e.Start.Y, e.End.X, e.End.Y)
	fmt.Printf("root: %.0fx%.0f\n", d.Root.Width, d.Root.Height)
	// Output:
	// m1: (20, 74) -> (120, 74)
	// root: 180x350
}
