package coords_test

import (
	"fmt"

	"github.com/matzehuels/lifeline/pkg/sequence/coords"
	"github.com/matzehuels/lifeline/pkg/sequence/layout"
	"github.com/matzehuels/lifeline/pkg/sequence/sgraph"
)

func ExampleApply() {
	// Two lifelines, 40 wide and 200 high, and one call between them.
	g := sgraph.New()
	g.Size = sgraph.Vec{X: 180, Y: 200}
	client := g.AddLifeline(sgraph.Lifeline{Name: "client", Slot: 0, Size: sgraph.Vec{X: 40, Y: 200}})
	server := g.AddLifeline(sgraph.Lifeline{Name: "server", Slot: 1, Position: sgraph.Vec{X: 100}, Size: sgraph.Vec{X: 40, Y: 200}})
	call, _ := g.AddMessage(sgraph.Message{Name: "get", Source: client, Target: server, SourceY: 40, TargetY: 40})

	var root sgraph.Rect
	lc := layout.Default()
	lc.Order = []sgraph.LifelineID{client, server}
	lc.Root = &root

	res, err := coords.Apply(g, lc)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	edge := g.Message(call).Edge
	fmt.Println("Diagram height:", res.DiagramHeight)
	fmt.Printf("Start: (%.0f, %.0f)\n", edge.Start.X, edge.Start.Y)
	fmt.Printf("End: (%.0f, %.0f)\n", edge.End.X, edge.End.Y)
	fmt.Printf("Root: %.0fx%.0f at (%.0f, %.0f)\n", root.Width, root.Height, root.X, root.Y)
	// Output:
	// Diagram height: 350
	// Start: (20, 74)
	// End: (120, 74)
	// Root: 180x350 at (12, 12)
}

func ExampleArrange() {
	// Three properly nested executions cascade to the right.
	g := sgraph.New()
	ll := g.AddLifeline(sgraph.Lifeline{Name: "worker", Size: sgraph.Vec{X: 40, Y: 300}})
	var ids []sgraph.ExecutionID
	for _, span := range []sgraph.Rect{{Y: 0, Height: 120}, {Y: 20, Height: 80}, {Y: 40, Height: 10}} {
		id, _ := g.AddExecution(sgraph.Execution{Lifeline: ll, Origin: span})
		ids = append(ids, id)
	}

	coords.Arrange(g, ids, 40)
	for _, id := range ids {
		ex := g.Execution(id)
		fmt.Printf("x=%.0f height=%.0f\n", ex.Position.X, ex.Size.Y)
	}
	// Output:
	// x=12 height=120
	// x=20 height=80
	// x=28 height=20
}
