package coords

import (
	"testing"

	"github.com/matzehuels/lifeline/pkg/sequence/layout"
	"github.com/matzehuels/lifeline/pkg/sequence/sgraph"
)

// spans adds one message-less execution per span to a fresh lifeline and
// returns the graph and execution handles.
func spans(t *testing.T, kinds []sgraph.ExecutionKind, ys ...[2]float64) (*sgraph.Graph, []sgraph.ExecutionID) {
	t.Helper()
	g := sgraph.New()
	ll := g.AddLifeline(sgraph.Lifeline{Name: "L", Size: sgraph.Vec{X: 40, Y: 300}})
	ids := make([]sgraph.ExecutionID, len(ys))
	for i, y := range ys {
		kind := sgraph.ExecutionBox
		if kinds != nil {
			kind = kinds[i]
		}
		id, err := g.AddExecution(sgraph.Execution{
			Kind:     kind,
			Lifeline: ll,
			Size:     sgraph.Vec{X: 6},
			Origin:   sgraph.Rect{Y: y[0], Height: y[1]},
		})
		if err != nil {
			t.Fatal(err)
		}
		ids[i] = id
	}
	return g, ids
}

func TestArrangeNested(t *testing.T) {
	g, ids := spans(t, nil, [2]float64{0, 100}, [2]float64{10, 70}, [2]float64{20, 40})
	Arrange(g, ids, 40)

	want := []float64{12, 20, 28}
	for i, id := range ids {
		if x := g.Execution(id).Position.X; x != want[i] {
			t.Errorf("execution %d X = %v, want %v", i, x, want[i])
		}
		if w := g.Execution(id).Size.X; w != layout.ExecutionWidth {
			t.Errorf("execution %d width = %v, want %v", i, w, layout.ExecutionWidth)
		}
	}
}

func TestArrangeOriginGeometry(t *testing.T) {
	g, ids := spans(t, nil, [2]float64{35, 45})
	Arrange(g, ids, 40)

	ex := g.Execution(ids[0])
	if ex.Position.Y != 35 || ex.Size.Y != 45 {
		t.Errorf("span = [%v, +%v], want [35, +45]", ex.Position.Y, ex.Size.Y)
	}
}

func TestArrangeKeepsMessageSpan(t *testing.T) {
	g := sgraph.New()
	a := g.AddLifeline(sgraph.Lifeline{Name: "a", Size: sgraph.Vec{X: 40, Y: 200}})
	b := g.AddLifeline(sgraph.Lifeline{Name: "b", Slot: 1, Size: sgraph.Vec{X: 40, Y: 200}})
	m, _ := g.AddMessage(sgraph.Message{Source: a, Target: b})
	x, _ := g.AddExecution(sgraph.Execution{
		Lifeline: a,
		Messages: []sgraph.MessageID{m},
		Position: sgraph.Vec{Y: 50},
		Size:     sgraph.Vec{Y: 60},
		Origin:   sgraph.Rect{Y: 1, Height: 1},
	})

	Arrange(g, []sgraph.ExecutionID{x}, 40)
	if ex := g.Execution(x); ex.Position.Y != 50 || ex.Size.Y != 60 {
		t.Errorf("span = [%v, +%v], origin must be ignored when messages are attached", ex.Position.Y, ex.Size.Y)
	}
}

func TestArrangeMinimumHeight(t *testing.T) {
	kinds := []sgraph.ExecutionKind{sgraph.ExecutionBox, sgraph.ExecutionTimeConstraint}
	g, ids := spans(t, kinds, [2]float64{10, 0}, [2]float64{10, 5})
	Arrange(g, ids, 40)

	for i, id := range ids {
		if h := g.Execution(id).Size.Y; h != layout.MinExecutionHeight {
			t.Errorf("execution %d height = %v, want %v", i, h, layout.MinExecutionHeight)
		}
	}
	if w := g.Execution(ids[1]).Size.X; w != 6 {
		t.Errorf("marker width = %v, want unchanged 6", w)
	}
}

func TestArrangeMarkersDoNotStack(t *testing.T) {
	kinds := []sgraph.ExecutionKind{sgraph.ExecutionDuration, sgraph.ExecutionBox, sgraph.ExecutionBox}
	g, ids := spans(t, kinds, [2]float64{0, 100}, [2]float64{10, 50}, [2]float64{20, 20})
	Arrange(g, ids, 40)

	// The box at [20,40] is nested only in the box at [10,60]; the duration
	// around both is ignored.
	want := []float64{12, 12, 20}
	for i, id := range ids {
		if x := g.Execution(id).Position.X; x != want[i] {
			t.Errorf("execution %d X = %v, want %v", i, x, want[i])
		}
	}
}

func TestArrangeCrossingSpans(t *testing.T) {
	g, ids := spans(t, nil, [2]float64{0, 50}, [2]float64{30, 50}, [2]float64{200, 30})
	Arrange(g, ids, 40)

	for i, id := range ids {
		if x := g.Execution(id).Position.X; x != 12 {
			t.Errorf("execution %d X = %v, want 12 (no offset)", i, x)
		}
	}
	pairs := CrossingPairs(g, ids)
	if len(pairs) != 1 || pairs[0] != [2]sgraph.ExecutionID{ids[0], ids[1]} {
		t.Errorf("CrossingPairs = %v, want [[%d %d]]", pairs, ids[0], ids[1])
	}
}

func TestArrangeSharedBoundaryIsNotNested(t *testing.T) {
	// Containment is strict: a span starting at the same Y is not nested.
	g, ids := spans(t, nil, [2]float64{0, 100}, [2]float64{0, 50})
	Arrange(g, ids, 40)
	if x := g.Execution(ids[1]).Position.X; x != 12 {
		t.Errorf("X = %v, want 12", x)
	}
}
