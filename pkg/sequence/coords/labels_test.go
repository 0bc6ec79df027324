package coords

import (
	"testing"

	"github.com/matzehuels/lifeline/pkg/sequence/layout"
	"github.com/matzehuels/lifeline/pkg/sequence/sgraph"
)

// threeLifelines builds lifelines with centers at 20, 120 and 220.
func threeLifelines() (*sgraph.Graph, []sgraph.LifelineID) {
	g := sgraph.New()
	ids := make([]sgraph.LifelineID, 3)
	for i := range ids {
		ids[i] = g.AddLifeline(sgraph.Lifeline{
			Slot:     i,
			Position: sgraph.Vec{X: float64(i) * 100},
			Size:     sgraph.Vec{X: 40, Y: 200},
		})
	}
	return g, ids
}

func labelled(g *sgraph.Graph, kind sgraph.MessageKind, src, dst sgraph.LifelineID, y float64) sgraph.MessageID {
	m, _ := g.AddMessage(sgraph.Message{
		Kind: kind, Source: src, Target: dst, SourceY: y, TargetY: y,
		Edge: sgraph.Edge{Labels: []sgraph.Label{{Size: sgraph.Vec{X: 30, Y: 10}}}},
	})
	return m
}

func TestPlaceLabels(t *testing.T) {
	tests := []struct {
		name      string
		alignment layout.Alignment
		kind      sgraph.MessageKind
		src, dst  int
		want      sgraph.Point
	}{
		{"RightSource", layout.AlignSource, sgraph.MessageSync, 0, 2, sgraph.Point{X: 25, Y: -12}},
		{"RightSourceCenter", layout.AlignSourceCenter, sgraph.MessageSync, 0, 2, sgraph.Point{X: 55, Y: -12}},
		{"RightCenter", layout.AlignCenter, sgraph.MessageSync, 0, 2, sgraph.Point{X: 105, Y: -12}},
		{"RightCreateForcesSource", layout.AlignCenter, sgraph.MessageCreate, 0, 2, sgraph.Point{X: 25, Y: -12}},
		{"LeftSource", layout.AlignSource, sgraph.MessageReply, 2, 0, sgraph.Point{X: 185, Y: 20}},
		{"LeftSourceCenter", layout.AlignSourceCenter, sgraph.MessageReply, 2, 0, sgraph.Point{X: 155, Y: 20}},
		{"LeftCenter", layout.AlignCenter, sgraph.MessageReply, 2, 0, sgraph.Point{X: 105, Y: 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, ids := threeLifelines()
			m := labelled(g, tt.kind, ids[tt.src], ids[tt.dst], 8)
			lc := layout.Default()
			lc.Order = ids
			lc.LabelAlignment = tt.alignment

			src := g.Lifeline(ids[tt.src])
			PlaceLabels(lc, g, ids[tt.src], 2, src.CenterX(), m)

			if got := g.Message(m).Edge.Labels[0].Position; got != tt.want {
				t.Errorf("label = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPlaceLabelsFallbackAtBoundaries(t *testing.T) {
	g, ids := threeLifelines()
	lost := g.AddLifeline(sgraph.Lifeline{Kind: sgraph.LifelineDummy, Slot: 3})
	found := g.AddLifeline(sgraph.Lifeline{Kind: sgraph.LifelineDummy, Slot: -1})
	right := labelled(g, sgraph.MessageLost, ids[2], lost, 8)
	left := labelled(g, sgraph.MessageSync, ids[0], found, 8)

	place := func(a layout.Alignment) (sgraph.Point, sgraph.Point) {
		lc := layout.Default()
		lc.Order = ids
		lc.LabelAlignment = a
		PlaceLabels(lc, g, ids[2], 2, 220, right)
		PlaceLabels(lc, g, ids[0], 2, 20, left)
		return g.Message(right).Edge.Labels[0].Position, g.Message(left).Edge.Labels[0].Position
	}

	wantRight, wantLeft := place(layout.AlignSource)
	gotRight, gotLeft := place(layout.AlignSourceCenter)
	if gotRight != wantRight {
		t.Errorf("last lifeline: source_center = %+v, want source placement %+v", gotRight, wantRight)
	}
	if gotLeft != wantLeft {
		t.Errorf("first lifeline: source_center = %+v, want source placement %+v", gotLeft, wantLeft)
	}
	if gotRight.X != 225 {
		t.Errorf("fallback X = %v, want 225", gotRight.X)
	}
}

func TestPlaceLabelsSelfLoop(t *testing.T) {
	g, ids := threeLifelines()
	m := labelled(g, sgraph.MessageSync, ids[1], ids[1], 10)
	lc := layout.Default()
	lc.Order = ids

	// Without bends the start point anchors the label.
	g.Message(m).Edge.Start = sgraph.Point{X: 120, Y: 30}
	PlaceLabels(lc, g, ids[1], 3, 120, m)
	if got := g.Message(m).Edge.Labels[0].Position; got != (sgraph.Point{X: 125, Y: 45}) {
		t.Errorf("label = %+v, want (125, 45)", got)
	}

	g.Message(m).Edge.Bends = []sgraph.Point{{X: 145, Y: 30}, {X: 145, Y: 60}}
	PlaceLabels(lc, g, ids[1], 3, 120, m)
	if got := g.Message(m).Edge.Labels[0].Position.X; got != 150 {
		t.Errorf("label X = %v, want 150", got)
	}
}

func TestPlaceLabelsMultiple(t *testing.T) {
	g, ids := threeLifelines()
	m, _ := g.AddMessage(sgraph.Message{
		Source: ids[0], Target: ids[1],
		Edge: sgraph.Edge{Labels: []sgraph.Label{
			{Text: "a", Size: sgraph.Vec{X: 10, Y: 10}},
			{Text: "b", Size: sgraph.Vec{X: 40, Y: 20}},
		}},
	})
	lc := layout.Default()
	lc.Order = ids
	PlaceLabels(lc, g, ids[0], 1, 20, m)

	labels := g.Message(m).Edge.Labels
	if labels[0].Position != (sgraph.Point{X: 65, Y: -12}) {
		t.Errorf("label a = %+v", labels[0].Position)
	}
	if labels[1].Position != (sgraph.Point{X: 50, Y: -22}) {
		t.Errorf("label b = %+v", labels[1].Position)
	}
}
