package coords

import (
	"math"

	"github.com/matzehuels/lifeline/pkg/sequence/layout"
	"github.com/matzehuels/lifeline/pkg/sequence/sgraph"
)

// executions arranges the executions of ll, commits their bounds and
// re-anchors their messages on the execution boxes.
func (e *engine) executions(id sgraph.LifelineID, ll *sgraph.Lifeline) {
	if len(ll.Executions) == 0 {
		return
	}

	Arrange(e.g, ll.Executions, ll.Size.X)
	if pairs := CrossingPairs(e.g, ll.Executions); len(pairs) > 0 {
		e.logger.Debug("crossing executions left unstacked", "lifeline", ll.Name, "pairs", len(pairs))
	}

	for _, xid := range ll.Executions {
		ex := e.g.Execution(xid)
		y := ex.Position.Y
		if ex.IsMarker() {
			y += layout.MarkerOffset
		}
		ex.Bounds = sgraph.Rect{
			X:      ex.Position.X,
			Y:      y - e.lc.LifelineYPos,
			Width:  ex.Size.X,
			Height: ex.Size.Y,
		}
		e.anchor(id, ll, ex)
		e.res.Executions++
	}
}

// anchor rewrites the endpoints of the messages attached to ex relative to
// the execution box. The topmost message sits at 0; the others are spread
// over the lifeline height as the editor expects.
func (e *engine) anchor(id sgraph.LifelineID, ll *sgraph.Lifeline, ex *sgraph.Execution) {
	if len(ex.Messages) == 0 {
		return
	}

	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, mid := range ex.Messages {
		y := messageY(e.g.Message(mid), id)
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}
	scale := 1.0
	if span := maxY - minY; span > 0 {
		scale = (ll.Size.Y - layout.ExecutionInset) / span
	}
	relative := func(y float64) float64 {
		if rel := y - minY; rel != 0 {
			return e.lc.LifelineHeader + rel*scale
		}
		return 0
	}

	for _, mid := range ex.Messages {
		m := e.g.Message(mid)
		edge := &m.Edge
		toLeft := e.g.Lifeline(m.Source).Slot > e.g.Lifeline(m.Target).Slot
		x := ll.Position.X + ex.Position.X

		switch {
		case m.IsSelfLoop():
			ensureBends(edge)
			edge.Bends[0].Y = edge.Start.Y
			edge.Bends[1].Y = edge.End.Y
			edge.End.X = x + ex.Size.X
			edge.End.Y = 0
		case m.Source == id:
			if !toLeft {
				x += ex.Size.X
			}
			edge.Start.X = x
			edge.Start.Y = relative(m.SourceY)
		default:
			if toLeft {
				x += ex.Size.X
			}
			edge.End.X = x
			edge.End.Y = relative(m.TargetY)
		}
	}
}

// messageY returns the raw Y at which m touches lifeline id.
func messageY(m *sgraph.Message, id sgraph.LifelineID) float64 {
	if m.Source == id {
		return m.SourceY
	}
	return m.TargetY
}
