package coords

import (
	"math"
	"slices"

	"github.com/matzehuels/lifeline/pkg/sequence/layout"
	"github.com/matzehuels/lifeline/pkg/sequence/sgraph"
)

// outgoing places the start of a message leaving ll, its dangling end when
// the target is a dummy, the first self-loop bend and the message's labels.
func (e *engine) outgoing(id sgraph.LifelineID, ll *sgraph.Lifeline, mid sgraph.MessageID, factor, center float64) {
	m := e.g.Message(mid)
	edge := &m.Edge
	e.messages[mid] = true

	edge.Start = sgraph.Point{X: center, Y: m.SourceY * factor}
	e.grow(ll, mid, m.SourceY, m.IsSelfLoop())

	if e.g.Lifeline(m.Target).IsDummy() {
		edge.End.Y = layout.MarkerOffset + m.TargetY*e.reverseFactor(ll)
		if m.Kind == sgraph.MessageLost {
			edge.End.X = ll.Position.X + ll.Size.X + e.lc.LifelineSpacing/2
		}
	}

	if m.IsSelfLoop() {
		ensureBends(edge)
		edge.Bends[0] = sgraph.Point{X: center + e.lc.MessageSpacing/2, Y: edge.Start.Y}
	}

	PlaceLabels(e.lc, e.g, id, factor, center, mid)
}

// incoming places the end of a message arriving at ll, its dangling start
// when the source is a dummy and the second self-loop bend.
func (e *engine) incoming(ll *sgraph.Lifeline, mid sgraph.MessageID, factor, center float64) {
	m := e.g.Message(mid)
	edge := &m.Edge
	e.messages[mid] = true

	edge.End = sgraph.Point{X: center, Y: m.TargetY * factor}
	switch m.Kind {
	case sgraph.MessageCreate:
		// Create messages point at the header, not the line.
		edge.End.X = ll.Position.X
	case sgraph.MessageDelete:
		edge.End.Y = (ll.Position.Y + ll.Size.Y - e.lc.LifelineHeader) * factor
	}

	e.grow(ll, mid, m.TargetY, false)

	if e.g.Lifeline(m.Source).IsDummy() {
		edge.Start.Y = layout.MarkerOffset + m.SourceY*e.reverseFactor(ll)
		if m.Kind == sgraph.MessageFound {
			edge.Start.X = ll.Position.X - e.lc.LifelineSpacing/2
		}
	}

	if m.IsSelfLoop() {
		ensureBends(edge)
		edge.Bends[1] = sgraph.Point{X: center + e.lc.MessageSpacing/2, Y: edge.End.Y}
	}
}

// grow extends every execution of ll that covers mid so that its span
// contains y. keepTop suppresses upward growth; it is set for the source end
// of a self-loop.
func (e *engine) grow(ll *sgraph.Lifeline, mid sgraph.MessageID, y float64, keepTop bool) {
	for _, xid := range ll.Executions {
		ex := e.g.Execution(xid)
		if !slices.Contains(ex.Messages, mid) {
			continue
		}
		growSpan(ex, y, keepTop, !e.touched[xid])
		e.touched[xid] = true
	}
}

func growSpan(ex *sgraph.Execution, y float64, keepTop, first bool) {
	if first && ex.Position.Y == 0 && ex.Size.Y == 0 {
		ex.Position.Y = y
		return
	}
	if y < ex.Position.Y && !keepTop {
		bottom := ex.Position.Y + ex.Size.Y
		grown := ex.Size.Y >= 0
		ex.Position.Y = y
		if grown {
			reach(ex, bottom)
		}
	}
	if y > ex.Position.Y+ex.Size.Y {
		reach(ex, y)
	}
}

// reach sets the height of ex so that its bottom edge is at least y. The
// subtraction can round one ulp short, so the height is nudged up until the
// sum covers y exactly.
func reach(ex *sgraph.Execution, y float64) {
	ex.Size.Y = y - ex.Position.Y
	for ex.Position.Y+ex.Size.Y < y {
		ex.Size.Y = math.Nextafter(ex.Size.Y, math.Inf(1))
	}
}

// ensureBends makes room for the two bend points of a self-loop.
func ensureBends(edge *sgraph.Edge) {
	for len(edge.Bends) < 2 {
		edge.Bends = append(edge.Bends, sgraph.Point{})
	}
}
