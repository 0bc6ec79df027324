package coords

import (
	"github.com/matzehuels/lifeline/pkg/sequence/layout"
	"github.com/matzehuels/lifeline/pkg/sequence/sgraph"
)

// Arrange settles the horizontal position and the final size of the
// executions ids, all owned by one lifeline of width lifelineWidth.
//
// Every execution starts centered on the lifeline. Executions without
// messages take their geometry from Origin. An execution strictly contained
// in n other executions is shifted right by n*[layout.StackOffset]; markers
// (durations and time constraints) take no part in stacking. Spans that
// cross without nesting get no offset, see [CrossingPairs]. Finally every
// height is floored to [layout.MinExecutionHeight] and execution boxes get
// [layout.ExecutionWidth]; markers keep their width.
func Arrange(g *sgraph.Graph, ids []sgraph.ExecutionID, lifelineWidth float64) {
	x := (lifelineWidth - layout.ExecutionWidth) / 2
	for _, id := range ids {
		ex := g.Execution(id)
		ex.Position.X = x
		if len(ex.Messages) == 0 {
			ex.Position.Y = ex.Origin.Y
			ex.Size.Y = ex.Origin.Height
		}
	}

	if len(ids) > 1 {
		depth := make([]int, len(ids))
		for i, id := range ids {
			inner := g.Execution(id)
			if inner.IsMarker() {
				continue
			}
			for j, oid := range ids {
				if i == j {
					continue
				}
				outer := g.Execution(oid)
				if outer.IsMarker() {
					continue
				}
				if contains(outer, inner) {
					depth[i]++
				}
			}
		}
		for i, id := range ids {
			if depth[i] > 0 {
				g.Execution(id).Position.X += float64(depth[i]) * layout.StackOffset
			}
		}
	}

	for _, id := range ids {
		ex := g.Execution(id)
		if ex.Size.Y < layout.MinExecutionHeight {
			ex.Size.Y = layout.MinExecutionHeight
		}
		if !ex.IsMarker() {
			ex.Size.X = layout.ExecutionWidth
		}
	}
}

// CrossingPairs returns the pairs of execution boxes in ids whose spans
// overlap without one strictly containing the other. [Arrange] leaves such
// pairs at the same offset.
func CrossingPairs(g *sgraph.Graph, ids []sgraph.ExecutionID) [][2]sgraph.ExecutionID {
	var pairs [][2]sgraph.ExecutionID
	for i, a := range ids {
		ea := g.Execution(a)
		if ea.IsMarker() {
			continue
		}
		for _, b := range ids[i+1:] {
			eb := g.Execution(b)
			if eb.IsMarker() {
				continue
			}
			if overlaps(ea, eb) && !contains(ea, eb) && !contains(eb, ea) {
				pairs = append(pairs, [2]sgraph.ExecutionID{a, b})
			}
		}
	}
	return pairs
}

// contains reports whether inner's span lies strictly inside outer's.
func contains(outer, inner *sgraph.Execution) bool {
	return inner.Position.Y > outer.Position.Y &&
		inner.Position.Y+inner.Size.Y < outer.Position.Y+outer.Size.Y
}

func overlaps(a, b *sgraph.Execution) bool {
	return a.Position.Y < b.Position.Y+b.Size.Y && b.Position.Y < a.Position.Y+a.Size.Y
}
