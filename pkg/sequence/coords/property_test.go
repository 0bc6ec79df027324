package coords

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/matzehuels/lifeline/pkg/sequence/layout"
	"github.com/matzehuels/lifeline/pkg/sequence/sgraph"
)

// TestCoordinateProperties checks geometric guarantees of Apply and Arrange
// over generated inputs.
func TestCoordinateProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("scale factor maps lifeline top to 0 and bottom to diagram height + 20", prop.ForAll(
		func(h, graphHeight float64) bool {
			g := sgraph.New()
			g.Size = sgraph.Vec{X: 200, Y: graphHeight}
			a := g.AddLifeline(sgraph.Lifeline{Size: sgraph.Vec{X: 40, Y: h}})
			b := g.AddLifeline(sgraph.Lifeline{Slot: 1, Position: sgraph.Vec{X: 100}, Size: sgraph.Vec{X: 40, Y: h}})
			m, _ := g.AddMessage(sgraph.Message{Source: a, Target: b, SourceY: h, TargetY: 0})

			var root sgraph.Rect
			lc := layout.Default()
			lc.Order = []sgraph.LifelineID{a, b}
			lc.Root = &root
			res, err := Apply(g, lc)
			if err != nil {
				return false
			}
			edge := g.Message(m).Edge
			return approx(edge.Start.Y, res.DiagramHeight+layout.ScaleMargin) && edge.End.Y == 0
		},
		gen.Float64Range(1, 2000),
		gen.Float64Range(0, 5000),
	))

	properties.Property("self-loop bends sit half a message spacing right of the centerline", prop.ForAll(
		func(x, from, to, spacing float64) bool {
			g := sgraph.New()
			g.Size = sgraph.Vec{X: 400, Y: 300}
			a := g.AddLifeline(sgraph.Lifeline{Position: sgraph.Vec{X: x}, Size: sgraph.Vec{X: 40, Y: 300}})
			m, _ := g.AddMessage(sgraph.Message{Source: a, Target: a, SourceY: from, TargetY: to})

			var root sgraph.Rect
			lc := layout.Default()
			lc.MessageSpacing = spacing
			lc.Order = []sgraph.LifelineID{a}
			lc.Root = &root
			if _, err := Apply(g, lc); err != nil {
				return false
			}
			edge := g.Message(m).Edge
			bx := x + 20 + spacing/2
			return len(edge.Bends) == 2 &&
				approx(edge.Bends[0].X, bx) && approx(edge.Bends[1].X, bx) &&
				edge.Bends[0].Y == edge.Start.Y && edge.Bends[1].Y == edge.End.Y
		},
		gen.Float64Range(0, 1000),
		gen.Float64Range(0, 300),
		gen.Float64Range(0, 300),
		gen.Float64Range(0, 200),
	))

	properties.Property("execution spans cover every attached message", prop.ForAll(
		func(out, in []float64) bool {
			g := sgraph.New()
			g.Size = sgraph.Vec{X: 200, Y: 500}
			a := g.AddLifeline(sgraph.Lifeline{Size: sgraph.Vec{X: 40, Y: 500}})
			b := g.AddLifeline(sgraph.Lifeline{Slot: 1, Position: sgraph.Vec{X: 100}, Size: sgraph.Vec{X: 40, Y: 500}})

			var msgs []sgraph.MessageID
			var ys []float64
			for _, y := range out {
				m, _ := g.AddMessage(sgraph.Message{Source: a, Target: b, SourceY: y, TargetY: y})
				msgs, ys = append(msgs, m), append(ys, y)
			}
			for _, y := range in {
				m, _ := g.AddMessage(sgraph.Message{Kind: sgraph.MessageReply, Source: b, Target: a, SourceY: y, TargetY: y})
				msgs, ys = append(msgs, m), append(ys, y)
			}
			x, _ := g.AddExecution(sgraph.Execution{Lifeline: a, Messages: msgs})

			var root sgraph.Rect
			lc := layout.Default()
			lc.Order = []sgraph.LifelineID{a, b}
			lc.Root = &root
			if _, err := Apply(g, lc); err != nil {
				return false
			}
			ex := g.Execution(x)
			for _, y := range ys {
				if y < ex.Position.Y || y > ex.Position.Y+ex.Size.Y {
					return false
				}
			}
			return ex.Size.Y >= layout.MinExecutionHeight
		},
		gen.SliceOfN(4, gen.Float64Range(0, 500)),
		gen.SliceOfN(3, gen.Float64Range(0, 500)),
	))

	properties.Property("nested executions cascade strictly rightward", prop.ForAll(
		func(top, d1, d2, inner, d3, d4 float64) bool {
			// A = [top, top+d1+d2+inner+d3+d4], B inside A, C inside B.
			g, ids := spans(t, nil,
				[2]float64{top, d1 + d2 + inner + d3 + d4},
				[2]float64{top + d1, d2 + inner + d3},
				[2]float64{top + d1 + d2, inner},
			)
			Arrange(g, ids, 40)
			xa := g.Execution(ids[0]).Position.X
			xb := g.Execution(ids[1]).Position.X
			xc := g.Execution(ids[2]).Position.X
			return xc > xb && xb > xa
		},
		gen.Float64Range(0, 200),
		gen.Float64Range(1, 50),
		gen.Float64Range(1, 50),
		gen.Float64Range(0, 100),
		gen.Float64Range(1, 50),
		gen.Float64Range(1, 50),
	))

	properties.Property("arranged execution boxes are never shorter than the minimum", prop.ForAll(
		func(heights []float64) bool {
			ys := make([][2]float64, len(heights))
			for i, h := range heights {
				ys[i] = [2]float64{float64(i) * 10, h}
			}
			g, ids := spans(t, nil, ys...)
			Arrange(g, ids, 40)
			for _, id := range ids {
				if g.Execution(id).Size.Y < layout.MinExecutionHeight {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(5, gen.Float64Range(0, 60)),
	))

	properties.TestingRun(t)
}
