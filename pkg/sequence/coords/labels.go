package coords

import (
	"github.com/matzehuels/lifeline/pkg/sequence/layout"
	"github.com/matzehuels/lifeline/pkg/sequence/sgraph"
)

// PlaceLabels positions the labels of message mid, which leaves lifeline id.
// factor is the lifeline's scale factor and center its horizontal
// centerline.
//
// The direction of the message decides the rule. A rightward label sits just
// above the message line; its X follows lc.LabelAlignment, except that
// create messages always use [layout.AlignSource] so the label stays clear of
// the created lifeline's header. A leftward label mirrors that rule and sits
// below the line. A self-loop label sits right of the loop.
//
// Under [layout.AlignSourceCenter] the label is centered between the source
// and its neighbour in lc.Order. When there is no neighbour on that side the
// label falls back to [layout.AlignSource].
func PlaceLabels(lc layout.Context, g *sgraph.Graph, id sgraph.LifelineID, factor, center float64, mid sgraph.MessageID) {
	m := g.Message(mid)
	ll := g.Lifeline(id)
	target := g.Lifeline(m.Target)
	idx := lc.IndexOf(id)

	for i := range m.Edge.Labels {
		label := &m.Edge.Labels[i]
		w, h := label.Size.X, label.Size.Y

		switch {
		case target.Slot > ll.Slot:
			x := center + lc.LabelSpacing
			switch lc.LabelAlignment {
			case layout.AlignSourceCenter:
				if idx >= 0 && idx+1 < len(lc.Order) {
					next := g.Lifeline(lc.Order[idx+1])
					x = (center+next.CenterX())/2 - w/2
				}
			case layout.AlignCenter:
				x = (center+target.CenterX())/2 - w/2
			case layout.AlignSource:
			}
			if m.Kind == sgraph.MessageCreate {
				x = center + lc.LabelSpacing
			}
			label.Position = sgraph.Point{X: x, Y: -h - layout.LabelGap}

		case target.Slot < ll.Slot:
			x := center - w - lc.LabelSpacing
			switch lc.LabelAlignment {
			case layout.AlignSourceCenter:
				if idx > 0 {
					prev := g.Lifeline(lc.Order[idx-1])
					x = (center+prev.CenterX())/2 - w/2
				}
			case layout.AlignCenter:
				x = (center+target.CenterX())/2 - w/2
			case layout.AlignSource:
			}
			label.Position = sgraph.Point{X: x, Y: (m.SourceY + layout.LabelGap) * factor}

		default:
			anchor := m.Edge.Start.X
			if len(m.Edge.Bends) > 0 {
				anchor = m.Edge.Bends[0].X
			}
			label.Position = sgraph.Point{
				X: anchor + lc.LabelMargin/2,
				Y: (m.SourceY + lc.LabelSpacing) * factor,
			}
		}
	}
}
