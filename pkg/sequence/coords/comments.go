package coords

import "github.com/matzehuels/lifeline/pkg/sequence/sgraph"

// PlaceComments commits the bounds of every comment in g and routes its
// connector. It returns the number of comments placed.
//
// A comment tagged as annotating a lifeline or an execution, and attached to
// a lifeline, connects horizontally from its left-middle to the lifeline's
// centerline. A comment attached to a message connects vertically from its
// bottom-center to the vertical midpoint of the message's edge. Any other
// comment has no connector.
func PlaceComments(g *sgraph.Graph) int {
	for _, cid := range g.Comments() {
		c := g.Comment(cid)
		c.Bounds = sgraph.Rect{X: c.Position.X, Y: c.Position.Y, Width: c.Size.X, Height: c.Size.Y}
		c.Connector = connector(g, c)
	}
	return g.CommentCount()
}

func connector(g *sgraph.Graph, c *sgraph.Comment) *sgraph.Connector {
	if ll := g.Lifeline(c.Lifeline); ll != nil && c.AttachedToLifeline() {
		y := c.Position.Y + c.Size.Y/2
		return &sgraph.Connector{
			Start: sgraph.Point{X: c.Position.X, Y: y},
			End:   sgraph.Point{X: ll.CenterX(), Y: y},
		}
	}
	if m := g.Message(c.Message); m != nil {
		x := c.Position.X + c.Size.X/2
		return &sgraph.Connector{
			Start: sgraph.Point{X: x, Y: c.Position.Y + c.Size.Y},
			End:   sgraph.Point{X: x, Y: m.Edge.MidY()},
		}
	}
	return nil
}
