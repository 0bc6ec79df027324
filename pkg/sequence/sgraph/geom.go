package sgraph

// Vec is a two-dimensional vector used for positions and sizes.
type Vec struct {
	X, Y float64
}

// Point is an absolute coordinate on an edge.
type Point struct {
	X, Y float64
}

// Rect is the committed bounds of a rendered node.
// Y increases downward.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Right returns the horizontal end of the rectangle.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the vertical end of the rectangle.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() float64 { return r.X + r.Width/2 }

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 { return r.Y + r.Height/2 }

// Label is a text label attached to a message edge.
// Size is an input from the extraction stage; Position is written by the
// label placer.
type Label struct {
	Text     string
	Size     Vec
	Position Point
}

// Edge is the routed representation of a message: its endpoints, bend
// points and labels.
type Edge struct {
	Start  Point
	End    Point
	Bends  []Point
	Labels []Label
}

// MidY returns the vertical midpoint between the edge's endpoints.
func (e Edge) MidY() float64 { return (e.Start.Y + e.End.Y) / 2 }

// Connector is the straight line joining a comment to the element it
// annotates.
type Connector struct {
	Start Point
	End   Point
}
