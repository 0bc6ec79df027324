// Package styles defines the visual styles used by the SVG sink.
//
// A [Style] draws one kind of diagram element per method. The sink
// converts a laid-out diagram into the plain element records of this
// package ([Lifeline], [Execution], [Message], [Label], [Comment]) in
// absolute SVG coordinates, so styles never deal with coordinate frames.
//
// Two styles are provided:
//
//   - [Simple]: black strokes on white, suited for documentation
//   - [Sketch]: the same shapes passed through a displacement filter for a
//     hand-drawn look
package styles

import "bytes"

// Style draws diagram elements into an SVG buffer.
type Style interface {
	// RenderDefs writes the <defs> content: arrow markers and filters.
	RenderDefs(buf *bytes.Buffer)
	RenderLifeline(buf *bytes.Buffer, l Lifeline)
	RenderExecution(buf *bytes.Buffer, e Execution)
	RenderMessage(buf *bytes.Buffer, m Message)
	RenderLabel(buf *bytes.Buffer, l Label)
	RenderComment(buf *bytes.Buffer, c Comment)
}

// Point is an absolute SVG coordinate.
type Point struct{ X, Y float64 }

// Box is an absolute SVG rectangle.
type Box struct{ X, Y, W, H float64 }

// Lifeline is a participant: a header box and a dashed line below it.
type Lifeline struct {
	ID          string
	Label       string
	Header      Box
	LineX       float64
	LineTop     float64
	LineBottom  float64
	Destruction *Box
}

// Execution is an execution box or a duration/time-constraint marker.
type Execution struct {
	ID     string
	Box    Box
	Marker bool
}

// Arrow is the head drawn at the end of a message.
type Arrow int

const (
	ArrowFilled Arrow = iota // synchronous call
	ArrowOpen                // asynchronous, reply, create, lost, found
)

// Message is a routed message polyline.
type Message struct {
	ID     string
	Kind   string
	Points []Point
	Dashed bool
	Arrow  Arrow
	// Dot draws a filled circle at the dangling end of a lost (end) or
	// found (start) message.
	DotStart, DotEnd bool
}

// Label is a message label anchored at its top-left corner.
type Label struct {
	Text string
	Box  Box
}

// Comment is a note with a folded corner and an optional connector.
type Comment struct {
	ID        string
	Text      string
	Box       Box
	Connector []Point
}

// ByName returns the style registered under name, or false.
func ByName(name string) (Style, bool) {
	switch name {
	case "", "simple":
		return Simple{}, true
	case "sketch":
		return Sketch{}, true
	default:
		return nil, false
	}
}

// Names lists the registered style names.
func Names() []string { return []string{"simple", "sketch"} }
