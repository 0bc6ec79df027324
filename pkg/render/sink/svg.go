package sink

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/matzehuels/lifeline/pkg/graph"
	"github.com/matzehuels/lifeline/pkg/render/styles"
	"github.com/matzehuels/lifeline/pkg/sequence/layout"
	"github.com/matzehuels/lifeline/pkg/sequence/sgraph"
)

// ErrNotLaidOut is returned when a diagram without layout results is
// rendered.
var ErrNotLaidOut = errors.New("diagram has no layout")

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style        styles.Style
	headerHeight float64
	comments     bool
}

// WithStyle sets the visual style. The default is [styles.Simple].
func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }

// WithHeaderHeight sets the height of lifeline header boxes. The default
// is [layout.DefaultLifelineHeader].
func WithHeaderHeight(h float64) SVGOption { return func(r *svgRenderer) { r.headerHeight = h } }

// WithoutComments omits comments and their connectors.
func WithoutComments() SVGOption { return func(r *svgRenderer) { r.comments = false } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		style:        styles.Simple{},
		headerHeight: layout.DefaultLifelineHeader,
		comments:     true,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws a laid-out diagram. The canvas is the root's bounds plus
// the root's offset on every side.
func RenderSVG(d graph.Diagram, opts ...SVGOption) ([]byte, error) {
	if !d.IsLaidOut() {
		return nil, ErrNotLaidOut
	}
	r := newSVGRenderer(opts...)
	s := scene(d, r.headerHeight, r.comments)

	root := d.Root
	w, h := root.Width+2*root.X, root.Height+2*root.Y

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	buf.WriteString("  <defs>\n")
	r.style.RenderDefs(&buf)
	buf.WriteString("  </defs>\n")
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="white"/>`+"\n")

	for _, l := range s.lifelines {
		r.style.RenderLifeline(&buf, l)
	}
	for _, e := range s.executions {
		r.style.RenderExecution(&buf, e)
	}
	for _, m := range s.messages {
		r.style.RenderMessage(&buf, m)
	}
	for _, l := range s.labels {
		r.style.RenderLabel(&buf, l)
	}
	for _, c := range s.comments {
		r.style.RenderComment(&buf, c)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// =============================================================================
// Scene construction
// =============================================================================

type sceneElems struct {
	lifelines  []styles.Lifeline
	executions []styles.Execution
	messages   []styles.Message
	labels     []styles.Label
	comments   []styles.Comment
}

// scene converts the diagram's frames into absolute SVG coordinates.
// Lifelines, edges, labels and comments are relative to the root;
// executions and destruction markers are relative to their lifeline.
func scene(d graph.Diagram, header float64, withComments bool) sceneElems {
	ox, oy := d.Root.X, d.Root.Y
	var s sceneElems

	bounds := make(map[string]graph.Rect, len(d.Lifelines))
	for _, l := range d.Lifelines {
		kind, _ := sgraph.ParseLifelineKind(l.Kind)
		if l.Bounds == nil || kind != sgraph.LifelineRegular {
			continue
		}
		b := *l.Bounds
		bounds[l.ID] = b
		hh := min(header, b.Height)
		sl := styles.Lifeline{
			ID:         l.ID,
			Label:      l.DisplayName(),
			Header:     styles.Box{X: ox + b.X, Y: oy + b.Y, W: b.Width, H: hh},
			LineX:      ox + b.X + b.Width/2,
			LineTop:    oy + b.Y + hh,
			LineBottom: oy + b.Y + b.Height,
		}
		if dr := l.Destruction; dr != nil {
			sl.Destruction = &styles.Box{X: ox + b.X + dr.X, Y: oy + b.Y + dr.Y, W: dr.Width, H: dr.Height}
		}
		s.lifelines = append(s.lifelines, sl)
	}

	for _, x := range d.Executions {
		lb, ok := bounds[x.Lifeline]
		if !ok || x.Bounds == nil {
			continue
		}
		kind, _ := sgraph.ParseExecutionKind(x.Kind)
		b := *x.Bounds
		s.executions = append(s.executions, styles.Execution{
			ID:     x.ID,
			Box:    styles.Box{X: ox + lb.X + b.X, Y: oy + lb.Y + b.Y, W: b.Width, H: b.Height},
			Marker: kind == sgraph.ExecutionDuration || kind == sgraph.ExecutionTimeConstraint,
		})
	}

	for _, m := range d.Messages {
		if m.Edge == nil {
			continue
		}
		kind, _ := sgraph.ParseMessageKind(m.Kind)
		pts := []styles.Point{{X: ox + m.Edge.Start.X, Y: oy + m.Edge.Start.Y}}
		for _, b := range m.Edge.Bends {
			pts = append(pts, styles.Point{X: ox + b.X, Y: oy + b.Y})
		}
		pts = append(pts, styles.Point{X: ox + m.Edge.End.X, Y: oy + m.Edge.End.Y})
		sm := styles.Message{
			ID:       m.ID,
			Kind:     kind.String(),
			Points:   pts,
			Dashed:   kind == sgraph.MessageReply,
			Arrow:    styles.ArrowOpen,
			DotStart: kind == sgraph.MessageFound,
			DotEnd:   kind == sgraph.MessageLost,
		}
		if kind == sgraph.MessageSync || kind == sgraph.MessageDelete {
			sm.Arrow = styles.ArrowFilled
		}
		s.messages = append(s.messages, sm)

		for _, lbl := range m.Labels {
			y := oy + lbl.Y
			if lbl.Y < 0 {
				// Negative Y is an offset above the message line.
				y = oy + m.Edge.Start.Y + lbl.Y
			}
			s.labels = append(s.labels, styles.Label{
				Text: lbl.Text,
				Box:  styles.Box{X: ox + lbl.X, Y: y, W: lbl.Width, H: lbl.Height},
			})
		}
	}

	if !withComments {
		return s
	}
	for _, c := range d.Comments {
		if c.Bounds == nil {
			continue
		}
		b := *c.Bounds
		sc := styles.Comment{
			ID:   c.ID,
			Text: c.Text,
			Box:  styles.Box{X: ox + b.X, Y: oy + b.Y, W: b.Width, H: b.Height},
		}
		if cn := c.Connector; cn != nil {
			sc.Connector = []styles.Point{
				{X: ox + cn.Start.X, Y: oy + cn.Start.Y},
				{X: ox + cn.End.X, Y: oy + cn.End.Y},
			}
		}
		s.comments = append(s.comments, sc)
	}
	return s
}
