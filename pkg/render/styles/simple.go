package styles

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	strokeColor   = "#333"
	noteFill      = "#fffbe6"
	executionFill = "#f2f2f2"
	fold          = 8.0
)

// Simple draws black strokes on a white background.
type Simple struct{}

// RenderDefs writes the two arrow-head markers.
func (Simple) RenderDefs(buf *bytes.Buffer) {
	renderMarkers(buf)
}

// RenderLifeline draws the header box, the name and the dashed line.
func (Simple) RenderLifeline(buf *bytes.Buffer, l Lifeline) {
	renderLifeline(buf, l, "")
}

// RenderExecution draws an execution box or a thin marker.
func (Simple) RenderExecution(buf *bytes.Buffer, e Execution) {
	renderExecution(buf, e, "")
}

// RenderMessage draws the message polyline.
func (Simple) RenderMessage(buf *bytes.Buffer, m Message) {
	renderMessage(buf, m, "")
}

// RenderLabel draws a message label.
func (Simple) RenderLabel(buf *bytes.Buffer, l Label) {
	renderLabel(buf, l)
}

// RenderComment draws a note and its connector.
func (Simple) RenderComment(buf *bytes.Buffer, c Comment) {
	renderComment(buf, c, "")
}

var _ Style = Simple{}

// =============================================================================
// Shared drawing
// =============================================================================

func renderMarkers(buf *bytes.Buffer) {
	fmt.Fprintf(buf, `    <marker id="arrow-filled" viewBox="0 0 10 10" refX="10" refY="5" markerWidth="8" markerHeight="8" orient="auto-start-reverse"><path d="M0,0 L10,5 L0,10 z" fill="%s"/></marker>`+"\n", strokeColor)
	fmt.Fprintf(buf, `    <marker id="arrow-open" viewBox="0 0 10 10" refX="10" refY="5" markerWidth="8" markerHeight="8" orient="auto-start-reverse"><path d="M0,0 L10,5 L0,10" fill="none" stroke="%s"/></marker>`+"\n", strokeColor)
}

func filterAttr(filter string) string {
	if filter == "" {
		return ""
	}
	return fmt.Sprintf(` filter="url(#%s)"`, filter)
}

func renderLifeline(buf *bytes.Buffer, l Lifeline, filter string) {
	id := EscapeXML(l.ID)
	fmt.Fprintf(buf, `  <g id="lifeline-%s" class="lifeline"%s>`+"\n", id, filterAttr(filter))
	h := l.Header
	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="white" stroke="%s" stroke-width="1.5"/>`+"\n",
		h.X, h.Y, h.W, h.H, strokeColor)
	fmt.Fprintf(buf, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-dasharray="6,4"/>`+"\n",
		l.LineX, l.LineTop, l.LineX, l.LineBottom, strokeColor)
	if d := l.Destruction; d != nil {
		fmt.Fprintf(buf, `    <path class="destruction" d="M%.2f,%.2f L%.2f,%.2f M%.2f,%.2f L%.2f,%.2f" stroke="%s" stroke-width="2"/>`+"\n",
			d.X, d.Y, d.X+d.W, d.Y+d.H, d.X+d.W, d.Y, d.X, d.Y+d.H, strokeColor)
	}
	buf.WriteString("  </g>\n")
	fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" font-family="sans-serif" font-size="%.1f" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
		h.X+h.W/2, h.Y+h.H/2, FontSize(h, l.Label), EscapeXML(l.Label))
}

func renderExecution(buf *bytes.Buffer, e Execution, filter string) {
	b := e.Box
	class, fill := "execution", executionFill
	if e.Marker {
		class, fill = "marker", strokeColor
	}
	fmt.Fprintf(buf, `  <rect id="execution-%s" class="%s" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="%s"%s/>`+"\n",
		EscapeXML(e.ID), class, b.X, b.Y, b.W, b.H, fill, strokeColor, filterAttr(filter))
}

func renderMessage(buf *bytes.Buffer, m Message, filter string) {
	if len(m.Points) < 2 {
		return
	}
	pts := make([]string, len(m.Points))
	for i, p := range m.Points {
		pts[i] = fmt.Sprintf("%.2f,%.2f", p.X, p.Y)
	}
	marker := "arrow-filled"
	if m.Arrow == ArrowOpen {
		marker = "arrow-open"
	}
	dash := ""
	if m.Dashed {
		dash = ` stroke-dasharray="6,4"`
	}
	fmt.Fprintf(buf, `  <polyline id="message-%s" class="message %s" points="%s" fill="none" stroke="%s" stroke-width="1.2"%s marker-end="url(#%s)"%s/>`+"\n",
		EscapeXML(m.ID), EscapeXML(m.Kind), strings.Join(pts, " "), strokeColor, dash, marker, filterAttr(filter))
	if m.DotStart {
		p := m.Points[0]
		fmt.Fprintf(buf, `  <circle cx="%.2f" cy="%.2f" r="4" fill="%s"/>`+"\n", p.X, p.Y, strokeColor)
	}
	if m.DotEnd {
		p := m.Points[len(m.Points)-1]
		fmt.Fprintf(buf, `  <circle cx="%.2f" cy="%.2f" r="4" fill="%s"/>`+"\n", p.X, p.Y, strokeColor)
	}
}

func renderLabel(buf *bytes.Buffer, l Label) {
	if l.Text == "" {
		return
	}
	b := l.Box
	fmt.Fprintf(buf, `  <text class="label" x="%.2f" y="%.2f" font-family="sans-serif" font-size="%.1f" dominant-baseline="hanging">%s</text>`+"\n",
		b.X, b.Y, FontSize(b, l.Text), EscapeXML(l.Text))
}

func renderComment(buf *bytes.Buffer, c Comment, filter string) {
	b := c.Box
	if len(c.Connector) == 2 {
		s, e := c.Connector[0], c.Connector[1]
		fmt.Fprintf(buf, `  <line class="connector" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-dasharray="2,3"/>`+"\n",
			s.X, s.Y, e.X, e.Y, strokeColor)
	}
	fmt.Fprintf(buf, `  <path id="comment-%s" class="comment" d="M%.2f,%.2f L%.2f,%.2f L%.2f,%.2f L%.2f,%.2f L%.2f,%.2f z M%.2f,%.2f L%.2f,%.2f L%.2f,%.2f" fill="%s" stroke="%s"%s/>`+"\n",
		EscapeXML(c.ID),
		b.X, b.Y, b.X+b.W-fold, b.Y, b.X+b.W, b.Y+fold, b.X+b.W, b.Y+b.H, b.X, b.Y+b.H,
		b.X+b.W-fold, b.Y, b.X+b.W-fold, b.Y+fold, b.X+b.W, b.Y+fold,
		noteFill, strokeColor, filterAttr(filter))
	if c.Text == "" {
		return
	}
	size := FontSize(Box{W: b.W - 8, H: b.H - 8}, c.Text)
	fmt.Fprintf(buf, `  <text class="comment-text" x="%.2f" y="%.2f" font-family="sans-serif" font-size="%.1f">`, b.X+4, b.Y+4, size)
	for i, line := range strings.Split(c.Text, "\n") {
		dy := size
		if i > 0 {
			dy = size * 1.2
		}
		fmt.Fprintf(buf, `<tspan x="%.2f" dy="%.2f">%s</tspan>`, b.X+4, dy, EscapeXML(line))
	}
	buf.WriteString("</text>\n")
}
