package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/lifeline/pkg/graph"
	"github.com/matzehuels/lifeline/pkg/render"
	"github.com/matzehuels/lifeline/pkg/sequence/sgraph"
)

// Options configures DOT output.
type Options struct {
	// Detailed appends the element kind to lifeline and execution labels.
	Detailed bool

	// HeaderHeight is the height of lifeline header boxes. Zero means 30.
	HeaderHeight float64
}

const pointsPerInch = 72.0

// ToDOT converts a laid-out diagram to Graphviz DOT with every node pinned
// at its computed position. The result is meant for neato, which keeps
// pinned nodes in place and only draws the edges between them.
//
// Graphviz's Y axis points up, so Y coordinates are negated.
func ToDOT(d graph.Diagram, opts Options) (string, error) {
	if !d.IsLaidOut() {
		return "", fmt.Errorf("dot: diagram has no layout")
	}
	header := opts.HeaderHeight
	if header == 0 {
		header = 30
	}
	ox, oy := d.Root.X, d.Root.Y

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  graph [inputscale=72, splines=line, outputorder=edgesfirst, bgcolor=\"white\"];\n")
	buf.WriteString("  node [fontname=\"sans-serif\", fontsize=10, margin=0];\n")
	buf.WriteString("  edge [arrowsize=0.6];\n\n")

	bounds := make(map[string]graph.Rect, len(d.Lifelines))
	for _, l := range d.Lifelines {
		kind, _ := sgraph.ParseLifelineKind(l.Kind)
		if l.Bounds == nil || kind != sgraph.LifelineRegular {
			continue
		}
		b := *l.Bounds
		bounds[l.ID] = b
		label := l.DisplayName()
		if opts.Detailed {
			label += "\n" + kind.String()
		}
		hh := min(header, b.Height)
		cx := ox + b.X + b.Width/2
		writeBox(&buf, "ll:"+l.ID, label, "box", cx, oy+b.Y+hh/2, b.Width, hh)
		writePoint(&buf, "ll:"+l.ID+":foot", cx, oy+b.Y+b.Height)
		fmt.Fprintf(&buf, "  %q -> %q [style=dashed, arrowhead=none];\n", "ll:"+l.ID, "ll:"+l.ID+":foot")
	}

	for _, x := range d.Executions {
		lb, ok := bounds[x.Lifeline]
		if !ok || x.Bounds == nil {
			continue
		}
		b := *x.Bounds
		label := ""
		if opts.Detailed {
			label = x.Kind
		}
		writeBox(&buf, "ex:"+x.ID, label, "box, style=filled, fillcolor=\"#f2f2f2\"",
			ox+lb.X+b.X+b.Width/2, oy+lb.Y+b.Y+b.Height/2, b.Width, b.Height)
	}

	buf.WriteString("\n")
	for _, m := range d.Messages {
		if m.Edge == nil {
			continue
		}
		kind, _ := sgraph.ParseMessageKind(m.Kind)
		pts := append([]graph.Vec{m.Edge.Start}, m.Edge.Bends...)
		pts = append(pts, m.Edge.End)
		for i, p := range pts {
			writePoint(&buf, fmt.Sprintf("msg:%s:%d", m.ID, i), ox+p.X, oy+p.Y)
		}
		style := "solid"
		if kind == sgraph.MessageReply {
			style = "dashed"
		}
		head := "vee"
		if kind == sgraph.MessageSync || kind == sgraph.MessageDelete {
			head = "normal"
		}
		for i := 1; i < len(pts); i++ {
			arrow := "none"
			if i == len(pts)-1 {
				arrow = head
			}
			fmt.Fprintf(&buf, "  %q -> %q [style=%s, arrowhead=%s];\n",
				fmt.Sprintf("msg:%s:%d", m.ID, i-1), fmt.Sprintf("msg:%s:%d", m.ID, i), style, arrow)
		}
		for j, lbl := range m.Labels {
			if lbl.Text == "" {
				continue
			}
			y := oy + lbl.Y
			if lbl.Y < 0 {
				y = oy + m.Edge.Start.Y + lbl.Y
			}
			writeBox(&buf, fmt.Sprintf("lbl:%s:%d", m.ID, j), lbl.Text, "plaintext",
				ox+lbl.X+lbl.Width/2, y+lbl.Height/2, lbl.Width, lbl.Height)
		}
	}

	for _, c := range d.Comments {
		if c.Bounds == nil {
			continue
		}
		b := *c.Bounds
		id := "cm:" + c.ID
		writeBox(&buf, id, c.Text, "note, style=filled, fillcolor=\"#fffbe6\"",
			ox+b.X+b.Width/2, oy+b.Y+b.Height/2, b.Width, b.Height)
		if cn := c.Connector; cn != nil {
			writePoint(&buf, id+":start", ox+cn.Start.X, oy+cn.Start.Y)
			writePoint(&buf, id+":end", ox+cn.End.X, oy+cn.End.Y)
			fmt.Fprintf(&buf, "  %q -> %q [style=dotted, arrowhead=none];\n", id+":start", id+":end")
		}
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func writeBox(buf *bytes.Buffer, id, label, shape string, cx, cy, w, h float64) {
	fmt.Fprintf(buf, "  %q [label=%q, shape=%s, fixedsize=true, width=%.4f, height=%.4f, pos=\"%.2f,%.2f!\"];\n",
		id, label, shape, w/pointsPerInch, h/pointsPerInch, cx, -cy)
}

func writePoint(buf *bytes.Buffer, id string, x, y float64) {
	fmt.Fprintf(buf, "  %q [label=\"\", shape=point, width=0.01, pos=\"%.2f,%.2f!\"];\n", id, x, -y)
}

// RenderSVG renders a pinned DOT graph to SVG using Graphviz's neato engine.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// RenderPNG renders a pinned DOT graph as PNG via SVG conversion.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-based <svg> header with one whose
// width and height match the viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
