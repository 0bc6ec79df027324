package sink

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/matzehuels/lifeline/pkg/graph"
	"github.com/matzehuels/lifeline/pkg/render"
	"github.com/matzehuels/lifeline/pkg/render/styles"
	"github.com/matzehuels/lifeline/pkg/sequence/coords"
	"github.com/matzehuels/lifeline/pkg/sequence/layout"
	"github.com/matzehuels/lifeline/pkg/sequence/sgraph"
)

func laidOut(t *testing.T) graph.Diagram {
	t.Helper()
	d := graph.Diagram{
		Size:  graph.Vec{X: 180, Y: 200},
		Order: []string{"client", "server"},
		Lifelines: []graph.Lifeline{
			{ID: "client", Slot: 0, Size: graph.Vec{X: 40, Y: 200}},
			{ID: "server", Slot: 1, Position: graph.Vec{X: 100}, Size: graph.Vec{X: 40, Y: 200}},
		},
		Messages: []graph.Message{
			{ID: "m1", Source: "client", Target: "server", SourceY: 40, TargetY: 40,
				Labels: []graph.Label{{Text: "get()", Width: 30, Height: 10}}},
			{ID: "m2", Kind: "reply", Source: "server", Target: "client", SourceY: 60, TargetY: 60},
		},
		Executions: []graph.Execution{{ID: "e1", Lifeline: "server", Messages: []string{"m1", "m2"}}},
		Comments: []graph.Comment{{
			ID: "c1", Text: "note", Lifeline: "client", AttachedElement: "Lifeline_Shape",
			Position: graph.Vec{X: 60, Y: 150}, Size: graph.Vec{X: 50, Y: 20},
		}},
	}
	g, idx, err := graph.ToSGraph(&d)
	if err != nil {
		t.Fatalf("ToSGraph: %v", err)
	}
	var root sgraph.Rect
	lc := layout.Default()
	lc.Order = idx.Order
	lc.Root = &root
	if _, err := coords.Apply(g, lc); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	graph.FromSGraph(&d, g, idx, root)
	return d
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(laidOut(t))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	out := string(svg)
	for _, want := range []string{
		`viewBox="0 0 204.0 374.0"`,
		`id="lifeline-client"`,
		`id="lifeline-server"`,
		`id="execution-e1"`,
		`id="message-m1"`,
		`id="message-m2"`,
		`class="message reply"`,
		`>get()</text>`,
		`id="comment-c1"`,
		`class="connector"`,
		"</svg>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
}

func TestRenderSVGOptions(t *testing.T) {
	d := laidOut(t)

	svg, err := RenderSVG(d, WithoutComments(), WithStyle(styles.Sketch{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if strings.Contains(string(svg), `id="comment-c1"`) {
		t.Error("WithoutComments should drop comments")
	}
	if !strings.Contains(string(svg), `filter="url(#sketch)"`) {
		t.Error("WithStyle(Sketch) not applied")
	}

	svg, err = RenderSVG(d, WithHeaderHeight(10))
	if err != nil {
		t.Fatal(err)
	}
	// client header sits at root offset (12, 12).
	if !strings.Contains(string(svg), `x="12.00" y="12.00" width="40.00" height="10.00"`) {
		t.Error("WithHeaderHeight not applied")
	}
}

func TestRenderSVGNotLaidOut(t *testing.T) {
	_, err := RenderSVG(graph.Diagram{})
	if !errors.Is(err, ErrNotLaidOut) {
		t.Errorf("err = %v, want ErrNotLaidOut", err)
	}
}

func TestRenderPNG(t *testing.T) {
	if !render.Available() {
		t.Skip("rsvg-convert not installed")
	}
	png, err := RenderPNG(context.Background(), laidOut(t), WithScale(1))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	if !strings.HasPrefix(string(png), "\x89PNG") {
		t.Error("output is not a PNG")
	}
}
