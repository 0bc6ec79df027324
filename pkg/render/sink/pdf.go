package sink

import (
	"context"

	"github.com/matzehuels/lifeline/pkg/graph"
	"github.com/matzehuels/lifeline/pkg/render"
)

// RenderPDF renders the diagram as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, d graph.Diagram, opts ...SVGOption) ([]byte, error) {
	svg, err := RenderSVG(d, opts...)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}
