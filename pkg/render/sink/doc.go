// Package sink renders laid-out sequence diagrams to SVG, PNG and PDF.
//
// [RenderSVG] writes the SVG directly from the diagram's computed geometry
// using a [styles.Style]. PNG and PDF are produced by converting that SVG
// with rsvg-convert (see [render.ToPNG] and [render.ToPDF]).
//
//	svg, err := sink.RenderSVG(d, sink.WithStyle(styles.Sketch{}))
//	png, err := sink.RenderPNG(ctx, d, sink.WithScale(2))
//
// [styles.Style]: github.com/matzehuels/lifeline/pkg/render/styles
// [render.ToPNG]: github.com/matzehuels/lifeline/pkg/render
// [render.ToPDF]: github.com/matzehuels/lifeline/pkg/render
package sink
