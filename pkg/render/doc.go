// Package render turns laid-out sequence diagrams into images.
//
// # Overview
//
//   - Format conversion from SVG to PDF and PNG ([ToPDF], [ToPNG])
//   - Native SVG output (in the [sink] subpackage, styled by [styles])
//   - Graphviz export with pinned positions (in the [dot] subpackage)
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] shell out to rsvg-convert (from librsvg):
//
//	svg, _ := sink.RenderSVG(d)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// [sink]: github.com/matzehuels/lifeline/pkg/render/sink
// [styles]: github.com/matzehuels/lifeline/pkg/render/styles
// [dot]: github.com/matzehuels/lifeline/pkg/render/dot
package render
