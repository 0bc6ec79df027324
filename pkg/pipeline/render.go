package pipeline

import (
	"context"
	stderrors "errors"

	"github.com/matzehuels/lifeline/pkg/errors"
	"github.com/matzehuels/lifeline/pkg/graph"
	"github.com/matzehuels/lifeline/pkg/render"
	"github.com/matzehuels/lifeline/pkg/render/dot"
	"github.com/matzehuels/lifeline/pkg/render/sink"
	"github.com/matzehuels/lifeline/pkg/render/styles"
	"github.com/matzehuels/lifeline/pkg/sequence/layout"
)

// Render generates output artifacts in the requested formats from a
// laid-out diagram.
func Render(ctx context.Context, d graph.Diagram, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	if !d.IsLaidOut() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "diagram has no layout; run layout first")
	}

	svgOpts := buildSVGOptions(d, opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	// The graphviz SVG is shared by svg, png and pdf.
	var gvSVG []byte
	graphvizSVG := func() ([]byte, error) {
		if gvSVG != nil {
			return gvSVG, nil
		}
		src, err := dot.ToDOT(d, dotOptions(d, opts))
		if err != nil {
			return nil, err
		}
		gvSVG, err = dot.RenderSVG(ctx, src)
		return gvSVG, err
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			if opts.Renderer == RendererGraphviz {
				data, err = graphvizSVG()
			} else {
				data, err = sink.RenderSVG(d, svgOpts...)
			}
		case FormatDOT:
			var src string
			src, err = dot.ToDOT(d, dotOptions(d, opts))
			data = []byte(src)
		case FormatPNG:
			if opts.Renderer == RendererGraphviz {
				var svg []byte
				if svg, err = graphvizSVG(); err == nil {
					data, err = render.ToPNG(ctx, svg, opts.Scale)
				}
			} else {
				data, err = sink.RenderPNG(ctx, d, sink.WithScale(opts.Scale), sink.WithPNGSVGOptions(svgOpts...))
			}
		case FormatPDF:
			if opts.Renderer == RendererGraphviz {
				var svg []byte
				if svg, err = graphvizSVG(); err == nil {
					data, err = render.ToPDF(ctx, svg)
				}
			} else {
				data, err = sink.RenderPDF(ctx, d, svgOpts...)
			}
		case FormatJSON:
			data, err = graph.MarshalDiagram(d)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, renderError(format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func renderError(format string, err error) error {
	if stderrors.Is(err, render.ErrNoConverter) {
		return errors.Wrap(errors.ErrCodeUnsupported, err, "render %s", format)
	}
	if cerr := errors.FromContext(err, "render %s", format); cerr != nil {
		return cerr
	}
	return errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
}

// headerHeight returns the lifeline header height the diagram was laid out
// with.
func headerHeight(d graph.Diagram) float64 {
	if o := d.Options; o != nil && o.LifelineHeader != nil {
		return *o.LifelineHeader
	}
	return layout.DefaultLifelineHeader
}

// buildSVGOptions builds native SVG rendering options.
func buildSVGOptions(d graph.Diagram, opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithHeaderHeight(headerHeight(d))}
	if s, ok := styles.ByName(opts.Style); ok {
		svgOpts = append(svgOpts, sink.WithStyle(s))
	}
	if opts.NoComments {
		svgOpts = append(svgOpts, sink.WithoutComments())
	}
	return svgOpts
}

func dotOptions(d graph.Diagram, opts Options) dot.Options {
	return dot.Options{Detailed: opts.Detailed, HeaderHeight: headerHeight(d)}
}
