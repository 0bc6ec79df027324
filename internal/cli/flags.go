package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lifeline/pkg/pipeline"
	"github.com/matzehuels/lifeline/pkg/sequence/layout"
)

// Flags are parsed into their own pipeline.Options and copied over the
// config-derived options only when set on the command line, so an unset
// flag never masks a config file value.

type floatFlag struct {
	name  string
	dst   *float64
	usage string
}

func layoutFloatFlags(o *pipeline.Options) []floatFlag {
	return []floatFlag{
		{"message-spacing", &o.MessageSpacing, "vertical distance between consecutive messages"},
		{"lifeline-header", &o.LifelineHeader, "height of the lifeline header box"},
		{"lifeline-y", &o.LifelineYPos, "top offset of lifelines inside the diagram"},
		{"lifeline-spacing", &o.LifelineSpacing, "horizontal gap between lifelines"},
		{"border-spacing", &o.BorderSpacing, "margin around the diagram content"},
		{"label-spacing", &o.LabelSpacing, "vertical gap between stacked labels"},
		{"label-margin", &o.LabelMargin, "horizontal inset of labels from message ends"},
	}
}

// addLayoutFlags registers the spacing and alignment flags into fl.
func addLayoutFlags(cmd *cobra.Command, fl *pipeline.Options) {
	for _, f := range layoutFloatFlags(fl) {
		cmd.Flags().Float64Var(f.dst, f.name, 0, f.usage)
	}
	cmd.Flags().StringVar(&fl.LabelAlignment, "alignment", "", "label alignment: "+strings.Join(layout.Alignments(), ", "))
	cmd.Flags().BoolVar(&fl.Refresh, "refresh", false, "recompute the layout even if it is cached")
}

// mergeLayoutFlags copies the layout flags set on cmd from fl into dst.
func mergeLayoutFlags(cmd *cobra.Command, dst *pipeline.Options, fl pipeline.Options) {
	src := layoutFloatFlags(&fl)
	for i, f := range layoutFloatFlags(dst) {
		if cmd.Flags().Changed(f.name) {
			*f.dst = *src[i].dst
		}
	}
	if cmd.Flags().Changed("alignment") {
		dst.LabelAlignment = fl.LabelAlignment
	}
	dst.Refresh = fl.Refresh
}

// renderFlags holds the render flags; formats stays a string until merged.
type renderFlags struct {
	formats string
	opts    pipeline.Options
}

func addRenderFlags(cmd *cobra.Command, fl *renderFlags) {
	cmd.Flags().StringVarP(&fl.formats, "format", "f", "", "output format(s), comma-separated: svg, dot, png, pdf, json (default svg)")
	cmd.Flags().StringVar(&fl.opts.Style, "style", "", "visual style: simple (default), sketch")
	cmd.Flags().StringVar(&fl.opts.Renderer, "renderer", "", "renderer: native (default), graphviz")
	cmd.Flags().Float64Var(&fl.opts.Scale, "scale", 0, "pixel density of PNG output (default 2)")
	cmd.Flags().BoolVar(&fl.opts.NoComments, "no-comments", false, "omit comments from the output")
	cmd.Flags().BoolVar(&fl.opts.Detailed, "detailed", false, "include element kinds in DOT labels")
}

// mergeRenderFlags copies the render flags set on cmd into dst and validates
// the result.
func mergeRenderFlags(cmd *cobra.Command, dst *pipeline.Options, fl renderFlags) error {
	if cmd.Flags().Changed("format") {
		dst.Formats = pipeline.ParseFormats(fl.formats)
	}
	if cmd.Flags().Changed("style") {
		dst.Style = fl.opts.Style
	}
	if cmd.Flags().Changed("renderer") {
		dst.Renderer = fl.opts.Renderer
	}
	if cmd.Flags().Changed("scale") {
		dst.Scale = fl.opts.Scale
	}
	dst.NoComments = fl.opts.NoComments
	dst.Detailed = fl.opts.Detailed

	dst.SetRenderDefaults()
	return dst.ValidateForRender()
}
