// Package pipeline runs the layout and render stages shared by the CLI and
// the HTTP server.
//
// [Layout] converts a wire diagram to a sequence graph, runs the coordinate
// pass and writes the geometry back. [Render] turns a laid-out diagram into
// SVG, PNG, PDF, DOT or JSON. A [Runner] wraps both with a cache and the
// observability hooks:
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Execute(ctx, d, pipeline.Options{
//	    LabelAlignment: "center",
//	    Formats:        []string{"svg", "json"},
//	})
//
// Spacing settings resolve in three steps: [layout.Default], then the
// diagram's own options block, then every non-zero field of [Options].
package pipeline

import (
	"io"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lifeline/pkg/cache"
	"github.com/matzehuels/lifeline/pkg/errors"
	"github.com/matzehuels/lifeline/pkg/graph"
	"github.com/matzehuels/lifeline/pkg/render/styles"
	"github.com/matzehuels/lifeline/pkg/sequence/coords"
	"github.com/matzehuels/lifeline/pkg/sequence/layout"
)

// =============================================================================
// Formats and renderers
// =============================================================================

const (
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

const (
	// RendererNative draws SVG with the built-in styles.
	RendererNative = "native"
	// RendererGraphviz pins every node in DOT and lets neato draw the SVG.
	RendererGraphviz = "graphviz"
)

// Render defaults applied by [Options.SetRenderDefaults].
const (
	DefaultStyle    = "simple"
	DefaultRenderer = RendererNative
	DefaultScale    = 2.0
)

// Formats lists the output formats in the order they are documented.
var Formats = []string{FormatSVG, FormatDOT, FormatPNG, FormatPDF, FormatJSON}

// Renderers lists the SVG renderers.
var Renderers = []string{RendererNative, RendererGraphviz}

// ValidateFormat rejects a format outside [Formats] with INVALID_FORMAT.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(Formats, ", "))
	}
	return nil
}

// ValidateFormats validates every entry of formats.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle rejects a style unknown to the styles registry.
func ValidateStyle(style string) error {
	if _, ok := styles.ByName(style); !ok {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid style: %q (must be one of: %s)", style, strings.Join(styles.Names(), ", "))
	}
	return nil
}

// ValidateRenderer rejects a renderer outside [Renderers].
func ValidateRenderer(renderer string) error {
	if !slices.Contains(Renderers, renderer) {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid renderer: %q (must be one of: %s)", renderer, strings.Join(Renderers, ", "))
	}
	return nil
}

// ParseFormats splits a comma-separated format list such as "svg, PNG,svg"
// into lower-case formats without blanks or duplicates.
func ParseFormats(s string) []string {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}
	return formats
}

// =============================================================================
// Options and results
// =============================================================================

// Options configures one pipeline run and doubles as the JSON body of the
// HTTP API. Zero spacing fields defer to the diagram's options block and
// then to the defaults; negative values are rejected.
type Options struct {
	MessageSpacing  float64 `json:"message_spacing,omitempty"`
	LifelineHeader  float64 `json:"lifeline_header,omitempty"`
	LifelineYPos    float64 `json:"lifeline_y_pos,omitempty"`
	LifelineSpacing float64 `json:"lifeline_spacing,omitempty"`
	BorderSpacing   float64 `json:"border_spacing,omitempty"`
	LabelSpacing    float64 `json:"label_spacing,omitempty"`
	LabelMargin     float64 `json:"label_margin,omitempty"`
	LabelAlignment  string  `json:"label_alignment,omitempty"`
	Refresh         bool    `json:"refresh,omitempty"` // bypass cached layouts and artifacts

	Formats    []string `json:"formats,omitempty"`
	Style      string   `json:"style,omitempty"`
	Renderer   string   `json:"renderer,omitempty"`
	Scale      float64  `json:"scale,omitempty"` // PNG only
	NoComments bool     `json:"no_comments,omitempty"`
	Detailed   bool     `json:"detailed,omitempty"` // DOT labels include element kinds

	Logger *log.Logger `json:"-"`
}

// Result is the output of [Runner.Execute].
type Result struct {
	Diagram     graph.Diagram     // laid-out copy of the input
	DiagramHash string            // hash of the input's canonical JSON
	Layout      coords.Result     // counters of the coordinate pass
	Artifacts   map[string][]byte // rendered output by format

	LayoutTime time.Duration
	RenderTime time.Duration
	CacheInfo  CacheInfo
}

// CacheInfo reports which stages were served from the cache. RenderHit is
// true only when every requested format was cached.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool
}

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

// =============================================================================
// Options methods
// =============================================================================

// ValidateForLayout rejects negative or non-finite spacings and unknown
// alignments. It installs a discarding logger when none is set.
func (o *Options) ValidateForLayout() error {
	if o.Logger == nil {
		o.Logger = discardLogger()
	}
	for _, s := range o.spacings() {
		if s.v < 0 || math.IsNaN(s.v) || math.IsInf(s.v, 0) {
			return errors.New(errors.ErrCodeInvalidInput, "invalid %s: %v", s.name, s.v)
		}
	}
	if o.LabelAlignment != "" {
		if _, err := layout.ParseAlignment(o.LabelAlignment); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidAlignment, err, "invalid label_alignment")
		}
	}
	return nil
}

// SetRenderDefaults fills unset render fields: svg, the simple style, the
// native renderer and a PNG scale of 2.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Renderer == "" {
		o.Renderer = DefaultRenderer
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = discardLogger()
	}
}

// ValidateForRender applies [Options.SetRenderDefaults] and validates the
// result.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	return ValidateRenderer(o.Renderer)
}

type spacing struct {
	name string
	v    float64
	dst  func(*layout.Context) *float64
}

func (o *Options) spacings() []spacing {
	return []spacing{
		{"message_spacing", o.MessageSpacing, func(c *layout.Context) *float64 { return &c.MessageSpacing }},
		{"lifeline_header", o.LifelineHeader, func(c *layout.Context) *float64 { return &c.LifelineHeader }},
		{"lifeline_y_pos", o.LifelineYPos, func(c *layout.Context) *float64 { return &c.LifelineYPos }},
		{"lifeline_spacing", o.LifelineSpacing, func(c *layout.Context) *float64 { return &c.LifelineSpacing }},
		{"border_spacing", o.BorderSpacing, func(c *layout.Context) *float64 { return &c.BorderSpacing }},
		{"label_spacing", o.LabelSpacing, func(c *layout.Context) *float64 { return &c.LabelSpacing }},
		{"label_margin", o.LabelMargin, func(c *layout.Context) *float64 { return &c.LabelMargin }},
	}
}

// Context resolves the layout context for d: the defaults, then d's
// options block, then the non-zero fields of o. Order and Root are left
// unset.
func (o *Options) Context(d *graph.Diagram) (layout.Context, error) {
	lc := layout.Default()
	if err := d.Options.ApplyTo(&lc); err != nil {
		return lc, errors.Wrap(errors.ErrCodeInvalidAlignment, err, "invalid diagram options")
	}
	for _, s := range o.spacings() {
		if s.v != 0 {
			*s.dst(&lc) = s.v
		}
	}
	if o.LabelAlignment != "" {
		a, err := layout.ParseAlignment(o.LabelAlignment)
		if err != nil {
			return lc, errors.Wrap(errors.ErrCodeInvalidAlignment, err, "invalid label_alignment")
		}
		lc.LabelAlignment = a
	}
	return lc, nil
}

// LayoutKeyOpts returns the cache key fields of a resolved layout context.
func LayoutKeyOpts(lc layout.Context) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		MessageSpacing:  lc.MessageSpacing,
		LifelineHeader:  lc.LifelineHeader,
		LifelineYPos:    lc.LifelineYPos,
		LifelineSpacing: lc.LifelineSpacing,
		BorderSpacing:   lc.BorderSpacing,
		LabelSpacing:    lc.LabelSpacing,
		LabelMargin:     lc.LabelMargin,
		LabelAlignment:  lc.LabelAlignment.String(),
	}
}

// ArtifactKeyOpts returns the cache key fields that affect one format.
// Settings a format ignores are left out, so a style change does not
// invalidate cached DOT output.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:   format,
		Comments: !o.NoComments,
	}
	switch format {
	case FormatSVG, FormatPNG, FormatPDF:
		k.Style = o.Style
		if o.Renderer == RendererGraphviz {
			k.Style = RendererGraphviz
		}
	case FormatDOT:
		if o.Detailed {
			k.Style = "detailed"
		}
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
