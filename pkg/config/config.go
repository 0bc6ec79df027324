// Package config loads lifeline settings from a TOML or YAML file.
//
// A file only needs the keys it changes; everything else keeps the value
// from [Default]:
//
//	[layout]
//	message_spacing = 40
//	label_alignment = "center"
//
//	[cache]
//	target = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":9090"
//	read_timeout = "5s"
//
// Command-line flags override file values.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/lifeline/pkg/pipeline"
	"github.com/matzehuels/lifeline/pkg/sequence/layout"
	"github.com/matzehuels/lifeline/pkg/sequence/sgraph"
)

// Config is the complete configuration of the CLI and the server.
type Config struct {
	Layout LayoutConfig `toml:"layout" yaml:"layout"`
	Render RenderConfig `toml:"render" yaml:"render"`
	Cache  CacheConfig  `toml:"cache" yaml:"cache"`
	Server ServerConfig `toml:"server" yaml:"server"`
}

// LayoutConfig holds the spacing constants of the coordinate pass. Zero
// fields are unset: a diagram's own options block and then the built-in
// defaults apply.
type LayoutConfig struct {
	MessageSpacing  float64 `toml:"message_spacing" yaml:"message_spacing" validate:"gte=0"`
	LifelineHeader  float64 `toml:"lifeline_header" yaml:"lifeline_header" validate:"gte=0"`
	LifelineYPos    float64 `toml:"lifeline_y_pos" yaml:"lifeline_y_pos" validate:"gte=0"`
	LifelineSpacing float64 `toml:"lifeline_spacing" yaml:"lifeline_spacing" validate:"gte=0"`
	BorderSpacing   float64 `toml:"border_spacing" yaml:"border_spacing" validate:"gte=0"`
	LabelSpacing    float64 `toml:"label_spacing" yaml:"label_spacing" validate:"gte=0"`
	LabelMargin     float64 `toml:"label_margin" yaml:"label_margin" validate:"gte=0"`
	LabelAlignment  string  `toml:"label_alignment" yaml:"label_alignment" validate:"omitempty,alignment"`
}

// RenderConfig holds the artifact settings.
type RenderConfig struct {
	Formats  []string `toml:"formats" yaml:"formats" validate:"dive,oneof=svg dot png pdf json"`
	Style    string   `toml:"style" yaml:"style" validate:"omitempty,oneof=simple sketch"`
	Renderer string   `toml:"renderer" yaml:"renderer" validate:"omitempty,oneof=native graphviz"`
	Scale    float64  `toml:"scale" yaml:"scale" validate:"gte=0,lte=10"`
}

// CacheConfig selects the cache backend. Target is a directory, a
// redis:// or mongodb:// URL, or "none".
type CacheConfig struct {
	Enabled   bool   `toml:"enabled" yaml:"enabled"`
	Target    string `toml:"target" yaml:"target"`
	Namespace string `toml:"namespace" yaml:"namespace" validate:"max=64"`
}

// ServerConfig configures `lifeline serve`.
type ServerConfig struct {
	Addr         string        `toml:"addr" yaml:"addr" validate:"required,hostname_port"`
	ReadTimeout  time.Duration `toml:"read_timeout" yaml:"read_timeout" validate:"gte=0"`
	WriteTimeout time.Duration `toml:"write_timeout" yaml:"write_timeout" validate:"gte=0"`
	MaxBodyBytes int64         `toml:"max_body_bytes" yaml:"max_body_bytes" validate:"gt=0"`
	Metrics      bool          `toml:"metrics" yaml:"metrics"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Render: RenderConfig{
			Formats:  []string{pipeline.FormatSVG},
			Style:    pipeline.DefaultStyle,
			Renderer: pipeline.DefaultRenderer,
			Scale:    pipeline.DefaultScale,
		},
		Cache: CacheConfig{
			Enabled: true,
			Target:  DefaultCacheDir(),
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
			MaxBodyBytes: 4 << 20,
			Metrics:      true,
		},
	}
}

// DefaultCacheDir returns the default cache directory.
func DefaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "lifeline")
	}
	return filepath.Join(os.TempDir(), "lifeline-cache")
}

// Context builds a layout context from the defaults overridden by the
// configured non-zero values.
func (c LayoutConfig) Context(order []sgraph.LifelineID, root *sgraph.Rect) (layout.Context, error) {
	lc := layout.Default()
	lc.Order = order
	lc.Root = root
	for _, f := range []struct {
		src float64
		dst *float64
	}{
		{c.MessageSpacing, &lc.MessageSpacing},
		{c.LifelineHeader, &lc.LifelineHeader},
		{c.LifelineYPos, &lc.LifelineYPos},
		{c.LifelineSpacing, &lc.LifelineSpacing},
		{c.BorderSpacing, &lc.BorderSpacing},
		{c.LabelSpacing, &lc.LabelSpacing},
		{c.LabelMargin, &lc.LabelMargin},
	} {
		if f.src != 0 {
			*f.dst = f.src
		}
	}
	a, err := layout.ParseAlignment(c.LabelAlignment)
	if err != nil {
		return layout.Context{}, err
	}
	lc.LabelAlignment = a
	return lc, nil
}

// CacheTarget returns the target to pass to cache.Open. A disabled cache
// maps to "none".
func (c CacheConfig) CacheTarget() string {
	if !c.Enabled {
		return "none"
	}
	return c.Target
}

// PipelineOptions returns pipeline options carrying the configured layout
// and render settings.
func (c Config) PipelineOptions() pipeline.Options {
	l, r := c.Layout, c.Render
	return pipeline.Options{
		MessageSpacing:  l.MessageSpacing,
		LifelineHeader:  l.LifelineHeader,
		LifelineYPos:    l.LifelineYPos,
		LifelineSpacing: l.LifelineSpacing,
		BorderSpacing:   l.BorderSpacing,
		LabelSpacing:    l.LabelSpacing,
		LabelMargin:     l.LabelMargin,
		LabelAlignment:  l.LabelAlignment,
		Formats:         append([]string(nil), r.Formats...),
		Style:           r.Style,
		Renderer:        r.Renderer,
		Scale:           r.Scale,
	}
}
