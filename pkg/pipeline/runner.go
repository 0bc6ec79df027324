package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lifeline/pkg/cache"
	"github.com/matzehuels/lifeline/pkg/errors"
	"github.com/matzehuels/lifeline/pkg/graph"
	"github.com/matzehuels/lifeline/pkg/observability"
	"github.com/matzehuels/lifeline/pkg/sequence/coords"
)

const (
	keyTypeLayout   = "layout"
	keyTypeArtifact = "artifact"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// layoutEntry is the cached form of a layout run.
type layoutEntry struct {
	Diagram graph.Diagram `json:"diagram"`
	Result  coords.Result `json:"result"`
}

// Execute runs layout then render with caching.
func (r *Runner) Execute(ctx context.Context, d graph.Diagram, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	start := time.Now()
	laid, res, layoutHit, err := r.LayoutWithCacheInfo(ctx, d, opts)
	if err != nil {
		return nil, err
	}
	result := &Result{
		Diagram:    laid,
		Layout:     res,
		LayoutTime: time.Since(start),
		CacheInfo:  CacheInfo{LayoutHit: layoutHit},
	}
	if data, err := graph.MarshalDiagram(d); err == nil {
		result.DiagramHash = cache.Hash(data)
	}
	r.Logger.Info("computed layout",
		"lifelines", res.Lifelines,
		"messages", res.Messages,
		"comments", res.Comments,
		"cached", layoutHit,
		"duration", result.LayoutTime)

	start = time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, laid, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.RenderTime = time.Since(start)
	result.CacheInfo.RenderHit = renderHit
	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo lays out d with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, d graph.Diagram, opts Options) (graph.Diagram, coords.Result, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Diagram{}, coords.Result{}, false, err
	}

	lc, err := opts.Context(&d)
	if err != nil {
		return graph.Diagram{}, coords.Result{}, false, err
	}
	data, err := graph.MarshalDiagram(d)
	if err != nil {
		return graph.Diagram{}, coords.Result{}, false, errors.Wrap(errors.ErrCodeInvalidInput, err, "serialize diagram for cache key")
	}
	cacheKey := r.Keyer.LayoutKey(cache.Hash(data), LayoutKeyOpts(lc))

	cacheHooks := observability.Cache()

	// A stored entry that no longer decodes is treated as a miss.
	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var entry layoutEntry
			if err := json.Unmarshal(cached, &entry); err == nil {
				cacheHooks.OnCacheLookup(ctx, keyTypeLayout, true)
				return entry.Diagram, entry.Result, true, nil
			}
		} else if err != nil {
			r.Logger.Warn("cache lookup failed", "key", cacheKey, "error", err)
		}
		cacheHooks.OnCacheLookup(ctx, keyTypeLayout, false)
	}

	start := time.Now()
	laid, res, err := Layout(ctx, d, opts)
	observability.Pipeline().OnLayout(ctx, observability.LayoutEvent{
		Lifelines:  len(d.Lifelines),
		Messages:   len(d.Messages),
		Executions: len(d.Executions),
		Comments:   len(d.Comments),
		Placed:     res.Comments,
		Height:     res.DiagramHeight,
		Duration:   time.Since(start),
		Err:        err,
	})
	if err != nil {
		return graph.Diagram{}, coords.Result{}, false, err
	}

	if entry, err := json.Marshal(layoutEntry{Diagram: laid, Result: res}); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, entry, cache.TTLLayout); err != nil {
			r.Logger.Warn("cache write failed", "key", cacheKey, "error", err)
		} else {
			cacheHooks.OnCacheStore(ctx, keyTypeLayout, len(entry))
		}
	}

	return laid, res, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, d graph.Diagram, opts Options) (graph.Diagram, error) {
	laid, _, _, err := r.LayoutWithCacheInfo(ctx, d, opts)
	return laid, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache
// hit info. The hit flag is true only when every format came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d graph.Diagram, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	// Compute cache key from layout data
	layoutData, err := graph.MarshalDiagram(d)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInvalidInput, err, "serialize layout for cache key")
	}
	layoutHash := cache.Hash(layoutData)
	cacheHooks := observability.Cache()

	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			cacheHooks.OnCacheLookup(ctx, keyTypeArtifact, err == nil && hit)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	start := time.Now()
	rendered, err := Render(ctx, d, opts)
	observability.Pipeline().OnRender(ctx, observability.RenderEvent{
		Formats:  opts.Formats,
		Duration: time.Since(start),
		Err:      err,
	})
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "key", key, "error", err)
			continue
		}
		cacheHooks.OnCacheStore(ctx, keyTypeArtifact, len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, d graph.Diagram, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, d, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
