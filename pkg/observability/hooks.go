// Package observability lets the pipeline, cache and server report events
// without depending on a metrics backend.
//
// Each concern has a small hook interface and a process-wide registration.
// Until main registers something, the registered hooks discard every event.
//
//	reg := prometheus.NewRegistry()
//	hooks := observability.NewPromHooks(reg)
//	observability.SetPipelineHooks(hooks)
//	observability.SetCacheHooks(hooks)
//	observability.SetHTTPHooks(hooks)
//	defer observability.Reset()
//
// Library code reports through the accessor:
//
//	observability.Pipeline().OnLayout(ctx, observability.LayoutEvent{...})
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Events
// =============================================================================

// LayoutEvent describes one finished coordinate pass.
type LayoutEvent struct {
	Lifelines  int
	Messages   int
	Executions int
	Comments   int // comments in the input diagram

	Placed   int     // comments that received a position
	Height   float64 // diagram height written to the root
	Duration time.Duration
	Err      error
}

// Elements is the number of lifelines, messages and executions in the input.
func (e LayoutEvent) Elements() int {
	return e.Lifelines + e.Messages + e.Executions
}

// Unplaced is the number of comments the pass could not position.
func (e LayoutEvent) Unplaced() int {
	if e.Err != nil || e.Placed >= e.Comments {
		return 0
	}
	return e.Comments - e.Placed
}

// RenderEvent describes one render call covering one or more formats.
type RenderEvent struct {
	Formats  []string
	Duration time.Duration
	Err      error
}

// =============================================================================
// Hook interfaces
// =============================================================================

// PipelineHooks observes layout and render calls.
type PipelineHooks interface {
	OnLayout(ctx context.Context, ev LayoutEvent)
	OnRender(ctx context.Context, ev RenderEvent)
}

// CacheHooks observes cache traffic. kind is "layout" or "artifact".
type CacheHooks interface {
	OnCacheLookup(ctx context.Context, kind string, hit bool)
	OnCacheStore(ctx context.Context, kind string, size int)
}

// HTTPHooks observes API requests. route is the matched pattern; it is
// empty in OnRequest because routing has not happened yet.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, status int, duration time.Duration)
}

// Discard implements every hook interface and drops all events.
type Discard struct{}

func (Discard) OnLayout(context.Context, LayoutEvent)                          {}
func (Discard) OnRender(context.Context, RenderEvent)                          {}
func (Discard) OnCacheLookup(context.Context, string, bool)                    {}
func (Discard) OnCacheStore(context.Context, string, int)                      {}
func (Discard) OnRequest(context.Context, string, string)                      {}
func (Discard) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Registration
// =============================================================================

type registry struct {
	mu       sync.RWMutex
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}

var hooks = &registry{pipeline: Discard{}, cache: Discard{}, http: Discard{}}

// SetPipelineHooks registers h for pipeline events. nil is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	hooks.pipeline = h
	hooks.mu.Unlock()
}

// SetCacheHooks registers h for cache events. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	hooks.cache = h
	hooks.mu.Unlock()
}

// SetHTTPHooks registers h for HTTP events. nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h == nil {
		return
	}
	hooks.mu.Lock()
	hooks.http = h
	hooks.mu.Unlock()
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.pipeline
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.cache
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooks.mu.RLock()
	defer hooks.mu.RUnlock()
	return hooks.http
}

// Reset drops every registration.
func Reset() {
	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	hooks.pipeline, hooks.cache, hooks.http = Discard{}, Discard{}, Discard{}
}
