package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PromHooks implements every hook interface on top of Prometheus
// collectors registered with one registry.
type PromHooks struct {
	LayoutsTotal     *prometheus.CounterVec
	LayoutDuration   prometheus.Histogram
	LayoutElements   prometheus.Histogram
	CommentsUnplaced prometheus.Counter
	RendersTotal     *prometheus.CounterVec
	RenderDuration   *prometheus.HistogramVec
	CacheLookups     *prometheus.CounterVec
	CacheWriteBytes  *prometheus.HistogramVec
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	HTTPInFlight     prometheus.Gauge
}

// NewPromHooks creates the collectors and registers them with reg.
func NewPromHooks(reg prometheus.Registerer) *PromHooks {
	f := promauto.With(reg)
	return &PromHooks{
		LayoutsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lifeline_layouts_total",
				Help: "Coordinate passes run, by result",
			},
			[]string{"status"},
		),
		LayoutDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "lifeline_layout_duration_seconds",
				Help:    "Duration of coordinate passes in seconds",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),
		LayoutElements: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "lifeline_layout_elements",
				Help:    "Lifelines, messages and executions per laid-out diagram",
				Buckets: []float64{5, 10, 25, 50, 100, 250, 1000},
			},
		),
		CommentsUnplaced: f.NewCounter(
			prometheus.CounterOpts{
				Name: "lifeline_comments_unplaced_total",
				Help: "Comments left without a position by the coordinate pass",
			},
		),
		RendersTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lifeline_renders_total",
				Help: "Artifacts rendered, by format and result",
			},
			[]string{"format", "status"},
		),
		RenderDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lifeline_render_duration_seconds",
				Help:    "Duration of render calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format"},
		),
		CacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lifeline_cache_lookups_total",
				Help: "Cache lookups, by key type and result",
			},
			[]string{"key_type", "result"},
		),
		CacheWriteBytes: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lifeline_cache_write_bytes",
				Help:    "Size of cache writes in bytes",
				Buckets: []float64{1000, 10000, 100000, 1000000},
			},
			[]string{"key_type"},
		),
		HTTPRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lifeline_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lifeline_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		HTTPInFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "lifeline_http_requests_in_flight",
				Help: "Current number of HTTP requests being processed",
			},
		),
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// OnLayout records the pass outcome, its duration and the input size.
func (h *PromHooks) OnLayout(_ context.Context, ev LayoutEvent) {
	h.LayoutsTotal.WithLabelValues(status(ev.Err)).Inc()
	h.LayoutDuration.Observe(ev.Duration.Seconds())
	if ev.Err != nil {
		return
	}
	h.LayoutElements.Observe(float64(ev.Elements()))
	h.CommentsUnplaced.Add(float64(ev.Unplaced()))
}

// OnRender counts one render per requested format.
func (h *PromHooks) OnRender(_ context.Context, ev RenderEvent) {
	for _, f := range ev.Formats {
		h.RendersTotal.WithLabelValues(f, status(ev.Err)).Inc()
		h.RenderDuration.WithLabelValues(f).Observe(ev.Duration.Seconds())
	}
}

func (h *PromHooks) OnCacheLookup(_ context.Context, kind string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	h.CacheLookups.WithLabelValues(kind, result).Inc()
}

func (h *PromHooks) OnCacheStore(_ context.Context, kind string, size int) {
	h.CacheWriteBytes.WithLabelValues(kind).Observe(float64(size))
}

func (h *PromHooks) OnRequest(context.Context, string, string) {
	h.HTTPInFlight.Inc()
}

func (h *PromHooks) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	h.HTTPInFlight.Dec()
	h.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	h.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ PipelineHooks = (*PromHooks)(nil)
	_ CacheHooks    = (*PromHooks)(nil)
	_ HTTPHooks     = (*PromHooks)(nil)
)
