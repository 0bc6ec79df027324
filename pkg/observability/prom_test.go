package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetGauge().GetValue()
}

func TestPromHooksLayout(t *testing.T) {
	ctx := context.Background()
	h := NewPromHooks(prometheus.NewRegistry())

	h.OnLayout(ctx, LayoutEvent{Lifelines: 2, Messages: 3, Comments: 3, Placed: 1, Duration: time.Millisecond})
	h.OnLayout(ctx, LayoutEvent{Lifelines: 1, Comments: 2, Err: errors.New("boom")})

	if got := counterValue(t, h.LayoutsTotal.WithLabelValues("ok")); got != 1 {
		t.Errorf("ok layouts = %v, want 1", got)
	}
	if got := counterValue(t, h.LayoutsTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("failed layouts = %v, want 1", got)
	}
	if got := counterValue(t, h.CommentsUnplaced); got != 2 {
		t.Errorf("unplaced comments = %v, want 2", got)
	}
}

func TestPromHooksRenderAndCache(t *testing.T) {
	ctx := context.Background()
	h := NewPromHooks(prometheus.NewRegistry())

	h.OnRender(ctx, RenderEvent{Formats: []string{"svg", "png"}, Duration: time.Second})
	h.OnCacheLookup(ctx, "layout", true)
	h.OnCacheLookup(ctx, "layout", false)
	h.OnCacheLookup(ctx, "layout", false)

	if got := counterValue(t, h.RendersTotal.WithLabelValues("png", "ok")); got != 1 {
		t.Errorf("png renders = %v, want 1", got)
	}
	if got := counterValue(t, h.CacheLookups.WithLabelValues("layout", "miss")); got != 2 {
		t.Errorf("layout misses = %v, want 2", got)
	}
}

func TestPromHooksHTTP(t *testing.T) {
	ctx := context.Background()
	h := NewPromHooks(prometheus.NewRegistry())

	h.OnRequest(ctx, "POST", "/v1/layout")
	if got := gaugeValue(t, h.HTTPInFlight); got != 1 {
		t.Errorf("in flight = %v, want 1", got)
	}
	h.OnResponse(ctx, "POST", "/v1/layout", 200, 10*time.Millisecond)
	if got := gaugeValue(t, h.HTTPInFlight); got != 0 {
		t.Errorf("in flight = %v, want 0", got)
	}
	if got := counterValue(t, h.HTTPRequests.WithLabelValues("POST", "/v1/layout", "200")); got != 1 {
		t.Errorf("requests = %v, want 1", got)
	}
}

func TestNewPromHooksDuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPromHooks(reg)
	defer func() {
		if recover() == nil {
			t.Error("registering twice on one registry should panic")
		}
	}()
	NewPromHooks(reg)
}
