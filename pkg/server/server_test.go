package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/lifeline/pkg/cache"
	"github.com/matzehuels/lifeline/pkg/config"
	"github.com/matzehuels/lifeline/pkg/graph"
	"github.com/matzehuels/lifeline/pkg/observability"
	"github.com/matzehuels/lifeline/pkg/pipeline"
)

const diagramJSON = `{
  "id": "d1",
  "size": {"x": 180, "y": 200},
  "order": ["client", "server"],
  "lifelines": [
    {"id": "client", "slot": 0, "size": {"x": 40, "y": 200}},
    {"id": "server", "slot": 1, "position": {"x": 100, "y": 0}, "size": {"x": 40, "y": 200}}
  ],
  "messages": [
    {"id": "m1", "source": "client", "target": "server", "source_y": 40, "target_y": 40,
     "labels": [{"text": "get()", "width": 30, "height": 10}]}
  ]
}`

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := pipeline.NewRunner(fc, nil, log.New(io.Discard))
	s := New(runner, config.Default().Server, opts...)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		ts.Close()
		_ = runner.Close()
	})
	return ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) errorBody {
	t.Helper()
	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body healthBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "ok" || body.Version == "" {
		t.Errorf("body = %+v", body)
	}
	if resp.Header.Get(HeaderRequestID) == "" {
		t.Error("missing request ID header")
	}
}

func TestLayout(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/v1/layout?alignment=center", diagramJSON)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %+v", resp.StatusCode, decodeError(t, resp))
	}
	if got := resp.Header.Get(HeaderCache); got != "miss" {
		t.Errorf("X-Cache = %q, want miss", got)
	}
	d, err := graph.ReadDiagram(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !d.IsLaidOut() || d.Root.Height != 350 {
		t.Errorf("root = %+v", d.Root)
	}
	if d.Options == nil || d.Options.LabelAlignment != "center" {
		t.Errorf("options = %+v", d.Options)
	}

	resp = post(t, ts.URL+"/v1/layout?alignment=center", diagramJSON)
	if got := resp.Header.Get(HeaderCache); got != "hit" {
		t.Errorf("second X-Cache = %q, want hit", got)
	}
}

func TestRender(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		format      string
		contentType string
		prefix      string
	}{
		{"", "image/svg+xml", "<svg"},
		{"svg", "image/svg+xml", "<svg"},
		{"dot", "text/vnd.graphviz; charset=utf-8", "digraph"},
		{"json", "application/json", "{"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			resp := post(t, ts.URL+"/v1/render?format="+tt.format, diagramJSON)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, body = %+v", resp.StatusCode, decodeError(t, resp))
			}
			if got := resp.Header.Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			data, _ := io.ReadAll(resp.Body)
			if !bytes.HasPrefix(data, []byte(tt.prefix)) {
				t.Errorf("body = %.40q", data)
			}
		})
	}
}

func TestErrors(t *testing.T) {
	ts := newTestServer(t)
	unknown := strings.Replace(diagramJSON, `"target": "server"`, `"target": "nobody"`, 1)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"malformed json", "/v1/layout", "{", http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown field", "/v1/layout", `{"lanes": []}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown target", "/v1/layout", unknown, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad alignment", "/v1/layout?alignment=up", diagramJSON, http.StatusBadRequest, "INVALID_ALIGNMENT"},
		{"bad number", "/v1/layout?message_spacing=wide", diagramJSON, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad format", "/v1/render?format=gif", diagramJSON, http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad style", "/v1/render?style=neon", diagramJSON, http.StatusBadRequest, "INVALID_INPUT"},
		{"no route", "/v2/layout", diagramJSON, http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+tt.path, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			body := decodeError(t, resp)
			if body.Code != tt.code {
				t.Errorf("code = %q, want %q (%s)", body.Code, tt.code, body.Error)
			}
			if body.RequestID == "" {
				t.Error("error body has no request ID")
			}
		})
	}
}

func TestBodyLimit(t *testing.T) {
	fc := cache.NewNullCache()
	runner := pipeline.NewRunner(fc, nil, log.New(io.Discard))
	cfg := config.Default().Server
	cfg.MaxBodyBytes = 64
	ts := httptest.NewServer(New(runner, cfg).Handler())
	defer ts.Close()

	resp := post(t, ts.URL+"/v1/layout", diagramJSON)
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", resp.StatusCode)
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	ts := newTestServer(t)
	const id = "6f1c3a52-8d1e-4b8e-9a43-3f5b8c2d7e10"
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(HeaderRequestID, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get(HeaderRequestID); got != id {
		t.Errorf("X-Request-ID = %q, want %q", got, id)
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	hooks := observability.NewPromHooks(reg)
	observability.SetHTTPHooks(hooks)
	observability.SetPipelineHooks(hooks)
	t.Cleanup(observability.Reset)

	ts := newTestServer(t, WithMetrics(reg))
	post(t, ts.URL+"/v1/layout", diagramJSON)

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	for _, want := range []string{
		`lifeline_http_requests_total{method="POST",route="/v1/layout",status="200"} 1`,
		`lifeline_layouts_total{status="ok"} 1`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, log.New(io.Discard))
	cfg := config.Default().Server
	cfg.Addr = "127.0.0.1:0"
	s := New(runner, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
