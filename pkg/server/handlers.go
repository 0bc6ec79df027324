package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/matzehuels/lifeline/pkg/buildinfo"
	"github.com/matzehuels/lifeline/pkg/errors"
	"github.com/matzehuels/lifeline/pkg/graph"
	"github.com/matzehuels/lifeline/pkg/pipeline"
)

// HeaderCache reports "hit" or "miss" on pipeline responses.
const HeaderCache = "X-Cache"

// ContentTypes maps each output format to its media type.
var ContentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

type errorBody struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

type healthBody struct {
	Status string `json:"status"`
	buildinfo.Info
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthBody{Status: "ok", Info: buildinfo.Current()})
}

// handleLayout lays out the posted diagram and returns it as JSON.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	d, err := s.readDiagram(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	laid, _, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), d, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := graph.MarshalDiagram(laid)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "encode layout"))
		return
	}
	w.Header().Set(HeaderCache, cacheStatus(hit))
	writeBytes(w, ContentTypes[pipeline.FormatJSON], data)
}

// handleRender renders the posted diagram in one format. A diagram without
// layout results is laid out first.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	d, err := s.readDiagram(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	layoutHit := true
	if !d.IsLaidOut() {
		d, _, layoutHit, err = s.runner.LayoutWithCacheInfo(r.Context(), d, opts)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	artifacts, renderHit, err := s.runner.RenderWithCacheInfo(r.Context(), d, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set(HeaderCache, cacheStatus(layoutHit && renderHit))
	writeBytes(w, ContentTypes[format], artifacts[format])
}

// requestOptions starts from the server defaults and applies query
// parameters.
func (s *Server) requestOptions(r *http.Request) (pipeline.Options, error) {
	opts := s.defaults
	opts.Formats = nil
	opts.Logger = s.logger
	q := r.URL.Query()

	floats := []struct {
		name string
		dst  *float64
	}{
		{"message_spacing", &opts.MessageSpacing},
		{"lifeline_header", &opts.LifelineHeader},
		{"lifeline_y_pos", &opts.LifelineYPos},
		{"lifeline_spacing", &opts.LifelineSpacing},
		{"border_spacing", &opts.BorderSpacing},
		{"label_spacing", &opts.LabelSpacing},
		{"label_margin", &opts.LabelMargin},
		{"scale", &opts.Scale},
	}
	for _, f := range floats {
		v := q.Get(f.name)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "query parameter %s: %q is not a number", f.name, v)
		}
		*f.dst = n
	}
	if v := q.Get("alignment"); v != "" {
		opts.LabelAlignment = v
	}
	if v := q.Get("style"); v != "" {
		opts.Style = v
	}
	if v := q.Get("renderer"); v != "" {
		opts.Renderer = v
	}
	if v := q.Get("comments"); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "query parameter comments: %q is not a boolean", v)
		}
		opts.NoComments = !on
	}
	opts.Refresh = q.Get("refresh") == "true"
	return opts, nil
}

func (s *Server) readDiagram(w http.ResponseWriter, r *http.Request) (graph.Diagram, error) {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	d, err := graph.ReadDiagram(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return graph.Diagram{}, errTooLarge{limit: tooLarge.Limit}
		}
		return graph.Diagram{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid diagram")
	}
	return d, nil
}

type errTooLarge struct{ limit int64 }

func (e errTooLarge) Error() string {
	return "request body exceeds " + strconv.FormatInt(e.limit, 10) + " bytes"
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := string(errors.GetCode(err))
	var tooLarge errTooLarge
	if stderrors.As(err, &tooLarge) {
		status, code = http.StatusRequestEntityTooLarge, string(errors.ErrCodeInvalidInput)
	}
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	if status >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err, "request_id", RequestID(r.Context()))
	}
	writeJSON(w, status, errorBody{
		Error:     errors.UserMessage(err),
		Code:      code,
		RequestID: RequestID(r.Context()),
	})
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeBytes(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
