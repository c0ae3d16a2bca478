package server

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/isplab/citegraph/pkg/buildinfo"
	"github.com/isplab/citegraph/pkg/errors"
	"github.com/isplab/citegraph/pkg/graph"
	"github.com/isplab/citegraph/pkg/pipeline"
)

// Request is the body of every /v1 endpoint.
type Request struct {
	graph.Facts

	// Titles restricts admission to the listed bibliography titles, mapped
	// to their captions. Omitted means every node is admitted.
	Titles map[string]string `json:"titles,omitempty"`

	// Match is "exact" or "normalized" (default).
	Match string `json:"match,omitempty"`

	Exclude  []string `json:"exclude,omitempty"`
	Sanitize bool     `json:"sanitize,omitempty"`

	Options pipeline.Options `json:"options"`
}

// DiagramResponse is the body of POST /v1/diagram.
type DiagramResponse struct {
	RunID     string            `json:"run_id"`
	GraphHash string            `json:"graph_hash"`
	Artifacts map[string]string `json:"artifacts"`
	Encoding  map[string]string `json:"encoding,omitempty"` // format -> "base64" for binary outputs
	Warnings  []string          `json:"warnings,omitempty"`
	Stats     ResponseStats     `json:"stats"`
	Cached    bool              `json:"cached"`
}

// ResponseStats summarizes a run.
type ResponseStats struct {
	Nodes       int     `json:"nodes"`
	Edges       int     `json:"edges"`
	Communities int     `json:"communities"`
	Modularity  float64 `json:"modularity"`
	DurationMS  int64   `json:"duration_ms"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

var contentTypes = map[string]string{
	pipeline.FormatTikZ: "application/x-tex; charset=utf-8",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
	})
}

// diagram handles POST /v1/diagram.
func (s *Server) diagram(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	res, ok := s.execute(w, r, req)
	if !ok {
		return
	}

	resp := DiagramResponse{
		RunID:     res.RunID,
		GraphHash: res.GraphHash,
		Artifacts: make(map[string]string, len(res.Artifacts)),
		Cached:    res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit,
		Stats: ResponseStats{
			Nodes:       res.Stats.NodeCount,
			Edges:       res.Stats.EdgeCount,
			Communities: res.Stats.CommunityCount,
			Modularity:  res.Layout.Modularity,
			DurationMS: (res.Stats.DetectTime + res.Stats.RankTime +
				res.Stats.LayoutTime + res.Stats.RenderTime).Milliseconds(),
		},
	}
	for format, data := range res.Artifacts {
		if utf8.Valid(data) && format != pipeline.FormatPNG && format != pipeline.FormatPDF {
			resp.Artifacts[format] = string(data)
			continue
		}
		if resp.Encoding == nil {
			resp.Encoding = make(map[string]string)
		}
		resp.Artifacts[format] = base64.StdEncoding.EncodeToString(data)
		resp.Encoding[format] = "base64"
	}
	for _, warn := range res.Warnings {
		resp.Warnings = append(resp.Warnings, warn.Error())
	}

	respondJSON(w, http.StatusOK, resp)
}

// diagramRaw handles POST /v1/diagram/{format}.
func (s *Server) diagramRaw(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		respondError(w, err)
		return
	}
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	req.Options.Formats = []string{format}

	res, ok := s.execute(w, r, req)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// stats handles POST /v1/stats.
func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	g, err := pipeline.Parse(req.Facts, req.input())
	if err != nil {
		respondError(w, err)
		return
	}
	opts := s.merge(req.Options)
	report, err := s.runner.Analyze(r.Context(), g, opts)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request) (*Request, bool) {
	var req Request
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		respondError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request: %v", err))
		return nil, false
	}
	if _, ok := graph.ParseMatchRule(req.Match); !ok {
		respondError(w, errors.New(errors.ErrCodeInvalidOption, "match must be exact or normalized, got %q", req.Match))
		return nil, false
	}
	return &req, true
}

func (s *Server) execute(w http.ResponseWriter, r *http.Request, req *Request) (*pipeline.Result, bool) {
	g, err := pipeline.Parse(req.Facts, req.input())
	if err != nil {
		respondError(w, err)
		return nil, false
	}
	res, err := s.runner.Execute(r.Context(), g, s.merge(req.Options))
	if err != nil {
		s.logger.Debug("pipeline failed", "run_id", RunID(r.Context()), "err", err)
		respondError(w, err)
		return nil, false
	}
	return res, true
}

// merge fills unset request options from the server defaults. A boolean
// default that is on cannot be switched off by a request, matching how the
// config file combines with command-line flags.
func (s *Server) merge(o pipeline.Options) pipeline.Options {
	d := s.defaults
	o.Normalized = o.Normalized || d.Normalized
	o.Legend = o.Legend || d.Legend
	o.Standalone = o.Standalone || d.Standalone
	o.Detailed = o.Detailed || d.Detailed
	if o.Resolution == 0 {
		o.Resolution = d.Resolution
	}
	if o.Scale == 0 {
		o.Scale = d.Scale
	}
	if o.MaxIterations == 0 {
		o.MaxIterations = d.MaxIterations
	}
	if o.Tolerance == 0 {
		o.Tolerance = d.Tolerance
	}
	if len(o.Formats) == 0 {
		o.Formats = d.Formats
	}
	if len(o.Palette.Colors) == 0 && o.Palette.Fallback == "" {
		o.Palette = d.Palette
	}
	if o.TikzScale == 0 {
		o.TikzScale = d.TikzScale
	}
	if o.NodelinkScale == 0 {
		o.NodelinkScale = d.NodelinkScale
	}
	if o.PNGScale == 0 {
		o.PNGScale = d.PNGScale
	}
	return o
}

func (req *Request) input() pipeline.InputOptions {
	match := graph.MatchNormalized
	if req.Match != "" {
		match, _ = graph.ParseMatchRule(req.Match)
	}
	return pipeline.InputOptions{
		Known:    req.Titles,
		Match:    match,
		Exclude:  req.Exclude,
		Sanitize: req.Sanitize,
	}
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidOption,
		errors.ErrCodeInvalidPalette, errors.ErrCodeInvalidEdge:
		return http.StatusBadRequest
	case errors.ErrCodeEmptyGraph:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func respondError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	respondJSON(w, status, errorResponse{Error: msg, Code: string(errors.GetCode(err))})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
