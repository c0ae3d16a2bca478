// Package pipeline provides the citation diagram pipeline for citegraph.
//
// This package implements the complete detect → rank → layout → render
// pipeline used by the CLI and the HTTP server. By centralizing this logic,
// both entry points share defaults, caching and output formats.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Detect: partition the graph into communities (Louvain)
//  2. Rank: score nodes by betweenness and pick one representative per community
//  3. Layout: place nodes with Kamada-Kawai
//  4. Render: emit TikZ, DOT, SVG, PDF, PNG or the annotated JSON layout
//
// Stages 1-3 produce a [graph.Layout], which is cached by graph content and
// layout options. Rendered artifacts are cached by layout content and render
// options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, g, pipeline.Options{
//	    Formats: []string{"tikz"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	tex := result.Artifacts["tikz"]
//
// Analyze runs detection and ranking only and returns the summary report:
//
//	report, err := runner.Analyze(ctx, g, opts)
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/isplab/citegraph/pkg/cache"
	"github.com/isplab/citegraph/pkg/community"
	"github.com/isplab/citegraph/pkg/errors"
	"github.com/isplab/citegraph/pkg/graph"
	"github.com/isplab/citegraph/pkg/layout"
	"github.com/isplab/citegraph/pkg/render"
	"github.com/isplab/citegraph/pkg/render/nodelink"
	"github.com/isplab/citegraph/pkg/render/tikz"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultPNGScale is the rasterization factor for PNG output.
	DefaultPNGScale = 2.0
)

// Format constants for output formats.
const (
	FormatTikZ = "tikz"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatTikZ: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// Extensions maps each format to its output file extension.
var Extensions = map[string]string{
	FormatTikZ: ".tex",
	FormatDOT:  ".dot",
	FormatSVG:  ".svg",
	FormatPNG:  ".png",
	FormatPDF:  ".pdf",
	FormatJSON: ".layout.json",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Detect options
	Resolution float64 `json:"resolution,omitempty"`

	// Rank options
	Normalized bool `json:"normalized,omitempty"`

	// Layout options
	Scale         float64 `json:"scale,omitempty"`
	MaxIterations int     `json:"max_iterations,omitempty"`
	Tolerance     float64 `json:"tolerance,omitempty"`

	// Render options
	Formats       []string       `json:"formats,omitempty"`
	Palette       render.Palette `json:"palette,omitzero"`
	TikzScale     float64        `json:"tikz_scale,omitempty"`
	Legend        bool           `json:"legend,omitempty"`
	Standalone    bool           `json:"standalone,omitempty"`
	NodelinkScale float64        `json:"nodelink_scale,omitempty"`
	Detailed      bool           `json:"detailed,omitempty"`
	PNGScale      float64        `json:"png_scale,omitempty"`

	// Refresh bypasses cached layouts and artifacts.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and API responses.
	RunID string

	// Graph is the annotated input graph.
	Graph *graph.Graph

	// GraphHash is the content hash of the input facts.
	GraphHash string

	// Layout is the annotated layout (communities, centrality, positions).
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Warnings holds non-fatal conditions, e.g. a disconnected graph.
	Warnings []error

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount      int
	EdgeCount      int
	CommunityCount int
	DetectTime     time.Duration
	RankTime       time.Duration
	LayoutTime     time.Duration
	RenderTime     time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the annotated layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// Report is the summary of a graph: its size and the number of nodes in
// each community.
type Report struct {
	NodeCount      int         `json:"nodes"`
	EdgeCount      int         `json:"edges"`
	Modularity     float64     `json:"modularity"`
	CommunitySizes map[int]int `json:"communities"`

	// Representatives maps community id to the label of its representative.
	Representatives map[int]string `json:"representatives,omitempty"`
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// FormatNames returns the supported formats in sorted order.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for detection, ranking and layout.
func (o *Options) SetLayoutDefaults() {
	if o.Resolution == 0 {
		o.Resolution = community.DefaultResolution
	}
	if o.Scale == 0 {
		o.Scale = layout.DefaultScale
	}
	if o.MaxIterations == 0 {
		o.MaxIterations = layout.DefaultMaxIterations
	}
	if o.Tolerance == 0 {
		o.Tolerance = layout.DefaultTolerance
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for the annotated layout.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	for _, check := range []struct {
		name string
		v    float64
	}{
		{"resolution", o.Resolution},
		{"scale", o.Scale},
		{"tolerance", o.Tolerance},
	} {
		if err := errors.ValidatePositive(check.name, check.v); err != nil {
			return err
		}
	}
	if o.MaxIterations < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "max_iterations must be positive")
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatTikZ}
	}
	if len(o.Palette.Colors) == 0 && o.Palette.Fallback == "" {
		o.Palette = render.DefaultPalette()
	}
	if o.TikzScale == 0 {
		o.TikzScale = tikz.DefaultScale
	}
	if o.NodelinkScale == 0 {
		o.NodelinkScale = nodelink.DefaultScale
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := o.Palette.Validate(); err != nil {
		return err
	}
	for _, check := range []struct {
		name string
		v    float64
	}{
		{"tikz_scale", o.TikzScale},
		{"nodelink_scale", o.NodelinkScale},
		{"png_scale", o.PNGScale},
	} {
		if err := errors.ValidatePositive(check.name, check.v); err != nil {
			return err
		}
	}
	return nil
}

// CommunityOptions returns options for community detection.
func (o *Options) CommunityOptions() community.Options {
	return community.Options{Resolution: o.Resolution}
}

// LayoutOptions returns options for the layout engine.
func (o *Options) LayoutOptions() layout.Options {
	return layout.Options{
		Scale:         o.Scale,
		MaxIterations: o.MaxIterations,
		Tolerance:     o.Tolerance,
	}
}

// TikzOptions returns options for the TikZ emitter.
func (o *Options) TikzOptions() tikz.Options {
	return tikz.Options{
		Palette:    o.Palette,
		Scale:      o.TikzScale,
		Legend:     o.Legend,
		Standalone: o.Standalone,
	}
}

// NodelinkOptions returns options for DOT generation.
func (o *Options) NodelinkOptions() nodelink.Options {
	return nodelink.Options{
		Palette:  o.Palette,
		Scale:    o.NodelinkScale,
		Detailed: o.Detailed,
	}
}

// LayoutKeyOpts returns cache key options for the annotated layout.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Resolution:    o.Resolution,
		Normalized:    o.Normalized,
		Scale:         o.Scale,
		MaxIterations: o.MaxIterations,
		Tolerance:     o.Tolerance,
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
// Only the options that affect that format are included.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatTikZ:
		k.Palette = o.Palette.String()
		k.TikzScale = o.TikzScale
		k.Legend = o.Legend
		k.Standalone = o.Standalone
	case FormatDOT, FormatSVG, FormatPDF, FormatPNG:
		k.Palette = o.Palette.String()
		k.NodelinkScale = o.NodelinkScale
		k.Detailed = o.Detailed
		if format == FormatPNG {
			k.PNGScale = o.PNGScale
		}
	}
	return k
}
