package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/isplab/citegraph/pkg/cache"
	"github.com/isplab/citegraph/pkg/community"
	"github.com/isplab/citegraph/pkg/errors"
	"github.com/isplab/citegraph/pkg/graph"
	"github.com/isplab/citegraph/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options and different graphs.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the expiry of cached layouts and artifacts when positive.
	TTL time.Duration
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

// Execute runs the complete detect → rank → layout → render pipeline with caching.
// g is annotated in place and returned in Result.Graph.
func (r *Runner) Execute(ctx context.Context, g *graph.Graph, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID:     uuid.NewString(),
		Graph:     g,
		Artifacts: make(map[string][]byte),
	}
	logger := opts.Logger.With("run_id", result.RunID)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()

	if g.Dropped() > 0 {
		logger.Debug("dropped edges with unknown endpoints", "count", g.Dropped())
	}

	graphHash, err := cache.HashJSON(graph.ToFacts(g))
	if err != nil {
		return nil, err
	}
	result.GraphHash = graphHash

	// Stages 1-3: Detect, Rank, Layout
	ann, layoutHit, err := r.AnnotateWithCacheInfo(ctx, g, graphHash, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = ann.Layout
	result.Warnings = ann.Warnings
	result.CacheInfo.LayoutHit = layoutHit
	result.Stats.CommunityCount = len(g.CommunitySizes())
	result.Stats.DetectTime = ann.DetectTime
	result.Stats.RankTime = ann.RankTime
	result.Stats.LayoutTime = ann.LayoutTime

	for _, w := range ann.Warnings {
		logger.Warn(w.Error())
	}
	logger.Info("computed layout",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"communities", result.Stats.CommunityCount,
		"modularity", fmt.Sprintf("%.4f", ann.Layout.Modularity),
		"cached", layoutHit,
		"duration", ann.DetectTime+ann.RankTime+ann.LayoutTime)

	// Stage 4: Render
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, observability.StageRender, g.NodeCount())
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, g, ann.Layout, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnStageComplete(ctx, observability.StageRender, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// AnnotateWithCacheInfo runs detection, ranking and layout with caching and
// returns cache hit info. On a hit the cached annotations are applied to g,
// so the graph ends up in the same state either way.
func (r *Runner) AnnotateWithCacheInfo(ctx context.Context, g *graph.Graph, graphHash string, opts Options) (*Annotation, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}

	cacheKey := r.Keyer.LayoutKey(graphHash, opts.LayoutKeyOpts())
	cacheHooks := observability.Cache()

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if cached, err := graph.UnmarshalLayout(data); err == nil && g.ApplyLayout(cached) == nil {
				cacheHooks.OnCacheHit(ctx, "layout")
				ann := &Annotation{Layout: cached}
				if comps := len(g.Components()); comps > 1 {
					ann.addWarning(&errors.DisconnectedGraphWarning{Components: comps})
				}
				return ann, true, nil
			}
			// If deserialization fails, fall through to recompute
		} else if err != nil {
			opts.Logger.Debug("layout cache read failed", "err", err)
		}
		cacheHooks.OnCacheMiss(ctx, "layout")
	}

	ann, err := Annotate(ctx, g, opts)
	if err != nil {
		return nil, false, err
	}

	if data, err := graph.MarshalLayout(ann.Layout); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, r.ttl(cache.LayoutTTL)); err != nil {
			opts.Logger.Debug("layout cache write failed", "err", err)
		} else {
			cacheHooks.OnCacheSet(ctx, "layout", len(data))
		}
	}

	return ann, false, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// The hit flag is true only when every requested format came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *graph.Graph, l graph.Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	// Compute cache key from layout data
	layoutHash, err := cache.HashJSON(l)
	if err != nil {
		return nil, false, fmt.Errorf("hash layout for cache key: %w", err)
	}
	cacheHooks := observability.Cache()

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		if opts.Refresh {
			missing = append(missing, format)
			continue
		}
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			cacheHooks.OnCacheHit(ctx, "artifact")
			artifacts[format] = data
			continue
		}
		cacheHooks.OnCacheMiss(ctx, "artifact")
		missing = append(missing, format)
	}

	if len(missing) == 0 {
		return artifacts, true, nil
	}

	// Render only what the cache did not have
	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := Render(ctx, g, l, renderOpts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, r.ttl(cache.ArtifactTTL)); err != nil {
			opts.Logger.Debug("artifact cache write failed", "format", format, "err", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, "artifact", len(data))
	}

	return artifacts, false, nil
}

// Analyze runs community detection and centrality ranking only and returns
// the summary report. g is annotated with communities and centrality.
func (r *Runner) Analyze(ctx context.Context, g *graph.Graph, opts Options) (*Report, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	var detectTime, rankTime time.Duration
	res, err := runStage(ctx, observability.StageDetect, g, &detectTime, func() (*community.Result, error) {
		return community.Detect(g, opts.CommunityOptions())
	})
	if err != nil {
		return nil, fmt.Errorf("detect: %w", err)
	}

	warn, err := runStage(ctx, observability.StageRank, g, &rankTime, func() (error, error) {
		return rank(g, res, opts)
	})
	if err != nil {
		return nil, fmt.Errorf("rank: %w", err)
	}
	if warn != nil {
		observability.Pipeline().OnWarning(ctx, observability.StageRank, warn)
		opts.Logger.Warn(warn.Error())
	}

	report := &Report{
		NodeCount:       g.NodeCount(),
		EdgeCount:       g.EdgeCount(),
		Modularity:      res.Modularity,
		CommunitySizes:  res.Sizes(),
		Representatives: make(map[int]string, len(res.Communities)),
	}
	for _, c := range res.Communities {
		if c.Representative >= 0 {
			report.Representatives[c.ID] = g.Node(c.Representative).Label
		}
	}

	opts.Logger.Info("analyzed graph",
		"nodes", report.NodeCount,
		"edges", report.EdgeCount,
		"communities", len(report.CommunitySizes),
		"duration", detectTime+rankTime)

	return report, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
