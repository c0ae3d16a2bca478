package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/isplab/citegraph/pkg/centrality"
	"github.com/isplab/citegraph/pkg/community"
	"github.com/isplab/citegraph/pkg/errors"
	"github.com/isplab/citegraph/pkg/graph"
	"github.com/isplab/citegraph/pkg/layout"
	"github.com/isplab/citegraph/pkg/observability"
)

// =============================================================================
// Annotation - Detect, Rank, Layout
// =============================================================================

// Annotation is the outcome of the first three stages.
type Annotation struct {
	Layout      graph.Layout
	Communities *community.Result
	Warnings    []error

	DetectTime time.Duration
	RankTime   time.Duration
	LayoutTime time.Duration
}

// Annotate runs community detection, centrality ranking and layout on g.
// Every node of g is annotated in place; the returned layout is a snapshot
// of those annotations.
//
// A disconnected graph is not an error: the condition is reported once in
// Annotation.Warnings and the run continues.
func Annotate(ctx context.Context, g *graph.Graph, opts Options) (*Annotation, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	out := &Annotation{}

	res, err := runStage(ctx, observability.StageDetect, g, &out.DetectTime, func() (*community.Result, error) {
		return community.Detect(g, opts.CommunityOptions())
	})
	if err != nil {
		return nil, fmt.Errorf("detect: %w", err)
	}
	out.Communities = res

	warn, err := runStage(ctx, observability.StageRank, g, &out.RankTime, func() (error, error) {
		return rank(g, res, opts)
	})
	if err != nil {
		return nil, fmt.Errorf("rank: %w", err)
	}
	if warn != nil {
		out.addWarning(warn)
		hooks.OnWarning(ctx, observability.StageRank, warn)
	}

	placed, err := runStage(ctx, observability.StageLayout, g, &out.LayoutTime, func() (*layout.Result, error) {
		return layout.KamadaKawai(g, opts.LayoutOptions())
	})
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	for _, w := range placed.Warnings {
		if out.addWarning(w) {
			hooks.OnWarning(ctx, observability.StageLayout, w)
		}
	}

	out.Layout = graph.ExportLayout(g)
	out.Layout.Scale = opts.Scale
	out.Layout.Modularity = res.Modularity
	out.Layout.Stress = placed.Stress
	return out, nil
}

// rank scores g by betweenness and flags one representative per community.
// A disconnected graph is returned as warn, not as err.
func rank(g *graph.Graph, res *community.Result, opts Options) (warn, err error) {
	scores, err := centrality.Betweenness(g, centrality.Options{Normalized: opts.Normalized})
	if err != nil && !errors.IsWarning(err) {
		return nil, err
	}
	centrality.Representatives(g, res, scores)
	return err, nil
}

// runStage checks for cancellation, reports the stage to the observability
// hooks and records its duration.
func runStage[T any](ctx context.Context, stage observability.Stage, g *graph.Graph, elapsed *time.Duration, fn func() (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, stage, g.NodeCount())
	start := time.Now()
	v, err := fn()
	*elapsed = time.Since(start)
	hooks.OnStageComplete(ctx, stage, *elapsed, err)
	return v, err
}

// addWarning records w unless an equal warning is already present.
func (a *Annotation) addWarning(w error) bool {
	for _, have := range a.Warnings {
		if have.Error() == w.Error() {
			return false
		}
	}
	a.Warnings = append(a.Warnings, w)
	return true
}
