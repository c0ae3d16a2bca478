// Package pkg provides the libraries behind citegraph.
//
// # Overview
//
// Citegraph turns a citation graph into a LaTeX-ready diagram: papers are
// grouped into communities, the most central paper of each community is
// marked, and the graph is laid out and emitted as TikZ. The packages are:
//
//  1. [graph] - The graph model, input facts, admission filter and layout files
//  2. [community] - Louvain community detection and modularity
//  3. [centrality] - Betweenness centrality and representative selection
//  4. [layout] - Kamada-Kawai placement
//  5. [render] - Palettes and the TikZ and node-link emitters
//  6. [pipeline] - Orchestration (detect → rank → layout → render) with caching
//  7. [cache], [config], [errors], [observability], [server] - Supporting infrastructure
//
// # Architecture
//
//	Facts (nodes, edges)
//	         ↓
//	    [graph] package (filter, sanitize, build)
//	         ↓
//	    [community] + [centrality] packages (annotate nodes)
//	         ↓
//	    [layout] package (positions)
//	         ↓
//	    TikZ/DOT/SVG/PDF/PNG/JSON output
//
// # Quick Start
//
//	g, _ := pipeline.ParseFile("refs.json", pipeline.InputOptions{})
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(ctx, g, pipeline.Options{Legend: true})
//	os.WriteFile("refs.tex", result.Artifacts["tikz"], 0o644)
//
// [graph]: github.com/isplab/citegraph/pkg/graph
// [community]: github.com/isplab/citegraph/pkg/community
// [centrality]: github.com/isplab/citegraph/pkg/centrality
// [layout]: github.com/isplab/citegraph/pkg/layout
// [render]: github.com/isplab/citegraph/pkg/render
// [pipeline]: github.com/isplab/citegraph/pkg/pipeline
// [cache]: github.com/isplab/citegraph/pkg/cache
// [config]: github.com/isplab/citegraph/pkg/config
// [errors]: github.com/isplab/citegraph/pkg/errors
// [observability]: github.com/isplab/citegraph/pkg/observability
// [server]: github.com/isplab/citegraph/pkg/server
package pkg
