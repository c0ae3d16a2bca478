package pipeline

import (
	"context"
	"fmt"

	"github.com/isplab/citegraph/pkg/graph"
	"github.com/isplab/citegraph/pkg/render"
	"github.com/isplab/citegraph/pkg/render/nodelink"
	"github.com/isplab/citegraph/pkg/render/tikz"
)

// Render generates output artifacts in the requested formats from an
// annotated graph. The graph must carry communities, representative flags
// and positions, as left by [Annotate] or [graph.Graph.ApplyLayout].
//
// The DOT source and the SVG are produced at most once per call and shared
// by the formats derived from them.
func Render(ctx context.Context, g *graph.Graph, l graph.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	var (
		dot string
		svg []byte
	)
	dotSource := func() string {
		if dot == "" {
			dot = nodelink.ToDOT(g, opts.NodelinkOptions())
		}
		return dot
	}
	svgBytes := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		out, err := nodelink.RenderSVG(ctx, dotSource())
		if err != nil {
			return nil, err
		}
		svg = out
		return svg, nil
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data []byte
		var err error

		switch format {
		case FormatTikZ:
			data = []byte(tikz.Emit(g, opts.TikzOptions()))
		case FormatDOT:
			data = []byte(dotSource())
		case FormatSVG:
			data, err = svgBytes()
		case FormatPDF:
			if data, err = svgBytes(); err == nil {
				data, err = render.ToPDF(ctx, data)
			}
		case FormatPNG:
			if data, err = svgBytes(); err == nil {
				data, err = render.ToPNG(ctx, data, opts.PNGScale)
			}
		case FormatJSON:
			data, err = graph.MarshalLayout(l)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// RenderFromLayout renders output from a serialized layout alone.
// This is useful when the layout was computed elsewhere (e.g., cached or
// written by "citegraph render -f json").
func RenderFromLayout(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	g, err := l.ToGraph()
	if err != nil {
		return nil, fmt.Errorf("convert layout: %w", err)
	}
	return Render(ctx, g, l, opts)
}

// RenderFromLayoutData renders output from serialized layout data.
func RenderFromLayoutData(ctx context.Context, layoutData []byte, opts Options) (map[string][]byte, error) {
	parsed, err := graph.UnmarshalLayout(layoutData)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	return RenderFromLayout(ctx, parsed, opts)
}
