// Package nodelink renders citation graphs as node-link diagrams.
//
// # Overview
//
// This package produces Graphviz diagrams of an annotated graph: nodes are
// rounded boxes filled with their community color, representatives get a
// thick border, and edges are plain lines. Node positions come from the
// layout stage and are pinned, so Graphviz only draws.
//
// # Usage
//
// Convert a graph to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// PDF and PNG are converted from the SVG by the render package:
//
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// # DOT Format
//
// The [ToDOT] function produces an undirected Graphviz graph. Every node
// carries pos="x,y!" in inches (layout units times Options.Scale), which
// the neato engine keeps fixed.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
