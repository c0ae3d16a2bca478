package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/isplab/citegraph/pkg/graph"
	"github.com/isplab/citegraph/pkg/render"
)

// DefaultScale converts layout units to inches.
const DefaultScale = 0.25

// Options configures node-link diagram rendering.
type Options struct {
	Palette render.Palette // zero value selects render.DefaultPalette
	Scale   float64        // inches per layout unit; default 0.25

	// Detailed adds the community id and centrality score to node labels.
	// When false, only the label is shown.
	Detailed bool
}

func (o Options) withDefaults() Options {
	if len(o.Palette.Colors) == 0 && o.Palette.Fallback == "" {
		o.Palette = render.DefaultPalette()
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	return o
}

// ToDOT converts an annotated graph to Graphviz DOT with pinned positions.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(g *graph.Graph, opts Options) string {
	opts = opts.withDefaults()

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  overlap=true;\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=14, margin=\"0.1,0.05\"];\n")
	buf.WriteString("  edge [color=\"gray50\", penwidth=1.5];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		attrs := fmtAttrs(*n, fmtLabel(*n, opts.Detailed), opts)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -- %q;\n", g.Node(e.From).ID, g.Node(e.To).ID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n graph.Node, detailed bool) string {
	if !detailed {
		return n.Label
	}
	return fmt.Sprintf("%s\ncommunity: %d\ncentrality: %.3f", n.Label, n.Community, n.Centrality)
}

func fmtAttrs(n graph.Node, label string, opts Options) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("pos=\"%.3f,%.3f!\"", n.Pos.X*opts.Scale, n.Pos.Y*opts.Scale),
		fmt.Sprintf("fillcolor=%q", baseColor(opts.Palette.Color(n.Community))),
	}
	if n.Representative {
		attrs = append(attrs, "penwidth=3")
	}
	return attrs
}

// baseColor strips xcolor mixing ("blue!50!black" -> "blue"), which Graphviz
// does not understand.
func baseColor(c string) string {
	if i := strings.IndexByte(c, '!'); i >= 0 {
		return c[:i]
	}
	return c
}

// RenderSVG renders a DOT graph to SVG using the Graphviz neato engine, which
// honors pinned node positions.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
