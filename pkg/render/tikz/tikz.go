package tikz

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/isplab/citegraph/pkg/graph"
	"github.com/isplab/citegraph/pkg/render"
)

// DefaultScale is the \scalebox factor around the picture.
const DefaultScale = 0.45

// Options configures Emit.
type Options struct {
	Palette    render.Palette // zero value selects render.DefaultPalette
	Scale      float64        // \scalebox factor; default 0.45
	Legend     bool           // emit a comment per community with its color and size
	Standalone bool           // wrap the picture in a standalone document
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

const preamble = `\tikzstyle{vertex}=[rectangle, minimum size=5pt]
\tikzstyle{border} = [vertex, draw, line width=2pt, inner sep=2pt]
\tikzstyle{edge} = [draw, very thick, ->, black!42]
`

const documentHead = `\documentclass[tikz,border=5pt]{standalone}
\pgfdeclarelayer{bg}
\pgfsetlayers{bg,main}
\begin{document}
`

// Emit renders g as TikZ. Nodes must already carry their community,
// representative flag and position.
func Emit(g *graph.Graph, opts Options) string {
	opts = opts.withDefaults()
	var b strings.Builder

	if opts.Standalone {
		b.WriteString(documentHead)
	}

	b.WriteString(preamble)
	sizes := g.CommunitySizes()
	ids := slices.Sorted(maps.Keys(sizes))
	for _, c := range ids {
		color := opts.Palette.Color(c)
		fmt.Fprintf(&b, "\\tikzstyle{c%d vertex} = [vertex, fill=%s!42]\n", c, color)
		fmt.Fprintf(&b, "\\tikzstyle{c%d vertex border} = [border, fill=%s!42]\n", c, color)
	}
	if opts.Legend {
		for _, c := range ids {
			fmt.Fprintf(&b, "%% c%d: %s (%s)\n", c, opts.Palette.Color(c), plural(sizes[c], "node"))
		}
	}

	fmt.Fprintf(&b, "\n\\scalebox{%s}{\n", strconv.FormatFloat(opts.Scale, 'g', -1, 64))
	b.WriteString("\\begin{tikzpicture}[xscale=0.9, yscale=1.2, auto, swap]\n")

	for _, n := range drawOrder(g) {
		style := fmt.Sprintf("c%d vertex", n.Community)
		if n.Representative {
			style += " border"
		}
		fmt.Fprintf(&b, "\\node[%s] (%s) at (%.2f, %.2f) {\\LARGE %s};\n",
			style, n.ID, n.Pos.X, n.Pos.Y, n.Label)
	}

	b.WriteString("\n\\begin{pgfonlayer}{bg}\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&b, "\\path[edge] (%s) -- (%s);\n", g.Node(e.From).ID, g.Node(e.To).ID)
	}
	b.WriteString("\\end{pgfonlayer}\n\n")
	b.WriteString("\\end{tikzpicture}\n}")

	if opts.Standalone {
		b.WriteString("\n\\end{document}\n")
	}
	return b.String()
}

// drawOrder partitions nodes stably: representatives last.
func drawOrder(g *graph.Graph) []*graph.Node {
	nodes := g.Nodes()
	slices.SortStableFunc(nodes, func(a, b *graph.Node) int {
		switch {
		case a.Representative == b.Representative:
			return 0
		case b.Representative:
			return -1
		}
		return 1
	})
	return nodes
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
