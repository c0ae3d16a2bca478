package tikz_test

import (
	"fmt"

	"github.com/isplab/citegraph/pkg/graph"
	"github.com/isplab/citegraph/pkg/render/tikz"
)

func ExampleEmit() {
	g := graph.New()
	_ = g.AddNode("a", "[1]")
	_ = g.AddNode("b", "[2]")
	_ = g.AddEdge("a", "b")

	// Annotations normally come from community, centrality and layout.
	g.Node(0).Pos = graph.Position{X: 20, Y: 0}
	g.Node(1).Pos = graph.Position{X: -20, Y: 0}
	g.Node(1).Representative = true

	fmt.Println(tikz.Emit(g, tikz.Options{}))
	// Output:
	// \tikzstyle{vertex}=[rectangle, minimum size=5pt]
	// \tikzstyle{border} = [vertex, draw, line width=2pt, inner sep=2pt]
	// \tikzstyle{edge} = [draw, very thick, ->, black!42]
	// \tikzstyle{c0 vertex} = [vertex, fill=cyan!42]
	// \tikzstyle{c0 vertex border} = [border, fill=cyan!42]
	//
	// \scalebox{0.45}{
	// \begin{tikzpicture}[xscale=0.9, yscale=1.2, auto, swap]
	// \node[c0 vertex] (a) at (20.00, 0.00) {\LARGE [1]};
	// \node[c0 vertex border] (b) at (-20.00, 0.00) {\LARGE [2]};
	//
	// \begin{pgfonlayer}{bg}
	// \path[edge] (a) -- (b);
	// \end{pgfonlayer}
	//
	// \end{tikzpicture}
	// }
}
