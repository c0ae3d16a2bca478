package tikz

import (
	"strings"
	"testing"

	"github.com/isplab/citegraph/pkg/graph"
	"github.com/isplab/citegraph/pkg/render"
)

func annotated(t *testing.T, f graph.Facts, communities []int, rep []bool) *graph.Graph {
	t.Helper()
	g, err := graph.FromFacts(f)
	if err != nil {
		t.Fatalf("FromFacts: %v", err)
	}
	for i := 0; i < g.NodeCount(); i++ {
		n := g.Node(i)
		n.Community = communities[i]
		n.Representative = rep[i]
		n.Pos = graph.Position{X: float64(i), Y: -float64(i+1) / 3}
	}
	return g
}

func TestEmitIsolatedNodes(t *testing.T) {
	g := annotated(t,
		graph.Facts{Nodes: []graph.NodeFact{{ID: "a", Label: "[1]"}, {ID: "b", Label: "[2]"}, {ID: "c", Label: "[3]"}}},
		[]int{0, 1, 2},
		[]bool{true, true, true},
	)
	out := Emit(g, Options{})

	if got := strings.Count(out, `\node[`); got != 3 {
		t.Errorf("node declarations = %d, want 3", got)
	}
	if got := strings.Count(out, `\path[edge]`); got != 0 {
		t.Errorf("edge declarations = %d, want 0", got)
	}
	if got := strings.Count(out, " vertex} = [vertex, fill="); got != 3 {
		t.Errorf("community styles = %d, want 3", got)
	}
	if got := strings.Count(out, " vertex border} = [border, fill="); got != 3 {
		t.Errorf("representative styles = %d, want 3", got)
	}
}

func TestEmitFormat(t *testing.T) {
	g := annotated(t,
		graph.Facts{
			Nodes: []graph.NodeFact{{ID: "a", Label: "[1]"}, {ID: "b", Label: "[2]"}, {ID: "c", Label: "[3]"}},
			Edges: []graph.EdgeFact{{From: "b", To: "a"}, {From: "b", To: "c"}, {From: "c", To: "ghost"}},
		},
		[]int{0, 0, 5},
		[]bool{false, true, true},
	)
	out := Emit(g, Options{})

	wantLines := []string{
		`\tikzstyle{c0 vertex} = [vertex, fill=cyan!42]`,
		`\tikzstyle{c0 vertex border} = [border, fill=cyan!42]`,
		`\tikzstyle{c5 vertex} = [vertex, fill=black!42]`,
		`\scalebox{0.45}{`,
		`\begin{tikzpicture}[xscale=0.9, yscale=1.2, auto, swap]`,
		`\node[c0 vertex] (a) at (0.00, -0.33) {\LARGE [1]};`,
		`\node[c0 vertex border] (b) at (1.00, -0.67) {\LARGE [2]};`,
		`\node[c5 vertex border] (c) at (2.00, -1.00) {\LARGE [3]};`,
		`\path[edge] (b) -- (a);`,
		`\path[edge] (b) -- (c);`,
	}
	for _, line := range wantLines {
		if !strings.Contains(out, line+"\n") {
			t.Errorf("missing line %q in:\n%s", line, out)
		}
	}
	if strings.Contains(out, "ghost") {
		t.Error("dropped edge was emitted")
	}
	if !strings.HasSuffix(out, "\\end{tikzpicture}\n}") {
		t.Errorf("unexpected ending: %q", out[len(out)-20:])
	}
}

func TestEmitLabelSeparatedFromFontSize(t *testing.T) {
	tests := []struct {
		name  string
		node  graph.NodeFact
		label string
	}{
		{"IDFallback", graph.NodeFact{ID: "A"}, `{\LARGE A}`},
		{"LetterCaption", graph.NodeFact{ID: "a", Label: "Gru03"}, `{\LARGE Gru03}`},
		{"BracketCaption", graph.NodeFact{ID: "a", Label: "[1]"}, `{\LARGE [1]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := annotated(t, graph.Facts{Nodes: []graph.NodeFact{tt.node}}, []int{0}, []bool{true})
			out := Emit(g, Options{})
			if !strings.Contains(out, tt.label+";\n") {
				t.Errorf("missing %s in:\n%s", tt.label, out)
			}
		})
	}
}

func TestEmitOrder(t *testing.T) {
	g := annotated(t,
		graph.Facts{
			Nodes: []graph.NodeFact{{ID: "r"}, {ID: "x"}, {ID: "y"}},
			Edges: []graph.EdgeFact{{From: "r", To: "x"}},
		},
		[]int{0, 0, 0},
		[]bool{true, false, false},
	)
	out := Emit(g, Options{})

	ix := strings.Index(out, "(x) at")
	iy := strings.Index(out, "(y) at")
	ir := strings.Index(out, "(r) at")
	if !(ix < iy && iy < ir) {
		t.Errorf("node order x=%d y=%d r=%d, want x < y < r", ix, iy, ir)
	}
	lastNode := strings.LastIndex(out, `\node[`)
	firstEdge := strings.Index(out, `\path[edge]`)
	if firstEdge < lastNode {
		t.Error("edges must come after all nodes")
	}
}

func TestEmitOptions(t *testing.T) {
	g := annotated(t,
		graph.Facts{Nodes: []graph.NodeFact{{ID: "a"}, {ID: "b"}}},
		[]int{0, 1},
		[]bool{true, true},
	)

	t.Run("Palette", func(t *testing.T) {
		out := Emit(g, Options{Palette: render.Palette{Colors: []string{"orange"}, Wrap: true}})
		if strings.Count(out, "fill=orange!42") != 4 {
			t.Errorf("wrapped palette not applied:\n%s", out)
		}
	})

	t.Run("Scale", func(t *testing.T) {
		if out := Emit(g, Options{Scale: 1}); !strings.Contains(out, `\scalebox{1}{`) {
			t.Errorf("scale not applied:\n%s", out)
		}
	})

	t.Run("Legend", func(t *testing.T) {
		out := Emit(g, Options{Legend: true})
		if !strings.Contains(out, "% c0: cyan (1 node)\n") || !strings.Contains(out, "% c1: red (1 node)\n") {
			t.Errorf("legend missing:\n%s", out)
		}
	})

	t.Run("Standalone", func(t *testing.T) {
		out := Emit(g, Options{Standalone: true})
		if !strings.HasPrefix(out, `\documentclass`) || !strings.HasSuffix(out, "\\end{document}\n") {
			t.Errorf("standalone wrapper missing:\n%s", out)
		}
		if !strings.Contains(out, `\pgfdeclarelayer{bg}`) {
			t.Error("bg layer not declared")
		}
	})
}

func TestEmitDeterministic(t *testing.T) {
	f := graph.Facts{
		Nodes: []graph.NodeFact{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Edges: []graph.EdgeFact{{From: "a", To: "b"}},
	}
	one := Emit(annotated(t, f, []int{2, 0, 1}, []bool{true, true, true}), Options{Legend: true})
	two := Emit(annotated(t, f, []int{2, 0, 1}, []bool{true, true, true}), Options{Legend: true})
	if one != two {
		t.Error("Emit is not deterministic")
	}
}
