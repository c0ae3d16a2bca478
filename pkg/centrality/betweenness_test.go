package centrality

import (
	stderrors "errors"
	"math"
	"testing"

	"github.com/isplab/citegraph/pkg/errors"
	"github.com/isplab/citegraph/pkg/graph"
)

func build(t *testing.T, ids []string, edges [][2]string) *graph.Graph {
	t.Helper()
	g := graph.New()
	for _, id := range ids {
		if err := g.AddNode(id, id); err != nil {
			t.Fatalf("AddNode(%q): %v", id, err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge(%v): %v", e, err)
		}
	}
	return g
}

func TestBetweenness(t *testing.T) {
	tests := []struct {
		name       string
		ids        []string
		edges      [][2]string
		normalized bool
		want       []float64
		wantWarn   bool
	}{
		{
			name:  "Path",
			ids:   []string{"A", "B", "C", "D"},
			edges: [][2]string{{"A", "B"}, {"B", "C"}, {"C", "D"}},
			want:  []float64{0, 2, 2, 0},
		},
		{
			name:       "PathNormalized",
			ids:        []string{"A", "B", "C", "D"},
			edges:      [][2]string{{"A", "B"}, {"B", "C"}, {"C", "D"}},
			normalized: true,
			want:       []float64{0, 2.0 / 3, 2.0 / 3, 0},
		},
		{
			name:  "Star",
			ids:   []string{"hub", "a", "b", "c", "d"},
			edges: [][2]string{{"hub", "a"}, {"hub", "b"}, {"hub", "c"}, {"hub", "d"}},
			want:  []float64{6, 0, 0, 0, 0},
		},
		{
			name:  "Square",
			ids:   []string{"a", "b", "c", "d"},
			edges: [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "a"}},
			want:  []float64{0.5, 0.5, 0.5, 0.5},
		},
		{
			name:     "DisconnectedWithIsolate",
			ids:      []string{"A", "B", "C", "D", "E"},
			edges:    [][2]string{{"A", "B"}, {"B", "C"}},
			want:     []float64{0, 1, 0, 0, 0},
			wantWarn: true,
		},
		{
			name: "SingleNode",
			ids:  []string{"x"},
			want: []float64{0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(t, tt.ids, tt.edges)
			got, err := Betweenness(g, Options{Normalized: tt.normalized})
			if tt.wantWarn {
				var w *errors.DisconnectedGraphWarning
				if !stderrors.As(err, &w) {
					t.Fatalf("err = %v, want *DisconnectedGraphWarning", err)
				}
			} else if err != nil {
				t.Fatalf("Betweenness: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-12 {
					t.Errorf("score[%s] = %v, want %v", tt.ids[i], got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBetweennessEmpty(t *testing.T) {
	_, err := Betweenness(graph.New(), Options{})
	if !errors.Is(err, errors.ErrCodeEmptyGraph) {
		t.Fatalf("err = %v, want EMPTY_GRAPH", err)
	}
}
