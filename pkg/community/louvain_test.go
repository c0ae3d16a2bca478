package community

import (
	stderrors "errors"
	"math"
	"slices"
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

func TestDetect(t *testing.T) {
	tests := []struct {
		name           string
		ids            []string
		edges          [][2]string
		wantMembership []int
		wantQ          float64
	}{
		{
			name:           "Path",
			ids:            []string{"A", "B", "C", "D"},
			edges:          [][2]string{{"A", "B"}, {"B", "C"}, {"C", "D"}},
			wantMembership: []int{0, 0, 1, 1},
			wantQ:          1.0 / 6,
		},
		{
			name:           "Disconnected",
			ids:            []string{"A", "B", "C", "D"},
			edges:          [][2]string{{"A", "B"}, {"C", "D"}},
			wantMembership: []int{0, 0, 1, 1},
			wantQ:          0.5,
		},
		{
			name: "BridgedTriangles",
			ids:  []string{"a", "b", "c", "d", "e", "f"},
			edges: [][2]string{
				{"a", "b"}, {"b", "c"}, {"a", "c"},
				{"c", "d"},
				{"d", "e"}, {"e", "f"}, {"d", "f"},
			},
			wantMembership: []int{0, 0, 0, 1, 1, 1},
			wantQ:          2 * (3.0/7 - 0.25),
		},
		{
			name:           "NoEdges",
			ids:            []string{"x", "y", "z"},
			wantMembership: []int{0, 1, 2},
			wantQ:          0,
		},
		{
			name:           "SingleNode",
			ids:            []string{"x"},
			wantMembership: []int{0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(t, tt.ids, tt.edges)
			res, err := Detect(g, Options{})
			if err != nil {
				t.Fatalf("Detect: %v", err)
			}
			if !slices.Equal(res.Membership, tt.wantMembership) {
				t.Errorf("Membership = %v, want %v", res.Membership, tt.wantMembership)
			}
			if math.Abs(res.Modularity-tt.wantQ) > 1e-9 {
				t.Errorf("Modularity = %v, want %v", res.Modularity, tt.wantQ)
			}
			for v, c := range res.Membership {
				if g.Node(v).Community != c {
					t.Errorf("node %d annotated %d, want %d", v, g.Node(v).Community, c)
				}
			}
			for _, c := range res.Communities {
				if c.Representative != -1 {
					t.Errorf("community %d has representative before ranking", c.ID)
				}
			}
		})
	}
}

func TestDetectEmpty(t *testing.T) {
	_, err := Detect(graph.New(), Options{})
	var empty *errors.EmptyGraphError
	if !stderrors.As(err, &empty) {
		t.Fatalf("err = %v, want *EmptyGraphError", err)
	}
	if empty.Stage != "community" {
		t.Errorf("Stage = %q", empty.Stage)
	}
}

func TestDetectCommunitiesShape(t *testing.T) {
	g := build(t,
		[]string{"a", "b", "c", "d", "e", "f"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}, {"c", "d"}, {"d", "e"}, {"e", "f"}, {"d", "f"}},
	)
	res, err := Detect(g, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Communities) != 2 {
		t.Fatalf("got %d communities", len(res.Communities))
	}
	if !slices.Equal(res.Communities[1].Members, []int{3, 4, 5}) {
		t.Errorf("community 1 members = %v", res.Communities[1].Members)
	}
	if res.Levels != 1 {
		t.Errorf("Levels = %d, want 1", res.Levels)
	}
	sizes := res.Sizes()
	if sizes[0] != 3 || sizes[1] != 3 {
		t.Errorf("Sizes = %v", sizes)
	}
	if res.Communities[0].Size() != 3 {
		t.Errorf("Size = %d", res.Communities[0].Size())
	}
}

func TestResolution(t *testing.T) {
	g := build(t,
		[]string{"a", "b", "c", "d"},
		[][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}},
	)
	res, err := Detect(g, Options{Resolution: 0.01})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Communities) != 1 {
		t.Errorf("low resolution should merge the path, got %v", res.Membership)
	}
}

func TestModularity(t *testing.T) {
	g := build(t,
		[]string{"A", "B", "C", "D"},
		[][2]string{{"A", "B"}, {"B", "C"}, {"C", "D"}},
	)
	tests := []struct {
		name       string
		membership []int
		want       float64
	}{
		{"AllTogether", []int{0, 0, 0, 0}, 0},
		{"Halves", []int{0, 0, 1, 1}, 1.0 / 6},
		{"HalvesSparseIDs", []int{7, 7, 42, 42}, 1.0 / 6},
		{"Singletons", Singletons(g), -(1.0/36 + 4.0/36 + 4.0/36 + 1.0/36)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Modularity(g, tt.membership); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Modularity = %v, want %v", got, tt.want)
			}
		})
	}
}
