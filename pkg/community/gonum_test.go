package community

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	gonum "gonum.org/v1/gonum/graph"
	gonumcommunity "gonum.org/v1/gonum/graph/community"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/isplab/citegraph/pkg/graph"
)

// gonumQ scores membership with gonum's modularity on a copy of g.
func gonumQ(g *graph.Graph, membership []int, resolution float64) float64 {
	u := simple.NewUndirectedGraph()
	for i := 0; i < g.NodeCount(); i++ {
		u.AddNode(simple.Node(i))
	}
	for _, e := range g.Edges() {
		u.SetEdge(simple.Edge{F: simple.Node(e.From), T: simple.Node(e.To)})
	}

	index := make(map[int]int)
	var parts [][]gonum.Node
	for v, c := range membership {
		i, ok := index[c]
		if !ok {
			i = len(parts)
			index[c] = i
			parts = append(parts, nil)
		}
		parts[i] = append(parts[i], simple.Node(v))
	}
	return gonumcommunity.Q(u, parts, resolution)
}

func TestModularityMatchesGonum(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("arbitrary partitions score the same", prop.ForAll(
		func(n int, raw []int, labels []int) bool {
			g := randomGraph(n, raw)
			if g.EdgeCount() == 0 {
				return true
			}
			membership := make([]int, n)
			for i := range membership {
				if i < len(labels) {
					membership[i] = labels[i]
				}
			}
			return math.Abs(Modularity(g, membership)-gonumQ(g, membership, 1)) < 1e-9
		},
		gen.IntRange(2, 16),
		gen.SliceOf(gen.IntRange(0, 255)),
		gen.SliceOf(gen.IntRange(0, 3)),
	))

	properties.Property("detected partitions report gonum's score", prop.ForAll(
		func(n int, raw []int) bool {
			g := randomGraph(n, raw)
			if g.EdgeCount() == 0 {
				return true
			}
			res, err := Detect(g, Options{})
			if err != nil {
				return false
			}
			return math.Abs(res.Modularity-gonumQ(g, res.Membership, 1)) < 1e-9
		},
		gen.IntRange(2, 16),
		gen.SliceOf(gen.IntRange(0, 255)),
	))

	properties.TestingRun(t)
}

func TestModularityMatchesGonumResolution(t *testing.T) {
	g := randomGraph(8, []int{1, 10, 19, 28, 37, 46, 55, 2, 20, 42})
	membership := []int{0, 0, 0, 0, 1, 1, 1, 1}
	for _, gamma := range []float64{0.5, 1, 2} {
		got := modularity(g, membership, gamma)
		want := gonumQ(g, membership, gamma)
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("resolution %v: got %v, gonum %v", gamma, got, want)
		}
	}
}
