package centrality

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/isplab/citegraph/pkg/community"
	"github.com/isplab/citegraph/pkg/graph"
)

func randomGraph(n int, raw []int) *graph.Graph {
	g := graph.New()
	for i := 0; i < n; i++ {
		_ = g.AddNode(fmt.Sprintf("n%d", i), "")
	}
	for _, r := range raw {
		a, b := r%n, (r/n)%n
		if a != b {
			_ = g.AddEdge(fmt.Sprintf("n%d", a), fmt.Sprintf("n%d", b))
		}
	}
	return g
}

func TestBetweennessProperties(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("scores are bounded and zero at degree 0", prop.ForAll(
		func(n int, raw []int) bool {
			g := randomGraph(n, raw)
			scores, _ := Betweenness(g, Options{})
			upper := float64((n-1)*(n-2)) / 2
			for v, s := range scores {
				if s < 0 || s > upper+1e-9 {
					return false
				}
				if g.Degree(v) == 0 && s != 0 {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 14),
		gen.SliceOf(gen.IntRange(0, 195)),
	))

	properties.Property("representative has the highest score in its community", prop.ForAll(
		func(n int, raw []int) bool {
			g := randomGraph(n, raw)
			res, err := community.Detect(g, community.Options{})
			if err != nil {
				return false
			}
			scores, _ := Betweenness(g, Options{})
			Representatives(g, res, scores)
			for _, c := range res.Communities {
				rep := scores[c.Representative]
				for _, m := range c.Members {
					if scores[m] > rep {
						return false
					}
				}
			}
			return true
		},
		gen.IntRange(1, 14),
		gen.SliceOf(gen.IntRange(0, 195)),
	))

	properties.TestingRun(t)
}
