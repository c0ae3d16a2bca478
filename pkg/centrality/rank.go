package centrality

import (
	"slices"

	"github.com/isplab/citegraph/pkg/community"
	"github.com/isplab/citegraph/pkg/graph"
)

// Rank returns members sorted by ascending score. The sort is stable, so
// members with equal scores keep their relative order; the last element
// is the representative.
func Rank(members []int, scores []float64) []int {
	ranked := slices.Clone(members)
	slices.SortStableFunc(ranked, func(a, b int) int {
		switch {
		case scores[a] < scores[b]:
			return -1
		case scores[a] > scores[b]:
			return 1
		}
		return 0
	})
	return ranked
}

// Representatives picks the representative of every community in res and
// annotates g: each node gets its score in Centrality, and the
// representative of each community is flagged.
func Representatives(g *graph.Graph, res *community.Result, scores []float64) {
	for v := 0; v < g.NodeCount(); v++ {
		n := g.Node(v)
		n.Centrality = scores[v]
		n.Representative = false
	}
	for i := range res.Communities {
		c := &res.Communities[i]
		if len(c.Members) == 0 {
			c.Representative = -1
			continue
		}
		ranked := Rank(c.Members, scores)
		c.Representative = ranked[len(ranked)-1]
		g.Node(c.Representative).Representative = true
	}
}
