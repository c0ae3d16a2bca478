package community

import "github.com/isplab/citegraph/pkg/graph"

// Modularity returns the Newman modularity of the partition given by
// membership (node index -> community id). A graph without edges scores 0.
func Modularity(g *graph.Graph, membership []int) float64 {
	return modularity(g, membership, 1)
}

// Singletons returns the partition that puts every node in its own community.
func Singletons(g *graph.Graph) []int {
	m := make([]int, g.NodeCount())
	for i := range m {
		m[i] = i
	}
	return m
}

func modularity(g *graph.Graph, membership []int, resolution float64) float64 {
	m := float64(g.EdgeCount())
	if m == 0 {
		return 0
	}

	// Sum in first-seen order so the result does not depend on map iteration.
	dense := make(map[int]int)
	local := make([]int, len(membership))
	for i, c := range membership {
		id, ok := dense[c]
		if !ok {
			id = len(dense)
			dense[c] = id
		}
		local[i] = id
	}

	inner := make([]float64, len(dense))
	tot := make([]float64, len(dense))
	for i := 0; i < g.NodeCount(); i++ {
		tot[local[i]] += float64(g.Degree(i))
	}
	for _, e := range g.Edges() {
		if local[e.From] == local[e.To] {
			inner[local[e.From]]++
		}
	}

	var q float64
	for c := range tot {
		share := tot[c] / (2 * m)
		q += inner[c]/m - resolution*share*share
	}
	return q
}
