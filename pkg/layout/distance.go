package layout

import "github.com/isplab/citegraph/pkg/graph"

// Unreachable marks a pair of nodes in different components.
const Unreachable = -1

// Distances returns the all-pairs shortest-path hop counts of g, with
// Unreachable for pairs in different components.
func Distances(g *graph.Graph) [][]int {
	n := g.NodeCount()
	dist := make([][]int, n)
	queue := make([]int, 0, n)
	for s := 0; s < n; s++ {
		row := make([]int, n)
		for i := range row {
			row[i] = Unreachable
		}
		row[s] = 0
		queue = append(queue[:0], s)
		for head := 0; head < len(queue); head++ {
			v := queue[head]
			for _, w := range g.Neighbors(v) {
				if row[w] == Unreachable {
					row[w] = row[v] + 1
					queue = append(queue, w)
				}
			}
		}
		dist[s] = row
	}
	return dist
}

// longest returns the largest finite distance.
func longest(dist [][]int) int {
	far := 0
	for _, row := range dist {
		for _, d := range row {
			far = max(far, d)
		}
	}
	return far
}
