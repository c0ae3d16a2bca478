package centrality

import (
	"github.com/isplab/citegraph/pkg/errors"
	"github.com/isplab/citegraph/pkg/graph"
)

// Options configures Betweenness.
type Options struct {
	// Normalized scales scores by 2/((V-1)(V-2)) so they fall in [0, 1].
	Normalized bool
}

// Betweenness returns the betweenness centrality of every node, indexed by
// node index.
//
// It fails with *errors.EmptyGraphError on a graph without nodes. When the
// graph has more than one connected component the scores are still valid
// and a *errors.DisconnectedGraphWarning is returned alongside them.
func Betweenness(g *graph.Graph, opts Options) ([]float64, error) {
	n := g.NodeCount()
	if n == 0 {
		return nil, &errors.EmptyGraphError{Stage: "centrality"}
	}

	cb := make([]float64, n)
	st := newState(n)
	for s := 0; s < n; s++ {
		st.bfs(g, s)
		st.accumulate(s, cb)
	}

	// Every unordered pair was seen from both ends.
	scale := 0.5
	if opts.Normalized && n > 2 {
		scale = 1 / float64((n-1)*(n-2))
	}
	for v := range cb {
		cb[v] *= scale
	}

	if comps := len(g.Components()); comps > 1 {
		return cb, &errors.DisconnectedGraphWarning{Components: comps}
	}
	return cb, nil
}

// state holds the per-source buffers of Brandes' algorithm, reused across
// sources.
type state struct {
	stack []int
	pred  [][]int
	sigma []float64
	dist  []int
	delta []float64
	queue []int
}

func newState(n int) *state {
	return &state{
		stack: make([]int, 0, n),
		pred:  make([][]int, n),
		sigma: make([]float64, n),
		dist:  make([]int, n),
		delta: make([]float64, n),
		queue: make([]int, 0, n),
	}
}

// bfs runs the forward phase from s: shortest-path counts, predecessor
// lists, and the visit order for back-propagation.
func (st *state) bfs(g *graph.Graph, s int) {
	st.stack = st.stack[:0]
	st.queue = st.queue[:0]
	for v := range st.dist {
		st.dist[v] = -1
		st.sigma[v] = 0
		st.delta[v] = 0
		st.pred[v] = st.pred[v][:0]
	}
	st.sigma[s] = 1
	st.dist[s] = 0
	st.queue = append(st.queue, s)

	for head := 0; head < len(st.queue); head++ {
		v := st.queue[head]
		st.stack = append(st.stack, v)
		for _, w := range g.Neighbors(v) {
			if st.dist[w] < 0 {
				st.dist[w] = st.dist[v] + 1
				st.queue = append(st.queue, w)
			}
			if st.dist[w] == st.dist[v]+1 {
				st.sigma[w] += st.sigma[v]
				st.pred[w] = append(st.pred[w], v)
			}
		}
	}
}

// accumulate back-propagates pair dependencies in reverse BFS order.
func (st *state) accumulate(s int, cb []float64) {
	for i := len(st.stack) - 1; i >= 0; i-- {
		w := st.stack[i]
		for _, v := range st.pred[w] {
			st.delta[v] += (st.sigma[v] / st.sigma[w]) * (1 + st.delta[w])
		}
		if w != s {
			cb[w] += st.delta[w]
		}
	}
}
