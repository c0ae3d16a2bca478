package community

import (
	"slices"

	"github.com/isplab/citegraph/pkg/errors"
	"github.com/isplab/citegraph/pkg/graph"
)

// Detect partitions g into communities and writes each node's community id
// into its Community annotation.
//
// It fails with *errors.EmptyGraphError when g has no nodes. A graph without
// edges yields one singleton community per node.
func Detect(g *graph.Graph, opts Options) (*Result, error) {
	if g.NodeCount() == 0 {
		return nil, &errors.EmptyGraphError{Stage: "community"}
	}
	opts = opts.withDefaults()

	membership := Singletons(g)
	levels := 0

	if g.EdgeCount() > 0 {
		twoM := 2 * float64(g.EdgeCount())
		lv := baseLevel(g)
		for levels < opts.MaxLevels {
			comm, moved := lv.moveNodes(opts, twoM)
			if !moved {
				break
			}
			levels++

			var up []int
			lv, up = lv.aggregate(comm)
			for v := range membership {
				membership[v] = up[membership[v]]
			}
		}
	}

	membership = canonical(membership)
	res := &Result{
		Membership: membership,
		Modularity: Modularity(g, membership),
		Levels:     levels,
	}
	for v, c := range membership {
		if c == len(res.Communities) {
			res.Communities = append(res.Communities, Community{ID: c, Representative: -1})
		}
		res.Communities[c].Members = append(res.Communities[c].Members, v)
		g.Node(v).Community = c
	}
	return res, nil
}

// canonical renumbers community ids densely in order of their smallest member.
func canonical(membership []int) []int {
	ids := make(map[int]int)
	out := make([]int, len(membership))
	for v, c := range membership {
		id, ok := ids[c]
		if !ok {
			id = len(ids)
			ids[c] = id
		}
		out[v] = id
	}
	return out
}

// =============================================================================
// Level Graph
// =============================================================================

type arc struct {
	to int
	w  float64
}

// level is the weighted graph one aggregation step works on. Level 0 is the
// input graph with unit weights; each later level has one node per
// community of the level below.
type level struct {
	adj  [][]arc   // no self arcs; sorted by target
	loop []float64 // self-loop weight
	k    []float64 // strength, self-loop counted twice
}

func baseLevel(g *graph.Graph) *level {
	n := g.NodeCount()
	lv := &level{
		adj:  make([][]arc, n),
		loop: make([]float64, n),
		k:    make([]float64, n),
	}
	for i := 0; i < n; i++ {
		nb := slices.Clone(g.Neighbors(i))
		slices.Sort(nb)
		lv.adj[i] = make([]arc, len(nb))
		for j, w := range nb {
			lv.adj[i][j] = arc{to: w, w: 1}
		}
		lv.k[i] = float64(len(nb))
	}
	return lv
}

// moveNodes runs the local moving phase. It returns the community of every
// level node and whether any node changed community.
func (lv *level) moveNodes(opts Options, twoM float64) ([]int, bool) {
	n := len(lv.adj)
	comm := make([]int, n)
	tot := make([]float64, n)
	for i := range comm {
		comm[i] = i
		tot[i] = lv.k[i]
	}

	links := make([]float64, n)
	seen := make([]bool, n)
	var cands []int
	moved := false

	for sweep := 0; sweep < opts.MaxSweeps; sweep++ {
		changed := false
		for i := 0; i < n; i++ {
			ci, ki := comm[i], lv.k[i]

			cands = append(cands[:0], ci)
			seen[ci] = true
			for _, a := range lv.adj[i] {
				c := comm[a.to]
				if !seen[c] {
					seen[c] = true
					cands = append(cands, c)
				}
				links[c] += a.w
			}
			slices.Sort(cands)

			tot[ci] -= ki
			gain := func(c int) float64 {
				return links[c] - opts.Resolution*tot[c]*ki/twoM
			}
			stay := gain(ci)
			best, bestGain := ci, stay
			for _, c := range cands {
				if g := gain(c); g > bestGain || (g == bestGain && c < best) {
					best, bestGain = c, g
				}
			}
			if best != ci && bestGain-stay <= opts.MinGain {
				best = ci
			}
			tot[best] += ki

			if best != ci {
				comm[i] = best
				changed = true
			}

			for _, c := range cands {
				links[c] = 0
				seen[c] = false
			}
		}
		if !changed {
			break
		}
		moved = true
	}
	return comm, moved
}

// aggregate collapses every community of lv into one node. Communities are
// numbered by their first member. It returns the new level and the mapping
// from lv nodes to new nodes.
func (lv *level) aggregate(comm []int) (*level, []int) {
	n := len(lv.adj)
	renum := make([]int, n)
	for i := range renum {
		renum[i] = -1
	}
	up := make([]int, n)
	next := 0
	for i := 0; i < n; i++ {
		c := comm[i]
		if renum[c] < 0 {
			renum[c] = next
			next++
		}
		up[i] = renum[c]
	}

	out := &level{
		adj:  make([][]arc, next),
		loop: make([]float64, next),
		k:    make([]float64, next),
	}
	between := make([]map[int]float64, next)
	for i := 0; i < n; i++ {
		ci := up[i]
		out.k[ci] += lv.k[i]
		out.loop[ci] += lv.loop[i]
		for _, a := range lv.adj[i] {
			if a.to < i {
				continue
			}
			cj := up[a.to]
			if ci == cj {
				out.loop[ci] += a.w
				continue
			}
			addArc(between, ci, cj, a.w)
			addArc(between, cj, ci, a.w)
		}
	}
	for c, m := range between {
		for to, w := range m {
			out.adj[c] = append(out.adj[c], arc{to: to, w: w})
		}
		slices.SortFunc(out.adj[c], func(a, b arc) int { return a.to - b.to })
	}
	return out, up
}

func addArc(between []map[int]float64, from, to int, w float64) {
	if between[from] == nil {
		between[from] = make(map[int]float64)
	}
	between[from][to] += w
}
