package graph

import (
	"slices"

	"github.com/isplab/citegraph/pkg/errors"
)

// Position is a 2-D coordinate assigned by the layout stage.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a vertex of the citation graph.
//
// ID and Label are set at construction. The remaining fields are annotations
// written in place by later stages (community detection, centrality ranking,
// layout) and read by the emitters.
type Node struct {
	ID    string // Unique identity (article title or sanitized token)
	Label string // Caption used for rendering

	Community      int
	Centrality     float64
	Representative bool
	Pos            Position
}

// Edge is an undirected edge between two node indices.
// From and To keep the endpoint order in which the edge was supplied.
type Edge struct {
	From int
	To   int
}

// Graph is an undirected simple graph with dense integer node indices.
//
// The zero value is not usable - use New.
type Graph struct {
	nodes   []*Node
	index   map[string]int
	adj     [][]int
	edges   []Edge
	pairs   map[[2]int]struct{}
	dropped int
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		index: make(map[string]int),
		pairs: make(map[[2]int]struct{}),
	}
}

// AddNode adds a node with the given identity and caption.
// A node whose id is already present is ignored, keeping the first label.
// Returns an INVALID_INPUT error if the id is empty or contains control characters.
func (g *Graph) AddNode(id, label string) error {
	if _, ok := g.index[id]; ok {
		return nil
	}
	if err := errors.ValidateNodeID(id); err != nil {
		return err
	}
	g.index[id] = len(g.nodes)
	g.nodes = append(g.nodes, &Node{ID: id, Label: label})
	g.adj = append(g.adj, nil)
	return nil
}

// AddEdge adds an undirected edge between two existing nodes.
//
// Self-loops and pairs with an empty endpoint fail with *errors.InvalidEdgeError.
// If either endpoint is not a node the edge is dropped without error and
// counted in Dropped. Duplicate unordered pairs are ignored.
func (g *Graph) AddEdge(a, b string) error {
	if a == "" || b == "" {
		return &errors.InvalidEdgeError{From: a, To: b, Reason: "empty endpoint"}
	}
	if a == b {
		return &errors.InvalidEdgeError{From: a, To: b, Reason: "self-loop"}
	}
	ia, okA := g.index[a]
	ib, okB := g.index[b]
	if !okA || !okB {
		g.dropped++
		return nil
	}
	key := pairKey(ia, ib)
	if _, dup := g.pairs[key]; dup {
		return nil
	}
	g.pairs[key] = struct{}{}
	g.edges = append(g.edges, Edge{From: ia, To: ib})
	g.adj[ia] = append(g.adj[ia], ib)
	g.adj[ib] = append(g.adj[ib], ia)
	return nil
}

func pairKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Dropped returns how many edges were discarded because an endpoint was unknown.
func (g *Graph) Dropped() int { return g.dropped }

// Index returns the dense index of the node with the given id.
func (g *Graph) Index(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// Node returns the node at index i. It panics if i is out of range.
func (g *Graph) Node(i int) *Node { return g.nodes[i] }

// NodeByID returns the node with the given id.
func (g *Graph) NodeByID(id string) (*Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return g.nodes[i], true
}

// Nodes returns all nodes in insertion order.
// The returned slice is a copy; the nodes themselves are shared.
func (g *Graph) Nodes() []*Node { return slices.Clone(g.nodes) }

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// Neighbors returns the adjacency list of node i in edge insertion order.
// The returned slice must not be modified.
func (g *Graph) Neighbors(i int) []int { return g.adj[i] }

// Degree returns the number of edges incident to node i.
func (g *Graph) Degree(i int) int { return len(g.adj[i]) }

// HasEdge reports whether nodes i and j are adjacent.
func (g *Graph) HasEdge(i, j int) bool {
	_, ok := g.pairs[pairKey(i, j)]
	return ok
}

// Components returns the connected components as lists of node indices.
// Components are ordered by their smallest index; members are in BFS order
// starting from that index.
func (g *Graph) Components() [][]int {
	seen := make([]bool, len(g.nodes))
	var comps [][]int
	for start := range g.nodes {
		if seen[start] {
			continue
		}
		seen[start] = true
		comp := []int{start}
		for q := 0; q < len(comp); q++ {
			for _, w := range g.adj[comp[q]] {
				if !seen[w] {
					seen[w] = true
					comp = append(comp, w)
				}
			}
		}
		comps = append(comps, comp)
	}
	return comps
}

// CommunitySizes counts nodes per community annotation.
func (g *Graph) CommunitySizes() map[int]int {
	sizes := make(map[int]int)
	for _, n := range g.nodes {
		sizes[n.Community]++
	}
	return sizes
}
