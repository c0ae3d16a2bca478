package graph

import (
	"fmt"
)

// =============================================================================
// Facts - Pipeline Input
// =============================================================================

// Facts is the input contract of the pipeline: admitted nodes with their
// captions and admitted edges, in the order the upstream collaborators
// produced them.
type Facts struct {
	Nodes []NodeFact `json:"nodes"`
	Edges []EdgeFact `json:"edges"`
}

// NodeFact is an admitted node and its caption.
type NodeFact struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n NodeFact) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// EdgeFact is an admitted citation between two node identities.
type EdgeFact struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// =============================================================================
// Facts ↔ Graph Conversion
// =============================================================================

// FromFacts builds a graph from facts.
// Nodes are added first, in order, then edges. Missing labels default to the id.
// Structural errors (invalid node id, self-loop) abort the build.
func FromFacts(f Facts) (*Graph, error) {
	g := New()
	for _, n := range f.Nodes {
		if err := g.AddNode(n.ID, n.DisplayLabel()); err != nil {
			return nil, fmt.Errorf("add node %q: %w", n.ID, err)
		}
	}
	for _, e := range f.Edges {
		if err := g.AddEdge(e.From, e.To); err != nil {
			return nil, fmt.Errorf("add edge %s→%s: %w", e.From, e.To, err)
		}
	}
	return g, nil
}

// ToFacts converts a graph back to facts in insertion order.
// Dropped edges are not part of the graph and do not reappear.
func ToFacts(g *Graph) Facts {
	out := Facts{
		Nodes: make([]NodeFact, g.NodeCount()),
		Edges: make([]EdgeFact, g.EdgeCount()),
	}
	for i, n := range g.nodes {
		out.Nodes[i] = NodeFact{ID: n.ID, Label: n.Label}
	}
	for i, e := range g.edges {
		out.Edges[i] = EdgeFact{From: g.nodes[e.From].ID, To: g.nodes[e.To].ID}
	}
	return out
}
