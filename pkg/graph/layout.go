package graph

import (
	"encoding/json"
	"fmt"
	"os"
)

// =============================================================================
// Layout - Annotated Graph Serialization
// =============================================================================

// Layout is the serialized form of a fully annotated graph: every node with
// its community, centrality, representative flag and position, plus the
// surviving edges. It is the payload of the "json" output format and of the
// pipeline's layout cache.
type Layout struct {
	Scale      float64      `json:"scale"`
	Modularity float64      `json:"modularity"`
	Stress     float64      `json:"stress"`
	Nodes      []LayoutNode `json:"nodes"`
	Edges      []EdgeFact   `json:"edges"`
}

// LayoutNode is a positioned, annotated node.
type LayoutNode struct {
	ID             string  `json:"id"`
	Label          string  `json:"label,omitempty"`
	Community      int     `json:"community"`
	Centrality     float64 `json:"centrality"`
	Representative bool    `json:"representative,omitempty"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
}

// ExportLayout captures the annotations of g in insertion order.
func ExportLayout(g *Graph) Layout {
	out := Layout{
		Nodes: make([]LayoutNode, g.NodeCount()),
		Edges: make([]EdgeFact, g.EdgeCount()),
	}
	for i, n := range g.nodes {
		out.Nodes[i] = LayoutNode{
			ID:             n.ID,
			Label:          n.Label,
			Community:      n.Community,
			Centrality:     n.Centrality,
			Representative: n.Representative,
			X:              n.Pos.X,
			Y:              n.Pos.Y,
		}
	}
	for i, e := range g.edges {
		out.Edges[i] = EdgeFact{From: g.nodes[e.From].ID, To: g.nodes[e.To].ID}
	}
	return out
}

// ApplyLayout writes the annotations of l onto g.
// The layout must describe exactly the nodes of g, in the same order.
func (g *Graph) ApplyLayout(l Layout) error {
	if len(l.Nodes) != len(g.nodes) {
		return fmt.Errorf("layout has %d nodes, graph has %d", len(l.Nodes), len(g.nodes))
	}
	for i, ln := range l.Nodes {
		n := g.nodes[i]
		if n.ID != ln.ID {
			return fmt.Errorf("layout node %d is %q, graph node is %q", i, ln.ID, n.ID)
		}
		n.Community = ln.Community
		n.Centrality = ln.Centrality
		n.Representative = ln.Representative
		n.Pos = Position{X: ln.X, Y: ln.Y}
	}
	return nil
}

// ToGraph rebuilds an annotated graph from a layout.
func (l Layout) ToGraph() (*Graph, error) {
	f := Facts{Nodes: make([]NodeFact, len(l.Nodes)), Edges: l.Edges}
	for i, n := range l.Nodes {
		f.Nodes[i] = NodeFact{ID: n.ID, Label: n.Label}
	}
	g, err := FromFacts(f)
	if err != nil {
		return nil, err
	}
	if err := g.ApplyLayout(l); err != nil {
		return nil, err
	}
	return g, nil
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
