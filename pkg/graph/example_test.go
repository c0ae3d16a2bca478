package graph_test

import (
	"fmt"
	"os"

	"github.com/isplab/citegraph/pkg/graph"
)

func ExampleFromFacts() {
	facts := graph.Facts{
		Nodes: []graph.NodeFact{
			{ID: "a", Label: "[1]"},
			{ID: "b", Label: "[2]"},
		},
		Edges: []graph.EdgeFact{
			{From: "a", To: "b"},
			{From: "a", To: "unknown"}, // dropped, not an error
		},
	}

	g, err := graph.FromFacts(facts)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Println("nodes:", g.NodeCount())
	fmt.Println("edges:", g.EdgeCount())
	fmt.Println("dropped:", g.Dropped())
	// Output:
	// nodes: 2
	// edges: 1
	// dropped: 1
}

func ExampleCleanTitle() {
	fmt.Println(graph.CleanTitle("Location-Privacy: A Survey"))
	// Output:
	// location privacy a survey
}

func ExampleWriteFacts() {
	g := graph.New()
	_ = g.AddNode("a", "[1]")
	_ = g.AddNode("b", "[2]")
	_ = g.AddEdge("a", "b")

	_ = graph.WriteFacts(graph.ToFacts(g), os.Stdout)
	// Output:
	// {
	//   "nodes": [
	//     {
	//       "id": "a",
	//       "label": "[1]"
	//     },
	//     {
	//       "id": "b",
	//       "label": "[2]"
	//     }
	//   ],
	//   "edges": [
	//     {
	//       "from": "a",
	//       "to": "b"
	//     }
	//   ]
	// }
}
