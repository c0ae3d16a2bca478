package community_test

import (
	"fmt"

	"github.com/isplab/citegraph/pkg/community"
	"github.com/isplab/citegraph/pkg/graph"
)

func ExampleDetect() {
	g, _ := graph.FromFacts(graph.Facts{
		Nodes: []graph.NodeFact{{ID: "A"}, {ID: "B"}, {ID: "C"}, {ID: "D"}},
		Edges: []graph.EdgeFact{{From: "A", To: "B"}, {From: "B", To: "C"}, {From: "C", To: "D"}},
	})

	res, err := community.Detect(g, community.Options{})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	for _, c := range res.Communities {
		fmt.Println(c.ID, c.Members)
	}
	fmt.Printf("Q = %.4f\n", res.Modularity)
	// Output:
	// 0 [0 1]
	// 1 [2 3]
	// Q = 0.1667
}
