package layout_test

import (
	"fmt"

	"github.com/isplab/citegraph/pkg/graph"
	"github.com/isplab/citegraph/pkg/layout"
)

func ExampleKamadaKawai() {
	g := graph.New()
	_ = g.AddNode("a", "[1]")
	_ = g.AddNode("b", "[2]")
	_ = g.AddEdge("a", "b")

	res, err := layout.KamadaKawai(g, layout.Options{Scale: 10})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	for i, p := range res.Positions {
		fmt.Printf("%s x=%.2f\n", g.Node(i).ID, p.X)
	}
	// Output:
	// a x=10.00
	// b x=-10.00
}
