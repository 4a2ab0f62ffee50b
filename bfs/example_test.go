package bfs_test

import (
	"fmt"

	"github.com/katalvlaran/iround/bfs"
	"github.com/katalvlaran/iround/core"
)

// ExampleBFSResult_EdgePathBetween finds the tree edges a link between two leaves covers.
func ExampleBFSResult_EdgePathBetween() {
	g := core.NewGraph()
	_, _ = g.AddEdge("r", "a", 0)
	_, _ = g.AddEdge("r", "b", 0)
	_, _ = g.AddEdge("b", "c", 0)

	res, _ := bfs.BFS(g, "r")
	covered, _ := res.EdgePathBetween("a", "c")
	fmt.Println("order:", res.Order)
	fmt.Println("link a-c covers:", covered)
	// Output:
	// order: [r a b c]
	// link a-c covers: [e1 e2 e3]
}
