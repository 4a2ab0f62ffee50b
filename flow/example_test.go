package flow_test

import (
	"fmt"

	"github.com/katalvlaran/iround/flow"
)

// ExampleDinic shows Dinic on a two‐path network and the resulting cut.
//
//	s→a(3)→t(2)
//	s→b(2)→t(3)
func ExampleDinic() {
	const s, a, b, t = 0, 1, 2, 3
	nw := flow.NewNetwork(4)
	nw.AddArc(s, a, 3)
	nw.AddArc(a, t, 2)
	nw.AddArc(s, b, 2)
	nw.AddArc(b, t, 3)

	maxFlow, _ := flow.Dinic(nw, s, t, flow.DefaultOptions())
	side, _ := flow.MinCut(nw, s, flow.DefaultOptions())
	fmt.Println(maxFlow, side)
	// Output:
	// 4 [0 1]
}

// ExampleNetwork_SetCapacity re-solves after patching a capacity in place.
func ExampleNetwork_SetCapacity() {
	nw := flow.NewNetwork(2)
	arc := nw.AddEdge(0, 1, 0.5)

	f1, _ := flow.EdmondsKarp(nw, 1, 0, flow.DefaultOptions())
	nw.SetCapacity(arc, 1.25)
	f2, _ := flow.EdmondsKarp(nw, 1, 0, flow.DefaultOptions())
	fmt.Println(f1, f2)
	// Output:
	// 0.5 1.25
}
