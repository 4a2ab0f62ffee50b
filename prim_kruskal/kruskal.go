// Package prim_kruskal provides an implementation of Kruskal’s Minimum Spanning Tree algorithm.
// It assumes an undirected *core.Graph and produces a slice of edges forming the MST.
package prim_kruskal

import (
	"sort"

	"github.com/katalvlaran/iround/core"
)

// Kruskal computes the Minimum Spanning Tree (MST) of an undirected graph,
// reading Edge.Weight as the cost. Unweighted graphs yield any spanning tree.
//
// Error Conditions:
//   - ErrInvalidGraph  : if graph is nil or graph.Directed() == true.
//   - ErrDisconnected  : if |V| == 0 or |V| > 1 but graph is not fully connected.
//
// Steps:
//  1. Validate the graph and handle |V| ≤ 1.
//  2. Collect all edges via graph.Edges(), skip self-loops.
//  3. Sort edges by ascending Weight (stable, so ties keep creation order).
//  4. Loop over sorted edges, joining disjoint endpoints until |V|-1 edges are taken.
//
// Complexity: O(E log E + α(V)·E). Memory: O(E + V).
func Kruskal(graph *core.Graph) ([]core.Edge, float64, error) {
	if graph == nil || graph.Directed() {
		return nil, 0, ErrInvalidGraph
	}

	vertices := graph.Vertices()
	if len(vertices) == 0 {
		return nil, 0, ErrDisconnected
	}
	if len(vertices) == 1 {
		return []core.Edge{}, 0, nil
	}

	allEdges := graph.Edges()
	edges := make([]*core.Edge, 0, len(allEdges))
	for _, e := range allEdges {
		if e.From == e.To {
			continue
		}
		edges = append(edges, e)
	}
	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].Weight < edges[j].Weight
	})

	dsu := NewDisjointSet(vertices)
	var (
		mst         []core.Edge
		totalWeight float64
	)
	for _, e := range edges {
		if !dsu.Union(e.From, e.To) {
			continue
		}
		mst = append(mst, *e)
		totalWeight += e.Weight
		if len(mst) == len(vertices)-1 {
			break
		}
	}

	if len(mst) < len(vertices)-1 {
		return nil, 0, ErrDisconnected
	}

	return mst, totalWeight, nil
}
