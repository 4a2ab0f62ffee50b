package prim_kruskal

import (
	"sort"

	"github.com/katalvlaran/iround/core"
)

// IsSpanningTree checks that the edges named by edgeIDs form a spanning tree of
// graph: exactly |V|-1 distinct existing edges, no cycle, all vertices joined.
// Returns ErrNotSpanningTree (or core.ErrEdgeNotFound) when they do not.
func IsSpanningTree(graph *core.Graph, edgeIDs []string) error {
	if graph == nil || graph.Directed() {
		return ErrInvalidGraph
	}
	vertices := graph.Vertices()
	if len(edgeIDs) != len(vertices)-1 {
		return ErrNotSpanningTree
	}
	dsu := NewDisjointSet(vertices)
	for _, id := range edgeIDs {
		e, err := graph.GetEdge(id)
		if err != nil {
			return err
		}
		if !dsu.Union(e.From, e.To) {
			return ErrNotSpanningTree
		}
	}

	return nil
}

// Connected reports whether every vertex of graph is reachable from every other
// using only the edges accepted by keep (nil keeps all). An empty graph is connected.
func Connected(graph *core.Graph, keep func(e *core.Edge) bool) bool {
	dsu := NewDisjointSet(graph.Vertices())
	for _, e := range graph.Edges() {
		if keep == nil || keep(e) {
			dsu.Union(e.From, e.To)
		}
	}

	return dsu.Sets() <= 1
}

func sortStrings(s []string) { sort.Strings(s) }

func sortGroups(g [][]string) {
	sort.Slice(g, func(i, j int) bool { return g[i][0] < g[j][0] })
}
