// Package prim_kruskal provides Kruskal's minimum spanning tree and the
// union-find machinery reused by instance validation and separation oracles.
//
// What
//
//   - Kruskal(graph) ([]core.Edge, float64, error): MST by ascending cost,
//     ties broken by edge creation order.
//   - DisjointSet: path-halving, union-by-rank forest over vertex IDs.
//   - IsSpanningTree(graph, ids): validates a designated tree (tree augmentation).
//   - Connected(graph, keep): connectivity of a filtered edge set
//     (support graphs of fractional LP points, degree-bounded MST pre-flight).
//
// Complexity
//
//	Kruskal: O(E log E + α(V)·E) time, O(V + E) memory.
//	IsSpanningTree, Connected: O(V + E·α(V)).
package prim_kruskal
