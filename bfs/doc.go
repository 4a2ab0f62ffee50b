// Package bfs provides breadth-first search over a core.Graph,
// returning unweighted shortest-path distances, parent links, and visit order.
//
// What
//
//   - Explore vertices in non-decreasing distance (edge count) from a start vertex.
//   - Returns a BFSResult containing:
//   - Order: visit sequence
//   - Depth: map from vertex → distance (edges) from start
//   - Parent / ParentEdge: predecessor vertex and edge in the BFS tree
//   - FilterEdge pruning.
//   - Components: connected components of the subgraph accepted by a filter.
//
// Why
//
//   - Tree paths: on a spanning tree, EdgePathBetween lists the tree edges a
//     link (u,v) covers.
//   - Support connectivity: separation oracles walk the edges whose LP value
//     is positive to find cheap violated cuts before running max-flow.
//
// Determinism
//
//	Because core.Neighbors returns edges in creation order and BFS enqueues
//	neighbors in that order, the visit sequence is fully reproducible.
//
// Complexity (V = |Vertices|, E = |Edges|)
//
//   - Time:   O(V + E log d)
//   - Memory: O(V)
package bfs
