// Package core provides the thread-safe in-memory Graph that problem instances
// of iround are expressed over: networks to design, trees to augment, demand
// graphs to connect.
//
// The Graph G = (V,E) supports:
//
//   - Directed vs. undirected edges (WithDirected)
//   - Weighted vs. unweighted edges (WithWeighted); weights are float64 costs
//   - Parallel edges / multi-graphs (WithMultiEdges)
//   - Self-loops (WithLoops)
//   - Constant-time edge operations via nested maps:
//     adjacency[from][to][edgeID] = struct{}{}
//   - Monotonic Edge.ID generation ("e1", "e2", …)
//
// Deterministic iteration: Vertices() is sorted lexicographically, Edges() and
// Neighbors() follow edge creation order. Problem instances rely on this to
// number LP columns reproducibly.
//
// The graph only grows: instances are built once and then read.
//
// Core Methods:
//
//	AddVertex(id string) error                          // O(1)
//	HasVertex(id string) bool                           // O(1)
//	AddEdge(from, to string, weight float64) (string, error) // O(1)
//	HasEdge(from, to string) bool                       // O(1)
//	GetEdge(edgeID string) (*Edge, error)               // O(1)
//	Neighbors(id string) ([]*Edge, error)               // O(d log d)
//	Vertices() []string                                 // O(V log V)
//	Edges() []*Edge                                     // O(E log E)
//	Degree(id string) (int, error)                      // O(E)
//
// Errors:
//
//	ErrEmptyVertexID       – zero-length vertex ID
//	ErrVertexNotFound      – missing vertex
//	ErrEdgeNotFound        – missing edge
//	ErrBadWeight           – non-zero weight on unweighted graph
//	ErrLoopNotAllowed      – self-loop when loops disabled
//	ErrMultiEdgeNotAllowed – parallel edge when multi-edges disabled
package core
