// Package flow implements maximum-flow and minimum-cut routines over an
// arena-indexed capacitated Network. It is the max-flow backend of the
// separation oracles: an oracle builds its auxiliary Network once, then patches
// arc capacities from fresh LP values before every feasibility check.
//
// The key algorithms offered are:
//
//   - Edmonds–Karp
//
//   - Method: breadth-first search for shortest (fewest-arc) augmenting paths.
//
//   - Time:   O(V · E²).
//
//   - Dinic
//
//   - Method: level graph construction + blocking-flow via DFS.
//
//   - Time:   O(V² · E); O(E · √V) on unit-capacity networks.
//
// MaxFlow dispatches on FlowOptions.Algorithm. Both leave the residual state in the Network; MinCut then returns the source
// side of a minimum cut, which is the violating set of an oracle.
//
// # Network
//
// Vertices are dense indices. AddArc adds a directed arc, AddEdge an undirected
// one (two opposite arcs sharing capacity). Arc IDs never change; the reverse of
// arc a is a^1. SetCapacity patches a capacity in place, Reset drops the flow.
// FromGraph builds a Network from a *core.Graph and returns a GraphMapping
// between vertex/edge IDs and indices.
//
// # Options
//
//	type FlowOptions struct {
//	    Epsilon              float64 // residual capacities ≤ Epsilon count as zero
//	    Verbose              bool    // log each augmentation at trace level
//	    LevelRebuildInterval int     // Dinic only: rebuild level graph every N pushes
//	    Algorithm            Algorithm // routine run by MaxFlow (AlgDinic, AlgEdmondsKarp)
//	}
//
// Errors: ErrSourceNotFound, ErrSinkNotFound, EdgeError (negative capacity).
package flow
