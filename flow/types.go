package flow

import (
	"fmt"
	"math"
)

// ErrSourceNotFound is returned when the specified source vertex is missing.
var ErrSourceNotFound = fmt.Errorf("flow: %w", errSourceNotFound)
var errSourceNotFound = fmt.Errorf("source vertex not found")

// ErrSinkNotFound is returned when the specified sink vertex is missing.
var ErrSinkNotFound = fmt.Errorf("flow: %w", errSinkNotFound)
var errSinkNotFound = fmt.Errorf("sink vertex not found")

// EdgeError is returned when an arc has a negative capacity.
type EdgeError struct {
	From, To int
	Cap      float64
}

func (e EdgeError) Error() string {
	return fmt.Sprintf("flow: negative capacity on arc %d→%d: %g", e.From, e.To, e.Cap)
}

// Infinity is the capacity used for arcs that must never be cut.
var Infinity = math.Inf(1)

// Algorithm names a max-flow routine for MaxFlow.
type Algorithm int

const (
	// AlgDinic selects Dinic (the default).
	AlgDinic Algorithm = iota
	// AlgEdmondsKarp selects Edmonds-Karp.
	AlgEdmondsKarp
)

func (a Algorithm) String() string {
	switch a {
	case AlgDinic:
		return "dinic"
	case AlgEdmondsKarp:
		return "edmonds-karp"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// ParseAlgorithm maps an Algorithm name back to its value.
func ParseAlgorithm(name string) (Algorithm, error) {
	for _, a := range []Algorithm{AlgDinic, AlgEdmondsKarp} {
		if a.String() == name {
			return a, nil
		}
	}

	return 0, fmt.Errorf("flow: unknown algorithm %q", name)
}

// FlowOptions configures all max-flow algorithms.
//   - Epsilon: treat residual capacities ≤ Epsilon as zero (default 1e-9).
//   - Verbose: if true, logs each augmentation at trace level.
//   - LevelRebuildInterval: for Dinic, rebuild level graph every N augmentations.
//   - Algorithm: routine run by MaxFlow.
type FlowOptions struct {
	Epsilon              float64
	Verbose              bool
	LevelRebuildInterval int
	Algorithm            Algorithm
}

// MaxFlow runs the algorithm selected by opts.Algorithm.
func MaxFlow(nw *Network, source, sink int, opts FlowOptions) (float64, error) {
	if opts.Algorithm == AlgEdmondsKarp {
		return EdmondsKarp(nw, source, sink, opts)
	}

	return Dinic(nw, source, sink, opts)
}

// DefaultOptions returns FlowOptions with Epsilon = 1e-9 and everything else off.
func DefaultOptions() FlowOptions {
	return FlowOptions{Epsilon: 1e-9}
}

func (o *FlowOptions) normalize() {
	if o.Epsilon <= 0 {
		o.Epsilon = 1e-9
	}
}

// Network is a directed capacitated graph stored as an arc arena.
//
// Vertices are dense indices 0..n-1. Each call to AddArc appends a forward arc
// and its reverse; arc IDs are stable for the lifetime of the Network and the
// reverse of arc a is always a^1. Capacities can be patched in place with
// SetCapacity, so an oracle keeps one Network and only refreshes capacities
// between LP solves.
type Network struct {
	adj  [][]int   // adj[v] = IDs of arcs leaving v
	head []int     // head[a] = target vertex of arc a
	orig []float64 // configured capacities
	res  []float64 // residual capacities of the last flow computation
	sym  []bool    // sym[a/2] marks pairs added by AddEdge
}

// NewNetwork allocates a network with n isolated vertices.
func NewNetwork(n int) *Network {
	return &Network{adj: make([][]int, n)}
}

// AddVertex appends a vertex and returns its index.
func (nw *Network) AddVertex() int {
	nw.adj = append(nw.adj, nil)

	return len(nw.adj) - 1
}

// NumVertices returns the number of vertices.
func (nw *Network) NumVertices() int { return len(nw.adj) }

// NumArcs returns the number of forward arcs (reverse arcs not counted).
func (nw *Network) NumArcs() int { return len(nw.head) / 2 }

// AddArc adds a directed arc from→to with capacity c and returns its ID.
// It panics if either endpoint is out of range.
func (nw *Network) AddArc(from, to int, c float64) int {
	return nw.addPair(from, to, c, 0, false)
}

// AddEdge adds an undirected edge of capacity c, modeled as a pair of opposite
// arcs sharing residual capacity, and returns the ID of the from→to arc.
func (nw *Network) AddEdge(u, v int, c float64) int {
	return nw.addPair(u, v, c, c, true)
}

func (nw *Network) addPair(from, to int, c, back float64, sym bool) int {
	if from < 0 || from >= len(nw.adj) || to < 0 || to >= len(nw.adj) {
		panic(fmt.Sprintf("flow: arc %d→%d out of range [0,%d)", from, to, len(nw.adj)))
	}
	id := len(nw.head)
	nw.head = append(nw.head, to, from)
	nw.orig = append(nw.orig, c, back)
	nw.res = append(nw.res, c, back)
	nw.sym = append(nw.sym, sym)
	nw.adj[from] = append(nw.adj[from], id)
	nw.adj[to] = append(nw.adj[to], id^1)

	return id
}

// SetCapacity overwrites the capacity of arc id. For an edge added with
// AddEdge, both directions are updated.
func (nw *Network) SetCapacity(id int, c float64) {
	nw.orig[id] = c
	if nw.sym[id/2] {
		nw.orig[id^1] = c
	}
}

// Capacity returns the configured capacity of arc id.
func (nw *Network) Capacity(id int) float64 { return nw.orig[id] }

// Flow returns the net flow on arc id after the last computation.
func (nw *Network) Flow(id int) float64 { return nw.orig[id] - nw.res[id] }

// Endpoints returns the tail and head of arc id.
func (nw *Network) Endpoints(id int) (from, to int) { return nw.head[id^1], nw.head[id] }

// Reset discards any flow so residual capacities equal configured capacities.
func (nw *Network) Reset() { copy(nw.res, nw.orig) }

// prepare validates endpoints and capacities, then clears the previous flow.
func (nw *Network) prepare(source, sink int, opts *FlowOptions) error {
	opts.normalize()
	if source < 0 || source >= len(nw.adj) {
		return ErrSourceNotFound
	}
	if sink < 0 || sink >= len(nw.adj) {
		return ErrSinkNotFound
	}
	for a, c := range nw.orig {
		if c < -opts.Epsilon {
			from, to := nw.Endpoints(a)
			return EdgeError{From: from, To: to, Cap: c}
		}
	}
	nw.Reset()

	return nil
}

// augment pushes f along arc a and credits its reverse.
func (nw *Network) augment(a int, f float64) {
	nw.res[a] -= f
	nw.res[a^1] += f
}
