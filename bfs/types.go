package bfs

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/iround/core"
)

// Sentinel errors for BFS execution.
var (
	// ErrStartVertexNotFound is returned when the start ID is absent.
	ErrStartVertexNotFound = errors.New("bfs: start vertex not found")

	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("bfs: graph is nil")
)

// Option configures BFS behavior via functional arguments.
type Option func(*BFSOptions)

// BFSOptions holds parameters to customize BFS execution.
type BFSOptions struct {
	// FilterEdge can skip edges by returning false.
	// Called for each edge leaving the current vertex.
	FilterEdge func(e *core.Edge) bool
}

// DefaultOptions returns a BFSOptions that follows every edge.
func DefaultOptions() BFSOptions {
	return BFSOptions{
		FilterEdge: func(*core.Edge) bool { return true },
	}
}

// WithFilterEdge skips edges when fn returns false. Oracles use it to walk
// only the support of an LP solution.
func WithFilterEdge(fn func(e *core.Edge) bool) Option {
	return func(o *BFSOptions) {
		if fn != nil {
			o.FilterEdge = fn
		}
	}
}

// BFSResult holds the outcome of a BFS traversal:
//   - Order: vertices visited, in visit sequence.
//   - Depth: map from vertex ID to its distance (in edges) from the start.
//   - Parent: map from vertex ID to its predecessor in the BFS tree.
//   - ParentEdge: map from vertex ID to the edge ID used to reach it.
type BFSResult struct {
	Order      []string
	Depth      map[string]int
	Parent     map[string]string
	ParentEdge map[string]string
}

// Reached reports whether id was visited.
func (r *BFSResult) Reached(id string) bool {
	_, ok := r.Depth[id]

	return ok
}

// EdgePathBetween returns the IDs of the BFS-tree edges on the unique tree path
// between u and v. When the searched graph is itself a tree this is the tree
// path; tree augmentation uses it to decide which tree edges a link covers.
func (r *BFSResult) EdgePathBetween(u, v string) ([]string, error) {
	if !r.Reached(u) {
		return nil, fmt.Errorf("bfs: no path to %q", u)
	}
	if !r.Reached(v) {
		return nil, fmt.Errorf("bfs: no path to %q", v)
	}
	var left, right []string
	for u != v {
		// Climb from the deeper endpoint until both meet at their common ancestor.
		if r.Depth[u] >= r.Depth[v] {
			left = append(left, r.ParentEdge[u])
			u = r.Parent[u]
		} else {
			right = append(right, r.ParentEdge[v])
			v = r.Parent[v]
		}
	}
	for i := len(right) - 1; i >= 0; i-- {
		left = append(left, right[i])
	}

	return left, nil
}
