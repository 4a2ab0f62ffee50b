// SPDX-License-Identifier: MIT
//
// File: methods_adjacent.go
// Role: Neighborhood API (Neighbors).
// Determinism:
//   - Neighbors() returns edges in creation order.

package core

// Neighbors returns all edges incident to id: outgoing directed edges and every
// undirected edge touching id (self-loops once), in creation order.
//
// Errors:
//   - ErrEmptyVertexID, ErrVertexNotFound.
//
// Complexity: O(d log d).
func (g *Graph) Neighbors(id string) ([]*Edge, error) {
	if id == "" {
		return nil, ErrEmptyVertexID
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	buckets, ok := g.adjacency[id]
	if !ok {
		return nil, ErrVertexNotFound
	}

	var out []*Edge
	for _, bucket := range buckets {
		for eid := range bucket {
			out = append(out, g.edges[eid])
		}
	}
	sortEdges(out)

	return out, nil
}
