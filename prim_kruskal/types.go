// Package prim_kruskal defines sentinel errors and the disjoint-set structure
// shared by Kruskal's MST and the spanning-tree checks used during instance validation.
package prim_kruskal

import "errors"

// ErrInvalidGraph indicates that MST algorithms require an undirected graph.
// Returned when graph is nil or directed.
var ErrInvalidGraph = errors.New("prim_kruskal: MST requires undirected graph")

// ErrDisconnected indicates that the graph is not fully connected, so a spanning
// tree covering all vertices cannot be formed. It applies when |V| > 1 but MST is impossible.
var ErrDisconnected = errors.New("prim_kruskal: graph is disconnected")

// ErrNotSpanningTree indicates that an edge set is not a spanning tree of its graph.
var ErrNotSpanningTree = errors.New("prim_kruskal: edges do not form a spanning tree")

// DisjointSet is a union-find forest over string IDs with path compression
// and union by rank. The zero value is not usable; call NewDisjointSet.
type DisjointSet struct {
	parent map[string]string
	rank   map[string]int
	sets   int
}

// NewDisjointSet creates singleton sets for every id.
func NewDisjointSet(ids []string) *DisjointSet {
	d := &DisjointSet{
		parent: make(map[string]string, len(ids)),
		rank:   make(map[string]int, len(ids)),
	}
	for _, id := range ids {
		d.Add(id)
	}

	return d
}

// Add registers id as a new singleton set. Existing ids are left untouched.
func (d *DisjointSet) Add(id string) {
	if _, ok := d.parent[id]; ok {
		return
	}
	d.parent[id] = id
	d.sets++
}

// Find returns the representative of id's set. Unknown ids are added first.
func (d *DisjointSet) Find(u string) string {
	if _, ok := d.parent[u]; !ok {
		d.Add(u)
	}
	// Iterative find with path halving to avoid deep recursion.
	for d.parent[u] != u {
		d.parent[u] = d.parent[d.parent[u]]
		u = d.parent[u]
	}

	return u
}

// Union merges the sets of u and v and reports whether they were disjoint.
func (d *DisjointSet) Union(u, v string) bool {
	rootU, rootV := d.Find(u), d.Find(v)
	if rootU == rootV {
		return false
	}
	// Attach smaller-rank tree under larger-rank root.
	if d.rank[rootU] < d.rank[rootV] {
		d.parent[rootU] = rootV
	} else {
		d.parent[rootV] = rootU
		if d.rank[rootU] == d.rank[rootV] {
			d.rank[rootU]++
		}
	}
	d.sets--

	return true
}

// Connected reports whether u and v share a set.
func (d *DisjointSet) Connected(u, v string) bool {
	return d.Find(u) == d.Find(v)
}

// Sets returns the current number of disjoint sets.
func (d *DisjointSet) Sets() int { return d.sets }

// Groups returns every set as a sorted member list, ordered by smallest member.
func (d *DisjointSet) Groups() [][]string {
	byRoot := make(map[string][]string, d.sets)
	for id := range d.parent {
		r := d.Find(id)
		byRoot[r] = append(byRoot[r], id)
	}
	out := make([][]string, 0, len(byRoot))
	for _, g := range byRoot {
		sortStrings(g)
		out = append(out, g)
	}
	sortGroups(out)

	return out
}
