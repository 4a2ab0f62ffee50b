// Package bfs provides breadth-first search over a core.Graph,
// returning unweighted shortest-path distances, parent links, and visit order.
//
// BFS explores vertices in increasing distance from a start vertex,
// following only the edges accepted by an optional filter.
package bfs

import (
	"fmt"

	"github.com/katalvlaran/iround/core"
)

// queueItem pairs a vertex ID with its BFS depth.
type queueItem struct {
	id    string
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph *core.Graph
	opts  BFSOptions
	queue []queueItem
	res   *BFSResult
}

// BFS runs breadth-first search on g starting from startID,
// applying any number of functional Options. Edge weights are ignored.
// Returns ErrGraphNil or ErrStartVertexNotFound for invalid input.
func BFS(g *core.Graph, startID string, opts ...Option) (*BFSResult, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if !g.HasVertex(startID) {
		return nil, ErrStartVertexNotFound
	}

	n := g.VertexCount()
	w := &walker{
		graph: g,
		opts:  o,
		queue: make([]queueItem, 0, n),
		res: &BFSResult{
			Order:      make([]string, 0, n),
			Depth:      make(map[string]int, n),
			Parent:     make(map[string]string, n),
			ParentEdge: make(map[string]string, n),
		},
	}

	w.enqueue(startID, 0, "", "")

	return w.res, w.loop()
}

// enqueue marks id visited at depth d, records its parent, and adds it to the queue.
func (w *walker) enqueue(id string, d int, parent, via string) {
	w.res.Depth[id] = d
	if parent != "" {
		w.res.Parent[id] = parent
		w.res.ParentEdge[id] = via
	}
	w.queue = append(w.queue, queueItem{id: id, depth: d})
}

// loop processes the queue until it is empty.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		item := w.queue[0]
		w.queue = w.queue[1:]

		w.res.Order = append(w.res.Order, item.id)

		edges, err := w.graph.Neighbors(item.id)
		if err != nil {
			return fmt.Errorf("bfs: neighbors of %q: %w", item.id, err)
		}
		for _, e := range edges {
			if !w.opts.FilterEdge(e) {
				continue
			}
			nbr := e.Other(item.id)
			if !w.res.Reached(nbr) {
				w.enqueue(nbr, item.depth+1, item.id, e.ID)
			}
		}
	}

	return nil
}

// Components partitions the vertices of g into connected components, following
// only the edges accepted by filter (nil accepts all). Components are listed in
// order of their smallest vertex ID, and each component is sorted.
func Components(g *core.Graph, filter func(e *core.Edge) bool) ([][]string, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	seen := make(map[string]bool, g.VertexCount())
	var comps [][]string
	for _, v := range g.Vertices() {
		if seen[v] {
			continue
		}
		res, err := BFS(g, v, WithFilterEdge(filter))
		if err != nil {
			return nil, err
		}
		comp := make([]string, 0, len(res.Order))
		for _, id := range res.Order {
			seen[id] = true
			comp = append(comp, id)
		}
		sortStrings(comp)
		comps = append(comps, comp)
	}

	return comps, nil
}
