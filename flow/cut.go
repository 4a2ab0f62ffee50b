package flow

import "github.com/katalvlaran/iround/core"

// MinCut returns the source side of a minimum cut after Dinic or EdmondsKarp
// has run on nw: the vertices still reachable from source through arcs with
// residual capacity above opts.Epsilon. inSource[v] reports membership.
func MinCut(nw *Network, source int, opts FlowOptions) (side []int, inSource []bool) {
	opts.normalize()
	inSource = make([]bool, nw.NumVertices())
	inSource[source] = true
	side = []int{source}
	for i := 0; i < len(side); i++ {
		u := side[i]
		for _, a := range nw.adj[u] {
			v := nw.head[a]
			if !inSource[v] && nw.res[a] > opts.Epsilon {
				inSource[v] = true
				side = append(side, v)
			}
		}
	}

	return side, inSource
}

// GraphMapping relates a Network built by FromGraph to its core.Graph.
type GraphMapping struct {
	Vertices []string       // index → vertex ID (sorted)
	Index    map[string]int // vertex ID → index
	Arcs     map[string]int // edge ID → arc ID
}

// FromGraph builds a Network with one vertex per graph vertex and one arc per
// edge (an AddEdge pair for undirected edges). capacity maps each edge to its
// capacity; nil uses Edge.Weight. Self-loops are skipped.
func FromGraph(g *core.Graph, capacity func(e *core.Edge) float64) (*Network, *GraphMapping) {
	ids := g.Vertices()
	m := &GraphMapping{
		Vertices: ids,
		Index:    make(map[string]int, len(ids)),
		Arcs:     make(map[string]int, g.EdgeCount()),
	}
	for i, id := range ids {
		m.Index[id] = i
	}
	nw := NewNetwork(len(ids))
	for _, e := range g.Edges() {
		if e.From == e.To {
			continue
		}
		c := e.Weight
		if capacity != nil {
			c = capacity(e)
		}
		u, v := m.Index[e.From], m.Index[e.To]
		if e.Directed {
			m.Arcs[e.ID] = nw.AddArc(u, v, c)
		} else {
			m.Arcs[e.ID] = nw.AddEdge(u, v, c)
		}
	}

	return nw, m
}
