// Package treeaug solves weighted tree augmentation: given a spanning tree
// and a set of links with costs, pick the cheapest links that make the graph
// 2-edge-connected. A link covers every tree edge on the tree path between
// its endpoints; each tree edge must be covered once. Iterative rounding at
// one half gives a 2-approximation.
package treeaug

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/iround/bfs"
	"github.com/katalvlaran/iround/core"
	"github.com/katalvlaran/iround/ir"
	"github.com/katalvlaran/iround/lp"
	"github.com/katalvlaran/iround/prim_kruskal"
)

var (
	// ErrInvalidGraph is returned for a nil or directed graph.
	ErrInvalidGraph = errors.New("treeaug: graph must be non-nil and undirected")
	// ErrUncovered is returned when no link covers some tree edge.
	ErrUncovered = errors.New("treeaug: tree edge is not covered by any link")
)

// Problem is one tree augmentation instance. Every edge of the graph that is
// not a tree edge (and not a self-loop) is a link; its weight is its cost.
type Problem struct {
	graph *core.Graph
	tree  []string
	round ir.RoundPolicy
	relax ir.RelaxPolicy

	isTree map[string]bool
	links  []*core.Edge
	cols   []lp.ColID
	covers map[string][]int // tree edge ID -> covering link indices

	chosen []core.Edge
	cost   float64
}

// New prepares an instance. treeEdges lists the IDs of the spanning tree.
// The policies use the epsilon set by opts (see ir.EpsilonOf).
func New(g *core.Graph, treeEdges []string, opts ...ir.Option) *Problem {
	cmp := lp.Compare{Eps: ir.EpsilonOf(opts...)}
	p := &Problem{
		graph:  g,
		tree:   treeEdges,
		round:  ir.RoundAtLeastHalf{Compare: cmp},
		relax:  ir.RelaxSatisfied{Compare: cmp},
		isTree: make(map[string]bool, len(treeEdges)),
	}
	for _, id := range treeEdges {
		p.isTree[id] = true
	}

	return p
}

// Name implements ir.Named.
func (p *Problem) Name() string { return "treeaug" }

// Validate checks that the tree edges span the graph and that every tree
// edge is covered by at least one link.
func (p *Problem) Validate() error {
	if p.graph == nil || p.graph.Directed() {
		return ErrInvalidGraph
	}
	if err := prim_kruskal.IsSpanningTree(p.graph, p.tree); err != nil {
		return err
	}
	if err := p.coverage(); err != nil {
		return err
	}
	for _, id := range p.tree {
		if len(p.covers[id]) == 0 {
			return fmt.Errorf("%w: %s", ErrUncovered, id)
		}
	}

	return nil
}

// coverage walks the tree once and maps each tree edge to the links whose
// tree path contains it.
func (p *Problem) coverage() error {
	if p.covers != nil {
		return nil
	}
	vertices := p.graph.Vertices()
	if len(vertices) == 0 {
		p.covers = map[string][]int{}
		return nil
	}
	walk, err := bfs.BFS(p.graph, vertices[0], bfs.WithFilterEdge(func(e *core.Edge) bool {
		return p.isTree[e.ID]
	}))
	if err != nil {
		return err
	}

	p.links = p.links[:0]
	p.covers = make(map[string][]int, len(p.tree))
	for _, e := range p.graph.Edges() {
		if p.isTree[e.ID] || e.From == e.To {
			continue
		}
		path, err := walk.EdgePathBetween(e.From, e.To)
		if err != nil {
			return err
		}
		for _, t := range path {
			p.covers[t] = append(p.covers[t], len(p.links))
		}
		p.links = append(p.links, e)
	}

	return nil
}

// Init implements ir.Problem.
func (p *Problem) Init(m *lp.Model) error {
	if err := p.coverage(); err != nil {
		return err
	}
	p.cols = make([]lp.ColID, len(p.links))
	for i, e := range p.links {
		p.cols[i] = m.AddColumn(e.Weight, lp.Double, 0, 1, fmt.Sprintf("x(%s,%s)", e.From, e.To))
	}
	for _, t := range p.tree {
		idx := p.covers[t]
		cols := make([]lp.ColID, len(idx))
		coefs := make([]float64, len(idx))
		for j, i := range idx {
			cols[j], coefs[j] = p.cols[i], 1
		}
		m.AddRowWithCoefficients(lp.Lower, 1, 0, "cover("+t+")", cols, coefs)
	}

	return nil
}

// RoundCondition implements ir.Problem: links at one half or more are taken.
func (p *Problem) RoundCondition(m *lp.Model, col lp.ColID) (float64, bool) {
	return p.round.Round(m, col)
}

// RelaxCondition implements ir.Problem: covered tree edges are dropped.
func (p *Problem) RelaxCondition(m *lp.Model, row lp.RowID) bool {
	return p.relax.Relax(m, row)
}

// SetSolution implements ir.Problem.
func (p *Problem) SetSolution(value func(lp.ColID) float64) {
	p.chosen, p.cost = nil, 0
	for i, c := range p.cols {
		if value(c) > 0.5 {
			p.chosen = append(p.chosen, *p.links[i])
			p.cost += p.links[i].Weight
		}
	}
}

// Links returns the chosen links in creation order.
func (p *Problem) Links() []core.Edge { return p.chosen }

// Cost returns the total weight of the chosen links.
func (p *Problem) Cost() float64 { return p.cost }

// Solve validates and solves the instance in env.
func Solve(env *lp.Environment, g *core.Graph, treeEdges []string, opts ...ir.Option) (*Problem, ir.Result, error) {
	p := New(g, treeEdges, opts...)
	if err := p.Validate(); err != nil {
		return nil, ir.Result{}, err
	}
	res, err := ir.Solve(env, p, opts...)

	return p, res, err
}
