// Package bdmst solves the minimum bounded-degree spanning tree problem by
// iterative relaxation (Singh and Lau): the returned tree costs at most the
// LP optimum and exceeds every degree bound by at most one.
//
// The LP has one column per edge, one degree row per vertex, the spanning
// row x(E) = |V|-1 and the subtour family x(E(S)) <= |S|-1, which is
// separated on demand by max-flow. Columns are only ever rounded to zero; a
// degree row is dropped once at most B(v)+1 edges remain at v.
package bdmst

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/iround/core"
	"github.com/katalvlaran/iround/flow"
	"github.com/katalvlaran/iround/ir"
	"github.com/katalvlaran/iround/lp"
	"github.com/katalvlaran/iround/prim_kruskal"
	"github.com/katalvlaran/iround/separation"
)

// Sentinel errors returned by Validate.
var (
	ErrInvalidGraph = errors.New("bdmst: graph must be non-nil, undirected and non-empty")
	ErrDisconnected = errors.New("bdmst: graph is disconnected")
	ErrNoBound      = errors.New("bdmst: vertex has no degree bound")
	ErrBadBound     = errors.New("bdmst: degree bound must be at least 1")
)

// Option configures a Problem.
type Option func(*Problem)

// WithEngineOptions passes options to the rounding engine.
func WithEngineOptions(opts ...ir.Option) Option {
	return func(p *Problem) { p.engineOpts = append(p.engineOpts, opts...) }
}

// WithOracleOptions passes options to the subtour separation oracle.
func WithOracleOptions(opts ...separation.Option) Option {
	return func(p *Problem) { p.oracleOpts = append(p.oracleOpts, opts...) }
}

// WithFlowAlgorithm selects the max-flow routine of the subtour oracle
// (default flow.AlgDinic).
func WithFlowAlgorithm(a flow.Algorithm) Option {
	return func(p *Problem) { p.flowAlg = a }
}

// WithEpsilon sets the tolerance for rounding, separation and the engine.
// Without it, the epsilon of the engine options applies.
func WithEpsilon(eps float64) Option {
	return func(p *Problem) {
		if eps > 0 {
			p.cmp.Eps = eps
		}
	}
}

// Problem is one bounded-degree MST instance. Edge weights are costs.
type Problem struct {
	graph  *core.Graph
	bounds map[string]int

	cmp        lp.Compare
	oracleOpts []separation.Option
	engineOpts []ir.Option
	flowAlg    flow.Algorithm
	round      ir.RoundPolicy
	relax      ir.RelaxPolicy

	vertices  []string
	index     map[string]int
	edges     []*core.Edge
	cols      []lp.ColID
	edgeIndex map[string]int
	degreeRow map[lp.RowID]string

	checker *subtourChecker
	oracle  *separation.Oracle

	tree    []core.Edge
	cost    float64
	mstCost float64
}

// New prepares an instance. bounds maps every vertex ID to its degree bound.
func New(g *core.Graph, bounds map[string]int, opts ...Option) *Problem {
	p := &Problem{
		graph:     g,
		bounds:    bounds,
		edgeIndex: make(map[string]int),
		degreeRow: make(map[lp.RowID]string),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.cmp.Eps <= 0 {
		p.cmp.Eps = ir.EpsilonOf(p.engineOpts...)
	}
	p.round = ir.RoundEquals{Compare: p.cmp, Values: []float64{0}}
	p.relax = ir.RelaxDegreeAtMost{Bound: func(_ *lp.Model, row lp.RowID) (int, bool) {
		v, ok := p.degreeRow[row]

		return p.bounds[v] + 1, ok
	}}

	return p
}

// Name implements ir.Named.
func (p *Problem) Name() string { return "bdmst" }

// Validate checks that the graph is undirected and connected and that every
// vertex carries a bound of at least one. It also records the cost of an
// unconstrained minimum spanning tree, see MSTCost.
func (p *Problem) Validate() error {
	if p.graph == nil || p.graph.Directed() || p.graph.VertexCount() == 0 {
		return ErrInvalidGraph
	}
	_, mst, err := prim_kruskal.Kruskal(p.graph)
	if err != nil {
		return ErrDisconnected
	}
	p.mstCost = mst
	for _, v := range p.graph.Vertices() {
		b, ok := p.bounds[v]
		if !ok {
			return fmt.Errorf("%w: %q", ErrNoBound, v)
		}
		if b < 1 {
			return fmt.Errorf("%w: %q has %d", ErrBadBound, v, b)
		}
	}

	return nil
}

// Init implements ir.Problem.
func (p *Problem) Init(m *lp.Model) error {
	p.vertices = p.graph.Vertices()
	p.index = make(map[string]int, len(p.vertices))
	for i, v := range p.vertices {
		p.index[v] = i
	}

	incident := make([][]lp.ColID, len(p.vertices))
	var all []lp.ColID
	for _, e := range p.graph.Edges() {
		if e.From == e.To {
			continue
		}
		c := m.AddColumn(e.Weight, lp.Double, 0, 1, fmt.Sprintf("x(%s,%s)", e.From, e.To))
		p.edgeIndex[e.ID] = len(p.edges)
		p.edges = append(p.edges, e)
		p.cols = append(p.cols, c)
		all = append(all, c)
		incident[p.index[e.From]] = append(incident[p.index[e.From]], c)
		incident[p.index[e.To]] = append(incident[p.index[e.To]], c)
	}

	for i, v := range p.vertices {
		row := m.AddRowWithCoefficients(lp.Upper, 0, float64(p.bounds[v]), "deg("+v+")", incident[i], ones(len(incident[i])))
		p.degreeRow[row] = v
	}
	n := float64(len(p.vertices) - 1)
	m.AddRowWithCoefficients(lp.Fixed, n, n, "span", all, ones(len(all)))

	p.checker = newSubtourChecker(p)
	p.oracle = separation.New(p.checker, append([]separation.Option{separation.WithEpsilon(p.cmp.Epsilon())}, p.oracleOpts...)...)

	return nil
}

// RoundCondition implements ir.Problem: only zero edges are fixed.
func (p *Problem) RoundCondition(m *lp.Model, col lp.ColID) (float64, bool) {
	return p.round.Round(m, col)
}

// RelaxCondition implements ir.Problem: a degree row goes once at most
// B(v)+1 edges remain at v. The spanning and subtour rows stay.
func (p *Problem) RelaxCondition(m *lp.Model, row lp.RowID) bool {
	return p.relax.Relax(m, row)
}

// SeparationOracle implements ir.Separable. It is nil until Init has run.
func (p *Problem) SeparationOracle() ir.Oracle {
	if p.oracle == nil {
		return nil
	}

	return p.oracle
}

// SetSolution implements ir.Problem.
func (p *Problem) SetSolution(value func(lp.ColID) float64) {
	p.tree, p.cost = nil, 0
	for i, c := range p.cols {
		if value(c) > 0.5 {
			p.tree = append(p.tree, *p.edges[i])
			p.cost += p.edges[i].Weight
		}
	}
}

// Tree returns the selected edges in creation order.
func (p *Problem) Tree() []core.Edge { return p.tree }

// Cost returns the total weight of the tree.
func (p *Problem) Cost() float64 { return p.cost }

// MSTCost returns the cost of a minimum spanning tree that ignores the degree
// bounds, a lower bound on Cost. It is set by Validate.
func (p *Problem) MSTCost() float64 { return p.mstCost }

// Degrees returns the degree of every vertex in the tree.
func (p *Problem) Degrees() map[string]int {
	deg := make(map[string]int, len(p.bounds))
	for _, e := range p.tree {
		deg[e.From]++
		deg[e.To]++
	}

	return deg
}

// MaxExcess returns the largest deg(v) - B(v) over all vertices (0 when every
// bound holds).
func (p *Problem) MaxExcess() int {
	excess := 0
	for v, d := range p.Degrees() {
		if x := d - p.bounds[v]; x > excess {
			excess = x
		}
	}

	return excess
}

// Solve validates and solves g with the given bounds in env.
func Solve(env *lp.Environment, g *core.Graph, bounds map[string]int, opts ...Option) (*Problem, ir.Result, error) {
	p := New(g, bounds, opts...)
	if err := p.Validate(); err != nil {
		return nil, ir.Result{}, err
	}
	engineOpts := append(append([]ir.Option(nil), p.engineOpts...), ir.WithEpsilon(p.cmp.Epsilon()))
	res, err := ir.Solve(env, p, engineOpts...)

	return p, res, err
}

func ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}

	return out
}
