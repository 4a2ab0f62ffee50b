// Package steiner solves the survivable (Steiner) network design problem:
// buy the cheapest set of edges such that every requirement pair (u, v, r)
// is joined by r edge-disjoint paths. Jain's iterative rounding buys every
// edge at one half or more and gives a 2-approximation.
//
// The LP starts with no rows. Cut rows x(δ(S)) >= r - |bought ∩ δ(S)| are
// added by a max-flow oracle per requirement pair.
package steiner

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/iround/core"
	"github.com/katalvlaran/iround/flow"
	"github.com/katalvlaran/iround/ir"
	"github.com/katalvlaran/iround/lp"
	"github.com/katalvlaran/iround/separation"
)

var (
	// ErrInvalidGraph is returned for a nil or directed graph.
	ErrInvalidGraph = errors.New("steiner: graph must be non-nil and undirected")
	// ErrNegativeCost is returned for an edge with negative weight.
	ErrNegativeCost = errors.New("steiner: edge costs must be non-negative")
	// ErrBadRequirement is returned for unknown endpoints, u == v or r < 1.
	ErrBadRequirement = errors.New("steiner: invalid requirement")
	// ErrUnsatisfiable is returned when the input graph itself lacks the
	// required edge-connectivity.
	ErrUnsatisfiable = errors.New("steiner: requirement exceeds the edge-connectivity of the graph")
)

// Requirement asks for R edge-disjoint paths between U and V.
type Requirement struct {
	U, V string
	R    int
}

// Option configures a Problem.
type Option func(*Problem)

// WithEngineOptions passes options to the rounding engine.
func WithEngineOptions(opts ...ir.Option) Option {
	return func(p *Problem) { p.engineOpts = append(p.engineOpts, opts...) }
}

// WithOracleOptions passes options to the cut oracle. The default strategy
// is separation.FindMostViolated.
func WithOracleOptions(opts ...separation.Option) Option {
	return func(p *Problem) { p.oracleOpts = append(p.oracleOpts, opts...) }
}

// WithFlowAlgorithm selects the max-flow routine of the cut oracle
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

// Problem is one Steiner network instance. Edge weights are costs; every
// edge can be bought once.
type Problem struct {
	graph *core.Graph
	reqs  []Requirement

	cmp        lp.Compare
	oracleOpts []separation.Option
	engineOpts []ir.Option
	flowAlg    flow.Algorithm
	round      ir.RoundPolicy
	relax      ir.RelaxPolicy

	edges   []*core.Edge
	cols    []lp.ColID
	checker *cutChecker
	oracle  *separation.Oracle

	bought []core.Edge
	cost   float64
}

// New prepares an instance.
func New(g *core.Graph, reqs []Requirement, opts ...Option) *Problem {
	p := &Problem{
		graph: g,
		reqs:  reqs,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.cmp.Eps <= 0 {
		p.cmp.Eps = ir.EpsilonOf(p.engineOpts...)
	}
	p.round = ir.RoundAtLeastHalf{Compare: p.cmp}
	p.relax = ir.RelaxNever{}

	return p
}

// Name implements ir.Named.
func (p *Problem) Name() string { return "steiner" }

// Validate checks costs and requirements, and that the whole graph meets
// every requirement (unit-capacity max-flow per pair).
func (p *Problem) Validate() error {
	if p.graph == nil || p.graph.Directed() {
		return ErrInvalidGraph
	}
	for _, e := range p.graph.Edges() {
		if e.Weight < 0 {
			return fmt.Errorf("%w: %s", ErrNegativeCost, e.ID)
		}
	}

	nw, mapping := flow.FromGraph(p.graph, func(*core.Edge) float64 { return 1 })
	for _, r := range p.reqs {
		u, okU := mapping.Index[r.U]
		v, okV := mapping.Index[r.V]
		if !okU || !okV || u == v || r.R < 1 {
			return fmt.Errorf("%w: %+v", ErrBadRequirement, r)
		}
		f, err := flow.Dinic(nw, u, v, flow.DefaultOptions())
		if err != nil {
			return err
		}
		if f < float64(r.R)-0.5 {
			return fmt.Errorf("%w: %s-%s has %g, needs %d", ErrUnsatisfiable, r.U, r.V, f, r.R)
		}
	}

	return nil
}

// Init implements ir.Problem: one column per edge and no rows.
func (p *Problem) Init(m *lp.Model) error {
	for _, e := range p.graph.Edges() {
		if e.From == e.To {
			continue
		}
		p.edges = append(p.edges, e)
		p.cols = append(p.cols, m.AddColumn(e.Weight, lp.Double, 0, 1, fmt.Sprintf("x(%s,%s)", e.From, e.To)))
	}
	p.checker = newCutChecker(p)
	opts := append([]separation.Option{
		separation.WithStrategy(separation.FindMostViolated),
		separation.WithEpsilon(p.cmp.Epsilon()),
	}, p.oracleOpts...)
	p.oracle = separation.New(p.checker, opts...)

	return nil
}

// RoundCondition implements ir.Problem: edges at one half or more are bought.
func (p *Problem) RoundCondition(m *lp.Model, col lp.ColID) (float64, bool) {
	return p.round.Round(m, col)
}

// RelaxCondition implements ir.Problem. Cut rows are never dropped.
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
	p.bought, p.cost = nil, 0
	for i, c := range p.cols {
		if value(c) > 0.5 {
			p.bought = append(p.bought, *p.edges[i])
			p.cost += p.edges[i].Weight
		}
	}
}

// Edges returns the bought edges in creation order.
func (p *Problem) Edges() []core.Edge { return p.bought }

// Cost returns the total weight of the bought edges.
func (p *Problem) Cost() float64 { return p.cost }

// Solve validates and solves the instance in env.
func Solve(env *lp.Environment, g *core.Graph, reqs []Requirement, opts ...Option) (*Problem, ir.Result, error) {
	p := New(g, reqs, opts...)
	if err := p.Validate(); err != nil {
		return nil, ir.Result{}, err
	}
	engineOpts := append(append([]ir.Option(nil), p.engineOpts...), ir.WithEpsilon(p.cmp.Epsilon()))
	res, err := ir.Solve(env, p, engineOpts...)

	return p, res, err
}
