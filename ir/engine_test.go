package ir_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/iround/ir"
	"github.com/katalvlaran/iround/lp"
	"github.com/katalvlaran/iround/separation"
)

// vertexCover is the classic half-integral LP: min Σ w_v x_v with
// x_u + x_v >= 1 per edge. Rounding at ½ gives a 2-approximation.
type vertexCover struct {
	weights []float64
	edges   [][2]int
	round   ir.RoundPolicy
	relax   ir.RelaxPolicy

	cols  []lp.ColID
	cover []bool
}

func newCover(weights []float64, edges [][2]int) *vertexCover {
	return &vertexCover{
		weights: weights,
		edges:   edges,
		round:   ir.RoundAtLeastHalf{},
		relax:   ir.RelaxSatisfied{},
	}
}

func (p *vertexCover) Name() string { return "vertex-cover" }

func (p *vertexCover) Init(m *lp.Model) error {
	for v, w := range p.weights {
		p.cols = append(p.cols, m.AddColumn(w, lp.Double, 0, 1, fmt.Sprintf("x%d", v)))
	}
	for _, e := range p.edges {
		m.AddRowWithCoefficients(lp.Lower, 1, 0, "", []lp.ColID{p.cols[e[0]], p.cols[e[1]]}, []float64{1, 1})
	}

	return nil
}

func (p *vertexCover) RoundCondition(m *lp.Model, col lp.ColID) (float64, bool) {
	return p.round.Round(m, col)
}

func (p *vertexCover) RelaxCondition(m *lp.Model, row lp.RowID) bool { return p.relax.Relax(m, row) }

func (p *vertexCover) SetSolution(value func(lp.ColID) float64) {
	p.cover = make([]bool, len(p.cols))
	for v, c := range p.cols {
		p.cover[v] = value(c) > 0.5
	}
}

func triangle() *vertexCover {
	return newCover([]float64{1, 1, 1}, [][2]int{{0, 1}, {1, 2}, {0, 2}})
}

func newEnv(t *testing.T) *lp.Environment {
	t.Helper()
	env := lp.NewEnvironment()
	t.Cleanup(func() { _ = env.Close() })

	return env
}

func TestSolve_Triangle(t *testing.T) {
	p := triangle()
	res, err := ir.Solve(newEnv(t), p)
	require.NoError(t, err)
	require.Equal(t, lp.Optimal, res.Status)

	assert.InDelta(t, 1.5, res.Relaxation, 1e-9)
	assert.LessOrEqual(t, res.Objective, 2*res.Relaxation+1e-9)
	assert.GreaterOrEqual(t, res.Rounded, 1)
	for _, e := range p.edges {
		assert.True(t, p.cover[e[0]] || p.cover[e[1]], "edge %v uncovered", e)
	}
}

// TestRun_ProgressProperty checks, over seeded random graphs, that every run
// terminates within columns + rows + 1 iterations with a valid 2-approximate cover.
func TestRun_ProgressProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))
	for iter := 0; iter < 30; iter++ {
		n := 3 + rng.Intn(8)
		weights := make([]float64, n)
		for i := range weights {
			weights[i] = float64(1 + rng.Intn(9))
		}
		var edges [][2]int
		for u := 0; u < n; u++ {
			for v := u + 1; v < n; v++ {
				if rng.Float64() < 0.4 {
					edges = append(edges, [2]int{u, v})
				}
			}
		}
		p := newCover(weights, edges)
		e, err := ir.NewEngine(newEnv(t), p)
		require.NoError(t, err)
		bound := e.Model().TotalColumns() + e.Model().TotalRows() + 1

		res, err := e.Run()
		require.NoError(t, err, "instance %d", iter)
		require.Equal(t, lp.Optimal, res.Status)
		require.Equal(t, ir.Integral, e.State())
		assert.LessOrEqual(t, res.Iterations, bound, "instance %d", iter)
		assert.LessOrEqual(t, res.Objective, 2*res.Relaxation+1e-6, "instance %d", iter)

		p.SetSolution(e.Value)
		for _, ed := range edges {
			assert.True(t, p.cover[ed[0]] || p.cover[ed[1]], "instance %d edge %v", iter, ed)
		}
	}
}

// TestRound_Idempotent re-runs Round after convergence: values recorded for
// columns that were already fixed never change.
func TestRound_Idempotent(t *testing.T) {
	p := triangle()
	e, err := ir.NewEngine(newEnv(t), p)
	require.NoError(t, err)
	_, err = e.Run()
	require.NoError(t, err)

	recorded := make(map[lp.ColID]float64)
	for _, c := range p.cols {
		if !e.Model().HasColumn(c) {
			recorded[c] = e.Value(c)
		}
	}
	require.NotEmpty(t, recorded)

	for i := 0; i < 3; i++ {
		e.Round()
		e.Relax()
		for c, v := range recorded {
			assert.Equal(t, v, e.Value(c))
			assert.False(t, e.Model().HasColumn(c))
		}
	}
}

func TestRun_NoProgressPanics(t *testing.T) {
	p := triangle()
	p.round = ir.RoundToInteger{}
	p.relax = ir.RelaxNever{}
	e, err := ir.NewEngine(newEnv(t), p)
	require.NoError(t, err)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, ir.ErrNoProgress), "got %v", err)
	}()
	_, _ = e.Run()
}

func TestNewEngine_EpsilonMismatchPanics(t *testing.T) {
	env := newEnv(t)
	assert.Panics(t, func() { _, _ = ir.NewEngine(env, triangle(), ir.WithEpsilon(env.Tolerance()/10)) })

	sp := &separableCover{vertexCover: triangle(), oracle: &stubOracle{eps: env.Tolerance() / 10}}
	assert.Panics(t, func() { _, _ = ir.NewEngine(env, sp) })
}

func TestRun_Infeasible(t *testing.T) {
	p := newCover([]float64{1}, nil)
	inf := &infeasibleCover{vertexCover: p}

	res, err := ir.Solve(newEnv(t), inf)
	require.NoError(t, err)
	assert.Equal(t, lp.Infeasible, res.Status)
	assert.Nil(t, p.cover, "SetSolution is not called without a solution")
}

func TestRun_IterationLimit(t *testing.T) {
	e, err := ir.NewEngine(newEnv(t), triangle(), ir.WithMaxIterations(1))
	require.NoError(t, err)
	res, err := e.Run()
	require.ErrorIs(t, err, ir.ErrIterationLimit)
	assert.Equal(t, 1, res.Iterations)
}

func TestRun_InitError(t *testing.T) {
	_, err := ir.Solve(newEnv(t), &brokenInit{triangle()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ir: init")
}

func TestSolveToExtremePoint_CuttingPlane(t *testing.T) {
	// Without cuts the cheapest point is x = 0; the stub oracle demands x0 >= 1
	// once, then reports feasibility.
	p := newCover([]float64{1, 1}, nil)
	o := &stubOracle{eps: lp.DefaultEpsilon, cutsLeft: 1, col: 0}
	sp := &separableCover{vertexCover: p, oracle: o}

	res, err := ir.Solve(newEnv(t), sp)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Cuts)
	assert.InDelta(t, 1.0, res.Objective, 1e-9)
	assert.Equal(t, []bool{true, false}, p.cover)
}

type separableCover struct {
	*vertexCover
	oracle ir.Oracle
}

func (s *separableCover) SeparationOracle() ir.Oracle { return s.oracle }

// demandCover builds its separation oracle in Init, the way graph problems do
// once their auxiliary network exists.
type demandCover struct {
	*vertexCover
	eps    float64
	oracle *separation.Oracle
}

func (d *demandCover) Init(m *lp.Model) error {
	if err := d.vertexCover.Init(m); err != nil {
		return err
	}
	d.oracle = separation.New(&demandChecker{col: d.cols[0]}, separation.WithEpsilon(d.eps))

	return nil
}

func (d *demandCover) SeparationOracle() ir.Oracle {
	if d.oracle == nil {
		return nil
	}

	return d.oracle
}

// demandChecker separates the single row x_col >= 1.
type demandChecker struct{ col lp.ColID }

func (c *demandChecker) value(m *lp.Model) float64 {
	if v, ok := m.FixedValue(c.col); ok {
		return v
	}

	return m.Value(c.col)
}

func (c *demandChecker) Candidates(*lp.Model) []separation.Candidate {
	return []separation.Candidate{{}}
}

func (c *demandChecker) Check(m *lp.Model, cand separation.Candidate) (separation.Cut, bool) {
	return separation.Cut{Candidate: cand, Set: []int{0}, Violation: 1 - c.value(m)}, true
}

func (c *demandChecker) AddCut(m *lp.Model, _ separation.Cut) lp.RowID {
	return m.AddRowWithCoefficients(lp.Lower, 1, 0, "demand", []lp.ColID{c.col}, []float64{1})
}

func TestSolve_OracleBuiltInInit(t *testing.T) {
	p := newCover([]float64{1, 1}, nil)
	dc := &demandCover{vertexCover: p, eps: lp.DefaultEpsilon}

	var (
		res ir.Result
		err error
	)
	require.NotPanics(t, func() { res, err = ir.Solve(newEnv(t), dc) })
	require.NoError(t, err)
	assert.Equal(t, 1, res.Cuts)
	assert.Equal(t, 1, dc.oracle.Cuts())
	assert.InDelta(t, 1.0, res.Objective, 1e-9)
	assert.Equal(t, []bool{true, false}, p.cover)
}

func TestNewEngine_OracleBuiltInInitEpsilonMismatch(t *testing.T) {
	env := newEnv(t)
	dc := &demandCover{vertexCover: triangle(), eps: env.Tolerance() / 10}
	assert.Panics(t, func() { _, _ = ir.NewEngine(env, dc) })
}

type stubOracle struct {
	eps      float64
	cutsLeft int
	col      int
}

func (o *stubOracle) Epsilon() float64 { return o.eps }
func (o *stubOracle) Feasible(*lp.Model) bool { return o.cutsLeft == 0 }
func (o *stubOracle) AddViolatedConstraint(m *lp.Model) lp.RowID {
	o.cutsLeft--

	return m.AddRowWithCoefficients(lp.Lower, 1, 0, "demand", []lp.ColID{lp.ColID(o.col)}, []float64{1})
}

type infeasibleCover struct{ *vertexCover }

func (p *infeasibleCover) Init(m *lp.Model) error {
	x := m.AddColumn(1, lp.Double, 0, 1, "x")
	p.cols = []lp.ColID{x}
	m.AddRowWithCoefficients(lp.Lower, 2, 0, "impossible", []lp.ColID{x}, []float64{1})

	return nil
}

type brokenInit struct{ *vertexCover }

func (brokenInit) Init(*lp.Model) error { return errors.New("no instance") }

func TestEpsilonOf(t *testing.T) {
	assert.Equal(t, lp.DefaultEpsilon, ir.EpsilonOf())
	assert.Equal(t, 1e-6, ir.EpsilonOf(ir.WithMaxIterations(3), ir.WithEpsilon(1e-6)))
	assert.Equal(t, 1e-5, ir.EpsilonOf(ir.WithEpsilon(1e-6), ir.WithEpsilon(1e-5)), "last option wins")
	assert.Equal(t, lp.DefaultEpsilon, ir.EpsilonOf(ir.WithEpsilon(-1)))
}
