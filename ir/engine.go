package ir

import (
	"math"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/katalvlaran/iround/lp"
	"github.com/katalvlaran/iround/metrics"
)

// Engine runs iterative rounding over one Problem. It owns the LP model for
// the duration of the solve and is not safe for concurrent use.
type Engine struct {
	model   *lp.Model
	problem Problem
	oracle  Oracle
	cmp     lp.Compare
	log     *log.Entry
	name    string

	maxIterations int
	state         State
	fixed         map[lp.ColID]float64

	relaxation float64
	iterations int
	rounded    int
	relaxed    int
	cuts       int
}

// NewEngine creates the model for p in env, lets p populate it and loads it.
// The oracle of a Separable problem is taken after Init.
// It panics with ErrEpsilonMismatch when the engine or oracle epsilon is
// smaller than the environment's backend tolerance.
func NewEngine(env *lp.Environment, p Problem, opts ...Option) (*Engine, error) {
	name := "iround"
	if n, ok := p.(Named); ok {
		name = n.Name()
	}
	e := &Engine{
		problem: p,
		cmp:     lp.Compare{Eps: lp.DefaultEpsilon},
		log:     log.WithField("problem", name),
		name:    name,
		state:   Fractional,
		fixed:   make(map[lp.ColID]float64),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.cmp.Epsilon() < env.Tolerance() {
		panic(errors.WithMessagef(ErrEpsilonMismatch, "engine epsilon %g, tolerance %g", e.cmp.Epsilon(), env.Tolerance()))
	}

	e.model = env.NewModel(name)
	if err := p.Init(e.model); err != nil {
		return nil, errors.WithMessage(err, "ir: init")
	}
	if err := e.model.Load(); err != nil {
		return nil, errors.WithMessage(err, "ir: load")
	}
	// Problems may build their oracle in Init, so it is asked for only now.
	if s, ok := p.(Separable); ok {
		e.oracle = s.SeparationOracle()
		if e.oracle != nil && e.oracle.Epsilon() < env.Tolerance() {
			panic(errors.WithMessagef(ErrEpsilonMismatch, "oracle epsilon %g, tolerance %g", e.oracle.Epsilon(), env.Tolerance()))
		}
	}
	e.log.WithFields(log.Fields{
		"columns": e.model.NumColumns(),
		"rows":    e.model.NumRows(),
		"oracle":  e.oracle != nil,
	}).Debug("engine initialized")

	return e, nil
}

// Model returns the engine's LP model.
func (e *Engine) Model() *lp.Model { return e.model }

// State returns the current engine state.
func (e *Engine) State() State { return e.state }

// SolveToExtremePoint solves the LP and, for Separable problems, adds
// violated rows and re-solves until the oracle reports feasibility. It
// returns the objective of the final extreme point.
func (e *Engine) SolveToExtremePoint() (float64, lp.Status, error) {
	e.state = Fractional
	status, err := e.model.Solve()
	for err == nil && status == lp.Optimal && e.oracle != nil && !e.oracle.Feasible(e.model) {
		row := e.oracle.AddViolatedConstraint(e.model)
		e.cuts++
		e.log.WithFields(log.Fields{
			"row":       e.model.RowName(row),
			"objective": e.model.Objective(),
		}).Trace("cutting plane")
		status, err = e.model.Solve()
	}
	if err != nil {
		return 0, lp.Undefined, err
	}

	return e.model.Objective(), status, nil
}

// Round fixes every live, non-fixed column accepted by the problem's round
// condition, restarting the scan after each fix. It reports whether any
// column was fixed.
func (e *Engine) Round() bool {
	e.state = Rounding
	progress := false
scan:
	for {
		for _, col := range e.model.Columns() {
			if e.model.ColumnBoundKind(col) == lp.Fixed {
				continue
			}
			v, ok := e.problem.RoundCondition(e.model, col)
			if !ok {
				continue
			}
			e.fixed[col] = v
			e.model.FixColumn(col, v)
			e.model.DeleteColumn(col, v)
			e.rounded++
			metrics.EngineRoundedTotal.Inc()
			progress = true

			continue scan
		}

		return progress
	}
}

// Relax deletes every live, non-free row accepted by the problem's relax
// condition, restarting the scan after each deletion. It reports whether any
// row was deleted.
func (e *Engine) Relax() bool {
	e.state = Relaxing
	progress := false
scan:
	for {
		for _, row := range e.model.Rows() {
			if e.model.RowBoundKind(row) == lp.Free {
				continue
			}
			if !e.problem.RelaxCondition(e.model, row) {
				continue
			}
			e.model.DeleteRow(row)
			e.relaxed++
			metrics.EngineRelaxedTotal.Inc()
			progress = true

			continue scan
		}

		return progress
	}
}

// IntegerSolution reports whether every live column is within epsilon of an integer.
func (e *Engine) IntegerSolution() bool {
	for _, col := range e.model.Columns() {
		if !e.cmp.IsInteger(e.model.Value(col)) {
			return false
		}
	}

	return true
}

// Value returns the value recorded when col was rounded, or its LP value
// rounded to the nearest integer.
func (e *Engine) Value(col lp.ColID) float64 {
	if v, ok := e.fixed[col]; ok {
		return v
	}
	if v, ok := e.model.FixedValue(col); ok {
		return v
	}

	return e.cmp.Round(e.model.Value(col))
}

// Run iterates solve, round and relax until the extreme point is integral
// or the LP is infeasible or unbounded.
//
// A fractional extreme point where neither a column is rounded nor a row
// relaxed is a broken policy pair and panics with ErrNoProgress.
func (e *Engine) Run() (Result, error) {
	start := time.Now()
	for {
		if e.maxIterations > 0 && e.iterations >= e.maxIterations {
			return e.result(lp.Undefined, start), ErrIterationLimit
		}
		obj, status, err := e.SolveToExtremePoint()
		if err != nil {
			return e.result(lp.Undefined, start), err
		}
		if e.iterations == 0 {
			e.relaxation = obj
		}
		e.iterations++
		metrics.EngineIterationsTotal.Inc()
		if status != lp.Optimal {
			e.log.WithField("status", status).Info("relaxation has no optimal point")

			return e.result(status, start), nil
		}
		if e.IntegerSolution() {
			e.state = Integral

			break
		}

		rounded, relaxed := e.rounded, e.relaxed
		r, x := e.Round(), e.Relax()
		e.log.WithFields(log.Fields{
			"iteration": e.iterations,
			"objective": obj,
			"rounded":   e.rounded - rounded,
			"relaxed":   e.relaxed - relaxed,
			"columns":   e.model.NumColumns(),
			"rows":      e.model.NumRows(),
			"cuts":      e.cuts,
		}).Debug("iteration")

		if !r && !x {
			panic(errors.WithMessagef(ErrNoProgress, "iteration %d, objective %g", e.iterations, obj))
		}
		if bound := e.model.TotalColumns() + e.model.TotalRows() + 1; e.iterations > bound {
			panic(errors.WithMessagef(ErrTerminationBound, "%d iterations, bound %d", e.iterations, bound))
		}
	}

	res := e.result(lp.Optimal, start)
	e.log.WithFields(log.Fields{
		"objective":  res.Objective,
		"relaxation": res.Relaxation,
		"iterations": res.Iterations,
		"duration":   res.Duration,
	}).Debug("integral solution")

	return res, nil
}

func (e *Engine) result(status lp.Status, start time.Time) Result {
	res := Result{
		Status:     status,
		Relaxation: e.relaxation,
		Iterations: e.iterations,
		Rounded:    e.rounded,
		Relaxed:    e.relaxed,
		Cuts:       e.cuts,
		Duration:   time.Since(start),
	}
	if status == lp.Optimal {
		for c := 0; c < e.model.TotalColumns(); c++ {
			res.Objective += e.model.ColumnCost(lp.ColID(c)) * e.Value(lp.ColID(c))
		}
	} else {
		res.Objective = math.NaN()
	}

	return res
}

// Solve runs a fresh Engine over p and, on an integral solution, hands the
// column values to p.SetSolution.
func Solve(env *lp.Environment, p Problem, opts ...Option) (Result, error) {
	e, err := NewEngine(env, p, opts...)
	if err != nil {
		return Result{}, err
	}
	res, err := e.Run()
	metrics.ProblemSolveSeconds.WithLabelValues(e.name).Observe(res.Duration.Seconds())
	if err != nil {
		metrics.ProblemSolvesTotal.WithLabelValues(e.name, metrics.Fail).Inc()

		return res, err
	}
	metrics.ProblemSolvesTotal.WithLabelValues(e.name, res.Status.String()).Inc()
	if res.Status == lp.Optimal {
		p.SetSolution(e.Value)
	}

	return res, nil
}
