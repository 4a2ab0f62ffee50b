package separation

import (
	"math/rand"

	log "github.com/sirupsen/logrus"

	"github.com/katalvlaran/iround/lp"
	"github.com/katalvlaran/iround/metrics"
)

// Oracle searches a Checker's candidates for a violated constraint.
// It is not safe for concurrent use.
type Oracle struct {
	checker  Checker
	strategy Strategy
	seed     int64
	eps      float64
	initial  bool
	rng      *rand.Rand

	pending *Cut
	cuts    int
}

// New returns an Oracle over checker.
func New(checker Checker, opts ...Option) *Oracle {
	o := &Oracle{
		checker:  checker,
		strategy: FindAny,
		eps:      lp.DefaultEpsilon,
		initial:  true,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.rng = rngFromSeed(o.seed)

	return o
}

// Epsilon returns the violation threshold.
func (o *Oracle) Epsilon() float64 { return o.eps }

// Strategy returns the configured search strategy.
func (o *Oracle) Strategy() Strategy { return o.strategy }

// Cuts returns the number of rows added so far.
func (o *Oracle) Cuts() int { return o.cuts }

// Feasible reports whether no candidate is violated by more than Epsilon at
// the current LP point. When it returns false, the violated cut is kept for
// the following AddViolatedConstraint.
func (o *Oracle) Feasible(m *lp.Model) bool {
	o.pending = o.search(m)
	if o.pending == nil {
		metrics.OracleChecksTotal.WithLabelValues(metrics.Feasible).Inc()

		return true
	}
	metrics.OracleChecksTotal.WithLabelValues(metrics.Violated).Inc()

	return false
}

// AddViolatedConstraint adds the row of the violated cut found by Feasible
// and returns it. Calling it on a feasible point panics.
func (o *Oracle) AddViolatedConstraint(m *lp.Model) lp.RowID {
	if o.pending == nil && o.Feasible(m) {
		panic("separation: AddViolatedConstraint called on a feasible point")
	}
	cut := *o.pending
	o.pending = nil

	row := o.checker.AddCut(m, cut)
	o.cuts++
	metrics.OracleCutsTotal.WithLabelValues(o.strategy.String()).Inc()
	log.WithFields(log.Fields{
		"row":       m.RowName(row),
		"source":    cut.Source,
		"sink":      cut.Sink,
		"set":       len(cut.Set),
		"violation": cut.Violation,
	}).Debug("added violated constraint")

	return row
}

// search returns the violated cut selected by the strategy, or nil.
func (o *Oracle) search(m *lp.Model) *Cut {
	if o.initial {
		if it, ok := o.checker.(InitialTester); ok {
			if cut, ok := it.InitialTest(m); ok && cut.Violation > o.eps {
				return &cut
			}
		}
	}

	candidates := o.checker.Candidates(m)
	if o.strategy == FindRandom {
		shuffleCandidates(o.rng, candidates)
	}

	var best *Cut
	for _, c := range candidates {
		cut, ok := o.checker.Check(m, c)
		if !ok || cut.Violation <= o.eps {
			continue
		}
		if o.strategy != FindMostViolated {
			return &cut
		}
		if best == nil || cut.Violation > best.Violation {
			best = &cut
		}
	}

	return best
}

// Violation returns how far Σ_{c ∈ cols} coef·x_c exceeds bound at the current
// LP point. Rounded columns, live or deleted, count with their fixed value.
// It is the common measure for "≤" families; "≥" families negate it.
// Checkers report it for the set max-flow found rather than the flow value,
// so flow round-off never produces a cut the LP point already satisfies.
func Violation(m *lp.Model, cols []lp.ColID, coefs []float64, bound float64) float64 {
	var sum float64
	for i, c := range cols {
		if v, ok := m.FixedValue(c); ok {
			sum += coefs[i] * v
			continue
		}
		sum += coefs[i] * m.Value(c)
	}

	return sum - bound
}
