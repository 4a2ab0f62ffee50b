package ir

import (
	"math"

	"github.com/katalvlaran/iround/lp"
)

// RoundPolicy decides whether a column is fixed, and to which value.
type RoundPolicy interface {
	Round(m *lp.Model, col lp.ColID) (float64, bool)
}

// RelaxPolicy decides whether a row is dropped.
type RelaxPolicy interface {
	Relax(m *lp.Model, row lp.RowID) bool
}

// RoundFunc adapts a function to RoundPolicy.
type RoundFunc func(m *lp.Model, col lp.ColID) (float64, bool)

// Round implements RoundPolicy.
func (f RoundFunc) Round(m *lp.Model, col lp.ColID) (float64, bool) { return f(m, col) }

// RelaxFunc adapts a function to RelaxPolicy.
type RelaxFunc func(m *lp.Model, row lp.RowID) bool

// Relax implements RelaxPolicy.
func (f RelaxFunc) Relax(m *lp.Model, row lp.RowID) bool { return f(m, row) }

// RoundToInteger fixes a column whose value is within epsilon of an integer.
type RoundToInteger struct{ lp.Compare }

// Round implements RoundPolicy.
func (p RoundToInteger) Round(m *lp.Model, col lp.ColID) (float64, bool) {
	v := m.Value(col)
	if p.IsInteger(v) {
		return p.Compare.Round(v), true
	}

	return 0, false
}

// RoundAtLeastHalf fixes a column to 1 once its value reaches ½ - epsilon.
// Rounding only such columns costs at most a factor 2 over the LP.
type RoundAtLeastHalf struct{ lp.Compare }

// Round implements RoundPolicy.
func (p RoundAtLeastHalf) Round(m *lp.Model, col lp.ColID) (float64, bool) {
	if p.GreaterEq(m.Value(col), 0.5) {
		return 1, true
	}

	return 0, false
}

// RoundEquals fixes a column whose value equals one of Values.
type RoundEquals struct {
	lp.Compare
	Values []float64
}

// Round implements RoundPolicy.
func (p RoundEquals) Round(m *lp.Model, col lp.ColID) (float64, bool) {
	v := m.Value(col)
	for _, target := range p.Values {
		if p.Eq(v, target) {
			return target, true
		}
	}

	return 0, false
}

// RoundChain applies its policies in order; the first one that fires wins.
type RoundChain []RoundPolicy

// Round implements RoundPolicy.
func (c RoundChain) Round(m *lp.Model, col lp.ColID) (float64, bool) {
	for _, p := range c {
		if v, ok := p.Round(m, col); ok {
			return v, true
		}
	}

	return 0, false
}

// RelaxNever keeps every row.
type RelaxNever struct{}

// Relax implements RelaxPolicy.
func (RelaxNever) Relax(*lp.Model, lp.RowID) bool { return false }

// RelaxEmpty drops rows without live columns.
type RelaxEmpty struct{}

// Relax implements RelaxPolicy.
func (RelaxEmpty) Relax(m *lp.Model, row lp.RowID) bool { return m.RowDegree(row) == 0 }

// RelaxSatisfied drops rows implied by the bounds of their live columns: a
// lower bound already met by the smallest possible activity (for instance a
// covering row whose requirement was paid by fixed columns), or an upper
// bound the largest possible activity cannot reach.
type RelaxSatisfied struct{ lp.Compare }

// Relax implements RelaxPolicy.
func (p RelaxSatisfied) Relax(m *lp.Model, row lp.RowID) bool {
	kind := m.RowBoundKind(row)
	lb, ub := m.RowBounds(row)
	lo, hi := activityRange(m, row)
	if kind.HasLower() && !p.GreaterEq(lo, lb) {
		return false
	}
	if kind.HasUpper() && !p.LessEq(hi, ub) {
		return false
	}

	return true
}

// activityRange returns the smallest and largest value Σ coef·x can take
// within the column bounds.
func activityRange(m *lp.Model, row lp.RowID) (lo, hi float64) {
	for _, col := range m.RowColumns(row) {
		a := m.Coefficient(row, col)
		clb, cub := m.ColumnBounds(col)
		if a < 0 {
			clb, cub = cub, clb
		}
		lo += a * clb
		hi += a * cub
	}
	if math.IsNaN(lo) {
		lo = math.Inf(-1)
	}
	if math.IsNaN(hi) {
		hi = math.Inf(1)
	}

	return lo, hi
}

// RelaxDegreeAtMost drops a row once its number of live columns is at most
// the limit Bound returns for it. Rows for which Bound reports false are kept.
type RelaxDegreeAtMost struct {
	Bound func(m *lp.Model, row lp.RowID) (int, bool)
}

// Relax implements RelaxPolicy.
func (p RelaxDegreeAtMost) Relax(m *lp.Model, row lp.RowID) bool {
	limit, ok := p.Bound(m, row)

	return ok && m.RowDegree(row) <= limit
}

// RelaxAny drops a row when any of its policies does.
type RelaxAny []RelaxPolicy

// Relax implements RelaxPolicy.
func (a RelaxAny) Relax(m *lp.Model, row lp.RowID) bool {
	for _, p := range a {
		if p.Relax(m, row) {
			return true
		}
	}

	return false
}
