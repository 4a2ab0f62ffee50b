// SPDX-License-Identifier: MIT

package lp

import (
	"fmt"
	"math"
	"sort"
)

type column struct {
	name    string
	cost    float64
	kind    BoundKind
	lb, ub  float64
	coefs   map[RowID]float64
	deleted bool
	value   float64
}

type row struct {
	name    string
	kind    BoundKind
	lb, ub  float64
	coefs   map[ColID]float64
	deleted bool
}

// Model is a sparse linear program: columns (variables) with costs and bounds,
// rows (constraints) with bounds, and the coefficients linking them.
//
// A Model is owned by one goroutine. Referencing an unknown or deleted id is a
// programming error and panics.
type Model struct {
	env   *Environment
	name  string
	sense Sense

	cols []column
	rows []row

	liveCols, liveRows int
	loaded             bool
	status             Status
	fixedObjective     float64
}

// Name returns the model name.
func (m *Model) Name() string { return m.name }

// SetSense selects minimization or maximization.
func (m *Model) SetSense(s Sense) { m.sense = s }

// Sense returns the optimization direction.
func (m *Model) Sense() Sense { return m.sense }

// normalizeBounds fills the infinite side(s) implied by kind.
func normalizeBounds(kind BoundKind, lb, ub float64) (float64, float64) {
	switch kind {
	case Free:
		return math.Inf(-1), math.Inf(1)
	case Lower:
		return lb, math.Inf(1)
	case Upper:
		return math.Inf(-1), ub
	case Double:
		if lb > ub {
			panic(fmt.Sprintf("lp: double bound with lb %g > ub %g", lb, ub))
		}

		return lb, ub
	case Fixed:
		return lb, lb
	default:
		panic(fmt.Sprintf("lp: unknown bound kind %d", int(kind)))
	}
}

// AddColumn appends a column and returns its id. Bounds not implied by kind
// are ignored: a Lower column ignores ub, a Fixed column uses lb for both.
func (m *Model) AddColumn(cost float64, kind BoundKind, lb, ub float64, name string) ColID {
	lb, ub = normalizeBounds(kind, lb, ub)
	id := ColID(len(m.cols))
	if name == "" {
		name = fmt.Sprintf("x%d", id)
	}
	m.cols = append(m.cols, column{
		name:  name,
		cost:  cost,
		kind:  kind,
		lb:    lb,
		ub:    ub,
		coefs: make(map[RowID]float64),
	})
	m.liveCols++
	m.status = Undefined

	return id
}

// AddRow appends an empty row and returns its id. Rows may be added after Load.
func (m *Model) AddRow(kind BoundKind, lb, ub float64, name string) RowID {
	lb, ub = normalizeBounds(kind, lb, ub)
	id := RowID(len(m.rows))
	if name == "" {
		name = fmt.Sprintf("r%d", id)
	}
	m.rows = append(m.rows, row{
		name:  name,
		kind:  kind,
		lb:    lb,
		ub:    ub,
		coefs: make(map[ColID]float64),
	})
	m.liveRows++
	m.status = Undefined

	return id
}

// AddCoefficient adds value to the coefficient of col in row. Coefficients
// that end up zero are dropped from the matrix.
func (m *Model) AddCoefficient(r RowID, c ColID, value float64) {
	rw := m.mustRow(r)
	cl := m.mustCol(c)
	if value == 0 {
		return
	}
	v := rw.coefs[c] + value
	if v == 0 {
		delete(rw.coefs, c)
		delete(cl.coefs, r)
	} else {
		rw.coefs[c] = v
		cl.coefs[r] = v
	}
	m.status = Undefined
}

// AddRowWithCoefficients adds a row together with its coefficients.
func (m *Model) AddRowWithCoefficients(kind BoundKind, lb, ub float64, name string, cols []ColID, coefs []float64) RowID {
	if len(cols) != len(coefs) {
		panic(fmt.Sprintf("lp: %d columns but %d coefficients", len(cols), len(coefs)))
	}
	r := m.AddRow(kind, lb, ub, name)
	for i, c := range cols {
		m.AddCoefficient(r, c, coefs[i])
	}

	return r
}

// Load finalizes the initial matrix. Solve fails with ErrNotLoaded before it.
func (m *Model) Load() error {
	if m.env.Closed() {
		return ErrEnvironmentClosed
	}
	m.loaded = true

	return nil
}

// Status returns the status of the last Solve, or Undefined if the model
// changed since.
func (m *Model) Status() Status { return m.status }

// Objective returns the objective of the current point, including the cost
// of every deleted column at its fixed value.
func (m *Model) Objective() float64 {
	obj := m.fixedObjective
	for i := range m.cols {
		if !m.cols[i].deleted {
			obj += m.cols[i].cost * m.cols[i].value
		}
	}

	return obj
}

// Value returns the primal value of a live column from the last Solve.
func (m *Model) Value(c ColID) float64 { return m.mustCol(c).value }

// FixedValue returns the value a column was fixed to, live or deleted.
// The second result is false when the column is not Fixed.
func (m *Model) FixedValue(c ColID) (float64, bool) {
	cl := m.colAt(c)
	if cl.kind != Fixed {
		return 0, false
	}

	return cl.lb, true
}

// RowSum returns Σ coef·value over the live columns of row.
func (m *Model) RowSum(r RowID) float64 {
	var sum float64
	for c, a := range m.mustRow(r).coefs {
		sum += a * m.cols[c].value
	}

	return sum
}

// RowDegree returns the number of live columns with a non-zero coefficient in row.
func (m *Model) RowDegree(r RowID) int { return len(m.mustRow(r).coefs) }

// ColumnDegree returns the number of live rows col appears in.
func (m *Model) ColumnDegree(c ColID) int { return len(m.mustCol(c).coefs) }

// RowColumns returns the live columns of row in ascending id order.
func (m *Model) RowColumns(r RowID) []ColID {
	coefs := m.mustRow(r).coefs
	out := make([]ColID, 0, len(coefs))
	for c := range coefs {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// ColumnRows returns the live rows col appears in, in ascending id order.
func (m *Model) ColumnRows(c ColID) []RowID {
	coefs := m.mustCol(c).coefs
	out := make([]RowID, 0, len(coefs))
	for r := range coefs {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Coefficient returns the coefficient of col in row (0 when absent).
func (m *Model) Coefficient(r RowID, c ColID) float64 {
	m.mustCol(c)

	return m.mustRow(r).coefs[c]
}

// DeleteRow removes a row from the matrix.
func (m *Model) DeleteRow(r RowID) {
	rw := m.mustRow(r)
	for c := range rw.coefs {
		delete(m.cols[c].coefs, r)
	}
	rw.coefs = nil
	rw.deleted = true
	m.liveRows--
	m.status = Undefined
}

// DeleteColumn removes col from the matrix with value fixed to v. Every
// finite bound of a dependent row is reduced by v·coef so the remaining LP is
// equivalent, and cost·v moves into the constant part of the objective.
func (m *Model) DeleteColumn(c ColID, v float64) {
	cl := m.mustCol(c)
	for r, a := range cl.coefs {
		rw := &m.rows[r]
		if rw.kind.HasLower() {
			rw.lb -= a * v
		}
		if rw.kind.HasUpper() {
			rw.ub -= a * v
		}
		delete(rw.coefs, c)
	}
	m.fixedObjective += cl.cost * v
	cl.coefs = nil
	cl.value = v
	cl.deleted = true
	m.liveCols--
	m.status = Undefined
}

// FixColumn turns col into a Fixed column with value v.
func (m *Model) FixColumn(c ColID, v float64) {
	cl := m.mustCol(c)
	cl.kind, cl.lb, cl.ub, cl.value = Fixed, v, v, v
	m.status = Undefined
}

// HasColumn reports whether col exists and is not deleted.
func (m *Model) HasColumn(c ColID) bool {
	return c >= 0 && int(c) < len(m.cols) && !m.cols[c].deleted
}

// HasRow reports whether row exists and is not deleted.
func (m *Model) HasRow(r RowID) bool {
	return r >= 0 && int(r) < len(m.rows) && !m.rows[r].deleted
}

// RowBoundKind returns the bound kind of a live row.
func (m *Model) RowBoundKind(r RowID) BoundKind { return m.mustRow(r).kind }

// ColumnBoundKind returns the bound kind of a column, deleted or not.
func (m *Model) ColumnBoundKind(c ColID) BoundKind { return m.colAt(c).kind }

// RowBounds returns the (compensated) bounds of a live row.
func (m *Model) RowBounds(r RowID) (lb, ub float64) {
	rw := m.mustRow(r)

	return rw.lb, rw.ub
}

// ColumnBounds returns the bounds of a column.
func (m *Model) ColumnBounds(c ColID) (lb, ub float64) {
	cl := m.colAt(c)

	return cl.lb, cl.ub
}

// ColumnCost returns the objective coefficient of a column.
func (m *Model) ColumnCost(c ColID) float64 { return m.colAt(c).cost }

// ColumnName returns the name of a column.
func (m *Model) ColumnName(c ColID) string { return m.colAt(c).name }

// RowName returns the name of a row, deleted or not.
func (m *Model) RowName(r RowID) string {
	if r < 0 || int(r) >= len(m.rows) {
		panic(fmt.Sprintf("lp: unknown row %d", r))
	}

	return m.rows[r].name
}

// Columns returns the live columns in creation order.
func (m *Model) Columns() []ColID {
	out := make([]ColID, 0, m.liveCols)
	for i := range m.cols {
		if !m.cols[i].deleted {
			out = append(out, ColID(i))
		}
	}

	return out
}

// Rows returns the live rows in creation order.
func (m *Model) Rows() []RowID {
	out := make([]RowID, 0, m.liveRows)
	for i := range m.rows {
		if !m.rows[i].deleted {
			out = append(out, RowID(i))
		}
	}

	return out
}

// NumColumns returns the number of live columns.
func (m *Model) NumColumns() int { return m.liveCols }

// NumRows returns the number of live rows.
func (m *Model) NumRows() int { return m.liveRows }

// TotalColumns returns the number of columns ever added, deleted ones included.
func (m *Model) TotalColumns() int { return len(m.cols) }

// TotalRows returns the number of rows ever added, deleted ones included.
func (m *Model) TotalRows() int { return len(m.rows) }

func (m *Model) colAt(c ColID) *column {
	if c < 0 || int(c) >= len(m.cols) {
		panic(fmt.Sprintf("lp: unknown column %d", c))
	}

	return &m.cols[c]
}

func (m *Model) mustCol(c ColID) *column {
	cl := m.colAt(c)
	if cl.deleted {
		panic(fmt.Sprintf("lp: column %d (%s) was deleted", c, cl.name))
	}

	return cl
}

func (m *Model) mustRow(r RowID) *row {
	if r < 0 || int(r) >= len(m.rows) {
		panic(fmt.Sprintf("lp: unknown row %d", r))
	}
	rw := &m.rows[r]
	if rw.deleted {
		panic(fmt.Sprintf("lp: row %d (%s) was deleted", r, rw.name))
	}

	return rw
}
