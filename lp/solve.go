// SPDX-License-Identifier: MIT

package lp

import (
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/iround/metrics"
)

// term is one shifted variable contributing sign·y[v] to a column.
type term struct {
	v    int
	sign float64
}

// columnMap expresses a model column as base + Σ sign·y over program variables.
type columnMap struct {
	base  float64
	terms []term
}

// standardForm is the general-form program derived from the live model.
type standardForm struct {
	maps  map[ColID]columnMap
	nvar  int
	c     []float64
	g     [][]float64
	h     []float64
	order []ColID
}

// Solve optimizes the live model and stores the primal values. Infeasible and
// unbounded programs are reported through the Status with a nil error;
// errors are reserved for a closed environment, a missing Load and backend failures.
func (m *Model) Solve() (Status, error) {
	if m.env.Closed() {
		return Undefined, ErrEnvironmentClosed
	}
	if !m.loaded {
		return Undefined, ErrNotLoaded
	}

	start := time.Now()
	status, err := m.solve()
	metrics.LPSolveSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LPSolvesTotal.WithLabelValues(metrics.Fail).Inc()

		return Undefined, errors.WithMessagef(err, "lp: solve %q", m.name)
	}
	metrics.LPSolvesTotal.WithLabelValues(status.String()).Inc()
	m.status = status

	log.WithFields(log.Fields{
		"model":     m.name,
		"status":    status,
		"columns":   m.liveCols,
		"rows":      m.liveRows,
		"objective": m.Objective(),
	}).Trace("lp solved")

	return status, nil
}

func (m *Model) solve() (Status, error) {
	sf, status := m.standardForm()
	if status != Optimal {
		return status, nil
	}

	// Drop variables that appear in no row. They sit at zero unless their
	// cost makes the program unbounded.
	used := make([]bool, sf.nvar)
	for _, g := range sf.g {
		for v, a := range g {
			if a != 0 {
				used[v] = true
			}
		}
	}
	var keep []int
	for v := 0; v < sf.nvar; v++ {
		if used[v] {
			keep = append(keep, v)
		} else if sf.c[v] < -m.env.tolerance {
			return Unbounded, nil
		}
	}

	y := make([]float64, sf.nvar)
	if len(sf.g) > 0 {
		data := make([]float64, 0, len(sf.g)*len(keep))
		for _, g := range sf.g {
			for _, v := range keep {
				data = append(data, g[v])
			}
		}
		c := make([]float64, len(keep))
		for k, v := range keep {
			c[k] = sf.c[v]
		}
		sol, err := m.env.backend.Solve(Program{
			C: c,
			G: mat.NewDense(len(sf.g), len(keep), data),
			H: sf.h,
		})
		switch {
		case errors.Is(err, ErrInfeasible):
			return Infeasible, nil
		case errors.Is(err, ErrUnbounded):
			return Unbounded, nil
		case err != nil:
			return Undefined, err
		}
		for k, v := range keep {
			y[v] = sol.X[k]
		}
	}

	for _, id := range sf.order {
		cm := sf.maps[id]
		x := cm.base
		for _, t := range cm.terms {
			x += t.sign * y[t.v]
		}
		m.cols[id].value = x
	}

	return Optimal, nil
}

// standardForm shifts every live column onto non-negative variables and
// rewrites every live row as one or two "<=" rows. It reports Infeasible when
// a row without live variables violates its bounds.
func (m *Model) standardForm() (*standardForm, Status) {
	sf := &standardForm{maps: make(map[ColID]columnMap, m.liveCols)}
	sign := 1.0
	if m.sense == Maximize {
		sign = -1
	}

	type boundRow struct {
		v     int
		width float64
	}
	var boundRows []boundRow
	for i := range m.cols {
		cl := &m.cols[i]
		if cl.deleted {
			continue
		}
		var cm columnMap
		switch cl.kind {
		case Fixed:
			cm.base = cl.lb
		case Lower:
			cm.base = cl.lb
			cm.terms = []term{{sf.nvar, 1}}
		case Double:
			cm.base = cl.lb
			cm.terms = []term{{sf.nvar, 1}}
			boundRows = append(boundRows, boundRow{sf.nvar, cl.ub - cl.lb})
		case Upper:
			cm.base = cl.ub
			cm.terms = []term{{sf.nvar, -1}}
		case Free:
			cm.terms = []term{{sf.nvar, 1}, {sf.nvar + 1, -1}}
		}
		for _, t := range cm.terms {
			sf.c = append(sf.c, sign*cl.cost*t.sign)
		}
		sf.nvar += len(cm.terms)
		sf.maps[ColID(i)] = cm
		sf.order = append(sf.order, ColID(i))
	}

	tol := m.env.tolerance
	for i := range m.rows {
		rw := &m.rows[i]
		if rw.deleted || rw.kind == Free {
			continue
		}
		a := make([]float64, sf.nvar)
		var k float64
		live := false
		for c, coef := range rw.coefs {
			cm := sf.maps[c]
			k += coef * cm.base
			for _, t := range cm.terms {
				a[t.v] += coef * t.sign
				live = true
			}
		}
		if !live {
			if rw.kind.HasLower() && k < rw.lb-tol || rw.kind.HasUpper() && k > rw.ub+tol {
				return nil, Infeasible
			}
			continue
		}
		if rw.kind.HasUpper() {
			sf.g = append(sf.g, a)
			sf.h = append(sf.h, rw.ub-k)
		}
		if rw.kind.HasLower() {
			neg := make([]float64, len(a))
			for j, v := range a {
				neg[j] = -v
			}
			sf.g = append(sf.g, neg)
			sf.h = append(sf.h, k-rw.lb)
		}
	}
	for _, br := range boundRows {
		a := make([]float64, sf.nvar)
		a[br.v] = 1
		sf.g = append(sf.g, a)
		sf.h = append(sf.h, br.width)
	}

	return sf, Optimal
}
