// SPDX-License-Identifier: MIT

package lp

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	golp "gonum.org/v1/gonum/optimize/convex/lp"
)

// Program is a linear program in general form:
//
//	minimize   cᵀy
//	subject to G·y <= h
//	           y >= 0
//
// Every column of G has a non-zero entry and G has at least one row.
type Program struct {
	C []float64
	G *mat.Dense
	H []float64
}

// Solution is an optimal extreme point of a Program.
type Solution struct {
	X         []float64
	Objective float64
}

// Backend solves Programs. Implementations return ErrInfeasible or
// ErrUnbounded for those outcomes and any other error for failures.
type Backend interface {
	Solve(p Program) (Solution, error)
}

// Simplex is the default Backend, built on gonum's dense simplex.
//
// The general form is brought to standard form with one slack per row,
// [G I]·(y,s) = h, which always has full row rank. When h >= 0 the slack
// basis is feasible and is passed as the initial basis, skipping Phase I.
type Simplex struct {
	Tolerance float64
}

// Solve implements Backend.
func (s Simplex) Solve(p Program) (Solution, error) {
	m, n := p.G.Dims()
	a := mat.NewDense(m, n+m, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			a.Set(i, j, p.G.At(i, j))
		}
		a.Set(i, n+i, 1)
	}
	c := make([]float64, n+m)
	copy(c, p.C)

	var basic []int
	if floats.Min(p.H) >= 0 {
		basic = make([]int, m)
		for i := range basic {
			basic[i] = n + i
		}
	}
	tol := s.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}

	opt, x, err := golp.Simplex(c, a, p.H, tol, basic)
	switch {
	case errors.Is(err, golp.ErrInfeasible):
		return Solution{}, ErrInfeasible
	case errors.Is(err, golp.ErrUnbounded):
		return Solution{}, ErrUnbounded
	case err != nil:
		return Solution{}, errors.Wrap(err, "gonum simplex")
	}

	return Solution{X: x[:n], Objective: opt}, nil
}
