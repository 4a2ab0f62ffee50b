// SPDX-License-Identifier: MIT

package lp

import (
	"errors"
	"fmt"
)

// DefaultTolerance is the numeric tolerance handed to the simplex backend.
const DefaultTolerance = 1e-10

// DefaultEpsilon is the comparison tolerance shared by Compare, the rounding
// engine, its policies and the separation oracles. It must never be smaller
// than the backend tolerance, otherwise a cutting plane could chase violations
// the backend cannot resolve.
const DefaultEpsilon = 1e-7

// Sentinel errors.
var (
	// ErrEnvironmentClosed is returned when a model is used after its Environment was closed.
	ErrEnvironmentClosed = errors.New("lp: environment closed")

	// ErrNotLoaded is returned by Solve before Load.
	ErrNotLoaded = errors.New("lp: model not loaded")

	// ErrInfeasible is returned by a Backend when the program has no feasible point.
	ErrInfeasible = errors.New("lp: program is infeasible")

	// ErrUnbounded is returned by a Backend when the objective is unbounded below.
	ErrUnbounded = errors.New("lp: program is unbounded")
)

// ColID identifies a column of a Model. IDs are dense, never reused, and
// stay valid (as dead handles) after the column is deleted.
type ColID int

// RowID identifies a row of a Model, with the same lifetime rules as ColID.
type RowID int

// BoundKind is the category of a column's or row's permissible range.
type BoundKind int

const (
	// Free has no bounds.
	Free BoundKind = iota
	// Lower is bounded below only: x >= lb.
	Lower
	// Upper is bounded above only: x <= ub.
	Upper
	// Double is bounded on both sides: lb <= x <= ub.
	Double
	// Fixed pins the value: x = lb = ub.
	Fixed
)

func (k BoundKind) String() string {
	switch k {
	case Free:
		return "free"
	case Lower:
		return "lower"
	case Upper:
		return "upper"
	case Double:
		return "double"
	case Fixed:
		return "fixed"
	default:
		return fmt.Sprintf("BoundKind(%d)", int(k))
	}
}

// HasLower reports whether the kind carries a finite lower bound.
func (k BoundKind) HasLower() bool { return k == Lower || k == Double || k == Fixed }

// HasUpper reports whether the kind carries a finite upper bound.
func (k BoundKind) HasUpper() bool { return k == Upper || k == Double || k == Fixed }

// Status is the outcome of Model.Solve.
type Status int

const (
	// Undefined means the model has not been solved since its last change.
	Undefined Status = iota
	// Optimal means an optimal extreme point was found.
	Optimal
	// Infeasible means the constraints admit no point.
	Infeasible
	// Unbounded means the objective can be improved without limit.
	Unbounded
)

func (s Status) String() string {
	switch s {
	case Undefined:
		return "undefined"
	case Optimal:
		return "optimal"
	case Infeasible:
		return "infeasible"
	case Unbounded:
		return "unbounded"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Sense selects the optimization direction.
type Sense int

const (
	// Minimize the objective (default).
	Minimize Sense = iota
	// Maximize the objective.
	Maximize
)
