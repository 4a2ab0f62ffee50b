// Package ir implements the iterative rounding engine: it drives a sequence
// of LP relaxations toward an integral solution by alternately solving to an
// extreme point (with optional row generation), fixing decided columns and
// dropping redundant rows.
package ir

import (
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/iround/lp"
)

// Sentinel errors. ErrNoProgress, ErrTerminationBound and ErrEpsilonMismatch
// signal broken policy compositions and are raised with panic.
var (
	// ErrNoProgress: a fractional extreme point where nothing was rounded or relaxed.
	ErrNoProgress = errors.New("ir: no column rounded and no row relaxed at a fractional extreme point")

	// ErrTerminationBound: more iterations than columns + rows + 1.
	ErrTerminationBound = errors.New("ir: iteration count exceeds columns + rows + 1")

	// ErrEpsilonMismatch: an oracle or engine epsilon below the LP backend tolerance.
	ErrEpsilonMismatch = errors.New("ir: epsilon below LP backend tolerance")

	// ErrIterationLimit is returned when WithMaxIterations is exhausted.
	ErrIterationLimit = errors.New("ir: iteration limit reached")
)

// Problem is a problem instance driven by the Engine.
type Problem interface {
	// Init adds the initial columns and rows to m.
	Init(m *lp.Model) error
	// RoundCondition decides whether col can be fixed, and to which value.
	RoundCondition(m *lp.Model, col lp.ColID) (float64, bool)
	// RelaxCondition decides whether row can be dropped.
	RelaxCondition(m *lp.Model, row lp.RowID) bool
	// SetSolution receives the final value of every column.
	SetSolution(value func(lp.ColID) float64)
}

// Separable is implemented by problems with an exponential constraint family.
type Separable interface {
	SeparationOracle() Oracle
}

// Named is optionally implemented by problems to label logs, models and metrics.
type Named interface {
	Name() string
}

// Oracle certifies feasibility of an LP point or adds a violated row.
type Oracle interface {
	Feasible(m *lp.Model) bool
	AddViolatedConstraint(m *lp.Model) lp.RowID
	Epsilon() float64
}

// State of the Engine.
type State int

const (
	Fractional State = iota
	Rounding
	Relaxing
	Integral
)

func (s State) String() string {
	switch s {
	case Fractional:
		return "fractional"
	case Rounding:
		return "rounding"
	case Relaxing:
		return "relaxing"
	case Integral:
		return "integral"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Result summarizes a Run.
type Result struct {
	Status     lp.Status
	Objective  float64 // cost of the integral solution
	Relaxation float64 // objective of the first extreme point (LP bound)
	Iterations int
	Rounded    int
	Relaxed    int
	Cuts       int
	Duration   time.Duration
}
