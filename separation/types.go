// Package separation implements generic separation oracles for the cutting
// plane loop of the rounding engine.
//
// A problem describes its implicit constraint family through a Checker: the
// (source, sink) Candidates worth testing, a Check that measures how badly the
// current LP point violates the family for one candidate (usually one max-flow),
// and AddCut that turns a violating set into a new row. The Oracle wraps a
// Checker with a search Strategy and satisfies the engine's Oracle interface.
package separation

import (
	"fmt"

	"github.com/katalvlaran/iround/lp"
)

// Candidate is one (source, sink) pair of the auxiliary network to test.
// Problems with a single terminal per check may ignore Sink.
type Candidate struct {
	Source, Sink int
}

// Cut is the result of checking one candidate: the violating set S (indices
// into the problem's own vertex numbering) and by how much the LP point
// violates the row S induces.
type Cut struct {
	Candidate
	Set       []int
	Violation float64
}

// Checker is implemented by problems with an exponential constraint family.
type Checker interface {
	// Candidates lists the pairs to test for the current LP point.
	Candidates(m *lp.Model) []Candidate
	// Check measures the violation for one candidate. ok is false when the
	// candidate has nothing to report.
	Check(m *lp.Model, c Candidate) (cut Cut, ok bool)
	// AddCut adds the row induced by cut to m.
	AddCut(m *lp.Model, cut Cut) lp.RowID
}

// InitialTester is an optional Checker extension: a cheap necessary condition
// tested before any max-flow, such as connectivity of the support graph.
type InitialTester interface {
	InitialTest(m *lp.Model) (cut Cut, ok bool)
}

// Strategy selects how candidates are searched.
type Strategy int

const (
	// FindAny stops at the first violated candidate, in Candidates order.
	FindAny Strategy = iota
	// FindRandom is FindAny over a seeded random permutation of the candidates.
	FindRandom
	// FindMostViolated checks every candidate and keeps the largest violation.
	FindMostViolated
)

func (s Strategy) String() string {
	switch s {
	case FindAny:
		return "find-any"
	case FindRandom:
		return "find-random"
	case FindMostViolated:
		return "find-most-violated"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps a Strategy name back to its value.
func ParseStrategy(name string) (Strategy, error) {
	for _, s := range []Strategy{FindAny, FindRandom, FindMostViolated} {
		if s.String() == name {
			return s, nil
		}
	}

	return 0, fmt.Errorf("separation: unknown strategy %q", name)
}

// Option configures an Oracle.
type Option func(*Oracle)

// WithStrategy selects the candidate search strategy (default FindAny).
func WithStrategy(s Strategy) Option {
	return func(o *Oracle) { o.strategy = s }
}

// WithSeed seeds the FindRandom permutation. Equal seeds give equal cuts.
func WithSeed(seed int64) Option {
	return func(o *Oracle) { o.seed = seed }
}

// WithEpsilon sets the violation threshold (default lp.DefaultEpsilon).
func WithEpsilon(eps float64) Option {
	return func(o *Oracle) {
		if eps > 0 {
			o.eps = eps
		}
	}
}

// WithInitialTest toggles the InitialTester shortcut (default on).
func WithInitialTest(enabled bool) Option {
	return func(o *Oracle) { o.initial = enabled }
}
