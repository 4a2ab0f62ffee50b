package ir

import (
	log "github.com/sirupsen/logrus"

	"github.com/katalvlaran/iround/lp"
)

// Option configures an Engine.
type Option func(*Engine)

// WithEpsilon sets the integrality tolerance (default lp.DefaultEpsilon).
func WithEpsilon(eps float64) Option {
	return func(e *Engine) {
		if eps > 0 {
			e.cmp.Eps = eps
		}
	}
}

// EpsilonOf returns the integrality tolerance that opts configure, so a
// problem can build its round and relax policies with the engine's epsilon.
func EpsilonOf(opts ...Option) float64 {
	e := &Engine{cmp: lp.Compare{Eps: lp.DefaultEpsilon}}
	for _, opt := range opts {
		opt(e)
	}

	return e.cmp.Epsilon()
}

// WithLogger replaces the engine's log entry.
func WithLogger(entry *log.Entry) Option {
	return func(e *Engine) {
		if entry != nil {
			e.log = entry
		}
	}
}

// WithMaxIterations caps the number of solve/round/relax iterations
// (0 = unlimited). Reaching the cap makes Run return ErrIterationLimit.
func WithMaxIterations(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.maxIterations = n
		}
	}
}
