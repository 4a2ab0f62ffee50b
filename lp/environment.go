// SPDX-License-Identifier: MIT

package lp

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// Environment is the scoped LP backend resource. Create it once, hand it to
// every model, and release it exactly once:
//
//	env := lp.NewEnvironment()
//	defer env.Close()
//
// NewModel and Close are safe for concurrent use; each Model itself is owned
// by a single goroutine.
type Environment struct {
	mu        sync.Mutex
	closed    bool
	backend   Backend
	tolerance float64
	models    int
}

// EnvOption configures an Environment.
type EnvOption func(*Environment)

// WithBackend replaces the default Simplex backend.
func WithBackend(b Backend) EnvOption {
	return func(e *Environment) {
		if b != nil {
			e.backend = b
		}
	}
}

// WithTolerance sets the backend numeric tolerance (default DefaultTolerance).
func WithTolerance(tol float64) EnvOption {
	return func(e *Environment) {
		if tol > 0 {
			e.tolerance = tol
		}
	}
}

// NewEnvironment opens an environment backed by gonum's simplex unless
// WithBackend says otherwise.
func NewEnvironment(opts ...EnvOption) *Environment {
	e := &Environment{tolerance: DefaultTolerance}
	for _, opt := range opts {
		opt(e)
	}
	if e.backend == nil {
		e.backend = Simplex{Tolerance: e.tolerance}
	}
	log.WithField("tolerance", e.tolerance).Debug("lp environment opened")

	return e
}

// Tolerance returns the backend numeric tolerance.
func (e *Environment) Tolerance() float64 { return e.tolerance }

// Close releases the environment. Models created from it can no longer be
// loaded or solved. Closing twice returns ErrEnvironmentClosed.
func (e *Environment) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrEnvironmentClosed
	}
	e.closed = true
	log.WithField("models", e.models).Debug("lp environment closed")

	return nil
}

// Closed reports whether Close has been called.
func (e *Environment) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.closed
}

// NewModel creates an empty minimization model bound to e.
func (e *Environment) NewModel(name string) *Model {
	e.mu.Lock()
	e.models++
	e.mu.Unlock()

	return &Model{env: e, name: name}
}
