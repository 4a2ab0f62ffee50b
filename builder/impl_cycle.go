// SPDX-License-Identifier: MIT
// Package: iround/builder
//
// impl_cycle.go - implementation of Cycle(n).

package builder

import (
	"fmt"

	"github.com/katalvlaran/iround/core"
)

const (
	methodCycle      = "Cycle"
	minCycleVertices = 3
)

// Cycle returns a Constructor for the cycle 0-1-...-(n-1)-0.
func Cycle(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < minCycleVertices {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodCycle, n, minCycleVertices, ErrTooFewVertices)
		}
		for i := 0; i < n; i++ {
			u, v := cfg.idFn(i), cfg.idFn((i+1)%n)
			w := cfg.weight(g.Weighted())
			if _, err := g.AddEdge(u, v, w); err != nil {
				return fmt.Errorf("%s: AddEdge(%s-%s, w=%g): %w", methodCycle, u, v, w, err)
			}
		}

		return nil
	}
}
