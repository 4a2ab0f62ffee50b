// SPDX-License-Identifier: MIT
// Package: iround/builder
//
// impl_random_tree.go - implementation of RandomTree(n).
//
// Canonical model:
//   - Random recursive tree: vertex i (i ≥ 1) attaches to a uniform parent in [0, i).
//   - Vertex 0 is the root; the n-1 tree edges are added in order of i.
//
// Contract:
//   - n ≥ 1 (else ErrTooFewVertices), rng required for n ≥ 3 (else ErrNeedRandSource).
//   - Undirected graphs only (else ErrUnsupportedGraphMode).

package builder

import (
	"fmt"

	"github.com/katalvlaran/iround/core"
)

const methodRandomTree = "RandomTree"

// RandomTree returns a Constructor that adds a random spanning tree over n
// vertices. When applied first to an empty graph its edges are e1..e(n-1).
func RandomTree(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < 1 {
			return fmt.Errorf("%s: n=%d < min=1: %w", methodRandomTree, n, ErrTooFewVertices)
		}
		if g.Directed() {
			return fmt.Errorf("%s: %w", methodRandomTree, ErrUnsupportedGraphMode)
		}
		if cfg.rng == nil && n >= 3 {
			return fmt.Errorf("%s: %w", methodRandomTree, ErrNeedRandSource)
		}

		if err := g.AddVertex(cfg.idFn(0)); err != nil {
			return fmt.Errorf("%s: AddVertex(%s): %w", methodRandomTree, cfg.idFn(0), err)
		}
		for i := 1; i < n; i++ {
			parent := 0
			if i > 1 {
				parent = cfg.rng.Intn(i)
			}
			u, v := cfg.idFn(parent), cfg.idFn(i)
			w := cfg.weight(g.Weighted())
			if _, err := g.AddEdge(u, v, w); err != nil {
				return fmt.Errorf("%s: AddEdge(%s-%s, w=%g): %w", methodRandomTree, u, v, w, err)
			}
		}

		return nil
	}
}
