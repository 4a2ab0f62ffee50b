// SPDX-License-Identifier: MIT
// Package: iround/builder
//
// impl_random_sparse.go - implementation of RandomSparse(n, p).
//
// Canonical model:
//   - Erdős–Rényi-like generator over unordered pairs {i,j}, i<j, each kept with prob p.
//   - Pairs already joined are skipped unless the graph allows multi-edges.
//
// Determinism:
//   - Stable trial order: i asc, then j asc. One Bernoulli trial per pair.

package builder

import (
	"fmt"

	"github.com/katalvlaran/iround/core"
)

const methodRandomSparse = "RandomSparse"

// RandomSparse returns a Constructor that samples undirected edges over n
// vertices with independent probability p.
func RandomSparse(n int, p float64) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < 1 {
			return fmt.Errorf("%s: n=%d < min=1: %w", methodRandomSparse, n, ErrTooFewVertices)
		}
		if p < 0 || p > 1 {
			return fmt.Errorf("%s: p=%.6f not in [0,1]: %w", methodRandomSparse, p, ErrInvalidProbability)
		}
		if g.Directed() {
			return fmt.Errorf("%s: %w", methodRandomSparse, ErrUnsupportedGraphMode)
		}
		if cfg.rng == nil && p > 0 && p < 1 {
			return fmt.Errorf("%s: %w", methodRandomSparse, ErrNeedRandSource)
		}

		for i := 0; i < n; i++ {
			if err := g.AddVertex(cfg.idFn(i)); err != nil {
				return fmt.Errorf("%s: AddVertex(%s): %w", methodRandomSparse, cfg.idFn(i), err)
			}
		}

		multi := g.Multigraph()
		for i := 0; i < n; i++ {
			u := cfg.idFn(i)
			for j := i + 1; j < n; j++ {
				keep := p == 1 || (p > 0 && cfg.rng.Float64() < p)
				if !keep {
					continue
				}
				v := cfg.idFn(j)
				if !multi && g.HasEdge(u, v) {
					continue
				}
				w := cfg.weight(g.Weighted())
				if _, err := g.AddEdge(u, v, w); err != nil {
					return fmt.Errorf("%s: AddEdge(%s-%s, w=%g): %w", methodRandomSparse, u, v, w, err)
				}
			}
		}

		return nil
	}
}
