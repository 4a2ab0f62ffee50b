// SPDX-License-Identifier: MIT
// Package: iround/builder
//
// config.go - resolved builder configuration.

package builder

import "math/rand"

// builderConfig is resolved once per BuildGraph call and shared by all
// constructors of that call.
type builderConfig struct {
	idFn     IDFn       // vertex index → vertex ID
	rng      *rand.Rand // nil unless WithSeed/WithRand
	weightFn WeightFn   // weight of each generated edge
}

func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		idFn:     DefaultIDFn,
		weightFn: DefaultWeightFn,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// weight draws the next edge weight, or 0 for unweighted graphs.
func (cfg builderConfig) weight(weighted bool) float64 {
	if !weighted {
		return 0
	}

	return cfg.weightFn(cfg.rng)
}
