// SPDX-License-Identifier: MIT

package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/iround/builder"
	"github.com/katalvlaran/iround/core"
	"github.com/katalvlaran/iround/prim_kruskal"
)

func edgeSignature(g *core.Graph) []string {
	var out []string
	for _, e := range g.Edges() {
		out = append(out, e.From+"-"+e.To)
	}

	return out
}

// TestRandomTree_Spans checks that RandomTree yields a spanning tree e1..e(n-1).
func TestRandomTree_Spans(t *testing.T) {
	g, err := builder.BuildGraph(nil, []builder.BuilderOption{builder.WithSeed(5)}, builder.RandomTree(12))
	require.NoError(t, err)
	assert.Equal(t, 12, g.VertexCount())

	var ids []string
	for _, e := range g.Edges() {
		ids = append(ids, e.ID)
	}
	require.NoError(t, prim_kruskal.IsSpanningTree(g, ids))
}

// TestBuildGraph_Deterministic verifies equal seeds give equal graphs.
func TestBuildGraph_Deterministic(t *testing.T) {
	build := func(seed int64) *core.Graph {
		g, err := builder.BuildGraph(
			[]core.GraphOption{core.WithWeighted(), core.WithMultiEdges()},
			[]builder.BuilderOption{builder.WithSeed(seed), builder.WithWeightFn(builder.UniformIntWeightFn(1, 9)), builder.WithSymbNumb("v")},
			builder.RandomTree(8), builder.RandomSparse(8, 0.4),
		)
		require.NoError(t, err)

		return g
	}
	a, b := build(3), build(3)
	assert.Equal(t, edgeSignature(a), edgeSignature(b))
	for i, e := range a.Edges() {
		assert.Equal(t, e.Weight, b.Edges()[i].Weight)
		assert.GreaterOrEqual(t, e.Weight, 1.0)
		assert.LessOrEqual(t, e.Weight, 9.0)
	}
	assert.True(t, a.HasVertex("v7"))
}

// TestRandomSparse_SkipsExistingPairs checks simple graphs stay simple.
func TestRandomSparse_SkipsExistingPairs(t *testing.T) {
	g, err := builder.BuildGraph(nil, nil, builder.Cycle(5), builder.RandomSparse(5, 1))
	require.NoError(t, err)
	assert.Equal(t, 10, g.EdgeCount())
}

// TestBuilder_Errors covers parameter validation.
func TestBuilder_Errors(t *testing.T) {
	_, err := builder.BuildGraph(nil, nil, builder.RandomSparse(4, 1.5))
	assert.ErrorIs(t, err, builder.ErrInvalidProbability)

	_, err = builder.BuildGraph(nil, nil, builder.RandomSparse(4, 0.5))
	assert.ErrorIs(t, err, builder.ErrNeedRandSource)

	_, err = builder.BuildGraph(nil, nil, builder.RandomTree(0))
	assert.ErrorIs(t, err, builder.ErrTooFewVertices)

	_, err = builder.BuildGraph([]core.GraphOption{core.WithDirected(true)}, []builder.BuilderOption{builder.WithSeed(1)}, builder.RandomTree(4))
	assert.ErrorIs(t, err, builder.ErrUnsupportedGraphMode)

	_, err = builder.BuildGraph(nil, nil, builder.Cycle(2))
	assert.ErrorIs(t, err, builder.ErrTooFewVertices)

	_, err = builder.BuildGraph(nil, nil, nil)
	assert.ErrorIs(t, err, builder.ErrConstructFailed)

	assert.Panics(t, func() { builder.UniformIntWeightFn(5, 1) })
	assert.Panics(t, func() { builder.WithWeightFn(nil) })
}
