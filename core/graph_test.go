// SPDX-License-Identifier: MIT

package core_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/iround/core"
)

// TestGraph_Options asserts GraphOption flags are applied correctly.
func TestGraph_Options(t *testing.T) {
	g := core.NewGraph(core.WithWeighted(), core.WithMultiEdges(), core.WithLoops())
	assert.False(t, g.Directed())
	assert.True(t, g.Weighted())
	assert.True(t, g.Multigraph())
	assert.True(t, g.Looped())

	dg := core.NewGraph(core.WithDirected(true))
	assert.True(t, dg.Directed())

	sg := core.NewGraph()
	_, err := sg.AddEdge("X", "Y", 0)
	require.NoError(t, err)
	_, err = sg.AddEdge("X", "Y", 0)
	require.ErrorIs(t, err, core.ErrMultiEdgeNotAllowed)
	_, err = sg.AddEdge("X", "X", 0)
	require.ErrorIs(t, err, core.ErrLoopNotAllowed)
	_, err = sg.AddEdge("X", "Z", 2.5)
	require.ErrorIs(t, err, core.ErrBadWeight)
	_, err = sg.AddEdge("", "Z", 0)
	require.ErrorIs(t, err, core.ErrEmptyVertexID)
}

// TestGraph_Vertices checks AddVertex/HasVertex and sorted vertex listing.
func TestGraph_Vertices(t *testing.T) {
	g := core.NewGraph(core.WithWeighted())
	require.ErrorIs(t, g.AddVertex(""), core.ErrEmptyVertexID)
	require.NoError(t, g.AddVertex("A"))
	require.NoError(t, g.AddVertex("A"), "duplicate AddVertex is a no-op")
	assert.Equal(t, 1, g.VertexCount())

	_, err := g.AddEdge("C", "B", 1)
	require.NoError(t, err)
	assert.True(t, g.HasVertex("B"))
	assert.False(t, g.HasVertex(""))
	assert.Equal(t, []string{"A", "B", "C"}, g.Vertices())

	_, err = g.Degree("missing")
	require.ErrorIs(t, err, core.ErrVertexNotFound)
}

// TestGraph_EdgesOrderAndMirror verifies creation order and undirected mirroring.
func TestGraph_EdgesOrderAndMirror(t *testing.T) {
	g := core.NewGraph(core.WithWeighted())
	for i := 0; i < 12; i++ {
		_, err := g.AddEdge(fmt.Sprintf("v%d", i), fmt.Sprintf("v%d", i+1), float64(i))
		require.NoError(t, err)
	}
	edges := g.Edges()
	require.Len(t, edges, 12)
	for i, e := range edges {
		assert.Equal(t, fmt.Sprintf("e%d", i+1), e.ID)
		assert.Equal(t, float64(i), e.Weight)
	}
	assert.True(t, g.HasEdge("v1", "v0"), "undirected edges are mirrored")

	nbrs, err := g.Neighbors("v1")
	require.NoError(t, err)
	require.Len(t, nbrs, 2)
	assert.Equal(t, "v0", nbrs[0].Other("v1"))
	assert.Equal(t, "v2", nbrs[1].Other("v1"))

	deg, err := g.Degree("v1")
	require.NoError(t, err)
	assert.Equal(t, 2, deg)

	e, err := g.GetEdge(edges[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "v0", e.From)
	_, err = g.GetEdge("e99")
	require.ErrorIs(t, err, core.ErrEdgeNotFound)
	assert.False(t, g.HasEdge("v0", "v2"))
}

// TestGraph_DirectedNeighbors checks that directed edges are outgoing-only.
func TestGraph_DirectedNeighbors(t *testing.T) {
	g := core.NewGraph(core.WithDirected(true), core.WithWeighted(), core.WithMultiEdges())
	_, _ = g.AddEdge("s", "t", 3)
	_, _ = g.AddEdge("s", "t", 4)
	_, _ = g.AddEdge("t", "u", 1)

	out, err := g.Neighbors("s")
	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.True(t, g.HasEdge("s", "t"))
	assert.False(t, g.HasEdge("t", "s"))

	out, err = g.Neighbors("t")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "u", out[0].To)
}

// TestGraph_ConcurrentAddEdge ensures IDs stay unique under concurrent writers.
func TestGraph_ConcurrentAddEdge(t *testing.T) {
	g := core.NewGraph(core.WithMultiEdges())
	var wg sync.WaitGroup
	const workers, per = 8, 50
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < per; i++ {
				_, _ = g.AddEdge("a", "b", 0)
			}
		}()
	}
	wg.Wait()

	seen := make(map[string]bool)
	for _, e := range g.Edges() {
		require.False(t, seen[e.ID])
		seen[e.ID] = true
	}
	assert.Equal(t, workers*per, g.EdgeCount())
}
