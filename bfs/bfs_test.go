package bfs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/iround/bfs"
	"github.com/katalvlaran/iround/core"
)

// pathGraph builds the weighted path A-B-C-D plus a chord B-D, returning the
// edge IDs keyed by endpoints.
func pathGraph(t *testing.T) (*core.Graph, map[string]string) {
	t.Helper()
	g := core.NewGraph(core.WithWeighted())
	ids := make(map[string]string)
	for _, e := range [][2]string{{"A", "B"}, {"B", "C"}, {"C", "D"}, {"B", "D"}} {
		id, err := g.AddEdge(e[0], e[1], 1.5)
		require.NoError(t, err)
		ids[e[0]+e[1]] = id
	}

	return g, ids
}

// TestBFS_Errors verifies that invalid inputs are rejected.
func TestBFS_Errors(t *testing.T) {
	_, err := bfs.BFS(nil, "A")
	require.ErrorIs(t, err, bfs.ErrGraphNil)

	g := core.NewGraph()
	_, err = bfs.BFS(g, "missing")
	require.ErrorIs(t, err, bfs.ErrStartVertexNotFound)
}

// TestBFS_WeightedDepths checks depths and parents on a weighted graph.
func TestBFS_WeightedDepths(t *testing.T) {
	g, ids := pathGraph(t)
	res, err := bfs.BFS(g, "A")
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C", "D"}, res.Order)
	assert.Equal(t, map[string]int{"A": 0, "B": 1, "C": 2, "D": 2}, res.Depth)
	assert.Equal(t, "B", res.Parent["D"], "D is reached through the chord")
	assert.Equal(t, ids["BD"], res.ParentEdge["D"])
}

// TestBFS_Filter exercises WithFilterEdge; a nil filter is ignored.
func TestBFS_Filter(t *testing.T) {
	g, ids := pathGraph(t)

	res, err := bfs.BFS(g, "A", bfs.WithFilterEdge(func(e *core.Edge) bool { return e.ID != ids["BD"] }))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Depth["D"])

	res, err = bfs.BFS(g, "A", bfs.WithFilterEdge(func(e *core.Edge) bool { return e.ID != ids["BC"] && e.ID != ids["BD"] }))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, res.Order)
	assert.False(t, res.Reached("C"))

	res, err = bfs.BFS(g, "A", bfs.WithFilterEdge(nil))
	require.NoError(t, err)
	assert.Len(t, res.Order, 4)
}

// TestResult_EdgePathBetween checks tree paths between arbitrary vertices.
func TestResult_EdgePathBetween(t *testing.T) {
	// Tree: 1-2, 2-3, 2-4, 4-5
	g := core.NewGraph()
	ids := map[string]string{}
	for _, e := range [][2]string{{"1", "2"}, {"2", "3"}, {"2", "4"}, {"4", "5"}} {
		id, err := g.AddEdge(e[0], e[1], 0)
		require.NoError(t, err)
		ids[e[0]+e[1]] = id
	}
	res, err := bfs.BFS(g, "1")
	require.NoError(t, err)

	p, err := res.EdgePathBetween("3", "5")
	require.NoError(t, err)
	assert.Equal(t, []string{ids["23"], ids["24"], ids["45"]}, p)

	p, err = res.EdgePathBetween("4", "4")
	require.NoError(t, err)
	assert.Empty(t, p)

	_, err = res.EdgePathBetween("1", "9")
	assert.Error(t, err)
}

// TestComponents splits the support of a filtered graph.
func TestComponents(t *testing.T) {
	g, ids := pathGraph(t)
	require.NoError(t, g.AddVertex("Z"))

	comps, err := bfs.Components(g, func(e *core.Edge) bool { return e.ID != ids["BC"] && e.ID != ids["CD"] })
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A", "B", "D"}, {"C"}, {"Z"}}, comps)

	_, err = bfs.Components(nil, nil)
	require.ErrorIs(t, err, bfs.ErrGraphNil)
}
