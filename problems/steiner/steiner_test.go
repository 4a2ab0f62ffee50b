package steiner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/iround/core"
	"github.com/katalvlaran/iround/flow"
	"github.com/katalvlaran/iround/ir"
	"github.com/katalvlaran/iround/lp"
	"github.com/katalvlaran/iround/problems/steiner"
	"github.com/katalvlaran/iround/separation"
)

func newEnv(t *testing.T) *lp.Environment {
	t.Helper()
	env := lp.NewEnvironment()
	t.Cleanup(func() { _ = env.Close() })

	return env
}

// wheel is a 6-cycle a..f with two chords and a hub h.
func wheel(t *testing.T) *core.Graph {
	g := core.NewGraph(core.WithWeighted())
	for _, e := range []struct {
		u, v string
		w    float64
	}{
		{"a", "b", 1}, {"b", "c", 1}, {"c", "d", 1}, {"d", "e", 1}, {"e", "f", 1}, {"f", "a", 1},
		{"a", "d", 4}, {"b", "e", 4},
		{"h", "a", 2}, {"h", "c", 2}, {"h", "e", 2},
	} {
		_, err := g.AddEdge(e.u, e.v, e.w)
		require.NoError(t, err)
	}

	return g
}

// connectivity returns the number of edge-disjoint u-v paths using edges.
func connectivity(t *testing.T, edges []core.Edge, u, v string) float64 {
	t.Helper()
	g := core.NewGraph(core.WithMultiEdges())
	for _, e := range edges {
		_, err := g.AddEdge(e.From, e.To, 0)
		require.NoError(t, err)
	}
	if !g.HasVertex(u) || !g.HasVertex(v) {
		return 0
	}
	nw, mapping := flow.FromGraph(g, func(*core.Edge) float64 { return 1 })
	f, err := flow.Dinic(nw, mapping.Index[u], mapping.Index[v], flow.DefaultOptions())
	require.NoError(t, err)

	return f
}

func TestSolve_Wheel(t *testing.T) {
	reqs := []steiner.Requirement{{U: "a", V: "d", R: 2}, {U: "b", V: "f", R: 1}, {U: "c", V: "e", R: 1}}
	for _, s := range []separation.Strategy{separation.FindMostViolated, separation.FindAny, separation.FindRandom} {
		t.Run(s.String(), func(t *testing.T) {
			p, res, err := steiner.Solve(newEnv(t), wheel(t), reqs,
				steiner.WithOracleOptions(separation.WithStrategy(s), separation.WithSeed(11)))
			require.NoError(t, err)
			require.Equal(t, lp.Optimal, res.Status)

			for _, r := range reqs {
				assert.GreaterOrEqual(t, connectivity(t, p.Edges(), r.U, r.V), float64(r.R)-1e-9, "%s-%s", r.U, r.V)
			}
			assert.Positive(t, res.Cuts)
			assert.LessOrEqual(t, p.Cost(), 2*res.Relaxation+1e-6)
			assert.InDelta(t, p.Cost(), res.Objective, 1e-6)
		})
	}
}

func TestSolve_SteinerTree(t *testing.T) {
	// Terminals a, c, e are cheapest to join through the hub.
	reqs := []steiner.Requirement{{U: "a", V: "c", R: 1}, {U: "a", V: "e", R: 1}}
	p, res, err := steiner.Solve(newEnv(t), wheel(t), reqs)
	require.NoError(t, err)
	require.Equal(t, lp.Optimal, res.Status)
	for _, r := range reqs {
		assert.GreaterOrEqual(t, connectivity(t, p.Edges(), r.U, r.V), 1.0)
	}
	assert.LessOrEqual(t, p.Cost(), 2*res.Relaxation+1e-6)
}

func TestSolve_EdmondsKarpMatchesDinic(t *testing.T) {
	reqs := []steiner.Requirement{{U: "a", V: "d", R: 2}, {U: "b", V: "f", R: 1}}
	var relax []float64
	for _, alg := range []flow.Algorithm{flow.AlgDinic, flow.AlgEdmondsKarp} {
		p, res, err := steiner.Solve(newEnv(t), wheel(t), reqs,
			steiner.WithFlowAlgorithm(alg),
			steiner.WithEngineOptions(ir.WithEpsilon(1e-6)))
		require.NoError(t, err, alg.String())
		require.Equal(t, lp.Optimal, res.Status, alg.String())
		for _, r := range reqs {
			assert.GreaterOrEqual(t, connectivity(t, p.Edges(), r.U, r.V), float64(r.R)-1e-9, "%s %s-%s", alg, r.U, r.V)
		}
		relax = append(relax, res.Relaxation)
	}
	assert.InDelta(t, relax[0], relax[1], 1e-5)
}

func TestNew_EngineEpsilonReachesOracle(t *testing.T) {
	reqs := []steiner.Requirement{{U: "a", V: "d", R: 2}}
	p := steiner.New(wheel(t), reqs, steiner.WithEngineOptions(ir.WithEpsilon(1e-5)))
	assert.Nil(t, p.SeparationOracle(), "no oracle before Init")
	require.NoError(t, p.Validate())
	require.NoError(t, p.Init(newEnv(t).NewModel("eps")))
	require.NotNil(t, p.SeparationOracle())
	assert.Equal(t, 1e-5, p.SeparationOracle().Epsilon())
}

func TestValidate(t *testing.T) {
	g := wheel(t)
	ok := []steiner.Requirement{{U: "a", V: "d", R: 3}}
	require.NoError(t, steiner.New(g, ok).Validate())

	assert.ErrorIs(t, steiner.New(nil, ok).Validate(), steiner.ErrInvalidGraph)
	assert.ErrorIs(t, steiner.New(g, []steiner.Requirement{{U: "a", V: "zz", R: 1}}).Validate(), steiner.ErrBadRequirement)
	assert.ErrorIs(t, steiner.New(g, []steiner.Requirement{{U: "a", V: "a", R: 1}}).Validate(), steiner.ErrBadRequirement)
	assert.ErrorIs(t, steiner.New(g, []steiner.Requirement{{U: "a", V: "b", R: 0}}).Validate(), steiner.ErrBadRequirement)
	// d has degree 3: c, e and the chord to a.
	assert.ErrorIs(t, steiner.New(g, []steiner.Requirement{{U: "a", V: "d", R: 4}}).Validate(), steiner.ErrUnsatisfiable)

	neg := core.NewGraph(core.WithWeighted())
	_, _ = neg.AddEdge("a", "b", -1)
	assert.ErrorIs(t, steiner.New(neg, nil).Validate(), steiner.ErrNegativeCost)

	_, _, err := steiner.Solve(newEnv(t), g, []steiner.Requirement{{U: "a", V: "d", R: 4}})
	assert.ErrorIs(t, err, steiner.ErrUnsatisfiable)
}
