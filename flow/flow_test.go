package flow_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/iround/core"
	"github.com/katalvlaran/iround/flow"
)

type maxFlowFunc func(*flow.Network, int, int, flow.FlowOptions) (float64, error)

// FlowSuite runs the same scenarios against every max-flow implementation.
type FlowSuite struct {
	suite.Suite
	name string
	run  maxFlowFunc
}

func TestDinicSuite(t *testing.T) {
	suite.Run(t, &FlowSuite{name: "dinic", run: flow.Dinic})
}

func TestEdmondsKarpSuite(t *testing.T) {
	suite.Run(t, &FlowSuite{name: "edmonds-karp", run: flow.EdmondsKarp})
}

// selecting wraps MaxFlow with a fixed Algorithm.
func selecting(alg flow.Algorithm) maxFlowFunc {
	return func(nw *flow.Network, source, sink int, opts flow.FlowOptions) (float64, error) {
		opts.Algorithm = alg

		return flow.MaxFlow(nw, source, sink, opts)
	}
}

func TestMaxFlowSuite(t *testing.T) {
	for _, alg := range []flow.Algorithm{flow.AlgDinic, flow.AlgEdmondsKarp} {
		t.Run(alg.String(), func(t *testing.T) {
			suite.Run(t, &FlowSuite{name: "max-flow/" + alg.String(), run: selecting(alg)})
		})
	}
}

func TestParseAlgorithm(t *testing.T) {
	for _, alg := range []flow.Algorithm{flow.AlgDinic, flow.AlgEdmondsKarp} {
		got, err := flow.ParseAlgorithm(alg.String())
		require.NoError(t, err)
		require.Equal(t, alg, got)
	}
	require.Equal(t, flow.AlgDinic, flow.DefaultOptions().Algorithm)

	_, err := flow.ParseAlgorithm("push-relabel")
	require.EqualError(t, err, `flow: unknown algorithm "push-relabel"`)
	require.Equal(t, "Algorithm(7)", flow.Algorithm(7).String())
}

// TestSingleArc verifies that a single arc yields max flow equal to its capacity.
func (s *FlowSuite) TestSingleArc() {
	nw := flow.NewNetwork(2)
	a := nw.AddArc(0, 1, 7)

	mf, err := s.run(nw, 0, 1, flow.DefaultOptions())
	require.NoError(s.T(), err)
	s.Equal(7.0, mf)
	s.Equal(7.0, nw.Flow(a))
	s.Equal(-7.0, nw.Flow(a^1))

	back, err := s.run(nw, 1, 0, flow.DefaultOptions())
	require.NoError(s.T(), err)
	s.Zero(back, "directed arcs carry nothing backwards")
}

// TestClassicNetwork checks the CLRS example (max flow 23).
func (s *FlowSuite) TestClassicNetwork() {
	nw := flow.NewNetwork(6)
	for _, a := range []struct {
		u, v int
		c    float64
	}{{0, 1, 16}, {0, 2, 13}, {1, 2, 10}, {2, 1, 4}, {1, 3, 12}, {3, 2, 9}, {2, 4, 14}, {4, 3, 7}, {3, 5, 20}, {4, 5, 4}} {
		nw.AddArc(a.u, a.v, a.c)
	}
	mf, err := s.run(nw, 0, 5, flow.FlowOptions{LevelRebuildInterval: 1, Verbose: true})
	require.NoError(s.T(), err)
	s.InDelta(23.0, mf, 1e-9)

	_, in := flow.MinCut(nw, 0, flow.DefaultOptions())
	var cut float64
	for v := 0; v < nw.NumVertices(); v++ {
		if !in[v] {
			continue
		}
		// sum capacities of forward arcs leaving the source side
		for id := 0; id < 2*nw.NumArcs(); id += 2 {
			from, to := nw.Endpoints(id)
			if from == v && !in[to] {
				cut += nw.Capacity(id)
			}
		}
	}
	s.InDelta(mf, cut, 1e-9, "max-flow equals min-cut")
}

// TestFractionalUndirected exercises undirected pairs and epsilon filtering.
func (s *FlowSuite) TestFractionalUndirected() {
	nw := flow.NewNetwork(3)
	nw.AddEdge(0, 1, 0.5)
	nw.AddEdge(1, 2, 0.25)
	tiny := nw.AddEdge(0, 2, 1e-12)

	mf, err := s.run(nw, 2, 0, flow.DefaultOptions())
	require.NoError(s.T(), err)
	s.InDelta(0.25, mf, 1e-12)
	side, _ := flow.MinCut(nw, 2, flow.DefaultOptions())
	s.Equal([]int{2}, side)

	nw.SetCapacity(tiny, 1)
	mf, err = s.run(nw, 2, 0, flow.DefaultOptions())
	require.NoError(s.T(), err)
	s.InDelta(1.25, mf, 1e-12)
}

// TestInfiniteArc makes sure an uncuttable arc forces its head into the source side.
func (s *FlowSuite) TestInfiniteArc() {
	nw := flow.NewNetwork(4)
	nw.AddArc(0, 1, flow.Infinity)
	nw.AddArc(1, 3, 2)
	nw.AddArc(0, 2, 1)
	nw.AddArc(2, 3, 5)
	mf, err := s.run(nw, 0, 3, flow.DefaultOptions())
	require.NoError(s.T(), err)
	s.InDelta(3.0, mf, 1e-12)
	_, in := flow.MinCut(nw, 0, flow.DefaultOptions())
	s.True(in[1])
	s.False(in[2])
}

// TestErrors covers endpoint and capacity validation.
func (s *FlowSuite) TestErrors() {
	nw := flow.NewNetwork(2)
	_, err := s.run(nw, -1, 1, flow.DefaultOptions())
	s.ErrorIs(err, flow.ErrSourceNotFound)
	_, err = s.run(nw, 0, 2, flow.DefaultOptions())
	s.ErrorIs(err, flow.ErrSinkNotFound)

	nw.AddArc(0, 1, -3)
	_, err = s.run(nw, 0, 1, flow.DefaultOptions())
	var ee flow.EdgeError
	s.ErrorAs(err, &ee)
	s.Equal(-3.0, ee.Cap)

	mf, err := s.run(flow.NewNetwork(1), 0, 0, flow.DefaultOptions())
	s.NoError(err)
	s.Zero(mf)
}

// TestRandomAgreement compares both algorithms on seeded random networks.
func TestRandomAgreement(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 25; iter++ {
		n := 4 + rng.Intn(8)
		d, ek := flow.NewNetwork(n), flow.NewNetwork(n)
		for k := 0; k < 3*n; k++ {
			u, v := rng.Intn(n), rng.Intn(n)
			if u == v {
				continue
			}
			c := float64(rng.Intn(20)) / 4
			d.AddArc(u, v, c)
			ek.AddArc(u, v, c)
		}
		f1, err := flow.Dinic(d, 0, n-1, flow.DefaultOptions())
		require.NoError(t, err)
		f2, err := flow.EdmondsKarp(ek, 0, n-1, flow.DefaultOptions())
		require.NoError(t, err)
		require.InDelta(t, f1, f2, 1e-9, "iteration %d", iter)
	}
}

// TestFromGraph maps a core.Graph onto a Network.
func TestFromGraph(t *testing.T) {
	g := core.NewGraph(core.WithWeighted())
	_, _ = g.AddEdge("a", "b", 2)
	eid, _ := g.AddEdge("b", "c", 3)
	_, _ = g.AddEdge("a", "c", 1)

	nw, m := flow.FromGraph(g, nil)
	require.Equal(t, []string{"a", "b", "c"}, m.Vertices)
	require.Equal(t, 3, nw.NumArcs())
	require.Equal(t, 3.0, nw.Capacity(m.Arcs[eid]))

	mf, err := flow.Dinic(nw, m.Index["a"], m.Index["c"], flow.DefaultOptions())
	require.NoError(t, err)
	require.InDelta(t, 3.0, mf, 1e-12)

	unit, um := flow.FromGraph(g, func(*core.Edge) float64 { return 1 })
	mf, err = flow.EdmondsKarp(unit, um.Index["a"], um.Index["c"], flow.DefaultOptions())
	require.NoError(t, err)
	require.InDelta(t, 2.0, mf, 1e-12)
}
