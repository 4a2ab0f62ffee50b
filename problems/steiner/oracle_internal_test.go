package steiner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/iround/core"
	"github.com/katalvlaran/iround/flow"
	"github.com/katalvlaran/iround/lp"
	"github.com/katalvlaran/iround/separation"
)

// crossingX sums x over the edges leaving set.
func crossingX(c *cutChecker, m *lp.Model, set []int) float64 {
	in := c.inSet(set)
	var sum float64
	for i, e := range c.p.edges {
		if in[c.mapping.Index[e.From]] != in[c.mapping.Index[e.To]] {
			sum += c.x(m, i)
		}
	}

	return sum
}

// bruteViolation is max over S ∋ s, t ∉ S of r - x(δ(S)).
func bruteViolation(c *cutChecker, m *lp.Model, cand separation.Candidate) float64 {
	n := len(c.mapping.Vertices)
	r := float64(c.need[[2]int{cand.Source, cand.Sink}])
	best := -1e18
	for mask := 0; mask < 1<<n; mask++ {
		if mask&(1<<cand.Source) == 0 || mask&(1<<cand.Sink) != 0 {
			continue
		}
		var set []int
		for v := 0; v < n; v++ {
			if mask&(1<<v) != 0 {
				set = append(set, v)
			}
		}
		if viol := r - crossingX(c, m, set); viol > best {
			best = viol
		}
	}

	return best
}

func TestCutChecker_MatchesEnumeration(t *testing.T) {
	g := core.NewGraph(core.WithWeighted())
	for _, e := range []struct {
		u, v string
		w    float64
	}{
		{"a", "b", 1}, {"b", "c", 1}, {"c", "d", 1}, {"d", "a", 1},
		{"a", "c", 3}, {"b", "e", 2}, {"e", "d", 2},
	} {
		_, err := g.AddEdge(e.u, e.v, e.w)
		require.NoError(t, err)
	}
	p := New(g, []Requirement{{U: "a", V: "c", R: 2}, {U: "b", V: "d", R: 2}, {U: "c", V: "a", R: 1}})
	require.NoError(t, p.Validate())

	env := lp.NewEnvironment()
	defer env.Close()
	m := env.NewModel("cuts")
	require.NoError(t, p.Init(m))
	require.NoError(t, m.Load())
	require.Len(t, p.checker.pairs, 2, "duplicate pairs collapse to the largest r")

	o := separation.New(p.checker, separation.WithInitialTest(false), separation.WithStrategy(separation.FindMostViolated))
	for round := 0; ; round++ {
		require.Less(t, round, 50)
		status, err := m.Solve()
		require.NoError(t, err)
		require.Equal(t, lp.Optimal, status)

		for _, cand := range p.checker.Candidates(m) {
			cut, ok := p.checker.Check(m, cand)
			require.True(t, ok)
			assert.Contains(t, cut.Set, cand.Source)
			assert.NotContains(t, cut.Set, cand.Sink)
			assert.InDelta(t, bruteViolation(p.checker, m, cand), cut.Violation, 1e-6)
		}
		if o.Feasible(m) {
			break
		}
		o.AddViolatedConstraint(m)
	}
	assert.Positive(t, o.Cuts())

	// A coarse flow tolerance underestimates the max-flow; the reported
	// violation is measured on the LP point and stays within epsilon.
	for _, alg := range []flow.Algorithm{flow.AlgDinic, flow.AlgEdmondsKarp} {
		p.checker.opts = flow.FlowOptions{Epsilon: 0.3, Algorithm: alg}
		for _, cand := range p.checker.Candidates(m) {
			if cut, ok := p.checker.Check(m, cand); ok {
				assert.LessOrEqual(t, cut.Violation, o.Epsilon(), "%s pair %v", alg, cand)
				assert.InDelta(t, float64(p.checker.need[[2]int{cand.Source, cand.Sink}])-crossingX(p.checker, m, cut.Set), cut.Violation, 1e-9)
			}
		}
	}
}

func TestCutChecker_InitialTestOnEmptySupport(t *testing.T) {
	g := core.NewGraph(core.WithWeighted())
	_, _ = g.AddEdge("a", "b", 1)
	_, _ = g.AddEdge("b", "c", 1)
	_, _ = g.AddEdge("a", "c", 1)
	p := New(g, []Requirement{{U: "a", V: "c", R: 2}})

	env := lp.NewEnvironment()
	defer env.Close()
	m := env.NewModel("initial")
	require.NoError(t, p.Init(m))
	require.NoError(t, m.Load())
	_, err := m.Solve()
	require.NoError(t, err)

	cut, ok := p.checker.InitialTest(m)
	require.True(t, ok)
	assert.Equal(t, []int{0}, cut.Set)
	assert.InDelta(t, 2.0, cut.Violation, 1e-9)
}
