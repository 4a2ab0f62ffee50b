package steiner

import (
	"fmt"

	"github.com/katalvlaran/iround/core"
	"github.com/katalvlaran/iround/flow"
	"github.com/katalvlaran/iround/lp"
	"github.com/katalvlaran/iround/prim_kruskal"
	"github.com/katalvlaran/iround/separation"
)

// cutChecker separates x(δ(S)) >= r(u,v) for every requirement pair over
// one Network mirroring the input graph. Each LP point patches the arc
// capacities to the current x (bought edges count 1).
type cutChecker struct {
	p *Problem

	nw      *flow.Network
	mapping *flow.GraphMapping
	arcs    []int // arc pair per edge
	need    map[[2]int]int
	pairs   []separation.Candidate
	opts    flow.FlowOptions
	rows    int
}

func newCutChecker(p *Problem) *cutChecker {
	nw, mapping := flow.FromGraph(p.graph, func(_ *core.Edge) float64 { return 0 })
	c := &cutChecker{
		p:       p,
		nw:      nw,
		mapping: mapping,
		arcs:    make([]int, len(p.edges)),
		need:    make(map[[2]int]int, len(p.reqs)),
		opts:    flow.FlowOptions{Epsilon: p.cmp.Epsilon() / 100, Algorithm: p.flowAlg},
	}
	for i, e := range p.edges {
		c.arcs[i] = mapping.Arcs[e.ID]
	}
	for _, r := range p.reqs {
		key := [2]int{mapping.Index[r.U], mapping.Index[r.V]}
		if key[0] > key[1] {
			key[0], key[1] = key[1], key[0]
		}
		if _, seen := c.need[key]; !seen {
			c.pairs = append(c.pairs, separation.Candidate{Source: key[0], Sink: key[1]})
		}
		if r.R > c.need[key] {
			c.need[key] = r.R
		}
	}

	return c
}

// x returns the LP value of edge i; bought edges report their fixed value.
func (c *cutChecker) x(m *lp.Model, i int) float64 {
	col := c.p.cols[i]
	if m.HasColumn(col) {
		return m.Value(col)
	}
	v, _ := m.FixedValue(col)

	return v
}

// Candidates implements separation.Checker: one candidate per distinct pair.
func (c *cutChecker) Candidates(m *lp.Model) []separation.Candidate {
	for i := range c.p.edges {
		c.nw.SetCapacity(c.arcs[i], c.x(m, i))
	}
	out := make([]separation.Candidate, len(c.pairs))
	copy(out, c.pairs)

	return out
}

// Check implements separation.Checker. The violation is r - x(δ(S)) measured
// on the LP point, not the max-flow value.
func (c *cutChecker) Check(m *lp.Model, cand separation.Candidate) (separation.Cut, bool) {
	if _, err := flow.MaxFlow(c.nw, cand.Source, cand.Sink, c.opts); err != nil {
		return separation.Cut{}, false
	}
	set, in := flow.MinCut(c.nw, cand.Source, c.opts)
	if in[cand.Sink] {
		return separation.Cut{}, false
	}

	return separation.Cut{
		Candidate: cand,
		Set:       set,
		Violation: c.violation(m, cand, set),
	}, true
}

// InitialTest implements separation.InitialTester: a requirement pair split
// across components of the support graph is violated by about r.
func (c *cutChecker) InitialTest(m *lp.Model) (separation.Cut, bool) {
	eps := c.p.cmp.Epsilon()
	dsu := prim_kruskal.NewDisjointSet(c.mapping.Vertices)
	for i, e := range c.p.edges {
		if c.x(m, i) > eps {
			dsu.Union(e.From, e.To)
		}
	}

	var (
		best  separation.Cut
		found bool
	)
	for _, pair := range c.pairs {
		u, v := c.mapping.Vertices[pair.Source], c.mapping.Vertices[pair.Sink]
		if dsu.Connected(u, v) {
			continue
		}
		root := dsu.Find(u)
		var set []int
		for i, id := range c.mapping.Vertices {
			if dsu.Find(id) == root {
				set = append(set, i)
			}
		}
		viol := c.violation(m, pair, set)
		if !found || viol > best.Violation {
			best = separation.Cut{Candidate: pair, Set: set, Violation: viol}
			found = true
		}
	}

	return best, found
}

// AddCut implements separation.Checker:
// Σ_{live e ∈ δ(S)} x_e >= r - Σ_{bought e ∈ δ(S)} 1.
func (c *cutChecker) AddCut(m *lp.Model, cut separation.Cut) lp.RowID {
	in := c.inSet(cut.Set)
	need := float64(c.need[[2]int{cut.Source, cut.Sink}])
	var cols []lp.ColID
	var coefs []float64
	for i, e := range c.p.edges {
		if in[c.mapping.Index[e.From]] == in[c.mapping.Index[e.To]] {
			continue
		}
		col := c.p.cols[i]
		if !m.HasColumn(col) {
			need -= c.x(m, i)
			continue
		}
		cols = append(cols, col)
		coefs = append(coefs, 1)
	}
	c.rows++

	return m.AddRowWithCoefficients(lp.Lower, need, 0, fmt.Sprintf("cut#%d", c.rows), cols, coefs)
}

// violation returns r - x(δ(set)) for the requirement of pair.
func (c *cutChecker) violation(m *lp.Model, pair separation.Candidate, set []int) float64 {
	in := c.inSet(set)
	var cols []lp.ColID
	var coefs []float64
	for i, e := range c.p.edges {
		if in[c.mapping.Index[e.From]] != in[c.mapping.Index[e.To]] {
			cols = append(cols, c.p.cols[i])
			coefs = append(coefs, 1)
		}
	}

	return -separation.Violation(m, cols, coefs, float64(c.need[[2]int{pair.Source, pair.Sink}]))
}

func (c *cutChecker) inSet(set []int) []bool {
	in := make([]bool, len(c.mapping.Vertices))
	for _, v := range set {
		in[v] = true
	}

	return in
}
