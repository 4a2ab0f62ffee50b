package bdmst

import (
	"fmt"

	"github.com/katalvlaran/iround/bfs"
	"github.com/katalvlaran/iround/core"
	"github.com/katalvlaran/iround/flow"
	"github.com/katalvlaran/iround/lp"
	"github.com/katalvlaran/iround/separation"
)

// subtourChecker separates x(E(S)) <= |S|-1 with one max-flow per forced
// root. The auxiliary network has a vertex per graph vertex plus s and t:
//
//	s -> v  capacity M (Infinity for the root)
//	v -> t  capacity M + 1 - x(δ(v))/2
//	u -- v  capacity x_e/2 in both directions
//
// A cut with source side {s} ∪ S costs |V|M + |S| - x(E(S)), so the row of S
// is violated exactly when the cut is below |V|M + 1. The minimum cut with
// the root forced into S therefore maximizes x(E(S)) - |S| + 1.
type subtourChecker struct {
	p *Problem

	nw       *flow.Network
	s, t     int
	source   []int // arc s -> v
	sink     []int // arc v -> t
	edgeArcs []int // AddEdge pair per edge
	m        float64
	opts     flow.FlowOptions
	rows     int
}

func newSubtourChecker(p *Problem) *subtourChecker {
	n := len(p.vertices)
	c := &subtourChecker{
		p:        p,
		nw:       flow.NewNetwork(n + 2),
		s:        n,
		t:        n + 1,
		source:   make([]int, n),
		sink:     make([]int, n),
		edgeArcs: make([]int, len(p.edges)),
		opts:     flow.FlowOptions{Epsilon: p.cmp.Epsilon() / 100, Algorithm: p.flowAlg},
	}
	for v := 0; v < n; v++ {
		c.source[v] = c.nw.AddArc(c.s, v, 0)
		c.sink[v] = c.nw.AddArc(v, c.t, 0)
	}
	for i, e := range p.edges {
		c.edgeArcs[i] = c.nw.AddEdge(p.index[e.From], p.index[e.To], 0)
	}

	return c
}

// x returns the LP value of edge i; rounded edges report their fixed value.
func (c *subtourChecker) x(m *lp.Model, i int) float64 {
	col := c.p.cols[i]
	if m.HasColumn(col) {
		return m.Value(col)
	}
	v, _ := m.FixedValue(col)

	return v
}

// refresh patches every capacity from the current LP point.
func (c *subtourChecker) refresh(m *lp.Model) {
	deg := make([]float64, len(c.p.vertices))
	for i, e := range c.p.edges {
		x := c.x(m, i)
		c.nw.SetCapacity(c.edgeArcs[i], x/2)
		deg[c.p.index[e.From]] += x
		deg[c.p.index[e.To]] += x
	}
	c.m = 0
	for _, d := range deg {
		if d/2 > c.m {
			c.m = d / 2
		}
	}
	for v, d := range deg {
		c.nw.SetCapacity(c.source[v], c.m)
		c.nw.SetCapacity(c.sink[v], c.m+1-d/2)
	}
}

// Candidates implements separation.Checker: one candidate per root vertex.
func (c *subtourChecker) Candidates(m *lp.Model) []separation.Candidate {
	c.refresh(m)
	out := make([]separation.Candidate, len(c.p.vertices))
	for v := range out {
		out[v] = separation.Candidate{Source: v, Sink: c.t}
	}

	return out
}

// Check implements separation.Checker. The max-flow only locates S; the
// violation is measured on the LP point itself, so a cut that flow round-off
// makes look violated is never reported.
func (c *subtourChecker) Check(m *lp.Model, cand separation.Candidate) (separation.Cut, bool) {
	root := cand.Source
	c.nw.SetCapacity(c.source[root], flow.Infinity)
	defer c.nw.SetCapacity(c.source[root], c.m)

	if _, err := flow.MaxFlow(c.nw, c.s, c.t, c.opts); err != nil {
		return separation.Cut{}, false
	}
	side, _ := flow.MinCut(c.nw, c.s, c.opts)
	set := make([]int, 0, len(side))
	for _, v := range side {
		if v < len(c.p.vertices) {
			set = append(set, v)
		}
	}

	if len(set) == 0 {
		return separation.Cut{}, false
	}

	return separation.Cut{
		Candidate: cand,
		Set:       set,
		Violation: c.violation(m, set),
	}, true
}

// InitialTest implements separation.InitialTester. With x(E) = |V|-1, a
// disconnected support always has a component C with x(E(C)) > |C|-1.
func (c *subtourChecker) InitialTest(m *lp.Model) (separation.Cut, bool) {
	eps := c.p.cmp.Epsilon()
	comps, err := bfs.Components(c.p.graph, func(e *core.Edge) bool {
		i, ok := c.p.edgeIndex[e.ID]

		return ok && c.x(m, i) > eps
	})
	if err != nil || len(comps) < 2 {
		return separation.Cut{}, false
	}

	var best separation.Cut
	for k, comp := range comps {
		set := make([]int, len(comp))
		for j, v := range comp {
			set[j] = c.p.index[v]
		}
		viol := c.violation(m, set)
		if k == 0 || viol > best.Violation {
			best = separation.Cut{Candidate: separation.Candidate{Source: set[0], Sink: c.t}, Set: set, Violation: viol}
		}
	}

	return best, true
}

// AddCut implements separation.Checker: Σ_{e ⊆ S} x_e <= |S| - 1.
func (c *subtourChecker) AddCut(m *lp.Model, cut separation.Cut) lp.RowID {
	var live []lp.ColID
	bound := float64(len(cut.Set) - 1)
	for _, i := range c.induced(cut.Set) {
		col := c.p.cols[i]
		if !m.HasColumn(col) {
			bound -= c.x(m, i)
			continue
		}
		live = append(live, col)
	}
	c.rows++

	return m.AddRowWithCoefficients(lp.Upper, 0, bound, fmt.Sprintf("subtour#%d", c.rows), live, ones(len(live)))
}

// induced returns the indices of the edges with both endpoints in set.
func (c *subtourChecker) induced(set []int) []int {
	in := make([]bool, len(c.p.vertices))
	for _, v := range set {
		in[v] = true
	}
	var out []int
	for i, e := range c.p.edges {
		if in[c.p.index[e.From]] && in[c.p.index[e.To]] {
			out = append(out, i)
		}
	}

	return out
}

// violation returns x(E(set)) - |set| + 1.
func (c *subtourChecker) violation(m *lp.Model, set []int) float64 {
	idx := c.induced(set)
	cols := make([]lp.ColID, len(idx))
	for j, i := range idx {
		cols[j] = c.p.cols[i]
	}

	return separation.Violation(m, cols, ones(len(cols)), float64(len(set)-1))
}
