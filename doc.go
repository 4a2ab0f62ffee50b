// Package iround solves NP-hard network design problems approximately by
// iterative rounding: solve an LP relaxation to an extreme point, fix columns
// whose value is integral or large enough, drop constraints that can no longer
// be violated by much, add violated cuts from a separation oracle, and repeat
// until the solution is integral.
//
// The module is organized bottom-up:
//
//	core/          thread-safe Graph, Vertex, Edge with deterministic iteration
//	bfs/           breadth-first traversal with edge filters and tree paths
//	prim_kruskal/  Kruskal MST, DisjointSet, spanning-tree checks
//	flow/          residual Network, Dinic, Edmonds-Karp, minimum cuts
//	lp/            LP Model, Environment, gonum simplex backend, Compare
//	separation/    generic separation oracle with search strategies
//	ir/            iterative rounding engine and round/relax policies
//	problems/      bdmst, treeaug, gap, steiner
//	builder/       seeded random graph constructors
//	instance/      YAML instance files, reports, random generation
//	metrics/       Prometheus collectors for engine and oracle activity
//	cmd/iround     command-line driver
//
// A typical library call:
//
//	env := lp.NewEnvironment()
//	defer env.Close()
//
//	p, res, err := bdmst.Solve(env, g, bounds)
//	if err != nil { … }
//	fmt.Println(res.Status, p.Cost(), p.MaxExcess())
//
// Guarantees of the bundled problems:
//
//   - bdmst:   cost ≤ LP optimum, every degree ≤ B(v)+1
//   - treeaug: cost ≤ 2·LP optimum
//   - gap:     cost ≤ LP optimum, every load ≤ 2·T(i)
//   - steiner: cost ≤ 2·LP optimum
package iround
