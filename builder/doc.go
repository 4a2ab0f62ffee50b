// Package builder generates seeded random graphs for problem instances:
// random spanning trees, Erdős–Rényi edge sets, cycles and complete graphs,
// composed in order by BuildGraph.
//
//	g, err := builder.BuildGraph(
//		[]core.GraphOption{core.WithWeighted(), core.WithMultiEdges()},
//		[]builder.BuilderOption{builder.WithSeed(1), builder.WithWeightFn(builder.UniformIntWeightFn(1, 9))},
//		builder.RandomTree(10), builder.RandomSparse(10, 0.3),
//	)
//
// A graph built with RandomTree first is connected, and its tree edges are
// e1..e(n-1); instance generators rely on both.
package builder
