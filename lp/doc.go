// Package lp is the linear-programming layer of iround: a sparse column/row
// Model over a pluggable Backend, a scoped Environment that owns the backend,
// and the epsilon-aware Compare helper.
//
// Columns and rows are addressed by opaque ColID / RowID handles. Each carries
// a BoundKind (Free, Lower, Upper, Double, Fixed). Rows can be added after
// Load, which is how cutting-plane oracles add violated constraints, and both
// rows and columns can be deleted: DeleteColumn(col, v) moves v·coef into the
// bounds of every dependent row so the reduced model stays equivalent.
//
// Solve reports Optimal, Infeasible or Unbounded as a Status; an error means
// the environment was closed, the model was never loaded, or the backend failed.
//
// The default backend wraps gonum.org/v1/gonum/optimize/convex/lp.Simplex and
// returns extreme points, which is what iterative rounding depends on.
package lp
