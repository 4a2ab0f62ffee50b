// Package metrics defines Prometheus collectors for LP solves, the iterative
// rounding engine and separation oracles. Collectors are package globals, as
// are the call sites that update them; a binary opts in by registering
// Collectors() with its registry.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Key constants are exported primarily for documentation reasons. Typically,
// they will not be used programmatically outside of defining the collectors.

// Keys for iround metrics.
const (
	LPSolvesTotalKey         = "iround_lp_solves_total"
	LPSolveSecondsKey        = "iround_lp_solve_seconds"
	EngineIterationsTotalKey = "iround_engine_iterations_total"
	EngineRoundedTotalKey    = "iround_engine_rounded_columns_total"
	EngineRelaxedTotalKey    = "iround_engine_relaxed_rows_total"
	OracleChecksTotalKey     = "iround_oracle_checks_total"
	OracleCutsTotalKey       = "iround_oracle_cuts_total"
	ProblemSolvesTotalKey    = "iround_problem_solves_total"
	ProblemSolveSecondsKey   = "iround_problem_solve_seconds"

	Fail     = "fail"
	Feasible = "feasible"
	Violated = "violated"
)

// Collectors for iround metrics.
var (
	LPSolvesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: LPSolvesTotalKey,
		Help: "Cumulative number of LP solves, by resulting status.",
	}, []string{"status"})
	LPSolveSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    LPSolveSecondsKey,
		Help:    "Wall time of a single LP backend solve.",
		Buckets: prometheus.ExponentialBuckets(1e-5, 4, 10),
	})
	EngineIterationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: EngineIterationsTotalKey,
		Help: "Cumulative number of solve/round/relax iterations.",
	})
	EngineRoundedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: EngineRoundedTotalKey,
		Help: "Cumulative number of columns fixed by rounding.",
	})
	EngineRelaxedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: EngineRelaxedTotalKey,
		Help: "Cumulative number of rows deleted by relaxation.",
	})
	OracleChecksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: OracleChecksTotalKey,
		Help: "Cumulative number of separation oracle feasibility checks, by outcome.",
	}, []string{"result"})
	OracleCutsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: OracleCutsTotalKey,
		Help: "Cumulative number of violated rows added by separation oracles.",
	}, []string{"strategy"})
	ProblemSolvesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: ProblemSolvesTotalKey,
		Help: "Cumulative number of problem instance solves.",
	}, []string{"problem", "status"})
	ProblemSolveSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name: ProblemSolveSecondsKey,
		Help: "Wall time of a complete iterative rounding solve.",
	}, []string{"problem"})
)

// Collectors lists every iround collector.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		LPSolvesTotal,
		LPSolveSeconds,
		EngineIterationsTotal,
		EngineRoundedTotal,
		EngineRelaxedTotal,
		OracleChecksTotal,
		OracleCutsTotal,
		ProblemSolvesTotal,
		ProblemSolveSeconds,
	}
}
