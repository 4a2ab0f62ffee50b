package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/iround/instance"
	"github.com/katalvlaran/iround/ir"
	"github.com/katalvlaran/iround/lp"
	"github.com/katalvlaran/iround/metrics"
)

type cmdSolve struct {
	Epsilon       float64 `long:"epsilon" env:"IROUND_EPSILON" default:"1e-7" description:"Tolerance shared by the rounding engine, its policies and the separation oracles"`
	Tolerance     float64 `long:"tolerance" env:"IROUND_TOLERANCE" default:"1e-10" description:"Feasibility tolerance of the LP backend"`
	MaxIterations int     `long:"max-iterations" default:"0" description:"Cap on engine iterations per instance (0 = unlimited)"`
	Parallel      int     `long:"parallel" short:"p" default:"4" description:"Number of instances solved concurrently"`
	Metrics       bool    `long:"metrics" description:"Write Prometheus metrics in text format to stderr after solving"`
	Args          struct {
		Files []string `positional-arg-name:"FILE" required:"1"`
	} `positional-args:"yes"`
}

// outcome is the result of one instance file.
type outcome struct {
	path   string
	report instance.Report
	err    error
}

func (cmd *cmdSolve) Execute([]string) error {
	startup()

	var env = lp.NewEnvironment(lp.WithTolerance(cmd.Tolerance))
	defer func() { _ = env.Close() }()

	var outcomes = solveFiles(env, cmd.Args.Files, cmd.Parallel,
		ir.WithEpsilon(cmd.Epsilon), ir.WithMaxIterations(cmd.MaxIterations))
	Must(writeTable(os.Stdout, outcomes), "failed to write table")

	if cmd.Metrics {
		Must(writeMetrics(os.Stderr), "failed to write metrics")
	}

	var failed int
	for _, o := range outcomes {
		if o.err != nil {
			log.WithFields(log.Fields{"file": o.path, "err": o.err}).Error("instance failed")
			failed++
		}
	}
	if failed != 0 {
		return fmt.Errorf("%d of %d instances failed", failed, len(outcomes))
	}
	return nil
}

// solveFiles solves every file, at most |parallel| at a time. Outcomes are
// in the order of |paths|. A failing file does not stop the others.
func solveFiles(env *lp.Environment, paths []string, parallel int, opts ...ir.Option) []outcome {
	var out = make([]outcome, len(paths))
	var group errgroup.Group
	if parallel > 0 {
		group.SetLimit(parallel)
	}

	for i, path := range paths {
		i, path := i, path
		group.Go(func() error {
			out[i].path = path
			var f, err = instance.Load(path)
			if err != nil {
				out[i].err = err
				return nil
			}
			var fileOpts = append([]ir.Option{ir.WithLogger(log.WithField("file", path))}, opts...)
			out[i].report, out[i].err = f.Solve(env, fileOpts...)
			return nil
		})
	}
	_ = group.Wait()

	return out
}

// writeTable renders one row per outcome.
func writeTable(w io.Writer, outcomes []outcome) error {
	var table = tablewriter.NewWriter(w)
	table.Header("Instance", "Problem", "Status", "Cost", "LP", "Iterations", "Rounded", "Relaxed", "Cuts", "Time", "Solution")

	for _, o := range outcomes {
		if o.err != nil {
			if err := table.Append([]string{o.path, "", "error", "", "", "", "", "", "", "", errors.Cause(o.err).Error()}); err != nil {
				return errors.Wrap(err, "appending table row")
			}
			continue
		}
		var r = o.report
		var cost = "-"
		if r.Status == lp.Optimal {
			cost = fmt.Sprintf("%g", r.Cost)
		}
		var row = []string{
			r.Name,
			r.Problem,
			r.Status.String(),
			cost,
			fmt.Sprintf("%.4g", r.Relaxation),
			fmt.Sprint(r.Iterations),
			fmt.Sprint(r.Rounded),
			fmt.Sprint(r.Relaxed),
			fmt.Sprint(r.Cuts),
			r.Duration.Round(time.Microsecond).String(),
			r.Detail,
		}
		if err := table.Append(row); err != nil {
			return errors.Wrap(err, "appending table row")
		}
	}

	return errors.Wrap(table.Render(), "rendering table")
}

// writeMetrics gathers the iround collectors into a private registry and
// writes them in the Prometheus text format.
func writeMetrics(w io.Writer) error {
	var reg = prometheus.NewRegistry()
	for _, c := range metrics.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	var families, err = reg.Gather()
	if err != nil {
		return err
	}
	var enc = expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err = enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
