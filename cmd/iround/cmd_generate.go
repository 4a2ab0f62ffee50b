package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/katalvlaran/iround/instance"
)

type cmdGenerate struct {
	Problem  string  `long:"problem" required:"true" choice:"bdmst" choice:"treeaug" choice:"gap" choice:"steiner" description:"Kind of instance to generate"`
	Vertices int     `long:"vertices" short:"n" default:"10" description:"Number of vertices (machines for gap)"`
	Jobs     int     `long:"jobs" default:"10" description:"Number of jobs (gap only)"`
	Density  float64 `long:"density" default:"0.3" description:"Probability of each edge beyond the random spanning tree"`
	MaxCost  int     `long:"max-cost" default:"10" description:"Costs are drawn uniformly from [1, max-cost]"`
	Pairs    int     `long:"pairs" default:"3" description:"Number of connectivity requirements (steiner only)"`
	Demand   int     `long:"demand" default:"1" description:"Requirement per pair, 1 or 2 (steiner only)"`
	Seed     int64   `long:"seed" default:"1" description:"Random seed"`
	Output   string  `long:"output" short:"o" description:"Output file (default stdout)"`
}

func (cmd *cmdGenerate) Execute([]string) error {
	startup()

	var w io.Writer = os.Stdout
	if cmd.Output != "" {
		fout, err := os.Create(cmd.Output)
		if err != nil {
			return errors.Wrap(err, "creating output")
		}
		defer func() { _ = fout.Close() }()
		w = fout
	}
	if err := cmd.generate(w); err != nil {
		return err
	}
	log.WithFields(log.Fields{"problem": cmd.Problem, "seed": cmd.Seed}).Info("generated instance")

	return nil
}

func (cmd *cmdGenerate) generate(w io.Writer) error {
	f, err := instance.Generate(instance.GenerateConfig{
		Problem:  cmd.Problem,
		Vertices: cmd.Vertices,
		Jobs:     cmd.Jobs,
		Density:  cmd.Density,
		MaxCost:  cmd.MaxCost,
		Pairs:    cmd.Pairs,
		Demand:   cmd.Demand,
		Seed:     cmd.Seed,
	})
	if err != nil {
		return err
	}

	return f.Encode(w)
}
