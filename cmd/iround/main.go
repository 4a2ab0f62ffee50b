// Command iround solves network design instances read from YAML files by
// iterative rounding, and prints one table row per instance.
package main

import (
	"github.com/jessevdk/go-flags"
)

const iniFilename = "iround.ini"

var (
	baseCfg = new(struct {
		Log LogConfig `group:"Logging" namespace:"log" env-namespace:"LOG"`
	})
	parser = flags.NewParser(baseCfg, flags.Default)
)

func startup() {
	InitLog(baseCfg.Log)
}

func init() {
	_, err := parser.AddCommand("solve", "Solve instance files", `
Solve each instance file (bdmst, treeaug, gap or steiner) and print a summary
table. Files are solved concurrently, each with its own LP model.
`, &cmdSolve{})
	Must(err, "failed to add command")

	_, err = parser.AddCommand("generate", "Generate a random instance file", `
Generate a random, feasible instance of the given problem kind and write it as
YAML. Graph instances are built on a random spanning tree; a fixed seed always
yields the same file.
`, &cmdGenerate{})
	Must(err, "failed to add command")

	AddPrintConfigCmd(parser, iniFilename)
}

func main() {
	MustParseConfig(parser, iniFilename)
}
