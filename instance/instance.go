// Package instance reads problem instances from YAML files and solves them
// with the matching problem package.
package instance

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/katalvlaran/iround/core"
	"github.com/katalvlaran/iround/flow"
	"github.com/katalvlaran/iround/ir"
	"github.com/katalvlaran/iround/lp"
	"github.com/katalvlaran/iround/problems/bdmst"
	"github.com/katalvlaran/iround/problems/gap"
	"github.com/katalvlaran/iround/problems/steiner"
	"github.com/katalvlaran/iround/problems/treeaug"
	"github.com/katalvlaran/iround/separation"
)

// Problem kinds accepted in the "problem" field.
const (
	BDMST   = "bdmst"
	TreeAug = "treeaug"
	GAP     = "gap"
	Steiner = "steiner"
)

// ErrUnknownProblem is returned for a "problem" field naming no known kind.
var ErrUnknownProblem = errors.New("instance: unknown problem")

// Edge is one undirected edge. Tree marks the spanning tree of a treeaug
// instance; every other edge is a link.
type Edge struct {
	From   string  `yaml:"from"`
	To     string  `yaml:"to"`
	Weight float64 `yaml:"weight"`
	Tree   bool    `yaml:"tree,omitempty"`
}

// Requirement is a steiner connectivity requirement.
type Requirement struct {
	U string `yaml:"u"`
	V string `yaml:"v"`
	R int    `yaml:"r"`
}

// Assignment is the body of a gap instance; matrices are [machine][job].
type Assignment struct {
	Machines []string    `yaml:"machines"`
	Jobs     []string    `yaml:"jobs"`
	Capacity []float64   `yaml:"capacity"`
	Cost     [][]float64 `yaml:"cost"`
	Time     [][]float64 `yaml:"time"`
}

// Oracle configures the separation oracle of bdmst and steiner instances.
type Oracle struct {
	Strategy    string `yaml:"strategy,omitempty"`
	Seed        int64  `yaml:"seed,omitempty"`
	InitialTest *bool  `yaml:"initial_test,omitempty"`
	Flow        string `yaml:"flow,omitempty"` // "dinic" (default) or "edmonds-karp"
}

// File is a decoded instance file.
type File struct {
	Problem       string         `yaml:"problem"`
	Name          string         `yaml:"name,omitempty"`
	Edges         []Edge         `yaml:"edges,omitempty"`
	Bounds        map[string]int `yaml:"bounds,omitempty"`
	Requirements  []Requirement  `yaml:"requirements,omitempty"`
	Assignment    *Assignment    `yaml:"assignment,omitempty"`
	Oracle        Oracle         `yaml:"oracle,omitempty"`
	MaxIterations int            `yaml:"max_iterations,omitempty"`
}

// Decode strictly parses one instance. Unknown fields are errors.
func Decode(b []byte) (*File, error) {
	var f File
	if err := yaml.UnmarshalStrict(b, &f); err != nil {
		return nil, errors.Wrap(err, "instance: decode")
	}
	switch f.Problem {
	case BDMST, TreeAug, GAP, Steiner:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProblem, f.Problem)
	}

	return &f, nil
}

// Load reads and decodes the instance at path. A missing name defaults to
// the path.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "instance: read %s", path)
	}
	f, err := Decode(b)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	if f.Name == "" {
		f.Name = path
	}

	return f, nil
}

// Report summarizes one solved instance.
type Report struct {
	ir.Result
	Name    string
	Problem string
	Cost    float64
	Detail  string
}

// Graph builds the instance graph. Edge IDs follow file order ("e1", ...).
func (f *File) Graph() (*core.Graph, []string, error) {
	g := core.NewGraph(core.WithWeighted(), core.WithMultiEdges())
	var tree []string
	for _, e := range f.Edges {
		id, err := g.AddEdge(e.From, e.To, e.Weight)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "instance: edge %s-%s", e.From, e.To)
		}
		if e.Tree {
			tree = append(tree, id)
		}
	}

	return g, tree, nil
}

func (f *File) oracleOptions() ([]separation.Option, error) {
	var opts []separation.Option
	if f.Oracle.Strategy != "" {
		s, err := separation.ParseStrategy(f.Oracle.Strategy)
		if err != nil {
			return nil, err
		}
		opts = append(opts, separation.WithStrategy(s))
	}
	if f.Oracle.Seed != 0 {
		opts = append(opts, separation.WithSeed(f.Oracle.Seed))
	}
	if f.Oracle.InitialTest != nil {
		opts = append(opts, separation.WithInitialTest(*f.Oracle.InitialTest))
	}

	return opts, nil
}

func (f *File) flowAlgorithm() (flow.Algorithm, error) {
	if f.Oracle.Flow == "" {
		return flow.AlgDinic, nil
	}

	return flow.ParseAlgorithm(f.Oracle.Flow)
}

// Solve validates and solves the instance in env. engineOpts are applied
// after the file's own settings.
func (f *File) Solve(env *lp.Environment, engineOpts ...ir.Option) (Report, error) {
	rep := Report{Name: f.Name, Problem: f.Problem}
	if f.MaxIterations > 0 {
		engineOpts = append([]ir.Option{ir.WithMaxIterations(f.MaxIterations)}, engineOpts...)
	}
	oracleOpts, err := f.oracleOptions()
	if err != nil {
		return rep, err
	}
	alg, err := f.flowAlgorithm()
	if err != nil {
		return rep, err
	}

	var g *core.Graph
	var tree []string
	if f.Problem != GAP {
		if g, tree, err = f.Graph(); err != nil {
			return rep, err
		}
	}

	switch f.Problem {
	case BDMST:
		p, res, err := bdmst.Solve(env, g, f.Bounds, bdmst.WithOracleOptions(oracleOpts...),
			bdmst.WithEngineOptions(engineOpts...), bdmst.WithFlowAlgorithm(alg))
		if err != nil {
			return rep, err
		}
		rep.Result = res
		if res.Status == lp.Optimal {
			rep.Cost = p.Cost()
			rep.Detail = fmt.Sprintf("%s; max excess %d; unbounded MST %g", edgeList(p.Tree()), p.MaxExcess(), p.MSTCost())
		}
	case TreeAug:
		p, res, err := treeaug.Solve(env, g, tree, engineOpts...)
		if err != nil {
			return rep, err
		}
		rep.Result = res
		if res.Status == lp.Optimal {
			rep.Cost, rep.Detail = p.Cost(), edgeList(p.Links())
		}
	case GAP:
		if f.Assignment == nil {
			return rep, errors.New("instance: gap needs an assignment section")
		}
		a := f.Assignment
		p, res, err := gap.Solve(env, &gap.Instance{
			Machines: a.Machines,
			Jobs:     a.Jobs,
			Capacity: a.Capacity,
			Cost:     a.Cost,
			Time:     a.Time,
		}, engineOpts...)
		if err != nil {
			return rep, err
		}
		rep.Result = res
		if res.Status == lp.Optimal {
			rep.Cost, rep.Detail = p.Cost(), assignmentList(p.Assignment())
		}
	case Steiner:
		reqs := make([]steiner.Requirement, len(f.Requirements))
		for i, r := range f.Requirements {
			reqs[i] = steiner.Requirement{U: r.U, V: r.V, R: r.R}
		}
		p, res, err := steiner.Solve(env, g, reqs, steiner.WithOracleOptions(oracleOpts...),
			steiner.WithEngineOptions(engineOpts...), steiner.WithFlowAlgorithm(alg))
		if err != nil {
			return rep, err
		}
		rep.Result = res
		if res.Status == lp.Optimal {
			rep.Cost, rep.Detail = p.Cost(), edgeList(p.Edges())
		}
	default:
		return rep, fmt.Errorf("%w: %q", ErrUnknownProblem, f.Problem)
	}

	return rep, nil
}

func edgeList(edges []core.Edge) string {
	parts := make([]string, len(edges))
	for i, e := range edges {
		parts[i] = e.From + "-" + e.To
	}

	return strings.Join(parts, " ")
}

func assignmentList(a map[string]string) string {
	jobs := make([]string, 0, len(a))
	for j := range a {
		jobs = append(jobs, j)
	}
	sort.Strings(jobs)
	parts := make([]string, len(jobs))
	for i, j := range jobs {
		parts[i] = j + ":" + a[j]
	}

	return strings.Join(parts, " ")
}
