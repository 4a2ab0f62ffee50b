package instance

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/katalvlaran/iround/builder"
	"github.com/katalvlaran/iround/core"
)

// GenerateConfig describes a random instance.
type GenerateConfig struct {
	Problem  string
	Vertices int     // graph vertices, or machines for gap
	Jobs     int     // gap only
	Density  float64 // probability of each extra edge
	MaxCost  int     // costs are uniform integers in [1, MaxCost]
	Pairs    int     // steiner requirement pairs
	Demand   int     // steiner r per pair: 1, or 2 on a Hamiltonian cycle base
	Seed     int64
}

// Generate returns a random, feasible instance. Graph instances start from
// a random spanning tree so that every requirement can be met; steiner
// instances with Demand 2 start from a cycle, which is 2-edge-connected.
func Generate(cfg GenerateConfig) (*File, error) {
	switch cfg.Problem {
	case BDMST, TreeAug, GAP, Steiner:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProblem, cfg.Problem)
	}
	if cfg.MaxCost < 1 {
		cfg.MaxCost = 1
	}
	f := &File{
		Problem: cfg.Problem,
		Name:    fmt.Sprintf("%s-%d-seed%d", cfg.Problem, cfg.Vertices, cfg.Seed),
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Problem == GAP {
		f.Assignment = generateAssignment(rng, cfg)
		return f, nil
	}

	treeWeight := builder.UniformIntWeightFn(1, cfg.MaxCost)
	if cfg.Problem == TreeAug {
		treeWeight = builder.ConstantWeightFn(0)
	}
	demand := 1
	base := builder.RandomTree(cfg.Vertices)
	if cfg.Problem == Steiner && cfg.Demand >= 2 {
		demand, base = 2, builder.Cycle(cfg.Vertices)
	}
	tree, err := builder.BuildGraph(
		[]core.GraphOption{core.WithWeighted()},
		[]builder.BuilderOption{builder.WithRand(rng), builder.WithWeightFn(treeWeight), builder.WithSymbNumb("v")},
		base,
	)
	if err != nil {
		return nil, errors.Wrap(err, "instance: generate tree")
	}
	extra, err := builder.BuildGraph(
		[]core.GraphOption{core.WithWeighted()},
		[]builder.BuilderOption{builder.WithRand(rng), builder.WithWeightFn(builder.UniformIntWeightFn(1, cfg.MaxCost)), builder.WithSymbNumb("v")},
		builder.RandomSparse(cfg.Vertices, cfg.Density),
	)
	if err != nil {
		return nil, errors.Wrap(err, "instance: generate edges")
	}

	for _, e := range tree.Edges() {
		f.Edges = append(f.Edges, Edge{From: e.From, To: e.To, Weight: e.Weight, Tree: cfg.Problem == TreeAug})
	}
	for _, e := range extra.Edges() {
		f.Edges = append(f.Edges, Edge{From: e.From, To: e.To, Weight: e.Weight})
	}

	switch cfg.Problem {
	case BDMST:
		// The random tree meets these bounds, so the LP is feasible.
		f.Bounds = make(map[string]int, cfg.Vertices)
		for _, v := range tree.Vertices() {
			d, _ := tree.Degree(v)
			f.Bounds[v] = max(d, 1)
		}
	case TreeAug:
		// Links from the root to every leaf cover each tree edge.
		root := tree.Vertices()[0]
		for _, v := range tree.Vertices() {
			if d, _ := tree.Degree(v); v != root && d == 1 {
				f.Edges = append(f.Edges, Edge{From: root, To: v, Weight: float64(1 + rng.Intn(cfg.MaxCost))})
			}
		}
	default:
		ids := tree.Vertices()
		for k := 0; k < cfg.Pairs && len(ids) > 1; k++ {
			i, j := rng.Intn(len(ids)), rng.Intn(len(ids)-1)
			if j >= i {
				j++
			}
			f.Requirements = append(f.Requirements, Requirement{U: ids[i], V: ids[j], R: demand})
		}
	}

	return f, nil
}

func generateAssignment(rng *rand.Rand, cfg GenerateConfig) *Assignment {
	a := &Assignment{}
	for j := 0; j < cfg.Jobs; j++ {
		a.Jobs = append(a.Jobs, fmt.Sprintf("j%d", j))
	}
	for i := 0; i < cfg.Vertices; i++ {
		a.Machines = append(a.Machines, fmt.Sprintf("m%d", i))
		cost := make([]float64, cfg.Jobs)
		time := make([]float64, cfg.Jobs)
		var total float64
		for j := range cost {
			cost[j] = float64(1 + rng.Intn(cfg.MaxCost))
			time[j] = float64(1 + rng.Intn(4))
			total += time[j]
		}
		a.Cost = append(a.Cost, cost)
		a.Time = append(a.Time, time)
		// Every machine could take every job: the LP is feasible.
		a.Capacity = append(a.Capacity, total)
	}

	return a
}

// Encode writes f as YAML in the format accepted by Decode.
func (f *File) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(f); err != nil {
		return errors.Wrap(err, "instance: encode")
	}

	return enc.Close()
}
