// Package gap solves the generalized assignment problem: assign every job to
// one machine, minimizing total cost, where machine i can process jobs of
// total time T_i. Iterative relaxation (the Shmoys-Tardos bound) returns an
// assignment that costs at most the LP optimum and loads every machine to at
// most 2·T_i.
package gap

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/iround/ir"
	"github.com/katalvlaran/iround/lp"
)

var (
	// ErrShape is returned when the instance matrices do not match the
	// number of machines and jobs.
	ErrShape = errors.New("gap: cost and time matrices must be machines × jobs")
	// ErrNegative is returned for negative times or capacities.
	ErrNegative = errors.New("gap: times and capacities must be non-negative")
)

// Instance is a GAP instance. Cost and Time are indexed [machine][job].
type Instance struct {
	Machines []string
	Jobs     []string
	Capacity []float64
	Cost     [][]float64
	Time     [][]float64
}

// Validate checks the shape of the instance. A job no machine can take is
// not an error: the LP reports it as lp.Infeasible.
func (in *Instance) Validate() error {
	if len(in.Capacity) != len(in.Machines) || len(in.Cost) != len(in.Machines) || len(in.Time) != len(in.Machines) {
		return ErrShape
	}
	for i := range in.Machines {
		if len(in.Cost[i]) != len(in.Jobs) || len(in.Time[i]) != len(in.Jobs) {
			return fmt.Errorf("%w: machine %q", ErrShape, in.Machines[i])
		}
		if in.Capacity[i] < 0 {
			return fmt.Errorf("%w: capacity of %q", ErrNegative, in.Machines[i])
		}
		for j, p := range in.Time[i] {
			if p < 0 {
				return fmt.Errorf("%w: time of %q on %q", ErrNegative, in.Jobs[j], in.Machines[i])
			}
		}
	}

	return nil
}

type pair struct{ machine, job int }

// Problem solves one Instance.
type Problem struct {
	in    *Instance
	cmp   lp.Compare
	round ir.RoundPolicy
	relax ir.RelaxPolicy

	cols       map[lp.ColID]pair
	order      []lp.ColID
	machineRow map[lp.RowID]int

	assignment map[string]string
	cost       float64
	load       []float64
}

// New prepares a Problem over in. The policies use the epsilon set by opts
// (see ir.EpsilonOf).
func New(in *Instance, opts ...ir.Option) *Problem {
	p := &Problem{
		in:         in,
		cmp:        lp.Compare{Eps: ir.EpsilonOf(opts...)},
		cols:       make(map[lp.ColID]pair),
		machineRow: make(map[lp.RowID]int),
	}
	p.round = ir.RoundEquals{Compare: p.cmp, Values: []float64{0, 1}}
	p.relax = ir.RelaxAny{ir.RelaxEmpty{}, ir.RelaxFunc(p.relaxMachine)}

	return p
}

// Name implements ir.Named.
func (p *Problem) Name() string { return "gap" }

// Validate checks the instance.
func (p *Problem) Validate() error { return p.in.Validate() }

// Init implements ir.Problem. Pairs whose time exceeds the machine capacity
// get no column.
func (p *Problem) Init(m *lp.Model) error {
	in := p.in
	jobCols := make([][]lp.ColID, len(in.Jobs))
	machineCols := make([][]lp.ColID, len(in.Machines))
	machineCoefs := make([][]float64, len(in.Machines))
	for i := range in.Machines {
		for j := range in.Jobs {
			if in.Time[i][j] > in.Capacity[i] {
				continue
			}
			c := m.AddColumn(in.Cost[i][j], lp.Double, 0, 1, fmt.Sprintf("x(%s,%s)", in.Machines[i], in.Jobs[j]))
			p.cols[c] = pair{machine: i, job: j}
			p.order = append(p.order, c)
			jobCols[j] = append(jobCols[j], c)
			machineCols[i] = append(machineCols[i], c)
			machineCoefs[i] = append(machineCoefs[i], in.Time[i][j])
		}
	}
	for j, job := range in.Jobs {
		cols := jobCols[j]
		coefs := make([]float64, len(cols))
		for k := range coefs {
			coefs[k] = 1
		}
		m.AddRowWithCoefficients(lp.Fixed, 1, 1, "job("+job+")", cols, coefs)
	}
	for i, machine := range in.Machines {
		row := m.AddRowWithCoefficients(lp.Upper, 0, in.Capacity[i], "load("+machine+")", machineCols[i], machineCoefs[i])
		p.machineRow[row] = i
	}

	return nil
}

// RoundCondition implements ir.Problem: zero and one are fixed.
func (p *Problem) RoundCondition(m *lp.Model, col lp.ColID) (float64, bool) {
	return p.round.Round(m, col)
}

// RelaxCondition implements ir.Problem.
func (p *Problem) RelaxCondition(m *lp.Model, row lp.RowID) bool {
	return p.relax.Relax(m, row)
}

// relaxMachine drops a load row with at most one fractional job, or with two
// whose fractions sum to at least one.
func (p *Problem) relaxMachine(m *lp.Model, row lp.RowID) bool {
	if _, ok := p.machineRow[row]; !ok {
		return false
	}
	switch deg := m.RowDegree(row); {
	case deg <= 1:
		return true
	case deg == 2:
		var sum float64
		for _, c := range m.RowColumns(row) {
			sum += m.Value(c)
		}

		return p.cmp.GreaterEq(sum, 1)
	default:
		return false
	}
}

// SetSolution implements ir.Problem.
func (p *Problem) SetSolution(value func(lp.ColID) float64) {
	in := p.in
	p.assignment = make(map[string]string, len(in.Jobs))
	p.load = make([]float64, len(in.Machines))
	p.cost = 0
	for _, c := range p.order {
		if value(c) <= 0.5 {
			continue
		}
		pr := p.cols[c]
		p.assignment[in.Jobs[pr.job]] = in.Machines[pr.machine]
		p.load[pr.machine] += in.Time[pr.machine][pr.job]
		p.cost += in.Cost[pr.machine][pr.job]
	}
}

// Assignment maps every job to its machine.
func (p *Problem) Assignment() map[string]string { return p.assignment }

// Cost returns the total assignment cost.
func (p *Problem) Cost() float64 { return p.cost }

// Load returns the total time assigned to each machine, in Machines order.
func (p *Problem) Load() []float64 { return p.load }

// Solve validates and solves in.
func Solve(env *lp.Environment, in *Instance, opts ...ir.Option) (*Problem, ir.Result, error) {
	p := New(in, opts...)
	if err := p.Validate(); err != nil {
		return nil, ir.Result{}, err
	}
	res, err := ir.Solve(env, p, opts...)

	return p, res, err
}
