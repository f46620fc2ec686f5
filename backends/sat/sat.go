// SPDX-License-Identifier: MIT

package sat

import (
	"fmt"

	"github.com/crillab/gophersat/solver"

	"github.com/katalvlaran/lpbridge/linear"
	"github.com/katalvlaran/lpbridge/params"
	"github.com/katalvlaran/lpbridge/problem"
	"github.com/katalvlaran/lpbridge/solution"
	"github.com/katalvlaran/lpbridge/solve"
)

const backendName = "sat"

var (
	unsupportedDoubles = []params.DoubleParam{
		params.MaxCPUSeconds, params.MaxWallSeconds, params.MaxTreeSizeMB,
	}
	unsupportedInts = []params.IntParam{params.MaxThreads}
	unsupportedStrs = []params.StringParam{params.WorkDir}
)

// Solver drives gophersat on zero-one problems. Not safe for concurrent
// use.
type Solver struct {
	solve.Base

	closed bool
}

// New returns a fresh gophersat-backed solver.
func New() *Solver {
	return &Solver{Base: solve.NewBase(backendName)}
}

var _ solve.Solver = (*Solver)(nil)

// costFunc is the minimized form of an objective: positive weights over
// literals, with negative terms and maximization folded away through
// literal negation.
type costFunc struct {
	lits    []solver.Lit
	weights []int
}

// Solve encodes the bound problem as pseudo-boolean constraints, runs
// gophersat, and normalizes the outcome.
func (s *Solver) Solve() (solve.Status, error) {
	if s.closed {
		return solve.NoStatus, solve.ErrSolverClosed
	}
	s.ResetResult()

	if err := s.CheckObjective(); err != nil {
		return solve.NoStatus, err
	}
	if err := params.AssertDefault(s.Parameters(), unsupportedDoubles, unsupportedInts, unsupportedStrs); err != nil {
		return solve.NoStatus, solve.WrapBackend(backendName, "parameters", err)
	}
	timing, err := s.PreferredTimingType()
	if err != nil {
		return solve.NoStatus, err
	}

	prob := s.Problem()
	wv := problem.WidenBools(prob)
	if err := problem.AssertZeroOne(prob); err != nil {
		return solve.NoStatus, solve.WrapBackend(backendName, "check domain", err)
	}
	if prob.NumVariables() == 0 {
		s.StoreResult(solve.Feasible, solution.New(prob), solve.Duration{Type: timing})
		return solve.Feasible, nil
	}

	arena := solve.NewArena(wv, 1)
	constrs, err := encodeConstraints(wv, arena)
	if err != nil {
		return solve.NoStatus, solve.WrapBackend(backendName, "encode", err)
	}
	cost, err := encodeObjective(wv, arena)
	if err != nil {
		return solve.NoStatus, solve.WrapBackend(backendName, "encode", err)
	}

	pb := solver.ParsePBConstrs(constrs)
	if cost != nil {
		pb.SetCostFunc(cost.lits, cost.weights)
	}
	engine := solver.New(pb)

	watch := solve.StartStopwatch(timing)
	var status solve.Status
	if cost != nil {
		best := engine.Minimize()
		if best < 0 {
			status = solve.Infeasible
		} else {
			status = solve.Optimal
		}
	} else {
		switch native := engine.Solve(); native {
		case solver.Sat:
			status = solve.Feasible
		case solver.Unsat:
			status = solve.Infeasible
		case solver.Indet:
			status = solve.ErrorNoSolution
		default:
			panic(fmt.Sprintf("sat: unknown native status %v", native))
		}
	}
	elapsed := watch.Stop()

	var sol *solution.Solution
	if status.IsFeasible() {
		sol = s.extract(engine.Model(), arena, status)
	}
	s.StoreResult(status, sol, elapsed)
	return status, nil
}

// encodeConstraints turns linear constraints and tightened zero-one
// bounds into pseudo-boolean constraints over positive literals.
func encodeConstraints(v problem.View, arena *solve.Arena) ([]solver.PBConstr, error) {
	var constrs []solver.PBConstr

	for _, id := range arena.Variables() {
		idx, _ := arena.ID(id)
		if lo, _ := v.VarLowerBound(id); lo != nil && *lo > 0 {
			constrs = append(constrs, solver.GtEq([]int{idx}, []int{1}, 1))
		}
		if up, _ := v.VarUpperBound(id); up != nil && *up < 1 {
			constrs = append(constrs, solver.LtEq([]int{idx}, []int{1}, 0))
		}
	}

	for _, c := range v.Constraints() {
		lits := make([]int, 0, c.Lhs().Len())
		weights := make([]int, 0, c.Lhs().Len())
		for _, t := range c.Lhs().Terms() {
			w, err := solve.AsInteger(t.Coefficient)
			if err != nil {
				return nil, fmt.Errorf("constraint %q: %w", c.ID(), err)
			}
			idx, _ := arena.ID(t.Variable)
			lits = append(lits, idx)
			weights = append(weights, w)
		}
		rhs, err := solve.AsInteger(c.Rhs())
		if err != nil {
			return nil, fmt.Errorf("constraint %q: %w", c.ID(), err)
		}
		switch c.Operator() {
		case linear.LE:
			constrs = append(constrs, solver.LtEq(lits, weights, rhs))
		case linear.GE:
			constrs = append(constrs, solver.GtEq(lits, weights, rhs))
		default:
			// GtEq and LtEq rewrite their slices in place when normalizing
			// negative weights; Eq copies them before building the pair.
			constrs = append(constrs, solver.Eq(lits, weights, rhs)...)
		}
	}
	return constrs, nil
}

// encodeObjective normalizes the objective into positive weights. A term
// w*x with w < 0 is rewritten onto the negated literal with weight |w|,
// and a maximization is negated into a minimization; the constant drift
// never matters because the reported objective is recomputed from the
// model.
func encodeObjective(v problem.View, arena *solve.Arena) (*costFunc, error) {
	fn, ok := v.Objective().Function()
	if !ok {
		return nil, nil
	}
	negate := v.Objective().Direction() == linear.Max
	cf := &costFunc{}
	for _, t := range fn.Terms() {
		w, err := solve.AsInteger(t.Coefficient)
		if err != nil {
			return nil, fmt.Errorf("objective: %w", err)
		}
		if negate {
			w = -w
		}
		idx, _ := arena.ID(t.Variable)
		switch {
		case w > 0:
			cf.lits = append(cf.lits, solver.IntToLit(int32(idx)))
			cf.weights = append(cf.weights, w)
		case w < 0:
			cf.lits = append(cf.lits, solver.IntToLit(int32(-idx)))
			cf.weights = append(cf.weights, -w)
		}
	}
	return cf, nil
}

// extract builds the result on the original, unwidened problem.
func (s *Solver) extract(model []bool, arena *solve.Arena, status solve.Status) *solution.Solution {
	prob := s.Problem()
	sol := solution.New(prob)
	objective := 0.0
	for i, id := range arena.Variables() {
		v := 0.0
		if i < len(model) && model[i] {
			v = 1
		}
		_, _ = sol.SetValue(id, s.CorrectedValue(id, v))
	}
	if status == solve.Optimal && prob.Objective().IsComplete() {
		// The engine minimizes the normalized cost; recover the original
		// objective value from the model itself.
		if v, ok := sol.ComputedObjectiveValue(); ok {
			objective = v
		}
		_ = sol.SetObjectiveValue(objective)
	}
	return sol
}

// WriteProblem is not available for this backend.
func (s *Solver) WriteProblem(f solve.FileFormat, path string, addExtension bool) error {
	if s.closed {
		return solve.ErrSolverClosed
	}
	return fmt.Errorf("%w: %v", solve.ErrUnsupportedFormat, f)
}

// UnderlyingSolver returns a pseudo-boolean problem encoded from the
// bound problem.
func (s *Solver) UnderlyingSolver() (any, error) {
	if s.closed {
		return nil, solve.ErrSolverClosed
	}
	if err := s.CheckObjective(); err != nil {
		return nil, err
	}
	prob := s.Problem()
	wv := problem.WidenBools(prob)
	if err := problem.AssertZeroOne(prob); err != nil {
		return nil, solve.WrapBackend(backendName, "check domain", err)
	}
	arena := solve.NewArena(wv, 1)
	constrs, err := encodeConstraints(wv, arena)
	if err != nil {
		return nil, solve.WrapBackend(backendName, "encode", err)
	}
	return solver.ParsePBConstrs(constrs), nil
}

// Close invalidates the adapter; gophersat keeps no native handle.
func (s *Solver) Close() error {
	s.closed = true
	return nil
}
