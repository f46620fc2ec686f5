// SPDX-License-Identifier: MIT

package highs

import (
	"fmt"
	"math"

	gohighs "github.com/lanl/highs"

	"github.com/katalvlaran/lpbridge/linear"
	"github.com/katalvlaran/lpbridge/params"
	"github.com/katalvlaran/lpbridge/problem"
	"github.com/katalvlaran/lpbridge/solution"
	"github.com/katalvlaran/lpbridge/solve"
)

const backendName = "highs"

var (
	unsupportedDoubles = []params.DoubleParam{
		params.MaxCPUSeconds, params.MaxWallSeconds, params.MaxTreeSizeMB,
	}
	unsupportedInts = []params.IntParam{params.MaxThreads}
	unsupportedStrs = []params.StringParam{params.WorkDir}
)

// Solver drives HiGHS on the bound problem. Not safe for concurrent use.
type Solver struct {
	solve.Base

	closed bool
}

// New returns a fresh HiGHS-backed solver.
func New() *Solver {
	return &Solver{Base: solve.NewBase(backendName)}
}

var _ solve.Solver = (*Solver)(nil)

// Solve assembles the native model, runs it, and normalizes the outcome.
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
	if prob.NumVariables() == 0 {
		s.StoreResult(solve.Feasible, solution.New(prob), solve.Duration{Type: timing})
		return solve.Feasible, nil
	}

	arena := solve.NewArena(wv, 0)
	model := build(wv, arena)
	mip := wv.Dimension().Ints > 0

	watch := solve.StartStopwatch(timing)
	native, err := model.Solve()
	elapsed := watch.Stop()
	if err != nil {
		s.StoreResult(solve.ErrorNoSolution, nil, elapsed)
		return solve.ErrorNoSolution, solve.WrapBackend(backendName, "solve", err)
	}

	hasPoint := len(native.ColumnPrimal) >= arena.Len() && arena.Len() > 0
	status := mapStatus(native.Status, prob.Objective().IsComplete(), hasPoint)
	var sol *solution.Solution
	if status.IsFeasible() && hasPoint {
		sol = s.extract(&native, arena, mip, status)
	}
	s.StoreResult(status, sol, elapsed)
	return status, nil
}

// build assembles the sparse native model from the widened view.
func build(v problem.View, arena *solve.Arena) *gohighs.Model {
	n := arena.Len()
	model := &gohighs.Model{
		ColCosts: make([]float64, n),
		ColLower: make([]float64, n),
		ColUpper: make([]float64, n),
		VarTypes: make([]gohighs.VariableType, n),
	}

	for i, id := range arena.Variables() {
		t, _ := v.VarType(id)
		if t.IsInt() {
			model.VarTypes[i] = gohighs.IntegerType
		} else {
			model.VarTypes[i] = gohighs.ContinuousType
		}
		model.ColLower[i] = math.Inf(-1)
		if lo, _ := v.VarLowerBound(id); lo != nil {
			model.ColLower[i] = *lo
		}
		model.ColUpper[i] = math.Inf(1)
		if up, _ := v.VarUpperBound(id); up != nil {
			model.ColUpper[i] = *up
		}
	}

	for row, c := range v.Constraints() {
		for _, t := range c.Lhs().Terms() {
			col, _ := arena.ID(t.Variable)
			model.ConstMatrix = append(model.ConstMatrix,
				gohighs.Nonzero{Row: row, Col: col, Val: t.Coefficient})
		}
		lo, up := math.Inf(-1), math.Inf(1)
		switch c.Operator() {
		case linear.LE:
			up = c.Rhs()
		case linear.GE:
			lo = c.Rhs()
		default:
			lo, up = c.Rhs(), c.Rhs()
		}
		model.RowLower = append(model.RowLower, lo)
		model.RowUpper = append(model.RowUpper, up)
	}

	if fn, ok := v.Objective().Function(); ok {
		model.Maximize = v.Objective().Direction() == linear.Max
		for _, t := range fn.Terms() {
			col, _ := arena.ID(t.Variable)
			model.ColCosts[col] = t.Coefficient
		}
	}
	return model
}

// extract builds the result on the original, unwidened problem.
func (s *Solver) extract(native *gohighs.Solution, arena *solve.Arena, mip bool, status solve.Status) *solution.Solution {
	prob := s.Problem()
	sol := solution.New(prob)
	for i, id := range arena.Variables() {
		_, _ = sol.SetValue(id, s.CorrectedValue(id, native.ColumnPrimal[i]))
	}
	if !mip && len(native.RowDual) >= prob.NumConstraints() {
		for i, c := range prob.Constraints() {
			_, _ = sol.SetDualValue(c, native.RowDual[i])
		}
	}
	if status == solve.Optimal && prob.Objective().IsComplete() {
		_ = sol.SetObjectiveValue(native.Objective)
	}
	return sol
}

// mapStatus normalizes a native HiGHS model status. An unknown code is a
// defect in the adapter and panics.
func mapStatus(native gohighs.ModelStatus, hasObjective, hasPoint bool) solve.Status {
	switch native {
	case gohighs.Optimal:
		if !hasObjective {
			return solve.Feasible
		}
		return solve.Optimal
	case gohighs.ModelEmpty:
		return solve.Feasible
	case gohighs.Infeasible:
		return solve.Infeasible
	case gohighs.Unbounded:
		return solve.Unbounded
	case gohighs.UnboundedOrInfeasible:
		return solve.InfeasibleOrUnbounded
	case gohighs.TimeLimit:
		if hasPoint {
			return solve.TimeLimitWithSolution
		}
		return solve.TimeLimitNoSolution
	case gohighs.ObjectiveBound, gohighs.ObjectiveTarget, gohighs.IterationLimit:
		if hasPoint {
			return solve.Feasible
		}
		return solve.ErrorNoSolution
	case gohighs.NotSet, gohighs.LoadError, gohighs.ModelError, gohighs.PresolveError,
		gohighs.SolveError, gohighs.PostsolveError, gohighs.UnknownModelStatus:
		if hasPoint {
			return solve.ErrorWithSolution
		}
		return solve.ErrorNoSolution
	default:
		panic(fmt.Sprintf("highs: unknown native status %v", native))
	}
}

// WriteProblem is not available for this backend.
func (s *Solver) WriteProblem(f solve.FileFormat, path string, addExtension bool) error {
	if s.closed {
		return solve.ErrSolverClosed
	}
	return fmt.Errorf("%w: %v", solve.ErrUnsupportedFormat, f)
}

// UnderlyingSolver returns the native model assembled from the bound
// problem. The model is plain data and stays valid after Close.
func (s *Solver) UnderlyingSolver() (any, error) {
	if s.closed {
		return nil, solve.ErrSolverClosed
	}
	if err := s.CheckObjective(); err != nil {
		return nil, err
	}
	wv := problem.WidenBools(s.Problem())
	return build(wv, solve.NewArena(wv, 0)), nil
}

// Close invalidates the adapter; HiGHS keeps no persistent handle.
func (s *Solver) Close() error {
	s.closed = true
	return nil
}
