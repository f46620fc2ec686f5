// SPDX-License-Identifier: MIT

package lpsolve

import (
	"fmt"
	"math"
	"os"

	"github.com/draffensperger/golp"

	"github.com/katalvlaran/lpbridge/linear"
	"github.com/katalvlaran/lpbridge/params"
	"github.com/katalvlaran/lpbridge/problem"
	"github.com/katalvlaran/lpbridge/solution"
	"github.com/katalvlaran/lpbridge/solve"
)

const backendName = "lpsolve"

var (
	unsupportedDoubles = []params.DoubleParam{
		params.MaxCPUSeconds, params.MaxWallSeconds, params.MaxTreeSizeMB,
	}
	unsupportedInts = []params.IntParam{params.MaxThreads}
	unsupportedStrs = []params.StringParam{params.WorkDir}
)

// Solver drives lp_solve on the bound problem. Not safe for concurrent
// use.
type Solver struct {
	solve.Base

	// lazily built handle exposed through UnderlyingSolver, consumed by
	// the next Solve and dropped by Close
	cached *golp.LP
	closed bool
}

// New returns a fresh lp_solve-backed solver.
func New() *Solver {
	return &Solver{Base: solve.NewBase(backendName)}
}

var _ solve.Solver = (*Solver)(nil)

// Solve translates the bound problem, runs lp_solve, and normalizes the
// outcome.
func (s *Solver) Solve() (solve.Status, error) {
	if s.closed {
		return solve.NoStatus, solve.ErrSolverClosed
	}
	s.ResetResult()

	if err := s.CheckObjective(); err != nil {
		s.cached = nil
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
		s.cached = nil
		s.StoreResult(solve.Feasible, solution.New(prob), solve.Duration{Type: timing})
		return solve.Feasible, nil
	}

	arena := solve.NewArena(wv, 0)
	// A handle built for UnderlyingSolver is consumed here, so manual
	// tuning applies to this run.
	lp := s.cached
	s.cached = nil
	if lp == nil {
		var err error
		if lp, err = s.build(wv, arena); err != nil {
			return solve.NoStatus, err
		}
	}

	watch := solve.StartStopwatch(timing)
	native := lp.Solve()
	elapsed := watch.Stop()

	status := mapStatus(native, prob.Objective().IsComplete())
	var sol *solution.Solution
	if status.IsFeasible() {
		sol = s.extract(lp, arena, status, wv.Dimension().Ints > 0)
	}
	s.StoreResult(status, sol, elapsed)
	return status, nil
}

// build loads the widened view into a fresh native problem.
func (s *Solver) build(v problem.View, arena *solve.Arena) (*golp.LP, error) {
	lp := golp.NewLP(0, arena.Len())
	lp.SetVerboseLevel(golp.NEUTRAL)

	for i, id := range arena.Variables() {
		if name := s.VarExportName(solve.FormatSolverPreferred, id); name != "" {
			lp.SetColName(i, name)
		}
		t, _ := v.VarType(id)
		if t.IsInt() {
			lp.SetInt(i, true)
		}
		// lp_solve defaults columns to [0, +inf); bounds are always set
		// explicitly.
		lo, up := math.Inf(-1), math.Inf(1)
		if b, _ := v.VarLowerBound(id); b != nil {
			lo = *b
		}
		if b, _ := v.VarUpperBound(id); b != nil {
			up = *b
		}
		lp.SetBounds(i, lo, up)
	}

	for _, c := range v.Constraints() {
		entries := make([]golp.Entry, 0, c.Lhs().Len())
		for _, t := range c.Lhs().Terms() {
			col, _ := arena.ID(t.Variable)
			entries = append(entries, golp.Entry{Col: col, Val: t.Coefficient})
		}
		var ct golp.ConstraintType
		switch c.Operator() {
		case linear.LE:
			ct = golp.LE
		case linear.GE:
			ct = golp.GE
		default:
			ct = golp.EQ
		}
		if err := lp.AddConstraintSparse(entries, ct, c.Rhs()); err != nil {
			return nil, solve.WrapBackend(backendName, "add constraint", err)
		}
	}

	if fn, ok := v.Objective().Function(); ok {
		row := make([]float64, arena.Len())
		for _, t := range fn.Terms() {
			col, _ := arena.ID(t.Variable)
			row[col] = t.Coefficient
		}
		lp.SetObjFn(row)
		if v.Objective().Direction() == linear.Max {
			lp.SetMaximize()
		}
	}
	return lp, nil
}

// extract builds the result on the original, unwidened problem. Row
// duals are meaningful for pure LPs only.
func (s *Solver) extract(lp *golp.LP, arena *solve.Arena, status solve.Status, mip bool) *solution.Solution {
	prob := s.Problem()
	sol := solution.New(prob)
	vals := lp.Variables()
	for i, id := range arena.Variables() {
		if i >= len(vals) {
			break
		}
		_, _ = sol.SetValue(id, s.CorrectedValue(id, vals[i]))
	}
	if !mip {
		duals := lp.Duals()
		for i, c := range prob.Constraints() {
			if i >= len(duals) {
				break
			}
			_, _ = sol.SetDualValue(c, duals[i])
		}
	}
	if status == solve.Optimal && prob.Objective().IsComplete() {
		_ = sol.SetObjectiveValue(lp.Objective())
	}
	return sol
}

// mapStatus normalizes a native lp_solve return code. An unknown code is
// a defect in the adapter and panics.
func mapStatus(native golp.SolutionType, hasObjective bool) solve.Status {
	switch native {
	case golp.OPTIMAL:
		if !hasObjective {
			return solve.Feasible
		}
		return solve.Optimal
	case golp.SUBOPTIMAL, golp.FEASFOUND:
		return solve.Feasible
	case golp.INFEASIBLE, golp.NOFEASFOUND:
		return solve.Infeasible
	case golp.UNBOUNDED:
		return solve.Unbounded
	case golp.NOMEMORY:
		return solve.MemoryLimitNoSolution
	case golp.TIMEOUT:
		return solve.TimeLimitNoSolution
	case golp.DEGENERATE, golp.NUMFAILURE, golp.USERABORT, golp.PROCFAIL, golp.PROCBREAK:
		return solve.ErrorNoSolution
	default:
		panic(fmt.Sprintf("lpsolve: unknown native status %d", native))
	}
}

// WriteProblem writes the bound problem to path in the lp_solve LP
// format. FormatSolverPreferred selects LP; MPS is not available through
// the binding.
func (s *Solver) WriteProblem(f solve.FileFormat, path string, addExtension bool) error {
	if s.closed {
		return solve.ErrSolverClosed
	}
	if f != solve.FormatLP && f != solve.FormatSolverPreferred {
		return fmt.Errorf("%w: %v", solve.ErrUnsupportedFormat, f)
	}
	if err := s.CheckObjective(); err != nil {
		return err
	}
	if addExtension {
		path += solve.FormatLP.Extension()
	}
	wv := problem.WidenBools(s.Problem())
	lp, err := s.build(wv, solve.NewArena(wv, 0))
	if err != nil {
		return err
	}
	// The binding renders LP format to a string only.
	if err := os.WriteFile(path, []byte(lp.WriteToString()), 0o644); err != nil {
		return solve.WrapBackend(backendName, "write LP", err)
	}
	return nil
}

// UnderlyingSolver returns a native model lazily loaded from the bound
// problem. The next Solve consumes the handle, so tuning applied through
// it affects that run.
func (s *Solver) UnderlyingSolver() (any, error) {
	if s.closed {
		return nil, solve.ErrSolverClosed
	}
	if err := s.CheckObjective(); err != nil {
		return nil, err
	}
	if s.cached == nil {
		wv := problem.WidenBools(s.Problem())
		lp, err := s.build(wv, solve.NewArena(wv, 0))
		if err != nil {
			return nil, err
		}
		s.cached = lp
	}
	return s.cached, nil
}

// Close drops the native handle; lp_solve models are reclaimed by a
// finalizer. Safe to call more than once.
func (s *Solver) Close() error {
	s.cached = nil
	s.closed = true
	return nil
}
