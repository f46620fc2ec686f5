// SPDX-License-Identifier: MIT

package glpk

import (
	"fmt"

	goglpk "github.com/lukpank/go-glpk/glpk"

	"github.com/katalvlaran/lpbridge/linear"
	"github.com/katalvlaran/lpbridge/params"
	"github.com/katalvlaran/lpbridge/problem"
	"github.com/katalvlaran/lpbridge/solution"
	"github.com/katalvlaran/lpbridge/solve"
)

const backendName = "glpk"

// Parameters GLPK has no knob for. Time limits are rejected rather than
// silently ignored.
var (
	unsupportedDoubles = []params.DoubleParam{
		params.MaxCPUSeconds, params.MaxWallSeconds, params.MaxTreeSizeMB,
	}
	unsupportedInts = []params.IntParam{params.MaxThreads}
	unsupportedStrs = []params.StringParam{params.WorkDir}
)

// Solver drives GLPK on the bound problem. Not safe for concurrent use.
type Solver struct {
	solve.Base

	// lazily built handle exposed through UnderlyingSolver, consumed by
	// the next Solve and released by Close
	cached *goglpk.Prob
	closed bool
}

// New returns a fresh GLPK-backed solver.
func New() *Solver {
	return &Solver{Base: solve.NewBase(backendName)}
}

var _ solve.Solver = (*Solver)(nil)

// Solve translates the bound problem, runs simplex or branch-and-cut, and
// normalizes the outcome.
func (s *Solver) Solve() (solve.Status, error) {
	if s.closed {
		return solve.NoStatus, solve.ErrSolverClosed
	}
	s.ResetResult()

	if err := s.CheckObjective(); err != nil {
		s.dropCached()
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
		// Nothing to optimize and no constraint can be violated.
		s.dropCached()
		s.StoreResult(solve.Feasible, solution.New(prob), solve.Duration{Type: timing})
		return solve.Feasible, nil
	}

	arena := solve.NewArena(wv, 1)
	// A handle built for UnderlyingSolver is consumed here, so manual
	// tuning applies to this run. The handle is released on every exit.
	lp := s.cached
	s.cached = nil
	if lp == nil {
		lp = s.build(wv, arena)
	}
	defer lp.Delete()

	mip := wv.Dimension().Ints > 0
	watch := solve.StartStopwatch(timing)

	var native int
	if mip {
		iocp := goglpk.NewIocp()
		iocp.SetPresolve(true)
		iocp.SetMsgLev(goglpk.MSG_OFF)
		if err := lp.Intopt(iocp); err != nil {
			s.StoreResult(solve.ErrorNoSolution, nil, watch.Stop())
			return solve.ErrorNoSolution, solve.WrapBackend(backendName, "intopt", err)
		}
		native = int(lp.MipStatus())
	} else {
		smcp := goglpk.NewSmcp()
		smcp.SetMsgLev(goglpk.MSG_OFF)
		if err := lp.Simplex(smcp); err != nil {
			s.StoreResult(solve.ErrorNoSolution, nil, watch.Stop())
			return solve.ErrorNoSolution, solve.WrapBackend(backendName, "simplex", err)
		}
		native = int(lp.Status())
	}
	elapsed := watch.Stop()

	status := mapStatus(native, prob.Objective().IsComplete())
	var sol *solution.Solution
	if status.IsFeasible() {
		sol = s.extract(lp, arena, mip, status)
	}
	s.StoreResult(status, sol, elapsed)
	return status, nil
}

// build loads the widened view into a fresh native problem. Export names
// resolve against the backend's preferred format.
func (s *Solver) build(v problem.View, arena *solve.Arena) *goglpk.Prob {
	lp := goglpk.New()
	if name := v.Name(); name != "" {
		lp.SetProbName(name)
	}

	if arena.Len() > 0 {
		lp.AddCols(arena.Len())
	}
	for i, id := range arena.Variables() {
		col := i + 1
		if name := s.VarExportName(solve.FormatSolverPreferred, id); name != "" {
			lp.SetColName(col, name)
		}
		t, _ := v.VarType(id)
		if t.IsInt() {
			lp.SetColKind(col, goglpk.IV)
		} else {
			lp.SetColKind(col, goglpk.CV)
		}
		lo, _ := v.VarLowerBound(id)
		up, _ := v.VarUpperBound(id)
		setColBounds(lp, col, lo, up)
	}

	cs := v.Constraints()
	if len(cs) > 0 {
		lp.AddRows(len(cs))
	}
	for i, c := range cs {
		row := i + 1
		if name := s.ConstraintExportName(solve.FormatSolverPreferred, c); name != "" {
			lp.SetRowName(row, name)
		}
		// ind[0] and val[0] are ignored by the sparse loader.
		ind := []int32{0}
		val := []float64{0}
		for _, t := range c.Lhs().Terms() {
			col, _ := arena.ID(t.Variable)
			ind = append(ind, int32(col))
			val = append(val, t.Coefficient)
		}
		lp.SetMatRow(row, ind, val)
		switch c.Operator() {
		case linear.LE:
			lp.SetRowBnds(row, goglpk.UP, 0, c.Rhs())
		case linear.GE:
			lp.SetRowBnds(row, goglpk.LO, c.Rhs(), 0)
		default:
			lp.SetRowBnds(row, goglpk.FX, c.Rhs(), c.Rhs())
		}
	}

	if fn, ok := v.Objective().Function(); ok {
		if v.Objective().Direction() == linear.Max {
			lp.SetObjDir(goglpk.MAX)
		} else {
			lp.SetObjDir(goglpk.MIN)
		}
		for _, t := range fn.Terms() {
			col, _ := arena.ID(t.Variable)
			lp.SetObjCoef(col, t.Coefficient)
		}
	}
	return lp
}

func setColBounds(lp *goglpk.Prob, col int, lo, up *float64) {
	switch {
	case lo == nil && up == nil:
		lp.SetColBnds(col, goglpk.FR, 0, 0)
	case lo != nil && up == nil:
		lp.SetColBnds(col, goglpk.LO, *lo, 0)
	case lo == nil:
		lp.SetColBnds(col, goglpk.UP, 0, *up)
	case *lo == *up:
		lp.SetColBnds(col, goglpk.FX, *lo, *up)
	default:
		lp.SetColBnds(col, goglpk.DB, *lo, *up)
	}
}

// extract builds the result on the original, unwidened problem.
func (s *Solver) extract(lp *goglpk.Prob, arena *solve.Arena, mip bool, status solve.Status) *solution.Solution {
	prob := s.Problem()
	sol := solution.New(prob)
	for i, id := range arena.Variables() {
		col := i + 1
		var v float64
		if mip {
			v = lp.MipColVal(col)
		} else {
			v = lp.ColPrim(col)
		}
		_, _ = sol.SetValue(id, s.CorrectedValue(id, v))
	}
	if !mip {
		for i, c := range prob.Constraints() {
			_, _ = sol.SetDualValue(c, lp.RowDual(i+1))
		}
	}
	if status == solve.Optimal && prob.Objective().IsComplete() {
		if mip {
			_ = sol.SetObjectiveValue(lp.MipObjVal())
		} else {
			_ = sol.SetObjectiveValue(lp.ObjVal())
		}
	}
	return sol
}

// mapStatus normalizes a native GLPK solution status. An unknown code is
// a defect in the adapter and panics.
func mapStatus(native int, hasObjective bool) solve.Status {
	switch native {
	case int(goglpk.OPT):
		if !hasObjective {
			return solve.Feasible
		}
		return solve.Optimal
	case int(goglpk.FEAS):
		return solve.Feasible
	case int(goglpk.INFEAS), int(goglpk.NOFEAS):
		return solve.Infeasible
	case int(goglpk.UNBND):
		return solve.Unbounded
	case int(goglpk.UNDEF):
		return solve.ErrorNoSolution
	default:
		panic(fmt.Sprintf("glpk: unknown native status %d", native))
	}
}

// WriteProblem writes the bound problem to path in the LP or MPS format.
// FormatSolverPreferred selects LP.
func (s *Solver) WriteProblem(f solve.FileFormat, path string, addExtension bool) error {
	if s.closed {
		return solve.ErrSolverClosed
	}
	if !f.Valid() {
		return fmt.Errorf("%w: %v", solve.ErrUnsupportedFormat, f)
	}
	if err := s.CheckObjective(); err != nil {
		return err
	}
	eff := f
	if eff == solve.FormatSolverPreferred {
		eff = solve.FormatLP
	}
	if addExtension {
		path += eff.Extension()
	}

	// A handle built for UnderlyingSolver serves the export too, so
	// manual tuning reaches the written file.
	lp := s.cached
	if lp == nil {
		wv := problem.WidenBools(s.Problem())
		lp = s.build(wv, solve.NewArena(wv, 1))
		defer lp.Delete()
	}

	var err error
	if eff == solve.FormatLP {
		err = lp.WriteLP(nil, path)
	} else {
		err = lp.WriteMPS(goglpk.MPS_FILE, nil, path)
	}
	return solve.WrapBackend(backendName, "write "+eff.String(), err)
}

// UnderlyingSolver returns a native model lazily loaded from the bound
// problem. The next Solve consumes and releases the handle, so tuning
// applied through it affects that run; mutating the bound problem in
// between invalidates the handle's layout.
func (s *Solver) UnderlyingSolver() (any, error) {
	if s.closed {
		return nil, solve.ErrSolverClosed
	}
	if err := s.CheckObjective(); err != nil {
		return nil, err
	}
	if s.cached == nil {
		wv := problem.WidenBools(s.Problem())
		s.cached = s.build(wv, solve.NewArena(wv, 1))
	}
	return s.cached, nil
}

func (s *Solver) dropCached() {
	if s.cached != nil {
		s.cached.Delete()
		s.cached = nil
	}
}

// Close releases any native handle. Safe to call more than once.
func (s *Solver) Close() error {
	s.dropCached()
	s.closed = true
	return nil
}
