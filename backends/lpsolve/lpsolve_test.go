// SPDX-License-Identifier: MIT

package lpsolve_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lpbridge/backends/lpsolve"
	"github.com/katalvlaran/lpbridge/linear"
	"github.com/katalvlaran/lpbridge/problem"
	"github.com/katalvlaran/lpbridge/solve"
)

func f(v float64) *float64 { return &v }

// planning builds the production planning fixture with known optimum
// 6266 at (22, 52).
func planning(t *testing.T) *problem.Problem {
	t.Helper()
	p := problem.New()
	_, err := p.SetVarType("x", problem.Int)
	require.NoError(t, err)
	_, err = p.SetVarType("y", problem.Int)
	require.NoError(t, err)

	add := func(id string, cx, cy, rhs float64) {
		lhs := linear.NewExpr()
		_, err := lhs.Add(cx, "x")
		require.NoError(t, err)
		_, err = lhs.Add(cy, "y")
		require.NoError(t, err)
		_, err = p.AddConstraint(id, lhs, linear.LE, rhs)
		require.NoError(t, err)
	}
	add("fertilizer", 120, 210, 15000)
	add("storage", 110, 30, 4000)
	add("acreage", 1, 1, 75)

	fn := linear.NewExpr()
	_, err = fn.Add(143, "x")
	require.NoError(t, err)
	_, err = fn.Add(60, "y")
	require.NoError(t, err)
	_, err = p.SetObjective(fn, linear.Max)
	require.NoError(t, err)
	return p
}

// TestSolver_Planning verifies an end-to-end mixed integer solve.
func TestSolver_Planning(t *testing.T) {
	s := lpsolve.New()
	defer func() { require.NoError(t, s.Close()) }()

	s.SetProblem(planning(t))
	status, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, solve.Optimal, status)

	sol := s.Solution()
	require.NotNil(t, sol)

	obj, ok := sol.ObjectiveValue()
	require.True(t, ok)
	assert.InDelta(t, 6266, obj, 1e-6)

	x, _ := sol.Value("x")
	y, _ := sol.Value("y")
	assert.InDelta(t, 22, x, 1e-6)
	assert.InDelta(t, 52, y, 1e-6)
}

// TestSolver_Infeasible verifies normalization of an infeasible model.
func TestSolver_Infeasible(t *testing.T) {
	p := problem.New()
	_, err := p.AddVariable("x")
	require.NoError(t, err)

	lhs := linear.NewExpr()
	_, _ = lhs.Add(1, "x")
	_, err = p.AddConstraint("lo", lhs, linear.GE, 2)
	require.NoError(t, err)
	_, err = p.AddConstraint("hi", lhs, linear.LE, 1)
	require.NoError(t, err)

	s := lpsolve.New()
	defer s.Close()
	s.SetProblem(p)

	status, err := s.Solve()
	require.NoError(t, err)
	assert.Equal(t, solve.Infeasible, status)
	assert.Nil(t, s.Solution())
}

// TestSolver_Relaxation verifies the pure LP path reports dual values.
func TestSolver_Relaxation(t *testing.T) {
	p := problem.New()
	_, err := p.AddVariable("x")
	require.NoError(t, err)
	_, err = p.SetVarBounds("x", f(0), nil)
	require.NoError(t, err)

	lhs := linear.NewExpr()
	_, _ = lhs.Add(1, "x")
	_, err = p.AddConstraint("cap", lhs, linear.LE, 4)
	require.NoError(t, err)

	fn := linear.NewExpr()
	_, _ = fn.Add(3, "x")
	_, err = p.SetObjective(fn, linear.Max)
	require.NoError(t, err)

	s := lpsolve.New()
	defer s.Close()
	s.SetProblem(p)

	status, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, solve.Optimal, status)

	sol := s.Solution()
	x, ok := sol.Value("x")
	require.True(t, ok)
	assert.InDelta(t, 4, x, 1e-6)

	dual, ok := sol.DualValue(p.Constraints()[0])
	require.True(t, ok, "the simplex path must report dual values")
	assert.InDelta(t, 3, dual, 1e-6, "the binding capacity prices at the objective coefficient")
}

// TestSolver_WriteProblem verifies the LP export lands on disk.
func TestSolver_WriteProblem(t *testing.T) {
	s := lpsolve.New()
	defer s.Close()
	s.SetProblem(planning(t))

	dir := t.TempDir()
	require.NoError(t, s.WriteProblem(solve.FormatLP, filepath.Join(dir, "model"), true))
	assert.FileExists(t, filepath.Join(dir, "model.lp"))
}

// TestSolver_MPSUnsupported verifies only the LP format is writable.
func TestSolver_MPSUnsupported(t *testing.T) {
	s := lpsolve.New()
	defer s.Close()

	err := s.WriteProblem(solve.FormatMPS, "anywhere", false)
	assert.ErrorIs(t, err, solve.ErrUnsupportedFormat)
}

// TestSolver_IncompleteObjective verifies a function without a direction
// blocks the lazy build behind both UnderlyingSolver and WriteProblem.
func TestSolver_IncompleteObjective(t *testing.T) {
	p := planning(t)
	fn, ok := p.Objective().Function()
	require.True(t, ok)
	_, err := p.SetObjective(fn.Thaw(), linear.NoDirection)
	require.NoError(t, err)

	s := lpsolve.New()
	defer s.Close()
	s.SetProblem(p)

	_, err = s.UnderlyingSolver()
	assert.ErrorIs(t, err, solve.ErrIncompleteObjective)
	err = s.WriteProblem(solve.FormatLP, filepath.Join(t.TempDir(), "model"), true)
	assert.ErrorIs(t, err, solve.ErrIncompleteObjective)
}
