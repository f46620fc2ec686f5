// SPDX-License-Identifier: MIT

package sat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lpbridge/backends/sat"
	"github.com/katalvlaran/lpbridge/linear"
	"github.com/katalvlaran/lpbridge/params"
	"github.com/katalvlaran/lpbridge/problem"
	"github.com/katalvlaran/lpbridge/solution"
	"github.com/katalvlaran/lpbridge/solve"
)

func f(v float64) *float64 { return &v }

// knapsack builds a tiny selection problem: maximize x + 2y + 3z while
// picking at most two items.
func knapsack(t *testing.T) *problem.Problem {
	t.Helper()
	p := problem.New()
	for _, id := range []string{"x", "y", "z"} {
		_, err := p.SetVarType(id, problem.Bool)
		require.NoError(t, err)
	}

	lhs := linear.NewExpr()
	for _, id := range []string{"x", "y", "z"} {
		_, err := lhs.Add(1, id)
		require.NoError(t, err)
	}
	_, err := p.AddConstraint("pick", lhs, linear.LE, 2)
	require.NoError(t, err)

	fn := linear.NewExpr()
	_, err = fn.Add(1, "x")
	require.NoError(t, err)
	_, err = fn.Add(2, "y")
	require.NoError(t, err)
	_, err = fn.Add(3, "z")
	require.NoError(t, err)
	_, err = p.SetObjective(fn, linear.Max)
	require.NoError(t, err)
	return p
}

// TestSolver_Optimize verifies an end-to-end maximization: the engine
// must pick the two most valuable items.
func TestSolver_Optimize(t *testing.T) {
	s := sat.New()
	defer func() { require.NoError(t, s.Close()) }()

	s.SetProblem(knapsack(t))
	status, err := s.Solve()
	require.NoError(t, err)
	assert.Equal(t, solve.Optimal, status)
	assert.True(t, status.IsFeasible())

	sol := s.Solution()
	require.NotNil(t, sol)

	v, ok := sol.ObjectiveValue()
	require.True(t, ok)
	assert.Equal(t, 5.0, v)

	y, err := sol.BoolValue("y")
	require.NoError(t, err)
	z, err := sol.BoolValue("z")
	require.NoError(t, err)
	assert.True(t, y && z, "the two most valuable items must be picked")
	assert.True(t, sol.BoolsAreBools())

	d, ok := s.Duration()
	require.True(t, ok)
	assert.GreaterOrEqual(t, int64(d.Elapsed), int64(0))
}

// TestSolver_EqualityWithNegativeCoefficient ties two variables together
// with x - y = 0 and maximizes x + y: both sides of the equality must
// survive the encoding, so the only optimum is x = y = 1.
func TestSolver_EqualityWithNegativeCoefficient(t *testing.T) {
	p := problem.New()
	for _, id := range []string{"x", "y"} {
		_, err := p.SetVarType(id, problem.Bool)
		require.NoError(t, err)
	}

	lhs := linear.NewExpr()
	_, err := lhs.Add(1, "x")
	require.NoError(t, err)
	_, err = lhs.Add(-1, "y")
	require.NoError(t, err)
	_, err = p.AddConstraint("tie", lhs, linear.EQ, 0)
	require.NoError(t, err)

	fn := linear.NewExpr()
	_, err = fn.Add(1, "x")
	require.NoError(t, err)
	_, err = fn.Add(1, "y")
	require.NoError(t, err)
	_, err = p.SetObjective(fn, linear.Max)
	require.NoError(t, err)

	s := sat.New()
	defer func() { require.NoError(t, s.Close()) }()
	s.SetProblem(p)

	status, err := s.Solve()
	require.NoError(t, err)
	require.Equal(t, solve.Optimal, status)

	sol := s.Solution()
	require.NotNil(t, sol)
	x, err := sol.BoolValue("x")
	require.NoError(t, err)
	y, err := sol.BoolValue("y")
	require.NoError(t, err)
	assert.Equal(t, x, y, "x - y = 0 must hold in the optimum")
	v, ok := sol.ObjectiveValue()
	require.True(t, ok)
	assert.Equal(t, 2.0, v)
}

// TestSolver_RoundTrip verifies that re-solving an unmodified problem
// reproduces an equal solution.
func TestSolver_RoundTrip(t *testing.T) {
	s := sat.New()
	defer s.Close()
	s.SetProblem(knapsack(t))

	_, err := s.Solve()
	require.NoError(t, err)
	first := s.Solution()
	require.NotNil(t, first)

	_, err = s.Solve()
	require.NoError(t, err)
	second := s.Solution()
	require.NotNil(t, second)

	assert.True(t, solution.EqualFrozen(first, second),
		"an unmodified problem must re-solve to an equal solution")
}

// TestSolver_Decision verifies satisfiable and unsatisfiable decision
// problems without an objective.
func TestSolver_Decision(t *testing.T) {
	p := problem.New()
	_, err := p.SetVarType("a", problem.Bool)
	require.NoError(t, err)
	_, err = p.SetVarType("b", problem.Bool)
	require.NoError(t, err)

	lhs := linear.NewExpr()
	_, _ = lhs.Add(1, "a")
	_, _ = lhs.Add(1, "b")
	_, err = p.AddConstraint("atleast", lhs, linear.GE, 1)
	require.NoError(t, err)

	s := sat.New()
	defer s.Close()
	s.SetProblem(p)

	status, err := s.Solve()
	require.NoError(t, err)
	assert.Equal(t, solve.Feasible, status)
	require.NotNil(t, s.Solution())

	// Pin both variables to zero: now unsatisfiable.
	_, err = p.SetVarBounds("a", nil, f(0))
	require.NoError(t, err)
	_, err = p.SetVarBounds("b", nil, f(0))
	require.NoError(t, err)
	s.SetProblem(p)

	status, err = s.Solve()
	require.NoError(t, err)
	assert.Equal(t, solve.Infeasible, status)
	assert.Nil(t, s.Solution())
}

// TestSolver_RejectsWideDomains verifies the zero-one gate.
func TestSolver_RejectsWideDomains(t *testing.T) {
	p := problem.New()
	_, err := p.SetVarType("x", problem.Int)
	require.NoError(t, err)
	_, err = p.SetVarBounds("x", f(0), f(5))
	require.NoError(t, err)

	s := sat.New()
	defer s.Close()
	s.SetProblem(p)

	_, err = s.Solve()
	assert.ErrorIs(t, err, problem.ErrNotZeroOne)
}

// TestSolver_RejectsFractionalCoefficients verifies the integrality gate
// on constraint coefficients.
func TestSolver_RejectsFractionalCoefficients(t *testing.T) {
	p := problem.New()
	_, err := p.SetVarType("x", problem.Bool)
	require.NoError(t, err)

	lhs := linear.NewExpr()
	_, _ = lhs.Add(0.5, "x")
	_, err = p.AddConstraint("frac", lhs, linear.LE, 1)
	require.NoError(t, err)

	s := sat.New()
	defer s.Close()
	s.SetProblem(p)

	_, err = s.Solve()
	assert.ErrorIs(t, err, solve.ErrNotInteger)
}

// TestSolver_EmptyProblem verifies the trivial feasibility of a problem
// with nothing in it.
func TestSolver_EmptyProblem(t *testing.T) {
	s := sat.New()
	defer s.Close()

	status, err := s.Solve()
	require.NoError(t, err)
	assert.Equal(t, solve.Feasible, status)
	require.NotNil(t, s.Solution())
	assert.Empty(t, s.Solution().Variables())
}

// TestSolver_UnsupportedParameters verifies resource limits are refused
// rather than ignored.
func TestSolver_UnsupportedParameters(t *testing.T) {
	s := sat.New()
	defer s.Close()
	s.SetProblem(knapsack(t))

	_, err := s.Parameters().SetDouble(params.MaxWallSeconds, f(10))
	require.NoError(t, err)

	_, err = s.Solve()
	assert.ErrorIs(t, err, params.ErrUnsupportedValue)
}

// TestSolver_IncompleteObjective verifies a function without a direction
// blocks the lazy build as well as the solve.
func TestSolver_IncompleteObjective(t *testing.T) {
	p := knapsack(t)
	fn, ok := p.Objective().Function()
	require.True(t, ok)
	_, err := p.SetObjective(fn.Thaw(), linear.NoDirection)
	require.NoError(t, err)

	s := sat.New()
	defer s.Close()
	s.SetProblem(p)

	_, err = s.Solve()
	assert.ErrorIs(t, err, solve.ErrIncompleteObjective)
	_, err = s.UnderlyingSolver()
	assert.ErrorIs(t, err, solve.ErrIncompleteObjective)
}

// TestSolver_Closed verifies use after Close fails cleanly.
func TestSolver_Closed(t *testing.T) {
	s := sat.New()
	require.NoError(t, s.Close())
	require.NoError(t, s.Close(), "closing twice is safe")

	_, err := s.Solve()
	assert.ErrorIs(t, err, solve.ErrSolverClosed)
	_, err = s.UnderlyingSolver()
	assert.ErrorIs(t, err, solve.ErrSolverClosed)
}
