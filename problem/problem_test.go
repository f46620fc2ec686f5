// SPDX-License-Identifier: MIT

package problem_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lpbridge/linear"
	"github.com/katalvlaran/lpbridge/problem"
)

func f(v float64) *float64 { return &v }

// TestProblem_AddVariable verifies defaulting to Real, idempotence and
// the implicit add performed by SetVarType.
func TestProblem_AddVariable(t *testing.T) {
	p := problem.New()

	changed, err := p.AddVariable("x")
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = p.AddVariable("x")
	require.NoError(t, err)
	assert.False(t, changed, "re-adding a variable must be a no-op")

	vt, err := p.VarType("x")
	require.NoError(t, err)
	assert.Equal(t, problem.Real, vt)

	changed, err = p.SetVarType("y", problem.Bool)
	require.NoError(t, err)
	assert.True(t, changed, "typing an unknown variable adds it")
	assert.Equal(t, []string{"x", "y"}, p.Variables())
}

// TestProblem_SetVarBounds verifies the merge-aware validation: each call
// may set one side and the pair must stay ordered, while NaN is rejected
// and infinities mean unbounded.
func TestProblem_SetVarBounds(t *testing.T) {
	p := problem.New()
	_, err := p.AddVariable("x")
	require.NoError(t, err)

	_, err = p.SetVarBounds("x", f(0), nil)
	require.NoError(t, err)
	_, err = p.SetVarBounds("x", nil, f(10))
	require.NoError(t, err)

	lo, err := p.VarLowerBound("x")
	require.NoError(t, err)
	require.NotNil(t, lo)
	assert.Equal(t, 0.0, *lo)

	_, err = p.SetVarBounds("x", f(20), nil)
	assert.ErrorIs(t, err, problem.ErrBoundsReversed, "lower above stored upper must error")

	_, err = p.SetVarBounds("x", f(math.NaN()), nil)
	assert.Error(t, err, "NaN bound must error")

	_, err = p.SetVarBounds("x", f(math.Inf(-1)), f(math.Inf(1)))
	assert.NoError(t, err, "infinite bounds mean unbounded")

	changed, err := p.SetVarBounds("other", f(0), nil)
	require.NoError(t, err, "bounding an unseen identifier adds it implicitly")
	assert.True(t, changed)
	assert.True(t, p.HasVariable("other"))
}

// TestProblem_Add_Constraints verifies membership checks and the
// structural deduplication of constraints.
func TestProblem_Add_Constraints(t *testing.T) {
	p := problem.New()
	_, err := p.AddVariable("x")
	require.NoError(t, err)
	_, err = p.AddVariable("y")
	require.NoError(t, err)

	lhs := linear.NewExpr()
	_, _ = lhs.Add(1, "x")
	_, _ = lhs.Add(1, "y")

	changed, err := p.AddConstraint("cap", lhs, linear.LE, 75)
	require.NoError(t, err)
	assert.True(t, changed)

	// Same structure under another id is already present.
	dup, err := linear.NewConstraint("other", lhs, linear.LE, 75)
	require.NoError(t, err)
	changed, err = p.Add(dup)
	require.NoError(t, err)
	assert.False(t, changed, "structural duplicate must be a no-op")
	assert.Equal(t, 1, p.NumConstraints())
	assert.True(t, p.HasConstraint(dup))

	// A constraint over unknown variables is rejected.
	bad := linear.NewExpr()
	_, _ = bad.Add(1, "z")
	_, err = p.AddConstraint("bad", bad, linear.LE, 1)
	assert.ErrorIs(t, err, problem.ErrUnknownVariable)
}

// TestProblem_SetObjective verifies validation against the variable set
// and that a transient incomplete objective is legal.
func TestProblem_SetObjective(t *testing.T) {
	p := problem.New()
	_, err := p.AddVariable("x")
	require.NoError(t, err)

	fn := linear.NewExpr()
	_, _ = fn.Add(143, "x")

	changed, err := p.SetObjective(fn, linear.NoDirection)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.False(t, p.Objective().IsComplete(), "direction still missing")
	assert.False(t, p.Objective().IsEmpty())

	changed, err = p.SetObjectiveDirection(linear.Max)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, p.Objective().IsComplete())

	bad := linear.NewExpr()
	_, _ = bad.Add(1, "ghost")
	_, err = p.SetObjective(bad, linear.Min)
	assert.ErrorIs(t, err, problem.ErrUnknownVariable)

	changed, err = p.SetObjective(nil, linear.NoDirection)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, p.Objective().IsEmpty())
}

// TestProblem_Dimension verifies the per-type variable counts.
func TestProblem_Dimension(t *testing.T) {
	p := problem.New()
	_, _ = p.SetVarType("b1", problem.Bool)
	_, _ = p.SetVarType("b2", problem.Bool)
	_, _ = p.SetVarType("i", problem.Int)
	_, _ = p.AddVariable("r")

	d := p.Dimension()
	assert.Equal(t, 2, d.Bools)
	assert.Equal(t, 1, d.Ints)
	assert.Equal(t, 1, d.Reals)
	assert.Equal(t, 4, d.Variables())
	assert.Equal(t, 0, d.Constraints)
}

// TestProblem_Clone verifies deep copies: mutating the clone must not
// leak into the source.
func TestProblem_Clone(t *testing.T) {
	p := problem.New()
	p.SetName("orig")
	_, _ = p.SetVarType("x", problem.Int)
	_, err := p.SetVarBounds("x", f(0), f(10))
	require.NoError(t, err)

	lhs := linear.NewExpr()
	_, _ = lhs.Add(1, "x")
	_, err = p.AddConstraint("c", lhs, linear.LE, 5)
	require.NoError(t, err)

	c := p.Clone()
	assert.True(t, problem.Equal(p, c))

	_, _ = c.AddVariable("y")
	c.SetName("copy")
	assert.False(t, problem.Equal(p, c))
	assert.Equal(t, 1, p.NumVariables(), "source must not see clone mutation")
	assert.Equal(t, "orig", p.Name())
}
