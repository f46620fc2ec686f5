// SPDX-License-Identifier: MIT

package solve_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lpbridge/problem"
	"github.com/katalvlaran/lpbridge/solve"
)

func f(v float64) *float64 { return &v }

// TestStatus_IsFeasible verifies feasibility derives from the status
// alone, across the whole vocabulary.
func TestStatus_IsFeasible(t *testing.T) {
	feasible := []solve.Status{
		solve.Optimal, solve.Feasible,
		solve.ErrorWithSolution,
		solve.MemoryLimitWithSolution,
		solve.TimeLimitWithSolution,
	}
	infeasible := []solve.Status{
		solve.NoStatus, solve.Infeasible, solve.Unbounded,
		solve.InfeasibleOrUnbounded,
		solve.ErrorNoSolution,
		solve.MemoryLimitNoSolution,
		solve.TimeLimitNoSolution,
	}
	for _, s := range feasible {
		assert.True(t, s.IsFeasible(), "%v must be feasible", s)
	}
	for _, s := range infeasible {
		assert.False(t, s.IsFeasible(), "%v must not be feasible", s)
	}
}

// TestPreferredTiming verifies clock resolution against the configured
// limits.
func TestPreferredTiming(t *testing.T) {
	_, err := solve.PreferredTiming(f(10), f(10))
	assert.ErrorIs(t, err, solve.ErrBothTimeLimits)

	typ, err := solve.PreferredTiming(nil, f(10))
	require.NoError(t, err)
	assert.Equal(t, solve.WallTiming, typ, "a wall limit selects the wall clock")

	cpuClock := runtime.GOOS == "linux"

	typ, err = solve.PreferredTiming(f(10), nil)
	if cpuClock {
		require.NoError(t, err)
		assert.Equal(t, solve.CPUTiming, typ)
	} else {
		assert.ErrorIs(t, err, solve.ErrCPUTimingUnsupported)
	}

	typ, err = solve.PreferredTiming(nil, nil)
	require.NoError(t, err)
	if cpuClock {
		assert.Equal(t, solve.CPUTiming, typ, "unlimited solves prefer the cpu clock")
	} else {
		assert.Equal(t, solve.WallTiming, typ)
	}
}

// TestAsInteger verifies rounding within tolerance and refusal beyond it.
func TestAsInteger(t *testing.T) {
	v, err := solve.AsInteger(2.0000004)
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	v, err = solve.AsInteger(-3.0000004)
	require.NoError(t, err)
	assert.Equal(t, -3, v)

	_, err = solve.AsInteger(2.01)
	assert.ErrorIs(t, err, solve.ErrNotInteger)
}

// TestArena verifies the dense index mapping in both directions and the
// configurable base.
func TestArena(t *testing.T) {
	p := problem.New()
	_, _ = p.AddVariable("x")
	_, _ = p.AddVariable("y")
	_, _ = p.AddVariable("z")

	a := solve.NewArena(p, 1)
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, []string{"x", "y", "z"}, a.Variables())

	idx, ok := a.ID("y")
	require.True(t, ok)
	assert.Equal(t, 2, idx)

	id, ok := a.Variable(3)
	require.True(t, ok)
	assert.Equal(t, "z", id)

	_, ok = a.Variable(0)
	assert.False(t, ok, "index below base is out of range")
	_, ok = a.ID("ghost")
	assert.False(t, ok)

	zero := solve.NewArena(p, 0)
	idx, ok = zero.ID("x")
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

// TestFileFormat_Extension verifies the conventional extensions.
func TestFileFormat_Extension(t *testing.T) {
	assert.Equal(t, ".lp", solve.FormatLP.Extension())
	assert.Equal(t, ".mps", solve.FormatMPS.Extension())
	assert.Equal(t, "", solve.FormatSolverPreferred.Extension())
}
