// SPDX-License-Identifier: MIT

package solve

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/lpbridge/internal/logger"
	"github.com/katalvlaran/lpbridge/linear"
	"github.com/katalvlaran/lpbridge/params"
	"github.com/katalvlaran/lpbridge/problem"
	"github.com/katalvlaran/lpbridge/solution"
)

// ErrNegativeThreshold indicates an auto-correction threshold below zero.
var ErrNegativeThreshold = errors.New("solve: auto-correction threshold must be >= 0")

// VariableNamer maps a variable identifier to the name exported to a
// backend or a problem file.
type VariableNamer func(variable string) string

// ConstraintNamer maps a constraint to the name exported to a backend or
// a problem file.
type ConstraintNamer func(c linear.Constraint) string

// Solver is the uniform façade over one native backend. Implementations
// are not safe for concurrent use.
type Solver interface {
	// SetProblem replaces the bound problem with a deep copy of v.
	// Reports whether the bound problem changed.
	SetProblem(v problem.View) bool

	// Problem returns the bound problem. Mutations through it are seen by
	// the next Solve.
	Problem() *problem.Problem

	// Parameters returns the bound parameter set. Mutations through it
	// are seen by the next Solve.
	Parameters() *params.Parameters

	// SetParameters replaces the bound parameters with a copy of src.
	SetParameters(src *params.Parameters) (bool, error)

	// SetAutoCorrectThreshold sets the bound-correction threshold; nil
	// disables correction. The threshold must be >= 0.
	SetAutoCorrectThreshold(t *float64) (bool, error)

	// AutoCorrectThreshold returns the active threshold, nil when disabled.
	AutoCorrectThreshold() *float64

	// SetVariableNamer installs the fallback variable namer for every
	// export format.
	SetVariableNamer(n VariableNamer)

	// SetVariableNamerForFormat installs a variable namer that takes
	// precedence for one format; nil removes it.
	SetVariableNamerForFormat(f FileFormat, n VariableNamer)

	// SetConstraintNamer installs the fallback constraint namer for every
	// export format.
	SetConstraintNamer(n ConstraintNamer)

	// SetConstraintNamerForFormat installs a constraint namer that takes
	// precedence for one format; nil removes it.
	SetConstraintNamerForFormat(f FileFormat, n ConstraintNamer)

	// Solve runs the backend on the bound problem under the bound
	// parameters and normalizes the outcome.
	Solve() (Status, error)

	// Status returns the outcome of the last Solve, NoStatus before one.
	Status() Status

	// Solution returns the immutable result of the last feasible Solve,
	// nil otherwise.
	Solution() *solution.Frozen

	// Duration returns how long the last Solve took and on which clock.
	Duration() (Duration, bool)

	// WriteProblem exports the bound problem to path in the given format.
	// When addExtension is set the format's extension is appended.
	WriteProblem(f FileFormat, path string, addExtension bool) error

	// UnderlyingSolver exposes the live native handle for backend-specific
	// tuning. The handle is only valid until the next Solve or Close.
	UnderlyingSolver() (any, error)

	// Close releases the native handle. Safe to call more than once.
	Close() error
}

// Base carries the backend-independent state of a Solver and is embedded
// by every adapter.
type Base struct {
	prob      *problem.Problem
	params    *params.Parameters
	threshold *float64

	varNamer        VariableNamer
	conNamer        ConstraintNamer
	varNamerForFmt  map[FileFormat]VariableNamer
	conNamerForFmt  map[FileFormat]ConstraintNamer

	status   Status
	sol      *solution.Frozen
	duration *Duration

	log zerolog.Logger
}

// NewBase returns a Base logging under the given component name.
func NewBase(component string) Base {
	return Base{
		prob:           problem.New(),
		params:         params.New(),
		varNamerForFmt: make(map[FileFormat]VariableNamer),
		conNamerForFmt: make(map[FileFormat]ConstraintNamer),
		log:            logger.Logger().With().Str("backend", component).Logger(),
	}
}

// Log returns the adapter's sub-logger.
func (b *Base) Log() *zerolog.Logger { return &b.log }

// SetProblem replaces the bound problem with a deep copy of v.
func (b *Base) SetProblem(v problem.View) bool {
	return problem.CopyTo(v, b.prob)
}

// Problem returns the bound problem.
func (b *Base) Problem() *problem.Problem { return b.prob }

// Parameters returns the bound parameter set.
func (b *Base) Parameters() *params.Parameters { return b.params }

// SetParameters replaces the bound parameters with a copy of src.
func (b *Base) SetParameters(src *params.Parameters) (bool, error) {
	return b.params.CopyFrom(src)
}

// SetAutoCorrectThreshold sets the bound-correction threshold.
func (b *Base) SetAutoCorrectThreshold(t *float64) (bool, error) {
	if t != nil && !(*t >= 0) {
		return false, fmt.Errorf("%w: got %v", ErrNegativeThreshold, *t)
	}
	changed := (b.threshold == nil) != (t == nil) ||
		(t != nil && b.threshold != nil && *t != *b.threshold)
	if t == nil {
		b.threshold = nil
	} else {
		v := *t
		b.threshold = &v
	}
	return changed, nil
}

// AutoCorrectThreshold returns the active threshold, nil when disabled.
func (b *Base) AutoCorrectThreshold() *float64 {
	if b.threshold == nil {
		return nil
	}
	v := *b.threshold
	return &v
}

// SetVariableNamer installs the fallback variable namer.
func (b *Base) SetVariableNamer(n VariableNamer) { b.varNamer = n }

// SetVariableNamerForFormat installs a per-format variable namer.
func (b *Base) SetVariableNamerForFormat(f FileFormat, n VariableNamer) {
	if n == nil {
		delete(b.varNamerForFmt, f)
		return
	}
	b.varNamerForFmt[f] = n
}

// SetConstraintNamer installs the fallback constraint namer.
func (b *Base) SetConstraintNamer(n ConstraintNamer) { b.conNamer = n }

// SetConstraintNamerForFormat installs a per-format constraint namer.
func (b *Base) SetConstraintNamerForFormat(f FileFormat, n ConstraintNamer) {
	if n == nil {
		delete(b.conNamerForFmt, f)
		return
	}
	b.conNamerForFmt[f] = n
}

// VarExportName resolves the exported name of a variable for a format.
// A per-format namer wins over the fallback namer, which wins over the
// name registered on the problem. Whichever level is configured gives the
// final answer, even when that answer is empty.
func (b *Base) VarExportName(f FileFormat, variable string) string {
	if n, ok := b.varNamerForFmt[f]; ok {
		return n(variable)
	}
	if b.varNamer != nil {
		return b.varNamer(variable)
	}
	name, err := b.prob.VarName(variable)
	if err != nil {
		return ""
	}
	return name
}

// ConstraintExportName resolves the exported name of a constraint for a
// format, with the same precedence as VarExportName; the unconfigured
// fallback is the constraint's identifier.
func (b *Base) ConstraintExportName(f FileFormat, c linear.Constraint) string {
	if n, ok := b.conNamerForFmt[f]; ok {
		return n(c)
	}
	if b.conNamer != nil {
		return b.conNamer(c)
	}
	return c.ID()
}

// CheckObjective verifies the bound problem's objective is empty or
// complete.
func (b *Base) CheckObjective() error {
	obj := b.prob.Objective()
	if obj.IsEmpty() || obj.IsComplete() {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrIncompleteObjective, obj)
}

// PreferredTimingType resolves the clock governing the next Solve from
// the bound time limit parameters.
func (b *Base) PreferredTimingType() (TimingType, error) {
	return PreferredTiming(
		b.params.Double(params.MaxCPUSeconds),
		b.params.Double(params.MaxWallSeconds),
	)
}

// CorrectedValue nudges a primal value onto the declared bound it barely
// violates. With threshold t, a value below the lower bound by at most t
// snaps to the lower bound, and symmetrically for the upper bound. With
// no threshold, or a violation beyond it, the raw value is kept.
func (b *Base) CorrectedValue(variable string, v float64) float64 {
	if b.threshold == nil {
		return v
	}
	t := *b.threshold
	if lo, err := b.prob.VarLowerBound(variable); err == nil && lo != nil {
		if d := *lo - v; d > 0 && d <= t {
			b.log.Debug().Str("variable", variable).
				Float64("value", v).Float64("bound", *lo).
				Msg("corrected value to lower bound")
			return *lo
		}
	}
	if up, err := b.prob.VarUpperBound(variable); err == nil && up != nil {
		if d := v - *up; d > 0 && d <= t {
			b.log.Debug().Str("variable", variable).
				Float64("value", v).Float64("bound", *up).
				Msg("corrected value to upper bound")
			return *up
		}
	}
	return v
}

// StoreResult records the outcome of a Solve. The solution is kept only
// when the status declares one feasible.
func (b *Base) StoreResult(status Status, sol *solution.Solution, d Duration) {
	b.status = status
	b.duration = &d
	if status.IsFeasible() && sol != nil {
		b.sol = sol.Freeze()
	} else {
		b.sol = nil
	}
	b.log.Info().Stringer("status", status).Stringer("duration", d.Elapsed).
		Msg("solve finished")
}

// ResetResult clears any recorded outcome.
func (b *Base) ResetResult() {
	b.status = NoStatus
	b.sol = nil
	b.duration = nil
}

// Status returns the outcome of the last Solve.
func (b *Base) Status() Status { return b.status }

// Solution returns the immutable result of the last feasible Solve.
func (b *Base) Solution() *solution.Frozen { return b.sol }

// Duration returns how long the last Solve took.
func (b *Base) Duration() (Duration, bool) {
	if b.duration == nil {
		return Duration{}, false
	}
	return *b.duration, true
}
