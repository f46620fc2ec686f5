// SPDX-License-Identifier: MIT

package solution

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/katalvlaran/lpbridge/linear"
	"github.com/katalvlaran/lpbridge/problem"
)

// Sentinel errors for solution construction.
var (
	// ErrVariableNotInProblem indicates a primal value keyed by a variable
	// outside the bound problem.
	ErrVariableNotInProblem = errors.New("solution: variable not in bound problem")

	// ErrConstraintNotInProblem indicates a dual value keyed by a constraint
	// outside the bound problem.
	ErrConstraintNotInProblem = errors.New("solution: constraint not in bound problem")

	// ErrIncompleteObjective indicates an objective value set while the bound
	// problem has no complete objective.
	ErrIncompleteObjective = errors.New("solution: objective value requires a complete objective")

	// ErrNoValue indicates a boolean read of a variable that has no value.
	ErrNoValue = errors.New("solution: variable has no value")

	// ErrNotBoolean indicates a boolean read of a value that is neither 0
	// nor 1 within tolerance.
	ErrNotBoolean = errors.New("solution: value is not boolean")
)

// boolTol is the tolerance used to classify a value as boolean 0 or 1.
const boolTol = 1e-6

// Solution is the mutable builder. The zero value is not usable; call New.
type Solution struct {
	prob   *problem.Problem
	primal map[string]float64
	dual   map[string]dualEntry
	objVal *float64
}

type dualEntry struct {
	constraint linear.Constraint
	value      float64
}

// New binds a fresh solution to a deep snapshot of p.
func New(p problem.View) *Solution {
	snap := problem.New()
	problem.CopyTo(p, snap)
	return &Solution{
		prob:   snap,
		primal: make(map[string]float64),
		dual:   make(map[string]dualEntry),
	}
}

// Problem returns the bound problem snapshot as a read-only view.
func (s *Solution) Problem() problem.View { return problem.ReadOnly(s.prob) }

// SetValue records the primal value of a variable. The variable must belong
// to the bound problem. Reports whether the stored value changed.
func (s *Solution) SetValue(variable string, value float64) (bool, error) {
	if !s.prob.HasVariable(variable) {
		return false, fmt.Errorf("%w: %q", ErrVariableNotInProblem, variable)
	}
	prev, had := s.primal[variable]
	s.primal[variable] = value
	return !had || prev != value, nil
}

// SetDualValue records the dual value of a constraint. The constraint must
// belong (structurally) to the bound problem.
func (s *Solution) SetDualValue(c linear.Constraint, value float64) (bool, error) {
	if !s.prob.HasConstraint(c) {
		return false, fmt.Errorf("%w: %s", ErrConstraintNotInProblem, c)
	}
	key := c.Fingerprint()
	prev, had := s.dual[key]
	s.dual[key] = dualEntry{constraint: c, value: value}
	return !had || prev.value != value, nil
}

// SetObjectiveValue records the objective value reported by the backend.
// Only legal when the bound problem carries a complete objective.
func (s *Solution) SetObjectiveValue(value float64) error {
	if !s.prob.Objective().IsComplete() {
		return ErrIncompleteObjective
	}
	v := value
	s.objVal = &v
	return nil
}

// Value reports the primal value of a variable and whether one was recorded.
func (s *Solution) Value(variable string) (float64, bool) {
	v, ok := s.primal[variable]
	return v, ok
}

// DualValue reports the dual value of a constraint and whether one was
// recorded.
func (s *Solution) DualValue(c linear.Constraint) (float64, bool) {
	e, ok := s.dual[c.Fingerprint()]
	return e.value, ok
}

// ObjectiveValue reports the backend-declared objective value, absent unless
// the solve ended exactly optimal.
func (s *Solution) ObjectiveValue() (float64, bool) {
	if s.objVal == nil {
		return 0, false
	}
	return *s.objVal, true
}

// ComputedObjectiveValue re-evaluates the bound problem's objective function
// on the recorded primal values. Reports ok=false when the problem has no
// objective function or some referenced variable has no value.
func (s *Solution) ComputedObjectiveValue() (float64, bool) {
	fn, ok := s.prob.Objective().Function()
	if !ok {
		return 0, false
	}
	return fn.Evaluate(s.primal)
}

// Variables returns the valued variables in the bound problem's insertion
// order.
func (s *Solution) Variables() []string {
	var out []string
	for _, id := range s.prob.Variables() {
		if _, ok := s.primal[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// Constraints returns the dual-valued constraints in the bound problem's
// insertion order.
func (s *Solution) Constraints() []linear.Constraint {
	var out []linear.Constraint
	for _, c := range s.prob.Constraints() {
		if _, ok := s.dual[c.Fingerprint()]; ok {
			out = append(out, c)
		}
	}
	return out
}

// BoolValue classifies the primal value of a variable as a boolean, within
// a 1e-6 tolerance. Errors when the variable has no value (ErrNoValue) or
// the value is neither 0 nor 1 (ErrNotBoolean).
func (s *Solution) BoolValue(variable string) (bool, error) {
	v, ok := s.primal[variable]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrNoValue, variable)
	}
	switch {
	case scalar.EqualWithinAbs(v, 0, boolTol):
		return false, nil
	case scalar.EqualWithinAbs(v, 1, boolTol):
		return true, nil
	default:
		return false, fmt.Errorf("%w: %q = %v", ErrNotBoolean, variable, v)
	}
}

// BoolsAreBools reports whether every valued Bool variable of the bound
// problem holds a value within tolerance of 0 or 1.
func (s *Solution) BoolsAreBools() bool {
	for _, id := range s.prob.Variables() {
		t, _ := s.prob.VarType(id)
		if t != problem.Bool {
			continue
		}
		v, ok := s.primal[id]
		if !ok {
			continue
		}
		if !scalar.EqualWithinAbs(v, 0, boolTol) && !scalar.EqualWithinAbs(v, 1, boolTol) {
			return false
		}
	}
	return true
}

// Freeze returns an immutable deep copy of the solution.
func (s *Solution) Freeze() *Frozen {
	c := New(s.prob)
	for v, val := range s.primal {
		c.primal[v] = val
	}
	for k, e := range s.dual {
		c.dual[k] = e
	}
	if s.objVal != nil {
		v := *s.objVal
		c.objVal = &v
	}
	return &Frozen{inner: c}
}

// String renders a short summary.
func (s *Solution) String() string {
	if s.objVal != nil {
		return fmt.Sprintf("Solution{%v, objective %v, %d valued variables}",
			s.prob, *s.objVal, len(s.primal))
	}
	return fmt.Sprintf("Solution{%v, %d valued variables}", s.prob, len(s.primal))
}

// Equal reports whether a and b are bound to equal problems and agree on
// every primal value, dual value and objective value, comparing numbers by
// float64 value.
func Equal(a, b *Solution) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	av, aok := a.ObjectiveValue()
	bv, bok := b.ObjectiveValue()
	if aok != bok || (aok && av != bv) {
		return false
	}
	if !problem.Equal(a.prob, b.prob) {
		return false
	}
	if len(a.primal) != len(b.primal) || len(a.dual) != len(b.dual) {
		return false
	}
	for v, val := range a.primal {
		other, ok := b.primal[v]
		if !ok || other != val {
			return false
		}
	}
	for k, e := range a.dual {
		other, ok := b.dual[k]
		if !ok || other.value != e.value {
			return false
		}
	}
	return true
}

// Frozen is the immutable variant of a Solution. It only forwards the read
// side; once constructed it is freely shareable across goroutines.
type Frozen struct {
	inner *Solution
}

// Problem returns the bound problem snapshot as a read-only view.
func (f *Frozen) Problem() problem.View { return f.inner.Problem() }

// Value reports the primal value of a variable.
func (f *Frozen) Value(variable string) (float64, bool) { return f.inner.Value(variable) }

// DualValue reports the dual value of a constraint.
func (f *Frozen) DualValue(c linear.Constraint) (float64, bool) { return f.inner.DualValue(c) }

// ObjectiveValue reports the backend-declared objective value.
func (f *Frozen) ObjectiveValue() (float64, bool) { return f.inner.ObjectiveValue() }

// ComputedObjectiveValue re-evaluates the objective on the primal values.
func (f *Frozen) ComputedObjectiveValue() (float64, bool) { return f.inner.ComputedObjectiveValue() }

// Variables returns the valued variables in insertion order.
func (f *Frozen) Variables() []string { return f.inner.Variables() }

// Constraints returns the dual-valued constraints in insertion order.
func (f *Frozen) Constraints() []linear.Constraint { return f.inner.Constraints() }

// BoolValue classifies the primal value of a variable as a boolean.
func (f *Frozen) BoolValue(variable string) (bool, error) { return f.inner.BoolValue(variable) }

// BoolsAreBools reports whether every valued Bool variable is 0/1 within
// tolerance.
func (f *Frozen) BoolsAreBools() bool { return f.inner.BoolsAreBools() }

// Thaw returns an independent mutable copy.
func (f *Frozen) Thaw() *Solution { return f.inner.Freeze().inner }

// EqualFrozen reports value equality of two frozen solutions; see Equal.
func EqualFrozen(a, b *Frozen) bool {
	if a == nil || b == nil {
		return a == b
	}
	return Equal(a.inner, b.inner)
}

// String renders a short summary.
func (f *Frozen) String() string { return f.inner.String() }
