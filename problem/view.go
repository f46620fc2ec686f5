// SPDX-License-Identifier: MIT

package problem

import (
	"errors"
	"fmt"
)

// ErrNotZeroOne indicates a problem is not a pure zero-one program.
var ErrNotZeroOne = errors.New("problem: not a zero-one problem")

// widenedBools decorates a View so Bool variables read as Int with bounds
// clamped into [0,1]. Every other call forwards to the delegate unchanged.
type widenedBools struct {
	View
}

// WidenBools returns a view of v in which Bool variables appear as Int
// variables with an effective lower bound max(declared or 0, 0) and an
// effective upper bound min(declared or 1, 1). The delegate is never
// mutated; its reported bounds via the plain accessors stay whatever the
// caller declared. Solver backends translate models through this view so
// that 0/1-only engines see workable bounds.
func WidenBools(v View) View {
	return widenedBools{View: v}
}

// readOnly hides the dynamic type of its delegate so a caller cannot
// assert it back to a mutable *Problem.
type readOnly struct {
	View
}

// ReadOnly returns a view of v that forwards every call unchanged but
// cannot be type-asserted back to the underlying implementation.
func ReadOnly(v View) View { return readOnly{View: v} }

// renamed decorates a View, overriding only its display name.
type renamed struct {
	View
	name string
}

// Rename returns a view of v reporting the given name instead of the
// delegate's. Everything else forwards unchanged; the delegate is never
// mutated.
func Rename(v View, name string) View {
	return renamed{View: v, name: name}
}

func (r renamed) Name() string { return r.name }

func (w widenedBools) VarType(id string) (VarType, error) {
	t, err := w.View.VarType(id)
	if err != nil {
		return 0, err
	}
	if t == Bool {
		return Int, nil
	}
	return t, nil
}

func (w widenedBools) VarLowerBound(id string) (*float64, error) {
	t, err := w.View.VarType(id)
	if err != nil {
		return nil, err
	}
	lo, err := w.View.VarLowerBound(id)
	if err != nil || t != Bool {
		return lo, err
	}
	if lo == nil || *lo < 0 {
		zero := 0.0
		return &zero, nil
	}
	return lo, nil
}

func (w widenedBools) VarUpperBound(id string) (*float64, error) {
	t, err := w.View.VarType(id)
	if err != nil {
		return nil, err
	}
	up, err := w.View.VarUpperBound(id)
	if err != nil || t != Bool {
		return up, err
	}
	if up == nil || *up > 1 {
		one := 1.0
		return &one, nil
	}
	return up, nil
}

func (w widenedBools) Dimension() Dimension {
	d := w.View.Dimension()
	d.Ints += d.Bools
	d.Bools = 0
	return d
}

// AssertZeroOne verifies that v, seen through the bool-widening view, is a
// pure zero-one program: every variable integral with bounds inside [0,1].
// SAT-style backends accept nothing else.
func AssertZeroOne(v View) error {
	widened := WidenBools(v)
	for _, id := range widened.Variables() {
		t, err := widened.VarType(id)
		if err != nil {
			return err
		}
		if !t.IsInt() {
			return fmt.Errorf("%w: variable %q is not integral", ErrNotZeroOne, id)
		}
		lo, err := widened.VarLowerBound(id)
		if err != nil {
			return err
		}
		if lo == nil || *lo < 0 {
			return fmt.Errorf("%w: variable %q has lower bound below 0", ErrNotZeroOne, id)
		}
		up, err := widened.VarUpperBound(id)
		if err != nil {
			return err
		}
		if up == nil || *up > 1 {
			return fmt.Errorf("%w: variable %q has upper bound above 1", ErrNotZeroOne, id)
		}
	}
	return nil
}

// Equal reports structural equality of two problem views: name, variable
// sets with types, bounds and display names, constraint sets (ignoring
// constraint ids) and objectives. Bounds compare by float64 value.
func Equal(a, b View) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Name() != b.Name() {
		return false
	}
	if a.NumVariables() != b.NumVariables() || a.NumConstraints() != b.NumConstraints() {
		return false
	}
	for _, id := range a.Variables() {
		if !b.HasVariable(id) {
			return false
		}
		if !varStateEqual(a, b, id) {
			return false
		}
	}
	for _, c := range a.Constraints() {
		if !b.HasConstraint(c) {
			return false
		}
	}
	return a.Objective().Equal(b.Objective())
}

func varStateEqual(a, b View, id string) bool {
	at, _ := a.VarType(id)
	bt, _ := b.VarType(id)
	if at != bt {
		return false
	}
	an, _ := a.VarName(id)
	bn, _ := b.VarName(id)
	if an != bn {
		return false
	}
	alo, _ := a.VarLowerBound(id)
	blo, _ := b.VarLowerBound(id)
	if !boundEqual(alo, blo) {
		return false
	}
	aup, _ := a.VarUpperBound(id)
	bup, _ := b.VarUpperBound(id)
	return boundEqual(aup, bup)
}

func boundEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// CopyTo replaces the contents of dst with a deep copy of src. Reports
// false (leaving dst untouched) when the two are already structurally equal.
func CopyTo(src View, dst *Problem) bool {
	if Equal(src, dst) {
		return false
	}
	dst.Clear()
	dst.SetName(src.Name())
	for _, id := range src.Variables() {
		t, _ := src.VarType(id)
		_, _ = dst.SetVarType(id, t)
		name, _ := src.VarName(id)
		_, _ = dst.SetVarName(id, name)
		lo, _ := src.VarLowerBound(id)
		up, _ := src.VarUpperBound(id)
		_, _ = dst.SetVarBounds(id, lo, up)
	}
	obj := src.Objective()
	if fn, ok := obj.Function(); ok {
		_, _ = dst.SetObjective(fn.Thaw(), obj.Direction())
	} else {
		_, _ = dst.SetObjective(nil, obj.Direction())
	}
	for _, c := range src.Constraints() {
		_, _ = dst.Add(c)
	}
	return true
}
