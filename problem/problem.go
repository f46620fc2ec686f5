// SPDX-License-Identifier: MIT

package problem

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lpbridge/linear"
)

// Sentinel errors for problem mutation.
var (
	// ErrUnknownVariable indicates a constraint or objective references a
	// variable that is not a member of the problem.
	ErrUnknownVariable = errors.New("problem: unknown variable")

	// ErrBoundsReversed indicates a lower bound greater than the upper bound.
	ErrBoundsReversed = errors.New("problem: lower bound greater than upper bound")

	// ErrBadVarType indicates a VarType value outside Real, Int, Bool.
	ErrBadVarType = errors.New("problem: unknown variable type")
)

// VarType is the domain of a problem variable.
type VarType uint8

const (
	// Real is a continuous variable. New variables default to Real.
	Real VarType = iota
	// Int is an integer variable.
	Int
	// Bool is a zero-one variable.
	Bool
)

// Valid reports whether the type is one of Real, Int, Bool.
func (t VarType) Valid() bool { return t <= Bool }

// IsInt reports whether the type constrains the variable to integers.
func (t VarType) IsInt() bool { return t == Int || t == Bool }

// String renders the variable type.
func (t VarType) String() string {
	switch t {
	case Real:
		return "REAL"
	case Int:
		return "INT"
	case Bool:
		return "BOOL"
	default:
		return fmt.Sprintf("VarType(%d)", uint8(t))
	}
}

// Dimension is a cheap structural summary of a problem.
type Dimension struct {
	Bools       int
	Ints        int
	Reals       int
	Constraints int
}

// Variables reports the total variable count.
func (d Dimension) Variables() int { return d.Bools + d.Ints + d.Reals }

// View is the read side of a problem. *Problem implements it; so do the
// decorators returned by WidenBools. A View in hand is a read-only problem:
// no mutators exist on the interface.
type View interface {
	// Name returns the problem name, possibly empty.
	Name() string
	// Variables returns the variable identifiers in insertion order.
	Variables() []string
	// NumVariables reports the variable count.
	NumVariables() int
	// HasVariable reports membership of a variable.
	HasVariable(id string) bool
	// VarType returns the type of a variable (ErrUnknownVariable otherwise).
	VarType(id string) (VarType, error)
	// VarLowerBound returns the declared lower bound, nil when unbounded.
	VarLowerBound(id string) (*float64, error)
	// VarUpperBound returns the declared upper bound, nil when unbounded.
	VarUpperBound(id string) (*float64, error)
	// VarName returns the display name set on the variable, "" when none.
	VarName(id string) (string, error)
	// Constraints returns the constraints in insertion order.
	Constraints() []linear.Constraint
	// NumConstraints reports the constraint count.
	NumConstraints() int
	// HasConstraint reports structural membership, ignoring constraint ids.
	HasConstraint(c linear.Constraint) bool
	// Objective returns the problem objective.
	Objective() linear.Objective
	// Dimension returns per-type variable counts and the constraint count.
	Dimension() Dimension
}

// Problem is the mutable store. The zero value is not usable; call New.
//
// Every mutator reports whether it changed observable state. Problem is a
// plain value container with no internal synchronization: it must not be
// mutated concurrently with a solve in progress.
type Problem struct {
	name     string
	varTypes map[string]VarType
	varOrder []string
	lower    map[string]float64
	upper    map[string]float64
	varNames map[string]string

	constraints    []linear.Constraint
	constraintKeys map[string]struct{}

	objFn  *linear.Expr
	objDir linear.Direction
}

// New returns an empty problem with no name.
func New() *Problem {
	return &Problem{
		varTypes:       make(map[string]VarType),
		lower:          make(map[string]float64),
		upper:          make(map[string]float64),
		varNames:       make(map[string]string),
		constraintKeys: make(map[string]struct{}),
	}
}

// Name returns the problem name.
func (p *Problem) Name() string { return p.name }

// SetName sets the problem name and reports whether it changed.
func (p *Problem) SetName(name string) bool {
	if p.name == name {
		return false
	}
	p.name = name
	return true
}

// Variables returns the variable identifiers in insertion order.
func (p *Problem) Variables() []string {
	out := make([]string, len(p.varOrder))
	copy(out, p.varOrder)
	return out
}

// NumVariables reports the variable count.
func (p *Problem) NumVariables() int { return len(p.varOrder) }

// HasVariable reports membership of a variable.
func (p *Problem) HasVariable(id string) bool {
	_, ok := p.varTypes[id]
	return ok
}

// AddVariable adds a variable with the default type Real. Reports false when
// the variable is already present.
func (p *Problem) AddVariable(id string) (bool, error) {
	if id == "" {
		return false, linear.ErrEmptyVariable
	}
	if _, ok := p.varTypes[id]; ok {
		return false, nil
	}
	p.varTypes[id] = Real
	p.varOrder = append(p.varOrder, id)
	return true, nil
}

// VarType returns the type of a variable.
func (p *Problem) VarType(id string) (VarType, error) {
	t, ok := p.varTypes[id]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownVariable, id)
	}
	return t, nil
}

// SetVarType sets the type of a variable, implicitly adding it when absent.
func (p *Problem) SetVarType(id string, t VarType) (bool, error) {
	if !t.Valid() {
		return false, fmt.Errorf("%w: %d", ErrBadVarType, t)
	}
	added, err := p.AddVariable(id)
	if err != nil {
		return false, err
	}
	if p.varTypes[id] == t {
		return added, nil
	}
	p.varTypes[id] = t
	return true, nil
}

// VarLowerBound returns the declared lower bound, nil when unbounded.
func (p *Problem) VarLowerBound(id string) (*float64, error) {
	if !p.HasVariable(id) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariable, id)
	}
	if lo, ok := p.lower[id]; ok {
		v := lo
		return &v, nil
	}
	return nil, nil
}

// VarUpperBound returns the declared upper bound, nil when unbounded.
func (p *Problem) VarUpperBound(id string) (*float64, error) {
	if !p.HasVariable(id) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariable, id)
	}
	if up, ok := p.upper[id]; ok {
		v := up
		return &v, nil
	}
	return nil, nil
}

// SetVarBounds sets the bounds of a variable, implicitly adding it when
// absent. A nil bound leaves the corresponding side unchanged — it does NOT
// clear it. The resulting pair must satisfy lower ≤ upper; bounds may be
// infinite but not NaN.
func (p *Problem) SetVarBounds(id string, lower, upper *float64) (bool, error) {
	if lower != nil && math.IsNaN(*lower) {
		return false, fmt.Errorf("%w: lower bound NaN", linear.ErrNotFinite)
	}
	if upper != nil && math.IsNaN(*upper) {
		return false, fmt.Errorf("%w: upper bound NaN", linear.ErrNotFinite)
	}

	newLower, hasLower := p.mergedBound(p.lower, id, lower)
	newUpper, hasUpper := p.mergedBound(p.upper, id, upper)
	if hasLower && hasUpper && newLower > newUpper {
		return false, fmt.Errorf("%w: %v > %v on %q", ErrBoundsReversed, newLower, newUpper, id)
	}

	added, err := p.AddVariable(id)
	if err != nil {
		return false, err
	}
	changed := added
	if lower != nil {
		prev, had := p.lower[id]
		p.lower[id] = *lower
		changed = changed || !had || prev != *lower
	}
	if upper != nil {
		prev, had := p.upper[id]
		p.upper[id] = *upper
		changed = changed || !had || prev != *upper
	}
	return changed, nil
}

// mergedBound resolves the bound that would result from applying next on top
// of the stored value.
func (p *Problem) mergedBound(stored map[string]float64, id string, next *float64) (float64, bool) {
	if next != nil {
		return *next, true
	}
	v, ok := stored[id]
	return v, ok
}

// VarName returns the display name of a variable, "" when unnamed.
func (p *Problem) VarName(id string) (string, error) {
	if !p.HasVariable(id) {
		return "", fmt.Errorf("%w: %q", ErrUnknownVariable, id)
	}
	return p.varNames[id], nil
}

// SetVarName sets the display name of a variable, implicitly adding it when
// absent. An empty name clears the display name.
func (p *Problem) SetVarName(id, name string) (bool, error) {
	added, err := p.AddVariable(id)
	if err != nil {
		return false, err
	}
	prev := p.varNames[id]
	if name == "" {
		delete(p.varNames, id)
	} else {
		p.varNames[id] = name
	}
	return added || prev != name, nil
}

// Constraints returns the constraints in insertion order.
func (p *Problem) Constraints() []linear.Constraint {
	out := make([]linear.Constraint, len(p.constraints))
	copy(out, p.constraints)
	return out
}

// NumConstraints reports the constraint count.
func (p *Problem) NumConstraints() int { return len(p.constraints) }

// HasConstraint reports structural membership, ignoring constraint ids.
func (p *Problem) HasConstraint(c linear.Constraint) bool {
	_, ok := p.constraintKeys[c.Fingerprint()]
	return ok
}

// Add inserts a constraint. Every variable of its left-hand side must
// already be a problem variable. Reports false when a structurally equal
// constraint is already present, whatever its id.
func (p *Problem) Add(c linear.Constraint) (bool, error) {
	for _, v := range c.Lhs().Variables() {
		if !p.HasVariable(v) {
			return false, fmt.Errorf("%w: %q in constraint %s", ErrUnknownVariable, v, c)
		}
	}
	key := c.Fingerprint()
	if _, ok := p.constraintKeys[key]; ok {
		return false, nil
	}
	p.constraints = append(p.constraints, c)
	p.constraintKeys[key] = struct{}{}
	return true, nil
}

// AddConstraint validates and inserts the constraint "lhs op rhs" with the
// given id; see Add.
func (p *Problem) AddConstraint(id string, lhs *linear.Expr, op linear.Operator, rhs float64) (bool, error) {
	c, err := linear.NewConstraint(id, lhs, op, rhs)
	if err != nil {
		return false, err
	}
	return p.Add(c)
}

// Objective returns the problem objective.
func (p *Problem) Objective() linear.Objective {
	o, err := linear.NewObjective(p.objFn, p.objDir)
	if err != nil {
		// objDir is validated on the way in.
		panic(err)
	}
	return o
}

// SetObjective sets the objective function and direction together. The
// function must only reference problem variables; nil clears the function.
// Function and direction may legally be set one at a time: the
// empty-or-complete invariant is enforced at solve time, not here.
func (p *Problem) SetObjective(fn *linear.Expr, direct linear.Direction) (bool, error) {
	if !direct.Valid() {
		return false, fmt.Errorf("%w: %d", linear.ErrBadDirection, direct)
	}
	if fn != nil {
		for _, v := range fn.Variables() {
			if !p.HasVariable(v) {
				return false, fmt.Errorf("%w: %q in objective", ErrUnknownVariable, v)
			}
		}
	}
	changedFn := !p.objFn.Equal(fn)
	if changedFn {
		if fn == nil {
			p.objFn = nil
		} else {
			p.objFn = fn.Clone()
		}
	}
	changedDir := p.objDir != direct
	p.objDir = direct
	return changedFn || changedDir, nil
}

// SetObjectiveDirection sets only the optimization sense.
func (p *Problem) SetObjectiveDirection(direct linear.Direction) (bool, error) {
	if !direct.Valid() {
		return false, fmt.Errorf("%w: %d", linear.ErrBadDirection, direct)
	}
	changed := p.objDir != direct
	p.objDir = direct
	return changed, nil
}

// Dimension returns per-type variable counts and the constraint count.
func (p *Problem) Dimension() Dimension {
	var d Dimension
	for _, t := range p.varTypes {
		switch t {
		case Bool:
			d.Bools++
		case Int:
			d.Ints++
		default:
			d.Reals++
		}
	}
	d.Constraints = len(p.constraints)
	return d
}

// Clear resets the problem to the freshly constructed empty state.
func (p *Problem) Clear() {
	p.name = ""
	p.varTypes = make(map[string]VarType)
	p.varOrder = nil
	p.lower = make(map[string]float64)
	p.upper = make(map[string]float64)
	p.varNames = make(map[string]string)
	p.constraints = nil
	p.constraintKeys = make(map[string]struct{})
	p.objFn = nil
	p.objDir = linear.NoDirection
}

// Clone returns an independent deep copy.
func (p *Problem) Clone() *Problem {
	c := New()
	CopyTo(p, c)
	return c
}

// String renders a short structural summary.
func (p *Problem) String() string {
	d := p.Dimension()
	obj := p.Objective()
	if obj.IsEmpty() {
		return fmt.Sprintf("Problem{'%s', %d variables, %d constraints}",
			p.name, d.Variables(), d.Constraints)
	}
	return fmt.Sprintf("Problem{'%s', %s, %d variables, %d constraints}",
		p.name, obj, d.Variables(), d.Constraints)
}
