// SPDX-License-Identifier: MIT

package linear

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Expr is a mutable linear expression: an insertion-ordered set of terms
// keyed by variable identity. The zero value is not usable; call NewExpr.
type Expr struct {
	coeffs map[string]float64
	order  []string
}

// NewExpr returns an empty mutable expression.
func NewExpr() *Expr {
	return &Expr{coeffs: make(map[string]float64)}
}

// Add inserts the term coefficient×variable.
//
// Reports false (and no error) when an identical term is already present.
// A second insertion of the same variable with a different coefficient is a
// caller error (ErrVariableRedefined): replace-or-add ambiguity is rejected
// rather than guessed at.
func (e *Expr) Add(coefficient float64, variable string) (bool, error) {
	term, err := NewTerm(coefficient, variable)
	if err != nil {
		return false, err
	}
	if prev, ok := e.coeffs[term.Variable]; ok {
		if prev == term.Coefficient {
			return false, nil
		}
		return false, fmt.Errorf("%w: %s has %v, got %v",
			ErrVariableRedefined, term.Variable, prev, term.Coefficient)
	}
	e.coeffs[term.Variable] = term.Coefficient
	e.order = append(e.order, term.Variable)
	return true, nil
}

// Len reports the number of terms.
func (e *Expr) Len() int {
	if e == nil {
		return 0
	}
	return len(e.order)
}

// Terms returns the terms in insertion order. The slice is a fresh copy.
func (e *Expr) Terms() []Term {
	if e == nil {
		return nil
	}
	out := make([]Term, 0, len(e.order))
	for _, v := range e.order {
		out = append(out, Term{Coefficient: e.coeffs[v], Variable: v})
	}
	return out
}

// Variables returns the variable identifiers in insertion order.
func (e *Expr) Variables() []string {
	if e == nil {
		return nil
	}
	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}

// Coefficient reports the coefficient of the given variable and whether the
// variable occurs in the expression.
func (e *Expr) Coefficient(variable string) (float64, bool) {
	if e == nil {
		return 0, false
	}
	c, ok := e.coeffs[variable]
	return c, ok
}

// Evaluate computes Σ coefficient×value over all terms.
//
// Reports ok=false when any referenced variable lacks a value: a partially
// assigned solution must not silently evaluate to a wrong finite number.
func (e *Expr) Evaluate(values map[string]float64) (float64, bool) {
	if e == nil {
		return 0, true
	}
	var sum float64
	for _, v := range e.order {
		val, ok := values[v]
		if !ok {
			return 0, false
		}
		sum += e.coeffs[v] * val
	}
	return sum, true
}

// Equal reports structural equality: same variable→coefficient mapping,
// regardless of insertion order. A nil expression equals an empty one.
func (e *Expr) Equal(o *Expr) bool {
	if e.Len() != o.Len() {
		return false
	}
	if e == nil || o == nil {
		return true
	}
	for v, c := range e.coeffs {
		oc, ok := o.coeffs[v]
		if !ok || oc != c {
			return false
		}
	}
	return true
}

// Clone returns an independent mutable copy.
func (e *Expr) Clone() *Expr {
	c := NewExpr()
	if e == nil {
		return c
	}
	for v, coeff := range e.coeffs {
		c.coeffs[v] = coeff
	}
	c.order = append(c.order, e.order...)
	return c
}

// Fingerprint returns a canonical structural key: equal expressions (in the
// order-insensitive sense of Equal) produce identical fingerprints.
func (e *Expr) Fingerprint() string {
	if e.Len() == 0 {
		return ""
	}
	vars := make([]string, len(e.order))
	copy(vars, e.order)
	sort.Strings(vars)
	var b strings.Builder
	for i, v := range vars {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(strconv.Quote(v))
		b.WriteByte('=')
		b.WriteString(strconv.FormatFloat(e.coeffs[v], 'g', -1, 64))
	}
	return b.String()
}

// String renders the terms in insertion order, e.g. "143*x + 60*y".
func (e *Expr) String() string {
	if e.Len() == 0 {
		return "0"
	}
	parts := make([]string, 0, len(e.order))
	for _, v := range e.order {
		parts = append(parts, Term{Coefficient: e.coeffs[v], Variable: v}.String())
	}
	return strings.Join(parts, " + ")
}

// FrozenExpr is an immutable snapshot of an Expr. The zero value is the
// empty expression. Having no mutators, it can be shared freely.
type FrozenExpr struct {
	inner *Expr
}

// Freeze snapshots e into an immutable expression. Later mutation of e does
// not affect the snapshot.
func Freeze(e *Expr) FrozenExpr {
	return FrozenExpr{inner: e.Clone()}
}

// Len reports the number of terms.
func (f FrozenExpr) Len() int { return f.inner.Len() }

// Terms returns the terms in insertion order.
func (f FrozenExpr) Terms() []Term { return f.inner.Terms() }

// Variables returns the variable identifiers in insertion order.
func (f FrozenExpr) Variables() []string { return f.inner.Variables() }

// Coefficient reports the coefficient of the given variable.
func (f FrozenExpr) Coefficient(variable string) (float64, bool) {
	return f.inner.Coefficient(variable)
}

// Evaluate computes the expression under the given assignment; see Expr.Evaluate.
func (f FrozenExpr) Evaluate(values map[string]float64) (float64, bool) {
	return f.inner.Evaluate(values)
}

// Equal reports order-insensitive structural equality.
func (f FrozenExpr) Equal(o FrozenExpr) bool { return f.inner.Equal(o.inner) }

// Fingerprint returns the canonical structural key; see Expr.Fingerprint.
func (f FrozenExpr) Fingerprint() string { return f.inner.Fingerprint() }

// Thaw returns an independent mutable copy.
func (f FrozenExpr) Thaw() *Expr { return f.inner.Clone() }

// String renders the terms in insertion order.
func (f FrozenExpr) String() string {
	if f.inner == nil {
		return "0"
	}
	return f.inner.String()
}
