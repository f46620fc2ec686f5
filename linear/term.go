// SPDX-License-Identifier: MIT

package linear

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for the linear algebra model.
var (
	// ErrEmptyVariable indicates a variable identifier is the empty string.
	ErrEmptyVariable = errors.New("linear: variable identifier is empty")

	// ErrNotFinite indicates a coefficient or right-hand side is NaN or ±Inf.
	ErrNotFinite = errors.New("linear: value must be finite")

	// ErrVariableRedefined indicates the same variable was added twice with
	// different coefficients.
	ErrVariableRedefined = errors.New("linear: variable already present with another coefficient")

	// ErrEmptyExpression indicates an expression has no terms where at least
	// one is required.
	ErrEmptyExpression = errors.New("linear: expression has no terms")

	// ErrBadOperator indicates an Operator value outside LE, GE, EQ.
	ErrBadOperator = errors.New("linear: unknown comparison operator")

	// ErrBadDirection indicates a Direction value outside Min, Max.
	ErrBadDirection = errors.New("linear: unknown optimization direction")
)

// Term is one coefficient×variable product of a linear expression.
//
// Term is a comparable value: two terms are equal iff both the coefficient
// and the variable are equal.
type Term struct {
	// Coefficient multiplies the variable. Always finite.
	Coefficient float64

	// Variable is the non-empty variable identifier.
	Variable string
}

// NewTerm validates and builds a Term.
// Returns ErrEmptyVariable or ErrNotFinite on invalid input.
func NewTerm(coefficient float64, variable string) (Term, error) {
	if variable == "" {
		return Term{}, ErrEmptyVariable
	}
	if math.IsNaN(coefficient) || math.IsInf(coefficient, 0) {
		return Term{}, fmt.Errorf("%w: coefficient %v of %q", ErrNotFinite, coefficient, variable)
	}
	return Term{Coefficient: coefficient, Variable: variable}, nil
}

// String renders the term as "c*v".
func (t Term) String() string {
	return fmt.Sprintf("%v*%s", t.Coefficient, t.Variable)
}
