// SPDX-License-Identifier: MIT

// Package linear defines the mathematical payload of a linear or
// mixed-integer program: terms, linear expressions, constraints and
// objectives.
//
// Variables are plain string identifiers. A Term pairs a finite coefficient
// with a variable; an Expr is an ordered collection of terms keyed by
// variable identity, so re-adding a variable with a different coefficient is
// rejected rather than silently producing two conflicting terms. Insertion
// order is preserved for display and translation stability, but equality is
// order-insensitive.
//
// Value semantics:
//
//   - Term is an immutable comparable value.
//   - Expr is mutable; FrozenExpr is its immutable snapshot. Constraint and
//     Objective only ever hold frozen snapshots, so a constraint added to a
//     problem cannot be corrupted by later mutation of the caller's Expr.
//   - Constraint equality is structural over (lhs, operator, rhs) and
//     deliberately ignores the constraint id.
//
// Errors (sentinel):
//
//	ErrEmptyVariable     - a variable identifier is the empty string.
//	ErrNotFinite         - a coefficient or right-hand side is NaN or ±Inf.
//	ErrVariableRedefined - Add() saw the same variable with another coefficient.
//	ErrEmptyExpression   - a constraint left-hand side has no terms.
//	ErrBadOperator       - an Operator value is out of range.
//	ErrBadDirection      - a Direction value is out of range.
package linear
