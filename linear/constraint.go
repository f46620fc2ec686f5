// SPDX-License-Identifier: MIT

package linear

import (
	"fmt"
	"math"
	"strconv"
)

// Operator is the comparison of a linear constraint.
type Operator uint8

const (
	// LE is "less or equal".
	LE Operator = iota
	// GE is "greater or equal".
	GE
	// EQ is "equal".
	EQ
)

// Valid reports whether the operator is one of LE, GE, EQ.
func (op Operator) Valid() bool { return op <= EQ }

// String renders the operator as "<=", ">=" or "=".
func (op Operator) String() string {
	switch op {
	case LE:
		return "<="
	case GE:
		return ">="
	case EQ:
		return "="
	default:
		return fmt.Sprintf("Operator(%d)", uint8(op))
	}
}

// Satisfied reports whether "lhs op rhs" holds.
func (op Operator) Satisfied(lhs, rhs float64) bool {
	switch op {
	case LE:
		return lhs <= rhs
	case GE:
		return lhs >= rhs
	case EQ:
		return lhs == rhs
	default:
		return false
	}
}

// Constraint is an immutable linear constraint "lhs op rhs" with an optional
// identifier.
//
// The identifier is carried for export and debugging but does NOT take part
// in equality: two constraints with identical lhs, operator and rhs are
// equal regardless of their ids. Sets of constraints therefore treat an
// equal-but-differently-named constraint as already present.
type Constraint struct {
	id  string
	lhs FrozenExpr
	op  Operator
	rhs float64
}

// NewConstraint validates and builds a constraint. The lhs must have at
// least one term and the rhs must be finite.
func NewConstraint(id string, lhs *Expr, op Operator, rhs float64) (Constraint, error) {
	if lhs.Len() == 0 {
		return Constraint{}, ErrEmptyExpression
	}
	if !op.Valid() {
		return Constraint{}, fmt.Errorf("%w: %d", ErrBadOperator, op)
	}
	if math.IsNaN(rhs) || math.IsInf(rhs, 0) {
		return Constraint{}, fmt.Errorf("%w: rhs %v", ErrNotFinite, rhs)
	}
	return Constraint{id: id, lhs: Freeze(lhs), op: op, rhs: rhs}, nil
}

// ID returns the constraint identifier, possibly empty.
func (c Constraint) ID() string { return c.id }

// Lhs returns the frozen left-hand side.
func (c Constraint) Lhs() FrozenExpr { return c.lhs }

// Operator returns the comparison operator.
func (c Constraint) Operator() Operator { return c.op }

// Rhs returns the right-hand side.
func (c Constraint) Rhs() float64 { return c.rhs }

// Equal reports structural equality over (lhs, operator, rhs), ignoring ids.
func (c Constraint) Equal(o Constraint) bool {
	return c.op == o.op && c.rhs == o.rhs && c.lhs.Equal(o.lhs)
}

// Fingerprint returns a canonical structural key consistent with Equal:
// equal constraints produce identical fingerprints whatever their ids.
func (c Constraint) Fingerprint() string {
	return c.lhs.Fingerprint() + "|" + c.op.String() + "|" +
		strconv.FormatFloat(c.rhs, 'g', -1, 64)
}

// String renders the constraint as `'id': lhs op rhs`.
func (c Constraint) String() string {
	return fmt.Sprintf("'%s': %s %s %v", c.id, c.lhs, c.op, c.rhs)
}
