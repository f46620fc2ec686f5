// SPDX-License-Identifier: MIT

package linear

import "fmt"

// Direction is the optimization sense of an objective. The zero value means
// "not set", which is a meaningful state distinct from Min and Max.
type Direction uint8

const (
	// NoDirection means the optimization sense has not been chosen.
	NoDirection Direction = iota
	// Min minimizes the objective function.
	Min
	// Max maximizes the objective function.
	Max
)

// Valid reports whether the direction is NoDirection, Min or Max.
func (d Direction) Valid() bool { return d <= Max }

// String renders the direction.
func (d Direction) String() string {
	switch d {
	case NoDirection:
		return "unset"
	case Min:
		return "MIN"
	case Max:
		return "MAX"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// Objective pairs an optional objective function with an optional direction.
//
// An objective is "empty" when it has neither function nor direction, and
// "complete" when it has both. The in-between states are legal transiently
// (so a caller may set the function first and the direction second) but are
// rejected when a solve is attempted.
type Objective struct {
	fn     FrozenExpr
	hasFn  bool
	direct Direction
}

// NewObjective builds an objective from an optional function (nil means
// none) and a direction. The function is snapshotted.
func NewObjective(fn *Expr, direct Direction) (Objective, error) {
	if !direct.Valid() {
		return Objective{}, fmt.Errorf("%w: %d", ErrBadDirection, direct)
	}
	o := Objective{direct: direct}
	if fn != nil {
		o.fn = Freeze(fn)
		o.hasFn = true
	}
	return o, nil
}

// Function returns the frozen objective function and whether one is set.
func (o Objective) Function() (FrozenExpr, bool) { return o.fn, o.hasFn }

// Direction returns the optimization sense, NoDirection when not chosen.
func (o Objective) Direction() Direction { return o.direct }

// IsEmpty reports that neither function nor direction is set.
func (o Objective) IsEmpty() bool { return !o.hasFn && o.direct == NoDirection }

// IsComplete reports that both function and direction are set.
func (o Objective) IsComplete() bool { return o.hasFn && o.direct != NoDirection }

// Equal reports structural equality of function and direction.
func (o Objective) Equal(b Objective) bool {
	if o.direct != b.direct || o.hasFn != b.hasFn {
		return false
	}
	if !o.hasFn {
		return true
	}
	return o.fn.Equal(b.fn)
}

// String renders the objective, e.g. "MAX 143*x + 60*y".
func (o Objective) String() string {
	if o.IsEmpty() {
		return "empty"
	}
	if !o.hasFn {
		return o.direct.String() + " <no function>"
	}
	return fmt.Sprintf("%s %s", o.direct, o.fn)
}
