// SPDX-License-Identifier: MIT

// Package problem implements the variable/constraint/objective store of a
// linear or mixed-integer program, independent of any solver.
//
// A Problem owns a name, an insertion-ordered set of variables (each with a
// type ∈ {Real, Int, Bool}, optional bounds and an optional display name),
// an insertion-ordered set of constraints with structural set semantics, and
// one objective. Iteration order always equals insertion order: backend
// translation and file export must be deterministic.
//
// Invariants enforced at mutation time:
//
//   - every variable referenced by a constraint or by the objective must
//     already be a problem variable (ErrUnknownVariable otherwise);
//   - lower bound ≤ upper bound whenever both are set (ErrBoundsReversed);
//   - adding a constraint structurally equal to an existing one is a no-op,
//     whatever its id.
//
// Views:
//
//   - View is the read-side interface; handing a *Problem out as a View is
//     the read-only decorator: the mutators simply do not exist on it.
//   - WidenBools decorates a View so Bool variables read as Int with bounds
//     clamped into [0,1]. It never mutates the delegate; only what is read
//     changes. Solver backends translate through it, and AssertZeroOne
//     validates through it.
//
// Errors (sentinel):
//
//	ErrUnknownVariable - a constraint or objective references a variable
//	                     that is not in the problem.
//	ErrBoundsReversed  - lower bound > upper bound.
//	ErrBadVarType      - a VarType value is out of range.
package problem
