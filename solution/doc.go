// SPDX-License-Identifier: MIT

// Package solution implements the value snapshot a solver produces: primal
// values per variable, dual values per constraint and an optional objective
// value, bound to an immutable snapshot of the problem that was solved.
//
// The bound problem is deep-copied at construction, so later mutation of the
// caller's live problem cannot corrupt a delivered solution. Every key put
// into the primal or dual map must belong to the bound problem; violations
// fail immediately.
//
// Solution is the mutable builder a backend fills in; Frozen is the
// immutable variant handed to callers, freely shareable across goroutines.
// Equality compares the bound problems plus value-by-value float64 equality.
package solution
