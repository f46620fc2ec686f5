// SPDX-License-Identifier: MIT

// Package lpsolve adapts the lp_solve library, through the
// draffensperger/golp binding, to the solve.Solver interface. Columns
// are zero-based, constraints are loaded sparsely and the bound problem
// can be written in the lp_solve LP format. The binding reports no dual
// values, so solutions carry primal values only.
package lpsolve
