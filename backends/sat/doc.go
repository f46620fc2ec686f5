// SPDX-License-Identifier: MIT

// Package sat adapts the gophersat pseudo-boolean engine to the
// solve.Solver interface. Only zero-one problems are accepted: every
// variable must be a boolean or an integer whose bounds pin it into
// {0, 1}, and every coefficient must be integral. Constraints become
// pseudo-boolean constraints over positive literals; an objective is
// normalized into a positive-weight cost function with a constant
// offset and minimized exactly.
package sat
