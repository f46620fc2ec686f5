// SPDX-License-Identifier: MIT

// Package solve defines the solver-facing surface of the library: the
// Solver interface every backend adapter implements, the uniform Status
// vocabulary results are normalized into, resource parameters resolution,
// and the shared Base embedded by the adapters.
//
// The lifecycle every adapter follows is
//
//	s.SetProblem(p)
//	status, err := s.Solve()
//	sol := s.Solution()
//	_ = s.Close()
//
// Solve translates the bound problem into the native model, runs the
// native algorithm under the configured resource limits, maps the native
// termination code onto Status and, when the status carries a feasible
// point, stores an immutable solution snapshot. Backend handles are
// released on every exit path; a Solver remains reusable after Solve
// until Close.
//
// Status normalization is strict: a native code the adapter does not
// know is a defect in the adapter, not a runtime condition, and the
// adapter panics rather than guessing. An optimal termination on a
// problem without a complete objective is reported as Feasible, since
// optimality is meaningless without an objective.
package solve
