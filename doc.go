// SPDX-License-Identifier: MIT

// Package lpbridge is a solver-agnostic layer for linear and mixed
// integer programming. A problem is stated once, as linear expressions,
// typed variables with optional bounds, comparison constraints and an
// optional objective, and handed to any of the supported backends
// through one Solver interface. Outcomes are normalized into a uniform
// status vocabulary and immutable solution snapshots, so switching the
// engine under a model never changes the calling code.
//
// The packages split along the lifecycle of a model:
//
//   - linear: expressions, constraints and objectives
//   - problem: the mutable problem container and read-only views
//   - params: solver-independent resource parameters
//   - solution: mutable solution builders and frozen results
//   - solve: the Solver interface, statuses and the shared adapter base
//   - backends/...: one adapter per engine
//
// This package ties them together with a backend registry:
//
//	s, err := lpbridge.New(lpbridge.GLPK)
//	if err != nil {
//		...
//	}
//	defer s.Close()
//	s.SetProblem(p)
//	status, err := s.Solve()
package lpbridge
