// SPDX-License-Identifier: MIT

package solve

// Status is the uniform termination vocabulary every backend result is
// normalized into.
type Status uint8

const (
	// NoStatus marks a solver that has not run yet.
	NoStatus Status = iota

	// Optimal: a provably optimal solution is available.
	Optimal

	// Feasible: a feasible solution is available without an optimality
	// proof, or the run was optimal on a problem with no objective.
	Feasible

	// Infeasible: the problem admits no feasible point.
	Infeasible

	// Unbounded: the objective is unbounded in the optimization direction.
	Unbounded

	// InfeasibleOrUnbounded: the backend proved one of the two without
	// telling which.
	InfeasibleOrUnbounded

	// ErrorWithSolution: the run failed but a feasible incumbent survives.
	ErrorWithSolution

	// ErrorNoSolution: the run failed with nothing to show.
	ErrorNoSolution

	// MemoryLimitWithSolution: the memory limit fired, incumbent available.
	MemoryLimitWithSolution

	// MemoryLimitNoSolution: the memory limit fired before any incumbent.
	MemoryLimitNoSolution

	// TimeLimitWithSolution: the time limit fired, incumbent available.
	TimeLimitWithSolution

	// TimeLimitNoSolution: the time limit fired before any incumbent.
	TimeLimitNoSolution

	numStatuses
)

// IsFeasible reports whether the status implies a feasible solution is
// available. The answer is derived from the status alone.
func (s Status) IsFeasible() bool {
	switch s {
	case Optimal, Feasible, ErrorWithSolution, MemoryLimitWithSolution, TimeLimitWithSolution:
		return true
	default:
		return false
	}
}

// Valid reports whether s is a declared status.
func (s Status) Valid() bool { return s < numStatuses }

func (s Status) String() string {
	switch s {
	case NoStatus:
		return "NoStatus"
	case Optimal:
		return "Optimal"
	case Feasible:
		return "Feasible"
	case Infeasible:
		return "Infeasible"
	case Unbounded:
		return "Unbounded"
	case InfeasibleOrUnbounded:
		return "InfeasibleOrUnbounded"
	case ErrorWithSolution:
		return "ErrorWithSolution"
	case ErrorNoSolution:
		return "ErrorNoSolution"
	case MemoryLimitWithSolution:
		return "MemoryLimitWithSolution"
	case MemoryLimitNoSolution:
		return "MemoryLimitNoSolution"
	case TimeLimitWithSolution:
		return "TimeLimitWithSolution"
	case TimeLimitNoSolution:
		return "TimeLimitNoSolution"
	default:
		return "Status(?)"
	}
}
