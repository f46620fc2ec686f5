// SPDX-License-Identifier: MIT

package solve

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the backend adapters.
var (
	// ErrBothTimeLimits indicates both a CPU and a wall time limit are set;
	// at most one may be active.
	ErrBothTimeLimits = errors.New("solve: both cpu and wall time limits set")

	// ErrCPUTimingUnsupported indicates a CPU time limit on a platform
	// without a per-process CPU clock.
	ErrCPUTimingUnsupported = errors.New("solve: cpu timing unsupported on this platform")

	// ErrIncompleteObjective indicates a problem whose objective has a
	// function or a direction but not both.
	ErrIncompleteObjective = errors.New("solve: objective must be empty or complete")

	// ErrUnsupportedFormat indicates a file format the backend cannot write.
	ErrUnsupportedFormat = errors.New("solve: file format unsupported by backend")

	// ErrSolverClosed indicates use of a solver after Close.
	ErrSolverClosed = errors.New("solve: solver is closed")
)

// BackendError wraps a failure reported by a native backend, carrying the
// backend name and the operation that failed.
type BackendError struct {
	Backend string
	Op      string
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("solve: %s %s: %v", e.Backend, e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// WrapBackend builds a BackendError; nil in, nil out.
func WrapBackend(backend, op string, err error) error {
	if err == nil {
		return nil
	}
	return &BackendError{Backend: backend, Op: op, Err: err}
}
