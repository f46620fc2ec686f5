// SPDX-License-Identifier: MIT

package lpbridge

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lpbridge/backends/glpk"
	"github.com/katalvlaran/lpbridge/backends/highs"
	"github.com/katalvlaran/lpbridge/backends/lpsolve"
	"github.com/katalvlaran/lpbridge/backends/sat"
	"github.com/katalvlaran/lpbridge/solve"
)

// ErrUnknownBackend indicates a Backend value outside the declared set.
var ErrUnknownBackend = errors.New("lpbridge: unknown backend")

// Backend names one supported solving engine.
type Backend uint8

const (
	// GLPK is the GNU Linear Programming Kit.
	GLPK Backend = iota

	// HiGHS is the HiGHS optimizer.
	HiGHS

	// LPSolve is the lp_solve library.
	LPSolve

	// SAT is the gophersat pseudo-boolean engine, for zero-one problems.
	SAT

	numBackends
)

// Valid reports whether b names a supported backend.
func (b Backend) Valid() bool { return b < numBackends }

func (b Backend) String() string {
	switch b {
	case GLPK:
		return "GLPK"
	case HiGHS:
		return "HiGHS"
	case LPSolve:
		return "lp_solve"
	case SAT:
		return "SAT"
	default:
		return "Backend(?)"
	}
}

// Backends returns every supported backend.
func Backends() []Backend {
	return []Backend{GLPK, HiGHS, LPSolve, SAT}
}

// New returns a fresh solver for the given backend. The caller owns the
// solver and releases it with Close.
func New(b Backend) (solve.Solver, error) {
	switch b {
	case GLPK:
		return glpk.New(), nil
	case HiGHS:
		return highs.New(), nil
	case LPSolve:
		return lpsolve.New(), nil
	case SAT:
		return sat.New(), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownBackend, b)
	}
}
