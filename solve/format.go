// SPDX-License-Identifier: MIT

package solve

// FileFormat selects the on-disk encoding used by Solver.WriteProblem.
type FileFormat uint8

const (
	// FormatSolverPreferred lets the backend pick its native format.
	FormatSolverPreferred FileFormat = iota

	// FormatLP is the CPLEX LP text format.
	FormatLP

	// FormatMPS is the fixed MPS format.
	FormatMPS

	numFileFormats
)

// Extension returns the conventional file extension, empty for
// FormatSolverPreferred.
func (f FileFormat) Extension() string {
	switch f {
	case FormatLP:
		return ".lp"
	case FormatMPS:
		return ".mps"
	default:
		return ""
	}
}

// Valid reports whether f is a declared format.
func (f FileFormat) Valid() bool { return f < numFileFormats }

func (f FileFormat) String() string {
	switch f {
	case FormatSolverPreferred:
		return "SolverPreferred"
	case FormatLP:
		return "LP"
	case FormatMPS:
		return "MPS"
	default:
		return "FileFormat(?)"
	}
}
