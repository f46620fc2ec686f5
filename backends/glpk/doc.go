// SPDX-License-Identifier: MIT

// Package glpk adapts the GNU Linear Programming Kit, through the
// lukpank/go-glpk binding, to the solve.Solver interface. Continuous
// problems run the simplex method and expose dual values; problems with
// integer variables run the branch-and-cut solver. The adapter can also
// write the bound problem in the CPLEX LP and fixed MPS formats.
package glpk
