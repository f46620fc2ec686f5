// SPDX-License-Identifier: MIT

// Package highs adapts the HiGHS optimizer, through the lanl/highs
// binding, to the solve.Solver interface. The model is assembled as a
// sparse row-bounded matrix and solved in one shot; dual values are
// reported for purely continuous problems. HiGHS keeps no persistent
// native handle, so Close only invalidates the adapter.
package highs
