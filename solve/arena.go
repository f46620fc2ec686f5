// SPDX-License-Identifier: MIT

package solve

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lpbridge/problem"
)

// ErrNotInteger indicates a value too far from any integer to round.
var ErrNotInteger = errors.New("solve: value is not integral within tolerance")

// integerTol bounds how far a relaxed integer value may drift from the
// nearest integer before rounding is refused.
const integerTol = 1e-6

// AsInteger rounds v to the nearest integer, refusing when the distance
// exceeds tolerance. Backends use it to hand integral coefficients and
// relaxed integer results to exact-arithmetic engines.
func AsInteger(v float64) (int, error) {
	r := math.Round(v)
	if math.Abs(v-r) > integerTol {
		return 0, fmt.Errorf("%w: %v", ErrNotInteger, v)
	}
	return int(r), nil
}

// Arena maps a problem's variables onto the dense index range native
// models expect. Indices start at base: 1 for one-based engines, 0
// otherwise. Iteration order is the problem's insertion order.
type Arena struct {
	base int
	ids  []string
	idx  map[string]int
}

// NewArena indexes the variables of v starting at base.
func NewArena(v problem.View, base int) *Arena {
	ids := v.Variables()
	a := &Arena{base: base, ids: ids, idx: make(map[string]int, len(ids))}
	for i, id := range ids {
		a.idx[id] = base + i
	}
	return a
}

// ID returns the native index of a variable.
func (a *Arena) ID(variable string) (int, bool) {
	i, ok := a.idx[variable]
	return i, ok
}

// Variable returns the variable at a native index.
func (a *Arena) Variable(index int) (string, bool) {
	i := index - a.base
	if i < 0 || i >= len(a.ids) {
		return "", false
	}
	return a.ids[i], true
}

// Variables returns all indexed variables in insertion order.
func (a *Arena) Variables() []string { return a.ids }

// Len returns the number of indexed variables.
func (a *Arena) Len() int { return len(a.ids) }
