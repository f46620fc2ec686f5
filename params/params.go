// SPDX-License-Identifier: MIT

package params

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for parameter handling.
var (
	// ErrInvalidValue indicates a value rejected by a parameter's validator.
	ErrInvalidValue = errors.New("params: value not meaningful for parameter")

	// ErrUnknownParameter indicates a parameter key outside the closed enums.
	ErrUnknownParameter = errors.New("params: unknown parameter")

	// ErrUnsupportedValue indicates a parameter carries a value the current
	// backend cannot honor.
	ErrUnsupportedValue = errors.New("params: parameter value not supported by this backend")
)

// DoubleParam enumerates the real-valued parameters.
type DoubleParam uint8

const (
	// MaxCPUSeconds caps solver CPU time. Default unset; must be > 0.
	MaxCPUSeconds DoubleParam = iota
	// MaxTreeSizeMB caps the search-tree memory. Default unset; must be > 0.
	MaxTreeSizeMB
	// MaxWallSeconds caps solver wall-clock time. Default unset; must be > 0.
	MaxWallSeconds

	numDoubleParams
)

// IntParam enumerates the integer-valued parameters.
type IntParam uint8

const (
	// Deterministic requests reproducible solves: 0 (opportunistic, the
	// default) or 1 (deterministic).
	Deterministic IntParam = iota
	// MaxThreads caps solver threads. Default unset; must be > 0 when set.
	MaxThreads

	numIntParams
)

// StringParam enumerates the string-valued parameters.
type StringParam uint8

const (
	// WorkDir is the solver scratch directory. Default unset; must be
	// non-empty when set.
	WorkDir StringParam = iota

	numStringParams
)

// String renders the parameter name.
func (p DoubleParam) String() string {
	switch p {
	case MaxCPUSeconds:
		return "MaxCPUSeconds"
	case MaxTreeSizeMB:
		return "MaxTreeSizeMB"
	case MaxWallSeconds:
		return "MaxWallSeconds"
	default:
		return fmt.Sprintf("DoubleParam(%d)", uint8(p))
	}
}

// String renders the parameter name.
func (p IntParam) String() string {
	switch p {
	case Deterministic:
		return "Deterministic"
	case MaxThreads:
		return "MaxThreads"
	default:
		return fmt.Sprintf("IntParam(%d)", uint8(p))
	}
}

// String renders the parameter name.
func (p StringParam) String() string {
	switch p {
	case WorkDir:
		return "WorkDir"
	default:
		return fmt.Sprintf("StringParam(%d)", uint8(p))
	}
}

// DoubleParams returns the closed set of real-valued parameters.
func DoubleParams() []DoubleParam {
	out := make([]DoubleParam, 0, numDoubleParams)
	for p := DoubleParam(0); p < numDoubleParams; p++ {
		out = append(out, p)
	}
	return out
}

// IntParams returns the closed set of integer-valued parameters.
func IntParams() []IntParam {
	out := make([]IntParam, 0, numIntParams)
	for p := IntParam(0); p < numIntParams; p++ {
		out = append(out, p)
	}
	return out
}

// StringParams returns the closed set of string-valued parameters.
func StringParams() []StringParam {
	out := make([]StringParam, 0, numStringParams)
	for p := StringParam(0); p < numStringParams; p++ {
		out = append(out, p)
	}
	return out
}

// Defaults. A nil default means "unset", itself a meaningful value.
// The tables are constant after package load; zeroInt backs the one non-nil
// default via pointer without per-call allocation.
var zeroInt = 0

func defaultDouble(DoubleParam) *float64 { return nil }

func defaultInt(p IntParam) *int {
	if p == Deterministic {
		return &zeroInt
	}
	return nil
}

func defaultString(StringParam) *string { return nil }

func validDouble(p DoubleParam, v *float64) bool {
	switch p {
	case MaxCPUSeconds, MaxTreeSizeMB, MaxWallSeconds:
		return v == nil || *v > 0
	default:
		return false
	}
}

func validInt(p IntParam, v *int) bool {
	switch p {
	case Deterministic:
		return v != nil && (*v == 0 || *v == 1)
	case MaxThreads:
		return v == nil || *v > 0
	default:
		return false
	}
}

func validString(p StringParam, v *string) bool {
	switch p {
	case WorkDir:
		return v == nil || *v != ""
	default:
		return false
	}
}

// Parameters is the mutable configuration registry. The zero value is not
// usable; call New. Parameters carries overrides only: a value equal to the
// parameter's default is stored as "no override".
type Parameters struct {
	doubles map[DoubleParam]float64
	ints    map[IntParam]int
	strings map[StringParam]string
}

// New returns a Parameters with every parameter at its default.
func New() *Parameters {
	return &Parameters{
		doubles: make(map[DoubleParam]float64),
		ints:    make(map[IntParam]int),
		strings: make(map[StringParam]string),
	}
}

// Double returns the effective value of p: the override when one is set,
// the documented default otherwise. A nil result is the meaningful "unset".
func (ps *Parameters) Double(p DoubleParam) *float64 {
	if v, ok := ps.doubles[p]; ok {
		return &v
	}
	return defaultDouble(p)
}

// Int returns the effective value of p; see Double.
func (ps *Parameters) Int(p IntParam) *int {
	if v, ok := ps.ints[p]; ok {
		return &v
	}
	return defaultInt(p)
}

// Str returns the effective value of p; see Double.
func (ps *Parameters) Str(p StringParam) *string {
	if v, ok := ps.strings[p]; ok {
		return &v
	}
	return defaultString(p)
}

// SetDouble sets p to v (nil = unset). Fails fast with ErrInvalidValue when
// the validator rejects v. Setting the default value removes the override.
// Reports whether the effective value changed.
func (ps *Parameters) SetDouble(p DoubleParam, v *float64) (bool, error) {
	if p >= numDoubleParams {
		return false, fmt.Errorf("%w: %s", ErrUnknownParameter, p)
	}
	if !validDouble(p, v) {
		return false, fmt.Errorf("%w: %s = %v", ErrInvalidValue, p, *v)
	}
	if ptrEq(v, defaultDouble(p)) {
		_, had := ps.doubles[p]
		delete(ps.doubles, p)
		return had, nil
	}
	prev, had := ps.doubles[p]
	ps.doubles[p] = *v
	return !had || prev != *v, nil
}

// SetInt sets p to v (nil = unset); see SetDouble.
func (ps *Parameters) SetInt(p IntParam, v *int) (bool, error) {
	if p >= numIntParams {
		return false, fmt.Errorf("%w: %s", ErrUnknownParameter, p)
	}
	if !validInt(p, v) {
		if v == nil {
			return false, fmt.Errorf("%w: %s = nil", ErrInvalidValue, p)
		}
		return false, fmt.Errorf("%w: %s = %v", ErrInvalidValue, p, *v)
	}
	if ptrEq(v, defaultInt(p)) {
		_, had := ps.ints[p]
		delete(ps.ints, p)
		return had, nil
	}
	prev, had := ps.ints[p]
	ps.ints[p] = *v
	return !had || prev != *v, nil
}

// SetStr sets p to v (nil = unset); see SetDouble.
func (ps *Parameters) SetStr(p StringParam, v *string) (bool, error) {
	if p >= numStringParams {
		return false, fmt.Errorf("%w: %s", ErrUnknownParameter, p)
	}
	if !validString(p, v) {
		return false, fmt.Errorf("%w: %s = %q", ErrInvalidValue, p, *v)
	}
	if ptrEq(v, defaultString(p)) {
		_, had := ps.strings[p]
		delete(ps.strings, p)
		return had, nil
	}
	prev, had := ps.strings[p]
	ps.strings[p] = *v
	return !had || prev != *v, nil
}

func ptrEq[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Clear resets every parameter to its default. Reports whether anything
// changed.
func (ps *Parameters) Clear() bool {
	changed := len(ps.doubles) > 0 || len(ps.ints) > 0 || len(ps.strings) > 0
	ps.doubles = make(map[DoubleParam]float64)
	ps.ints = make(map[IntParam]int)
	ps.strings = make(map[StringParam]string)
	return changed
}

// CopyFrom makes ps resolve every recognized parameter to the same
// effective value as src, iterating the full closed set so no stale
// override survives. Reports whether ps changed.
func (ps *Parameters) CopyFrom(src *Parameters) (bool, error) {
	if Equal(ps, src) {
		return false, nil
	}
	ps.Clear()
	for _, p := range DoubleParams() {
		if _, err := ps.SetDouble(p, src.Double(p)); err != nil {
			return true, err
		}
	}
	for _, p := range IntParams() {
		if _, err := ps.SetInt(p, src.Int(p)); err != nil {
			return true, err
		}
	}
	for _, p := range StringParams() {
		if _, err := ps.SetStr(p, src.Str(p)); err != nil {
			return true, err
		}
	}
	return true, nil
}

// Clone returns an independent copy.
func (ps *Parameters) Clone() *Parameters {
	c := New()
	_, _ = c.CopyFrom(ps)
	return c
}

// Equal reports whether every recognized parameter resolves to the same
// effective value in a and b.
func Equal(a, b *Parameters) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	for _, p := range DoubleParams() {
		if !ptrEq(a.Double(p), b.Double(p)) {
			return false
		}
	}
	for _, p := range IntParams() {
		if !ptrEq(a.Int(p), b.Int(p)) {
			return false
		}
	}
	for _, p := range StringParams() {
		if !ptrEq(a.Str(p), b.Str(p)) {
			return false
		}
	}
	return true
}

// String renders the overrides in deterministic order.
func (ps *Parameters) String() string {
	var parts []string
	for p, v := range ps.doubles {
		parts = append(parts, fmt.Sprintf("%s=%v", p, v))
	}
	for p, v := range ps.ints {
		parts = append(parts, fmt.Sprintf("%s=%d", p, v))
	}
	for p, v := range ps.strings {
		parts = append(parts, fmt.Sprintf("%s=%q", p, v))
	}
	sort.Strings(parts)
	return "Parameters{" + strings.Join(parts, ", ") + "}"
}

// AssertDefault verifies that each listed parameter sits at its default in
// ps. Backends declare the parameters they cannot honor this way, so an
// unsupported override fails the solve instead of being silently ignored.
func AssertDefault(ps *Parameters, doubles []DoubleParam, ints []IntParam, strs []StringParam) error {
	for _, p := range doubles {
		if v := ps.Double(p); !ptrEq(v, defaultDouble(p)) {
			return fmt.Errorf("%w: %s = %v", ErrUnsupportedValue, p, *v)
		}
	}
	for _, p := range ints {
		if v := ps.Int(p); !ptrEq(v, defaultInt(p)) {
			return fmt.Errorf("%w: %s = %v", ErrUnsupportedValue, p, *v)
		}
	}
	for _, p := range strs {
		if v := ps.Str(p); !ptrEq(v, defaultString(p)) {
			return fmt.Errorf("%w: %s = %q", ErrUnsupportedValue, p, *v)
		}
	}
	return nil
}
