// SPDX-License-Identifier: MIT

package solve

import "time"

// TimingType distinguishes the two clocks a solve may be measured on.
type TimingType uint8

const (
	// WallTiming measures elapsed real time.
	WallTiming TimingType = iota

	// CPUTiming measures process CPU time, user plus system.
	CPUTiming
)

func (t TimingType) String() string {
	if t == CPUTiming {
		return "CPU"
	}
	return "Wall"
}

// Duration is an elapsed time annotated with the clock it was taken on.
type Duration struct {
	Type    TimingType
	Elapsed time.Duration
}

func (d Duration) String() string {
	return d.Elapsed.String() + " (" + d.Type.String() + ")"
}

// PreferredTiming resolves which clock governs a solve given which limits
// are set. Setting both limits is an error, a wall limit selects the wall
// clock, a CPU limit requires CPU clock support, and with no limit the CPU
// clock is preferred when available.
func PreferredTiming(cpuLimit, wallLimit *float64) (TimingType, error) {
	switch {
	case cpuLimit != nil && wallLimit != nil:
		return WallTiming, ErrBothTimeLimits
	case wallLimit != nil:
		return WallTiming, nil
	case cpuLimit != nil:
		if !cpuTimingSupported {
			return WallTiming, ErrCPUTimingUnsupported
		}
		return CPUTiming, nil
	default:
		if cpuTimingSupported {
			return CPUTiming, nil
		}
		return WallTiming, nil
	}
}

// Stopwatch measures a solve on the clock chosen at start.
type Stopwatch struct {
	typ       TimingType
	wallStart time.Time
	cpuStart  time.Duration
}

// StartStopwatch starts measuring on the given clock.
func StartStopwatch(typ TimingType) *Stopwatch {
	w := &Stopwatch{typ: typ, wallStart: time.Now()}
	if typ == CPUTiming {
		w.cpuStart = processCPUTime()
	}
	return w
}

// Stop returns the elapsed time on the stopwatch's clock.
func (w *Stopwatch) Stop() Duration {
	if w.typ == CPUTiming {
		return Duration{Type: CPUTiming, Elapsed: processCPUTime() - w.cpuStart}
	}
	return Duration{Type: WallTiming, Elapsed: time.Since(w.wallStart)}
}
