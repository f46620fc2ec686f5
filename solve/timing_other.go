// SPDX-License-Identifier: MIT

//go:build !linux

package solve

import "time"

const cpuTimingSupported = false

func processCPUTime() time.Duration { return 0 }
