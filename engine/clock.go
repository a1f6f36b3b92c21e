// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import "time"

// DefaultMaxDT is the default upper clamp on the per-frame time
// step, in seconds. A long stall (debugger, window drag) otherwise
// feeds one huge step into the simulation.
const DefaultMaxDT = 0.1

// Clock tracks elapsed time for the frame loop. Time is seconds
// since Start, monotonic, and never reset while running. DT is the
// time step for the current frame, clamped to [0, MaxDT].
type Clock struct {
	// Time is the current elapsed time in seconds.
	Time float32

	// DT is the time step computed by the last [Clock.Tick].
	DT float32

	// MaxDT is the upper clamp on DT. Defaults to [DefaultMaxDT].
	MaxDT float32

	// FixedDT, if positive, replaces measured frame times entirely:
	// every Tick advances by exactly FixedDT. Used for deterministic
	// stepping in tests and offline runs.
	FixedDT float32

	start time.Time
	last  time.Time
}

// Start begins or restarts the clock at time zero.
func (ck *Clock) Start() {
	if ck.MaxDT == 0 {
		ck.MaxDT = DefaultMaxDT
	}
	ck.start = time.Now()
	ck.last = ck.start
	ck.Time = 0
	ck.DT = 0
}

// Tick advances the clock for the next frame and returns DT.
func (ck *Clock) Tick() float32 {
	if ck.FixedDT > 0 {
		ck.DT = ck.FixedDT
		ck.Time += ck.DT
		return ck.DT
	}
	now := time.Now()
	dt := float32(now.Sub(ck.last).Seconds())
	ck.last = now
	ck.DT = min(max(dt, 0), ck.MaxDT)
	ck.Time = float32(now.Sub(ck.start).Seconds())
	return ck.DT
}
