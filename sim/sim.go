// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sim defines the simulation interface driven by the engine
// frame loop, and shared state-buffer helpers.
package sim

import (
	"fmt"
	"image"
)

// Simulation is one GPU-displayed 2D simulation. The engine calls
// Step once per frame and uploads Pixels to the display texture.
// Implementations must be deterministic: identical configuration
// and step sequence produce identical pixels.
type Simulation interface {
	// Name returns the short name of the simulation kind.
	Name() string

	// Size returns the state grid size in cells / pixels.
	Size() image.Point

	// Step advances the simulation by one update with the given
	// time step in seconds. State buffers are fully written and
	// swapped before Step returns.
	Step(dt float32)

	// Pixels returns the current RGBA state, of length 4 * W * H.
	// It is never the buffer an in-progress step is writing.
	Pixels() []byte

	// Reset returns the simulation to its initial state.
	Reset()
}

// ValidateSize returns an error if the given grid size is not
// strictly positive in both dimensions. Used by simulation
// constructors to fail fast on configuration errors.
func ValidateSize(size image.Point) error {
	if size.X < 1 || size.Y < 1 {
		return fmt.Errorf("sim: grid size must be at least 1x1, got %dx%d", size.X, size.Y)
	}
	return nil
}
