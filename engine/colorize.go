// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import "cogentcore.org/core/math32"

// DisplayModes selects how the display pass maps simulation state
// to pixel colors.
type DisplayModes int32

const (
	// DisplayDirect samples the simulation state texture at the
	// pixel's UV coordinate. This is the default.
	DisplayDirect DisplayModes = iota

	// DisplayProcedural colors each pixel from a hash of its UV
	// coordinate and the current time, ignoring the simulation
	// state. It exists as a smoke test of the uniform and viewport
	// plumbing: any time or viewport bug is immediately visible.
	DisplayProcedural
)

func (dm DisplayModes) String() string {
	switch dm {
	case DisplayDirect:
		return "Direct"
	case DisplayProcedural:
		return "Procedural"
	}
	return "Unknown"
}

func fract(x float32) float32 {
	return x - math32.Floor(x)
}

// RandomColor is the host mirror of the procedural colorization in
// the fragment shader: a reproducible pseudo-random RGB color from
// a UV coordinate and time. Identical inputs always produce the
// identical color.
func RandomColor(uv math32.Vector2, t float32) math32.Vector3 {
	h := fract(math32.Sin(uv.Dot(math32.Vec2(12.9898, 78.233))+t) * 43758.5453)
	return math32.Vec3(fract(h), fract(h*2), fract(h*3))
}
