// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"fmt"

	"cogentcore.org/core/math32"
)

// FullscreenN is the number of vertices in the fullscreen pass.
const FullscreenN = 6

// fullscreenVerts are two counter-clockwise triangles exactly tiling
// the NDC square [-1,1]^2. The WGSL vs_main indexes the same table,
// so no vertex buffer exists anywhere.
var fullscreenVerts = [FullscreenN]math32.Vector2{
	{X: -1, Y: -1}, {X: 1, Y: -1}, {X: -1, Y: 1},
	{X: -1, Y: 1}, {X: 1, Y: -1}, {X: 1, Y: 1},
}

// FullscreenVertex returns the i-th fullscreen-pass vertex position
// in normalized device coordinates. It is the host mirror of the
// vertex table hardcoded in the shader. Panics if i is outside
// [0, FullscreenN): an out-of-range index is a programmer error,
// matching the draw call always covering exactly six vertices.
func FullscreenVertex(i int) math32.Vector2 {
	if i < 0 || i >= FullscreenN {
		panic(fmt.Sprintf("engine.FullscreenVertex: index %d out of range [0, %d)", i, FullscreenN))
	}
	return fullscreenVerts[i]
}
