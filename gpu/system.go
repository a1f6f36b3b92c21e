// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// System provides the general interface for
// [GraphicsSystem] and [ComputeSystem].
type System interface {
	// Vars represents all the data variables used by the system,
	// with one Var for each resource that is made visible to the shader,
	// indexed by Group (@group) and Binding (@binding).
	// Each Var has Value(s) containing specific instance values.
	Vars() *Vars

	// Device is the logical device for this system, from
	// the Renderer (Surface) or owned by a ComputeSystem.
	Device() *Device

	// GPU is our GPU device, which has properties
	// and alignment factors.
	GPU() *GPU

	// Render returns the Render object, for a GraphicsSystem
	// (nil for a ComputeSystem).
	Render() *Render
}

// Renderer is the interface for render targets: [Surface]
// for a window, or [RenderTexture] for offscreen rendering.
type Renderer interface {
	// Device returns the logical device for this render target.
	Device() *Device

	// Render returns the Render state manager for this target.
	Render() *Render

	// GetCurrentTexture returns the texture view to render into
	// for the current frame. For a Surface this can return a
	// transient error during resize; the frame should be skipped.
	GetCurrentTexture() (*wgpu.TextureView, error)

	// Present shows the rendered frame. No-op for offscreen targets.
	Present()

	// SetSize sets the pixel size of the render target.
	SetSize(size image.Point)

	// Size returns the current pixel size of the render target.
	Size() image.Point

	Release()
}
