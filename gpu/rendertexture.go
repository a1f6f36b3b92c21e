// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// RenderTexture is an offscreen, non-window-backed render target,
// functioning like a Surface. Used for headless rendering and tests.
type RenderTexture struct {
	// Format has the current size and format of the frames.
	Format TextureFormat

	// NFrames is the number of frames in the simulated swapchain.
	NFrames int

	// Frames are the textures iterated through on subsequent
	// GetCurrentTexture calls.
	Frames []*Texture

	// GPU is the physical GPU.
	GPU *GPU

	render Render

	curFrame int

	// device, which we do NOT own.
	device Device
}

// NewRenderTexture returns a new offscreen render target of the
// given size, on the given device (typically from NoDisplayGPU).
func NewRenderTexture(gp *GPU, dev *Device, size image.Point) *RenderTexture {
	rt := &RenderTexture{GPU: gp, device: *dev, NFrames: 1}
	rt.Format.Set(size.X, size.Y, wgpu.TextureFormatRGBA8Unorm)
	rt.render.Config(&rt.device, &rt.Format)
	rt.ConfigFrames()
	return rt
}

func (rt *RenderTexture) Device() *Device { return &rt.device }
func (rt *RenderTexture) Render() *Render { return &rt.render }

// Size returns the current frame size in pixels.
func (rt *RenderTexture) Size() image.Point { return rt.Format.Size }

// ConfigFrames allocates the frame textures, releasing any
// existing ones first, so it is safe for re-use.
func (rt *RenderTexture) ConfigFrames() {
	rt.ReleaseFrames()
	rt.Frames = make([]*Texture, rt.NFrames)
	for i := range rt.NFrames {
		fr := NewTexture(&rt.device)
		fr.ConfigRenderTexture(&rt.device, &rt.Format)
		rt.Frames[i] = fr
	}
}

// GetCurrentTexture returns the view of the current target frame,
// advancing to the next frame for the following call.
func (rt *RenderTexture) GetCurrentTexture() (*wgpu.TextureView, error) {
	cf := rt.curFrame
	rt.curFrame = (rt.curFrame + 1) % rt.NFrames
	return rt.Frames[cf].View(), nil
}

// CurrentFrame returns the texture that the next render pass
// will target.
func (rt *RenderTexture) CurrentFrame() *Texture {
	return rt.Frames[rt.curFrame]
}

// SetSize reallocates frames at the given size,
// doing nothing if already that size.
func (rt *RenderTexture) SetSize(size image.Point) {
	if rt.Format.Size == size {
		return
	}
	rt.Format.Size = size
	rt.render.SetSize(size.X, size.Y)
	rt.ConfigFrames()
}

func (rt *RenderTexture) Present() {
	// no-op: nothing to show offscreen
}

func (rt *RenderTexture) ReleaseFrames() {
	for _, fr := range rt.Frames {
		fr.Release()
	}
	rt.Frames = nil
}

func (rt *RenderTexture) Release() {
	rt.ReleaseFrames()
	rt.render.Release()
}
