// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image/color"

	"cogentcore.org/core/colors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Render manages the render pass state for a render target,
// holding the target format and the clear color. The Render object
// lives on the Surface or RenderTexture and is shared by the
// GraphicsSystem rendering to it.
type Render struct {
	// Format of the target framebuffer we render to.
	Format TextureFormat

	// ClearColor is the color to clear to when starting a
	// clearing render pass.
	ClearColor color.Color

	device *Device
}

// Config sets the device and format for this render state.
func (rd *Render) Config(dev *Device, tf *TextureFormat) {
	rd.device = dev
	rd.Format = *tf
	rd.ClearColor = colors.Black
}

// SetSize updates the target size.
func (rd *Render) SetSize(w, h int) {
	rd.Format.SetSize(w, h)
}

func (rd *Render) Release() {}

func (rd *Render) clearValue() wgpu.Color {
	c := colors.AsRGBA(rd.ClearColor)
	return wgpu.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}

// ClearRenderPass returns a render pass descriptor that clears
// the framebuffer to the ClearColor.
func (rd *Render) ClearRenderPass(view *wgpu.TextureView) *wgpu.RenderPassDescriptor {
	return &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			ClearValue: rd.clearValue(),
			StoreOp:    wgpu.StoreOpStore,
		}},
	}
}

// LoadRenderPass returns a render pass descriptor that loads
// the previous framebuffer contents.
func (rd *Render) LoadRenderPass(view *wgpu.TextureView) *wgpu.RenderPassDescriptor {
	return &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:    view,
			LoadOp:  wgpu.LoadOpLoad,
			StoreOp: wgpu.StoreOpStore,
		}},
	}
}

// BeginRenderPass starts a render pass on the given view,
// clearing the frame first according to ClearColor.
// See BeginRenderPassNoClear for the non-clearing version.
func (rd *Render) BeginRenderPass(cmd *wgpu.CommandEncoder, view *wgpu.TextureView) *wgpu.RenderPassEncoder {
	return cmd.BeginRenderPass(rd.ClearRenderPass(view))
}

// BeginRenderPassNoClear starts a render pass on the given view,
// loading the prior contents.
func (rd *Render) BeginRenderPassNoClear(cmd *wgpu.CommandEncoder, view *wgpu.TextureView) *wgpu.RenderPassEncoder {
	return cmd.BeginRenderPass(rd.LoadRenderPass(view))
}
