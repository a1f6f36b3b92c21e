// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrTextureNotAvailable is returned when the render target cannot
// supply the current frame's texture, e.g. a swapchain lost or
// outdated during a live resize. It is transient: skip the frame
// and retry on the next tick. Other render errors are not.
var ErrTextureNotAvailable = errors.New("gpu: current texture not available")

// Surface is the render target for a window, managing the
// swapchain of textures presented to the display.
// A transient failure to acquire the next texture (e.g. during a
// live resize) reconfigures the surface and reports an error so
// the caller can skip the frame; the next frame recovers.
type Surface struct {
	// GPU is the physical GPU we are using.
	GPU *GPU

	// Format has the surface size and texture format.
	// The format is negotiated from the surface capabilities.
	Format TextureFormat

	// PresentMode selects vsync behavior. Fifo (vsync) is the default.
	PresentMode wgpu.PresentMode

	render Render

	// device is the logical device, created for and owned by
	// this surface.
	device *Device

	surface   *wgpu.Surface
	alphaMode wgpu.CompositeAlphaMode

	// current frame's acquired swapchain texture and view,
	// released on Present.
	curTexture *wgpu.Texture
	curView    *wgpu.TextureView

	needsConfig bool
}

// NewSurface returns a new Surface for the given WebGPU surface
// (from [GLFWCreateWindow] or equivalent) at the given initial size.
// It creates a new Device owned by the surface.
func NewSurface(gp *GPU, wsurf *wgpu.Surface, size image.Point) (*Surface, error) {
	sf := &Surface{GPU: gp, surface: wsurf}
	sf.PresentMode = wgpu.PresentModeFifo
	dev, err := NewDevice(gp)
	if err != nil {
		return nil, err
	}
	sf.device = dev
	caps := wsurf.GetCapabilities(gp.Adapter)
	if len(caps.Formats) == 0 {
		return nil, errors.Log(fmt.Errorf("gpu.NewSurface: surface has no supported formats"))
	}
	sf.Format.Set(size.X, size.Y, caps.Formats[0])
	sf.alphaMode = caps.AlphaModes[0]
	sf.render.Config(dev, &sf.Format)
	sf.configure()
	return sf, nil
}

func (sf *Surface) Device() *Device { return sf.device }
func (sf *Surface) Render() *Render { return &sf.render }

// Size returns the current surface size in pixels.
func (sf *Surface) Size() image.Point { return sf.Format.Size }

// configure (re)configures the swapchain for the current size.
func (sf *Surface) configure() {
	sf.surface.Configure(sf.GPU.Adapter, sf.device.Device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      sf.Format.Format,
		Width:       uint32(max(1, sf.Format.Size.X)),
		Height:      uint32(max(1, sf.Format.Size.Y)),
		PresentMode: sf.PresentMode,
		AlphaMode:   sf.alphaMode,
	})
	sf.needsConfig = false
}

// SetSize records a new surface size, to be applied at the
// next frame. Call from the window resize callback.
func (sf *Surface) SetSize(size image.Point) {
	if sf.Format.Size == size {
		return
	}
	sf.Format.Size = size
	sf.render.SetSize(size.X, size.Y)
	sf.needsConfig = true
}

// GetCurrentTexture acquires the next swapchain texture and returns
// its view. A failure to acquire wraps [ErrTextureNotAvailable]:
// the surface has been reconfigured and the caller should skip this
// frame. Any other error is a device failure.
func (sf *Surface) GetCurrentTexture() (*wgpu.TextureView, error) {
	if sf.needsConfig {
		sf.configure()
	}
	tex, err := sf.surface.GetCurrentTexture()
	if err != nil {
		sf.configure()
		return nil, fmt.Errorf("gpu.Surface.GetCurrentTexture: %w: %w", ErrTextureNotAvailable, err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, errors.Log(err)
	}
	sf.curTexture = tex
	sf.curView = view
	return view, nil
}

// Present shows the current frame on the display and releases
// the acquired swapchain texture.
func (sf *Surface) Present() {
	if sf.curTexture == nil {
		return
	}
	sf.surface.Present()
	sf.curView.Release()
	sf.curView = nil
	sf.curTexture.Release()
	sf.curTexture = nil
}

func (sf *Surface) Release() {
	if sf.curView != nil {
		sf.curView.Release()
		sf.curView = nil
	}
	if sf.curTexture != nil {
		sf.curTexture.Release()
		sf.curTexture = nil
	}
	if sf.surface != nil {
		sf.surface.Release()
		sf.surface = nil
	}
	if sf.device != nil {
		sf.device.Release()
		sf.device = nil
	}
}
