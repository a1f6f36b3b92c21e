// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"
	"image/color"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// GraphicsSystem manages a system of GraphicsPipelines that all
// share a common collection of Vars and Values, rendering to one
// Renderer target (Surface or RenderTexture). It provides the
// top-level API for the whole render process.
type GraphicsSystem struct {
	// Name is an optional name of this GraphicsSystem.
	Name string

	// vars represents all the data variables used by the system,
	// with one Var for each resource made visible to the shader,
	// indexed by Group (@group) and Binding (@binding).
	// Access through the Vars() method.
	vars Vars

	// GraphicsPipelines by name.
	GraphicsPipelines map[string]*GraphicsPipeline

	// Renderer is the rendering target for this system:
	// either a Surface or a RenderTexture.
	Renderer Renderer

	// CommandEncoder is the command encoder created in
	// [GraphicsSystem.BeginRenderPass] and released in
	// [GraphicsSystem.EndRenderPass].
	CommandEncoder *wgpu.CommandEncoder

	// logical device for this GraphicsSystem, from the Renderer.
	device Device

	// gpu is our GPU, which has properties and alignment factors.
	gpu *GPU
}

// NewGraphicsSystem returns a new GraphicsSystem, using the given
// Renderer as the render target.
func NewGraphicsSystem(gp *GPU, name string, rd Renderer) *GraphicsSystem {
	sy := &GraphicsSystem{}
	sy.gpu = gp
	sy.Name = name
	sy.Renderer = rd
	sy.device = *rd.Device()
	sy.vars.device = sy.device
	sy.vars.sys = sy
	sy.GraphicsPipelines = make(map[string]*GraphicsPipeline)
	return sy
}

// System interface:

func (sy *GraphicsSystem) Vars() *Vars     { return &sy.vars }
func (sy *GraphicsSystem) Device() *Device { return &sy.device }
func (sy *GraphicsSystem) GPU() *GPU       { return sy.gpu }
func (sy *GraphicsSystem) Render() *Render { return sy.Renderer.Render() }

// WaitDone waits until the device is done with current work.
func (sy *GraphicsSystem) WaitDone() {
	sy.device.WaitDone()
}

func (sy *GraphicsSystem) Release() {
	sy.WaitDone()
	for _, pl := range sy.GraphicsPipelines {
		pl.Release()
	}
	sy.GraphicsPipelines = nil
	sy.vars.Release()
	sy.gpu = nil
}

// AddGraphicsPipeline adds a new GraphicsPipeline to the system.
func (sy *GraphicsSystem) AddGraphicsPipeline(name string) *GraphicsPipeline {
	pl := NewGraphicsPipeline(name, sy)
	sy.GraphicsPipelines[pl.Name] = pl
	return pl
}

// SetSize updates the size of the render target. WebGPU has no
// internal mechanism for tracking window resizes, so this must be
// driven from external events.
func (sy *GraphicsSystem) SetSize(size image.Point) {
	sy.Renderer.SetSize(size)
}

// Config configures the entire system, after the pipelines and
// vars have been set up. After this point, just set values for the
// vars and do render passes. This should not need to be called
// more than once.
func (sy *GraphicsSystem) Config() {
	sy.vars.Config(&sy.device)
	if Debug {
		fmt.Printf("%s\n", sy.vars.StringDoc())
	}
	for _, pl := range sy.GraphicsPipelines {
		pl.Config(true)
	}
}

// SetClearColor sets the RGBA color used when starting a new
// clearing render pass.
func (sy *GraphicsSystem) SetClearColor(c color.Color) *GraphicsSystem {
	sy.Render().ClearColor = c
	return sy
}

////////////////////////////////////////////////////////////////
// Rendering

// NewCommandEncoder returns a new CommandEncoder for encoding
// rendering commands. Called automatically by BeginRenderPass,
// with the result maintained in CommandEncoder.
func (sy *GraphicsSystem) NewCommandEncoder() (*wgpu.CommandEncoder, error) {
	cmd, err := sy.device.Device.CreateCommandEncoder(nil)
	if errors.Log(err) != nil {
		return nil, err
	}
	return cmd, nil
}

func (sy *GraphicsSystem) beginRenderPass() (*Render, *wgpu.TextureView, error) {
	rd := sy.Renderer
	view, err := rd.GetCurrentTexture()
	if err != nil {
		return nil, nil, err
	}
	cmd, err := sy.NewCommandEncoder()
	if errors.Log(err) != nil {
		return nil, nil, err
	}
	sy.CommandEncoder = cmd
	return rd.Render(), view, nil
}

// BeginRenderPass starts the render pass on the Renderer configured
// for this system, returning the encoder to add rendering commands
// to. It clears the target first, using the ClearColor.
// A transient surface error is returned without logging: skip the
// frame. Call [EndRenderPass] when done.
func (sy *GraphicsSystem) BeginRenderPass() (*wgpu.RenderPassEncoder, error) {
	rd, view, err := sy.beginRenderPass()
	if err != nil {
		return nil, err
	}
	return rd.BeginRenderPass(sy.CommandEncoder, view), nil
}

// BeginRenderPassNoClear is BeginRenderPass without clearing the
// target first, so the prior render output is carried over.
func (sy *GraphicsSystem) BeginRenderPassNoClear() (*wgpu.RenderPassEncoder, error) {
	rd, view, err := sy.beginRenderPass()
	if err != nil {
		return nil, err
	}
	return rd.BeginRenderPassNoClear(sy.CommandEncoder, view), nil
}

// SubmitRender submits the current render commands to the device
// queue and releases the CommandEncoder and the given
// RenderPassEncoder. You must call rp.End prior to calling this.
// Other commands can be inserted between rp.End and this, e.g.
// to copy the rendered image back to the host.
func (sy *GraphicsSystem) SubmitRender(rp *wgpu.RenderPassEncoder) error {
	cmd := sy.CommandEncoder
	sy.CommandEncoder = nil
	rp.Release() // must happen before Finish
	cmdBuffer, err := cmd.Finish(nil)
	if errors.Log(err) != nil {
		return err
	}
	sy.device.Queue.Submit(cmdBuffer)
	cmdBuffer.Release()
	cmd.Release()
	for _, pl := range sy.GraphicsPipelines {
		pl.releaseOldBindGroups()
	}
	return nil
}

// EndRenderPass ends the render pass started by [BeginRenderPass],
// submitting the rendering commands to the device and calling
// Present() on the Renderer to show the result.
func (sy *GraphicsSystem) EndRenderPass(rp *wgpu.RenderPassEncoder) {
	sy.SubmitRender(rp)
	sy.Renderer.Present()
}
