// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"math"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// ComputeSystem manages a system of ComputePipelines that all share
// a common collection of Vars and Values.
type ComputeSystem struct {
	// optional name of this ComputeSystem.
	Name string

	// vars represents all the data variables used by the system,
	// with one Var for each resource made visible to the shader,
	// indexed by Group (@group) and Binding (@binding).
	// Each Var has Value(s) containing specific instance values.
	// Access through the Vars() method.
	vars Vars

	// ComputePipelines by name.
	ComputePipelines map[string]*ComputePipeline

	// CommandEncoder is the command encoder created in
	// [ComputeSystem.BeginComputePass] and released in
	// [ComputeSystem.EndComputePass].
	CommandEncoder *wgpu.CommandEncoder

	// logical device for this ComputeSystem, which we own.
	device *Device

	// gpu is our GPU, which has properties and alignment factors.
	gpu *GPU
}

// NewComputeSystem returns a new ComputeSystem, initialized with
// its own new device that is owned by the system.
func NewComputeSystem(gp *GPU, name string) *ComputeSystem {
	sy := &ComputeSystem{}
	sy.gpu = gp
	sy.Name = name
	sy.device = errors.Log1(NewDevice(gp))
	sy.vars.device = *sy.device
	sy.vars.sys = sy
	sy.ComputePipelines = make(map[string]*ComputePipeline)
	return sy
}

// System interface:

func (sy *ComputeSystem) Vars() *Vars     { return &sy.vars }
func (sy *ComputeSystem) Device() *Device { return sy.device }
func (sy *ComputeSystem) GPU() *GPU       { return sy.gpu }
func (sy *ComputeSystem) Render() *Render { return nil }

// WaitDone waits until the device is done with current work.
func (sy *ComputeSystem) WaitDone() {
	sy.device.WaitDone()
}

func (sy *ComputeSystem) Release() {
	sy.WaitDone()
	for _, pl := range sy.ComputePipelines {
		pl.Release()
	}
	sy.ComputePipelines = nil
	sy.vars.Release()
	sy.device.Release()
	sy.gpu = nil
}

// AddComputePipeline adds a new ComputePipeline to the system.
func (sy *ComputeSystem) AddComputePipeline(name string) *ComputePipeline {
	pl := NewComputePipeline(name, sy)
	sy.ComputePipelines[pl.Name] = pl
	return pl
}

// Config configures the entire system, after the pipelines and
// vars have been set up. After this point, just set values for the
// vars and do compute passes. This should not need to be called
// more than once.
func (sy *ComputeSystem) Config() {
	sy.vars.Config(sy.device)
	if Debug {
		fmt.Printf("%s\n", sy.vars.StringDoc())
	}
	for _, pl := range sy.ComputePipelines {
		pl.Config(true)
	}
}

// NewCommandEncoder returns a new CommandEncoder for encoding
// compute commands. Called automatically by BeginComputePass,
// with the result maintained in CommandEncoder.
func (sy *ComputeSystem) NewCommandEncoder() (*wgpu.CommandEncoder, error) {
	cmd, err := sy.device.Device.CreateCommandEncoder(nil)
	if errors.Log(err) != nil {
		return nil, err
	}
	return cmd, nil
}

// BeginComputePass starts the compute pass, returning the encoder
// to add compute commands to. Call [EndComputePass] when done.
func (sy *ComputeSystem) BeginComputePass() (*wgpu.ComputePassEncoder, error) {
	cmd, err := sy.NewCommandEncoder()
	if errors.Log(err) != nil {
		return nil, err
	}
	sy.CommandEncoder = cmd
	return cmd.BeginComputePass(nil), nil
}

// EndComputePass submits the current compute commands to the device
// queue and releases the CommandEncoder and the given
// ComputePassEncoder. You must call ce.End prior to calling this.
// Other commands can be inserted between ce.End and this, e.g.
// to copy results back from the GPU.
func (sy *ComputeSystem) EndComputePass(ce *wgpu.ComputePassEncoder) error {
	cmd := sy.CommandEncoder
	sy.CommandEncoder = nil
	cmdBuffer, err := cmd.Finish(nil)
	if errors.Log(err) != nil {
		return err
	}
	sy.device.Queue.Submit(cmdBuffer)
	cmdBuffer.Release()
	ce.Release()
	cmd.Release()
	for _, pl := range sy.ComputePipelines {
		pl.releaseOldBindGroups()
	}
	return nil
}

// Warps returns the number of work groups of compute threads
// that is sufficient to compute n elements, given the number of
// threads per this dimension. It rounds up: Ceil(n / threads).
func Warps(n, threads int) int {
	return int(math.Ceil(float64(n) / float64(threads)))
}

// ComputePipeline is a compute pipeline, which runs a compute
// shader entry point over dispatched work groups.
type ComputePipeline struct {
	Pipeline

	computePipeline *wgpu.ComputePipeline
}

// NewComputePipeline returns a new ComputePipeline in the
// given ComputeSystem.
func NewComputePipeline(name string, sy *ComputeSystem) *ComputePipeline {
	pl := &ComputePipeline{}
	pl.Name = name
	pl.System = sy
	return pl
}

// ComputeEntry returns the [ShaderEntry] for the compute stage.
func (pl *ComputePipeline) ComputeEntry() *ShaderEntry {
	return pl.EntryByType(ComputeShader)
}

// Config builds the compute pipeline after the shader is loaded
// and the Vars configured. With rebuild = true any existing
// pipeline object is released and rebuilt.
func (pl *ComputePipeline) Config(rebuild bool) error {
	if pl.computePipeline != nil {
		if !rebuild {
			return nil
		}
		pl.releasePipeline() // note: requires keeping shaders around
	}
	lay, err := pl.bindLayout()
	if err != nil {
		return err
	}
	defer lay.Release()
	ce := pl.ComputeEntry()
	if ce == nil {
		return errors.New("gpu.ComputePipeline.Config: no compute shader entry")
	}
	cp, err := pl.System.Device().Device.CreateComputePipeline(&wgpu.ComputePipelineDescriptor{
		Label:  pl.Name,
		Layout: lay,
		Compute: wgpu.ProgrammableStageDescriptor{
			Module:     ce.Shader.module,
			EntryPoint: ce.Entry,
		},
	})
	if errors.Log(err) != nil {
		return err
	}
	pl.computePipeline = cp
	return nil
}

// BindPipeline binds this pipeline as the one to use for the next
// commands in the given compute pass, and binds the Current Value
// for all variables. Be sure to set the desired Current values
// prior to calling.
func (pl *ComputePipeline) BindPipeline(ce *wgpu.ComputePassEncoder) error {
	if pl.computePipeline == nil {
		if err := pl.Config(false); err != nil {
			return err
		}
	}
	ce.SetPipeline(pl.computePipeline)
	return pl.BindAllGroups(ce)
}

// BindAllGroups binds the Current Value for all variables across
// all groups. Called automatically in BindPipeline.
func (pl *ComputePipeline) BindAllGroups(ce *wgpu.ComputePassEncoder) error {
	vs := pl.Vars()
	for gi := 0; gi < vs.NGroups(); gi++ {
		vg := vs.Groups[gi]
		bg, err := pl.bindGroup(vg)
		if err != nil {
			return err
		}
		ce.SetBindGroup(uint32(vg.Group), bg, nil)
	}
	return nil
}

// Dispatch adds a dispatch command for the given numbers of
// work groups per dimension.
func (pl *ComputePipeline) Dispatch(ce *wgpu.ComputePassEncoder, nx, ny, nz int) {
	ce.DispatchWorkgroups(uint32(nx), uint32(ny), uint32(nz))
}

func (pl *ComputePipeline) Release() {
	pl.releaseShaders()
	pl.releasePipeline()
}

func (pl *ComputePipeline) releasePipeline() {
	if pl.computePipeline != nil {
		pl.computePipeline.Release()
		pl.computePipeline = nil
	}
}
