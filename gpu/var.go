// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Var specifies a resource variable accessed by shader programs:
// a Uniform block, a Storage buffer, or a SampledTexture.
// A Var only holds the type-level information; each Var has one or
// more [Value] items holding the actual buffer or texture, with the
// Current one used for binding. Ping-pong double buffering is two
// Values on one Var with the Current index swapped after each step.
// Each Var belongs to a [VarGroup] (@group in WGSL) and is assigned
// a sequential Binding within it (@binding in WGSL).
type Var struct {
	// Name of the variable, as used in lookup.
	Name string

	// Type of data in the variable. Note the strict 16 byte
	// alignment constraints on Uniform contents; use Struct with
	// an explicit SizeOf for struct data.
	Type Types

	// ArrayN is the number of elements if this is a fixed array,
	// 1 for a single element.
	ArrayN int

	// Role of the variable, which is the Role of its VarGroup.
	Role VarRoles

	// ReadOnly marks a Storage variable as read-only in the shader
	// (var<storage, read> rather than read_write).
	ReadOnly bool

	// shaders is the set of stages this variable is visible to.
	shaders wgpu.ShaderStage

	// Group index for this variable: @group in the shader.
	Group int

	// Binding number, assigned sequentially within the Group:
	// @binding in the shader. A SampledTexture uses two numbers:
	// Binding for the texture and Binding+1 for its sampler.
	Binding int

	// SizeOf is the size in bytes of one element, set directly
	// for Struct types and from Type otherwise.
	SizeOf int

	// Values hold the actual buffers or textures, with one
	// Current value used at binding time.
	Values Values

	group *VarGroup
}

func (vr *Var) init(name string, typ Types, arrayN int, vg *VarGroup, shaders ...ShaderTypes) {
	vr.Name = name
	vr.Type = typ
	vr.ArrayN = max(1, arrayN)
	vr.Role = vg.Role
	vr.Group = vg.Group
	vr.group = vg
	vr.SizeOf = typ.Bytes()
	for _, sh := range shaders {
		vr.shaders |= sh.StageFlag()
	}
}

func (vr *Var) String() string {
	return fmt.Sprintf("%d:\t%s\t%s\t(size: %d)\tValues: %d", vr.Binding, vr.Name, vr.Type.String(), vr.SizeOf, len(vr.Values.Values))
}

// MemSize returns the memory allocation size for this variable,
// in bytes, for one Value.
func (vr *Var) MemSize() int {
	return vr.SizeOf * vr.ArrayN
}

// SetNValues sets the number of Values for this variable.
// Use 2 for ping-pong double buffering.
func (vr *Var) SetNValues(nvals int) {
	vr.Values.SetN(vr, &vr.group.device, nvals)
}

// SetCurrentValue sets the index of the Value to use at the next
// bind: the role swap in double buffering.
func (vr *Var) SetCurrentValue(idx int) {
	if vr.Values.Current == idx {
		return
	}
	vr.Values.SetCurrentValue(idx)
	vr.group.valuesUpdated()
}

// bindGroupLayoutEntries returns the layout entries for this variable:
// one for a buffer, two (texture, sampler) for a SampledTexture.
func (vr *Var) bindGroupLayoutEntries() []wgpu.BindGroupLayoutEntry {
	if vr.Role == SampledTexture {
		return []wgpu.BindGroupLayoutEntry{
			{
				Binding:    uint32(vr.Binding),
				Visibility: vr.shaders,
				Texture: wgpu.TextureBindingLayout{
					Multisampled:  false,
					ViewDimension: wgpu.TextureViewDimension2D,
					SampleType:    wgpu.TextureSampleTypeFloat,
				},
			},
			{
				Binding:    uint32(vr.Binding + 1),
				Visibility: vr.shaders,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		}
	}
	bt := wgpu.BufferBindingTypeUniform
	if vr.Role == Storage {
		bt = wgpu.BufferBindingTypeStorage
		if vr.ReadOnly {
			bt = wgpu.BufferBindingTypeReadOnlyStorage
		}
	}
	return []wgpu.BindGroupLayoutEntry{{
		Binding:    uint32(vr.Binding),
		Visibility: vr.shaders,
		Buffer: wgpu.BufferBindingLayout{
			Type:             bt,
			HasDynamicOffset: false,
			MinBindingSize:   0,
		},
	}}
}

// Release releases the memory for all values of this variable.
func (vr *Var) Release() {
	vr.Values.Release()
}

////////////////////////////////////////////////////////////////

// VarRoles are the functional roles of variables.
type VarRoles int32

const (
	UndefinedRole VarRoles = iota

	// Uniform is a read-only small amount of data (e.g. frame
	// uniforms with time and viewport), with strict 16 byte
	// element alignment.
	Uniform

	// Storage is a larger read-write buffer (e.g. simulation
	// cell state), with 4 byte alignment.
	Storage

	// SampledTexture is a texture sampled in the fragment shader,
	// together with its sampler.
	SampledTexture
)

func (vr VarRoles) String() string {
	switch vr {
	case Uniform:
		return "Uniform"
	case Storage:
		return "Storage"
	case SampledTexture:
		return "SampledTexture"
	}
	return "UndefinedRole"
}

// BufferUsages returns the BufferUsage for buffers of this role.
func (vr VarRoles) BufferUsages() wgpu.BufferUsage {
	switch vr {
	case Uniform:
		return wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst
	case Storage:
		return wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst | wgpu.BufferUsageCopySrc
	}
	return wgpu.BufferUsageNone
}
