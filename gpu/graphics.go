// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// GraphicsPipeline is a Pipeline for the graphics stack, pairing a
// vertex and a fragment entry point. Fullscreen passes have no
// vertex buffers: the vertex stage generates positions from the
// vertex index, so the Vertex state never lists buffer layouts.
type GraphicsPipeline struct {
	Pipeline

	// Primitive has the settings for graphics primitives,
	// e.g. TriangleList.
	Primitive wgpu.PrimitiveState

	// AlphaBlend enables 1-source alpha blending; otherwise the
	// new color overwrites the old.
	AlphaBlend bool

	renderPipeline *wgpu.RenderPipeline
}

// NewGraphicsPipeline returns a new GraphicsPipeline in the
// given GraphicsSystem.
func NewGraphicsPipeline(name string, sy *GraphicsSystem) *GraphicsPipeline {
	pl := &GraphicsPipeline{}
	pl.Name = name
	pl.System = sy
	pl.SetGraphicsDefaults()
	return pl
}

// VertexEntry returns the [ShaderEntry] for the vertex stage.
func (pl *GraphicsPipeline) VertexEntry() *ShaderEntry {
	return pl.EntryByType(VertexShader)
}

// FragmentEntry returns the [ShaderEntry] for the fragment stage.
func (pl *GraphicsPipeline) FragmentEntry() *ShaderEntry {
	return pl.EntryByType(FragmentShader)
}

// Config builds the render pipeline after the shaders are loaded
// and the Vars configured. With rebuild = true any existing
// pipeline object is released and rebuilt.
func (pl *GraphicsPipeline) Config(rebuild bool) error {
	if pl.renderPipeline != nil {
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
	pd := &wgpu.RenderPipelineDescriptor{
		Label:     pl.Name,
		Layout:    lay,
		Primitive: pl.Primitive,
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	}
	ve := pl.VertexEntry()
	if ve != nil {
		pd.Vertex = wgpu.VertexState{
			Module:     ve.Shader.module,
			EntryPoint: ve.Entry,
		}
	}
	fe := pl.FragmentEntry()
	if fe != nil {
		blend := &wgpu.BlendStateReplace
		if pl.AlphaBlend {
			blend = &wgpu.BlendState{
				Color: wgpu.BlendComponent{
					SrcFactor: wgpu.BlendFactorSrcAlpha,
					DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
					Operation: wgpu.BlendOperationAdd,
				},
				Alpha: wgpu.BlendComponent{
					SrcFactor: wgpu.BlendFactorOne,
					DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
					Operation: wgpu.BlendOperationAdd,
				},
			}
		}
		pd.Fragment = &wgpu.FragmentState{
			Module:     fe.Shader.module,
			EntryPoint: fe.Entry,
			Targets: []wgpu.ColorTargetState{{
				Format:    pl.System.Render().Format.Format,
				Blend:     blend,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		}
	}
	rp, err := pl.System.Device().Device.CreateRenderPipeline(pd)
	if errors.Log(err) != nil {
		return err
	}
	pl.renderPipeline = rp
	return nil
}

// BindPipeline binds this pipeline as the one to use for the next
// commands in the given render pass, and binds the Current Value
// for all variables. Be sure to set the desired Current values
// prior to calling.
func (pl *GraphicsPipeline) BindPipeline(rp *wgpu.RenderPassEncoder) error {
	if pl.renderPipeline == nil {
		if err := pl.Config(false); err != nil {
			return err
		}
	}
	rp.SetPipeline(pl.renderPipeline)
	return pl.BindAllGroups(rp)
}

// BindAllGroups binds the Current Value for all variables across
// all groups. Called automatically in BindPipeline.
func (pl *GraphicsPipeline) BindAllGroups(rp *wgpu.RenderPassEncoder) error {
	vs := pl.Vars()
	for gi := 0; gi < vs.NGroups(); gi++ {
		vg := vs.Groups[gi]
		bg, err := pl.bindGroup(vg)
		if err != nil {
			return err
		}
		rp.SetBindGroup(uint32(vg.Group), bg, nil)
	}
	return nil
}

func (pl *GraphicsPipeline) Release() {
	pl.releaseShaders()
	pl.releasePipeline()
}

func (pl *GraphicsPipeline) releasePipeline() {
	if pl.renderPipeline != nil {
		pl.renderPipeline.Release()
		pl.renderPipeline = nil
	}
}

////////////////////////////////////////////////////////////////
// Graphics options

// SetGraphicsDefaults configures the default settings:
// TriangleList, CCW front face, no culling, alpha blending.
func (pl *GraphicsPipeline) SetGraphicsDefaults() *GraphicsPipeline {
	pl.SetTopology(TriangleList)
	pl.SetFrontFace(wgpu.FrontFaceCCW)
	pl.SetCullMode(wgpu.CullModeNone)
	pl.SetAlphaBlend(true)
	return pl
}

// SetTopology sets the topology of vertex position data.
// TriangleList is the default.
func (pl *GraphicsPipeline) SetTopology(topo Topologies) *GraphicsPipeline {
	pl.Primitive.Topology = topo.Primitive()
	return pl
}

// SetFrontFace sets the winding order that counts as a front face.
func (pl *GraphicsPipeline) SetFrontFace(face wgpu.FrontFace) *GraphicsPipeline {
	pl.Primitive.FrontFace = face
	return pl
}

// SetCullMode sets the face culling mode.
func (pl *GraphicsPipeline) SetCullMode(mode wgpu.CullMode) *GraphicsPipeline {
	pl.Primitive.CullMode = mode
	return pl
}

// SetAlphaBlend sets whether 1-source alpha blending is used,
// vs. new color replacing old. Default is true.
func (pl *GraphicsPipeline) SetAlphaBlend(alphaBlend bool) *GraphicsPipeline {
	pl.AlphaBlend = alphaBlend
	return pl
}

// Topologies are the different vertex topologies.
type Topologies int32

const (
	PointList Topologies = iota
	LineList
	LineStrip
	TriangleList
	TriangleStrip
)

func (tp Topologies) Primitive() wgpu.PrimitiveTopology {
	return WebGPUTopologies[tp]
}

var WebGPUTopologies = map[Topologies]wgpu.PrimitiveTopology{
	PointList:     wgpu.PrimitiveTopologyPointList,
	LineList:      wgpu.PrimitiveTopologyLineList,
	LineStrip:     wgpu.PrimitiveTopologyLineStrip,
	TriangleList:  wgpu.PrimitiveTopologyTriangleList,
	TriangleStrip: wgpu.PrimitiveTopologyTriangleStrip,
}
