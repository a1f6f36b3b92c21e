// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"
	"image/color"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

const testFillShader = `
@vertex
fn vs_main(@builtin(vertex_index) ix: u32) -> @builtin(position) vec4<f32> {
	var pos = array<vec2<f32>, 6>(
		vec2<f32>(-1.0, -1.0), vec2<f32>(1.0, -1.0), vec2<f32>(-1.0, 1.0),
		vec2<f32>(-1.0, 1.0), vec2<f32>(1.0, -1.0), vec2<f32>(1.0, 1.0),
	);
	return vec4<f32>(pos[ix], 0.0, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
	return vec4<f32>(1.0, 0.0, 0.0, 1.0);
}
`

func TestMemSizeAlign(t *testing.T) {
	assert.Equal(t, 16, MemSizeAlign(1, 16))
	assert.Equal(t, 16, MemSizeAlign(16, 16))
	assert.Equal(t, 32, MemSizeAlign(17, 16))
	assert.Equal(t, 256, MemSizeAlign(200, 256))
}

func TestTextureBufferDims(t *testing.T) {
	td := NewTextureBufferDims(image.Point{480, 320})
	assert.Equal(t, uint64(480*4), td.UnpaddedRowSize)
	assert.Equal(t, uint64(0), td.PaddedRowSize%wgpu.CopyBytesPerRowAlignment)
	assert.True(t, td.PaddedRowSize >= td.UnpaddedRowSize)
	assert.Equal(t, td.PaddedRowSize*320, td.PaddedSize())
	assert.Equal(t, uint64(480*320*4), td.UnpaddedSize())

	// 64 * 4 = 256: exactly one aligned row
	td.Set(image.Point{64, 64})
	assert.True(t, td.HasNoPadding())
}

func TestVarRoleUsages(t *testing.T) {
	assert.Equal(t, wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst, Uniform.BufferUsages())
	assert.Equal(t, wgpu.BufferUsageStorage|wgpu.BufferUsageCopyDst|wgpu.BufferUsageCopySrc, Storage.BufferUsages())
}

func TestBindingAssign(t *testing.T) {
	var vs Vars
	ugp := vs.AddGroup(Uniform, "uniforms")
	ugp.Add("Uniforms", Float32Vector4, 1, VertexShader, FragmentShader)
	tgp := vs.AddGroup(SampledTexture, "display")
	tgp.Add("Grid", UndefinedType, 1, FragmentShader)
	tgp.Add("Palette", UndefinedType, 1, FragmentShader)

	ugp.assignBindings()
	tgp.assignBindings()

	assert.Equal(t, 0, vs.VarByName(0, "Uniforms").Binding)
	// a sampled texture consumes the next binding for its sampler
	assert.Equal(t, 0, vs.VarByName(1, "Grid").Binding)
	assert.Equal(t, 2, vs.VarByName(1, "Palette").Binding)
}

func TestWarps(t *testing.T) {
	assert.Equal(t, 1, Warps(8, 8))
	assert.Equal(t, 2, Warps(9, 8))
	assert.Equal(t, 32, Warps(256, 8))
}

func TestGPUFill(t *testing.T) {
	t.Skip("Need software GPU on CI")
	gp, dev, err := NoDisplayGPU()
	assert.NoError(t, err)
	sz := image.Point{480, 320}
	rt := NewRenderTexture(gp, dev, sz)
	sy := NewGraphicsSystem(gp, "test", rt)
	sy.SetClearColor(color.RGBA{50, 50, 50, 255})

	pl := sy.AddGraphicsPipeline("fill")
	sh := pl.AddShader("fill")
	err = sh.OpenCode(testFillShader)
	assert.NoError(t, err)
	pl.AddEntry(sh, VertexShader, "vs_main")
	pl.AddEntry(sh, FragmentShader, "fs_main")

	sy.Config()

	frame := rt.CurrentFrame()
	assert.NoError(t, frame.ConfigReadBuffer())

	rp, err := sy.BeginRenderPass()
	assert.NoError(t, err)
	assert.NoError(t, pl.BindPipeline(rp))
	rp.Draw(6, 1, 0, 0)
	rp.End()
	assert.NoError(t, frame.GrabTexture(sy.CommandEncoder))
	assert.NoError(t, sy.SubmitRender(rp))
	sy.WaitDone()

	pix, err := frame.ReadData()
	assert.NoError(t, err)
	assert.Equal(t, sz.X*sz.Y*4, len(pix))
	assert.Equal(t, byte(255), pix[0])
	assert.Equal(t, byte(0), pix[1])

	sy.Release()
	rt.Release()
	gp.Release()
}
