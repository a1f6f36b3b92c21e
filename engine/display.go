// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	_ "embed"
	"fmt"
	"image"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/crawley-dev/physics-toy/gpu"
)

//go:embed shaders/display.wgsl
var displayShader string

// Display is the display pass: a bufferless fullscreen draw mapping
// the simulation state texture to the render target. It owns the
// uniform and texture resources and one pipeline per [DisplayModes].
type Display struct {
	// Mode selects the active colorization. DisplayDirect is the
	// default; DisplayProcedural is a plumbing smoke test.
	Mode DisplayModes

	// Uniforms is the current uniform block state, uploaded by
	// [Display.UpdateUniforms].
	Uniforms Uniforms

	sys       *gpu.GraphicsSystem
	pipelines map[DisplayModes]*gpu.GraphicsPipeline
	uniform   *gpu.Var
	grid      *gpu.Var
}

// NewDisplay configures the display pass on the given system:
// the uniform block at group 0, the state texture and sampler at
// group 1, and the direct and procedural pipelines.
func NewDisplay(sy *gpu.GraphicsSystem) (*Display, error) {
	dp := &Display{sys: sy, Mode: DisplayDirect}

	ugp := sy.Vars().AddGroup(gpu.Uniform, "uniforms")
	dp.uniform = ugp.AddStruct("Uniforms", UniformSize, 1, gpu.VertexShader, gpu.FragmentShader)
	tgp := sy.Vars().AddGroup(gpu.SampledTexture, "display")
	dp.grid = tgp.Add("Grid", gpu.UndefinedType, 1, gpu.FragmentShader)

	if err := dp.configPipelines(displayShader); err != nil {
		return nil, err
	}
	sy.Config()
	return dp, nil
}

// configPipelines (re)creates the direct and procedural pipelines
// from the given shader code, releasing any prior ones.
func (dp *Display) configPipelines(code string) error {
	for _, pl := range dp.pipelines {
		pl.Release()
		delete(dp.sys.GraphicsPipelines, pl.Name)
	}
	dp.pipelines = make(map[DisplayModes]*gpu.GraphicsPipeline)
	entries := map[DisplayModes]string{
		DisplayDirect:     "fs_main",
		DisplayProcedural: "fs_procedural",
	}
	for mode, fs := range entries {
		pl := dp.sys.AddGraphicsPipeline("display-" + mode.String())
		sh := pl.AddShader("display")
		if err := sh.OpenCode(code); err != nil {
			return err
		}
		pl.AddEntry(sh, gpu.VertexShader, "vs_main")
		pl.AddEntry(sh, gpu.FragmentShader, fs)
		dp.pipelines[mode] = pl
	}
	return nil
}

// SetShaderCode replaces the display shader source and rebuilds
// both pipelines, for live shader editing.
func (dp *Display) SetShaderCode(code string) error {
	if err := dp.configPipelines(code); err != nil {
		return err
	}
	for _, pl := range dp.pipelines {
		if err := pl.Config(true); err != nil {
			return err
		}
	}
	return nil
}

// Pipeline returns the pipeline for the current Mode.
func (dp *Display) Pipeline() *gpu.GraphicsPipeline {
	return dp.pipelines[dp.Mode]
}

// SetPixels uploads the current simulation state as RGBA pixels of
// the given grid size to the state texture.
func (dp *Display) SetPixels(pix []byte, size image.Point) error {
	vl := dp.grid.Values.CurrentValue()
	return vl.SetFromPixels(pix, size)
}

// UpdateUniforms sets the uniform block from the current time and
// viewport and uploads its encoded payload.
func (dp *Display) UpdateUniforms(time float32, viewport image.Point) error {
	dp.Uniforms.Update(time, viewport)
	vl := dp.uniform.Values.CurrentValue()
	return vl.SetFromBytes(dp.Uniforms.Encode())
}

// Draw binds the pipeline for the current Mode and records the
// six-vertex fullscreen draw into the given render pass.
func (dp *Display) Draw(rp *wgpu.RenderPassEncoder) error {
	pl := dp.Pipeline()
	if pl == nil {
		return fmt.Errorf("engine.Display: no pipeline for mode %s", dp.Mode.String())
	}
	if err := pl.BindPipeline(rp); err != nil {
		return err
	}
	rp.Draw(FullscreenN, 1, 0, 0)
	return nil
}
