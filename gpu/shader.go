// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"os"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Shader manages a WGSL shader module. One module can contain
// multiple entry points: see [ShaderEntry].
type Shader struct {
	// Name is the unique name of the shader.
	Name string

	module *wgpu.ShaderModule
	device Device
}

// NewShader returns a new Shader with the given name, which should
// have no spaces.
func NewShader(name string, dev *Device) *Shader {
	return &Shader{Name: name, device: *dev}
}

// OpenFile loads WGSL shader code from the given file.
func (sh *Shader) OpenFile(fname string) error {
	b, err := os.ReadFile(fname)
	if errors.Log(err) != nil {
		return err
	}
	return sh.OpenCode(string(b))
}

// OpenCode compiles the given WGSL shader code.
// Compilation errors are configuration errors: fail fast.
func (sh *Shader) OpenCode(code string) error {
	module, err := sh.device.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          sh.Name,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: code},
	})
	if err != nil {
		return errors.Log(fmt.Errorf("gpu.Shader.OpenCode %s: %w", sh.Name, err))
	}
	sh.module = module
	return nil
}

func (sh *Shader) Release() {
	if sh.module == nil {
		return
	}
	sh.module.Release()
	sh.module = nil
}

// ShaderEntry is an entry point into a [Shader]: the function
// that is actually called for a given pipeline stage.
type ShaderEntry struct {
	// Shader has the code.
	Shader *Shader

	// Type is the stage: Vertex, Fragment or Compute.
	Type ShaderTypes

	// Entry is the name of the function to call, e.g. vs_main.
	Entry string
}

// NewShaderEntry returns a new ShaderEntry.
func NewShaderEntry(sh *Shader, typ ShaderTypes, entry string) *ShaderEntry {
	return &ShaderEntry{Shader: sh, Type: typ, Entry: entry}
}

// ShaderTypes is the type of shader stage.
type ShaderTypes int32

const (
	UnknownShader ShaderTypes = iota
	VertexShader
	FragmentShader
	ComputeShader
)

// StageFlag returns the WebGPU visibility flag for this stage.
func (st ShaderTypes) StageFlag() wgpu.ShaderStage {
	switch st {
	case VertexShader:
		return wgpu.ShaderStageVertex
	case FragmentShader:
		return wgpu.ShaderStageFragment
	case ComputeShader:
		return wgpu.ShaderStageCompute
	}
	return wgpu.ShaderStageNone
}
