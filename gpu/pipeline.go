// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"log/slog"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Pipeline is the shared base for [GraphicsPipeline] and
// [ComputePipeline]. It manages the Shader program(s) for one
// rendering or compute function, using the Vars / Values defined
// by the overall System.
type Pipeline struct {
	// Name is the unique name of this pipeline.
	Name string

	// System that we belong to, managing the shared resources.
	System System

	// Shaders contains the shader code modules for this pipeline.
	// A single shader can have multiple entry points: see Entries.
	Shaders map[string]*Shader

	// Entries are the entry points into the shader code,
	// which are what is actually called.
	Entries map[string]*ShaderEntry

	// current bind groups for each var group used.
	currentBindGroups map[int]*wgpu.BindGroup

	// update counters at the time current bind groups were made,
	// to detect when they are stale.
	currentBindGroupsCount map[int]int

	// oldBindGroups are stale bind groups to be released
	// after the current pass is submitted.
	oldBindGroups []*wgpu.BindGroup
}

// Vars returns the Vars for this pipeline, from the System.
func (pl *Pipeline) Vars() *Vars {
	return pl.System.Vars()
}

// AddShader adds a Shader with the given name to the pipeline.
func (pl *Pipeline) AddShader(name string) *Shader {
	if pl.Shaders == nil {
		pl.Shaders = make(map[string]*Shader)
	}
	if sh, has := pl.Shaders[name]; has {
		slog.Error("gpu.Pipeline.AddShader", "Shader", name, "already exists in pipeline", pl.Name)
		return sh
	}
	sh := NewShader(name, pl.System.Device())
	pl.Shaders[name] = sh
	return sh
}

// EntryByType returns the ShaderEntry for the given stage.
// Returns nil if not found.
func (pl *Pipeline) EntryByType(typ ShaderTypes) *ShaderEntry {
	for _, se := range pl.Entries {
		if se.Type == typ {
			return se
		}
	}
	return nil
}

// AddEntry adds a ShaderEntry for the given shader, stage,
// and entry function name.
func (pl *Pipeline) AddEntry(sh *Shader, typ ShaderTypes, entry string) *ShaderEntry {
	if pl.Entries == nil {
		pl.Entries = make(map[string]*ShaderEntry)
	}
	name := sh.Name + ":" + entry
	if se, has := pl.Entries[name]; has {
		slog.Error("gpu.Pipeline.AddEntry", "ShaderEntry", name, "already exists in pipeline", pl.Name)
		return se
	}
	se := NewShaderEntry(sh, typ, entry)
	pl.Entries[name] = se
	return se
}

func (pl *Pipeline) releaseShaders() {
	pl.releaseOldBindGroups()
	pl.releaseCurrentBindGroups()
	for _, sh := range pl.Shaders {
		sh.Release()
	}
	pl.Shaders = nil
	pl.Entries = nil
}

// bindLayout returns a PipelineLayout based on the Vars.
func (pl *Pipeline) bindLayout() (*wgpu.PipelineLayout, error) {
	lays := pl.Vars().bindLayout()
	if lays != nil {
		defer func() {
			for _, bgl := range lays {
				bgl.Release()
			}
		}()
	}
	rpl, err := pl.System.Device().Device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            pl.Name,
		BindGroupLayouts: lays,
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	return rpl, nil
}

// bindGroup returns a BindGroup for the given var group,
// re-using the existing one when the group's values are unchanged.
func (pl *Pipeline) bindGroup(vg *VarGroup) (*wgpu.BindGroup, error) {
	if pl.currentBindGroups == nil {
		pl.currentBindGroups = make(map[int]*wgpu.BindGroup)
		pl.currentBindGroupsCount = make(map[int]int)
	}
	cbg, ok := pl.currentBindGroups[vg.Group]
	ccount := pl.currentBindGroupsCount[vg.Group]
	vgcount := vg.updateCount()
	if ok && ccount == vgcount {
		return cbg, nil
	}
	if cbg != nil {
		pl.oldBindGroups = append(pl.oldBindGroups, cbg) // release after pass
	}
	bg, err := vg.bindGroup()
	if err == nil {
		pl.currentBindGroups[vg.Group] = bg
		pl.currentBindGroupsCount[vg.Group] = vgcount
	}
	return bg, err
}

func (pl *Pipeline) releaseCurrentBindGroups() {
	og := pl.currentBindGroups
	pl.currentBindGroups = nil
	for _, bg := range og {
		bg.Release()
	}
}

func (pl *Pipeline) releaseOldBindGroups() {
	og := pl.oldBindGroups
	pl.oldBindGroups = nil
	for _, bg := range og {
		bg.Release()
	}
}
