// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// VarGroup is one bind group (@group in WGSL) of variables,
// all with the same Role and updated at the same time scale.
// Binding numbers are assigned sequentially in the order added,
// with SampledTextures consuming two (texture, sampler).
type VarGroup struct {
	// Name is optional documentation of what the group holds.
	Name string

	// Group is the @group index.
	Group int

	// Role of all variables in this group.
	Role VarRoles

	// Vars in order added, which is binding order.
	Vars []*Var

	device Device

	// updated counts value-changing events (current-value swaps,
	// buffer recreation), so pipelines know to rebuild bind groups.
	updated int
}

// Add adds a new variable of the given type to this group,
// visible to the given shader stages.
// ArrayN is the fixed array size, 1 for a single element.
func (vg *VarGroup) Add(name string, typ Types, arrayN int, shaders ...ShaderTypes) *Var {
	vr := &Var{}
	vr.init(name, typ, arrayN, vg, shaders...)
	vg.Vars = append(vg.Vars, vr)
	return vr
}

// AddStruct adds a new struct variable with the given explicit
// size, which must obey WGSL 16 byte alignment rules.
func (vg *VarGroup) AddStruct(name string, size int, arrayN int, shaders ...ShaderTypes) *Var {
	vr := vg.Add(name, Struct, arrayN, shaders...)
	vr.SizeOf = size
	return vr
}

// SetNValues sets the number of Values for all vars in this group.
func (vg *VarGroup) SetNValues(nvals int) {
	for _, vr := range vg.Vars {
		vr.SetNValues(nvals)
	}
}

// VarByName returns the Var with the given name, logging an error
// if not found.
func (vg *VarGroup) VarByName(name string) *Var {
	return errors.Log1(vg.VarByNameTry(name))
}

// VarByNameTry returns the Var with the given name,
// returning an error if not found.
func (vg *VarGroup) VarByNameTry(name string) (*Var, error) {
	for _, vr := range vg.Vars {
		if vr.Name == name {
			return vr, nil
		}
	}
	return nil, fmt.Errorf("gpu.VarGroup %d: variable %q not found", vg.Group, name)
}

// ValueByIndex returns the Value at the given index for the named
// variable.
func (vg *VarGroup) ValueByIndex(varName string, valIndex int) *Value {
	vr := vg.VarByName(varName)
	if vr == nil {
		return nil
	}
	return errors.Log1(vr.Values.ValueByIndexTry(valIndex))
}

// valuesUpdated records that bind-group-visible state changed.
func (vg *VarGroup) valuesUpdated() {
	vg.updated++
}

// updateCount returns the current update counter, used by
// pipelines to detect stale bind groups.
func (vg *VarGroup) updateCount() int {
	return vg.updated
}

// assignBindings assigns sequential binding numbers to all vars.
// Called in Config; separated out so it is independently testable.
func (vg *VarGroup) assignBindings() {
	b := 0
	for _, vr := range vg.Vars {
		vr.Binding = b
		if vr.Role == SampledTexture {
			b += 2
		} else {
			b++
		}
	}
}

// Config assigns bindings and validates the group.
// Must be called (via Vars.Config) after all vars are added.
func (vg *VarGroup) Config(dev *Device) error {
	vg.device = *dev
	vg.assignBindings()
	var cerr error
	for _, vr := range vg.Vars {
		if vr.Role != vg.Role {
			cerr = fmt.Errorf("gpu.VarGroup %d: variable %q role %s does not match group role %s", vg.Group, vr.Name, vr.Role.String(), vg.Role.String())
			errors.Log(cerr)
		}
		if len(vr.Values.Values) == 0 {
			vr.SetNValues(1)
		}
	}
	return cerr
}

// bindLayout returns the BindGroupLayout for this group.
func (vg *VarGroup) bindLayout() (*wgpu.BindGroupLayout, error) {
	var entries []wgpu.BindGroupLayoutEntry
	for _, vr := range vg.Vars {
		entries = append(entries, vr.bindGroupLayoutEntries()...)
	}
	bgl, err := vg.device.Device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   vg.Name,
		Entries: entries,
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	return bgl, nil
}

// bindGroup returns a new BindGroup for the Current values of all
// vars in this group.
func (vg *VarGroup) bindGroup() (*wgpu.BindGroup, error) {
	bgl, err := vg.bindLayout()
	if err != nil {
		return nil, err
	}
	defer bgl.Release()
	var entries []wgpu.BindGroupEntry
	for _, vr := range vg.Vars {
		entries = append(entries, vr.Values.bindGroupEntry(vr)...)
	}
	bg, err := vg.device.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   vg.Name,
		Layout:  bgl,
		Entries: entries,
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	return bg, nil
}

func (vg *VarGroup) Release() {
	for _, vr := range vg.Vars {
		vr.Release()
	}
	vg.Vars = nil
}
