// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"strings"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Vars are all the variables used by a System's pipelines,
// organized into [VarGroup]s (@group in WGSL).
// Groups are numbered sequentially in the order added.
type Vars struct {
	// Groups by group number.
	Groups map[int]*VarGroup

	sys    System
	device Device
}

// AddGroup adds a new VarGroup for variables of the given Role.
// The name is optional documentation.
// There is a WebGPU hard limit of 4 groups.
func (vs *Vars) AddGroup(role VarRoles, name ...string) *VarGroup {
	if vs.Groups == nil {
		vs.Groups = make(map[int]*VarGroup)
	}
	idx := len(vs.Groups)
	if idx >= 4 {
		panic("gpu.Vars.AddGroup: WebGPU allows a maximum of 4 bind groups")
	}
	vg := &VarGroup{Group: idx, Role: role, device: vs.device}
	if len(name) == 1 {
		vg.Name = name[0]
	}
	vs.Groups[idx] = vg
	return vg
}

// NGroups returns the number of groups.
func (vs *Vars) NGroups() int {
	return len(vs.Groups)
}

// GroupTry returns the group by index, with an error if not found.
func (vs *Vars) GroupTry(group int) (*VarGroup, error) {
	vg, has := vs.Groups[group]
	if !has {
		return nil, errors.Log(fmt.Errorf("gpu.Vars.GroupTry: group number %d not found", group))
	}
	return vg, nil
}

// VarByName returns the Var with the given name in the given
// group number, logging an error if not found.
func (vs *Vars) VarByName(group int, name string) *Var {
	return errors.Log1(vs.VarByNameTry(group, name))
}

// VarByNameTry returns the Var with the given name in the given
// group number, returning an error if not found.
func (vs *Vars) VarByNameTry(group int, name string) (*Var, error) {
	vg, err := vs.GroupTry(group)
	if err != nil {
		return nil, err
	}
	return vg.VarByNameTry(name)
}

// ValueByIndex returns the Value by variable name and value index,
// within the given group number.
func (vs *Vars) ValueByIndex(group int, varName string, valIndex int) *Value {
	vg, err := vs.GroupTry(group)
	if err != nil {
		return nil
	}
	return vg.ValueByIndex(varName, valIndex)
}

// SetCurrentValue sets the index of the current Value to use
// for the given variable name, in the given group number.
func (vs *Vars) SetCurrentValue(group int, name string, valueIndex int) (*Var, error) {
	vr, err := vs.VarByNameTry(group, name)
	if err != nil {
		return nil, err
	}
	vr.SetCurrentValue(valueIndex)
	return vr, nil
}

// Config must be called after all variables have been added:
// it configures all groups, assigning bindings, and validates.
func (vs *Vars) Config(dev *Device) error {
	vs.device = *dev
	var cerr error
	for gi := 0; gi < vs.NGroups(); gi++ {
		vg := vs.Groups[gi]
		if vg == nil {
			continue
		}
		if err := vg.Config(dev); err != nil {
			cerr = err
		}
	}
	return cerr
}

// StringDoc returns the full binding layout documentation.
func (vs *Vars) StringDoc() string {
	var sb strings.Builder
	for gi := 0; gi < vs.NGroups(); gi++ {
		vg := vs.Groups[gi]
		if vg == nil {
			continue
		}
		fmt.Fprintf(&sb, "Group: %d %s  Role: %s\n", vg.Group, vg.Name, vg.Role.String())
		for _, vr := range vg.Vars {
			fmt.Fprintf(&sb, "    Var: %s\n", vr.String())
		}
	}
	return sb.String()
}

// bindLayout returns the BindGroupLayouts for all groups,
// in group order. Caller is responsible for releasing them.
func (vs *Vars) bindLayout() []*wgpu.BindGroupLayout {
	ngp := vs.NGroups()
	if ngp == 0 {
		return nil
	}
	var lays []*wgpu.BindGroupLayout
	for gi := 0; gi < ngp; gi++ {
		vg := vs.Groups[gi]
		if vg == nil {
			continue
		}
		vgl, err := vg.bindLayout()
		if err != nil {
			continue
		}
		lays = append(lays, vgl)
	}
	return lays
}

func (vs *Vars) Release() {
	for _, vg := range vs.Groups {
		vg.Release()
	}
	vs.Groups = nil
}
