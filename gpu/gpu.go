// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu provides a thin capability-based abstraction over WebGPU,
// used for real-time simulation rendering and compute. Every shader
// resource is an explicit [Var] with an allocated @group / @binding,
// holding one or more [Value] buffers or textures.
package gpu

import (
	"fmt"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Debug enables verbose logging of GPU configuration, including
// the full variable binding layout of each system.
var Debug = false

var theInstance *wgpu.Instance

// Instance returns the global wgpu instance, creating it on first use.
func Instance() *wgpu.Instance {
	if theInstance == nil {
		theInstance = wgpu.CreateInstance(nil)
	}
	return theInstance
}

// GPU represents the physical GPU hardware: the adapter obtained
// from the instance, with its properties and limits.
// There is one GPU per application, shared across all Surfaces
// and Systems.
type GPU struct {
	// Instance represents the WebGPU system overall.
	Instance *wgpu.Instance

	// Adapter represents the physical GPU hardware.
	Adapter *wgpu.Adapter

	// Properties of the adapter: name, backend, device type.
	Properties wgpu.AdapterInfo

	// Limits of the adapter, used for alignment factors.
	Limits wgpu.SupportedLimits
}

// NewGPU returns a new GPU for the given surface, which can be nil
// for headless (no display) use. Returns an error if no suitable
// adapter can be found, which is fatal: there is no rendering without
// an adapter.
func NewGPU(sf *wgpu.Surface) (*GPU, error) {
	gp := &GPU{}
	gp.Instance = Instance()
	ad, err := gp.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: sf,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, errors.Log(fmt.Errorf("gpu.NewGPU: no WebGPU adapter available: %w", err))
	}
	gp.Adapter = ad
	gp.Properties = ad.GetInfo()
	gp.Limits = ad.GetLimits()
	if Debug {
		fmt.Println("gpu: using adapter:", gp.DeviceName())
	}
	return gp, nil
}

// NoDisplayGPU returns a GPU and Device suitable for compute or
// offscreen rendering, without any surface.
func NoDisplayGPU() (*GPU, *Device, error) {
	gp, err := NewGPU(nil)
	if err != nil {
		return nil, nil, err
	}
	dev, err := NewDevice(gp)
	if err != nil {
		return nil, nil, err
	}
	return gp, dev, nil
}

// DeviceName returns the name of the adapter hardware.
func (gp *GPU) DeviceName() string {
	return gp.Properties.Name
}

func (gp *GPU) Release() {
	if gp.Adapter != nil {
		gp.Adapter.Release()
		gp.Adapter = nil
	}
	gp.Instance = nil
}
