// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Device is the logical GPU device and its command queue.
// Each Surface and ComputeSystem has its own Device.
type Device struct {
	// Device is the logical device.
	Device *wgpu.Device

	// Queue is the command queue for the device.
	Queue *wgpu.Queue
}

// NewDevice returns a new logical device on the given GPU,
// using the default limits. An error here is fatal: it means
// the adapter cannot provide a working device.
func NewDevice(gp *GPU) (*Device, error) {
	wdev, err := gp.Adapter.RequestDevice(&wgpu.DeviceDescriptor{
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		return nil, errors.Log(fmt.Errorf("gpu.NewDevice: %w", err))
	}
	dev := &Device{Device: wdev, Queue: wdev.GetQueue()}
	return dev, nil
}

// WaitDone blocks until the device is done with all
// currently submitted work.
func (dv *Device) WaitDone() {
	if dv.Device == nil {
		return
	}
	dv.Device.Poll(true, nil)
}

func (dv *Device) Release() {
	if dv.Device == nil {
		return
	}
	dv.WaitDone()
	if dv.Queue != nil {
		dv.Queue.Release()
		dv.Queue = nil
	}
	dv.Device.Release()
	dv.Device = nil
}
