// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !offscreen && ((darwin && !ios) || windows || (linux && !android) || dragonfly || openbsd)

package gpu

import (
	"image"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// note: this file contains the glfw dependencies, for desktop platform builds.
// other platforms (mobile, web) need to provide their own Init() and
// Terminate() methods.

// Init initializes the WebGPU system for display-enabled use, using glfw.
// Must be called before creating any windows or surfaces.
// IMPORTANT: must be called on the main initial thread!
func Init() error {
	err := glfw.Init()
	if err != nil {
		return errors.Log(err)
	}
	return nil
}

// Terminate shuts down the WebGPU system. Call as the last thing
// before quitting.
// IMPORTANT: must be called on the main initial thread!
func Terminate() {
	glfw.Terminate()
}

// GLFWCreateWindow makes a new window with glfw on platforms that
// support it, returning the WebGPU surface for it, the window itself
// for registering input callbacks, a terminate function to call at
// exit, and a pollEvents function that processes events and reports
// whether the window is still open.
func GLFWCreateWindow(size image.Point, title string, resize *func(size image.Point)) (surface *wgpu.Surface, window *glfw.Window, terminate func(), pollEvents func() bool, err error) {
	if err = Init(); err != nil {
		return
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	window, err = glfw.CreateWindow(size.X, size.Y, title, nil, nil)
	if err != nil {
		return
	}
	inst := Instance()
	surface = inst.CreateSurface(wgpuglfw.GetSurfaceDescriptor(window))
	terminate = func() {
		window.Destroy()
		Terminate()
	}
	pollEvents = func() bool {
		if window.ShouldClose() {
			return false
		}
		glfw.PollEvents()
		return true
	}
	window.SetSizeCallback(func(w *glfw.Window, width, height int) {
		callResize(resize, image.Point{width, height})
	})
	return
}

// callResize invokes the resize hook if it has been assigned.
// The hook pointer is handed to [GLFWCreateWindow] before the
// engine exists, so a resize delivered in that window must be a
// no-op rather than a nil call.
func callResize(resize *func(size image.Point), size image.Point) {
	if resize != nil && *resize != nil {
		(*resize)(size)
	}
}
