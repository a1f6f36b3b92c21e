// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine drives the per-frame simulate-then-display loop:
// clock advance, simulation step, state upload, uniform update,
// fullscreen draw, present.
package engine

import (
	"fmt"
	"image"
	"log/slog"

	"cogentcore.org/core/base/errors"
	"github.com/crawley-dev/physics-toy/gpu"
	"github.com/crawley-dev/physics-toy/sim"
)

// Phases are the lifecycle phases of an [Engine].
type Phases int32

const (
	// Uninitialized is before New completes. No rendering happens
	// here: construction errors fail fast.
	Uninitialized Phases = iota

	// Running is the steady per-frame state.
	Running

	// ShuttingDown is entered exactly once, on fatal error or
	// shutdown request; resources are released at its end.
	ShuttingDown
)

func (ph Phases) String() string {
	switch ph {
	case Uninitialized:
		return "Uninitialized"
	case Running:
		return "Running"
	case ShuttingDown:
		return "ShuttingDown"
	}
	return "Unknown"
}

// Engine owns the frame loop for one simulation on one render
// target. Per frame, in fixed order: the clock advances, the
// simulation steps (completing its buffer swap), the new state and
// uniforms upload, the fullscreen display pass draws, the frame
// presents. A transient surface error skips the frame's present;
// a fatal error moves the engine to ShuttingDown.
type Engine struct {
	// Sim is the simulation being displayed.
	Sim sim.Simulation

	// Display is the display pass.
	Display *Display

	// Clock provides Time and the per-frame DT.
	Clock Clock

	// Watcher, if set, hot-reloads display shaders at frame
	// boundaries.
	Watcher *ShaderWatcher

	phase Phases
	sys   *gpu.GraphicsSystem
	rd    gpu.Renderer
}

// New returns a new Engine displaying the given simulation on the
// given render target. Any configuration error is returned before
// any rendering begins.
func New(gp *gpu.GPU, rd gpu.Renderer, sm sim.Simulation) (*Engine, error) {
	if sm == nil {
		return nil, fmt.Errorf("engine.New: nil simulation")
	}
	if err := sim.ValidateSize(sm.Size()); err != nil {
		return nil, err
	}
	eg := &Engine{Sim: sm, rd: rd}
	eg.sys = gpu.NewGraphicsSystem(gp, "engine."+sm.Name(), rd)
	dp, err := NewDisplay(eg.sys)
	if err != nil {
		eg.sys.Release()
		return nil, err
	}
	eg.Display = dp
	if err := dp.SetPixels(sm.Pixels(), sm.Size()); err != nil {
		eg.sys.Release()
		return nil, err
	}
	eg.Clock.Start()
	eg.phase = Running
	return eg, nil
}

// Phase returns the current lifecycle phase.
func (eg *Engine) Phase() Phases {
	return eg.phase
}

// SetSize updates the render target for a new window size. The
// simulation grid size is independent: the display pass samples
// the state texture at whatever scale the viewport implies.
func (eg *Engine) SetSize(size image.Point) {
	eg.sys.SetSize(size)
}

// Frame runs one frame. A transient surface error (lost or
// outdated swapchain during a resize) skips the frame and returns
// nil; the next frame reconfigures and retries. Any returned error
// is fatal and the caller must shut down.
func (eg *Engine) Frame() error {
	if eg.phase != Running {
		return fmt.Errorf("engine.Frame: called in phase %s", eg.phase.String())
	}
	if eg.Watcher != nil {
		eg.Watcher.Apply(eg.Display)
	}
	dt := eg.Clock.Tick()
	eg.Sim.Step(dt)
	if err := eg.Display.SetPixels(eg.Sim.Pixels(), eg.Sim.Size()); err != nil {
		return err
	}
	if err := eg.Display.UpdateUniforms(eg.Clock.Time, eg.rd.Size()); err != nil {
		return err
	}
	rp, err := eg.sys.BeginRenderPass()
	if err != nil {
		if transientFrameError(err) {
			slog.Debug("engine.Frame: skipping frame", "err", err)
			return nil
		}
		return err
	}
	if err := eg.Display.Draw(rp); err != nil {
		rp.End()
		eg.sys.SubmitRender(rp)
		return err
	}
	rp.End()
	if err := eg.sys.SubmitRender(rp); err != nil {
		return err
	}
	eg.rd.Present()
	return nil
}

// transientFrameError reports whether a render pass error means
// only that the current frame's texture could not be acquired
// (e.g. mid-resize): the frame is skipped and the next tick
// retries. Every other error from a frame is fatal: command
// encoder or device failures must propagate so Run shuts down.
func transientFrameError(err error) bool {
	return errors.Is(err, gpu.ErrTextureNotAvailable)
}

// Run loops Frame until pollEvents reports shutdown or a frame
// fails fatally, then releases all engine resources exactly once.
// In-flight device work drains before release.
func (eg *Engine) Run(pollEvents func() bool) error {
	var ferr error
	for eg.phase == Running && pollEvents() {
		if err := eg.Frame(); err != nil {
			ferr = errors.Log(err)
			break
		}
	}
	eg.Shutdown()
	return ferr
}

// Shutdown moves the engine to ShuttingDown and releases its
// resources. Safe to call more than once.
func (eg *Engine) Shutdown() {
	if eg.phase == ShuttingDown {
		return
	}
	eg.phase = ShuttingDown
	if eg.Watcher != nil {
		eg.Watcher.Close()
		eg.Watcher = nil
	}
	if eg.sys != nil {
		eg.sys.Release()
		eg.sys = nil
	}
}
