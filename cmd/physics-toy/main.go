// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command physics-toy opens a window running one of the GPU-displayed
// simulations interactively.
package main

import (
	"fmt"
	"image"
	"runtime"

	"cogentcore.org/core/cli"
	"cogentcore.org/core/math32"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/crawley-dev/physics-toy/engine"
	"github.com/crawley-dev/physics-toy/gpu"
	"github.com/crawley-dev/physics-toy/sim"
	"github.com/crawley-dev/physics-toy/sim/gravity"
	"github.com/crawley-dev/physics-toy/sim/life"
)

// Config is the command-line configuration.
type Config struct {

	// Sim is the simulation to run: life or gravity.
	Sim string `flag:"s,sim" default:"life"`

	// Width and Height are the window size in pixels.
	Width  int `default:"1024"`
	Height int `default:"768"`

	// Grid is the simulation grid size in cells per side.
	Grid int `default:"256"`

	// Density is the fraction of live cells seeded for life.
	Density float32 `default:"0.35"`

	// Seed for reproducible seeding.
	Seed int64

	// Bodies is the number of bodies for gravity.
	Bodies int `default:"64"`

	// Pattern is an optional TOML pattern file for life,
	// overriding the random seed fill.
	Pattern string

	// Procedural starts in the procedural colorization mode,
	// a smoke test of the uniform plumbing.
	Procedural bool

	// FixedDT, if positive, replaces measured frame times with a
	// fixed step for deterministic runs.
	FixedDT float32

	// ShaderDir is an optional directory watched for .wgsl changes,
	// hot-reloading the display shader.
	ShaderDir string

	// Debug enables verbose GPU diagnostics.
	Debug bool
}

func main() {
	opts := cli.DefaultOptions("physics-toy", "Physics toy runs GPU-displayed 2D simulations: Conway's Game of Life and n-body gravity.")
	cli.Run(opts, &Config{}, Play)
}

func newSim(cfg *Config) (sim.Simulation, error) {
	switch cfg.Sim {
	case "life":
		if cfg.Pattern != "" {
			pat, err := life.LoadPattern(cfg.Pattern)
			if err != nil {
				return nil, err
			}
			return life.NewPattern(pat)
		}
		var pr life.Params
		pr.Defaults()
		pr.Size = image.Point{cfg.Grid, cfg.Grid}
		pr.Density = cfg.Density
		pr.Seed = cfg.Seed
		return life.New(pr)
	case "gravity":
		var pr gravity.Params
		pr.Defaults()
		pr.Size = image.Point{cfg.Grid, cfg.Grid}
		pr.N = cfg.Bodies
		pr.Seed = cfg.Seed
		return gravity.New(pr)
	}
	return nil, fmt.Errorf("unknown sim %q: must be life or gravity", cfg.Sim)
}

// Play opens the window and runs the simulation until it closes.
func Play(cfg *Config) error { //cli:cmd -root
	runtime.LockOSThread()
	gpu.Debug = cfg.Debug

	sm, err := newSim(cfg)
	if err != nil {
		return err
	}

	size := image.Point{cfg.Width, cfg.Height}
	var resize func(size image.Point)
	wsurf, window, terminate, pollEvents, err := gpu.GLFWCreateWindow(size, "physics toy", &resize)
	if err != nil {
		return err
	}
	defer terminate()

	gp, err := gpu.NewGPU(wsurf)
	if err != nil {
		return err
	}
	defer gp.Release()
	sf, err := gpu.NewSurface(gp, wsurf, size)
	if err != nil {
		return err
	}

	eg, err := engine.New(gp, sf, sm)
	if err != nil {
		return err
	}
	resize = func(size image.Point) {
		eg.SetSize(size)
	}
	if cfg.Procedural {
		eg.Display.Mode = engine.DisplayProcedural
	}
	eg.Clock.FixedDT = cfg.FixedDT
	if cfg.ShaderDir != "" {
		eg.Watcher, err = engine.NewShaderWatcher(cfg.ShaderDir)
		if err != nil {
			return err
		}
	}

	bindInput(window, sf, eg, sm)
	return eg.Run(pollEvents)
}

// bindInput wires the interactive controls: space pauses life,
// N single-steps it, R resets, P toggles the display mode, escape
// closes, and a left click paints a cell or spawns a body.
func bindInput(window *glfw.Window, sf *gpu.Surface, eg *engine.Engine, sm sim.Simulation) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyR:
			sm.Reset()
		case glfw.KeyP:
			if eg.Display.Mode == engine.DisplayDirect {
				eg.Display.Mode = engine.DisplayProcedural
			} else {
				eg.Display.Mode = engine.DisplayDirect
			}
		case glfw.KeySpace:
			if lf, ok := sm.(*life.Life); ok {
				lf.Paused = !lf.Paused
			}
		case glfw.KeyN:
			if lf, ok := sm.(*life.Life); ok {
				lf.SingleStep()
			}
		}
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft || action != glfw.Press {
			return
		}
		mx, my := w.GetCursorPos()
		ws := sf.Size()
		gs := sm.Size()
		gx := int(mx / float64(max(ws.X, 1)) * float64(gs.X))
		gy := int(my / float64(max(ws.Y, 1)) * float64(gs.Y))
		switch s := sm.(type) {
		case *life.Life:
			s.SetCell(gx, gy, true)
		case *gravity.Gravity:
			s.Spawn(math32.Vec2(float32(gx), float32(gy)), math32.Vector2{}, 4)
		}
	})
}
