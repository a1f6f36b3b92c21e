// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package life

import (
	_ "embed"
	"fmt"
	"image"

	"cogentcore.org/core/base/errors"
	"github.com/crawley-dev/physics-toy/gpu"
	"github.com/crawley-dev/physics-toy/sim"
)

//go:embed shaders/life.wgsl
var lifeShader string

// stepParams is the compute-shader uniform block: grid size and
// the ping-pong parity. 16 bytes.
type stepParams struct {
	Size   [2]uint32
	Parity uint32
	Pad    uint32
}

// Compute runs the life step as a compute shader over two storage
// buffers in ping-pong: even generations read buffer A and write
// buffer B, odd generations the reverse, selected by a parity
// uniform. The front buffer after any number of steps is always a
// complete generation.
type Compute struct {
	// Size is the grid size in cells.
	Size image.Point

	// Generation counts completed steps.
	Generation int

	sys    *gpu.ComputeSystem
	pl     *gpu.ComputePipeline
	params *gpu.Var
	cells  [2]*gpu.Var
	parity int
}

// NewCompute returns a new compute-shader life step for the given
// grid size.
func NewCompute(gp *gpu.GPU, size image.Point) (*Compute, error) {
	if err := sim.ValidateSize(size); err != nil {
		return nil, err
	}
	cm := &Compute{Size: size}
	cm.sys = gpu.NewComputeSystem(gp, "life")
	cm.pl = cm.sys.AddComputePipeline("step")
	sh := cm.pl.AddShader("life")
	if err := sh.OpenCode(lifeShader); err != nil {
		cm.sys.Release()
		return nil, err
	}
	cm.pl.AddEntry(sh, gpu.ComputeShader, "main")

	ugp := cm.sys.Vars().AddGroup(gpu.Uniform, "params")
	cm.params = ugp.AddStruct("Params", 16, 1, gpu.ComputeShader)
	sgp := cm.sys.Vars().AddGroup(gpu.Storage, "cells")
	n := size.X * size.Y
	cm.cells[0] = sgp.Add("CellsA", gpu.Uint32, n, gpu.ComputeShader)
	cm.cells[1] = sgp.Add("CellsB", gpu.Uint32, n, gpu.ComputeShader)

	cm.sys.Config()
	return cm, nil
}

// front returns the Value holding the current complete generation.
func (cm *Compute) front() *gpu.Value {
	return cm.cells[cm.parity].Values.CurrentValue()
}

// SetCells uploads the given grid as the current generation, one
// uint32 per cell, 0 dead, nonzero live. Resets the generation
// count.
func (cm *Compute) SetCells(cells []uint32) error {
	n := cm.Size.X * cm.Size.Y
	if len(cells) != n {
		return fmt.Errorf("life: compute grid needs %d cells, got %d", n, len(cells))
	}
	cm.Generation = 0
	cm.parity = 0
	return gpu.SetValueFrom(cm.front(), cells)
}

// Step runs n generations on the GPU.
func (cm *Compute) Step(n int) error {
	for i := 0; i < n; i++ {
		sp := stepParams{
			Size:   [2]uint32{uint32(cm.Size.X), uint32(cm.Size.Y)},
			Parity: uint32(cm.parity),
		}
		if err := gpu.SetValueFrom(cm.params.Values.CurrentValue(), []stepParams{sp}); err != nil {
			return err
		}
		ce, err := cm.sys.BeginComputePass()
		if err != nil {
			return err
		}
		if err := cm.pl.BindPipeline(ce); err != nil {
			return err
		}
		cm.pl.Dispatch(ce, gpu.Warps(cm.Size.X, 8), gpu.Warps(cm.Size.Y, 8), 1)
		ce.End()
		if err := cm.sys.EndComputePass(ce); err != nil {
			return err
		}
		cm.parity = 1 - cm.parity
		cm.Generation++
	}
	return nil
}

// ReadCells copies the current generation back from the GPU.
func (cm *Compute) ReadCells() ([]uint32, error) {
	vl := cm.front()
	if err := vl.ConfigReadBuffer(); err != nil {
		return nil, err
	}
	cmd, err := cm.sys.NewCommandEncoder()
	if err != nil {
		return nil, err
	}
	if err := vl.GPUToRead(cmd); err != nil {
		return nil, err
	}
	cmdBuffer, err := cmd.Finish(nil)
	if errors.Log(err) != nil {
		return nil, err
	}
	cm.sys.Device().Queue.Submit(cmdBuffer)
	cmdBuffer.Release()
	cmd.Release()
	if err := vl.ReadSync(); err != nil {
		return nil, err
	}
	cells := make([]uint32, cm.Size.X*cm.Size.Y)
	if err := gpu.ReadToBytes(vl, cells); err != nil {
		return nil, err
	}
	return cells, nil
}

func (cm *Compute) Release() {
	cm.sys.Release()
}
