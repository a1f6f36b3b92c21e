// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package life

import (
	"image"
	"testing"

	"github.com/crawley-dev/physics-toy/gpu"
	"github.com/stretchr/testify/assert"
)

func blinkerLife(t *testing.T) *Life {
	pat, err := LoadPattern("testdata/blinker.toml")
	assert.NoError(t, err)
	lf, err := NewPattern(pat)
	assert.NoError(t, err)
	return lf
}

func liveCells(lf *Life) map[[2]int]bool {
	cells := map[[2]int]bool{}
	for y := 0; y < lf.Size().Y; y++ {
		for x := 0; x < lf.Size().X; x++ {
			if lf.Cell(x, y) {
				cells[[2]int{x, y}] = true
			}
		}
	}
	return cells
}

func TestValidate(t *testing.T) {
	var pr Params
	pr.Defaults()
	assert.NoError(t, pr.Validate())

	pr.Size = image.Point{0, 10}
	assert.Error(t, pr.Validate())

	pr.Defaults()
	pr.Density = 1.5
	assert.Error(t, pr.Validate())

	pr.Density = -0.1
	_, err := New(pr)
	assert.Error(t, err)
}

func TestBlinker(t *testing.T) {
	lf := blinkerLife(t)
	horizontal := map[[2]int]bool{{1, 2}: true, {2, 2}: true, {3, 2}: true}
	vertical := map[[2]int]bool{{2, 1}: true, {2, 2}: true, {2, 3}: true}

	assert.Equal(t, horizontal, liveCells(lf))
	lf.Step(0.016)
	assert.Equal(t, vertical, liveCells(lf))
	lf.Step(0.016)
	assert.Equal(t, horizontal, liveCells(lf))
	assert.Equal(t, 2, lf.Generation)
}

func TestAllDeadStaysDead(t *testing.T) {
	var pr Params
	pr.Defaults()
	pr.Size = image.Point{8, 8}
	pr.Density = 0
	lf, err := New(pr)
	assert.NoError(t, err)
	for i := 0; i < 5; i++ {
		lf.Step(0.016)
		assert.Empty(t, liveCells(lf))
	}
}

func TestDeterminism(t *testing.T) {
	var pr Params
	pr.Defaults()
	pr.Size = image.Point{32, 32}
	pr.Seed = 42
	a, err := New(pr)
	assert.NoError(t, err)
	b, err := New(pr)
	assert.NoError(t, err)
	for i := 0; i < 10; i++ {
		a.Step(0.016)
		b.Step(0.016)
	}
	assert.Equal(t, a.Pixels(), b.Pixels())
	assert.Equal(t, liveCells(a), liveCells(b))
}

func TestPauseAndSingleStep(t *testing.T) {
	lf := blinkerLife(t)
	lf.Paused = true
	lf.Step(0.016)
	assert.Equal(t, 0, lf.Generation)
	lf.SingleStep()
	assert.Equal(t, 1, lf.Generation)
}

func TestSetCell(t *testing.T) {
	var pr Params
	pr.Defaults()
	pr.Size = image.Point{4, 4}
	pr.Density = 0
	lf, err := New(pr)
	assert.NoError(t, err)

	lf.SetCell(1, 1, true)
	assert.True(t, lf.Cell(1, 1))
	// wraps toroidally
	lf.SetCell(-1, -1, true)
	assert.True(t, lf.Cell(3, 3))

	pix := lf.Pixels()
	i := 4 * (1*4 + 1)
	assert.Equal(t, byte(255), pix[i])

	lf.SetCell(1, 1, false)
	assert.False(t, lf.Cell(1, 1))
}

func TestPatternErrors(t *testing.T) {
	pt := &Pattern{Name: "bad", Width: 0, Height: 5}
	assert.Error(t, pt.Validate())

	pt = &Pattern{Name: "bad", Width: 5, Height: 5, Cells: [][2]int{{5, 0}}}
	assert.Error(t, pt.Validate())

	_, err := LoadPattern("testdata/missing.toml")
	assert.Error(t, err)
}

func TestPixelsNeverPartial(t *testing.T) {
	lf := blinkerLife(t)
	before := lf.Pixels()
	lf.Step(0.016)
	after := lf.Pixels()
	// the step swapped buffers rather than writing in place
	assert.NotEqual(t, &before[0], &after[0])
	assert.Equal(t, 4*5*5, len(after))
}

func TestComputeBlinker(t *testing.T) {
	t.Skip("Need software GPU on CI")
	gp, _, err := gpu.NoDisplayGPU()
	assert.NoError(t, err)
	cm, err := NewCompute(gp, image.Point{5, 5})
	assert.NoError(t, err)

	cells := make([]uint32, 25)
	cells[2*5+1] = 1
	cells[2*5+2] = 1
	cells[2*5+3] = 1
	assert.NoError(t, cm.SetCells(cells))

	assert.NoError(t, cm.Step(2))
	got, err := cm.ReadCells()
	assert.NoError(t, err)
	assert.Equal(t, cells, got)

	// any nonzero value is one live cell, not a neighbor count
	loud := make([]uint32, 25)
	loud[2*5+1] = 7
	loud[2*5+2] = 2
	loud[2*5+3] = 9
	assert.NoError(t, cm.SetCells(loud))
	assert.NoError(t, cm.Step(1))
	got, err = cm.ReadCells()
	assert.NoError(t, err)
	vertical := make([]uint32, 25)
	vertical[1*5+2] = 1
	vertical[2*5+2] = 1
	vertical[3*5+2] = 1
	assert.Equal(t, vertical, got)

	cm.Release()
	gp.Release()
}
