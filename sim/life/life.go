// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package life implements Conway's Game of Life on a toroidal grid,
// with a CPU step and a compute-shader step.
package life

import (
	"fmt"
	"image"
	"image/color"

	"cogentcore.org/core/base/randx"
	"github.com/crawley-dev/physics-toy/sim"
)

var (
	liveColor = color.RGBA{255, 255, 255, 255}
	deadColor = color.RGBA{0, 0, 0, 255}
)

// Params configures a [Life] simulation.
type Params struct {
	// Size is the grid size in cells.
	Size image.Point

	// Density is the fraction of cells seeded live, in [0, 1].
	Density float32

	// Seed for the reproducible random fill. The same Seed and
	// Density always produce the same initial grid.
	Seed int64
}

// Defaults sets default parameter values.
func (pr *Params) Defaults() {
	pr.Size = image.Point{256, 256}
	pr.Density = 0.35
}

// Validate returns an error for out-of-domain parameters.
func (pr *Params) Validate() error {
	if err := sim.ValidateSize(pr.Size); err != nil {
		return err
	}
	if pr.Density < 0 || pr.Density > 1 {
		return fmt.Errorf("life: density must be in [0, 1], got %g", pr.Density)
	}
	return nil
}

// Life is a two-state cellular automaton on a toroidal grid:
// neighbor lookups wrap at every edge. Cells are double-buffered;
// a generation writes the next buffer completely, then swaps, so
// the display never observes a partial grid.
type Life struct {
	Params

	// Paused stops [Life.Step] from advancing generations.
	// [Life.SingleStep] still works while paused.
	Paused bool

	// Generation counts completed steps since the last Reset.
	Generation int

	cells [2][]uint8
	cur   int
	pix   *sim.PixelBuffer
	rnd   *randx.SysRand
	pat   *Pattern
}

// New returns a new Life with the given parameters, seeded by a
// random fill at Params.Density.
func New(pr Params) (*Life, error) {
	if err := pr.Validate(); err != nil {
		return nil, err
	}
	lf := &Life{Params: pr}
	n := pr.Size.X * pr.Size.Y
	lf.cells[0] = make([]uint8, n)
	lf.cells[1] = make([]uint8, n)
	lf.pix = sim.NewPixelBuffer(pr.Size)
	lf.rnd = randx.NewSysRand(pr.Seed)
	lf.Reset()
	return lf, nil
}

// NewPattern returns a new Life initialized from the given pattern
// instead of a random fill.
func NewPattern(pat *Pattern) (*Life, error) {
	var pr Params
	pr.Defaults()
	pr.Size = image.Point{pat.Width, pat.Height}
	pr.Density = 0
	lf, err := New(pr)
	if err != nil {
		return nil, err
	}
	if err := lf.SetPattern(pat); err != nil {
		return nil, err
	}
	return lf, nil
}

func (lf *Life) Name() string {
	return "life"
}

func (lf *Life) Size() image.Point {
	return lf.Params.Size
}

// Pixels returns the current RGBA state: white live cells on black.
func (lf *Life) Pixels() []byte {
	return lf.pix.Current()
}

// Step advances one generation. The time step is ignored: the rule
// is discrete, one generation per frame. No-op while Paused.
func (lf *Life) Step(dt float32) {
	if lf.Paused {
		return
	}
	lf.generation()
}

// SingleStep advances exactly one generation regardless of Paused.
func (lf *Life) SingleStep() {
	lf.generation()
}

// Reset reseeds the grid: from the pattern if one is set, else the
// random fill at Params.Density with the original Seed.
func (lf *Life) Reset() {
	lf.Generation = 0
	if lf.pat != nil {
		lf.applyPattern(lf.pat)
		return
	}
	lf.rnd.NewRand(lf.Seed)
	cu := lf.cells[lf.cur]
	for i := range cu {
		if lf.rnd.Float32() < lf.Density {
			cu[i] = 1
		} else {
			cu[i] = 0
		}
	}
	lf.render()
}

// Clear kills every cell.
func (lf *Life) Clear() {
	cu := lf.cells[lf.cur]
	for i := range cu {
		cu[i] = 0
	}
	lf.render()
}

// Cell reports whether the cell at (x, y) is live, with toroidal
// wrapping of the coordinates.
func (lf *Life) Cell(x, y int) bool {
	return lf.cells[lf.cur][lf.index(x, y)] != 0
}

// SetCell sets the cell at (x, y), with toroidal wrapping, for
// interactive painting. Takes effect immediately in Pixels.
func (lf *Life) SetCell(x, y int, live bool) {
	i := lf.index(x, y)
	c := deadColor
	if live {
		lf.cells[lf.cur][i] = 1
		c = liveColor
	} else {
		lf.cells[lf.cur][i] = 0
	}
	lf.pix.SetCurrentRGBA(wrap(x, lf.Params.Size.X), wrap(y, lf.Params.Size.Y), c)
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

func (lf *Life) index(x, y int) int {
	return wrap(y, lf.Params.Size.Y)*lf.Params.Size.X + wrap(x, lf.Params.Size.X)
}

// neighbors counts the live cells in the 8-neighborhood of (x, y),
// wrapping toroidally.
func (lf *Life) neighbors(x, y int) int {
	n := 0
	cu := lf.cells[lf.cur]
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if cu[lf.index(x+dx, y+dy)] != 0 {
				n++
			}
		}
	}
	return n
}

// generation computes the next grid into the back buffer, swaps,
// and re-renders the pixels.
func (lf *Life) generation() {
	sz := lf.Params.Size
	cu := lf.cells[lf.cur]
	nx := lf.cells[1-lf.cur]
	for y := 0; y < sz.Y; y++ {
		for x := 0; x < sz.X; x++ {
			i := y*sz.X + x
			n := lf.neighbors(x, y)
			if cu[i] != 0 {
				if n == 2 || n == 3 {
					nx[i] = 1
				} else {
					nx[i] = 0
				}
			} else {
				if n == 3 {
					nx[i] = 1
				} else {
					nx[i] = 0
				}
			}
		}
	}
	lf.cur = 1 - lf.cur
	lf.Generation++
	lf.render()
}

// render writes the full grid into the next pixel buffer and swaps.
func (lf *Life) render() {
	cu := lf.cells[lf.cur]
	nx := lf.pix.Next()
	for i, c := range cu {
		p := 4 * i
		col := deadColor
		if c != 0 {
			col = liveColor
		}
		nx[p] = col.R
		nx[p+1] = col.G
		nx[p+2] = col.B
		nx[p+3] = col.A
	}
	lf.pix.Swap()
}
