// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package life

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Pattern is an initial grid configuration loaded from a TOML file:
// a grid size and the list of live cells.
type Pattern struct {
	// Name of the pattern.
	Name string `toml:"name"`

	// Width and Height of the grid in cells.
	Width  int `toml:"width"`
	Height int `toml:"height"`

	// Cells lists the live cells as [x, y] pairs.
	Cells [][2]int `toml:"cells"`
}

// Validate returns an error if the pattern grid is degenerate or
// any cell is outside it.
func (pt *Pattern) Validate() error {
	if pt.Width < 1 || pt.Height < 1 {
		return fmt.Errorf("life: pattern %q size must be at least 1x1, got %dx%d", pt.Name, pt.Width, pt.Height)
	}
	for _, c := range pt.Cells {
		if c[0] < 0 || c[0] >= pt.Width || c[1] < 0 || c[1] >= pt.Height {
			return fmt.Errorf("life: pattern %q cell (%d, %d) outside %dx%d grid", pt.Name, c[0], c[1], pt.Width, pt.Height)
		}
	}
	return nil
}

// LoadPattern loads and validates a pattern from a TOML file.
func LoadPattern(fname string) (*Pattern, error) {
	b, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	pt := &Pattern{}
	if err := toml.Unmarshal(b, pt); err != nil {
		return nil, fmt.Errorf("life: pattern %s: %w", fname, err)
	}
	if err := pt.Validate(); err != nil {
		return nil, err
	}
	return pt, nil
}

// SetPattern clears the grid and sets the pattern's live cells.
// The pattern grid size must match the simulation grid size.
// Reset re-applies the pattern from then on.
func (lf *Life) SetPattern(pat *Pattern) error {
	if err := pat.Validate(); err != nil {
		return err
	}
	if pat.Width != lf.Params.Size.X || pat.Height != lf.Params.Size.Y {
		return fmt.Errorf("life: pattern %q is %dx%d, grid is %dx%d", pat.Name, pat.Width, pat.Height, lf.Params.Size.X, lf.Params.Size.Y)
	}
	lf.pat = pat
	lf.applyPattern(pat)
	lf.Generation = 0
	return nil
}

func (lf *Life) applyPattern(pat *Pattern) {
	cu := lf.cells[lf.cur]
	for i := range cu {
		cu[i] = 0
	}
	for _, c := range pat.Cells {
		cu[c[1]*lf.Params.Size.X+c[0]] = 1
	}
	lf.render()
}
