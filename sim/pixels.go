// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"image"
	"image/color"

	"cogentcore.org/core/base/slicesx"
)

// PixelBuffer is a double-buffered RGBA pixel store. A simulation
// renders its full state into Next, then calls Swap; Current always
// holds a completely written frame, so the display never observes a
// partial one.
type PixelBuffer struct {
	// Size is the pixel grid size.
	Size image.Point

	bufs    [2][]byte
	current int
}

// NewPixelBuffer returns a new PixelBuffer of the given size, with
// both buffers allocated and zeroed (transparent black).
func NewPixelBuffer(size image.Point) *PixelBuffer {
	pb := &PixelBuffer{}
	pb.SetSize(size)
	return pb
}

// SetSize sets the pixel grid size, reallocating as needed.
func (pb *PixelBuffer) SetSize(size image.Point) {
	pb.Size = size
	n := 4 * size.X * size.Y
	for i := range pb.bufs {
		pb.bufs[i] = slicesx.SetLength(pb.bufs[i], n)
	}
}

// Current returns the last fully-written frame.
func (pb *PixelBuffer) Current() []byte {
	return pb.bufs[pb.current]
}

// Next returns the buffer to render the next frame into.
func (pb *PixelBuffer) Next() []byte {
	return pb.bufs[1-pb.current]
}

// Swap makes the Next buffer Current. Call only after Next is
// fully written.
func (pb *PixelBuffer) Swap() {
	pb.current = 1 - pb.current
}

// Clear fills the Next buffer with the given color.
func (pb *PixelBuffer) Clear(c color.RGBA) {
	nx := pb.Next()
	for i := 0; i < len(nx); i += 4 {
		nx[i] = c.R
		nx[i+1] = c.G
		nx[i+2] = c.B
		nx[i+3] = c.A
	}
}

// SetRGBA sets the pixel at (x, y) in the Next buffer, ignoring
// out-of-range coordinates.
func (pb *PixelBuffer) SetRGBA(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= pb.Size.X || y >= pb.Size.Y {
		return
	}
	i := 4 * (y*pb.Size.X + x)
	nx := pb.Next()
	nx[i] = c.R
	nx[i+1] = c.G
	nx[i+2] = c.B
	nx[i+3] = c.A
}

// SetCurrentRGBA sets the pixel at (x, y) in the Current buffer,
// for in-place edits such as interactive painting.
func (pb *PixelBuffer) SetCurrentRGBA(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= pb.Size.X || y >= pb.Size.Y {
		return
	}
	i := 4 * (y*pb.Size.X + x)
	cu := pb.Current()
	cu[i] = c.R
	cu[i+1] = c.G
	cu[i+2] = c.B
	cu[i+3] = c.A
}
