// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSize(t *testing.T) {
	assert.NoError(t, ValidateSize(image.Point{1, 1}))
	assert.NoError(t, ValidateSize(image.Point{256, 128}))
	assert.Error(t, ValidateSize(image.Point{0, 10}))
	assert.Error(t, ValidateSize(image.Point{10, -1}))
}

func TestPixelBufferSwap(t *testing.T) {
	pb := NewPixelBuffer(image.Point{4, 4})
	assert.Equal(t, 64, len(pb.Current()))

	red := color.RGBA{255, 0, 0, 255}
	pb.SetRGBA(1, 2, red)
	// the write went to the back buffer, not the visible one
	cu := pb.Current()
	i := 4 * (2*4 + 1)
	assert.Equal(t, byte(0), cu[i])

	pb.Swap()
	cu = pb.Current()
	assert.Equal(t, byte(255), cu[i])
	assert.Equal(t, byte(255), cu[i+3])
}

func TestPixelBufferClear(t *testing.T) {
	pb := NewPixelBuffer(image.Point{2, 2})
	pb.Clear(color.RGBA{10, 20, 30, 255})
	pb.Swap()
	cu := pb.Current()
	for p := 0; p < len(cu); p += 4 {
		assert.Equal(t, byte(10), cu[p])
		assert.Equal(t, byte(20), cu[p+1])
		assert.Equal(t, byte(30), cu[p+2])
		assert.Equal(t, byte(255), cu[p+3])
	}
}

func TestPixelBufferBounds(t *testing.T) {
	pb := NewPixelBuffer(image.Point{2, 2})
	// out of range writes are ignored
	pb.SetRGBA(-1, 0, color.RGBA{255, 255, 255, 255})
	pb.SetRGBA(2, 0, color.RGBA{255, 255, 255, 255})
	pb.SetCurrentRGBA(0, 5, color.RGBA{255, 255, 255, 255})
	pb.Swap()
	for _, b := range pb.Current() {
		assert.Equal(t, byte(0), b)
	}
}

func TestPixelBufferResize(t *testing.T) {
	pb := NewPixelBuffer(image.Point{2, 2})
	pb.SetSize(image.Point{8, 4})
	assert.Equal(t, 4*8*4, len(pb.Current()))
	assert.Equal(t, 4*8*4, len(pb.Next()))
}
