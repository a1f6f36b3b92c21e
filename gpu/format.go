// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// TextureFormat describes the size and WebGPU format of a Texture.
type TextureFormat struct {
	// Size of the texture in pixels.
	Size image.Point

	// Format is the pixel format: RGBA8Unorm is the default,
	// which matches raw simulation pixel data without colorspace
	// conversion.
	Format wgpu.TextureFormat
}

// NewTextureFormat returns a new TextureFormat with the default
// format and given size.
func NewTextureFormat(width, height int) *TextureFormat {
	tf := &TextureFormat{}
	tf.Defaults()
	tf.Size = image.Point{width, height}
	return tf
}

func (tf *TextureFormat) Defaults() {
	tf.Format = wgpu.TextureFormatRGBA8Unorm
}

// String returns a human-readable version of the format.
func (tf *TextureFormat) String() string {
	return fmt.Sprintf("Size: %v  Format: %s", tf.Size, TextureFormatNames[tf.Format])
}

// SetSize sets the width and height.
func (tf *TextureFormat) SetSize(w, h int) {
	tf.Size = image.Point{X: w, Y: h}
}

// Set sets the width, height and format.
func (tf *TextureFormat) Set(w, h int, ft wgpu.TextureFormat) {
	tf.SetSize(w, h)
	tf.Format = ft
}

// Size32 returns the size as uint32 values.
func (tf *TextureFormat) Size32() (width, height uint32) {
	return uint32(tf.Size.X), uint32(tf.Size.Y)
}

// Extent3D returns the size as a WebGPU Extent3D.
func (tf *TextureFormat) Extent3D() wgpu.Extent3D {
	return wgpu.Extent3D{
		Width:              uint32(tf.Size.X),
		Height:             uint32(tf.Size.Y),
		DepthOrArrayLayers: 1,
	}
}

// Bounds returns the rectangle defining this texture: 0,0,w,h.
func (tf *TextureFormat) Bounds() image.Rectangle {
	return image.Rectangle{Max: tf.Size}
}

// BytesPerPixel returns the number of bytes per pixel
// for the known formats.
func (tf *TextureFormat) BytesPerPixel() int {
	return TextureFormatSizes[tf.Format]
}

// TotalByteSize returns the total number of bytes to represent
// the texture data in host memory.
func (tf *TextureFormat) TotalByteSize() int {
	return tf.BytesPerPixel() * tf.Size.X * tf.Size.Y
}

// Stride returns the number of bytes per pixel row.
func (tf *TextureFormat) Stride() int {
	return tf.BytesPerPixel() * tf.Size.X
}

////////////////////////////////////////////////////////////////

// TextureBufferDims represents the sizes required in a Buffer
// to hold a texture of a given size, with rows padded out to the
// WebGPU CopyBytesPerRowAlignment as required for texture-to-buffer
// copies.
type TextureBufferDims struct {
	Width           uint64
	Height          uint64
	UnpaddedRowSize uint64
	PaddedRowSize   uint64
}

func NewTextureBufferDims(size image.Point) *TextureBufferDims {
	td := &TextureBufferDims{}
	td.Set(size)
	return td
}

func (td *TextureBufferDims) Set(size image.Point) {
	td.Width = uint64(size.X)
	td.Height = uint64(size.Y)
	const bytesPerPixel = 4
	td.UnpaddedRowSize = td.Width * bytesPerPixel
	align := uint64(wgpu.CopyBytesPerRowAlignment)
	padding := (align - td.UnpaddedRowSize%align) % align
	td.PaddedRowSize = td.UnpaddedRowSize + padding
}

// PaddedSize returns the total padded size of the data.
func (td *TextureBufferDims) PaddedSize() uint64 {
	return td.PaddedRowSize * td.Height
}

// UnpaddedSize returns the total unpadded size of the data.
func (td *TextureBufferDims) UnpaddedSize() uint64 {
	return td.UnpaddedRowSize * td.Height
}

// HasNoPadding returns true if the unpadded and padded row sizes
// are the same.
func (td *TextureBufferDims) HasNoPadding() bool {
	return td.UnpaddedRowSize == td.PaddedRowSize
}
