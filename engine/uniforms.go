// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"encoding/binary"
	"fmt"
	"image"
	"math"
)

// UniformSize is the size in bytes of the encoded [Uniforms] block:
// one 16 byte WGSL alignment block.
const UniformSize = 16

// Uniforms is the per-frame uniform block shared with the shaders.
// The field order and total size are fixed: the WGSL side declares
// the same struct, so any change here is a binary incompatibility.
type Uniforms struct {
	// Pad is explicit leading padding, always 0.
	Pad float32

	// Time is seconds elapsed since the engine started, never negative.
	Time float32

	// Size is the viewport size in pixels, each component at least 1.
	Size [2]float32
}

// Update sets the time and viewport, clamping to the valid domain:
// time is clamped to be non-negative and each viewport dimension to
// a minimum of 1, so degenerate windows (e.g. minimized) can never
// produce a division by zero in the shader UV math.
func (un *Uniforms) Update(time float32, viewport image.Point) {
	un.Pad = 0
	un.Time = max(time, 0)
	un.Size[0] = float32(max(viewport.X, 1))
	un.Size[1] = float32(max(viewport.Y, 1))
}

// Encode returns the 16 byte little-endian payload uploaded to the
// uniform buffer. The encoding is deterministic: equal Uniforms
// always produce identical bytes.
func (un *Uniforms) Encode() []byte {
	b := make([]byte, UniformSize)
	binary.LittleEndian.PutUint32(b[0:], math.Float32bits(un.Pad))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(un.Time))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(un.Size[0]))
	binary.LittleEndian.PutUint32(b[12:], math.Float32bits(un.Size[1]))
	return b
}

// DecodeUniforms decodes a payload produced by [Uniforms.Encode].
func DecodeUniforms(b []byte) (Uniforms, error) {
	var un Uniforms
	if len(b) != UniformSize {
		return un, fmt.Errorf("engine.DecodeUniforms: payload must be %d bytes, got %d", UniformSize, len(b))
	}
	un.Pad = math.Float32frombits(binary.LittleEndian.Uint32(b[0:]))
	un.Time = math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
	un.Size[0] = math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))
	un.Size[1] = math.Float32frombits(binary.LittleEndian.Uint32(b[12:]))
	return un, nil
}
