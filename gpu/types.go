// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Types is the set of GPU data types supported for shader variables.
// Note that individual float32 values and vec3 do not align properly
// in uniform and storage buffers, so vec2 / vec4 or Struct with
// explicit 16 byte alignment are the safe choices.
type Types int32

const (
	UndefinedType Types = iota

	Uint32
	Uint32Vector2

	Float32
	Float32Vector2
	Float32Vector4

	// Struct is a user-defined struct with an explicit size,
	// which must obey WGSL alignment rules (16 byte boundaries).
	Struct
)

// Bytes returns the number of bytes for this type.
func (tp Types) Bytes() int {
	return TypeSizes[tp]
}

func (tp Types) String() string {
	switch tp {
	case Uint32:
		return "Uint32"
	case Uint32Vector2:
		return "Uint32Vector2"
	case Float32:
		return "Float32"
	case Float32Vector2:
		return "Float32Vector2"
	case Float32Vector4:
		return "Float32Vector4"
	case Struct:
		return "Struct"
	}
	return "UndefinedType"
}

// TypeSizes gives the data type sizes in bytes.
var TypeSizes = map[Types]int{
	Uint32:         4,
	Uint32Vector2:  8,
	Float32:        4,
	Float32Vector2: 8,
	Float32Vector4: 16,
}

// TextureFormatSizes gives the per-pixel size in bytes of the
// WebGPU TextureFormats used here.
var TextureFormatSizes = map[wgpu.TextureFormat]int{
	wgpu.TextureFormatUndefined:      0,
	wgpu.TextureFormatR32Float:       4,
	wgpu.TextureFormatRG32Float:      8,
	wgpu.TextureFormatRGBA32Float:    16,
	wgpu.TextureFormatRGBA8Unorm:     4,
	wgpu.TextureFormatRGBA8UnormSrgb: 4,
	wgpu.TextureFormatBGRA8Unorm:     4,
	wgpu.TextureFormatBGRA8UnormSrgb: 4,
}

// TextureFormatNames translates the common texture formats
// into human-readable strings.
var TextureFormatNames = map[wgpu.TextureFormat]string{
	wgpu.TextureFormatRGBA8Unorm:     "RGBA 8bit unsigned linear colorspace",
	wgpu.TextureFormatRGBA8UnormSrgb: "RGBA 8bit sRGB colorspace",
	wgpu.TextureFormatBGRA8Unorm:     "BGRA 8bit unsigned linear colorspace",
	wgpu.TextureFormatBGRA8UnormSrgb: "BGRA 8bit sRGB colorspace",
}
