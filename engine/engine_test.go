// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"errors"
	"fmt"
	"image"
	"testing"
	"unsafe"

	"cogentcore.org/core/math32"
	"github.com/crawley-dev/physics-toy/gpu"
	"github.com/stretchr/testify/assert"
)

func TestUniformsLayout(t *testing.T) {
	assert.Equal(t, uintptr(UniformSize), unsafe.Sizeof(Uniforms{}))
}

func TestUniformsRoundTrip(t *testing.T) {
	var un Uniforms
	un.Update(12.5, image.Point{800, 600})
	assert.Equal(t, float32(0), un.Pad)
	assert.Equal(t, float32(12.5), un.Time)
	assert.Equal(t, [2]float32{800, 600}, un.Size)

	dec, err := DecodeUniforms(un.Encode())
	assert.NoError(t, err)
	assert.Equal(t, un, dec)

	_, err = DecodeUniforms(make([]byte, 12))
	assert.Error(t, err)
}

func TestUniformsClamp(t *testing.T) {
	var un Uniforms
	un.Update(-1, image.Point{0, 0})
	assert.Equal(t, float32(0), un.Time)
	assert.Equal(t, [2]float32{1, 1}, un.Size)

	un.Update(1, image.Point{-100, 50})
	assert.Equal(t, [2]float32{1, 50}, un.Size)
}

func TestFullscreenVertices(t *testing.T) {
	corners := map[math32.Vector2]int{}
	for i := 0; i < FullscreenN; i++ {
		v := FullscreenVertex(i)
		assert.True(t, v.X == -1 || v.X == 1)
		assert.True(t, v.Y == -1 || v.Y == 1)
		corners[v]++
	}
	// all four corners, with the shared diagonal duplicated
	assert.Equal(t, 4, len(corners))
	assert.Equal(t, 2, corners[math32.Vec2(-1, 1)])
	assert.Equal(t, 2, corners[math32.Vec2(1, -1)])

	// both triangles counter-clockwise and non-degenerate
	for tri := 0; tri < 2; tri++ {
		a := FullscreenVertex(tri * 3)
		b := FullscreenVertex(tri*3 + 1)
		c := FullscreenVertex(tri*3 + 2)
		area := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
		assert.Greater(t, area, float32(0))
	}

	assert.Panics(t, func() { FullscreenVertex(-1) })
	assert.Panics(t, func() { FullscreenVertex(6) })
}

func TestRandomColor(t *testing.T) {
	uv := math32.Vec2(0.25, 0.75)
	c1 := RandomColor(uv, 1)
	c2 := RandomColor(uv, 1)
	assert.Equal(t, c1, c2)

	c3 := RandomColor(uv, 2)
	assert.NotEqual(t, c1, c3)

	for _, c := range []math32.Vector3{c1, c3} {
		for _, f := range []float32{c.X, c.Y, c.Z} {
			assert.GreaterOrEqual(t, f, float32(0))
			assert.Less(t, f, float32(1))
		}
	}
}

func TestClockFixed(t *testing.T) {
	var ck Clock
	ck.FixedDT = 0.5
	ck.Start()
	assert.Equal(t, float32(0), ck.Time)
	for i := 1; i <= 4; i++ {
		dt := ck.Tick()
		assert.Equal(t, float32(0.5), dt)
		assert.Equal(t, float32(i)*0.5, ck.Time)
	}
}

func TestClockMonotonic(t *testing.T) {
	var ck Clock
	ck.Start()
	last := ck.Time
	for i := 0; i < 10; i++ {
		ck.Tick()
		assert.GreaterOrEqual(t, ck.Time, last)
		assert.GreaterOrEqual(t, ck.DT, float32(0))
		assert.LessOrEqual(t, ck.DT, ck.MaxDT)
		last = ck.Time
	}
}

func TestTransientFrameError(t *testing.T) {
	acquire := fmt.Errorf("gpu.Surface.GetCurrentTexture: %w: %w",
		gpu.ErrTextureNotAvailable, errors.New("surface outdated"))
	assert.True(t, transientFrameError(acquire))

	encoder := errors.New("CreateCommandEncoder: device lost")
	assert.False(t, transientFrameError(encoder))
	assert.False(t, transientFrameError(errors.New("out of memory")))
}
