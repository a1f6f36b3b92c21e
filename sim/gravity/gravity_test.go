// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gravity

import (
	"image"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	var pr Params
	pr.Defaults()
	assert.NoError(t, pr.Validate())

	pr.N = -1
	assert.Error(t, pr.Validate())

	pr.Defaults()
	pr.Damping = 0
	assert.Error(t, pr.Validate())

	pr.Defaults()
	pr.Restitution = 1.5
	assert.Error(t, pr.Validate())

	pr.Defaults()
	pr.MaxRadius = pr.MinRadius - 1
	_, err := New(pr)
	assert.Error(t, err)

	pr.Defaults()
	pr.Size = image.Point{0, 100}
	assert.Error(t, pr.Validate())
}

// twoBodies returns a sim with two equal masses at rest at the
// given x positions.
func twoBodies(t *testing.T, x1, x2 float32) *Gravity {
	var pr Params
	pr.Defaults()
	pr.Size = image.Point{200, 200}
	pr.N = 0
	pr.G = 1e-6
	gv, err := New(pr)
	assert.NoError(t, err)
	gv.Spawn(math32.Vec2(x1, 100), math32.Vector2{}, 1)
	gv.Spawn(math32.Vec2(x2, 100), math32.Vector2{}, 1)
	return gv
}

func separation(gv *Gravity) float32 {
	return gv.Bodies[1].Pos.Sub(gv.Bodies[0].Pos).Length()
}

func TestAttraction(t *testing.T) {
	gv := twoBodies(t, 80, 120)
	last := separation(gv)
	for i := 0; i < 20; i++ {
		gv.Step(0.01)
		d := separation(gv)
		assert.Less(t, d, last)
		last = d
	}
}

func TestDeterminism(t *testing.T) {
	var pr Params
	pr.Defaults()
	pr.Size = image.Point{128, 128}
	pr.N = 16
	pr.Seed = 7
	a, err := New(pr)
	assert.NoError(t, err)
	b, err := New(pr)
	assert.NoError(t, err)
	for i := 0; i < 20; i++ {
		a.Step(0.016)
		b.Step(0.016)
	}
	assert.Equal(t, a.Bodies, b.Bodies)
	assert.Equal(t, a.Pixels(), b.Pixels())
}

func TestCoincidentNoNaN(t *testing.T) {
	gv := twoBodies(t, 100, 100)
	for i := 0; i < 5; i++ {
		gv.Step(0.01)
	}
	for _, b := range gv.Bodies {
		assert.False(t, math32.IsNaN(b.Pos.X) || math32.IsNaN(b.Pos.Y))
		assert.False(t, math32.IsNaN(b.Vel.X) || math32.IsNaN(b.Vel.Y))
	}
	// the nudge separated them
	assert.Greater(t, separation(gv), float32(0))
}

func TestCollisionSeparates(t *testing.T) {
	gv := twoBodies(t, 100, 101) // radii 1 each: overlapping
	v0 := gv.Bodies[0].Vel
	gv.Bodies[0].Vel = math32.Vec2(1, 0)
	gv.Bodies[1].Vel = math32.Vec2(-1, 0)
	gv.Step(0.001)
	// approaching bodies rebound
	assert.Less(t, gv.Bodies[0].Vel.X, v0.X+1)
	assert.Greater(t, gv.Bodies[1].Vel.X, float32(-1))
	assert.GreaterOrEqual(t, separation(gv), float32(0))
}

func TestWallBounce(t *testing.T) {
	gv := twoBodies(t, 50, 150)
	gv.Bodies = gv.Bodies[:1]
	gv.Bodies[0].Pos = math32.Vec2(1, 100)
	gv.Bodies[0].Vel = math32.Vec2(-10, 0)
	gv.Step(0.1)
	b := gv.Bodies[0]
	assert.GreaterOrEqual(t, b.Pos.X, b.Radius)
	assert.GreaterOrEqual(t, b.Vel.X, float32(0))
}

func TestReset(t *testing.T) {
	var pr Params
	pr.Defaults()
	pr.Size = image.Point{64, 64}
	pr.N = 8
	pr.Seed = 3
	gv, err := New(pr)
	assert.NoError(t, err)
	orig := make([]Body, len(gv.Bodies))
	copy(orig, gv.Bodies)
	for i := 0; i < 10; i++ {
		gv.Step(0.016)
	}
	gv.Reset()
	assert.Equal(t, orig, gv.Bodies)
}

func TestPixels(t *testing.T) {
	gv := twoBodies(t, 80, 120)
	pix := gv.Pixels()
	assert.Equal(t, 4*200*200, len(pix))
	// body center is drawn
	i := 4 * (100*200 + 80)
	assert.NotEqual(t, byte(0), pix[i+3])
	assert.True(t, pix[i] >= 128)
}
