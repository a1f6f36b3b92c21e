// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gravity implements an n-body gravity simulation with
// pairwise attraction, softened at close range, and elastic
// collision response with restitution.
package gravity

import (
	"fmt"
	"image"
	"image/color"

	"cogentcore.org/core/base/randx"
	"cogentcore.org/core/math32"
	"github.com/crawley-dev/physics-toy/sim"
)

const (
	// GravConst is the gravitational constant.
	GravConst = 6.6743e-11

	// Density is the mass density used to derive body mass
	// from radius.
	Density = 5514.0

	// Softening is added to squared distances so coincident
	// bodies never divide by zero.
	Softening = 1e-6
)

// BodyMass returns the mass of a body of the given radius, as a
// sphere of [Density].
func BodyMass(radius float32) float32 {
	return math32.Pi * 4.0 / 3.0 * radius * radius * radius * Density
}

// Body is one point mass.
type Body struct {
	// Pos is the position in grid pixels.
	Pos math32.Vector2

	// Vel is the velocity in pixels per second.
	Vel math32.Vector2

	// Force accumulates pairwise forces within one step.
	Force math32.Vector2

	// Mass, derived from Radius at spawn.
	Mass float32

	// Radius in pixels, for collision and rasterization.
	Radius float32

	// Color the body is rasterized with.
	Color color.RGBA
}

// Params configures a [Gravity] simulation.
type Params struct {
	// Size is the grid size in pixels.
	Size image.Point

	// N is the number of randomly spawned bodies.
	N int

	// Seed for reproducible spawning.
	Seed int64

	// G is the gravitational constant. Defaults to [GravConst].
	G float32

	// Damping multiplies velocity each step, slowly bleeding
	// energy out of the system. Defaults to 0.999.
	Damping float32

	// Restitution is the collision rebound fraction in [0, 1].
	// Defaults to 0.8.
	Restitution float32

	// MinRadius and MaxRadius bound the spawned body radii.
	MinRadius, MaxRadius float32
}

// Defaults sets default parameter values.
func (pr *Params) Defaults() {
	pr.Size = image.Point{512, 512}
	pr.N = 64
	pr.G = GravConst
	pr.Damping = 0.999
	pr.Restitution = 0.8
	pr.MinRadius = 2
	pr.MaxRadius = 6
}

// Validate returns an error for out-of-domain parameters.
func (pr *Params) Validate() error {
	if err := sim.ValidateSize(pr.Size); err != nil {
		return err
	}
	if pr.N < 0 {
		return fmt.Errorf("gravity: body count must be non-negative, got %d", pr.N)
	}
	if pr.Damping <= 0 || pr.Damping > 1 {
		return fmt.Errorf("gravity: damping must be in (0, 1], got %g", pr.Damping)
	}
	if pr.Restitution < 0 || pr.Restitution > 1 {
		return fmt.Errorf("gravity: restitution must be in [0, 1], got %g", pr.Restitution)
	}
	if pr.MinRadius <= 0 || pr.MaxRadius < pr.MinRadius {
		return fmt.Errorf("gravity: radius range [%g, %g] invalid", pr.MinRadius, pr.MaxRadius)
	}
	return nil
}

// Gravity is an n-body simulation. Each step accumulates pairwise
// gravitational forces (or collision impulses for overlapping
// bodies), then integrates with semi-implicit Euler: velocity
// first, then position from the new velocity. Explicit Euler would
// gain energy at large steps; the velocity-first order is stable
// and just as cheap. Deterministic given identical parameters and
// step sequence.
type Gravity struct {
	Params

	// Bodies is the current body set.
	Bodies []Body

	pix *sim.PixelBuffer
	rnd *randx.SysRand
}

// New returns a new Gravity with the given parameters, spawning
// Params.N random bodies.
func New(pr Params) (*Gravity, error) {
	if err := pr.Validate(); err != nil {
		return nil, err
	}
	gv := &Gravity{Params: pr}
	gv.pix = sim.NewPixelBuffer(pr.Size)
	gv.rnd = randx.NewSysRand(pr.Seed)
	gv.Reset()
	return gv, nil
}

func (gv *Gravity) Name() string {
	return "gravity"
}

func (gv *Gravity) Size() image.Point {
	return gv.Params.Size
}

// Pixels returns the current RGBA state: bodies rasterized as
// filled circles on black.
func (gv *Gravity) Pixels() []byte {
	return gv.pix.Current()
}

// Reset respawns Params.N random bodies with the original seed.
func (gv *Gravity) Reset() {
	gv.rnd.NewRand(gv.Seed)
	gv.Bodies = gv.Bodies[:0]
	for i := 0; i < gv.N; i++ {
		r := gv.MinRadius + gv.rnd.Float32()*(gv.MaxRadius-gv.MinRadius)
		pos := math32.Vec2(gv.rnd.Float32()*float32(gv.Params.Size.X), gv.rnd.Float32()*float32(gv.Params.Size.Y))
		gv.spawn(pos, math32.Vector2{}, r)
	}
	gv.render()
}

// Spawn adds a body at the given position and velocity, with mass
// derived from the radius, visible immediately in Pixels.
func (gv *Gravity) Spawn(pos, vel math32.Vector2, radius float32) {
	gv.spawn(pos, vel, radius)
	gv.render()
}

func (gv *Gravity) spawn(pos, vel math32.Vector2, radius float32) {
	c := color.RGBA{128 + uint8(gv.rnd.Intn(128)), 128 + uint8(gv.rnd.Intn(128)), 128 + uint8(gv.rnd.Intn(128)), 255}
	gv.Bodies = append(gv.Bodies, Body{
		Pos:    pos,
		Vel:    vel,
		Mass:   BodyMass(radius),
		Radius: radius,
		Color:  c,
	})
}

// Step advances the simulation by dt seconds.
func (gv *Gravity) Step(dt float32) {
	bs := gv.Bodies
	for i := range bs {
		for j := i + 1; j < len(bs); j++ {
			gv.interact(&bs[i], &bs[j])
		}
	}
	for i := range bs {
		b := &bs[i]
		b.Vel.SetAdd(b.Force.MulScalar(dt / b.Mass))
		b.Vel.SetMulScalar(gv.Damping)
		b.Pos.SetAdd(b.Vel.MulScalar(dt))
		b.Force.Set(0, 0)
		gv.bounceWalls(b)
	}
	gv.render()
}

// interact applies either a collision response or gravitational
// attraction between the pair, depending on overlap.
func (gv *Gravity) interact(b1, b2 *Body) {
	d := b2.Pos.Sub(b1.Pos)
	r2 := d.LengthSquared()
	minD := b1.Radius + b2.Radius
	if r2 < minD*minD {
		gv.collide(b1, b2, d, r2, minD)
	} else {
		gv.gravitate(b1, b2, d, r2)
	}
}

func (gv *Gravity) gravitate(b1, b2 *Body, d math32.Vector2, r2 float32) {
	r2 += Softening
	r := math32.Sqrt(r2)
	f := gv.G * b1.Mass * b2.Mass / r2
	force := d.MulScalar(f / r)
	b1.Force.SetAdd(force)
	b2.Force.SetSub(force)
}

// collide applies an impulse along the contact normal with the
// restitution coefficient, then separates the overlap so bodies do
// not sink into each other.
func (gv *Gravity) collide(b1, b2 *Body, d math32.Vector2, r2, minD float32) {
	if r2 < Softening {
		// coincident: nudge apart, normal is undefined
		b1.Pos.SetAddScalar(-Softening)
		b2.Pos.SetAddScalar(Softening)
		return
	}
	r := math32.Sqrt(r2)
	normal := d.DivScalar(r)
	velDelta := b2.Vel.Sub(b1.Vel)
	along := velDelta.Dot(normal)
	if along >= 0 { // already separating
		return
	}
	invMass := 1/b1.Mass + 1/b2.Mass
	impulse := -gv.Restitution * along / invMass
	b1.Vel.SetSub(normal.MulScalar(impulse / b1.Mass))
	b2.Vel.SetAdd(normal.MulScalar(impulse / b2.Mass))

	correction := (minD - r) * 0.5
	b1.Pos.SetSub(normal.MulScalar(correction / b1.Mass / invMass))
	b2.Pos.SetAdd(normal.MulScalar(correction / b2.Mass / invMass))
}

// bounceWalls reflects a body off the grid edges with restitution.
func (gv *Gravity) bounceWalls(b *Body) {
	w := float32(gv.Params.Size.X)
	h := float32(gv.Params.Size.Y)
	if b.Pos.X < b.Radius {
		b.Pos.X = b.Radius
		b.Vel.X = -b.Vel.X * gv.Restitution
	} else if b.Pos.X > w-b.Radius {
		b.Pos.X = w - b.Radius
		b.Vel.X = -b.Vel.X * gv.Restitution
	}
	if b.Pos.Y < b.Radius {
		b.Pos.Y = b.Radius
		b.Vel.Y = -b.Vel.Y * gv.Restitution
	} else if b.Pos.Y > h-b.Radius {
		b.Pos.Y = h - b.Radius
		b.Vel.Y = -b.Vel.Y * gv.Restitution
	}
}

// render rasterizes all bodies as filled circles into the next
// pixel buffer and swaps.
func (gv *Gravity) render() {
	gv.pix.Clear(color.RGBA{0, 0, 0, 255})
	for i := range gv.Bodies {
		b := &gv.Bodies[i]
		r := int(math32.Ceil(b.Radius))
		cx := int(b.Pos.X)
		cy := int(b.Pos.Y)
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if float32(dx*dx+dy*dy) <= b.Radius*b.Radius {
					gv.pix.SetRGBA(cx+dx, cy+dy, b.Color)
				}
			}
		}
	}
	gv.pix.Swap()
}
