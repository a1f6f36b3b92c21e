// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !offscreen && ((darwin && !ios) || windows || (linux && !android) || dragonfly || openbsd)

package gpu

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCallResize(t *testing.T) {
	assert.NotPanics(t, func() { callResize(nil, image.Point{10, 10}) })

	var resize func(size image.Point)
	assert.NotPanics(t, func() { callResize(&resize, image.Point{10, 10}) })

	var got image.Point
	resize = func(size image.Point) { got = size }
	callResize(&resize, image.Point{640, 480})
	assert.Equal(t, image.Point{640, 480}, got)
}
