// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"

	"cogentcore.org/core/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Texture is a WebGPU texture with an associated view and sampler.
// It serves two roles here: a sampled texture holding simulation
// pixel data uploaded each frame, or an offscreen render target
// frame in a [RenderTexture].
type Texture struct {
	// Format has the current size and pixel format.
	Format TextureFormat

	// Sampler defines how the texture is sampled in the shader.
	// Configure before first use; nearest filtering with edge clamp
	// is the default, which keeps cell boundaries crisp.
	Sampler Sampler

	device  Device
	texture *wgpu.Texture
	view    *wgpu.TextureView
	usage   wgpu.TextureUsage

	// readBuffer is for reading the texture back to the host,
	// only allocated by ConfigReadBuffer.
	readBuffer *wgpu.Buffer
	readDims   TextureBufferDims
}

func NewTexture(dev *Device) *Texture {
	tx := &Texture{device: *dev}
	tx.Format.Defaults()
	tx.Sampler.Defaults()
	return tx
}

// View returns the current texture view, nil if not configured.
func (tx *Texture) View() *wgpu.TextureView { return tx.view }

// IsActive returns true if the underlying GPU texture exists.
func (tx *Texture) IsActive() bool { return tx.texture != nil }

// ConfigSampled configures the texture as a shader-sampled texture
// of the given size, to be filled by SetPixels. It does nothing if
// the texture already has that size.
func (tx *Texture) ConfigSampled(size image.Point) error {
	return tx.config(size, wgpu.TextureUsageTextureBinding|wgpu.TextureUsageCopyDst)
}

// ConfigRenderTexture configures the texture as an offscreen render
// target with the given format.
func (tx *Texture) ConfigRenderTexture(dev *Device, tf *TextureFormat) error {
	tx.device = *dev
	tx.Format.Format = tf.Format
	return tx.config(tf.Size, wgpu.TextureUsageRenderAttachment|wgpu.TextureUsageCopySrc)
}

func (tx *Texture) config(size image.Point, usage wgpu.TextureUsage) error {
	if tx.texture != nil && tx.Format.Size == size && tx.usage == usage {
		return nil
	}
	tx.releaseTexture()
	tx.Format.Size = size
	tx.usage = usage
	t, err := tx.device.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Texture",
		Size:          tx.Format.Extent3D(),
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        tx.Format.Format,
		Usage:         usage,
	})
	if errors.Log(err) != nil {
		return err
	}
	tx.texture = t
	view, err := t.CreateView(nil)
	if errors.Log(err) != nil {
		return err
	}
	tx.view = view
	if usage&wgpu.TextureUsageTextureBinding != 0 {
		return tx.Sampler.Config(&tx.device)
	}
	return nil
}

// SetPixels uploads raw pixel data for the entire texture,
// which must be len = Format.TotalByteSize().
// The texture must have been configured with ConfigSampled.
func (tx *Texture) SetPixels(pix []byte) error {
	if tx.texture == nil {
		return errors.Log(fmt.Errorf("gpu.Texture.SetPixels: texture not configured"))
	}
	sz := tx.Format.TotalByteSize()
	if len(pix) != sz {
		return errors.Log(fmt.Errorf("gpu.Texture.SetPixels: got %d bytes, expected %d", len(pix), sz))
	}
	tx.device.Queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tx.texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		pix,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(tx.Format.Stride()),
			RowsPerImage: uint32(tx.Format.Size.Y),
		},
		&wgpu.Extent3D{
			Width:              uint32(tx.Format.Size.X),
			Height:             uint32(tx.Format.Size.Y),
			DepthOrArrayLayers: 1,
		},
	)
	return nil
}

// ConfigReadBuffer allocates a host-readable buffer for reading
// the texture contents back from the GPU, with GrabTexture and
// ReadData. Used for offscreen render verification.
func (tx *Texture) ConfigReadBuffer() error {
	tx.readDims.Set(tx.Format.Size)
	sz := tx.readDims.PaddedSize()
	if tx.readBuffer != nil {
		tx.readBuffer.Release()
		tx.readBuffer = nil
	}
	buf, err := tx.device.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "TextureReadBuffer",
		Size:  sz,
		Usage: wgpu.BufferUsageCopyDst | wgpu.BufferUsageMapRead,
	})
	if errors.Log(err) != nil {
		return err
	}
	tx.readBuffer = buf
	return nil
}

// GrabTexture adds a command to copy the texture to the read buffer,
// which must have been allocated with ConfigReadBuffer.
func (tx *Texture) GrabTexture(cmd *wgpu.CommandEncoder) error {
	if tx.readBuffer == nil {
		return errors.Log(fmt.Errorf("gpu.Texture.GrabTexture: no read buffer; call ConfigReadBuffer first"))
	}
	cmd.CopyTextureToBuffer(
		tx.texture.AsImageCopy(),
		&wgpu.ImageCopyBuffer{
			Buffer: tx.readBuffer,
			Layout: wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  uint32(tx.readDims.PaddedRowSize),
				RowsPerImage: uint32(tx.readDims.Height),
			},
		},
		&wgpu.Extent3D{
			Width:              uint32(tx.readDims.Width),
			Height:             uint32(tx.readDims.Height),
			DepthOrArrayLayers: 1,
		},
	)
	return nil
}

// ReadData reads the pixel data from the read buffer, after
// GrabTexture commands have been submitted, stripping row padding.
func (tx *Texture) ReadData() ([]byte, error) {
	if err := BufferReadSync(&tx.device, int(tx.readDims.PaddedSize()), tx.readBuffer); err != nil {
		return nil, err
	}
	raw := tx.readBuffer.GetMappedRange(0, uint(tx.readDims.PaddedSize()))
	data := make([]byte, tx.readDims.UnpaddedSize())
	if tx.readDims.HasNoPadding() {
		copy(data, raw)
	} else {
		for y := uint64(0); y < tx.readDims.Height; y++ {
			src := raw[y*tx.readDims.PaddedRowSize:]
			copy(data[y*tx.readDims.UnpaddedRowSize:(y+1)*tx.readDims.UnpaddedRowSize], src)
		}
	}
	tx.readBuffer.Unmap()
	return data, nil
}

func (tx *Texture) releaseTexture() {
	if tx.view != nil {
		tx.view.Release()
		tx.view = nil
	}
	if tx.texture != nil {
		tx.texture.Release()
		tx.texture = nil
	}
}

func (tx *Texture) Release() {
	tx.releaseTexture()
	if tx.readBuffer != nil {
		tx.readBuffer.Release()
		tx.readBuffer = nil
	}
	tx.Sampler.Release()
}

////////////////////////////////////////////////////////////////

// Sampler defines how a texture is sampled in the shader.
type Sampler struct {
	// Filter is the magnification / minification filter.
	// Nearest is the default: simulation cells stay crisp.
	Filter wgpu.FilterMode

	// Wrap is the addressing mode outside [0,1] UV.
	// ClampToEdge is the default.
	Wrap wgpu.AddressMode

	sampler *wgpu.Sampler
}

func (sm *Sampler) Defaults() {
	sm.Filter = wgpu.FilterModeNearest
	sm.Wrap = wgpu.AddressModeClampToEdge
}

// Config creates the sampler on the device with current settings.
func (sm *Sampler) Config(dev *Device) error {
	sm.Release()
	samp, err := dev.Device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU:  sm.Wrap,
		AddressModeV:  sm.Wrap,
		AddressModeW:  sm.Wrap,
		MagFilter:     sm.Filter,
		MinFilter:     sm.Filter,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if errors.Log(err) != nil {
		return err
	}
	sm.sampler = samp
	return nil
}

func (sm *Sampler) Release() {
	if sm.sampler != nil {
		sm.sampler.Release()
		sm.sampler = nil
	}
}
