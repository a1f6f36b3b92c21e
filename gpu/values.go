// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"
	"log/slog"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/base/slicesx"
	"github.com/cogentcore/webgpu/wgpu"
)

// Value represents one specific value of a [Var] variable, with
// its own WebGPU Buffer or Texture. The Current active Value index
// is set in the corresponding Var.Values: swapping it is how
// double-buffered state changes roles atomically between steps.
type Value struct {
	// Name of this value, by default variablename_idx.
	Name string

	// Index of this value within the Var list of values.
	Index int

	// VarSize is the size in bytes of one Var element times ArrayN.
	VarSize int

	// AllocSize is the total allocated buffer size in bytes.
	AllocSize int

	// Texture for SampledTexture vars; nil otherwise.
	// Upload pixel data with SetFromPixels.
	Texture *Texture

	role   VarRoles
	device Device
	vr     *Var

	// buffer makes this value accessible to the GPU.
	buffer *wgpu.Buffer

	// readBuffer is the host-readable staging buffer for reading
	// results back from the GPU, allocated by ConfigReadBuffer.
	readBuffer *wgpu.Buffer
}

func NewValue(vr *Var, dev *Device, idx int) *Value {
	vl := &Value{}
	vl.init(vr, dev, idx)
	return vl
}

// MemSizeAlign returns the size aligned to given byte increments,
// e.g. if align = 16 and size = 12, it returns 16.
func MemSizeAlign(size, align int) int {
	if size%align == 0 {
		return size
	}
	nb := size / align
	return (nb + 1) * align
}

func (vl *Value) init(vr *Var, dev *Device, idx int) {
	vl.role = vr.Role
	vl.device = *dev
	vl.vr = vr
	vl.Index = idx
	vl.Name = fmt.Sprintf("%s_%d", vr.Name, vl.Index)
	vl.VarSize = vr.MemSize()
	if vr.Role == SampledTexture {
		vl.Texture = NewTexture(dev)
	}
}

// MemSize returns the memory allocation size for this value in bytes.
func (vl *Value) MemSize() int {
	if vl.Texture != nil {
		return vl.Texture.Format.TotalByteSize()
	}
	return vl.VarSize
}

// CreateBuffer creates the GPU buffer for this value if it does
// not yet exist or is not the right size.
func (vl *Value) CreateBuffer() error {
	if vl.role == SampledTexture {
		return nil
	}
	sz := vl.MemSize()
	if sz == 0 {
		vl.Release()
		return nil
	}
	if sz == vl.AllocSize && vl.buffer != nil {
		return nil
	}
	vl.releaseBuffer()
	buf, err := vl.device.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Size:             uint64(sz),
		Label:            vl.Name,
		Usage:            vl.role.BufferUsages(),
		MappedAtCreation: false,
	})
	if errors.Log(err) != nil {
		return err
	}
	vl.AllocSize = sz
	vl.buffer = buf
	vl.vr.group.valuesUpdated()
	return nil
}

// SetValueFrom copies the given values into this value's buffer,
// creating the buffer if it has not yet been constructed.
func SetValueFrom[E any](vl *Value, from []E) error {
	return vl.SetFromBytes(wgpu.ToBytes(from))
}

// SetFromBytes copies the given bytes into this value's buffer,
// creating the buffer if it has not yet been constructed.
// The data must be exactly the expected size.
func (vl *Value) SetFromBytes(from []byte) error {
	nb := len(from)
	tb := vl.MemSize()
	if nb != tb {
		err := fmt.Errorf("gpu.Value.SetFromBytes %s: size passed %d != size expected %d", vl.Name, nb, tb)
		return errors.Log(err)
	}
	if vl.buffer == nil || vl.AllocSize != tb {
		vl.releaseBuffer()
		buf, err := vl.device.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
			Label:    vl.Name,
			Contents: from,
			Usage:    vl.role.BufferUsages(),
		})
		if errors.Log(err) != nil {
			return err
		}
		vl.buffer = buf
		vl.AllocSize = nb
		vl.vr.group.valuesUpdated()
		return nil
	}
	return errors.Log(vl.device.Queue.WriteBuffer(vl.buffer, 0, from))
}

// SetFromPixels uploads raw RGBA pixel data to this value's
// Texture, configuring the texture to the given size as needed.
// SampledTexture values only.
func (vl *Value) SetFromPixels(pix []byte, size image.Point) error {
	if vl.Texture == nil {
		return errors.Log(fmt.Errorf("gpu.Value.SetFromPixels %s: not a SampledTexture value", vl.Name))
	}
	if !vl.Texture.IsActive() || vl.Texture.Format.Size != size {
		if err := vl.Texture.ConfigSampled(size); err != nil {
			return err
		}
		vl.vr.group.valuesUpdated()
	}
	return vl.Texture.SetPixels(pix)
}

// ConfigReadBuffer allocates a host-readable staging buffer for
// this value, enabling GPUToRead + ReadSync readback.
func (vl *Value) ConfigReadBuffer() error {
	if err := vl.CreateBuffer(); err != nil {
		return err
	}
	if vl.readBuffer != nil {
		return nil
	}
	buf, err := vl.device.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Size:             uint64(vl.AllocSize),
		Label:            vl.Name + "_read",
		Usage:            wgpu.BufferUsageCopyDst | wgpu.BufferUsageMapRead,
		MappedAtCreation: false,
	})
	if errors.Log(err) != nil {
		return err
	}
	vl.readBuffer = buf
	return nil
}

// GPUToRead adds a command to copy this value's GPU buffer to its
// read buffer. Call ReadSync after the command has been submitted.
func (vl *Value) GPUToRead(cmd *wgpu.CommandEncoder) error {
	if vl.readBuffer == nil {
		return errors.Log(fmt.Errorf("gpu.Value.GPUToRead %s: no read buffer; call ConfigReadBuffer first", vl.Name))
	}
	cmd.CopyBufferToBuffer(vl.buffer, 0, vl.readBuffer, 0, uint64(vl.AllocSize))
	return nil
}

// ReadSync maps the read buffer, waiting for the GPU.
// Follow with ReadToBytes and then call Unmap via that function.
func (vl *Value) ReadSync() error {
	return ValueReadSync(&vl.device, vl)
}

// ReadToBytes copies the mapped read buffer contents into dest,
// unmapping the buffer when done. Call after ReadSync.
func ReadToBytes[E any](vl *Value, dest []E) error {
	return vl.CopyReadToBytes(wgpu.ToBytes(dest))
}

// CopyReadToBytes copies the mapped read buffer into dest
// and unmaps the read buffer.
func (vl *Value) CopyReadToBytes(dest []byte) error {
	if vl.readBuffer == nil {
		return errors.Log(fmt.Errorf("gpu.Value.CopyReadToBytes %s: no read buffer", vl.Name))
	}
	bm := vl.readBuffer.GetMappedRange(0, uint(vl.AllocSize))
	copy(dest, bm)
	vl.readBuffer.Unmap()
	return nil
}

func (vl *Value) releaseBuffer() {
	if vl.buffer != nil {
		vl.buffer.Release()
		vl.buffer = nil
	}
	vl.AllocSize = 0
}

// Release releases the buffer / texture for this value.
func (vl *Value) Release() {
	vl.releaseBuffer()
	if vl.readBuffer != nil {
		vl.readBuffer.Release()
		vl.readBuffer = nil
	}
	if vl.Texture != nil {
		vl.Texture.Release()
		vl.Texture = nil
	}
}

func (vl *Value) bindGroupEntry(vr *Var) []wgpu.BindGroupEntry {
	if vr.Role == SampledTexture {
		return []wgpu.BindGroupEntry{
			{
				Binding:     uint32(vr.Binding),
				TextureView: vl.Texture.view,
			},
			{
				Binding: uint32(vr.Binding + 1),
				Sampler: vl.Texture.Sampler.sampler,
			},
		}
	}
	vl.CreateBuffer() // ensure made
	return []wgpu.BindGroupEntry{{
		Binding: uint32(vr.Binding),
		Buffer:  vl.buffer,
		Offset:  0,
		Size:    wgpu.WholeSize,
	}}
}

////////////////////////////////////////////////////////////////
// Values

// Values is a list container of [Value] items, with one Current
// value used for binding.
type Values struct {
	// Values in indexed order.
	Values []*Value

	// Current specifies the current value to use in rendering.
	Current int
}

// SetN sets a specific number of values, returning true if changed.
func (vs *Values) SetN(vr *Var, dev *Device, nvals int) bool {
	cn := len(vs.Values)
	if cn == nvals {
		return false
	}
	vs.Values = slicesx.SetLength(vs.Values, nvals)
	for i := cn; i < nvals; i++ {
		vs.Values[i] = NewValue(vr, dev, i)
	}
	return true
}

// CurrentValue returns the current Value per the Current index.
func (vs *Values) CurrentValue() *Value {
	return vs.Values[vs.Current]
}

// SetCurrentValue sets the Current index, returning the value,
// or nil if the index was out of range (logs an error too).
func (vs *Values) SetCurrentValue(idx int) *Value {
	if idx >= len(vs.Values) {
		slog.Error("gpu.Values.SetCurrentValue", "index", idx, "is out of range", len(vs.Values))
		return nil
	}
	vs.Current = idx
	return vs.CurrentValue()
}

// ValueByIndexTry returns the Value at the given index,
// with a range checking error message.
func (vs *Values) ValueByIndexTry(idx int) (*Value, error) {
	if idx >= len(vs.Values) || idx < 0 {
		return nil, errors.Log(fmt.Errorf("gpu.Values.ValueByIndexTry: index %d out of range", idx))
	}
	return vs.Values[idx], nil
}

// Release frees all the value buffers / textures.
func (vs *Values) Release() {
	for _, vl := range vs.Values {
		vl.Release()
	}
	vs.Values = nil
}

// bindGroupEntry returns the BindGroupEntry for the Current
// value of this variable.
func (vs *Values) bindGroupEntry(vr *Var) []wgpu.BindGroupEntry {
	return vs.CurrentValue().bindGroupEntry(vr)
}
