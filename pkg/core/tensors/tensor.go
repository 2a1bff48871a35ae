// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package tensors implements a Tensor: a tensor descriptor (tensorinfo.TensorInfo) plus the memory it
// describes, as a flat byte buffer of TotalSize bytes (including padding).
//
// There are various ways to construct a Tensor:
//
//   - New(info) + Allocate(): the buffer is allocated according to the (fully configured) descriptor.
//     Allocating locks the descriptor: it's no longer resizable, so padding can't grow afterwards.
//   - FromFlatData[T](data, dimensions...): creates and allocates a dense tensor with the given values.
//
// Values are accessed with the typed generic functions At, SetAt, CopyFlatData and SetFlatData, which
// follow the strides of the descriptor. Padding is never read or written by them.
//
// Tensors are not safe for concurrent modification, except for writers touching disjoint elements.
package tensors

import (
	"fmt"
	"unsafe"

	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/dtypes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/shapes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/status"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/tensorinfo"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// Tensor is a tensor descriptor and its memory.
type Tensor struct {
	info   *tensorinfo.TensorInfo
	buffer []byte
}

// New creates an unallocated tensor for the given descriptor. The tensor takes ownership of info:
// operators may still configure it (auto-initialize it, extend its padding) until Allocate is called.
//
// If info is nil, an empty descriptor is created.
func New(info *tensorinfo.TensorInfo) *Tensor {
	if info == nil {
		info = tensorinfo.NewEmpty()
	}
	return &Tensor{info: info}
}

// Info returns the descriptor of the tensor.
func (t *Tensor) Info() *tensorinfo.TensorInfo { return t.info }

// Shape is a shortcut to Info().Shape().
func (t *Tensor) Shape() shapes.Shape { return t.info.Shape() }

// DType is a shortcut to Info().DataType().
func (t *Tensor) DType() dtypes.DType { return t.info.DataType() }

// IsAllocated returns whether the buffer was allocated.
func (t *Tensor) IsAllocated() bool { return t.buffer != nil }

// Allocate the buffer with the size given by the descriptor, zero-initialized, and mark the descriptor as
// not resizable.
//
// The buffer is 8-bytes aligned, so every element is aligned to its size.
func (t *Tensor) Allocate() error {
	if t.buffer != nil {
		return errors.Errorf("tensor %s already allocated", t.info)
	}
	if err := tensorinfo.CheckInitialized(t.info); err != nil {
		return errors.WithMessage(err, "cannot allocate tensor")
	}
	size := t.info.TotalSize()
	words := make([]uint64, (size+7)/8)
	t.buffer = unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(words))), size)
	t.info.SetIsResizable(false)
	return nil
}

// Free releases the buffer: the descriptor becomes resizable again.
func (t *Tensor) Free() {
	t.buffer = nil
	t.info.SetIsResizable(true)
}

// Buffer returns the raw memory of the tensor, including padding. It's nil if not allocated.
func (t *Tensor) Buffer() []byte { return t.buffer }

// String implements fmt.Stringer.
func (t *Tensor) String() string {
	if t.buffer == nil {
		return fmt.Sprintf("Tensor(unallocated, %s)", t.info)
	}
	return fmt.Sprintf("Tensor(%s allocated, %s)", humanize.IBytes(uint64(len(t.buffer))), t.info)
}

// checkAccess verifies the tensor is allocated and its data type matches T.
func checkAccess[T dtypes.Supported](t *Tensor) error {
	if t.buffer == nil {
		return errors.Errorf("tensor %s is not allocated", t.info)
	}
	want := dtypes.FromGenericsType[T]()
	got := t.info.DataType().StorageDType()
	if got != want || t.info.NumChannels() != 1 {
		return status.Errorf(status.Shape, "cannot access tensor of %s (%d channels) as %s", t.info.DataType(), t.info.NumChannels(), want)
	}
	return nil
}

// elementAt returns a pointer to the element at the given byte offset.
func elementAt[T dtypes.Supported](t *Tensor, offset int) *T {
	return (*T)(unsafe.Pointer(&t.buffer[offset]))
}
