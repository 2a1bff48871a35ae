// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package tensors

import (
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/dtypes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/shapes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/status"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/tensorinfo"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// At returns the element at the given coordinates. Quantized tensors are read with their storage type.
func At[T dtypes.Supported](t *Tensor, coords shapes.Coordinates) (T, error) {
	var zero T
	if err := checkAccess[T](t); err != nil {
		return zero, err
	}
	offset, err := t.offsetOf(coords)
	if err != nil {
		return zero, err
	}
	return *elementAt[T](t, offset), nil
}

// SetAt sets the element at the given coordinates.
func SetAt[T dtypes.Supported](t *Tensor, coords shapes.Coordinates, value T) error {
	if err := checkAccess[T](t); err != nil {
		return err
	}
	offset, err := t.offsetOf(coords)
	if err != nil {
		return err
	}
	*elementAt[T](t, offset) = value
	return nil
}

// offsetOf returns the byte offset of the element at coords. It returns a status.Layout error if the
// coordinates are outside of the shape.
func (t *Tensor) offsetOf(coords shapes.Coordinates) (int, error) {
	offset, err := t.info.OffsetOf(coords)
	if err != nil {
		return 0, err
	}
	shape := t.info.Shape()
	for axis, c := range coords {
		dim := 1
		if axis < shape.Rank() {
			dim = shape.Dim(axis)
		}
		if c < 0 || c >= dim {
			return 0, status.Errorf(status.Layout, "coordinates %s out of shape %s", coords, shape)
		}
	}
	return offset, nil
}

// CopyFlatData returns the logical values of the tensor, axis 0 changing fastest, skipping padding.
func CopyFlatData[T dtypes.Supported](t *Tensor) ([]T, error) {
	if err := checkAccess[T](t); err != nil {
		return nil, err
	}
	shape := t.info.Shape()
	flat := make([]T, shape.TotalSize())
	for idx, coords := range shape.Iter() {
		offset, err := t.info.OffsetOf(coords)
		if err != nil {
			return nil, err
		}
		flat[idx] = *elementAt[T](t, offset)
	}
	return flat, nil
}

// MustCopyFlatData is CopyFlatData, but panics on error.
func MustCopyFlatData[T dtypes.Supported](t *Tensor) []T {
	flat, err := CopyFlatData[T](t)
	if err != nil {
		panic(err)
	}
	return flat
}

// SetFlatData sets the logical values of the tensor from flat, axis 0 changing fastest. The padding is
// not touched.
func SetFlatData[T dtypes.Supported](t *Tensor, flat []T) error {
	if err := checkAccess[T](t); err != nil {
		return err
	}
	shape := t.info.Shape()
	if len(flat) != shape.TotalSize() {
		return errors.Errorf("SetFlatData: %d values given for shape %s with %d elements", len(flat), shape, shape.TotalSize())
	}
	for idx, coords := range shape.Iter() {
		offset, err := t.info.OffsetOf(coords)
		if err != nil {
			return err
		}
		*elementAt[T](t, offset) = flat[idx]
	}
	return nil
}

// FromFlatData creates an allocated, dense tensor with the given dimensions (axis 0 first) and values.
// With no dimensions, it creates a scalar.
//
// It panics if the number of values doesn't match the dimensions.
func FromFlatData[T dtypes.Supported](flat []T, dimensions ...int) *Tensor {
	shape := shapes.Scalar()
	if len(dimensions) > 0 {
		shape = shapes.Make(dimensions...)
	}
	return FromFlatDataAndInfo(tensorinfo.New(shape, 1, dtypes.FromGenericsType[T]()), flat)
}

// FromFlatDataAndInfo allocates a tensor for info, which may have padding or a quantized type, and sets
// its values.
//
// It panics if the values don't match the descriptor.
func FromFlatDataAndInfo[T dtypes.Supported](info *tensorinfo.TensorInfo, flat []T) *Tensor {
	t := New(info)
	if err := t.Allocate(); err != nil {
		exceptions.Panicf("FromFlatData: %+v", err)
	}
	if err := SetFlatData(t, flat); err != nil {
		exceptions.Panicf("FromFlatData: %+v", err)
	}
	return t
}
