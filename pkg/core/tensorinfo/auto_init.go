// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package tensorinfo

import (
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/dtypes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/quantization"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/shapes"
)

// AutoInitIfEmpty initializes info with the given shape, number of channels, data type and quantization,
// if and only if info is empty (its shape has total size 0). An initialized descriptor is never changed.
//
// It returns whether info was initialized.
func AutoInitIfEmpty(info Info, shape shapes.Shape, numChannels int, dtype dtypes.DType, q quantization.Info) bool {
	if info.Shape().TotalSize() != 0 {
		return false
	}
	info.SetDataType(dtype)
	info.SetNumChannels(numChannels)
	info.SetShape(shape)
	info.SetQuantizationInfo(q)
	return true
}

// AutoInitIfEmptyFrom initializes info from a reference descriptor (shape, number of channels, data type,
// quantization and data layout), if and only if info is empty.
//
// It returns whether info was initialized.
func AutoInitIfEmptyFrom(info, reference Info) bool {
	if !AutoInitIfEmpty(info, reference.Shape(), reference.NumChannels(), reference.DataType(), reference.QuantizationInfo()) {
		return false
	}
	info.SetDataLayout(reference.DataLayout())
	return true
}

// SetShapeIfEmpty sets the shape of info if its current shape is empty. It returns whether it was set.
func SetShapeIfEmpty(info Info, shape shapes.Shape) bool {
	if info.Shape().TotalSize() != 0 {
		return false
	}
	info.SetShape(shape)
	return true
}

// SetDataTypeIfUnknown sets the data type of info if it's not set yet. It returns whether it was set.
func SetDataTypeIfUnknown(info Info, dtype dtypes.DType) bool {
	if info.DataType() != dtypes.InvalidDType {
		return false
	}
	info.SetDataType(dtype)
	return true
}

// SetFormatIfUnknown sets the format of info if its data type is not set yet. It returns whether it was set.
func SetFormatIfUnknown(info Info, format dtypes.Format) (bool, error) {
	if info.DataType() != dtypes.InvalidDType {
		return false, nil
	}
	if err := info.SetFormat(format); err != nil {
		return false, err
	}
	return true, nil
}

// SetDataLayoutIfUnknown sets the data layout of info if it's not set yet. It returns whether it was set.
func SetDataLayoutIfUnknown(info Info, layout DataLayout) bool {
	if info.DataLayout() != UnknownDataLayout {
		return false
	}
	info.SetDataLayout(layout)
	return true
}

// SetQuantizationInfoIfEmpty sets the quantization of info if it has none. It returns whether it was set.
func SetQuantizationInfoIfEmpty(info Info, q quantization.Info) bool {
	if !info.QuantizationInfo().IsEmpty() {
		return false
	}
	info.SetQuantizationInfo(q)
	return true
}

// HasHoles returns whether the memory of info is not contiguous up to (and including) axis `dimension`:
// that is, if the stride of some axis differs from the product of the element size and the dimensions
// of the lower axes.
//
// A tensor without holes up to its last axis can be copied in bulk.
func HasHoles(info Info, dimension int) bool {
	shape := info.Shape()
	strides := info.Strides()
	dimension = min(dimension, max(shape.Rank(), 1)-1)
	dense := info.ElementSize()
	for axis := 0; axis <= dimension; axis++ {
		if strides.At(axis) != dense {
			return true
		}
		dense *= shape.Dim(axis)
	}
	return false
}

// HasHolesAll is HasHoles checking all the axes of info.
func HasHolesAll(info Info) bool {
	return HasHoles(info, shapes.MaxDimensions-1)
}

// IntersectValidRegions returns the region that is valid in all the given descriptors.
func IntersectValidRegions(infos ...Info) shapes.ValidRegion {
	regions := make([]shapes.ValidRegion, len(infos))
	for ii, info := range infos {
		regions[ii] = info.ValidRegion()
	}
	return shapes.IntersectValidRegions(regions...)
}
