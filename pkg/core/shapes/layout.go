// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package shapes

// Layout is the physical memory layout of a buffer: everything is in bytes.
type Layout struct {
	// Strides per axis. For rank 1 shapes it also includes the stride of the (implicit) Y axis.
	Strides Strides

	// Offset of the first (non-padding) element from the start of the buffer.
	Offset int

	// TotalSize of the buffer, including padding.
	TotalSize int
}

// Defaults for AutoPadding, in elements.
const (
	// AutoPaddingXY is the padding added before and after the X and Y axes.
	AutoPaddingXY = 4

	// AutoPaddingExtraX is added after the X axis: vectorized kernels may process up to this many
	// elements at a time, and read past the last element.
	AutoPaddingExtraX = 32
)

// ComputeLayout returns the byte strides, the offset of the first element and the total size of a buffer
// holding the given shape, with elements of elementSize bytes and the given padding (in elements).
//
// Padding only applies to the X (left/right) and Y (top/bottom) axes: higher axes are packed.
// A shape with no elements has an empty layout (no strides, size 0).
func ComputeLayout(shape Shape, elementSize int, padding PaddingSize) Layout {
	if shape.IsEmpty() {
		return Layout{}
	}
	strideX := elementSize
	strideY := (padding.Left + shape.Dim(0) + padding.Right) * strideX
	strideZ := (padding.Top + shape.Dim(1) + padding.Bottom) * strideY
	layout := Layout{Offset: padding.Left*strideX + padding.Top*strideY}

	rank := shape.Rank()
	switch rank {
	case 0:
		layout.Strides = Strides{strideX}
		layout.TotalSize = strideZ
	case 1, 2:
		layout.Strides = Strides{strideX, strideY}
		layout.TotalSize = strideZ
	default:
		layout.Strides = make(Strides, rank)
		layout.Strides[0], layout.Strides[1], layout.Strides[2] = strideX, strideY, strideZ
		for axis := 3; axis < rank; axis++ {
			layout.Strides[axis] = shape.Dim(axis-1) * layout.Strides[axis-1]
		}
		layout.TotalSize = shape.Dim(rank-1) * layout.Strides[rank-1]
	}
	return layout
}

// DenseStrides returns the strides of a packed (no padding) buffer holding shape. The strides of the
// first axes can be fixed by the caller: the remaining ones are derived from the shape and the
// previous strides.
func DenseStrides(shape Shape, elementSize int, fixed ...int) Strides {
	rank := max(shape.Rank(), len(fixed), 1)
	strides := make(Strides, rank)
	strides[0] = elementSize
	copy(strides, fixed)
	for axis := max(len(fixed), 1); axis < rank; axis++ {
		strides[axis] = shape.Dim(axis-1) * strides[axis-1]
	}
	return strides
}

// ExtendPadding returns the side-by-side maximum of the current and requested paddings, and whether
// any side grew.
func ExtendPadding(current, requested PaddingSize) (PaddingSize, bool) {
	extended := current.Union(requested)
	return extended, extended != current
}

// AutoPadding returns a conservative default padding for a shape whose consumers are not known yet:
// AutoPaddingXY elements around the Y axis (if there is a Y axis), and AutoPaddingXY before plus
// AutoPaddingXY+AutoPaddingExtraX after the X axis (if there is an X axis).
func AutoPadding(shape Shape) PaddingSize {
	rank := shape.Rank()
	var p PaddingSize
	if rank >= 1 {
		p.Left = AutoPaddingXY
		p.Right = AutoPaddingXY + AutoPaddingExtraX
	}
	if rank >= 2 {
		p.Top = AutoPaddingXY
		p.Bottom = AutoPaddingXY
	}
	return p
}
