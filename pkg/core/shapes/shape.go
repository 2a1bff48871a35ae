// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package shapes defines the tensor Shape and the other per-dimension value types (Coordinates,
// Strides, Steps), the padding and valid-region types, and the padding engine that derives the
// physical memory layout (byte strides, first element offset and total size) of a buffer.
//
// ## Glossary
//
//   - Rank (or number of dimensions): number of axes of a tensor, at most MaxDimensions.
//   - Dimension: the number of elements along one axis. Axis 0 is the innermost one (X, the
//     fastest changing in memory), axis 1 is Y, axis 2 is Z, and so on.
//   - Stride: distance in bytes between two consecutive elements along one axis.
//   - Padding: extra elements reserved around the X and Y axes of the data, so vectorized code
//     can over-read (or over-write) past the logical edges.
//
// Example: a 2D tensor with 10 columns and 3 rows has shape [10 3]: axis 0 has dimension 10, and
// axis 1 has dimension 3. It could be created with `shapes.Make(10, 3)`.
//
// Dimensions beyond the rank are implicitly 1, and trailing dimensions of size 1 are dropped by
// Make: so `shapes.Make(10, 1)` has rank 1.
package shapes

import (
	"fmt"
	"strings"

	"github.com/gomlx/exceptions"
)

// MaxDimensions is the maximum rank of a Shape (and of any other per-dimension value).
const MaxDimensions = 6

// Shape holds the dimensions of a tensor, with axis 0 being the innermost one.
//
// The zero value is the "empty" shape: rank 0 and total size 0. It's used to mark descriptors
// that were not initialized yet (see tensorinfo.AutoInitIfEmpty).
//
// Shape is a value type: methods that change it return a modified copy.
type Shape struct {
	dims [MaxDimensions]int
	rank int
}

// Make returns a Shape with the given dimensions, axis 0 first.
//
// Dimensions beyond the ones given are set to 1, and trailing dimensions equal to 1 are not counted
// in the rank (but at least one dimension is kept). Calling it without dimensions returns the empty shape.
//
// It panics for more than MaxDimensions dimensions or negative dimensions.
func Make(dimensions ...int) Shape {
	if len(dimensions) > MaxDimensions {
		exceptions.Panicf("shapes.Make(%v): at most %d dimensions are supported", dimensions, MaxDimensions)
	}
	var s Shape
	if len(dimensions) == 0 {
		return s
	}
	for axis, dim := range dimensions {
		if dim < 0 {
			exceptions.Panicf("shapes.Make(%v): axis %d has negative dimension", dimensions, axis)
		}
		s.dims[axis] = dim
	}
	for axis := len(dimensions); axis < MaxDimensions; axis++ {
		s.dims[axis] = 1
	}
	s.rank = len(dimensions)
	s.correct()
	return s
}

// Scalar returns the shape of a scalar: rank 0, but with one element (all implicit dimensions are 1).
func Scalar() Shape {
	var s Shape
	for axis := range s.dims {
		s.dims[axis] = 1
	}
	return s
}

// correct drops trailing dimensions of size 1, keeping at least one.
func (s *Shape) correct() {
	for s.rank > 1 && s.dims[s.rank-1] == 1 {
		s.rank--
	}
}

// Rank returns the number of dimensions of the shape.
func (s Shape) Rank() int { return s.rank }

// NumDimensions is an alias to Rank.
func (s Shape) NumDimensions() int { return s.rank }

// Dim returns the dimension of the given axis.
//
// Axes beyond the rank (and below MaxDimensions) are valid, and return 1 for a non-empty shape.
// Negative axes count from the end of the rank, so -1 refers to the last axis.
func (s Shape) Dim(axis int) int {
	adjustedAxis := axis
	if adjustedAxis < 0 {
		adjustedAxis += s.rank
	}
	if adjustedAxis < 0 || adjustedAxis >= MaxDimensions {
		exceptions.Panicf("Shape.Dim(%d) out-of-bounds for rank %d (shape=%s)", axis, s.rank, s)
	}
	return s.dims[adjustedAxis]
}

// Dimensions returns a copy of the dimensions up to the rank.
func (s Shape) Dimensions() []int {
	dims := make([]int, s.rank)
	copy(dims, s.dims[:s.rank])
	return dims
}

// TotalSize returns the number of elements of the shape: 0 for the empty shape, 1 for a scalar.
func (s Shape) TotalSize() int {
	size := 1
	for _, dim := range s.dims {
		size *= dim
	}
	return size
}

// TotalSizeUpper returns the number of elements from axis `first` (inclusive) onwards.
func (s Shape) TotalSizeUpper(first int) int {
	size := 1
	for axis := first; axis < MaxDimensions; axis++ {
		size *= s.dims[axis]
	}
	return size
}

// TotalSizeLower returns the number of elements of the axes below `last` (exclusive).
func (s Shape) TotalSizeLower(last int) int {
	size := 1
	for axis := 0; axis < last && axis < MaxDimensions; axis++ {
		size *= s.dims[axis]
	}
	return size
}

// IsEmpty returns whether the shape has no elements.
func (s Shape) IsEmpty() bool {
	return s.TotalSize() == 0
}

// IsScalar returns whether the shape has rank 0 and exactly one element.
func (s Shape) IsScalar() bool {
	return s.rank == 0 && s.TotalSize() == 1
}

// Set returns a copy of the shape with the given axis set to value.
//
// Setting a dimension to 0 clears the whole shape (it becomes the empty shape). If applyCorrection is
// true, trailing dimensions of size 1 are dropped from the rank afterwards.
func (s Shape) Set(axis, value int, applyCorrection bool) Shape {
	if axis < 0 || axis >= MaxDimensions {
		exceptions.Panicf("Shape.Set(%d, %d): axis out-of-bounds (max %d dimensions)", axis, value, MaxDimensions)
	}
	if value < 0 {
		exceptions.Panicf("Shape.Set(%d, %d): negative dimension", axis, value)
	}
	if value == 0 {
		return Shape{}
	}
	for ii := s.rank; ii < MaxDimensions; ii++ {
		s.dims[ii] = 1
	}
	s.dims[axis] = value
	s.rank = max(s.rank, axis+1)
	if applyCorrection {
		s.correct()
	}
	return s
}

// Collapse returns a copy of the shape where the n axes starting at `first` are merged into one
// axis (axis `first`), and the following axes shifted down.
func (s Shape) Collapse(n, first int) Shape {
	if first < 0 || n < 0 || first+n > MaxDimensions {
		exceptions.Panicf("Shape.Collapse(%d, %d): out-of-bounds for %d dimensions", n, first, MaxDimensions)
	}
	last := min(s.rank, first+n)
	if last <= first+1 {
		return s
	}
	collapsed := 1
	for axis := first; axis < last; axis++ {
		collapsed *= s.dims[axis]
	}
	out := Scalar()
	copy(out.dims[:first], s.dims[:first])
	out.dims[first] = collapsed
	copy(out.dims[first+1:], s.dims[last:s.rank])
	out.rank = s.rank - (last - first - 1)
	return out
}

// CollapsedFrom returns a copy of the shape with all axes from `first` onwards merged into one.
func (s Shape) CollapsedFrom(first int) Shape {
	return s.Collapse(s.rank-first, first)
}

// RemoveDimension returns a copy of the shape without the given axis.
func (s Shape) RemoveDimension(axis int) Shape {
	if axis < 0 || axis >= s.rank {
		exceptions.Panicf("Shape.RemoveDimension(%d): axis out-of-bounds for rank %d", axis, s.rank)
	}
	out := Scalar()
	copy(out.dims[:axis], s.dims[:axis])
	copy(out.dims[axis:], s.dims[axis+1:s.rank])
	out.rank = s.rank - 1
	out.correct()
	return out
}

// Equal compares two shapes, including their rank.
func (s Shape) Equal(s2 Shape) bool {
	return s == s2
}

// String implements fmt.Stringer. The empty shape is printed as "[]" and the scalar as "()".
func (s Shape) String() string {
	if s.IsEmpty() && s.rank == 0 {
		return "[]"
	}
	if s.rank == 0 {
		return "()"
	}
	parts := make([]string, s.rank)
	for axis := range s.rank {
		parts[axis] = fmt.Sprintf("%d", s.dims[axis])
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// BroadcastShape returns the shape resulting from broadcasting all the given shapes together:
// for each axis all dimensions must be equal, or 1.
//
// It returns the empty shape if the shapes are not compatible or if any of them is empty.
func BroadcastShape(shapes ...Shape) Shape {
	if len(shapes) == 0 {
		return Shape{}
	}
	out := shapes[0]
	if out.IsEmpty() {
		return Shape{}
	}
	for _, s := range shapes[1:] {
		if s.IsEmpty() {
			return Shape{}
		}
		for axis := range MaxDimensions {
			dim0, dim1 := out.dims[axis], s.dims[axis]
			switch {
			case dim0 == dim1:
			case dim0 == 1:
				out.dims[axis] = dim1
			case dim1 == 1:
			default:
				return Shape{}
			}
		}
		out.rank = max(out.rank, s.rank)
	}
	out.correct()
	return out
}
