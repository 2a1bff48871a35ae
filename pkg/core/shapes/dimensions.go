// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package shapes

import (
	"fmt"
	"strings"

	"github.com/gomlx/exceptions"
)

// Coordinates of an element of a tensor, axis 0 first. Axes not listed are 0.
type Coordinates []int

// At returns the coordinate for axis, or 0 if axis is beyond the listed ones.
func (c Coordinates) At(axis int) int {
	if axis < len(c) {
		return c[axis]
	}
	return 0
}

// Set returns the coordinates with axis set to value, growing the list if needed.
func (c Coordinates) Set(axis, value int) Coordinates {
	if axis < 0 || axis >= MaxDimensions {
		exceptions.Panicf("Coordinates.Set(%d): axis out-of-bounds (max %d dimensions)", axis, MaxDimensions)
	}
	for len(c) <= axis {
		c = append(c, 0)
	}
	c[axis] = value
	return c
}

// Clone returns a copy of the coordinates.
func (c Coordinates) Clone() Coordinates {
	if c == nil {
		return nil
	}
	return append(Coordinates(nil), c...)
}

// String implements fmt.Stringer.
func (c Coordinates) String() string {
	return formatInts(c)
}

// Strides holds the byte distance between consecutive elements of each axis, axis 0 first.
type Strides []int

// At returns the stride for axis, or 0 if axis is beyond the listed ones.
func (s Strides) At(axis int) int {
	if axis < len(s) {
		return s[axis]
	}
	return 0
}

// Clone returns a copy of the strides.
func (s Strides) Clone() Strides {
	if s == nil {
		return nil
	}
	return append(Strides(nil), s...)
}

// String implements fmt.Stringer.
func (s Strides) String() string {
	return formatInts(s)
}

// Steps holds the number of elements processed at each iteration of a loop, per axis.
// Axes not listed have step 1.
type Steps []int

// At returns the step for axis, or 1 if axis is beyond the listed ones.
func (s Steps) At(axis int) int {
	if axis < len(s) {
		return s[axis]
	}
	return 1
}

func formatInts[T ~[]int](values T) string {
	parts := make([]string, len(values))
	for ii, v := range values {
		parts[ii] = fmt.Sprintf("%d", v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
