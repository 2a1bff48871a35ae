// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package shapes

import "github.com/pkg/errors"

// Index2Coords converts a linear index (axis 0 changing fastest) into coordinates of the shape.
func Index2Coords(shape Shape, index int) (Coordinates, error) {
	numElements := shape.TotalSize()
	if numElements == 0 {
		return nil, errors.Errorf("cannot create coordinates from empty shape")
	}
	if index < 0 || index >= numElements {
		return nil, errors.Errorf("index %d out of range [0, %d) for shape %s", index, numElements, shape)
	}
	coords := make(Coordinates, max(shape.Rank(), 1))
	for axis := shape.Rank() - 1; axis >= 0; axis-- {
		numElements /= shape.Dim(axis)
		coords[axis] = index / numElements
		index %= numElements
	}
	return coords, nil
}

// Coords2Index converts coordinates of the shape into a linear index (axis 0 changing fastest).
func Coords2Index(shape Shape, coords Coordinates) (int, error) {
	if shape.IsEmpty() {
		return 0, errors.Errorf("cannot convert coordinates %s of empty shape", coords)
	}
	if len(coords) > MaxDimensions {
		return 0, errors.Errorf("coordinates %s have more than %d dimensions", coords, MaxDimensions)
	}
	index := 0
	stride := 1
	for axis := range MaxDimensions {
		c := coords.At(axis)
		if c < 0 || c >= shape.Dim(axis) {
			return 0, errors.Errorf("coordinates %s out of range for shape %s", coords, shape)
		}
		index += c * stride
		stride *= shape.Dim(axis)
	}
	return index, nil
}
