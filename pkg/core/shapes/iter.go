// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package shapes

import (
	"iter"

	"github.com/pkg/errors"
)

// Iter iterates sequentially over all the coordinates of the shape, axis 0 changing fastest.
//
// It yields the flat index (counter) and the coordinates. To avoid allocations the yielded
// coordinates are owned by Iter: don't change them inside the loop, and clone them if they
// need to be kept.
func (s Shape) Iter() iter.Seq2[int, Coordinates] {
	coords := make(Coordinates, max(s.Rank(), 1))
	return s.IterOn(coords)
}

// IterOn is like Iter, but updates the given coordinates, which must have length max(rank, 1).
func (s Shape) IterOn(coords Coordinates) iter.Seq2[int, Coordinates] {
	rank := max(s.Rank(), 1)
	if len(coords) != rank {
		panic(errors.Errorf("Shape.IterOn given len(coords) == %d, want %d for shape %s", len(coords), rank, s))
	}
	return func(yield func(int, Coordinates) bool) {
		if s.IsEmpty() {
			return
		}
		for axis := range coords {
			coords[axis] = 0
		}
		flatIdx := 0
	yielder:
		for {
			if !yield(flatIdx, coords) {
				return
			}
			flatIdx++

			// Increment like a counter, axis 0 first.
			for axis := 0; axis < rank; axis++ {
				coords[axis]++
				if coords[axis] < s.dims[axis] {
					continue yielder
				}
				coords[axis] = 0
			}
			// All axes overflowed: done.
			return
		}
	}
}
