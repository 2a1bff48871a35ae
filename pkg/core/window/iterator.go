// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package window

import (
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/shapes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/tensorinfo"
)

// Iterator tracks the byte offset, into a tensor's buffer, of the current position of an Execute loop.
//
// It's created for one tensor and one window, which may differ from the window driving the loop (for
// instance with broadcast axes), as long as both have the same number of iterations on every
// non-broadcast axis.
type Iterator struct {
	// strides in bytes of one step of each axis.
	strides [shapes.MaxDimensions]int

	// starts holds the offset of the current position at the level of each axis.
	starts [shapes.MaxDimensions]int
}

// NewIterator creates an Iterator over the tensor described by info, positioned at the start of w.
func NewIterator(info tensorinfo.Info, w Window) *Iterator {
	it := &Iterator{}
	strides := info.Strides()
	offset := info.OffsetFirstElement()
	for axis, d := range w.dims {
		it.strides[axis] = d.step * strides.At(axis)
		offset += d.start * strides.At(axis)
	}
	for axis := range it.starts {
		it.starts[axis] = offset
	}
	return it
}

// Offset in bytes, from the start of the buffer, of the current element.
func (it *Iterator) Offset() int {
	return it.starts[0]
}

// increment moves the iterator one step along axis, and resets the lower axes to the new position.
func (it *Iterator) increment(axis int) {
	it.starts[axis] += it.strides[axis]
	for lower := range axis {
		it.starts[lower] = it.starts[axis]
	}
}

// Execute runs the loop nest described by w, highest axis outermost, calling fn with the coordinates of
// each iteration. Iterators are moved along with the loop: inside fn their Offset is the one of the
// current position.
//
// Broadcast axes (step 0) run exactly once, at their start. The coordinates passed to fn are reused
// between calls: clone them if they need to be kept.
func Execute(w Window, fn func(coords shapes.Coordinates), iterators ...*Iterator) {
	coords := make(shapes.Coordinates, shapes.MaxDimensions)
	executeAxis(w, shapes.MaxDimensions-1, coords, fn, iterators)
}

func executeAxis(w Window, axis int, coords shapes.Coordinates, fn func(shapes.Coordinates), iterators []*Iterator) {
	d := w.dims[axis]
	if d.step > 0 && d.start >= d.end {
		return
	}
	for v := d.start; ; v += d.step {
		coords[axis] = v
		if axis == 0 {
			fn(coords)
		} else {
			executeAxis(w, axis-1, coords, fn, iterators)
		}
		if d.step == 0 || v+d.step >= d.end {
			return
		}
		for _, it := range iterators {
			it.increment(axis)
		}
	}
}
