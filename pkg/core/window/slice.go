// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package window

import (
	"iter"

	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/shapes"
	"github.com/gomlx/exceptions"
)

// FirstSliceWindow returns the first slice of the window for engines that iterate over `numDims`
// axes at a time: the lower numDims axes are kept, and each higher axis is set to a single
// iteration at its start.
//
// Use SlideWindowSlice to move to the following slices.
func (w Window) FirstSliceWindow(numDims int) Window {
	if numDims < 1 || numDims > shapes.MaxDimensions {
		exceptions.Panicf("Window.FirstSliceWindow(%d): invalid number of dimensions", numDims)
	}
	slice := w
	for axis := numDims; axis < shapes.MaxDimensions; axis++ {
		start := w.dims[axis].start
		slice.dims[axis] = NewDimension(start, start+1, 1)
	}
	return slice
}

// SlideWindowSlice moves slice (created with FirstSliceWindow(numDims)) to the next slice of the window,
// counting over the higher axes like an odometer (numDims first).
//
// It returns the next slice and true, or false when all slices have been visited.
func (w Window) SlideWindowSlice(numDims int, slice Window) (Window, bool) {
	for axis := numDims; axis < shapes.MaxDimensions; axis++ {
		d := w.dims[axis]
		next := slice.dims[axis].start + max(d.step, 1)
		if next < d.end {
			slice.dims[axis] = NewDimension(next, next+1, 1)
			return slice, true
		}
		// Axis exhausted: reset it and carry over to the next axis.
		slice.dims[axis] = NewDimension(d.start, d.start+1, 1)
	}
	return slice, false
}

// FirstSliceWindow1D is FirstSliceWindow(1).
func (w Window) FirstSliceWindow1D() Window { return w.FirstSliceWindow(1) }

// FirstSliceWindow2D is FirstSliceWindow(2).
func (w Window) FirstSliceWindow2D() Window { return w.FirstSliceWindow(2) }

// FirstSliceWindow3D is FirstSliceWindow(3).
func (w Window) FirstSliceWindow3D() Window { return w.FirstSliceWindow(3) }

// FirstSliceWindow4D is FirstSliceWindow(4).
func (w Window) FirstSliceWindow4D() Window { return w.FirstSliceWindow(4) }

// SlideWindowSlice1D is SlideWindowSlice(1, slice).
func (w Window) SlideWindowSlice1D(slice Window) (Window, bool) { return w.SlideWindowSlice(1, slice) }

// SlideWindowSlice2D is SlideWindowSlice(2, slice).
func (w Window) SlideWindowSlice2D(slice Window) (Window, bool) { return w.SlideWindowSlice(2, slice) }

// SlideWindowSlice3D is SlideWindowSlice(3, slice).
func (w Window) SlideWindowSlice3D(slice Window) (Window, bool) { return w.SlideWindowSlice(3, slice) }

// SlideWindowSlice4D is SlideWindowSlice(4, slice).
func (w Window) SlideWindowSlice4D(slice Window) (Window, bool) { return w.SlideWindowSlice(4, slice) }

// Slices iterates over all the slices of the window with numDims axes.
func (w Window) Slices(numDims int) iter.Seq[Window] {
	return func(yield func(Window) bool) {
		if w.NumIterationsTotal() == 0 {
			return
		}
		slice := w.FirstSliceWindow(numDims)
		for more := true; more; slice, more = w.SlideWindowSlice(numDims, slice) {
			if !yield(slice) {
				return
			}
		}
	}
}
