// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package window describes multi-dimensional loop nests: a Window holds, for each axis, the start, end
// (exclusive) and step of the loop over that axis.
//
// Windows are derived from a tensor descriptor (FromInfo, CalculateMaxWindow) but don't refer to any
// buffer, so they can be sliced, collapsed, split and shifted freely. Windows are values: all methods
// return modified copies, so they can be shared by concurrent workers.
//
// Iterator and Execute implement the loop over a window, keeping track of byte offsets into the
// buffers of one or more tensors.
package window

import (
	"fmt"
	"strings"

	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/shapes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/status"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/tensorinfo"
	"github.com/gomlx/exceptions"
)

// Common axes names.
const (
	DimX = 0
	DimY = 1
	DimZ = 2
	DimW = 3
)

// Dimension is the loop over one axis: from Start to End (exclusive), moving Step elements at a time.
//
// A Step of 0 marks a broadcast dimension: the loop runs exactly once, at Start, and iterators don't move.
type Dimension struct {
	start, end, step int
}

// NewDimension creates a Dimension.
func NewDimension(start, end, step int) Dimension {
	return Dimension{start: start, end: end, step: step}
}

// DefaultDimension is the loop over a single element: (0, 1, 1).
func DefaultDimension() Dimension {
	return Dimension{start: 0, end: 1, step: 1}
}

// Start of the loop.
func (d Dimension) Start() int { return d.start }

// End (exclusive) of the loop.
func (d Dimension) End() int { return d.end }

// Step of the loop.
func (d Dimension) Step() int { return d.step }

// NumIterations of the loop: 1 for broadcast (Step == 0) dimensions.
func (d Dimension) NumIterations() int {
	if d.step == 0 {
		return 1
	}
	if d.end <= d.start {
		return 0
	}
	return (d.end - d.start + d.step - 1) / d.step
}

// String implements fmt.Stringer.
func (d Dimension) String() string {
	return fmt.Sprintf("(%d, %d, %d)", d.start, d.end, d.step)
}

// Window is a loop nest over up to shapes.MaxDimensions axes, axis 0 being the innermost loop.
//
// Use New to create one: the zero value has empty (0, 0, 0) dimensions.
type Window struct {
	dims [shapes.MaxDimensions]Dimension
}

// New returns a Window with all dimensions set to DefaultDimension: it iterates once.
func New() Window {
	var w Window
	for axis := range w.dims {
		w.dims[axis] = DefaultDimension()
	}
	return w
}

func checkAxis(axis int) {
	if axis < 0 || axis >= shapes.MaxDimensions {
		exceptions.Panicf("window axis %d out-of-bounds (max %d dimensions)", axis, shapes.MaxDimensions)
	}
}

// Dim returns the Dimension for the given axis.
func (w Window) Dim(axis int) Dimension {
	checkAxis(axis)
	return w.dims[axis]
}

// Set returns a copy of the window with the given axis set to d.
func (w Window) Set(axis int, d Dimension) Window {
	checkAxis(axis)
	w.dims[axis] = d
	return w
}

// SetStep returns a copy of the window with the step of the given axis changed.
func (w Window) SetStep(axis, step int) Window {
	checkAxis(axis)
	w.dims[axis].step = step
	return w
}

// Shift returns a copy of the window with start and end of axis moved by shift.
func (w Window) Shift(axis, shift int) Window {
	checkAxis(axis)
	w.dims[axis].start += shift
	w.dims[axis].end += shift
	return w
}

// Adjust returns a copy of the window with either the start (if atStart) or the end of axis moved by adjust.
func (w Window) Adjust(axis, adjust int, atStart bool) Window {
	checkAxis(axis)
	if atStart {
		w.dims[axis].start += adjust
	} else {
		w.dims[axis].end += adjust
	}
	return w
}

// NumIterations returns the number of iterations of the loop over the given axis.
func (w Window) NumIterations(axis int) int {
	return w.Dim(axis).NumIterations()
}

// NumIterationsTotal returns the total number of iterations of the loop nest.
func (w Window) NumIterationsTotal() int {
	total := 1
	for _, d := range w.dims {
		total *= d.NumIterations()
	}
	return total
}

// Equal compares two windows.
func (w Window) Equal(other Window) bool {
	return w == other
}

// String implements fmt.Stringer.
func (w Window) String() string {
	parts := make([]string, len(w.dims))
	for axis, d := range w.dims {
		parts[axis] = d.String()
	}
	return "Window{" + strings.Join(parts, " ") + "}"
}

// Validate checks that, for every axis, start <= end, the step is not negative and, for non-broadcast
// axes, end - start is a multiple of the step. It returns a status.Window error otherwise.
func (w Window) Validate() error {
	for axis, d := range w.dims {
		if d.end < d.start {
			return status.Errorf(status.Window, "axis %d of %s: end (%d) < start (%d)", axis, w, d.end, d.start)
		}
		if d.step < 0 {
			return status.Errorf(status.Window, "axis %d of %s: negative step %d", axis, w, d.step)
		}
		if d.step != 0 && (d.end-d.start)%d.step != 0 {
			return status.Errorf(status.Window, "axis %d of %s: size %d is not a multiple of step %d",
				axis, w, d.end-d.start, d.step)
		}
	}
	return nil
}

// ValidateSubwindow checks that sub is within full: for every axis sub.start >= full.start,
// sub.end <= full.end, and sub.step is a multiple of full.step. It returns a status.Window error otherwise.
func ValidateSubwindow(full, sub Window) error {
	for axis := range full.dims {
		f, s := full.dims[axis], sub.dims[axis]
		if s.start < f.start || s.end > f.end {
			return status.Errorf(status.Window, "axis %d: sub-window %s outside of window %s", axis, s, f)
		}
		if f.step == 0 {
			if s.step != 0 {
				return status.Errorf(status.Window, "axis %d: sub-window step %d on broadcast axis", axis, s.step)
			}
			continue
		}
		if s.step%f.step != 0 {
			return status.Errorf(status.Window, "axis %d: sub-window step %d not a multiple of window step %d",
				axis, s.step, f.step)
		}
	}
	return nil
}

// FromInfo returns the window over all elements of the tensor: for each axis in the rank,
// (0, shape[axis], steps[axis]), and the DefaultDimension for the other axes.
//
// Steps default to 1 for axes not given. The caller is responsible for the shape being a multiple of
// the steps (see CalculateMaxWindow otherwise).
func FromInfo(info tensorinfo.Info, steps shapes.Steps) Window {
	return FromShape(info.Shape(), steps)
}

// FromShape is like FromInfo, but takes the shape directly.
func FromShape(shape shapes.Shape, steps shapes.Steps) Window {
	w := New()
	for axis := range shape.Rank() {
		w.dims[axis] = NewDimension(0, shape.Dim(axis), steps.At(axis))
	}
	return w
}

func ceilToMultiple(value, multiple int) int {
	if multiple <= 1 {
		return value
	}
	return ((value + multiple - 1) / multiple) * multiple
}

// CalculateMaxWindow returns the window covering the valid region, with the X and Y ends rounded up to
// a multiple of their steps. If skipBorder is set, the border is excluded from the X and Y axes.
//
// Rounding up means the loop may process elements past the valid region: the tensors must have enough
// padding to accommodate that.
func CalculateMaxWindow(region shapes.ValidRegion, steps shapes.Steps, skipBorder bool, border shapes.BorderSize) Window {
	if !skipBorder {
		border = shapes.BorderSize{}
	}
	w := New()
	rank := max(region.Shape.Rank(), 1)
	start := region.Start(DimX) + border.Left
	size := max(0, region.Shape.Dim(DimX)-border.Left-border.Right)
	w.dims[DimX] = NewDimension(start, start+ceilToMultiple(size, steps.At(DimX)), steps.At(DimX))
	if rank > 1 {
		start = region.Start(DimY) + border.Top
		size = max(0, region.Shape.Dim(DimY)-border.Top-border.Bottom)
		w.dims[DimY] = NewDimension(start, start+ceilToMultiple(size, steps.At(DimY)), steps.At(DimY))
	}
	for axis := 2; axis < rank; axis++ {
		start = region.Start(axis)
		w.dims[axis] = NewDimension(start, start+max(1, region.Shape.Dim(axis)), steps.At(axis))
	}
	return w
}

// BroadcastIfDimensionLE1 returns a copy of the window where every axis with dimension <= 1 in the
// shape becomes a broadcast dimension (0, 0, 0): iterators over it don't move.
func (w Window) BroadcastIfDimensionLE1(shape shapes.Shape) Window {
	for axis := range w.dims {
		if shape.Dim(axis) <= 1 {
			w.dims[axis] = Dimension{}
		}
	}
	return w
}

// CollapseIfPossible merges the axes from `first` onwards into axis `first`, if doing so visits exactly
// the same elements: the merged axes (and the axis `first`) must start at 0 and match the full window's
// end, and the higher axes can't have steps > 1. Broadcast axes count as one iteration, and an empty
// higher axis prevents the collapse.
//
// It returns the collapsed window and true, or the unchanged window and false.
func (w Window) CollapseIfPossible(full Window, first int) (Window, bool) {
	checkAxis(first)
	d := w.dims[first]
	if d.start != 0 || full.dims[first].start != 0 || d.end != full.dims[first].end || d.step == 0 {
		return w, false
	}
	collapsedEnd := d.end
	for axis := first + 1; axis < shapes.MaxDimensions; axis++ {
		d := w.dims[axis]
		if d.start != 0 || full.dims[axis].start != 0 || d.step > 1 || full.dims[axis].end != d.end {
			return w, false
		}
		if d.step == 0 {
			continue
		}
		if d.end == 0 {
			return w, false
		}
		collapsedEnd *= d.end
	}
	collapsed := w
	collapsed.dims[first].end = collapsedEnd
	for axis := first + 1; axis < shapes.MaxDimensions; axis++ {
		collapsed.dims[axis] = DefaultDimension()
	}
	return collapsed, true
}

// Collapse is CollapseIfPossible using the window itself as the full window.
func (w Window) Collapse(first int) (Window, bool) {
	return w.CollapseIfPossible(w, first)
}

// Split returns the part `id` of `total` disjoint parts of the window along axis: the iterations of the
// axis are distributed as evenly as possible, and the parts cover the whole window.
func (w Window) Split(axis, id, total int) Window {
	checkAxis(axis)
	if total <= 0 || id < 0 || id >= total {
		exceptions.Panicf("Window.Split(%d, %d, %d): invalid part", axis, id, total)
	}
	d := w.dims[axis]
	if d.step == 0 {
		if id != 0 {
			w.dims[axis] = NewDimension(d.start, d.start, 0)
		}
		return w
	}
	numIterations := d.NumIterations()
	work := numIterations / total
	remainder := numIterations % total
	var startIteration int
	if id < remainder {
		work++
		startIteration = id * work
	} else {
		startIteration = remainder*(work+1) + (id-remainder)*work
	}
	start := min(d.start+startIteration*d.step, d.end)
	end := min(d.end, start+work*d.step)
	if id == total-1 {
		end = d.end
	}
	w.dims[axis] = NewDimension(start, end, d.step)
	return w
}
