// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package tensorinfo

import (
	"strconv"

	"github.com/gomlx/exceptions"
)

// DataLayout tags the order in which the logical (width, height, channel, ...) dimensions are stored,
// axis 0 (innermost) first.
type DataLayout int

const (
	// UnknownDataLayout is the zero value.
	UnknownDataLayout DataLayout = iota

	// NCHW is channel-first: width is axis 0, height axis 1, channel axis 2, batches axis 3.
	NCHW

	// NHWC is channel-last: channel is axis 0, width axis 1, height axis 2, batches axis 3.
	NHWC

	// NCDHW is the 3D channel-first layout.
	NCDHW

	// NDHWC is the 3D channel-last layout.
	NDHWC
)

// String implements fmt.Stringer.
func (l DataLayout) String() string {
	switch l {
	case UnknownDataLayout:
		return "UNKNOWN"
	case NCHW:
		return "NCHW"
	case NHWC:
		return "NHWC"
	case NCDHW:
		return "NCDHW"
	case NDHWC:
		return "NDHWC"
	}
	return "DataLayout(" + strconv.Itoa(int(l)) + ")"
}

// LayoutDimension names a logical dimension of an image-like tensor.
type LayoutDimension int

const (
	Width LayoutDimension = iota
	Height
	Depth
	Channel
	Batches
)

// DimensionIndex returns the axis holding the logical dimension for the given layout.
//
// It panics for UnknownDataLayout, or for Depth on a 2D layout.
func (l DataLayout) DimensionIndex(dim LayoutDimension) int {
	switch l {
	case NCHW:
		switch dim {
		case Width:
			return 0
		case Height:
			return 1
		case Channel:
			return 2
		case Batches:
			return 3
		}
	case NHWC:
		switch dim {
		case Channel:
			return 0
		case Width:
			return 1
		case Height:
			return 2
		case Batches:
			return 3
		}
	case NCDHW:
		switch dim {
		case Width:
			return 0
		case Height:
			return 1
		case Depth:
			return 2
		case Channel:
			return 3
		case Batches:
			return 4
		}
	case NDHWC:
		switch dim {
		case Channel:
			return 0
		case Width:
			return 1
		case Height:
			return 2
		case Depth:
			return 3
		case Batches:
			return 4
		}
	}
	exceptions.Panicf("data layout %s has no dimension %d", l, dim)
	panic(nil)
}
