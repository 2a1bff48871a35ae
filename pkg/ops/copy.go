// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package ops

import (
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/cpuinfo"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/dtypes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/kernels"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/shapes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/status"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/tensorinfo"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/tensors"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/window"
)

// CopySelectorData selects the kernels that move elements between tensors of the same data type:
// used by Copy and Reshape.
type CopySelectorData struct {
	DType dtypes.DType
	ISA   cpuinfo.Features

	// Contiguous is set if neither tensor has holes: the data is a single block of bytes.
	Contiguous bool

	// SameShape is set if source and destination have the same shape.
	SameShape bool

	// DenseRows is set if the elements along X are adjacent in memory in both tensors.
	DenseRows bool
}

// copyKernel is the implementation of a copy kernel: how to build its window, and how to run a part of it.
type copyKernel struct {
	// window returns the execution window and the axis to split it along.
	window func(src, dst tensorinfo.Info) (window.Window, int)
	run    func(src, dst *tensors.Tensor, part window.Window)
}

// CopyKernels is the registry of copy kernels.
var CopyKernels = kernels.NewRegistry("Copy",
	kernels.Kernel[CopySelectorData, copyKernel]{
		Name:       "contiguous_copy",
		IsSelected: func(key CopySelectorData) bool { return key.Contiguous },
		Fn:         copyKernel{window: contiguousCopyWindow, run: contiguousCopy},
	},
	kernels.Kernel[CopySelectorData, copyKernel]{
		Name:       "row_copy",
		IsSelected: func(key CopySelectorData) bool { return key.SameShape && key.DenseRows },
		Fn:         copyKernel{window: rowCopyWindow, run: rowCopy},
	},
	kernels.Kernel[CopySelectorData, copyKernel]{
		Name:       "element_copy",
		IsSelected: func(CopySelectorData) bool { return true },
		Fn:         copyKernel{window: elementCopyWindow, run: elementCopy},
	},
)

func copySelectorData(cpu *cpuinfo.CPUInfo, src, dst tensorinfo.Info) CopySelectorData {
	return CopySelectorData{
		DType:      src.DataType(),
		ISA:        cpu.Features(),
		Contiguous: !tensorinfo.HasHolesAll(src) && !tensorinfo.HasHolesAll(dst),
		SameShape:  src.Shape().Equal(dst.Shape()),
		DenseRows:  checkDenseRows(src, dst) == nil,
	}
}

// contiguousCopyWindow is a 1D window over the bytes of the tensor, split along X.
func contiguousCopyWindow(src, _ tensorinfo.Info) (window.Window, int) {
	numBytes := src.Shape().TotalSize() * src.ElementSize()
	return window.New().Set(window.DimX, window.NewDimension(0, numBytes, 1)), window.DimX
}

func contiguousCopy(src, dst *tensors.Tensor, part window.Window) {
	x := part.Dim(window.DimX)
	srcStart := src.Info().OffsetFirstElement() + x.Start()
	dstStart := dst.Info().OffsetFirstElement() + x.Start()
	copy(dst.Buffer()[dstStart:dstStart+x.End()-x.Start()], src.Buffer()[srcStart:])
}

// rowCopyWindow is the loop over the rows of the tensors.
func rowCopyWindow(src, dst tensorinfo.Info) (window.Window, int) {
	w := window.CalculateMaxWindow(shapes.FullValidRegion(src.Shape()), nil, false, shapes.BorderSize{})
	return collapseOuterAxes(w, src, dst), splitLargest
}

func rowCopy(src, dst *tensors.Tensor, part window.Window) {
	loop, n := splitRows(part)
	rowBytes := n * src.Info().ElementSize()
	srcIt := window.NewIterator(src.Info(), loop)
	dstIt := window.NewIterator(dst.Info(), loop)
	window.Execute(loop, func(shapes.Coordinates) {
		copy(dst.Buffer()[dstIt.Offset():dstIt.Offset()+rowBytes], src.Buffer()[srcIt.Offset():])
	}, srcIt, dstIt)
}

// elementCopyWindow is a 1D window over the linear index of the elements, split along X.
func elementCopyWindow(src, _ tensorinfo.Info) (window.Window, int) {
	return window.New().Set(window.DimX, window.NewDimension(0, src.Shape().TotalSize(), 1)), window.DimX
}

// elementCopy copies the elements with the given linear indices (axis 0 changing fastest), which maps
// source and destination elements in order even when their shapes differ.
func elementCopy(src, dst *tensors.Tensor, part window.Window) {
	srcInfo, dstInfo := src.Info(), dst.Info()
	elementSize := srcInfo.ElementSize()
	x := part.Dim(window.DimX)
	for idx := x.Start(); idx < x.End(); idx++ {
		srcOffset := elementOffset(srcInfo, idx)
		dstOffset := elementOffset(dstInfo, idx)
		copy(dst.Buffer()[dstOffset:dstOffset+elementSize], src.Buffer()[srcOffset:srcOffset+elementSize])
	}
}

// elementOffset returns the byte offset of the element with the given linear index.
func elementOffset(info *tensorinfo.TensorInfo, idx int) int {
	shape := info.Shape()
	strides := info.Strides()
	offset := info.OffsetFirstElement()
	for axis := range max(shape.Rank(), 1) {
		dim := shape.Dim(axis)
		offset += (idx % dim) * strides.At(axis)
		idx /= dim
	}
	return offset
}

// ValidateCopy checks whether Copy can be configured with the given descriptors. An empty dst is
// validated as if auto-initialized from src.
func ValidateCopy(cpu *cpuinfo.CPUInfo, src, dst tensorinfo.Info) error {
	return tryValidate("Copy", func() error {
		dst = dst.Clone()
		tensorinfo.AutoInitIfEmptyFrom(dst, src)
		return validateCopy(cpu, src, dst)
	})
}

func validateCopy(cpu *cpuinfo.CPUInfo, src, dst tensorinfo.Info) error {
	if err := tensorinfo.CheckInitialized(src); err != nil {
		return err
	}
	if err := tensorinfo.CheckMismatchingShapes(src, dst); err != nil {
		return err
	}
	if err := tensorinfo.CheckMismatchingDataTypes(src, dst); err != nil {
		return err
	}
	if src.NumChannels() != dst.NumChannels() {
		return status.Errorf(status.Shape, "mismatching number of channels: %d != %d", src.NumChannels(), dst.NumChannels())
	}
	_, err := CopyKernels.Select(copySelectorData(cpu, src, dst))
	return err
}

// Copy copies a tensor into another one with the same shape and data type, possibly with a different
// padding or strides.
type Copy struct {
	operator
}

// NewCopy creates a Copy operator.
func NewCopy(cpu *cpuinfo.CPUInfo) *Copy {
	return &Copy{operator: newOperator("Copy", cpu)}
}

// Configure the operator. An empty dst is auto-initialized from src.
func (op *Copy) Configure(src, dst *tensors.Tensor) error {
	if err := ValidateCopy(op.cpu, src.Info(), dst.Info()); err != nil {
		return err
	}
	tensorinfo.AutoInitIfEmptyFrom(dst.Info(), src.Info())
	return op.configureKernel(src, dst)
}

// configureKernel selects the copy kernel and the window. It's shared with Reshape.
func (op *operator) configureKernel(src, dst *tensors.Tensor) error {
	k, err := CopyKernels.Select(copySelectorData(op.cpu, src.Info(), dst.Info()))
	if err != nil {
		return err
	}
	// The kernel and its window depend on the layouts, which can't change anymore.
	src.Info().SetLockPaddings(true)
	dst.Info().SetLockPaddings(true)
	w, splitAxis := k.Fn.window(src.Info(), dst.Info())
	op.splitAxis = splitAxis
	run := k.Fn.run
	op.configured(k.Name, w, func(part window.Window) error {
		run(src, dst, part)
		return nil
	}, src, dst)
	return nil
}
