// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package ops

import (
	"math"

	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/cpuinfo"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/dtypes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/kernels"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/quantization"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/shapes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/status"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/tensorinfo"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/tensors"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/window"
	"github.com/x448/float16"
)

// rangeFn writes the values start + (first+i)*step, for i in [0, n), at the byte offset of dst.
type rangeFn func(dst *tensors.Tensor, offset, first, n int, start, step float64)

func rangeGeneric[T number](dst *tensors.Tensor, offset, first, n int, start, step float64) {
	row := rowOf[T](dst, offset, n)
	for ii := range row {
		row[ii] = T(start + float64(first+ii)*step)
	}
}

func rangeFP16(dst *tensors.Tensor, offset, first, n int, start, step float64) {
	row := rowOf[float16.Float16](dst, offset, n)
	for ii := range row {
		row[ii] = float16.Fromfloat32(float32(start + float64(first+ii)*step))
	}
}

type rangeKernel = kernels.Kernel[kernels.DataTypeISASelectorData, rangeFn]

func genericRangeKernel(name string, dtype dtypes.DType, fn rangeFn) rangeKernel {
	return rangeKernel{
		Name:       name,
		IsSelected: func(key kernels.DataTypeISASelectorData) bool { return key.DType == dtype },
		Fn:         fn,
	}
}

// RangeKernels is the registry of Range kernels.
var RangeKernels = kernels.NewRegistry("Range",
	rangeKernel{
		Name: "neon_fp16_range",
		IsSelected: func(key kernels.DataTypeISASelectorData) bool {
			return key.DType == dtypes.F16 && key.ISA.Has(cpuinfo.FP16)
		},
		Fn: rangeFP16,
	},
	genericRangeKernel("range_fp32", dtypes.F32, rangeGeneric[float32]),
	genericRangeKernel("range_fp64", dtypes.F64, rangeGeneric[float64]),
	genericRangeKernel("range_u8", dtypes.U8, rangeGeneric[uint8]),
	genericRangeKernel("range_s8", dtypes.S8, rangeGeneric[int8]),
	genericRangeKernel("range_u16", dtypes.U16, rangeGeneric[uint16]),
	genericRangeKernel("range_s16", dtypes.S16, rangeGeneric[int16]),
	genericRangeKernel("range_u32", dtypes.U32, rangeGeneric[uint32]),
	genericRangeKernel("range_s32", dtypes.S32, rangeGeneric[int32]),
)

// RangeLength returns the number of elements of the range [start, end) with the given step:
// ceil((end - start) / step).
func RangeLength(start, end, step float64) int {
	return int(math.Ceil((end - start) / step))
}

// ValidateRange checks whether Range can be configured. An empty dst is validated as if auto-initialized
// to a 1D tensor of RangeLength elements, of its own data type or Float32 if unknown.
func ValidateRange(cpu *cpuinfo.CPUInfo, dst tensorinfo.Info, start, end, step float64) error {
	return tryValidate("Range", func() error {
		_, err := validateRange(cpu, dst.Clone(), start, end, step)
		return err
	})
}

func validateRange(cpu *cpuinfo.CPUInfo, dst tensorinfo.Info, start, end, step float64) (*rangeKernel, error) {
	if step == 0 {
		return nil, status.Errorf(status.Shape, "step can't be 0")
	}
	if (step > 0 && start >= end) || (step < 0 && start <= end) {
		return nil, status.Errorf(status.Shape, "empty range from %g to %g with step %g", start, end, step)
	}
	length := RangeLength(start, end, step)
	dtype := dst.DataType()
	if dtype == dtypes.InvalidDType {
		dtype = dtypes.F32
	}
	tensorinfo.AutoInitIfEmpty(dst, shapes.Make(length), 1, dtype, quantization.Info{})
	if !dst.Shape().Equal(shapes.Make(length)) {
		return nil, status.Errorf(status.Shape, "output shape %s doesn't match the range length %d", dst.Shape(), length)
	}
	if dst.NumChannels() != 1 {
		return nil, status.Errorf(status.Shape, "range requires a single channel output")
	}
	if lower, limit, ok := integerRange(dtype); ok {
		last := start + float64(length-1)*step
		if min(start, last) < lower || max(start, last) >= limit {
			return nil, status.Errorf(status.Shape, "range from %g to %g doesn't fit in %s", start, last, dtype)
		}
	}
	if err := checkDenseRows(dst); err != nil {
		return nil, err
	}
	return RangeKernels.Select(kernels.DataTypeISASelectorData{DType: dtype, ISA: cpu.Features()})
}

// Range generates the sequence start, start+step, ... up to end (exclusive) in a 1D tensor.
type Range struct {
	operator
}

// NewRange creates a Range operator.
func NewRange(cpu *cpuinfo.CPUInfo) *Range {
	return &Range{operator: newOperator("Range", cpu)}
}

// Configure the operator. An empty dst is auto-initialized to [RangeLength(start, end, step)] elements of
// its data type (Float32 if unknown).
func (op *Range) Configure(dst *tensors.Tensor, start, end, step float64) error {
	if err := ValidateRange(op.cpu, dst.Info(), start, end, step); err != nil {
		return err
	}
	k, err := validateRange(op.cpu, dst.Info(), start, end, step)
	if err != nil {
		return err
	}
	fn := k.Fn
	op.splitAxis = window.DimX
	w := window.FromInfo(dst.Info(), nil)
	op.configured(k.Name, w, func(part window.Window) error {
		x := part.Dim(window.DimX)
		offset, err := dst.Info().OffsetOf(shapes.Coordinates{x.Start()})
		if err != nil {
			return err
		}
		fn(dst, offset, x.Start(), x.End()-x.Start(), start, step)
		return nil
	}, dst)
	return nil
}
