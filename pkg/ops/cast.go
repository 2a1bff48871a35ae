// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package ops

import (
	"math"
	"slices"

	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/cpuinfo"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/dtypes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/dtypes/bfloat16"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/kernels"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/shapes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/status"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/tensorinfo"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/tensors"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/window"
	"github.com/x448/float16"
)

// castArgs are the operands of a configured Cast.
type castArgs struct {
	src, dst *tensors.Tensor
	load     func(t *tensors.Tensor, offset, n int) []float64
	store    func(t *tensors.Tensor, offset int, values []float64)
}

// castFn converts one row of n elements, given the byte offsets of the row in each tensor.
type castFn func(args *castArgs, srcOffset, dstOffset, n int)

// loadRow returns the row of t as float64 values.
func loadRow[T number](t *tensors.Tensor, offset, n int) []float64 {
	row := rowOf[T](t, offset, n)
	values := make([]float64, n)
	for ii, v := range row {
		values[ii] = float64(v)
	}
	return values
}

func loadRowFP16(t *tensors.Tensor, offset, n int) []float64 {
	row := rowOf[float16.Float16](t, offset, n)
	values := make([]float64, n)
	for ii, v := range row {
		values[ii] = float64(v.Float32())
	}
	return values
}

func loadRowBF16(t *tensors.Tensor, offset, n int) []float64 {
	row := rowOf[bfloat16.BFloat16](t, offset, n)
	values := make([]float64, n)
	for ii, v := range row {
		values[ii] = float64(v.Float32())
	}
	return values
}

// storeIntegerRow stores the values in the row of t, rounding towards zero and saturating to the range
// [lower, largest] of T, where limit is the first value above largest. NaN is stored as 0.
func storeIntegerRow[T number](lower, limit float64, largest T) func(t *tensors.Tensor, offset int, values []float64) {
	return func(t *tensors.Tensor, offset int, values []float64) {
		row := rowOf[T](t, offset, len(values))
		for ii, v := range values {
			switch {
			case math.IsNaN(v):
				row[ii] = 0
			case v >= limit:
				row[ii] = largest
			default:
				row[ii] = T(math.Trunc(max(v, lower)))
			}
		}
	}
}

func storeFloatRow[T float32 | float64](t *tensors.Tensor, offset int, values []float64) {
	row := rowOf[T](t, offset, len(values))
	for ii, v := range values {
		row[ii] = T(v)
	}
}

func storeRowFP16(t *tensors.Tensor, offset int, values []float64) {
	row := rowOf[float16.Float16](t, offset, len(values))
	for ii, v := range values {
		row[ii] = float16.Fromfloat32(float32(v))
	}
}

func storeRowBF16(t *tensors.Tensor, offset int, values []float64) {
	row := rowOf[bfloat16.BFloat16](t, offset, len(values))
	for ii, v := range values {
		row[ii] = bfloat16.FromFloat64(v)
	}
}

// castConverters returns the row loader and storer for dtype.
func castConverters(dtype dtypes.DType) (load func(*tensors.Tensor, int, int) []float64, store func(*tensors.Tensor, int, []float64)) {
	lower, limit, _ := integerRange(dtype)
	switch dtype {
	case dtypes.Uint8:
		return loadRow[uint8], storeIntegerRow[uint8](lower, limit, math.MaxUint8)
	case dtypes.Int8:
		return loadRow[int8], storeIntegerRow[int8](lower, limit, math.MaxInt8)
	case dtypes.Uint16:
		return loadRow[uint16], storeIntegerRow[uint16](lower, limit, math.MaxUint16)
	case dtypes.Int16:
		return loadRow[int16], storeIntegerRow[int16](lower, limit, math.MaxInt16)
	case dtypes.Uint32:
		return loadRow[uint32], storeIntegerRow[uint32](lower, limit, math.MaxUint32)
	case dtypes.Int32:
		return loadRow[int32], storeIntegerRow[int32](lower, limit, math.MaxInt32)
	case dtypes.Int64:
		return loadRow[int64], storeIntegerRow[int64](lower, limit, math.MaxInt64)
	case dtypes.Float16:
		return loadRowFP16, storeRowFP16
	case dtypes.BFloat16:
		return loadRowBF16, storeRowBF16
	case dtypes.Float32:
		return loadRow[float32], storeFloatRow[float32]
	case dtypes.Float64:
		return loadRow[float64], storeFloatRow[float64]
	}
	return nil, nil
}

// castDTypes are the data types supported by Cast, as source or destination.
var castDTypes = []dtypes.DType{
	dtypes.U8, dtypes.S8, dtypes.U16, dtypes.S16, dtypes.U32, dtypes.S32, dtypes.S64,
	dtypes.F16, dtypes.BF16, dtypes.F32, dtypes.F64,
}

func castViaFloat64(args *castArgs, srcOffset, dstOffset, n int) {
	args.store(args.dst, dstOffset, args.load(args.src, srcOffset, n))
}

func castBF16ToFP32(args *castArgs, srcOffset, dstOffset, n int) {
	src := rowOf[bfloat16.BFloat16](args.src, srcOffset, n)
	dst := rowOf[float32](args.dst, dstOffset, n)
	for ii, v := range src {
		dst[ii] = v.Float32()
	}
}

func castFP32ToBF16(args *castArgs, srcOffset, dstOffset, n int) {
	src := rowOf[float32](args.src, srcOffset, n)
	dst := rowOf[bfloat16.BFloat16](args.dst, dstOffset, n)
	for ii, v := range src {
		dst[ii] = bfloat16.FromFloat32(v)
	}
}

type castKernel = kernels.Kernel[kernels.CastSelectorData, castFn]

func hasBF16(isa cpuinfo.Features) bool { return isa.HasAny(cpuinfo.BF16 | cpuinfo.AVX512BF16) }

// CastKernels is the registry of Cast kernels. Conversions involving half-precision types require the
// corresponding processor support.
var CastKernels = kernels.NewRegistry("Cast",
	castKernel{
		Name: "bf16_to_fp32",
		IsSelected: func(key kernels.CastSelectorData) bool {
			return key.Src == dtypes.BF16 && key.Dst == dtypes.F32 && hasBF16(key.ISA)
		},
		Fn: castBF16ToFP32,
	},
	castKernel{
		Name: "fp32_to_bf16",
		IsSelected: func(key kernels.CastSelectorData) bool {
			return key.Src == dtypes.F32 && key.Dst == dtypes.BF16 && hasBF16(key.ISA)
		},
		Fn: castFP32ToBF16,
	},
	castKernel{
		Name: "neon_fp16_cast",
		IsSelected: func(key kernels.CastSelectorData) bool {
			return (key.Src == dtypes.F16 || key.Dst == dtypes.F16) && key.ISA.Has(cpuinfo.FP16)
		},
		Fn: castViaFloat64,
	},
	castKernel{
		Name: "generic_cast",
		IsSelected: func(key kernels.CastSelectorData) bool {
			isHalf := func(dtype dtypes.DType) bool { return dtype == dtypes.F16 || dtype == dtypes.BF16 }
			return !isHalf(key.Src) && !isHalf(key.Dst)
		},
		Fn: castViaFloat64,
	},
)

// ValidateCast checks whether Cast can be configured. dst must have its data type set: an empty shape is
// taken from src.
func ValidateCast(cpu *cpuinfo.CPUInfo, src, dst tensorinfo.Info) error {
	return tryValidate("Cast", func() error {
		_, err := validateCast(cpu, src, dst.Clone())
		return err
	})
}

func validateCast(cpu *cpuinfo.CPUInfo, src, dst tensorinfo.Info) (*castKernel, error) {
	if err := tensorinfo.CheckInitialized(src); err != nil {
		return nil, err
	}
	if dst.DataType() == dtypes.InvalidDType {
		return nil, status.Errorf(status.Shape, "the data type of the output of Cast must be set")
	}
	tensorinfo.SetShapeIfEmpty(dst, src.Shape())
	if dst.NumChannels() == 0 {
		dst.SetNumChannels(src.NumChannels())
	}
	if err := tensorinfo.CheckMismatchingShapes(src, dst); err != nil {
		return nil, err
	}
	for _, info := range []tensorinfo.Info{src, dst} {
		if !slices.Contains(castDTypes, info.DataType()) {
			return nil, status.Errorf(status.Shape, "Cast doesn't support %s", info.DataType())
		}
		if info.NumChannels() != 1 {
			return nil, status.Errorf(status.Shape, "Cast requires single channel tensors, got %d channels", info.NumChannels())
		}
	}
	if err := checkDenseRows(src, dst); err != nil {
		return nil, err
	}
	return CastKernels.Select(kernels.CastSelectorData{Src: src.DataType(), Dst: dst.DataType(), ISA: cpu.Features()})
}

// Cast converts the elements of src to the data type of dst. Conversions to integer types round towards
// zero and saturate.
type Cast struct {
	operator
}

// NewCast creates a Cast operator.
func NewCast(cpu *cpuinfo.CPUInfo) *Cast {
	return &Cast{operator: newOperator("Cast", cpu)}
}

// Configure the operator. See ValidateCast for the requirements on dst.
func (op *Cast) Configure(src, dst *tensors.Tensor) error {
	if err := ValidateCast(op.cpu, src.Info(), dst.Info()); err != nil {
		return err
	}
	k, err := validateCast(op.cpu, src.Info(), dst.Info())
	if err != nil {
		return err
	}
	args := &castArgs{src: src, dst: dst}
	args.load, _ = castConverters(src.DType())
	_, args.store = castConverters(dst.DType())
	fn := k.Fn
	w := window.CalculateMaxWindow(src.Info().ValidRegion(), nil, false, shapes.BorderSize{})
	dst.Info().SetValidRegion(src.Info().ValidRegion())
	op.configured(k.Name, w, func(part window.Window) error {
		loop, n := splitRows(part)
		if loop.NumIterationsTotal() == 0 {
			return nil
		}
		slice := loop.FirstSliceWindow3D()
		for more := true; more; slice, more = loop.SlideWindowSlice3D(slice) {
			srcIt := window.NewIterator(src.Info(), slice)
			dstIt := window.NewIterator(dst.Info(), slice)
			window.Execute(slice, func(shapes.Coordinates) {
				fn(args, srcIt.Offset(), dstIt.Offset(), n)
			}, srcIt, dstIt)
		}
		return nil
	}, src, dst)
	return nil
}
