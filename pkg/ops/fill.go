// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package ops

import (
	"math"
	"unsafe"

	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/cpuinfo"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/dtypes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/dtypes/bfloat16"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/kernels"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/quantization"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/shapes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/status"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/tensorinfo"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/tensors"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/window"
	"github.com/x448/float16"
)

// fillFn writes n words of the pattern (one word per channel of an element) at the byte offset of dst.
type fillFn func(dst *tensors.Tensor, pattern []byte, offset, n int)

func fillWords[T uint8 | uint16 | uint32 | uint64](dst *tensors.Tensor, pattern []byte, offset, n int) {
	value := *(*T)(unsafe.Pointer(&pattern[0]))
	row := rowOf[T](dst, offset, n)
	for ii := range row {
		row[ii] = value
	}
}

func fillKernel[T uint8 | uint16 | uint32 | uint64](name string, size int) kernels.Kernel[kernels.DataTypeISASelectorData, fillFn] {
	return kernels.Kernel[kernels.DataTypeISASelectorData, fillFn]{
		Name:       name,
		IsSelected: func(key kernels.DataTypeISASelectorData) bool { return key.DType.Size() == size },
		Fn:         fillWords[T],
	}
}

// FillKernels is the registry of Fill kernels: they only depend on the size of the data type.
var FillKernels = kernels.NewRegistry("Fill",
	fillKernel[uint8]("fill_8bit", 1),
	fillKernel[uint16]("fill_16bit", 2),
	fillKernel[uint32]("fill_32bit", 4),
	fillKernel[uint64]("fill_64bit", 8),
)

// encodeValue returns the storage representation of value in dtype: quantized types are quantized
// with q, and integer types must be able to represent value exactly.
func encodeValue(dtype dtypes.DType, q quantization.Info, value float64) ([]byte, error) {
	if dtype.IsQuantized() {
		if dtype.IsPerChannel() {
			return nil, status.Errorf(status.Shape, "cannot fill per-channel quantized type %s", dtype)
		}
		quantized, _ := quantization.Quantize(dtype, float32(value), q.Uniform())
		return encodeInteger(dtype.StorageDType(), float64(quantized))
	}
	switch dtype {
	case dtypes.Float16:
		return encodeScalar(float16.Fromfloat32(float32(value))), nil
	case dtypes.BFloat16:
		return encodeScalar(bfloat16.FromFloat64(value)), nil
	case dtypes.Float32:
		return encodeScalar(float32(value)), nil
	case dtypes.Float64:
		return encodeScalar(value), nil
	}
	return encodeInteger(dtype, value)
}

func encodeInteger(dtype dtypes.DType, value float64) ([]byte, error) {
	lower, limit, ok := integerRange(dtype)
	if !ok {
		return nil, status.Errorf(status.Shape, "data type %s not supported", dtype)
	}
	if value != math.Trunc(value) || value < lower || value >= limit {
		return nil, status.Errorf(status.Shape, "value %g can't be represented by %s", value, dtype)
	}
	switch dtype {
	case dtypes.Uint8:
		return encodeScalar(uint8(value)), nil
	case dtypes.Int8:
		return encodeScalar(int8(value)), nil
	case dtypes.Uint16:
		return encodeScalar(uint16(value)), nil
	case dtypes.Int16:
		return encodeScalar(int16(value)), nil
	case dtypes.Uint32:
		return encodeScalar(uint32(value)), nil
	case dtypes.Int32:
		return encodeScalar(int32(value)), nil
	case dtypes.Uint64:
		return encodeScalar(uint64(value)), nil
	default:
		return encodeScalar(int64(value)), nil
	}
}

// integerRange returns the range of values of an integer dtype: lower is the smallest value, and limit
// the first value above the largest one. For 64 bits types the largest value is not a float64, limit is.
func integerRange(dtype dtypes.DType) (lower, limit float64, ok bool) {
	switch dtype {
	case dtypes.Uint8:
		return 0, math.MaxUint8 + 1, true
	case dtypes.Int8:
		return math.MinInt8, math.MaxInt8 + 1, true
	case dtypes.Uint16:
		return 0, math.MaxUint16 + 1, true
	case dtypes.Int16:
		return math.MinInt16, math.MaxInt16 + 1, true
	case dtypes.Uint32:
		return 0, math.MaxUint32 + 1, true
	case dtypes.Int32:
		return math.MinInt32, math.MaxInt32 + 1, true
	case dtypes.Uint64:
		return 0, 0x1p64, true
	case dtypes.Int64:
		return math.MinInt64, 0x1p63, true
	}
	return 0, 0, false
}

// encodeScalar returns the bytes of a one element tensor holding value.
func encodeScalar[T dtypes.Supported](value T) []byte {
	return tensors.FromFlatData([]T{value}).Buffer()
}

// ValidateFill checks whether Fill can be configured for dst and value.
func ValidateFill(cpu *cpuinfo.CPUInfo, dst tensorinfo.Info, value float64) error {
	return tryValidate("Fill", func() error {
		if err := tensorinfo.CheckInitialized(dst); err != nil {
			return err
		}
		if err := checkQuantized(dst); err != nil {
			return err
		}
		if err := checkDenseRows(dst); err != nil {
			return err
		}
		if _, err := encodeValue(dst.DataType(), dst.QuantizationInfo(), value); err != nil {
			return err
		}
		_, err := FillKernels.Select(kernels.DataTypeISASelectorData{DType: dst.DataType(), ISA: cpu.Features()})
		return err
	})
}

// Fill sets all the elements of a tensor (every channel) to a constant value.
type Fill struct {
	operator
}

// NewFill creates a Fill operator.
func NewFill(cpu *cpuinfo.CPUInfo) *Fill {
	return &Fill{operator: newOperator("Fill", cpu)}
}

// Configure the operator to fill dst with value. The valid region of dst is reset to the whole tensor.
func (op *Fill) Configure(dst *tensors.Tensor, value float64) error {
	info := dst.Info()
	if err := ValidateFill(op.cpu, info, value); err != nil {
		return err
	}
	pattern, err := encodeValue(info.DataType(), info.QuantizationInfo(), value)
	if err != nil {
		return err
	}
	k, err := FillKernels.Select(kernels.DataTypeISASelectorData{DType: info.DataType(), ISA: op.cpu.Features()})
	if err != nil {
		return err
	}
	info.SetValidRegion(shapes.FullValidRegion(info.Shape()))
	w := collapseOuterAxes(window.CalculateMaxWindow(info.ValidRegion(), nil, false, shapes.BorderSize{}), info)
	numChannels := info.NumChannels()
	fn := k.Fn
	op.configured(k.Name, w, func(part window.Window) error {
		loop, n := splitRows(part)
		it := window.NewIterator(info, loop)
		window.Execute(loop, func(shapes.Coordinates) {
			fn(dst, pattern, it.Offset(), n*numChannels)
		}, it)
		return nil
	}, dst)
	return nil
}
