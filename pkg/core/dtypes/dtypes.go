// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package dtypes includes the DType enum for all data types a tensor buffer can hold, and
// the Format enum describing multi-channel (image) element formats.
//
// It includes converters to/from Go native types (and reflect.Type), the per-element size in bytes
// used by the layout computations, and predicates grouping the types (float, quantized, signed...).
package dtypes

import (
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/dtypes/bfloat16"
	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// panicf panics with the formatted description.
//
// It is only used for "bugs in the code" -- when parameters break the documented contract.
func panicf(format string, args ...any) {
	panic(errors.Errorf(format, args...))
}

func init() {
	// Add a mapping to the lower-case version of dtypes.
	keys := slices.Collect(maps.Keys(MapOfNames))
	for _, key := range keys {
		lowerKey := strings.ToLower(key)
		if lowerKey == key {
			continue
		}
		if _, found := MapOfNames[lowerKey]; found {
			continue
		}
		MapOfNames[lowerKey] = MapOfNames[key]
	}
}

// String implements fmt.Stringer.
func (dtype DType) String() string {
	if dtype < 0 || dtype >= numDTypes {
		return "DType(" + strconv.Itoa(int(dtype)) + ")"
	}
	return dtypeNames[dtype]
}

// FromName returns the DType with the given name (or alias, case-insensitive for the
// names registered in MapOfNames).
func FromName(name string) (DType, error) {
	if dtype, found := MapOfNames[name]; found {
		return dtype, nil
	}
	if dtype, found := MapOfNames[strings.ToLower(name)]; found {
		return dtype, nil
	}
	return InvalidDType, errors.Errorf("unknown dtype %q", name)
}

// All returns all the valid dtypes, in enum order.
func All() []DType {
	all := make([]DType, 0, numDTypes-1)
	for dtype := InvalidDType + 1; dtype < numDTypes; dtype++ {
		all = append(all, dtype)
	}
	return all
}

// IsValid returns whether dtype is a known, non-invalid, data type.
func (dtype DType) IsValid() bool {
	return dtype > InvalidDType && dtype < numDTypes
}

// Size returns the number of bytes of one element of the given DType.
// It returns 0 for InvalidDType.
func (dtype DType) Size() int {
	switch dtype {
	case Uint8, Int8, QSymm8, QAsymm8, QAsymm8Signed, QSymm8PerChannel:
		return 1
	case Uint16, Int16, QSymm16, QAsymm16, BFloat16, Float16:
		return 2
	case Uint32, Int32, Float32:
		return 4
	case Uint64, Int64, Float64:
		return 8
	case SizeT:
		return strconv.IntSize / 8
	default:
		return 0
	}
}

// Bits returns the number of bits for the given DType.
func (dtype DType) Bits() int {
	return dtype.Size() * 8
}

// SizeForDimensions returns the size in bytes of a dense buffer with the given dimensions.
//
// It works also for scalar (one element) shapes where the list of dimensions is empty.
func (dtype DType) SizeForDimensions(dimensions ...int) int {
	numElements := 1
	for _, dim := range dimensions {
		if dim < 0 {
			panicf("dim cannot be negative for SizeForDimensions, got %v", dimensions)
		}
		numElements *= dim
	}
	return numElements * dtype.Size()
}

// IsFloat returns whether dtype is a floating point type (including the half-precision ones).
func (dtype DType) IsFloat() bool {
	return dtype == Float16 || dtype == BFloat16 || dtype == Float32 || dtype == Float64
}

// IsQuantized returns whether dtype is one of the quantized types.
func (dtype DType) IsQuantized() bool {
	switch dtype {
	case QSymm8, QAsymm8, QAsymm8Signed, QSymm8PerChannel, QSymm16, QAsymm16:
		return true
	}
	return false
}

// IsAsymmetric returns whether dtype is an asymmetric quantized type, that is, one that uses an offset
// (zero-point) besides the scale.
func (dtype DType) IsAsymmetric() bool {
	return dtype == QAsymm8 || dtype == QAsymm8Signed || dtype == QAsymm16
}

// IsSymmetric returns whether dtype is a symmetric quantized type (zero-point is always 0).
func (dtype DType) IsSymmetric() bool {
	return dtype == QSymm8 || dtype == QSymm8PerChannel || dtype == QSymm16
}

// IsPerChannel returns whether dtype is quantized with one scale per channel.
func (dtype DType) IsPerChannel() bool {
	return dtype == QSymm8PerChannel
}

// IsInt returns whether dtype is a plain (non-quantized) integer type.
func (dtype DType) IsInt() bool {
	switch dtype {
	case Uint8, Int8, Uint16, Int16, Uint32, Int32, Uint64, Int64, SizeT:
		return true
	}
	return false
}

// IsSigned returns whether the dtype stores signed values.
func (dtype DType) IsSigned() bool {
	switch dtype {
	case Int8, QSymm8, QAsymm8Signed, QSymm8PerChannel, Int16, QSymm16, Int32, Int64,
		BFloat16, Float16, Float32, Float64:
		return true
	}
	return false
}

// StorageDType returns the plain type used to store values of dtype: for quantized types
// it's the underlying integer type, for all others it's the dtype itself.
func (dtype DType) StorageDType() DType {
	switch dtype {
	case QAsymm8:
		return Uint8
	case QSymm8, QAsymm8Signed, QSymm8PerChannel:
		return Int8
	case QSymm16:
		return Int16
	case QAsymm16:
		return Uint16
	}
	return dtype
}

// Pre-generate constant reflect.TypeOf for convenience.
var (
	float16Type  = reflect.TypeOf(float16.Float16(0))
	bfloat16Type = reflect.TypeOf(bfloat16.BFloat16(0))
)

// GoType returns the Go `reflect.Type` used to store one element of dtype.
// Quantized types return the type of their storage.
func (dtype DType) GoType() reflect.Type {
	switch dtype.StorageDType() {
	case Uint8:
		return reflect.TypeOf(uint8(0))
	case Int8:
		return reflect.TypeOf(int8(0))
	case Uint16:
		return reflect.TypeOf(uint16(0))
	case Int16:
		return reflect.TypeOf(int16(0))
	case Uint32:
		return reflect.TypeOf(uint32(0))
	case Int32:
		return reflect.TypeOf(int32(0))
	case Uint64:
		return reflect.TypeOf(uint64(0))
	case Int64:
		return reflect.TypeOf(int64(0))
	case BFloat16:
		return bfloat16Type
	case Float16:
		return float16Type
	case Float32:
		return reflect.TypeOf(float32(0))
	case Float64:
		return reflect.TypeOf(float64(0))
	case SizeT:
		return reflect.TypeOf(uint(0))
	default:
		panicf("unknown dtype %q (%d) in DType.GoType", dtype, dtype)
		panic(nil)
	}
}

// Supported lists the Go types that have a direct DType counterpart.
type Supported interface {
	uint8 | int8 | uint16 | int16 | uint32 | int32 | uint64 | int64 |
		float32 | float64 | float16.Float16 | bfloat16.BFloat16
}

// FromGenericsType returns the DType for the given Go type.
// Quantized types are never returned, since they share storage with the integer ones.
func FromGenericsType[T Supported]() DType {
	var t T
	switch (any(t)).(type) {
	case uint8:
		return Uint8
	case int8:
		return Int8
	case uint16:
		return Uint16
	case int16:
		return Int16
	case uint32:
		return Uint32
	case int32:
		return Int32
	case uint64:
		return Uint64
	case int64:
		return Int64
	case float16.Float16:
		return Float16
	case bfloat16.BFloat16:
		return BFloat16
	case float32:
		return Float32
	case float64:
		return Float64
	}
	return InvalidDType
}
