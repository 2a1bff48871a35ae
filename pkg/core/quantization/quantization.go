// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package quantization holds the quantization parameters (scales and zero-point offsets) of a tensor,
// and the conversions between real values and the quantized types in dtypes.
//
// A quantized value q represents the real value `(q - offset) * scale`.
package quantization

import (
	"fmt"
	"math"
	"slices"

	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/dtypes"
)

// UniformInfo is the quantization of a whole tensor with a single scale and offset.
type UniformInfo struct {
	Scale  float32
	Offset int32
}

// Info holds the quantization parameters of a tensor: one scale (and optionally one offset) for
// the whole tensor, or one per channel for the per-channel types.
//
// The zero value is "empty": no quantization.
type Info struct {
	Scales  []float32
	Offsets []int32
}

// New returns an Info with a single scale and offset.
func New(scale float32, offset int32) Info {
	return Info{Scales: []float32{scale}, Offsets: []int32{offset}}
}

// NewPerChannel returns an Info with one scale per channel, and no offsets.
func NewPerChannel(scales ...float32) Info {
	return Info{Scales: slices.Clone(scales)}
}

// IsEmpty returns whether no quantization parameters were set.
func (q Info) IsEmpty() bool {
	return len(q.Scales) == 0 && len(q.Offsets) == 0
}

// Uniform returns the first scale and offset: for per-tensor quantization this is the complete information.
// Missing values default to scale 0 and offset 0.
func (q Info) Uniform() UniformInfo {
	var u UniformInfo
	if len(q.Scales) > 0 {
		u.Scale = q.Scales[0]
	}
	if len(q.Offsets) > 0 {
		u.Offset = q.Offsets[0]
	}
	return u
}

// Clone returns a deep copy.
func (q Info) Clone() Info {
	return Info{Scales: slices.Clone(q.Scales), Offsets: slices.Clone(q.Offsets)}
}

// Equal compares scales and offsets.
func (q Info) Equal(other Info) bool {
	return slices.Equal(q.Scales, other.Scales) && slices.Equal(q.Offsets, other.Offsets)
}

// String implements fmt.Stringer.
func (q Info) String() string {
	if q.IsEmpty() {
		return "{}"
	}
	if len(q.Scales) <= 1 && len(q.Offsets) <= 1 {
		u := q.Uniform()
		return fmt.Sprintf("{scale=%g offset=%d}", u.Scale, u.Offset)
	}
	return fmt.Sprintf("{scales=%v offsets=%v}", q.Scales, q.Offsets)
}

// roundToNearest rounds half away from zero.
func roundToNearest(v float32) int64 {
	return int64(math.Round(float64(v)))
}

func quantizeClamped(value float32, q UniformInfo, lower, upper int64) int64 {
	if q.Scale == 0 {
		return min(max(int64(q.Offset), lower), upper)
	}
	quantized := roundToNearest(value/q.Scale) + int64(q.Offset)
	return min(max(quantized, lower), upper)
}

// QuantizeQAsymm8 quantizes value to a QASYMM8 (uint8) value.
func QuantizeQAsymm8(value float32, q UniformInfo) uint8 {
	return uint8(quantizeClamped(value, q, 0, math.MaxUint8))
}

// QuantizeQAsymm8Signed quantizes value to a QASYMM8_SIGNED (int8) value.
func QuantizeQAsymm8Signed(value float32, q UniformInfo) int8 {
	return int8(quantizeClamped(value, q, math.MinInt8, math.MaxInt8))
}

// QuantizeQSymm8 quantizes value to a QSYMM8 (int8) value: the offset is ignored.
func QuantizeQSymm8(value float32, scale float32) int8 {
	return int8(quantizeClamped(value, UniformInfo{Scale: scale}, math.MinInt8, math.MaxInt8))
}

// QuantizeQSymm16 quantizes value to a QSYMM16 (int16) value: the offset is ignored.
func QuantizeQSymm16(value float32, scale float32) int16 {
	return int16(quantizeClamped(value, UniformInfo{Scale: scale}, math.MinInt16, math.MaxInt16))
}

// QuantizeQAsymm16 quantizes value to a QASYMM16 (uint16) value.
func QuantizeQAsymm16(value float32, q UniformInfo) uint16 {
	return uint16(quantizeClamped(value, q, 0, math.MaxUint16))
}

// Dequantize converts a quantized value (already widened to int32) back to float32.
func Dequantize(value int32, q UniformInfo) float32 {
	return float32(value-q.Offset) * q.Scale
}

// DequantizeQAsymm8 converts a QASYMM8 value to float32.
func DequantizeQAsymm8(value uint8, q UniformInfo) float32 {
	return Dequantize(int32(value), q)
}

// DequantizeQAsymm8Signed converts a QASYMM8_SIGNED value to float32.
func DequantizeQAsymm8Signed(value int8, q UniformInfo) float32 {
	return Dequantize(int32(value), q)
}

// DequantizeQSymm8 converts a QSYMM8 value to float32.
func DequantizeQSymm8(value int8, scale float32) float32 {
	return float32(value) * scale
}

// DequantizeQSymm16 converts a QSYMM16 value to float32.
func DequantizeQSymm16(value int16, scale float32) float32 {
	return float32(value) * scale
}

// Quantize converts value to the storage integer of the quantized dtype, widened to int32.
// It returns false if dtype is not a (per-tensor) quantized type.
func Quantize(dtype dtypes.DType, value float32, q UniformInfo) (int32, bool) {
	switch dtype {
	case dtypes.QAsymm8:
		return int32(QuantizeQAsymm8(value, q)), true
	case dtypes.QAsymm8Signed:
		return int32(QuantizeQAsymm8Signed(value, q)), true
	case dtypes.QSymm8:
		return int32(QuantizeQSymm8(value, q.Scale)), true
	case dtypes.QSymm16:
		return int32(QuantizeQSymm16(value, q.Scale)), true
	case dtypes.QAsymm16:
		return int32(QuantizeQAsymm16(value, q)), true
	}
	return 0, false
}
