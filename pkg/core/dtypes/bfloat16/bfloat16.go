// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package bfloat16 implements the storage type for the "brain floating point" 16-bit format,
// with the conversions used by the BFloat16 kernels.
package bfloat16

import (
	"math"
	"strconv"
)

// BFloat16 keeps the upper 16 bits of an IEEE 754 float32: 1 bit sign, 8 bits exponent and 7 bits mantissa.
type BFloat16 uint16

// Float32 widens f to a float32, exactly.
func (f BFloat16) Float32() float32 {
	return math.Float32frombits(uint32(f) << 16)
}

// FromFloat32 converts a float32 to a BFloat16, rounding to the nearest even value.
// NaNs are kept as (quiet) NaNs.
func FromFloat32(x float32) BFloat16 {
	bits := math.Float32bits(x)
	if x != x {
		return BFloat16(bits>>16 | 0x0040)
	}
	lsb := (bits >> 16) & 1
	bits += 0x7FFF + lsb
	return BFloat16(bits >> 16)
}

// FromFloat64 converts a float64 to a BFloat16.
func FromFloat64(x float64) BFloat16 {
	return FromFloat32(float32(x))
}

// FromBits converts an uint16 to a BFloat16.
func FromBits(bits uint16) BFloat16 {
	return BFloat16(bits)
}

// Bits returns the raw bits of f.
func (f BFloat16) Bits() uint16 {
	return uint16(f)
}

// String implements fmt.Stringer.
func (f BFloat16) String() string {
	return strconv.FormatFloat(float64(f.Float32()), 'f', -1, 32)
}

// Inf returns a BFloat16 infinity: positive if sign >= 0, negative otherwise.
func Inf(sign int) BFloat16 {
	if sign >= 0 {
		return 0x7F80
	}
	return 0xFF80
}
