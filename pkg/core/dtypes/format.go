// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package dtypes

import "strconv"

// Format describes the layout of one "pixel": how many channels it has and the data type of each channel.
//
// Setting a format on a tensor descriptor implies both its number of channels and data type.
type Format int32

const (
	// UnknownFormat is the zero value.
	UnknownFormat Format = iota
	FormatU8
	FormatS16
	FormatU16
	FormatS32
	FormatU32
	FormatS64
	FormatU64
	FormatBFloat16
	FormatF16
	FormatF32
	FormatUV88
	FormatRGB888
	FormatRGBA8888
	FormatYUV444
	FormatYUYV422
	FormatNV12
	FormatNV21
	FormatIYUV
	FormatUYVY422

	numFormats
)

var formatNames = [numFormats]string{
	UnknownFormat:  "UnknownFormat",
	FormatU8:       "U8",
	FormatS16:      "S16",
	FormatU16:      "U16",
	FormatS32:      "S32",
	FormatU32:      "U32",
	FormatS64:      "S64",
	FormatU64:      "U64",
	FormatBFloat16: "BFLOAT16",
	FormatF16:      "F16",
	FormatF32:      "F32",
	FormatUV88:     "UV88",
	FormatRGB888:   "RGB888",
	FormatRGBA8888: "RGBA8888",
	FormatYUV444:   "YUV444",
	FormatYUYV422:  "YUYV422",
	FormatNV12:     "NV12",
	FormatNV21:     "NV21",
	FormatIYUV:     "IYUV",
	FormatUYVY422:  "UYVY422",
}

// String implements fmt.Stringer.
func (f Format) String() string {
	if f < 0 || f >= numFormats {
		return "Format(" + strconv.Itoa(int(f)) + ")"
	}
	return formatNames[f]
}

// NumChannels returns the number of channels implied by the format, or 0 for UnknownFormat.
//
// Multi-planar formats (NV12, NV21, IYUV, YUV444) report 1: each plane is described separately.
func (f Format) NumChannels() int {
	switch f {
	case FormatU8, FormatS16, FormatU16, FormatS32, FormatU32, FormatS64, FormatU64,
		FormatBFloat16, FormatF16, FormatF32:
		return 1
	case FormatNV12, FormatNV21, FormatIYUV, FormatYUV444:
		return 1
	case FormatUV88, FormatYUYV422, FormatUYVY422:
		return 2
	case FormatRGB888:
		return 3
	case FormatRGBA8888:
		return 4
	}
	return 0
}

// DType returns the data type of each channel of the format, or InvalidDType for UnknownFormat.
func (f Format) DType() DType {
	switch f {
	case FormatU8, FormatUV88, FormatRGB888, FormatRGBA8888, FormatYUV444, FormatYUYV422,
		FormatNV12, FormatNV21, FormatIYUV, FormatUYVY422:
		return Uint8
	case FormatS16:
		return Int16
	case FormatU16:
		return Uint16
	case FormatS32:
		return Int32
	case FormatU32:
		return Uint32
	case FormatS64:
		return Int64
	case FormatU64:
		return Uint64
	case FormatBFloat16:
		return BFloat16
	case FormatF16:
		return Float16
	case FormatF32:
		return Float32
	}
	return InvalidDType
}
