// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package dtypes

// DType is an enum representing the data type of the unit element of a tensor buffer.
//
// The quantized types share the storage of their underlying integer type, but the values
// only make sense together with a quantization.Info.
type DType int32

const (
	// InvalidDType is the zero value, used for "unknown" (not yet initialized) data types.
	InvalidDType DType = iota

	// Uint8 is an unsigned 8-bit integer.
	Uint8

	// Int8 is a signed 8-bit integer.
	Int8

	// QSymm8 is a quantized symmetric fixed-point 8-bit number (stored as int8).
	QSymm8

	// QAsymm8 is a quantized asymmetric fixed-point 8-bit number (stored as uint8).
	QAsymm8

	// QAsymm8Signed is a quantized asymmetric fixed-point 8-bit number (stored as int8).
	QAsymm8Signed

	// QSymm8PerChannel is a quantized symmetric 8-bit number with one scale per channel.
	QSymm8PerChannel

	// Uint16 is an unsigned 16-bit integer.
	Uint16

	// Int16 is a signed 16-bit integer.
	Int16

	// QSymm16 is a quantized symmetric fixed-point 16-bit number (stored as int16).
	QSymm16

	// QAsymm16 is a quantized asymmetric fixed-point 16-bit number (stored as uint16).
	QAsymm16

	// Uint32 is an unsigned 32-bit integer.
	Uint32

	// Int32 is a signed 32-bit integer.
	Int32

	// Uint64 is an unsigned 64-bit integer.
	Uint64

	// Int64 is a signed 64-bit integer.
	Int64

	// BFloat16 is the truncated 16-bit floating-point format: 1 bit sign, 8 bits exponent, 7 bits mantissa.
	BFloat16

	// Float16 is the IEEE 754 half-precision floating point.
	Float16

	// Float32 is the IEEE 754 single-precision floating point.
	Float32

	// Float64 is the IEEE 754 double-precision floating point.
	Float64

	// SizeT is a platform dependent unsigned integer used for sizes and indices.
	SizeT

	numDTypes
)

// Aliases with the short upper-case names.
const (
	UNKNOWN            = InvalidDType
	U8                 = Uint8
	S8                 = Int8
	QSYMM8             = QSymm8
	QASYMM8            = QAsymm8
	QASYMM8_SIGNED     = QAsymm8Signed
	QSYMM8_PER_CHANNEL = QSymm8PerChannel
	U16                = Uint16
	S16                = Int16
	QSYMM16            = QSymm16
	QASYMM16           = QAsymm16
	U32                = Uint32
	S32                = Int32
	U64                = Uint64
	S64                = Int64
	BF16               = BFloat16
	F16                = Float16
	F32                = Float32
	F64                = Float64
	SIZET              = SizeT
)

var dtypeNames = [numDTypes]string{
	InvalidDType:     "InvalidDType",
	Uint8:            "Uint8",
	Int8:             "Int8",
	QSymm8:           "QSymm8",
	QAsymm8:          "QAsymm8",
	QAsymm8Signed:    "QAsymm8Signed",
	QSymm8PerChannel: "QSymm8PerChannel",
	Uint16:           "Uint16",
	Int16:            "Int16",
	QSymm16:          "QSymm16",
	QAsymm16:         "QAsymm16",
	Uint32:           "Uint32",
	Int32:            "Int32",
	Uint64:           "Uint64",
	Int64:            "Int64",
	BFloat16:         "BFloat16",
	Float16:          "Float16",
	Float32:          "Float32",
	Float64:          "Float64",
	SizeT:            "SizeT",
}

// MapOfNames to their dtypes. It includes also the short aliases.
// It is also later initialized to include the lower-case version of the names.
var MapOfNames = map[string]DType{
	"InvalidDType":       InvalidDType,
	"UNKNOWN":            InvalidDType,
	"Uint8":              Uint8,
	"U8":                 Uint8,
	"Int8":               Int8,
	"S8":                 Int8,
	"QSymm8":             QSymm8,
	"QSYMM8":             QSymm8,
	"QAsymm8":            QAsymm8,
	"QASYMM8":            QAsymm8,
	"QAsymm8Signed":      QAsymm8Signed,
	"QASYMM8_SIGNED":     QAsymm8Signed,
	"QSymm8PerChannel":   QSymm8PerChannel,
	"QSYMM8_PER_CHANNEL": QSymm8PerChannel,
	"Uint16":             Uint16,
	"U16":                Uint16,
	"Int16":              Int16,
	"S16":                Int16,
	"QSymm16":            QSymm16,
	"QSYMM16":            QSymm16,
	"QAsymm16":           QAsymm16,
	"QASYMM16":           QAsymm16,
	"Uint32":             Uint32,
	"U32":                Uint32,
	"Int32":              Int32,
	"S32":                Int32,
	"Uint64":             Uint64,
	"U64":                Uint64,
	"Int64":              Int64,
	"S64":                Int64,
	"BFloat16":           BFloat16,
	"BF16":               BFloat16,
	"Float16":            Float16,
	"F16":                Float16,
	"Float32":            Float32,
	"F32":                Float32,
	"Float64":            Float64,
	"F64":                Float64,
	"SizeT":              SizeT,
	"SIZET":              SizeT,
}
