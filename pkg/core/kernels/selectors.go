// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package kernels

import (
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/cpuinfo"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/dtypes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/tensorinfo"
)

// Common selection keys. Operators with extra needs define their own.

// DataTypeISASelectorData selects on data type and processor capabilities.
type DataTypeISASelectorData struct {
	DType dtypes.DType
	ISA   cpuinfo.Features
}

// DataTypeDataLayoutISASelectorData adds the data layout to DataTypeISASelectorData.
type DataTypeDataLayoutISASelectorData struct {
	DType  dtypes.DType
	Layout tensorinfo.DataLayout
	ISA    cpuinfo.Features
}

// ElementwiseOp enumerates element-wise binary operations.
type ElementwiseOp int

const (
	OpAdd ElementwiseOp = iota
	OpSub
	OpMul
	OpMin
	OpMax
)

var elementwiseOpNames = [...]string{"Add", "Sub", "Mul", "Min", "Max"}

// String implements fmt.Stringer.
func (op ElementwiseOp) String() string {
	if op < 0 || int(op) >= len(elementwiseOpNames) {
		return "ElementwiseOp(?)"
	}
	return elementwiseOpNames[op]
}

// ElementwiseSelectorData selects element-wise kernels: Broadcast is set when the operands have
// different shapes.
type ElementwiseSelectorData struct {
	DType     dtypes.DType
	ISA       cpuinfo.Features
	Op        ElementwiseOp
	Broadcast bool
}

// SoftmaxSelectorData selects softmax kernels.
type SoftmaxSelectorData struct {
	DType dtypes.DType
	ISA   cpuinfo.Features
	IsLog bool
	Axis  int
}

// CastSelectorData selects data type conversion kernels.
type CastSelectorData struct {
	Src, Dst dtypes.DType
	ISA      cpuinfo.Features
}
