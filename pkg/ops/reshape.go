// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package ops

import (
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/cpuinfo"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/status"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/tensorinfo"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/tensors"
)

// ValidateReshape checks whether Reshape can be configured. dst must have its shape set: its data type,
// number of channels and quantization are taken from src if unknown.
func ValidateReshape(cpu *cpuinfo.CPUInfo, src, dst tensorinfo.Info) error {
	return tryValidate("Reshape", func() error {
		dst = dst.Clone()
		initReshapeOutput(src, dst)
		if err := tensorinfo.CheckInitialized(src); err != nil {
			return err
		}
		if err := tensorinfo.CheckInitialized(dst); err != nil {
			return err
		}
		if src.Shape().TotalSize() != dst.Shape().TotalSize() {
			return status.Errorf(status.Shape, "can't reshape %s (%d elements) to %s (%d elements)",
				src.Shape(), src.Shape().TotalSize(), dst.Shape(), dst.Shape().TotalSize())
		}
		if err := tensorinfo.CheckMismatchingDataTypes(src, dst); err != nil {
			return err
		}
		if err := tensorinfo.CheckMismatchingQuantizationInfo(src, dst); err != nil {
			return err
		}
		if src.NumChannels() != dst.NumChannels() {
			return status.Errorf(status.Shape, "mismatching number of channels: %d != %d", src.NumChannels(), dst.NumChannels())
		}
		_, err := CopyKernels.Select(copySelectorData(cpu, src, dst))
		return err
	})
}

// initReshapeOutput fills in the data type, number of channels and quantization of dst from src, if unknown.
func initReshapeOutput(src, dst tensorinfo.Info) {
	if tensorinfo.SetDataTypeIfUnknown(dst, src.DataType()) {
		dst.SetNumChannels(src.NumChannels())
	}
	tensorinfo.SetQuantizationInfoIfEmpty(dst, src.QuantizationInfo())
	tensorinfo.SetDataLayoutIfUnknown(dst, src.DataLayout())
}

// Reshape copies the elements of src into dst, which has a different shape with the same number of
// elements, in linear order (axis 0 changing fastest).
type Reshape struct {
	operator
}

// NewReshape creates a Reshape operator.
func NewReshape(cpu *cpuinfo.CPUInfo) *Reshape {
	return &Reshape{operator: newOperator("Reshape", cpu)}
}

// Configure the operator. See ValidateReshape for the requirements on dst.
func (op *Reshape) Configure(src, dst *tensors.Tensor) error {
	if err := ValidateReshape(op.cpu, src.Info(), dst.Info()); err != nil {
		return err
	}
	initReshapeOutput(src.Info(), dst.Info())
	return op.configureKernel(src, dst)
}
