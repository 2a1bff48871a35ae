// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package tensorinfo

import (
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/dtypes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/status"
)

// The checks below are used by the operators' validate functions: they return a status.Shape error
// describing the first mismatch, or nil.

// CheckMismatchingShapes checks that all infos have the same shape.
func CheckMismatchingShapes(infos ...Info) error {
	for ii := 1; ii < len(infos); ii++ {
		if !infos[ii].Shape().Equal(infos[0].Shape()) {
			return status.Errorf(status.Shape, "mismatching shapes: %s (operand #0) != %s (operand #%d)",
				infos[0].Shape(), infos[ii].Shape(), ii)
		}
	}
	return nil
}

// CheckMismatchingDataTypes checks that all infos have the same data type.
func CheckMismatchingDataTypes(infos ...Info) error {
	for ii := 1; ii < len(infos); ii++ {
		if infos[ii].DataType() != infos[0].DataType() {
			return status.Errorf(status.Shape, "mismatching data types: %s (operand #0) != %s (operand #%d)",
				infos[0].DataType(), infos[ii].DataType(), ii)
		}
	}
	return nil
}

// CheckMismatchingQuantizationInfo checks that all infos have the same quantization parameters.
func CheckMismatchingQuantizationInfo(infos ...Info) error {
	for ii := 1; ii < len(infos); ii++ {
		if !infos[ii].QuantizationInfo().Equal(infos[0].QuantizationInfo()) {
			return status.Errorf(status.Shape, "mismatching quantization: %s (operand #0) != %s (operand #%d)",
				infos[0].QuantizationInfo(), infos[ii].QuantizationInfo(), ii)
		}
	}
	return nil
}

// CheckMismatchingDataLayouts checks that all infos have the same data layout.
func CheckMismatchingDataLayouts(infos ...Info) error {
	for ii := 1; ii < len(infos); ii++ {
		if infos[ii].DataLayout() != infos[0].DataLayout() {
			return status.Errorf(status.Shape, "mismatching data layouts: %s (operand #0) != %s (operand #%d)",
				infos[0].DataLayout(), infos[ii].DataLayout(), ii)
		}
	}
	return nil
}

// CheckDataTypeIn checks that info's data type is one of the given ones.
func CheckDataTypeIn(info Info, allowed ...dtypes.DType) error {
	for _, dtype := range allowed {
		if info.DataType() == dtype {
			return nil
		}
	}
	return status.Errorf(status.Shape, "data type %s not supported, expected one of %v", info.DataType(), allowed)
}

// CheckInitialized checks that info is not empty and has a known data type.
func CheckInitialized(info Info) error {
	if info.Shape().TotalSize() == 0 {
		return status.Errorf(status.Shape, "tensor descriptor is not initialized (empty shape)")
	}
	if info.DataType() == dtypes.InvalidDType {
		return status.Errorf(status.Shape, "tensor descriptor with shape %s has unknown data type", info.Shape())
	}
	return nil
}
