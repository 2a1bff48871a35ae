// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package ops

import (
	"testing"

	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/dtypes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/quantization"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/shapes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/status"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/tensorinfo"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/tensors"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/require"
)

func TestReshape(t *testing.T) {
	values := []int16{1, 2, 3, 4, 5, 6}
	for _, s := range testSchedulers {
		src := tensors.FromFlatData(values, 3, 2)

		// Data type taken from the source.
		dst := tensors.New(tensorinfo.New(shapes.Make(2, 3), 1, dtypes.InvalidDType))
		op := NewReshape(testCPU)
		require.NoError(t, op.Configure(src, dst))
		require.Equal(t, "contiguous_copy", op.KernelName())
		require.Equal(t, dtypes.S16, dst.DType())
		allocate(t, dst)
		require.NoError(t, op.Run(s))
		require.Equal(t, values, tensors.MustCopyFlatData[int16](dst))
		require.Equal(t, int16(4), must.M1(tensors.At[int16](dst, shapes.Coordinates{1, 1})))

		// Padded source: element by element, in linear order.
		padded := tensors.FromFlatDataAndInfo(paddedInfo(shapes.Make(3, 2), dtypes.S16, 1), values)
		dst = tensors.New(tensorinfo.New(shapes.Make(6), 1, dtypes.S16))
		op = NewReshape(testCPU)
		require.NoError(t, op.Configure(padded, dst))
		require.Equal(t, "element_copy", op.KernelName())
		allocate(t, dst)
		require.NoError(t, op.Run(s))
		require.Equal(t, values, tensors.MustCopyFlatData[int16](dst))
	}
}

func TestReshapeErrors(t *testing.T) {
	src := tensorinfo.New(shapes.Make(3, 2), 1, dtypes.F32)
	err := ValidateReshape(testCPU, src, tensorinfo.New(shapes.Make(5), 1, dtypes.F32))
	require.True(t, status.Is(err, status.Shape))
	err = ValidateReshape(testCPU, src, tensorinfo.New(shapes.Make(6), 1, dtypes.S32))
	require.True(t, status.Is(err, status.Shape))
	err = ValidateReshape(testCPU, src, tensorinfo.NewEmpty())
	require.True(t, status.Is(err, status.Shape), "the output shape must be given")

	q := tensorinfo.NewQuantized(shapes.Make(4), 1, dtypes.QASYMM8, quantization.New(1, 0))
	other := tensorinfo.NewQuantized(shapes.Make(2, 2), 1, dtypes.QASYMM8, quantization.New(2, 0))
	err = ValidateReshape(testCPU, q, other)
	require.True(t, status.Is(err, status.Shape))

	// The quantization is taken from the source when missing.
	dst := tensorinfo.New(shapes.Make(2, 2), 1, dtypes.QASYMM8)
	require.NoError(t, ValidateReshape(testCPU, q, dst))
	require.True(t, dst.QuantizationInfo().IsEmpty(), "validation must not change dst")
}
