// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package ops

import (
	"slices"
	"testing"

	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/dtypes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/dtypes/bfloat16"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/quantization"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/shapes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/status"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/tensorinfo"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/tensors"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/window"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

func TestFill(t *testing.T) {
	for _, s := range testSchedulers {
		dst := tensors.New(paddedInfo(shapes.Make(5, 3, 2), dtypes.F32, 2))
		op := NewFill(testCPU)
		require.NoError(t, op.Configure(dst, 2.5))
		require.Equal(t, "fill_32bit", op.KernelName())
		allocate(t, dst)
		require.NoError(t, op.Run(s))
		for _, v := range tensors.MustCopyFlatData[float32](dst) {
			require.Equal(t, float32(2.5), v)
		}
		for _, b := range dst.Buffer()[:dst.Info().OffsetFirstElement()] {
			require.Zero(t, b, "padding must not be written")
		}
	}

	// Other element sizes.
	f16 := allocate(t, tensors.New(tensorinfo.New(shapes.Make(4), 1, dtypes.F16)))
	op := NewFill(testCPU)
	require.NoError(t, op.Configure(f16, -1))
	require.Equal(t, "fill_16bit", op.KernelName())
	require.NoError(t, op.Run(nil))
	require.Equal(t, float32(-1), tensors.MustCopyFlatData[float16.Float16](f16)[3].Float32())

	bf16 := allocate(t, tensors.New(tensorinfo.New(shapes.Make(2), 1, dtypes.BF16)))
	require.NoError(t, op.Configure(bf16, 0.5))
	require.NoError(t, op.Run(nil))
	require.Equal(t, bfloat16.FromFloat32(0.5), tensors.MustCopyFlatData[bfloat16.BFloat16](bf16)[1])

	i64 := allocate(t, tensors.New(tensorinfo.New(shapes.Make(3), 1, dtypes.S64)))
	require.NoError(t, op.Configure(i64, -7))
	require.Equal(t, "fill_64bit", op.KernelName())
	require.NoError(t, op.Run(nil))
	require.Equal(t, []int64{-7, -7, -7}, tensors.MustCopyFlatData[int64](i64))
}

func TestFillCollapsed(t *testing.T) {
	dst := tensors.New(paddedInfo(shapes.Make(4, 3, 2, 5), dtypes.S32, 1))
	op := NewFill(testCPU)
	require.NoError(t, op.Configure(dst, 9))
	require.Equal(t, window.NewDimension(0, 10, 1), op.Window().Dim(window.DimZ))
	require.Equal(t, window.DefaultDimension(), op.Window().Dim(window.DimW))
	allocate(t, dst)
	for _, s := range testSchedulers {
		require.NoError(t, op.Run(s))
		require.Equal(t, slices.Repeat([]int32{9}, 120), tensors.MustCopyFlatData[int32](dst))
		var written int
		for _, b := range dst.Buffer() {
			if b != 0 {
				written++
			}
		}
		require.Equal(t, 120, written, "only the elements are written, not the padding")
	}
}

func TestFillQuantized(t *testing.T) {
	info := tensorinfo.NewQuantized(shapes.Make(3), 1, dtypes.QASYMM8, quantization.New(0.5, 10))
	dst := allocate(t, tensors.New(info))
	op := NewFill(testCPU)
	require.NoError(t, op.Configure(dst, 2.0))
	require.Equal(t, "fill_8bit", op.KernelName())
	require.NoError(t, op.Run(nil))
	require.Equal(t, []uint8{14, 14, 14}, tensors.MustCopyFlatData[uint8](dst))

	// Missing quantization information.
	err := ValidateFill(testCPU, tensorinfo.New(shapes.Make(3), 1, dtypes.QASYMM8), 1)
	require.True(t, status.Is(err, status.Shape))
}

func TestFillErrors(t *testing.T) {
	err := ValidateFill(testCPU, tensorinfo.New(shapes.Make(3), 1, dtypes.S8), 300)
	require.True(t, status.Is(err, status.Shape))
	err = ValidateFill(testCPU, tensorinfo.New(shapes.Make(3), 1, dtypes.S32), 1.5)
	require.True(t, status.Is(err, status.Shape))
	err = ValidateFill(testCPU, tensorinfo.NewEmpty(), 0)
	require.True(t, status.Is(err, status.Shape))
	require.NoError(t, ValidateFill(testCPU, tensorinfo.New(shapes.Make(3), 1, dtypes.U16), 65535))

	// 64 bits limits are not representable as float64: 2^63 and 2^64 are out of range.
	s64 := tensorinfo.New(shapes.Make(3), 1, dtypes.S64)
	require.NoError(t, ValidateFill(testCPU, s64, -0x1p63))
	require.NoError(t, ValidateFill(testCPU, s64, 0x1p62))
	require.True(t, status.Is(ValidateFill(testCPU, s64, 0x1p63), status.Shape))
	u64 := tensorinfo.New(shapes.Make(3), 1, dtypes.U64)
	require.NoError(t, ValidateFill(testCPU, u64, 0x1p63))
	require.True(t, status.Is(ValidateFill(testCPU, u64, 0x1p64), status.Shape))
	require.True(t, status.Is(ValidateFill(testCPU, u64, -1), status.Shape))
}
