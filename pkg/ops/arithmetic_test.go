// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package ops

import (
	"testing"

	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/cpuinfo"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/dtypes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/dtypes/bfloat16"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/kernels"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/quantization"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/shapes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/status"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/tensorinfo"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/tensors"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

// runArithmetic configures op on lhs and rhs with an auto-initialized output, runs it with every test
// scheduler and returns the output of the last run.
func runArithmetic(t *testing.T, cpu *cpuinfo.CPUInfo, elementwiseOp kernels.ElementwiseOp, lhs, rhs *tensors.Tensor, wantKernel string) *tensors.Tensor {
	var dst *tensors.Tensor
	for _, s := range testSchedulers {
		dst = tensors.New(nil)
		op := NewArithmetic(cpu, elementwiseOp)
		require.NoError(t, op.Configure(lhs, rhs, dst))
		require.Equal(t, wantKernel, op.KernelName())
		allocate(t, dst)
		require.NoError(t, op.Run(s))
	}
	return dst
}

func TestArithmeticFP32(t *testing.T) {
	lhs := tensors.FromFlatData([]float32{1, 2, 3, 4, 5, 6}, 3, 2)
	rhs := tensors.FromFlatData([]float32{6, 5, 4, 3, 2, 1}, 3, 2)

	dst := runArithmetic(t, testCPU, kernels.OpAdd, lhs, rhs, "fp32_blas_add_sub")
	require.Equal(t, []float32{7, 7, 7, 7, 7, 7}, tensors.MustCopyFlatData[float32](dst))
	dst = runArithmetic(t, testCPU, kernels.OpSub, lhs, rhs, "fp32_blas_add_sub")
	require.Equal(t, []float32{-5, -3, -1, 1, 3, 5}, tensors.MustCopyFlatData[float32](dst))
	dst = runArithmetic(t, testCPU, kernels.OpMin, lhs, rhs, "generic_fp32")
	require.Equal(t, []float32{1, 2, 3, 3, 2, 1}, tensors.MustCopyFlatData[float32](dst))
	dst = runArithmetic(t, testCPU, kernels.OpMax, lhs, rhs, "generic_fp32")
	require.Equal(t, []float32{6, 5, 4, 4, 5, 6}, tensors.MustCopyFlatData[float32](dst))
	dst = runArithmetic(t, testCPU, kernels.OpMul, lhs, rhs, "generic_fp32")
	require.Equal(t, []float32{6, 10, 12, 12, 10, 6}, tensors.MustCopyFlatData[float32](dst))

	// In-place on the right operand.
	op := NewArithmetic(testCPU, kernels.OpSub)
	require.NoError(t, op.Configure(lhs, rhs, rhs))
	require.NoError(t, op.Run(nil))
	require.Equal(t, []float32{-5, -3, -1, 1, 3, 5}, tensors.MustCopyFlatData[float32](rhs))
}

func TestArithmeticCollapsed(t *testing.T) {
	values := make([]int32, 24)
	want := make([]int32, 24)
	for ii := range values {
		values[ii] = int32(ii)
		want[ii] = int32(2 * ii)
	}
	lhs := tensors.FromFlatData(values, 2, 3, 2, 2)
	rhs := tensors.FromFlatDataAndInfo(paddedInfo(shapes.Make(2, 3, 2, 2), dtypes.S32, 2), values)
	dst := tensors.New(nil)
	op := NewArithmetic(testCPU, kernels.OpAdd)
	require.NoError(t, op.Configure(lhs, rhs, dst))
	require.Equal(t, window.NewDimension(0, 4, 1), op.Window().Dim(window.DimZ))
	allocate(t, dst)
	for _, s := range testSchedulers {
		require.NoError(t, op.Run(s))
		require.Equal(t, want, tensors.MustCopyFlatData[int32](dst))
	}

	// Broadcasting keeps the outer axes apart.
	ones := tensors.FromFlatData([]int32{1, 1, 1, 1}, 1, 1, 2, 2)
	op = NewArithmetic(testCPU, kernels.OpAdd)
	require.NoError(t, op.Configure(lhs, ones, tensors.New(nil)))
	require.Equal(t, window.NewDimension(0, 2, 1), op.Window().Dim(window.DimZ))
	require.Equal(t, window.NewDimension(0, 2, 1), op.Window().Dim(window.DimW))
}

func TestArithmeticFP64(t *testing.T) {
	lhs := tensors.FromFlatData([]float64{1, 2, 3}, 3)
	rhs := tensors.FromFlatData([]float64{0.5, 0.5, 0.5}, 3)
	dst := runArithmetic(t, testCPU, kernels.OpSub, lhs, rhs, "fp64_floats_add_sub")
	require.Equal(t, []float64{0.5, 1.5, 2.5}, tensors.MustCopyFlatData[float64](dst))
}

func TestArithmeticBroadcast(t *testing.T) {
	lhs := tensors.FromFlatData([]float32{1, 2, 3, 4, 5, 6}, 3, 2)

	// Broadcast along X.
	column := tensors.FromFlatData([]float32{10, 20}, 1, 2)
	dst := runArithmetic(t, testCPU, kernels.OpAdd, lhs, column, "generic_fp32")
	require.True(t, dst.Shape().Equal(shapes.Make(3, 2)))
	require.Equal(t, []float32{11, 12, 13, 24, 25, 26}, tensors.MustCopyFlatData[float32](dst))

	// Broadcast along Y, with the broadcast operand on the left.
	row := tensors.FromFlatData([]float32{100, 200, 300}, 3)
	dst = runArithmetic(t, testCPU, kernels.OpSub, row, lhs, "generic_fp32")
	require.Equal(t, []float32{99, 198, 297, 96, 195, 294}, tensors.MustCopyFlatData[float32](dst))

	// Both operands broadcast.
	dst = runArithmetic(t, testCPU, kernels.OpAdd, row, column, "generic_fp32")
	require.Equal(t, []float32{110, 210, 310, 120, 220, 320}, tensors.MustCopyFlatData[float32](dst))

	// Integer broadcast over a larger tensor, split in parallel.
	big := make([]int32, 7*5*3)
	for ii := range big {
		big[ii] = int32(ii)
	}
	lhsBig := tensors.FromFlatData(big, 7, 5, 3)
	one := tensors.FromFlatData([]int32{-1})
	dst = runArithmetic(t, testCPU, kernels.OpAdd, lhsBig, one, "generic_s32")
	got := tensors.MustCopyFlatData[int32](dst)
	for ii := range got {
		require.Equal(t, int32(ii-1), got[ii])
	}
}

func TestArithmeticHalfPrecision(t *testing.T) {
	f16 := func(values ...float32) *tensors.Tensor {
		flat := make([]float16.Float16, len(values))
		for ii, v := range values {
			flat[ii] = float16.Fromfloat32(v)
		}
		return tensors.FromFlatData(flat, len(values))
	}
	lhs, rhs := f16(1, 2, 3), f16(0.5, 0.5, 0.5)

	// F16 requires FP16 support: no silent fallback.
	err := ValidateArithmetic(testCPU, kernels.OpAdd, lhs.Info(), rhs.Info(), tensorinfo.NewEmpty())
	require.True(t, status.Is(err, status.Selection))
	err = NewArithmetic(testCPU, kernels.OpAdd).Configure(lhs, rhs, tensors.New(nil))
	require.True(t, status.Is(err, status.Selection))

	dst := runArithmetic(t, cpuinfo.FromFeatures(cpuinfo.NEON, cpuinfo.FP16), kernels.OpAdd, lhs, rhs, "neon_fp16")
	got := tensors.MustCopyFlatData[float16.Float16](dst)
	require.Equal(t, float32(3.5), got[2].Float32())

	bf16 := tensors.FromFlatData([]bfloat16.BFloat16{bfloat16.FromFloat32(1), bfloat16.FromFloat32(8)}, 2)
	dst = runArithmetic(t, cpuinfo.FromFeatures(cpuinfo.AVX512BF16), kernels.OpMax, bf16, bf16, "bf16")
	require.Equal(t, float32(8), tensors.MustCopyFlatData[bfloat16.BFloat16](dst)[1].Float32())
}

func TestArithmeticQuantized(t *testing.T) {
	lhsInfo := tensorinfo.NewQuantized(shapes.Make(2), 1, dtypes.QASYMM8, quantization.New(0.5, 10))
	lhs := tensors.FromFlatDataAndInfo(lhsInfo, []uint8{12, 14}) // 1, 2
	rhsInfo := tensorinfo.NewQuantized(shapes.Make(2), 1, dtypes.QASYMM8, quantization.New(0.25, 0))
	rhs := tensors.FromFlatDataAndInfo(rhsInfo, []uint8{0, 20}) // 0, 5
	dstInfo := tensorinfo.NewQuantized(shapes.Make(2), 1, dtypes.QASYMM8, quantization.New(1, 0))
	dst := tensors.New(dstInfo)

	op := NewArithmetic(testCPU, kernels.OpAdd)
	require.NoError(t, op.Configure(lhs, rhs, dst))
	require.Equal(t, "qasymm8", op.KernelName())
	allocate(t, dst)
	require.NoError(t, op.Run(nil))
	require.Equal(t, []uint8{1, 7}, tensors.MustCopyFlatData[uint8](dst))

	// Signed variant, saturating.
	sInfo := tensorinfo.NewQuantized(shapes.Make(2), 1, dtypes.QASYMM8_SIGNED, quantization.New(1, 0))
	s := tensors.FromFlatDataAndInfo(sInfo, []int8{100, -100})
	dst = runArithmetic(t, testCPU, kernels.OpAdd, s, s, "qasymm8_signed")
	require.Equal(t, []int8{127, -128}, tensors.MustCopyFlatData[int8](dst))
	assert.True(t, dst.Info().QuantizationInfo().Equal(quantization.New(1, 0)))
}

func TestArithmeticValidRegion(t *testing.T) {
	lhs := tensors.FromFlatData([]int16{1, 2, 3, 4, 5, 6}, 3, 2)
	rhs := tensors.FromFlatData([]int16{1, 1, 1, 1, 1, 1}, 3, 2)
	lhs.Info().SetValidRegion(shapes.ValidRegion{Anchor: shapes.Coordinates{1}, Shape: shapes.Make(2, 2)})
	dst := runArithmetic(t, testCPU, kernels.OpAdd, lhs, rhs, "generic_s16")
	region := dst.Info().ValidRegion()
	require.Equal(t, 1, region.Start(0))
	require.Equal(t, 3, region.End(0))
	got := tensors.MustCopyFlatData[int16](dst)
	require.Equal(t, []int16{0, 3, 4, 0, 6, 7}, got, "only the valid region is computed")
}

func TestArithmeticErrors(t *testing.T) {
	lhs := tensorinfo.New(shapes.Make(3, 2), 1, dtypes.F32)

	err := ValidateArithmetic(testCPU, kernels.OpAdd, lhs, tensorinfo.New(shapes.Make(2, 2), 1, dtypes.F32), tensorinfo.NewEmpty())
	require.True(t, status.Is(err, status.Shape))
	require.ErrorContains(t, err, "broadcast")

	err = ValidateArithmetic(testCPU, kernels.OpAdd, lhs, tensorinfo.New(shapes.Make(3, 2), 1, dtypes.S32), tensorinfo.NewEmpty())
	require.True(t, status.Is(err, status.Shape))

	err = ValidateArithmetic(testCPU, kernels.OpAdd, lhs, lhs, tensorinfo.New(shapes.Make(3), 1, dtypes.F32))
	require.True(t, status.Is(err, status.Shape))

	u64 := tensorinfo.New(shapes.Make(3), 1, dtypes.U64)
	err = ValidateArithmetic(testCPU, kernels.OpAdd, u64, u64, tensorinfo.NewEmpty())
	require.True(t, status.Is(err, status.Shape))

	// Validation has no side effects.
	dst := tensorinfo.NewEmpty()
	require.NoError(t, ValidateArithmetic(testCPU, kernels.OpAdd, lhs, lhs, dst))
	require.True(t, dst.Shape().IsEmpty())
}
