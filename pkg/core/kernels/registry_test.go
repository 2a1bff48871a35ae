// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package kernels

import (
	"testing"

	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/cpuinfo"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/dtypes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testFn func() string

func fp16Kernel() Kernel[DataTypeISASelectorData, testFn] {
	return Kernel[DataTypeISASelectorData, testFn]{
		Name: "neon_fp16",
		IsSelected: func(key DataTypeISASelectorData) bool {
			return key.DType == dtypes.F16 && key.ISA.Has(cpuinfo.FP16)
		},
		Fn: func() string { return "fp16" },
	}
}

func fp32Kernel() Kernel[DataTypeISASelectorData, testFn] {
	return Kernel[DataTypeISASelectorData, testFn]{
		Name:       "neon_fp32",
		IsSelected: func(key DataTypeISASelectorData) bool { return key.DType == dtypes.F32 },
		Fn:         func() string { return "fp32" },
	}
}

func TestSelect(t *testing.T) {
	r := NewRegistry("Test", fp16Kernel(), fp32Kernel())
	require.Equal(t, "Test", r.Name())
	require.Equal(t, []string{"neon_fp16", "neon_fp32"}, r.Names())
	require.Len(t, r.Kernels(), 2)

	k, err := r.Select(DataTypeISASelectorData{DType: dtypes.F16, ISA: cpuinfo.NEON | cpuinfo.FP16})
	require.NoError(t, err)
	require.Equal(t, "neon_fp16", k.Name)
	require.Equal(t, "fp16", k.Fn())

	k, err = r.Select(DataTypeISASelectorData{DType: dtypes.F32})
	require.NoError(t, err)
	require.Equal(t, "fp32", k.Fn())

	// F16 without FP16 support: no silent fallback to the F32 kernel.
	k, err = r.Select(DataTypeISASelectorData{DType: dtypes.F16, ISA: cpuinfo.NEON})
	require.Nil(t, k)
	require.Error(t, err)
	require.True(t, status.Is(err, status.Selection))
}

func TestSelectDeterminism(t *testing.T) {
	generic := Kernel[DataTypeISASelectorData, testFn]{
		Name:       "generic",
		IsSelected: func(DataTypeISASelectorData) bool { return true },
		Fn:         func() string { return "generic" },
	}
	u8 := Kernel[DataTypeISASelectorData, testFn]{
		Name:       "u8",
		IsSelected: func(key DataTypeISASelectorData) bool { return key.DType == dtypes.U8 },
		Fn:         func() string { return "u8" },
	}
	key := DataTypeISASelectorData{DType: dtypes.F32, ISA: cpuinfo.AVX2}

	r := NewRegistry("Test", u8, fp16Kernel(), fp32Kernel(), generic)
	first, err := r.Select(key)
	require.NoError(t, err)
	for range 10 {
		k, err := r.Select(key)
		require.NoError(t, err)
		require.Same(t, first, k)
	}

	// Removing or reordering non-matching entries doesn't change the result.
	for _, reordered := range []*Registry[DataTypeISASelectorData, testFn]{
		NewRegistry("Test", fp32Kernel(), generic),
		NewRegistry("Test", fp16Kernel(), u8, fp32Kernel(), generic),
		NewRegistry("Test", fp32Kernel(), u8, generic),
	} {
		k, err := reordered.Select(key)
		require.NoError(t, err)
		require.Equal(t, first.Name, k.Name)
	}

	// The first match wins.
	k, err := NewRegistry("Test", generic, fp32Kernel()).Select(key)
	require.NoError(t, err)
	require.Equal(t, "generic", k.Name)
}

func TestRegisterErrors(t *testing.T) {
	r := NewRegistry[DataTypeISASelectorData, testFn]("Test")
	r.Register(fp32Kernel())
	require.Panics(t, func() { r.Register(fp32Kernel()) })
	require.Panics(t, func() { r.Register(Kernel[DataTypeISASelectorData, testFn]{Name: "no predicate"}) })
	require.Panics(t, func() {
		r.Register(Kernel[DataTypeISASelectorData, testFn]{IsSelected: func(DataTypeISASelectorData) bool { return true }})
	})
}

func TestSoftmaxSelector(t *testing.T) {
	type softmaxFn func(axis int) int
	r := NewRegistry("Softmax",
		Kernel[SoftmaxSelectorData, softmaxFn]{
			Name: "sve_logits_1d",
			IsSelected: func(key SoftmaxSelectorData) bool {
				return key.DType.IsFloat() && key.ISA.Has(cpuinfo.SVE) && key.Axis == 0
			},
			Fn: func(axis int) int { return axis },
		},
		Kernel[SoftmaxSelectorData, softmaxFn]{
			Name:       "neon_log_softmax",
			IsSelected: func(key SoftmaxSelectorData) bool { return key.DType.IsFloat() && key.IsLog },
			Fn:         func(axis int) int { return -axis },
		},
	)
	k, err := r.Select(SoftmaxSelectorData{DType: dtypes.F32, ISA: cpuinfo.SVE, Axis: 0})
	require.NoError(t, err)
	assert.Equal(t, "sve_logits_1d", k.Name)
	k, err = r.Select(SoftmaxSelectorData{DType: dtypes.F32, ISA: cpuinfo.SVE, Axis: 1, IsLog: true})
	require.NoError(t, err)
	assert.Equal(t, -1, k.Fn(1))
	_, err = r.Select(SoftmaxSelectorData{DType: dtypes.S32, ISA: cpuinfo.SVE})
	require.Error(t, err)
}

func TestCastSelector(t *testing.T) {
	r := NewRegistry("Cast",
		Kernel[CastSelectorData, testFn]{
			Name: "bf16_to_fp32",
			IsSelected: func(key CastSelectorData) bool {
				return key.Src == dtypes.BF16 && key.Dst == dtypes.F32 && key.ISA.HasAny(cpuinfo.BF16|cpuinfo.AVX512BF16)
			},
			Fn: func() string { return "bf16" },
		})
	_, err := r.Select(CastSelectorData{Src: dtypes.BF16, Dst: dtypes.F32, ISA: cpuinfo.AVX512BF16})
	require.NoError(t, err)
	_, err = r.Select(CastSelectorData{Src: dtypes.BF16, Dst: dtypes.F32, ISA: cpuinfo.AVX2})
	require.True(t, status.Is(err, status.Selection))
	assert.Equal(t, "Max", OpMax.String())
}
