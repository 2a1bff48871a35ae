// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package cpuinfo

import (
	"runtime"
	"testing"

	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatures(t *testing.T) {
	f := NEON | FP16 | SVE
	require.True(t, f.Has(NEON|FP16))
	require.False(t, f.Has(NEON|BF16))
	require.True(t, f.HasAny(BF16|SVE))
	require.Equal(t, 3, f.Count())
	require.Equal(t, "fp16,neon,sve", f.String())
	require.Equal(t, "none", None.String())
	require.Equal(t, NEON|SVE, f.Without(FP16))
	require.Equal(t, f|DOT, f.With(DOT))
	require.Len(t, AllFeatures(), len(featureNames))

	feature, found := FeatureFromName(" AVX512F ")
	require.True(t, found)
	require.Equal(t, AVX512F, feature)
	_, found = FeatureFromName("mmx")
	require.False(t, found)
}

func TestApplyConfig(t *testing.T) {
	f, err := ApplyConfig(NEON|FP16|SVE, "-sve")
	require.NoError(t, err)
	require.Equal(t, NEON|FP16, f)

	f, err = ApplyConfig(NEON|FP16|SVE, "none, +neon,+bf16")
	require.NoError(t, err)
	require.Equal(t, NEON|BF16, f)

	f, err = ApplyConfig(AVX|AVX2, "")
	require.NoError(t, err)
	require.Equal(t, AVX|AVX2, f)

	_, err = ApplyConfig(NEON, "sve")
	require.True(t, status.Is(err, status.Config))
	_, err = ApplyConfig(NEON, "+mmx")
	require.True(t, status.Is(err, status.Config))
}

func TestNew(t *testing.T) {
	t.Setenv(ACL_CPU_FEATURES, "none,+fp16")
	info := New()
	require.Equal(t, FP16, info.Features())
	require.True(t, info.HasFP16())
	require.False(t, info.HasNEON())
	require.Equal(t, runtime.GOARCH, info.Arch())
	require.Greater(t, info.NumCPUs(), 0)

	// Invalid configuration is ignored.
	t.Setenv(ACL_CPU_FEATURES, "bogus")
	info = New()
	require.Equal(t, detect(), info.Features())

	_, err := NewWithConfig("+bogus")
	require.Error(t, err)
}

func TestDetect(t *testing.T) {
	features := detect()
	switch runtime.GOARCH {
	case "arm64":
		assert.True(t, features.Has(NEON))
		assert.False(t, features.HasAny(AVX|AVX2|AVX512F))
	case "amd64":
		assert.False(t, features.HasAny(NEON|SVE|FP16))
	default:
		assert.Equal(t, None, features)
	}
}

func TestSyntheticSnapshots(t *testing.T) {
	info := FromFeatures(NEON, DOT, BF16)
	require.True(t, info.HasDotProd())
	require.True(t, info.HasBF16())
	require.False(t, info.HasSVE())
	require.False(t, info.HasSVE2())
	require.Contains(t, info.String(), "bf16,dot,neon")
	require.True(t, FromFeatures(AVX512BF16).HasBF16())
	require.True(t, FromFeatures(AVX512VNNI).HasDotProd())
}
