// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package cpuinfo

import (
	"math/bits"
	"slices"
	"strings"
)

// Features is a bit-set of processor instruction set extensions.
type Features uint64

// Known features.
const (
	// NEON (Advanced SIMD), always present on arm64.
	NEON Features = 1 << iota

	// FP16 half-precision arithmetic on NEON (FEAT_FP16).
	FP16

	// DOT product instructions (FEAT_DotProd).
	DOT

	// FHM half-precision multiply-accumulate into single precision (FEAT_FHM).
	FHM

	// SVE scalable vector extension.
	SVE

	// SVE2 scalable vector extension, version 2.
	SVE2

	// BF16 bfloat16 arithmetic (FEAT_BF16).
	BF16

	// I8MM 8-bit integer matrix multiply (FEAT_I8MM).
	I8MM

	// AVX on x86-64.
	AVX

	// AVX2 on x86-64.
	AVX2

	// FMA fused multiply-add (FMA3) on x86-64.
	FMA

	// AVX512F AVX-512 foundation on x86-64.
	AVX512F

	// AVX512BF16 AVX-512 bfloat16 instructions on x86-64.
	AVX512BF16

	// AVX512VNNI AVX-512 vector neural network (int8 dot product) instructions on x86-64.
	AVX512VNNI

	lastFeature
)

// None is the empty feature set.
const None Features = 0

var featureNames = map[Features]string{
	NEON:       "neon",
	FP16:       "fp16",
	DOT:        "dot",
	FHM:        "fhm",
	SVE:        "sve",
	SVE2:       "sve2",
	BF16:       "bf16",
	I8MM:       "i8mm",
	AVX:        "avx",
	AVX2:       "avx2",
	FMA:        "fma",
	AVX512F:    "avx512f",
	AVX512BF16: "avx512bf16",
	AVX512VNNI: "avx512vnni",
}

// FeatureFromName returns the feature with the given (case-insensitive) name.
func FeatureFromName(name string) (Features, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for f, fName := range featureNames {
		if fName == name {
			return f, true
		}
	}
	return None, false
}

// AllFeatures lists every known feature, in bit order.
func AllFeatures() []Features {
	all := make([]Features, 0, len(featureNames))
	for f := Features(1); f < lastFeature; f <<= 1 {
		all = append(all, f)
	}
	return all
}

// Has returns whether all the features in want are present.
func (f Features) Has(want Features) bool {
	return f&want == want
}

// HasAny returns whether any of the features in want is present.
func (f Features) HasAny(want Features) bool {
	return f&want != 0
}

// With returns f plus the given features.
func (f Features) With(other Features) Features {
	return f | other
}

// Without returns f minus the given features.
func (f Features) Without(other Features) Features {
	return f &^ other
}

// Count returns the number of features in the set.
func (f Features) Count() int {
	return bits.OnesCount64(uint64(f))
}

// Names returns the sorted names of the features in the set.
func (f Features) Names() []string {
	var names []string
	for _, feature := range AllFeatures() {
		if f.Has(feature) {
			names = append(names, featureNames[feature])
		}
	}
	slices.Sort(names)
	return names
}

// String implements fmt.Stringer: a comma-separated list of names, or "none".
func (f Features) String() string {
	if f == None {
		return "none"
	}
	return strings.Join(f.Names(), ",")
}
