// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

//go:build amd64

package cpuinfo

import "golang.org/x/sys/cpu"

// detect probes each x86-64 extension individually.
func detect() Features {
	var features Features
	if cpu.X86.HasAVX {
		features |= AVX
	}
	if cpu.X86.HasAVX2 {
		features |= AVX2
	}
	if cpu.X86.HasFMA {
		features |= FMA
	}
	if cpu.X86.HasAVX512F {
		features |= AVX512F
	}
	if cpu.X86.HasAVX512BF16 {
		features |= AVX512BF16
	}
	if cpu.X86.HasAVX512VNNI {
		features |= AVX512VNNI
	}
	return features
}
