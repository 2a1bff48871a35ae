// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

//go:build arm64

package cpuinfo

import "golang.org/x/sys/cpu"

// detect reads the arm64 hardware capabilities exposed by the operating system.
//
// BF16 and I8MM are not reported by golang.org/x/sys/cpu: enable them with "+bf16" or "+i8mm" in the
// ACL_CPU_FEATURES configuration on hardware known to support them.
func detect() Features {
	features := NEON
	if cpu.ARM64.HasFPHP && cpu.ARM64.HasASIMDHP {
		features |= FP16
	}
	if cpu.ARM64.HasASIMDDP {
		features |= DOT
	}
	if cpu.ARM64.HasASIMDFHM {
		features |= FHM
	}
	if cpu.ARM64.HasSVE {
		features |= SVE
	}
	if cpu.ARM64.HasSVE2 {
		features |= SVE2
	}
	return features
}
