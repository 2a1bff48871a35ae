// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

//go:build !arm64 && !amd64

package cpuinfo

// detect reports no vector extensions on other architectures: only the portable kernels are selected.
func detect() Features {
	return None
}
