// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package cpuinfo provides the capability snapshot used to select kernels: the set of instruction set
// extensions (Features) available on the processor.
//
// A CPUInfo is an immutable value created once (usually with New) and passed explicitly to the operators
// that select kernels. Tests create synthetic snapshots with FromFeatures.
//
// The detected features can be changed with a configuration string, taken from the environment variable
// ACL_CPU_FEATURES or from DefaultConfig. It's a comma-separated list of:
//
//   - "-<feature>": remove a detected feature (e.g.: "-sve" to benchmark the NEON kernels).
//   - "+<feature>": add a feature that was not detected. Only for testing, or for hardware where the
//     operating system doesn't report it: selecting a kernel the processor can't run crashes the program.
//   - "none": clear all features (only the portable kernels are used).
//
// Entries are applied in order, so "none,+neon" leaves only NEON.
package cpuinfo

import (
	"os"
	"runtime"
	"strings"

	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/status"
	"k8s.io/klog/v2"
)

// ACL_CPU_FEATURES is the environment variable with the configuration applied to the detected features.
// See the package documentation for its format.
//
//nolint:revive // Environment variable name.
const ACL_CPU_FEATURES = "ACL_CPU_FEATURES"

// DefaultConfig is the configuration used if ACL_CPU_FEATURES is not set.
var DefaultConfig string

// CPUInfo is an immutable snapshot of the processor capabilities.
type CPUInfo struct {
	features Features
	numCPUs  int
	arch     string
}

// New detects the processor features and applies the configuration from ACL_CPU_FEATURES (or
// DefaultConfig). An invalid configuration is logged and ignored.
func New() *CPUInfo {
	config, found := os.LookupEnv(ACL_CPU_FEATURES)
	if !found {
		config = DefaultConfig
	}
	info, err := NewWithConfig(config)
	if err != nil {
		klog.Warningf("ignoring invalid %s configuration %q: %v", ACL_CPU_FEATURES, config, err)
		return FromFeatures(detect())
	}
	return info
}

// NewWithConfig detects the processor features and applies the given configuration.
// It returns a status.Config error if the configuration can't be parsed.
func NewWithConfig(config string) (*CPUInfo, error) {
	features, err := ApplyConfig(detect(), config)
	if err != nil {
		return nil, err
	}
	return FromFeatures(features), nil
}

// FromFeatures creates a CPUInfo with the given features, for the current architecture and number of CPUs.
func FromFeatures(features ...Features) *CPUInfo {
	var all Features
	for _, f := range features {
		all |= f
	}
	return &CPUInfo{features: all, numCPUs: runtime.NumCPU(), arch: runtime.GOARCH}
}

// ApplyConfig applies the configuration (see package documentation) to the given features.
func ApplyConfig(features Features, config string) (Features, error) {
	for _, entry := range strings.Split(config, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.EqualFold(entry, "none") {
			features = None
			continue
		}
		var add bool
		switch entry[0] {
		case '+':
			add = true
		case '-':
		default:
			return features, status.Errorf(status.Config, "invalid entry %q in features configuration %q: it must start with '+' or '-', or be \"none\"", entry, config)
		}
		feature, found := FeatureFromName(entry[1:])
		if !found {
			return features, status.Errorf(status.Config, "unknown feature %q in features configuration %q", entry[1:], config)
		}
		if add {
			features = features.With(feature)
		} else {
			features = features.Without(feature)
		}
	}
	return features, nil
}

// Features returns the available features.
func (c *CPUInfo) Features() Features { return c.features }

// Has returns whether all the given features are available.
func (c *CPUInfo) Has(want Features) bool { return c.features.Has(want) }

// NumCPUs returns the number of logical CPUs.
func (c *CPUInfo) NumCPUs() int { return c.numCPUs }

// Arch returns the architecture name (runtime.GOARCH).
func (c *CPUInfo) Arch() string { return c.arch }

// HasNEON returns whether NEON is available.
func (c *CPUInfo) HasNEON() bool { return c.Has(NEON) }

// HasFP16 returns whether half-precision vector arithmetic is available.
func (c *CPUInfo) HasFP16() bool { return c.Has(FP16) }

// HasBF16 returns whether bfloat16 vector arithmetic is available (on arm64 or x86-64).
func (c *CPUInfo) HasBF16() bool { return c.features.HasAny(BF16 | AVX512BF16) }

// HasSVE returns whether SVE is available.
func (c *CPUInfo) HasSVE() bool { return c.Has(SVE) }

// HasSVE2 returns whether SVE2 is available.
func (c *CPUInfo) HasSVE2() bool { return c.Has(SVE2) }

// HasDotProd returns whether int8 dot product instructions are available (on arm64 or x86-64).
func (c *CPUInfo) HasDotProd() bool { return c.features.HasAny(DOT | AVX512VNNI) }

// String implements fmt.Stringer.
func (c *CPUInfo) String() string {
	return c.arch + "[" + c.features.String() + "]"
}
