// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package kernels implements the kernel selection registry: for each operator an ordered list of
// candidate implementations, each with a predicate over a selection key (data type, processor
// capabilities, operator-specific flags).
//
// Selection is a linear scan: the first candidate whose predicate matches wins, so more specialized
// kernels must be registered before the generic ones. Not finding a kernel is a configuration error:
// there is no silent fallback.
//
// Registries are populated during package initialization and read-only afterwards: Select is safe to
// call concurrently.
package kernels

import (
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/status"
	"github.com/gomlx/exceptions"
	"k8s.io/klog/v2"
)

// Kernel is a candidate implementation of an operator.
type Kernel[K any, F any] struct {
	// Name of the kernel, used for logging and reporting.
	Name string

	// IsSelected returns whether the kernel can handle the selection key.
	IsSelected func(key K) bool

	// Fn is the implementation.
	Fn F
}

// Registry is the ordered list of kernels of one operator, for selection keys of type K and
// implementations of type F.
type Registry[K any, F any] struct {
	name    string
	kernels []*Kernel[K, F]
}

// NewRegistry creates a registry for the operator name, with the given kernels in order of priority.
func NewRegistry[K any, F any](name string, kernels ...Kernel[K, F]) *Registry[K, F] {
	r := &Registry[K, F]{name: name}
	for _, k := range kernels {
		r.Register(k)
	}
	return r
}

// Name of the operator.
func (r *Registry[K, F]) Name() string { return r.name }

// Register appends a kernel, with lower priority than the ones already registered.
//
// It must be called during initialization only: registries are not safe for concurrent modification.
func (r *Registry[K, F]) Register(k Kernel[K, F]) {
	if k.Name == "" || k.IsSelected == nil {
		exceptions.Panicf("kernels.Registry(%q): kernel must have a name and a selection predicate", r.name)
	}
	for _, existing := range r.kernels {
		if existing.Name == k.Name {
			exceptions.Panicf("kernels.Registry(%q): kernel %q registered twice", r.name, k.Name)
		}
	}
	r.kernels = append(r.kernels, &k)
}

// Select returns the first kernel whose predicate matches key.
//
// It returns a status.Selection error if no kernel matches.
func (r *Registry[K, F]) Select(key K) (*Kernel[K, F], error) {
	for _, k := range r.kernels {
		if k.IsSelected(key) {
			klog.V(1).Infof("%s: selected kernel %q for %+v", r.name, k.Name, key)
			return k, nil
		}
	}
	return nil, status.Errorf(status.Selection, "%s: no kernel available for %+v", r.name, key)
}

// Kernels returns the registered kernels, in order of priority. The returned slice must not be changed.
func (r *Registry[K, F]) Kernels() []*Kernel[K, F] {
	return r.kernels
}

// Names returns the names of the registered kernels, in order of priority.
func (r *Registry[K, F]) Names() []string {
	names := make([]string, len(r.kernels))
	for ii, k := range r.kernels {
		names[ii] = k.Name
	}
	return names
}
