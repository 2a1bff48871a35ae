// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package shapes

import (
	"github.com/pkg/errors"
)

// Per-axis states stored in DimsState.
const (
	// StaticDim marks an axis whose dimension is fixed at configuration time.
	StaticDim = 0

	// DynamicDim marks an axis whose dimension is only known at run time (e.g.: batch size).
	// The dimension stored in the shape is then a placeholder.
	DynamicDim = -1
)

// DimsState holds the state (StaticDim or DynamicDim) of each axis of a shape.
// The zero value has all axes static.
type DimsState [MaxDimensions]int

// AllDynamic returns a DimsState with every axis dynamic.
func AllDynamic() DimsState {
	var d DimsState
	for axis := range d {
		d[axis] = DynamicDim
	}
	return d
}

// WithDynamic returns a copy of d with the given axes marked as dynamic.
func (d DimsState) WithDynamic(axes ...int) DimsState {
	for _, axis := range axes {
		d[axis] = DynamicDim
	}
	return d
}

// IsDynamic returns whether any axis is dynamic.
func (d DimsState) IsDynamic() bool {
	for _, state := range d {
		if state == DynamicDim {
			return true
		}
	}
	return false
}

// IsAxisDynamic returns whether the given axis is dynamic.
func (d DimsState) IsAxisDynamic(axis int) bool {
	return d[axis] == DynamicDim
}

// Resolve returns a copy of shape with the dynamic axes replaced by the values given in bindings
// (axis -> dimension). Dynamic axes without a binding keep their placeholder dimension.
//
// It returns an error if a binding is given for a static axis, or with a non-positive dimension.
func (d DimsState) Resolve(shape Shape, bindings map[int]int) (Shape, error) {
	for axis, value := range bindings {
		if axis < 0 || axis >= MaxDimensions {
			return shape, errors.Errorf("cannot resolve axis %d: out-of-bounds (max %d dimensions)", axis, MaxDimensions)
		}
		if d[axis] != DynamicDim {
			return shape, errors.Errorf("cannot resolve axis %d of shape %s: axis is static", axis, shape)
		}
		if value <= 0 {
			return shape, errors.Errorf("cannot resolve axis %d of shape %s to dimension %d", axis, shape, value)
		}
		shape = shape.Set(axis, value, true)
	}
	return shape, nil
}

// Matches checks that a concrete shape is compatible with the pattern shape: static axes must have
// the same dimension, dynamic axes accept any dimension.
func (d DimsState) Matches(pattern, concrete Shape) error {
	for axis := range MaxDimensions {
		if d[axis] == DynamicDim {
			continue
		}
		if pattern.Dim(axis) != concrete.Dim(axis) {
			return errors.Errorf("axis %d mismatch: pattern %s has %d, concrete %s has %d",
				axis, pattern, pattern.Dim(axis), concrete, concrete.Dim(axis))
		}
	}
	return nil
}
