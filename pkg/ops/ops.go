// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package ops implements operators on top of the tensor descriptors, windows and kernel registries.
//
// All operators follow the same life cycle:
//
//  1. Validate<Op>(cpu, infos..., params...): checks whether the operator can be configured with the
//     given descriptors. It has no side effects: outputs are auto-initialized on clones.
//  2. New<Op>(cpu) + Configure(tensors..., params...): auto-initializes empty outputs, selects the
//     kernel once (using the capability snapshot cpu) and computes the execution window.
//  3. Run(scheduler): executes the kernel over the window, split in parallel parts by the scheduler.
//     All tensors must be allocated by then.
//
// The capability snapshot is always injected: use cpuinfo.New() for the current processor, or
// cpuinfo.FromFeatures for tests.
package ops

import (
	"unsafe"

	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/cpuinfo"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/dtypes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/status"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/tensorinfo"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/tensors"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/window"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/runtime/scheduler"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// Operator is implemented by all operators.
type Operator interface {
	// Name of the operator.
	Name() string

	// KernelName returns the name of the kernel selected by Configure.
	KernelName() string

	// Run the configured operator. If s is nil, scheduler.Default() is used.
	Run(s *scheduler.Scheduler) error
}

// splitLargest as splitAxis lets the scheduler pick the axis with most iterations.
const splitLargest = -1

// operator holds the state shared by all operators once configured.
type operator struct {
	name       string
	cpu        *cpuinfo.CPUInfo
	kernelName string
	window     window.Window
	splitAxis  int
	workload   scheduler.Workload
	tensors    []*tensors.Tensor
}

func newOperator(name string, cpu *cpuinfo.CPUInfo) operator {
	if cpu == nil {
		exceptions.Panicf("%s: a cpuinfo.CPUInfo must be given", name)
	}
	return operator{name: name, cpu: cpu, splitAxis: splitLargest}
}

// Name implements Operator.
func (op *operator) Name() string { return op.name }

// KernelName implements Operator.
func (op *operator) KernelName() string { return op.kernelName }

// Window returns the execution window computed by Configure.
func (op *operator) Window() window.Window { return op.window }

// IsConfigured returns whether Configure succeeded.
func (op *operator) IsConfigured() bool { return op.workload != nil }

// configured records the outcome of a successful Configure.
func (op *operator) configured(kernelName string, w window.Window, workload scheduler.Workload, ts ...*tensors.Tensor) {
	op.kernelName = kernelName
	op.window = w
	op.workload = workload
	op.tensors = ts
}

// Run implements Operator.
func (op *operator) Run(s *scheduler.Scheduler) error {
	if op.workload == nil {
		return errors.Errorf("%s: Run called before a successful Configure", op.name)
	}
	for _, t := range op.tensors {
		if !t.IsAllocated() {
			return errors.Errorf("%s: tensor %s must be allocated before Run", op.name, t.Info())
		}
	}
	if s == nil {
		s = scheduler.Default()
	}
	if op.splitAxis == splitLargest {
		return s.ScheduleLargest(op.name, op.window, op.workload)
	}
	return s.Schedule(op.name, op.window, op.splitAxis, op.workload)
}

// tryValidate runs the validation fn, converting panics raised by value constructors into status.Shape
// errors, and prefixes errors with the operator name.
func tryValidate(name string, fn func() error) error {
	var err error
	if caught := exceptions.TryCatch[error](func() { err = fn() }); caught != nil {
		return status.Errorf(status.Shape, "%s: %v", name, caught)
	}
	return errors.WithMessage(err, name)
}

// checkDenseRows checks that consecutive elements of X are adjacent in memory, as the row kernels require.
func checkDenseRows(infos ...tensorinfo.Info) error {
	for _, info := range infos {
		if info.Strides().At(window.DimX) != info.ElementSize() {
			return status.Errorf(status.Layout, "stride of axis X (%d) differs from the element size (%d) in %s",
				info.Strides().At(window.DimX), info.ElementSize(), info)
		}
	}
	return nil
}

// checkQuantized checks that tensors of quantized types carry their quantization parameters.
func checkQuantized(infos ...tensorinfo.Info) error {
	for _, info := range infos {
		if info.DataType().IsQuantized() && info.QuantizationInfo().IsEmpty() {
			return status.Errorf(status.Shape, "tensor of type %s has no quantization information", info.DataType())
		}
	}
	return nil
}

// collapseOuterAxes merges the axes from Z onwards into Z, if the tensors have no holes between them.
func collapseOuterAxes(w window.Window, infos ...tensorinfo.Info) window.Window {
	for _, info := range infos {
		shape, strides := info.Shape(), info.Strides()
		for axis := window.DimZ + 1; axis < shape.Rank(); axis++ {
			if strides.At(axis) != strides.At(axis-1)*shape.Dim(axis-1) {
				return w
			}
		}
	}
	collapsed, _ := w.Collapse(window.DimZ)
	return collapsed
}

// splitRows returns the loop window for row kernels, with X reduced to a single iteration at its
// start, and the length of the rows.
func splitRows(w window.Window) (window.Window, int) {
	x := w.Dim(window.DimX)
	return w.Set(window.DimX, window.NewDimension(x.Start(), x.Start()+1, 1)), x.End() - x.Start()
}

// rowOf returns the n elements of t starting at the byte offset, as a slice of T.
func rowOf[T dtypes.Supported](t *tensors.Tensor, offset, n int) []T {
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&t.Buffer()[offset])), n)
}

// number are the supported Go types with native arithmetic.
type number interface {
	dtypes.Supported
	constraints.Integer | constraints.Float
}
