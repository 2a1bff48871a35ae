// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"time"

	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/cpuinfo"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/dtypes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/kernels"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/shapes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/tensorinfo"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/tensors"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/ops"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/runtime/scheduler"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// benchCase is one configured operator to time, and the number of bytes it touches per run.
type benchCase struct {
	op    ops.Operator
	bytes int
}

// newTensor allocates a tensor of the given shape and data type, with uniform padding.
func newTensor(shape shapes.Shape, dtype dtypes.DType, padding int) (*tensors.Tensor, error) {
	info := tensorinfo.New(shape, 1, dtype)
	if _, err := info.ExtendPadding(shapes.UniformPadding(padding)); err != nil {
		return nil, err
	}
	t := tensors.New(info)
	return t, t.Allocate()
}

// benchCases configures Fill, Copy (dense to padded) and Arithmetic(Add) on tensors of the given shape.
func benchCases(cpu *cpuinfo.CPUInfo, shape shapes.Shape, dtype dtypes.DType, padding int) ([]benchCase, error) {
	size := shape.TotalSize() * dtype.Size()
	lhs, err := newTensor(shape, dtype, 0)
	if err != nil {
		return nil, err
	}
	rhs, err := newTensor(shape, dtype, 0)
	if err != nil {
		return nil, err
	}
	padded, err := newTensor(shape, dtype, padding)
	if err != nil {
		return nil, err
	}
	dst, err := newTensor(shape, dtype, 0)
	if err != nil {
		return nil, err
	}

	fill := ops.NewFill(cpu)
	if err := fill.Configure(lhs, 1); err != nil {
		return nil, err
	}
	cp := ops.NewCopy(cpu)
	if err := cp.Configure(lhs, padded); err != nil {
		return nil, err
	}
	add := ops.NewArithmetic(cpu, kernels.OpAdd)
	if err := add.Configure(lhs, rhs, dst); err != nil {
		return nil, err
	}
	return []benchCase{{fill, size}, {cp, 2 * size}, {add, 3 * size}}, nil
}

// benchRows runs each case the given number of times, calling progress after each run, and returns a
// header and one row per case with the kernel, the time per run and the memory throughput.
func benchRows(cases []benchCase, s *scheduler.Scheduler, runs int, progress func()) ([][]string, error) {
	if runs < 1 {
		return nil, errors.Errorf("invalid number of benchmark runs %d", runs)
	}
	rows := [][]string{{"Operator", "Kernel", "Time/run", "Throughput"}}
	for _, c := range cases {
		start := time.Now()
		for range runs {
			if err := c.op.Run(s); err != nil {
				return nil, err
			}
			progress()
		}
		perRun := time.Since(start) / time.Duration(runs)
		throughput := "-"
		if perRun > 0 {
			throughput = humanize.IBytes(uint64(float64(c.bytes)/perRun.Seconds())) + "/s"
		}
		rows = append(rows, []string{c.op.Name(), c.op.KernelName(), fmt.Sprint(perRun), throughput})
	}
	return rows, nil
}
