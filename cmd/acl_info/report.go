// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/cpuinfo"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/dtypes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/kernels"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/shapes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/tensorinfo"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/tensors/numpy"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/window"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/ops"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/runtime/scheduler"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

// noKernel is displayed when no kernel matches.
const noKernel = "-"

// reportDTypes are the data types listed in the kernel selection report.
var reportDTypes = []dtypes.DType{
	dtypes.U8, dtypes.S8, dtypes.QASYMM8, dtypes.QASYMM8_SIGNED, dtypes.U16, dtypes.S16,
	dtypes.U32, dtypes.S32, dtypes.BF16, dtypes.F16, dtypes.F32, dtypes.F64,
}

func cpuRows(cpu *cpuinfo.CPUInfo) [][]string {
	return [][]string{
		{"architecture", cpu.Arch()},
		{"# CPUs", humanize.Comma(int64(cpu.NumCPUs()))},
		{"# threads", strconv.Itoa(scheduler.Default().NumThreads())},
		{"features", cpu.Features().String()},
		{"fp16", strconv.FormatBool(cpu.HasFP16())},
		{"bf16", strconv.FormatBool(cpu.HasBF16())},
		{"dot product", strconv.FormatBool(cpu.HasDotProd())},
		{"sve / sve2", fmt.Sprintf("%t / %t", cpu.HasSVE(), cpu.HasSVE2())},
	}
}

// selectedName returns the name of the selected kernel, or noKernel.
func selectedName[K any, F any](r *kernels.Registry[K, F], key K) string {
	k, err := r.Select(key)
	if err != nil {
		return noKernel
	}
	return k.Name
}

// kernelSelectionRows returns a header and one row per data type with the kernel each operator selects.
func kernelSelectionRows(cpu *cpuinfo.CPUInfo) [][]string {
	isa := cpu.Features()
	rows := [][]string{{"DType", "Add", "Add (broadcast)", "Fill", "Range", "Cast to F32"}}
	for _, dtype := range reportDTypes {
		castName := noKernel
		if !dtype.IsQuantized() {
			castName = selectedName(ops.CastKernels, kernels.CastSelectorData{Src: dtype, Dst: dtypes.F32, ISA: isa})
		}
		rows = append(rows, []string{
			dtype.String(),
			selectedName(ops.ArithmeticKernels, kernels.ElementwiseSelectorData{DType: dtype, ISA: isa, Op: kernels.OpAdd}),
			selectedName(ops.ArithmeticKernels, kernels.ElementwiseSelectorData{DType: dtype, ISA: isa, Op: kernels.OpAdd, Broadcast: true}),
			selectedName(ops.FillKernels, kernels.DataTypeISASelectorData{DType: dtype, ISA: isa}),
			selectedName(ops.RangeKernels, kernels.DataTypeISASelectorData{DType: dtype, ISA: isa}),
			castName,
		})
	}
	return rows
}

// registeredKernelRows lists the kernels of each registry, in priority order.
func registeredKernelRows() [][]string {
	rows := [][]string{{"Operator", "Kernels"}}
	for _, entry := range []struct {
		name  string
		names []string
	}{
		{ops.ArithmeticKernels.Name(), ops.ArithmeticKernels.Names()},
		{ops.CastKernels.Name(), ops.CastKernels.Names()},
		{ops.CopyKernels.Name(), ops.CopyKernels.Names()},
		{ops.FillKernels.Name(), ops.FillKernels.Names()},
		{ops.RangeKernels.Name(), ops.RangeKernels.Names()},
	} {
		rows = append(rows, []string{entry.name, strings.Join(entry.names, ", ")})
	}
	return rows
}

// parseShape parses comma-separated dimensions.
func parseShape(text string) (shapes.Shape, error) {
	parts := strings.Split(text, ",")
	if len(parts) > shapes.MaxDimensions {
		return shapes.Shape{}, errors.Errorf("shape %q has more than %d dimensions", text, shapes.MaxDimensions)
	}
	dims := make([]int, len(parts))
	for ii, part := range parts {
		dim, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || dim <= 0 {
			return shapes.Shape{}, errors.Errorf("invalid dimension %q in shape %q", part, text)
		}
		dims[ii] = dim
	}
	return shapes.Make(dims...), nil
}

// layoutRows describes the layout of a tensor with the given shape, data type, channels and padding.
func layoutRows(shapeText, dtypeName string, numChannels, padding int) ([][]string, error) {
	shape, err := parseShape(shapeText)
	if err != nil {
		return nil, err
	}
	dtype, err := dtypes.FromName(dtypeName)
	if err != nil {
		return nil, err
	}
	if numChannels < 1 || padding < 0 {
		return nil, errors.Errorf("invalid number of channels (%d) or padding (%d)", numChannels, padding)
	}
	info := tensorinfo.New(shape, numChannels, dtype)
	if _, err := info.ExtendPadding(shapes.UniformPadding(padding)); err != nil {
		return nil, err
	}
	return infoRows(info), nil
}

// infoRows describes the layout of a tensor descriptor.
func infoRows(info *tensorinfo.TensorInfo) [][]string {
	w := window.FromInfo(info, nil)
	return [][]string{
		{"shape", info.Shape().String()},
		{"dtype", info.DataType().String()},
		{"channels", strconv.Itoa(info.NumChannels())},
		{"element size", humanize.IBytes(uint64(info.ElementSize()))},
		{"padding", info.Padding().String()},
		{"strides", info.Strides().String()},
		{"first element offset", humanize.Comma(int64(info.OffsetFirstElement()))},
		{"total size", humanize.IBytes(uint64(info.TotalSize()))},
		{"has holes", strconv.FormatBool(tensorinfo.HasHolesAll(info))},
		{"window", w.String()},
		{"iterations", humanize.Comma(int64(w.NumIterationsTotal()))},
	}
}

// npyRows loads a .npy file and describes its layout, followed by a summary of its values.
func npyRows(filePath string) ([][]string, error) {
	t, err := numpy.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	rows := infoRows(t.Info())
	rows = append(rows, []string{"values", t.Summary(4)})
	return rows, nil
}
