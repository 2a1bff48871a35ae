// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// acl_info reports the processor capabilities, the kernels selected for each operator and data type,
// and the memory layout of a tensor descriptor.
//
// Usage:
//
//	acl_info [-config=-sve,+bf16] [-kernels] [-list] [-shape=16,8 -dtype=F16 -padding=4] [-npy=x.npy]
//	acl_info -shape=1024,1024 -dtype=F32 -bench=100
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/cpuinfo"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/dtypes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/runtime/scheduler"
	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/janpfeifer/must"
	"github.com/muesli/termenv"
	"github.com/schollz/progressbar/v3"
	"k8s.io/klog/v2"
)

var (
	flagConfig = flag.String("config", "",
		fmt.Sprintf("Features configuration applied to the detected ones (e.g. \"-sve,+bf16\"). "+
			"If empty, $%s is used.", cpuinfo.ACL_CPU_FEATURES))
	flagKernels  = flag.Bool("kernels", true, "Display the kernel selected by each operator for each data type.")
	flagList     = flag.Bool("list", false, "List the kernels registered for each operator, in priority order.")
	flagShape    = flag.String("shape", "", "Comma-separated dimensions (axis 0 first) of a tensor to display the layout of.")
	flagDType    = flag.String("dtype", "F32", "Data type of the tensor given with -shape.")
	flagChannels = flag.Int("channels", 1, "Number of channels of the tensor given with -shape.")
	flagPadding  = flag.Int("padding", 0, "Uniform padding of the tensor given with -shape.")
	flagNpy      = flag.String("npy", "", "Path of a NumPy .npy file to load and display the layout and values of.")
	flagBench    = flag.Int("bench", 0, "If > 0, number of runs of Fill, Copy and Add to time on tensors given by -shape, -dtype and -padding.")
	flagPlain    = flag.Bool("plain", false, "Disable colors and styles in the output.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if len(flag.Args()) > 0 {
		klog.Errorf("Unexpected arguments %v. See 'acl_info -help'.", flag.Args())
		os.Exit(1)
	}

	if *flagPlain {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	cpu := cpuinfo.New()
	if *flagConfig != "" {
		cpu = must.M1(cpuinfo.NewWithConfig(*flagConfig))
	}
	fmt.Println(titleStyle.Render("Processor"))
	fmt.Println(renderRows(false, cpuRows(cpu)))

	if *flagKernels {
		fmt.Println(titleStyle.Render("Kernel selection"))
		fmt.Println(renderRows(true, kernelSelectionRows(cpu)))
	}
	if *flagList {
		fmt.Println(titleStyle.Render("Registered kernels"))
		fmt.Println(renderRows(true, registeredKernelRows()))
	}
	if *flagShape != "" {
		rows, err := layoutRows(*flagShape, *flagDType, *flagChannels, *flagPadding)
		if err != nil {
			klog.Exitf("Failed to create tensor descriptor: %+v", err)
		}
		fmt.Println(titleStyle.Render("Layout"))
		fmt.Println(renderRows(false, rows))
	}
	if *flagNpy != "" {
		rows, err := npyRows(*flagNpy)
		if err != nil {
			klog.Exitf("Failed to load %q: %+v", *flagNpy, err)
		}
		fmt.Println(titleStyle.Render(*flagNpy))
		fmt.Println(renderRows(false, rows))
	}
	if *flagBench > 0 {
		runBenchmark(cpu)
	}
}

// runBenchmark times the operators on the tensors described by the flags, with a progress bar.
func runBenchmark(cpu *cpuinfo.CPUInfo) {
	if *flagShape == "" {
		klog.Exitf("-bench requires -shape")
	}
	shape := must.M1(parseShape(*flagShape))
	dtype := must.M1(dtypes.FromName(*flagDType))
	cases, err := benchCases(cpu, shape, dtype, *flagPadding)
	if err != nil {
		klog.Exitf("Failed to configure benchmark: %+v", err)
	}
	bar := progressbar.NewOptions(len(cases)*(*flagBench),
		progressbar.OptionSetDescription("Benchmark"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish())
	rows, err := benchRows(cases, scheduler.Default(), *flagBench, func() { _ = bar.Add(1) })
	if err != nil {
		klog.Exitf("Benchmark failed: %+v", err)
	}
	_ = bar.Finish()
	fmt.Println(titleStyle.Render(fmt.Sprintf("Benchmark %s %s", shape, dtype)))
	fmt.Println(renderRows(true, rows))
}

var (
	headerRowStyle = lipgloss.NewStyle().Reverse(true).
			Padding(0, 2, 0, 2).Align(lipgloss.Center)

	oddRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFF")).
			PaddingLeft(1).PaddingRight(1)
	evenRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#999")).
			PaddingLeft(1).PaddingRight(1)

	titleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 4, 0, 4)
)

// renderRows renders the rows as a table. If withHeader, the first row is the header.
func renderRows(withHeader bool, rows [][]string) string {
	table := lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		StyleFunc(func(row, col int) (s lipgloss.Style) {
			if row == lgtable.HeaderRow {
				return headerRowStyle
			}
			if row%2 == 0 {
				s = oddRowStyle
			} else {
				s = evenRowStyle
			}
			if col == 0 {
				s = s.Align(lipgloss.Right)
			} else {
				s = s.Align(lipgloss.Left)
			}
			return
		})
	if withHeader && len(rows) > 0 {
		table.Headers(rows[0]...)
		rows = rows[1:]
	}
	table.Rows(rows...)
	return table.Render()
}
