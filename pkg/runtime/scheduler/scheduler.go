// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package scheduler runs the workload of a kernel over a window, splitting the window along one axis
// into disjoint parts that are executed in parallel.
//
// The number of threads is taken from the environment variable ACL_NUM_THREADS, or DefaultNumThreads
// if not set: 0 runs everything inline, a negative value means unlimited parallelism.
package scheduler

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/ARM-software/ComputeLibrary-sub049/internal/workerspool"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/shapes"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/status"
	"github.com/ARM-software/ComputeLibrary-sub049/pkg/core/window"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// ACL_NUM_THREADS is the environment variable with the number of threads used by the default scheduler.
//
//nolint:revive // Environment variable name.
const ACL_NUM_THREADS = "ACL_NUM_THREADS"

// DefaultNumThreads is used if ACL_NUM_THREADS is not set. If 0 (the default), runtime.NumCPU() is used.
var DefaultNumThreads int

// Workload runs a kernel over the given window, which is a part of the window being scheduled.
type Workload func(w window.Window) error

// Scheduler splits windows and runs the parts on a worker pool.
type Scheduler struct {
	pool *workerspool.Pool
}

// New creates a Scheduler with numThreads parallel workers. 0 runs workloads inline, a negative value
// means unlimited.
func New(numThreads int) *Scheduler {
	return &Scheduler{pool: workerspool.New(numThreads)}
}

var (
	defaultScheduler     *Scheduler
	defaultSchedulerOnce sync.Once
)

// Default returns the process wide scheduler, configured from ACL_NUM_THREADS.
func Default() *Scheduler {
	defaultSchedulerOnce.Do(func() {
		config, found := os.LookupEnv(ACL_NUM_THREADS)
		numThreads, err := ParseNumThreads(config)
		if found && err != nil {
			klog.Warningf("ignoring invalid %s=%q: %v", ACL_NUM_THREADS, config, err)
		}
		if !found || err != nil {
			numThreads = DefaultNumThreads
			if numThreads == 0 {
				defaultScheduler = &Scheduler{pool: workerspool.NewDefault()}
				return
			}
		}
		defaultScheduler = New(numThreads)
	})
	return defaultScheduler
}

// ParseNumThreads parses a number of threads configuration. It returns a status.Config error if it's
// not an integer.
func ParseNumThreads(config string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(config))
	if err != nil {
		return 0, status.Errorf(status.Config, "invalid number of threads %q", config)
	}
	return n, nil
}

// NumThreads returns the configured parallelism: 0 for inline execution, negative for unlimited.
func (s *Scheduler) NumThreads() int {
	return s.pool.MaxParallelism()
}

// Schedule runs workload over w, split along axis into as many parts as there are workers (and no more
// than the number of iterations of the axis).
//
// The parts are disjoint, and together they cover w. It returns the error of the first part that
// failed, wrapped with the name of the operator.
func (s *Scheduler) Schedule(name string, w window.Window, axis int, workload Workload) error {
	numParts := s.pool.NumWorkers(w.NumIterations(axis))
	if numParts <= 1 {
		klog.V(2).Infof("%s: running window %s inline", name, w)
		return s.runParts(name, w, []window.Window{w}, workload)
	}
	klog.V(2).Infof("%s: splitting window %s in %d parts along axis %d", name, w, numParts, axis)
	parts := make([]window.Window, numParts)
	for id := range parts {
		parts[id] = w.Split(axis, id, numParts)
	}
	return s.runParts(name, w, parts, workload)
}

// runParts runs workload on each of the parts of w, in parallel if there is more than one. It returns a
// status.Window error, without running anything, if a part is not a sub-window of w.
func (s *Scheduler) runParts(name string, w window.Window, parts []window.Window, workload Workload) error {
	for _, part := range parts {
		if err := window.ValidateSubwindow(w, part); err != nil {
			return errors.WithMessage(err, name)
		}
	}
	if len(parts) == 1 {
		return errors.WithMessage(workload(parts[0]), name)
	}
	err := s.pool.Run(len(parts), func(id int) error {
		return workload(parts[id])
	})
	return errors.WithMessage(err, name)
}

// ScheduleLargest is Schedule splitting along the axis with the most iterations, preferring the outer
// axes on ties.
func (s *Scheduler) ScheduleLargest(name string, w window.Window, workload Workload) error {
	axis := window.DimY
	for candidate := window.DimX; candidate < shapes.MaxDimensions; candidate++ {
		if w.NumIterations(candidate) >= w.NumIterations(axis) {
			axis = candidate
		}
	}
	return s.Schedule(name, w, axis, workload)
}
