// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package workerspool implements a bounded pool of goroutines used to run the parts of a split
// window in parallel.
package workerspool

import (
	"runtime"
	"sync"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// Pool limits the number of tasks running in parallel.
type Pool struct {
	// maxParallelism is the limit of tasks running at the same time.
	// 0 disables parallelism (tasks run inline), and a negative value means unlimited.
	maxParallelism int

	mu         sync.Mutex
	cond       sync.Cond // Signaled whenever numRunning is decreased.
	numRunning int
}

// New returns a Pool with the given parallelism. See MaxParallelism.
func New(maxParallelism int) *Pool {
	p := &Pool{maxParallelism: maxParallelism}
	p.cond = sync.Cond{L: &p.mu}
	return p
}

// NewDefault returns a Pool with the parallelism set to runtime.NumCPU().
func NewDefault() *Pool {
	return New(runtime.NumCPU())
}

// IsEnabled returns whether parallelism is enabled (maxParallelism != 0).
func (p *Pool) IsEnabled() bool {
	return p.maxParallelism != 0
}

// IsUnlimited returns whether parallelism is unlimited (maxParallelism < 0).
func (p *Pool) IsUnlimited() bool {
	return p.maxParallelism < 0
}

// MaxParallelism is the limit of tasks running in parallel.
// If 0 parallelism is disabled, if negative it is unlimited.
func (p *Pool) MaxParallelism() int {
	return p.maxParallelism
}

// NumWorkers returns into how many parallel parts a job of numItems independent items should be split.
// It is always at least 1 (for numItems >= 1) and at most numItems.
func (p *Pool) NumWorkers(numItems int) int {
	if numItems <= 1 || !p.IsEnabled() {
		return 1
	}
	if p.IsUnlimited() {
		return numItems
	}
	return min(numItems, p.maxParallelism)
}

// lockedIsFull returns whether all available workers are in use.
//
// It must be called with Pool.mu acquired.
func (p *Pool) lockedIsFull() bool {
	if p.maxParallelism < 0 {
		return false
	}
	return p.numRunning >= p.maxParallelism
}

// WaitToStart waits until there is a worker available and runs the task in a goroutine.
//
// If parallelism is disabled, it runs the task inline and returns when it is finished.
func (p *Pool) WaitToStart(task func()) {
	if p.IsUnlimited() {
		go task()
		return
	} else if p.maxParallelism == 0 {
		task()
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for p.lockedIsFull() {
		p.cond.Wait()
	}
	p.numRunning++
	go func() {
		defer func() {
			p.mu.Lock()
			p.numRunning--
			p.cond.Signal()
			p.mu.Unlock()
		}()
		task()
	}()
}

// Run executes task(id) for id in [0, numTasks), in parallel as allowed by the pool, and waits for all
// of them to finish.
//
// It returns the error of the lowest task id that failed. A panicking task is reported as an error.
func (p *Pool) Run(numTasks int, task func(id int) error) error {
	if numTasks <= 0 {
		return nil
	}
	errs := make([]error, numTasks)
	runTask := func(id int) {
		var err error
		if panicked := exceptions.Try(func() { err = task(id) }); panicked != nil {
			if e, ok := panicked.(error); ok {
				err = errors.WithMessagef(e, "task #%d panicked", id)
			} else {
				err = errors.Errorf("task #%d panicked: %v", id, panicked)
			}
		}
		errs[id] = err
	}

	if numTasks == 1 || !p.IsEnabled() {
		for id := range numTasks {
			runTask(id)
		}
	} else {
		var wg sync.WaitGroup
		wg.Add(numTasks)
		for id := range numTasks {
			p.WaitToStart(func() {
				defer wg.Done()
				runTask(id)
			})
		}
		wg.Wait()
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
