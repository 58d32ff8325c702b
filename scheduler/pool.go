// Copyright (c) 2026 Monix Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package scheduler

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/monifu/monix/task"
)

// PoolScheduler is a bounded-concurrency [task.Scheduler]: it runs each
// submitted function on its own goroutine, with a weighted semaphore
// capping how many run at once; a submission made while the cap is reached
// blocks the submitter until a running one finishes.
//
// A PoolScheduler must be constructed with [NewPoolScheduler] and should be
// shared across every [task.Context] that wants to run on the same
// resource budget; it has no notion of per-run isolation beyond whatever
// the caller layers on with [task.CancelConnection].
type PoolScheduler struct {
	sem *semaphore.Weighted
	em  task.ExecutionModel
	log task.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewPoolScheduler returns a scheduler backed by a pool of at most
// maxConcurrency simultaneously running submissions. em governs the frame
// budget handed to runs scheduled on it; a nil em defaults to
// [BatchedExecution] with its default batch size, and a nil log to
// [task.DefaultLogger].
func NewPoolScheduler(maxConcurrency int64, em task.ExecutionModel, log task.Logger) *PoolScheduler {
	if maxConcurrency <= 0 {
		maxConcurrency = 1
	}
	if em == nil {
		em = BatchedExecution{}
	}
	if log == nil {
		log = task.DefaultLogger()
	}
	return &PoolScheduler{
		sem: semaphore.NewWeighted(maxConcurrency),
		em:  em,
		log: log,
	}
}

// ExecuteAsync implements [task.Scheduler]. It blocks the caller only long
// enough to acquire a pool slot (or to discover the pool has been closed,
// in which case fn is dropped and a line is written to the pool's logger), then runs fn
// on a dedicated goroutine.
func (p *PoolScheduler) ExecuteAsync(fn func()) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.log.Printf("scheduler: ExecuteAsync called on closed pool, dropping submission")
		return
	}
	p.wg.Add(1)
	p.mu.Unlock()

	if err := p.sem.Acquire(context.Background(), 1); err != nil {
		p.wg.Done()
		p.log.Printf("scheduler: semaphore acquire failed: %v", err)
		return
	}
	go func() {
		defer p.wg.Done()
		defer p.sem.Release(1)
		fn()
	}()
}

// ExecutionModel implements [task.Scheduler].
func (p *PoolScheduler) ExecutionModel() task.ExecutionModel { return p.em }

// ReportFailure implements [task.Scheduler] by logging via the configured
// [task.Logger].
func (p *PoolScheduler) ReportFailure(err error) {
	p.log.Printf("scheduler: unreported failure: %v", err)
}

// Close marks the pool closed to further submissions and waits for every
// in-flight submission to finish. It does not cancel in-flight work; pair
// it with the relevant runs' [task.CancelConnection] for that.
func (p *PoolScheduler) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.wg.Wait()
}
