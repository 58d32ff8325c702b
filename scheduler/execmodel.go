// Copyright (c) 2026 Monix Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package scheduler

// BatchedExecution forces an asynchronous boundary every BatchSize
// trampoline steps, trading a bit of scheduling overhead for bounded
// synchronous recursion depth on long bind chains. A zero BatchSize is
// treated as 1024, the default the teacher's frame budget uses for its own
// step counter.
type BatchedExecution struct {
	BatchSize int
}

// NextFrameIndex implements [task.ExecutionModel]. current counts down from
// BatchSize to 0; a current of 0 means "start a fresh batch" (used both to
// seed a new run and to reseed after the trampoline has consumed the
// boundary signaled by a returned 0).
func (b BatchedExecution) NextFrameIndex(current int) int {
	size := b.BatchSize
	if size <= 0 {
		size = 1024
	}
	if current <= 0 {
		return size
	}
	return current - 1
}

// AlwaysAsyncExecution forces an asynchronous boundary after every single
// trampoline step. It is useful for flushing out bugs that only manifest
// across a real scheduler hop (locals propagation, cancellation races)
// since it turns every step into one.
type AlwaysAsyncExecution struct{}

// NextFrameIndex implements [task.ExecutionModel]. A current of 0 seeds a
// fresh run with a budget of one step; any other current ends the budget.
func (AlwaysAsyncExecution) NextFrameIndex(current int) int {
	if current <= 0 {
		return 1
	}
	return 0
}

// SyncExecution never forces a boundary on its own; only an explicit
// [task.Async] or [task.Memoize] miss yields control to the scheduler. It
// is meant to be paired with [Inline], since pairing it with [PoolScheduler]
// would let a long synchronous bind chain run unbounded on a pool
// goroutine.
type SyncExecution struct{}

// NextFrameIndex implements [task.ExecutionModel].
func (SyncExecution) NextFrameIndex(current int) int {
	if current <= 0 {
		return 1
	}
	return current
}
