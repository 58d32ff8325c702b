// Copyright (c) 2026 Monix Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

// ExecutionModel governs how aggressively the trampoline runs synchronously
// before forcing an asynchronous yield back to the Scheduler.
//
// NextFrameIndex must return 0 periodically (per whatever budget the
// implementation chooses) to force a boundary, and must never return 0 as
// the very first index of a fresh run span.
type ExecutionModel interface {
	// NextFrameIndex returns the frame index that follows current. A
	// result of 0 signals the trampoline to suspend the current state and
	// resume it via Scheduler.ExecuteAsync.
	NextFrameIndex(current int) int
}

// Scheduler is the external collaborator the interpreter asks for
// asynchrony. Every asynchronous hop — forced frame-budget boundaries,
// Async registrations that themselves want to run elsewhere, memoization
// resumption — goes through ExecuteAsync. The one goroutine the engine
// starts itself waits on an in-flight memoized producer and then hands the
// resumption to ExecuteAsync.
type Scheduler interface {
	// ExecuteAsync schedules fn to run asynchronously relative to the
	// caller. Implementations must eventually invoke fn exactly once
	// unless the process exits first.
	ExecuteAsync(fn func())

	// ExecutionModel returns the frame-budgeting policy paired with this
	// scheduler.
	ExecutionModel() ExecutionModel

	// ReportFailure delivers an error that has nowhere else to go: a
	// secondary failure from a release/handler that ran after the
	// primary result was already delivered, or a double-completion on a
	// restart callback.
	ReportFailure(err error)
}
