// Copyright (c) 2026 Monix Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package task provides a purely functional effect interpreter: a tree of
// deferred effect descriptions ([Effect]) evaluated through a stack-safe
// trampoline with explicit asynchronous boundaries and cancellation.
//
// # Effect tree
//
// An [Effect] is a tagged, immutable description of a computation that,
// when run, produces a value or fails. Effects are built with [Pure],
// [Delay], [Suspend], [Bind], [Map], [Fail], [Async], and [Memoize], and
// are never executed until handed to one of the three entry points.
//
// # Running effects
//
//   - [RunWithCallback]: full interpretation; the callback fires at most once.
//   - [RunAsFuture]: returns a completed or pending [*CancelableFuture] handle.
//   - [Step]: runs synchronously up to the first async boundary, returning
//     the simplified remainder without crossing it.
//
// # Scheduling
//
// The interpreter creates one goroutine of its own only for a run that
// finds a [Memoize] producer already in flight: that goroutine blocks until
// the producer finishes, then resumes the run through the Scheduler. All
// other asynchrony flows through a [Scheduler] supplied by the caller; see
// the scheduler package
// for ready-made implementations. The [ExecutionModel] obtained from the
// scheduler governs how often the trampoline forces an async yield, which
// bounds synchronous recursion depth independently of bind-chain length.
//
// # Memoization and cancellation
//
// [Memoize] wraps a producer in a one-shot, race-resolved cell: concurrent
// runs of the same memoized effect share a single evaluation. A
// [*CancelConnection] accumulates cancel tokens pushed by [Async]
// registrations and invokes them in LIFO order on cancellation; a
// cancelled run never delivers its result.
package task
