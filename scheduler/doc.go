// Copyright (c) 2026 Monix Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package scheduler provides ready-made [task.Scheduler] implementations:
// [PoolScheduler], a bounded-concurrency goroutine pool suited to
// production runs, and [Inline], a synchronous scheduler for deterministic
// tests that runs every asynchronous hop immediately on the calling
// goroutine. It also provides three [task.ExecutionModel] policies:
// [BatchedExecution], [AlwaysAsyncExecution] and [SyncExecution].
package scheduler
