// Copyright (c) 2026 Monix Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package scheduler

import "github.com/monifu/monix/task"

// Inline runs every submitted function synchronously, on the calling
// goroutine, in the order it is submitted. It never actually migrates
// continuations off the caller's stack, which makes interleavings
// deterministic — exactly what a property test over the interpreter wants:
// the only thing varying between runs should be the program under test,
// not which goroutine happened to run which step.
//
// Pairing Inline with [AlwaysAsyncExecution] exercises every forced-async
// code path in the interpreter (frame resets, locals snapshot/restore)
// without ever leaving the calling goroutine.
type Inline struct {
	em  task.ExecutionModel
	log task.Logger
}

// NewInline returns an Inline scheduler using em, or [BatchedExecution]
// with its default batch size if em is nil. A nil log falls back to
// [task.DefaultLogger].
func NewInline(em task.ExecutionModel, log task.Logger) *Inline {
	if em == nil {
		em = BatchedExecution{}
	}
	if log == nil {
		log = task.DefaultLogger()
	}
	return &Inline{em: em, log: log}
}

// ExecuteAsync implements [task.Scheduler] by running fn immediately.
func (i *Inline) ExecuteAsync(fn func()) { fn() }

// ExecutionModel implements [task.Scheduler].
func (i *Inline) ExecutionModel() task.ExecutionModel { return i.em }

// ReportFailure implements [task.Scheduler] by logging via the configured
// [task.Logger].
func (i *Inline) ReportFailure(err error) {
	i.log.Printf("scheduler: unreported failure: %v", err)
}
