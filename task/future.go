// Copyright (c) 2026 Monix Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

import "sync"

// CancelableFuture is a handle to an in-flight [RunAsFuture] run. It can be
// waited on synchronously, polled, or cancelled; cancellation is
// best-effort and races with an in-flight completion exactly as the spec
// describes for [Context.Cancel].
type CancelableFuture[A any] struct {
	ctx *Context

	mu   sync.Mutex
	cond *sync.Cond
	done bool
	val  A
	err  error
}

func newCancelableFuture[A any](ctx *Context) *CancelableFuture[A] {
	f := &CancelableFuture[A]{ctx: ctx}
	f.cond = sync.NewCond(&f.mu)
	return f
}

func (f *CancelableFuture[A]) complete(v A, err error) {
	f.mu.Lock()
	f.val, f.err = v, err
	f.done = true
	f.mu.Unlock()
	f.cond.Broadcast()
}

// Cancel requests cancellation of the underlying run. It does not block
// until the run observes the request.
func (f *CancelableFuture[A]) Cancel() {
	f.ctx.Cancel()
}

// Wait blocks until the run completes and returns its outcome.
func (f *CancelableFuture[A]) Wait() (A, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for !f.done {
		f.cond.Wait()
	}
	return f.val, f.err
}

// Poll returns the outcome without blocking, reporting ok=false if the run
// has not completed yet.
func (f *CancelableFuture[A]) Poll() (value A, err error, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.done {
		return value, nil, false
	}
	return f.val, f.err, true
}
