// Copyright (c) 2026 Monix Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

import "sync/atomic"

// promise is a one-shot, many-waiters completion signal used by [Memoize]
// to fan a single producer result out to every concurrent waiter. It is
// intentionally minimal: a close-once channel plus the settled value, which
// every waiter reads only after observing the channel closed (establishing
// the happens-before edge the memo cell needs without relying on the cell's
// own atomic state, per spec: "waiters observe the producer's completion
// via the promise, not via the atomic cell state").
type promise struct {
	done  chan struct{}
	value any
	err   error
}

func newPromise() *promise {
	return &promise{done: make(chan struct{})}
}

func (p *promise) complete(value any, err error) {
	p.value = value
	p.err = err
	close(p.done)
}

func (p *promise) wait() (any, error) {
	<-p.done
	return p.value, p.err
}

// memoKind tags the three states a [Memoize] cell can occupy.
type memoKind uint8

const (
	memoUninitialized memoKind = iota
	memoInProgress
	memoDone
)

// memoState is the immutable payload stored behind the cell's atomic
// pointer. A nil *memoState represents Uninitialized so the zero value of
// atomicCell needs no explicit initialization.
type memoState struct {
	kind       memoKind
	promise    *promise
	cancelConn *CancelConnection // InProgress only: cancel tokens of the run driving the producer
	value      any               // Done only
	err        error             // Done only
}

// atomicCell is the padded atomic cell backing [Memoize]. The padding
// bytes push the cell to its own cache line: memoization cells are read on
// every hot-path visit to a Memoized node from potentially many concurrent
// waiters, and sharing a cache line with unrelated fields would otherwise
// invite false sharing between goroutines racing to resolve independent
// memoized effects held in the same slice or struct.
type atomicCell struct {
	state atomic.Pointer[memoState]
	_     [56]byte // pad to 64 bytes (one cache line on amd64) alongside the 8-byte pointer
}

func (c *atomicCell) load() *memoState {
	return c.state.Load()
}

func (c *atomicCell) compareAndSwap(old, new *memoState) bool {
	return c.state.CompareAndSwap(old, new)
}

func (c *atomicCell) reset(old *memoState) bool {
	return c.state.CompareAndSwap(old, nil)
}
