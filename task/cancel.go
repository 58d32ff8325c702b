// Copyright (c) 2026 Monix Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

import "sync"

// CancelToken is a single cancellation callback pushed by an [Async]
// registration. Invoking it should make a best effort to abandon whatever
// external operation it represents (closing a socket, stopping a timer).
type CancelToken func()

// CancelConnection is a stack of cancel tokens. Async registrations push
// their own token; cancellation pops and invokes every token in reverse
// (LIFO) order, mirroring structured-cancellation semantics where the
// most-recently-started operation is the first one unwound.
//
// cancel() and push()/pop() are serialized by a mutex: the connection is
// single-producer in practice (one trampoline owns it at a time) but must
// tolerate a concurrent cancel() call arriving from another goroutine while
// a push is in flight.
type CancelConnection struct {
	mu        sync.Mutex
	tokens    []CancelToken
	cancelled bool
}

// NewCancelConnection returns an empty, live connection.
func NewCancelConnection() *CancelConnection {
	return &CancelConnection{}
}

// Push registers a cancel token. If the connection has already been
// cancelled, the token is invoked immediately instead of being queued,
// since no further poll of IsCancelled is guaranteed to occur.
func (c *CancelConnection) Push(tok CancelToken) {
	if tok == nil {
		return
	}
	c.mu.Lock()
	if c.cancelled {
		c.mu.Unlock()
		tok()
		return
	}
	c.tokens = append(c.tokens, tok)
	c.mu.Unlock()
}

// Pop removes and discards the most recently pushed token without invoking
// it, used once an Async registration has completed normally and no longer
// needs its own cancel token honored.
func (c *CancelConnection) Pop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n := len(c.tokens); n > 0 {
		c.tokens = c.tokens[:n-1]
	}
}

// Cancel marks the connection cancelled and invokes every pending token in
// LIFO order. Safe to call more than once; only the first call runs tokens.
func (c *CancelConnection) Cancel() {
	c.mu.Lock()
	if c.cancelled {
		c.mu.Unlock()
		return
	}
	c.cancelled = true
	tokens := c.tokens
	c.tokens = nil
	c.mu.Unlock()

	for i := len(tokens) - 1; i >= 0; i-- {
		tokens[i]()
	}
}

// IsCancelled reports whether Cancel has been called.
func (c *CancelConnection) IsCancelled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancelled
}
