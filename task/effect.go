// Copyright (c) 2026 Monix Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

// Effect is a deferred, pure description of a computation that, when
// interpreted by [RunWithCallback], [RunAsFuture], or [Step], may produce a
// value of type A or fail.
//
// Effect values are immutable and safe to share and re-run; nothing about
// constructing one performs the computation it describes.
type Effect[A any] struct {
	node effectNode
}

// Callback receives the outcome of a run: exactly one of a zero-value err
// (success, with the produced value) or a non-nil err (failure, value is
// the zero value of A).
type Callback[A any] func(A, error)

// Pure lifts an already-computed value into an Effect.
func Pure[A any](v A) Effect[A] {
	return Effect[A]{node: pureNode{value: v}}
}

// Delay wraps a synchronous, side-effectful producer of A. The thunk runs
// under a non-fatal guard: a recovered panic classified as non-fatal by
// [NonFatal] becomes a [Fail], anything else re-panics.
func Delay[A any](thunk func() (A, error)) Effect[A] {
	return Effect[A]{node: delayNode{thunk: func() (any, error) {
		v, err := thunk()
		return v, err
	}}}
}

// Suspend lazily produces the next subtree. Like Delay, the thunk runs
// under a non-fatal guard.
func Suspend[A any](thunk func() Effect[A]) Effect[A] {
	return Effect[A]{node: suspendNode{thunk: func() effectNode {
		return thunk().node
	}}}
}

// Fail lifts a non-fatal error into a failed Effect.
func Fail[A any](err error) Effect[A] {
	return Effect[A]{node: failNode{err: err}}
}

// Bind sequences two effects: it runs e, then passes the result to k to
// obtain the next effect. A Bind whose source is itself a Bind or Mapped is
// legal; the trampoline re-associates it left-deep as it runs, never via a
// static rewrite.
func Bind[A, B any](e Effect[A], k func(A) Effect[B]) Effect[B] {
	return Effect[B]{node: &bindNode{
		source: e.node,
		k:      func(v any) effectNode { return k(v.(A)).node },
	}}
}

// Map transforms the result of e with a pure function f. f is assumed not
// to panic in the ordinary case; use [MapErr] when f itself may fail.
func Map[A, B any](e Effect[A], f func(A) B) Effect[B] {
	return Effect[B]{node: &mappedNode{
		source: e.node,
		f:      func(v any) any { return f(v.(A)) },
	}}
}

// MapErr transforms the result of e with a function that may itself panic
// non-fatally; the trampoline guards the call and converts a non-fatal
// panic into a Fail, matching Delay/Suspend semantics.
func MapErr[A, B any](e Effect[A], f func(A) B) Effect[B] {
	return Effect[B]{node: &mappedNode{
		source:   e.node,
		f:        func(v any) any { return f(v.(A)) },
		mayPanic: true,
	}}
}

// Then sequences e before n, discarding e's result.
func Then[A, B any](e Effect[A], n Effect[B]) Effect[B] {
	return Bind(e, func(A) Effect[B] { return n })
}

// Recover installs an error handler: if e fails with a non-fatal error, the
// handler is invoked with it to produce a replacement effect. If the
// handler itself fails, its error replaces the original (secondary-failure
// policy from the spec's error-handling design).
func Recover[A any](e Effect[A], handler func(error) Effect[A]) Effect[A] {
	return Effect[A]{node: &catchNode{
		source:  e.node,
		handler: func(err error) effectNode { return handler(err).node },
	}}
}

// CurrentContext resolves to the [Context] the surrounding run is
// executing under. Unlike [Async], it never crosses a scheduler boundary —
// it is meant for effects that need to reach their own Scheduler (for
// example to call [Scheduler.ReportFailure] on a secondary failure) without
// the overhead of a real asynchronous round-trip.
func CurrentContext() Effect[*Context] {
	return Effect[*Context]{node: contextNode{}}
}

// Async escapes to external asynchrony. register receives the run Context
// and a callback to invoke with the eventual outcome; it must invoke the
// callback at most once.
func Async[A any](register func(*Context, Callback[A])) Effect[A] {
	return Effect[A]{node: asyncNode{register: func(ctx *Context, cb func(any, error)) {
		register(ctx, func(v A, err error) { cb(v, err) })
	}}}
}

// Memoize wraps producer in a one-shot cell: concurrent runs of the
// returned Effect share a single evaluation of producer. If cacheErrors is
// false, a failed evaluation resets the cell so the next run attempts the
// producer afresh; in-flight waiters still observe the failure that was in
// progress when they joined.
//
// The returned Effect captures a fresh cell, so calling Memoize again
// produces an independently-memoized Effect; share the single returned
// value (or the producer closure, via a package-level var) to get sharing
// across call sites.
func Memoize[A any](producer func() Effect[A], cacheErrors bool) Effect[A] {
	cell := &atomicCell{}
	return Effect[A]{node: &memoizedNode{
		cell:        cell,
		producer:    func() effectNode { return producer().node },
		cacheErrors: cacheErrors,
	}}
}
