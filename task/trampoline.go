// Copyright (c) 2026 Monix Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

import (
	"errors"
	"sync/atomic"
)

// run is the trampolined interpreter. It processes current and the pending
// bind chain in stack until the computation completes (onDone is invoked
// and run returns), fails with no handler left (onDone is invoked with the
// error and run returns), or crosses an asynchronous boundary (run returns
// without invoking onDone; a later call to run, made from a scheduled
// continuation, picks up where this one left off).
//
// ctx.frame must already hold the frame index this invocation should start
// from — callers that resume after an async boundary are responsible for
// calling ctx.resetFrame() (or otherwise setting it) before calling run.
func run(ctx *Context, current effectNode, stack *bindStack, onDone func(any, error)) {
	em := ctx.Scheduler.ExecutionModel()
	frameIndex := ctx.frame.get()

	for {
		if frameIndex == 0 {
			// Forced async boundary: bound synchronous recursion depth by
			// handing the remaining state to the scheduler.
			cur, st := current, stack
			ctx.frame.set(0)
			ctx.Scheduler.ExecuteAsync(func() {
				if ctx.ShouldCancel() {
					return
				}
				ctx.resetFrame()
				run(ctx, cur, st, onDone)
			})
			return
		}

		switch n := current.(type) {
		case pureNode:
			next, done, val := unboxAndContinue(stack, n.value)
			if done {
				onDone(val, nil)
				return
			}
			current = next

		case delayNode:
			v, err := guardedCall(n.thunk)
			if err != nil {
				current = failNode{err: err}
			} else {
				next, done, val := unboxAndContinue(stack, v)
				if done {
					onDone(val, nil)
					return
				}
				current = next
			}

		case suspendNode:
			next, err := guardedSuspend(n.thunk)
			if err != nil {
				current = failNode{err: err}
			} else {
				current = next
			}

		case *bindNode:
			stack.pushPlain(n.k)
			current = n.source

		case *mappedNode:
			stack.pushPlain(makeMapContinuation(n))
			current = n.source

		case *catchNode:
			stack.pushHandler(n.handler)
			current = n.source

		case failNode:
			h, ok := stack.popHandler()
			if !ok {
				onDone(nil, n.err)
				return
			}
			current = applyHandlerGuarded(h, n.err)

		case asyncNode:
			submitAsync(ctx, n, stack, onDone)
			return

		case *memoizedNode:
			next, exit := handleMemoized(ctx, n, stack, onDone)
			if exit {
				return
			}
			current = next

		case contextNode:
			next, done, val := unboxAndContinue(stack, ctx)
			if done {
				onDone(val, nil)
				return
			}
			current = next

		default:
			panic("task: unknown effect node type in trampoline")
		}

		frameIndex = em.NextFrameIndex(frameIndex)
		ctx.frame.set(frameIndex)
	}
}

// unboxAndContinue pops the next non-handler continuation and applies it to
// value, or reports completion if the stack is empty.
func unboxAndContinue(stack *bindStack, value any) (next effectNode, done bool, result any) {
	k, ok := stack.popPlain()
	if !ok {
		return nil, true, value
	}
	return applyGuarded(k, value), false, nil
}

func makeMapContinuation(n *mappedNode) func(any) effectNode {
	f := n.f
	if !n.mayPanic {
		return func(v any) effectNode { return pureNode{value: f(v)} }
	}
	return func(v any) effectNode {
		res, err := guardedMapCall(f, v)
		if err != nil {
			return failNode{err: err}
		}
		return pureNode{value: res}
	}
}

// guardedCall runs a Delay thunk under a non-fatal panic guard.
func guardedCall(thunk func() (any, error)) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = classifyPanic(r)
		}
	}()
	return thunk()
}

// guardedSuspend runs a Suspend thunk under a non-fatal panic guard.
func guardedSuspend(thunk func() effectNode) (next effectNode, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = classifyPanic(r)
		}
	}()
	next = thunk()
	return
}

// guardedMapCall runs a MapErr transformation under a non-fatal panic guard.
func guardedMapCall(f func(any) any, v any) (res any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = classifyPanic(r)
		}
	}()
	res = f(v)
	return
}

// applyGuarded applies a bind continuation under a non-fatal panic guard; a
// thrown error replaces the value the continuation would have produced.
func applyGuarded(k func(any) effectNode, v any) (next effectNode) {
	defer func() {
		if r := recover(); r != nil {
			next = failNode{err: classifyPanic(r)}
		}
	}()
	return k(v)
}

// applyHandlerGuarded applies an error handler under a non-fatal panic
// guard; a secondary thrown error replaces the original, per spec.
func applyHandlerGuarded(h func(error) effectNode, e error) (next effectNode) {
	defer func() {
		if r := recover(); r != nil {
			next = failNode{err: classifyPanic(r)}
		}
	}()
	return h(e)
}

// submitAsync hands control to an Async registration. The restart callback
// it builds accepts at most one completion and always resumes the
// trampoline via the Scheduler, so that no continuation ever runs directly
// on an arbitrary foreign call stack.
func submitAsync(ctx *Context, n asyncNode, stack *bindStack, onDone func(any, error)) {
	var locals *Locals
	if ctx.Options.PropagateLocals {
		locals = ctx.Locals.Snapshot()
	}

	var used atomic.Bool
	restart := func(v any, err error) {
		if !used.CompareAndSwap(false, true) {
			ctx.Scheduler.ReportFailure(errors.New("task: async callback invoked more than once"))
			return
		}
		ctx.Scheduler.ExecuteAsync(func() {
			// Cancellation is checked after the async operation completes
			// and before signaling, so a caller that cancels concurrently
			// with completion still gets a chance to suppress delivery.
			if ctx.ShouldCancel() {
				return
			}
			prevLocals := ctx.Locals
			if locals != nil {
				ctx.Locals = locals
			}
			ctx.resetFrame()
			var resumeNode effectNode
			if err != nil {
				resumeNode = failNode{err: err}
			} else {
				resumeNode = pureNode{value: v}
			}
			run(ctx, resumeNode, stack, onDone)
			if locals != nil {
				ctx.Locals = prevLocals
			}
		})
	}
	n.register(ctx, restart)
}

// handleMemoized resolves one visit to a Memoized cell, looping internally
// only to retry a lost CAS race; every other outcome returns to the caller.
func handleMemoized(ctx *Context, n *memoizedNode, stack *bindStack, onDone func(any, error)) (next effectNode, exit bool) {
	for {
		old := n.cell.load()
		switch {
		case old == nil:
			prom := newPromise()
			cancelConn := NewCancelConnection()
			fresh := &memoState{kind: memoInProgress, promise: prom, cancelConn: cancelConn}
			if !n.cell.compareAndSwap(old, fresh) {
				continue // lost the race; re-read and retry
			}
			producerNode, perr := guardedSuspend(n.producer)
			if perr != nil {
				finishMemo(n, prom, nil, perr, n.cacheErrors, ctx.Options.Observer)
				return failNode{err: perr}, false
			}
			producerCtx := &Context{Scheduler: ctx.Scheduler, Options: ctx.Options, cancelConn: cancelConn}
			if ctx.Options.PropagateLocals {
				producerCtx.Locals = ctx.Locals.Snapshot()
			}
			producerCtx.frame.index = ctx.Scheduler.ExecutionModel().NextFrameIndex(0)
			run(producerCtx, producerNode, &bindStack{}, func(v any, err error) {
				finishMemo(n, prom, v, err, n.cacheErrors, ctx.Options.Observer)
				ctx.resetFrame()
				var resumeNode effectNode
				if err != nil {
					resumeNode = failNode{err: err}
				} else {
					resumeNode = pureNode{value: v}
				}
				run(ctx, resumeNode, stack, onDone)
			})
			return nil, true

		case old.kind == memoInProgress:
			notifyMemoRace(ctx.Options.Observer)
			inProgress := old
			ctx.CancelConnection().Push(func() { inProgress.cancelConn.Cancel() })
			go func() {
				v, err := inProgress.promise.wait()
				ctx.Scheduler.ExecuteAsync(func() {
					ctx.resetFrame()
					var resumeNode effectNode
					if err != nil {
						resumeNode = failNode{err: err}
					} else {
						resumeNode = pureNode{value: v}
					}
					run(ctx, resumeNode, stack, onDone)
				})
			}()
			return nil, true

		case old.kind == memoDone:
			notifyMemoHit(ctx.Options.Observer)
			if old.err != nil {
				return failNode{err: old.err}, false
			}
			return pureNode{value: old.value}, false

		default:
			panic("task: unreachable memo state")
		}
	}
}

// finishMemo records a producer's outcome and releases every waiter. When
// cacheErrors is false and the producer failed, the cell is reset to
// Uninitialized before the promise completes so the next run attempts the
// producer afresh; already-queued waiters still observe this failure.
func finishMemo(n *memoizedNode, prom *promise, v any, err error, cacheErrors bool, observer MemoObserver) {
	if err != nil {
		notifyMemoFailure(observer)
	}
	if err != nil && !cacheErrors {
		n.cell.state.Store(nil)
	} else {
		n.cell.state.Store(&memoState{kind: memoDone, value: v, err: err})
	}
	prom.complete(v, err)
}

// rebuildNode folds the pending bind stack back into an effect tree,
// innermost frame first, producing the "simplified remainder" [Step]
// returns when it stops short of a full run.
func rebuildNode(current effectNode, stack *bindStack) effectNode {
	node := current
	if stack.hasFirst {
		node = foldFrame(node, stack.bFirst)
	}
	for i := len(stack.rest) - 1; i >= 0; i-- {
		node = foldFrame(node, stack.rest[i])
	}
	return node
}

func foldFrame(node effectNode, f stackFrame) effectNode {
	if f.isHandler {
		return &catchNode{source: node, handler: f.handler}
	}
	return &bindNode{source: node, k: f.plain}
}
