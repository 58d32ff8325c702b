// Copyright (c) 2026 Monix Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

// RunWithCallback interprets e against ctx, invoking cb at most once with
// the final outcome; a run cancelled before it resumes from an async
// boundary never invokes cb. It runs e on the calling goroutine up to the
// first async boundary and then returns; cb may be invoked on the calling
// goroutine (if e never crosses an async boundary before completing) or on
// a goroutine chosen by ctx.Scheduler.
func RunWithCallback[A any](e Effect[A], ctx *Context, cb Callback[A]) {
	ctx.resetFrame()
	run(ctx, e.node, &bindStack{}, func(v any, err error) {
		if err != nil {
			var zero A
			cb(zero, err)
			return
		}
		cb(v.(A), nil)
	})
}

// RunAsFuture interprets e against ctx and returns a handle that can be
// polled, waited on, or used to request cancellation of the run.
func RunAsFuture[A any](e Effect[A], ctx *Context) *CancelableFuture[A] {
	fut := newCancelableFuture[A](ctx)
	RunWithCallback(e, ctx, func(v A, err error) {
		fut.complete(v, err)
	})
	return fut
}

// Step runs e synchronously up to the first point it would otherwise have
// to cross an asynchronous boundary — a forced frame-budget yield, an
// [Async] node, any [Memoize] node, resolved or not, or a [CurrentContext]
// node, which needs the real run's Context — and returns the simplified
// remainder as a new Effect standing in for whatever work is left.
//
// If e completes without ever needing to suspend, the returned Effect is
// equivalent to [Pure] of the final value, or [Fail] of the final error.
// Step never invokes ctx.Scheduler.ExecuteAsync; it is meant for callers
// that want to interleave the interpreter with their own scheduling loop.
func Step[A any](e Effect[A], em ExecutionModel) Effect[A] {
	ctx := &Context{
		Scheduler: &stepScheduler{em: em},
	}
	ctx.frame.index = em.NextFrameIndex(0)

	var stopped effectNode
	var stack *bindStack
	var finished bool
	var finalValue any
	var finalErr error

	runStep(ctx, e.node, &bindStack{}, func(v any, err error) {
		finished = true
		finalValue, finalErr = v, err
	}, &stopped, &stack)

	if finished {
		if finalErr != nil {
			return Effect[A]{node: failNode{err: finalErr}}
		}
		return Effect[A]{node: pureNode{value: finalValue}}
	}
	return Effect[A]{node: rebuildNode(stopped, stack)}
}

// stepScheduler never actually executes anything asynchronously; instead it
// records the suspended state so Step can rebuild it into a remainder
// effect. It is only ever handed to runStep, never to a real run.
type stepScheduler struct {
	em ExecutionModel
}

func (s *stepScheduler) ExecutionModel() ExecutionModel { return s.em }
func (s *stepScheduler) ExecuteAsync(fn func())         { fn() }
func (s *stepScheduler) ReportFailure(err error)        {}

// runStep is a copy of run's trampoline loop that stops and records state
// at the first forced boundary, Async, Memoized or CurrentContext node instead
// of handing off to a scheduler. Kept separate from run rather than
// parameterized, since threading a "stop here" signal through run's hot
// loop would cost every ordinary RunWithCallback/RunAsFuture caller a
// branch they never need.
func runStep(ctx *Context, current effectNode, stack *bindStack, onDone func(any, error), stoppedOut *effectNode, stackOut **bindStack) {
	em := ctx.Scheduler.ExecutionModel()
	frameIndex := ctx.frame.get()

	for {
		if frameIndex == 0 {
			*stoppedOut = current
			*stackOut = stack
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

		case asyncNode, *memoizedNode, contextNode:
			*stoppedOut = current
			*stackOut = stack
			return

		default:
			panic("task: unknown effect node type in trampoline")
		}

		frameIndex = em.NextFrameIndex(frameIndex)
		ctx.frame.set(frameIndex)
	}
}
