// Copyright (c) 2026 Monix Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iterant

import "github.com/monifu/monix/task"

// foldState threads the fold accumulator plus the eventual terminal error
// through the stream walk; releases are run before either is delivered.
type foldState[B any] struct {
	acc B
	err error
}

type release func(ExitCase) task.Effect[struct{}]

// Fold consumes s, applying step to each element in order. step returns the
// next accumulator and whether the fold should keep pulling; returning
// false stops the walk early and tears down any open [ScopeWith] resources
// with [ExitEarlyStop] instead of [ExitCompleted].
func Fold[A, B any](s Stream[A], zero B, step func(B, A) (B, bool)) task.Effect[B] {
	return task.Suspend(func() task.Effect[B] {
		return task.Bind(task.CurrentContext(), func(ctx *task.Context) task.Effect[B] {
			walk := foldNode[A, B](ctx, s.node, foldState[B]{acc: zero}, step, nil)
			return task.Bind(walk, func(st foldState[B]) task.Effect[B] {
				if st.err != nil {
					return task.Fail[B](st.err)
				}
				return task.Pure(st.acc)
			})
		})
	})
}

// ToSlice consumes every element of s into a slice, in order.
func ToSlice[A any](s Stream[A]) task.Effect[[]A] {
	return Fold[A, []A](s, nil, func(acc []A, a A) ([]A, bool) {
		return append(acc, a), true
	})
}

// Count consumes s purely to count its elements.
func Count[A any](s Stream[A]) task.Effect[int] {
	return Fold[A, int](s, 0, func(acc int, _ A) (int, bool) { return acc + 1, true })
}

func foldNode[A, B any](ctx *task.Context, node streamNode, st foldState[B], step func(B, A) (B, bool), releases []release) task.Effect[foldState[B]] {
	switch n := node.(type) {
	case *nextNode:
		a := n.value.(A)
		nb, cont := step(st.acc, a)
		st.acc = nb
		if !cont {
			return runReleases(ctx, releases, ExitEarlyStop, st)
		}
		return task.Bind(unerase[streamNode](n.rest), func(next streamNode) task.Effect[foldState[B]] {
			return foldNode[A, B](ctx, next, st, step, releases)
		})

	case *nextCursorNode:
		return foldCursor[A, B](ctx, n.cursor.(BatchCursor[A]), st, step, n.rest, releases)

	case *nextBatchNode:
		cursor := n.batch.(Batch[A]).Cursor()
		return foldCursor[A, B](ctx, cursor, st, step, n.rest, releases)

	case suspendNodeS:
		return task.Suspend(func() task.Effect[foldState[B]] {
			return foldNode[A, B](ctx, n.thunk(), st, step, releases)
		})

	case *effectNextNode:
		return task.Bind(unerase[streamNode](n.next), func(next streamNode) task.Effect[foldState[B]] {
			return foldNode[A, B](ctx, next, st, step, releases)
		})

	case *scopeNode:
		return task.Bind(unerase[any](n.acquire), func(r any) task.Effect[foldState[B]] {
			rel := release(func(ec ExitCase) task.Effect[struct{}] { return n.release(r, ec).e })
			scoped := append(append([]release(nil), releases...), rel)
			return foldNode[A, B](ctx, n.use(r), st, step, scoped)
		})

	case lastNode:
		a := n.value.(A)
		nb, _ := step(st.acc, a)
		st.acc = nb
		return runReleases(ctx, releases, ExitCompleted, st)

	case haltNode:
		if n.err != nil {
			st.err = n.err
			return runReleases(ctx, releases, ExitErrorCase(n.err), st)
		}
		return runReleases(ctx, releases, ExitCompleted, st)

	default:
		panic("iterant: unknown stream node type")
	}
}

// foldCursor drains a batch of already-materialized elements in a single
// synchronous loop, the batched-pull path that avoids one interpreter
// round-trip per element.
func foldCursor[A, B any](ctx *task.Context, cursor BatchCursor[A], st foldState[B], step func(B, A) (B, bool), rest effectErased, releases []release) task.Effect[foldState[B]] {
	for cursor.HasNext() {
		a := cursor.Next()
		nb, cont := step(st.acc, a)
		st.acc = nb
		if !cont {
			return runReleases(ctx, releases, ExitEarlyStop, st)
		}
	}
	return task.Bind(unerase[streamNode](rest), func(next streamNode) task.Effect[foldState[B]] {
		return foldNode[A, B](ctx, next, st, step, releases)
	})
}

// runReleases invokes every pending scope release, most-recently-acquired
// first, guarding each one so a failing release never skips the releases
// still owed to scopes acquired before it (spec: acquired == released on
// every path). The first error encountered — the fold's own terminal error,
// or else the first release to fail — is the one delivered to the caller;
// every release failure after that is non-fatal from the fold's point of
// view and is routed to the scheduler's failure reporter instead.
func runReleases[B any](ctx *task.Context, releases []release, ec ExitCase, st foldState[B]) task.Effect[foldState[B]] {
	n := len(releases)
	if n == 0 {
		if st.err != nil {
			return task.Fail[foldState[B]](st.err)
		}
		return task.Pure(st)
	}
	guarded := task.Recover(releases[n-1](ec), func(err error) task.Effect[struct{}] {
		if st.err == nil {
			st.err = err
		} else {
			ctx.Scheduler.ReportFailure(err)
		}
		return task.Pure(struct{}{})
	})
	return task.Bind(guarded, func(struct{}) task.Effect[foldState[B]] {
		return runReleases(ctx, releases[:n-1], ec, st)
	})
}
