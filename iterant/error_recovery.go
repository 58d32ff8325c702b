// Copyright (c) 2026 Monix Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iterant

import "github.com/monifu/monix/task"

// OnErrorHandleWith intercepts a Halt carrying a non-nil error anywhere in
// s and replaces the remainder of the stream with whatever handler
// produces for that error; a Halt(nil) (normal completion) passes through
// untouched. Scope releases are not run before handler is consulted: the
// replacement stream continues inside every [ScopeWith] that was open at
// the failure, and those releases run once, when the combined stream ends,
// tagged with the [ExitCase] of that end (not [ExitErrorCase] for the
// handled error).
func OnErrorHandleWith[A any](s Stream[A], handler func(error) Stream[A]) Stream[A] {
	return Stream[A]{node: onErrorNode[A](s.node, handler)}
}

func onErrorNode[A any](node streamNode, handler func(error) Stream[A]) streamNode {
	rewrite := func(n streamNode) streamNode { return onErrorNode[A](n, handler) }
	switch n := node.(type) {
	case *nextNode:
		return &nextNode{value: n.value, rest: chainNextRecovering[A](n.rest, rewrite, handler)}
	case *nextCursorNode:
		return &nextCursorNode{cursor: n.cursor, rest: chainNextRecovering[A](n.rest, rewrite, handler)}
	case *nextBatchNode:
		return &nextBatchNode{batch: n.batch, rest: chainNextRecovering[A](n.rest, rewrite, handler)}
	case suspendNodeS:
		return suspendNodeS{thunk: func() streamNode { return rewrite(n.thunk()) }}
	case *effectNextNode:
		return &effectNextNode{next: chainNextRecovering[A](n.next, rewrite, handler)}
	case *scopeNode:
		return &scopeNode{acquire: n.acquire, use: func(r any) streamNode { return rewrite(n.use(r)) }, release: n.release}
	case lastNode:
		return n
	case haltNode:
		if n.err == nil {
			return n
		}
		return handler(n.err).node
	default:
		panic("iterant: unknown stream node type")
	}
}

// chainNextRecovering is [chainNext] with an error guard spliced in: a
// failure raised while pulling rest itself (not just a Halt already present
// in the tree) is handed to handler and its replacement stream substituted
// directly, unrewritten — exactly as the haltNode case above substitutes
// handler(err).node as-is rather than feeding it back through rewrite.
func chainNextRecovering[A any](rest effectErased, rewrite func(streamNode) streamNode, handler func(error) Stream[A]) effectErased {
	rewritten := task.Map(unerase[streamNode](rest), func(n streamNode) any {
		return rewrite(n)
	})
	guarded := task.Recover(rewritten, func(err error) task.Effect[any] {
		return task.Pure[any](handler(err).node)
	})
	return wrapErased(guarded)
}

// Attempt defers running producer until the returned Stream is pulled and
// streams whatever it produces. If producer fails or panics non-fatally,
// the returned Stream is [Raise] of that error: it yields no element and
// halts with the error, so a consumer such as [Fold] or [ToSlice] fails
// with it. Attempt does not wrap elements, and it does not turn the error
// into an element of the stream.
func Attempt[A any](producer task.Effect[Stream[A]]) Stream[A] {
	return Suspend(func() Stream[A] {
		return Stream[A]{node: &effectNextNode{next: wrapErased(task.Map(
			task.Recover(producer, func(err error) task.Effect[Stream[A]] {
				return task.Pure(Raise[A](err))
			}),
			func(s Stream[A]) any { return s.node },
		))}}
	})
}
