// Copyright (c) 2026 Monix Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iterant

import "github.com/monifu/monix/task"

// TakeStream truncates s to at most n elements. The remaining count is
// threaded explicitly through the rewrite rather than captured in a
// closure variable, so a Take'd Stream stays safe to interpret more than
// once or from more than one goroutine, the same sharing guarantee every
// other Stream value offers.
func TakeStream[A any](s Stream[A], n int) Stream[A] {
	if n <= 0 {
		return Empty[A]()
	}
	return Stream[A]{node: takeNode[A](s.node, n)}
}

func takeNode[A any](node streamNode, remaining int) streamNode {
	if remaining <= 0 {
		return haltNode{}
	}
	switch n := node.(type) {
	case *nextNode:
		a := n.value.(A)
		if remaining == 1 {
			return lastNode{value: a}
		}
		r := remaining
		return &nextNode{value: a, rest: chainNext[A, A](n.rest, func(next streamNode) streamNode {
			return takeNode[A](next, r-1)
		})}
	case *nextCursorNode:
		return takeCursor[A](n.cursor.(BatchCursor[A]), remaining, n.rest)
	case *nextBatchNode:
		return takeCursor[A](n.batch.(Batch[A]).Cursor(), remaining, n.rest)
	case suspendNodeS:
		return suspendNodeS{thunk: func() streamNode { return takeNode[A](n.thunk(), remaining) }}
	case *effectNextNode:
		return &effectNextNode{next: chainNext[A, A](n.next, func(next streamNode) streamNode {
			return takeNode[A](next, remaining)
		})}
	case *scopeNode:
		return &scopeNode{
			acquire: n.acquire,
			use:     func(r any) streamNode { return takeNode[A](n.use(r), remaining) },
			release: n.release,
		}
	case lastNode:
		return n
	case haltNode:
		return n
	default:
		panic("iterant: unknown stream node type")
	}
}

func takeCursor[A any](cursor BatchCursor[A], remaining int, rest effectErased) streamNode {
	taken := make([]A, 0, remaining)
	for remaining > 0 && cursor.HasNext() {
		taken = append(taken, cursor.Next())
		remaining--
	}
	if remaining == 0 {
		if len(taken) == 0 {
			return haltNode{}
		}
		return &nextBatchNode{batch: NewSliceBatch(taken, 0), rest: wrapErased(task.Pure[any](haltNode{}))}
	}
	contRest := chainNext[A, A](rest, func(next streamNode) streamNode { return takeNode[A](next, remaining) })
	if len(taken) == 0 {
		return &effectNextNode{next: contRest}
	}
	return &nextBatchNode{batch: NewSliceBatch(taken, 0), rest: contRest}
}
