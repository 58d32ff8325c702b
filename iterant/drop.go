// Copyright (c) 2026 Monix Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iterant

// DropWhileWithIndex discards a leading run of elements for which pred
// returns true, each call receiving the element's zero-based position in
// the original stream; once pred returns false for some element, that
// element and everything after it is kept, even if pred would have
// matched a later element again.
//
// This is the representative hard case for a batched-cursor pull engine:
// when the predicate stops matching in the middle of an already-pulled
// [NextCursor]/[NextBatch] batch, the unconsumed tail of that batch must be
// spliced into a fresh node rather than dropped along with the matched
// prefix.
func DropWhileWithIndex[A any](s Stream[A], pred func(A, int) bool) Stream[A] {
	return Stream[A]{node: dropWhileNode[A](s.node, pred, 0, true)}
}

func dropWhileNode[A any](node streamNode, pred func(A, int) bool, idx int, dropping bool) streamNode {
	if !dropping {
		return node
	}
	switch n := node.(type) {
	case *nextNode:
		a := n.value.(A)
		if pred(a, idx) {
			i := idx + 1
			return &effectNextNode{next: chainNext[A, A](n.rest, func(next streamNode) streamNode {
				return dropWhileNode[A](next, pred, i, true)
			})}
		}
		return &nextNode{value: a, rest: n.rest}

	case *nextCursorNode:
		return dropWhileCursor[A](n.cursor.(BatchCursor[A]), pred, idx, n.rest)

	case *nextBatchNode:
		return dropWhileCursor[A](n.batch.(Batch[A]).Cursor(), pred, idx, n.rest)

	case suspendNodeS:
		return suspendNodeS{thunk: func() streamNode { return dropWhileNode[A](n.thunk(), pred, idx, true) }}

	case *effectNextNode:
		return &effectNextNode{next: chainNext[A, A](n.next, func(next streamNode) streamNode {
			return dropWhileNode[A](next, pred, idx, true)
		})}

	case *scopeNode:
		return &scopeNode{
			acquire: n.acquire,
			use:     func(r any) streamNode { return dropWhileNode[A](n.use(r), pred, idx, true) },
			release: n.release,
		}

	case lastNode:
		a := n.value.(A)
		if pred(a, idx) {
			return haltNode{}
		}
		return n

	case haltNode:
		return n

	default:
		panic("iterant: unknown stream node type")
	}
}

// dropWhileCursor walks an already-materialized batch element by element.
// As soon as pred fails, the just-read element plus every element still
// unread in the cursor are spliced into a fresh [NextBatch] so none of the
// kept tail of the original batch is lost.
func dropWhileCursor[A any](cursor BatchCursor[A], pred func(A, int) bool, idx int, rest effectErased) streamNode {
	for cursor.HasNext() {
		v := cursor.Next()
		if !pred(v, idx) {
			kept := append([]A{v}, remaining(cursor)...)
			return &nextBatchNode{batch: NewSliceBatch(kept, 0), rest: rest}
		}
		idx++
	}
	return &effectNextNode{next: chainNext[A, A](rest, func(next streamNode) streamNode {
		return dropWhileNode[A](next, pred, idx, true)
	})}
}
