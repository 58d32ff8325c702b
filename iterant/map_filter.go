// Copyright (c) 2026 Monix Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iterant

import "github.com/monifu/monix/task"

func wrapErased(e task.Effect[any]) effectErased { return effectErased{e: e} }

func chainNext[A, B any](rest effectErased, rewrite func(streamNode) streamNode) effectErased {
	return wrapErased(task.Map(unerase[streamNode](rest), func(next streamNode) any {
		return rewrite(next)
	}))
}

// MapStream transforms every element of s with f, preserving Suspend and
// Scope structure exactly (a mapped Scope still acquires/releases the same
// resource; only the element type changes).
func MapStream[A, B any](s Stream[A], f func(A) B) Stream[B] {
	return Stream[B]{node: mapNode[A, B](s.node, f)}
}

func mapNode[A, B any](node streamNode, f func(A) B) streamNode {
	rewrite := func(n streamNode) streamNode { return mapNode[A, B](n, f) }
	switch n := node.(type) {
	case *nextNode:
		return &nextNode{value: f(n.value.(A)), rest: chainNext[A, B](n.rest, rewrite)}
	case *nextCursorNode:
		return &nextCursorNode{cursor: mapCursor[A, B](n.cursor.(BatchCursor[A]), f), rest: chainNext[A, B](n.rest, rewrite)}
	case *nextBatchNode:
		return &nextBatchNode{batch: mapBatch[A, B](n.batch.(Batch[A]), f), rest: chainNext[A, B](n.rest, rewrite)}
	case suspendNodeS:
		return suspendNodeS{thunk: func() streamNode { return rewrite(n.thunk()) }}
	case *effectNextNode:
		return &effectNextNode{next: chainNext[A, B](n.next, rewrite)}
	case *scopeNode:
		return &scopeNode{acquire: n.acquire, use: func(r any) streamNode { return rewrite(n.use(r)) }, release: n.release}
	case lastNode:
		return lastNode{value: f(n.value.(A))}
	case haltNode:
		return n
	default:
		panic("iterant: unknown stream node type")
	}
}

// FilterStream keeps only elements of s matching pred, preserving Suspend
// and Scope structure. Dropped elements never reach a consumer; the
// rewritten tree advances past them via [effectNextNode] rather than
// exposing them as zero-width [Next] nodes.
func FilterStream[A any](s Stream[A], pred func(A) bool) Stream[A] {
	return Stream[A]{node: filterNode[A](s.node, pred)}
}

func filterNode[A any](node streamNode, pred func(A) bool) streamNode {
	rewrite := func(n streamNode) streamNode { return filterNode[A](n, pred) }
	switch n := node.(type) {
	case *nextNode:
		a := n.value.(A)
		if pred(a) {
			return &nextNode{value: a, rest: chainNext[A, A](n.rest, rewrite)}
		}
		return &effectNextNode{next: chainNext[A, A](n.rest, rewrite)}
	case *nextCursorNode:
		return &nextCursorNode{cursor: filterCursor[A](n.cursor.(BatchCursor[A]), pred), rest: chainNext[A, A](n.rest, rewrite)}
	case *nextBatchNode:
		return &nextBatchNode{batch: filterBatch[A](n.batch.(Batch[A]), pred), rest: chainNext[A, A](n.rest, rewrite)}
	case suspendNodeS:
		return suspendNodeS{thunk: func() streamNode { return rewrite(n.thunk()) }}
	case *effectNextNode:
		return &effectNextNode{next: chainNext[A, A](n.next, rewrite)}
	case *scopeNode:
		return &scopeNode{acquire: n.acquire, use: func(r any) streamNode { return rewrite(n.use(r)) }, release: n.release}
	case lastNode:
		a := n.value.(A)
		if pred(a) {
			return n
		}
		return haltNode{}
	case haltNode:
		return n
	default:
		panic("iterant: unknown stream node type")
	}
}

type mapCursorAdapter[A, B any] struct {
	src BatchCursor[A]
	f   func(A) B
}

func (c *mapCursorAdapter[A, B]) HasNext() bool          { return c.src.HasNext() }
func (c *mapCursorAdapter[A, B]) Next() B                { return c.f(c.src.Next()) }
func (c *mapCursorAdapter[A, B]) RecommendedBatchSize() int { return c.src.RecommendedBatchSize() }

func mapCursor[A, B any](c BatchCursor[A], f func(A) B) BatchCursor[B] {
	return &mapCursorAdapter[A, B]{src: c, f: f}
}

type mapBatchAdapter[A, B any] struct {
	src Batch[A]
	f   func(A) B
}

func (b *mapBatchAdapter[A, B]) Cursor() BatchCursor[B] { return mapCursor[A, B](b.src.Cursor(), b.f) }

func mapBatch[A, B any](b Batch[A], f func(A) B) Batch[B] {
	return &mapBatchAdapter[A, B]{src: b, f: f}
}

// filterCursorAdapter looks one element ahead so HasNext can answer
// honestly without consuming an element the caller hasn't asked for yet.
type filterCursorAdapter[A any] struct {
	src     BatchCursor[A]
	pred    func(A) bool
	primed  bool
	pending A
}

func (c *filterCursorAdapter[A]) fill() {
	for !c.primed && c.src.HasNext() {
		v := c.src.Next()
		if c.pred(v) {
			c.pending = v
			c.primed = true
		}
	}
}

func (c *filterCursorAdapter[A]) HasNext() bool { c.fill(); return c.primed }

func (c *filterCursorAdapter[A]) Next() A {
	c.fill()
	v := c.pending
	c.primed = false
	return v
}

func (c *filterCursorAdapter[A]) RecommendedBatchSize() int { return c.src.RecommendedBatchSize() }

func filterCursor[A any](c BatchCursor[A], pred func(A) bool) BatchCursor[A] {
	return &filterCursorAdapter[A]{src: c, pred: pred}
}

type filterBatchAdapter[A any] struct {
	src  Batch[A]
	pred func(A) bool
}

func (b *filterBatchAdapter[A]) Cursor() BatchCursor[A] { return filterCursor[A](b.src.Cursor(), b.pred) }

func filterBatch[A any](b Batch[A], pred func(A) bool) Batch[A] {
	return &filterBatchAdapter[A]{src: b, pred: pred}
}
