// Copyright (c) 2026 Monix Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iterant

import "github.com/monifu/monix/task"

func eraseEffect[A any](e task.Effect[A]) effectErased {
	return effectErased{e: task.Map(e, func(v A) any { return v })}
}

func unerase[A any](ee effectErased) task.Effect[A] {
	return task.Map(ee.e, func(v any) A { return v.(A) })
}

// Next yields value once, then continues with rest.
func Next[A any](value A, rest task.Effect[Stream[A]]) Stream[A] {
	return Stream[A]{node: &nextNode{
		value: value,
		rest:  eraseEffect(task.Map(rest, func(s Stream[A]) any { return s.node })),
	}}
}

// NextCursor yields every remaining element of cursor, in order, then
// continues with rest once the cursor is exhausted.
func NextCursor[A any](cursor BatchCursor[A], rest task.Effect[Stream[A]]) Stream[A] {
	return Stream[A]{node: &nextCursorNode{
		cursor: cursor,
		rest:   eraseEffect(task.Map(rest, func(s Stream[A]) any { return s.node })),
	}}
}

// NextBatch yields every element of batch, in iteration order, then
// continues with rest once the batch is exhausted.
func NextBatch[A any](batch Batch[A], rest task.Effect[Stream[A]]) Stream[A] {
	return Stream[A]{node: &nextBatchNode{
		batch: batch,
		rest:  eraseEffect(task.Map(rest, func(s Stream[A]) any { return s.node })),
	}}
}

// Suspend defers constructing the next node until the stream is pulled.
func Suspend[A any](thunk func() Stream[A]) Stream[A] {
	return Stream[A]{node: suspendNodeS{thunk: func() streamNode { return thunk().node }}}
}

// ScopeWith brackets use(acquired) between acquire and release. release
// always runs exactly once when the scoped portion of the stream is torn
// down, tagged with the [ExitCase] that ended it.
func ScopeWith[R, A any](
	acquire task.Effect[R],
	use func(R) Stream[A],
	release func(R, ExitCase) task.Effect[struct{}],
) Stream[A] {
	return Stream[A]{node: &scopeNode{
		acquire: eraseEffect(task.Map(acquire, func(r R) any { return r })),
		use:     func(v any) streamNode { return use(v.(R)).node },
		release: func(v any, ec ExitCase) effectErasedUnit {
			return effectErasedUnit{e: release(v.(R), ec)}
		},
	}}
}

// Last yields value once, then halts successfully, without requiring a
// continuation effect the way [Next] does — the representative case for a
// producer that already knows its final element.
func Last[A any](value A) Stream[A] {
	return Stream[A]{node: lastNode{value: value}}
}

// Halt ends the stream. A nil err signals successful completion.
func Halt[A any](err error) Stream[A] {
	return Stream[A]{node: haltNode{err: err}}
}

// Empty is Halt(nil) specialized for readability at call sites.
func Empty[A any]() Stream[A] {
	return Halt[A](nil)
}

// Raise is Halt(err) specialized for readability at call sites.
func Raise[A any](err error) Stream[A] {
	return Halt[A](err)
}

// FromSlice builds a Stream that yields every element of items, in order,
// pulled through a single [NextBatch] node sized by recommendedBatchSize
// (0 meaning "the whole slice at once").
func FromSlice[A any](items []A, recommendedBatchSize int) Stream[A] {
	if len(items) == 0 {
		return Empty[A]()
	}
	return NextBatch[A](NewSliceBatch(items, recommendedBatchSize), task.Pure(Empty[A]()))
}
