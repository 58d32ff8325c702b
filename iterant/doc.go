// Copyright (c) 2026 Monix Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package iterant provides a pull-based streaming engine layered on top of
// package task: a [Stream][A] is a lazily-unfolded sequence of elements
// whose every step is itself a [task.Effect], giving it the same
// cancellation, async-boundary, and stack-safety guarantees the effect
// interpreter gives any other Task program.
//
// # Stream tree
//
// A Stream is a tagged union of seven variants — [Next], [NextCursor],
// [NextBatch], [Suspend], [ScopeWith], [Last], and [Halt] — built with the
// package's constructor functions and consumed with [ToSlice] or [Fold].
// Streams are immutable and safe to share; nothing about constructing one
// pulls an element.
//
// # Resource safety
//
// [ScopeWith] brackets a Stream's body between an acquire and a release
// effect. Release always runs exactly once, tagged with the [ExitCase] that
// ended the scope — normal completion, early stop, or error — mirroring
// [task]'s own bracket-adjacent guarantees for Async cancellation.
//
// # Batched pull
//
// [NextBatch] and [NextCursor] let a producer hand the consumer many
// elements per pull via a [BatchCursor], avoiding one Task interpreter
// round-trip per element; [DropWhileWithIndex] is the representative
// transformation that must cooperate with a batch mid-cursor rather than
// discarding it outright.
package iterant
