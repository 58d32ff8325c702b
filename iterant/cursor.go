// Copyright (c) 2026 Monix Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iterant

// BatchCursor is a resumable, single-pass iterator over a batch of already
// materialized elements. HasNext/Next follow the standard Go cursor shape
// (check, then advance) rather than Go 1.23's range-over-func iterators, so
// a cursor can be paused mid-batch and handed back to the caller — the
// capability [DropWhileWithIndex] and early-stop consumers both need.
type BatchCursor[A any] interface {
	HasNext() bool
	Next() A

	// RecommendedBatchSize hints how many elements a producer should draw
	// into one NextBatch/NextCursor step; consumers are free to ignore it.
	RecommendedBatchSize() int
}

// Batch is a re-iterable source of elements: each call to Cursor starts a
// fresh, independent traversal.
type Batch[A any] interface {
	Cursor() BatchCursor[A]
}

// sliceBatch adapts a Go slice to [Batch].
type sliceBatch[A any] struct {
	items     []A
	batchSize int
}

// NewSliceBatch wraps items as a re-iterable [Batch]. recommendedBatchSize
// of 0 or less falls back to the full slice length (or 1 for an empty
// slice, so RecommendedBatchSize never reports 0).
func NewSliceBatch[A any](items []A, recommendedBatchSize int) Batch[A] {
	if recommendedBatchSize <= 0 {
		recommendedBatchSize = len(items)
		if recommendedBatchSize == 0 {
			recommendedBatchSize = 1
		}
	}
	return &sliceBatch[A]{items: items, batchSize: recommendedBatchSize}
}

func (b *sliceBatch[A]) Cursor() BatchCursor[A] {
	return &sliceCursor[A]{items: b.items, batchSize: b.batchSize}
}

type sliceCursor[A any] struct {
	items     []A
	pos       int
	batchSize int
}

func (c *sliceCursor[A]) HasNext() bool { return c.pos < len(c.items) }

func (c *sliceCursor[A]) Next() A {
	v := c.items[c.pos]
	c.pos++
	return v
}

func (c *sliceCursor[A]) RecommendedBatchSize() int { return c.batchSize }

// remaining returns the not-yet-consumed tail of the cursor as a slice,
// used by transformations that need to splice a partially-drained cursor
// back into a new Stream node (e.g. after a drop-while predicate stops
// matching mid-batch).
func remaining[A any](c BatchCursor[A]) []A {
	if sc, ok := c.(*sliceCursor[A]); ok {
		return sc.items[sc.pos:]
	}
	var out []A
	for c.HasNext() {
		out = append(out, c.Next())
	}
	return out
}
