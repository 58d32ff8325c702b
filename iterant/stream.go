// Copyright (c) 2026 Monix Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iterant

import "github.com/monifu/monix/task"

// streamNode is the type-erased representation every Stream[A] (the generic
// public wrapper) compiles down to internally, mirroring task.effectNode:
// a closed tagged union dispatched by type switch in the consumer loop,
// never by open interface methods.
type streamNode interface {
	streamTag() streamTag
}

type streamTag uint8

const (
	tagNext streamTag = iota
	tagNextCursor
	tagNextBatch
	tagSuspendS
	tagScope
	tagLast
	tagHalt
	tagEffectNext
)

// nextNode yields a single element, then continues with rest.
type nextNode struct {
	value any
	rest  effectErased // task.Effect[streamNode], erased
}

func (*nextNode) streamTag() streamTag { return tagNext }

// nextCursorNode yields every remaining element of cursor, then continues
// with rest once the cursor is exhausted.
type nextCursorNode struct {
	cursor any // BatchCursor[A], erased
	rest   effectErased
}

func (*nextCursorNode) streamTag() streamTag { return tagNextCursor }

// nextBatchNode yields every element of batch, then continues with rest.
type nextBatchNode struct {
	batch any // Batch[A], erased
	rest  effectErased
}

func (*nextBatchNode) streamTag() streamTag { return tagNextBatch }

// suspendNodeS defers building the next node until pulled.
type suspendNodeS struct {
	thunk func() streamNode
}

func (suspendNodeS) streamTag() streamTag { return tagSuspendS }

// scopeNode brackets body between acquire and a release that always runs,
// tagged with the ExitCase that ended the scope.
type scopeNode struct {
	acquire effectErased // task.Effect[any]
	use     func(any) streamNode
	release func(any, ExitCase) effectErasedUnit // task.Effect[struct{}]
}

func (*scopeNode) streamTag() streamTag { return tagScope }

// effectNextNode advances the stream without itself yielding an element:
// running next produces the node that actually continues the traversal.
// Tree-rewriters (FilterStream, DropWhileWithIndex) use it to describe "skip
// this element, then whatever effect decides what comes after" without
// forcing the skipped-past effect eagerly.
type effectNextNode struct {
	next effectErased // task.Effect[streamNode], erased
}

func (*effectNextNode) streamTag() streamTag { return tagEffectNext }

// lastNode yields a single final element and then halts cleanly.
type lastNode struct{ value any }

func (lastNode) streamTag() streamTag { return tagLast }

// haltNode ends the stream, successfully if err is nil.
type haltNode struct{ err error }

func (haltNode) streamTag() streamTag { return tagHalt }

// effectErased/effectErasedUnit box a task.Effect[any]/task.Effect[struct{}]
// so streamNode's fields don't need to be generic; Stream[A]'s public
// constructors unbox with a type assertion at the point a node is consumed,
// exactly like task's bindNode.k erasing to func(any) effectNode.
type effectErased struct {
	e task.Effect[any]
}

type effectErasedUnit struct {
	e task.Effect[struct{}]
}

// ExitCase tags how a Scope ended, delivered to its release function.
type ExitCase struct {
	kind exitKind
	err  error
}

type exitKind uint8

const (
	exitCompleted exitKind = iota
	exitEarlyStop
	exitError
)

// ExitCompleted is delivered when a scope's body ran to Halt(nil).
var ExitCompleted = ExitCase{kind: exitCompleted}

// ExitEarlyStop is delivered when a consumer stopped pulling before the
// scope's body reached Halt.
var ExitEarlyStop = ExitCase{kind: exitEarlyStop}

// ExitErrorCase is delivered when the scope's body (or the consumer) ended
// it with a non-nil error.
func ExitErrorCase(err error) ExitCase { return ExitCase{kind: exitError, err: err} }

// IsError reports whether this exit case carries an error.
func (c ExitCase) IsError() bool { return c.kind == exitError }

// IsEarlyStop reports whether the scope was torn down before completion.
func (c ExitCase) IsEarlyStop() bool { return c.kind == exitEarlyStop }

// Err returns the error carried by an error exit case, or nil.
func (c ExitCase) Err() error { return c.err }

// Stream is a lazily-unfolded, pull-based sequence of A, interpreted one
// step at a time through package task's effect interpreter.
type Stream[A any] struct {
	node streamNode
}
