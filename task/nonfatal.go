// Copyright (c) 2026 Monix Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

import (
	"context"
	"errors"
	"runtime"
)

// ErrInterrupted is the cancellation sentinel. [NonFatal] classifies it as
// fatal, so a panic carrying it is re-raised by the interpreter's guards
// rather than turned into a [Fail]. An ErrInterrupted returned as an
// ordinary error (for example from a Delay thunk) is not treated specially
// and is delivered like any other failure.
var ErrInterrupted = errors.New("task: interrupted")

// NonFatal reports whether err represents an ordinary, recoverable failure
// as opposed to a fatal VM-level condition. A panic carrying a fatal
// condition bypasses every error handler: the interpreter's guards re-panic
// with it instead of converting it into a [Fail] node.
//
// Go has no catchable stack-overflow or out-of-memory error value (the
// runtime terminates the process directly), so the only fatal conditions
// this classifier recognizes are [runtime.Error] values surfaced through a
// recovered panic, [context.Canceled], and [ErrInterrupted] itself, which
// is cancellation, not failure.
func NonFatal(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, ErrInterrupted) {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var rerr runtime.Error
	if errors.As(err, &rerr) {
		return false
	}
	return true
}

// classifyPanic converts a recovered panic value into an error, or re-panics
// when the value represents a fatal condition that must not be trapped.
func classifyPanic(recovered any) error {
	var err error
	switch v := recovered.(type) {
	case error:
		err = v
	default:
		err = &panicError{value: recovered}
	}
	if !NonFatal(err) {
		panic(recovered)
	}
	return err
}

// panicError wraps an arbitrary recovered panic value that was not already
// an error, so Delay/Suspend/Mapped guards can report it uniformly.
type panicError struct {
	value any
}

func (p *panicError) Error() string {
	if s, ok := p.value.(string); ok {
		return s
	}
	return "task: panic: " + errorOrString(p.value)
}

func errorOrString(v any) string {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	return toString(v)
}

func toString(v any) string {
	type stringer interface{ String() string }
	if s, ok := v.(stringer); ok {
		return s.String()
	}
	return "<panic value>"
}
