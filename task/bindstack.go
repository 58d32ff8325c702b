// Copyright (c) 2026 Monix Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

// stackFrame is one entry of the bind chain: either a plain continuation
// (applied to the unboxed success value) or an error handler (applied to a
// failure, skipped while unwinding through plain frames).
type stackFrame struct {
	isHandler bool
	plain     func(any) effectNode
	handler   func(error) effectNode
}

// bindStack is the LIFO of pending continuations and error handlers.
//
// It keeps a single inline scratch slot, bFirst, for the most recently
// pushed frame. The overwhelming majority of bind chains observed at any
// one point have exactly one pending continuation (the monomorphic case);
// routing that case through bFirst instead of the backing slice avoids an
// allocation and a slice-growth check on every Bind/Map in the chain. Only
// when a second frame is pushed while bFirst is occupied does the previous
// occupant spill onto rest.
//
// Capacity of rest doubles on growth and never shrinks in steady state,
// matching the amortized-O(1) push/pop the spec calls for.
type bindStack struct {
	hasFirst bool
	bFirst   stackFrame
	rest     []stackFrame
}

// pushPlain pushes a plain continuation onto the stack.
func (s *bindStack) pushPlain(k func(any) effectNode) {
	s.push(stackFrame{plain: k})
}

// pushHandler pushes an error handler onto the stack.
func (s *bindStack) pushHandler(h func(error) effectNode) {
	s.push(stackFrame{isHandler: true, handler: h})
}

func (s *bindStack) push(f stackFrame) {
	if !s.hasFirst {
		s.bFirst = f
		s.hasFirst = true
		return
	}
	if s.rest == nil {
		s.rest = make([]stackFrame, 0, 4)
	}
	s.rest = append(s.rest, s.bFirst)
	s.bFirst = f
}

// popAny pops and returns the most recently pushed frame regardless of kind.
// Returns ok=false when the stack is empty.
func (s *bindStack) popAny() (stackFrame, bool) {
	if !s.hasFirst {
		return stackFrame{}, false
	}
	f := s.bFirst
	if n := len(s.rest); n > 0 {
		s.bFirst = s.rest[n-1]
		s.rest = s.rest[:n-1]
	} else {
		s.hasFirst = false
		s.bFirst = stackFrame{}
	}
	return f, true
}

// popPlain pops frames, discarding error handlers along the way, until it
// finds a plain continuation or exhausts the stack.
func (s *bindStack) popPlain() (func(any) effectNode, bool) {
	for {
		f, ok := s.popAny()
		if !ok {
			return nil, false
		}
		if !f.isHandler {
			return f.plain, true
		}
	}
}

// popHandler pops frames, discarding plain continuations along the way,
// until it finds an error handler or exhausts the stack.
func (s *bindStack) popHandler() (func(error) effectNode, bool) {
	for {
		f, ok := s.popAny()
		if !ok {
			return nil, false
		}
		if f.isHandler {
			return f.handler, true
		}
	}
}

// empty reports whether the stack has no pending frames.
func (s *bindStack) empty() bool {
	return !s.hasFirst
}

// snapshot captures the stack's current frames for later replay by a
// restart callback, without disturbing the original (the original is
// about to go out of scope when an Async boundary is taken, but a defensive
// copy keeps the replay path simple to reason about).
func (s *bindStack) snapshot() *bindStack {
	cp := &bindStack{hasFirst: s.hasFirst, bFirst: s.bFirst}
	if len(s.rest) > 0 {
		cp.rest = append([]stackFrame(nil), s.rest...)
	}
	return cp
}
