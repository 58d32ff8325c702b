// Copyright (c) 2026 Monix Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

// Options configures a run. Extra holds scheduler-specific options passed
// through opaquely; the interpreter itself never inspects it.
type Options struct {
	// PropagateLocals enables context-local snapshot/restore across Async
	// boundaries (see [Locals]).
	PropagateLocals bool

	// Extra carries scheduler-specific configuration the interpreter does
	// not interpret.
	Extra map[string]any

	// Observer, if non-nil, is notified of Memoized cell resolutions. Left
	// nil by default; monixotel.NewMemoObserver returns one backed by OTel
	// counters.
	Observer MemoObserver
}

// frameRef is the per-Context frame-index cell: the trampoline writes it
// after every step and reads it when a run starts. Every resumption after a
// forced boundary, an Async completion, or a Memoized wait reseeds it with
// resetFrame; the index saved before the boundary is not read back.
type frameRef struct {
	index int
}

func (f *frameRef) set(i int) { f.index = i }
func (f *frameRef) get() int  { return f.index }

// Context bundles everything the trampoline needs beyond the effect tree
// itself: the Scheduler, user-visible Options, the current frame index, and
// the cancel-token stack for the run span.
type Context struct {
	Scheduler  Scheduler
	Options    Options
	Locals     *Locals
	frame      frameRef
	cancelConn *CancelConnection
}

// NewContext builds a fresh Context bound to sch with default options and
// an empty cancel connection.
func NewContext(sch Scheduler, opts Options) *Context {
	c := &Context{
		Scheduler:  sch,
		Options:    opts,
		cancelConn: NewCancelConnection(),
	}
	if opts.PropagateLocals {
		c.Locals = NewLocals()
	}
	c.frame.index = sch.ExecutionModel().NextFrameIndex(0)
	return c
}

// CancelConnection returns the run's cancel-token stack.
func (c *Context) CancelConnection() *CancelConnection {
	return c.cancelConn
}

// resetFrame seeds a fresh frame budget from the current ExecutionModel,
// used whenever execution resumes after a real or assumed thread migration
// (an Async restart, a Memoized resumption) where the previous countdown
// can no longer be trusted.
func (c *Context) resetFrame() {
	c.frame.index = c.Scheduler.ExecutionModel().NextFrameIndex(0)
}

// ShouldCancel reports whether the run has been cancelled. Checked at every
// forced async re-entry and at every scheduled restart callback.
func (c *Context) ShouldCancel() bool {
	return c.cancelConn.IsCancelled()
}

// Cancel cancels the run, invoking every pushed cancel token in LIFO order.
func (c *Context) Cancel() {
	c.cancelConn.Cancel()
}

// withFreshCancelConnection returns a shallow copy of c with a new, empty
// cancel connection — used when a Memoized producer must run under its own
// cancellation scope, distinct from any particular waiter's run.
func (c *Context) withFreshCancelConnection() *Context {
	cp := *c
	cp.cancelConn = NewCancelConnection()
	return &cp
}
