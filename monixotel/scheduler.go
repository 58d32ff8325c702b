// Copyright (c) 2026 Monix Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package monixotel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/monifu/monix/task"
)

const scopeName = "github.com/monifu/monix/monixotel"

// InstrumentedScheduler wraps a [task.Scheduler], opening a span around
// every ExecuteAsync hop and recording each ReportFailure call as its own
// "monix.report_failure" span, started from context.Background().
type InstrumentedScheduler struct {
	inner  task.Scheduler
	tracer trace.Tracer
}

// Wrap decorates sch so every forced async boundary, Async restart, and
// Memoized resumption it schedules opens a "monix.async_boundary" span.
// Spans are started from context.Background() and so have no parent, also
// when the run was started through [RunWithCallback] or [RunAsFuture].
func Wrap(sch task.Scheduler) *InstrumentedScheduler {
	return &InstrumentedScheduler{inner: sch, tracer: otel.Tracer(scopeName)}
}

func (s *InstrumentedScheduler) ExecuteAsync(fn func()) {
	_, span := s.tracer.Start(context.Background(), "monix.async_boundary")
	s.inner.ExecuteAsync(func() {
		defer span.End()
		fn()
	})
}

func (s *InstrumentedScheduler) ExecutionModel() task.ExecutionModel {
	return s.inner.ExecutionModel()
}

func (s *InstrumentedScheduler) ReportFailure(err error) {
	_, span := s.tracer.Start(context.Background(), "monix.report_failure")
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.End()
	s.inner.ReportFailure(err)
}

var _ task.Scheduler = (*InstrumentedScheduler)(nil)

// Async wraps [task.Async], opening a span named "monix.async."+name when
// the effect registers and closing it when register's callback fires,
// recording the delivered error (if any) on the span.
func Async[A any](name string, register func(*task.Context, task.Callback[A])) task.Effect[A] {
	tracer := otel.Tracer(scopeName)
	return task.Async(func(ctx *task.Context, cb task.Callback[A]) {
		_, span := tracer.Start(context.Background(), "monix.async."+name)
		register(ctx, func(v A, err error) {
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			}
			span.End()
			cb(v, err)
		})
	})
}
