// Copyright (c) 2026 Monix Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package monixotel

import (
	gocontext "context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/monifu/monix/task"
)

// RunWithCallback stamps the run with a fresh UUID, opens a "monix.run"
// span carrying it as the run.id attribute, and delegates to
// [task.RunWithCallback]. The run ID is recorded only as that span
// attribute; failures the run's Scheduler reports and the span's error
// status message do not carry it.
//
// The generated run ID is handed to cb's wrapping closure so callers can
// correlate it with application-level logging; it is not threaded into e
// itself.
func RunWithCallback[A any](e task.Effect[A], ctx *task.Context, cb func(runID string, v A, err error)) string {
	runID := uuid.NewString()
	tracer := otel.Tracer(scopeName)
	_, span := tracer.Start(gocontext.Background(), "monix.run", trace.WithAttributes(
		attribute.String("monix.run.id", runID),
	))
	task.RunWithCallback(e, ctx, func(v A, err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		cb(runID, v, err)
	})
	return runID
}

// Future pairs a [task.CancelableFuture] with the run ID stamped on it at
// creation, so a diagnostic dump of in-flight futures can name each one.
type Future[A any] struct {
	ID    string
	inner *task.CancelableFuture[A]
}

// RunAsFuture stamps e's run with a fresh UUID, opens a "monix.run" span
// exactly like [RunWithCallback], and delegates to [task.RunAsFuture]. The
// span closes when the future resolves, not when RunAsFuture returns.
func RunAsFuture[A any](e task.Effect[A], ctx *task.Context) *Future[A] {
	runID := uuid.NewString()
	tracer := otel.Tracer(scopeName)
	_, span := tracer.Start(gocontext.Background(), "monix.run", trace.WithAttributes(
		attribute.String("monix.run.id", runID),
	))

	inner := task.RunAsFuture(e, ctx)
	go func() {
		_, err := inner.Wait()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	return &Future[A]{ID: runID, inner: inner}
}

// Cancel cancels the underlying run.
func (f *Future[A]) Cancel() { f.inner.Cancel() }

// Wait blocks for the run's outcome.
func (f *Future[A]) Wait() (A, error) { return f.inner.Wait() }

// Poll reports the run's outcome without blocking, mirroring
// [task.CancelableFuture.Poll].
func (f *Future[A]) Poll() (A, error, bool) { return f.inner.Poll() }
