// Copyright (c) 2026 Monix Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package monixotel instruments a [task.Scheduler] with OpenTelemetry
// tracing and metrics. It is entirely optional: task and iterant only ever
// depend on the unadorned Scheduler interface, and a program that never
// imports monixotel pays nothing for it.
//
// Wrap decorates a Scheduler so every hop through ExecuteAsync — forced
// frame-budget boundaries, Async restarts, Memoized resumption — opens a
// span. Async wraps a single Async registration with its own span, closed
// when the registration's callback fires. NewMemoObserver returns a
// [task.MemoObserver] backed by OTel counters for memoization cache hits,
// races, and failures, installed via [task.Options.Observer].
//
// Spans and instruments are obtained from the global OTel providers
// (otel.Tracer, otel.Meter); call the usual otel SDK setup in the host
// program before traffic flows if spans/metrics should go anywhere besides
// the no-op default backend.
package monixotel
