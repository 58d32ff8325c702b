// Copyright (c) 2026 Monix Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package monixotel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/monifu/monix/task"
)

// memoObserver implements [task.MemoObserver] over three OTel counters.
type memoObserver struct {
	hits     metric.Int64Counter
	races    metric.Int64Counter
	failures metric.Int64Counter
}

// NewMemoObserver builds a [task.MemoObserver] that records cache hits,
// producer races, and producer failures against the global OTel
// MeterProvider. Install it via:
//
//	ctx := task.NewContext(sch, task.Options{Observer: monixotel.NewMemoObserver()})
//
// Panics if the counter instruments cannot be created, which in practice
// only happens with a misconfigured custom MeterProvider.
func NewMemoObserver() task.MemoObserver {
	meter := otel.Meter(scopeName)

	hits, err := meter.Int64Counter("monix.memoize.hits",
		metric.WithDescription("Memoized cell visits that found an already-resolved value"),
		metric.WithUnit("{visit}"))
	if err != nil {
		panic(err)
	}
	races, err := meter.Int64Counter("monix.memoize.races",
		metric.WithDescription("Memoized cell visits that joined an in-flight producer"),
		metric.WithUnit("{visit}"))
	if err != nil {
		panic(err)
	}
	failures, err := meter.Int64Counter("monix.memoize.failures",
		metric.WithDescription("Memoized producer evaluations that failed"),
		metric.WithUnit("{failure}"))
	if err != nil {
		panic(err)
	}

	return &memoObserver{hits: hits, races: races, failures: failures}
}

func (o *memoObserver) OnMemoHit()     { o.hits.Add(context.Background(), 1) }
func (o *memoObserver) OnMemoRace()    { o.races.Add(context.Background(), 1) }
func (o *memoObserver) OnMemoFailure() { o.failures.Add(context.Background(), 1) }

var _ task.MemoObserver = (*memoObserver)(nil)
