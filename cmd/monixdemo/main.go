// Copyright (c) 2026 Monix Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command monixdemo exercises a handful of Task and Iterant programs
// against a [scheduler.PoolScheduler], printing each stage's result. It is
// a smoke-test harness, not a library entry point.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/monifu/monix/iterant"
	"github.com/monifu/monix/monixotel"
	"github.com/monifu/monix/scheduler"
	"github.com/monifu/monix/task"
)

func main() {
	concurrency := flag.Int64("concurrency", 4, "max simultaneously running goroutines in the pool scheduler")
	batchSize := flag.Int("batch-size", 256, "forced-async-boundary frame budget")
	withTracing := flag.Bool("otel", false, "wrap the scheduler with monixotel instrumentation")
	flag.Parse()

	em := scheduler.BatchedExecution{BatchSize: *batchSize}
	pool := scheduler.NewPoolScheduler(*concurrency, em, nil)
	defer pool.Close()

	var sch task.Scheduler = pool
	opts := task.Options{PropagateLocals: true}
	if *withTracing {
		sch = monixotel.Wrap(pool)
		opts.Observer = monixotel.NewMemoObserver()
	}

	if err := runBindChain(sch, opts); err != nil {
		log.Fatalf("bind chain: %v", err)
	}
	if err := runAsyncFetch(sch, opts); err != nil {
		log.Fatalf("async fetch: %v", err)
	}
	if err := runMemoizedConfig(sch, opts); err != nil {
		log.Fatalf("memoized config: %v", err)
	}
	if err := runStreamPipeline(sch, opts); err != nil {
		log.Fatalf("stream pipeline: %v", err)
	}
}

// runBindChain sequences a few pure and delayed effects, recovering from a
// deliberately injected failure partway through.
func runBindChain(sch task.Scheduler, opts task.Options) error {
	e := task.Bind(task.Pure(10), func(x int) task.Effect[int] {
		return task.Delay(func() (int, error) { return x * 2, nil })
	})
	e = task.Bind(e, func(x int) task.Effect[int] {
		if x > 15 {
			return task.Fail[int](errors.New("value too large"))
		}
		return task.Pure(x)
	})
	e = task.Recover(e, func(err error) task.Effect[int] {
		fmt.Printf("bind chain: recovered from %v\n", err)
		return task.Pure(0)
	})

	ctx := task.NewContext(sch, opts)
	fut := task.RunAsFuture(e, ctx)
	v, err := fut.Wait()
	if err != nil {
		return err
	}
	fmt.Printf("bind chain result: %d\n", v)
	return nil
}

// runAsyncFetch simulates an external asynchronous call via [task.Async],
// completing on its own goroutine after a short delay.
func runAsyncFetch(sch task.Scheduler, opts task.Options) error {
	fetch := task.Async(func(_ *task.Context, cb task.Callback[string]) {
		go func() {
			time.Sleep(5 * time.Millisecond)
			cb("fetched-value", nil)
		}()
	})

	ctx := task.NewContext(sch, opts)
	fut := task.RunAsFuture(fetch, ctx)
	v, err := fut.Wait()
	if err != nil {
		return err
	}
	fmt.Printf("async fetch result: %s\n", v)
	return nil
}

// runMemoizedConfig runs the same Memoized effect from several concurrent
// callers, demonstrating that the producer only evaluates once.
func runMemoizedConfig(sch task.Scheduler, opts task.Options) error {
	loads := 0
	memo := task.Memoize(func() task.Effect[string] {
		loads++
		return task.Delay(func() (string, error) {
			time.Sleep(2 * time.Millisecond)
			return "config-v1", nil
		})
	}, true)

	const waiters = 8
	futures := make([]*task.CancelableFuture[string], waiters)
	for i := range futures {
		ctx := task.NewContext(sch, opts)
		futures[i] = task.RunAsFuture(memo, ctx)
	}
	for _, fut := range futures {
		if _, err := fut.Wait(); err != nil {
			return err
		}
	}
	fmt.Printf("memoized config loaded %d time(s) for %d callers\n", loads, waiters)
	return nil
}

// runStreamPipeline drives an Iterant pipeline — filter, map, take, and a
// bracketed resource — through [iterant.Fold].
func runStreamPipeline(sch task.Scheduler, opts task.Options) error {
	source := iterant.FromSlice([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 3)
	scoped := iterant.ScopeWith[string, int](
		task.Delay(func() (string, error) {
			fmt.Println("stream pipeline: resource acquired")
			return "handle", nil
		}),
		func(string) iterant.Stream[int] {
			even := iterant.FilterStream(source, func(x int) bool { return x%2 == 0 })
			doubled := iterant.MapStream(even, func(x int) int { return x * 2 })
			return iterant.TakeStream(doubled, 3)
		},
		func(_ string, ec iterant.ExitCase) task.Effect[struct{}] {
			return task.Delay(func() (struct{}, error) {
				fmt.Printf("stream pipeline: resource released (error=%v)\n", ec.IsError())
				return struct{}{}, nil
			})
		},
	)

	ctx := task.NewContext(sch, opts)
	fut := task.RunAsFuture(iterant.ToSlice(scoped), ctx)
	values, err := fut.Wait()
	if err != nil {
		return err
	}
	fmt.Printf("stream pipeline result: %v\n", values)
	return nil
}
