// Copyright (c) 2026 Monix Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task

// MemoObserver receives notifications about how a Memoized cell was
// resolved, purely for external instrumentation (metrics, tracing); the
// interpreter's own behavior never depends on what an observer does.
//
// All three methods must tolerate being called from arbitrary goroutines:
// OnMemoRace fires from whichever goroutine loses the race to become the
// producer, and OnMemoHit/OnMemoFailure can fire from a producer's own
// completion callback.
type MemoObserver interface {
	// OnMemoHit fires when a Memoized cell is already resolved (success or
	// failure) at the moment it is visited.
	OnMemoHit()

	// OnMemoRace fires when a Memoized cell is visited while another run is
	// already producing its value; the visitor joins as a waiter instead of
	// becoming the producer.
	OnMemoRace()

	// OnMemoFailure fires once per failed producer evaluation, regardless of
	// whether cacheErrors keeps the failure cached or resets the cell.
	OnMemoFailure()
}

func notifyMemoHit(o MemoObserver) {
	if o != nil {
		o.OnMemoHit()
	}
}

func notifyMemoRace(o MemoObserver) {
	if o != nil {
		o.OnMemoRace()
	}
}

func notifyMemoFailure(o MemoObserver) {
	if o != nil {
		o.OnMemoFailure()
	}
}
