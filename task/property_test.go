// Copyright (c) 2026 Monix Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task_test

import (
	"math/rand/v2"
	"testing"

	"github.com/monifu/monix/scheduler"
	"github.com/monifu/monix/task"
)

const propertyN = 500

func randInt(rng *rand.Rand) int {
	return rng.IntN(2001) - 1000
}

// TestPropertyBindLeftIdentity: Bind(Pure(a), f) ≡ f(a)
func TestPropertyBindLeftIdentity(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	for range propertyN {
		a := randInt(rng)
		f := func(x int) task.Effect[int] { return task.Pure(x * 3) }
		left, _ := runSync(t, task.Bind(task.Pure(a), f))
		right, _ := runSync(t, f(a))
		if left != right {
			t.Fatalf("left identity: %d != %d (a=%d)", left, right, a)
		}
	}
}

// TestPropertyBindRightIdentity: Bind(m, Pure) ≡ m
func TestPropertyBindRightIdentity(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	for range propertyN {
		a := randInt(rng)
		m := task.Pure(a)
		left, _ := runSync(t, task.Bind(m, func(x int) task.Effect[int] { return task.Pure(x) }))
		right, _ := runSync(t, m)
		if left != right {
			t.Fatalf("right identity: %d != %d (a=%d)", left, right, a)
		}
	}
}

// TestPropertyBindAssociativity: Bind(Bind(m,f),g) ≡ Bind(m, x => Bind(f(x),g))
func TestPropertyBindAssociativity(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	for range propertyN {
		a := randInt(rng)
		m := task.Pure(a)
		f := func(x int) task.Effect[int] { return task.Pure(x + 3) }
		g := func(x int) task.Effect[int] { return task.Pure(x * 2) }
		left, _ := runSync(t, task.Bind(task.Bind(m, f), g))
		right, _ := runSync(t, task.Bind(m, func(x int) task.Effect[int] {
			return task.Bind(f(x), g)
		}))
		if left != right {
			t.Fatalf("associativity: %d != %d (a=%d)", left, right, a)
		}
	}
}

// TestPropertyMapFunctorIdentity: Map(m, id) ≡ m
func TestPropertyMapFunctorIdentity(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	for range propertyN {
		a := randInt(rng)
		m := task.Pure(a)
		left, _ := runSync(t, task.Map(m, func(x int) int { return x }))
		right, _ := runSync(t, m)
		if left != right {
			t.Fatalf("functor identity: %d != %d (a=%d)", left, right, a)
		}
	}
}

// TestPropertyMapFunctorComposition: Map(m, f∘g) ≡ Map(Map(m,g),f)
func TestPropertyMapFunctorComposition(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	f := func(x int) int { return x * 2 }
	g := func(x int) int { return x + 3 }
	fg := func(x int) int { return f(g(x)) }
	for range propertyN {
		a := randInt(rng)
		m := task.Pure(a)
		left, _ := runSync(t, task.Map(m, fg))
		right, _ := runSync(t, task.Map(task.Map(m, g), f))
		if left != right {
			t.Fatalf("functor composition: %d != %d (a=%d)", left, right, a)
		}
	}
}

// TestPropertyLongBindChainDoesNotOverflowStack exercises the trampoline
// against a deep, left-nested Bind chain — the case a naive recursive
// interpreter would blow the Go call stack on. The bind chain itself is
// consumed by the trampoline's for loop, never Go-level recursion; only a
// forced frame-budget boundary recurses (to hand off to the Scheduler). The
// chain takes depth*2+1 steps against a budget of depth*2, so exactly one
// forced boundary is crossed, right before the final step.
func TestPropertyLongBindChainDoesNotOverflowStack(t *testing.T) {
	const depth = 200_000
	e := task.Pure(0)
	for i := 0; i < depth; i++ {
		e = task.Bind(e, func(x int) task.Effect[int] { return task.Pure(x + 1) })
	}
	sch := scheduler.NewInline(scheduler.BatchedExecution{BatchSize: depth * 2}, nil)
	ctx := task.NewContext(sch, task.Options{})
	v, err := runSyncCtx(t, e, ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != depth {
		t.Fatalf("got %d, want %d", v, depth)
	}
}

// TestPropertyRecoverThenBindMatchesHandlerResult checks that once a
// Recover handler replaces a failed effect, the remaining bind chain sees
// the handler's value rather than the original failure.
func TestPropertyRecoverThenBindMatchesHandlerResult(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 0))
	for range propertyN {
		a := randInt(rng)
		e := task.Bind(
			task.Recover(task.Fail[int](errBoom), func(error) task.Effect[int] { return task.Pure(a) }),
			func(x int) task.Effect[int] { return task.Pure(x * 2) },
		)
		v, err := runSync(t, e)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != a*2 {
			t.Fatalf("got %d, want %d (a=%d)", v, a*2, a)
		}
	}
}

var errBoom = &testSentinelError{"boom"}

type testSentinelError struct{ msg string }

func (e *testSentinelError) Error() string { return e.msg }
