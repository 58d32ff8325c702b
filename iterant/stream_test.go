// Copyright (c) 2026 Monix Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package iterant_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/monifu/monix/iterant"
	"github.com/monifu/monix/scheduler"
	"github.com/monifu/monix/task"
)

// capturingLogger records every Printf call verbatim, used to assert that a
// secondary release failure reaches the scheduler's failure reporter.
type capturingLogger struct{ messages []string }

func (c *capturingLogger) Printf(format string, args ...any) {
	c.messages = append(c.messages, fmt.Sprintf(format, args...))
}

func runSync[A any](t *testing.T, e task.Effect[A]) (A, error) {
	t.Helper()
	sch := scheduler.NewInline(scheduler.BatchedExecution{BatchSize: 8}, nil)
	ctx := task.NewContext(sch, task.Options{})
	var val A
	var err error
	done := false
	task.RunWithCallback(e, ctx, func(v A, e error) {
		val, err, done = v, e, true
	})
	if !done {
		t.Fatalf("effect did not complete synchronously under Inline scheduler")
	}
	return val, err
}

func toSliceOK[A any](t *testing.T, s iterant.Stream[A]) []A {
	t.Helper()
	got, err := runSync(t, iterant.ToSlice(s))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return got
}

func intsEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFromSliceRoundTrips(t *testing.T) {
	in := []int{1, 2, 3, 4, 5}
	got := toSliceOK(t, iterant.FromSlice(in, 2))
	if !intsEqual(got, in) {
		t.Fatalf("got %v, want %v", got, in)
	}
}

func TestEmptyStreamYieldsNothing(t *testing.T) {
	got := toSliceOK(t, iterant.Empty[int]())
	if len(got) != 0 {
		t.Fatalf("got %v, want empty", got)
	}
}

func TestNextChainsElements(t *testing.T) {
	s := iterant.Next(1, task.Pure(iterant.Next(2, task.Pure(iterant.Last(3)))))
	got := toSliceOK(t, s)
	want := []int{1, 2, 3}
	if !intsEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestMapStreamTransformsElements(t *testing.T) {
	s := iterant.FromSlice([]int{1, 2, 3}, 0)
	mapped := iterant.MapStream(s, func(x int) int { return x * 10 })
	got := toSliceOK(t, mapped)
	want := []int{10, 20, 30}
	if !intsEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestFilterStreamDropsNonMatching(t *testing.T) {
	s := iterant.FromSlice([]int{1, 2, 3, 4, 5, 6}, 2)
	even := iterant.FilterStream(s, func(x int) bool { return x%2 == 0 })
	got := toSliceOK(t, even)
	want := []int{2, 4, 6}
	if !intsEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestFilterStreamViaIndividualNextNodes(t *testing.T) {
	s := iterant.Next(1, task.Pure(iterant.Next(2, task.Pure(iterant.Next(3, task.Pure(iterant.Last(4)))))))
	even := iterant.FilterStream(s, func(x int) bool { return x%2 == 0 })
	got := toSliceOK(t, even)
	want := []int{2, 4}
	if !intsEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTakeStreamTruncates(t *testing.T) {
	s := iterant.FromSlice([]int{1, 2, 3, 4, 5}, 2)
	got := toSliceOK(t, iterant.TakeStream(s, 3))
	want := []int{1, 2, 3}
	if !intsEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestTakeStreamBeyondLengthYieldsAll(t *testing.T) {
	s := iterant.FromSlice([]int{1, 2, 3}, 0)
	got := toSliceOK(t, iterant.TakeStream(s, 100))
	want := []int{1, 2, 3}
	if !intsEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestDropWhileWithIndexDropsLeadingPrefix(t *testing.T) {
	s := iterant.FromSlice([]int{1, 2, 3, 10, 1, 2}, 3)
	got := toSliceOK(t, iterant.DropWhileWithIndex(s, func(x, _ int) bool { return x < 5 }))
	want := []int{10, 1, 2}
	if !intsEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestDropWhileWithIndexUsesIndexArgument(t *testing.T) {
	s := iterant.FromSlice([]int{0, 0, 0, 0, 9}, 0)
	got := toSliceOK(t, iterant.DropWhileWithIndex(s, func(_ int, idx int) bool { return idx < 3 }))
	want := []int{0, 9}
	if !intsEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestDropWhileWithIndexSplitsMidBatch(t *testing.T) {
	// Single NextBatch of 6 elements; predicate stops matching mid-batch
	// (at index 3), exercising the splice-remaining-cursor-tail path.
	s := iterant.FromSlice([]int{1, 1, 1, 2, 1, 1}, 6)
	got := toSliceOK(t, iterant.DropWhileWithIndex(s, func(x, _ int) bool { return x == 1 }))
	want := []int{2, 1, 1}
	if !intsEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestScopeReleaseRunsExactlyOnceOnCompletion(t *testing.T) {
	acquireCount, releaseCount := 0, 0
	var seenExit iterant.ExitCase

	s := iterant.ScopeWith[int, int](
		task.Delay(func() (int, error) { acquireCount++; return 7, nil }),
		func(r int) iterant.Stream[int] {
			return iterant.FromSlice([]int{r, r + 1}, 0)
		},
		func(r int, ec iterant.ExitCase) task.Effect[struct{}] {
			return task.Delay(func() (struct{}, error) {
				releaseCount++
				seenExit = ec
				return struct{}{}, nil
			})
		},
	)

	got := toSliceOK(t, s)
	want := []int{7, 8}
	if !intsEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if acquireCount != 1 || releaseCount != 1 {
		t.Fatalf("acquire=%d release=%d, want 1,1", acquireCount, releaseCount)
	}
	if seenExit.IsError() || seenExit.IsEarlyStop() {
		t.Fatalf("expected ExitCompleted, got error=%v earlyStop=%v", seenExit.IsError(), seenExit.IsEarlyStop())
	}
}

func TestScopeReleaseRunsOnEarlyStop(t *testing.T) {
	releaseCount := 0
	var seenExit iterant.ExitCase

	s := iterant.ScopeWith[int, int](
		task.Pure(0),
		func(int) iterant.Stream[int] { return iterant.FromSlice([]int{1, 2, 3, 4, 5}, 1) },
		func(_ int, ec iterant.ExitCase) task.Effect[struct{}] {
			releaseCount++
			seenExit = ec
			return task.Pure(struct{}{})
		},
	)

	_, err := runSync(t, iterant.Fold[int, int](s, 0, func(acc, x int) (int, bool) {
		return acc + x, x < 2 // stop right after the second element
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if releaseCount != 1 {
		t.Fatalf("release ran %d times, want 1", releaseCount)
	}
	if !seenExit.IsEarlyStop() {
		t.Fatalf("expected ExitEarlyStop")
	}
}

func TestScopeReleaseRunsOnError(t *testing.T) {
	sentinel := errors.New("boom")
	releaseCount := 0
	var seenExit iterant.ExitCase

	s := iterant.ScopeWith[int, int](
		task.Pure(0),
		func(int) iterant.Stream[int] {
			return iterant.Next(1, task.Pure(iterant.Raise[int](sentinel)))
		},
		func(_ int, ec iterant.ExitCase) task.Effect[struct{}] {
			releaseCount++
			seenExit = ec
			return task.Pure(struct{}{})
		},
	)

	_, err := runSync(t, iterant.ToSlice(s))
	if !errors.Is(err, sentinel) {
		t.Fatalf("got %v, want %v", err, sentinel)
	}
	if releaseCount != 1 {
		t.Fatalf("release ran %d times, want 1", releaseCount)
	}
	if !seenExit.IsError() || !errors.Is(seenExit.Err(), sentinel) {
		t.Fatalf("expected ExitErrorCase(%v), got %v", sentinel, seenExit.Err())
	}
}

func TestNestedScopesReleaseInReverseAcquireOrder(t *testing.T) {
	var order []string
	inner := iterant.ScopeWith[string, int](
		task.Pure("inner"),
		func(string) iterant.Stream[int] { return iterant.FromSlice([]int{1, 2}, 0) },
		func(r string, _ iterant.ExitCase) task.Effect[struct{}] {
			return task.Delay(func() (struct{}, error) { order = append(order, r); return struct{}{}, nil })
		},
	)
	outer := iterant.ScopeWith[string, int](
		task.Pure("outer"),
		func(string) iterant.Stream[int] { return inner },
		func(r string, _ iterant.ExitCase) task.Effect[struct{}] {
			return task.Delay(func() (struct{}, error) { order = append(order, r); return struct{}{}, nil })
		},
	)

	_ = toSliceOK(t, outer)
	want := []string{"inner", "outer"}
	if len(order) != 2 || order[0] != want[0] || order[1] != want[1] {
		t.Fatalf("got %v, want %v", order, want)
	}
}

// TestNestedScopesInnerReleaseFailureStillRunsOuterRelease is scenario S4:
// the inner release fails, the outer release must still run, and the
// consumer observes the inner release's error.
func TestNestedScopesInnerReleaseFailureStillRunsOuterRelease(t *testing.T) {
	dummy := errors.New("dummy")
	var order []string
	outerReleased := false

	inner := iterant.ScopeWith[string, int](
		task.Pure("inner"),
		func(string) iterant.Stream[int] { return iterant.FromSlice([]int{1, 2}, 0) },
		func(r string, _ iterant.ExitCase) task.Effect[struct{}] {
			return task.Delay(func() (struct{}, error) {
				order = append(order, r)
				return struct{}{}, dummy
			})
		},
	)
	outer := iterant.ScopeWith[string, int](
		task.Pure("outer"),
		func(string) iterant.Stream[int] { return inner },
		func(r string, _ iterant.ExitCase) task.Effect[struct{}] {
			return task.Delay(func() (struct{}, error) {
				order = append(order, r)
				outerReleased = true
				return struct{}{}, nil
			})
		},
	)

	_, err := runSync(t, iterant.ToSlice(outer))
	if !errors.Is(err, dummy) {
		t.Fatalf("got %v, want %v", err, dummy)
	}
	if !outerReleased {
		t.Fatalf("outer release did not run after the inner release failed")
	}
	want := []string{"inner", "outer"}
	if len(order) != 2 || order[0] != want[0] || order[1] != want[1] {
		t.Fatalf("got %v, want %v", order, want)
	}
}

// TestNestedScopesSecondReleaseFailureReportsToScheduler covers the other
// half of scope-lifecycle rule 5: once the first release failure is claimed
// as the propagated error, every later release failure in the same teardown
// is non-fatal and goes to the scheduler's failure reporter instead.
func TestNestedScopesSecondReleaseFailureReportsToScheduler(t *testing.T) {
	innerErr := errors.New("dummy")
	outerErr := errors.New("secondary")
	log := &capturingLogger{}
	sch := scheduler.NewInline(scheduler.BatchedExecution{BatchSize: 8}, log)
	ctx := task.NewContext(sch, task.Options{})

	inner := iterant.ScopeWith[string, int](
		task.Pure("inner"),
		func(string) iterant.Stream[int] { return iterant.FromSlice([]int{1, 2}, 0) },
		func(string, iterant.ExitCase) task.Effect[struct{}] {
			return task.Fail[struct{}](innerErr)
		},
	)
	outer := iterant.ScopeWith[string, int](
		task.Pure("outer"),
		func(string) iterant.Stream[int] { return inner },
		func(string, iterant.ExitCase) task.Effect[struct{}] {
			return task.Fail[struct{}](outerErr)
		},
	)

	var got error
	done := false
	task.RunWithCallback(iterant.ToSlice(outer), ctx, func(_ []int, err error) {
		got, done = err, true
	})
	if !done {
		t.Fatalf("effect did not complete synchronously under Inline scheduler")
	}
	if !errors.Is(got, innerErr) {
		t.Fatalf("got %v, want %v", got, innerErr)
	}
	if len(log.messages) != 1 {
		t.Fatalf("want exactly 1 reported failure, got %d: %v", len(log.messages), log.messages)
	}
	if !strings.Contains(log.messages[0], outerErr.Error()) {
		t.Fatalf("reported failure %q does not mention %v", log.messages[0], outerErr)
	}
}

func TestOnErrorHandleWithReplacesFailedTail(t *testing.T) {
	sentinel := errors.New("upstream failed")
	s := iterant.Next(1, task.Pure(iterant.Raise[int](sentinel)))
	recovered := iterant.OnErrorHandleWith(s, func(err error) iterant.Stream[int] {
		if errors.Is(err, sentinel) {
			return iterant.Last(99)
		}
		return iterant.Raise[int](err)
	})
	got := toSliceOK(t, recovered)
	want := []int{1, 99}
	if !intsEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

// TestOnErrorHandleWithRecoversTailEffectFailure covers a failure raised
// while pulling a tail effect itself, not one already surfaced as a Halt
// node in the tree — the handler must still run.
func TestOnErrorHandleWithRecoversTailEffectFailure(t *testing.T) {
	sentinel := errors.New("tail effect failed")
	s := iterant.Next(1, task.Fail[iterant.Stream[int]](sentinel))
	recovered := iterant.OnErrorHandleWith(s, func(err error) iterant.Stream[int] {
		if errors.Is(err, sentinel) {
			return iterant.Last(99)
		}
		return iterant.Raise[int](err)
	})
	got := toSliceOK(t, recovered)
	want := []int{1, 99}
	if !intsEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestOnErrorHandleWithPassesThroughSuccess(t *testing.T) {
	s := iterant.FromSlice([]int{1, 2, 3}, 0)
	handlerCalled := false
	recovered := iterant.OnErrorHandleWith(s, func(error) iterant.Stream[int] {
		handlerCalled = true
		return iterant.Empty[int]()
	})
	got := toSliceOK(t, recovered)
	want := []int{1, 2, 3}
	if !intsEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if handlerCalled {
		t.Fatalf("handler ran on a successful stream")
	}
}

func TestAttemptConvertsProducerFailureIntoStreamError(t *testing.T) {
	sentinel := errors.New("producer exploded")
	s := iterant.Attempt(task.Fail[iterant.Stream[int]](sentinel))
	_, err := runSync(t, iterant.ToSlice(s))
	if !errors.Is(err, sentinel) {
		t.Fatalf("got %v, want %v", err, sentinel)
	}
}

func TestAttemptPassesThroughSuccess(t *testing.T) {
	s := iterant.Attempt(task.Pure(iterant.FromSlice([]int{1, 2}, 0)))
	got := toSliceOK(t, s)
	want := []int{1, 2}
	if !intsEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestCountMatchesToSliceLength(t *testing.T) {
	s := iterant.FromSlice([]int{1, 2, 3, 4}, 2)
	n, err := runSync(t, iterant.Count(s))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 4 {
		t.Fatalf("got %d, want 4", n)
	}
}
