// Copyright (c) 2026 Monix Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task_test

import (
	"testing"

	"github.com/monifu/monix/task"
)

func TestCancelConnectionInvokesTokensInReverseOrder(t *testing.T) {
	var order []int
	conn := task.NewCancelConnection()
	conn.Push(func() { order = append(order, 1) })
	conn.Push(func() { order = append(order, 2) })
	conn.Push(func() { order = append(order, 3) })
	conn.Cancel()

	want := []int{3, 2, 1}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

func TestCancelConnectionCancelIsIdempotent(t *testing.T) {
	calls := 0
	conn := task.NewCancelConnection()
	conn.Push(func() { calls++ })
	conn.Cancel()
	conn.Cancel()
	if calls != 1 {
		t.Fatalf("token invoked %d times, want 1", calls)
	}
}

func TestCancelConnectionPushAfterCancelRunsImmediately(t *testing.T) {
	conn := task.NewCancelConnection()
	conn.Cancel()
	ran := false
	conn.Push(func() { ran = true })
	if !ran {
		t.Fatalf("token pushed after cancel was not run immediately")
	}
}

func TestCancelConnectionPopDiscardsWithoutInvoking(t *testing.T) {
	ran := false
	conn := task.NewCancelConnection()
	conn.Push(func() { ran = true })
	conn.Pop()
	conn.Cancel()
	if ran {
		t.Fatalf("popped token was invoked on cancel")
	}
}

func TestContextCancelInvokesPushedToken(t *testing.T) {
	ctx := newTestContext()
	cancelled := false
	ctx.CancelConnection().Push(func() { cancelled = true })
	ctx.Cancel()
	if !cancelled {
		t.Fatalf("cancelling the context did not invoke the pushed token")
	}
	if !ctx.ShouldCancel() {
		t.Fatalf("ShouldCancel() false after Cancel()")
	}
}
