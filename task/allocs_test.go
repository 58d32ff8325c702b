// Copyright (c) 2026 Monix Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package task_test

import (
	"testing"

	"github.com/monifu/monix/task"
)

func TestStepAllocationsPure(t *testing.T) {
	em := alwaysLargeBatch{}
	e := task.Pure(42)
	allocs := testing.AllocsPerRun(100, func() {
		_ = task.Step(e, em)
	})
	if allocs > 1 {
		t.Errorf("Step(Pure) allocs = %v; want <= 1", allocs)
	}
}

func TestStepAllocationsMap(t *testing.T) {
	em := alwaysLargeBatch{}
	e := task.Map(task.Pure(42), func(x int) int { return x + 1 })
	allocs := testing.AllocsPerRun(100, func() {
		_ = task.Step(e, em)
	})
	if allocs > 2 {
		t.Errorf("Step(Map) allocs = %v; want <= 2", allocs)
	}
}

// alwaysLargeBatch never forces a boundary across these single-Step runs.
type alwaysLargeBatch struct{}

func (alwaysLargeBatch) NextFrameIndex(current int) int {
	if current <= 0 {
		return 1 << 30
	}
	return current - 1
}
