// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"testing"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run and Stop were called.
type mockWorker struct {
	runCount  int
	stopCount int
}

func (m *mockWorker) Run() {
	m.runCount++
}

func (m *mockWorker) Stop() {
	m.stopCount++
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ws := NewWorkers(w1, w2, w3)
	ws.Run()

	for i, w := range []*mockWorker{w1, w2, w3} {
		if w.runCount != 1 {
			t.Errorf("worker[%d]: expected runCount=1, got %d", i, w.runCount)
		}
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := NewWorkers()

	// Should not panic on empty workers list
	ws.Run()
	ws.Stop()
}

func TestWorkers_Run_Nil(t *testing.T) {
	ws := &Workers{}

	// Should not panic when workers field is nil
	ws.Run()
	ws.Stop()
}

func TestWorkers_Order(t *testing.T) {
	order := []string{}

	ws := NewWorkers(
		&orderWorker{id: "a", order: &order},
		&orderWorker{id: "b", order: &order},
	)
	ws.Run()
	ws.Stop()

	expected := []string{"run a", "run b", "stop b", "stop a"}
	if len(order) != len(expected) {
		t.Fatalf("expected %d calls, got %d: %v", len(expected), len(order), order)
	}
	for i, v := range expected {
		if order[i] != v {
			t.Errorf("expected order[%d]=%q, got %q", i, v, order[i])
		}
	}
}

func TestWorkers_Stop_CalledOnce(t *testing.T) {
	w := &mockWorker{}
	ws := NewWorkers(w)

	ws.Stop()

	if w.stopCount != 1 {
		t.Errorf("expected Stop to be called exactly once, got %d", w.stopCount)
	}
}

// orderWorker is a helper that records its calls into a shared slice.
type orderWorker struct {
	id    string
	order *[]string
}

func (o *orderWorker) Run() {
	*o.order = append(*o.order, "run "+o.id)
}

func (o *orderWorker) Stop() {
	*o.order = append(*o.order, "stop "+o.id)
}
