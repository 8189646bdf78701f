package core

import "testing"

func TestExecutionHistory_Empty(t *testing.T) {
	h := newExecutionHistory(4)
	if got := h.Recent(0); got != nil {
		t.Fatalf("Recent on empty history = %v, want nil", got)
	}
	if _, ok := h.Last(); ok {
		t.Fatal("Last on empty history reported a record")
	}
}

// TestExecutionHistory_RingOrder tests eviction and most-recent-first order
func TestExecutionHistory_RingOrder(t *testing.T) {
	h := newExecutionHistory(3)
	for i := 1; i <= 5; i++ {
		h.Add(TaskRecord{ID: TaskID(i)})
	}

	got := h.Recent(0)
	want := []TaskID{5, 4, 3}
	if len(got) != len(want) {
		t.Fatalf("Recent returned %d records, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("Recent[%d].ID = %s, want %s", i, got[i].ID, id)
		}
	}

	last, ok := h.Last()
	if !ok || last.ID != 5 {
		t.Fatalf("Last = (%v, %v), want record 5", last.ID, ok)
	}

	if limited := h.Recent(2); len(limited) != 2 || limited[0].ID != 5 || limited[1].ID != 4 {
		t.Fatalf("Recent(2) = %v, want [5 4]", limited)
	}
}

func TestExecutionHistory_BadCapacityDefaults(t *testing.T) {
	h := newExecutionHistory(0)
	if len(h.items) != defaultTaskHistoryCapacity {
		t.Fatalf("capacity = %d, want default %d", len(h.items), defaultTaskHistoryCapacity)
	}
}
