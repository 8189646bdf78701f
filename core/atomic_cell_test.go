package core

import (
	"sync"
	"testing"
)

func TestAtomicCell_Empty(t *testing.T) {
	c := NewAtomicCell[int](nil)
	if got := c.Take(); got != nil {
		t.Fatalf("Take on empty cell = %v, want nil", got)
	}
	if got := c.Swap(nil); got != nil {
		t.Fatalf("Swap(nil) on empty cell = %v, want nil", got)
	}
}

func TestAtomicCell_SetTake(t *testing.T) {
	c := NewAtomicCell[string](nil)

	v := "hello"
	c.Set(&v)

	got := c.Take()
	if got == nil || *got != "hello" {
		t.Fatalf("Take = %v, want %q", got, "hello")
	}
	if c.Take() != nil {
		t.Fatal("second Take returned a value, cell should be empty")
	}
}

func TestAtomicCell_SwapReturnsPrevious(t *testing.T) {
	one, two := 1, 2
	c := NewAtomicCell(&one)

	prev := c.Swap(&two)
	if prev != &one {
		t.Fatalf("Swap returned %v, want the initial value", prev)
	}
	if got := c.Take(); got != &two {
		t.Fatalf("Take = %v, want the swapped-in value", got)
	}
}

// TestAtomicCell_ConcurrentSwap tests that concurrent swaps neither lose
// nor duplicate values
// Main test items:
// 1. Every pointer that entered the cell comes back out exactly once
// 2. The final Take accounts for the last value left in the cell
func TestAtomicCell_ConcurrentSwap(t *testing.T) {
	const goroutines = 16
	const perGoroutine = 500

	initial := -1
	c := NewAtomicCell(&initial)

	var wg sync.WaitGroup
	recovered := make([][]*int, goroutines)
	inserted := make([][]*int, goroutines)

	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			ins := make([]*int, 0, perGoroutine)
			rec := make([]*int, 0, perGoroutine)
			for i := 0; i < perGoroutine; i++ {
				v := g*perGoroutine + i
				ins = append(ins, &v)
				if prev := c.Swap(&v); prev != nil {
					rec = append(rec, prev)
				}
			}
			inserted[g] = ins
			recovered[g] = rec
		}(g)
	}
	wg.Wait()

	seen := make(map[*int]int)
	total := 0
	for _, rec := range recovered {
		for _, p := range rec {
			seen[p]++
			total++
		}
	}
	if last := c.Take(); last != nil {
		seen[last]++
		total++
	} else {
		t.Fatal("cell empty after concurrent swaps, last value lost")
	}

	want := goroutines*perGoroutine + 1
	if total != want {
		t.Fatalf("recovered %d values, want %d", total, want)
	}
	for p, n := range seen {
		if n != 1 {
			t.Fatalf("value %d came out of the cell %d times", *p, n)
		}
	}
	if seen[&initial] != 1 {
		t.Fatal("initial value never came back out")
	}
	for _, ins := range inserted {
		for _, p := range ins {
			if p != nil && seen[p] != 1 {
				t.Fatalf("inserted value %d not recovered exactly once", *p)
			}
		}
	}
}
