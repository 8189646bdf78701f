package core

import (
	"sync"
	"testing"
)

func TestRunQueue_FIFO(t *testing.T) {
	q := newRunQueue()

	tasks := make([]*task, 10)
	for i := range tasks {
		tasks[i] = &task{id: NextTaskID()}
		q.Push(tasks[i])
	}
	if q.Len() != 10 {
		t.Fatalf("Len = %d, want 10", q.Len())
	}

	for i := range tasks {
		got, ok := q.Pop()
		if !ok {
			t.Fatalf("Pop %d: queue empty early", i)
		}
		if got != tasks[i] {
			t.Fatalf("Pop %d: got task %s, want %s", i, got.id, tasks[i].id)
		}
	}
	if _, ok := q.Pop(); ok {
		t.Fatal("Pop on drained queue returned a task")
	}
	if !q.IsEmpty() {
		t.Fatal("IsEmpty = false on drained queue")
	}
}

// TestRunQueue_Compaction tests that a drained queue sheds its backing
// array once it crossed the compaction threshold
func TestRunQueue_Compaction(t *testing.T) {
	q := newRunQueue()

	for i := 0; i < compactMinCap*2; i++ {
		q.Push(&task{id: NextTaskID()})
	}
	for !q.IsEmpty() {
		q.Pop()
	}

	if c := cap(q.tasks); c > compactMinCap {
		t.Fatalf("capacity = %d after drain, want compacted below %d", c, compactMinCap)
	}
}

// TestRunQueue_ConcurrentPush tests cross-goroutine pushes with a single
// popper, which is the wake path's access pattern
func TestRunQueue_ConcurrentPush(t *testing.T) {
	const pushers = 8
	const perPusher = 500

	q := newRunQueue()

	var wg sync.WaitGroup
	for p := 0; p < pushers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perPusher; i++ {
				q.Push(&task{id: NextTaskID()})
			}
		}()
	}

	popped := 0
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	for {
		if _, ok := q.Pop(); ok {
			popped++
			continue
		}
		select {
		case <-done:
			for {
				if _, ok := q.Pop(); !ok {
					if popped != pushers*perPusher {
						t.Errorf("popped %d tasks, want %d", popped, pushers*perPusher)
					}
					return
				}
				popped++
			}
		default:
		}
	}
}
