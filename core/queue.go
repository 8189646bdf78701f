package core

import "sync"

const (
	defaultQueueCap     = 16
	compactMinCap       = 64 // Don't compact if capacity is less than this
	compactShrinkFactor = 4  // Trigger compaction when len < cap/4
)

// runQueue is the FIFO run queue of the current-thread scheduler.
//
// Pushes may come from any goroutine because cross-goroutine wakes
// re-enqueue tasks; pops only ever happen on the goroutine driving the
// runtime.
type runQueue struct {
	mu    sync.Mutex
	tasks []*task
}

func newRunQueue() *runQueue {
	return &runQueue{
		tasks: make([]*task, 0, defaultQueueCap),
	}
}

func (q *runQueue) Push(t *task) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, t)
}

func (q *runQueue) Pop() (*task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.tasks) == 0 {
		return nil, false
	}

	t := q.tasks[0]
	// Zero out the element in the underlying array to prevent memory leak
	q.tasks[0] = nil
	q.tasks = q.tasks[1:]
	q.maybeCompactLocked()

	return t, true
}

func (q *runQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

func (q *runQueue) IsEmpty() bool {
	return q.Len() == 0
}

func (q *runQueue) maybeCompactLocked() {
	n := len(q.tasks)
	c := cap(q.tasks)

	if c < compactMinCap {
		return
	}
	if n == 0 {
		q.tasks = make([]*task, 0, defaultQueueCap)
		return
	}
	if n*compactShrinkFactor >= c {
		return
	}

	newCap := max(max(c/2, defaultQueueCap), n)

	newSlice := make([]*task, n, newCap)
	copy(newSlice, q.tasks)
	q.tasks = newSlice
}
