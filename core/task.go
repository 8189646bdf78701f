package core

import (
	"context"
	"sync/atomic"
)

// Future is a unit of suspendable work producing a value of type T.
//
// Poll attempts to advance the work. It returns (value, true) when the
// work is complete, or (zero, false) when it is not yet ready. Before
// returning not-ready the future must arrange for the waker to be
// signalled once progress is possible; otherwise it is never polled
// again. The waker is borrowed for the duration of the call: a future
// that wants to signal later keeps an owning handle via Clone.
//
// The context carries the runtime's execution context, so a future may
// spawn sibling tasks through it.
type Future[T any] interface {
	Poll(ctx context.Context, w WakerRef) (T, bool)
}

// FutureFunc adapts a plain function to the Future interface.
type FutureFunc[T any] func(ctx context.Context, w WakerRef) (T, bool)

func (f FutureFunc[T]) Poll(ctx context.Context, w WakerRef) (T, bool) {
	return f(ctx, w)
}

// Ready returns a future that completes immediately with v.
func Ready[T any](v T) Future[T] {
	return FutureFunc[T](func(context.Context, WakerRef) (T, bool) {
		return v, true
	})
}

// task is a type-erased spawned unit of work owned by a scheduler.
//
// A task is its own wakeable: waking it re-enqueues it on the owning
// scheduler's run queue. The queued flag coalesces redundant wakes; it is
// cleared right before polling so that a wake arriving mid-poll requeues
// the task.
type task struct {
	id    TaskID
	sched *currentThreadHandle

	// poll advances the wrapped future; true means done.
	poll func(ctx context.Context, w WakerRef) bool

	// onPanic marks the join handle when the task's poll panics.
	onPanic func()

	queued   atomic.Bool
	finished atomic.Bool
	shared   *Shared
	polls    uint64
}

// Waking a finished task is a stale notification and a no-op.

func (t *task) Wake() {
	if t.finished.Load() {
		return
	}
	t.sched.schedule(t)
}

func (t *task) WakeByRef() {
	if t.finished.Load() {
		return
	}
	t.sched.schedule(t)
}

// JoinHandle is an owned permission to join on a task: a future over the
// task's eventual result.
//
// The waiter slot holds the waker of whichever future is currently
// joining; completion takes it and performs a consuming wake. Both the
// completion and the join side may race from different goroutines, which
// the atomic done flag and the waiter cell absorb.
type JoinHandle[T any] struct {
	id TaskID

	value    T
	panicked bool
	done     atomic.Bool

	waiter *AtomicCell[Waker]
}

func newJoinHandle[T any](id TaskID) *JoinHandle[T] {
	return &JoinHandle[T]{
		id:     id,
		waiter: NewAtomicCell[Waker](nil),
	}
}

// ID returns the identifier of the task this handle joins on.
func (j *JoinHandle[T]) ID() TaskID {
	return j.id
}

// complete records the task's outcome and wakes the joiner, if any.
// Called exactly once, from the scheduler goroutine.
func (j *JoinHandle[T]) complete(v T, panicked bool) {
	j.value = v
	j.panicked = panicked
	j.done.Store(true)

	if w := j.waiter.Take(); w != nil {
		w.Wake()
	}
}

// Poll implements Future over the task result. Joining a panicked task
// yields the zero value; check Panicked to tell the cases apart.
func (j *JoinHandle[T]) Poll(ctx context.Context, w WakerRef) (T, bool) {
	if j.done.Load() {
		return j.value, true
	}

	// Park our waker, dropping any previously parked one.
	if old := j.waiter.Swap(w.Clone()); old != nil {
		old.Drop()
	}

	// Re-check: completion may have raced past the first load and missed
	// the freshly parked waker.
	if j.done.Load() {
		if parked := j.waiter.Take(); parked != nil {
			parked.Drop()
		}
		return j.value, true
	}

	var zero T
	return zero, false
}

// TryResult returns the task's result if it has already completed.
func (j *JoinHandle[T]) TryResult() (T, bool) {
	if j.done.Load() {
		return j.value, true
	}
	var zero T
	return zero, false
}

// Panicked reports whether the task terminated by panicking.
func (j *JoinHandle[T]) Panicked() bool {
	return j.done.Load() && j.panicked
}
