package core

import (
	"context"
	"runtime/debug"
	"sync/atomic"
	"time"
)

// currentThreadHandle is the shared state of the current-thread scheduler:
// the seed source, the run queue, and the wakeup signal. It is what a
// Handle of FlavorCurrentThread points at, and the only part of the
// scheduler that other goroutines may touch (through schedule).
type currentThreadHandle struct {
	seedGen *RngSeedGenerator

	queue *runQueue

	// signal is the parking channel of the driving loop. Buffered with
	// capacity one: a single pending token is enough because the loop
	// drains the whole queue every time it wakes.
	signal chan struct{}

	logger       Logger
	metrics      Metrics
	panicHandler PanicHandler
	history      *executionHistory

	spawned   atomic.Int64
	completed atomic.Int64
	panicked  atomic.Int64
	wakes     atomic.Int64
	running   atomic.Bool
}

func newCurrentThreadHandle(seedGen *RngSeedGenerator, logger Logger, metrics Metrics, panicHandler PanicHandler, historyCap int) *currentThreadHandle {
	return &currentThreadHandle{
		seedGen:      seedGen,
		queue:        newRunQueue(),
		signal:       make(chan struct{}, 1),
		logger:       logger,
		metrics:      metrics,
		panicHandler: panicHandler,
		history:      newExecutionHistory(historyCap),
	}
}

// schedule re-enqueues a woken task. Safe to call from any goroutine;
// redundant wakes of an already-queued task coalesce.
func (h *currentThreadHandle) schedule(t *task) {
	h.wakes.Add(1)
	h.metrics.RecordWake(FlavorCurrentThread.String())

	if !t.queued.CompareAndSwap(false, true) {
		return
	}

	h.queue.Push(t)
	h.metrics.RecordQueueDepth(FlavorCurrentThread.String(), h.queue.Len())

	select {
	case h.signal <- struct{}{}:
	default:
	}
}

// runTask polls a queued task once, handling completion, requeueing
// wakes that arrived mid-poll, and panic recovery.
func (h *currentThreadHandle) runTask(ctx context.Context, t *task) {
	// Clear before polling so a wake arriving during the poll requeues.
	t.queued.Store(false)

	if t.finished.Load() {
		// A stale wake raced with completion.
		return
	}

	start := time.Now()
	done := false
	panicked := false

	func() {
		defer func() {
			if r := recover(); r != nil {
				panicked = true
				h.panicHandler.HandlePanic(ctx, t.id, r, debug.Stack())
				h.metrics.RecordTaskPanic(FlavorCurrentThread.String(), r)
				if t.onPanic != nil {
					t.onPanic()
				}
			}
		}()
		done = t.poll(ctx, NewWakerRef(t.shared))
	}()

	t.polls++
	h.metrics.RecordTaskPoll(FlavorCurrentThread.String(), time.Since(start))

	if done || panicked {
		h.finishTask(t, start, panicked)
	}
}

func (h *currentThreadHandle) finishTask(t *task, lastPoll time.Time, panicked bool) {
	h.completed.Add(1)
	if panicked {
		h.panicked.Add(1)
	}
	h.metrics.RecordTaskCompleted(FlavorCurrentThread.String())
	h.history.Add(TaskRecord{
		ID:         t.id,
		Polls:      t.polls,
		FinishedAt: time.Now(),
		Duration:   time.Since(lastPoll),
		Panicked:   panicked,
	})
	h.logger.Debug("task finished",
		F("id", t.id), F("polls", t.polls), F("panicked", panicked))

	// Stale wakes become no-ops from here on; drop the scheduler's
	// reference on the task's bridge cell.
	t.finished.Store(true)
	t.shared.release()
}

func spawnCurrentThread[T any](h *currentThreadHandle, fut Future[T], id TaskID) *JoinHandle[T] {
	j := newJoinHandle[T](id)

	t := &task{id: id, sched: h}
	t.poll = func(ctx context.Context, w WakerRef) bool {
		v, ready := fut.Poll(ctx, w)
		if ready {
			j.complete(v, false)
			return true
		}
		return false
	}
	t.onPanic = func() {
		var zero T
		j.complete(zero, true)
	}
	t.shared = NewShared(t, nil)

	h.spawned.Add(1)
	h.metrics.RecordTaskSpawned(FlavorCurrentThread.String())
	h.logger.Debug("task spawned", F("id", id))

	// A spawn is the task's first wake.
	h.schedule(t)
	return j
}

// CurrentThread executes tasks on the goroutine that calls BlockOn.
type CurrentThread struct {
	handle *currentThreadHandle
}

func newCurrentThread(handle *currentThreadHandle) *CurrentThread {
	return &CurrentThread{handle: handle}
}

// mainWaker wakes the driving loop itself when the main future becomes
// ready to poll again. Wakes may arrive from any goroutine.
type mainWaker struct {
	woken  atomic.Bool
	signal chan struct{}
}

func (m *mainWaker) Wake() {
	m.WakeByRef()
}

func (m *mainWaker) WakeByRef() {
	if m.woken.CompareAndSwap(false, true) {
		select {
		case m.signal <- struct{}{}:
		default:
		}
	}
}

// blockOn drives fut to completion on the calling goroutine.
//
// Shape of the loop: poll the main future whenever it has been woken,
// then drain the run queue FIFO, then park on the signal channel until
// either side wakes. The main future is polled through its own bridge
// cell, exactly like a spawned task would be.
func blockOn[T any](s *CurrentThread, h *Handle, ctx context.Context, fut Future[T]) T {
	ec := ExecutionContextFrom(ctx)
	ownContext := ec == nil
	if ownContext {
		ec = NewExecutionContext()
	}

	if ownContext {
		// The runtime's own context dies with this call; lookups through
		// a leaked task context must fail afterwards.
		defer ec.destroyed.Store(true)
	}

	return EnterRuntime(ec, h, false, func(_ *BlockingRegion) T {
		runCtx := ec.Attach(ctx)
		ct := s.handle

		ct.running.Store(true)
		defer ct.running.Store(false)

		mw := &mainWaker{signal: ct.signal}
		mw.woken.Store(true) // poll at least once
		mainShared := NewShared(mw, nil)

		for {
			if mw.woken.Swap(false) {
				if v, ready := fut.Poll(runCtx, NewWakerRef(mainShared)); ready {
					return v
				}
			}

			for {
				t, ok := ct.queue.Pop()
				if !ok {
					break
				}
				ct.runTask(runCtx, t)
			}

			if mw.woken.Load() || !ct.queue.IsEmpty() {
				continue
			}

			// Nothing ready: park until a wake arrives. A token may
			// already be buffered from a wake we just consumed by
			// draining; the loop re-checks everything after waking, so a
			// spurious token only costs one extra pass.
			<-ct.signal
		}
	})
}
