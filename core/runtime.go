package core

import "context"

// Runtime owns a scheduler and the shared handle pointing at it.
type Runtime struct {
	scheduler *CurrentThread
	handle    *Handle
}

// Handle returns the runtime's scheduler handle. The handle is shared;
// it may be held and used by any number of call sites concurrently.
func (rt *Runtime) Handle() *Handle {
	return rt.handle
}

// Stats returns a snapshot of the runtime's scheduler counters.
func (rt *Runtime) Stats() SchedulerStats {
	return rt.handle.Stats()
}

// History returns up to limit recently finished task records, most
// recent first. limit <= 0 returns everything retained.
func (rt *Runtime) History(limit int) []TaskRecord {
	return rt.scheduler.handle.history.Recent(limit)
}

// BlockOn drives fut to completion on the calling goroutine and returns
// its result.
//
// The call enters the runtime exactly once: calling BlockOn from a task
// already being driven panics with a re-entrancy diagnostic. ctx is
// propagated, extended with the runtime's execution context, to every
// task poll; tasks use it to spawn siblings.
func BlockOn[T any](rt *Runtime, ctx context.Context, fut Future[T]) T {
	return blockOn(rt.scheduler, rt.handle, ctx, fut)
}
