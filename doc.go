// Package miniruntime provides a minimal single-threaded cooperative task
// runtime for Go.
//
// The runtime drives futures - units of suspendable work - to completion
// on the goroutine that calls BlockOn. Tasks spawned while the runtime is
// driving are queued FIFO and polled on that same goroutine; wakeups may
// arrive from any goroutine through the reference-counted waker bridge.
//
// # Quick Start
//
// Build a current-thread runtime and drive a future on it:
//
//	rt, err := miniruntime.NewCurrentThread().Build()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sum := miniruntime.BlockOn(rt, context.Background(),
//		miniruntime.FutureFunc[int](func(ctx context.Context, w miniruntime.WakerRef) (int, bool) {
//			return 5 + 3, true
//		}))
//
// Tasks spawn siblings through the context the runtime hands to every
// poll:
//
//	handle := miniruntime.Spawn(ctx, miniruntime.Ready(42))
//
// # Key Concepts
//
// Future: the unit of work. Poll either completes with a value or
// registers the supplied waker and reports not-ready.
//
// Waker: a type-erased, reference-counted handle used to signal that a
// suspended task should be polled again. Wakers are the only part of the
// runtime that other goroutines may call.
//
// JoinHandle: a future over a spawned task's eventual result.
//
// Builder: configures a runtime before construction. A fixed RNG seed
// makes runs deterministic, which test harnesses rely on.
//
// # Re-entrancy
//
// A runtime must not be started from within a runtime: calling BlockOn
// from a task being driven panics with a diagnostic instead of silently
// nesting. The guard releases on every exit path, so a fresh BlockOn
// after the outer one returns succeeds.
package miniruntime
