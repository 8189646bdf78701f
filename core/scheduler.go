package core

import (
	"context"
	"fmt"
)

// Flavor is the execution strategy of a runtime.
type Flavor uint8

const (
	// FlavorCurrentThread executes all tasks on the goroutine that calls
	// BlockOn. It is the only flavor implemented.
	FlavorCurrentThread Flavor = iota
)

func (f Flavor) String() string {
	switch f {
	case FlavorCurrentThread:
		return "current_thread"
	default:
		return fmt.Sprintf("flavor(%d)", uint8(f))
	}
}

// Handle is a shared handle to a scheduler, polymorphic over flavor.
//
// Handles are shared by pointer: every call site that needs to enqueue
// work holds the same underlying scheduler state. A handle is safe to
// copy around; it never deep-copies scheduler state.
type Handle struct {
	flavor Flavor
	ct     *currentThreadHandle
}

// Flavor reports the scheduler flavor behind this handle.
func (h *Handle) Flavor() Flavor {
	return h.flavor
}

// SeedGenerator returns the handle's seed source, used when entering the
// runtime to derive a per-entry PRNG stream.
func (h *Handle) SeedGenerator() *RngSeedGenerator {
	switch h.flavor {
	case FlavorCurrentThread:
		return h.ct.seedGen
	default:
		panic("core: unknown scheduler flavor " + h.flavor.String())
	}
}

// Stats returns a snapshot of the scheduler's counters.
func (h *Handle) Stats() SchedulerStats {
	switch h.flavor {
	case FlavorCurrentThread:
		return h.ct.stats()
	default:
		panic("core: unknown scheduler flavor " + h.flavor.String())
	}
}

// Spawn submits fut to the scheduler active on ctx and returns a handle
// to its eventual result.
//
// The task starts running once the driving loop gets to it; Spawn itself
// only allocates an ID and enqueues. It panics when ctx carries no active
// runtime, the runtime has been torn down, or the ID space is exhausted.
func Spawn[T any](ctx context.Context, fut Future[T]) *JoinHandle[T] {
	id := NextTaskID()
	h, err := CurrentHandle(ctx)
	if err != nil {
		panic(err)
	}
	return SpawnOn(h, fut, id)
}

// SpawnOn submits fut with a pre-allocated ID to the scheduler behind h.
func SpawnOn[T any](h *Handle, fut Future[T], id TaskID) *JoinHandle[T] {
	switch h.flavor {
	case FlavorCurrentThread:
		return spawnCurrentThread(h.ct, fut, id)
	default:
		panic("core: unknown scheduler flavor " + h.flavor.String())
	}
}
