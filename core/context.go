package core

import (
	"context"
	"math"
	"sync/atomic"
)

// ExecutionContext is the ambient state of the goroutine driving a
// runtime: the currently active scheduler handle, a re-entrancy depth
// counter, whether the goroutine is inside a runtime, and the goroutine's
// random number generator.
//
// Go has no per-thread ambient storage worth relying on, so the context
// is an explicit object carried in the context.Context the runtime hands
// to every poll. Apart from the destroyed flag it is confined to the
// driving goroutine and must not be shared.
type ExecutionContext struct {
	// Handle to the scheduler active on this execution context. When a
	// handle is installed while nested under another runtime's entry,
	// current does not necessarily reference the runtime currently
	// executing.
	current *Handle

	// Nesting depth of SetCurrent installs.
	depth uint32

	// Tracks whether this goroutine is currently driving a runtime.
	entered           bool
	allowBlockInPlace bool

	// Ambient generator; created lazily on first runtime entry.
	rng *FastRand

	// Set when the runtime that owned this context has exited. Lookups
	// through a stale context may observe it from any goroutine.
	destroyed atomic.Bool
}

// NewExecutionContext returns an empty execution context: no active
// handle, depth zero, not entered.
func NewExecutionContext() *ExecutionContext {
	return &ExecutionContext{}
}

type executionContextKeyType struct{}

var executionContextKey executionContextKeyType

// Attach returns a context carrying ec. The runtime attaches its
// execution context to the context passed to every task poll.
func (ec *ExecutionContext) Attach(ctx context.Context) context.Context {
	return context.WithValue(ctx, executionContextKey, ec)
}

// ExecutionContextFrom extracts the execution context attached to ctx,
// or nil when there is none.
func ExecutionContextFrom(ctx context.Context) *ExecutionContext {
	if v := ctx.Value(executionContextKey); v != nil {
		return v.(*ExecutionContext)
	}
	return nil
}

// Rng returns the context's generator, creating it from ambient entropy
// on first use.
func (ec *ExecutionContext) Rng() *FastRand {
	if ec.rng == nil {
		ec.rng = NewFastRand()
	}
	return ec.rng
}

// CurrentHandle resolves the scheduler handle active on ctx.
//
// It fails with ErrNoContext when ctx carries no execution context or no
// handle is installed, and with ErrContextDestroyed when the context
// belongs to a runtime that has already exited.
func CurrentHandle(ctx context.Context) (*Handle, error) {
	ec := ExecutionContextFrom(ctx)
	if ec == nil {
		return nil, ErrNoContext
	}
	if ec.destroyed.Load() {
		return nil, ErrContextDestroyed
	}
	if ec.current == nil {
		return nil, ErrNoContext
	}
	return ec.current, nil
}

// SetCurrentGuard restores the previously active handle when released.
type SetCurrentGuard struct {
	ec       *ExecutionContext
	prev     *Handle
	released bool
}

// SetCurrent installs h as the active scheduler handle, remembering
// whatever was previously active. Nested installs increment the depth
// counter; overflowing it is a resource-exhaustion bug and panics.
func (ec *ExecutionContext) SetCurrent(h *Handle) *SetCurrentGuard {
	if ec.depth == math.MaxUint32 {
		panic("core: " + depthOverflowMsg)
	}
	g := &SetCurrentGuard{ec: ec, prev: ec.current}
	ec.current = h
	ec.depth++
	return g
}

// Release restores the handle that was active before SetCurrent.
// Releasing twice is a no-op.
func (g *SetCurrentGuard) Release() {
	if g.released {
		return
	}
	g.released = true
	g.ec.depth--
	g.ec.current = g.prev
}
