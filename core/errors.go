package core

import "errors"

// Lookup failures returned by CurrentHandle. Callers with enough context
// decide what to do with them; Spawn turns either into a panic.
var (
	// ErrNoContext reports that no runtime is active on the calling
	// context, so there is no scheduler handle to resolve.
	ErrNoContext = errors.New(
		"there is no runtime running; must be called from within a runtime context")

	// ErrContextDestroyed reports that the execution context the caller
	// holds belongs to a runtime that has already been torn down.
	ErrContextDestroyed = errors.New(
		"the runtime execution context has already been torn down")
)

// Diagnostics for structural misuse. These conditions are never recovered;
// the operation that triggers them panics with the violated invariant.
const (
	reentrantEntryMsg = "cannot start a runtime from within a runtime: this happens " +
		"because a function (like BlockOn) attempted to block the current " +
		"goroutine while it is being used to drive asynchronous tasks"

	depthOverflowMsg = "runtime context depth counter overflow: too many nested " +
		"SetCurrent calls"
)
