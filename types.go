package miniruntime

import (
	"context"

	"github.com/volodymyrd/tokio-tutorial/core"
)

// Re-export commonly used types from core package for convenience.
// This allows users to import only the miniruntime package for most use cases.

// TaskID uniquely identifies a task
type TaskID = core.TaskID

// RngSeed seeds the runtime's fast random number generator
type RngSeed = core.RngSeed

// Runtime owns a scheduler and the handle pointing at it
type Runtime = core.Runtime

// Builder builds a Runtime with custom configuration values
type Builder = core.Builder

// Handle is a shared, flavor-polymorphic scheduler handle
type Handle = core.Handle

// Waker signals that a suspended task should be polled again
type Waker = core.Waker

// WakerRef is a borrowed, non-owning view of a waker
type WakerRef = core.WakerRef

// Wakeable is implemented by objects signalled through a Waker
type Wakeable = core.Wakeable

// Logger is the structured logging interface used by the runtime
type Logger = core.Logger

// Field represents a key-value pair for structured logging
type Field = core.Field

// Metrics is the metrics sink interface used by the runtime
type Metrics = core.Metrics

// PanicHandler handles panics escaping spawned tasks
type PanicHandler = core.PanicHandler

// SchedulerStats is a snapshot of a scheduler's counters
type SchedulerStats = core.SchedulerStats

// TaskRecord captures a finished task
type TaskRecord = core.TaskRecord

// Future is a unit of suspendable work producing a value of type T
type Future[T any] = core.Future[T]

// FutureFunc adapts a plain function to the Future interface
type FutureFunc[T any] = core.FutureFunc[T]

// JoinHandle is a future over a spawned task's eventual result
type JoinHandle[T any] = core.JoinHandle[T]

// ExecutionContext is the ambient state of the goroutine driving a runtime
type ExecutionContext = core.ExecutionContext

// ExecutionContextFrom extracts the execution context attached to ctx,
// or nil when there is none.
func ExecutionContextFrom(ctx context.Context) *ExecutionContext {
	return core.ExecutionContextFrom(ctx)
}

// NewCurrentThread returns a builder for a current-thread runtime.
func NewCurrentThread() *Builder {
	return core.NewCurrentThread()
}

// NewRngSeed draws a seed from the process entropy source.
func NewRngSeed() RngSeed {
	return core.NewRngSeed()
}

// RngSeedFromUint64 folds a 64-bit value into a seed.
func RngSeedFromUint64(seed uint64) RngSeed {
	return core.RngSeedFromUint64(seed)
}

// Ready returns a future that completes immediately with v.
func Ready[T any](v T) Future[T] {
	return core.Ready(v)
}

// F creates a new logging Field with the given key and value.
func F(key string, value any) Field {
	return core.F(key, value)
}

// NewDefaultLogger creates a logger backed by the standard log package.
func NewDefaultLogger() *core.DefaultLogger {
	return core.NewDefaultLogger()
}

// NewNoOpLogger creates a logger that discards all messages.
func NewNoOpLogger() *core.NoOpLogger {
	return core.NewNoOpLogger()
}
