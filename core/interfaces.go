package core

import (
	"context"
	"fmt"
	"time"
)

// =============================================================================
// PanicHandler: Interface for handling task panics
// =============================================================================

// PanicHandler is called when a spawned task panics while being polled.
// This allows custom panic handling, logging, and recovery strategies.
//
// Implementations should be thread-safe; with additional runtimes in the
// process they may be called concurrently.
type PanicHandler interface {
	// HandlePanic is called when a task panics.
	//
	// Parameters:
	// - ctx: The context the task was polled with
	// - id: The ID of the panicked task
	// - panicInfo: The panic value recovered from the task
	// - stackTrace: The stack trace at the time of panic
	HandlePanic(ctx context.Context, id TaskID, panicInfo any, stackTrace []byte)
}

// DefaultPanicHandler provides a basic panic handler that logs to stdout.
type DefaultPanicHandler struct{}

// HandlePanic prints panic information to stdout.
func (h *DefaultPanicHandler) HandlePanic(ctx context.Context, id TaskID, panicInfo any, stackTrace []byte) {
	fmt.Printf("[Task %s] Panic: %v\nStack trace:\n%s", id, panicInfo, stackTrace)
}

// =============================================================================
// Metrics: Interface for observability and monitoring
// =============================================================================

// Metrics defines the interface for collecting runtime execution metrics.
// Implementations can send metrics to monitoring systems (Prometheus, StatsD, etc.).
//
// Methods should be non-blocking and fast to avoid impacting the driving
// loop.
type Metrics interface {
	// RecordTaskSpawned records that a task was submitted to a scheduler.
	RecordTaskSpawned(flavor string)

	// RecordTaskPoll records a single poll of a task and how long it took.
	RecordTaskPoll(flavor string, duration time.Duration)

	// RecordTaskCompleted records that a task finished, by completing or
	// by panicking.
	RecordTaskCompleted(flavor string)

	// RecordTaskPanic records that a task panicked while being polled.
	RecordTaskPanic(flavor string, panicInfo any)

	// RecordWake records a wakeup notification reaching the scheduler.
	RecordWake(flavor string)

	// RecordQueueDepth records the current run queue depth.
	RecordQueueDepth(flavor string, depth int)
}

// NilMetrics provides a no-op metrics implementation that does nothing.
// This is the default when no metrics interface is provided.
type NilMetrics struct{}

// RecordTaskSpawned is a no-op.
func (m *NilMetrics) RecordTaskSpawned(flavor string) {}

// RecordTaskPoll is a no-op.
func (m *NilMetrics) RecordTaskPoll(flavor string, duration time.Duration) {}

// RecordTaskCompleted is a no-op.
func (m *NilMetrics) RecordTaskCompleted(flavor string) {}

// RecordTaskPanic is a no-op.
func (m *NilMetrics) RecordTaskPanic(flavor string, panicInfo any) {}

// RecordWake is a no-op.
func (m *NilMetrics) RecordWake(flavor string) {}

// RecordQueueDepth is a no-op.
func (m *NilMetrics) RecordQueueDepth(flavor string, depth int) {}
