package core

import (
	"math"
	"time"

	"fortio.org/safecast"
)

// TaskRecord captures a finished task.
type TaskRecord struct {
	ID         TaskID
	Polls      uint64
	FinishedAt time.Time
	Duration   time.Duration
	Panicked   bool
}

// SchedulerStats represents runtime observability state for a scheduler.
type SchedulerStats struct {
	Flavor    string
	Spawned   int
	Completed int
	Panicked  int
	Wakes     int
	Pending   int
	Running   bool
}

func (h *currentThreadHandle) stats() SchedulerStats {
	return SchedulerStats{
		Flavor:    FlavorCurrentThread.String(),
		Spawned:   counterToInt(h.spawned.Load()),
		Completed: counterToInt(h.completed.Load()),
		Panicked:  counterToInt(h.panicked.Load()),
		Wakes:     counterToInt(h.wakes.Load()),
		Pending:   h.queue.Len(),
		Running:   h.running.Load(),
	}
}

func counterToInt(v int64) int {
	n, err := safecast.Conv[int](v)
	if err != nil {
		return math.MaxInt
	}
	return n
}
