package core

import (
	"strconv"
	"sync/atomic"
)

// TaskID uniquely identifies a task relative to all other currently known
// tasks in the process. IDs are opaque, non-zero and monotonically
// increasing in allocation order.
type TaskID uint64

// nextTaskID is the process-wide ID counter. The first allocated ID is 1.
var nextTaskID atomic.Uint64

// NextTaskID returns a fresh TaskID.
//
// Safe for unlimited concurrent callers. Exhausting the 64-bit ID space is
// not a recoverable condition; it panics rather than reissuing zero.
func NextTaskID() TaskID {
	id := nextTaskID.Add(1)
	if id == 0 {
		panic("core: task ID space exhausted, counter wrapped to zero")
	}
	return TaskID(id)
}

func (id TaskID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}
