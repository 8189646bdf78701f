package core

import "sync/atomic"

// AtomicCell is a thread-safe single-slot container.
//
// The cell holds either nothing or one heap-allocated value, tracked
// through an atomic pointer. Operations replace the entire contained value
// atomically, which makes the cell suitable for handing a value between
// goroutines without a lock, and unsuitable for fine-grained in-place
// mutation of the payload.
//
// Every pointer that enters the cell is returned to exactly one subsequent
// Swap/Take caller or stays in the cell; concurrent swaps total-order
// through the underlying atomic exchange, so no value is duplicated or
// lost.
type AtomicCell[T any] struct {
	data atomic.Pointer[T]
}

// NewAtomicCell creates a cell holding initial, or an empty cell when
// initial is nil.
func NewAtomicCell[T any](initial *T) *AtomicCell[T] {
	c := &AtomicCell[T]{}
	c.data.Store(initial)
	return c
}

// Swap atomically replaces the contents of the cell and returns whatever
// was previously stored, which may be nil.
func (c *AtomicCell[T]) Swap(val *T) *T {
	return c.data.Swap(val)
}

// Set stores val, discarding any previously held value.
func (c *AtomicCell[T]) Set(val *T) {
	_ = c.Swap(val)
}

// Take empties the cell and returns the previously held value, or nil if
// the cell was already empty.
func (c *AtomicCell[T]) Take() *T {
	return c.Swap(nil)
}
