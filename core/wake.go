package core

import "sync/atomic"

// Wakeable is implemented by objects that can be signalled through a
// Waker: typically a suspended task that should be polled again.
//
// Both methods may be called from any goroutine, concurrently with each
// other and with the owning scheduler. Wake is invoked on the consuming
// path: the bridge releases the calling handle's reference immediately
// after it returns. WakeByRef must leave the reference count untouched.
type Wakeable interface {
	Wake()
	WakeByRef()
}

// Shared is a reference-counted cell holding a Wakeable.
//
// It backs the wakeup bridge: Wakers created from the same Shared all
// alias this cell, and every Clone is paired with exactly one eventual
// Drop or consuming Wake. The pairing is enforced by the Waker and
// WakerRef API shapes, not by runtime checks.
type Shared struct {
	wakeable Wakeable
	refs     atomic.Int64

	// Invoked exactly once, when the count reaches zero. Used by the
	// scheduler to observe task release and by tests for drop counting.
	onRelease func()
}

// NewShared creates a cell with an initial reference count of one.
// onRelease may be nil.
func NewShared(w Wakeable, onRelease func()) *Shared {
	s := &Shared{wakeable: w, onRelease: onRelease}
	s.refs.Store(1)
	return s
}

// Refs reports the current reference count. Meant for instrumentation;
// the value may be stale by the time it is read.
func (s *Shared) Refs() int64 {
	return s.refs.Load()
}

func (s *Shared) retain() {
	s.refs.Add(1)
}

func (s *Shared) release() {
	if s.refs.Add(-1) == 0 {
		if s.onRelease != nil {
			s.onRelease()
		}
	}
}

// Waker is an owning, type-erased handle used to signal that a suspended
// task should be polled again.
//
// A Waker owns one reference on its backing Shared. Clone takes an
// additional reference; Wake consumes the handle's reference; Drop
// releases it without waking. After Wake or Drop the handle must not be
// used again. All operations are safe to call from any goroutine, which
// is the entire point of the bridge: readiness notifications arriving on
// arbitrary goroutines can signal the single-threaded scheduler.
type Waker struct {
	shared *Shared
}

// NewWaker creates an owning Waker, taking a new reference on s.
func NewWaker(s *Shared) *Waker {
	s.retain()
	return &Waker{shared: s}
}

// Clone returns a new handle referencing the same wakeable, incrementing
// the backing reference count.
func (w *Waker) Clone() *Waker {
	return NewWaker(w.shared)
}

// Wake signals the wakeable and consumes this handle's reference.
func (w *Waker) Wake() {
	w.shared.wakeable.Wake()
	w.shared.release()
}

// WakeByRef signals the wakeable without giving up this handle's
// reference; the handle remains usable.
func (w *Waker) WakeByRef() {
	w.shared.wakeable.WakeByRef()
}

// Drop releases this handle's reference without waking.
func (w *Waker) Drop() {
	w.shared.release()
}

// WakerRef is a borrowed, non-owning view of a Shared's wakeup handle.
//
// It is produced without touching the reference count and must not
// outlive the Shared it was taken from. Because it owns no reference, it
// cannot perform a consuming wake: callers either wake by reference or
// Clone an owning Waker first. Discarding a WakerRef does not decrement
// the count it never took ownership of.
type WakerRef struct {
	shared *Shared
}

// NewWakerRef returns a borrowed view of s without incrementing the
// backing reference count.
func NewWakerRef(s *Shared) WakerRef {
	return WakerRef{shared: s}
}

// WakeByRef signals the wakeable; the backing count is unchanged.
func (w WakerRef) WakeByRef() {
	w.shared.wakeable.WakeByRef()
}

// Clone returns an owning Waker for the same wakeable, incrementing the
// backing reference count.
func (w WakerRef) Clone() *Waker {
	return NewWaker(w.shared)
}
