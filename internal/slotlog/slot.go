package slotlog

import "sync/atomic"

// Slot is one log entry: at most one payload plus the durable
// reference count that becomes authoritative once the slot is no
// longer current.
type Slot[T any] struct {
	payload atomic.Pointer[T]
	refs    atomic.Uint32
}

// Value returns the payload, or nil once the slot is tombstoned.
func (s *Slot[T]) Value() *T {
	return s.payload.Load()
}

// Drain adds a provisional delta captured from the current word.
// Called exactly once per slot, when the slot is displaced.
func (s *Slot[T]) Drain(delta uint32) {
	if delta != 0 {
		s.refs.Add(delta)
	}
}

// DropRef discharges one read reference. The counter wraps if the
// matching increment has not been drained yet; the drain restores
// the balance, so the counter reads zero exactly when no handle is
// outstanding against a displaced slot.
func (s *Slot[T]) DropRef() {
	s.refs.Add(^uint32(0))
}

// Refs reads the durable counter.
func (s *Slot[T]) Refs() uint32 {
	return s.refs.Load()
}

// Tombstone frees the payload. The slot's index stays resolvable;
// it just yields no value from now on.
func (s *Slot[T]) Tombstone() {
	s.payload.Store(nil)
}

// Tombstoned reports whether the slot holds no payload.
func (s *Slot[T]) Tombstoned() bool {
	return s.payload.Load() == nil
}
