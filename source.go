package snapref

import (
	"sync"
	"sync/atomic"

	"snapref/internal/slotlog"
)

// Source is a mutable shared cell with wait-free snapshot reads and
// deferred reclamation of displaced values.
//
// Get never blocks and never retries; Set and Cleanse serialize
// against each other on one mutex but never block a reader. A Source
// must not be copied after first use.
type Source[T any] struct {
	mu      sync.Mutex // serializes Set and Cleanse
	current atomic.Uint64
	log     slotlog.Log[T]
}

// New returns an empty Source. Get yields empty handles until the
// first Set.
func New[T any]() *Source[T] {
	s := &Source[T]{}
	s.current.Store(uint64(nilWord))
	return s
}

// NewWithValue returns a Source already holding v. Ownership of v
// passes to the Source; the caller must not mutate it afterwards.
func NewWithValue[T any](v *T) *Source[T] {
	s := New[T]()
	s.Set(v)
	return s
}

// Get returns a handle on the current value. One fetch-add on the
// current word records a provisional reference, then the slot the
// pre-add word named is looked up; no lock, no retry. If nothing was
// ever set, the handle is empty and owes no release: the stray delta
// recorded on the nil word is discarded at the next drain.
func (s *Source[T]) Get() ReadHandle[T] {
	w := packed(s.current.Add(addRef) - addRef)
	index := w.index()
	if index == slotlog.NilIndex {
		return ReadHandle[T]{}
	}
	return ReadHandle[T]{src: s, slot: s.log.Lookup(index), index: index}
}

// Set installs v as the current value, taking ownership of it. The
// displaced word's provisional delta is drained into the displaced
// slot's durable counter, which becomes authoritative for that slot:
// the slot is never current again, so future releases and Cleanse
// only ever consult the counter.
//
// Set panics if the log's index space is exhausted (after 2^32-1
// installs on one Source); indices are never recycled, so that state
// is unrecoverable.
func (s *Source[T]) Set(v *T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index, _ := s.log.Append(v)
	old := packed(s.current.Swap(uint64(pack(index))))
	if stale := s.log.Lookup(old.index()); stale != nil {
		stale.Drain(old.delta())
	}
}

// Cleanse frees every displaced value no handle references any more.
// The current slot is never touched, whatever its counter reads, and
// slots with a nonzero durable counter are left for a later call.
// The caller picks the goroutine and the cadence; no reclamation
// runs in the background.
func (s *Source[T]) Cleanse() {
	s.mu.Lock()
	defer s.mu.Unlock()

	live := packed(s.current.Load()).index()
	s.log.Walk(func(index uint32, sl *slotlog.Slot[T]) {
		if index == live || sl.Tombstoned() {
			return
		}
		if sl.Refs() == 0 {
			sl.Tombstone()
		}
	})
}

// release discharges one read reference against the slot at index.
// The decrement has to land wherever the matching increment lives
// right now. While the index is still installed the reference is
// provisional, so one CAS takes it back off the current word. If the
// word has moved on, or the CAS lost a race, the drain has accounted
// (or will account) for the increment on the slot itself, and a
// wrapping decrement of the durable counter keeps the books exact.
func (s *Source[T]) release(index uint32, sl *slotlog.Slot[T]) {
	w := s.current.Load()
	if packed(w).index() == index && packed(w).delta() != 0 {
		if s.current.CompareAndSwap(w, w-addRef) {
			return
		}
	}
	sl.DropRef()
}
