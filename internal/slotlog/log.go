package slotlog

import (
	"math"
	"sync/atomic"
)

// NilIndex is the reserved index meaning "no slot". A log can hold at
// most NilIndex slots; appending past that would alias two slots to
// one index.
const NilIndex = uint32(math.MaxUint32)

const (
	segBits = 6
	segLen  = 1 << segBits
	segMask = segLen - 1
)

// segment holds slots by value, so a slot's address is fixed for the
// life of the log even while the directory above it is reallocated.
type segment[T any] struct {
	slots [segLen]Slot[T]
}

// Log is an append-only, index-stable sequence of slots. Growth
// republishes a copied directory of segment pointers; the segments
// themselves never move, which keeps every previously returned slot
// pointer and index valid.
//
// Appends must be serialized by the caller. Lookup and Walk are
// lock-free and may run concurrently with an append.
type Log[T any] struct {
	dir  atomic.Pointer[[]*segment[T]]
	size atomic.Uint32 // count of published slots, advanced after the slot is ready
}

func (l *Log[T]) directory() []*segment[T] {
	if p := l.dir.Load(); p != nil {
		return *p
	}
	return nil
}

// Append stores v in the next free slot and returns its index and the
// slot itself. It panics once the index space is exhausted: indices
// are never recycled, so overflow is unrecoverable.
func (l *Log[T]) Append(v *T) (uint32, *Slot[T]) {
	n := l.size.Load()
	if n == NilIndex {
		panic("slotlog: index space exhausted")
	}

	dir := l.directory()
	if int(n>>segBits) == len(dir) {
		grown := make([]*segment[T], len(dir)+1)
		copy(grown, dir)
		grown[len(dir)] = new(segment[T])
		l.dir.Store(&grown)
		dir = grown
	}

	s := &dir[n>>segBits].slots[n&segMask]
	s.payload.Store(v)
	l.size.Store(n + 1)
	return n, s
}

// Lookup resolves index i, or returns nil for NilIndex and for
// indices not yet published.
func (l *Log[T]) Lookup(i uint32) *Slot[T] {
	if i >= l.size.Load() {
		return nil
	}
	dir := l.directory()
	return &dir[i>>segBits].slots[i&segMask]
}

// Len reports how many slots have been appended.
func (l *Log[T]) Len() uint32 {
	return l.size.Load()
}

// Walk visits every published slot in append order.
func (l *Log[T]) Walk(fn func(index uint32, s *Slot[T])) {
	n := l.size.Load()
	dir := l.directory()
	for i := uint32(0); i < n; i++ {
		fn(i, &dir[i>>segBits].slots[i&segMask])
	}
}
