// Package slotlog provides the index-stable append-only storage under
// a snapshot source. Slots are addressed by the order they were
// appended in; once assigned, an index resolves to the same slot for
// the life of the log, and indices are never recycled. Lookup is
// lock-free and is never blocked by a concurrent append.
//
// The package is dependency-free and has no locking of its own:
// appends rely on the caller's write mutex, reads rely on atomic
// publication of segments and of the slot count.
package slotlog
