// Package snapref implements a deferred-reclamation snapshot cell:
// any number of readers take wait-free references to the current
// value while writers install replacements and reclaim displaced
// ones without endangering an in-flight reader.
//
// The reference count is split in two. Readers fetch-add a
// provisional count packed next to the slot index in one atomic
// word; installing a new value swaps that word and drains the
// accumulated count into the displaced slot's own durable counter,
// which from then on is the single source of truth for that slot.
// Cleanse frees any displaced slot whose durable counter has reached
// zero.
//
// There is no background reclamation goroutine. The caller picks the
// goroutine and the cadence for Cleanse, trading log growth for
// reclamation work. Slot indices are never recycled, so the log of a
// long-lived Source grows with the number of Set calls.
package snapref
