package snapref

import "snapref/internal/slotlog"

// ReadHandle is one outstanding read reference obtained from Get.
// The zero value is an empty handle. Exactly one Release is owed per
// non-empty handle; it may be discharged on any goroutine, not
// necessarily the one that called Get. A handle must not be copied
// and must not be used from two goroutines at once.
type ReadHandle[T any] struct {
	src   *Source[T]
	slot  *slotlog.Slot[T]
	index uint32
}

// Value returns the referenced value, or nil for an empty handle.
func (h *ReadHandle[T]) Value() *T {
	if h.slot == nil {
		return nil
	}
	return h.slot.Value()
}

// Ok reports whether the handle references a value.
func (h *ReadHandle[T]) Ok() bool {
	return h.Value() != nil
}

// Release discharges the handle's reference and empties the handle.
// Releasing an empty handle is a no-op, so calling it twice is safe.
func (h *ReadHandle[T]) Release() {
	if h.slot == nil {
		return
	}
	h.src.release(h.index, h.slot)
	h.src, h.slot = nil, nil
}
