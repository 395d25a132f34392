package snapref

import "snapref/internal/slotlog"

// packed is the current word: the low half names the installed slot,
// the high half is the provisional reference delta accumulated
// against it since it was installed. The two fields only ever change
// together, by whole-word swap (install: new index, delta zero) or
// whole-word fetch-add (one more provisional reference); field-level
// stores would tear the pairing.
type packed uint64

const (
	indexBits = 32
	indexMask = 1<<indexBits - 1

	// addRef is one provisional reference in the delta field.
	addRef = uint64(1) << indexBits

	// nilWord is the word of a source nothing was ever set on.
	nilWord = packed(slotlog.NilIndex)
)

func pack(index uint32) packed {
	return packed(index)
}

func (w packed) index() uint32 {
	return uint32(w & indexMask)
}

func (w packed) delta() uint32 {
	return uint32(w >> indexBits)
}
