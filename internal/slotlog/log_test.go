package slotlog

import "testing"

func val(n int) *int {
	return &n
}

func TestAppendAssignsSequentialIndexes(t *testing.T) {
	var l Log[int]
	for i := 0; i < 3*segLen; i++ {
		index, s := l.Append(val(i))
		if index != uint32(i) {
			t.Fatalf("append %d assigned index %d", i, index)
		}
		if s == nil || *s.Value() != i {
			t.Fatalf("slot %d does not hold its payload", i)
		}
	}
	if l.Len() != 3*segLen {
		t.Fatalf("len = %d, want %d", l.Len(), 3*segLen)
	}
}

func TestIndexStability(t *testing.T) {
	var l Log[int]
	var early []*Slot[int]
	for i := 0; i < 5; i++ {
		_, s := l.Append(val(i))
		early = append(early, s)
	}

	// Growing past several segment boundaries must not move a slot.
	for i := 5; i < 4*segLen; i++ {
		l.Append(val(i))
	}
	for i, s := range early {
		if got := l.Lookup(uint32(i)); got != s {
			t.Fatalf("slot %d moved after growth", i)
		}
		if *s.Value() != i {
			t.Fatalf("slot %d lost its payload", i)
		}
	}
}

func TestLookupUnpublished(t *testing.T) {
	var l Log[int]
	if l.Lookup(0) != nil {
		t.Error("empty log resolved index 0")
	}
	if l.Lookup(NilIndex) != nil {
		t.Error("nil index resolved to a slot")
	}
	l.Append(val(1))
	if l.Lookup(1) != nil {
		t.Error("resolved an index past the published count")
	}
}

func TestWalkOrder(t *testing.T) {
	var l Log[int]
	for i := 0; i < segLen+3; i++ {
		l.Append(val(i))
	}
	want := uint32(0)
	l.Walk(func(index uint32, s *Slot[int]) {
		if index != want {
			t.Fatalf("walk visited %d, want %d", index, want)
		}
		if *s.Value() != int(index) {
			t.Fatalf("slot %d holds %d", index, *s.Value())
		}
		want++
	})
	if want != segLen+3 {
		t.Fatalf("walk visited %d slots, want %d", want, segLen+3)
	}
}

func TestTombstone(t *testing.T) {
	var l Log[int]
	_, s := l.Append(val(9))
	if s.Tombstoned() {
		t.Fatal("fresh slot reports tombstoned")
	}
	s.Tombstone()
	if !s.Tombstoned() || s.Value() != nil {
		t.Fatal("tombstoned slot still yields a value")
	}
	if l.Lookup(0) != s {
		t.Fatal("tombstoned index must stay resolvable")
	}
}

func TestDropRefDrainBalance(t *testing.T) {
	var s Slot[int]

	// A release can land before the drain that accounts for it; the
	// counter wraps and the drain restores it to the exact balance.
	s.DropRef()
	if s.Refs() == 0 {
		t.Fatal("undrained release must not read as zero")
	}
	s.Drain(2)
	if got := s.Refs(); got != 1 {
		t.Fatalf("refs = %d, want 1", got)
	}
	s.DropRef()
	if got := s.Refs(); got != 0 {
		t.Fatalf("refs = %d, want 0", got)
	}
}

func TestAppendOverflowPanics(t *testing.T) {
	var l Log[int]
	l.size.Store(NilIndex)
	defer func() {
		if recover() == nil {
			t.Fatal("append past the index space must panic")
		}
	}()
	l.Append(val(1))
}
