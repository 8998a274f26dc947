package engine

import "testing"

func TestNewTranspositionTableCapacityFromByteBudget(t *testing.T) {
	tt := NewTranspositionTable(1600)
	if got, want := len(tt.entries), 1600/ttEntrySize; got != want {
		t.Errorf("capacity = %d, want %d", got, want)
	}
}

func TestNewTranspositionTableMinimumCapacity(t *testing.T) {
	tt := NewTranspositionTable(0)
	if len(tt.entries) < 1 {
		t.Error("expected at least one slot even for a zero-byte budget")
	}
}

func TestTranspositionTableStoreProbeRoundTrip(t *testing.T) {
	tt := NewTranspositionTable(1 << 16)
	key := uint64(0xC0FFEE1234)
	move := Move(0)
	tt.Store(key, move, 5, 137, 3, BoundExact)

	gotMove, depth, value, bound, ok := tt.Probe(key, 3)
	if !ok {
		t.Fatal("expected a hit after storing")
	}
	if gotMove != move || depth != 5 || value != 137 || bound != BoundExact {
		t.Errorf("Probe = (%v, %d, %d, %v), want (%v, 5, 137, BoundExact)", gotMove, depth, value, bound, move)
	}
}

func TestTranspositionTableProbeMissOnDifferentKey(t *testing.T) {
	tt := NewTranspositionTable(1 << 16)
	tt.Store(1, Invalid, 4, 0, 0, BoundExact)
	if _, _, _, _, ok := tt.Probe(2, 0); ok {
		t.Error("expected a miss for a key that was never stored")
	}
}

func TestTranspositionTableAlwaysReplace(t *testing.T) {
	tt := NewTranspositionTable(ttEntrySize) // exactly one slot
	keyA, keyB := uint64(1), uint64(1+len(tt.entries))
	if keyA%uint64(len(tt.entries)) != keyB%uint64(len(tt.entries)) {
		t.Fatal("test setup expected keyA and keyB to collide on a one-slot table")
	}
	tt.Store(keyA, Invalid, 1, 10, 0, BoundExact)
	tt.Store(keyB, Invalid, 1, 20, 0, BoundExact)

	if _, _, _, _, ok := tt.Probe(keyA, 0); ok {
		t.Error("expected keyA's entry to have been replaced by keyB's store")
	}
	if _, _, value, _, ok := tt.Probe(keyB, 0); !ok || value != 20 {
		t.Errorf("expected keyB's entry to survive with value 20, got value=%d ok=%v", value, ok)
	}
}

func TestTranspositionTableMateDistanceShifting(t *testing.T) {
	tt := NewTranspositionTable(1 << 16)
	key := uint64(42)
	mateValue := Checkmate - 4 // a mate score, counted in plies from the root

	tt.Store(key, Invalid, 10, mateValue, 6, BoundExact)
	_, _, value, _, ok := tt.Probe(key, 2)
	if !ok {
		t.Fatal("expected a hit")
	}
	// Stored at ply 6, probed at ply 2: the mate score should shift by the
	// four-ply difference, so the distance to mate counted from the node that
	// owns the entry stays the same regardless of which ply the probe happens at.
	if want := mateValue + 4; value != want {
		t.Errorf("mate-shifted value = %d, want %d", value, want)
	}
}

func TestTranspositionTableClear(t *testing.T) {
	tt := NewTranspositionTable(1 << 16)
	tt.Store(7, Invalid, 1, 1, 0, BoundExact)
	tt.Clear()
	if _, _, _, _, ok := tt.Probe(7, 0); ok {
		t.Error("expected Clear to remove all stored entries")
	}
}
