package engine

import "testing"

func TestComputeRookAttacksOpenBoard(t *testing.T) {
	d4 := NewSquare(3, 4)
	occ := Bitboard(0).Set(d4)
	got := computeRookAttacks(d4, occ)
	want := (FileMask(d4) | RankMask(d4)) &^ occ
	if got != want {
		t.Errorf("computeRookAttacks on an empty board = %#x, want %#x", uint64(got), uint64(want))
	}
}

func TestComputeRookAttacksStopsAtBlocker(t *testing.T) {
	d4 := NewSquare(3, 4)
	blocker := NewSquare(3, 2) // d6: two ranks towards rank 8 from d4
	occ := Bitboard(0).Set(d4).Set(blocker)
	got := computeRookAttacks(d4, occ)
	if !got.Has(blocker) {
		t.Error("rook attack set should include the blocker square itself")
	}
	beyond := NewSquare(3, 1) // d7, one past the blocker
	if got.Has(beyond) {
		t.Error("rook attack set should not extend past the first blocker")
	}
}

func TestComputeBishopAttacksIgnoresEdgeOccupant(t *testing.T) {
	// A piece sitting on the board edge, along a bishop's diagonal, must not
	// be treated as a blocker: the interior mask in computeBishopAttacks
	// exists specifically so the sliding cache never has to special-case it.
	d4 := NewSquare(3, 4)
	edge := NewSquare(7, 0) // h8, on the same diagonal as d4
	occ := Bitboard(0).Set(d4).Set(edge)
	got := computeBishopAttacks(d4, occ)
	if !got.Has(edge) {
		t.Error("bishop attack set should still reach the board edge despite the occupant there")
	}
}

// TestSlidingCacheHitAfterUnrelatedOccupancyChange is a regression test for
// the cache's core invariant: a query hits whenever the current occupancy
// agrees with the cached block subset, regardless of occupancy changes
// elsewhere on the board that couldn't possibly affect the attack set.
func TestSlidingCacheHitAfterUnrelatedOccupancyChange(t *testing.T) {
	var c slidingCache
	d4 := NewSquare(3, 4)
	blocker := NewSquare(3, 2)
	occ := Bitboard(0).Set(d4).Set(blocker)

	first := c.rook(d4, occ)
	if !c.rookValid[d4] {
		t.Fatal("expected the cache entry to be marked valid after the first query")
	}

	// Add a piece far away on a file/rank the rook doesn't attack from d4.
	unrelated := NewSquare(0, 0) // a8
	occ2 := occ.Set(unrelated)
	second := c.rook(d4, occ2)
	if second != first {
		t.Errorf("rook attacks changed after an unrelated occupancy change: got %#x, want %#x",
			uint64(second), uint64(first))
	}
}

// TestSlidingCacheInvalidatesOnNewBlocker is the companion regression test:
// a new occupant landing inside the previously cached attack set must be
// picked up, shrinking the attack set, not served stale from the cache.
func TestSlidingCacheInvalidatesOnNewBlocker(t *testing.T) {
	var c slidingCache
	d4 := NewSquare(3, 4)
	farBlocker := NewSquare(3, 2)
	occ := Bitboard(0).Set(d4).Set(farBlocker)

	first := c.rook(d4, occ)
	closerBlocker := NewSquare(3, 3) // between d4 and the far blocker
	occ2 := occ.Set(closerBlocker)
	second := c.rook(d4, occ2)

	if second == first {
		t.Fatal("expected a new nearer blocker to change the attack set")
	}
	if !second.Has(closerBlocker) {
		t.Error("attack set should include the new nearer blocker")
	}
	if second.Has(farBlocker) {
		t.Error("attack set should no longer reach past the new nearer blocker")
	}
}

func TestSlidingCacheQueenIsRookUnionBishop(t *testing.T) {
	var c slidingCache
	d4 := NewSquare(3, 4)
	occ := Bitboard(0).Set(d4)
	want := c.rook(d4, occ) | c.bishop(d4, occ)
	got := c.queen(d4, occ)
	if got != want {
		t.Errorf("queen attacks = %#x, want rook|bishop = %#x", uint64(got), uint64(want))
	}
}

func TestSlidingCacheClear(t *testing.T) {
	var c slidingCache
	d4 := NewSquare(3, 4)
	c.rook(d4, Bitboard(0).Set(d4))
	c.clear()
	if c.rookValid[d4] {
		t.Error("expected clear to reset cache validity")
	}
}
