package engine

import "testing"

// withDebugAssertions runs fn with debugAssertions temporarily enabled,
// restoring the previous value afterwards so other tests are unaffected.
func withDebugAssertions(t *testing.T, fn func()) {
	t.Helper()
	prev := debugAssertions
	debugAssertions = true
	defer func() { debugAssertions = prev }()
	fn()
}

func TestDebugAssertionsSurviveASearch(t *testing.T) {
	withDebugAssertions(t, func() {
		pos, err := NewPosition(FENKiwipete)
		if err != nil {
			t.Fatalf("NewPosition: %v", err)
		}
		s := newSearcher()
		if best := s.Search(pos, 0, 0, 4); best == Invalid {
			t.Fatal("expected a move")
		}
	})
}

func TestDebugAssertionsSurviveAPerft(t *testing.T) {
	withDebugAssertions(t, func() {
		pos, err := NewPosition(FENKiwipete)
		if err != nil {
			t.Fatalf("NewPosition: %v", err)
		}
		if got := Perft(pos, 3); got != 97862 {
			t.Errorf("Perft = %d, want 97862", got)
		}
	})
}

func TestAssertCapturesAreLegalSubsetAcceptsAGoodBook(t *testing.T) {
	pos, err := NewPosition(FENKiwipete)
	if err != nil {
		t.Fatalf("NewPosition: %v", err)
	}
	var all, caps [MaxMoves]Move
	nAll := GenerateLegalMoves(pos, &all)
	nCaps := GenerateCaptures(pos, &caps)
	assertCapturesAreLegalSubset(all[:nAll], caps[:nCaps])
}

func TestAssertCapturesAreLegalSubsetRejectsAForeignMove(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for a move absent from the legal set")
		}
	}()
	assertCapturesAreLegalSubset(nil, []Move{Move(1)})
}

func TestAssertRoundTripRejectsADivergedPosition(t *testing.T) {
	pos, err := NewPosition(FENStartPosition)
	if err != nil {
		t.Fatalf("NewPosition: %v", err)
	}
	snap := takeDebugSnapshot(pos)
	pos.SideToMove = pos.SideToMove.Opposite()

	defer func() {
		if recover() == nil {
			t.Error("expected a panic for a position that failed to restore")
		}
	}()
	assertRoundTrip(snap, pos, "test")
}
