package engine

import (
	"testing"
	"time"
)

func newSearcher() *Searcher {
	return NewSearcher(NewTranspositionTable(1 << 20))
}

func TestSearchFindsMateInOne(t *testing.T) {
	// White to move: Ra1-a8 is a back-rank mate. The black king on g8 is
	// boxed in by its own pawns on f7/g7/h7, and the rook's open rank-8 ray
	// covers f8 and h8 once it lands.
	pos, err := NewPosition("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	if err != nil {
		t.Fatalf("NewPosition: %v", err)
	}
	s := newSearcher()
	best := s.Search(pos, 0, 0, 4)
	if best == Invalid {
		t.Fatal("expected a move")
	}
	if best.String() != "a1a8" {
		t.Errorf("Search found %s, want a1a8 (mate in one)", best.String())
	}
}

func TestSearchReturnsLegalMoveFromStartPosition(t *testing.T) {
	pos, err := NewPosition(FENStartPosition)
	if err != nil {
		t.Fatalf("NewPosition: %v", err)
	}
	s := newSearcher()
	best := s.Search(pos, 0, 0, 3)
	if best == Invalid {
		t.Fatal("expected a move from the starting position")
	}
	var buf [MaxMoves]Move
	n := GenerateLegalMoves(pos, &buf)
	found := false
	for i := 0; i < n; i++ {
		if buf[i] == best {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Search returned %s, which is not among the %d legal moves", best.String(), n)
	}
}

func TestSearchSingleLegalMoveShortCircuitsOnClock(t *testing.T) {
	// Only one legal move (the king must step out of check), with a clock
	// running: Search should return it immediately rather than search. The
	// black king on b3 rules out b2 as a flight square, the rook on a8 rules
	// out a2, leaving only Kb1.
	pos, err := NewPosition("r7/8/8/8/8/1k6/8/K7 w - - 0 1")
	if err != nil {
		t.Fatalf("NewPosition: %v", err)
	}
	var buf [MaxMoves]Move
	n := GenerateLegalMoves(pos, &buf)
	if n != 1 {
		t.Fatalf("test setup expected exactly one legal move, got %d", n)
	}
	s := newSearcher()
	best := s.Search(pos, 50*time.Millisecond, 0, 0)
	if best != buf[0] {
		t.Errorf("Search = %s, want the only legal move %s", best.String(), buf[0].String())
	}
}

func TestSearchStopReturnsPromptly(t *testing.T) {
	pos, err := NewPosition(FENStartPosition)
	if err != nil {
		t.Fatalf("NewPosition: %v", err)
	}
	s := newSearcher()
	done := make(chan Move, 1)
	go func() {
		done <- s.Search(pos, 0, 0, DepthLimit)
	}()

	time.Sleep(20 * time.Millisecond)
	s.Stop()

	select {
	case best := <-done:
		if best == Invalid {
			t.Error("expected a move to have been found before the stop")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Search did not honor Stop within a reasonable time")
	}
}

func TestSearchScoresInsufficientMaterialAsADraw(t *testing.T) {
	// Bare kings: every reply also has insufficient material, so the search
	// should settle near the draw-contempt score rather than reporting a
	// meaningful advantage to either side.
	pos, err := NewPosition("8/8/4k3/8/8/4K3/8/8 w - - 0 1")
	if err != nil {
		t.Fatalf("NewPosition: %v", err)
	}
	s := newSearcher()
	var lastScore int
	s.Info = func(depth, score int, nodes uint64, pv []Move) { lastScore = score }
	if best := s.Search(pos, 0, 0, 3); best == Invalid {
		t.Fatal("expected a move")
	}
	if lastScore > 2*drawContempt || lastScore < -2*drawContempt {
		t.Errorf("score for a bare-kings position = %d, want close to zero (draw contempt is %d)", lastScore, drawContempt)
	}
}

func TestSearchRespectsDepthLimitClamping(t *testing.T) {
	pos, err := NewPosition(FENStartPosition)
	if err != nil {
		t.Fatalf("NewPosition: %v", err)
	}
	s := newSearcher()
	if best := s.Search(pos, time.Second, 0, DepthLimit+50); best == Invalid {
		t.Error("expected a move even when maxDepth is given far above DepthLimit")
	}
}

func TestQuiescenceSkipsLosingCapture(t *testing.T) {
	// A position where the only "capture" available to the side to move is
	// clearly losing material (SEE < 0): quiescence should return close to
	// the static evaluation rather than the losing exchange's result.
	pos, err := NewPosition("4k3/3n4/8/4p3/8/8/4R3/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("NewPosition: %v", err)
	}
	s := newSearcher()
	standPat := Evaluate(pos)
	score := s.quiescence(pos, 0, -Infinity, Infinity)
	if score != standPat {
		t.Errorf("quiescence = %d, want stand-pat score %d (the only capture available is a losing exchange)", score, standPat)
	}
}
