package engine

import "time"

// Player is the one contract the rest of the system depends on: whatever
// decides a move — a search, a human at a terminal, an opening book — does
// it through this interface. No shell or collaborator ever reaches past it
// into Position internals.
type Player interface {
	// Name identifies the player, e.g. for a UCI "id name" response.
	Name() string

	// AcceptsDraw reports whether the player would accept a draw offer in
	// the given position.
	AcceptsDraw(pos *Position) bool

	// GetMove blocks until a move is decided and returns it. It is not
	// reentrant: a second call before the first returns is undefined. It
	// never mutates pos — the caller's position is left bit-identical on
	// return, whatever internal make/unmake pairs a search performs.
	GetMove(pos *Position, timeLeft, increment time.Duration) Move

	// Stop asks an in-progress GetMove to return as soon as possible. Safe
	// to call from another goroutine. Idempotent: calling it twice acts like
	// calling it once. A Stop with no GetMove in flight is not necessarily
	// discarded: HumanPlayer keeps it pending for its next GetMove.
	Stop()

	// Reset clears any accumulated state between games (transposition
	// table, killer moves, history heuristics).
	Reset()
}

// EnginePlayer is a Player backed by the search kernel.
type EnginePlayer struct {
	name     string
	searcher *Searcher
	depth    int // 0 means no fixed depth limit; governed by the clock instead
}

// NewEnginePlayer constructs an EnginePlayer with its own transposition
// table sized to ttBytes. depthLimit <= 0 means "no fixed depth ceiling,"
// letting the clock alone govern how deep iterative deepening goes.
func NewEnginePlayer(name string, ttBytes, depthLimit int) *EnginePlayer {
	return &EnginePlayer{
		name:     name,
		searcher: NewSearcher(NewTranspositionTable(ttBytes)),
		depth:    depthLimit,
	}
}

func (e *EnginePlayer) Name() string { return e.name }

// AcceptsDraw accepts whenever the searcher's own most recent verdict on
// this game does not already favor it over a plain draw. pos is unused
// directly: the decision is about the search's opinion of the game so far,
// not a fresh static look at the board.
func (e *EnginePlayer) AcceptsDraw(pos *Position) bool {
	return e.searcher.LastScore() <= DrawValue
}

func (e *EnginePlayer) GetMove(pos *Position, timeLeft, increment time.Duration) Move {
	return e.searcher.Search(pos, timeLeft, increment, e.depth)
}

func (e *EnginePlayer) Stop() { e.searcher.Stop() }

func (e *EnginePlayer) Reset() {
	e.searcher.Reset()
	e.searcher.TT.Clear()
}

// SetInfo installs a SearchInfo callback, forwarding iterative-deepening
// progress to whatever shell is driving this player (UCI `info` lines, a
// plain CLI's progress printout, or nothing at all).
func (e *EnginePlayer) SetInfo(info SearchInfo) { e.searcher.Info = info }

// HumanPlayer is a Player whose move comes from an external source — a
// terminal prompt, a GUI click, a network peer — fed in through SetMove
// rather than computed. GetMove blocks on an unbuffered channel until the
// shell driving the game supplies one.
type HumanPlayer struct {
	name    string
	moves   chan Move
	stopped chan struct{}
}

// NewHumanPlayer constructs a HumanPlayer; the shell must call SetMove
// exactly once per GetMove call to unblock it.
func NewHumanPlayer(name string) *HumanPlayer {
	return &HumanPlayer{
		name:    name,
		moves:   make(chan Move),
		stopped: make(chan struct{}, 1),
	}
}

func (h *HumanPlayer) Name() string { return h.name }

// AcceptsDraw always declines; a human player's draw decisions are made by
// the shell prompting them directly, outside this contract.
func (h *HumanPlayer) AcceptsDraw(pos *Position) bool { return false }

func (h *HumanPlayer) GetMove(pos *Position, timeLeft, increment time.Duration) Move {
	select {
	case m := <-h.moves:
		return m
	case <-h.stopped:
		return Invalid
	}
}

// SetMove supplies the move a blocked GetMove call is waiting for.
func (h *HumanPlayer) SetMove(m Move) { h.moves <- m }

// Stop unblocks a pending GetMove with Invalid, e.g. on a UCI "stop" or
// a game abort. If no GetMove is waiting, the signal stays buffered and the
// next GetMove returns Invalid at once, until Reset drains it. Idempotent: a
// second call while already stopped does not block, since stopped is buffered.
func (h *HumanPlayer) Stop() {
	select {
	case h.stopped <- struct{}{}:
	default:
	}
}

// Reset drains any pending stop signal so a fresh game starts clean.
func (h *HumanPlayer) Reset() {
	select {
	case <-h.stopped:
	default:
	}
}
