// Package shell implements the two external interfaces the engine core is
// deliberately agnostic to: a UCI protocol loop and a plain interactive
// command-line mode. Both talk to the engine only through engine.Player and
// engine.Position's public API — neither reaches into search or
// move-generation internals.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"kestrel/engine"
	"kestrel/internal/bookshelf"
)

const (
	EngineName   = "Kestrel 1.0"
	EngineAuthor = "Kestrel contributors"
)

// UCI drives a UCI protocol session over in/out, backed by an EnginePlayer.
// book may be nil, meaning no opening book was loaded.
type UCI struct {
	player *engine.EnginePlayer
	pos    *engine.Position
	book   bookshelf.Book

	out *bufio.Writer
	in  *bufio.Scanner
}

// NewUCI constructs a UCI session. ttBytes sizes the engine's transposition
// table, fixed for the session's lifetime rather than grown on demand.
func NewUCI(in io.Reader, out io.Writer, ttBytes int, book bookshelf.Book) *UCI {
	pos, _ := engine.NewPosition(engine.FENStartPosition)
	u := &UCI{
		player: engine.NewEnginePlayer(EngineName, ttBytes, 0),
		pos:    pos,
		book:   book,
		out:    bufio.NewWriter(out),
		in:     bufio.NewScanner(in),
	}
	u.player.SetInfo(u.reportInfo)
	return u
}

// Run reads UCI commands from the session's input until "quit" or EOF.
func (u *UCI) Run() {
	for u.in.Scan() {
		line := strings.TrimSpace(u.in.Text())
		if line == "" {
			continue
		}
		if u.dispatch(line) {
			return
		}
	}
}

// dispatch handles one command line, returning true if the session should
// end.
func (u *UCI) dispatch(line string) (quit bool) {
	switch {
	case line == "uci":
		fmt.Fprintf(u.out, "id name %s\n", EngineName)
		fmt.Fprintf(u.out, "id author %s\n", EngineAuthor)
		fmt.Fprint(u.out, "uciok\n")
	case line == "isready":
		fmt.Fprint(u.out, "readyok\n")
	case strings.HasPrefix(line, "setoption"):
		// No configurable options yet; accepted and ignored.
	case line == "ucinewgame":
		u.player.Reset()
		u.pos, _ = engine.NewPosition(engine.FENStartPosition)
	case strings.HasPrefix(line, "position"):
		u.handlePosition(line)
	case strings.HasPrefix(line, "go"):
		u.handleGo(line)
	case line == "stop":
		u.player.Stop()
	case line == "quit":
		return true
	}
	u.out.Flush()
	return false
}

func (u *UCI) handlePosition(line string) {
	args := strings.TrimPrefix(line, "position ")
	var fen string
	var rest string

	switch {
	case strings.HasPrefix(args, "startpos"):
		fen = engine.FENStartPosition
		rest = strings.TrimPrefix(args, "startpos")
	case strings.HasPrefix(args, "fen"):
		fields := strings.Fields(strings.TrimPrefix(args, "fen "))
		movesIdx := indexOf(fields, "moves")
		if movesIdx < 0 {
			movesIdx = len(fields)
		}
		fen = strings.Join(fields[:movesIdx], " ")
		rest = strings.Join(fields[movesIdx:], " ")
	default:
		return
	}

	pos, err := engine.NewPosition(fen)
	if err != nil {
		return
	}
	u.pos = pos

	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, "moves") {
		for _, uciMove := range strings.Fields(strings.TrimPrefix(rest, "moves")) {
			move, ok := engine.ParseMove(u.pos, uciMove)
			if !ok {
				break
			}
			u.pos.Make(move)
		}
	}
}

func (u *UCI) handleGo(line string) {
	if bestMove, ok := u.book.BestMove(u.pos); ok {
		if move, ok := engine.ParseMove(u.pos, bestMove); ok {
			fmt.Fprintf(u.out, "bestmove %s\n", move.String())
			u.out.Flush()
			return
		}
	}

	timeLeft, increment := parseClock(line, u.pos.SideToMove == engine.White)
	go func() {
		best := u.player.GetMove(u.pos, timeLeft, increment)
		fmt.Fprintf(u.out, "bestmove %s\n", best.String())
		u.out.Flush()
	}()
}

func (u *UCI) reportInfo(depth, score int, nodes uint64, pv []engine.Move) {
	scoreStr := fmt.Sprintf("cp %d", score)
	if score >= engine.NearCheckmate {
		scoreStr = fmt.Sprintf("mate %d", (engine.Checkmate-score+1)/2)
	} else if score <= -engine.NearCheckmate {
		scoreStr = fmt.Sprintf("mate %d", -(engine.Checkmate+score)/2)
	}

	pvStr := make([]string, len(pv))
	for i, m := range pv {
		pvStr[i] = m.String()
	}

	fmt.Fprintf(u.out, "info depth %d score %s nodes %d pv %s\n",
		depth, scoreStr, nodes, strings.Join(pvStr, " "))
	u.out.Flush()
}

// parseClock extracts wtime/btime/winc/binc/movetime from a "go ..." command
// line, returning the time budget and increment for the side to move.
// movetime, if present, overrides the clock: it is returned as the time left
// with zero increment, so Search spends only its usual fraction of it rather
// than the whole movetime.
func parseClock(line string, whiteToMove bool) (timeLeft, increment time.Duration) {
	fields := strings.Fields(line)
	get := func(name string) (time.Duration, bool) {
		for i, f := range fields {
			if f == name && i+1 < len(fields) {
				if ms, err := strconv.Atoi(fields[i+1]); err == nil {
					return time.Duration(ms) * time.Millisecond, true
				}
			}
		}
		return 0, false
	}

	if mt, ok := get("movetime"); ok {
		return mt, 0
	}

	timeField, incField := "btime", "binc"
	if whiteToMove {
		timeField, incField = "wtime", "winc"
	}
	timeLeft, _ = get(timeField)
	increment, _ = get(incField)
	return timeLeft, increment
}

func indexOf(fields []string, target string) int {
	for i, f := range fields {
		if f == target {
			return i
		}
	}
	return -1
}

// RunUCI is the package-level convenience entry point cmd/kestrel calls:
// a UCI session over stdin/stdout, optionally backed by an opening book
// loaded from bookPath. A load failure is silently treated as "no book" so
// a missing or corrupt book file never keeps the engine from starting.
func RunUCI(ttBytes int, bookPath string) {
	var book bookshelf.Book
	if bookPath != "" {
		if loaded, err := bookshelf.Load(bookPath); err == nil {
			book = loaded
		}
	}
	NewUCI(os.Stdin, os.Stdout, ttBytes, book).Run()
}
