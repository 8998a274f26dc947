package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"kestrel/engine"
)

// defaultThinkTime is how long the engine searches per move in the
// interactive CLI, where there's no protocol-level clock to read from.
// Comfortably above bullet-speed thinking so the engine never feels rushed
// outside a real clocked game.
const defaultThinkTime = 3 * time.Second

// CLI runs a simple terminal game loop: prompt for a FEN and a side, then
// alternate between reading the human's move in coordinate notation and
// running the engine's search, printing the board each turn.
func CLI(in io.Reader, out io.Writer, ttBytes int) {
	reader := bufio.NewReader(in)
	fmt.Fprint(out, "Enter a FEN string (or startpos for the starting position): ")
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)

	fen := engine.FENStartPosition
	if line != "" && line != "startpos" {
		fen = line
	}
	pos, err := engine.NewPosition(fen)
	if err != nil {
		fmt.Fprintf(out, "invalid FEN: %v\n", err)
		return
	}

	fmt.Fprint(out, "Play as white or black? ")
	line, _ = reader.ReadString('\n')
	humanIsWhite := strings.TrimSpace(line) != "black"

	player := engine.NewEnginePlayer(EngineName, ttBytes, 0)

	for {
		printBoard(out, pos)

		var buf [engine.MaxMoves]engine.Move
		if engine.GenerateLegalMoves(pos, &buf) == 0 {
			if pos.InCheck() {
				fmt.Fprint(out, "Checkmate.\n")
			} else {
				fmt.Fprint(out, "Stalemate.\n")
			}
			return
		}

		humanToMove := (pos.SideToMove == engine.White) == humanIsWhite
		if humanToMove {
			fmt.Fprint(out, "Your move (coordinate notation, or \"quit\"): ")
			line, _ = reader.ReadString('\n')
			line = strings.TrimSpace(line)
			if line == "quit" {
				return
			}
			move, ok := engine.ParseMove(pos, line)
			if !ok {
				fmt.Fprint(out, "not a legal move\n")
				continue
			}
			pos.Make(move)
		} else {
			best := player.GetMove(pos, defaultThinkTime, 0)
			if best == engine.Invalid {
				fmt.Fprint(out, "engine resigns: no move found\n")
				return
			}
			fmt.Fprintf(out, "engine plays %s\n", best.String())
			pos.Make(best)
		}
	}
}

// printBoard renders the board as an 8x8 grid of piece letters, uppercase
// for White and lowercase for Black, rank 8 first.
func printBoard(out io.Writer, pos *engine.Position) {
	for rank := 0; rank < 8; rank++ {
		fmt.Fprintf(out, "%d ", 8-rank)
		for file := 0; file < 8; file++ {
			p := pos.Square[engine.NewSquare(file, rank)]
			fmt.Fprint(out, " "+pieceGlyph(p))
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out, "   a b c d e f g h")
}

func pieceGlyph(p engine.Piece) string {
	if p.IsEmpty() {
		return "."
	}
	letter, ok := p.Letter()
	if !ok {
		letter = "P"
	}
	if p.Colour() == engine.Black {
		letter = strings.ToLower(letter)
	}
	return letter
}
