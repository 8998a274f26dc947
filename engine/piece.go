package engine

// Piece is a compact integer encoding of a piece's colour and type: bit 0 is
// colour (White=0, Black=1), bits 1..3 are the piece type. Empty is the zero
// value, so a freshly zeroed Piece always means "no piece here."
type Piece uint8

const (
	PieceTypeMask Piece = 0x0E
	ColourMask    Piece = 0x01
)

// Colours.
const (
	White Piece = 0x00
	Black Piece = 0x01
)

// Piece types, already shifted into bits 1..3 so they can be OR'd directly
// with a colour bit to build a concrete Piece value.
const (
	Empty  Piece = 0x00
	Pawn   Piece = 0x02
	Knight Piece = 0x04
	Bishop Piece = 0x06
	Rook   Piece = 0x08
	Queen  Piece = 0x0A
	King   Piece = 0x0C
)

// NumColours and NumPieceSlots size the per-colour and per-piece-id arrays
// that Position keeps (14 slots for piece values 0..13: the 12 concrete
// pieces, 6 types x 2 colours, at 2..13, plus indices 0 and 1, which are
// never populated).
const (
	NumColours    = 2
	NumPieceSlots = 14
)

// MakePiece combines a colour and piece type into a concrete Piece.
func MakePiece(colour, pieceType Piece) Piece {
	return pieceType | (colour & ColourMask)
}

// Type extracts the piece-type bits from a Piece.
func (p Piece) Type() Piece {
	return p & PieceTypeMask
}

// Colour extracts the colour bit from a Piece. Only meaningful when p != Empty.
func (p Piece) Colour() Piece {
	return p & ColourMask
}

// Opposite returns the other colour.
func (c Piece) Opposite() Piece {
	return c ^ ColourMask
}

// IsEmpty reports whether p represents an empty square.
func (p Piece) IsEmpty() bool {
	return p == Empty
}

// pieceLetters maps a piece type to its conventional algebraic letter,
// uppercase. Pawn has no letter in SAN piece-move prefixes.
var pieceLetters = map[Piece]string{
	Knight: "N",
	Bishop: "B",
	Rook:   "R",
	Queen:  "Q",
	King:   "K",
}

// Letter returns the algebraic piece letter for non-pawn, non-empty piece
// types, and reports whether the lookup succeeded. Malformed input reports
// ok=false instead of panicking (per the "never throw on unreachable input"
// design note).
func (p Piece) Letter() (letter string, ok bool) {
	letter, ok = pieceLetters[p.Type()]
	return letter, ok
}

// PromotionLetter returns the lowercase initial used in coordinate-notation
// promotions (q, r, b, n).
func (p Piece) PromotionLetter() (letter string, ok bool) {
	switch p.Type() {
	case Queen:
		return "q", true
	case Rook:
		return "r", true
	case Bishop:
		return "b", true
	case Knight:
		return "n", true
	default:
		return "", false
	}
}

// PieceValue is the leaf material-value table, indexed by piece type. It
// lives here (not in evaluate.go) so both the move generator and the
// evaluator can depend on it without creating a package cycle back into
// search or evaluation — the one cyclic-reference concern the original
// engine's module layout ran into.
var PieceValue = [NumPieceSlots + 2]int{
	Empty:  0,
	Pawn:   100,
	Knight: 320,
	Bishop: 330,
	Rook:   500,
	Queen:  975,
	King:   Checkmate,
}

// Value returns the material value of the piece's type.
func (p Piece) Value() int {
	return PieceValue[p.Type()]
}
