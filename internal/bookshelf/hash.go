package bookshelf

import "kestrel/engine"

// Polyglot books are keyed by a different Zobrist scheme than the engine's
// own incremental key: a fixed table of 781 random numbers (768 piece/square
// keys, 4 castling-right keys, 8 en-passant-file keys, 1 side-to-move key),
// XORed together exactly as the engine's own zobrist.go does for its
// internal key. This package carries its own table and its own PRNG instance
// — engine.Rand, seeded once at init — rather than reaching into zobrist.go,
// since the two hash schemes must never collide or be confused with one
// another: a polyglot-keyed book entry is meaningless looked up against the
// search's own transposition table and vice versa.
//
// A note on interoperability: the official Polyglot format defines one
// specific published random table so that books are portable between
// engines. This package generates its own table deterministically instead
// of transcribing that 781-entry constant by hand, so its keys differ from
// the official ones and entries of books built by standard Polyglot tools
// are not found by Hash — a deliberate limitation rather than an attempt at
// full third-party book compatibility.
const polyglotHashSeed = 0x9E3779B97F4A7C15

var (
	polyPiece  [12][64]uint64
	polyCastle [4]uint64
	polyEnPas  [8]uint64
	polyTurn   uint64
)

func init() {
	r := engine.NewRand(polyglotHashSeed)
	for piece := 0; piece < 12; piece++ {
		for sq := 0; sq < 64; sq++ {
			polyPiece[piece][sq] = r.Next()
		}
	}
	for i := range polyCastle {
		polyCastle[i] = r.Next()
	}
	for i := range polyEnPas {
		polyEnPas[i] = r.Next()
	}
	polyTurn = r.Next()
}

// pieceKindOrder maps an engine piece type (Pawn..King) to Polyglot's
// within-colour piece-kind ordering, 0-5.
var pieceKindOrder = map[engine.Piece]int{
	engine.Pawn: 0, engine.Knight: 1, engine.Bishop: 2,
	engine.Rook: 3, engine.Queen: 4, engine.King: 5,
}

// polyglotKind maps an engine piece type/colour pair to Polyglot's own
// piece-kind ordering: black pawn..king (0-5), then white pawn..king (6-11).
func polyglotKind(pieceType, colour engine.Piece) int {
	k := pieceKindOrder[pieceType]
	if colour == engine.White {
		k += 6
	}
	return k
}

// polyglotSquare converts this engine's a8=0/h1=63 square numbering to
// Polyglot's a1=0/h8=63 numbering.
func polyglotSquare(sq engine.Square) int {
	return (sq.RankNumber()-1)*8 + sq.File()
}

// Hash computes pos's Polyglot-scheme hash key for book lookup.
func Hash(pos *engine.Position) uint64 {
	var hash uint64

	for _, colour := range [2]engine.Piece{engine.White, engine.Black} {
		for _, pt := range [6]engine.Piece{engine.Pawn, engine.Knight, engine.Bishop, engine.Rook, engine.Queen, engine.King} {
			bb := pos.PieceTypeBB(pt, colour)
			kind := polyglotKind(pt, colour)
			for bb != 0 {
				sq := engine.Square(engine.PopLSB(&bb))
				hash ^= polyPiece[kind][polyglotSquare(sq)]
			}
		}
	}

	if pos.CastleKingside[engine.White] {
		hash ^= polyCastle[0]
	}
	if pos.CastleQueenside[engine.White] {
		hash ^= polyCastle[1]
	}
	if pos.CastleKingside[engine.Black] {
		hash ^= polyCastle[2]
	}
	if pos.CastleQueenside[engine.Black] {
		hash ^= polyCastle[3]
	}

	if pos.EnPassantSquare != engine.InvalidSquare && enPassantCapturable(pos) {
		hash ^= polyEnPas[pos.EnPassantSquare.File()]
	}

	if pos.SideToMove == engine.White {
		hash ^= polyTurn
	}

	return hash
}

// enPassantCapturable reports whether a pawn of the side to move sits on a
// file adjacent to the en-passant square, on the rank it would capture
// from. This follows official Polyglot's rule of including the en-passant
// key only when such a capture exists, but does not check whether the
// capture is legal (a pinned pawn still counts) — unlike this engine's own
// internal zobrist key, which includes it unconditionally.
func enPassantCapturable(pos *engine.Position) bool {
	ep := pos.EnPassantSquare
	capturingRank := ep.Rank() + 1 // the rank behind the ep square, from White's perspective
	if pos.SideToMove == engine.Black {
		capturingRank = ep.Rank() - 1
	}
	if capturingRank < 0 || capturingRank > 7 {
		return false
	}
	pawns := pos.PieceTypeBB(engine.Pawn, pos.SideToMove)
	file := ep.File()
	if file > 0 && pawns.Has(engine.NewSquare(file-1, capturingRank)) {
		return true
	}
	if file < 7 && pawns.Has(engine.NewSquare(file+1, capturingRank)) {
		return true
	}
	return false
}
