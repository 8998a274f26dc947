package engine

// zobristSeed is the fixed, documented seed used to fill every Zobrist
// table deterministically at package init. Any non-zero seed works equally
// well for hash-quality purposes; this one is simply pinned so that two
// processes built from the same source always agree on position keys
// (useful for reproducing perft/search traces across runs).
const zobristSeed uint64 = 0x5EEDC0FFEE1234AB

var (
	zobristPieceSquare [NumPieceSlots + 2][NumSquares]uint64
	zobristCastleKS    [NumColours]uint64
	zobristCastleQS    [NumColours]uint64
	zobristEnPassant   [8]uint64 // indexed by file only, replicated across ranks
	zobristColour      uint64
)

func init() {
	r := NewRand(zobristSeed)
	for piece := Piece(0); piece < NumPieceSlots+2; piece++ {
		for sq := 0; sq < NumSquares; sq++ {
			zobristPieceSquare[piece][sq] = r.Next()
		}
	}
	zobristCastleKS[White] = r.Next()
	zobristCastleKS[Black] = r.Next()
	zobristCastleQS[White] = r.Next()
	zobristCastleQS[Black] = r.Next()
	for f := 0; f < 8; f++ {
		zobristEnPassant[f] = r.Next()
	}
	zobristColour = r.Next()
}

func pieceSquareHash(p Piece, s Square) uint64 {
	return zobristPieceSquare[p][s]
}

// enPassantFileHash returns the Zobrist word for an en-passant square,
// indexed by file only (the table is filled per-file and replicated across
// ranks for indexing convenience). This word is XORed in whenever an
// en-passant square is recorded, regardless of whether an enemy pawn can
// actually capture there — two transpositionally identical positions can
// therefore, in principle, hash differently. Left as-is; it is benign for
// the rank half (en passant squares are always rank 3 or 6) and a
// deliberate simplification for the capturability half.
func enPassantFileHash(s Square) uint64 {
	return zobristEnPassant[s.File()]
}

// ComputeKey recomputes a position's Zobrist key from scratch: used both to
// build a freshly parsed position's key and, in debug assertions, to check
// that incremental maintenance hasn't drifted.
func ComputeKey(pos *Position) uint64 {
	var key uint64
	for sq := Square(0); sq < NumSquares; sq++ {
		if p := pos.Square[sq]; p != Empty {
			key ^= pieceSquareHash(p, sq)
		}
	}
	if pos.EnPassantSquare != InvalidSquare {
		key ^= enPassantFileHash(pos.EnPassantSquare)
	}
	if pos.CastleKingside[White] {
		key ^= zobristCastleKS[White]
	}
	if pos.CastleQueenside[White] {
		key ^= zobristCastleQS[White]
	}
	if pos.CastleKingside[Black] {
		key ^= zobristCastleKS[Black]
	}
	if pos.CastleQueenside[Black] {
		key ^= zobristCastleQS[Black]
	}
	if pos.SideToMove == Black {
		key ^= zobristColour
	}
	return key
}
