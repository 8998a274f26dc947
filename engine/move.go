package engine

import "fmt"

// Move is a packed 32-bit integer encoding a single chess move:
//
//	bits 0..5   from square
//	bits 6..11  to square
//	bits 12..15 moving piece (colour+type)
//	bits 16..19 captured piece (colour+type), Empty if none
//	bits 20..23 special piece: the promotion target for promotions, the
//	            captured pawn's colour+type for en passant, or the king's
//	            colour+type for castling. Empty for ordinary moves.
//
// The zero value is Invalid: no legal move ever has Empty as its moving
// piece, so it safely doubles as the "no move" sentinel.
type Move uint32

const (
	Invalid Move = 0

	moveFromShift     = 0
	moveToShift       = 6
	movePieceShift    = 12
	moveCapturedShift = 16
	moveSpecialShift  = 20

	moveSquareMask = 0x3F
	movePieceMask  = 0xF
)

// Create packs a move from a position and a from/to pair, with an optional
// special piece (Empty for ordinary quiet moves and captures). The captured
// piece is read off the board, except for en passant, where the captured
// pawn does not sit on the `to` square — there the caller's special value
// (the enemy pawn) doubles as the captured piece.
func Create(pos *Position, from, to Square, special Piece) Move {
	moving := pos.Square[from]
	captured := pos.Square[to]
	if special != Empty && special.Type() == Pawn {
		captured = special
	}
	return Move(uint32(from)<<moveFromShift |
		uint32(to)<<moveToShift |
		uint32(moving)<<movePieceShift |
		uint32(captured)<<moveCapturedShift |
		uint32(special)<<moveSpecialShift)
}

// From returns the move's origin square.
func (m Move) From() Square {
	return Square((uint32(m) >> moveFromShift) & moveSquareMask)
}

// To returns the move's destination square.
func (m Move) To() Square {
	return Square((uint32(m) >> moveToShift) & moveSquareMask)
}

// MovingPiece returns the piece that is moving.
func (m Move) MovingPiece() Piece {
	return Piece((uint32(m) >> movePieceShift) & movePieceMask)
}

// CapturedPiece returns the piece captured by the move, or Empty.
func (m Move) CapturedPiece() Piece {
	return Piece((uint32(m) >> moveCapturedShift) & movePieceMask)
}

// Special returns the move's special-piece discriminator field.
func (m Move) Special() Piece {
	return Piece((uint32(m) >> moveSpecialShift) & movePieceMask)
}

// IsCapture reports whether the move captures a piece.
func (m Move) IsCapture() bool {
	return m.CapturedPiece() != Empty
}

// IsCastle reports whether the move is a castling move.
func (m Move) IsCastle() bool {
	return m.Special() != Empty && m.Special().Type() == King
}

// IsEnPassant reports whether the move is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Special() != Empty && m.Special().Type() == Pawn
}

// IsPromotion reports whether the move promotes a pawn, detected the same
// way the reference engine does: a pawn move landing on rank 1 or rank 8.
// With this engine's square numbering (a8=0, h1=63) both back ranks occupy
// squares 0..7 and 56..63, so the same arithmetic identity holds regardless
// of which physical rank is which.
func (m Move) IsPromotion() bool {
	if m.MovingPiece().Type() != Pawn {
		return false
	}
	to := int(m.To())
	return (to-8)*(to-55) > 0
}

// IsQueenPromotion reports whether the move promotes to a queen.
func (m Move) IsQueenPromotion() bool {
	return m.IsPromotion() && m.Special().Type() == Queen
}

// String renders a move in coordinate notation: <file><rank><file><rank>
// followed by a lowercase promotion letter, if any.
func (m Move) String() string {
	if m == Invalid {
		return "0000"
	}
	s := SquareName(m.From()) + SquareName(m.To())
	if m.IsPromotion() {
		if letter, ok := m.Special().PromotionLetter(); ok {
			s += letter
		}
	}
	return s
}

// GoString supports %#v / debugging output.
func (m Move) GoString() string {
	return fmt.Sprintf("Move(%s)", m.String())
}

// ParseMove resolves a coordinate-notation string (e.g. "e2e4", "a7a8q")
// against pos's legal moves, rather than re-deriving square/promotion
// parsing independently: a string that doesn't name a legal move in the
// current position is exactly as invalid as one that's malformed.
func ParseMove(pos *Position, s string) (Move, bool) {
	var buf [MaxMoves]Move
	n := GenerateLegalMoves(pos, &buf)
	for i := 0; i < n; i++ {
		if buf[i].String() == s {
			return buf[i], true
		}
	}
	return Invalid, false
}
