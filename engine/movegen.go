package engine

// MaxMoves bounds the number of pseudo-legal or legal moves any position can
// have; callers own a fixed [MaxMoves]Move buffer rather than forcing a heap
// allocation per node.
const MaxMoves = 256

// pinInfo records, for the side to move, which of its own pieces are pinned
// to their king and the set of squares each pinned piece may legally move
// to (the line between the king and the pinning slider, inclusive of the
// slider's square).
type pinInfo struct {
	mask    Bitboard
	allowed [NumSquares]Bitboard
}

func (p pinInfo) allowedFor(sq Square) Bitboard {
	if p.mask.Has(sq) {
		return p.allowed[sq]
	}
	return ^Bitboard(0)
}

// computePins finds every piece of `us` pinned against its king by an enemy
// slider, grounded on the reference engine's "remove the blocker, re-slide,
// check for an enemy slider beyond it" pin test, expressed here directly in
// terms of the per-direction ray tables instead of removing and replacing
// bits on a live board.
func computePins(pos *Position, us, them Piece, kingSq Square) pinInfo {
	var info pinInfo
	occ := pos.Occupied
	ownBB := pos.ColourBB(us)

	for dir := 0; dir < NumDirections; dir++ {
		full := rayMasks[dir][kingSq]
		blockers := full & occ
		if blockers == 0 {
			continue
		}
		firstSq := nearestBlocker(dir, blockers)
		if !ownBB.Has(firstSq) {
			continue
		}

		rest := rayMasks[dir][firstSq]
		blockers2 := rest & occ
		if blockers2 == 0 {
			continue
		}
		secondSq := nearestBlocker(dir, blockers2)
		if ownBB.Has(secondSq) {
			continue
		}
		if !sliderAttacksInDirection(pos.Square[secondSq].Type(), dir) {
			continue
		}

		info.mask = info.mask.Set(firstSq)
		info.allowed[firstSq] = full ^ rayMasks[dir][secondSq]
	}

	return info
}

func nearestBlocker(dir int, blockers Bitboard) Square {
	if directionIncreasesIndex(dir) {
		return Square(ScanForward(blockers))
	}
	return Square(ScanReverse(blockers))
}

func sliderAttacksInDirection(pieceType Piece, dir int) bool {
	if dir < 4 {
		return pieceType == Rook || pieceType == Queen
	}
	return pieceType == Bishop || pieceType == Queen
}

// betweenInclusive returns the squares on the ray from kingSq towards
// checkerSq, up to and including checkerSq itself. If the two squares are
// not aligned on any ray (the checker is a knight or pawn), it returns 0:
// such a check can only be escaped by capturing the checker or moving the
// king, never by blocking.
func betweenInclusive(kingSq, checkerSq Square) Bitboard {
	for dir := 0; dir < NumDirections; dir++ {
		if rayMasks[dir][kingSq].Has(checkerSq) {
			return rayMasks[dir][kingSq] ^ rayMasks[dir][checkerSq]
		}
	}
	return 0
}

// GenerateLegalMoves writes every legal move available to the side to move
// into buf and returns how many moves were written. buf must have capacity
// MaxMoves.
func GenerateLegalMoves(pos *Position, buf *[MaxMoves]Move) int {
	us := pos.SideToMove
	them := us.Opposite()
	kingSq := pos.KingSquare(us)
	checkers := pos.AttackersOf(kingSq, them)
	numCheckers := Popcount(checkers)

	n := genKingMoves(pos, buf, 0, us, them, kingSq)
	if numCheckers >= 2 {
		return n
	}

	targetMask := ^Bitboard(0)
	if numCheckers == 1 {
		checkerSq := Square(ScanForward(checkers))
		targetMask = checkers | betweenInclusive(kingSq, checkerSq)
	}

	pinned := computePins(pos, us, them, kingSq)

	n = genPawnMoves(pos, buf, n, us, them, pinned, targetMask)
	n = genKnightMoves(pos, buf, n, us, pinned, targetMask)
	n = genSliderMoves(pos, buf, n, us, Bishop, pinned, targetMask)
	n = genSliderMoves(pos, buf, n, us, Rook, pinned, targetMask)
	n = genSliderMoves(pos, buf, n, us, Queen, pinned, targetMask)

	if numCheckers == 0 {
		n = genCastleMoves(pos, buf, n, us)
	}

	return n
}

// GenerateCaptures writes every legal capturing or promoting move into buf
// and returns how many were written, for use as quiescence search's move
// source. It is built atop GenerateLegalMoves rather than a separate
// pseudo-legal capture walk: legality is exactly as delicate in the tail of
// the game (checks, pins, en passant) as anywhere else, and this keeps that
// logic in one place.
func GenerateCaptures(pos *Position, buf *[MaxMoves]Move) int {
	var all [MaxMoves]Move
	total := GenerateLegalMoves(pos, &all)
	n := 0
	for i := 0; i < total; i++ {
		m := all[i]
		if m.IsCapture() || m.IsPromotion() {
			buf[n] = m
			n++
		}
	}
	if debugAssertions {
		assertCapturesAreLegalSubset(all[:total], buf[:n])
	}
	return n
}

func genKingMoves(pos *Position, buf *[MaxMoves]Move, n int, us, them Piece, kingSq Square) int {
	occWithoutKing := pos.Occupied.Clear(kingSq)
	dests := KingAttacks(kingSq) &^ pos.ColourBB(us)
	for dests != 0 {
		to := Square(PopLSB(&dests))
		if squareAttackedWithOcc(pos, to, them, occWithoutKing) {
			continue
		}
		buf[n] = Create(pos, kingSq, to, Empty)
		n++
	}
	return n
}

func genCastleMoves(pos *Position, buf *[MaxMoves]Move, n int, us Piece) int {
	them := us.Opposite()
	if us == White {
		if pos.CastleKingside[White] && pos.Square[F1] == Empty && pos.Square[G1] == Empty &&
			!pos.SquareAttacked(E1, them) && !pos.SquareAttacked(F1, them) && !pos.SquareAttacked(G1, them) {
			buf[n] = Create(pos, E1, G1, MakePiece(White, King))
			n++
		}
		if pos.CastleQueenside[White] && pos.Square[B1] == Empty && pos.Square[C1] == Empty && pos.Square[D1] == Empty &&
			!pos.SquareAttacked(E1, them) && !pos.SquareAttacked(D1, them) && !pos.SquareAttacked(C1, them) {
			buf[n] = Create(pos, E1, C1, MakePiece(White, King))
			n++
		}
		return n
	}
	if pos.CastleKingside[Black] && pos.Square[F8] == Empty && pos.Square[G8] == Empty &&
		!pos.SquareAttacked(E8, them) && !pos.SquareAttacked(F8, them) && !pos.SquareAttacked(G8, them) {
		buf[n] = Create(pos, E8, G8, MakePiece(Black, King))
		n++
	}
	if pos.CastleQueenside[Black] && pos.Square[B8] == Empty && pos.Square[C8] == Empty && pos.Square[D8] == Empty &&
		!pos.SquareAttacked(E8, them) && !pos.SquareAttacked(D8, them) && !pos.SquareAttacked(C8, them) {
		buf[n] = Create(pos, E8, C8, MakePiece(Black, King))
		n++
	}
	return n
}

func genKnightMoves(pos *Position, buf *[MaxMoves]Move, n int, us Piece, pinned pinInfo, targetMask Bitboard) int {
	knights := pos.PieceTypeBB(Knight, us)
	for knights != 0 {
		from := Square(PopLSB(&knights))
		if pinned.mask.Has(from) {
			// A pinned knight has no move that both leaves and returns to
			// the pin line, so it simply cannot move.
			continue
		}
		dests := KnightAttacks(from) &^ pos.ColourBB(us) & targetMask
		for dests != 0 {
			to := Square(PopLSB(&dests))
			buf[n] = Create(pos, from, to, Empty)
			n++
		}
	}
	return n
}

func genSliderMoves(pos *Position, buf *[MaxMoves]Move, n int, us, pieceType Piece, pinned pinInfo, targetMask Bitboard) int {
	pieces := pos.PieceTypeBB(pieceType, us)
	for pieces != 0 {
		from := Square(PopLSB(&pieces))
		var attacks Bitboard
		switch pieceType {
		case Bishop:
			attacks = pos.slide.bishop(from, pos.Occupied)
		case Rook:
			attacks = pos.slide.rook(from, pos.Occupied)
		default:
			attacks = pos.slide.queen(from, pos.Occupied)
		}
		dests := attacks &^ pos.ColourBB(us) & targetMask & pinned.allowedFor(from)
		for dests != 0 {
			to := Square(PopLSB(&dests))
			buf[n] = Create(pos, from, to, Empty)
			n++
		}
	}
	return n
}

func genPawnMoves(pos *Position, buf *[MaxMoves]Move, n int, us, them Piece, pinned pinInfo, targetMask Bitboard) int {
	pawns := pos.PieceTypeBB(Pawn, us)
	dir := North
	startRank, promoRank := 6, 0
	if us == Black {
		dir = South
		startRank, promoRank = 1, 7
	}
	_, dr := dirDeltaFile[dir], dirDeltaRank[dir]

	for pawns != 0 {
		from := Square(PopLSB(&pawns))
		f, r := from.File(), from.Rank()
		allowed := pinned.allowedFor(from)

		nr := r + dr
		if nr >= 0 && nr <= 7 {
			to := NewSquare(f, nr)
			if pos.Square[to] == Empty {
				if targetMask.Has(to) && allowed.Has(to) {
					n = appendPawnMove(pos, buf, n, from, to, us, promoRank)
				}
				if r == startRank {
					nr2 := nr + dr
					to2 := NewSquare(f, nr2)
					if pos.Square[to2] == Empty && targetMask.Has(to2) && allowed.Has(to2) {
						buf[n] = Create(pos, from, to2, Empty)
						n++
					}
				}
			}
		}

		for _, df := range [2]int{-1, 1} {
			nf := f + df
			if nf < 0 || nf > 7 || nr < 0 || nr > 7 {
				continue
			}
			to := NewSquare(nf, nr)

			if to == pos.EnPassantSquare {
				move := Create(pos, from, to, MakePiece(them, Pawn))
				if isLegalSimulated(pos, move) {
					buf[n] = move
					n++
				}
				continue
			}

			if !allowed.Has(to) || !targetMask.Has(to) {
				continue
			}
			captured := pos.Square[to]
			if captured != Empty && captured.Colour() == them {
				n = appendPawnMove(pos, buf, n, from, to, us, promoRank)
			}
		}
	}
	return n
}

func appendPawnMove(pos *Position, buf *[MaxMoves]Move, n int, from, to Square, us Piece, promoRank int) int {
	if to.Rank() == promoRank {
		for _, pt := range [4]Piece{Queen, Rook, Bishop, Knight} {
			buf[n] = Create(pos, from, to, MakePiece(us, pt))
			n++
		}
		return n
	}
	buf[n] = Create(pos, from, to, Empty)
	return n + 1
}

// isLegalSimulated tests a move's legality by actually making it and
// checking whether the mover's own king ends up attacked. En passant is the
// one move type routed through this rather than pin/check bitmasks: the
// capture can expose a discovered check along the rank once both pawns
// vanish, a case the pin machinery above does not model.
func isLegalSimulated(pos *Position, move Move) bool {
	mover := move.MovingPiece().Colour()
	pos.Make(move)
	legal := !pos.SquareAttacked(pos.KingSquare(mover), mover.Opposite())
	pos.Unmake(move)
	return legal
}
