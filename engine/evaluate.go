package engine

// TempoBonus rewards the side to move for simply having the move.
const TempoBonus = 10

// DrawValue is the score a draw is worth, the threshold a player's own
// evaluation of the current game is compared against when deciding whether
// to accept a draw offer.
const DrawValue = 0

// fullBoardMaterial is the non-king material of a complete starting army
// (Q + 2R + 2B + 2N + 8P), the denominator for the phase coefficient.
const fullBoardMaterial = 975 + 2*500 + 2*330 + 2*320 + 8*100

// Evaluate statically scores pos from the side-to-move's perspective:
// positive means the side to move stands better.
func Evaluate(pos *Position) int {
	phase := phaseCoefficient(pos)
	score := evaluateSide(pos, White, Black, phase) - evaluateSide(pos, Black, White, phase)
	if pos.SideToMove == Black {
		score = -score
	}
	score += TempoBonus
	score += captureBonus(pos)
	return score
}

// phaseCoefficient is 1.0 near the opening and falls towards 0.0 as
// material comes off the board, taking the side with less material as the
// more conservative (closer to endgame) estimate.
func phaseCoefficient(pos *Position) float64 {
	m := pos.Material[White]
	if pos.Material[Black] < m {
		m = pos.Material[Black]
	}
	if m > fullBoardMaterial {
		m = fullBoardMaterial
	}
	return float64(m) / float64(fullBoardMaterial)
}

func evaluateSide(pos *Position, us, them Piece, phase float64) int {
	score := pos.Material[us]
	score += evaluateKing(pos, us, phase)

	bishopScore, bishopAtk := evaluateBishops(pos, us, them)
	score += bishopScore

	knightScore, knightAtk := evaluateKnights(pos, us, them, phase)
	score += knightScore

	score += evaluateQueens(pos, us, them, phase)
	score += evaluateRooks(pos, us)
	score += evaluatePawns(pos, us, them, phase)
	score += evaluatePawnDeficiency(pos, us, phase)
	score += evaluatePawnThreats(pos, us, them)
	score += kingZonePressure(pos, them, bishopAtk|knightAtk)
	return score
}

// --- piece-square tables, generated by coordinate arithmetic rather than
// literal boards, consistent with the table-generation style used for the
// geometry tables in bitboard.go. advance(sq, colour) is the number of
// steps the square sits ahead of that colour's own back rank (0..7); fd is
// the distance of its file from the board's outer edge (0..3).

var (
	pawnPST    [NumColours][NumSquares]int
	knightPST  [NumColours][NumSquares]int
	bishopPST  [NumColours][NumSquares]int
	rookPST    [NumColours][NumSquares]int
	queenPST   [NumColours][NumSquares]int
	kingMidPST [NumColours][NumSquares]int
	kingEndPST [NumColours][NumSquares]int

	knightDistance [NumSquares][NumSquares]int
)

func init() {
	pawnPST = buildPST(func(a, fd int) int {
		switch {
		case a >= 6:
			return 50 + fd*4
		case a >= 4:
			return 10*(a-3) + fd*2
		case a <= 1:
			return 0
		default:
			return 2*a + fd
		}
	})
	knightPST = buildPST(func(a, fd int) int {
		centre := fd + min(a, 7-a)
		return -20 + centre*6
	})
	bishopPST = buildPST(func(a, fd int) int {
		if a == 1 && fd == 1 {
			return 15
		}
		return fd * 2
	})
	rookPST = buildPST(func(a, fd int) int {
		if a == 6 {
			return 20
		}
		return fd
	})
	queenPST = buildPST(func(a, fd int) int {
		return fd
	})
	kingMidPST = buildPST(func(a, fd int) int {
		if a == 0 {
			return (3 - fd) * 10
		}
		return -30 - a*10
	})
	kingEndPST = buildPST(func(a, fd int) int {
		centre := fd + min(a, 7-a)
		return centre * 5
	})

	initKnightDistance()
}

func advance(sq Square, colour Piece) int {
	if colour == White {
		return 7 - sq.Rank()
	}
	return sq.Rank()
}

func buildPST(score func(advance, fileDist int) int) [NumColours][NumSquares]int {
	var t [NumColours][NumSquares]int
	for c := 0; c < NumColours; c++ {
		colour := Piece(c)
		for sq := Square(0); sq < NumSquares; sq++ {
			fd := min(sq.File(), 7-sq.File())
			t[c][sq] = score(advance(sq, colour), fd)
		}
	}
	return t
}

// initKnightDistance computes, for every pair of squares, the number of
// knight hops on an otherwise empty board to get from one to the other, via
// breadth-first search over the knightAttacks adjacency already built in
// bitboard.go's init.
func initKnightDistance() {
	for s := Square(0); s < NumSquares; s++ {
		var dist [NumSquares]int
		for i := range dist {
			dist[i] = -1
		}
		dist[s] = 0
		queue := make([]Square, 0, NumSquares)
		queue = append(queue, s)
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			next := KnightAttacks(cur)
			for next != 0 {
				nsq := Square(PopLSB(&next))
				if dist[nsq] == -1 {
					dist[nsq] = dist[cur] + 1
					queue = append(queue, nsq)
				}
			}
		}
		knightDistance[s] = dist
	}
}

func blend(mg, eg int, phase float64) int {
	return int(float64(mg)*phase + float64(eg)*(1-phase))
}

func chebyshev(a, b Square) int {
	df := abs(a.File() - b.File())
	dr := abs(a.Rank() - b.Rank())
	return max(df, dr)
}

func adjacentFilesMask(sq Square) Bitboard {
	var m Bitboard
	f := sq.File()
	if f > 0 {
		m |= fileMasks[f-1]
	}
	if f < 7 {
		m |= fileMasks[f+1]
	}
	return m
}

func pawnAttackSpan(pos *Position, colour Piece) Bitboard {
	var span Bitboard
	pawns := pos.PieceTypeBB(Pawn, colour)
	for pawns != 0 {
		sq := Square(PopLSB(&pawns))
		span |= PawnAttacks(sq, colour)
	}
	return span
}

func minorAttackSpan(pos *Position, colour Piece) Bitboard {
	var span Bitboard
	knights := pos.PieceTypeBB(Knight, colour)
	for knights != 0 {
		span |= KnightAttacks(Square(PopLSB(&knights)))
	}
	bishops := pos.PieceTypeBB(Bishop, colour)
	for bishops != 0 {
		span |= pos.slide.bishop(Square(PopLSB(&bishops)), pos.Occupied)
	}
	return span
}

func evaluateKing(pos *Position, us Piece, phase float64) int {
	kingSq := pos.KingSquare(us)
	score := blend(kingMidPST[us][kingSq], kingEndPST[us][kingSq], phase)
	score += int(float64(kingShieldBonus(pos, us, kingSq)) * phase)
	score += int(float64(pawnlessFilePenalty(pos, us, kingSq)) * phase)
	return score
}

func kingShieldBonus(pos *Position, us Piece, kingSq Square) int {
	files := FileMask(kingSq) | adjacentFilesMask(kingSq)
	zone := FloodFill(kingSq, 2) | Bitboard(0).Set(kingSq)
	shield := pos.PieceTypeBB(Pawn, us) & files & zone
	return Popcount(shield) * 8
}

func pawnlessFilePenalty(pos *Position, us Piece, kingSq Square) int {
	ownPawns := pos.PieceTypeBB(Pawn, us)
	penalty := 0
	file := kingSq.File()
	for df := -1; df <= 1; df++ {
		f := file + df
		if f < 0 || f > 7 {
			continue
		}
		if ownPawns&fileMasks[f] == 0 {
			penalty -= 15
		}
	}
	return penalty
}

func evaluateBishops(pos *Position, us, them Piece) (score int, attackUnion Bitboard) {
	bishops := pos.PieceTypeBB(Bishop, us)
	if Popcount(bishops) >= 2 {
		score += 30
	}
	ownBB := pos.ColourBB(us)
	enemyPawnAtk := pawnAttackSpan(pos, them)
	bb := bishops
	for bb != 0 {
		sq := Square(PopLSB(&bb))
		score += bishopPST[us][sq]
		attacks := pos.slide.bishop(sq, pos.Occupied) &^ ownBB
		attackUnion |= attacks
		score += Popcount(attacks&^enemyPawnAtk) * 4
	}
	return score, attackUnion
}

func evaluateKnights(pos *Position, us, them Piece, phase float64) (score int, attackUnion Bitboard) {
	knights := pos.PieceTypeBB(Knight, us)
	ownBB := pos.ColourBB(us)
	enemyPawnAtk := pawnAttackSpan(pos, them)
	enemyKingSq := pos.KingSquare(them)
	bb := knights
	for bb != 0 {
		sq := Square(PopLSB(&bb))
		score += knightPST[us][sq]

		d := knightDistance[sq][enemyKingSq]
		if d >= 0 {
			score += int(float64((6-d)*3) * (1 - phase))
		}

		attacks := KnightAttacks(sq) &^ ownBB
		attackUnion |= attacks
		score += Popcount(attacks&^enemyPawnAtk) * 4
	}
	return score, attackUnion
}

func evaluateQueens(pos *Position, us, them Piece, phase float64) int {
	score := 0
	enemyKingSq := pos.KingSquare(them)
	bb := pos.PieceTypeBB(Queen, us)
	for bb != 0 {
		sq := Square(PopLSB(&bb))
		score += queenPST[us][sq]
		d := chebyshev(sq, enemyKingSq)
		score += int(float64((7-d)*4) * (1 - phase))
	}
	return score
}

func evaluateRooks(pos *Position, us Piece) int {
	score := 0
	bb := pos.PieceTypeBB(Rook, us)
	for bb != 0 {
		score += rookPST[us][Square(PopLSB(&bb))]
	}
	return score
}

func evaluatePawns(pos *Position, us, them Piece, phase float64) int {
	pawns := pos.PieceTypeBB(Pawn, us)
	enemyPawns := pos.PieceTypeBB(Pawn, them)
	score := 0
	bb := pawns
	for bb != 0 {
		sq := Square(PopLSB(&bb))
		score += pawnPST[us][sq]

		if isDoubled(pos, us, sq) {
			score -= 12
		}
		if pawns&adjacentFilesMask(sq) == 0 {
			score -= 10
		}
		if enemyPawns&passedMask(sq, us) == 0 {
			a := advance(sq, us)
			score += 10 + int(float64(a*a)*(1-phase))
		}
	}
	return score
}

func isDoubled(pos *Position, us Piece, sq Square) bool {
	pawns := pos.PieceTypeBB(Pawn, us)
	dRank := -1
	if us == Black {
		dRank = 1
	}
	f := sq.File()
	for step := 1; step <= 3; step++ {
		r := sq.Rank() + dRank*step
		if r < 0 || r > 7 {
			break
		}
		if pawns.Has(NewSquare(f, r)) {
			return true
		}
	}
	return false
}

// passedMask is the forward cone (own file plus adjacent files, strictly
// ahead) that, if empty of enemy pawns, makes sq a passed pawn.
func passedMask(sq Square, us Piece) Bitboard {
	files := FileMask(sq) | adjacentFilesMask(sq)
	var ahead Bitboard
	dRank := -1
	if us == Black {
		dRank = 1
	}
	for step := 1; ; step++ {
		r := sq.Rank() + dRank*step
		if r < 0 || r > 7 {
			break
		}
		ahead |= rankMasks[r]
	}
	return files & ahead
}

func evaluatePawnDeficiency(pos *Position, us Piece, phase float64) int {
	n := Popcount(pos.PieceTypeBB(Pawn, us))
	if n == 0 {
		return -60
	}
	return int(float64(n*4) * (1 - phase))
}

func evaluatePawnThreats(pos *Position, us, them Piece) int {
	ownPawnAtk := pawnAttackSpan(pos, us)
	enemyNonPawn := pos.ColourBB(them) &^ pos.PieceTypeBB(Pawn, them)
	score := Popcount(ownPawnAtk&enemyNonPawn) * 12

	ownMinorsAndPawns := pos.PieceTypeBB(Knight, us) | pos.PieceTypeBB(Bishop, us) | pos.PieceTypeBB(Pawn, us)
	score += Popcount(ownPawnAtk&ownMinorsAndPawns) * 4
	return score
}

// kingZonePressure rewards minor-piece attacks landing around the enemy
// king, using the attack-bitboard union recorded while scoring bishops and
// knights.
func kingZonePressure(pos *Position, them Piece, minorAttackUnion Bitboard) int {
	kingSq := pos.KingSquare(them)
	zone := KingAttacks(kingSq) | Bitboard(0).Set(kingSq)
	return Popcount(minorAttackUnion&zone) * 6
}

// captureBonus is the asymmetric immediate-capture bonus: the first match
// (not the maximum) among a fixed priority list of side-to-move
// pawn/minor-attacks-enemy-major patterns. First-match is deliberate: once
// any pattern on the list applies, the position already has the tactical
// shape the bonus is meant to reward, and stacking further matches on top
// would double-count the same threat.
func captureBonus(pos *Position) int {
	us := pos.SideToMove
	them := us.Opposite()

	pawnAtk := pawnAttackSpan(pos, us)
	minorAtk := minorAttackSpan(pos, us)

	enemyQueens := pos.PieceTypeBB(Queen, them)
	enemyRooks := pos.PieceTypeBB(Rook, them)
	enemyBishops := pos.PieceTypeBB(Bishop, them)
	enemyKnights := pos.PieceTypeBB(Knight, them)

	switch {
	case pawnAtk&enemyQueens != 0:
		return PieceValue[Queen] - PieceValue[Pawn]
	case minorAtk&enemyQueens != 0:
		return PieceValue[Queen] - PieceValue[Knight]
	case pawnAtk&enemyRooks != 0:
		return PieceValue[Rook] - PieceValue[Pawn]
	case pawnAtk&enemyBishops != 0:
		return PieceValue[Bishop] - PieceValue[Pawn]
	case pawnAtk&enemyKnights != 0:
		return PieceValue[Knight] - PieceValue[Pawn]
	case minorAtk&enemyRooks != 0:
		return PieceValue[Rook] - PieceValue[Knight]
	default:
		return 0
	}
}

// seeUndo reverts the minimal board mutation SEE applies while walking
// an exchange sequence.
type seeUndo func()

func seeApply(pos *Position, from, to Square, moving, captured Piece) seeUndo {
	occ := pos.Occupied
	fromPiece := pos.Square[from]
	toPiece := pos.Square[to]
	movingBB := pos.Bitboard[moving]
	moveAgg := aggIdx(moving.Colour())
	moveAggBB := pos.Bitboard[moveAgg]

	var capturedBB, capAggBB Bitboard
	var capAgg int
	if captured != Empty {
		capAgg = aggIdx(captured.Colour())
		capturedBB = pos.Bitboard[captured]
		capAggBB = pos.Bitboard[capAgg]
		pos.Bitboard[captured] = capturedBB.Clear(to)
		pos.Bitboard[capAgg] = capAggBB.Clear(to)
	}

	pos.Bitboard[moving] = movingBB.Clear(from).Set(to)
	pos.Bitboard[moveAgg] = pos.Bitboard[moveAgg].Clear(from).Set(to)
	pos.Occupied = occ.Clear(from).Set(to)
	pos.Square[to] = moving
	pos.Square[from] = Empty

	return func() {
		pos.Bitboard[moving] = movingBB
		pos.Bitboard[moveAgg] = moveAggBB
		if captured != Empty {
			pos.Bitboard[captured] = capturedBB
			pos.Bitboard[capAgg] = capAggBB
		}
		pos.Occupied = occ
		pos.Square[from] = fromPiece
		pos.Square[to] = toPiece
	}
}

// seeApplyEnPassant is seeApply's en passant counterpart: the captured pawn
// sits on capSq, not on to, so it must be cleared there while the moving
// pawn still lands on to.
func seeApplyEnPassant(pos *Position, from, to, capSq Square, moving, captured Piece) seeUndo {
	occ := pos.Occupied
	movingBB := pos.Bitboard[moving]
	moveAgg := aggIdx(moving.Colour())
	moveAggBB := pos.Bitboard[moveAgg]
	capAgg := aggIdx(captured.Colour())
	capturedBB := pos.Bitboard[captured]
	capAggBB := pos.Bitboard[capAgg]

	pos.Bitboard[captured] = capturedBB.Clear(capSq)
	pos.Bitboard[capAgg] = capAggBB.Clear(capSq)
	pos.Bitboard[moving] = movingBB.Clear(from).Set(to)
	pos.Bitboard[moveAgg] = pos.Bitboard[moveAgg].Clear(from).Set(to)
	pos.Occupied = occ.Clear(from).Clear(capSq).Set(to)
	pos.Square[to] = moving
	pos.Square[from] = Empty
	pos.Square[capSq] = Empty

	return func() {
		pos.Bitboard[moving] = movingBB
		pos.Bitboard[moveAgg] = moveAggBB
		pos.Bitboard[captured] = capturedBB
		pos.Bitboard[capAgg] = capAggBB
		pos.Occupied = occ
		pos.Square[from] = moving
		pos.Square[to] = Empty
		pos.Square[capSq] = captured
	}
}

// smallestAttackerSquare finds the least valuable piece of colour attacking
// sq, trying pawn, knight, bishop, rook, queen, king in that order.
func smallestAttackerSquare(pos *Position, colour Piece, sq Square) (Square, Piece, bool) {
	if bb := PawnAttacks(sq, colour.Opposite()) & pos.PieceTypeBB(Pawn, colour); bb != 0 {
		return Square(ScanForward(bb)), Pawn, true
	}
	if bb := KnightAttacks(sq) & pos.PieceTypeBB(Knight, colour); bb != 0 {
		return Square(ScanForward(bb)), Knight, true
	}
	if bb := pos.slide.bishop(sq, pos.Occupied) & pos.PieceTypeBB(Bishop, colour); bb != 0 {
		return Square(ScanForward(bb)), Bishop, true
	}
	if bb := pos.slide.rook(sq, pos.Occupied) & pos.PieceTypeBB(Rook, colour); bb != 0 {
		return Square(ScanForward(bb)), Rook, true
	}
	if bb := pos.slide.queen(sq, pos.Occupied) & pos.PieceTypeBB(Queen, colour); bb != 0 {
		return Square(ScanForward(bb)), Queen, true
	}
	if bb := KingAttacks(sq) & pos.PieceTypeBB(King, colour); bb != 0 {
		return Square(ScanForward(bb)), King, true
	}
	return InvalidSquare, Empty, false
}

func seeExchange(pos *Position, colour Piece, sq Square) int {
	from, pieceType, ok := smallestAttackerSquare(pos, colour, sq)
	if !ok {
		return 0
	}
	attacker := MakePiece(colour, pieceType)
	capturedValue := pos.Square[sq].Value()

	undo := seeApply(pos, from, sq, attacker, pos.Square[sq])
	recursive := seeExchange(pos, colour.Opposite(), sq)
	undo()

	return max(0, capturedValue-recursive)
}

// SEE is the static exchange evaluation of move: the net material gain
// after all profitable recaptures on its destination square, each side
// always recapturing with its least valuable attacker.
func SEE(pos *Position, move Move) int {
	from, to := move.From(), move.To()
	moving := move.MovingPiece()
	captured := pos.Square[to]

	// En passant captures a pawn that isn't on the destination square, so
	// pos.Square[to] (Empty) would undercount the exchange's opening gain;
	// both the value and the square removed by seeApply need the actual
	// captured pawn, following the same capSq geometry as Position.Make.
	if move.IsEnPassant() {
		capSq := NewSquare(to.File(), from.Rank())
		captured = pos.Square[capSq]
		gain := captured.Value()
		undo := seeApplyEnPassant(pos, from, to, capSq, moving, captured)
		recursive := seeExchange(pos, moving.Colour().Opposite(), to)
		undo()
		return gain - recursive
	}

	gain := captured.Value()
	if move.IsPromotion() {
		gain += move.Special().Value() - Pawn.Value()
	}

	undo := seeApply(pos, from, to, moving, captured)
	recursive := seeExchange(pos, moving.Colour().Opposite(), to)
	undo()

	// Unlike seeExchange's own recursive step, this top-level result is not
	// clamped to zero: the move has already been played by the caller, so a
	// losing exchange must be reported as negative rather than "at worst a
	// free pass," which is what lets quiescence's SEE < 0 gate actually
	// prune anything.
	return gain - recursive
}
