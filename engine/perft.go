package engine

// Perft counts the number of leaf nodes in the legal-move tree rooted at
// pos, searched to the given depth — the standard move-generator
// correctness benchmark. Unlike the reference engine's perft, this keeps no
// transposition table: at the depths perft is run to (6 or so) a plain
// recursive count is already fast enough, and skipping the table removes an
// entire class of "right answer, wrong reason" bugs a stale TT entry could
// paper over.
func Perft(pos *Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var buf [MaxMoves]Move
	n := GenerateLegalMoves(pos, &buf)
	if depth == 1 {
		return uint64(n)
	}
	var nodes uint64
	for i := 0; i < n; i++ {
		pos.Make(buf[i])
		nodes += Perft(pos, depth-1)
		pos.Unmake(buf[i])
	}
	return nodes
}

// DividePerft returns the perft count broken down by each legal root move,
// used to localize a move-generation discrepancy against a known-correct
// reference by comparing per-move subtree counts.
func DividePerft(pos *Position, depth int) map[string]uint64 {
	result := make(map[string]uint64)
	if depth == 0 {
		return result
	}
	var buf [MaxMoves]Move
	n := GenerateLegalMoves(pos, &buf)
	for i := 0; i < n; i++ {
		pos.Make(buf[i])
		result[buf[i].String()] = Perft(pos, depth-1)
		pos.Unmake(buf[i])
	}
	return result
}
