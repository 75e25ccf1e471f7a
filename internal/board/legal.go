package board

// filterLegal compacts ml in place down to its legal moves, keeping order.
func filterLegal(g *Game, ml *MoveList) {
	n := 0
	for i := 0; i < ml.count; i++ {
		if m := ml.moves[i]; isLegal(g, m) {
			ml.moves[n] = m
			n++
		}
	}
	ml.count = n
}

// isLegal decides a pseudo-legal move. En passant is replayed on the
// occupancy since it clears two squares of one rank at once. King moves must
// land on an unattacked square, looked up with the king lifted off the board.
// Anything else is legal unless pinned and leaving the pin line.
func isLegal(g *Game, m Move) bool {
	cs := &g.Set
	stats := &g.CheckStats
	ksq := stats.DefendKing
	if ksq == EmptySquare {
		return true
	}
	from, to := m.From(), m.To()
	them := g.WhosTurn.Other()

	switch {
	case m.Kind() == EnPassant:
		capSq := epCaptureSquare(to, g.WhosTurn)
		occ := cs.Occupancy ^ SquareBB(from) ^ SquareBB(to) ^ SquareBB(capSq)
		pieces := &cs.Sets[them]
		return RookAttacks(ksq, occ)&(pieces[Rook]|pieces[Queen]) == 0 &&
			BishopAttacks(ksq, occ)&(pieces[Bishop]|pieces[Queen]) == 0

	case from == ksq:
		if m.IsCastle() {
			return true
		}
		return cs.AttackersBy(to, them, cs.Occupancy&^SquareBB(from)) == 0

	default:
		return stats.Pinned&SquareBB(from) == 0 || Aligned(from, to, ksq)
	}
}

// PseudoLegal reports whether m is one of the moves the generator would emit
// in this position, ignoring whether it leaves the king in check. It is the
// gate for moves from untrusted sources: the piece must belong to the side to
// move and be able to reach the target with the given kind.
func PseudoLegal(g *Game, m Move) bool {
	if m == NoMove || m.Kind() > PromoteQueen {
		return false
	}
	from := m.From()
	if g.Set.IsEmpty(from) || g.Set.SideAt(from) != g.WhosTurn {
		return false
	}

	var ml MoveList
	generatePseudo(g, &ml, genAll)
	return ml.Contains(m)
}

// Legal reports whether m may be played in the current position.
func Legal(g *Game, m Move) bool {
	return PseudoLegal(g, m) && isLegal(g, m)
}
