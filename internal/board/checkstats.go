package board

// CheckStats caches the king-safety facts of a position for the side to
// move. It is rebuilt once per ply by DoMove and consulted by the legality
// filter and by check detection for the following move.
type CheckStats struct {
	// AttackKing is the opponent's king square, DefendKing our own.
	AttackKing Square
	DefendKing Square

	// CheckSources are the enemy pieces currently giving check.
	CheckSources Bitboard

	// Pinned are our pieces pinned against DefendKing.
	Pinned Bitboard

	// Discovered are our pieces whose departure uncovers a check on AttackKing.
	Discovered Bitboard

	// CheckSquares[p] is where a piece of kind p would check AttackKing.
	CheckSquares [PieceCount]Bitboard
}

// InCheck returns true if the side to move is in check.
func (cs *CheckStats) InCheck() bool {
	return cs.CheckSources != 0
}

// sliderBlockers returns the pieces from mask standing alone between ksq and
// a slider of side s that would otherwise see it.
func (cs *ChessSet) sliderBlockers(ksq Square, s Side, mask Bitboard) Bitboard {
	var result Bitboard
	pieces := &cs.Sets[s]

	snipers := (RookAttacks(ksq, 0) & (pieces[Rook] | pieces[Queen])) |
		(BishopAttacks(ksq, 0) & (pieces[Bishop] | pieces[Queen]))
	for snipers != 0 {
		sq := PopForward(&snipers)
		b := Between(sq, ksq) & cs.Occupancy
		if b != 0 && b&(b-1) == 0 {
			result |= b & mask
		}
	}

	return result
}

// sliderCheckers returns the sliders of side s attacking ksq.
func (cs *ChessSet) sliderCheckers(ksq Square, s Side) Bitboard {
	pieces := &cs.Sets[s]
	return (RookAttacks(ksq, cs.Occupancy) & (pieces[Rook] | pieces[Queen])) |
		(BishopAttacks(ksq, cs.Occupancy) & (pieces[Bishop] | pieces[Queen]))
}

// newCheckStats computes everything except CheckSources for side us.
func newCheckStats(cs *ChessSet, us Side) CheckStats {
	them := us.Other()
	stats := CheckStats{
		AttackKing: cs.KingSquare(them),
		DefendKing: cs.KingSquare(us),
	}
	ours := cs.Sets[us][NoPiece]

	if stats.DefendKing != EmptySquare {
		stats.Pinned = cs.sliderBlockers(stats.DefendKing, them, ours)
	}

	if ksq := stats.AttackKing; ksq != EmptySquare {
		stats.Discovered = cs.sliderBlockers(ksq, us, ours)

		bishop := BishopAttacks(ksq, cs.Occupancy)
		rook := RookAttacks(ksq, cs.Occupancy)
		stats.CheckSquares[Pawn] = pawnAttacks[them][ksq]
		stats.CheckSquares[Knight] = knightAttacks[ksq]
		stats.CheckSquares[Bishop] = bishop
		stats.CheckSquares[Rook] = rook
		stats.CheckSquares[Queen] = bishop | rook
	}

	return stats
}

// fullCheckSources recomputes the checkers of us's king from scratch.
func fullCheckSources(cs *ChessSet, us Side) Bitboard {
	ksq := cs.KingSquare(us)
	if ksq == EmptySquare {
		return EmptyBitboard
	}
	return cs.AttackersBy(ksq, us.Other(), cs.Occupancy)
}
