package board

// genMode selects what the non-evasion generator emits.
type genMode uint8

const (
	genAll genMode = iota
	genCaptures
)

// AllMoves fills ml with every legal move for the side to move.
func AllMoves(g *Game, ml *MoveList) {
	ml.Clear()
	generatePseudo(g, ml, genAll)
	filterLegal(g, ml)
}

// AllCaptures fills ml with the legal captures, en passant and capture
// promotions included. In check it returns every legal evasion instead, so
// quiescence never stands pat on a lost king.
func AllCaptures(g *Game, ml *MoveList) {
	ml.Clear()
	generatePseudo(g, ml, genCaptures)
	filterLegal(g, ml)
}

// HasLegalMoves returns true if the side to move has at least one legal move.
func (g *Game) HasLegalMoves() bool {
	var ml MoveList
	AllMoves(g, &ml)
	return ml.Len() > 0
}

// IsCheckmate returns true if the side to move is checkmated.
func (g *Game) IsCheckmate() bool {
	return g.InCheck() && !g.HasLegalMoves()
}

// IsStalemate returns true if the side to move has no moves and is not in check.
func (g *Game) IsStalemate() bool {
	return !g.InCheck() && !g.HasLegalMoves()
}

func generatePseudo(g *Game, ml *MoveList, mode genMode) {
	if g.CheckStats.CheckSources != 0 {
		generateEvasions(g, ml)
		return
	}
	generateNonEvasions(g, ml, mode)
}

func generateNonEvasions(g *Game, ml *MoveList, mode genMode) {
	us := g.WhosTurn
	cs := &g.Set
	enemies := cs.Sets[us.Other()][NoPiece]

	targets := ^cs.Sets[us][NoPiece]
	pushMask := cs.EmptySquares
	if mode == genCaptures {
		targets = enemies
		pushMask = EmptyBitboard
	}

	generatePawnMoves(g, ml, pushMask, enemies)
	generatePieceMoves(g, ml, targets)
	generateKingMoves(g, ml, targets)

	if mode == genAll {
		generateCastling(g, ml)
	}
}

// generateEvasions emits the pseudo-legal replies to check. The king may not
// step along a checking slider's line, since the king itself is what blocks
// that line's continuation. With a single checker other pieces may block or
// capture; a double check leaves only king moves.
func generateEvasions(g *Game, ml *MoveList) {
	us := g.WhosTurn
	them := us.Other()
	cs := &g.Set
	ksq := g.CheckStats.DefendKing
	checkers := g.CheckStats.CheckSources

	sliders := checkers & (cs.Sets[them][Bishop] | cs.Sets[them][Rook] | cs.Sets[them][Queen])
	var sliderLines Bitboard
	for sliders != 0 {
		c := PopForward(&sliders)
		sliderLines |= Line(c, ksq) &^ SquareBB(c)
	}

	kingTargets := kingAttacks[ksq] &^ cs.Sets[us][NoPiece] &^ sliderLines
	for kingTargets != 0 {
		ml.Add(NewMove(ksq, PopForward(&kingTargets), Normal))
	}

	if checkers&(checkers-1) != 0 {
		return
	}

	checker := BitScanForward(checkers)
	block := Between(checker, ksq)

	generatePawnMoves(g, ml, block, checkers)
	generatePieceMoves(g, ml, block|checkers)
}

// generatePawnMoves emits pushes landing in pushMask and captures landing in
// captureMask. En passant is emitted when either the target square is in
// pushMask or the captured pawn is in captureMask.
func generatePawnMoves(g *Game, ml *MoveList, pushMask, captureMask Bitboard) {
	us := g.WhosTurn
	cs := &g.Set
	pawns := cs.Sets[us][Pawn]
	if pawns == 0 {
		return
	}

	var push1, push2, capWest, capEast Bitboard
	var up, west, east int
	var promoRank Bitboard

	if us == White {
		push1 = pawns.North() & cs.EmptySquares
		push2 = (push1 & Rank3).North() & cs.EmptySquares
		capWest = pawns.NorthWest()
		capEast = pawns.NorthEast()
		up, west, east = 8, 7, 9
		promoRank = Rank8
	} else {
		push1 = pawns.South() & cs.EmptySquares
		push2 = (push1 & Rank6).South() & cs.EmptySquares
		capWest = pawns.SouthWest()
		capEast = pawns.SouthEast()
		up, west, east = -8, -9, -7
		promoRank = Rank1
	}

	push1 &= pushMask
	push2 &= pushMask
	capWest &= captureMask
	capEast &= captureMask

	addPawnTargets(ml, push1&^promoRank, up)
	addPawnTargets(ml, push2, 2*up)
	addPawnTargets(ml, capWest&^promoRank, west)
	addPawnTargets(ml, capEast&^promoRank, east)

	addPromotions(ml, push1&promoRank, up)
	addPromotions(ml, capWest&promoRank, west)
	addPromotions(ml, capEast&promoRank, east)

	if ep := g.EnPassantSquare; ep != EmptySquare {
		capSq := epCaptureSquare(ep, us)
		if SquareBB(ep)&pushMask != 0 || SquareBB(capSq)&captureMask != 0 {
			attackers := pawnAttacks[us.Other()][ep] & pawns
			for attackers != 0 {
				ml.Add(NewMove(PopForward(&attackers), ep, EnPassant))
			}
		}
	}
}

func addPawnTargets(ml *MoveList, targets Bitboard, delta int) {
	for targets != 0 {
		to := PopForward(&targets)
		ml.Add(NewMove(Square(int(to)-delta), to, Normal))
	}
}

// addPromotions adds all four promotion moves per target, queen first.
func addPromotions(ml *MoveList, targets Bitboard, delta int) {
	for targets != 0 {
		to := PopForward(&targets)
		from := Square(int(to) - delta)
		ml.Add(NewMove(from, to, PromoteQueen))
		ml.Add(NewMove(from, to, PromoteRook))
		ml.Add(NewMove(from, to, PromoteBishop))
		ml.Add(NewMove(from, to, PromoteKnight))
	}
}

// generatePieceMoves emits knight, bishop, rook and queen moves onto targets,
// walking the piece lists.
func generatePieceMoves(g *Game, ml *MoveList, targets Bitboard) {
	us := g.WhosTurn
	cs := &g.Set

	for p := Knight; p <= Queen; p++ {
		for _, from := range cs.Positions(us, p) {
			attacks := pieceAttacks(p, from, cs.Occupancy) & targets
			for attacks != 0 {
				ml.Add(NewMove(from, PopForward(&attacks), Normal))
			}
		}
	}
}

func generateKingMoves(g *Game, ml *MoveList, targets Bitboard) {
	ksq := g.Set.KingSquare(g.WhosTurn)
	if ksq == EmptySquare {
		return
	}
	attacks := kingAttacks[ksq] & targets
	for attacks != 0 {
		ml.Add(NewMove(ksq, PopForward(&attacks), Normal))
	}
}

// generateCastling emits castles whose right is held, whose king and rook
// stand on their home squares, whose path is empty and whose transit squares
// are not attacked. Such castles need no further legality test.
func generateCastling(g *Game, ml *MoveList) {
	us := g.WhosTurn
	for i, kind := range [2]MoveKind{CastleKingSide, CastleQueenSide} {
		if !g.Castling.CanCastle(us, i == 0) {
			continue
		}
		if c := castleFor(us, kind); canCastle(g, us, c) {
			ml.Add(NewMove(c.kingFrom, c.kingTo, kind))
		}
	}
}

func canCastle(g *Game, us Side, c *castleGeometry) bool {
	cs := &g.Set
	if cs.Sets[us][King]&SquareBB(c.kingFrom) == 0 || cs.Sets[us][Rook]&SquareBB(c.rookFrom) == 0 {
		return false
	}
	if cs.Occupancy&c.empty != 0 {
		return false
	}
	them := us.Other()
	transit := c.transit
	for transit != 0 {
		if cs.Attacked(PopForward(&transit), them) {
			return false
		}
	}
	return true
}
