package board

import "fmt"

// epCaptureSquare returns the square of the pawn taken by an en passant
// capture landing on to, made by side s.
func epCaptureSquare(to Square, s Side) Square {
	if s == White {
		return to - 8
	}
	return to + 8
}

// DoMove applies a legal move. The hash, castling rights, en passant square
// and check state are all updated incrementally and an undo record is
// pushed onto History.
func (g *Game) DoMove(m Move) {
	us := g.WhosTurn
	them := us.Other()
	from, to, kind := m.From(), m.To(), m.Kind()
	cs := &g.Set
	piece := cs.Squares[from]

	if piece == NoPiece {
		panic(fmt.Sprintf("board: DoMove %s from empty square", m))
	}

	mem := Memory{
		Move:            m,
		Captured:        NoPiece,
		EnPassantSquare: g.EnPassantSquare,
		HalfMoveClock:   g.HalfMoveClock,
		CheckStats:      g.CheckStats,
	}
	hash := g.Hash ^ zobristSideToMove

	if g.EnPassantSquare != EmptySquare {
		hash ^= zobristEnPassant[g.EnPassantSquare.File()]
		g.EnPassantSquare = EmptySquare
	}

	switch kind {
	case Normal:
		if captured := cs.Squares[to]; captured != NoPiece {
			mem.Captured = captured
			mem.CaptureIndex = cs.RemovePiece(them, captured, to)
			hash ^= zobristPiece[them][captured][to]
		}
		cs.MovePiece(us, piece, from, to)
		hash ^= zobristPiece[us][piece][from] ^ zobristPiece[us][piece][to]

		if piece == Pawn && (to == from+16 || from == to+16) {
			g.EnPassantSquare = (from + to) / 2
			hash ^= zobristEnPassant[to.File()]
		}

	case EnPassant:
		capSq := epCaptureSquare(to, us)
		mem.Captured = Pawn
		mem.CaptureIndex = cs.RemovePiece(them, Pawn, capSq)
		cs.MovePiece(us, Pawn, from, to)
		hash ^= zobristPiece[them][Pawn][capSq]
		hash ^= zobristPiece[us][Pawn][from] ^ zobristPiece[us][Pawn][to]

	case CastleKingSide, CastleQueenSide:
		c := castleFor(us, kind)
		cs.MovePiece(us, King, c.kingFrom, c.kingTo)
		cs.MovePiece(us, Rook, c.rookFrom, c.rookTo)
		hash ^= zobristPiece[us][King][c.kingFrom] ^ zobristPiece[us][King][c.kingTo]
		hash ^= zobristPiece[us][Rook][c.rookFrom] ^ zobristPiece[us][Rook][c.rookTo]

	case PromoteKnight, PromoteBishop, PromoteRook, PromoteQueen:
		promo := m.Promotion()
		if captured := cs.Squares[to]; captured != NoPiece {
			mem.Captured = captured
			mem.CaptureIndex = cs.RemovePiece(them, captured, to)
			hash ^= zobristPiece[them][captured][to]
		}
		mem.PawnIndex = cs.RemovePiece(us, Pawn, from)
		cs.PlacePiece(us, promo, to)
		hash ^= zobristPiece[us][Pawn][from] ^ zobristPiece[us][promo][to]

	default:
		panic(fmt.Sprintf("board: unrecognised move kind %d", kind))
	}

	if lost := g.Castling & (castlingLoss[from] | castlingLoss[to]); lost != 0 {
		mem.CastleEvents = lost
		g.Castling &^= lost
		hash ^= castlingKey(lost)
	}

	if piece == Pawn || mem.Captured != NoPiece {
		g.HalfMoveClock = 0
	} else {
		g.HalfMoveClock++
	}
	if us == Black {
		g.FullMoveNumber++
	}

	g.Hash = hash
	g.WhosTurn = them
	g.History = append(g.History, mem)

	g.CheckStats = newCheckStats(cs, them)
	if kind == Normal {
		g.CheckStats.CheckSources = incrementalCheckSources(cs, &mem.CheckStats, us, piece, from, to)
	} else {
		g.CheckStats.CheckSources = fullCheckSources(cs, them)
	}

	if debugChecks {
		mustBeConsistent(g, "DoMove "+m.String())
	}
}

// incrementalCheckSources finds the checkers of the opponent's king after a
// normal move by us, from the stats that were current before the move. The
// mover checks directly if it landed on one of its check squares; a slider
// behind it checks if it left a discovery square off the line to the king.
func incrementalCheckSources(cs *ChessSet, prev *CheckStats, us Side, piece Piece, from, to Square) Bitboard {
	ksq := prev.AttackKing
	if ksq == EmptySquare {
		return EmptyBitboard
	}

	var sources Bitboard
	if prev.CheckSquares[piece]&SquareBB(to) != 0 {
		sources |= SquareBB(to)
	}
	if prev.Discovered&SquareBB(from) != 0 && !Aligned(from, to, ksq) {
		sources |= cs.sliderCheckers(ksq, us)
	}
	return sources
}

// Unmove reverts the last DoMove. The previous check state, en passant
// square and castling rights are restored from the undo record rather than
// recomputed.
func (g *Game) Unmove() {
	n := len(g.History)
	if n == 0 {
		panic("board: Unmove with empty history")
	}
	mem := &g.History[n-1]

	them := g.WhosTurn
	us := them.Other()
	m := mem.Move
	from, to, kind := m.From(), m.To(), m.Kind()
	cs := &g.Set
	hash := g.Hash ^ zobristSideToMove

	if g.EnPassantSquare != EmptySquare {
		hash ^= zobristEnPassant[g.EnPassantSquare.File()]
	}
	if mem.EnPassantSquare != EmptySquare {
		hash ^= zobristEnPassant[mem.EnPassantSquare.File()]
	}
	g.EnPassantSquare = mem.EnPassantSquare

	if mem.CastleEvents != NoCastling {
		g.Castling |= mem.CastleEvents
		hash ^= castlingKey(mem.CastleEvents)
	}

	switch kind {
	case Normal:
		piece := cs.Squares[to]
		cs.MovePiece(us, piece, to, from)
		hash ^= zobristPiece[us][piece][from] ^ zobristPiece[us][piece][to]
		if mem.Captured != NoPiece {
			cs.RestorePiece(them, mem.Captured, to, mem.CaptureIndex)
			hash ^= zobristPiece[them][mem.Captured][to]
		}

	case EnPassant:
		capSq := epCaptureSquare(to, us)
		cs.MovePiece(us, Pawn, to, from)
		cs.RestorePiece(them, Pawn, capSq, mem.CaptureIndex)
		hash ^= zobristPiece[us][Pawn][from] ^ zobristPiece[us][Pawn][to]
		hash ^= zobristPiece[them][Pawn][capSq]

	case CastleKingSide, CastleQueenSide:
		c := castleFor(us, kind)
		cs.MovePiece(us, Rook, c.rookTo, c.rookFrom)
		cs.MovePiece(us, King, c.kingTo, c.kingFrom)
		hash ^= zobristPiece[us][King][c.kingFrom] ^ zobristPiece[us][King][c.kingTo]
		hash ^= zobristPiece[us][Rook][c.rookFrom] ^ zobristPiece[us][Rook][c.rookTo]

	case PromoteKnight, PromoteBishop, PromoteRook, PromoteQueen:
		promo := m.Promotion()
		cs.RemovePiece(us, promo, to)
		cs.RestorePiece(us, Pawn, from, mem.PawnIndex)
		hash ^= zobristPiece[us][Pawn][from] ^ zobristPiece[us][promo][to]
		if mem.Captured != NoPiece {
			cs.RestorePiece(them, mem.Captured, to, mem.CaptureIndex)
			hash ^= zobristPiece[them][mem.Captured][to]
		}

	default:
		panic(fmt.Sprintf("board: unrecognised move kind %d", kind))
	}

	if us == Black {
		g.FullMoveNumber--
	}
	g.HalfMoveClock = mem.HalfMoveClock
	g.CheckStats = mem.CheckStats
	g.Hash = hash
	g.WhosTurn = us
	g.History = g.History[:n-1]

	if debugChecks {
		mustBeConsistent(g, "Unmove "+m.String())
	}
}
