package board

import "sync"

// Pre-computed attack tables for non-sliding pieces
var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [2][64]Bitboard // [Side][Square]
)

var initOnce sync.Once

// InitEngine builds every process-wide table: rays, between/line masks,
// leaper attacks, magic slider tables and Zobrist keys. It is safe to call
// more than once; the tables are read-only afterwards. Game constructors call
// it, so callers only need it when using the attack functions directly.
func InitEngine() {
	initOnce.Do(func() {
		initRays()
		initBetweenAndLine()
		initKnightAttacks()
		initKingAttacks()
		initPawnAttacks()
		initMagics()
		initZobrist()
	})
}

func initKnightAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)

		attacks := EmptyBitboard
		attacks |= (bb << 17) & NotFileA  // NNE
		attacks |= (bb << 15) & NotFileH  // NNW
		attacks |= (bb >> 17) & NotFileH  // SSW
		attacks |= (bb >> 15) & NotFileA  // SSE
		attacks |= (bb << 10) & NotFileAB // ENE
		attacks |= (bb << 6) & NotFileGH  // WNW
		attacks |= (bb >> 10) & NotFileGH // WSW
		attacks |= (bb >> 6) & NotFileAB  // ESE

		knightAttacks[sq] = attacks
	}
}

func initKingAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)

		attacks := bb.North() | bb.South()
		attacks |= bb.East() | bb.West()
		attacks |= bb.NorthEast() | bb.NorthWest()
		attacks |= bb.SouthEast() | bb.SouthWest()

		kingAttacks[sq] = attacks
	}
}

func initPawnAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)
		pawnAttacks[White][sq] = bb.NorthEast() | bb.NorthWest()
		pawnAttacks[Black][sq] = bb.SouthEast() | bb.SouthWest()
	}
}

// KnightAttacks returns the knight attack bitboard for a square.
func KnightAttacks(sq Square) Bitboard {
	return knightAttacks[sq]
}

// KingAttacks returns the king attack bitboard for a square.
func KingAttacks(sq Square) Bitboard {
	return kingAttacks[sq]
}

// PawnAttacks returns the squares a pawn of side s on sq attacks.
func PawnAttacks(sq Square, s Side) Bitboard {
	return pawnAttacks[s][sq]
}

// AttackersTo returns every piece of either side attacking sq given occupied.
func (cs *ChessSet) AttackersTo(sq Square, occupied Bitboard) Bitboard {
	return cs.AttackersBy(sq, White, occupied) | cs.AttackersBy(sq, Black, occupied)
}

// AttackersBy returns the pieces of side s attacking sq given occupied.
func (cs *ChessSet) AttackersBy(sq Square, s Side, occupied Bitboard) Bitboard {
	pieces := &cs.Sets[s]
	return (pawnAttacks[s.Other()][sq] & pieces[Pawn]) |
		(knightAttacks[sq] & pieces[Knight]) |
		(kingAttacks[sq] & pieces[King]) |
		(BishopAttacks(sq, occupied) & (pieces[Bishop] | pieces[Queen])) |
		(RookAttacks(sq, occupied) & (pieces[Rook] | pieces[Queen]))
}

// Attacked reports whether side s attacks sq with the current occupancy.
func (cs *ChessSet) Attacked(sq Square, s Side) bool {
	return cs.AttackersBy(sq, s, cs.Occupancy) != 0
}

// pieceAttacks returns the attack set of a non-pawn piece on sq.
func pieceAttacks(p Piece, sq Square, occupied Bitboard) Bitboard {
	switch p {
	case Knight:
		return knightAttacks[sq]
	case Bishop:
		return BishopAttacks(sq, occupied)
	case Rook:
		return RookAttacks(sq, occupied)
	case Queen:
		return QueenAttacks(sq, occupied)
	case King:
		return kingAttacks[sq]
	}
	panic("board: pieceAttacks called for " + p.String())
}
