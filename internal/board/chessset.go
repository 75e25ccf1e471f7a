package board

// MaxPiecesPerKind bounds the piece list of one (side, piece) pair: eight
// pawns promoting to a kind that already has two on the board.
const MaxPiecesPerKind = 10

// ChessSet holds piece placement. Sets[side][NoPiece] is the side's total
// occupancy. PiecePositions is a dense list of squares per (side, piece) and
// PieceIndex maps an occupied square back to its slot in that list, which
// makes removal O(1) by swapping in the last element. PieceIndex entries for
// empty squares are stale and never read.
type ChessSet struct {
	Sets         [2][PieceCount]Bitboard
	PieceOcc     [PieceCount]Bitboard // Both sides per piece kind
	Occupancy    Bitboard
	EmptySquares Bitboard

	Squares        [64]Piece
	PiecePositions [2][PieceCount][MaxPiecesPerKind]Square
	PieceCounts    [2][PieceCount]int
	PieceIndex     [64]int
}

// NewChessSet returns an empty board.
func NewChessSet() ChessSet {
	return ChessSet{EmptySquares: FullBitboard}
}

// PieceAt returns the piece on sq, or NoPiece.
func (cs *ChessSet) PieceAt(sq Square) Piece {
	return cs.Squares[sq]
}

// SideAt returns the owner of the piece on sq. Only meaningful for occupied squares.
func (cs *ChessSet) SideAt(sq Square) Side {
	if cs.Sets[Black][NoPiece]&SquareBB(sq) != 0 {
		return Black
	}
	return White
}

// IsEmpty returns true if the square is empty.
func (cs *ChessSet) IsEmpty(sq Square) bool {
	return cs.EmptySquares&SquareBB(sq) != 0
}

// KingSquare returns the king square of s, or EmptySquare when s has no king.
func (cs *ChessSet) KingSquare(s Side) Square {
	if cs.PieceCounts[s][King] == 0 {
		return EmptySquare
	}
	return cs.PiecePositions[s][King][0]
}

// Positions returns the current squares of (s, p) in list order.
func (cs *ChessSet) Positions(s Side, p Piece) []Square {
	return cs.PiecePositions[s][p][:cs.PieceCounts[s][p]]
}

func (cs *ChessSet) toggle(s Side, p Piece, bb Bitboard) {
	cs.Sets[s][p] ^= bb
	cs.Sets[s][NoPiece] ^= bb
	cs.PieceOcc[p] ^= bb
	cs.Occupancy ^= bb
	cs.EmptySquares ^= bb
}

// PlacePiece puts p for s on an empty sq and appends it to the piece list.
func (cs *ChessSet) PlacePiece(s Side, p Piece, sq Square) {
	cs.toggle(s, p, SquareBB(sq))
	cs.Squares[sq] = p

	n := cs.PieceCounts[s][p]
	cs.PiecePositions[s][p][n] = sq
	cs.PieceIndex[sq] = n
	cs.PieceCounts[s][p] = n + 1
}

// RemovePiece takes p for s off sq. The last list entry is swapped into the
// vacated slot; the slot index is returned so RestorePiece can undo the swap.
// Captures, en passant and promotion all compact the list through here.
func (cs *ChessSet) RemovePiece(s Side, p Piece, sq Square) int {
	cs.toggle(s, p, SquareBB(sq))
	cs.Squares[sq] = NoPiece

	idx := cs.PieceIndex[sq]
	last := cs.PieceCounts[s][p] - 1
	lastSq := cs.PiecePositions[s][p][last]
	cs.PiecePositions[s][p][idx] = lastSq
	cs.PieceIndex[lastSq] = idx
	cs.PieceCounts[s][p] = last

	return idx
}

// RestorePiece is the exact inverse of RemovePiece: the entry that was
// swapped into idx moves back to the end and sq takes idx again.
func (cs *ChessSet) RestorePiece(s Side, p Piece, sq Square, idx int) {
	cs.toggle(s, p, SquareBB(sq))
	cs.Squares[sq] = p

	n := cs.PieceCounts[s][p]
	// When sq was the last entry nothing was swapped and slot idx is stale.
	if idx < n {
		moved := cs.PiecePositions[s][p][idx]
		cs.PiecePositions[s][p][n] = moved
		cs.PieceIndex[moved] = n
	}
	cs.PiecePositions[s][p][idx] = sq
	cs.PieceIndex[sq] = idx
	cs.PieceCounts[s][p] = n + 1
}

// MovePiece relocates p for s from one square to another, keeping its list slot.
func (cs *ChessSet) MovePiece(s Side, p Piece, from, to Square) {
	cs.toggle(s, p, SquareBB(from)|SquareBB(to))
	cs.Squares[from] = NoPiece
	cs.Squares[to] = p

	idx := cs.PieceIndex[from]
	cs.PiecePositions[s][p][idx] = to
	cs.PieceIndex[to] = idx
}
