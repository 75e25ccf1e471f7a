package board

// Side represents the colour of a piece or player.
type Side uint8

const (
	White Side = iota
	Black
)

// Other returns the opposite side.
func (s Side) Other() Side {
	return s ^ 1
}

// String returns the side name.
func (s Side) String() string {
	if s == White {
		return "White"
	}
	return "Black"
}

// Piece represents the type of a chess piece. Index 0 doubles as the
// "whole side" slot in ChessSet.Sets.
type Piece uint8

const (
	NoPiece Piece = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// PieceCount is the number of Piece values including NoPiece.
const PieceCount = 7

// String returns the piece type name.
func (p Piece) String() string {
	switch p {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the FEN character for the piece, uppercase for white.
func (p Piece) Char(s Side) byte {
	const chars = " PNBRQK"
	if p >= PieceCount {
		return ' '
	}
	c := chars[p]
	if s == Black && p != NoPiece {
		c += 'a' - 'A'
	}
	return c
}

// PieceFromChar converts a FEN character to a side and piece.
func PieceFromChar(c byte) (Side, Piece, bool) {
	side := White
	if c >= 'a' && c <= 'z' {
		side = Black
		c -= 'a' - 'A'
	}
	switch c {
	case 'P':
		return side, Pawn, true
	case 'N':
		return side, Knight, true
	case 'B':
		return side, Bishop, true
	case 'R':
		return side, Rook, true
	case 'Q':
		return side, Queen, true
	case 'K':
		return side, King, true
	}
	return White, NoPiece, false
}
