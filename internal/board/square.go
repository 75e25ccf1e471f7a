// Package board implements the move generation and game state core of the
// engine: bitboards, magic attack tables, the piece set, legal move
// generation and incremental make/unmake.
package board

import (
	"errors"
	"fmt"
)

// Square indexes the board little-endian rank-file: a1 = 0, h1 = 7, a8 = 56.
type Square uint8

// EmptySquare marks the absence of a square (no en passant target, no king).
const EmptySquare Square = 64

const (
	A1, B1, C1, D1, E1, F1, G1, H1 Square = 8*iota + 0, 8*iota + 1, 8*iota + 2, 8*iota + 3,
		8*iota + 4, 8*iota + 5, 8*iota + 6, 8*iota + 7
	A2, B2, C2, D2, E2, F2, G2, H2
	A3, B3, C3, D3, E3, F3, G3, H3
	A4, B4, C4, D4, E4, F4, G4, H4
	A5, B5, C5, D5, E5, F5, G5, H5
	A6, B6, C6, D6, E6, F6, G6, H6
	A7, B7, C7, D7, E7, F7, G7, H7
	A8, B8, C8, D8, E8, F8, G8, H8
)

// ErrSquare is returned for text that does not name a square.
var ErrSquare = errors.New("invalid square")

// File is the column, 0 for the a-file.
func (sq Square) File() int { return int(sq) & 7 }

// Rank is the row, 0 for the first rank.
func (sq Square) Rank() int { return int(sq) >> 3 }

// NewSquare builds a square from 0-based file and rank.
func NewSquare(file, rank int) Square {
	return Square(rank<<3 | file)
}

func (sq Square) String() string {
	if sq >= EmptySquare {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

// ParseSquare reads coordinate text such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return EmptySquare, fmt.Errorf("%w: %q", ErrSquare, s)
	}
	return NewSquare(int(s[0]-'a'), int(s[1]-'1')), nil
}
