package board

import "golang.org/x/exp/constraints"

// Direction is one of the eight compass directions a slider can travel.
type Direction uint8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// file/rank deltas per direction.
var directionDelta = [8][2]int{
	North:     {0, 1},
	NorthEast: {1, 1},
	East:      {1, 0},
	SouthEast: {1, -1},
	South:     {0, -1},
	SouthWest: {-1, -1},
	West:      {-1, 0},
	NorthWest: {-1, 1},
}

var (
	rookDirections   = [4]Direction{North, East, South, West}
	bishopDirections = [4]Direction{NorthEast, SouthEast, SouthWest, NorthWest}
)

var (
	rays      [8][64]Bitboard // Squares reachable from sq in a direction on an empty board
	betweenBB [64][64]Bitboard
	lineBB    [64][64]Bitboard
)

// positive reports whether a direction increases square indices, which
// decides whether the first blocker is the lowest or the highest set bit.
func (d Direction) positive() bool {
	return d == North || d == NorthEast || d == East || d == NorthWest
}

func initRays() {
	for sq := A1; sq <= H8; sq++ {
		for d := North; d <= NorthWest; d++ {
			var ray Bitboard
			f, r := sq.File()+directionDelta[d][0], sq.Rank()+directionDelta[d][1]
			for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
				ray |= SquareBB(NewSquare(f, r))
				f += directionDelta[d][0]
				r += directionDelta[d][1]
			}
			rays[d][sq] = ray
		}
	}
}

func initBetweenAndLine() {
	for sq1 := A1; sq1 <= H8; sq1++ {
		for sq2 := A1; sq2 <= H8; sq2++ {
			if sq1 == sq2 {
				continue
			}
			df, dr := sq2.File()-sq1.File(), sq2.Rank()-sq1.Rank()
			if df != 0 && dr != 0 && abs(df) != abs(dr) {
				continue
			}
			d := directionOf(sign(df), sign(dr))
			back := (d + 4) & 7
			// The ray from sq1 through sq2 minus the ray from sq2 onwards.
			betweenBB[sq1][sq2] = rays[d][sq1] &^ rays[d][sq2] &^ SquareBB(sq2)
			lineBB[sq1][sq2] = rays[d][sq1] | rays[back][sq1] | SquareBB(sq1)
		}
	}
}

func directionOf(df, dr int) Direction {
	for d := North; d <= NorthWest; d++ {
		if directionDelta[d][0] == df && directionDelta[d][1] == dr {
			return d
		}
	}
	panic("board: no direction for delta")
}

// Ray returns the empty-board ray from sq in direction d (sq excluded).
func Ray(d Direction, sq Square) Bitboard {
	return rays[d][sq]
}

// Between returns the bitboard of squares strictly between two squares.
// Returns empty if squares are not aligned (not on same rank, file, or diagonal).
func Between(sq1, sq2 Square) Bitboard {
	return betweenBB[sq1][sq2]
}

// Line returns the bitboard of the full line through two squares.
// Returns empty if squares are not aligned.
func Line(sq1, sq2 Square) Bitboard {
	return lineBB[sq1][sq2]
}

// Aligned returns true if three squares are on the same line.
func Aligned(sq1, sq2, sq3 Square) bool {
	return lineBB[sq1][sq2]&SquareBB(sq3) != 0
}

func sign[T constraints.Signed](x T) T {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}
