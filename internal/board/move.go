package board

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Move encodes a chess move in 16 bits:
// bits 0-5:   from square (0-63)
// bits 6-11:  to square (0-63)
// bits 12-15: move kind
type Move uint16

// MoveKind tags the special handling a move needs.
type MoveKind uint8

const (
	Normal MoveKind = iota
	EnPassant
	CastleKingSide
	CastleQueenSide
	PromoteKnight
	PromoteBishop
	PromoteRook
	PromoteQueen
)

// NoMove represents an invalid or null move. A1A1 is never generated.
const NoMove Move = 0

// MaxMoves is a known upper bound on the number of legal moves in any position.
const MaxMoves = 192

// NewMove creates a move of the given kind.
func NewMove(from, to Square, kind MoveKind) Move {
	return Move(from) | Move(to)<<6 | Move(kind)<<12
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> 6) & 0x3F)
}

// Kind returns the move kind.
func (m Move) Kind() MoveKind {
	return MoveKind(m >> 12)
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return m.Kind() >= PromoteKnight
}

// IsCastle returns true for either castling move.
func (m Move) IsCastle() bool {
	k := m.Kind()
	return k == CastleKingSide || k == CastleQueenSide
}

// Promotion returns the piece a pawn promotes to, or NoPiece.
func (m Move) Promotion() Piece {
	if !m.IsPromotion() {
		return NoPiece
	}
	return Knight + Piece(m.Kind()-PromoteKnight)
}

// promotionKind maps a promotion piece to its move kind.
func promotionKind(p Piece) MoveKind {
	return PromoteKnight + MoveKind(p-Knight)
}

// IsCapture reports whether m takes a piece in g's current position.
func (m Move) IsCapture(g *Game) bool {
	return m.Kind() == EnPassant || !g.Set.IsEmpty(m.To())
}

// String returns the UCI format of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}

	s := m.From().String() + m.To().String()

	if m.IsPromotion() {
		s += string(m.Promotion().Char(Black))
	}

	return s
}

// ParseMove resolves UCI move text against the legal moves of g. Textual input
// is never trusted: anything that is not one of those moves is rejected.
func ParseMove(g *Game, s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("invalid move string: %q", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}
	promo := NoPiece
	if len(s) == 5 {
		_, p, ok := PieceFromChar(s[4])
		if !ok || p == Pawn || p == King {
			return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
		promo = p
	}

	var ml MoveList
	AllMoves(g, &ml)
	i := slices.IndexFunc(ml.Slice(), func(m Move) bool {
		return m.From() == from && m.To() == to && m.Promotion() == promo
	})
	if i < 0 {
		return NoMove, fmt.Errorf("%w: %s", ErrIllegalMove, s)
	}
	return ml.Get(i), nil
}

// MoveList is a fixed-size list of moves to avoid allocations.
type MoveList struct {
	moves [MaxMoves]Move
	count int
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Swap swaps two moves in the list.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}

// Clear clears the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	return slices.Contains(ml.Slice(), m)
}

// Slice returns the moves as a slice backed by the list.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}

// MoveArena hands out one MoveList per recursion depth so deep traversals
// never allocate.
type MoveArena struct {
	lists []MoveList
}

// NewMoveArena returns an arena for depths 0 through maxDepth.
func NewMoveArena(maxDepth int) *MoveArena {
	return &MoveArena{lists: make([]MoveList, maxDepth+1)}
}

// At returns the (cleared) list reserved for depth.
func (a *MoveArena) At(depth int) *MoveList {
	ml := &a.lists[depth]
	ml.Clear()
	return ml
}
