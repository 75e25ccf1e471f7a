package board

import (
	"fmt"
	"strings"
)

// Memory is the undo record pushed by DoMove and popped by Unmove.
type Memory struct {
	Move            Move
	Captured        Piece
	CaptureIndex    int // Piece-list slot the captured piece held
	PawnIndex       int // Piece-list slot of a promoting pawn
	EnPassantSquare Square
	CastleEvents    CastlingRights // Rights lost by this move
	HalfMoveClock   int
	CheckStats      CheckStats
}

// Game is the mutable game state. Search and perft explore the tree by
// DoMove, recurse, Unmove on a single Game; it is never copied in the
// traversal.
type Game struct {
	Set             ChessSet
	CheckStats      CheckStats
	Castling        CastlingRights
	EnPassantSquare Square
	Hash            uint64
	WhosTurn        Side
	HalfMoveClock   int
	FullMoveNumber  int

	History []Memory
}

// MaxPly bounds the depth of any single traversal.
const MaxPly = 128

const historyCapacity = 2 * MaxPly

// NewEmptyGame returns a game with no pieces, white to move.
func NewEmptyGame() *Game {
	InitEngine()
	g := &Game{
		Set:             NewChessSet(),
		EnPassantSquare: EmptySquare,
		FullMoveNumber:  1,
		History:         make([]Memory, 0, historyCapacity),
	}
	g.refresh()
	return g
}

// NewGame returns the standard starting position.
func NewGame() *Game {
	g, err := ParseFen(StartFEN)
	if err != nil {
		panic(fmt.Sprintf("board: start position: %v", err))
	}
	return g
}

// refresh derives the hash and check state from the placement. Used only
// after loading a position.
func (g *Game) refresh() {
	g.Hash = ComputeHash(g)
	g.CheckStats = newCheckStats(&g.Set, g.WhosTurn)
	g.CheckStats.CheckSources = fullCheckSources(&g.Set, g.WhosTurn)
}

// InCheck returns true if the side to move is in check.
func (g *Game) InCheck() bool {
	return g.CheckStats.CheckSources != 0
}

// Ply returns the number of moves applied since the position was loaded.
func (g *Game) Ply() int {
	return len(g.History)
}

// LastMove returns the most recent move, or NoMove.
func (g *Game) LastMove() Move {
	if len(g.History) == 0 {
		return NoMove
	}
	return g.History[len(g.History)-1].Move
}

// Clone returns a deep copy, for handing a position to another goroutine.
func (g *Game) Clone() *Game {
	c := *g
	c.History = make([]Memory, len(g.History), max(cap(g.History), historyCapacity))
	copy(c.History, g.History)
	return &c
}

// PieceAt returns the side and piece on sq; ok is false for an empty square.
func (g *Game) PieceAt(sq Square) (s Side, p Piece, ok bool) {
	p = g.Set.PieceAt(sq)
	if p == NoPiece {
		return White, NoPiece, false
	}
	return g.Set.SideAt(sq), p, true
}

// String returns a visual representation of the position.
func (g *Game) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			sq := NewSquare(file, rank)
			if s, p, ok := g.PieceAt(sq); ok {
				sb.WriteByte(p.Char(s))
				sb.WriteByte(' ')
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", g.WhosTurn)
	fmt.Fprintf(&sb, "Castling: %s\n", g.Castling)
	fmt.Fprintf(&sb, "En passant: %s\n", g.EnPassantSquare)
	fmt.Fprintf(&sb, "Hash: %016x\n", g.Hash)
	if g.InCheck() {
		sb.WriteString("In check\n")
	}
	return sb.String()
}
