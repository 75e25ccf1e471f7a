// Package perft counts the leaves of the legal move tree. The counts are
// compared against published values to validate move generation.
package perft

import (
	"fmt"
	"strings"

	"github.com/lorenzo-stoakes/weak-sub000/internal/board"
)

// Stats classifies the leaves of a perft tree. Captures include en passant;
// Checks include checkmates.
type Stats struct {
	Nodes      uint64 `json:"nodes"`
	Captures   uint64 `json:"captures"`
	EnPassant  uint64 `json:"en_passant"`
	Castles    uint64 `json:"castles"`
	Promotions uint64 `json:"promotions"`
	Checks     uint64 `json:"checks"`
	Checkmates uint64 `json:"checkmates"`
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Nodes += o.Nodes
	s.Captures += o.Captures
	s.EnPassant += o.EnPassant
	s.Castles += o.Castles
	s.Promotions += o.Promotions
	s.Checks += o.Checks
	s.Checkmates += o.Checkmates
}

// String formats the stats as a one-line table row.
func (s Stats) String() string {
	return fmt.Sprintf("nodes %d captures %d ep %d castles %d promotions %d checks %d checkmates %d",
		s.Nodes, s.Captures, s.EnPassant, s.Castles, s.Promotions, s.Checks, s.Checkmates)
}

// Count returns the number of leaves depth plies below g. The game is
// restored before returning.
func Count(g *board.Game, depth int) uint64 {
	return count(g, board.NewMoveArena(depth), depth)
}

func count(g *board.Game, arena *board.MoveArena, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := arena.At(depth)
	board.AllMoves(g, moves)
	if depth == 1 {
		return uint64(moves.Len())
	}

	var nodes uint64
	for _, m := range moves.Slice() {
		g.DoMove(m)
		nodes += count(g, arena, depth-1)
		g.Unmove()
	}
	return nodes
}

// DivideEntry is the leaf count below one root move.
type DivideEntry struct {
	Move  board.Move
	Nodes uint64
}

// Divide returns the leaf count below each legal root move, in generation
// order.
func Divide(g *board.Game, depth int) []DivideEntry {
	if depth < 1 {
		return nil
	}

	var moves board.MoveList
	board.AllMoves(g, &moves)
	arena := board.NewMoveArena(depth)

	entries := make([]DivideEntry, 0, moves.Len())
	for _, m := range moves.Slice() {
		g.DoMove(m)
		entries = append(entries, DivideEntry{Move: m, Nodes: count(g, arena, depth-1)})
		g.Unmove()
	}
	return entries
}

// FormatDivide renders entries one per line followed by the total.
func FormatDivide(entries []DivideEntry) string {
	var sb strings.Builder
	var total uint64
	for _, e := range entries {
		fmt.Fprintf(&sb, "%s: %d\n", e.Move, e.Nodes)
		total += e.Nodes
	}
	fmt.Fprintf(&sb, "\nNodes searched: %d\n", total)
	return sb.String()
}

// Run walks the tree to depth and classifies every leaf by the move that
// reached it and the check state it leaves behind.
func Run(g *board.Game, depth int) Stats {
	var s Stats
	if depth == 0 {
		s.Nodes = 1
		return s
	}
	run(g, board.NewMoveArena(depth), depth, &s)
	return s
}

func run(g *board.Game, arena *board.MoveArena, depth int, s *Stats) {
	moves := arena.At(depth)
	board.AllMoves(g, moves)

	for _, m := range moves.Slice() {
		if depth > 1 {
			g.DoMove(m)
			run(g, arena, depth-1, s)
			g.Unmove()
			continue
		}

		s.Nodes++
		if m.IsCapture(g) {
			s.Captures++
		}
		switch {
		case m.Kind() == board.EnPassant:
			s.EnPassant++
		case m.IsCastle():
			s.Castles++
		case m.IsPromotion():
			s.Promotions++
		}

		g.DoMove(m)
		if g.InCheck() {
			s.Checks++
			if !g.HasLegalMoves() {
				s.Checkmates++
			}
		}
		g.Unmove()
	}
}
