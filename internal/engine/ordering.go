package engine

import (
	"github.com/lorenzo-stoakes/weak-sub000/internal/board"
)

// Move ordering priorities
const (
	hintScore   = 1 << 20 // Transposition table move
	captureBase = 1 << 10
)

// MVV-LVA (Most Valuable Victim - Least Valuable Attacker), indexed by
// [victim][attacker].
var mvvLva = [board.PieceCount][board.PieceCount]int{
	//          P   N   B   R   Q   K  (attacker)
	{},
	/* P */ {0, 15, 14, 14, 13, 12, 11},
	/* N */ {0, 25, 24, 24, 23, 22, 21},
	/* B */ {0, 35, 34, 34, 33, 32, 31},
	/* R */ {0, 45, 44, 44, 43, 42, 41},
	/* Q */ {0, 55, 54, 54, 53, 52, 51},
	{},
}

// moveScore returns the ordering key of m. Quiet moves score zero so they
// keep their generation order.
func moveScore(g *board.Game, m, hint board.Move) int {
	if m == hint {
		return hintScore
	}
	attacker := g.Set.PieceAt(m.From())
	switch {
	case m.Kind() == board.EnPassant:
		return captureBase + mvvLva[board.Pawn][board.Pawn]
	case !g.Set.IsEmpty(m.To()):
		return captureBase + mvvLva[g.Set.PieceAt(m.To())][attacker]
	case m.Kind() == board.PromoteQueen:
		return captureBase
	}
	return 0
}

// orderMoves sorts ml by descending moveScore. The insertion sort is stable,
// so equal moves stay in generation order and the search remains
// deterministic.
func orderMoves(g *board.Game, ml *board.MoveList, hint board.Move) {
	var scores [board.MaxMoves]int
	moves := ml.Slice()
	for i, m := range moves {
		scores[i] = moveScore(g, m, hint)
	}
	for i := 1; i < len(moves); i++ {
		m, s := moves[i], scores[i]
		j := i - 1
		for ; j >= 0 && scores[j] < s; j-- {
			moves[j+1], scores[j+1] = moves[j], scores[j]
		}
		moves[j+1], scores[j+1] = m, s
	}
}
