// Package engine implements the chess AI search engine.
package engine

import (
	"github.com/lorenzo-stoakes/weak-sub000/internal/board"
)

// Evaluator scores a position from the point of view of side. The search
// calls it at quiet leaves and, with terminal set, when the side to move has
// no legal moves; a terminal score decides mate against stalemate.
//
// Non-terminal scores must lie within [-MaxEval, MaxEval]; the search clamps
// anything outside so a static score is never mistaken for a mate. Terminal
// scores are -MateScore (mated), MateScore or Draw, and are clamped to
// [-MateScore, MateScore].
type Evaluator interface {
	Evaluate(g *board.Game, side board.Side, terminal bool) int
}

// EvaluatorFunc adapts a plain function to Evaluator.
type EvaluatorFunc func(g *board.Game, side board.Side, terminal bool) int

// Evaluate calls f.
func (f EvaluatorFunc) Evaluate(g *board.Game, side board.Side, terminal bool) int {
	return f(g, side, terminal)
}

// Evaluation constants
const (
	PawnValue   = 100
	KnightValue = 320
	BishopValue = 330
	RookValue   = 500
	QueenValue  = 900
)

// Piece values indexed by board.Piece.
var pieceValues = [board.PieceCount]int{0, PawnValue, KnightValue, BishopValue, RookValue, QueenValue, 0}

// Tempo bonus - small advantage for having the move
const tempoBonus = 10

// Piece-Square Tables, written rank 8 first from White's perspective.

var pawnPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	50, 50, 50, 50, 50, 50, 50, 50,
	10, 10, 20, 30, 30, 20, 10, 10,
	5, 5, 10, 25, 25, 10, 5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, -5, -10, 0, 0, -10, -5, 5,
	5, 10, 10, -20, -20, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightPST = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopPST = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, 10, 10, 10, 10, 5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	0, 0, 0, 5, 5, 0, 0, 0,
}

var queenPST = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

// King PST (middlegame) - encourages castling
var kingMidgamePST = [64]int{
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	20, 20, 0, 0, 0, 0, 20, 20,
	20, 30, 10, 0, 0, 10, 30, 20,
}

// King PST (endgame) - king should be active
var kingEndgamePST = [64]int{
	-50, -40, -30, -20, -20, -30, -40, -50,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-50, -30, -30, -30, -30, -30, -30, -50,
}

var psts = [board.PieceCount]*[64]int{
	nil, &pawnPST, &knightPST, &bishopPST, &rookPST, &queenPST, &kingMidgamePST,
}

// Maximum phase: four minors, two rooks and a queen per side.
const maxPhase = 24

var phaseWeight = [board.PieceCount]int{0, 0, 1, 1, 2, 4, 0}

// pstIndex maps a square onto the rank-8-first tables.
func pstIndex(sq board.Square, s board.Side) int {
	if s == board.White {
		return int(sq ^ 56)
	}
	return int(sq)
}

// Material is the default Evaluator: material plus piece-square bonuses,
// with the king table tapered by game phase. Mate scores -MateScore and
// stalemate scores zero; the search adjusts mate scores by ply.
type Material struct{}

// Evaluate implements Evaluator.
func (Material) Evaluate(g *board.Game, side board.Side, terminal bool) int {
	if terminal {
		if g.InCheck() {
			if g.WhosTurn == side {
				return -MateScore
			}
			return MateScore
		}
		return Draw
	}

	var mgScore, egScore, phase int
	for s := board.White; s <= board.Black; s++ {
		sign := 1
		if s == board.Black {
			sign = -1
		}

		for p := board.Pawn; p <= board.King; p++ {
			for _, sq := range g.Set.Positions(s, p) {
				idx := pstIndex(sq, s)
				v := pieceValues[p]
				if p == board.King {
					mgScore += sign * kingMidgamePST[idx]
					egScore += sign * kingEndgamePST[idx]
				} else {
					v += psts[p][idx]
					mgScore += sign * v
					egScore += sign * v
				}
				phase += phaseWeight[p]
			}
		}
	}

	if phase > maxPhase {
		phase = maxPhase
	}
	score := (mgScore*phase + egScore*(maxPhase-phase)) / maxPhase

	if g.WhosTurn == board.White {
		score += tempoBonus
	} else {
		score -= tempoBonus
	}

	if side == board.Black {
		return -score
	}
	return score
}

// EvaluateMaterial returns just the material balance from side's point of view.
func EvaluateMaterial(g *board.Game, side board.Side) int {
	score := 0
	for p := board.Pawn; p < board.King; p++ {
		score += g.Set.PieceCounts[board.White][p] * pieceValues[p]
		score -= g.Set.PieceCounts[board.Black][p] * pieceValues[p]
	}
	if side == board.Black {
		return -score
	}
	return score
}
