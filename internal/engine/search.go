package engine

import (
	"context"

	"github.com/lorenzo-stoakes/weak-sub000/internal/board"
)

// Search constants
const (
	Infinity  = 30000
	MateScore = 29000
	Draw      = 0
	MaxPly    = board.MaxPly

	// MaxEval bounds static scores so they never read as mate.
	MaxEval = MateScore - MaxPly - 1
)

// Result is the outcome of the deepest completed iteration. Depth is zero
// when no iteration completed.
type Result struct {
	Move  board.Move
	Score int
	Depth int
	Nodes uint64
}

// Searcher performs iterative deepening alpha-beta search on a single
// goroutine. The game is mutated in place and restored before Search returns.
type Searcher struct {
	tt    *TransTable
	eval  Evaluator
	arena *board.MoveArena

	done    <-chan struct{}
	stopped bool
	nodes   uint64

	// OnIteration, if set, is called after every completed depth.
	OnIteration func(Result)
}

// NewSearcher creates a searcher sharing tt. A nil eval selects Material.
func NewSearcher(tt *TransTable, eval Evaluator) *Searcher {
	if eval == nil {
		eval = Material{}
	}
	return &Searcher{
		tt:    tt,
		eval:  eval,
		arena: board.NewMoveArena(MaxPly),
	}
}

// Nodes returns the number of nodes visited by the last search.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// cancelled polls the context. Once observed, the flag stays set for the rest
// of the search so every frame unwinds.
func (s *Searcher) cancelled() bool {
	if s.stopped {
		return true
	}
	select {
	case <-s.done:
		s.stopped = true
	default:
	}
	return s.stopped
}

// Search deepens from depth 1 to maxDepth, or until ctx is done. A depth
// interrupted by cancellation is discarded.
func (s *Searcher) Search(ctx context.Context, g *board.Game, maxDepth int) Result {
	s.done = ctx.Done()
	s.stopped = false
	s.nodes = 0
	if maxDepth <= 0 || maxDepth >= MaxPly {
		maxDepth = MaxPly - 1
	}

	var rootMoves board.MoveList
	board.AllMoves(g, &rootMoves)
	if rootMoves.Len() == 0 {
		return Result{}
	}

	var result Result
	for depth := 1; depth <= maxDepth; depth++ {
		move, score, ok := s.searchRoot(g, &rootMoves, depth, result.Move)
		if !ok {
			break
		}
		result = Result{Move: move, Score: score, Depth: depth, Nodes: s.nodes}
		if s.OnIteration != nil {
			s.OnIteration(result)
		}

		// Mate found
		if score > MateScore-MaxPly || score < -MateScore+MaxPly {
			break
		}
	}
	result.Nodes = s.nodes
	return result
}

// searchRoot searches every root move at depth. Ties go to the move tried
// first; the previous iteration's best is tried first.
func (s *Searcher) searchRoot(g *board.Game, moves *board.MoveList, depth int, prev board.Move) (board.Move, int, bool) {
	orderMoves(g, moves, prev)

	alpha, beta := -Infinity, Infinity
	best, bestScore := board.NoMove, -Infinity
	for _, m := range moves.Slice() {
		g.DoMove(m)
		score := -s.negamax(g, depth-1, 1, -beta, -alpha)
		g.Unmove()

		if s.stopped {
			return board.NoMove, 0, false
		}
		if score > bestScore {
			best, bestScore = m, score
		}
		if score > alpha {
			alpha = score
		}
	}

	s.tt.Store(g.Hash, depth, AdjustScoreToTT(bestScore, 0), BoundExact, best)
	return best, bestScore, true
}

// negamax returns the score of g from the side to move's point of view.
func (s *Searcher) negamax(g *board.Game, depth, ply, alpha, beta int) int {
	if s.cancelled() {
		return alpha
	}
	if depth <= 0 {
		return s.quiescence(g, ply, alpha, beta)
	}
	s.nodes++
	if ply >= MaxPly {
		return s.evaluate(g)
	}

	hint := board.NoMove
	if entry, ok := s.tt.Probe(g.Hash); ok {
		hint = entry.Move
		if entry.Depth >= depth {
			score := AdjustScoreFromTT(entry.Score, ply)
			switch {
			case entry.Bound == BoundExact,
				entry.Bound == BoundLower && score >= beta,
				entry.Bound == BoundUpper && score <= alpha:
				return score
			}
		}
	}

	ml := s.arena.At(ply)
	board.AllMoves(g, ml)
	if ml.Len() == 0 {
		return s.terminal(g, ply)
	}
	orderMoves(g, ml, hint)

	origAlpha := alpha
	best, bestMove := -Infinity, board.NoMove
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		g.DoMove(m)
		score := -s.negamax(g, depth-1, ply+1, -beta, -alpha)
		g.Unmove()

		if s.stopped {
			return alpha
		}
		if score > best {
			best, bestMove = score, m
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}

	bound := BoundExact
	switch {
	case best >= beta:
		bound = BoundLower
	case best <= origAlpha:
		bound = BoundUpper
	}
	s.tt.Store(g.Hash, depth, AdjustScoreToTT(best, ply), bound, bestMove)
	return best
}

// quiescence follows captures until the position is quiet. Out of check the
// static evaluation is a lower bound; in check every evasion is searched.
func (s *Searcher) quiescence(g *board.Game, ply, alpha, beta int) int {
	if s.cancelled() {
		return alpha
	}
	s.nodes++
	if ply >= MaxPly {
		return s.evaluate(g)
	}

	inCheck := g.InCheck()
	best := -Infinity
	if !inCheck {
		best = s.evaluate(g)
		if best >= beta {
			return best
		}
		if best > alpha {
			alpha = best
		}
	}

	ml := s.arena.At(ply)
	board.AllCaptures(g, ml)
	if inCheck && ml.Len() == 0 {
		return s.terminal(g, ply)
	}
	orderMoves(g, ml, board.NoMove)

	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		g.DoMove(m)
		score := -s.quiescence(g, ply+1, -beta, -alpha)
		g.Unmove()

		if s.stopped {
			return alpha
		}
		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// evaluate is the static score of g for the side to move, clamped to
// [-MaxEval, MaxEval].
func (s *Searcher) evaluate(g *board.Game) int {
	return min(max(s.eval.Evaluate(g, g.WhosTurn, false), -MaxEval), MaxEval)
}

// terminal scores a position without legal moves. Mate scores are moved
// towards zero by the distance from the root so shorter mates score higher.
func (s *Searcher) terminal(g *board.Game, ply int) int {
	score := min(max(s.eval.Evaluate(g, g.WhosTurn, true), -MateScore), MateScore)
	switch {
	case score <= -MateScore+MaxPly:
		return score + ply
	case score >= MateScore-MaxPly:
		return score - ply
	}
	return score
}

// PrincipalVariation follows best moves through the transposition table,
// starting with first. The game is restored before returning.
func (s *Searcher) PrincipalVariation(g *board.Game, first board.Move, maxLen int) []board.Move {
	var pv []board.Move
	m := first
	for len(pv) < maxLen && m != board.NoMove && board.Legal(g, m) {
		pv = append(pv, m)
		g.DoMove(m)
		entry, ok := s.tt.Probe(g.Hash)
		if !ok {
			break
		}
		m = entry.Move
	}
	for range pv {
		g.Unmove()
	}
	return pv
}
