package engine

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lorenzo-stoakes/weak-sub000/internal/board"
)

// SearchInfo contains information about the current search.
type SearchInfo struct {
	Depth    int
	Score    int
	Nodes    uint64
	Time     time.Duration
	PV       []board.Move
	HashFull int // Permille of hash table used
}

// Options configures an Engine.
type Options struct {
	Hash     int           // Transposition table size in MB
	MaxDepth int           // Iteration limit (0 = MaxPly-1)
	MoveTime time.Duration // Default budget for SearchDeadline callers
}

// NewOptions returns the default options.
func NewOptions() Options {
	return Options{
		Hash:     16,
		MaxDepth: 0,
		MoveTime: time.Second,
	}
}

// Engine is the chess AI engine. It is not safe for concurrent searches.
type Engine struct {
	Options  Options
	searcher *Searcher
	tt       *TransTable

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates an engine scoring positions with eval (Material if nil).
func NewEngine(opts Options, eval Evaluator) *Engine {
	tt := NewTransTable(opts.Hash)
	return &Engine{
		Options:  opts,
		searcher: NewSearcher(tt, eval),
		tt:       tt,
	}
}

// Search runs iterative deepening up to depth (Options.MaxDepth if depth is
// zero) until ctx is done.
func (e *Engine) Search(ctx context.Context, g *board.Game, depth int) Result {
	if depth <= 0 {
		depth = e.Options.MaxDepth
	}
	e.tt.NewSearch()

	startTime := time.Now()
	e.searcher.OnIteration = nil
	if e.OnInfo != nil {
		e.searcher.OnIteration = func(r Result) {
			e.OnInfo(SearchInfo{
				Depth:    r.Depth,
				Score:    r.Score,
				Nodes:    r.Nodes,
				Time:     time.Since(startTime),
				PV:       e.searcher.PrincipalVariation(g, r.Move, r.Depth),
				HashFull: e.tt.HashFull(),
			})
		}
	}
	return e.searcher.Search(ctx, g, depth)
}

// SearchDepth searches to exactly depth plies with no deadline.
func (e *Engine) SearchDepth(g *board.Game, depth int) (board.Move, int) {
	r := e.Search(context.Background(), g, depth)
	return r.Move, r.Score
}

// SearchDeadline searches until d has elapsed and returns the best move of
// the last completed depth. ok is false if not even depth 1 completed or the
// position has no legal moves.
func (e *Engine) SearchDeadline(g *board.Game, d time.Duration) (move board.Move, ok bool) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var result Result
	grp, gctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		defer cancel()
		result = e.Search(gctx, g, 0)
		return nil
	})
	grp.Go(func() error {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
			cancel()
		case <-gctx.Done():
		}
		return nil
	})
	_ = grp.Wait()

	return result.Move, result.Depth > 0
}

// Nodes returns the node count of the last search.
func (e *Engine) Nodes() uint64 {
	return e.searcher.Nodes()
}

// Clear clears the transposition table.
func (e *Engine) Clear() {
	e.tt.Clear()
}

// ScoreToString converts a score to a human-readable string.
func ScoreToString(score int) string {
	if score > MateScore-MaxPly {
		mateIn := (MateScore - score + 1) / 2
		return "Mate in " + strconv.Itoa(mateIn)
	}
	if score < -MateScore+MaxPly {
		mateIn := (MateScore + score + 1) / 2
		return "Mated in " + strconv.Itoa(mateIn)
	}

	// Convert centipawns to pawns
	sign := ""
	if score < 0 {
		sign = "-"
		score = -score
	}
	return sign + strconv.Itoa(score/100) + "." + strconv.Itoa(score%100/10) + strconv.Itoa(score%10)
}
