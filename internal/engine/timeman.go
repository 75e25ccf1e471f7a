package engine

import (
	"time"

	"github.com/lorenzo-stoakes/weak-sub000/internal/board"
)

// Limits holds the clock parameters of a "go" command.
type Limits struct {
	Time      [2]time.Duration // Remaining time per side
	Inc       [2]time.Duration // Increment per move per side
	MovesToGo int              // Moves until the next time control (0 = sudden death)
	MoveTime  time.Duration    // Fixed time per move, overrides the clock
	Depth     int              // Maximum search depth
}

const (
	defaultMovesToGo = 30
	minBudget        = 10 * time.Millisecond
)

// Budget returns the deadline to hand to SearchDeadline for side, or zero when
// the search is bounded by depth only.
func (l Limits) Budget(side board.Side) time.Duration {
	if l.MoveTime > 0 {
		return l.MoveTime
	}
	timeLeft := l.Time[side]
	if timeLeft <= 0 {
		return 0
	}

	mtg := l.MovesToGo
	if mtg <= 0 {
		mtg = defaultMovesToGo
	}
	budget := timeLeft/time.Duration(mtg) + l.Inc[side]*9/10

	// Never use more than 80% of the remaining time.
	if limit := timeLeft * 8 / 10; budget > limit {
		budget = limit
	}
	if budget < minBudget {
		budget = minBudget
	}
	return budget
}
