//go:build weakdebug

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lorenzo-stoakes/weak-sub000/internal/board"
)

// With -tags weakdebug every DoMove and Unmove checks the whole board state,
// so a search that returns has kept the piece lists consistent throughout.
func TestSearchConsistencyChecked(t *testing.T) {
	fens := []string{
		kiwipete,
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	for _, fen := range fens {
		g := board.MustParseFen(fen)
		move, _ := newTestEngine().SearchDepth(g, 3)
		assert.True(t, board.Legal(g, move), fen)
		assert.Equal(t, fen, g.Fen())
		assert.Empty(t, board.CheckConsistency(g))
	}
}
