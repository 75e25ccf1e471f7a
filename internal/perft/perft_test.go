package perft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorenzo-stoakes/weak-sub000/internal/board"
)

// maxTestNodes keeps the reference suite fast; cmd/perft -suite runs the
// deeper rows.
const maxTestNodes = 200000

func TestReferenceStats(t *testing.T) {
	for _, p := range Positions {
		t.Run(p.Name, func(t *testing.T) {
			g, err := board.ParseFen(p.FEN)
			require.NoError(t, err)

			for i, want := range p.Stats {
				if want.Nodes > maxTestNodes {
					break
				}
				depth := i + 1
				assert.Equal(t, want, Run(g, depth), "depth %d", depth)
				assert.Equal(t, p.FEN, g.Fen(), "position not restored")
			}
		})
	}
}

func TestCountMatchesRun(t *testing.T) {
	for _, p := range Positions {
		g := board.MustParseFen(p.FEN)
		for depth := 0; depth <= 2; depth++ {
			assert.Equal(t, Run(g, depth).Nodes, Count(g, depth), "%s depth %d", p.Name, depth)
		}
	}
}

func TestCountDepthZero(t *testing.T) {
	assert.Equal(t, uint64(1), Count(board.NewGame(), 0))
	assert.Equal(t, Stats{Nodes: 1}, Run(board.NewGame(), 0))
}

func TestDivide(t *testing.T) {
	g := board.MustParseFen(Positions[1].FEN)
	entries := Divide(g, 2)
	require.Len(t, entries, 48)

	var total uint64
	for _, e := range entries {
		total += e.Nodes
	}
	assert.Equal(t, uint64(2039), total)
	assert.Equal(t, Positions[1].FEN, g.Fen())

	out := FormatDivide(entries)
	assert.Contains(t, out, "Nodes searched: 2039")
	assert.Contains(t, out, "e1g1: ")

	assert.Nil(t, Divide(g, 0))
}

func TestStatsAdd(t *testing.T) {
	s := Stats{Nodes: 1, Captures: 2}
	s.Add(Stats{Nodes: 3, Checks: 4, Checkmates: 1})
	assert.Equal(t, Stats{Nodes: 4, Captures: 2, Checks: 4, Checkmates: 1}, s)
	assert.Equal(t, "nodes 4 captures 2 ep 0 castles 0 promotions 0 checks 4 checkmates 1", s.String())
}
