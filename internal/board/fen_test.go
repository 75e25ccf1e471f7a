package board

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFenRoundTrip(t *testing.T) {
	for _, fen := range []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1",
		"rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2",
	} {
		g, err := ParseFen(fen)
		require.NoError(t, err)
		assert.Equal(t, fen, g.Fen())
		assert.Empty(t, CheckConsistency(g))
	}
}

func TestParseFenOptionalCounters(t *testing.T) {
	g, err := ParseFen("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -")
	require.NoError(t, err)
	assert.Equal(t, 0, g.HalfMoveClock)
	assert.Equal(t, 1, g.FullMoveNumber)
}

func TestParseFenErrors(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want error
	}{
		{"too short", "8/8/8/8 w -", ErrFenFields},
		{"too long", StartFEN + " extra", ErrFenFields},
		{"seven ranks", "8/8/8/8/8/8/8 w - - 0 1", ErrFenRank},
		{"long rank", "9/8/8/8/8/8/8/8 w - - 0 1", ErrFenPiece},
		{"overfull rank", "rnbqkbnrp/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", ErrFenRank},
		{"short rank", "rnbqkbn/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", ErrFenRank},
		{"bad piece", "rnbqkbnr/ppppxppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", ErrFenPiece},
		{"pawn on back rank", "rnbqkbnP/pppppppp/8/8/8/8/PPPPPPP1/RNBQKBNR w KQkq - 0 1", ErrFenPiece},
		{"bad side", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", ErrFenSide},
		{"bad castling", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkx - 0 1", ErrFenCastling},
		{"repeated castling", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KK - 0 1", ErrFenCastling},
		{"en passant off board", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq i6 0 1", ErrFenEnPassant},
		{"en passant wrong rank", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e3 0 1", ErrFenEnPassant},
		{"en passant swapped", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq 6e 0 1", ErrFenEnPassant},
		{"no white king", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQ1BNR w kq - 0 1", ErrFenKings},
		{"two black kings", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNk w - - 0 1", ErrFenKings},
		{"negative clock", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1", ErrFenCounter},
		{"zero move number", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0", ErrFenCounter},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, err := ParseFen(tc.fen)
			require.Error(t, err)
			assert.Nil(t, g)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)

			var fenErr *FenError
			require.True(t, errors.As(err, &fenErr))
			assert.Equal(t, tc.fen, fenErr.Fen)
		})
	}
}

func TestFenTracksPlay(t *testing.T) {
	g := NewGame()
	for _, s := range []string{"e2e4", "c7c5", "g1f3"} {
		m, err := ParseMove(g, s)
		require.NoError(t, err)
		g.DoMove(m)
	}
	assert.Equal(t, "rnbqkbnr/pp1ppppp/8/2p5/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2", g.Fen())
}
