package uci

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorenzo-stoakes/weak-sub000/internal/board"
	"github.com/lorenzo-stoakes/weak-sub000/internal/engine"
	"github.com/lorenzo-stoakes/weak-sub000/internal/storage"
)

func run(t *testing.T, store *storage.PerftStore, script ...string) (*UCI, string) {
	t.Helper()
	opts := engine.NewOptions()
	opts.Hash = 4
	opts.MoveTime = 50 * time.Millisecond

	var out bytes.Buffer
	u := New(engine.NewEngine(opts, nil), store, &out)
	require.NoError(t, u.Run(strings.NewReader(strings.Join(script, "\n"))))
	return u, out.String()
}

func TestHandshake(t *testing.T) {
	_, out := run(t, nil, "uci", "isready")
	assert.Contains(t, out, "id name weak")
	assert.Contains(t, out, "option name Hash type spin default 4")
	assert.Contains(t, out, "uciok\nreadyok\n")
}

func TestPosition(t *testing.T) {
	tests := []struct {
		name    string
		command string
		want    string
	}{
		{"startpos", "position startpos", board.StartFEN},
		{"startpos moves", "position startpos moves e2e4 c7c5 g1f3",
			"rnbqkbnr/pp1ppppp/8/2p5/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2"},
		{"san moves", "position startpos moves e4 c5 Nf3",
			"rnbqkbnr/pp1ppppp/8/2p5/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2"},
		{"fen", "position fen 8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1", "8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1"},
		{"fen moves", "position fen 8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1 moves a4b3",
			"8/8/8/8/3Pp2R/1k6/8/4K3 w - - 1 2"},
		{"bad fen keeps position", "position fen 8/8/8 w - - 0 1", board.StartFEN},
		{"illegal move keeps position", "position startpos moves e2e5", board.StartFEN},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u, _ := run(t, nil, tc.command)
			assert.Equal(t, tc.want, u.position.Fen())
		})
	}
}

func TestPositionErrorsReported(t *testing.T) {
	_, out := run(t, nil, "position startpos moves e2e5", "position fen x", "position nowhere")
	assert.Equal(t, 3, strings.Count(out, "info string"))
	assert.Contains(t, out, "illegal move")
}

func TestGoDepth(t *testing.T) {
	_, out := run(t, nil, "position fen 7Q/8/8/8/8/k1K5/8/8 w - - 0 1", "go depth 2")
	assert.Contains(t, out, "info depth 1 score mate 1")
	assert.True(t, strings.HasSuffix(out, "bestmove h8a8\n"), out)
}

func TestGoMoveTime(t *testing.T) {
	u, out := run(t, nil, "position startpos", "go movetime 30")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	last := lines[len(lines)-1]
	require.True(t, strings.HasPrefix(last, "bestmove "), out)

	m, err := board.ParseMove(u.position, strings.TrimPrefix(last, "bestmove "))
	require.NoError(t, err)
	assert.True(t, board.Legal(u.position, m))
}

func TestGoWithoutMoves(t *testing.T) {
	_, out := run(t, nil, "position fen R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1", "go wtime 1000 btime 1000")
	assert.Equal(t, "bestmove 0000\n", out)
}

func TestParseGoOptions(t *testing.T) {
	opts := parseGoOptions(strings.Fields("wtime 1000 btime 2000 winc 10 binc 20 movestogo 5 depth 7 infinite"))
	assert.Equal(t, GoOptions{
		Depth:     7,
		Infinite:  true,
		WTime:     time.Second,
		BTime:     2 * time.Second,
		WInc:      10 * time.Millisecond,
		BInc:      20 * time.Millisecond,
		MovesToGo: 5,
	}, opts)
}

func TestPerftAndDivide(t *testing.T) {
	_, out := run(t, nil, "perft 3", "divide 1")
	assert.Contains(t, out, "nodes 8902 captures 34 ep 0 castles 0 promotions 0 checks 12 checkmates 0")
	assert.Contains(t, out, "Nodes: 8902")
	assert.Contains(t, out, "g1f3: 1")
	assert.Contains(t, out, "Nodes searched: 20")
}

func TestPerftUsesStore(t *testing.T) {
	store, err := storage.OpenInMemory()
	require.NoError(t, err)
	defer store.Close()

	_, out := run(t, store, "perft 2", "perft 2")
	assert.Equal(t, 2, strings.Count(out, "Nodes: 400"))
	assert.Equal(t, 1, strings.Count(out, "Cached: true"))
}

func TestDebugCommands(t *testing.T) {
	_, out := run(t, nil, "position startpos moves e2e4", "d", "moves", "bogus")
	assert.Contains(t, out, "Fen: rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	assert.Contains(t, out, "Nf6")
	assert.Contains(t, out, "info string unknown command: bogus")
}

func TestSetOptionHash(t *testing.T) {
	u, out := run(t, nil, "setoption name Hash value 8", "setoption name Hash value x", "setoption name Nope value 1")
	assert.Equal(t, 8, u.engine.Options.Hash)
	assert.Contains(t, out, "invalid hash size")
	assert.Contains(t, out, "unknown option: Nope")
}

func TestQuitStopsReading(t *testing.T) {
	_, out := run(t, nil, "isready", "quit", "isready")
	assert.Equal(t, "readyok\n", out)
}
