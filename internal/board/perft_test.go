package board

import "testing"

// perft counts the number of leaf nodes at the given depth.
// This is the standard way to verify move generation correctness.
func perft(g *Game, arena *MoveArena, depth int) int64 {
	if depth == 0 {
		return 1
	}

	moves := arena.At(depth)
	AllMoves(g, moves)
	if depth == 1 {
		return int64(moves.Len())
	}

	var nodes int64
	for _, m := range moves.Slice() {
		g.DoMove(m)
		nodes += perft(g, arena, depth-1)
		g.Unmove()
	}
	return nodes
}

func runPerftTable(t *testing.T, fen string, tests []struct {
	depth    int
	expected int64
}) {
	t.Helper()
	g, err := ParseFen(fen)
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}
	arena := NewMoveArena(8)

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := perft(g, arena, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
			if g.Fen() != MustParseFen(fen).Fen() {
				t.Errorf("position not restored: %s", g.Fen())
			}
		})
	}
}

// TestPerftStartingPosition tests move generation from the starting position.
func TestPerftStartingPosition(t *testing.T) {
	runPerftTable(t, StartFEN, []struct {
		depth    int
		expected int64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
		// Depth 5 takes longer, enable for thorough testing:
		// {5, 4865609},
	})
}

// TestPerftKiwipete tests the famous Kiwipete position with many edge cases.
func TestPerftKiwipete(t *testing.T) {
	runPerftTable(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq -", []struct {
		depth    int
		expected int64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
		// {4, 4085603}, // Takes ~1s, enable for thorough testing
	})
}

// TestPerftPosition3 tests en passant edge cases.
func TestPerftPosition3(t *testing.T) {
	runPerftTable(t, "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -", []struct {
		depth    int
		expected int64
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
		{4, 43238},
		// {5, 674624}, // Enable for thorough testing
	})
}

// TestPerftPosition4 covers promotions, castling out of check and pins.
func TestPerftPosition4(t *testing.T) {
	runPerftTable(t, "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", []struct {
		depth    int
		expected int64
	}{
		{1, 6},
		{2, 264},
		{3, 9467},
	})
}

// TestPerftPosition5 is a discovered-check and promotion-capture minefield.
func TestPerftPosition5(t *testing.T) {
	runPerftTable(t, "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", []struct {
		depth    int
		expected int64
	}{
		{1, 44},
		{2, 1486},
		{3, 62379},
	})
}

// TestPerftEnPassantPin tests the specific en passant horizontal pin edge case.
// Black pawn on e4 can capture en passant d3, but this would expose the black king
// on a4 to the white rook on h4.
func TestPerftEnPassantPin(t *testing.T) {
	g, err := ParseFen("8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	// The en passant capture should be illegal
	var moves MoveList
	AllMoves(g, &moves)
	for _, m := range moves.Slice() {
		if m.Kind() == EnPassant {
			t.Errorf("En passant move %v should be illegal (horizontal pin)", m)
		}
	}

	// Depth 1: Ka3, Ka5, Kb3, Kb4, Kb5, e3 = 6 moves
	// Depth 2: After e4e3 (14), after king moves (16 each x5) = 14 + 80 = 94
	runPerftTable(t, "8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1", []struct {
		depth    int
		expected int64
	}{
		{1, 6},
		{2, 94},
	})
}
