package board

import (
	"testing"
)

func TestCheckmate(t *testing.T) {
	// Back rank mate: black king on h8 boxed in by its own pawns.
	g, err := ParseFen("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	t.Log("Checkmate position:")
	t.Log(g)

	if !g.InCheck() {
		t.Error("Expected black to be in check")
	}
	if g.CheckStats.CheckSources != SquareBB(A8) {
		t.Errorf("Check sources = %016x, want a8", uint64(g.CheckStats.CheckSources))
	}

	var blackMoves MoveList
	AllMoves(g, &blackMoves)
	for _, m := range blackMoves.Slice() {
		t.Log("  Move:", m)
	}

	if !g.IsCheckmate() {
		t.Error("Expected checkmate but got false")
	}
	if g.IsStalemate() {
		t.Error("Checkmate reported as stalemate")
	}
}

func TestNotCheckmate(t *testing.T) {
	// Black king on h8 can take the unprotected rook on g8.
	g, err := ParseFen("6Rk/8/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	if g.IsCheckmate() {
		t.Error("Expected NOT checkmate but got true")
	}

	var blackMoves MoveList
	AllMoves(g, &blackMoves)
	if !blackMoves.Contains(NewMove(H8, G8, Normal)) {
		t.Error("Expected Kxg8 to be legal")
	}
}

func TestStalemate(t *testing.T) {
	g, err := ParseFen("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	if !g.IsStalemate() {
		t.Error("Expected stalemate")
	}
	if g.IsCheckmate() {
		t.Error("Stalemate reported as checkmate")
	}
}

func TestDoubleCheckOnlyKingMoves(t *testing.T) {
	// Rook e1 and bishop b5 both check the king on e8. The knight on c3
	// could take b5 or block on e2, but only against one checker.
	g, err := ParseFen("4k3/8/8/1B6/8/2n5/8/4R1K1 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}
	if PopCount(g.CheckStats.CheckSources) != 2 {
		t.Fatalf("Expected double check, sources %016x", uint64(g.CheckStats.CheckSources))
	}

	var moves MoveList
	AllMoves(g, &moves)
	for _, m := range moves.Slice() {
		if m.From() != E8 {
			t.Errorf("Non-king move %v in double check", m)
		}
	}
	if moves.Len() == 0 {
		t.Error("Expected king moves")
	}
}
