package board

import (
	"fmt"
	"strings"
)

// CheckConsistency cross-checks every incrementally maintained field of g
// against a recomputation from the square array and returns one message per
// mismatch. An empty result means the state is consistent. It is far too
// slow for play and exists for tests and debug builds.
func CheckConsistency(g *Game) []string {
	var errs []string
	report := func(format string, args ...any) {
		errs = append(errs, fmt.Sprintf(format, args...))
	}
	cs := &g.Set

	var sets [2][PieceCount]Bitboard
	var pieceOcc [PieceCount]Bitboard
	for sq := A1; sq <= H8; sq++ {
		p := cs.Squares[sq]
		if p == NoPiece {
			continue
		}
		s := cs.SideAt(sq)
		sets[s][p] |= SquareBB(sq)
		sets[s][NoPiece] |= SquareBB(sq)
		pieceOcc[p] |= SquareBB(sq)
	}

	for s := White; s <= Black; s++ {
		for p := NoPiece; p <= King; p++ {
			if sets[s][p] != cs.Sets[s][p] {
				report("%s %s bitboard %016x, squares say %016x", s, p, uint64(cs.Sets[s][p]), uint64(sets[s][p]))
			}
		}
	}
	if cs.Sets[White][NoPiece]&cs.Sets[Black][NoPiece] != 0 {
		report("sides overlap on %016x", uint64(cs.Sets[White][NoPiece]&cs.Sets[Black][NoPiece]))
	}
	for p := Pawn; p <= King; p++ {
		if pieceOcc[p] != cs.PieceOcc[p] {
			report("%s occupancy %016x, squares say %016x", p, uint64(cs.PieceOcc[p]), uint64(pieceOcc[p]))
		}
	}
	occ := sets[White][NoPiece] | sets[Black][NoPiece]
	if cs.Occupancy != occ {
		report("occupancy %016x, squares say %016x", uint64(cs.Occupancy), uint64(occ))
	}
	if cs.EmptySquares != ^occ {
		report("empty squares %016x, squares say %016x", uint64(cs.EmptySquares), uint64(^occ))
	}

	for s := White; s <= Black; s++ {
		for p := Pawn; p <= King; p++ {
			n := cs.PieceCounts[s][p]
			if want := PopCount(sets[s][p]); n != want {
				report("%s %s count %d, squares say %d", s, p, n, want)
				continue
			}
			for i, sq := range cs.Positions(s, p) {
				if cs.Squares[sq] != p || cs.SideAt(sq) != s {
					report("%s %s list slot %d holds %s", s, p, i, sq)
				}
				if cs.PieceIndex[sq] != i {
					report("%s %s on %s indexed %d, listed at %d", s, p, sq, cs.PieceIndex[sq], i)
				}
			}
		}
	}

	if h := ComputeHash(g); h != g.Hash {
		report("hash %016x, recomputed %016x", g.Hash, h)
	}

	if src := fullCheckSources(cs, g.WhosTurn); src != g.CheckStats.CheckSources {
		report("check sources %016x, recomputed %016x", uint64(g.CheckStats.CheckSources), uint64(src))
	}
	want := newCheckStats(cs, g.WhosTurn)
	want.CheckSources = g.CheckStats.CheckSources
	if want != g.CheckStats {
		report("check stats %+v, recomputed %+v", g.CheckStats, want)
	}

	if ep := g.EnPassantSquare; ep != EmptySquare {
		wantRank := 5
		if g.WhosTurn == Black {
			wantRank = 2
		}
		if ep.Rank() != wantRank {
			report("en passant square %s on wrong rank", ep)
		}
	}

	return errs
}

func mustBeConsistent(g *Game, context string) {
	if errs := CheckConsistency(g); len(errs) > 0 {
		panic(fmt.Sprintf("board: inconsistent after %s:\n%s\n%s", context, strings.Join(errs, "\n"), g))
	}
}
