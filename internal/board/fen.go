package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FEN parse failures. A *FenError wraps exactly one of these.
var (
	ErrFenFields    = errors.New("wrong number of fields")
	ErrFenPiece     = errors.New("invalid piece placement")
	ErrFenRank      = errors.New("invalid rank")
	ErrFenSide      = errors.New("invalid side to move")
	ErrFenCastling  = errors.New("invalid castling rights")
	ErrFenEnPassant = errors.New("invalid en passant square")
	ErrFenKings     = errors.New("each side needs exactly one king")
	ErrFenCounter   = errors.New("invalid move counter")
)

// ErrIllegalMove is returned when move text does not name a legal move.
var ErrIllegalMove = errors.New("illegal move")

// FenError reports why a FEN string was rejected.
type FenError struct {
	Fen    string
	Field  string
	Detail string
	Err    error
}

func (e *FenError) Error() string {
	msg := fmt.Sprintf("invalid FEN %q: %s: %v", e.Fen, e.Field, e.Err)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *FenError) Unwrap() error {
	return e.Err
}

// ParseFen parses a FEN string into a Game. The half-move clock and full
// move number are optional.
func ParseFen(fen string) (*Game, error) {
	fail := func(field string, err error, detail string) (*Game, error) {
		return nil, &FenError{Fen: fen, Field: field, Detail: detail, Err: err}
	}

	parts := strings.Fields(fen)
	if len(parts) < 4 || len(parts) > 6 {
		return fail("fields", ErrFenFields, fmt.Sprintf("need 4 to 6, got %d", len(parts)))
	}

	g := NewEmptyGame()

	if detail, err := parsePiecePlacement(&g.Set, parts[0]); err != nil {
		return fail("placement", err, detail)
	}

	switch parts[1] {
	case "w":
		g.WhosTurn = White
	case "b":
		g.WhosTurn = Black
	default:
		return fail("side", ErrFenSide, parts[1])
	}

	cr, err := parseCastlingRights(parts[2])
	if err != nil {
		return fail("castling", err, parts[2])
	}
	g.Castling = cr

	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		// The target sits behind a pawn that has just double-pushed.
		wantRank := 5
		if g.WhosTurn == Black {
			wantRank = 2
		}
		if err != nil || sq.Rank() != wantRank {
			return fail("en passant", ErrFenEnPassant, parts[3])
		}
		g.EnPassantSquare = sq
	}

	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil || hmc < 0 {
			return fail("half-move clock", ErrFenCounter, parts[4])
		}
		g.HalfMoveClock = hmc
	}

	if len(parts) > 5 {
		fmn, err := strconv.Atoi(parts[5])
		if err != nil || fmn < 1 {
			return fail("full-move number", ErrFenCounter, parts[5])
		}
		g.FullMoveNumber = fmn
	}

	if g.Set.PieceCounts[White][King] != 1 || g.Set.PieceCounts[Black][King] != 1 {
		return fail("kings", ErrFenKings, "")
	}

	g.refresh()
	return g, nil
}

// MustParseFen is ParseFen for positions known to be valid.
func MustParseFen(fen string) *Game {
	g, err := ParseFen(fen)
	if err != nil {
		panic(err)
	}
	return g
}

// parsePiecePlacement fills cs from the first FEN field. On failure it
// returns a detail message and the sentinel error.
func parsePiecePlacement(cs *ChessSet, placement string) (string, error) {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Sprintf("need 8 ranks, got %d", len(ranks)), ErrFenRank
	}

	for i, rankStr := range ranks {
		rank := 7 - i // FEN starts from rank 8
		file := 0

		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if file > 7 {
				return fmt.Sprintf("too many squares in rank %d", rank+1), ErrFenRank
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}

			s, p, ok := PieceFromChar(c)
			if !ok {
				return fmt.Sprintf("character %q", c), ErrFenPiece
			}
			if p == Pawn && (rank == 0 || rank == 7) {
				return fmt.Sprintf("pawn on rank %d", rank+1), ErrFenPiece
			}
			if cs.PieceCounts[s][p] == MaxPiecesPerKind {
				return fmt.Sprintf("too many %s %ss", s, p), ErrFenPiece
			}
			cs.PlacePiece(s, p, NewSquare(file, rank))
			file++
		}

		if file != 8 {
			return fmt.Sprintf("rank %d has %d squares", rank+1, file), ErrFenRank
		}
	}

	return "", nil
}

func parseCastlingRights(castling string) (CastlingRights, error) {
	if castling == "-" {
		return NoCastling, nil
	}

	var cr CastlingRights
	for _, c := range castling {
		var r CastlingRights
		switch c {
		case 'K':
			r = WhiteKingSideCastle
		case 'Q':
			r = WhiteQueenSideCastle
		case 'k':
			r = BlackKingSideCastle
		case 'q':
			r = BlackQueenSideCastle
		default:
			return NoCastling, ErrFenCastling
		}
		if cr&r != 0 {
			return NoCastling, ErrFenCastling
		}
		cr |= r
	}

	return cr, nil
}

// Fen returns the FEN representation of the position.
func (g *Game) Fen() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			s, p, ok := g.PieceAt(NewSquare(file, rank))
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(p.Char(s))
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if g.WhosTurn == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(g.Castling.String())

	sb.WriteByte(' ')
	sb.WriteString(g.EnPassantSquare.String())

	fmt.Fprintf(&sb, " %d %d", g.HalfMoveClock, g.FullMoveNumber)

	return sb.String()
}
