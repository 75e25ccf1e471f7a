package board

import (
	"fmt"
	"strings"
)

// SAN renders a legal move in Standard Algebraic Notation. The move is
// played and taken back to decide the check suffix.
func (g *Game) SAN(m Move) string {
	if m == NoMove {
		return "-"
	}

	from, to := m.From(), m.To()
	piece := g.Set.PieceAt(from)
	if piece == NoPiece {
		return m.String()
	}

	var sb strings.Builder

	switch {
	case m.Kind() == CastleKingSide:
		sb.WriteString("O-O")
	case m.Kind() == CastleQueenSide:
		sb.WriteString("O-O-O")
	default:
		if piece != Pawn {
			sb.WriteByte(piece.Char(White))
			sb.WriteString(disambiguation(g, m, piece))
		}
		if m.IsCapture(g) {
			if piece == Pawn {
				sb.WriteByte('a' + byte(from.File()))
			}
			sb.WriteByte('x')
		}
		sb.WriteString(to.String())
		if m.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteByte(m.Promotion().Char(White))
		}
	}

	g.DoMove(m)
	if g.InCheck() {
		if g.HasLegalMoves() {
			sb.WriteByte('+')
		} else {
			sb.WriteByte('#')
		}
	}
	g.Unmove()

	return sb.String()
}

// disambiguation returns the file, rank or square needed to tell m apart
// from other legal moves of the same piece kind to the same square.
func disambiguation(g *Game, m Move, piece Piece) string {
	from, to := m.From(), m.To()

	var ml MoveList
	AllMoves(g, &ml)

	var others []Square
	for _, other := range ml.Slice() {
		if other.To() == to && other.From() != from && g.Set.PieceAt(other.From()) == piece {
			others = append(others, other.From())
		}
	}
	if len(others) == 0 {
		return ""
	}

	sameFile, sameRank := false, false
	for _, sq := range others {
		sameFile = sameFile || sq.File() == from.File()
		sameRank = sameRank || sq.Rank() == from.Rank()
	}

	switch {
	case !sameFile:
		return string(rune('a' + from.File()))
	case !sameRank:
		return string(rune('1' + from.Rank()))
	default:
		return from.String()
	}
}

// ParseSAN resolves SAN text against the legal moves of g.
func ParseSAN(g *Game, s string) (Move, error) {
	text := strings.TrimRight(strings.TrimSpace(s), "+#!?")

	var ml MoveList
	AllMoves(g, &ml)

	switch text {
	case "O-O", "0-0":
		return findMove(&ml, s, func(m Move) bool { return m.Kind() == CastleKingSide })
	case "O-O-O", "0-0-0":
		return findMove(&ml, s, func(m Move) bool { return m.Kind() == CastleQueenSide })
	}

	promo := NoPiece
	if i := strings.IndexByte(text, '='); i >= 0 && i+1 < len(text) {
		_, p, ok := PieceFromChar(text[i+1])
		if !ok {
			return NoMove, fmt.Errorf("invalid promotion in %q", s)
		}
		promo = p
		text = text[:i]
	}

	capture := strings.Contains(text, "x")
	text = strings.ReplaceAll(text, "x", "")

	piece := Pawn
	if len(text) > 0 && text[0] >= 'A' && text[0] <= 'Z' {
		_, p, ok := PieceFromChar(text[0])
		if !ok {
			return NoMove, fmt.Errorf("invalid piece in %q", s)
		}
		piece = p
		text = text[1:]
	}

	if len(text) < 2 {
		return NoMove, fmt.Errorf("invalid SAN: %q", s)
	}
	to, err := ParseSquare(text[len(text)-2:])
	if err != nil {
		return NoMove, err
	}

	fromFile, fromRank := -1, -1
	for _, c := range text[:len(text)-2] {
		switch {
		case c >= 'a' && c <= 'h':
			fromFile = int(c - 'a')
		case c >= '1' && c <= '8':
			fromRank = int(c - '1')
		}
	}

	return findMove(&ml, s, func(m Move) bool {
		from := m.From()
		return m.To() == to &&
			g.Set.PieceAt(from) == piece &&
			m.Promotion() == promo &&
			(!capture || m.IsCapture(g)) &&
			(fromFile < 0 || from.File() == fromFile) &&
			(fromRank < 0 || from.Rank() == fromRank)
	})
}

func findMove(ml *MoveList, text string, match func(Move) bool) (Move, error) {
	for _, m := range ml.Slice() {
		if match(m) {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("%w: %s", ErrIllegalMove, text)
}

// MovesToSAN renders a line of moves starting from g's position.
func MovesToSAN(g *Game, moves []Move) []string {
	result := make([]string, 0, len(moves))
	played := 0
	for _, m := range moves {
		if !Legal(g, m) {
			break
		}
		result = append(result, g.SAN(m))
		g.DoMove(m)
		played++
	}
	for ; played > 0; played-- {
		g.Unmove()
	}
	return result
}
