package board

// CastlingRights represents the available castling options as four
// independent bits, one per side and wing.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(s Side, kingSide bool) bool {
	return cr&castleRight(s, kingSide) != 0
}

func castleRight(s Side, kingSide bool) CastlingRights {
	r := WhiteQueenSideCastle
	if kingSide {
		r = WhiteKingSideCastle
	}
	if s == Black {
		r <<= 2
	}
	return r
}

// castleGeometry holds the fixed squares of one castling move.
type castleGeometry struct {
	kingFrom, kingTo Square
	rookFrom, rookTo Square
	empty            Bitboard // Must be vacant
	transit          Bitboard // Must not be attacked, king squares included
}

// castles is indexed by [side][0 = king side, 1 = queen side].
var castles = [2][2]castleGeometry{
	White: {
		{kingFrom: E1, kingTo: G1, rookFrom: H1, rookTo: F1,
			empty: SquareBB(F1) | SquareBB(G1), transit: SquareBB(E1) | SquareBB(F1) | SquareBB(G1)},
		{kingFrom: E1, kingTo: C1, rookFrom: A1, rookTo: D1,
			empty: SquareBB(B1) | SquareBB(C1) | SquareBB(D1), transit: SquareBB(E1) | SquareBB(D1) | SquareBB(C1)},
	},
	Black: {
		{kingFrom: E8, kingTo: G8, rookFrom: H8, rookTo: F8,
			empty: SquareBB(F8) | SquareBB(G8), transit: SquareBB(E8) | SquareBB(F8) | SquareBB(G8)},
		{kingFrom: E8, kingTo: C8, rookFrom: A8, rookTo: D8,
			empty: SquareBB(B8) | SquareBB(C8) | SquareBB(D8), transit: SquareBB(E8) | SquareBB(D8) | SquareBB(C8)},
	},
}

func castleFor(s Side, kind MoveKind) *castleGeometry {
	if kind == CastleKingSide {
		return &castles[s][0]
	}
	return &castles[s][1]
}

// castlingLoss maps a square to the rights that vanish when a move touches
// it, either by leaving or by landing on it.
var castlingLoss = func() (loss [64]CastlingRights) {
	loss[E1] = WhiteKingSideCastle | WhiteQueenSideCastle
	loss[H1] = WhiteKingSideCastle
	loss[A1] = WhiteQueenSideCastle
	loss[E8] = BlackKingSideCastle | BlackQueenSideCastle
	loss[H8] = BlackKingSideCastle
	loss[A8] = BlackQueenSideCastle
	return loss
}()
