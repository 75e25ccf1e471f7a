package board

// Zobrist hash keys for position hashing.
// Uses PRNG with fixed seed for reproducibility.
var (
	zobristPiece      [2][PieceCount][64]uint64 // [Side][Piece][Square], NoPiece row unused
	zobristEnPassant  [8]uint64                 // One per file
	zobristCastling   [4]uint64                 // One per individual right
	zobristSideToMove uint64                    // XOR when black to move
)

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234)

	for s := White; s <= Black; s++ {
		for p := Pawn; p <= King; p++ {
			for sq := A1; sq <= H8; sq++ {
				zobristPiece[s][p][sq] = rng.next()
			}
		}
	}

	for file := 0; file < 8; file++ {
		zobristEnPassant[file] = rng.next()
	}

	for i := range zobristCastling {
		zobristCastling[i] = rng.next()
	}

	zobristSideToMove = rng.next()
}

// castlingKey folds every held right of cr into one key.
func castlingKey(cr CastlingRights) uint64 {
	var key uint64
	for i := 0; i < 4; i++ {
		if cr&(1<<i) != 0 {
			key ^= zobristCastling[i]
		}
	}
	return key
}

// ComputeHash rebuilds the Zobrist hash of g from scratch. Play never calls
// this; it is used at load time and by the consistency checker.
func ComputeHash(g *Game) uint64 {
	var hash uint64

	for s := White; s <= Black; s++ {
		for p := Pawn; p <= King; p++ {
			bb := g.Set.Sets[s][p]
			for bb != 0 {
				hash ^= zobristPiece[s][p][PopForward(&bb)]
			}
		}
	}

	if g.WhosTurn == Black {
		hash ^= zobristSideToMove
	}

	hash ^= castlingKey(g.Castling)

	if g.EnPassantSquare != EmptySquare {
		hash ^= zobristEnPassant[g.EnPassantSquare.File()]
	}

	return hash
}
