package board

import (
	"math/bits"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	InitEngine()
	m.Run()
}

func TestMagicMatchesRayTracing(t *testing.T) {
	for _, s := range []*slider{&bishopSlider, &rookSlider} {
		t.Run(s.name, func(t *testing.T) {
			for sq := A1; sq <= H8; sq++ {
				mask := s.magics[sq].Mask
				var subset Bitboard
				for {
					want := rayAttacks(sq, subset, s.directions)
					got := slidingAttacks(s, sq, subset)
					if got != want {
						t.Fatalf("%s on %s with occupancy %#x: got\n%s\nwant\n%s", s.name, sq, uint64(subset), got, want)
					}
					// Squares outside the mask must not change the lookup.
					if noisy := slidingAttacks(s, sq, subset|^mask); noisy != want {
						t.Fatalf("%s on %s: lookup depends on irrelevant squares", s.name, sq)
					}
					subset = (subset - mask) & mask
					if subset == 0 {
						break
					}
				}
			}
		})
	}
}

func TestQueenIsUnion(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		sq := Square(rng.Intn(64))
		occ := Bitboard(rng.Uint64() & rng.Uint64())
		assert.Equal(t, BishopAttacks(sq, occ)|RookAttacks(sq, occ), QueenAttacks(sq, occ))
	}
}

func TestLeaperAttacks(t *testing.T) {
	tests := []struct {
		name string
		got  Bitboard
		want []Square
	}{
		{"knight a1", KnightAttacks(A1), []Square{B3, C2}},
		{"knight e4", KnightAttacks(E4), []Square{D2, F2, C3, G3, C5, G5, D6, F6}},
		{"king h8", KingAttacks(H8), []Square{G8, G7, H7}},
		{"white pawn a2", PawnAttacks(A2, White), []Square{B3}},
		{"black pawn e5", PawnAttacks(E5, Black), []Square{D4, F4}},
		{"white pawn h8", PawnAttacks(H8, White), nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var want Bitboard
			for _, sq := range tc.want {
				want |= SquareBB(sq)
			}
			assert.Equal(t, want, tc.got)
		})
	}
}

func TestBetweenAndLine(t *testing.T) {
	assert.Equal(t, SquareBB(B2)|SquareBB(C3), Between(A1, D4))
	assert.Equal(t, Between(A1, D4), Between(D4, A1))
	assert.Equal(t, EmptyBitboard, Between(A1, B3))
	assert.Equal(t, EmptyBitboard, Between(E4, E5))
	assert.Equal(t, FileE, Line(E2, E7))
	assert.Equal(t, Rank4, Line(H4, A4))
	assert.True(t, Aligned(A1, C3, H8))
	assert.False(t, Aligned(A1, C3, H7))
}

func TestBitPrimitives(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10000; i++ {
		b := Bitboard(rng.Uint64() >> uint(rng.Intn(64)))
		require.Equal(t, bits.OnesCount64(uint64(b)), PopCount(b))
		if b == 0 {
			continue
		}
		require.Equal(t, Square(bits.TrailingZeros64(uint64(b))), BitScanForward(b))
		require.Equal(t, Square(63-bits.LeadingZeros64(uint64(b))), BitScanBackward(b))
	}

	assert.Panics(t, func() { BitScanForward(0) })
	assert.Panics(t, func() { BitScanBackward(0) })

	b := SquareBB(C3) | SquareBB(F7)
	assert.Equal(t, C3, PopForward(&b))
	assert.Equal(t, F7, PopForward(&b))
	assert.Equal(t, EmptyBitboard, b)
}

func TestAttackersTo(t *testing.T) {
	g := MustParseFen("4k3/8/8/3p4/4K3/8/8/8 w - - 0 1")
	assert.Equal(t, SquareBB(D5), g.Set.AttackersBy(E4, Black, g.Set.Occupancy))
	assert.True(t, g.InCheck())
	assert.True(t, g.Set.Attacked(D5, White))
	assert.False(t, g.Set.Attacked(E6, White))
}
