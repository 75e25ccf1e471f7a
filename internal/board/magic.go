package board

import "fmt"

// Magic bitboards for sliding piece attacks. For every square the relevant
// occupancy (the piece's rays minus the board edge) is multiplied by a
// precomputed constant and shifted down to a dense index into that square's
// slice of the attack table.

// Magic holds the magic bitboard data for a single square.
type Magic struct {
	Mask   Bitboard // Relevant occupancy mask (excludes edges)
	Magic  uint64   // Magic multiplier
	Shift  uint8    // Bits to shift right
	Offset uint32   // Index into attack table
}

var (
	bishopMagics [64]Magic
	rookMagics   [64]Magic

	bishopTable [5248]Bitboard
	rookTable   [102400]Bitboard
)

var bishopMagicNumbers = [64]uint64{
	0x0002020202020200, 0x0002020202020000, 0x0004010202000000, 0x0004040080000000,
	0x0001104000000000, 0x0000821040000000, 0x0000410410400000, 0x0000104104104000,
	0x0000040404040400, 0x0000020202020200, 0x0000040102020000, 0x0000040400800000,
	0x0000011040000000, 0x0000008210400000, 0x0000004104104000, 0x0000002082082000,
	0x0004000808080800, 0x0002000404040400, 0x0001000202020200, 0x0000800802004000,
	0x0000800400A00000, 0x0000200100884000, 0x0000400082082000, 0x0000200041041000,
	0x0002080010101000, 0x0001040008080800, 0x0000208004010400, 0x0000404004010200,
	0x0000840000802000, 0x0000404002011000, 0x0000808001041000, 0x0000404000820800,
	0x0001041000202000, 0x0000820800101000, 0x0000104400080800, 0x0000020080080080,
	0x0000404040040100, 0x0000808100020100, 0x0001010100020800, 0x0000808080010400,
	0x0000820820004000, 0x0000410410002000, 0x0000082088001000, 0x0000002011000800,
	0x0000080100400400, 0x0001010101000200, 0x0002020202000400, 0x0001010101000200,
	0x0000410410400000, 0x0000208208200000, 0x0000002084100000, 0x0000000020880000,
	0x0000001002020000, 0x0000040408020000, 0x0004040404040000, 0x0002020202020000,
	0x0000104104104000, 0x0000002082082000, 0x0000000020841000, 0x0000000000208800,
	0x0000000010020200, 0x0000000404080200, 0x0000040404040400, 0x0002020202020200,
}

var rookMagicNumbers = [64]uint64{
	0x0080001020400080, 0x0040001000200040, 0x0080081000200080, 0x0080040800100080,
	0x0080020400080080, 0x0080010200040080, 0x0080008001000200, 0x0080002040800100,
	0x0000800020400080, 0x0000400020005000, 0x0000801000200080, 0x0000800800100080,
	0x0000800400080080, 0x0000800200040080, 0x0000800100020080, 0x0000800040800100,
	0x0000208000400080, 0x0000404000201000, 0x0000808010002000, 0x0000808008001000,
	0x0000808004000800, 0x0000808002000400, 0x0000010100020004, 0x0000020000408104,
	0x0000208080004000, 0x0000200040005000, 0x0000100080200080, 0x0000080080100080,
	0x0000040080080080, 0x0000020080040080, 0x0000010080800200, 0x0000800080004100,
	0x0000204000800080, 0x0000200040401000, 0x0000100080802000, 0x0000080080801000,
	0x0000040080800800, 0x0000020080800400, 0x0000020001010004, 0x0000800040800100,
	0x0000204000808000, 0x0000200040008080, 0x0000100020008080, 0x0000080010008080,
	0x0000040008008080, 0x0000020004008080, 0x0000010002008080, 0x0000004081020004,
	0x0000204000800080, 0x0000200040008080, 0x0000100020008080, 0x0000080010008080,
	0x0000040008008080, 0x0000020004008080, 0x0000800100020080, 0x0000800041000080,
	0x00FFFCDDFCED714A, 0x007FFCDDFCED714A, 0x003FFFCDFFD88096, 0x0000040810002101,
	0x0001000204080011, 0x0001000204000801, 0x0001000082000401, 0x0001FFFAABFAD1A2,
}

// slider describes one sliding piece kind for table construction and lookup.
type slider struct {
	name       string
	directions [4]Direction
	numbers    *[64]uint64
	magics     *[64]Magic
	table      []Bitboard
}

var (
	bishopSlider = slider{"bishop", bishopDirections, &bishopMagicNumbers, &bishopMagics, bishopTable[:]}
	rookSlider   = slider{"rook", rookDirections, &rookMagicNumbers, &rookMagics, rookTable[:]}
)

func initMagics() {
	initSlider(&bishopSlider)
	initSlider(&rookSlider)
}

// initSlider fills the attack table for one slider kind. Every subset of the
// relevant mask is visited with the Carry-Rippler trick; two different attack
// sets hashing to the same slot mean a bad magic constant and are fatal.
func initSlider(s *slider) {
	var offset uint32
	filled := make([]bool, len(s.table))
	for sq := A1; sq <= H8; sq++ {
		mask := relevantMask(sq, s.directions)
		bits := PopCount(mask)

		s.magics[sq] = Magic{
			Mask:   mask,
			Magic:  s.numbers[sq],
			Shift:  uint8(64 - bits),
			Offset: offset,
		}

		var subset Bitboard
		for {
			idx := offset + uint32((uint64(subset)*s.numbers[sq])>>(64-bits))
			attacks := rayAttacks(sq, subset, s.directions)
			if filled[idx] && s.table[idx] != attacks {
				panic(fmt.Sprintf("board: %s magic collision on %s (occupancy %#x)", s.name, sq, uint64(subset)))
			}
			filled[idx] = true
			s.table[idx] = attacks

			subset = (subset - mask) & mask
			if subset == 0 {
				break
			}
		}
		offset += 1 << bits
	}
	if int(offset) != len(s.table) {
		panic(fmt.Sprintf("board: %s attack table size %d, want %d", s.name, len(s.table), offset))
	}
}

// relevantMask is the union of the slider rays from sq, each without its
// final (edge) square, since an edge blocker never changes the attack set.
func relevantMask(sq Square, dirs [4]Direction) Bitboard {
	var mask Bitboard
	for _, d := range dirs {
		ray := rays[d][sq]
		if ray == 0 {
			continue
		}
		if d.positive() {
			ray &^= SquareBB(BitScanBackward(ray))
		} else {
			ray &^= SquareBB(BitScanForward(ray))
		}
		mask |= ray
	}
	return mask
}

// rayAttacks traces each ray to its first blocker (included). Used to build
// the magic tables and as the reference in tests.
func rayAttacks(sq Square, occupied Bitboard, dirs [4]Direction) Bitboard {
	var attacks Bitboard
	for _, d := range dirs {
		ray := rays[d][sq]
		attacks |= ray
		if blockers := ray & occupied; blockers != 0 {
			var first Square
			if d.positive() {
				first = BitScanForward(blockers)
			} else {
				first = BitScanBackward(blockers)
			}
			attacks &^= rays[d][first]
		}
	}
	return attacks
}

// slidingAttacks is the single magic lookup shared by bishops, rooks and queens.
func slidingAttacks(s *slider, sq Square, occupied Bitboard) Bitboard {
	m := &s.magics[sq]
	idx := ((uint64(occupied) & uint64(m.Mask)) * m.Magic) >> m.Shift
	return s.table[m.Offset+uint32(idx)]
}

// BishopAttacks returns the bishop attack bitboard for a square with given occupancy.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	return slidingAttacks(&bishopSlider, sq, occupied)
}

// RookAttacks returns the rook attack bitboard for a square with given occupancy.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	return slidingAttacks(&rookSlider, sq, occupied)
}

// QueenAttacks returns the queen attack bitboard for a square with given occupancy.
func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return BishopAttacks(sq, occupied) | RookAttacks(sq, occupied)
}
