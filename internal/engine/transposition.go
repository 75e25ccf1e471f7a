package engine

import (
	"github.com/lorenzo-stoakes/weak-sub000/internal/board"
)

// Bound indicates the type of score stored in the transposition table.
type Bound uint8

const (
	BoundNone  Bound = iota
	BoundLower       // Failed high (beta cutoff)
	BoundUpper       // Failed low
	BoundExact
)

const clusterSize = 4

// entrySize is the in-memory size of transEntry.
const entrySize = 12

// transEntry is one slot of a cluster. A zero key32 with BoundNone marks an
// empty slot.
type transEntry struct {
	key32      uint32
	move       board.Move
	score      int16
	depth      int8
	generation uint8
	bound      Bound
}

// TTEntry is the result of a successful probe.
type TTEntry struct {
	Move  board.Move
	Score int
	Depth int
	Bound Bound
}

// TransTable is a fixed size cache of search results. Entries are grouped in
// clusters of four indexed by the low hash bits; the high 32 bits identify
// the position inside a cluster. Not safe for concurrent use.
type TransTable struct {
	megabytes  int
	entries    []transEntry
	mask       uint64
	generation uint8
}

// NewTransTable creates a table using at most megabytes of memory. Sizes
// below 1 are raised to 1.
func NewTransTable(megabytes int) *TransTable {
	megabytes = max(megabytes, 1)
	clusters := roundDownToPowerOf2(uint64(megabytes) * 1024 * 1024 / (entrySize * clusterSize))
	if clusters == 0 {
		clusters = 1
	}
	return &TransTable{
		megabytes: megabytes,
		entries:   make([]transEntry, clusters*clusterSize),
		mask:      clusters - 1,
	}
}

// roundDownToPowerOf2 rounds n down to the nearest power of 2.
func roundDownToPowerOf2(n uint64) uint64 {
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

func (tt *TransTable) cluster(hash uint64) []transEntry {
	index := (hash & tt.mask) * clusterSize
	return tt.entries[index : index+clusterSize]
}

// Megabytes returns the configured size.
func (tt *TransTable) Megabytes() int {
	return tt.megabytes
}

// Probe looks up hash. A hit refreshes the entry's generation.
func (tt *TransTable) Probe(hash uint64) (TTEntry, bool) {
	key := uint32(hash >> 32)
	entries := tt.cluster(hash)
	for i := range entries {
		e := &entries[i]
		if e.key32 == key && e.bound != BoundNone {
			e.generation = tt.generation
			return TTEntry{
				Move:  e.move,
				Score: int(e.score),
				Depth: int(e.depth),
				Bound: e.bound,
			}, true
		}
	}
	return TTEntry{}, false
}

// Store records a search result. A slot already holding hash is overwritten,
// then an empty one; otherwise the least valuable entry is replaced.
func (tt *TransTable) Store(hash uint64, depth, score int, bound Bound, move board.Move) {
	key := uint32(hash >> 32)
	entries := tt.cluster(hash)

	victim := tt.slotFor(entries, key)

	// Keep the old hint when the new result has none for the same position.
	if move == board.NoMove && victim.key32 == key && victim.bound != BoundNone {
		move = victim.move
	}
	*victim = transEntry{
		key32:      key,
		move:       move,
		score:      int16(score),
		depth:      int8(depth),
		generation: tt.generation,
		bound:      bound,
	}
}

func (tt *TransTable) slotFor(entries []transEntry, key uint32) *transEntry {
	for i := range entries {
		if entries[i].key32 == key && entries[i].bound != BoundNone {
			return &entries[i]
		}
	}

	var victim *transEntry
	worst := 1 << 30
	for i := range entries {
		e := &entries[i]
		if e.bound == BoundNone {
			return e
		}
		if v := keepValue(e, tt.generation); v < worst {
			worst = v
			victim = e
		}
	}
	return victim
}

// keepValue ranks entries for replacement: deep entries from the current
// search are worth the most.
func keepValue(e *transEntry, generation uint8) int {
	v := int(e.depth)
	if e.generation != generation {
		v -= 100
	}
	return v
}

// NewSearch bumps the generation so entries from earlier searches are
// replaced first.
func (tt *TransTable) NewSearch() {
	tt.generation++
}

// Clear empties the table.
func (tt *TransTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = transEntry{}
	}
	tt.generation = 0
}

// HashFull returns the permille of sampled entries written in the current
// generation.
func (tt *TransTable) HashFull() int {
	sampleSize := 1000
	if sampleSize > len(tt.entries) {
		sampleSize = len(tt.entries)
	}

	used := 0
	for i := 0; i < sampleSize; i++ {
		if tt.entries[i].bound != BoundNone && tt.entries[i].generation == tt.generation {
			used++
		}
	}
	return used * 1000 / sampleSize
}

// AdjustScoreFromTT converts a stored mate score, relative to the stored
// node, into one relative to the root.
func AdjustScoreFromTT(score int, ply int) int {
	if score > MateScore-MaxPly {
		return score - ply
	}
	if score < -MateScore+MaxPly {
		return score + ply
	}
	return score
}

// AdjustScoreToTT is the inverse of AdjustScoreFromTT.
func AdjustScoreToTT(score int, ply int) int {
	if score > MateScore-MaxPly {
		return score + ply
	}
	if score < -MateScore+MaxPly {
		return score - ply
	}
	return score
}
