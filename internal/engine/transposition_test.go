package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorenzo-stoakes/weak-sub000/internal/board"
)

// sameCluster returns hashes that share cluster 5 but differ in key.
func sameCluster(keys ...uint32) []uint64 {
	out := make([]uint64, len(keys))
	for i, k := range keys {
		out[i] = uint64(k)<<32 | 5
	}
	return out
}

func TestTransTableSize(t *testing.T) {
	tt := NewTransTable(1)
	clusters := len(tt.entries) / clusterSize
	assert.Equal(t, 0, clusters&(clusters-1), "power of two")
	assert.LessOrEqual(t, len(tt.entries)*entrySize, 1024*1024)
	assert.Greater(t, len(tt.entries)*entrySize*2, 1024*1024)
	assert.Equal(t, 1, tt.Megabytes())
}

func TestTransTableMinimumSize(t *testing.T) {
	for _, mb := range []int{0, -1, -4096} {
		tt := NewTransTable(mb)
		assert.Equal(t, 1, tt.Megabytes(), "%d MB", mb)
		assert.NotEmpty(t, tt.entries)
	}
}

func TestTransTableProbeStore(t *testing.T) {
	tt := NewTransTable(1)
	move := board.NewMove(board.E2, board.E4, board.Normal)

	_, ok := tt.Probe(0xdeadbeef12345678)
	assert.False(t, ok)

	tt.Store(0xdeadbeef12345678, 5, -42, BoundLower, move)
	e, ok := tt.Probe(0xdeadbeef12345678)
	require.True(t, ok)
	assert.Equal(t, TTEntry{Move: move, Score: -42, Depth: 5, Bound: BoundLower}, e)

	// Same cluster, other key fragment.
	_, ok = tt.Probe(0xdeadbeee12345678)
	assert.False(t, ok)

	// Overwriting without a move keeps the old hint.
	tt.Store(0xdeadbeef12345678, 6, 10, BoundExact, board.NoMove)
	e, _ = tt.Probe(0xdeadbeef12345678)
	assert.Equal(t, move, e.Move)
	assert.Equal(t, 6, e.Depth)
}

func TestTransTableOneEntryPerKey(t *testing.T) {
	tt := NewTransTable(1)
	h := sameCluster(7)[0]
	for depth := 1; depth <= 6; depth++ {
		tt.Store(h, depth, depth, BoundExact, board.NoMove)
	}

	matches := 0
	for _, e := range tt.cluster(h) {
		if e.key32 == 7 && e.bound != BoundNone {
			matches++
		}
	}
	assert.Equal(t, 1, matches)
}

func TestTransTableReplacesShallowest(t *testing.T) {
	tt := NewTransTable(1)
	hashes := sameCluster(1, 2, 3, 4, 5)
	for i, depth := range []int{5, 3, 7, 4} {
		tt.Store(hashes[i], depth, 0, BoundExact, board.NoMove)
	}
	tt.Store(hashes[4], 6, 0, BoundExact, board.NoMove)

	for i, want := range []bool{true, false, true, true, true} {
		_, ok := tt.Probe(hashes[i])
		assert.Equal(t, want, ok, "key %d", i+1)
	}
}

func TestTransTablePrefersOldGeneration(t *testing.T) {
	tt := NewTransTable(1)
	hashes := sameCluster(1, 2, 3, 4, 5)
	for _, h := range hashes[:4] {
		tt.Store(h, 10, 0, BoundExact, board.NoMove)
	}

	tt.NewSearch()
	_, ok := tt.Probe(hashes[0]) // Refreshes key 1
	require.True(t, ok)
	tt.Store(hashes[4], 1, 0, BoundExact, board.NoMove)

	_, ok = tt.Probe(hashes[0])
	assert.True(t, ok, "refreshed entry survives")
	_, ok = tt.Probe(hashes[1])
	assert.False(t, ok, "first stale entry is replaced")
	_, ok = tt.Probe(hashes[4])
	assert.True(t, ok)
}

func TestTransTableClearAndHashFull(t *testing.T) {
	tt := NewTransTable(1)
	assert.Equal(t, 0, tt.HashFull())

	for i := uint64(0); i < 250; i++ {
		tt.Store(i, 1, 0, BoundExact, board.NoMove)
	}
	// 250 clusters fill their first slot: 250 of the first 1000 entries.
	assert.Equal(t, 250, tt.HashFull())

	tt.NewSearch()
	assert.Equal(t, 0, tt.HashFull())

	tt.Clear()
	_, ok := tt.Probe(3)
	assert.False(t, ok)
}

func TestMateScoreAdjustment(t *testing.T) {
	for _, score := range []int{MateScore - 3, -MateScore + 4, 120, -35, 0} {
		for ply := 0; ply < 20; ply++ {
			assert.Equal(t, score, AdjustScoreFromTT(AdjustScoreToTT(score, ply), ply))
		}
	}
	// Mate in 3 found at ply 2 is mate in 1 from the stored node.
	assert.Equal(t, MateScore-1, AdjustScoreToTT(MateScore-3, 2))
}
