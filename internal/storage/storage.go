package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"golang.org/x/exp/slices"

	"github.com/lorenzo-stoakes/weak-sub000/internal/board"
	"github.com/lorenzo-stoakes/weak-sub000/internal/perft"
)

// Storage keys
const (
	perftPrefix = "perft/"
)

// PerftResult is a cached perft run for one position and depth.
type PerftResult struct {
	FEN   string      `json:"fen"`
	Depth int         `json:"depth"`
	Stats perft.Stats `json:"stats"`
}

// PerftStore wraps BadgerDB to persist perft results keyed by position hash
// and depth.
type PerftStore struct {
	db *badger.DB
}

// Open opens (creating if needed) the store in dir.
func Open(dir string) (*PerftStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging
	return open(opts)
}

// OpenInMemory opens a store that lives only as long as the process.
func OpenInMemory() (*PerftStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

// OpenDefault opens the store in the platform data directory.
func OpenDefault() (*PerftStore, error) {
	dir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dir)
}

func open(opts badger.Options) (*PerftStore, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open perft store: %w", err)
	}
	return &PerftStore{db: db}, nil
}

// Close closes the database
func (s *PerftStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func perftKey(hash uint64, depth int) []byte {
	return []byte(fmt.Sprintf("%s%016x/%d", perftPrefix, hash, depth))
}

// Save stores a result under the position hash.
func (s *PerftStore) Save(hash uint64, r PerftResult) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(perftKey(hash, r.Depth), data)
	})
}

// Load returns the result for hash at depth. ok is false when nothing is
// stored, or when the stored FEN describes another position (a hash
// collision). Move counters are ignored.
func (s *PerftStore) Load(hash uint64, fen string, depth int) (r PerftResult, ok bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(perftKey(hash, depth))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &r); err != nil {
				return err
			}
			ok = samePosition(r.FEN, fen)
			return nil
		})
	})
	if err != nil || !ok {
		return PerftResult{}, false, err
	}
	return r, true, nil
}

func samePosition(a, b string) bool {
	fa, fb := strings.Fields(a), strings.Fields(b)
	if len(fa) < 4 || len(fb) < 4 {
		return false
	}
	return slices.Equal(fa[:4], fb[:4])
}

// List returns every stored result.
func (s *PerftStore) List() ([]PerftResult, error) {
	var out []PerftResult
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(perftPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var r PerftResult
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			})
			if err != nil {
				return err
			}
			out = append(out, r)
		}
		return nil
	})
	return out, err
}

// Reset deletes all stored results.
func (s *PerftStore) Reset() error {
	return s.db.DropPrefix([]byte(perftPrefix))
}

// Run returns the perft stats of g at depth, from the store when present.
// Fresh results are saved. cached reports whether the store answered.
func (s *PerftStore) Run(g *board.Game, depth int) (stats perft.Stats, cached bool, err error) {
	fen := g.Fen()
	r, ok, err := s.Load(g.Hash, fen, depth)
	if err != nil {
		return perft.Stats{}, false, err
	}
	if ok {
		return r.Stats, true, nil
	}

	stats = perft.Run(g, depth)
	err = s.Save(g.Hash, PerftResult{FEN: fen, Depth: depth, Stats: stats})
	return stats, false, err
}
