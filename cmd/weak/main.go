package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/pkg/profile"

	"github.com/lorenzo-stoakes/weak-sub000/internal/engine"
	"github.com/lorenzo-stoakes/weak-sub000/internal/storage"
	"github.com/lorenzo-stoakes/weak-sub000/internal/uci"
)

var (
	hash       = flag.Int("hash", 16, "transposition table size in MB")
	depth      = flag.Int("depth", 0, "maximum search depth (0 = unlimited)")
	moveTime   = flag.Duration("movetime", time.Second, "default time per move")
	profileDir = flag.String("profile", "", "write a CPU profile to this directory")
	dbDir      = flag.String("db", "", "perft cache directory (default: user data dir)")
	noCache    = flag.Bool("nocache", false, "disable the perft cache")
)

func main() {
	flag.Parse()
	if *hash < 1 {
		log.Fatalf("invalid hash size: %d", *hash)
	}

	if *profileDir != "" {
		defer profile.Start(profile.ProfilePath(*profileDir)).Stop()
	}

	opts := engine.NewOptions()
	opts.Hash = *hash
	opts.MaxDepth = *depth
	opts.MoveTime = *moveTime
	eng := engine.NewEngine(opts, nil)

	var store *storage.PerftStore
	if !*noCache {
		var err error
		if *dbDir != "" {
			store, err = storage.Open(*dbDir)
		} else {
			store, err = storage.OpenDefault()
		}
		if err != nil {
			log.Printf("Warning: perft cache disabled: %v", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	protocol := uci.New(eng, store, os.Stdout)
	if err := protocol.Run(os.Stdin); err != nil {
		log.Printf("read error: %v", err)
	}
}
