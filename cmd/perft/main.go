package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/schollz/progressbar/v3"

	"github.com/lorenzo-stoakes/weak-sub000/internal/board"
	"github.com/lorenzo-stoakes/weak-sub000/internal/perft"
	"github.com/lorenzo-stoakes/weak-sub000/internal/storage"
)

var (
	fen        = flag.String("fen", board.StartFEN, "position to count")
	depth      = flag.Int("depth", 5, "perft depth")
	divide     = flag.Bool("divide", false, "print the count below each root move")
	suite      = flag.Bool("suite", false, "run the reference positions")
	maxNodes   = flag.Uint64("nodes", 50_000_000, "skip reference rows above this node count")
	profileDir = flag.String("profile", "", "write a CPU profile to this directory")
	dbDir      = flag.String("db", "", "perft cache directory (default: user data dir)")
	noCache    = flag.Bool("nocache", false, "disable the perft cache")
	reset      = flag.Bool("reset", false, "clear the perft cache before running")
)

func main() {
	flag.Parse()

	if *profileDir != "" {
		defer profile.Start(profile.ProfilePath(*profileDir)).Stop()
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if *suite {
		if !runSuite(store) {
			if store != nil {
				store.Close()
			}
			os.Exit(1)
		}
		return
	}

	g, err := board.ParseFen(*fen)
	if err != nil {
		log.Fatalf("invalid fen: %v", err)
	}
	if *depth < 0 {
		log.Fatalf("invalid depth: %d", *depth)
	}

	start := time.Now()
	stats, cached := count(store, g, *depth, *divide)
	elapsed := time.Since(start)

	fmt.Println(stats)
	if cached {
		fmt.Println("Cached: true")
		return
	}
	fmt.Printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		fmt.Printf("NPS: %.0f\n", float64(stats.Nodes)/elapsed.Seconds())
	}
}

func openStore() *storage.PerftStore {
	if *noCache {
		return nil
	}

	var (
		store *storage.PerftStore
		err   error
	)
	if *dbDir != "" {
		store, err = storage.Open(*dbDir)
	} else {
		store, err = storage.OpenDefault()
	}
	if err != nil {
		log.Printf("Warning: perft cache disabled: %v", err)
		return nil
	}

	if *reset {
		if err := store.Reset(); err != nil {
			log.Printf("Warning: could not reset perft cache: %v", err)
		}
	}
	return store
}

// count returns the stats of g at depth, from the store when it has them.
// Fresh counts are run one root move at a time behind a progress bar.
func count(store *storage.PerftStore, g *board.Game, depth int, verbose bool) (perft.Stats, bool) {
	fen := g.Fen()
	if store != nil && !verbose {
		r, ok, err := store.Load(g.Hash, fen, depth)
		if err != nil {
			log.Printf("perft cache: %v", err)
		}
		if ok {
			return r.Stats, true
		}
	}

	stats := countWithProgress(g, depth, verbose)

	if store != nil {
		err := store.Save(g.Hash, storage.PerftResult{FEN: fen, Depth: depth, Stats: stats})
		if err != nil {
			log.Printf("perft cache: %v", err)
		}
	}
	return stats, false
}

func countWithProgress(g *board.Game, depth int, verbose bool) perft.Stats {
	if depth <= 1 {
		if verbose && depth == 1 {
			fmt.Print(perft.FormatDivide(perft.Divide(g, depth)))
		}
		return perft.Run(g, depth)
	}

	var moves board.MoveList
	board.AllMoves(g, &moves)

	bar := progressbar.Default(int64(moves.Len()), fmt.Sprint("depth ", depth))
	var stats perft.Stats
	lines := make([]string, 0, moves.Len())
	for _, m := range moves.Slice() {
		g.DoMove(m)
		sub := perft.Run(g, depth-1)
		g.Unmove()

		stats.Add(sub)
		lines = append(lines, fmt.Sprintf("%s: %d", m, sub.Nodes))
		bar.Add(1)
	}
	bar.Finish()

	if verbose {
		for _, line := range lines {
			fmt.Println(line)
		}
		fmt.Printf("\nNodes searched: %d\n", stats.Nodes)
	}
	return stats
}

func runSuite(store *storage.PerftStore) bool {
	ok := true
	for _, p := range perft.Positions {
		g, err := board.ParseFen(p.FEN)
		if err != nil {
			log.Printf("%s: %v", p.Name, err)
			ok = false
			continue
		}

		for i, want := range p.Stats {
			if want.Nodes > *maxNodes {
				break
			}
			d := i + 1
			got, cached := count(store, g, d, false)
			status := "ok"
			if got != want {
				status = "FAIL"
				ok = false
			}
			fmt.Printf("%-10s depth %d: %s [%s, cached=%v]\n", p.Name, d, got, status, cached)
			if got != want {
				fmt.Printf("%-10s expected: %s\n", "", want)
			}
		}
	}
	return ok
}
