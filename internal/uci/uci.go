// Package uci implements a line-oriented command loop speaking a subset of
// the Universal Chess Interface, plus perft and debugging commands.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/lorenzo-stoakes/weak-sub000/internal/board"
	"github.com/lorenzo-stoakes/weak-sub000/internal/engine"
	"github.com/lorenzo-stoakes/weak-sub000/internal/perft"
	"github.com/lorenzo-stoakes/weak-sub000/internal/storage"
)

// UCI implements the Universal Chess Interface protocol.
type UCI struct {
	engine   *engine.Engine
	position *board.Game
	store    *storage.PerftStore // Optional perft cache
	maxDepth int

	out io.Writer
}

// New creates a new UCI protocol handler writing to out. store may be nil.
func New(eng *engine.Engine, store *storage.PerftStore, out io.Writer) *UCI {
	u := &UCI{
		engine:   eng,
		position: board.NewGame(),
		store:    store,
		maxDepth: eng.Options.MaxDepth,
		out:      out,
	}
	eng.OnInfo = u.sendInfo
	return u
}

func (u *UCI) println(a ...any) {
	fmt.Fprintln(u.out, a...)
}

func (u *UCI) printf(format string, a ...any) {
	fmt.Fprintf(u.out, format, a...)
}

// Run reads commands from in until "quit" or end of input.
func (u *UCI) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			u.println("readyok")
		case "ucinewgame":
			u.handleNewGame()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "setoption":
			u.handleSetOption(args)
		case "quit":
			return nil
		// Debug commands
		case "d":
			u.println(u.position.String())
			u.println("Fen:", u.position.Fen())
			u.printf("Key: %016X\n", u.position.Hash)
		case "moves":
			u.handleMoves()
		case "perft":
			u.handlePerft(args)
		case "divide":
			u.handleDivide(args)
		default:
			u.printf("info string unknown command: %s\n", cmd)
		}
	}
	return scanner.Err()
}

// handleUCI responds to the "uci" command.
func (u *UCI) handleUCI() {
	u.println("id name weak")
	u.println("id author weak authors")
	u.println()
	u.printf("option name Hash type spin default %d min 1 max 4096\n", u.engine.Options.Hash)
	u.println("uciok")
}

// handleNewGame resets the engine for a new game.
func (u *UCI) handleNewGame() {
	u.engine.Clear()
	u.position = board.NewGame()
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
//
// Moves may be given in UCI or SAN form. On any error the previous position
// is kept.
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	movesAt := len(args)
	for i, arg := range args {
		if arg == "moves" {
			movesAt = i
			break
		}
	}

	var g *board.Game
	switch args[0] {
	case "startpos":
		g = board.NewGame()
	case "fen":
		var err error
		g, err = board.ParseFen(strings.Join(args[1:movesAt], " "))
		if err != nil {
			u.printf("info string invalid fen: %v\n", err)
			return
		}
	default:
		u.printf("info string invalid position: %s\n", args[0])
		return
	}

	if movesAt < len(args) {
		for _, s := range args[movesAt+1:] {
			m, err := parseMove(g, s)
			if err != nil {
				u.printf("info string %v\n", err)
				return
			}
			g.DoMove(m)
		}
	}
	u.position = g
}

// parseMove accepts UCI text first and falls back to SAN.
func parseMove(g *board.Game, s string) (board.Move, error) {
	m, err := board.ParseMove(g, s)
	if err == nil {
		return m, nil
	}
	if m, sanErr := board.ParseSAN(g, s); sanErr == nil {
		return m, nil
	}
	return board.NoMove, err
}

// GoOptions holds the parsed arguments of a "go" command.
type GoOptions struct {
	Depth     int
	MoveTime  time.Duration
	Infinite  bool
	WTime     time.Duration
	BTime     time.Duration
	WInc      time.Duration
	BInc      time.Duration
	MovesToGo int
}

func parseGoOptions(args []string) GoOptions {
	opts := GoOptions{}

	millis := func(i int) time.Duration {
		ms, _ := strconv.Atoi(args[i])
		return time.Duration(ms) * time.Millisecond
	}

	for i := 0; i < len(args); i++ {
		hasValue := i+1 < len(args)
		switch args[i] {
		case "infinite":
			opts.Infinite = true
			continue
		case "depth":
			if hasValue {
				opts.Depth, _ = strconv.Atoi(args[i+1])
			}
		case "movestogo":
			if hasValue {
				opts.MovesToGo, _ = strconv.Atoi(args[i+1])
			}
		case "movetime":
			if hasValue {
				opts.MoveTime = millis(i + 1)
			}
		case "wtime":
			if hasValue {
				opts.WTime = millis(i + 1)
			}
		case "btime":
			if hasValue {
				opts.BTime = millis(i + 1)
			}
		case "winc":
			if hasValue {
				opts.WInc = millis(i + 1)
			}
		case "binc":
			if hasValue {
				opts.BInc = millis(i + 1)
			}
		default:
			continue
		}
		i++
	}

	return opts
}

func (o GoOptions) limits() engine.Limits {
	return engine.Limits{
		Time:      [2]time.Duration{o.WTime, o.BTime},
		Inc:       [2]time.Duration{o.WInc, o.BInc},
		MovesToGo: o.MovesToGo,
		MoveTime:  o.MoveTime,
		Depth:     o.Depth,
	}
}

// handleGo searches the current position and prints the best move. The
// search runs to completion before the next command is read.
func (u *UCI) handleGo(args []string) {
	opts := parseGoOptions(args)
	limits := opts.limits()

	budget := limits.Budget(u.position.WhosTurn)
	if budget == 0 && limits.Depth > 0 {
		best, _ := u.engine.SearchDepth(u.position, limits.Depth)
		u.printf("bestmove %s\n", best)
		return
	}

	if budget == 0 {
		budget = u.engine.Options.MoveTime
	}
	u.engine.Options.MaxDepth = limits.Depth
	if limits.Depth == 0 {
		u.engine.Options.MaxDepth = u.maxDepth
	}
	best, ok := u.engine.SearchDeadline(u.position, budget)
	if !ok {
		best = u.fallbackMove()
	}
	u.printf("bestmove %s\n", best)
}

// fallbackMove returns the first legal move, or NoMove.
func (u *UCI) fallbackMove() board.Move {
	var ml board.MoveList
	board.AllMoves(u.position, &ml)
	if ml.Len() == 0 {
		return board.NoMove
	}
	log.Printf("search did not complete depth 1, playing %s", ml.Get(0))
	return ml.Get(0)
}

func (u *UCI) sendInfo(info engine.SearchInfo) {
	var parts []string

	parts = append(parts, fmt.Sprintf("depth %d", info.Depth))

	if info.Score > engine.MateScore-engine.MaxPly {
		mateIn := (engine.MateScore - info.Score + 1) / 2
		parts = append(parts, fmt.Sprintf("score mate %d", mateIn))
	} else if info.Score < -engine.MateScore+engine.MaxPly {
		mateIn := -(engine.MateScore + info.Score + 1) / 2
		parts = append(parts, fmt.Sprintf("score mate %d", mateIn))
	} else {
		parts = append(parts, fmt.Sprintf("score cp %d", info.Score))
	}

	parts = append(parts, fmt.Sprintf("nodes %d", info.Nodes))
	parts = append(parts, fmt.Sprintf("time %d", info.Time.Milliseconds()))

	if info.Time > 0 {
		nps := uint64(float64(info.Nodes) / info.Time.Seconds())
		parts = append(parts, fmt.Sprintf("nps %d", nps))
	}

	if info.HashFull > 0 {
		parts = append(parts, fmt.Sprintf("hashfull %d", info.HashFull))
	}

	if len(info.PV) > 0 {
		pv := make([]string, len(info.PV))
		for i, m := range info.PV {
			pv[i] = m.String()
		}
		parts = append(parts, "pv "+strings.Join(pv, " "))
	}

	u.println("info " + strings.Join(parts, " "))
}

// handleSetOption processes "setoption name <name> value <value>".
func (u *UCI) handleSetOption(args []string) {
	var name, value []string
	var target *[]string
	for _, arg := range args {
		switch arg {
		case "name":
			target = &name
		case "value":
			target = &value
		default:
			if target != nil {
				*target = append(*target, arg)
			}
		}
	}

	switch strings.ToLower(strings.Join(name, " ")) {
	case "hash":
		mb, err := strconv.Atoi(strings.Join(value, " "))
		if err != nil || mb < 1 {
			u.printf("info string invalid hash size: %s\n", strings.Join(value, " "))
			return
		}
		opts := u.engine.Options
		opts.Hash = mb
		onInfo := u.engine.OnInfo
		u.engine = engine.NewEngine(opts, nil)
		u.engine.OnInfo = onInfo
	default:
		u.printf("info string unknown option: %s\n", strings.Join(name, " "))
	}
}

// handleMoves lists the legal moves in SAN.
func (u *UCI) handleMoves() {
	var ml board.MoveList
	board.AllMoves(u.position, &ml)
	sans := make([]string, ml.Len())
	for i, m := range ml.Slice() {
		sans[i] = u.position.SAN(m)
	}
	u.println(strings.Join(sans, " "))
}

func parseDepth(args []string, def int) (int, error) {
	if len(args) == 0 {
		return def, nil
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 0 {
		return 0, fmt.Errorf("invalid depth: %s", args[0])
	}
	return depth, nil
}

// handlePerft runs a perft test, through the store when one is attached.
func (u *UCI) handlePerft(args []string) {
	depth, err := parseDepth(args, 5)
	if err != nil {
		u.printf("info string %v\n", err)
		return
	}

	start := time.Now()
	var stats perft.Stats
	cached := false
	if u.store != nil {
		stats, cached, err = u.store.Run(u.position, depth)
		if err != nil {
			log.Printf("perft store: %v", err)
			stats = perft.Run(u.position, depth)
		}
	} else {
		stats = perft.Run(u.position, depth)
	}
	elapsed := time.Since(start)

	u.println(stats.String())
	u.printf("Nodes: %d\n", stats.Nodes)
	if cached {
		u.println("Cached: true")
		return
	}
	u.printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		u.printf("NPS: %.0f\n", float64(stats.Nodes)/elapsed.Seconds())
	}
}

// handleDivide prints the leaf count below each root move.
func (u *UCI) handleDivide(args []string) {
	depth, err := parseDepth(args, 1)
	if err != nil {
		u.printf("info string %v\n", err)
		return
	}
	u.printf("%s", perft.FormatDivide(perft.Divide(u.position, depth)))
}
