package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"xiangqi/internal/engine"
	"xiangqi/internal/game"
	"xiangqi/internal/xiangqi"
)

type tally struct {
	mu         sync.Mutex
	redWins    int
	blackWins  int
	unfinished int
	plies      int
}

func (t *tally) add(g *game.GameState) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.plies += len(g.Moves)
	switch {
	case !g.Pos.Terminal:
		t.unfinished++
	case g.Pos.Winner == xiangqi.Red:
		t.redWins++
	default:
		t.blackWins++
	}
}

func main() {
	red := flag.String("red", "medium", "red difficulty: easy, medium or hard")
	black := flag.String("black", "easy", "black difficulty: easy, medium or hard")
	games := flag.Int("games", 4, "number of games")
	workers := flag.Int("workers", runtime.NumCPU(), "games played concurrently")
	maxMoves := flag.Int("maxmoves", 200, "max plies per game")
	moveTime := flag.Duration("movetime", 30*time.Second, "per-move thinking limit")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed for the easy tier")
	verbose := flag.Bool("v", false, "log every game event")
	flag.Parse()

	levels := map[xiangqi.Side]xiangqi.Difficulty{
		xiangqi.Red:   xiangqi.ParseDifficulty(*red),
		xiangqi.Black: xiangqi.ParseDifficulty(*black),
	}

	gameLog := log.New(io.Discard, "", 0)
	if *verbose {
		gameLog = log.Default()
	}
	mgr := game.NewManager(engine.NewSeededEngine(*seed), game.Config{
		AITimeout: *moveTime,
		Logger:    gameLog,
	})

	var t tally
	start := time.Now()
	eg, ctx := errgroup.WithContext(context.Background())
	eg.SetLimit(*workers)
	for i := 0; i < *games; i++ {
		i := i // per-iteration copy (go directive < 1.22)
		eg.Go(func() error {
			g, err := playOne(ctx, mgr, levels, *maxMoves)
			if err != nil {
				return fmt.Errorf("game %d: %w", i+1, err)
			}
			log.Printf("game %d (%s): %d plies, status %s", i+1, g.ID, len(g.Moves), g.Status())
			t.add(g)
			return mgr.Remove(g.ID)
		})
	}
	if err := eg.Wait(); err != nil {
		log.Fatalf("selfplay: %v", err)
	}

	log.Printf("red(%s) %d - black(%s) %d, unfinished %d, avg plies %.1f, nodes %d, took %v",
		levels[xiangqi.Red], t.redWins, levels[xiangqi.Black], t.blackWins, t.unfinished,
		float64(t.plies)/float64(max(*games, 1)), mgr.Engine().Nodes(), time.Since(start))
}

func playOne(ctx context.Context, mgr *game.Manager, levels map[xiangqi.Side]xiangqi.Difficulty, maxMoves int) (*game.GameState, error) {
	g, err := mgr.NewGame(ctx, game.Options{})
	if err != nil {
		return nil, err
	}
	for ply := 0; ply < maxMoves && !g.Pos.Terminal; ply++ {
		turn, err := mgr.EngineMove(ctx, g.ID, levels[g.Pos.SideToMove])
		if errors.Is(err, game.ErrNoEngineMove) {
			break
		}
		if err != nil {
			return nil, err
		}
		g = turn.Game
	}
	return g, nil
}
