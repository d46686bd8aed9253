// Package sim plays many match-3 boards automatically and measures how deep
// cascades run. Boards are independent, so they are spread over worker
// goroutines; each board draws from its own seeded source, which keeps the
// merged report identical for any worker count.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cheggaaa/pb/v3"

	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
)

var (
	// ErrInvalidConfig is returned for non-positive board or move counts.
	ErrInvalidConfig = errors.New("invalid simulation config")

	// ErrStuck is returned when regeneration keeps producing boards without a
	// valid move.
	ErrStuck = errors.New("no playable board after repeated regeneration")
)

// maxRegenerate bounds reshuffles in a row before a board is declared stuck.
const maxRegenerate = 32

// Strategy chooses which valid move the autoplayer makes.
type Strategy string

const (
	StrategyRandom Strategy = "random" // Uniform over valid moves
	StrategyFirst  Strategy = "first"  // First move in scan order, biased to the top-left
)

// ParseStrategy converts a name to a Strategy. Unknown names fall back to random.
func ParseStrategy(s string) Strategy {
	if Strategy(s) == StrategyFirst {
		return StrategyFirst
	}
	return StrategyRandom
}

// Config describes one simulation run.
type Config struct {
	Engine    engine.Config
	Boards    int      // Independent boards to play
	Moves     int      // Matching swaps per board
	Workers   int      // Goroutines; <= 0 uses GOMAXPROCS
	Seed      int64    // Board i uses Seed+i
	MaxPasses int      // Cascade pass cap per move; <= 0 means unlimited
	Strategy  Strategy // Move choice

	// Progress receives the progress bar. Nil hides it.
	Progress io.Writer

	// Logger receives per-board debug events. Nil discards them.
	Logger *log.Logger
}

// DefaultConfig plays 1000 default boards for 50 moves each.
func DefaultConfig() Config {
	return Config{
		Engine:   engine.DefaultConfig(),
		Boards:   1000,
		Moves:    50,
		Seed:     1,
		Strategy: StrategyRandom,
	}
}

// Validate checks the run parameters and the board config.
func (c Config) Validate() error {
	switch {
	case c.Boards <= 0:
		return fmt.Errorf("%w: boards %d", ErrInvalidConfig, c.Boards)
	case c.Moves <= 0:
		return fmt.Errorf("%w: moves %d", ErrInvalidConfig, c.Moves)
	}
	return c.Engine.Validate()
}

// boardResult is what one autoplayed board produced.
type boardResult struct {
	passes    []int // Cascade passes per move
	cleared   []int // Tiles removed per move
	deadlocks int   // Boards replaced for lack of a valid move
	capped    int   // Moves stopped by MaxPasses
}

// Run plays cfg.Boards boards and aggregates the results. It stops early
// with ctx.Err() when the context is cancelled.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, cfg.Boards)

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	progress := cfg.Progress
	if progress == nil {
		progress = io.Discard
	}
	bar := pb.New(cfg.Boards).SetWriter(progress).Start()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]boardResult, cfg.Boards)
	jobs := make(chan int, workers)
	errs := make(chan error, workers)

	wg := new(sync.WaitGroup)
	wg.Add(workers)
	for w := range workers {
		go func(w int) {
			defer wg.Done()
			l := logger.With("worker", w)
			for i := range jobs {
				res, err := playBoard(ctx, cfg, cfg.Seed+int64(i), l)
				if err != nil {
					errs <- fmt.Errorf("board %d: %w", i, err)
					cancel()
					return
				}
				results[i] = res
				bar.Increment()
			}
		}(w)
	}

feed:
	for i := range cfg.Boards {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	used := time.Since(bar.StartTime())
	bar.Finish()
	close(errs)

	if err := <-errs; err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := newReport(cfg, results)
	report.Workers = workers
	report.Elapsed = used
	return report, nil
}

// playBoard autoplays one board for cfg.Moves matching swaps.
func playBoard(ctx context.Context, cfg Config, seed int64, logger *log.Logger) (boardResult, error) {
	src := engine.NewSeededSource(seed)
	eng, err := engine.New(cfg.Engine, src, nil)
	if err != nil {
		return boardResult{}, err
	}

	res := boardResult{
		passes:  make([]int, 0, cfg.Moves),
		cleared: make([]int, 0, cfg.Moves),
	}

	for range cfg.Moves {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		moves := eng.ValidMoves()
		for tries := 0; len(moves) == 0; tries++ {
			if tries == maxRegenerate {
				return res, ErrStuck
			}
			res.deadlocks++
			logger.Debug("deadlock, regenerating", "seed", seed)
			if err := eng.Regenerate(); err != nil {
				return res, err
			}
			moves = eng.ValidMoves()
		}

		mv := moves[0]
		if cfg.Strategy != StrategyFirst {
			mv = moves[src.Intn(len(moves))]
		}

		out, err := eng.Swap(mv.From, mv.To)
		if err != nil {
			return res, err
		}
		if out != engine.OutcomeMatched {
			return res, fmt.Errorf("move %v-%v reported valid but gave %s", mv.From, mv.To, out)
		}

		rep, err := eng.Resolver().RunLimit(cfg.MaxPasses)
		switch {
		case errors.Is(err, engine.ErrCascadeLimit):
			res.capped++
		case err != nil:
			return res, err
		}

		res.passes = append(res.passes, rep.Passes)
		res.cleared = append(res.cleared, rep.Removed)
	}

	return res, nil
}
