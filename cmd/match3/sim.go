package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/sim"
)

var (
	flagSimBoards     int
	flagSimMoves      int
	flagSimWorkers    int
	flagSimMaxPasses  int
	flagSimStrategy   string
	flagSimNoProgress bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Autoplay boards and report cascade statistics",
	Long: `Play many boards without a terminal UI and measure how the cascade
behaves: passes per swap, tiles cleared, how often a board deadlocks.

Board i is seeded with --seed + i, so a run is reproducible and does not
depend on the number of workers. Board size and kinds come from the same
config as play (--config, --columns, --rows, --kinds).

Examples:
  match3 sim
  match3 sim --boards 10000 --moves 100 --workers 8
  match3 sim --kinds 4 --strategy first --seed 7
  match3 sim --max-passes 3 --no-progress`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimBoards, "boards", 1000, "Number of boards to play")
	simCmd.Flags().IntVar(&flagSimMoves, "moves", 50, "Matching swaps per board")
	simCmd.Flags().IntVar(&flagSimWorkers, "workers", 0, "Worker goroutines (0 = GOMAXPROCS)")
	simCmd.Flags().IntVar(&flagSimMaxPasses, "max-passes", 0, "Cascade pass cap per swap (0 = unbounded)")
	simCmd.Flags().StringVar(&flagSimStrategy, "strategy", string(sim.StrategyRandom), "Move choice: random, first")
	simCmd.Flags().BoolVar(&flagSimNoProgress, "no-progress", false, "Hide the progress bar")
	simCmd.Flags().IntVar(&flagBoardColumns, "columns", 0, "Board width (0 = from config)")
	simCmd.Flags().IntVar(&flagBoardRows, "rows", 0, "Board height (0 = from config)")
	simCmd.Flags().IntVar(&flagBoardKinds, "kinds", 0, "Number of tile kinds (0 = from config)")
	simCmd.Flags().StringVar(&flagBoardConfig, "config", "", "Path to custom game config YAML")
}

func runSim(cmd *cobra.Command, _ []string) error {
	ec, err := boardConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := openLogger(os.Stderr, "sim")
	if err != nil {
		return err
	}
	defer closeLog()

	var progress io.Writer = os.Stderr
	if flagSimNoProgress {
		progress = nil
	}

	seed := flagSeed
	if seed == 0 {
		seed = 1
	}

	cfg := sim.Config{
		Engine:    ec,
		Boards:    flagSimBoards,
		Moves:     flagSimMoves,
		Workers:   flagSimWorkers,
		Seed:      seed,
		MaxPasses: flagSimMaxPasses,
		Strategy:  sim.ParseStrategy(flagSimStrategy),
		Progress:  progress,
		Logger:    logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Debug("simulation started", "boards", cfg.Boards, "moves", cfg.Moves, "seed", cfg.Seed)
	report, err := sim.Run(ctx, cfg)
	if errors.Is(err, context.Canceled) {
		return errors.New("simulation interrupted")
	}
	if err != nil {
		return err
	}
	logger.Debug("simulation finished", "elapsed", report.Elapsed, "deadlocks", report.Deadlocks)

	return report.Format(cmd.OutOrStdout())
}
