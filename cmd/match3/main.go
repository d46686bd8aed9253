// match3 is a terminal match-3 puzzle: swap adjacent tiles to line up three
// or more of a kind, then watch the board clear and cascade.
//
// Usage:
//
//	match3 list              - List available boards
//	match3 play [game]       - Play a board (default: match3)
//	match3 menu              - Start menu to pick boards interactively
//	match3 serve             - Start SSH server for remote play
//	match3 stats [game]      - Show the session journal
//	match3 board             - Print a freshly generated board
//	match3 sim               - Autoplay boards and report cascade depth
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible boards
//	--db <path>        - Set database path (default: ~/.arcade/match3.db)
//	--log-file <path>  - Write debug logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-match3/internal/games/match3"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogFile string
	flagLogLvl  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "match3",
	Short: "Match-3 - Swap tiles and chain cascades in your terminal",
	Long: `Match-3 is a tile-swap puzzle for the terminal. Swap two neighbouring
tiles to line up three or more of a kind; matched tiles clear, the
columns fall and new tiles drop in, which may chain further matches.

Available commands:
  list     - Show all available boards
  play     - Play a board directly
  menu     - Interactive board picker menu
  serve    - Start SSH server for remote play
  stats    - View the session journal
  board    - Print a generated board
  sim      - Autoplay boards and measure cascades

Examples:
  match3 list
  match3 play
  match3 play match3_mini --difficulty easy
  match3 menu
  match3 serve --ssh :2222
  match3 sim --boards 5000 --workers 8`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/match3.db", "Path to session database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (interactive commands log nowhere by default)")
	rootCmd.PersistentFlags().StringVar(&flagLogLvl, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(simCmd)
}
