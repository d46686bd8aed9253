package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var (
	flagStatsLimit int
	flagStatsClear bool
)

var statsCmd = &cobra.Command{
	Use:   "stats [game]",
	Short: "Show the session journal for a board",
	Long: `Display totals and the most recent play sessions for the specified
board variant (default: match3).

Examples:
  match3 stats
  match3 stats match3_mini --limit 25
  match3 stats --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagStatsLimit, "limit", 10, "Number of recent sessions to list")
	statsCmd.Flags().BoolVar(&flagStatsClear, "clear", false, "Delete every recorded session of the board")
}

func runStats(cmd *cobra.Command, args []string) {
	gameID := string(match3.VariantClassic)
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'match3 list' to see available games.")
		os.Exit(1)
	}

	// Get game title
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	// Open session journal
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening session database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagStatsClear {
		if err := store.ClearSessions(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing sessions: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared all sessions of %s.\n", title)
		return
	}

	totals, err := store.Totals(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving totals: %v\n", err)
		os.Exit(1)
	}
	sessions, err := store.RecentSessions(gameID, flagStatsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		os.Exit(1)
	}

	// Display journal
	fmt.Printf("Session Journal - %s\n", title)
	fmt.Println()

	if totals.Sessions == 0 {
		fmt.Println("No sessions recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'match3 play %s' to start one.\n", gameID)
		return
	}

	st := totals.Stats
	fmt.Printf("  Sessions:        %d (%s played, last %s)\n",
		totals.Sessions, totals.PlayTime.Round(time.Second), totals.LastPlayed.Format("2006-01-02 15:04"))
	fmt.Printf("  Swaps:           %d (%d matched, %d reverted, %d invalid)\n",
		st.Swaps, st.Matched, st.Reverted, st.InvalidMoves)
	fmt.Printf("  Tiles cleared:   %d (%.2f per match)\n", st.TilesCleared, totals.ClearPerSwap)
	fmt.Printf("  Cascade passes:  %d (%.2f per match, longest chain %d)\n",
		st.Passes, totals.AvgPasses, st.LongestChain)
	fmt.Printf("  Revert ratio:    %.1f%%\n", 100*totals.RevertRatio)
	fmt.Printf("  Shuffles:        %d\n", st.Shuffles)
	fmt.Println()

	// Print header
	fmt.Printf("  %-16s  %-10s  %5s  %5s  %6s  %7s  %5s  %8s\n",
		"Date", "Player", "Swaps", "Match", "Passes", "Cleared", "Chain", "Time")
	fmt.Printf("  %-16s  %-10s  %5s  %5s  %6s  %7s  %5s  %8s\n",
		"----", "------", "-----", "-----", "------", "-------", "-----", "----")

	// Print sessions
	for _, s := range sessions {
		fmt.Printf("  %-16s  %-10.10s  %5d  %5d  %6d  %7d  %5d  %8s\n",
			s.CreatedAt.Format("2006-01-02 15:04"), s.Player, s.Stats.Swaps, s.Stats.Matched,
			s.Stats.Passes, s.Stats.TilesCleared, s.Stats.LongestChain, s.Duration.Round(time.Second))
	}
}
