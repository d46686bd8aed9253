package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// SessionStats counts what happened during one play session. These are
// activity counters, not a score.
type SessionStats struct {
	Swaps        int // Adjacent swaps attempted
	Matched      int // Swaps that produced a match
	Reverted     int // Swaps undone for lack of a match
	InvalidMoves int // Releases on a non-adjacent cell
	Passes       int // Cascade passes across all swaps
	TilesCleared int // Tiles removed by matches
	LongestChain int // Most passes triggered by a single swap
	Shuffles     int // Boards replaced on request or deadlock
}

// Add accumulates another set of counters into s. LongestChain keeps the
// maximum.
func (s *SessionStats) Add(o SessionStats) {
	s.Swaps += o.Swaps
	s.Matched += o.Matched
	s.Reverted += o.Reverted
	s.InvalidMoves += o.InvalidMoves
	s.Passes += o.Passes
	s.TilesCleared += o.TilesCleared
	s.Shuffles += o.Shuffles
	s.LongestChain = max(s.LongestChain, o.LongestChain)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Paused bool // Whether the game is paused
	Busy   bool // Whether the game is resolving a move and ignores input
	Stats  SessionStats
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
