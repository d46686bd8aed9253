// Package config provides YAML-based game configuration loading and
// difficulty presets for the match-3 game.
package config

import (
	"fmt"

	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
)

// Match3Config contains all configuration for the match-3 game.
type Match3Config struct {
	Board      BoardConfig      `yaml:"board"`
	Timing     TimingConfig     `yaml:"timing"`
	Cascade    CascadeConfig    `yaml:"cascade"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the grid and how it is drawn in the terminal.
type BoardConfig struct {
	Columns   int     `yaml:"columns"`
	Rows      int     `yaml:"rows"`
	CellSize  float64 `yaml:"cell_size"`  // World units per cell, used for framing
	KindCount int     `yaml:"kind_count"` // Number of distinct tile kinds
	CellW     int     `yaml:"cell_w"`     // Terminal columns per cell
	CellH     int     `yaml:"cell_h"`     // Terminal rows per cell
}

// TimingConfig holds animation durations in simulation ticks (60 per second).
type TimingConfig struct {
	SwapTicks          int `yaml:"swap_ticks"`           // Tile slide during a swap or revert
	PopTicks           int `yaml:"pop_ticks"`            // Shrink of removed tiles
	CollapseDelayTicks int `yaml:"collapse_delay_ticks"` // Pause between removal and gravity
	FallTicks          int `yaml:"fall_ticks"`           // Gravity and refill fall
	SettleTicks        int `yaml:"settle_ticks"`         // Pause before detecting again
}

// CascadeConfig bounds the cascade loop and board generation.
type CascadeConfig struct {
	MaxPasses        int  `yaml:"max_passes"`        // 0 means unbounded
	GenerateAttempts int  `yaml:"generate_attempts"` // Retries when a board cannot be filled
	AutoShuffle      bool `yaml:"auto_shuffle"`      // Replace the board when no move is left
}

// DifficultyConfig selects the preset applied on load.
type DifficultyConfig struct {
	Preset string `yaml:"preset"` // easy, normal or hard
	Hints  bool   `yaml:"hints"`  // Whether the hint key is honoured
}

// Engine returns the engine parameters of this configuration.
func (c Match3Config) Engine() engine.Config {
	return engine.Config{
		Columns:          c.Board.Columns,
		Rows:             c.Board.Rows,
		CellSize:         c.Board.CellSize,
		KindCount:        c.Board.KindCount,
		GenerateAttempts: c.Cascade.GenerateAttempts,
	}
}

// Validate checks the board parameters and rejects negative timings.
func (c Match3Config) Validate() error {
	if err := c.Engine().Validate(); err != nil {
		return err
	}
	if c.Board.CellW < 1 || c.Board.CellH < 1 {
		return fmt.Errorf("config: cell_w and cell_h must be at least 1, got %dx%d", c.Board.CellW, c.Board.CellH)
	}
	t := c.Timing
	for name, v := range map[string]int{
		"swap_ticks":           t.SwapTicks,
		"pop_ticks":            t.PopTicks,
		"collapse_delay_ticks": t.CollapseDelayTicks,
		"fall_ticks":           t.FallTicks,
		"settle_ticks":         t.SettleTicks,
	} {
		if v < 0 {
			return fmt.Errorf("config: %s must not be negative, got %d", name, v)
		}
	}
	if c.Cascade.MaxPasses < 0 {
		return fmt.Errorf("config: max_passes must not be negative, got %d", c.Cascade.MaxPasses)
	}
	return nil
}

// DefaultMatch3Config returns the default match-3 configuration.
func DefaultMatch3Config() Match3Config {
	return Match3Config{
		Board: BoardConfig{
			Columns:   8,
			Rows:      8,
			CellSize:  1.0,
			KindCount: 6,
			CellW:     4,
			CellH:     2,
		},
		Timing: TimingConfig{
			SwapTicks:          18, // 0.3s
			PopTicks:           12, // 0.2s
			CollapseDelayTicks: 30, // 0.5s
			FallTicks:          30, // 0.5s
			SettleTicks:        12, // 0.2s
		},
		Cascade: CascadeConfig{
			MaxPasses:        0,
			GenerateAttempts: engine.DefaultGenerateAttempts,
			AutoShuffle:      false,
		},
		Difficulty: DifficultyConfig{
			Preset: string(DifficultyNormal),
			Hints:  true,
		},
	}
}

// DefaultMiniConfig returns the configuration of the small variant.
func DefaultMiniConfig() Match3Config {
	cfg := DefaultMatch3Config()
	cfg.Board.Columns = 6
	cfg.Board.Rows = 6
	cfg.Board.KindCount = 5
	return cfg
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset maps a name to a preset. Unknown names yield "".
func ParsePreset(name string) DifficultyPreset {
	switch DifficultyPreset(name) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(name)
	default:
		return ""
	}
}

// KindCountForPreset returns the number of tile kinds for a preset. Fewer
// kinds mean more available moves and longer cascades.
func KindCountForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 5
	case DifficultyHard:
		return 7
	default:
		return 6
	}
}

// ApplyMatch3Preset modifies the config based on a difficulty preset.
func ApplyMatch3Preset(cfg *Match3Config, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	cfg.Difficulty.Preset = string(preset)
	cfg.Board.KindCount = KindCountForPreset(preset)
	cfg.Difficulty.Hints = preset != DifficultyHard
}
