// Package tui provides the Bubble Tea integration for the match-3 platform.
// It handles the terminal UI loop, input mapping, the variant menu, the
// session stats browser and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxTickRate caps the --fps flag. Timings are counted in ticks, so the
// rate also scales animation speed.
const maxTickRate = 240

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickInterval returns the delay between ticks. Rates outside
// [1, maxTickRate] fall back to 60 or are capped.
func tickInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	return time.Second / time.Duration(min(tickRate, maxTickRate))
}

// tickCmd schedules the next simulation tick.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
