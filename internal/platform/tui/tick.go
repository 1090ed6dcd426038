// Package tui provides the Bubble Tea front-end for Klondike: keyboard
// intents, table rendering, the scoreboard and SSH session serving.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// clockInterval is the period of the game clock.
const clockInterval = time.Second

// TickMsg is sent once per clock interval to advance the game timer.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends the next clock tick.
func tickCmd() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
