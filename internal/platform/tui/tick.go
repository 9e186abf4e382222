// Package tui provides the Bubble Tea front end for t2048.
// It handles the terminal UI loop, key bindings, themes and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// flashDuration is how long the invalid-move notice stays up.
const flashDuration = 400 * time.Millisecond

// flashDoneMsg clears the invalid-move notice.
type flashDoneMsg struct {
	seq int
}

// flashCmd returns a command that ends the flash identified by seq.
func flashCmd(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return flashDoneMsg{seq: seq}
	})
}
