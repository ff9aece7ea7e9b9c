// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// KeyCtrlC is the quit key; it must be pressed twice.
const KeyCtrlC = "ctrl+c"

// ErrNotTerminal is returned by Run when stdout is not a terminal.
var ErrNotTerminal = errors.New("interactive dashboard requires a terminal; use the summary, jobs and interviews commands instead")

// IsTTY returns true if stdout is connected to a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Run starts the TUI program with the given model in alternate screen mode.
// It returns ErrNotTerminal when stdout is not a TTY.
func Run(m tea.Model) error {
	if !IsTTY() {
		return ErrNotTerminal
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
