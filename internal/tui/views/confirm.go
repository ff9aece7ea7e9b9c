package views

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/recruitdesk/recruitdesk/internal/tui"
)

// ConfirmModel asks before a job is deleted.
type ConfirmModel struct {
	subject string
	keys    tui.KeyMap
}

// NewConfirmModel creates the delete confirmation for the named job.
func NewConfirmModel(subject string) ConfirmModel {
	return ConfirmModel{subject: subject, keys: tui.DefaultKeyMap}
}

// Update answers the confirmation on y, n or esc.
func (m ConfirmModel) Update(msg tea.Msg) (ConfirmModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		return m, send(tui.ConfirmDeleteMsg{Confirmed: true})
	case key.Matches(keyMsg, m.keys.Cancel):
		return m, send(tui.ConfirmDeleteMsg{Confirmed: false})
	}
	return m, nil
}

// View renders the modal.
func (m ConfirmModel) View() string {
	lines := []string{tui.WarningStyle.Bold(true).Render("Delete job posting")}
	if m.subject != "" {
		lines = append(lines, "", m.subject)
	}
	lines = append(lines,
		"",
		"Are you sure you want to delete this job? This action cannot be undone.",
		"",
		tui.DimStyle.Render("y delete · n/esc cancel"),
	)
	return tui.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
