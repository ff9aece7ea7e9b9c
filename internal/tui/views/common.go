// Package views provides the screens and modals of the admin dashboard.
// Views render state and turn key presses into intent messages; they never
// perform network calls.
package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/recruitdesk/recruitdesk/internal/admin"
	"github.com/recruitdesk/recruitdesk/internal/tui"
)

// send wraps an intent message in a command.
func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func tableStyles(focused bool) table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#374151")).
		BorderBottom(true).
		Bold(true)
	if focused {
		s.Selected = s.Selected.
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#4F46E5")).
			Bold(false)
	} else {
		s.Selected = s.Selected.
			Foreground(lipgloss.NoColor{}).
			Background(lipgloss.NoColor{}).
			Bold(false)
	}
	return s
}

func newTable(cols []table.Column, height int) table.Model {
	t := table.New(
		table.WithColumns(cols),
		table.WithHeight(height),
	)
	t.SetStyles(tableStyles(false))
	return t
}

func focusTable(t *table.Model, focused bool) {
	if focused {
		t.Focus()
	} else {
		t.Blur()
	}
	t.SetStyles(tableStyles(focused))
}

var interviewColumns = []table.Column{
	{Title: "Candidate", Width: 22},
	{Title: "Job Title", Width: 24},
	{Title: "Date", Width: 12},
	{Title: "Status", Width: 15},
	{Title: "Score", Width: 8},
}

func interviewRows(ivs []admin.Interview) []table.Row {
	rows := make([]table.Row, len(ivs))
	for i, iv := range ivs {
		rows[i] = table.Row{
			orNA(iv.CandidateName),
			orNA(iv.JobTitle),
			iv.InterviewDate.Date(),
			orNA(iv.Status),
			iv.ScoreText(),
		}
	}
	return rows
}

// placeholder renders a dim one-line message in place of empty content.
func placeholder(s string) string {
	return tui.DimStyle.Render(s)
}

// section renders a heading followed by body.
func section(title, body string) string {
	return lipgloss.JoinVertical(lipgloss.Left, tui.TitleStyle.Render(title), body)
}
