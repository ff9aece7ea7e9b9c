package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/recruitdesk/recruitdesk/internal/admin"
	"github.com/recruitdesk/recruitdesk/internal/tui"
)

// JobDetailModel shows one job posting and the interviews held for it.
type JobDetailModel struct {
	job        *admin.Job
	interviews []admin.Interview
	table      table.Model
	width      int
	keys       tui.KeyMap
}

// NewJobDetailModel creates an empty JobDetailModel.
func NewJobDetailModel() JobDetailModel {
	m := JobDetailModel{
		table: newTable(interviewColumns, 8),
		width: 80,
		keys:  tui.DefaultKeyMap,
	}
	focusTable(&m.table, true)
	return m
}

// SetData replaces the job and its interviews.
func (m *JobDetailModel) SetData(job *admin.Job, interviews []admin.Interview) {
	m.job = job
	m.interviews = interviews
	m.table.SetRows(interviewRows(interviews))
}

// SetSize adapts the description wrap width and table height.
func (m *JobDetailModel) SetSize(w, h int) {
	m.width = w
	rows := h - 20
	if rows < 3 {
		rows = 3
	}
	m.table.SetHeight(rows)
}

// Init implements tea.Model.
func (m JobDetailModel) Init() tea.Cmd {
	return nil
}

// Update handles key presses on the job detail screen.
func (m JobDetailModel) Update(msg tea.Msg) (JobDetailModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.job == nil {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Edit):
		job := *m.job
		return m, send(tui.OpenJobFormMsg{Job: &job})
	case key.Matches(keyMsg, m.keys.Delete):
		return m, send(tui.RequestDeleteJobMsg{JobID: m.job.ID})
	case key.Matches(keyMsg, m.keys.Invites):
		return m, send(tui.SendInvitesMsg{JobID: m.job.ID})
	case key.Matches(keyMsg, m.keys.Enter):
		i := m.table.Cursor()
		if i >= 0 && i < len(m.interviews) {
			return m, send(tui.SelectInterviewMsg{InterviewID: m.interviews[i].ID})
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the job detail from state.
func (m JobDetailModel) View(state *tui.Model, spin string) string {
	if state.Loading[tui.OpJobDetails] {
		return placeholder(spin + " Loading job details...")
	}
	if m.job == nil {
		return placeholder("Job details not found or could not be loaded.")
	}
	j := m.job

	desc := j.Description
	if desc == "" {
		desc = "No description provided."
	}
	wrap := m.width - 6
	if wrap < 20 {
		wrap = 20
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		tui.TitleStyle.Render(j.Title),
		tui.LabelStyle.Render("Department: ")+j.Department,
		tui.LabelStyle.Render("Status: ")+tui.StatusBadge(j.Status),
		tui.LabelStyle.Render("Applications: ")+fmt.Sprintf("%d", j.ApplicationsCount),
		tui.LabelStyle.Render("Created: ")+j.CreatedAt.Date(),
	)
	if j.NumberOfQuestions != nil {
		header = lipgloss.JoinVertical(lipgloss.Left, header,
			tui.LabelStyle.Render("Questions per interview: ")+fmt.Sprintf("%d", *j.NumberOfQuestions))
	}
	if j.MustAskTopics != nil && *j.MustAskTopics != "" {
		header = lipgloss.JoinVertical(lipgloss.Left, header,
			tui.LabelStyle.Render("Must-ask topics: ")+*j.MustAskTopics)
	}

	description := tui.BoxStyle.Padding(0, 1).Width(wrap).Render(desc)

	actions := tui.DimStyle.Render("e edit job · d delete job · i send invites · enter open interview · esc back")

	var interviews string
	if len(m.interviews) == 0 {
		interviews = placeholder("No interviews scheduled for this job yet.")
	} else {
		interviews = m.table.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		section("Job Description", description),
		actions,
		"",
		section(fmt.Sprintf("Interviews for this Job (%d)", len(m.interviews)), interviews),
	)
}
