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

type dashboardFocus int

const (
	focusJobs dashboardFocus = iota
	focusInterviews
)

// DashboardModel is the view model for the dashboard screen: stat cards, the
// job postings table and the recent interviews table.
type DashboardModel struct {
	jobsTable       table.Model
	interviewsTable table.Model
	jobs            []admin.Job
	interviews      []admin.Interview
	focus           dashboardFocus
	keys            tui.KeyMap
}

// NewDashboardModel creates a DashboardModel with empty tables.
func NewDashboardModel() DashboardModel {
	m := DashboardModel{
		jobsTable: newTable([]table.Column{
			{Title: "Title", Width: 26},
			{Title: "Department", Width: 16},
			{Title: "Status", Width: 8},
			{Title: "Applications", Width: 12},
			{Title: "Created", Width: 12},
		}, 6),
		interviewsTable: newTable(interviewColumns, 6),
		keys:            tui.DefaultKeyMap,
	}
	focusTable(&m.jobsTable, true)
	return m
}

// SetData replaces the rows of both tables.
func (m *DashboardModel) SetData(jobs []admin.Job, interviews []admin.Interview) {
	m.jobs = jobs
	m.interviews = interviews

	rows := make([]table.Row, len(jobs))
	for i, j := range jobs {
		rows[i] = table.Row{
			orNA(j.Title),
			orNA(j.Department),
			orNA(j.Status),
			fmt.Sprintf("%d", j.ApplicationsCount),
			j.CreatedAt.Date(),
		}
	}
	m.jobsTable.SetRows(rows)
	m.interviewsTable.SetRows(interviewRows(interviews))
}

// SetHeight sizes both tables to share the available rows.
func (m *DashboardModel) SetHeight(h int) {
	rows := (h - 18) / 2
	if rows < 3 {
		rows = 3
	}
	m.jobsTable.SetHeight(rows)
	m.interviewsTable.SetHeight(rows)
}

// SelectedJob returns the job under the cursor.
func (m DashboardModel) SelectedJob() (admin.Job, bool) {
	i := m.jobsTable.Cursor()
	if i < 0 || i >= len(m.jobs) {
		return admin.Job{}, false
	}
	return m.jobs[i], true
}

// SelectedInterview returns the interview under the cursor.
func (m DashboardModel) SelectedInterview() (admin.Interview, bool) {
	i := m.interviewsTable.Cursor()
	if i < 0 || i >= len(m.interviews) {
		return admin.Interview{}, false
	}
	return m.interviews[i], true
}

// Init implements tea.Model.
func (m DashboardModel) Init() tea.Cmd {
	return nil
}

// Update handles key presses on the dashboard.
func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Tab):
		if m.focus == focusJobs {
			m.focus = focusInterviews
		} else {
			m.focus = focusJobs
		}
		focusTable(&m.jobsTable, m.focus == focusJobs)
		focusTable(&m.interviewsTable, m.focus == focusInterviews)
		return m, nil

	case key.Matches(keyMsg, m.keys.New):
		return m, send(tui.OpenJobFormMsg{})

	case key.Matches(keyMsg, m.keys.Enter):
		if m.focus == focusJobs {
			if j, ok := m.SelectedJob(); ok {
				return m, send(tui.SelectJobMsg{JobID: j.ID})
			}
			return m, nil
		}
		if iv, ok := m.SelectedInterview(); ok {
			return m, send(tui.SelectInterviewMsg{InterviewID: iv.ID})
		}
		return m, nil

	case m.focus == focusJobs && key.Matches(keyMsg, m.keys.Edit):
		if j, ok := m.SelectedJob(); ok {
			return m, send(tui.OpenJobFormMsg{Job: &j})
		}
		return m, nil

	case m.focus == focusJobs && key.Matches(keyMsg, m.keys.Delete):
		if j, ok := m.SelectedJob(); ok {
			return m, send(tui.RequestDeleteJobMsg{JobID: j.ID})
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == focusJobs {
		m.jobsTable, cmd = m.jobsTable.Update(msg)
	} else {
		m.interviewsTable, cmd = m.interviewsTable.Update(msg)
	}
	return m, cmd
}

// View renders the dashboard from state. spin is the current spinner frame.
func (m DashboardModel) View(state *tui.Model, spin string) string {
	cards := lipgloss.JoinHorizontal(lipgloss.Top, statCards(state, spin)...)

	jobs := m.jobsTable.View()
	switch {
	case state.Loading[tui.OpJobs] && len(m.jobs) == 0:
		jobs = placeholder(spin + " Loading jobs...")
	case len(m.jobs) == 0:
		jobs = placeholder("No jobs found.")
	}

	interviews := m.interviewsTable.View()
	switch {
	case state.Loading[tui.OpInterviews] && len(m.interviews) == 0:
		interviews = placeholder(spin + " Loading interviews...")
	case len(m.interviews) == 0:
		interviews = placeholder("No interviews found.")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		cards,
		"",
		section("Job Postings", jobs),
		"",
		section("Recent Interviews", interviews),
	)
}

func statCards(state *tui.Model, spin string) []string {
	value := func(n func(*admin.DashboardSummary) int) string {
		if state.Loading[tui.OpSummary] {
			return spin
		}
		if state.Summary == nil {
			return "N/A"
		}
		return fmt.Sprintf("%d", n(state.Summary))
	}
	card := func(label, v string) string {
		return tui.CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			tui.DimStyle.Render(label),
			tui.TitleStyle.Render(v),
		))
	}
	return []string{
		card("Open Positions", value(func(s *admin.DashboardSummary) int { return s.OpenPositions })),
		card("Total Applications", value(func(s *admin.DashboardSummary) int { return s.TotalApplications })),
		card("Interviews Scheduled", value(func(s *admin.DashboardSummary) int { return s.InterviewsScheduled })),
		card("Pending Reviews", value(func(s *admin.DashboardSummary) int { return s.PendingReviews })),
	}
}
