package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/recruitdesk/recruitdesk/internal/admin"
	"github.com/recruitdesk/recruitdesk/internal/tui"
)

// questionsMessage is shown when the number of questions is not a number.
const questionsMessage = "Number of questions must be a whole number."

type formField int

const (
	fieldTitle formField = iota
	fieldDepartment
	fieldDescription
	fieldStatus
	fieldQuestions
	fieldTopics
	numFields
)

// JobFormModel is the modal for adding or editing a job posting. Entered
// values survive validation and save failures; only the coordinator closes
// it.
type JobFormModel struct {
	jobID       string
	title       textinput.Model
	department  textinput.Model
	description textarea.Model
	status      int // index into admin.JobStatuses
	questions   textinput.Model
	topics      textinput.Model
	focus       formField
	err         string
	keys        tui.KeyMap
}

// NewJobFormModel creates the form, pre-filled from job when editing. A nil
// job opens an empty form for a new posting.
func NewJobFormModel(job *admin.Job) JobFormModel {
	newInput := func(placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.Width = 48
		return ti
	}

	m := JobFormModel{
		title:      newInput("Job title"),
		department: newInput("Department"),
		questions:  newInput("Default (5)"),
		topics:     newInput("Optional, comma separated"),
		keys:       tui.DefaultKeyMap,
	}
	m.questions.CharLimit = 2

	m.description = textarea.New()
	m.description.Placeholder = "Enter full job description, responsibilities, qualifications..."
	m.description.ShowLineNumbers = false
	m.description.SetWidth(50)
	m.description.SetHeight(5)

	if job != nil {
		in := admin.InputFromJob(*job)
		m.jobID = job.ID
		m.title.SetValue(in.Title)
		m.department.SetValue(in.Department)
		m.description.SetValue(in.Description)
		m.status = statusIndex(in.Status)
		if job.NumberOfQuestions != nil {
			m.questions.SetValue(strconv.Itoa(*job.NumberOfQuestions))
		}
		if job.MustAskTopics != nil {
			m.topics.SetValue(*job.MustAskTopics)
		}
	}

	m.title.Focus()
	return m
}

func statusIndex(status string) int {
	for i, s := range admin.JobStatuses {
		if s == status {
			return i
		}
	}
	return 0
}

// JobID returns the id of the job being edited, or "" for a new posting.
func (m JobFormModel) JobID() string {
	return m.jobID
}

// Err returns the inline form error.
func (m JobFormModel) Err() string {
	return m.err
}

// SetError shows msg inline at the top of the form.
func (m *JobFormModel) SetError(msg string) {
	m.err = msg
}

// Input returns the form contents. The number of questions must be blank or
// a whole number.
func (m JobFormModel) Input() (admin.JobInput, error) {
	in := admin.JobInput{
		Title:       m.title.Value(),
		Department:  m.department.Value(),
		Description: m.description.Value(),
		Status:      admin.JobStatuses[m.status],
	}
	if s := strings.TrimSpace(m.questions.Value()); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return in, fmt.Errorf("number of questions must be a whole number")
		}
		in.NumberOfQuestions = &n
	}
	if s := strings.TrimSpace(m.topics.Value()); s != "" {
		in.MustAskTopics = &s
	}
	return in, nil
}

// Init starts the cursor blink.
func (m JobFormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *JobFormModel) setFocus(f formField) tea.Cmd {
	m.focus = (f + numFields) % numFields
	m.title.Blur()
	m.department.Blur()
	m.description.Blur()
	m.questions.Blur()
	m.topics.Blur()

	switch m.focus {
	case fieldTitle:
		return m.title.Focus()
	case fieldDepartment:
		return m.department.Focus()
	case fieldDescription:
		return m.description.Focus()
	case fieldQuestions:
		return m.questions.Focus()
	case fieldTopics:
		return m.topics.Focus()
	}
	return nil
}

// Update handles field navigation, editing and submission.
func (m JobFormModel) Update(msg tea.Msg) (JobFormModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.keys.Escape):
			return m, send(tui.CloseJobFormMsg{})
		case key.Matches(keyMsg, m.keys.Save):
			m.err = ""
			in, err := m.Input()
			if err != nil {
				m.err = questionsMessage
				return m, nil
			}
			return m, send(tui.SubmitJobMsg{JobID: m.jobID, Input: in})
		case key.Matches(keyMsg, m.keys.Tab):
			return m, m.setFocus(m.focus + 1)
		case keyMsg.String() == "shift+tab":
			return m, m.setFocus(m.focus - 1)
		}

		if m.focus == fieldStatus {
			switch {
			case key.Matches(keyMsg, m.keys.Left), key.Matches(keyMsg, m.keys.Up):
				m.status = (m.status + len(admin.JobStatuses) - 1) % len(admin.JobStatuses)
			case key.Matches(keyMsg, m.keys.Right), key.Matches(keyMsg, m.keys.Down):
				m.status = (m.status + 1) % len(admin.JobStatuses)
			case key.Matches(keyMsg, m.keys.Enter):
				return m, m.setFocus(m.focus + 1)
			}
			return m, nil
		}
		if key.Matches(keyMsg, m.keys.Enter) && m.focus != fieldDescription {
			return m, m.setFocus(m.focus + 1)
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldTitle:
		m.title, cmd = m.title.Update(msg)
	case fieldDepartment:
		m.department, cmd = m.department.Update(msg)
	case fieldDescription:
		m.description, cmd = m.description.Update(msg)
	case fieldQuestions:
		m.questions, cmd = m.questions.Update(msg)
	case fieldTopics:
		m.topics, cmd = m.topics.Update(msg)
	}
	return m, cmd
}

// View renders the modal.
func (m JobFormModel) View() string {
	title := "Add New Job Posting"
	if m.jobID != "" {
		title = "Edit Job Posting"
	}

	label := func(f formField, s string) string {
		if m.focus == f {
			return tui.SelectedStyle.Render("› " + s)
		}
		return tui.LabelStyle.Render("  " + s)
	}

	statuses := make([]string, len(admin.JobStatuses))
	for i, s := range admin.JobStatuses {
		if i == m.status {
			statuses[i] = tui.ActiveTabStyle.Render(s)
		} else {
			statuses[i] = tui.InactiveTabStyle.Render(s)
		}
	}

	var parts []string
	parts = append(parts, tui.TitleStyle.Render(title), "")
	if m.err != "" {
		parts = append(parts, tui.ErrorStyle.Render(m.err), "")
	}
	parts = append(parts,
		label(fieldTitle, "Job Title"), m.title.View(),
		label(fieldDepartment, "Department"), m.department.View(),
		label(fieldDescription, "Job Description"), m.description.View(),
		label(fieldStatus, "Status"), lipgloss.JoinHorizontal(lipgloss.Top, statuses...),
		label(fieldQuestions, "Number of Questions"), m.questions.View(),
		label(fieldTopics, "Must-Ask Topics"), m.topics.View(),
		"",
		tui.DimStyle.Render("tab next field · ctrl+s save · esc cancel"),
	)

	return tui.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
