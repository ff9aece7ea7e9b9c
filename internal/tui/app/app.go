// Package app provides the view-state coordinator: the top-level Bubble Tea
// model that owns all state, issues fetches and mutations, and routes keys to
// the active view.
package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/recruitdesk/recruitdesk/internal/admin"
	"github.com/recruitdesk/recruitdesk/internal/config"
	"github.com/recruitdesk/recruitdesk/internal/tui"
	"github.com/recruitdesk/recruitdesk/internal/tui/commands"
	"github.com/recruitdesk/recruitdesk/internal/tui/views"
)

// App is the main TUI application that wires all views together.
type App struct {
	model *tui.Model
	env   commands.Env
	keys  tui.KeyMap

	spinner spinner.Model
	help    help.Model

	// View models
	dashboardView views.DashboardModel
	jobView       views.JobDetailModel
	interviewView views.InterviewDetailModel
	formView      views.JobFormModel
	confirmView   views.ConfirmModel
}

// New creates a new App backed by env.
func New(cfg *config.Config, env commands.Env) *App {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = tui.SelectedStyle

	return &App{
		model:         tui.NewModel(cfg),
		env:           env,
		keys:          tui.DefaultKeyMap,
		spinner:       s,
		help:          help.New(),
		dashboardView: views.NewDashboardModel(),
		jobView:       views.NewJobDetailModel(),
		interviewView: views.NewInterviewDetailModel(cfg.API.FileServerURL),
	}
}

// Model exposes the state container.
func (a *App) Model() *tui.Model {
	return a.model
}

// InterviewView exposes the interview detail view model.
func (a *App) InterviewView() views.InterviewDetailModel {
	return a.interviewView
}

// FormView exposes the job form view model.
func (a *App) FormView() views.JobFormModel {
	return a.formView
}

// Init fetches the summary, the jobs and all interviews.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.refreshDashboard())
}

// ============================================================================
// Fetch operations
// ============================================================================

func (a *App) refreshDashboard() tea.Cmd {
	return tea.Batch(
		a.fetchInterviews(),
		a.fetchJobs(),
		a.fetchSummary(),
	)
}

func (a *App) fetchSummary() tea.Cmd {
	return commands.FetchSummaryCmd(a.env, a.model.Begin(tui.OpSummary))
}

func (a *App) fetchJobs() tea.Cmd {
	return commands.FetchJobsCmd(a.env, a.model.Begin(tui.OpJobs))
}

func (a *App) fetchInterviews() tea.Cmd {
	return commands.FetchInterviewsCmd(a.env, a.model.Begin(tui.OpInterviews))
}

func (a *App) fetchJobDetail(id string) tea.Cmd {
	token := a.model.Begin(tui.OpJobDetails, tui.OpInterviews)
	return commands.FetchJobDetailCmd(a.env, token, id)
}

func (a *App) fetchInterviewDetail(id string) tea.Cmd {
	return commands.FetchInterviewDetailCmd(a.env, a.model.Begin(tui.OpInterviewDetails), id)
}

// ============================================================================
// Update
// ============================================================================

// Update handles messages and updates the application state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.model.Width = msg.Width
		a.model.Height = msg.Height
		w := a.contentWidth()
		a.help.Width = w
		a.dashboardView.SetHeight(msg.Height)
		a.jobView.SetSize(w, msg.Height)
		a.interviewView.SetSize(w, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == tui.KeyCtrlC {
			if a.model.CtrlCPending {
				// Second press within timeout - exit
				return a, tea.Quit
			}
			// First press - set pending and start timeout
			a.model.CtrlCPending = true
			return a, tea.Tick(time.Second, func(time.Time) tea.Msg {
				return tui.CtrlCResetMsg{}
			})
		}
		return a.handleKey(msg)

	case tui.CtrlCResetMsg:
		a.model.CtrlCPending = false
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	// Fetch results
	case tui.SummaryLoadedMsg:
		a.applySummary(msg)
		return a, nil
	case tui.JobsLoadedMsg:
		a.applyJobs(msg)
		return a, nil
	case tui.InterviewsLoadedMsg:
		a.applyInterviews(msg)
		return a, nil
	case tui.JobDetailLoadedMsg:
		a.applyJobDetail(msg)
		return a, nil
	case tui.InterviewDetailLoadedMsg:
		a.applyInterviewDetail(msg)
		return a, nil

	// Mutation results
	case tui.JobSavedMsg:
		return a, a.handleJobSaved(msg)
	case tui.JobDeletedMsg:
		return a, a.handleJobDeleted(msg)
	case tui.FeedbackSavedMsg:
		return a, a.handleFeedbackSaved(msg)

	// Intents
	case tui.SelectJobMsg:
		return a, a.selectJob(msg.JobID)
	case tui.SelectInterviewMsg:
		return a, a.selectInterview(msg.InterviewID)
	case tui.BackToDashboardMsg:
		return a, a.backToDashboard()
	case tui.OpenJobFormMsg:
		return a, a.openJobForm(msg.Job)
	case tui.CloseJobFormMsg:
		a.model.FormOpen = false
		a.model.EditingJob = nil
		return a, nil
	case tui.SubmitJobMsg:
		return a, a.submitJob(msg)
	case tui.RequestDeleteJobMsg:
		a.requestDelete(msg.JobID)
		return a, nil
	case tui.ConfirmDeleteMsg:
		return a, a.confirmDelete(msg.Confirmed)
	case tui.SaveFeedbackMsg:
		return a, a.saveFeedback(msg)
	case tui.SendInvitesMsg:
		a.model.Notice = fmt.Sprintf("Placeholder: Send invites for Job ID: %s", msg.JobID)
		return a, nil
	case tui.DismissErrorMsg:
		a.model.Err = ""
		a.model.Notice = ""
		return a, nil
	}

	// Cursor blinks and other widget messages go to whatever has focus.
	var cmd tea.Cmd
	switch {
	case a.model.FormOpen:
		a.formView, cmd = a.formView.Update(msg)
	case a.model.View.Kind() == tui.ViewInterviewDetail:
		a.interviewView, cmd = a.interviewView.Update(msg)
	}
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Modals take every key.
	if a.model.FormOpen {
		a.formView, cmd = a.formView.Update(msg)
		return a, cmd
	}
	if a.model.PendingDelete != "" {
		a.confirmView, cmd = a.confirmView.Update(msg)
		return a, cmd
	}

	kind := a.model.View.Kind()
	if kind == tui.ViewInterviewDetail && a.interviewView.Capturing() {
		a.interviewView, cmd = a.interviewView.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keys.Escape):
		if kind != tui.ViewDashboard {
			return a, a.backToDashboard()
		}
		a.model.Notice = ""
		return a, nil
	case key.Matches(msg, a.keys.Dashboard, a.keys.Jobs, a.keys.Interviews):
		return a, a.backToDashboard()
	case key.Matches(msg, a.keys.Dismiss):
		a.model.Err = ""
		a.model.Notice = ""
		return a, nil
	case key.Matches(msg, a.keys.Refresh):
		return a, a.refresh()
	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
		return a, nil
	}

	switch kind {
	case tui.ViewJobDetail:
		a.jobView, cmd = a.jobView.Update(msg)
	case tui.ViewInterviewDetail:
		a.interviewView, cmd = a.interviewView.Update(msg)
	default:
		a.dashboardView, cmd = a.dashboardView.Update(msg)
	}
	return a, cmd
}

// refresh re-fetches whatever the current view shows.
func (a *App) refresh() tea.Cmd {
	if id, ok := a.model.View.JobID(); ok {
		return a.fetchJobDetail(id)
	}
	if id, ok := a.model.View.InterviewID(); ok {
		return a.fetchInterviewDetail(id)
	}
	return a.refreshDashboard()
}

// ============================================================================
// Result application
// ============================================================================

func (a *App) applySummary(msg tui.SummaryLoadedMsg) {
	if !a.model.Finish(tui.OpSummary, msg.Token) {
		return
	}
	if msg.Err != nil {
		a.model.Err = msg.Err.Error()
		a.model.Summary = nil
		return
	}
	a.model.Summary = msg.Summary
	a.model.Err = ""
}

func (a *App) applyJobs(msg tui.JobsLoadedMsg) {
	if !a.model.Finish(tui.OpJobs, msg.Token) {
		return
	}
	if msg.Err != nil {
		a.model.Err = msg.Err.Error()
		a.model.Jobs = []admin.Job{}
	} else {
		a.model.Jobs = msg.Jobs
		a.model.Err = ""
	}
	a.syncDashboard()
}

func (a *App) applyInterviews(msg tui.InterviewsLoadedMsg) {
	if !a.model.Finish(tui.OpInterviews, msg.Token) {
		return
	}
	if msg.Err != nil {
		a.model.Err = msg.Err.Error()
		a.model.Interviews = []admin.Interview{}
	} else {
		a.model.Interviews = msg.Interviews
		a.model.Err = ""
	}
	a.syncDashboard()
	a.syncJobView()
}

func (a *App) applyJobDetail(msg tui.JobDetailLoadedMsg) {
	detail := a.model.Finish(tui.OpJobDetails, msg.Token)
	list := a.model.Finish(tui.OpInterviews, msg.Token)
	if !detail && !list {
		return
	}

	if msg.Err != nil {
		a.model.Err = msg.Err.Error()
		if detail {
			a.model.SelectedJob = nil
		}
		if list {
			a.model.Interviews = []admin.Interview{}
		}
	} else {
		if detail {
			a.model.SelectedJob = msg.Job
		}
		if list {
			a.model.Interviews = msg.Interviews
		}
		a.model.Err = ""
	}
	a.syncDashboard()
	a.syncJobView()
}

func (a *App) applyInterviewDetail(msg tui.InterviewDetailLoadedMsg) {
	if !a.model.Finish(tui.OpInterviewDetails, msg.Token) {
		return
	}
	if msg.Err != nil {
		a.model.Err = msg.Err.Error()
		a.model.SelectedInterview = nil
	} else {
		a.model.SelectedInterview = msg.Interview
		a.model.Err = ""
	}
	a.interviewView.Load(a.model.SelectedInterview)
}

func (a *App) syncDashboard() {
	a.dashboardView.SetData(a.model.Jobs, a.model.Interviews)
}

func (a *App) syncJobView() {
	a.jobView.SetData(a.model.SelectedJob, a.model.Interviews)
}

// ============================================================================
// Selection
// ============================================================================

func (a *App) selectJob(id string) tea.Cmd {
	a.model.Notice = ""
	if a.model.SelectedJob != nil && a.model.SelectedJob.ID != id {
		a.model.SelectedJob = nil
	}
	a.model.SelectJob(id)
	cmd := a.fetchJobDetail(id)
	a.syncJobView()
	return cmd
}

func (a *App) selectInterview(id string) tea.Cmd {
	a.model.Notice = ""
	if a.model.SelectedInterview != nil && a.model.SelectedInterview.ID != id {
		a.model.SelectedInterview = nil
	}
	a.model.SelectInterview(id)
	a.interviewView.Load(a.model.SelectedInterview)
	return a.fetchInterviewDetail(id)
}

func (a *App) backToDashboard() tea.Cmd {
	a.model.Notice = ""
	a.model.ResetToDashboard()
	a.interviewView.Load(nil)
	a.syncJobView()
	return a.refreshDashboard()
}

// ============================================================================
// Mutations
// ============================================================================

func (a *App) openJobForm(job *admin.Job) tea.Cmd {
	a.model.FormOpen = true
	a.model.EditingJob = job
	a.formView = views.NewJobFormModel(job)
	return a.formView.Init()
}

func (a *App) submitJob(msg tui.SubmitJobMsg) tea.Cmd {
	if err := msg.Input.Validate(); err != nil {
		a.formView.SetError(validationMessage(err))
		return nil
	}
	a.formView.SetError("")
	return commands.SaveJobCmd(a.env, msg.JobID, msg.Input)
}

func validationMessage(err error) string {
	if errors.Is(err, admin.ErrMissingRequired) {
		return admin.MissingFieldsMessage
	}
	s := err.Error()
	return strings.ToUpper(s[:1]) + s[1:] + "."
}

func (a *App) handleJobSaved(msg tui.JobSavedMsg) tea.Cmd {
	if msg.Err != nil {
		a.model.Err = "Failed to save job: " + msg.Err.Error()
		// The modal covers the banner.
		a.formView.SetError(a.model.Err)
		return nil
	}

	a.model.FormOpen = false
	a.model.EditingJob = nil
	a.model.Err = ""

	cmds := []tea.Cmd{a.fetchJobs(), a.fetchSummary()}
	if id, ok := a.model.View.JobID(); ok && msg.JobID != "" && id == msg.JobID {
		cmds = append(cmds, a.fetchJobDetail(id))
	}
	return tea.Batch(cmds...)
}

func (a *App) requestDelete(id string) {
	a.model.PendingDelete = id
	subject := ""
	if j, ok := a.model.FindJob(id); ok {
		subject = j.Title
	} else if a.model.SelectedJob != nil && a.model.SelectedJob.ID == id {
		subject = a.model.SelectedJob.Title
	}
	a.confirmView = views.NewConfirmModel(subject)
}

func (a *App) confirmDelete(confirmed bool) tea.Cmd {
	id := a.model.PendingDelete
	a.model.PendingDelete = ""
	if !confirmed || id == "" {
		return nil
	}
	return commands.DeleteJobCmd(a.env, id)
}

func (a *App) handleJobDeleted(msg tui.JobDeletedMsg) tea.Cmd {
	if msg.Err != nil {
		a.model.Err = "Failed to delete job: " + msg.Err.Error()
		return nil
	}

	if id, ok := a.model.View.JobID(); ok && id == msg.JobID {
		// Returning to the dashboard re-fetches jobs and summary as well.
		return a.backToDashboard()
	}
	a.model.Err = ""
	return tea.Batch(a.fetchJobs(), a.fetchSummary())
}

func (a *App) saveFeedback(msg tui.SaveFeedbackMsg) tea.Cmd {
	score, err := admin.ParseScore(msg.Score)
	if err != nil {
		a.interviewView.SetValidationError(admin.InvalidScoreMessage)
		return nil
	}
	a.interviewView.SetValidationError("")
	return commands.SaveFeedbackCmd(a.env, msg.InterviewID, score, msg.Feedback)
}

func (a *App) handleFeedbackSaved(msg tui.FeedbackSavedMsg) tea.Cmd {
	if msg.Err != nil {
		a.model.Err = "Failed to save feedback: " + msg.Err.Error()
		return nil
	}

	if id, ok := a.model.View.InterviewID(); ok && id == msg.InterviewID {
		updated := msg.Result.Interview
		a.model.SelectedInterview = &updated
		a.interviewView.Load(a.model.SelectedInterview)
	}

	a.model.Err = ""
	for i, iv := range a.model.Interviews {
		if iv.ID != msg.InterviewID {
			continue
		}
		merged, err := iv.Merge(msg.Result.Fields)
		if err != nil {
			a.model.Err = "Failed to save feedback: " + err.Error()
			continue
		}
		a.model.Interviews[i] = merged
	}
	a.syncDashboard()
	a.syncJobView()

	return a.fetchSummary()
}

// ============================================================================
// View
// ============================================================================

// contentWidth is the width of the main pane beside the sidebar.
func (a *App) contentWidth() int {
	w := a.model.Width
	if limit := a.model.Cfg.UI.MaxWidth; limit > 0 && w > limit {
		w = limit
	}
	return w - tui.SidebarStyle.GetWidth() - 4
}

// View renders the current application state.
func (a *App) View() string {
	spin := a.spinner.View()

	var content string
	switch a.model.View.Kind() {
	case tui.ViewJobDetail:
		content = a.jobView.View(a.model, spin)
	case tui.ViewInterviewDetail:
		content = a.interviewView.View(a.model, spin)
	default:
		content = a.dashboardView.View(a.model, spin)
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		tui.TitleStyle.Render(a.model.Title()),
		tui.DimStyle.Render("Welcome back, Admin!"),
	)

	parts := []string{header, ""}
	if a.model.Err != "" {
		parts = append(parts, tui.ErrorBannerStyle.Render(a.model.Err+"  "+tui.DimStyle.Render("(x to dismiss)")), "")
	}
	if a.model.Notice != "" {
		parts = append(parts, tui.NoticeBannerStyle.Render(a.model.Notice), "")
	}
	parts = append(parts, content, "", a.statusBar())

	main := lipgloss.NewStyle().Width(a.contentWidth()).PaddingLeft(2).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
	screen := lipgloss.JoinHorizontal(lipgloss.Top, a.sidebar(), main)

	switch {
	case a.model.FormOpen:
		return a.overlay(a.formView.View())
	case a.model.PendingDelete != "":
		return a.overlay(a.confirmView.View())
	}
	return screen
}

func (a *App) overlay(modal string) string {
	return lipgloss.Place(a.model.Width, a.model.Height, lipgloss.Center, lipgloss.Center, modal)
}

func (a *App) sidebar() string {
	kind := a.model.View.Kind()
	item := func(k, label string, active bool) string {
		if active {
			return tui.ActiveTabStyle.Padding(0, 1).Render(k + " " + label)
		}
		return "  " + tui.DimStyle.Render(k) + " " + label
	}
	disabled := func(label string) string {
		return "    " + tui.DimStyle.Strikethrough(true).Render(label)
	}

	lines := []string{
		tui.TitleStyle.Render("AI Portal"),
		"",
		item("1", "Dashboard", kind == tui.ViewDashboard),
		item("2", "Job Postings", kind == tui.ViewJobDetail),
		item("3", "Interviews", kind == tui.ViewInterviewDetail),
		disabled("Candidates"),
		disabled("Invitations"),
		"",
		disabled("Settings"),
		"",
		tui.DimStyle.Render(a.model.Cfg.API.BaseURL),
	}
	return tui.SidebarStyle.Height(max(a.model.Height-2, len(lines))).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (a *App) statusBar() string {
	status := a.help.View(a.keys)
	if a.model.Loading.Any() {
		status = a.spinner.View() + " loading · " + status
	}
	if a.model.CtrlCPending {
		status = tui.WarningStyle.Render("Press Ctrl+C again to exit")
	}
	return tui.StatusBarStyle.Render(status)
}
