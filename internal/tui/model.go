// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"github.com/google/uuid"

	"github.com/recruitdesk/recruitdesk/internal/admin"
	"github.com/recruitdesk/recruitdesk/internal/config"
)

// ViewKind identifies which screen is rendered.
type ViewKind int

const (
	ViewDashboard ViewKind = iota
	ViewJobDetail
	ViewInterviewDetail
)

func (k ViewKind) String() string {
	switch k {
	case ViewJobDetail:
		return "job detail"
	case ViewInterviewDetail:
		return "interview detail"
	default:
		return "dashboard"
	}
}

// Selection is the current view: the dashboard, one job, or one interview.
// At most one id is ever held, so a job and an interview cannot both be
// selected.
type Selection struct {
	kind ViewKind
	id   string
}

// DashboardView selects the dashboard.
func DashboardView() Selection {
	return Selection{kind: ViewDashboard}
}

// JobDetailView selects the job with id.
func JobDetailView(id string) Selection {
	return Selection{kind: ViewJobDetail, id: id}
}

// InterviewDetailView selects the interview with id.
func InterviewDetailView(id string) Selection {
	return Selection{kind: ViewInterviewDetail, id: id}
}

// Kind returns the selected screen.
func (s Selection) Kind() ViewKind {
	return s.kind
}

// JobID returns the selected job id, if a job is selected.
func (s Selection) JobID() (string, bool) {
	if s.kind != ViewJobDetail {
		return "", false
	}
	return s.id, true
}

// InterviewID returns the selected interview id, if an interview is selected.
func (s Selection) InterviewID() (string, bool) {
	if s.kind != ViewInterviewDetail {
		return "", false
	}
	return s.id, true
}

// Operation names a fetch operation and its loading flag.
type Operation int

const (
	OpSummary Operation = iota
	OpJobs
	OpInterviews
	OpJobDetails
	OpInterviewDetails
	numOperations
)

func (o Operation) String() string {
	switch o {
	case OpSummary:
		return "dashboard"
	case OpJobs:
		return "jobs"
	case OpInterviews:
		return "interviews"
	case OpJobDetails:
		return "jobDetails"
	case OpInterviewDetails:
		return "interviewDetails"
	default:
		return "unknown"
	}
}

// Loading holds one independent flag per fetch operation.
type Loading [numOperations]bool

// Any reports whether any operation is in flight.
func (l Loading) Any() bool {
	for _, v := range l {
		if v {
			return true
		}
	}
	return false
}

// Model is the main TUI model that holds all application state. Each fetch
// or mutation writes only its own slices.
type Model struct {
	// View selection
	View Selection

	// Server data, replaced wholesale by each fetch
	Summary           *admin.DashboardSummary
	Jobs              []admin.Job
	Interviews        []admin.Interview // all, or filtered to the selected job
	SelectedJob       *admin.Job
	SelectedInterview *admin.Interview

	// Bookkeeping
	Loading Loading
	Err     string // global banner
	Notice  string // informational banner

	// Job form and delete confirmation
	FormOpen      bool
	EditingJob    *admin.Job
	PendingDelete string

	// Configuration
	Cfg *config.Config

	// Terminal dimensions
	Width  int
	Height int

	// Ctrl+C confirmation state
	CtrlCPending bool

	// tokens holds the request token of the latest in-flight request per
	// operation; results carrying any other token are stale.
	tokens [numOperations]string

	// NewToken generates request tokens.
	NewToken func() string
}

// NewModel creates a new Model showing the dashboard.
func NewModel(cfg *config.Config) *Model {
	return &Model{
		View:       DashboardView(),
		Jobs:       make([]admin.Job, 0),
		Interviews: make([]admin.Interview, 0),
		Cfg:        cfg,
		NewToken:   uuid.NewString,

		// Default dimensions (will be updated on WindowSizeMsg)
		Width:  100,
		Height: 30,
	}
}

// Begin starts a request covering ops: it raises their loading flags and
// makes the returned token the only one whose result will be applied.
func (m *Model) Begin(ops ...Operation) string {
	token := m.NewToken()
	for _, op := range ops {
		m.tokens[op] = token
		m.Loading[op] = true
	}
	return token
}

// Cancel abandons any in-flight request for ops and lowers their flags.
func (m *Model) Cancel(ops ...Operation) {
	for _, op := range ops {
		m.tokens[op] = ""
		m.Loading[op] = false
	}
}

// Current reports whether token is the latest request for op.
func (m *Model) Current(op Operation, token string) bool {
	return token != "" && m.tokens[op] == token
}

// Finish completes the request for op if token is current, lowering the
// loading flag. It returns false for stale results, which must be dropped.
func (m *Model) Finish(op Operation, token string) bool {
	if !m.Current(op, token) {
		return false
	}
	m.tokens[op] = ""
	m.Loading[op] = false
	return true
}

// SelectJob switches to the job detail view and clears any interview
// selection.
func (m *Model) SelectJob(id string) {
	if m.tokens[OpInterviewDetails] != "" {
		m.Cancel(OpInterviewDetails)
	}
	m.View = JobDetailView(id)
	m.SelectedInterview = nil
}

// SelectInterview switches to the interview detail view and clears any job
// selection, abandoning an in-flight job detail fetch.
func (m *Model) SelectInterview(id string) {
	if t := m.tokens[OpJobDetails]; t != "" {
		if m.tokens[OpInterviews] == t {
			m.Cancel(OpInterviews)
		}
		m.Cancel(OpJobDetails)
	}
	m.View = InterviewDetailView(id)
	m.SelectedJob = nil
}

// ResetToDashboard clears both selections and the global error.
func (m *Model) ResetToDashboard() {
	m.Cancel(OpJobDetails, OpInterviewDetails)
	m.View = DashboardView()
	m.SelectedJob = nil
	m.SelectedInterview = nil
	m.Err = ""
}

// Title returns the heading for the current view.
func (m *Model) Title() string {
	switch {
	case m.View.Kind() == ViewJobDetail && m.SelectedJob != nil:
		return "Job: " + m.SelectedJob.Title
	case m.View.Kind() == ViewInterviewDetail && m.SelectedInterview != nil:
		name := m.SelectedInterview.CandidateName
		if name == "" {
			name = "Details"
		}
		return "Interview: " + name
	default:
		return "Admin Dashboard"
	}
}

// FindJob returns the cached job with id.
func (m *Model) FindJob(id string) (admin.Job, bool) {
	for _, j := range m.Jobs {
		if j.ID == id {
			return j, true
		}
	}
	return admin.Job{}, false
}
