// Package tui implements the terminal user interface using Bubble Tea.
package tui

import (
	"github.com/recruitdesk/recruitdesk/internal/admin"
)

// ============================================================================
// Fetch Result Messages
// ============================================================================

// SummaryLoadedMsg carries the result of GET /dashboard-summary.
type SummaryLoadedMsg struct {
	Token   string
	Summary *admin.DashboardSummary
	Err     error
}

// JobsLoadedMsg carries the result of GET /jobs.
type JobsLoadedMsg struct {
	Token string
	Jobs  []admin.Job
	Err   error
}

// InterviewsLoadedMsg carries the result of the unfiltered GET /interviews.
type InterviewsLoadedMsg struct {
	Token      string
	Interviews []admin.Interview
	Err        error
}

// JobDetailLoadedMsg carries a job and the interviews filtered to it.
type JobDetailLoadedMsg struct {
	Token      string
	JobID      string
	Job        *admin.Job
	Interviews []admin.Interview
	Err        error
}

// InterviewDetailLoadedMsg carries the result of GET /interviews/{id}.
type InterviewDetailLoadedMsg struct {
	Token       string
	InterviewID string
	Interview   *admin.Interview
	Err         error
}

// ============================================================================
// Mutation Result Messages
// ============================================================================

// JobSavedMsg reports the outcome of creating (JobID empty) or updating a job.
type JobSavedMsg struct {
	JobID string
	Job   *admin.Job
	Err   error
}

// JobDeletedMsg reports the outcome of deleting a job.
type JobDeletedMsg struct {
	JobID string
	Err   error
}

// FeedbackSavedMsg reports the outcome of saving an interview's score.
type FeedbackSavedMsg struct {
	InterviewID string
	Result      *admin.ScoredInterview
	Err         error
}

// ============================================================================
// Intent Messages (sent by views)
// ============================================================================

// SelectJobMsg opens the job detail view.
type SelectJobMsg struct {
	JobID string
}

// SelectInterviewMsg opens the interview detail view.
type SelectInterviewMsg struct {
	InterviewID string
}

// BackToDashboardMsg returns to the dashboard and refreshes it. The sidebar's
// Dashboard, Job Postings and Interviews entries all send it.
type BackToDashboardMsg struct{}

// OpenJobFormMsg opens the job form; a nil Job means a new posting.
type OpenJobFormMsg struct {
	Job *admin.Job
}

// CloseJobFormMsg closes the job form without saving.
type CloseJobFormMsg struct{}

// SubmitJobMsg asks to create (JobID empty) or update a job.
type SubmitJobMsg struct {
	JobID string
	Input admin.JobInput
}

// RequestDeleteJobMsg asks for confirmation before deleting a job.
type RequestDeleteJobMsg struct {
	JobID string
}

// ConfirmDeleteMsg answers the delete confirmation.
type ConfirmDeleteMsg struct {
	Confirmed bool
}

// SaveFeedbackMsg asks to save the raw score text and feedback of an
// interview. The score is validated before any request is made.
type SaveFeedbackMsg struct {
	InterviewID string
	Score       string
	Feedback    string
}

// SendInvitesMsg asks to send interview invites for a job.
type SendInvitesMsg struct {
	JobID string
}

// DismissErrorMsg clears the global error banner.
type DismissErrorMsg struct{}

// ============================================================================
// Utility Messages
// ============================================================================

// CtrlCResetMsg clears the pending Ctrl+C confirmation after a timeout.
type CtrlCResetMsg struct{}
