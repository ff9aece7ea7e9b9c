package commands

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/recruitdesk/recruitdesk/internal/admin"
	"github.com/recruitdesk/recruitdesk/internal/log"
	"github.com/recruitdesk/recruitdesk/internal/tui"
)

// FetchSummaryCmd loads the dashboard counters.
func FetchSummaryCmd(env Env, token string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		s, err := env.API.DashboardSummary(env.ctx(token))
		if err != nil {
			env.fetchFailed(tui.OpSummary, token, "", "", start, err)
			return tui.SummaryLoadedMsg{Token: token, Err: err}
		}
		return tui.SummaryLoadedMsg{Token: token, Summary: s}
	}
}

// FetchJobsCmd loads every job posting.
func FetchJobsCmd(env Env, token string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		jobs, err := env.API.ListJobs(env.ctx(token))
		if err != nil {
			env.fetchFailed(tui.OpJobs, token, "", "", start, err)
			return tui.JobsLoadedMsg{Token: token, Err: err}
		}
		return tui.JobsLoadedMsg{Token: token, Jobs: jobs}
	}
}

// FetchInterviewsCmd loads the unfiltered interview list.
func FetchInterviewsCmd(env Env, token string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		ivs, err := env.API.ListInterviews(env.ctx(token), admin.InterviewFilter{})
		if err != nil {
			env.fetchFailed(tui.OpInterviews, token, "", "", start, err)
			return tui.InterviewsLoadedMsg{Token: token, Err: err}
		}
		return tui.InterviewsLoadedMsg{Token: token, Interviews: ivs}
	}
}

// FetchJobDetailCmd loads a job and then the interviews filtered to it.
// A failure of either request fails the whole operation.
func FetchJobDetailCmd(env Env, token, jobID string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		ctx := env.ctx(token)

		job, err := env.API.GetJob(ctx, jobID)
		if err != nil {
			env.fetchFailed(tui.OpJobDetails, token, jobID, "", start, err)
			return tui.JobDetailLoadedMsg{Token: token, JobID: jobID, Err: err}
		}

		ivs, err := env.API.ListInterviews(ctx, admin.InterviewFilter{JobID: jobID})
		if err != nil {
			env.fetchFailed(tui.OpJobDetails, token, jobID, "", start, err)
			return tui.JobDetailLoadedMsg{Token: token, JobID: jobID, Err: err}
		}

		return tui.JobDetailLoadedMsg{Token: token, JobID: jobID, Job: job, Interviews: ivs}
	}
}

// FetchInterviewDetailCmd loads one interview.
func FetchInterviewDetailCmd(env Env, token, interviewID string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		iv, err := env.API.GetInterview(env.ctx(token), interviewID)
		if err != nil {
			env.fetchFailed(tui.OpInterviewDetails, token, "", interviewID, start, err)
			return tui.InterviewDetailLoadedMsg{Token: token, InterviewID: interviewID, Err: err}
		}
		return tui.InterviewDetailLoadedMsg{Token: token, InterviewID: interviewID, Interview: iv}
	}
}

func (e Env) fetchFailed(op tui.Operation, token, jobID, interviewID string, start time.Time, err error) {
	e.record(log.LogEvent{
		Event:       log.EventFetchFailed,
		Operation:   op.String(),
		RequestID:   token,
		JobID:       jobID,
		InterviewID: interviewID,
	}, start, err)
}
