package commands

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/recruitdesk/recruitdesk/internal/admin"
	"github.com/recruitdesk/recruitdesk/internal/log"
	"github.com/recruitdesk/recruitdesk/internal/tui"
)

// SaveJobCmd creates a job when jobID is empty and updates it otherwise.
// The input must already be validated.
func SaveJobCmd(env Env, jobID string, in admin.JobInput) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		requestID := uuid.NewString()
		ctx := env.ctx(requestID)

		var (
			job *admin.Job
			err error
		)
		op := "create"
		if jobID == "" {
			job, err = env.API.CreateJob(ctx, in)
		} else {
			op = "update"
			job, err = env.API.UpdateJob(ctx, jobID, in)
		}

		ev := log.LogEvent{Event: log.EventJobSaved, Operation: op, RequestID: requestID, JobID: jobID}
		if err != nil {
			ev.Event = log.EventJobSaveFailed
		} else if ev.JobID == "" && job != nil {
			ev.JobID = job.ID
		}
		env.record(ev, start, err)

		return tui.JobSavedMsg{JobID: jobID, Job: job, Err: err}
	}
}

// DeleteJobCmd deletes a job.
func DeleteJobCmd(env Env, jobID string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		requestID := uuid.NewString()
		err := env.API.DeleteJob(env.ctx(requestID), jobID)

		ev := log.LogEvent{Event: log.EventJobDeleted, Operation: "delete", RequestID: requestID, JobID: jobID}
		if err != nil {
			ev.Event = log.EventJobDeleteFailed
		}
		env.record(ev, start, err)

		return tui.JobDeletedMsg{JobID: jobID, Err: err}
	}
}

// SaveFeedbackCmd stores a score (nil for none) and feedback for an interview.
func SaveFeedbackCmd(env Env, interviewID string, score *int, feedback string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		requestID := uuid.NewString()
		res, err := env.API.ScoreInterview(env.ctx(requestID), interviewID, admin.ScoreInput{
			Score:    score,
			Feedback: feedback,
		})

		ev := log.LogEvent{Event: log.EventFeedbackSaved, Operation: "score", RequestID: requestID, InterviewID: interviewID}
		if err != nil {
			ev.Event = log.EventFeedbackFailed
		} else if score != nil {
			ev.Data = map[string]interface{}{"score": *score}
		}
		env.record(ev, start, err)

		return tui.FeedbackSavedMsg{InterviewID: interviewID, Result: res, Err: err}
	}
}
