// Package commands provides Bubble Tea commands for TUI operations.
// Every command performs its network call off the update loop and reports
// back with a result message from package tui.
package commands

import (
	"context"
	"time"

	"github.com/recruitdesk/recruitdesk/internal/admin"
	"github.com/recruitdesk/recruitdesk/internal/log"
)

// API is the admin REST surface used by the TUI. *admin.Client satisfies it.
type API interface {
	DashboardSummary(ctx context.Context) (*admin.DashboardSummary, error)
	ListJobs(ctx context.Context) ([]admin.Job, error)
	GetJob(ctx context.Context, id string) (*admin.Job, error)
	ListInterviews(ctx context.Context, f admin.InterviewFilter) ([]admin.Interview, error)
	GetInterview(ctx context.Context, id string) (*admin.Interview, error)
	CreateJob(ctx context.Context, in admin.JobInput) (*admin.Job, error)
	UpdateJob(ctx context.Context, id string, in admin.JobInput) (*admin.Job, error)
	DeleteJob(ctx context.Context, id string) error
	ScoreInterview(ctx context.Context, id string, in admin.ScoreInput) (*admin.ScoredInterview, error)
}

// Env carries the dependencies shared by all commands. A nil Log discards
// events.
type Env struct {
	API API
	Log *log.Logger
	// Context is the parent of every request. Defaults to Background.
	Context context.Context
}

func (e Env) ctx(requestID string) context.Context {
	parent := e.Context
	if parent == nil {
		parent = context.Background()
	}
	return admin.WithRequestID(parent, requestID)
}

// record appends an outcome event. Log write failures are ignored: the
// terminal belongs to the TUI and there is nowhere to report them.
func (e Env) record(ev log.LogEvent, start time.Time, err error) {
	ev.DurationMs = time.Since(start).Milliseconds()
	if err != nil {
		ev.Error = err.Error()
		ev.Status = admin.StatusCode(err)
	}
	_ = e.Log.Append(ev)
}
