package app

import (
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recruitdesk/recruitdesk/internal/admin"
	"github.com/recruitdesk/recruitdesk/internal/config"
	"github.com/recruitdesk/recruitdesk/internal/log"
	"github.com/recruitdesk/recruitdesk/internal/testutil"
	"github.com/recruitdesk/recruitdesk/internal/tui"
	"github.com/recruitdesk/recruitdesk/internal/tui/commands"
)

func newTestApp(t *testing.T) (*App, *testutil.FakeAPI, *log.Logger) {
	t.Helper()

	fake := testutil.NewFakeAPI(t)
	logger, err := log.NewLogger(t.TempDir())
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	cfg.API.BaseURL = fake.URL()
	cfg.API.FileServerURL = fake.URL()

	a := New(cfg, commands.Env{API: admin.New(fake.URL(), admin.WithHTTPClient(fake.Client())), Log: logger})
	return a, fake, logger
}

var tuiPkg = reflect.TypeOf(tui.SelectJobMsg{}).PkgPath()

// run executes cmd and feeds every resulting tui message back into the app
// until no commands remain. Widget messages (spinner ticks, cursor blinks)
// are dropped so the loop terminates.
func run(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()

	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 200 {
			t.Fatal("command loop did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		if msg == nil || reflect.TypeOf(msg).PkgPath() != tuiPkg {
			continue
		}
		_, next := a.Update(msg)
		queue = append(queue, next)
	}
}

// send delivers msg to the app and runs whatever follows from it.
func send(t *testing.T, a *App, msg tea.Msg) {
	t.Helper()
	_, cmd := a.Update(msg)
	run(t, a, cmd)
}

func started(t *testing.T) (*App, *testutil.FakeAPI, *log.Logger) {
	t.Helper()
	a, fake, logger := newTestApp(t)
	run(t, a, a.Init())
	return a, fake, logger
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInit_LoadsDashboard(t *testing.T) {
	a, fake, _ := started(t)
	m := a.Model()

	assert.Equal(t, tui.ViewDashboard, m.View.Kind())
	require.NotNil(t, m.Summary)
	assert.Equal(t, 2, m.Summary.OpenPositions)
	assert.Len(t, m.Jobs, 3)
	assert.Len(t, m.Interviews, 3)
	assert.Empty(t, m.Err)
	assert.False(t, m.Loading.Any(), "loading flags should be cleared")

	assert.Equal(t, 1, fake.Count("GET /dashboard-summary"))
	assert.Equal(t, 1, fake.Count("GET /jobs"))
	assert.Equal(t, 1, fake.Count("GET /interviews"))
}

func TestInit_RaisesLoadingFlags(t *testing.T) {
	a, _, _ := newTestApp(t)
	_ = a.Init()

	m := a.Model()
	for _, op := range []tui.Operation{tui.OpSummary, tui.OpJobs, tui.OpInterviews} {
		if !m.Loading[op] {
			t.Errorf("Loading[%s] = false, want true", op)
		}
	}
	if m.Loading[tui.OpJobDetails] || m.Loading[tui.OpInterviewDetails] {
		t.Error("detail loading flags should start lowered")
	}
}

func TestFetchJobs(t *testing.T) {
	t.Run("success replaces the list", func(t *testing.T) {
		a, fake, _ := started(t)
		run(t, a, a.fetchJobs())

		assert.Len(t, a.Model().Jobs, len(fake.Jobs()))
		assert.Empty(t, a.Model().Err)
		assert.False(t, a.Model().Loading[tui.OpJobs])
	})

	t.Run("failure empties the list and sets the error", func(t *testing.T) {
		a, fake, logger := started(t)
		fake.Fail("GET /jobs", 500)
		run(t, a, a.fetchJobs())

		assert.Empty(t, a.Model().Jobs)
		assert.NotNil(t, a.Model().Jobs)
		assert.Equal(t, "HTTP error 500 fetching jobs", a.Model().Err)
		assert.False(t, a.Model().Loading[tui.OpJobs])

		events, err := logger.ReadAll()
		require.NoError(t, err)
		require.NotEmpty(t, events)
		last := events[len(events)-1]
		assert.Equal(t, log.EventFetchFailed, last.Event)
		assert.Equal(t, "jobs", last.Operation)
		assert.Equal(t, 500, last.Status)
		assert.NotEmpty(t, last.RequestID)
	})
}

func TestFetchSummary_FailureClearsSummary(t *testing.T) {
	a, fake, _ := started(t)
	fake.Fail("GET /dashboard-summary", 503)
	run(t, a, a.fetchSummary())

	assert.Nil(t, a.Model().Summary)
	assert.Equal(t, "HTTP error 503 fetching summary", a.Model().Err)
}

func TestSelectJob_FetchesDetailAndFilteredInterviews(t *testing.T) {
	a, fake, _ := started(t)

	_, cmd := a.Update(tui.SelectJobMsg{JobID: "job_backend"})
	m := a.Model()
	assert.True(t, m.Loading[tui.OpJobDetails])
	assert.True(t, m.Loading[tui.OpInterviews])

	run(t, a, cmd)

	id, ok := m.View.JobID()
	require.True(t, ok)
	assert.Equal(t, "job_backend", id)
	require.NotNil(t, m.SelectedJob)
	assert.Equal(t, "Backend Engineer", m.SelectedJob.Title)
	assert.Len(t, m.Interviews, 2)
	assert.Equal(t, "Job: Backend Engineer", m.Title())
	assert.False(t, m.Loading[tui.OpJobDetails])
	assert.False(t, m.Loading[tui.OpInterviews])
	assert.Equal(t, 1, fake.Count("GET /interviews?job_id=job_backend"))
}

func TestSelectJobThenJob_ShowsOnlySecondJobsInterviews(t *testing.T) {
	a, _, _ := started(t)

	send(t, a, tui.SelectInterviewMsg{InterviewID: "int_ada"})
	send(t, a, tui.SelectJobMsg{JobID: "job_backend"})
	send(t, a, tui.SelectJobMsg{JobID: "job_design"})

	m := a.Model()
	assert.Nil(t, m.SelectedInterview)
	_, ok := m.View.InterviewID()
	assert.False(t, ok)

	require.NotEmpty(t, m.Interviews)
	for _, iv := range m.Interviews {
		assert.Equal(t, "job_design", iv.JobID)
	}
}

func TestSelectJob_StaleResultIsDropped(t *testing.T) {
	a, _, _ := started(t)

	_, cmdA := a.Update(tui.SelectJobMsg{JobID: "job_backend"})
	_, cmdB := a.Update(tui.SelectJobMsg{JobID: "job_design"})

	// B's response arrives first, then A's late response.
	run(t, a, cmdB)
	run(t, a, cmdA)

	m := a.Model()
	require.NotNil(t, m.SelectedJob)
	assert.Equal(t, "job_design", m.SelectedJob.ID)
	for _, iv := range m.Interviews {
		assert.Equal(t, "job_design", iv.JobID)
	}
}

func TestSelectJob_NotFound(t *testing.T) {
	a, _, _ := started(t)
	send(t, a, tui.SelectJobMsg{JobID: "job_missing"})

	m := a.Model()
	assert.Nil(t, m.SelectedJob)
	assert.Empty(t, m.Interviews)
	assert.Equal(t, "HTTP error 404 fetching job job_missing", m.Err)
	assert.Equal(t, tui.ViewJobDetail, m.View.Kind())
}

func TestSelectJob_InterviewFailureResetsBoth(t *testing.T) {
	a, fake, _ := started(t)
	fake.Fail("GET /interviews", 500)
	send(t, a, tui.SelectJobMsg{JobID: "job_backend"})

	m := a.Model()
	assert.Nil(t, m.SelectedJob)
	assert.Empty(t, m.Interviews)
	assert.Equal(t, "HTTP error 500 fetching interviews for job job_backend", m.Err)
}

func TestSelectInterview(t *testing.T) {
	a, _, _ := started(t)
	send(t, a, tui.SelectJobMsg{JobID: "job_backend"})
	send(t, a, tui.SelectInterviewMsg{InterviewID: "int_ada"})

	m := a.Model()
	assert.Nil(t, m.SelectedJob)
	require.NotNil(t, m.SelectedInterview)
	assert.Equal(t, "Ada Park", m.SelectedInterview.CandidateName)
	assert.Equal(t, "Interview: Ada Park", m.Title())
	_, ok := m.View.JobID()
	assert.False(t, ok)
}

func TestSelectInterview_CancelsJobDetailInFlight(t *testing.T) {
	a, _, _ := started(t)

	_, jobCmd := a.Update(tui.SelectJobMsg{JobID: "job_backend"})
	send(t, a, tui.SelectInterviewMsg{InterviewID: "int_cleo"})
	run(t, a, jobCmd)

	m := a.Model()
	assert.Nil(t, m.SelectedJob)
	assert.Equal(t, tui.ViewInterviewDetail, m.View.Kind())
	assert.False(t, m.Loading.Any())
	assert.Len(t, m.Interviews, 3, "late job detail must not replace the list")
}

func TestBackToDashboard(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyEsc},
		keyRunes("1"),
		keyRunes("2"),
		keyRunes("3"),
	} {
		t.Run(key.String(), func(t *testing.T) {
			a, fake, _ := started(t)
			send(t, a, tui.SelectJobMsg{JobID: "job_design"})
			a.Model().Err = "stale error"

			send(t, a, key)

			m := a.Model()
			assert.Equal(t, tui.ViewDashboard, m.View.Kind())
			assert.Nil(t, m.SelectedJob)
			assert.Nil(t, m.SelectedInterview)
			assert.Empty(t, m.Err)
			assert.Len(t, m.Interviews, 3)
			assert.Equal(t, 2, fake.Count("GET /dashboard-summary"))
			assert.Equal(t, "Admin Dashboard", m.Title())
		})
	}
}

func TestDismissError(t *testing.T) {
	a, _, _ := started(t)
	a.Model().Err = "HTTP error 500 fetching jobs"

	send(t, a, keyRunes("x"))
	assert.Empty(t, a.Model().Err)
}

func TestSaveFeedback_Validation(t *testing.T) {
	tests := []struct {
		score   string
		wantErr bool
	}{
		{"", false},
		{"50", false},
		{"150", true},
		{"-1", true},
		{"abc", true},
	}
	for _, tt := range tests {
		t.Run("score="+tt.score, func(t *testing.T) {
			a, fake, _ := started(t)
			send(t, a, tui.SelectInterviewMsg{InterviewID: "int_ada"})

			send(t, a, tui.SaveFeedbackMsg{InterviewID: "int_ada", Score: tt.score, Feedback: "ok"})

			posts := fake.Count("POST /interviews/int_ada/score")
			if tt.wantErr {
				assert.Equal(t, admin.InvalidScoreMessage, a.InterviewView().ValidationError())
				assert.Equal(t, 0, posts, "no request for an invalid score")
				assert.Empty(t, a.Model().Err, "validation is shown inline only")
				return
			}
			assert.Empty(t, a.InterviewView().ValidationError())
			assert.Equal(t, 1, posts)
		})
	}
}

func TestSaveFeedback_UpdatesDetailListAndSummary(t *testing.T) {
	a, fake, _ := started(t)
	send(t, a, tui.SelectInterviewMsg{InterviewID: "int_ada"})
	summaries := fake.Count("GET /dashboard-summary")

	send(t, a, tui.SaveFeedbackMsg{InterviewID: "int_ada", Score: "85", Feedback: "Strong candidate"})

	m := a.Model()
	assert.Empty(t, m.Err)

	require.NotNil(t, m.SelectedInterview)
	require.NotNil(t, m.SelectedInterview.Score)
	assert.Equal(t, 85, *m.SelectedInterview.Score)
	assert.Equal(t, "Strong candidate", m.SelectedInterview.Feedback())
	assert.Equal(t, admin.InterviewReviewed, m.SelectedInterview.Status)

	var entry *admin.Interview
	for i := range m.Interviews {
		if m.Interviews[i].ID == "int_ada" {
			entry = &m.Interviews[i]
		}
	}
	require.NotNil(t, entry)
	require.NotNil(t, entry.Score)
	assert.Equal(t, 85, *entry.Score)
	assert.Equal(t, "Strong candidate", entry.Feedback())
	// Fields missing from the response keep their list values.
	assert.Equal(t, "Ada Park", entry.CandidateName)
	assert.Equal(t, "Backend Engineer", entry.JobTitle)

	assert.Equal(t, summaries+1, fake.Count("GET /dashboard-summary"))
	assert.Equal(t, 0, m.Summary.PendingReviews, "int_ada left pending review")
}

func TestSaveFeedback_Failure(t *testing.T) {
	a, fake, _ := started(t)
	send(t, a, tui.SelectInterviewMsg{InterviewID: "int_ada"})
	fake.Fail("POST /interviews/int_ada/score", 500)

	send(t, a, tui.SaveFeedbackMsg{InterviewID: "int_ada", Score: "85", Feedback: "Strong candidate"})

	m := a.Model()
	assert.Equal(t, "Failed to save feedback: Injected failure", m.Err)
	require.NotNil(t, m.SelectedInterview)
	assert.Nil(t, m.SelectedInterview.Score)
}

func TestCreateJob_MissingDepartmentKeepsFormOpen(t *testing.T) {
	a, fake, _ := started(t)
	send(t, a, tui.OpenJobFormMsg{})
	require.True(t, a.Model().FormOpen)

	a.Update(keyRunes("QA Lead"))
	a.Update(tea.KeyMsg{Type: tea.KeyTab}) // department, left blank
	a.Update(tea.KeyMsg{Type: tea.KeyTab}) // description
	a.Update(keyRunes("Owns test strategy."))

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	run(t, a, cmd)

	assert.True(t, a.Model().FormOpen)
	assert.Equal(t, admin.MissingFieldsMessage, a.FormView().Err())
	assert.Empty(t, a.Model().Err)
	assert.Equal(t, 0, fake.Count("POST /jobs"))

	in, err := a.FormView().Input()
	require.NoError(t, err)
	assert.Equal(t, "QA Lead", in.Title)
	assert.Equal(t, "Owns test strategy.", in.Description)
}

func TestCreateJob_Success(t *testing.T) {
	a, fake, _ := started(t)
	send(t, a, tui.OpenJobFormMsg{})

	send(t, a, tui.SubmitJobMsg{Input: admin.JobInput{
		Title:       "QA Lead",
		Department:  "Engineering",
		Description: "Owns test strategy.",
		Status:      admin.JobStatusDraft,
	}})

	m := a.Model()
	assert.False(t, m.FormOpen)
	assert.Nil(t, m.EditingJob)
	assert.Empty(t, m.Err)
	assert.Equal(t, 1, fake.Count("POST /jobs"))
	assert.Len(t, m.Jobs, 4)
	assert.Equal(t, "QA Lead", m.Jobs[0].Title)
	assert.Equal(t, 2, fake.Count("GET /dashboard-summary"))
}

func TestCreateJob_ServerErrorKeepsFormOpen(t *testing.T) {
	a, fake, _ := started(t)
	send(t, a, tui.OpenJobFormMsg{})
	fake.Fail("POST /jobs", 500)

	send(t, a, tui.SubmitJobMsg{Input: admin.JobInput{
		Title: "QA Lead", Department: "Engineering", Description: "Owns test strategy.",
	}})

	assert.True(t, a.Model().FormOpen)
	assert.Equal(t, "Failed to save job: Injected failure", a.Model().Err)
}

func TestCreateJob_ServerErrorShownInForm(t *testing.T) {
	a, fake, _ := started(t)
	a.Update(tea.WindowSizeMsg{Width: 160, Height: 60})
	send(t, a, tui.OpenJobFormMsg{})
	fake.Fail("POST /jobs", 500)

	send(t, a, tui.SubmitJobMsg{Input: admin.JobInput{
		Title: "QA Lead", Department: "Engineering", Description: "Owns test strategy.",
	}})

	require.True(t, a.Model().FormOpen)
	assert.Equal(t, "Failed to save job: Injected failure", a.FormView().Err())
	assert.Contains(t, a.View(), "Failed to save job: Injected failure")
}

func TestUpdateJob_RefreshesSelectedDetail(t *testing.T) {
	a, fake, _ := started(t)
	send(t, a, tui.SelectJobMsg{JobID: "job_backend"})
	job := *a.Model().SelectedJob
	send(t, a, tui.OpenJobFormMsg{Job: &job})
	require.Equal(t, "job_backend", a.FormView().JobID())

	in := admin.InputFromJob(job)
	in.Title = "Senior Backend Engineer"
	send(t, a, tui.SubmitJobMsg{JobID: job.ID, Input: in})

	m := a.Model()
	assert.False(t, m.FormOpen)
	assert.Equal(t, 1, fake.Count("PUT /jobs/job_backend"))
	assert.Equal(t, 2, fake.Count("GET /jobs/job_backend"))
	require.NotNil(t, m.SelectedJob)
	assert.Equal(t, "Senior Backend Engineer", m.SelectedJob.Title)
}

func TestDeleteJob_CurrentlyViewed(t *testing.T) {
	a, fake, _ := started(t)
	send(t, a, tui.SelectJobMsg{JobID: "job_backend"})

	send(t, a, tui.RequestDeleteJobMsg{JobID: "job_backend"})
	assert.Equal(t, "job_backend", a.Model().PendingDelete)
	assert.Equal(t, 0, fake.Count("DELETE /jobs/job_backend"))

	send(t, a, keyRunes("y"))

	m := a.Model()
	assert.Empty(t, m.PendingDelete)
	assert.Equal(t, 1, fake.Count("DELETE /jobs/job_backend"))
	assert.Equal(t, tui.ViewDashboard, m.View.Kind())
	assert.Nil(t, m.SelectedJob)
	for _, j := range m.Jobs {
		assert.NotEqual(t, "job_backend", j.ID)
	}
	assert.Len(t, m.Jobs, 2)
}

func TestDeleteJob_Declined(t *testing.T) {
	a, fake, _ := started(t)
	send(t, a, tui.RequestDeleteJobMsg{JobID: "job_design"})
	send(t, a, keyRunes("n"))

	assert.Empty(t, a.Model().PendingDelete)
	assert.Equal(t, 0, fake.Count("DELETE /jobs/job_design"))
	assert.Len(t, a.Model().Jobs, 3)
}

func TestDeleteJob_Failure(t *testing.T) {
	a, fake, _ := started(t)
	fake.Fail("DELETE /jobs/job_design", 500)
	send(t, a, tui.RequestDeleteJobMsg{JobID: "job_design"})
	send(t, a, tui.ConfirmDeleteMsg{Confirmed: true})

	assert.Equal(t, "Failed to delete job: Injected failure", a.Model().Err)
	assert.Len(t, a.Model().Jobs, 3)
}

func TestSendInvites_ShowsPlaceholderNotice(t *testing.T) {
	a, fake, _ := started(t)
	send(t, a, tui.SelectJobMsg{JobID: "job_backend"})
	before := len(fake.Requests())

	send(t, a, keyRunes("i"))

	assert.Equal(t, "Placeholder: Send invites for Job ID: job_backend", a.Model().Notice)
	assert.Equal(t, before, len(fake.Requests()), "no request is made")
}

func TestRequestIDs_SentWithEveryCall(t *testing.T) {
	a, fake, _ := started(t)
	send(t, a, tui.SelectJobMsg{JobID: "job_backend"})

	ids := fake.RequestIDs()
	require.Len(t, ids, len(fake.Requests()))
	for _, id := range ids {
		assert.NotEmpty(t, id)
	}
	// Job detail issues two requests under the same token.
	assert.Equal(t, ids[len(ids)-1], ids[len(ids)-2])
}

func TestCtrlC_RequiresDoublePress(t *testing.T) {
	a, _, _ := started(t)

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.True(t, a.Model().CtrlCPending)

	_, cmd = a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("second Ctrl+C should quit")
	}
}

func TestView_RendersErrorBanner(t *testing.T) {
	a, fake, _ := started(t)
	fake.Fail("GET /jobs", 500)
	run(t, a, a.fetchJobs())
	a.Update(tea.WindowSizeMsg{Width: 140, Height: 50})

	out := a.View()
	assert.True(t, strings.Contains(out, "HTTP error 500 fetching jobs"), "banner missing from view")
	assert.Contains(t, out, "No jobs found.")
}
