package views

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/recruitdesk/recruitdesk/internal/admin"
	"github.com/recruitdesk/recruitdesk/internal/config"
	"github.com/recruitdesk/recruitdesk/internal/testutil"
	"github.com/recruitdesk/recruitdesk/internal/tui"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// intent runs cmd and returns the message it produces.
func intent(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command, got nil")
	}
	return cmd()
}

func TestDashboard_EnterSelectsFocusedRow(t *testing.T) {
	m := NewDashboardModel()
	m.SetData(testutil.SeedJobs(), testutil.SeedInterviews())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	got, ok := intent(t, cmd).(tui.SelectJobMsg)
	if !ok || got.JobID != "job_design" {
		t.Errorf("enter on jobs = %#v, want SelectJobMsg{job_design}", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	iv, ok := intent(t, cmd).(tui.SelectInterviewMsg)
	if !ok || iv.InterviewID != "int_ada" {
		t.Errorf("enter on interviews = %#v, want SelectInterviewMsg{int_ada}", iv)
	}
}

func TestDashboard_JobActions(t *testing.T) {
	m := NewDashboardModel()
	m.SetData(testutil.SeedJobs(), nil)

	_, cmd := m.Update(keyRunes("e"))
	edit, ok := intent(t, cmd).(tui.OpenJobFormMsg)
	if !ok || edit.Job == nil || edit.Job.ID != "job_backend" {
		t.Errorf("e = %#v, want OpenJobFormMsg for job_backend", edit)
	}

	_, cmd = m.Update(keyRunes("d"))
	del, ok := intent(t, cmd).(tui.RequestDeleteJobMsg)
	if !ok || del.JobID != "job_backend" {
		t.Errorf("d = %#v, want RequestDeleteJobMsg{job_backend}", del)
	}

	_, cmd = m.Update(keyRunes("n"))
	if open, ok := intent(t, cmd).(tui.OpenJobFormMsg); !ok || open.Job != nil {
		t.Errorf("n = %#v, want OpenJobFormMsg with no job", open)
	}
}

func TestDashboard_EmptyStates(t *testing.T) {
	state := tui.NewModel(config.DefaultConfig())
	m := NewDashboardModel()

	out := m.View(state, "*")
	for _, want := range []string{"No jobs found.", "No interviews found.", "Open Positions", "N/A"} {
		if !strings.Contains(out, want) {
			t.Errorf("dashboard view missing %q", want)
		}
	}

	state.Loading[tui.OpJobs] = true
	if out := m.View(state, "*"); !strings.Contains(out, "Loading jobs...") {
		t.Error("dashboard view should show job loading state")
	}
}

func TestJobDetail_View(t *testing.T) {
	state := tui.NewModel(config.DefaultConfig())
	m := NewJobDetailModel()

	if out := m.View(state, "*"); !strings.Contains(out, "Job details not found") {
		t.Errorf("nil job view = %q", out)
	}

	job := testutil.SeedJobs()[2]
	m.SetData(&job, nil)
	out := m.View(state, "*")
	for _, want := range []string{"Support Specialist", "Operations", "No interviews scheduled for this job yet.", "Interviews for this Job (0)"} {
		if !strings.Contains(out, want) {
			t.Errorf("job view missing %q", want)
		}
	}
}

func TestJobDetail_SendInvites(t *testing.T) {
	m := NewJobDetailModel()
	job := testutil.SeedJobs()[0]
	m.SetData(&job, testutil.SeedInterviews()[:2])

	_, cmd := m.Update(keyRunes("i"))
	if msg, ok := intent(t, cmd).(tui.SendInvitesMsg); !ok || msg.JobID != "job_backend" {
		t.Errorf("i = %#v, want SendInvitesMsg{job_backend}", msg)
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if msg, ok := intent(t, cmd).(tui.SelectInterviewMsg); !ok || msg.InterviewID != "int_ada" {
		t.Errorf("enter = %#v, want SelectInterviewMsg{int_ada}", msg)
	}
}

func TestInterviewDetail_Tabs(t *testing.T) {
	m := NewInterviewDetailModel("https://files.example.com")
	iv := testutil.SeedInterviews()[0]
	m.Load(&iv)

	if m.Tab() != TabTranscript {
		t.Fatalf("initial tab = %s, want Transcript", m.Tab())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if m.Tab() != TabScoring {
		t.Errorf("left from first tab = %s, want Scoring", m.Tab())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if m.Tab() != TabScreenshots {
		t.Fatalf("tab = %s, want Screenshots", m.Tab())
	}

	out := m.View(tui.NewModel(config.DefaultConfig()), "*")
	for _, want := range []string{
		"https://files.example.com/uploads/screenshots/int_ada_1.png",
		"https://files.example.com/uploads/screenshots/int_ada_2.png",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("screenshots tab missing %q", want)
		}
	}
}

func TestInterviewDetail_LoadResetsForm(t *testing.T) {
	m := NewInterviewDetailModel("")
	ivs := testutil.SeedInterviews()

	m.Load(&ivs[2])
	if m.ScoreValue() != "72" || m.FeedbackValue() != "Good portfolio." {
		t.Errorf("form = (%q, %q), want (72, Good portfolio.)", m.ScoreValue(), m.FeedbackValue())
	}

	m.Load(&ivs[0])
	if m.ScoreValue() != "" || m.FeedbackValue() != "" {
		t.Errorf("form = (%q, %q), want empty for unscored interview", m.ScoreValue(), m.FeedbackValue())
	}
}

func TestInterviewDetail_ScoringCapturesKeys(t *testing.T) {
	m := NewInterviewDetailModel("")
	iv := testutil.SeedInterviews()[0]
	m.Load(&iv)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft}) // Scoring
	if m.Capturing() {
		t.Fatal("scoring tab should not capture keys before a field is focused")
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Capturing() {
		t.Fatal("enter should focus the score field")
	}

	m, _ = m.Update(keyRunes("1"))
	m, _ = m.Update(keyRunes("2"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(keyRunes("Solid answers"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	msg, ok := intent(t, cmd).(tui.SaveFeedbackMsg)
	if !ok {
		t.Fatalf("ctrl+s = %#v, want SaveFeedbackMsg", msg)
	}
	if msg.InterviewID != "int_ada" || msg.Score != "12" || msg.Feedback != "Solid answers" {
		t.Errorf("SaveFeedbackMsg = %+v", msg)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Capturing() {
		t.Error("esc should release the field")
	}
}

func TestInterviewDetail_ValidationShownInline(t *testing.T) {
	m := NewInterviewDetailModel("")
	iv := testutil.SeedInterviews()[0]
	m.Load(&iv)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m.SetValidationError(admin.InvalidScoreMessage)

	out := m.View(tui.NewModel(config.DefaultConfig()), "*")
	if !strings.Contains(out, admin.InvalidScoreMessage) {
		t.Error("scoring tab should render the validation message")
	}
}

func TestJobForm_PrefillAndInput(t *testing.T) {
	job := testutil.SeedJobs()[2]
	job.NumberOfQuestions = testutil.IntPtr(8)
	job.MustAskTopics = testutil.StrPtr("escalations")

	m := NewJobFormModel(&job)
	in, err := m.Input()
	if err != nil {
		t.Fatalf("Input() error: %v", err)
	}
	if in.Title != job.Title || in.Department != job.Department || in.Description != job.Description {
		t.Errorf("Input() = %+v, want fields of %s", in, job.ID)
	}
	if in.Status != admin.JobStatusClosed {
		t.Errorf("Status = %q, want Closed", in.Status)
	}
	if in.NumberOfQuestions == nil || *in.NumberOfQuestions != 8 {
		t.Errorf("NumberOfQuestions = %v, want 8", in.NumberOfQuestions)
	}
	if in.MustAskTopics == nil || *in.MustAskTopics != "escalations" {
		t.Errorf("MustAskTopics = %v, want escalations", in.MustAskTopics)
	}
	if m.JobID() != job.ID {
		t.Errorf("JobID() = %q, want %q", m.JobID(), job.ID)
	}
}

func TestJobForm_StatusCycle(t *testing.T) {
	m := NewJobFormModel(nil)
	for i := 0; i < int(fieldStatus); i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	in, _ := m.Input()
	if in.Status != admin.JobStatusClosed {
		t.Errorf("Status = %q, want Closed", in.Status)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	in, _ = m.Input()
	if in.Status != admin.JobStatusDraft {
		t.Errorf("Status = %q, want Draft", in.Status)
	}
}

func TestJobForm_BadQuestionCount(t *testing.T) {
	m := NewJobFormModel(nil)
	for i := 0; i < int(fieldQuestions); i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	}
	m, _ = m.Update(keyRunes("x"))

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil {
		t.Error("submit should be blocked")
	}
	if m.Err() != questionsMessage {
		t.Errorf("Err() = %q, want %q", m.Err(), questionsMessage)
	}
}

func TestJobForm_EscCloses(t *testing.T) {
	m := NewJobFormModel(nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := intent(t, cmd).(tui.CloseJobFormMsg); !ok {
		t.Error("esc should close the form")
	}
}

func TestConfirm(t *testing.T) {
	m := NewConfirmModel("Backend Engineer")
	if !strings.Contains(m.View(), "cannot be undone") {
		t.Error("confirmation text missing")
	}

	_, cmd := m.Update(keyRunes("y"))
	if msg, ok := intent(t, cmd).(tui.ConfirmDeleteMsg); !ok || !msg.Confirmed {
		t.Errorf("y = %#v, want confirmed", msg)
	}
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if msg, ok := intent(t, cmd).(tui.ConfirmDeleteMsg); !ok || msg.Confirmed {
		t.Errorf("esc = %#v, want declined", msg)
	}
}
