package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/recruitdesk/recruitdesk/internal/admin"
)

// FakeAPI is an in-memory stand-in for the admin REST API. It mirrors the
// real server's routes, status codes and {"message": ...} error bodies.
type FakeAPI struct {
	mu         sync.Mutex
	jobs       []admin.Job
	interviews []admin.Interview
	failures   map[string]int
	requests   []string
	requestIDs []string
	nextID     int
	server     *httptest.Server
}

// NewFakeAPI starts a fake API seeded with SeedJobs and SeedInterviews. The
// server is closed when the test ends.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()

	f := &FakeAPI{
		jobs:       SeedJobs(),
		interviews: SeedInterviews(),
		failures:   make(map[string]int),
	}

	r := chi.NewRouter()
	r.Use(f.record)
	r.Get("/dashboard-summary", f.handleSummary)
	r.Get("/jobs", f.handleListJobs)
	r.Post("/jobs", f.handleCreateJob)
	r.Get("/jobs/{id}", f.handleGetJob)
	r.Put("/jobs/{id}", f.handleUpdateJob)
	r.Delete("/jobs/{id}", f.handleDeleteJob)
	r.Get("/interviews", f.handleListInterviews)
	r.Get("/interviews/{id}", f.handleGetInterview)
	r.Post("/interviews/{id}/score", f.handleScore)
	r.Head("/uploads/*", f.handleScreenshot)

	f.server = httptest.NewServer(r)
	t.Cleanup(f.server.Close)
	return f
}

// URL returns the API base URL.
func (f *FakeAPI) URL() string {
	return f.server.URL
}

// Client returns an http.Client wired to the fake server.
func (f *FakeAPI) Client() *http.Client {
	return f.server.Client()
}

// Fail makes every request matching "METHOD /path" answer with status until
// cleared with Fail(route, 0). The path is matched without the query string.
func (f *FakeAPI) Fail(route string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if status == 0 {
		delete(f.failures, route)
		return
	}
	f.failures[route] = status
}

// Count returns how many requests matched "METHOD /path?query" exactly, or
// "METHOD /path" ignoring the query when route has no "?".
func (f *FakeAPI) Count(route string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.requests {
		if r == route || (!strings.Contains(route, "?") && stripQuery(r) == route) {
			n++
		}
	}
	return n
}

// Requests returns every request seen so far as "METHOD /path?query".
func (f *FakeAPI) Requests() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

// RequestIDs returns the X-Request-ID headers seen so far, in order.
func (f *FakeAPI) RequestIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requestIDs...)
}

// Jobs returns a copy of the current job list.
func (f *FakeAPI) Jobs() []admin.Job {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]admin.Job(nil), f.jobs...)
}

// Interview returns the stored interview with id.
func (f *FakeAPI) Interview(id string) (admin.Interview, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, iv := range f.interviews {
		if iv.ID == id {
			return iv, true
		}
	}
	return admin.Interview{}, false
}

func stripQuery(route string) string {
	if i := strings.IndexByte(route, '?'); i >= 0 {
		return route[:i]
	}
	return route
}

func (f *FakeAPI) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.Method + " " + r.URL.Path
		full := route
		if r.URL.RawQuery != "" {
			full += "?" + r.URL.RawQuery
		}

		f.mu.Lock()
		f.requests = append(f.requests, full)
		if id := r.Header.Get(admin.RequestIDHeader); id != "" {
			f.requestIDs = append(f.requestIDs, id)
		}
		status, failing := f.failures[route]
		f.mu.Unlock()

		if failing {
			writeJSON(w, status, map[string]string{"message": "Injected failure"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func (f *FakeAPI) handleSummary(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var s admin.DashboardSummary
	for _, j := range f.jobs {
		if j.Status == admin.JobStatusOpen {
			s.OpenPositions++
		}
	}
	s.TotalApplications = len(f.interviews)
	for _, iv := range f.interviews {
		switch iv.Status {
		case admin.InterviewScheduled:
			s.InterviewsScheduled++
		case admin.InterviewPendingReview:
			s.PendingReviews++
		}
	}
	writeJSON(w, http.StatusOK, s)
}

func (f *FakeAPI) handleListJobs(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, f.jobs)
}

func (f *FakeAPI) findJob(id string) int {
	for i, j := range f.jobs {
		if j.ID == id {
			return i
		}
	}
	return -1
}

func (f *FakeAPI) handleGetJob(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.findJob(chi.URLParam(r, "id"))
	if i < 0 {
		writeMessage(w, http.StatusNotFound, "Job not found")
		return
	}
	writeJSON(w, http.StatusOK, f.jobs[i])
}

func (f *FakeAPI) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var in admin.JobInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Title == "" || in.Department == "" || in.Description == "" {
		writeMessage(w, http.StatusBadRequest, "Missing required fields")
		return
	}
	if in.Status == "" {
		in.Status = admin.JobStatusOpen
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	job := admin.Job{
		ID:          fmt.Sprintf("job_new%d", f.nextID),
		Title:       in.Title,
		Department:  in.Department,
		Description: in.Description,
		Status:      in.Status,
		CreatedAt:   admin.Timestamp{Time: time.Now().UTC().Truncate(time.Second)},
	}
	f.jobs = append([]admin.Job{job}, f.jobs...)
	writeJSON(w, http.StatusCreated, job)
}

func (f *FakeAPI) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	var in admin.JobInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "No data for update")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.findJob(chi.URLParam(r, "id"))
	if i < 0 {
		writeMessage(w, http.StatusNotFound, "Job not found")
		return
	}
	j := &f.jobs[i]
	if in.Title != "" {
		j.Title = in.Title
	}
	if in.Department != "" {
		j.Department = in.Department
	}
	if in.Description != "" {
		j.Description = in.Description
	}
	if in.Status != "" {
		j.Status = in.Status
	}
	writeJSON(w, http.StatusOK, *j)
}

func (f *FakeAPI) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.findJob(chi.URLParam(r, "id"))
	if i < 0 {
		writeMessage(w, http.StatusNotFound, "Job not found")
		return
	}
	f.jobs = append(f.jobs[:i], f.jobs[i+1:]...)
	writeMessage(w, http.StatusOK, "Job deleted successfully")
}

func (f *FakeAPI) handleListInterviews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	jobID, status, search := q.Get("job_id"), q.Get("status"), strings.ToLower(q.Get("search"))

	f.mu.Lock()
	defer f.mu.Unlock()
	out := []admin.Interview{}
	for _, iv := range f.interviews {
		if jobID != "" && iv.JobID != jobID {
			continue
		}
		if status != "" && iv.Status != status {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(iv.CandidateName), search) {
			continue
		}
		out = append(out, iv)
	}
	writeJSON(w, http.StatusOK, out)
}

func (f *FakeAPI) handleGetInterview(w http.ResponseWriter, r *http.Request) {
	iv, ok := f.Interview(chi.URLParam(r, "id"))
	if !ok {
		writeMessage(w, http.StatusNotFound, "Interview not found")
		return
	}
	writeJSON(w, http.StatusOK, iv)
}

// handleScore mirrors the real endpoint: the interview becomes Reviewed and
// the response is the bare interview row, without the joined candidate and
// job columns.
func (f *FakeAPI) handleScore(w http.ResponseWriter, r *http.Request) {
	var in admin.ScoreInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid body")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	id := chi.URLParam(r, "id")
	for i := range f.interviews {
		iv := &f.interviews[i]
		if iv.ID != id {
			continue
		}
		iv.Status = admin.InterviewReviewed
		if in.Score != nil {
			iv.Score = IntPtr(*in.Score)
		}
		iv.AdminFeedback = StrPtr(in.Feedback)
		writeJSON(w, http.StatusOK, map[string]any{
			"id":             iv.ID,
			"job_id":         iv.JobID,
			"status":         iv.Status,
			"score":          iv.Score,
			"admin_feedback": iv.AdminFeedback,
			"interview_date": iv.InterviewDate,
		})
		return
	}
	writeMessage(w, http.StatusNotFound, "Interview not found")
}

func (f *FakeAPI) handleScreenshot(w http.ResponseWriter, r *http.Request) {
	if strings.Contains(r.URL.Path, "missing") {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
}
