// Package admin is the client for the interview platform's admin REST API.
// It owns the wire types, request validation, and error mapping; it holds no state.
package admin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Job status values accepted by the API.
const (
	JobStatusOpen   = "Open"
	JobStatusClosed = "Closed"
	JobStatusDraft  = "Draft"
)

// Interview status values the dashboard knows how to colour. The API may
// return others; they are displayed as-is.
const (
	InterviewScheduled     = "Scheduled"
	InterviewCompleted     = "Completed"
	InterviewPendingReview = "Pending Review"
	InterviewReviewed      = "Reviewed"
)

// JobStatuses lists job statuses in the order the form cycles through them.
var JobStatuses = []string{JobStatusOpen, JobStatusClosed, JobStatusDraft}

// Job is a posted position.
type Job struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Department        string    `json:"department"`
	Description       string    `json:"description"`
	Status            string    `json:"status"`
	CreatedAt         Timestamp `json:"created_at"`
	ApplicationsCount int       `json:"applications_count"`
	NumberOfQuestions *int      `json:"number_of_questions,omitempty"`
	MustAskTopics     *string   `json:"must_ask_topics,omitempty"`
}

// QA is one question asked by the AI interviewer and the candidate's answer.
type QA struct {
	Q string `json:"q"`
	A string `json:"a"`
}

// Interview is one candidate's AI-conducted interview session.
type Interview struct {
	ID            string     `json:"id"`
	CandidateName string     `json:"candidate_name"`
	JobID         string     `json:"job_id"`
	JobTitle      string     `json:"job_title"`
	InterviewDate Timestamp  `json:"interview_date"`
	Status        string     `json:"status"`
	Transcript    Transcript `json:"transcript"`
	Questions     []QA       `json:"questions"`
	Summary       string     `json:"summary"`
	Screenshots   []string   `json:"screenshots"`
	Score         *int       `json:"score"`
	AdminFeedback *string    `json:"admin_feedback"`
}

// DashboardSummary holds the aggregate counters shown on the dashboard.
type DashboardSummary struct {
	OpenPositions       int `json:"open_positions"`
	TotalApplications   int `json:"total_applications"`
	InterviewsScheduled int `json:"interviews_scheduled"`
	PendingReviews      int `json:"pending_reviews"`
}

// ScoreInput is the body of POST /interviews/{id}/score. A nil Score is sent
// as JSON null.
type ScoreInput struct {
	Score    *int   `json:"score"`
	Feedback string `json:"feedback"`
}

// ScoredInterview is the response of a score update. Fields holds the raw
// top-level keys the server returned so callers can merge only what was sent.
type ScoredInterview struct {
	Interview Interview
	Fields    map[string]json.RawMessage
}

// Merge overlays the fields present in a server response onto iv and returns
// the result. Keys absent from fields keep their current values.
func (iv Interview) Merge(fields map[string]json.RawMessage) (Interview, error) {
	if len(fields) == 0 {
		return iv, nil
	}

	data, err := json.Marshal(iv)
	if err != nil {
		return iv, fmt.Errorf("marshalling interview: %w", err)
	}
	base := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &base); err != nil {
		return iv, fmt.Errorf("decoding interview fields: %w", err)
	}
	for k, v := range fields {
		base[k] = v
	}

	merged, err := json.Marshal(base)
	if err != nil {
		return iv, fmt.Errorf("marshalling merged fields: %w", err)
	}
	var out Interview
	if err := json.Unmarshal(merged, &out); err != nil {
		return iv, fmt.Errorf("decoding merged interview: %w", err)
	}
	return out, nil
}

// Timestamp accepts the several datetime layouts the API emits, including
// naive ISO-8601 without a zone. A JSON null or empty string decodes to the
// zero value.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC1123,
	"2006-01-02",
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("timestamp: unrecognised format %q", s)
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}

// Date formats the timestamp as a short date, or "N/A" when unset.
func (t Timestamp) Date() string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("Jan 02, 2006")
}

// DateTime formats the timestamp with the time of day, or "N/A" when unset.
func (t Timestamp) DateTime() string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("Jan 02, 2006 15:04")
}

// Transcript is the interview transcript as display text. The API stores
// transcripts as JSON; a plain string is kept as-is and any other shape is
// rendered as indented JSON.
type Transcript string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Transcript) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*t = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("transcript: %w", err)
		}
		*t = Transcript(s)
		return nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, trimmed, "", "  "); err != nil {
		return fmt.Errorf("transcript: %w", err)
	}
	*t = Transcript(buf.String())
	return nil
}

// ScoreText renders the score as "N/100", or "N/A" when unscored.
func (iv Interview) ScoreText() string {
	if iv.Score == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d/100", *iv.Score)
}

// Feedback returns the admin feedback or an empty string.
func (iv Interview) Feedback() string {
	if iv.AdminFeedback == nil {
		return ""
	}
	return *iv.AdminFeedback
}
