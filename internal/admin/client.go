package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RequestIDHeader carries the per-request token so server logs can be
// correlated with the client's event log.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// WithRequestID returns a context whose requests carry id in RequestIDHeader.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the request id stored in ctx, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Client talks to the admin API rooted at a fixed base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets a per-request timeout. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: d}
	}
}

// New creates a Client for the API at baseURL (e.g. https://host/api/admin).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// InterviewFilter narrows GET /interviews. The zero value lists everything.
type InterviewFilter struct {
	JobID     string
	Status    string
	Search    string
	SortBy    string // score | interview_date | status
	SortOrder string // asc | desc
}

func (f InterviewFilter) query() string {
	v := url.Values{}
	if f.JobID != "" {
		v.Set("job_id", f.JobID)
	}
	if f.Status != "" {
		v.Set("status", f.Status)
	}
	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.SortBy != "" {
		v.Set("sort_by", f.SortBy)
	}
	if f.SortOrder != "" {
		v.Set("sort_order", f.SortOrder)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// DashboardSummary fetches GET /dashboard-summary.
func (c *Client) DashboardSummary(ctx context.Context) (*DashboardSummary, error) {
	var s DashboardSummary
	if err := c.getJSON(ctx, "/dashboard-summary", "fetching summary", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListJobs fetches GET /jobs.
func (c *Client) ListJobs(ctx context.Context) ([]Job, error) {
	jobs := []Job{}
	if err := c.getJSON(ctx, "/jobs", "fetching jobs", &jobs); err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []Job{}
	}
	return jobs, nil
}

// GetJob fetches GET /jobs/{id}. A 404 is reported as an error matching
// ErrNotFound.
func (c *Client) GetJob(ctx context.Context, id string) (*Job, error) {
	var j Job
	if err := c.getJSON(ctx, "/jobs/"+url.PathEscape(id), "fetching job "+id, &j); err != nil {
		return nil, err
	}
	return &j, nil
}

// ListInterviews fetches GET /interviews with optional filters.
func (c *Client) ListInterviews(ctx context.Context, f InterviewFilter) ([]Interview, error) {
	op := "fetching interviews"
	if f.JobID != "" {
		op = "fetching interviews for job " + f.JobID
	}
	interviews := []Interview{}
	if err := c.getJSON(ctx, "/interviews"+f.query(), op, &interviews); err != nil {
		return nil, err
	}
	if interviews == nil {
		interviews = []Interview{}
	}
	return interviews, nil
}

// GetInterview fetches GET /interviews/{id}. A 404 is reported as an error
// matching ErrNotFound.
func (c *Client) GetInterview(ctx context.Context, id string) (*Interview, error) {
	var iv Interview
	if err := c.getJSON(ctx, "/interviews/"+url.PathEscape(id), "fetching interview "+id, &iv); err != nil {
		return nil, err
	}
	return &iv, nil
}

// CreateJob sends POST /jobs.
func (c *Client) CreateJob(ctx context.Context, in JobInput) (*Job, error) {
	var j Job
	if err := c.sendJSON(ctx, http.MethodPost, "/jobs", in, &j); err != nil {
		return nil, err
	}
	return &j, nil
}

// UpdateJob sends PUT /jobs/{id}.
func (c *Client) UpdateJob(ctx context.Context, id string, in JobInput) (*Job, error) {
	var j Job
	if err := c.sendJSON(ctx, http.MethodPut, "/jobs/"+url.PathEscape(id), in, &j); err != nil {
		return nil, err
	}
	return &j, nil
}

// DeleteJob sends DELETE /jobs/{id}.
func (c *Client) DeleteJob(ctx context.Context, id string) error {
	return c.sendJSON(ctx, http.MethodDelete, "/jobs/"+url.PathEscape(id), nil, nil)
}

// ScoreInterview sends POST /interviews/{id}/score and returns the updated
// interview together with the raw fields the server sent back.
func (c *Client) ScoreInterview(ctx context.Context, id string, in ScoreInput) (*ScoredInterview, error) {
	var raw json.RawMessage
	if err := c.sendJSON(ctx, http.MethodPost, "/interviews/"+url.PathEscape(id)+"/score", in, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("decoding score response: empty body")
	}

	out := &ScoredInterview{Fields: make(map[string]json.RawMessage)}
	if err := json.Unmarshal(raw, &out.Fields); err != nil {
		return nil, fmt.Errorf("decoding score response: %w", err)
	}
	if err := json.Unmarshal(raw, &out.Interview); err != nil {
		return nil, fmt.Errorf("decoding score response: %w", err)
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshalling request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := RequestID(ctx); id != "" {
		req.Header.Set(RequestIDHeader, id)
	}

	return c.httpClient.Do(req)
}

// getJSON performs a GET and decodes the body into v. Any status outside
// 2xx becomes an APIError naming op; the error body is ignored.
func (c *Client) getJSON(ctx context.Context, path, op string, v any) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &APIError{Status: resp.StatusCode, Op: op}
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding response %s: %w", op, err)
	}
	return nil
}

// sendJSON performs a mutating request. Error bodies are parsed for the
// server's message. v may be nil when the response body is not needed.
func (c *Client) sendJSON(ctx context.Context, method, path string, body, v any) error {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return mutationError(resp.StatusCode, data)
	}
	if v == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
