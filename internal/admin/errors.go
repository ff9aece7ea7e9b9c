package admin

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound matches any APIError carrying a 404 status.
var ErrNotFound = errors.New("not found")

// unknownErrorMessage is reported when an error response has no JSON body.
const unknownErrorMessage = "Unknown error occurred"

// APIError is a non-success HTTP response from the admin API.
type APIError struct {
	Status  int
	Op      string // e.g. "fetching jobs"; empty for mutations
	Message string // server-supplied message, if any
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Op != "" {
		return fmt.Sprintf("HTTP error %d %s", e.Status, e.Op)
	}
	return fmt.Sprintf("HTTP error %d", e.Status)
}

// Is reports whether target is ErrNotFound and the status is 404.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == 404
}

// StatusCode returns the HTTP status carried by err, or 0 if err is not an
// APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// mutationError builds the APIError for a failed POST/PUT/DELETE. The server
// reports failures as {"message": "..."}; a body that is not JSON yields a
// generic message and a JSON body without a message falls back to the status.
func mutationError(status int, body []byte) *APIError {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return &APIError{Status: status, Message: unknownErrorMessage}
	}
	return &APIError{Status: status, Message: payload.Message}
}
