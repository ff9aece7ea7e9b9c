package admin

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrMissingRequired is returned when a job is missing a title, department or
// description.
var ErrMissingRequired = errors.New("please fill all required fields: Title, Department, Description")

// ErrInvalidScore is returned by ParseScore for anything other than a blank
// string or an integer between 0 and 100.
var ErrInvalidScore = errors.New("score must be a number between 0 and 100, or left blank")

// User-facing validation messages, shown inline next to the form.
const (
	MissingFieldsMessage = "Please fill all required fields: Title, Department, Description."
	InvalidScoreMessage  = "Score must be a number between 0 and 100, or left blank."
)

var validate = validator.New()

// JobInput is the body of POST /jobs and PUT /jobs/{id}.
type JobInput struct {
	Title             string  `json:"title" validate:"required"`
	Department        string  `json:"department" validate:"required"`
	Description       string  `json:"description" validate:"required"`
	Status            string  `json:"status" validate:"omitempty,oneof=Open Closed Draft"`
	NumberOfQuestions *int    `json:"number_of_questions,omitempty" validate:"omitempty,min=1,max=50"`
	MustAskTopics     *string `json:"must_ask_topics,omitempty"`
}

// InputFromJob returns the editable fields of an existing job.
func InputFromJob(j Job) JobInput {
	in := JobInput{
		Title:       j.Title,
		Department:  j.Department,
		Description: j.Description,
		Status:      j.Status,
	}
	if in.Status == "" {
		in.Status = JobStatusOpen
	}
	return in
}

// Validate checks the input before it is sent. Required fields must be
// non-blank after trimming; whitespace-only values count as missing.
func (in JobInput) Validate() error {
	trimmed := in
	trimmed.Title = strings.TrimSpace(in.Title)
	trimmed.Department = strings.TrimSpace(in.Department)
	trimmed.Description = strings.TrimSpace(in.Description)

	err := validate.Struct(trimmed)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating job: %w", err)
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return ErrMissingRequired
		}
	}
	fe := verrs[0]
	switch fe.Field() {
	case "Status":
		return fmt.Errorf("status must be one of %s", strings.Join(JobStatuses, ", "))
	case "NumberOfQuestions":
		return errors.New("number of questions must be between 1 and 50")
	}
	return fmt.Errorf("invalid %s", strings.ToLower(fe.Field()))
}

// ParseScore converts the score field of the feedback form. A blank string
// means "no score" and yields nil.
func ParseScore(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 100 {
		return nil, ErrInvalidScore
	}
	return &n, nil
}
