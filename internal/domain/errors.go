package domain

import (
	"errors"
	"strings"
)

var (
	// ErrSubmissionNotFound is returned when a stored submission id does not exist.
	ErrSubmissionNotFound = errors.New("submission not found")
	// ErrInvalidPassword is returned when the admin secret does not match.
	ErrInvalidPassword = errors.New("invalid password")
	// ErrInvalidAction indicates an unsupported admin action or a missing id.
	ErrInvalidAction = errors.New("invalid action")
	// ErrCatalogNotFound indicates the catalog content could not be loaded.
	ErrCatalogNotFound = errors.New("catalog not found")
	// ErrAttemptNotFound is returned when an in-progress attempt has expired or never existed.
	ErrAttemptNotFound = errors.New("attempt not found")
	// ErrAttemptNotStarted is returned when navigating before user info was captured.
	ErrAttemptNotStarted = errors.New("attempt not started")
	// ErrAttemptStarted is returned when user info is captured twice without a reset.
	ErrAttemptStarted = errors.New("attempt already started")
	// ErrAttemptCompleted is returned when a completed attempt receives further answers.
	ErrAttemptCompleted = errors.New("attempt already completed")
	// ErrAttemptIncomplete is returned when submitting before the last question.
	ErrAttemptIncomplete = errors.New("attempt not completed")
	// ErrQuestionOutOfRange indicates a section/criterion index outside the catalog.
	ErrQuestionOutOfRange = errors.New("question out of range")
)

// FieldError is a correctable problem with one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports input problems field by field.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

// Add appends a field error.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// OrNil returns nil when no field errors were recorded.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// First returns the first recorded message.
func (e *ValidationError) First() string {
	if len(e.Fields) == 0 {
		return ""
	}
	return e.Fields[0].Message
}
