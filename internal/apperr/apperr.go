package apperr

import (
	"errors"
	"strings"
)

var (
	// ErrUnauthorized means the caller identity could not be resolved.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrMissingParameter means a required path parameter was empty.
	ErrMissingParameter = errors.New("missing id")
	// ErrNotFound covers both absent rows and rows owned by someone else.
	ErrNotFound = errors.New("not found")
)

// ValidationError is a payload that failed its shape checks.
type ValidationError struct {
	Fields []string
	Msg    string
}

func (e *ValidationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if len(e.Fields) > 0 {
		return "invalid fields: " + strings.Join(e.Fields, ", ")
	}
	return "invalid request"
}

func Validation(msg string, fields ...string) *ValidationError {
	return &ValidationError{Msg: msg, Fields: fields}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
