package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMovieNotFound     = errors.New("movie not found")
	ErrDuplicateTitle    = errors.New("movie title already exists")
	ErrDuplicateCategory = errors.New("category already exists")
	ErrNetworkFailure    = errors.New("network request failed")
	ErrMalformedResponse = errors.New("malformed api response")
)

// ValidationError reports a missing or unparseable user-supplied field.
// It blocks the write it accompanies and is fully recoverable by
// correcting the input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
