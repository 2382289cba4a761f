package errors

import (
	"errors"
	"fmt"
	"strings"
)

var ErrValidation = errors.New("validation failed")
var ErrUnauthenticated = errors.New("user is not authenticated")
var ErrRequestFailed = errors.New("gateway request failed")
var ErrForbidden = errors.New("user lacks the required role")
var ErrCancelled = errors.New("view was closed before the request completed")

// ValidationError blocks a submission before it reaches the network.
type ValidationError struct {
	Problems []string
}

func NewValidationError(problems ...string) *ValidationError {
	return &ValidationError{Problems: problems}
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return ErrValidation.Error()
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// RequestFailedError is any non-success gateway response. The body is
// dropped on purpose; only the status survives for logs.
type RequestFailedError struct {
	Op     string
	Status int
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("%s: unexpected status code: %d", e.Op, e.Status)
}

func (e *RequestFailedError) Is(target error) bool {
	return target == ErrRequestFailed
}
