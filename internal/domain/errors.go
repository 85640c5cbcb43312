package domain

import (
	"errors"
	"strings"
)

// Sentinel errors shared by repositories and services.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
)

// ValidationError lists the problems found in a client supplied payload.
type ValidationError struct {
	Problems []string
}

// NewValidationError returns a ValidationError for the given problems.
func NewValidationError(problems ...string) *ValidationError {
	return &ValidationError{Problems: problems}
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

// Is lets errors.Is(err, ErrInvalidInput) match validation failures.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
