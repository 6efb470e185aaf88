// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Registry errors.
	ErrInvalidRegistry  = errors.New("invalid registry")
	ErrEmptyRegistry    = errors.New("registry has no categories")
	ErrMissingFallback  = errors.New("registry is missing the Other fallback category")
	ErrDuplicateEntry   = errors.New("duplicate entry")
	ErrConflictingRules = errors.New("conflicting rule weights")

	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
