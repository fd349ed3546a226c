// Package common provides shared errors and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Ingest errors.
	ErrSourceUnavailable = errors.New("source workbook unavailable")
	ErrSchemaMismatch    = errors.New("source workbook schema mismatch")
	ErrNoRecords         = errors.New("no records loaded")

	// Storage errors.
	ErrNotFound         = errors.New("not found")
	ErrInvalidDateRange = errors.New("invalid date range")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
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
