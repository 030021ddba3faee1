package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrQueryInvalid signals a query that is empty after sanitization.
	ErrQueryInvalid = errors.New("query invalid")
	// ErrQueryTooLong signals a query exceeding the configured maximum length.
	ErrQueryTooLong = errors.New("query too long")
)

// QueryTooLongError wraps ErrQueryTooLong with the truncated query, which the
// transport layer surfaces as a diagnostic header.
type QueryTooLongError struct {
	Truncated string
}

func (e *QueryTooLongError) Error() string {
	return fmt.Sprintf("%s: truncated to %q", ErrQueryTooLong.Error(), e.Truncated)
}

func (e *QueryTooLongError) Unwrap() error { return ErrQueryTooLong }

// NewQueryTooLong creates a query-too-long error carrying the truncated query.
func NewQueryTooLong(truncated string) error {
	return &QueryTooLongError{Truncated: truncated}
}
