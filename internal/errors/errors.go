// Package errors holds the sentinel errors shared by the seller, product and auth
// domains. Domain errors wrap one of them so handlers can map any failure to a
// response without knowing which domain produced it.
package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized covers missing, malformed, expired or wrongly signed credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden means the caller is authenticated but may not act, for example a
	// disabled seller or a product owned by someone else.
	ErrForbidden = errors.New("forbidden")

	ErrTooManyRequests = errors.New("too many requests")
)

// Machine readable codes returned in error responses.
const (
	CodeNotFound        = "not_found"
	CodeConflict        = "conflict"
	CodeInvalidInput    = "invalid_input"
	CodeUnauthorized    = "unauthorized"
	CodeForbidden       = "forbidden"
	CodeTooManyRequests = "too_many_requests"
	CodeInternal        = "internal_error"
)

var codes = []struct {
	sentinel error
	code     string
}{
	{ErrNotFound, CodeNotFound},
	{ErrConflict, CodeConflict},
	{ErrInvalidInput, CodeInvalidInput},
	{ErrUnauthorized, CodeUnauthorized},
	{ErrForbidden, CodeForbidden},
	{ErrTooManyRequests, CodeTooManyRequests},
}

// Code returns the code of the first sentinel found in err's tree, or CodeInternal.
func Code(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.sentinel) {
			return c.code
		}
	}
	return CodeInternal
}

// Wrap prefixes err with message, keeping err in the chain. It returns nil for a nil err.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
