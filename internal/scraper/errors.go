package scraper

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownRegion      = errors.New("unknown region")
	ErrMissingCredentials = errors.New("user id and password are required")
	ErrLoginFailed        = errors.New("login failed: check the card number and password")
	ErrUnexpectedLayout   = errors.New("unexpected page layout")
)

// ListError reports an unknown list selector.
type ListError struct {
	Name string
}

func (e *ListError) Error() string {
	return fmt.Sprintf("unknown list %q (want all, loans or reservations)", e.Name)
}

// Layoutf wraps ErrUnexpectedLayout with detail about what did not match.
func Layoutf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnexpectedLayout, fmt.Sprintf(format, args...))
}
