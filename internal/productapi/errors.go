package productapi

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable = errors.New("backend unavailable")
	ErrBadStatus   = errors.New("backend bad status")
	ErrDecode      = errors.New("backend response decode")
)

// ConflictError is returned when the backend refuses a create with 409.
// Detail is the backend's message, untouched.
type ConflictError struct {
	Detail string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("backend conflict: %s", e.Detail)
}

func badStatus(code int) error {
	return fmt.Errorf("%w: status=%d", ErrBadStatus, code)
}
