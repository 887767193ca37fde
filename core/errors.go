package core

import (
	"fmt"
)

// NewError creates a new error from a format string and arguments.
func NewError(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// WrappedError wraps an existing error with additional context. The original
// error stays reachable through errors.Is / errors.As.
func WrappedError(err error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
