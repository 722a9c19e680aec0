package errors

import (
	"errors"
	"fmt"
)

type Exception struct {
	Message  string
	ExitCode int
}

func (e *Exception) Error() string {
	return e.Message
}

// Wrap attaches cause to the sentinel so errors.Is matches both.
func Wrap(e *Exception, cause error) error {
	if cause == nil {
		return e
	}
	return fmt.Errorf("%w: %w", e, cause)
}

func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.ExitCode
	}
	return 1
}
