package cli

import (
	"errors"
	"fmt"

	"github.com/FilipeMCruz/playlist-maker/maker"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution, including empty results
	ExitFailure      = 1 // Runtime error (unreadable input, storage failure, etc.)
	ExitCommandError = 2 // Usage error or malformed query
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitSuccess for nil, the code of an ExitError, ExitCommandError
// for malformed queries and configuration errors, and ExitFailure otherwise.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if maker.IsKind(err, maker.ErrQueryParse) || maker.IsKind(err, maker.ErrConfig) {
		return ExitCommandError
	}
	return ExitFailure
}
