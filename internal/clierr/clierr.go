// Package clierr defines structured error types for CLI commands.
// Errors carry a machine-readable code, a human-readable message,
// and optional details for scripts consuming JSON output.
package clierr

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/twiced-technology-gmbh/ttimetracker/internal/tasklog"
)

// Error codes are uppercase and stable across minor versions.
const (
	NoCurrentTask    = "NO_CURRENT_TASK"
	NoLastTask       = "NO_LAST_TASK"
	TaskRunning      = "TASK_RUNNING"
	InvalidInput     = "INVALID_INPUT"
	InvalidTime      = "INVALID_TIME"
	InvalidConfigKey = "INVALID_CONFIG_KEY"
	ParseError       = "PARSE_ERROR"
	IOError          = "IO_ERROR"
	InternalError    = "INTERNAL_ERROR"
)

// Error represents a structured CLI error with a machine-readable code.
type Error struct {
	Code    string
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// New creates an Error with the given code and message.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithDetails returns the error with the given details map attached.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// ExitCode returns 2 for InternalError, 1 for all others.
func (e *Error) ExitCode() int {
	if e.Code == InternalError {
		return 2 //nolint:mnd // exit code 2 for internal errors
	}
	return 1
}

// FromTaskLog converts task log errors into coded CLI errors. Errors that
// are already *Error, or unknown, are returned unchanged.
func FromTaskLog(err error) error {
	if err == nil {
		return nil
	}
	var cliErr *Error
	if errors.As(err, &cliErr) {
		return err
	}

	var pe *tasklog.ParseError
	if errors.As(err, &pe) {
		details := map[string]any{"text": pe.Text}
		if pe.Path != "" {
			details["file"] = pe.Path
			details["line"] = pe.Line
		}
		return New(ParseError, pe.Error()).WithDetails(details)
	}

	var ioErr *tasklog.IOError
	if errors.As(err, &ioErr) {
		return New(IOError, ioErr.Error()).WithDetails(map[string]any{"op": ioErr.Op, "path": ioErr.Path})
	}
	return err
}

// SilentError signals an exit code without additional output.
type SilentError struct {
	Code int
}

// Error implements the error interface.
func (e *SilentError) Error() string { return "exit " + strconv.Itoa(e.Code) }
