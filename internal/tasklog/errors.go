package tasklog

import (
	"errors"
	"fmt"
)

// ErrParse is matched by every *ParseError via errors.Is.
var ErrParse = errors.New("malformed task line")

// IOError reports a failed filesystem operation.
type IOError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error { return e.Err }

// ParseError reports a task line that could not be parsed.
// Path and Line are set when the line came from a file.
type ParseError struct {
	Path   string
	Line   int
	Text   string
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s:%d: %s: %q", e.Path, e.Line, e.Reason, e.Text)
	}
	return fmt.Sprintf("%s: %q", e.Reason, e.Text)
}

// Is makes errors.Is(err, ErrParse) true for any ParseError.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// at attaches file position to a parse error, leaving other errors as is.
func at(err error, path string, line int) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		pe.Path = path
		pe.Line = line
	}
	return err
}
