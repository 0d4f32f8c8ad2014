package tasklog

import (
	"errors"
	"io/fs"
	"os"
	"strings"
)

// Pointer names one of the two single-record state files.
type Pointer string

// Pointer files.
const (
	Current Pointer = "current"
	Last    Pointer = "last"
)

// ReadPointer returns the record held by the named pointer file, or nil
// when the file does not exist or its first line is blank.
func (l *Log) ReadPointer(name Pointer) (*Record, error) {
	path := l.PointerPath(name)
	line, ok, err := firstLine(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	if !ok || strings.TrimSpace(line) == "" {
		return nil, nil
	}

	rec, err := l.ParseLine(line, l.now)
	if err != nil {
		return nil, at(err, path, 1)
	}
	return &rec, nil
}

// ClearPointer removes the named pointer file. A missing file is not an error.
func (l *Log) ClearPointer(name Pointer) error {
	path := l.PointerPath(name)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &IOError{Op: "remove", Path: path, Err: err}
	}
	l.logger.Debug("pointer cleared", "pointer", string(name))
	return nil
}

// firstLine reads the first line of path. ok is false when the file does
// not exist or is empty.
func firstLine(path string) (line string, ok bool, err error) {
	f, err := os.Open(path) //nolint:gosec // path inside the data directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	defer f.Close()

	scanner := newLineScanner(f)
	if !scanner.Scan() {
		return "", false, scanner.Err()
	}
	return scanner.Text(), true, nil
}
