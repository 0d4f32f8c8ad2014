package tasklog

import (
	"errors"
	"io/fs"
	"os"
	"strings"
)

// Save persists a record and returns it with Duration filled in.
//
// The last pointer is always removed first. A record without Finish
// replaces the current pointer. A record with Finish is appended to the
// Log's day file and, when a current pointer exists, current is renamed to
// last. A zero Start defaults to the Log's now.
func (l *Log) Save(rec Record) (Record, error) {
	if err := l.ClearPointer(Last); err != nil {
		return Record{}, err
	}

	rec.Description = strings.TrimSpace(rec.Description)
	rec.Running = false
	if rec.Start.IsZero() {
		rec.Start = l.now
	}

	if rec.Finish == nil {
		rec.Duration = 0
		path := l.PointerPath(Current)
		if err := writeFile(path, rec.openLine()+"\n", os.O_TRUNC); err != nil {
			return Record{}, err
		}
		l.logger.Debug("task started", "start", rec.Start.Format(TimeLayout), "description", rec.Description)
		return rec, nil
	}

	if err := writeFile(l.filename, rec.logLine()+"\n", os.O_APPEND); err != nil {
		return Record{}, err
	}
	if err := l.promoteCurrent(); err != nil {
		return Record{}, err
	}
	rec.Duration = minutesBetween(rec.Start, *rec.Finish)
	l.logger.Debug("task logged", "file", l.filename, "minutes", rec.Duration, "description", rec.Description)
	return rec, nil
}

// promoteCurrent renames current to last if current exists.
func (l *Log) promoteCurrent() error {
	from, to := l.PointerPath(Current), l.PointerPath(Last)
	if err := os.Rename(from, to); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return &IOError{Op: "rename", Path: from, Err: err}
	}
	return nil
}

// writeFile writes data to path opened with O_CREATE|O_WRONLY|mode. The
// file is closed on every path and a failed close is reported, so the data
// is on disk before any following rename.
func writeFile(path, data string, mode int) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|mode, fileMode) //nolint:gosec // path inside the data directory
	if err != nil {
		return &IOError{Op: "open", Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &IOError{Op: "close", Path: path, Err: cerr}
		}
	}()

	if _, err := f.WriteString(data); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
