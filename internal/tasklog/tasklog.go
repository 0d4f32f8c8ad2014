// Package tasklog stores tracked tasks as per-day CSV files plus two
// pointer files, current and last, under a single data directory.
//
// Layout:
//
//	<dir>/current                         start, description
//	<dir>/last                            start, finish, description
//	<dir>/YYYY/MM_Mon/YYYY-MM-DD.csv      one completed task per line
//
// A Log is bound to the day of its Now at construction time. It performs
// plain synchronous file I/O and does no locking.
package tasklog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultDirName is the data directory name under the user's home.
	DefaultDirName = ".ttimetracker"

	// TimeLayout is the on-disk timestamp format (local time, no offset).
	TimeLayout = "2006-01-02 15:04:05"

	dirMode  = 0o750
	fileMode = 0o600
)

// Options configures a Log. Zero values select the defaults.
type Options struct {
	// Now selects the day file this Log targets and is used as the
	// default start and provisional finish. Defaults to time.Now().
	Now time.Time

	// Directory holds the pointer files and the year tree.
	// Defaults to DefaultDirectory().
	Directory string

	// Subdirectory holds the day file. Defaults to
	// Directory/<YYYY>/<MM_Mon>/ for Now.
	Subdirectory string

	// Filename is the day file completed tasks are appended to.
	// Defaults to Subdirectory/<YYYY-MM-DD>.csv for Now.
	Filename string

	// Logger receives debug events. Defaults to a discarding logger.
	Logger *slog.Logger
}

// Log is a task log rooted at a data directory.
type Log struct {
	now          time.Time
	directory    string
	subdirectory string
	filename     string
	logger       *slog.Logger
}

// DefaultDirectory returns ~/.ttimetracker.
func DefaultDirectory() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, DefaultDirName), nil
}

// New creates a Log and makes sure its subdirectory exists.
func New(opts Options) (*Log, error) {
	l := &Log{
		now:          opts.Now,
		directory:    opts.Directory,
		subdirectory: opts.Subdirectory,
		filename:     opts.Filename,
		logger:       opts.Logger,
	}
	if l.now.IsZero() {
		l.now = time.Now()
	}
	if l.logger == nil {
		l.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if l.directory == "" {
		dir, err := DefaultDirectory()
		if err != nil {
			return nil, err
		}
		l.directory = dir
	}
	if l.subdirectory == "" {
		l.subdirectory = monthDir(l.directory, l.now)
	}
	if l.filename == "" {
		l.filename = filepath.Join(l.subdirectory, dayFileName(l.now))
	}

	if err := os.MkdirAll(l.subdirectory, dirMode); err != nil {
		return nil, &IOError{Op: "create directory", Path: l.subdirectory, Err: err}
	}
	l.logger.Debug("task log ready", "dir", l.directory, "file", l.filename)
	return l, nil
}

// Now returns the instant the Log was constructed for.
func (l *Log) Now() time.Time { return l.now }

// Directory returns the data directory.
func (l *Log) Directory() string { return l.directory }

// Subdirectory returns the directory holding this Log's day file.
func (l *Log) Subdirectory() string { return l.subdirectory }

// Filename returns the day file completed tasks are appended to.
func (l *Log) Filename() string { return l.filename }

// PointerPath returns the path of the named pointer file.
func (l *Log) PointerPath(name Pointer) string {
	return filepath.Join(l.directory, string(name))
}

// DayPath returns the day file path for the given day. The day of Now maps
// to Filename so that explicit overrides are honored.
func (l *Log) DayPath(day time.Time) string {
	if sameDay(day, l.now) {
		return l.filename
	}
	return filepath.Join(monthDir(l.directory, day), dayFileName(day))
}

// monthDir returns <dir>/<YYYY>/<MM_Mon>.
func monthDir(dir string, t time.Time) string {
	return filepath.Join(dir, t.Format("2006"), t.Format("01_Jan"))
}

func dayFileName(t time.Time) string {
	return t.Format("2006-01-02") + ".csv"
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}
