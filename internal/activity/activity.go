// Package activity keeps an append-only JSONL history of mutating commands.
package activity

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// FileName is the activity log name inside the data directory.
	FileName      = "activity.jsonl"
	logFileMode   = 0o600
	maxLogEntries = 10000 // truncate oldest entries when log exceeds this size
)

// Entry represents a single activity log entry.
type Entry struct {
	Timestamp   time.Time  `json:"timestamp"`
	Action      string     `json:"action"`
	Description string     `json:"description"`
	Start       time.Time  `json:"start"`
	Finish      *time.Time `json:"finish,omitempty"`
	Minutes     int        `json:"minutes,omitempty"`
}

// Append appends an entry to the activity log in dir.
// If the log exceeds maxLogEntries, the oldest entries are truncated.
func Append(dir string, entry Entry) error {
	path := filepath.Join(dir, FileName)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, logFileMode) //nolint:gosec // log path inside the data directory
	if err != nil {
		return fmt.Errorf("opening activity log: %w", err)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("marshaling activity entry: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing activity entry: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing activity log: %w", err)
	}

	// Truncate if needed (best-effort; errors are non-fatal).
	_ = truncateIfNeeded(path, maxLogEntries)

	return nil
}

// Read returns the newest limit entries, oldest first. A limit of zero or
// less returns every entry. A missing log yields no entries.
func Read(dir string, limit int) ([]Entry, error) {
	f, err := os.Open(filepath.Join(dir, FileName)) //nolint:gosec // log path inside the data directory
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			continue // skip lines from interrupted writes
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading activity log: %w", err)
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}

// truncateIfNeeded rewrites the log keeping only the newest max lines.
func truncateIfNeeded(path string, maxEntries int) error {
	f, err := os.Open(path) //nolint:gosec // trusted path
	if err != nil {
		return err
	}

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	_ = f.Close()

	if err := scanner.Err(); err != nil {
		return err
	}

	if len(lines) <= maxEntries {
		return nil
	}

	lines = lines[len(lines)-maxEntries:]

	var buf strings.Builder
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(buf.String()), logFileMode)
}

// Record appends an entry stamped with the current time. Errors are
// silently discarded because history should never fail a command.
func Record(dir, action, description string, start time.Time, finish *time.Time, minutes int) {
	_ = Append(dir, Entry{
		Timestamp:   time.Now(),
		Action:      action,
		Description: description,
		Start:       start,
		Finish:      finish,
		Minutes:     minutes,
	})
}
