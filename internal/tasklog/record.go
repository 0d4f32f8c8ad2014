package tasklog

import (
	"fmt"
	"math"
	"time"
)

// Record is one tracked task.
type Record struct {
	Start time.Time `json:"start"`
	// Finish is nil for a task that has not been completed. Parsed lines
	// without a finish field carry the Log's now here and set Running.
	Finish      *time.Time `json:"finish,omitempty"`
	Description string     `json:"description"`
	// Duration is derived in whole minutes, rounded up. Never persisted.
	Duration int  `json:"duration"`
	Running  bool `json:"running,omitempty"`
}

// Elapsed returns the duration in minutes between start and finish, or
// between start and now when the record has no finish.
func (r Record) Elapsed(now time.Time) int {
	if r.Finish != nil && !r.Running {
		return minutesBetween(r.Start, *r.Finish)
	}
	return minutesBetween(r.Start, now)
}

// minutesBetween returns ceil((finish - start) / 1m).
func minutesBetween(start, finish time.Time) int {
	return int(math.Ceil(finish.Sub(start).Seconds() / 60)) //nolint:mnd // seconds per minute
}

// logLine renders a completed record as stored in day files and in last.
func (r Record) logLine() string {
	return fmt.Sprintf("%s, %s, %s", r.Start.Format(TimeLayout), r.Finish.Format(TimeLayout), r.Description)
}

// openLine renders an open record as stored in current.
func (r Record) openLine() string {
	return fmt.Sprintf("%s, %s", r.Start.Format(TimeLayout), r.Description)
}

// FormatMinutes renders minutes as H:MM, e.g. 95 -> "1:15", 5 -> "0:05".
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		return "-" + FormatMinutes(-minutes)
	}
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60) //nolint:mnd // minutes per hour
}
