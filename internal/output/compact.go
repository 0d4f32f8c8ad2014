package output

import (
	"fmt"
	"io"
	"os"

	"github.com/twiced-technology-gmbh/ttimetracker/internal/report"
	"github.com/twiced-technology-gmbh/ttimetracker/internal/tasklog"
)

// RecordCompact renders records one per line in their on-disk shape,
// prefixed by the duration.
func RecordCompact(w io.Writer, records []tasklog.Record) {
	if len(records) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}
	for _, r := range records {
		fmt.Fprintln(w, formatRecordLine(r))
	}
}

// StatusCompact renders the current and last tasks on one line each.
func StatusCompact(w io.Writer, current, last *tasklog.Record) {
	if current != nil {
		fmt.Fprintln(w, "current "+formatRecordLine(*current))
	}
	if last != nil {
		fmt.Fprintln(w, "last "+formatRecordLine(*last))
	}
}

// ReportCompact renders one "H:MM key" line per group.
func ReportCompact(w io.Writer, s report.Summary) {
	for _, g := range s.Groups {
		fmt.Fprintf(w, "%s %s\n", tasklog.FormatMinutes(g.Minutes), g.Key)
	}
}

// formatRecordLine builds the one-line representation of a record.
func formatRecordLine(r tasklog.Record) string {
	finish := "running"
	if r.Finish != nil && !r.Running {
		finish = r.Finish.Format(tasklog.TimeLayout)
	}
	return fmt.Sprintf("[%s] %s, %s, %s", tasklog.FormatMinutes(r.Duration),
		r.Start.Format(tasklog.TimeLayout), finish, r.Description)
}
