package output

import (
	"fmt"
	"io"
	"os"

	"github.com/twiced-technology-gmbh/ttimetracker/internal/activity"
	"github.com/twiced-technology-gmbh/ttimetracker/internal/tasklog"
)

// ActivityTable renders activity entries, oldest first.
func ActivityTable(w io.Writer, entries []activity.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "No activity recorded.")
		return
	}
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-16s  %-7s  %-11s  %6s  %s", "WHEN", "ACTION", "SPAN", "TIME", "DESCRIPTION")))
	for _, e := range entries {
		span := e.Start.Format(clockLayout) + "-"
		minutes := dimStyle.Render(padLeft("--", 6)) //nolint:mnd // time column width
		if e.Finish != nil {
			span += e.Finish.Format(clockLayout)
			minutes = padLeft(styledDuration(e.Minutes), 6) //nolint:mnd // time column width
		}
		fmt.Fprintf(w, "%s  %s  %-11s  %s  %s\n",
			dimStyle.Render(e.Timestamp.Format("2006-01-02 15:04")),
			padRight(labelStyle.Render(e.Action), 7), //nolint:mnd // action column width
			span, minutes, e.Description)
	}
}

// ActivityCompact renders one line per activity entry.
func ActivityCompact(w io.Writer, entries []activity.Entry) {
	for _, e := range entries {
		fmt.Fprintf(w, "%s %s %s %s\n", e.Timestamp.Format(tasklog.TimeLayout), e.Action,
			tasklog.FormatMinutes(e.Minutes), e.Description)
	}
}
