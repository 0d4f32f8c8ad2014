package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/twiced-technology-gmbh/ttimetracker/internal/report"
	"github.com/twiced-technology-gmbh/ttimetracker/internal/tasklog"
)

const clockLayout = "15:04"

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)
	totalStyle   = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))

	// Durations get warmer the longer a single stretch runs.
	durationStyles = []struct {
		atLeast int
		style   lipgloss.Style
	}{
		{240, lipgloss.NewStyle().Foreground(lipgloss.Color("208"))}, //nolint:mnd // four hours
		{60, lipgloss.NewStyle().Foreground(lipgloss.Color("226"))},  //nolint:mnd // one hour
		{0, lipgloss.NewStyle().Foreground(lipgloss.Color("34"))},
	}

	colorEnabled = true
)

// DisableColor strips all styling from table output.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	runningStyle = lipgloss.NewStyle()
	totalStyle = lipgloss.NewStyle()
	labelStyle = lipgloss.NewStyle()
	for i := range durationStyles {
		durationStyles[i].style = lipgloss.NewStyle()
	}
	colorEnabled = false
}

// RecordTable renders records as a table followed by a total line.
func RecordTable(w io.Writer, records []tasklog.Record) {
	if len(records) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	const pad = 2
	descW := len("DESCRIPTION") + pad
	for _, r := range records {
		descW = max(descW, min(len(r.Description)+pad, 60)) //nolint:mnd // max description column width
	}

	header := fmt.Sprintf("%-12s %-7s %-8s %7s  %-*s", "DATE", "START", "FINISH", "TIME", descW, "DESCRIPTION")
	fmt.Fprintln(w, headerStyle.Render(strings.TrimRight(header, " ")))

	total := 0
	for _, r := range records {
		total += r.Duration
		finish := runningStyle.Render("running")
		if r.Finish != nil && !r.Running {
			finish = r.Finish.Format(clockLayout)
		}
		desc := r.Description
		const maxDesc = 58
		if len(desc) > maxDesc {
			desc = desc[:maxDesc-3] + "..."
		}
		row := fmt.Sprintf("%-12s %-7s %s %s  %s",
			r.Start.Format("2006-01-02"),
			r.Start.Format(clockLayout),
			padRight(finish, 8), //nolint:mnd // finish column width
			padLeft(styledDuration(r.Duration), 7), //nolint:mnd // time column width
			desc)
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}

	fmt.Fprintln(w, totalStyle.Render(fmt.Sprintf("%-29s %7s  %d tasks", "TOTAL", tasklog.FormatMinutes(total), len(records))))
}

// StatusTable renders the current and last tasks.
func StatusTable(w io.Writer, current, last *tasklog.Record) {
	if current == nil {
		printField(w, "Current", dimStyle.Render("nothing running"))
	} else {
		printField(w, "Current", runningStyle.Render(current.Description))
		printField(w, "Since", current.Start.Format("2006-01-02 15:04"))
		printField(w, "Elapsed", styledDuration(current.Duration))
	}
	if last != nil {
		printField(w, "Last", last.Description)
		span := last.Start.Format("2006-01-02 15:04")
		if last.Finish != nil && !last.Running {
			span += " - " + last.Finish.Format(clockLayout)
		}
		printField(w, "", span+" ("+tasklog.FormatMinutes(last.Duration)+")")
	}
}

// RecordDetail renders the outcome of a single mutation.
func RecordDetail(w io.Writer, verb string, r tasklog.Record) {
	line := verb + " " + totalStyle.Render(r.Description) + " at " + r.Start.Format("15:04")
	if r.Finish != nil && !r.Running {
		line = fmt.Sprintf("%s %s %s-%s (%s)", verb, totalStyle.Render(r.Description),
			r.Start.Format(clockLayout), r.Finish.Format(clockLayout), styledDuration(r.Duration))
	}
	fmt.Fprintln(w, line)
}

// ReportTable renders a report. When markdown is true the report is
// rendered through glamour for a terminal, otherwise as a plain table.
func ReportTable(w io.Writer, s report.Summary, markdown bool, width int) error {
	if markdown {
		rendered, err := renderMarkdown(s.Markdown(), width)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, rendered)
		return err
	}

	keyW := len("GROUP") + 2 //nolint:mnd // column padding
	for _, g := range s.Groups {
		keyW = max(keyW, len(g.Key)+2) //nolint:mnd // column padding
	}
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-*s %7s %8s", keyW, strings.ToUpper(s.GroupBy), "ENTRIES", "TIME")))
	for _, g := range s.Groups {
		fmt.Fprintf(w, "%s %7d %s\n", padRight(labelStyle.Render(g.Key), keyW), g.Entries, padLeft(styledDuration(g.Minutes), 8)) //nolint:mnd // time column width
	}
	fmt.Fprintln(w, totalStyle.Render(fmt.Sprintf("%-*s %7d %8s", keyW, "TOTAL", s.Entries, tasklog.FormatMinutes(s.Total))))
	return nil
}

func renderMarkdown(md string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if colorEnabled {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle("notty"))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return out, nil
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}

func printField(w io.Writer, label, value string) {
	if label != "" {
		label += ":"
	}
	fmt.Fprintf(w, "  %s %s\n", padRight(labelStyle.Render(label), 10), value) //nolint:mnd // label column width
}

// FormatElapsed renders a running duration as "Xh Ym" or "Xd Yh".
func FormatElapsed(d time.Duration) string {
	const hoursPerDay = 24
	days := int(d.Hours()) / hoursPerDay
	hours := int(d.Hours()) % hoursPerDay
	if days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	minutes := int(d.Minutes()) % 60 //nolint:mnd // 60 minutes per hour
	return fmt.Sprintf("%dh %02dm", hours, minutes)
}

func styledDuration(minutes int) string {
	text := tasklog.FormatMinutes(minutes)
	for _, ds := range durationStyles {
		if minutes >= ds.atLeast {
			return ds.style.Render(text)
		}
	}
	return text
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func padLeft(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return strings.Repeat(" ", width-visible) + s
}
