package cmd

import (
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/twiced-technology-gmbh/ttimetracker/internal/clierr"
	"github.com/twiced-technology-gmbh/ttimetracker/internal/config"
	"github.com/twiced-technology-gmbh/ttimetracker/internal/output"
	"github.com/twiced-technology-gmbh/ttimetracker/internal/report"
)

const defaultReportWidth = 80

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Total the time spent per task or per day",
	Long: `Sums the tracked minutes in a range, today by default, grouped by
description or by day. On a terminal the report is rendered as markdown.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	addRangeFlags(reportCmd)
	reportCmd.Flags().String("by", "", "group by field ("+strings.Join(config.GroupByFields(), ", ")+")")
	reportCmd.Flags().String("sort", "", "order groups by ("+strings.Join(config.SortFields(), ", ")+")")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	groupBy, _ := cmd.Flags().GetString("by")
	if groupBy == "" {
		groupBy = cfg.Report.GroupBy
	}
	if !slices.Contains(config.GroupByFields(), groupBy) {
		return clierr.Newf(clierr.InvalidInput, "invalid --by field %q; valid: %s",
			groupBy, strings.Join(config.GroupByFields(), ", "))
	}
	sortBy, _ := cmd.Flags().GetString("sort")
	if sortBy == "" {
		sortBy = cfg.Report.Sort
	}
	if !slices.Contains(config.SortFields(), sortBy) {
		return clierr.Newf(clierr.InvalidInput, "invalid --sort field %q; valid: %s",
			sortBy, strings.Join(config.SortFields(), ", "))
	}

	ref := now()
	from, to, err := rangeFromFlags(cmd, ref)
	if err != nil {
		return err
	}

	l, err := openLog(cfg, ref)
	if err != nil {
		return err
	}
	records, err := l.QueryRange(&from, &to)
	if err != nil {
		return err
	}
	summary := report.Build(records, from, to, groupBy, sortBy)

	w := cmd.OutOrStdout()
	switch outputFormat(cfg) {
	case output.FormatJSON:
		if summary.Groups == nil {
			summary.Groups = []report.Group{}
		}
		return output.JSON(w, summary)
	case output.FormatCompact:
		output.ReportCompact(w, summary)
		return nil
	}

	markdown, width := terminalWidth(w)
	return output.ReportTable(w, summary, markdown, width)
}

// terminalWidth reports whether w is an interactive terminal and its width.
func terminalWidth(w io.Writer) (bool, int) {
	f, ok := w.(*os.File)
	if !ok {
		return false, defaultReportWidth
	}
	fd := int(f.Fd()) //nolint:gosec // file descriptors fit in int
	if !term.IsTerminal(fd) {
		return false, defaultReportWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		width = defaultReportWidth
	}
	return true, width
}
