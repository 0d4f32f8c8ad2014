package cmd

import (
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/ttimetracker/internal/output"
	"github.com/twiced-technology-gmbh/ttimetracker/internal/tasklog"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks in a time range",
	Long: `Lists the tasks started within a range, today by default, in the order
they were recorded.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	addRangeFlags(listCmd)
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
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

	w := cmd.OutOrStdout()
	switch outputFormat(cfg) {
	case output.FormatJSON:
		if records == nil {
			records = []tasklog.Record{}
		}
		return output.JSON(w, output.RecordList{From: from, To: to, Records: records, Total: totalMinutes(records)})
	case output.FormatCompact:
		output.RecordCompact(w, records)
		return nil
	}
	output.RecordTable(w, records)
	return nil
}

func totalMinutes(records []tasklog.Record) int {
	total := 0
	for _, r := range records {
		total += r.Duration
	}
	return total
}
