package cmd

import (
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/ttimetracker/internal/activity"
	"github.com/twiced-technology-gmbh/ttimetracker/internal/output"
)

const defaultHistoryLimit = 20

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent start, stop and log activity",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", defaultHistoryLimit, "number of entries (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := activity.Read(cfg.Dir(), limit)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch outputFormat(cfg) {
	case output.FormatJSON:
		if entries == nil {
			entries = []activity.Entry{}
		}
		return output.JSON(w, entries)
	case output.FormatCompact:
		output.ActivityCompact(w, entries)
		return nil
	}
	output.ActivityTable(w, entries)
	return nil
}
