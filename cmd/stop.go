package cmd

import (
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/ttimetracker/internal/config"
	"github.com/twiced-technology-gmbh/ttimetracker/internal/output"
	"github.com/twiced-technology-gmbh/ttimetracker/internal/tasklog"
)

var stopCmd = &cobra.Command{
	Use:     "stop [DESCRIPTION...]",
	Aliases: []string{"done", "finish"},
	Short:   "Complete the running task",
	Long: `Completes the running task and appends it to the day file of its start.
A description replaces the one given at start.`,
	RunE: runStop,
}

func init() {
	stopCmd.Flags().String("at", "", "finish time (e.g. 17:45, -10m)")
	stopCmd.Flags().String("desc", "", "replacement description (instead of arguments)")
	rootCmd.AddCommand(stopCmd)
}

func runStop(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	at, err := momentFlag(cmd, "at", now())
	if err != nil {
		return err
	}

	desc, err := descriptionArg(cmd, args)
	if err != nil {
		return err
	}
	stopped, err := stopTask(cfg, desc, at)
	if err != nil {
		return err
	}
	return printRecord(cmd, cfg, "Stopped", stopped)
}

// printRecord reports a single mutated record in the active format.
func printRecord(cmd *cobra.Command, cfg *config.Config, verb string, r tasklog.Record) error {
	w := cmd.OutOrStdout()
	switch outputFormat(cfg) {
	case output.FormatJSON:
		return output.JSON(w, r)
	case output.FormatCompact:
		output.RecordCompact(w, []tasklog.Record{r})
		return nil
	}
	output.RecordDetail(w, verb, r)
	return nil
}
