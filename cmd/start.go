package cmd

import (
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/ttimetracker/internal/clierr"
	"github.com/twiced-technology-gmbh/ttimetracker/internal/output"
	"github.com/twiced-technology-gmbh/ttimetracker/internal/tasklog"
)

var startCmd = &cobra.Command{
	Use:   "start DESCRIPTION...",
	Short: "Start a task",
	Long: `Starts tracking a task. A task that is already running is completed at
the same moment, unless --discard drops it instead.`,
	RunE: runStart,
}

func init() {
	startCmd.Flags().String("at", "", "start time (e.g. 9:30, -15m, 2012-05-16 09:30)")
	startCmd.Flags().String("desc", "", "task description (instead of arguments)")
	startCmd.Flags().Bool("discard", false, "drop the running task instead of completing it")
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	desc, err := descriptionArg(cmd, args)
	if err != nil {
		return err
	}
	if desc == "" {
		return clierr.New(clierr.InvalidInput, "a task description is required")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	at, err := momentFlag(cmd, "at", now())
	if err != nil {
		return err
	}
	discard, _ := cmd.Flags().GetBool("discard")

	res, err := startTask(cfg, desc, at, discard)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch outputFormat(cfg) {
	case output.FormatJSON:
		return output.JSON(w, res)
	case output.FormatCompact:
		if res.Stopped != nil {
			output.RecordCompact(w, []tasklog.Record{*res.Stopped})
		}
		output.RecordCompact(w, []tasklog.Record{res.Started})
		return nil
	}

	if res.Stopped != nil {
		output.RecordDetail(w, "Stopped", *res.Stopped)
	}
	if res.Discarded != nil {
		output.RecordDetail(w, "Discarded", *res.Discarded)
	}
	output.RecordDetail(w, "Started", res.Started)
	return nil
}
