package cmd

import (
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/ttimetracker/internal/clierr"
)

var logCmd = &cobra.Command{
	Use:   "log DESCRIPTION... --from TIME [--to TIME]",
	Short: "Record a completed task",
	Long: `Records a task that already happened. --to defaults to now.
Refuses while a task is running, because logging replaces the last task
pointer with the running one; pass --force to do it anyway.`,
	RunE: runLog,
}

func init() {
	logCmd.Flags().String("from", "", "start time (required)")
	logCmd.Flags().String("to", "", "finish time (default now)")
	logCmd.Flags().String("desc", "", "task description (instead of arguments)")
	logCmd.Flags().Bool("force", false, "log even while a task is running")
	_ = logCmd.MarkFlagRequired("from")
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
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

	ref := now()
	from, err := momentFlag(cmd, "from", ref)
	if err != nil {
		return err
	}
	to, err := momentFlag(cmd, "to", ref)
	if err != nil {
		return err
	}
	force, _ := cmd.Flags().GetBool("force")

	logged, err := logTask(cfg, desc, from, to, force)
	if err != nil {
		return err
	}
	return printRecord(cmd, cfg, "Logged", logged)
}
