package cmd

import (
	"github.com/spf13/cobra"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Start the last task again",
	Args:  cobra.NoArgs,
	RunE:  runResume,
}

func init() {
	resumeCmd.Flags().String("at", "", "start time (e.g. 13:00, -5m)")
	rootCmd.AddCommand(resumeCmd)
}

func runResume(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	at, err := momentFlag(cmd, "at", now())
	if err != nil {
		return err
	}

	resumed, err := resumeTask(cfg, at)
	if err != nil {
		return err
	}
	return printRecord(cmd, cfg, "Resumed", resumed)
}
