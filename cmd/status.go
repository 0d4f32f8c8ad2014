package cmd

import (
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/ttimetracker/internal/clierr"
	"github.com/twiced-technology-gmbh/ttimetracker/internal/output"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Aliases: []string{"current"},
	Short:   "Show the running and the last task",
	Long: `Shows the running and the last task. With --check nothing is printed
and the exit status is 0 while a task is running, 1 otherwise.`,
	Args:    cobra.NoArgs,
	RunE:    runStatus,
}

func init() {
	statusCmd.Flags().Bool("check", false, "print nothing, exit 1 when no task is running")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	l, err := openLog(cfg, now())
	if err != nil {
		return err
	}
	current, last, err := readStatus(l)
	if err != nil {
		return err
	}
	if check, _ := cmd.Flags().GetBool("check"); check {
		if current == nil {
			return &clierr.SilentError{Code: 1}
		}
		return nil
	}

	w := cmd.OutOrStdout()
	switch outputFormat(cfg) {
	case output.FormatJSON:
		return output.JSON(w, output.StatusView{Current: current, Last: last})
	case output.FormatCompact:
		output.StatusCompact(w, current, last)
		return nil
	}
	output.StatusTable(w, current, last)
	return nil
}
