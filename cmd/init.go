package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/ttimetracker/internal/config"
	"github.com/twiced-technology-gmbh/ttimetracker/internal/output"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the data directory and a default config.yml",
	Long: `Creates the data directory and writes config.yml with the default
settings. Other commands work without it; init only makes the settings
visible for editing.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing config.yml with defaults")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	force, _ := cmd.Flags().GetBool("force")
	existed := false
	if _, err := os.Stat(cfg.ConfigPath()); err == nil {
		existed = true
	}

	l, err := openLog(cfg, now())
	if err != nil {
		return err
	}

	if !existed || force {
		if force {
			dir := cfg.Dir()
			cfg = config.NewDefault()
			cfg.SetDir(dir)
		}
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
	}

	w := cmd.OutOrStdout()
	if outputFormat(cfg) == output.FormatJSON {
		return output.JSON(w, map[string]any{
			"dir":     cfg.Dir(),
			"config":  cfg.ConfigPath(),
			"day":     l.Filename(),
			"written": !existed || force,
		})
	}

	if existed && !force {
		output.Messagef(w, "Already initialized in %s", cfg.Dir())
	} else {
		output.Messagef(w, "Initialized %s", cfg.Dir())
	}
	output.Messagef(w, "  Config: %s", cfg.ConfigPath())
	output.Messagef(w, "  Today:  %s", l.Filename())
	return nil
}
