// Package cmd implements the tt CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/twiced-technology-gmbh/ttimetracker/internal/activity"
	"github.com/twiced-technology-gmbh/ttimetracker/internal/clierr"
	"github.com/twiced-technology-gmbh/ttimetracker/internal/config"
	"github.com/twiced-technology-gmbh/ttimetracker/internal/filelock"
	"github.com/twiced-technology-gmbh/ttimetracker/internal/output"
	"github.com/twiced-technology-gmbh/ttimetracker/internal/tasklog"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	lockFileName = ".lock"
	lockTimeout  = 5 * time.Second
)

// Global flags.
var (
	flagJSON    bool
	flagTable   bool
	flagCompact bool
	flagDir     string
	flagNoColor bool
	flagVerbose bool
)

// now is the clock used by every command. Tests replace it.
var now = time.Now

// logger receives engine debug events; enabled with --verbose.
var logger = slog.New(slog.DiscardHandler)

var rootCmd = &cobra.Command{
	Use:   "tt",
	Short: "Track what you spend your time on",
	Long: `tt records tasks with a start and finish time in plain CSV files,
one file per day, and reports how long you spent on them.
Start a task with "tt start", finish it with "tt stop".`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if flagNoColor || os.Getenv("NO_COLOR") != "" {
			output.DisableColor()
		}
		if flagVerbose {
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		} else {
			logger = slog.New(slog.DiscardHandler)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output as table")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "compact one-line-per-record output")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "oneline", false, "alias for --compact")
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "", "path to the data directory (default ~/"+tasklog.DefaultDirName+")")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log file operations to stderr")
	rootCmd.SetGlobalNormalizationFunc(normalizeFlagName)
}

// flagAliases maps alternate long flag names onto their canonical names.
var flagAliases = map[string]string{
	"description": "desc",
	"since":       "from",
	"until":       "to",
}

func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if canonical, ok := flagAliases[name]; ok {
		name = canonical
	}
	return pflag.NormalizedName(name)
}

// Execute runs the root command.
func Execute() {
	_, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}
	err = clierr.FromTaskLog(err)

	// SilentError: exit with code, no output.
	var silent *clierr.SilentError
	if errors.As(err, &silent) {
		os.Exit(silent.Code)
	}

	// Determine if JSON mode is active.
	jsonMode := flagJSON
	if !jsonMode {
		jsonMode = os.Getenv("TT_OUTPUT") == "json"
	}

	if jsonMode {
		var cliErr *clierr.Error
		if errors.As(err, &cliErr) {
			output.JSONError(os.Stdout, cliErr.Code, cliErr.Message, cliErr.Details)
			os.Exit(cliErr.ExitCode())
		}
		// Unknown error, reported as INTERNAL_ERROR.
		output.JSONError(os.Stdout, clierr.InternalError, err.Error(), nil)
		os.Exit(2) //nolint:mnd // exit code 2 for internal errors
	}

	// Non-JSON mode: print to stderr.
	fmt.Fprintln(os.Stderr, "Error:", err)
	var cliErr *clierr.Error
	if errors.As(err, &cliErr) {
		os.Exit(cliErr.ExitCode())
	}
	os.Exit(1)
}

// resolveDir returns the data directory: --dir, then TT_DIR, then
// ~/.ttimetracker.
func resolveDir() (string, error) {
	if flagDir != "" {
		return flagDir, nil
	}
	if env := os.Getenv("TT_DIR"); env != "" {
		return env, nil
	}
	return tasklog.DefaultDirectory()
}

// loadConfig resolves the data directory and loads its config.
func loadConfig() (*config.Config, error) {
	dir, err := resolveDir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		if errors.Is(err, config.ErrInvalid) {
			return nil, clierr.New(clierr.InvalidInput, err.Error()).
				WithDetails(map[string]any{"config": filepath.Join(dir, config.ConfigFileName)})
		}
		return nil, err
	}
	if !cfg.ColorEnabled() {
		output.DisableColor()
	}
	return cfg, nil
}

// openLog creates a task log for the given instant. Completed records are
// appended to the day file of that instant.
func openLog(cfg *config.Config, at time.Time) (*tasklog.Log, error) {
	return tasklog.New(tasklog.Options{
		Now:       at,
		Directory: cfg.Dir(),
		Logger:    logger,
	})
}

// withLock runs fn while holding the data directory lock, if enabled.
func withLock(cfg *config.Config, fn func() error) error {
	if !cfg.Lock {
		return fn()
	}

	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	unlock, err := filelock.Lock(ctx, filepath.Join(cfg.Dir(), lockFileName))
	if err != nil {
		if errors.Is(err, filelock.ErrBusy) {
			return clierr.Newf(clierr.IOError, "another tt command is still running: %v", err)
		}
		return fmt.Errorf("acquiring lock: %w", err)
	}
	defer func() {
		if unlockErr := unlock(); unlockErr != nil {
			logger.Debug("releasing lock failed", "error", unlockErr)
		}
	}()
	return fn()
}

// logActivity appends an entry to the activity log. Errors are silently
// discarded because logging should never fail a command.
func logActivity(cfg *config.Config, action string, r tasklog.Record) {
	if !cfg.ActivityLog {
		return
	}
	var finish *time.Time
	if r.Finish != nil && !r.Running {
		finish = r.Finish
	}
	activity.Record(cfg.Dir(), action, r.Description, r.Start, finish, r.Duration)
}

// outputFormat returns the detected output format from flags, env and config.
func outputFormat(cfg *config.Config) output.Format {
	configured := ""
	if cfg != nil {
		configured = cfg.Output
	}
	return output.Detect(flagJSON, flagTable, flagCompact, configured)
}
