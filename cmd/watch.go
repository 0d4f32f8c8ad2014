package cmd

import (
	"context"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/ttimetracker/internal/config"
	"github.com/twiced-technology-gmbh/ttimetracker/internal/tasklog"
	"github.com/twiced-technology-gmbh/ttimetracker/internal/tui"
	"github.com/twiced-technology-gmbh/ttimetracker/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live view of the running task",
	Long: `Opens a terminal view of the running task and today's total. The view
refreshes when any tt command changes the data directory.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	l, err := openLog(cfg, now())
	if err != nil {
		return err
	}

	model := tui.NewTimer(watchActions(cfg), cfg.TickDuration())
	p := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go startWatcher(ctx, []string{l.Directory(), l.Subdirectory()}, p)

	_, err = p.Run()
	return err
}

// watchActions binds the live view to the same operations as the commands.
func watchActions(cfg *config.Config) tui.Actions {
	return tui.Actions{
		Load: func() (tui.Snapshot, error) {
			return loadSnapshot(cfg)
		},
		Stop: func() error {
			_, err := stopTask(cfg, "", now())
			return err
		},
		Resume: func() error {
			_, err := resumeTask(cfg, now())
			return err
		},
	}
}

func loadSnapshot(cfg *config.Config) (tui.Snapshot, error) {
	l, err := openLog(cfg, now())
	if err != nil {
		return tui.Snapshot{}, err
	}
	current, last, err := readStatus(l)
	if err != nil {
		return tui.Snapshot{}, err
	}
	today, err := l.QueryRange(nil, nil)
	if err != nil {
		return tui.Snapshot{}, err
	}
	return tui.Snapshot{Current: current, Last: last, Today: today}, nil
}

// isTaskFile matches the pointer files and day files.
func isTaskFile(name string) bool {
	return name == string(tasklog.Current) || name == string(tasklog.Last) || filepath.Ext(name) == ".csv"
}

func startWatcher(ctx context.Context, dirs []string, p *tea.Program) {
	w, err := watcher.New(dirs, isTaskFile, func() {
		p.Send(tui.ReloadMsg{})
	})
	if err != nil {
		logger.Debug("file watcher unavailable", "error", err)
		return // non-fatal: the view still refreshes on key press
	}
	defer w.Close()
	w.Run(ctx, func(err error) {
		logger.Debug("file watcher error", "error", err)
	})
}
