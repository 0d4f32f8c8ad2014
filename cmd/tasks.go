package cmd

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/ttimetracker/internal/clierr"
	"github.com/twiced-technology-gmbh/ttimetracker/internal/config"
	"github.com/twiced-technology-gmbh/ttimetracker/internal/date"
	"github.com/twiced-technology-gmbh/ttimetracker/internal/tasklog"
)

// startResult is what start reports: the opened task and, if one was
// running, the task it completed or discarded.
type startResult struct {
	Started   tasklog.Record  `json:"started"`
	Stopped   *tasklog.Record `json:"stopped,omitempty"`
	Discarded *tasklog.Record `json:"discarded,omitempty"`
}

// startTask opens a new task at start. A running task is completed at the
// same instant, or dropped when discard is set.
func startTask(cfg *config.Config, desc string, start time.Time, discard bool) (startResult, error) {
	var res startResult
	l, err := openLog(cfg, now())
	if err != nil {
		return res, err
	}

	err = withLock(cfg, func() error {
		cur, err := l.ReadPointer(tasklog.Current)
		if err != nil {
			return err
		}
		if cur != nil {
			switch {
			case discard:
				if err := l.ClearPointer(tasklog.Current); err != nil {
					return err
				}
				res.Discarded = cur
				logActivity(cfg, "cancel", *cur)
			case cfg.StopOnStart:
				stopped, err := completeTask(cfg, *cur, "", start)
				if err != nil {
					return err
				}
				res.Stopped = &stopped
				logActivity(cfg, "stop", stopped)
			default:
				return runningError(cur)
			}
		}

		started, err := l.Save(tasklog.Record{Start: start, Description: desc})
		if err != nil {
			return err
		}
		res.Started = started
		logActivity(cfg, "start", started)
		return nil
	})
	return res, err
}

// stopTask completes the running task at finish. A non-empty desc replaces
// the running task's description.
func stopTask(cfg *config.Config, desc string, finish time.Time) (tasklog.Record, error) {
	var stopped tasklog.Record
	l, err := openLog(cfg, now())
	if err != nil {
		return stopped, err
	}

	err = withLock(cfg, func() error {
		cur, err := l.ReadPointer(tasklog.Current)
		if err != nil {
			return err
		}
		if cur == nil {
			return clierr.New(clierr.NoCurrentTask, "no task is running")
		}
		stopped, err = completeTask(cfg, *cur, desc, finish)
		if err != nil {
			return err
		}
		logActivity(cfg, "stop", stopped)
		return nil
	})
	return stopped, err
}

// completeTask saves cur as completed at finish. The record goes to the
// day file of its start so range queries find it.
func completeTask(cfg *config.Config, cur tasklog.Record, desc string, finish time.Time) (tasklog.Record, error) {
	if finish.Before(cur.Start) {
		return tasklog.Record{}, clierr.Newf(clierr.InvalidTime,
			"finish %s is before the start of %q at %s",
			finish.Format(tasklog.TimeLayout), cur.Description, cur.Start.Format(tasklog.TimeLayout))
	}
	if desc != "" {
		cur.Description = desc
	}
	cur.Finish = &finish

	dayLog, err := openLog(cfg, cur.Start)
	if err != nil {
		return tasklog.Record{}, err
	}
	return dayLog.Save(cur)
}

// logTask records a completed task directly.
func logTask(cfg *config.Config, desc string, start, finish time.Time, force bool) (tasklog.Record, error) {
	var logged tasklog.Record
	if finish.Before(start) {
		return logged, clierr.Newf(clierr.InvalidTime, "--to %s is before --from %s",
			finish.Format(tasklog.TimeLayout), start.Format(tasklog.TimeLayout))
	}

	l, err := openLog(cfg, start)
	if err != nil {
		return logged, err
	}

	err = withLock(cfg, func() error {
		cur, err := l.ReadPointer(tasklog.Current)
		if err != nil {
			return err
		}
		if cur != nil && !force {
			return runningError(cur)
		}
		logged, err = l.Save(tasklog.Record{Start: start, Finish: &finish, Description: desc})
		if err != nil {
			return err
		}
		logActivity(cfg, "log", logged)
		return nil
	})
	return logged, err
}

// resumeTask opens a new task with the description of the last one.
func resumeTask(cfg *config.Config, start time.Time) (tasklog.Record, error) {
	var resumed tasklog.Record
	l, err := openLog(cfg, now())
	if err != nil {
		return resumed, err
	}

	err = withLock(cfg, func() error {
		cur, err := l.ReadPointer(tasklog.Current)
		if err != nil {
			return err
		}
		if cur != nil {
			return runningError(cur)
		}
		last, err := l.ReadPointer(tasklog.Last)
		if err != nil {
			return err
		}
		if last == nil {
			return clierr.New(clierr.NoLastTask, "no task to resume")
		}
		resumed, err = l.Save(tasklog.Record{Start: start, Description: last.Description})
		if err != nil {
			return err
		}
		logActivity(cfg, "resume", resumed)
		return nil
	})
	return resumed, err
}

// cancelTask drops the running task without logging it.
func cancelTask(cfg *config.Config) (tasklog.Record, error) {
	var cancelled tasklog.Record
	l, err := openLog(cfg, now())
	if err != nil {
		return cancelled, err
	}

	err = withLock(cfg, func() error {
		cur, err := l.ReadPointer(tasklog.Current)
		if err != nil {
			return err
		}
		if cur == nil {
			return clierr.New(clierr.NoCurrentTask, "no task is running")
		}
		if err := l.ClearPointer(tasklog.Current); err != nil {
			return err
		}
		cancelled = *cur
		logActivity(cfg, "cancel", cancelled)
		return nil
	})
	return cancelled, err
}

// readStatus returns the current and last pointers, either may be nil.
func readStatus(l *tasklog.Log) (current, last *tasklog.Record, err error) {
	current, err = l.ReadPointer(tasklog.Current)
	if err != nil {
		return nil, nil, err
	}
	last, err = l.ReadPointer(tasklog.Last)
	if err != nil {
		return nil, nil, err
	}
	return current, last, nil
}

func runningError(cur *tasklog.Record) error {
	return clierr.Newf(clierr.TaskRunning, "%q is running since %s",
		cur.Description, cur.Start.Format("2006-01-02 15:04")).
		WithDetails(map[string]any{"description": cur.Description, "start": cur.Start})
}

// descriptionArg returns --desc if set, otherwise the joined arguments.
// Commas are rejected: an open task line has no other way to tell a
// description field from a finish field.
func descriptionArg(cmd *cobra.Command, args []string) (string, error) {
	desc, _ := cmd.Flags().GetString("desc")
	if desc == "" {
		desc = strings.Join(args, " ")
	}
	desc = strings.TrimSpace(desc)
	if strings.Contains(desc, ",") {
		return "", clierr.Newf(clierr.InvalidInput, "description %q must not contain a comma", desc).
			WithDetails(map[string]any{"description": desc})
	}
	return desc, nil
}

// momentFlag parses a time flag relative to ref. An unset flag yields ref.
func momentFlag(cmd *cobra.Command, name string, ref time.Time) (time.Time, error) {
	if !cmd.Flags().Changed(name) {
		return ref, nil
	}
	value, _ := cmd.Flags().GetString(name)
	t, err := date.ParseMoment(value, ref)
	if err != nil {
		return time.Time{}, clierr.Newf(clierr.InvalidTime, "invalid --%s: %v", name, err).
			WithDetails(map[string]any{"flag": name, "value": value})
	}
	return t, nil
}
