// Package watcher notifies the time tracker when task files in its data
// directory change.
package watcher

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the write+rename burst of a single save into
// one notification.
const DefaultDebounce = 100 * time.Millisecond

// changeOps are the fsnotify operations that can alter a task file.
const changeOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

// Watcher reports changes to task files below a set of directories. The
// notify callback runs on the Run goroutine once events stop arriving for
// the debounce interval.
type Watcher struct {
	fs       *fsnotify.Watcher
	isTask   func(name string) bool
	quiet    time.Duration
	onChange func()
}

// New watches dirs. Only events whose base file name satisfies isTask
// count as changes; a nil isTask accepts every file.
func New(dirs []string, isTask func(name string) bool, onChange func()) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fs.Add(dir); err != nil {
			_ = fs.Close()
			return nil, err
		}
	}
	if isTask == nil {
		isTask = func(string) bool { return true }
	}
	return &Watcher{fs: fs, isTask: isTask, quiet: DefaultDebounce, onChange: onChange}, nil
}

// Run processes events until ctx is canceled or the watcher is closed.
// Watch errors go to errFn when it is non-nil. A change still pending when
// Run returns is dropped.
func (w *Watcher) Run(ctx context.Context, errFn func(error)) {
	settle := time.NewTimer(w.quiet)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if w.relevant(ev) {
				settle.Reset(w.quiet)
			}

		case <-settle.C:
			w.onChange()

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			if errFn != nil {
				errFn(err)
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	return ev.Op&changeOps != 0 && w.isTask(filepath.Base(ev.Name))
}

// Close releases the underlying fsnotify watcher, which also ends Run.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
