// Package filelock provides advisory file locking so that two tt
// invocations do not interleave updates to the pointer files.
package filelock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"
)

const (
	lockFileMode  = 0o600
	retryInterval = 20 * time.Millisecond
)

// ErrBusy is returned when another process holds the lock.
var ErrBusy = errors.New("lock held by another process")

// Lock acquires an exclusive advisory lock on the file at path, creating it
// if it does not exist. It polls until the lock is free or ctx is done, in
// which case the error wraps ErrBusy. The returned function releases the
// lock and must be called when the critical section is done.
func Lock(ctx context.Context, path string) (unlock func() error, err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockFileMode) //nolint:gosec // lock file path inside the data directory
	if err != nil {
		return nil, err
	}

	for {
		ok, err := tryLockFile(f)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			_ = f.Close()
			return nil, fmt.Errorf("%w: %s: %w", ErrBusy, path, ctx.Err())
		case <-time.After(retryInterval):
		}
	}

	return func() error {
		unlockErr := unlockFile(f)
		closeErr := f.Close()
		if unlockErr != nil {
			return unlockErr
		}
		return closeErr
	}, nil
}
