//go:build !windows

package filelock

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLock_Exclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".lock")

	unlock, err := Lock(context.Background(), path)
	require.NoError(t, err)

	// flock locks belong to the open file description, so a second open of
	// the same path conflicts even within this process.
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err = Lock(ctx, path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBusy))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	require.NoError(t, unlock())

	unlock2, err := Lock(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, unlock2())
}

func TestLock_BadPath(t *testing.T) {
	_, err := Lock(context.Background(), filepath.Join(t.TempDir(), "missing", ".lock"))
	assert.Error(t, err)
}
