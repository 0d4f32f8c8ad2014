package activity

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndRead(t *testing.T) {
	dir := t.TempDir()
	start := time.Date(2012, 5, 16, 9, 0, 0, 0, time.UTC)
	finish := start.Add(30 * time.Minute)

	require.NoError(t, Append(dir, Entry{Timestamp: start, Action: "start", Description: "standup", Start: start}))
	Record(dir, "stop", "standup", start, &finish, 30)

	entries, err := Read(dir, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "start", entries[0].Action)
	assert.Nil(t, entries[0].Finish)
	assert.Equal(t, "stop", entries[1].Action)
	require.NotNil(t, entries[1].Finish)
	assert.True(t, finish.Equal(*entries[1].Finish))
	assert.Equal(t, 30, entries[1].Minutes)

	last, err := Read(dir, 1)
	require.NoError(t, err)
	require.Len(t, last, 1)
	assert.Equal(t, "stop", last[0].Action)
}

func TestRead_MissingAndCorrupt(t *testing.T) {
	dir := t.TempDir()
	entries, err := Read(dir, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)

	content := `{"action":"start","description":"a"}` + "\n{broken\n\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o600))
	entries, err = Read(dir, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].Description)
}

func TestTruncateIfNeeded(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	var b strings.Builder
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&b, "line-%d\n", i)
	}
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))

	require.NoError(t, truncateIfNeeded(path, 5))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line-7\nline-8\nline-9\nline-10\nline-11\n", string(data))
}
