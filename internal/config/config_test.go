package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, CurrentVersion, cfg.Version)
	assert.True(t, cfg.Lock)
	assert.True(t, cfg.ActivityLog)
	assert.True(t, cfg.StopOnStart)
	assert.True(t, cfg.ColorEnabled())
	assert.Equal(t, GroupByDescription, cfg.Report.GroupBy)
	assert.Equal(t, time.Second, cfg.TickDuration())
	assert.Equal(t, filepath.Join(dir, ConfigFileName), cfg.ConfigPath())
	assert.NoFileExists(t, cfg.ConfigPath())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	yml := "output: json\nlock: false\nreport:\n  group_by: day\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(yml), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, "json", cfg.Output)
	assert.False(t, cfg.Lock)
	assert.True(t, cfg.ActivityLog)
	assert.Equal(t, GroupByDay, cfg.Report.GroupBy)
	assert.Equal(t, SortDuration, cfg.Report.Sort)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := NewDefault()
	cfg.SetDir(dir)
	cfg.SetColor(false)
	cfg.Watch.Tick = "5s"
	require.NoError(t, cfg.Save())

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.False(t, loaded.ColorEnabled())
	assert.Equal(t, 5*time.Second, loaded.TickDuration())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yml  string
	}{
		{"newer version", "version: 7\n"},
		{"bad output", "output: xml\n"},
		{"bad group", "report:\n  group_by: tag\n"},
		{"bad sort", "report:\n  sort: random\n"},
		{"bad tick", "watch:\n  tick: soon\n"},
		{"negative tick", "watch:\n  tick: -1s\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(tt.yml), 0o600))
			_, err := Load(dir)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
		})
	}
}

func TestLoad_Unparseable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("lock: [\n"), 0o600))
	_, err := Load(dir)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalid))
}

func TestSave_RejectsInvalid(t *testing.T) {
	cfg := NewDefault()
	cfg.SetDir(t.TempDir())
	cfg.Report.Sort = "nope"
	require.ErrorIs(t, cfg.Save(), ErrInvalid)
	assert.NoFileExists(t, cfg.ConfigPath())
}
