package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.yaml.in/yaml/v3"
)

const (
	fileMode = 0o600
	dirMode  = 0o750
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Config represents the time tracker configuration. Every key is optional;
// omitted keys keep their defaults.
type Config struct {
	Version int `yaml:"version"`
	// Output is the default output format: table, json or compact.
	Output string `yaml:"output,omitempty"`
	// Color enables styled output. Nil means enabled.
	Color *bool `yaml:"color,omitempty"`
	// Lock serializes mutating commands with an advisory file lock.
	Lock bool `yaml:"lock"`
	// ActivityLog appends every mutation to activity.jsonl.
	ActivityLog bool `yaml:"activity_log"`
	// StopOnStart logs the running task when a new one is started.
	StopOnStart bool         `yaml:"stop_on_start"`
	Report      ReportConfig `yaml:"report"`
	Watch       WatchConfig  `yaml:"watch"`

	// dir is the absolute path to the data directory (not serialized).
	dir string `yaml:"-"`
}

// ReportConfig holds report defaults.
type ReportConfig struct {
	GroupBy string `yaml:"group_by"`
	Sort    string `yaml:"sort"`
}

// WatchConfig holds settings for the live view.
type WatchConfig struct {
	Tick string `yaml:"tick"`
}

// NewDefault creates a Config with default values.
func NewDefault() *Config {
	return &Config{
		Version:     CurrentVersion,
		Lock:        true,
		ActivityLog: true,
		StopOnStart: true,
		Report:      ReportConfig{GroupBy: DefaultGroupBy, Sort: DefaultSort},
		Watch:       WatchConfig{Tick: DefaultTick},
	}
}

// Dir returns the absolute path to the data directory.
func (c *Config) Dir() string {
	return c.dir
}

// SetDir sets the data directory path on the config.
func (c *Config) SetDir(dir string) {
	c.dir = dir
}

// ConfigPath returns the absolute path to the config file.
func (c *Config) ConfigPath() string {
	return filepath.Join(c.dir, ConfigFileName)
}

// ColorEnabled reports whether styled output is enabled.
func (c *Config) ColorEnabled() bool {
	return c.Color == nil || *c.Color
}

// SetColor enables or disables styled output.
func (c *Config) SetColor(enabled bool) {
	c.Color = boolPtr(enabled)
}

// TickDuration returns the watch refresh interval, falling back to the
// default for unparseable values.
func (c *Config) TickDuration() time.Duration {
	d, err := time.ParseDuration(c.Watch.Tick)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(DefaultTick)
	}
	return d
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: unsupported version %d (expected %d)", ErrInvalid, c.Version, CurrentVersion)
	}
	if !slices.Contains(outputFormats, c.Output) {
		return fmt.Errorf("%w: output must be one of table, json, compact (got %q)", ErrInvalid, c.Output)
	}
	if !slices.Contains(GroupByFields(), c.Report.GroupBy) {
		return fmt.Errorf("%w: report.group_by must be one of %v (got %q)", ErrInvalid, GroupByFields(), c.Report.GroupBy)
	}
	if !slices.Contains(SortFields(), c.Report.Sort) {
		return fmt.Errorf("%w: report.sort must be one of %v (got %q)", ErrInvalid, SortFields(), c.Report.Sort)
	}
	d, err := time.ParseDuration(c.Watch.Tick)
	if err != nil {
		return fmt.Errorf("%w: invalid watch.tick %q: %w", ErrInvalid, c.Watch.Tick, err)
	}
	if d <= 0 {
		return fmt.Errorf("%w: watch.tick must be positive", ErrInvalid)
	}
	return nil
}

// Save validates the config and writes it to its config file.
func (c *Config) Save() error {
	if err := c.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(c.dir, dirMode); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return os.WriteFile(c.ConfigPath(), data, fileMode)
}

// Load reads and validates the config in dir. A missing config file yields
// the defaults.
func Load(dir string) (*Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg := NewDefault()
	cfg.dir = absDir

	data, err := os.ReadFile(cfg.ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg.Version = 0
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := migrate(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
