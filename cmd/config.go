package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/ttimetracker/internal/clierr"
	"github.com/twiced-technology-gmbh/ttimetracker/internal/config"
	"github.com/twiced-technology-gmbh/ttimetracker/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify configuration",
	Long:  `View the full configuration, get a specific key, or set a writable value.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// configAccessor describes how to get and set a config key.
type configAccessor struct {
	get      func(*config.Config) any
	set      func(*config.Config, string) error
	writable bool
}

func configAccessors() map[string]configAccessor {
	return map[string]configAccessor{
		"version": {
			get: func(c *config.Config) any { return c.Version },
		},
		"dir": {
			get: func(c *config.Config) any { return c.Dir() },
		},
		"output": {
			get:      func(c *config.Config) any { return c.Output },
			set:      func(c *config.Config, v string) error { c.Output = v; return nil },
			writable: true,
		},
		"color": {
			get: func(c *config.Config) any { return c.ColorEnabled() },
			set: func(c *config.Config, v string) error {
				b, err := parseBoolValue("color", v)
				if err != nil {
					return err
				}
				c.SetColor(b)
				return nil
			},
			writable: true,
		},
		"lock":          boolAccessor("lock", func(c *config.Config) *bool { return &c.Lock }),
		"activity_log":  boolAccessor("activity_log", func(c *config.Config) *bool { return &c.ActivityLog }),
		"stop_on_start": boolAccessor("stop_on_start", func(c *config.Config) *bool { return &c.StopOnStart }),
		"report.group_by": {
			get:      func(c *config.Config) any { return c.Report.GroupBy },
			set:      func(c *config.Config, v string) error { c.Report.GroupBy = v; return nil },
			writable: true,
		},
		"report.sort": {
			get:      func(c *config.Config) any { return c.Report.Sort },
			set:      func(c *config.Config, v string) error { c.Report.Sort = v; return nil },
			writable: true,
		},
		"watch.tick": {
			get: func(c *config.Config) any { return c.Watch.Tick },
			set: func(c *config.Config, v string) error {
				if _, err := time.ParseDuration(v); err != nil {
					return clierr.Newf(clierr.InvalidInput, "invalid watch.tick %q: %v", v, err)
				}
				c.Watch.Tick = v
				return nil
			},
			writable: true,
		},
	}
}

func boolAccessor(key string, field func(*config.Config) *bool) configAccessor {
	return configAccessor{
		get: func(c *config.Config) any { return *field(c) },
		set: func(c *config.Config, v string) error {
			b, err := parseBoolValue(key, v)
			if err != nil {
				return err
			}
			*field(c) = b
			return nil
		},
		writable: true,
	}
}

func parseBoolValue(key, v string) (bool, error) {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, clierr.Newf(clierr.InvalidInput, "invalid %s %q: must be true or false", key, v)
	}
	return b, nil
}

// allConfigKeys returns config keys in display order.
func allConfigKeys() []string {
	return []string{
		"version",
		"dir",
		"output",
		"color",
		"lock",
		"activity_log",
		"stop_on_start",
		"report.group_by",
		"report.sort",
		"watch.tick",
	}
}

func lookupConfigKey(key string) (configAccessor, error) {
	acc, ok := configAccessors()[key]
	if !ok {
		return acc, clierr.Newf(clierr.InvalidConfigKey, "unknown config key %q", key).
			WithDetails(map[string]any{"valid": allConfigKeys()})
	}
	return acc, nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	accessors := configAccessors()
	w := cmd.OutOrStdout()

	if outputFormat(cfg) == output.FormatJSON {
		m := make(map[string]any, len(accessors))
		for _, key := range allConfigKeys() {
			m[key] = accessors[key].get(cfg)
		}
		return output.JSON(w, m)
	}

	for _, key := range allConfigKeys() {
		fmt.Fprintf(w, "%-16s %s\n", key, formatConfigValue(accessors[key].get(cfg)))
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	acc, err := lookupConfigKey(args[0])
	if err != nil {
		return err
	}
	val := acc.get(cfg)

	if outputFormat(cfg) == output.FormatJSON {
		return output.JSON(cmd.OutOrStdout(), val)
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatConfigValue(val))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	acc, err := lookupConfigKey(key)
	if err != nil {
		return err
	}
	if !acc.writable {
		return clierr.Newf(clierr.InvalidConfigKey, "config key %q is read-only", key)
	}

	if err := acc.set(cfg, value); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		if errors.Is(err, config.ErrInvalid) {
			return clierr.New(clierr.InvalidInput, err.Error())
		}
		return fmt.Errorf("saving config: %w", err)
	}

	if outputFormat(cfg) == output.FormatJSON {
		return output.JSON(cmd.OutOrStdout(), map[string]any{"key": key, "value": acc.get(cfg)})
	}
	output.Messagef(cmd.OutOrStdout(), "Set %s = %s", key, formatConfigValue(acc.get(cfg)))
	return nil
}

func formatConfigValue(val any) string {
	switch v := val.(type) {
	case string:
		if v == "" {
			return "--"
		}
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
