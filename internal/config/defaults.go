// Package config handles the optional time tracker configuration file.
package config

const (
	// ConfigFileName is the name of the config file within the data directory.
	ConfigFileName = "config.yml"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 1

	// DefaultGroupBy is the default report grouping.
	DefaultGroupBy = GroupByDescription
	// DefaultSort is the default report ordering.
	DefaultSort = SortDuration
	// DefaultTick is the default refresh interval of the watch view.
	DefaultTick = "1s"
)

// Report groupings.
const (
	GroupByDescription = "description"
	GroupByDay         = "day"
)

// Report orderings.
const (
	SortDuration = "duration"
	SortName     = "name"
)

// Output formats accepted in the output key.
var outputFormats = []string{"", "table", "json", "compact"}

// GroupByFields lists the valid report groupings.
func GroupByFields() []string {
	return []string{GroupByDescription, GroupByDay}
}

// SortFields lists the valid report orderings.
func SortFields() []string {
	return []string{SortDuration, SortName}
}

// boolPtr returns a pointer to the given bool value.
func boolPtr(v bool) *bool { return &v }
