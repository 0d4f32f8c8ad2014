// Package output handles formatting CLI output as table, JSON, or compact.
package output

import (
	"os"
)

// Format represents an output format.
type Format int

const (
	// FormatAuto uses the default format (table).
	FormatAuto Format = iota
	// FormatJSON outputs JSON.
	FormatJSON
	// FormatTable outputs a human-readable table.
	FormatTable
	// FormatCompact outputs one-line-per-record compact format.
	FormatCompact
)

// Detect returns the appropriate format based on flags, the TT_OUTPUT
// environment variable, and the configured default, in that order.
// Default is table when no explicit format is set.
func Detect(jsonFlag, tableFlag, compactFlag bool, configured string) Format {
	if jsonFlag {
		return FormatJSON
	}
	if compactFlag {
		return FormatCompact
	}
	if tableFlag {
		return FormatTable
	}

	if f, ok := parseFormat(os.Getenv("TT_OUTPUT")); ok {
		return f
	}
	if f, ok := parseFormat(configured); ok {
		return f
	}
	return FormatTable
}

func parseFormat(s string) (Format, bool) {
	switch s {
	case "json":
		return FormatJSON, true
	case "compact", "oneline":
		return FormatCompact, true
	case "table":
		return FormatTable, true
	}
	return FormatAuto, false
}
