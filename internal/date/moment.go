package date

import (
	"fmt"
	"strings"
	"time"
)

// Layouts accepted for full timestamps, tried in order.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ClockLayouts are the accepted time-of-day layouts, tried in order.
var ClockLayouts = []string{
	"15:04:05",
	"15:04",
	"3:04pm",
	"3:04PM",
	"3pm",
	"3PM",
}

// ParseTimestamp parses a full date+time string in the local zone.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q: expected YYYY-MM-DD HH:MM:SS", s)
}

// ParseClock parses a bare time of day and places it on day.
func ParseClock(s string, day time.Time) (time.Time, error) {
	for _, layout := range ClockLayouts {
		c, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		y, m, d := day.Date()
		return time.Date(y, m, d, c.Hour(), c.Minute(), c.Second(), 0, day.Location()), nil
	}
	return time.Time{}, fmt.Errorf("invalid time of day %q: expected HH:MM[:SS]", s)
}

// ParseMoment resolves a command-line time argument against now.
//
// Accepted forms:
//   - "now", "today" (start of day), "yesterday" (start of previous day)
//   - "YYYY-MM-DD", "YYYY-MM-DD HH:MM", "YYYY-MM-DD HH:MM:SS"
//   - "HH:MM", "HH:MM:SS", "3pm", "3:04pm" on now's day
//   - signed durations relative to now, e.g. "-15m", "-1h30m", "+5m"
func ParseMoment(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "":
		return time.Time{}, fmt.Errorf("empty time")
	case "now":
		return now, nil
	case "today":
		return StartOfDay(now), nil
	case "yesterday":
		return StartOfDay(now.AddDate(0, 0, -1)), nil
	}

	if s[0] == '-' || s[0] == '+' {
		d, err := time.ParseDuration(s)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid offset %q: %w", s, err)
		}
		return now.Add(d), nil
	}

	if t, err := ParseTimestamp(s); err == nil {
		return t, nil
	}
	if t, err := ParseClock(s, now); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q: expected HH:MM, YYYY-MM-DD HH:MM or an offset like -15m", s)
}
