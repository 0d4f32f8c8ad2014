// Package date provides calendar-day helpers in the local time zone.
package date

import (
	"fmt"
	"strings"
	"time"
)

const format = "2006-01-02"

// Date represents a calendar date without time of day.
// The embedded Time is local midnight of that date.
type Date struct {
	time.Time
}

// Of returns the calendar date t falls on, in t's location.
func Of(t time.Time) Date {
	return Date{StartOfDay(t)}
}

// Parse parses a YYYY-MM-DD string into a Date.
func Parse(s string) (Date, error) {
	t, err := time.ParseInLocation(format, s, time.Local)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

// String returns the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(format)
}

// Next returns the following calendar day.
func (d Date) Next() Date {
	return Date{d.AddDate(0, 0, 1)}
}

// End returns the last instant of the day.
func (d Date) End() time.Time {
	return EndOfDay(d.Time)
}

// StartOfDay returns midnight at the beginning of t's day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's day, one
// nanosecond before the next midnight.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location()).Add(-time.Nanosecond)
}

// StartOfWeek returns midnight of the Monday of t's week.
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 //nolint:mnd // days per week, Monday first
	return StartOfDay(t).AddDate(0, 0, -offset)
}

// ParseDay parses a calendar day: "today", "yesterday" or YYYY-MM-DD.
func ParseDay(s string, now time.Time) (Date, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return Of(now), nil
	case "yesterday":
		return Of(now.AddDate(0, 0, -1)), nil
	}
	return Parse(strings.TrimSpace(s))
}

// Days returns every calendar date from from's day through to's day,
// inclusive, in ascending order. It returns nil when to is before from.
func Days(from, to time.Time) []Date {
	first := Of(from)
	last := Of(to.In(from.Location()))
	if last.Before(first.Time) {
		return nil
	}
	var days []Date
	for d := first; !d.After(last.Time); d = d.Next() {
		days = append(days, d)
	}
	return days
}
