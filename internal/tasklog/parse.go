package tasklog

import (
	"bufio"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/twiced-technology-gmbh/ttimetracker/internal/date"
)

// MaxLineSize bounds a single stored line, description included.
const MaxLineSize = 1 << 20

// datePattern detects a full timestamp as opposed to a bare time of day.
var datePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// ParseLine parses a stored task line. Time-only fields are placed on
// defaultDay. With exactly two fields after the start, the first is the
// finish and must parse. A line without a finish field gets the Log's now
// as a provisional finish and is marked Running. Longer lines are read as
// a finish followed by a description containing commas when the second
// field is a time, otherwise as an open task.
func (l *Log) ParseLine(line string, defaultDay time.Time) (Record, error) {
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	if len(fields) == 1 && fields[0] == "" {
		return Record{}, &ParseError{Text: line, Reason: "empty line"}
	}
	if fields[0] == "" {
		return Record{}, &ParseError{Text: line, Reason: "missing start"}
	}

	start, err := parseMoment(fields[0], defaultDay)
	if err != nil {
		return Record{}, &ParseError{Text: line, Reason: "invalid start " + quote(fields[0])}
	}

	rest := fields[1:]
	rec := Record{Start: start}
	switch {
	case len(rest) == 2: //nolint:mnd // finish plus description
		finish, err := parseMoment(rest[0], defaultDay)
		if err != nil {
			return Record{}, &ParseError{Text: line, Reason: "invalid finish " + quote(rest[0])}
		}
		return rec.complete(finish, rest[1]), nil
	case len(rest) > 2: //nolint:mnd // description contains commas
		if finish, err := parseMoment(rest[0], defaultDay); err == nil {
			return rec.complete(finish, strings.Join(rest[1:], ", ")), nil
		}
	}

	now := l.now
	rec.Finish = &now
	rec.Running = true
	rec.Description = strings.Join(rest, ", ")
	rec.Duration = minutesBetween(start, now)
	return rec, nil
}

func (r Record) complete(finish time.Time, desc string) Record {
	r.Finish = &finish
	r.Description = desc
	r.Duration = minutesBetween(r.Start, finish)
	return r
}

// parseMoment reads a full timestamp when text contains a YYYY-MM-DD date,
// otherwise a time of day on day.
func parseMoment(text string, day time.Time) (time.Time, error) {
	if datePattern.MatchString(text) {
		return date.ParseTimestamp(text)
	}
	return date.ParseClock(text, day)
}

func quote(s string) string {
	return `"` + s + `"`
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), MaxLineSize)
	return s
}
