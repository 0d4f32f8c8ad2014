package tasklog

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/twiced-technology-gmbh/ttimetracker/internal/date"
)

// QueryRange returns the records whose start lies in [from, to].
//
// A nil from defaults to the start of now's day and a nil to defaults to
// its end; the bounds are swapped if reversed. Day files are read from
// from's date through to's date, and records keep file order. A malformed
// line fails the whole query.
func (l *Log) QueryRange(from, to *time.Time) ([]Record, error) {
	lo, hi := date.StartOfDay(l.now), date.EndOfDay(l.now)
	if from != nil {
		lo = *from
	}
	if to != nil {
		hi = *to
	}
	if lo.After(hi) {
		lo, hi = hi, lo
	}

	var records []Record
	for _, day := range date.Days(lo, hi) {
		dayRecords, err := l.readDay(day.Time)
		if err != nil {
			return nil, err
		}
		records = append(records, dayRecords...)
	}

	kept := records[:0]
	for _, r := range records {
		if r.Start.Before(lo) || r.Start.After(hi) {
			continue
		}
		kept = append(kept, r)
	}
	l.logger.Debug("range queried", "from", lo.Format(TimeLayout), "to", hi.Format(TimeLayout), "records", len(kept))
	return kept, nil
}

// readDay parses every line of day's file. A blank line is malformed. A
// missing file yields no records.
func (l *Log) readDay(day time.Time) ([]Record, error) {
	path := l.DayPath(day)
	f, err := os.Open(path) //nolint:gosec // path inside the data directory
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	defer f.Close()

	var records []Record
	scanner := newLineScanner(f)
	n := 0
	for scanner.Scan() {
		n++
		rec, err := l.ParseLine(scanner.Text(), day)
		if err != nil {
			return nil, at(err, path, n)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}
	return records, nil
}
