package tasklog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDay(t *testing.T, l *Log, day time.Time, lines ...string) {
	t.Helper()
	path := l.DayPath(day)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600))
}

func descriptions(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Description
	}
	return out
}

func ptr(t time.Time) *time.Time { return &t }

func TestQueryRange_SingleDay(t *testing.T) {
	l := newTestLog(t, at2012(18, 0, 0))
	writeDay(t, l, at2012(0, 0, 0),
		"09:00:00, 09:30:00, standup",
		"14:00:00, 14:45:00, review",
	)

	records, err := l.QueryRange(ptr(at2012(0, 0, 0)), ptr(at2012(23, 59, 59)))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"standup", "review"}, descriptions(records))
	assert.Equal(t, 30, records[0].Duration)
	assert.Equal(t, 45, records[1].Duration)
}

func TestQueryRange_DefaultsToToday(t *testing.T) {
	l := newTestLog(t, at2012(18, 0, 0))
	writeDay(t, l, at2012(0, 0, 0), "23:00, 23:30, late", "08:00, 08:10, early")
	writeDay(t, l, at2012(12, 0, 0).AddDate(0, 0, -1), "10:00, 11:00, yesterday")

	records, err := l.QueryRange(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"late", "early"}, descriptions(records))
}

func TestQueryRange_MultipleDaysInOrder(t *testing.T) {
	l := newTestLog(t, at2012(18, 0, 0))
	d14 := time.Date(2012, 5, 14, 0, 0, 0, 0, time.Local)
	d15 := d14.AddDate(0, 0, 1)
	writeDay(t, l, d14, "10:00, 11:00, monday")
	writeDay(t, l, at2012(0, 0, 0), "09:00, 10:00, wednesday")
	writeDay(t, l, d15, "16:00, 17:00, tuesday-late", "08:00, 09:00, tuesday-early")

	records, err := l.QueryRange(ptr(d14), ptr(at2012(23, 0, 0)))
	require.NoError(t, err)
	assert.Equal(t, []string{"monday", "tuesday-late", "tuesday-early", "wednesday"}, descriptions(records))
}

func TestQueryRange_SwapsReversedBounds(t *testing.T) {
	l := newTestLog(t, at2012(18, 0, 0))
	writeDay(t, l, at2012(0, 0, 0), "09:00, 10:00, only")

	records, err := l.QueryRange(ptr(at2012(23, 0, 0)), ptr(at2012(1, 0, 0)))
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, descriptions(records))
}

func TestQueryRange_FiltersSubDayRange(t *testing.T) {
	l := newTestLog(t, at2012(18, 0, 0))
	writeDay(t, l, at2012(0, 0, 0),
		"08:00, 08:30, before",
		"12:00, 12:30, inside",
		"13:00, 13:30, boundary",
		"17:00, 17:30, after",
	)

	records, err := l.QueryRange(ptr(at2012(10, 0, 0)), ptr(at2012(13, 0, 0)))
	require.NoError(t, err)
	assert.Equal(t, []string{"inside", "boundary"}, descriptions(records))
}

func TestQueryRange_FullTimestampOutsideDay(t *testing.T) {
	l := newTestLog(t, at2012(18, 0, 0))
	writeDay(t, l, at2012(0, 0, 0),
		"2012-05-15 23:30:00, 2012-05-16 00:30:00, spans midnight",
		"10:00, 11:00, normal",
	)

	records, err := l.QueryRange(ptr(at2012(0, 0, 0)), ptr(at2012(23, 59, 59)))
	require.NoError(t, err)
	assert.Equal(t, []string{"normal"}, descriptions(records))
}

func TestQueryRange_SkipsMissingDays(t *testing.T) {
	l := newTestLog(t, at2012(18, 0, 0))
	writeDay(t, l, at2012(0, 0, 0), "09:00, 10:00, a", "11:00, 12:00, b")

	records, err := l.QueryRange(ptr(at2012(0, 0, 0).AddDate(0, 0, -10)), ptr(at2012(23, 0, 0)))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, descriptions(records))
}

func TestQueryRange_BlankLineFails(t *testing.T) {
	l := newTestLog(t, at2012(18, 0, 0))
	writeDay(t, l, at2012(0, 0, 0), "09:00, 10:00, a", "   ", "11:00, 12:00, b")

	records, err := l.QueryRange(nil, nil)
	assert.Nil(t, records)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Line)
	assert.Equal(t, "empty line", pe.Reason)
}

func TestQueryRange_InvalidFinishFails(t *testing.T) {
	l := newTestLog(t, at2012(15, 8, 0))
	writeDay(t, l, at2012(0, 0, 0), "09:00:00, 9:7x, standup")

	records, err := l.QueryRange(nil, nil)
	assert.Nil(t, records)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 1, pe.Line)
	assert.True(t, errors.Is(err, ErrParse))
}

func TestQueryRange_LongDescription(t *testing.T) {
	l := newTestLog(t, at2012(18, 0, 0))
	long := strings.Repeat("x", 200<<10)
	finish := at2012(10, 0, 0)
	_, err := l.Save(Record{Start: at2012(9, 0, 0), Finish: &finish, Description: long})
	require.NoError(t, err)
	_, err = l.Save(Record{Start: at2012(11, 0, 0), Description: long})
	require.NoError(t, err)

	records, err := l.QueryRange(nil, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, long, records[0].Description)

	cur, err := l.ReadPointer(Current)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, long, cur.Description)
}

func TestQueryRange_LineTooLong(t *testing.T) {
	l := newTestLog(t, at2012(18, 0, 0))
	writeDay(t, l, at2012(0, 0, 0), "09:00, 10:00, "+strings.Repeat("x", MaxLineSize))

	_, err := l.QueryRange(nil, nil)
	var ioErr *IOError
	assert.ErrorAs(t, err, &ioErr)
}

func TestQueryRange_MalformedLineFails(t *testing.T) {
	l := newTestLog(t, at2012(18, 0, 0))
	writeDay(t, l, at2012(0, 0, 0), "09:00, 10:00, good", "not a time, whatever")

	records, err := l.QueryRange(nil, nil)
	require.Error(t, err)
	assert.Nil(t, records)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, l.Filename(), pe.Path)
	assert.Equal(t, 2, pe.Line)
}

func TestQueryRange_AfterSave(t *testing.T) {
	l := newTestLog(t, at2012(18, 0, 0))
	finish := at2012(9, 30, 0)
	_, err := l.Save(Record{Start: at2012(9, 0, 0), Finish: &finish, Description: "standup"})
	require.NoError(t, err)

	records, err := l.QueryRange(nil, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "standup", records[0].Description)
	assert.Equal(t, 30, records[0].Duration)
}
