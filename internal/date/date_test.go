package date

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayBoundaries(t *testing.T) {
	ts := time.Date(2012, 5, 16, 15, 8, 42, 7, time.Local)

	assert.Equal(t, time.Date(2012, 5, 16, 0, 0, 0, 0, time.Local), StartOfDay(ts))
	assert.Equal(t, time.Date(2012, 5, 16, 23, 59, 59, 999999999, time.Local), EndOfDay(ts))
	assert.Equal(t, "2012-05-16", Of(ts).String())
	assert.Equal(t, "2012-05-17", Of(ts).Next().String())
}

func TestDays(t *testing.T) {
	from := time.Date(2012, 2, 27, 22, 0, 0, 0, time.Local)
	to := time.Date(2012, 3, 1, 1, 0, 0, 0, time.Local)

	var got []string
	for _, d := range Days(from, to) {
		got = append(got, d.String())
	}
	assert.Equal(t, []string{"2012-02-27", "2012-02-28", "2012-02-29", "2012-03-01"}, got)

	assert.Len(t, Days(from, from), 1)
	assert.Nil(t, Days(to, from))
}

func TestStartOfWeek(t *testing.T) {
	monday := time.Date(2012, 5, 14, 0, 0, 0, 0, time.Local)
	assert.Equal(t, monday, StartOfWeek(time.Date(2012, 5, 16, 15, 8, 0, 0, time.Local)))
	assert.Equal(t, monday, StartOfWeek(time.Date(2012, 5, 14, 0, 0, 0, 0, time.Local)))
	assert.Equal(t, monday, StartOfWeek(time.Date(2012, 5, 20, 23, 0, 0, 0, time.Local)))
}

func TestParseDay(t *testing.T) {
	now := time.Date(2012, 3, 1, 10, 0, 0, 0, time.Local)

	d, err := ParseDay("Yesterday", now)
	require.NoError(t, err)
	assert.Equal(t, "2012-02-29", d.String())

	d, err = ParseDay("today", now)
	require.NoError(t, err)
	assert.Equal(t, "2012-03-01", d.String())

	d, err = ParseDay(" 2012-05-16 ", now)
	require.NoError(t, err)
	assert.Equal(t, "2012-05-16", d.String())

	_, err = ParseDay("14:00", now)
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	d, err := Parse("2012-05-16")
	require.NoError(t, err)
	assert.Equal(t, Of(time.Date(2012, time.May, 16, 9, 30, 0, 0, time.Local)), d)

	_, err = Parse("16/05/2012")
	assert.Error(t, err)
}

func TestParseMoment(t *testing.T) {
	now := time.Date(2012, 5, 16, 15, 8, 0, 0, time.Local)

	tests := []struct {
		in   string
		want time.Time
	}{
		{"now", now},
		{"today", time.Date(2012, 5, 16, 0, 0, 0, 0, time.Local)},
		{"Yesterday", time.Date(2012, 5, 15, 0, 0, 0, 0, time.Local)},
		{"14:32", time.Date(2012, 5, 16, 14, 32, 0, 0, time.Local)},
		{"14:32:10", time.Date(2012, 5, 16, 14, 32, 10, 0, time.Local)},
		{"9am", time.Date(2012, 5, 16, 9, 0, 0, 0, time.Local)},
		{"5:45pm", time.Date(2012, 5, 16, 17, 45, 0, 0, time.Local)},
		{"2012-05-01", time.Date(2012, 5, 1, 0, 0, 0, 0, time.Local)},
		{"2012-05-01 08:15", time.Date(2012, 5, 1, 8, 15, 0, 0, time.Local)},
		{"2012-05-01 08:15:30", time.Date(2012, 5, 1, 8, 15, 30, 0, time.Local)},
		{"-15m", now.Add(-15 * time.Minute)},
		{"-1h30m", now.Add(-90 * time.Minute)},
		{"+5m", now.Add(5 * time.Minute)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMoment(tt.in, now)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
		})
	}
}

func TestParseMoment_Invalid(t *testing.T) {
	now := time.Now()
	for _, in := range []string{"", "later", "-abc", "25:00", "2012-13-01"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseMoment(in, now)
			assert.Error(t, err)
		})
	}
}
