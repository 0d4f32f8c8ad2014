package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/twiced-technology-gmbh/ttimetracker/internal/clierr"
	"github.com/twiced-technology-gmbh/ttimetracker/internal/date"
)

// addRangeFlags registers the flags selecting a query range.
func addRangeFlags(c *cobra.Command) {
	c.Flags().String("from", "", "range start (time, day, or offset like -2h)")
	c.Flags().String("to", "", "range end (time, day, or offset)")
	c.Flags().String("day", "", "a single day (YYYY-MM-DD, today, yesterday)")
	c.Flags().Bool("yesterday", false, "yesterday")
	c.Flags().Bool("week", false, "the current week, Monday through today")
	c.MarkFlagsMutuallyExclusive("day", "yesterday", "week")
	c.MarkFlagsMutuallyExclusive("day", "from")
	c.MarkFlagsMutuallyExclusive("day", "to")
	c.MarkFlagsMutuallyExclusive("yesterday", "from")
	c.MarkFlagsMutuallyExclusive("yesterday", "to")
	c.MarkFlagsMutuallyExclusive("week", "from")
	c.MarkFlagsMutuallyExclusive("week", "to")
}

// rangeFromFlags resolves the range flags against ref. Without flags the
// range is ref's day. A bound given as a bare day covers the whole day.
func rangeFromFlags(cmd *cobra.Command, ref time.Time) (from, to time.Time, err error) {
	from, to = date.StartOfDay(ref), date.EndOfDay(ref)
	flags := cmd.Flags()

	switch {
	case flags.Changed("day"):
		value, _ := flags.GetString("day")
		d, err := date.ParseDay(value, ref)
		if err != nil {
			return from, to, invalidTime("day", value, err)
		}
		return d.Time, d.End(), nil
	case flags.Changed("yesterday"):
		if y, _ := flags.GetBool("yesterday"); y {
			d := date.Of(ref.AddDate(0, 0, -1))
			return d.Time, d.End(), nil
		}
	case flags.Changed("week"):
		if w, _ := flags.GetBool("week"); w {
			return date.StartOfWeek(ref), to, nil
		}
	}

	if flags.Changed("from") {
		value, _ := flags.GetString("from")
		if from, err = parseBound(value, ref, false); err != nil {
			return from, to, invalidTime("from", value, err)
		}
	}
	if flags.Changed("to") {
		value, _ := flags.GetString("to")
		if to, err = parseBound(value, ref, true); err != nil {
			return from, to, invalidTime("to", value, err)
		}
	}
	return from, to, nil
}

// parseBound parses a range bound. A bare day maps to its first instant,
// or its last one when end is set.
func parseBound(value string, ref time.Time, end bool) (time.Time, error) {
	if d, err := date.ParseDay(value, ref); err == nil {
		if end {
			return d.End(), nil
		}
		return d.Time, nil
	}
	return date.ParseMoment(value, ref)
}

func invalidTime(flag, value string, err error) error {
	return clierr.Newf(clierr.InvalidTime, "invalid --%s: %v", flag, err).
		WithDetails(map[string]any{"flag": flag, "value": value})
}
