// Package report totals tracked time over a set of records.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/twiced-technology-gmbh/ttimetracker/internal/config"
	"github.com/twiced-technology-gmbh/ttimetracker/internal/date"
	"github.com/twiced-technology-gmbh/ttimetracker/internal/tasklog"
)

const noDescription = "(no description)"

// Summary holds records grouped by a field.
type Summary struct {
	From    time.Time `json:"from"`
	To      time.Time `json:"to"`
	GroupBy string    `json:"group_by"`
	Groups  []Group   `json:"groups"`
	Total   int       `json:"total_minutes"`
	Entries int       `json:"entries"`
}

// Group is one line of a summary.
type Group struct {
	Key     string `json:"key"`
	Minutes int    `json:"minutes"`
	Entries int    `json:"entries"`
}

// Build groups records by groupBy (description or day) and orders the
// groups by sortBy (duration, longest first, or name).
func Build(records []tasklog.Record, from, to time.Time, groupBy, sortBy string) Summary {
	s := Summary{From: from, To: to, GroupBy: groupBy}
	index := make(map[string]int)

	for _, r := range records {
		key := groupKey(r, groupBy)
		i, ok := index[key]
		if !ok {
			i = len(s.Groups)
			index[key] = i
			s.Groups = append(s.Groups, Group{Key: key})
		}
		s.Groups[i].Minutes += r.Duration
		s.Groups[i].Entries++
		s.Total += r.Duration
		s.Entries++
	}

	sortGroups(s.Groups, sortBy)
	return s
}

func groupKey(r tasklog.Record, groupBy string) string {
	if groupBy == config.GroupByDay {
		return date.Of(r.Start).String()
	}
	if r.Description == "" {
		return noDescription
	}
	return r.Description
}

func sortGroups(groups []Group, sortBy string) {
	sort.SliceStable(groups, func(i, j int) bool {
		if sortBy == config.SortDuration && groups[i].Minutes != groups[j].Minutes {
			return groups[i].Minutes > groups[j].Minutes
		}
		return groups[i].Key < groups[j].Key
	})
}

// Markdown renders the summary as a markdown document.
func (s Summary) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Time report\n\n%s to %s\n\n",
		s.From.Format("2006-01-02 15:04"), s.To.Format("2006-01-02 15:04"))

	if len(s.Groups) == 0 {
		b.WriteString("_No tasks recorded._\n")
		return b.String()
	}

	heading := "Task"
	if s.GroupBy == config.GroupByDay {
		heading = "Day"
	}
	fmt.Fprintf(&b, "| %s | Entries | Time |\n|---|---:|---:|\n", heading)
	for _, g := range s.Groups {
		fmt.Fprintf(&b, "| %s | %d | %s |\n", escapeCell(g.Key), g.Entries, tasklog.FormatMinutes(g.Minutes))
	}
	fmt.Fprintf(&b, "| **Total** | %d | **%s** |\n", s.Entries, tasklog.FormatMinutes(s.Total))
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
